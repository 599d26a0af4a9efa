package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/mock"

	"github.com/osse101/FissureBot_Go/internal/domain"
	"github.com/osse101/FissureBot_Go/internal/fissure"
	"github.com/osse101/FissureBot_Go/internal/simulation"
)

// MockSession records Discord REST calls. Request options are ignored.
type MockSession struct {
	mock.Mock
}

func (m *MockSession) InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, _ ...discordgo.RequestOption) error {
	args := m.Called(interaction, resp)
	return args.Error(0)
}

func (m *MockSession) InteractionResponseEdit(interaction *discordgo.Interaction, newresp *discordgo.WebhookEdit, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	args := m.Called(interaction, newresp)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*discordgo.Message), args.Error(1)
}

func (m *MockSession) UserChannelCreate(recipientID string, _ ...discordgo.RequestOption) (*discordgo.Channel, error) {
	args := m.Called(recipientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*discordgo.Channel), args.Error(1)
}

func (m *MockSession) ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	args := m.Called(channelID, embed)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*discordgo.Message), args.Error(1)
}

func (m *MockSession) ChannelMessageEditEmbed(channelID, messageID string, embed *discordgo.MessageEmbed, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	args := m.Called(channelID, messageID, embed)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*discordgo.Message), args.Error(1)
}

func (m *MockSession) ChannelMessagesPinned(channelID string, _ ...discordgo.RequestOption) ([]*discordgo.Message, error) {
	args := m.Called(channelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*discordgo.Message), args.Error(1)
}

func (m *MockSession) ChannelMessagePin(channelID, messageID string, _ ...discordgo.RequestOption) error {
	args := m.Called(channelID, messageID)
	return args.Error(0)
}

func (m *MockSession) ThreadStart(channelID, name string, typ discordgo.ChannelType, archiveDuration int, _ ...discordgo.RequestOption) (*discordgo.Channel, error) {
	args := m.Called(channelID, name, typ, archiveDuration)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*discordgo.Channel), args.Error(1)
}

func (m *MockSession) ApplicationCommands(appID, guildID string, _ ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error) {
	args := m.Called(appID, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*discordgo.ApplicationCommand), args.Error(1)
}

func (m *MockSession) ApplicationCommandBulkOverwrite(appID string, guildID string, commands []*discordgo.ApplicationCommand, _ ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error) {
	args := m.Called(appID, guildID, commands)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*discordgo.ApplicationCommand), args.Error(1)
}

// MockSimulationService is a mock implementation of simulation.Service
type MockSimulationService struct {
	mock.Mock
}

func (m *MockSimulationService) Simulate(ctx context.Context, req simulation.Request) (*simulation.Run, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*simulation.Run), args.Error(1)
}

func (m *MockSimulationService) ResolvePriority(ctx context.Context, req simulation.PriorityRequest) (*simulation.PriorityResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*simulation.PriorityResult), args.Error(1)
}

func (m *MockSimulationService) SavePriorityOverride(ctx context.Context, userID string, pools []simulation.PoolSpec, ranks map[string]int) (*simulation.PriorityResult, error) {
	args := m.Called(ctx, userID, pools, ranks)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*simulation.PriorityResult), args.Error(1)
}

func (m *MockSimulationService) DeletePriorityOverride(ctx context.Context, userID string, pools []simulation.PoolSpec) error {
	args := m.Called(ctx, userID, pools)
	return args.Error(0)
}

func (m *MockSimulationService) GetSimConfig(ctx context.Context, userID string) (domain.SimConfig, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.SimConfig), args.Error(1)
}

func (m *MockSimulationService) SaveSimConfig(ctx context.Context, cfg domain.SimConfig) error {
	args := m.Called(ctx, cfg)
	return args.Error(0)
}

// MockFissureService is a mock implementation of fissure.Service
type MockFissureService struct {
	mock.Mock
}

func (m *MockFissureService) Poll(ctx context.Context) (*fissure.PollResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fissure.PollResult), args.Error(1)
}

func (m *MockFissureService) Active() []domain.Fissure {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]domain.Fissure)
}

func (m *MockFissureService) Subscribe(ctx context.Context, req fissure.SubscribeRequest) (*domain.FissureSubscription, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FissureSubscription), args.Error(1)
}

func (m *MockFissureService) ListSubscriptions(ctx context.Context, userID string) ([]domain.FissureSubscription, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FissureSubscription), args.Error(1)
}

func (m *MockFissureService) Unsubscribe(ctx context.Context, userID, subscriptionID string) error {
	args := m.Called(ctx, userID, subscriptionID)
	return args.Error(0)
}

func (m *MockFissureService) UnsubscribeAll(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

// MockRelicIndex is a fixed relic list.
type MockRelicIndex map[domain.Era][]domain.RelicID

func (m MockRelicIndex) RelicsByEra(era domain.Era) []domain.RelicID {
	return m[era]
}
