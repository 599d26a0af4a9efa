package discord

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/FissureBot_Go/internal/domain"
	"github.com/osse101/FissureBot_Go/internal/fissure"
)

func eraChoices() []*discordgo.ApplicationCommandOptionChoice {
	eras := append(append([]domain.Era(nil), domain.Eras...), domain.FissureEraOmnia)
	out := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(eras))
	for _, e := range eras {
		out = append(out, &discordgo.ApplicationCommandOptionChoice{Name: string(e), Value: string(e)})
	}
	return out
}

func categoryChoices() []*discordgo.ApplicationCommandOptionChoice {
	cats := []domain.FissureCategory{domain.FissureNormal, domain.FissureSteelPath, domain.FissureVoidStorm}
	out := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(cats))
	for _, c := range cats {
		out = append(out, &discordgo.ApplicationCommandOptionChoice{Name: categoryLabel(c), Value: string(c)})
	}
	return out
}

func textOption(name, desc string) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{Type: discordgo.ApplicationCommandOptionString, Name: name, Description: desc}
}

func eraOption() *discordgo.ApplicationCommandOption {
	opt := textOption(OptEra, "Relic era")
	opt.Choices = eraChoices()
	return opt
}

func categoryOption() *discordgo.ApplicationCommandOption {
	opt := textOption(OptCategory, "Normal, Steel Path or Void Storm")
	opt.Choices = categoryChoices()
	return opt
}

// FissuresCommand returns the /fissures definition and handler
func FissuresCommand(svc fissure.Service) (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        CmdFissures,
		Description: "List active void fissures",
		Options: []*discordgo.ApplicationCommandOption{
			eraOption(),
			textOption(OptMission, "Mission type, partial names work"),
			textOption(OptPlanet, "Planet"),
			categoryOption(),
		},
	}

	handler := func(s Session, i *discordgo.InteractionCreate) {
		handleEmbedResponse(s, i, func(_ context.Context, _ *discordgo.User) (*discordgo.MessageEmbed, error) {
			opts := getOptions(i)
			active := fissure.FilterActive(svc.Active(), fissure.FilterFields{
				Era:      opts.str(OptEra),
				Mission:  opts.str(OptMission),
				Planet:   opts.str(OptPlanet),
				Category: opts.str(OptCategory),
			})
			return fissureListEmbed(TitleFissures, active), nil
		})
	}
	return cmd, handler
}

// SubscribeCommand returns the /fissure-subscribe definition and handler.
// Without any pattern option it lists the caller's subscriptions. Thread
// delivery opens a thread under threadParent.
func SubscribeCommand(svc fissure.Service, threadParent string) (*discordgo.ApplicationCommand, CommandHandler) {
	minTier, maxTier := 1.0, float64(fissure.MaxFissureTier)
	cmd := &discordgo.ApplicationCommand{
		Name:        CmdSubscribe,
		Description: "Get notified when matching fissures appear, or list your subscriptions",
		Options: []*discordgo.ApplicationCommandOption{
			eraOption(),
			textOption(OptMission, "Mission type, partial names work"),
			textOption(OptNode, "Exact node name"),
			textOption(OptPlanet, "Planet"),
			textOption(OptTileset, "Tileset"),
			textOption(OptEnemy, "Enemy faction"),
			categoryOption(),
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        OptMaxTier,
				Description: "Highest tier to include (1 Lith to 6 Omnia)",
				MinValue:    &minTier,
				MaxValue:    maxTier,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        OptKind,
				Description: "Where alerts go (default: DM)",
				Choices: []*discordgo.ApplicationCommandOptionChoice{
					{Name: "Direct message", Value: string(domain.NotifyDM)},
					{Name: "Thread", Value: string(domain.NotifyThread)},
				},
			},
		},
	}

	handler := func(s Session, i *discordgo.InteractionCreate) {
		handleEmbedResponse(s, i, func(ctx context.Context, user *discordgo.User) (*discordgo.MessageEmbed, error) {
			opts := getOptions(i)
			req := fissure.SubscribeRequest{
				UserID:   user.ID,
				Kind:     opts.str(OptKind),
				Era:      opts.str(OptEra),
				Mission:  opts.str(OptMission),
				Node:     opts.str(OptNode),
				Planet:   opts.str(OptPlanet),
				Tileset:  opts.str(OptTileset),
				Enemy:    opts.str(OptEnemy),
				Category: opts.str(OptCategory),
				MaxTier:  opts.intPtr(OptMaxTier),
			}
			if !hasPattern(req) {
				subs, err := svc.ListSubscriptions(ctx, user.ID)
				if err != nil {
					return nil, err
				}
				return subscriptionsEmbed(subs), nil
			}

			if req.Kind == string(domain.NotifyThread) {
				if threadParent == "" {
					return nil, domain.NewValidationError(MsgThreadsDisabled)
				}
				th, err := s.ThreadStart(threadParent, fmt.Sprintf(FmtThreadName, user.Username), discordgo.ChannelTypeGuildPublicThread, ThreadArchiveMinutes, discordgo.WithContext(ctx))
				if err != nil {
					return nil, fmt.Errorf("%s: %w", ErrContextStartThread, err)
				}
				req.Target = th.ID
			}

			sub, err := svc.Subscribe(ctx, req)
			if err != nil {
				return nil, err
			}
			return createEmbed(TitleSubscribed, fmt.Sprintf(MsgSubscribedFmt, sub.ID, deliveryLabel(*sub)), ColorSuccess), nil
		})
	}
	return cmd, handler
}

func hasPattern(req fissure.SubscribeRequest) bool {
	return req.Era != "" || req.Mission != "" || req.Node != "" || req.Planet != "" ||
		req.Tileset != "" || req.Enemy != "" || req.Category != "" || req.MaxTier != nil
}

func deliveryLabel(sub domain.FissureSubscription) string {
	if sub.Kind == domain.NotifyThread {
		return fmt.Sprintf("<#%s>", sub.Target)
	}
	return "DM"
}

// describePattern lists the set fields of a subscription.
func describePattern(sub domain.FissureSubscription) string {
	var parts []string
	add := func(label string, v *string) {
		if v != nil {
			parts = append(parts, fmt.Sprintf("%s=%s", label, *v))
		}
	}
	add(OptEra, sub.Era)
	add(OptMission, sub.Mission)
	add(OptNode, sub.Node)
	add(OptPlanet, sub.Planet)
	add(OptTileset, sub.Tileset)
	add(OptEnemy, sub.Enemy)
	if sub.Category != nil {
		parts = append(parts, fmt.Sprintf("%s=%s", OptCategory, categoryLabel(*sub.Category)))
	}
	if sub.MaxTier != nil {
		parts = append(parts, fmt.Sprintf("%s=%d", OptMaxTier, *sub.MaxTier))
	}
	return strings.Join(parts, ", ")
}

func subscriptionsEmbed(subs []domain.FissureSubscription) *discordgo.MessageEmbed {
	if len(subs) == 0 {
		return createEmbed(TitleSubscriptions, MsgNoSubscriptions, ColorInfo)
	}
	lines := make([]string, 0, len(subs))
	for _, sub := range subs {
		lines = append(lines, fmt.Sprintf(FmtSubscriptionID, sub.ID, describePattern(sub))+" · "+deliveryLabel(sub))
	}
	return createEmbed(TitleSubscriptions, joinLines(lines, MaxEmbedDescription), ColorInfo)
}

// UnsubscribeCommand returns the /fissure-unsubscribe definition and handler
func UnsubscribeCommand(svc fissure.Service) (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        CmdUnsubscribe,
		Description: "Remove a fissure subscription",
		Options: []*discordgo.ApplicationCommandOption{
			textOption(OptID, "Subscription id from /fissure-subscribe"),
			{
				Type:        discordgo.ApplicationCommandOptionBoolean,
				Name:        OptAll,
				Description: "Remove every subscription",
			},
		},
	}

	handler := func(s Session, i *discordgo.InteractionCreate) {
		handleEmbedResponse(s, i, func(ctx context.Context, user *discordgo.User) (*discordgo.MessageEmbed, error) {
			opts := getOptions(i)
			if opts.boolean(OptAll) {
				n, err := svc.UnsubscribeAll(ctx, user.ID)
				if err != nil {
					return nil, err
				}
				return createEmbed(TitleUnsubscribed, fmt.Sprintf(MsgUnsubscribedAllFmt, n), ColorWarning), nil
			}
			id := opts.str(OptID)
			if id == "" {
				return nil, domain.NewValidationError(MsgUnsubscribeArgs)
			}
			if err := svc.Unsubscribe(ctx, user.ID, id); err != nil {
				return nil, err
			}
			return createEmbed(TitleUnsubscribed, fmt.Sprintf(MsgUnsubscribedFmt, id), ColorWarning), nil
		})
	}
	return cmd, handler
}
