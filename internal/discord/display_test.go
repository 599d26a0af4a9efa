package discord

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/FissureBot_Go/internal/worker"
)

var _ worker.DisplayRefresher = (*Display)(nil)

func displayEmbed(title string) []*discordgo.MessageEmbed {
	return []*discordgo.MessageEmbed{{Title: title}}
}

func TestDisplay_CreatesAndPins(t *testing.T) {
	svc := new(MockFissureService)
	svc.On("Active").Return(testFissures())

	s := new(MockSession)
	s.On("ChannelMessagesPinned", "chan").Return([]*discordgo.Message{
		{ID: "human", Author: &discordgo.User{Bot: false}, Embeds: displayEmbed(TitleDisplay)},
		{ID: "other-bot", Author: &discordgo.User{Bot: true}, Embeds: displayEmbed("Rules")},
	}, nil).Once()
	s.On("ChannelMessageSendEmbed", "chan", mock.Anything).Return(&discordgo.Message{ID: "new"}, nil).Once()
	s.On("ChannelMessagePin", "chan", "new").Return(nil).Once()
	s.On("ChannelMessageEditEmbed", "chan", "new", mock.Anything).Return(&discordgo.Message{ID: "new"}, nil).Once()

	d := NewDisplay(s, svc, "chan")
	require.NoError(t, d.RefreshDisplay(context.Background()))
	require.NoError(t, d.RefreshDisplay(context.Background()))
	s.AssertExpectations(t)
}

func TestDisplay_AdoptsPinnedMessage(t *testing.T) {
	svc := new(MockFissureService)
	svc.On("Active").Return(nil)

	s := new(MockSession)
	s.On("ChannelMessagesPinned", "chan").Return([]*discordgo.Message{
		{ID: "old", Author: &discordgo.User{Bot: true}, Embeds: displayEmbed(TitleDisplay)},
	}, nil).Once()
	s.On("ChannelMessageEditEmbed", "chan", "old", mock.MatchedBy(func(e *discordgo.MessageEmbed) bool {
		return e.Description == MsgNoFissures
	})).Return(&discordgo.Message{ID: "old"}, nil).Once()

	require.NoError(t, NewDisplay(s, svc, "chan").RefreshDisplay(context.Background()))
	s.AssertExpectations(t)
	s.AssertNotCalled(t, "ChannelMessageSendEmbed", mock.Anything, mock.Anything)
}

func TestDisplay_RepostsDeletedMessage(t *testing.T) {
	svc := new(MockFissureService)
	svc.On("Active").Return(testFissures())

	notFound := &discordgo.RESTError{Response: &http.Response{StatusCode: http.StatusNotFound}}
	s := new(MockSession)
	s.On("ChannelMessagesPinned", "chan").Return([]*discordgo.Message{
		{ID: "old", Author: &discordgo.User{Bot: true}, Embeds: displayEmbed(TitleDisplay)},
	}, nil).Once()
	s.On("ChannelMessageEditEmbed", "chan", "old", mock.Anything).Return(nil, notFound).Once()
	s.On("ChannelMessageSendEmbed", "chan", mock.Anything).Return(&discordgo.Message{ID: "new"}, nil).Once()
	s.On("ChannelMessagePin", "chan", "new").Return(nil).Once()

	require.NoError(t, NewDisplay(s, svc, "chan").RefreshDisplay(context.Background()))
	s.AssertExpectations(t)
}

func TestDisplay_Errors(t *testing.T) {
	t.Run("no channel", func(t *testing.T) {
		err := NewDisplay(new(MockSession), new(MockFissureService), "").RefreshDisplay(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgDisplayNoChannel)
	})

	t.Run("edit fails", func(t *testing.T) {
		svc := new(MockFissureService)
		svc.On("Active").Return(nil)
		s := new(MockSession)
		s.On("ChannelMessagesPinned", "chan").Return([]*discordgo.Message{
			{ID: "old", Author: &discordgo.User{Bot: true}, Embeds: displayEmbed(TitleDisplay)},
		}, nil)
		s.On("ChannelMessageEditEmbed", "chan", "old", mock.Anything).Return(nil, errors.New("rate limited"))

		err := NewDisplay(s, svc, "chan").RefreshDisplay(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrContextEditDisplay)
		s.AssertNotCalled(t, "ChannelMessageSendEmbed", mock.Anything, mock.Anything)
	})

	t.Run("pinned lookup fails", func(t *testing.T) {
		svc := new(MockFissureService)
		svc.On("Active").Return(nil)
		s := new(MockSession)
		s.On("ChannelMessagesPinned", "chan").Return(nil, errors.New("missing access"))

		err := NewDisplay(s, svc, "chan").RefreshDisplay(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrContextPinned)
	})
}
