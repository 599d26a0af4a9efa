package discord

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/FissureBot_Go/internal/domain"
	"github.com/osse101/FissureBot_Go/internal/logger"
	"github.com/osse101/FissureBot_Go/internal/metrics"
)

// ActiveSource returns the fissures currently tracked as active.
type ActiveSource interface {
	Active() []domain.Fissure
}

// Display keeps one pinned message in a channel listing active fissures.
// It adopts an existing pinned display message after a restart.
type Display struct {
	session   Session
	source    ActiveSource
	channelID string

	mu        sync.Mutex
	messageID string
}

// NewDisplay creates a display refresher for channelID.
func NewDisplay(s Session, source ActiveSource, channelID string) *Display {
	return &Display{session: s, source: source, channelID: channelID}
}

// RefreshDisplay redraws the pinned list, creating and pinning it on first use.
func (d *Display) RefreshDisplay(ctx context.Context) error {
	if d.channelID == "" {
		return errors.New(ErrMsgDisplayNoChannel)
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	embed := fissureListEmbed(TitleDisplay, d.source.Active())
	if err := d.refresh(ctx, embed); err != nil {
		metrics.DiscordDisplayRefreshesTotal.WithLabelValues(metrics.ResultError).Inc()
		return err
	}
	metrics.DiscordDisplayRefreshesTotal.WithLabelValues(metrics.ResultSuccess).Inc()
	logger.FromContext(ctx).Debug(LogMsgDisplayRefreshed, LogFieldChannel, d.channelID, LogFieldMessage, d.messageID)
	return nil
}

func (d *Display) refresh(ctx context.Context, embed *discordgo.MessageEmbed) error {
	if d.messageID == "" {
		id, err := d.findPinned(ctx)
		if err != nil {
			return err
		}
		d.messageID = id
	}

	if d.messageID != "" {
		_, err := d.session.ChannelMessageEditEmbed(d.channelID, d.messageID, embed, discordgo.WithContext(ctx))
		if err == nil {
			return nil
		}
		var rest *discordgo.RESTError
		if !errors.As(err, &rest) || rest.Response == nil || rest.Response.StatusCode != http.StatusNotFound {
			return fmt.Errorf("%s: %w", ErrContextEditDisplay, err)
		}
		// The message was deleted; post a new one.
		d.messageID = ""
	}

	msg, err := d.session.ChannelMessageSendEmbed(d.channelID, embed, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("%s: %w", ErrContextSendMessage, err)
	}
	d.messageID = msg.ID
	if err := d.session.ChannelMessagePin(d.channelID, msg.ID, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("%s: %w", ErrContextPin, err)
	}
	return nil
}

func (d *Display) findPinned(ctx context.Context) (string, error) {
	pinned, err := d.session.ChannelMessagesPinned(d.channelID, discordgo.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrContextPinned, err)
	}
	for _, m := range pinned {
		if m.Author == nil || !m.Author.Bot || len(m.Embeds) == 0 {
			continue
		}
		if m.Embeds[0].Title == TitleDisplay {
			return m.ID, nil
		}
	}
	return "", nil
}
