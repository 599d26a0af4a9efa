package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/FissureBot_Go/internal/domain"
)

// DMNotifier delivers fissure alerts as direct messages. DM channel ids
// are cached per user.
type DMNotifier struct {
	session  Session
	channels *expirable.LRU[string, string]
}

// NewDMNotifier creates a DM notifier.
func NewDMNotifier(s Session) *DMNotifier {
	return &DMNotifier{
		session:  s,
		channels: expirable.NewLRU[string, string](DMChannelCacheSize, nil, DMChannelCacheTTL),
	}
}

// Deliver opens (or reuses) the DM channel of to.Target and sends the alert.
func (n *DMNotifier) Deliver(ctx context.Context, f domain.Fissure, to domain.Subscriber) error {
	if to.Target == "" {
		return fmt.Errorf("%w: %s", domain.ErrDelivery, ErrMsgMissingTarget)
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrDelivery, err)
	}

	channelID, ok := n.channels.Get(to.Target)
	if !ok {
		ch, err := n.session.UserChannelCreate(to.Target, discordgo.WithContext(ctx))
		if err != nil {
			return fmt.Errorf("%w: %s: %v", domain.ErrDelivery, ErrContextDMChannel, err)
		}
		channelID = ch.ID
		n.channels.Add(to.Target, channelID)
	}

	if _, err := n.session.ChannelMessageSendEmbed(channelID, FissureEmbed(f), discordgo.WithContext(ctx)); err != nil {
		// A stale channel id is dropped so the next delivery reopens it.
		n.channels.Remove(to.Target)
		return fmt.Errorf("%w: %s: %v", domain.ErrDelivery, ErrContextSendMessage, err)
	}
	return nil
}

// ThreadNotifier posts fissure alerts into a subscriber's thread.
type ThreadNotifier struct {
	session Session
}

// NewThreadNotifier creates a thread notifier.
func NewThreadNotifier(s Session) *ThreadNotifier {
	return &ThreadNotifier{session: s}
}

// Deliver posts the alert into the thread named by to.Target.
func (n *ThreadNotifier) Deliver(ctx context.Context, f domain.Fissure, to domain.Subscriber) error {
	if to.Target == "" {
		return fmt.Errorf("%w: %s", domain.ErrDelivery, ErrMsgMissingTarget)
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrDelivery, err)
	}
	if _, err := n.session.ChannelMessageSendEmbed(to.Target, FissureEmbed(f), discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrDelivery, ErrContextSendMessage, err)
	}
	return nil
}
