package discord

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/FissureBot_Go/internal/domain"
	"github.com/osse101/FissureBot_Go/internal/logger"
	"github.com/osse101/FissureBot_Go/internal/simulation"
	"github.com/osse101/FissureBot_Go/internal/worker"
)

// respondError replaces the deferred response with a plain message.
func respondError(s Session, i *discordgo.InteractionCreate, message string) {
	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Content: &message,
	}); err != nil {
		slog.Error(LogMsgEditFailed, "error", err)
	}
}

// respondText answers immediately without deferring.
func respondText(s Session, i *discordgo.InteractionCreate, content string, ephemeral bool) {
	data := &discordgo.InteractionResponseData{Content: content}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	}); err != nil {
		slog.Error(LogMsgRespondFailed, "error", err)
	}
}

// EmbedAction produces the embed of a deferred command.
type EmbedAction func(ctx context.Context, user *discordgo.User) (*discordgo.MessageEmbed, error)

// handleEmbedResponse defers the interaction, runs the action under a
// request-scoped context and edits in the resulting embed or a friendly
// error.
func handleEmbedResponse(s Session, i *discordgo.InteractionCreate, action EmbedAction) {
	if !deferResponse(s, i) {
		return
	}

	user := getInteractionUser(i)
	ctx := logger.WithRequestID(context.Background(), logger.GenerateRequestID())
	ctx, cancel := context.WithTimeout(ctx, CommandTimeout)
	defer cancel()

	embed, err := action(ctx, user)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgCommandFailed,
			LogFieldCommand, i.ApplicationCommandData().Name,
			LogFieldUser, user.ID,
			"error", err)
		respondError(s, i, friendlyError(err))
		return
	}
	sendEmbed(s, i, embed)
}

// deferResponse acknowledges an interaction with a deferred message.
// Returns false if deferral failed.
func deferResponse(s Session, i *discordgo.InteractionCreate) bool {
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	}); err != nil {
		slog.Error(LogMsgDeferFailed, "error", err)
		return false
	}
	return true
}

func sendEmbed(s Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) {
	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Embeds: &[]*discordgo.MessageEmbed{embed},
	}); err != nil {
		slog.Error(LogMsgEditFailed, "error", err)
	}
}

func createEmbed(title, description string, color int) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: truncate(description, MaxEmbedDescription),
		Color:       color,
		Footer:      &discordgo.MessageEmbedFooter{Text: FooterFissureBot},
	}
}

// getInteractionUser handles both guild (i.Member.User) and DM (i.User)
// contexts. Always returns a non-nil user.
func getInteractionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	if i.User != nil {
		return i.User
	}
	return &discordgo.User{}
}

type options map[string]*discordgo.ApplicationCommandInteractionDataOption

func getOptions(i *discordgo.InteractionCreate) options {
	opts := i.ApplicationCommandData().Options
	m := make(options, len(opts))
	for _, o := range opts {
		m[o.Name] = o
	}
	return m
}

func (o options) str(name string) string {
	if v, ok := o[name]; ok {
		return strings.TrimSpace(v.StringValue())
	}
	return ""
}

func (o options) integer(name string, def int) int {
	if v, ok := o[name]; ok {
		return int(v.IntValue())
	}
	return def
}

func (o options) intPtr(name string) *int {
	if v, ok := o[name]; ok {
		n := int(v.IntValue())
		return &n
	}
	return nil
}

func (o options) floatPtr(name string) *float64 {
	if v, ok := o[name]; ok {
		f := v.FloatValue()
		return &f
	}
	return nil
}

func (o options) boolean(name string) bool {
	if v, ok := o[name]; ok {
		return v.BoolValue()
	}
	return false
}

func (o options) boolPtr(name string) *bool {
	if v, ok := o[name]; ok {
		b := v.BoolValue()
		return &b
	}
	return nil
}

// friendlyError maps service errors onto chat-facing text. Validation
// messages are already written for users and pass through.
func friendlyError(err error) string {
	if msg, ok := domain.UserMessage(err); ok {
		return "❌ " + msg
	}
	switch {
	case errors.Is(err, simulation.ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return MsgSimulationTimeout
	case errors.Is(err, worker.ErrPoolStopped):
		return MsgSimulationBusy
	case errors.Is(err, domain.ErrSubscriptionAbsent):
		return MsgSubscriptionMissing
	case errors.Is(err, domain.ErrFeedUnavailable):
		return MsgFeedUnavailable
	default:
		return MsgGenericError
	}
}

// truncate cuts s to at most limit runes, marking the cut.
func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	marker := []rune(TruncationMarker)
	return string(r[:limit-len(marker)]) + TruncationMarker
}

// joinLines joins lines until the next one would pass limit bytes.
func joinLines(lines []string, limit int) string {
	var b strings.Builder
	for i, l := range lines {
		if b.Len()+len(l)+len(TruncationMarker)+1 > limit {
			b.WriteString(TruncationMarker)
			break
		}
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(l)
	}
	return b.String()
}
