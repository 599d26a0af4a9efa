package discord

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/FissureBot_Go/internal/domain"
)

var categoryLabels = map[domain.FissureCategory]string{
	domain.FissureNormal:    "Normal",
	domain.FissureSteelPath: "Steel Path",
	domain.FissureVoidStorm: "Void Storm",
}

func categoryLabel(c domain.FissureCategory) string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}

func relativeTime(t time.Time) string {
	return fmt.Sprintf(FmtRelativeTime, t.Unix())
}

// fissureLine is the one-line form used in lists.
func fissureLine(f domain.Fissure) string {
	return fmt.Sprintf(FmtFissureLine, f.Era, f.Mission, f.Node, f.Planet, categoryLabel(f.Category), relativeTime(f.Expiry()))
}

func fissureLines(fs []domain.Fissure) []string {
	out := make([]string, 0, len(fs))
	for _, f := range fs {
		out = append(out, fissureLine(f))
	}
	return out
}

// FissureEmbed is the notification sent for one newly active fissure.
func FissureEmbed(f domain.Fissure) *discordgo.MessageEmbed {
	embed := createEmbed(TitleNewFissure, fmt.Sprintf(FmtFissureTitle, f.Era, f.Mission, f.Node), ColorFissure)
	embed.Fields = []*discordgo.MessageEmbedField{
		{Name: FieldMission, Value: f.Mission, Inline: true},
		{Name: FieldNode, Value: fmt.Sprintf("%s (%s)", f.Node, f.Planet), Inline: true},
		{Name: FieldCategory, Value: categoryLabel(f.Category), Inline: true},
		{Name: FieldExpires, Value: relativeTime(f.Expiry()), Inline: true},
	}
	if f.Enemy != "" || f.Tileset != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   FieldEnemy,
			Value:  fmt.Sprintf(FmtFieldEnemy, orDash(f.Enemy), orDash(f.Tileset)),
			Inline: true,
		})
	}
	if !f.Activation.IsZero() {
		embed.Timestamp = f.Activation.UTC().Format(time.RFC3339)
	}
	return embed
}

// fissureListEmbed groups fissures by category in display order.
func fissureListEmbed(title string, fs []domain.Fissure) *discordgo.MessageEmbed {
	if len(fs) == 0 {
		return createEmbed(title, MsgNoFissures, ColorFissure)
	}
	embed := createEmbed(title, "", ColorFissure)
	for _, c := range []domain.FissureCategory{domain.FissureNormal, domain.FissureSteelPath, domain.FissureVoidStorm} {
		var group []domain.Fissure
		for _, f := range fs {
			if f.Category == c {
				group = append(group, f)
			}
		}
		if len(group) == 0 {
			continue
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("%s (%d)", categoryLabel(c), len(group)),
			Value: joinLines(fissureLines(group), MaxEmbedFieldValue),
		})
	}
	return embed
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
