package discord

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/osse101/FissureBot_Go/internal/domain"
	"github.com/osse101/FissureBot_Go/internal/simulation"
)

// RelicIndex lists known relics for autocomplete.
type RelicIndex interface {
	RelicsByEra(era domain.Era) []domain.RelicID
}

// PingCommand returns the ping command definition and handler
func PingCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        CmdPing,
		Description: "Check if the bot is alive",
	}
	handler := func(s Session, i *discordgo.InteractionCreate) {
		respondText(s, i, MsgPong, false)
	}
	return cmd, handler
}

func styleChoices() []*discordgo.ApplicationCommandOptionChoice {
	out := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(domain.Styles))
	for _, st := range domain.Styles {
		out = append(out, &discordgo.ApplicationCommandOptionChoice{Name: string(st), Value: string(st)})
	}
	return out
}

func refinementChoices() []*discordgo.ApplicationCommandOptionChoice {
	out := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(domain.Refinements))
	for _, r := range domain.Refinements {
		out = append(out, &discordgo.ApplicationCommandOptionChoice{Name: string(r), Value: string(r)})
	}
	return out
}

func modeChoices() []*discordgo.ApplicationCommandOptionChoice {
	title := cases.Title(language.English)
	modes := []domain.PriorityMode{domain.PriorityAuto, domain.PriorityForcePlat, domain.PriorityForceDucat}
	out := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(modes))
	for _, m := range modes {
		out = append(out, &discordgo.ApplicationCommandOptionChoice{Name: title.String(string(m)), Value: string(m)})
	}
	return out
}

func relicsOption(description string) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:         discordgo.ApplicationCommandOptionString,
		Name:         OptRelics,
		Description:  description,
		Required:     true,
		Autocomplete: true,
	}
}

func refinementOption(name, description string) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        name,
		Description: description,
		Choices:     refinementChoices(),
	}
}

func priorityOptions() []*discordgo.ApplicationCommandOption {
	minPrice := 0.0
	return []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        OptMode,
			Description: "Drop priority mode (default: auto)",
			Choices:     modeChoices(),
		},
		{
			Type:        discordgo.ApplicationCommandOptionNumber,
			Name:        OptMinSetPrice,
			Description: "Sets worth less than this are ranked by ducats",
			MinValue:    &minPrice,
		},
	}
}

// SimulateCommand returns the /simulate definition and handler
func SimulateCommand(svc simulation.Service) (*discordgo.ApplicationCommand, CommandHandler) {
	minCycles := float64(simulation.MinCycles)
	cmd := &discordgo.ApplicationCommand{
		Name:        CmdSimulate,
		Description: "Simulate opening relics and report what you would keep",
		Options: append([]*discordgo.ApplicationCommandOption{
			relicsOption("Primary relics, comma separated (e.g. Axi L4, Neo V8)"),
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        OptStyle,
				Description: "Run style",
				Required:    true,
				Choices:     styleChoices(),
			},
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        OptCycles,
				Description: "Number of cycles to simulate",
				Required:    true,
				MinValue:    &minCycles,
				MaxValue:    float64(simulation.MaxCycles),
			},
			refinementOption(OptRefinement, "Primary refinement (default: Intact)"),
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        OptOffcycle,
				Description: "Offcycle pools separated by ; with relics separated by ,",
			},
			refinementOption(OptOffcycleRefinement, "Refinement of every offcycle pool (default: Intact)"),
		}, append(priorityOptions(),
			&discordgo.ApplicationCommandOption{
				Type:        discordgo.ApplicationCommandOptionBoolean,
				Name:        OptVerbose,
				Description: "Show the first reward screens",
			},
			&discordgo.ApplicationCommandOption{
				Type:        discordgo.ApplicationCommandOptionBoolean,
				Name:        OptMissing,
				Description: "List drops that were never kept",
			},
		)...),
	}

	handler := func(s Session, i *discordgo.InteractionCreate) {
		handleEmbedResponse(s, i, func(ctx context.Context, user *discordgo.User) (*discordgo.MessageEmbed, error) {
			opts := getOptions(i)
			req := simulation.Request{
				UserID:         user.ID,
				Primary:        parsePool(opts.str(OptRelics), opts.str(OptRefinement)),
				Style:          opts.str(OptStyle),
				Cycles:         opts.integer(OptCycles, 0),
				Offcycle:       parsePools(opts.str(OptOffcycle), opts.str(OptOffcycleRefinement)),
				Mode:           opts.str(OptMode),
				MinSetPrice:    opts.floatPtr(OptMinSetPrice),
				IncludeMissing: opts.boolean(OptMissing),
				Verbose:        opts.boolPtr(OptVerbose),
			}
			run, err := svc.Simulate(ctx, req)
			if err != nil {
				return nil, err
			}
			return simulationEmbed(run), nil
		})
	}
	return cmd, handler
}

// simulationEmbed renders a finished run.
func simulationEmbed(run *simulation.Run) *discordgo.MessageEmbed {
	title := cases.Title(language.English)
	header := fmt.Sprintf(FmtSimHeader, run.Style, run.Cycles, run.Runs, title.String(string(run.Mode)))
	if run.Overridden {
		header += FmtSimOverridden
	}

	lines := []string{header, ""}
	var extra []string
	if agg := run.Aggregation; agg != nil {
		if len(agg.Lines) == 0 {
			lines = append(lines, MsgNoRewards)
		}
		lines = append(lines, agg.LineStrings()...)
		extra = agg.Extra
	}

	embed := createEmbed(TitleSimulation, joinLines(lines, MaxEmbedDescription), ColorSuccess)
	if len(extra) > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  FieldTotals,
			Value: joinLines(extra, MaxEmbedFieldValue),
		})
	}
	if run.Result != nil && len(run.Result.Screens) > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  FieldScreens,
			Value: joinLines(simulation.FormatScreens(run.Result.Screens), MaxEmbedFieldValue),
		})
	}
	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:   FieldSeed,
		Value:  strconv.FormatUint(run.Seed, 10),
		Inline: true,
	})
	return embed
}

// PriorityCommand returns the /priority definition and handler
func PriorityCommand(svc simulation.Service) (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        CmdPriority,
		Description: "Show the order drops would be kept in",
		Options: append([]*discordgo.ApplicationCommandOption{
			relicsOption("Relics, comma separated"),
			refinementOption(OptRefinement, "Refinement (default: Intact)"),
		}, priorityOptions()...),
	}

	handler := func(s Session, i *discordgo.InteractionCreate) {
		handleEmbedResponse(s, i, func(ctx context.Context, user *discordgo.User) (*discordgo.MessageEmbed, error) {
			opts := getOptions(i)
			res, err := svc.ResolvePriority(ctx, simulation.PriorityRequest{
				UserID:      user.ID,
				Pools:       []simulation.PoolSpec{parsePool(opts.str(OptRelics), opts.str(OptRefinement))},
				Mode:        opts.str(OptMode),
				MinSetPrice: opts.floatPtr(OptMinSetPrice),
			})
			if err != nil {
				return nil, err
			}
			return priorityEmbed(res), nil
		})
	}
	return cmd, handler
}

func priorityEmbed(res *simulation.PriorityResult) *discordgo.MessageEmbed {
	lines := make([]string, 0, len(res.Drops))
	for _, d := range res.Drops {
		lines = append(lines, fmt.Sprintf(FmtPriorityLine, d.Rank, d.Name, d.Band))
	}
	return createEmbed(TitlePriority, joinLines(lines, MaxEmbedDescription), ColorInfo)
}

// SimConfigCommand returns the /sim-config definition and handler. With no
// options it shows the saved settings.
func SimConfigCommand(svc simulation.Service) (*discordgo.ApplicationCommand, CommandHandler) {
	minMinutes := 0.5
	minPrice := 0.0
	boolOpt := func(name, desc string) *discordgo.ApplicationCommandOption {
		return &discordgo.ApplicationCommandOption{Type: discordgo.ApplicationCommandOptionBoolean, Name: name, Description: desc}
	}
	cmd := &discordgo.ApplicationCommand{
		Name:        CmdSimConfig,
		Description: "Show or change your simulation output settings",
		Options: []*discordgo.ApplicationCommandOption{
			boolOpt(OptShowPlatPerHour, "Show platinum per hour"),
			boolOpt(OptShowDucatPerHour, "Show ducats per hour"),
			boolOpt(OptShowPerCycle, "Show per cycle averages"),
			boolOpt(OptShowPerRun, "Show per run averages"),
			boolOpt(OptShowTraces, "Show void traces spent"),
			boolOpt(OptShowTraceEff, "Show traces per platinum"),
			boolOpt(OptVerbose, "Show reward screens by default"),
			{
				Type:        discordgo.ApplicationCommandOptionNumber,
				Name:        OptMinutesPerMission,
				Description: "Minutes one mission takes you",
				MinValue:    &minMinutes,
			},
			{
				Type:        discordgo.ApplicationCommandOptionNumber,
				Name:        OptMinSetPrice,
				Description: "Default minimum set price",
				MinValue:    &minPrice,
			},
		},
	}

	handler := func(s Session, i *discordgo.InteractionCreate) {
		handleEmbedResponse(s, i, func(ctx context.Context, user *discordgo.User) (*discordgo.MessageEmbed, error) {
			cfg, err := svc.GetSimConfig(ctx, user.ID)
			if err != nil {
				return nil, err
			}
			opts := getOptions(i)
			if len(opts) > 0 {
				applySimConfig(&cfg, opts)
				cfg.UserID = user.ID
				if err := svc.SaveSimConfig(ctx, cfg); err != nil {
					return nil, err
				}
			}
			return simConfigEmbed(cfg), nil
		})
	}
	return cmd, handler
}

func applySimConfig(cfg *domain.SimConfig, opts options) {
	set := func(dst *bool, name string) {
		if v := opts.boolPtr(name); v != nil {
			*dst = *v
		}
	}
	set(&cfg.ShowPlatPerHour, OptShowPlatPerHour)
	set(&cfg.ShowDucatPerHour, OptShowDucatPerHour)
	set(&cfg.ShowPerCycle, OptShowPerCycle)
	set(&cfg.ShowPerRun, OptShowPerRun)
	set(&cfg.ShowTraces, OptShowTraces)
	set(&cfg.ShowTraceEff, OptShowTraceEff)
	set(&cfg.Verbose, OptVerbose)
	if v := opts.floatPtr(OptMinutesPerMission); v != nil {
		cfg.MinutesPerMission = *v
	}
	if v := opts.floatPtr(OptMinSetPrice); v != nil {
		cfg.MinSetPrice = *v
	}
}

func simConfigEmbed(cfg domain.SimConfig) *discordgo.MessageEmbed {
	onOff := func(b bool) string {
		if b {
			return "on"
		}
		return "off"
	}
	lines := []string{
		fmt.Sprintf("%s: %s", OptShowPlatPerHour, onOff(cfg.ShowPlatPerHour)),
		fmt.Sprintf("%s: %s", OptShowDucatPerHour, onOff(cfg.ShowDucatPerHour)),
		fmt.Sprintf("%s: %s", OptShowPerCycle, onOff(cfg.ShowPerCycle)),
		fmt.Sprintf("%s: %s", OptShowPerRun, onOff(cfg.ShowPerRun)),
		fmt.Sprintf("%s: %s", OptShowTraces, onOff(cfg.ShowTraces)),
		fmt.Sprintf("%s: %s", OptShowTraceEff, onOff(cfg.ShowTraceEff)),
		fmt.Sprintf("%s: %s", OptVerbose, onOff(cfg.Verbose)),
		fmt.Sprintf("%s: %g", OptMinutesPerMission, cfg.MinutesPerMission),
		fmt.Sprintf("%s: %g", OptMinSetPrice, cfg.MinSetPrice),
	}
	return createEmbed(TitleSimConfig, strings.Join(lines, "\n"), ColorInfo)
}

// parsePool splits "Axi L4, Neo V8" into one pool spec.
func parsePool(relics, refinement string) simulation.PoolSpec {
	spec := simulation.PoolSpec{Refinement: refinement}
	for _, r := range strings.Split(relics, RelicSeparator) {
		if r = strings.TrimSpace(r); r != "" {
			spec.Relics = append(spec.Relics, r)
		}
	}
	return spec
}

// parsePools splits "Axi L4, Neo V8; Lith G1" into pool specs sharing one
// refinement. Empty pools are skipped.
func parsePools(s, refinement string) []simulation.PoolSpec {
	var out []simulation.PoolSpec
	for _, part := range strings.Split(s, PoolSeparator) {
		if p := parsePool(part, refinement); len(p.Relics) > 0 {
			out = append(out, p)
		}
	}
	return out
}

// RelicAutocomplete completes the last relic of a comma separated list.
func RelicAutocomplete(index RelicIndex) CommandHandler {
	return func(s Session, i *discordgo.InteractionCreate) {
		var focused string
		for _, o := range i.ApplicationCommandData().Options {
			if o.Focused {
				focused = o.StringValue()
				break
			}
		}
		respondAutocomplete(s, i, relicChoices(index, focused))
	}
}

func relicChoices(index RelicIndex, typed string) []*discordgo.ApplicationCommandOptionChoice {
	head, partial := "", typed
	if idx := strings.LastIndex(typed, RelicSeparator); idx >= 0 {
		head = strings.TrimSpace(typed[:idx]) + RelicSeparator + " "
		partial = typed[idx+1:]
	}
	partial = strings.ToLower(strings.TrimSpace(partial))

	var choices []*discordgo.ApplicationCommandOptionChoice
	if index == nil {
		return choices
	}
	for _, era := range domain.Eras {
		for _, id := range index.RelicsByEra(era) {
			name := id.String()
			if partial != "" && !strings.HasPrefix(strings.ToLower(name), partial) {
				continue
			}
			choices = append(choices, &discordgo.ApplicationCommandOptionChoice{Name: head + name, Value: head + name})
			if len(choices) >= MaxAutocompleteItems {
				return choices
			}
		}
	}
	return choices
}

func respondAutocomplete(s Session, i *discordgo.InteractionCreate, choices []*discordgo.ApplicationCommandOptionChoice) {
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionApplicationCommandAutocompleteResult,
		Data: &discordgo.InteractionResponseData{Choices: choices},
	}); err != nil {
		slog.Error(LogMsgRespondFailed, "error", err)
	}
}
