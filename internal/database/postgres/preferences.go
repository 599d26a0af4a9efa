package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/FissureBot_Go/internal/domain"
	"github.com/osse101/FissureBot_Go/internal/repository"
)

// PreferenceRepository stores per-user priority overrides and display config
type PreferenceRepository struct {
	db *pgxpool.Pool
}

// NewPreferenceRepository creates a new PreferenceRepository
func NewPreferenceRepository(db *pgxpool.Pool) repository.Preferences {
	return &PreferenceRepository{db: db}
}

// GetPriorityOverride returns nil, nil when the user saved nothing for signature
func (r *PreferenceRepository) GetPriorityOverride(ctx context.Context, userID, signature string) (map[string]int, error) {
	var raw []byte
	err := r.db.QueryRow(ctx, `
		SELECT ranks FROM relic_priority_overrides
		WHERE user_id = $1 AND pool_signature = $2`, userID, signature).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetOverride, err)
	}

	var ranks map[string]int
	if err := json.Unmarshal(raw, &ranks); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToDecodeOverride, err)
	}
	return ranks, nil
}

// SavePriorityOverride replaces the user's override for signature
func (r *PreferenceRepository) SavePriorityOverride(ctx context.Context, userID, signature string, ranks map[string]int) error {
	raw, err := json.Marshal(ranks)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToEncodeOverride, err)
	}
	_, err = r.db.Exec(ctx, `
		INSERT INTO relic_priority_overrides (user_id, pool_signature, ranks, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id, pool_signature)
		DO UPDATE SET ranks = EXCLUDED.ranks, updated_at = NOW()`, userID, signature, raw)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSaveOverride, err)
	}
	return nil
}

// DeletePriorityOverride is a no-op when nothing is saved
func (r *PreferenceRepository) DeletePriorityOverride(ctx context.Context, userID, signature string) error {
	_, err := r.db.Exec(ctx, `
		DELETE FROM relic_priority_overrides WHERE user_id = $1 AND pool_signature = $2`, userID, signature)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToDeleteOverride, err)
	}
	return nil
}

// GetSimConfig returns nil, nil for a user with no stored config
func (r *PreferenceRepository) GetSimConfig(ctx context.Context, userID string) (*domain.SimConfig, error) {
	cfg := domain.SimConfig{UserID: userID}
	err := r.db.QueryRow(ctx, `
		SELECT show_plat_per_hour, show_ducat_per_hour, show_per_cycle, show_per_run,
		       show_traces, show_trace_efficiency, verbose, minutes_per_mission, min_set_price
		FROM user_sim_configs WHERE user_id = $1`, userID).Scan(
		&cfg.ShowPlatPerHour, &cfg.ShowDucatPerHour, &cfg.ShowPerCycle, &cfg.ShowPerRun,
		&cfg.ShowTraces, &cfg.ShowTraceEff, &cfg.Verbose, &cfg.MinutesPerMission, &cfg.MinSetPrice)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetSimConfig, err)
	}
	return &cfg, nil
}

// SaveSimConfig upserts the whole config bag
func (r *PreferenceRepository) SaveSimConfig(ctx context.Context, cfg domain.SimConfig) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO user_sim_configs (user_id, show_plat_per_hour, show_ducat_per_hour, show_per_cycle,
			show_per_run, show_traces, show_trace_efficiency, verbose, minutes_per_mission, min_set_price, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			show_plat_per_hour = EXCLUDED.show_plat_per_hour,
			show_ducat_per_hour = EXCLUDED.show_ducat_per_hour,
			show_per_cycle = EXCLUDED.show_per_cycle,
			show_per_run = EXCLUDED.show_per_run,
			show_traces = EXCLUDED.show_traces,
			show_trace_efficiency = EXCLUDED.show_trace_efficiency,
			verbose = EXCLUDED.verbose,
			minutes_per_mission = EXCLUDED.minutes_per_mission,
			min_set_price = EXCLUDED.min_set_price,
			updated_at = NOW()`,
		cfg.UserID, cfg.ShowPlatPerHour, cfg.ShowDucatPerHour, cfg.ShowPerCycle,
		cfg.ShowPerRun, cfg.ShowTraces, cfg.ShowTraceEff, cfg.Verbose, cfg.MinutesPerMission, cfg.MinSetPrice)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSaveSimConfig, err)
	}
	return nil
}
