package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/FissureBot_Go/internal/domain"
)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func TestStore_Integration(t *testing.T) {
	pool := setupTestPool(t)
	store := NewStore(pool)
	ctx := context.Background()

	t.Run("Subscriptions", func(t *testing.T) {
		steel := domain.FissureSteelPath
		dm := &domain.FissureSubscription{UserID: "u1", Kind: domain.NotifyDM, Target: "u1", Era: strPtr("Axi"), MaxTier: intPtr(4)}
		thread := &domain.FissureSubscription{UserID: "u1", Kind: domain.NotifyThread, Target: "t-9", Mission: strPtr("Survival"), Category: &steel}
		other := &domain.FissureSubscription{UserID: "u2", Kind: domain.NotifyDM, Target: "u2", Planet: strPtr("Void")}

		for _, sub := range []*domain.FissureSubscription{dm, thread, other} {
			require.NoError(t, store.CreateSubscription(ctx, sub))
			assert.NotEmpty(t, sub.ID)
			assert.False(t, sub.CreatedAt.IsZero())
		}

		dms, err := store.GetSubscriptions(ctx, domain.NotifyDM)
		require.NoError(t, err)
		require.Len(t, dms, 2)
		byID := map[string]domain.FissureSubscription{}
		for _, s := range dms {
			byID[s.ID] = s
		}
		require.Contains(t, byID, dm.ID)
		assert.Equal(t, "Axi", *byID[dm.ID].Era)
		assert.Equal(t, 4, *byID[dm.ID].MaxTier)
		assert.Nil(t, byID[dm.ID].Mission)

		threads, err := store.GetSubscriptions(ctx, domain.NotifyThread)
		require.NoError(t, err)
		require.Len(t, threads, 1)
		assert.Equal(t, domain.FissureSteelPath, *threads[0].Category)
		assert.Equal(t, "t-9", threads[0].Target)

		mine, err := store.GetUserSubscriptions(ctx, "u1")
		require.NoError(t, err)
		assert.Len(t, mine, 2)

		empty := &domain.FissureSubscription{UserID: "u3", Kind: domain.NotifyDM, Target: "u3"}
		assert.ErrorIs(t, store.CreateSubscription(ctx, empty), domain.ErrValidation)

		assert.ErrorIs(t, store.DeleteSubscription(ctx, "u2", dm.ID), domain.ErrSubscriptionAbsent, "users only delete their own")
		assert.ErrorIs(t, store.DeleteSubscription(ctx, "u1", "not-a-uuid"), domain.ErrSubscriptionAbsent)
		require.NoError(t, store.DeleteSubscription(ctx, "u1", dm.ID))

		n, err := store.DeleteUserSubscriptions(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		mine, err = store.GetUserSubscriptions(ctx, "u1")
		require.NoError(t, err)
		assert.Empty(t, mine)
	})

	t.Run("PriorityOverrides", func(t *testing.T) {
		sig := "Axi L4@Radiant"
		got, err := store.GetPriorityOverride(ctx, "u1", sig)
		require.NoError(t, err)
		assert.Nil(t, got)

		require.NoError(t, store.SavePriorityOverride(ctx, "u1", sig, map[string]int{"Forma Blueprint": 1}))
		require.NoError(t, store.SavePriorityOverride(ctx, "u1", sig, map[string]int{"Lex Prime Receiver": 1, "Forma Blueprint": 101}))

		got, err = store.GetPriorityOverride(ctx, "u1", sig)
		require.NoError(t, err)
		assert.Equal(t, map[string]int{"Lex Prime Receiver": 1, "Forma Blueprint": 101}, got)

		other, err := store.GetPriorityOverride(ctx, "u2", sig)
		require.NoError(t, err)
		assert.Nil(t, other, "overrides are per user")

		require.NoError(t, store.DeletePriorityOverride(ctx, "u1", sig))
		require.NoError(t, store.DeletePriorityOverride(ctx, "u1", sig))
		got, err = store.GetPriorityOverride(ctx, "u1", sig)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("SimConfig", func(t *testing.T) {
		got, err := store.GetSimConfig(ctx, "u1")
		require.NoError(t, err)
		assert.Nil(t, got)

		cfg := domain.DefaultSimConfig("u1")
		cfg.ShowTraceEff = true
		cfg.MinutesPerMission = 5.5
		require.NoError(t, store.SaveSimConfig(ctx, cfg))

		cfg.MinSetPrice = 12
		require.NoError(t, store.SaveSimConfig(ctx, cfg))

		got, err = store.GetSimConfig(ctx, "u1")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, cfg, *got)
	})
}
