package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/avelar-dev/itinero/pkg/domain"
	"github.com/avelar-dev/itinero/pkg/ports"
)

// StateStoreContractTest is a reusable suite that verifies an adapter
// complies with ports.StateStore.
func StateStoreContractTest(t *testing.T, store ports.StateStore) {
	t.Helper()
	ctx := context.Background()

	dates := domain.DateRange{
		Start: time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 11, 6, 0, 0, 0, 0, time.UTC),
	}

	t.Run("SaveAndLoad", func(t *testing.T) {
		state := domain.NewTripState("contract-1", "Goa", "Mumbai", dates, 2, domain.TierBudget)
		state.WeatherScore = 72
		state.WeatherStatus = domain.WeatherFavorable
		state.AppendHistory(domain.HistoryEntry{Time: time.Now().UTC(), Kind: domain.HistoryReplan, Directive: domain.DirectiveChangeHotel})

		if err := store.Save(ctx, state.ID, state); err != nil {
			t.Fatalf("save failed: %v", err)
		}

		loaded, err := store.Load(ctx, state.ID)
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}
		if loaded.Destination != "Goa" || loaded.WeatherScore != 72 {
			t.Errorf("loaded state mismatch: %+v", loaded)
		}
		if len(loaded.History) != 1 {
			t.Errorf("history not round-tripped, got %d entries", len(loaded.History))
		}
	})

	t.Run("LoadIsolation", func(t *testing.T) {
		state := domain.NewTripState("contract-2", "Manali", "Delhi", dates, 4, domain.TierMidRange)
		if err := store.Save(ctx, state.ID, state); err != nil {
			t.Fatalf("save failed: %v", err)
		}

		first, err := store.Load(ctx, state.ID)
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}
		first.Destination = "mutated"

		second, err := store.Load(ctx, state.ID)
		if err != nil {
			t.Fatalf("second load failed: %v", err)
		}
		if second.Destination != "Manali" {
			t.Error("store returned shared state: caller mutation leaked")
		}
	})

	t.Run("LoadNotFound", func(t *testing.T) {
		_, err := store.Load(ctx, "never-created")
		if !errors.Is(err, domain.ErrSessionNotFound) {
			t.Errorf("expected ErrSessionNotFound, got %v", err)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		state := domain.NewTripState("contract-3", "Jaipur", "Delhi", dates, 1, domain.TierBackpacker)
		if err := store.Save(ctx, state.ID, state); err != nil {
			t.Fatalf("save failed: %v", err)
		}
		if err := store.Delete(ctx, state.ID); err != nil {
			t.Fatalf("delete failed: %v", err)
		}
		if _, err := store.Load(ctx, state.ID); !errors.Is(err, domain.ErrSessionNotFound) {
			t.Errorf("expected ErrSessionNotFound after delete, got %v", err)
		}
	})
}
