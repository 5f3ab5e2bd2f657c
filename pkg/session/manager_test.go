package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/avelar-dev/itinero/pkg/adapters/memory"
	"github.com/avelar-dev/itinero/pkg/domain"
	"github.com/avelar-dev/itinero/pkg/ports"
)

func testState(id string) *domain.TripState {
	start := time.Date(2026, 12, 10, 0, 0, 0, 0, time.UTC)
	dates := domain.DateRange{Start: start, End: start.AddDate(0, 0, 2)}
	return domain.NewTripState(id, "goa", "mumbai", dates, 2, domain.TierBudget)
}

func TestManagerSaveLoadDelete(t *testing.T) {
	m := NewManager(memory.NewStore())
	ctx := context.Background()

	if err := m.Save(ctx, "s1", testState("s1")); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := m.Load(ctx, "s1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.ID != "s1" || loaded.Destination != "goa" {
		t.Errorf("loaded = %+v", loaded)
	}

	if err := m.Delete(ctx, "s1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := m.Load(ctx, "s1"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("after delete: err = %v, want ErrSessionNotFound", err)
	}
}

func TestManagerList(t *testing.T) {
	m := NewManager(memory.NewStore())
	ctx := context.Background()
	for _, id := range []string{"a", "b"} {
		if err := m.Save(ctx, id, testState(id)); err != nil {
			t.Fatalf("Save %s: %v", id, err)
		}
	}
	ids, err := m.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(ids) != 2 {
		t.Errorf("List = %v, want two sessions", ids)
	}
}

func TestManagerUpdateSerializesMutations(t *testing.T) {
	m := NewManager(memory.NewStore())
	ctx := context.Background()
	if err := m.Save(ctx, "s1", testState("s1")); err != nil {
		t.Fatalf("Save: %v", err)
	}

	const workers = 16
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			_, err := m.Update(ctx, "s1", func(_ context.Context, st *domain.TripState) error {
				st.WeatherEvaluations++
				return nil
			})
			if err != nil {
				t.Errorf("Update: %v", err)
			}
		}()
	}
	wg.Wait()

	final, err := m.Load(ctx, "s1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if final.WeatherEvaluations != workers {
		t.Errorf("evaluations = %d, want %d (lost update)", final.WeatherEvaluations, workers)
	}
}

func TestManagerUpdateErrorSkipsSave(t *testing.T) {
	m := NewManager(memory.NewStore())
	ctx := context.Background()
	if err := m.Save(ctx, "s1", testState("s1")); err != nil {
		t.Fatalf("Save: %v", err)
	}

	sentinel := errors.New("no thanks")
	_, err := m.Update(ctx, "s1", func(_ context.Context, st *domain.TripState) error {
		st.Destination = "mars"
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("err = %v, want sentinel", err)
	}

	loaded, err := m.Load(ctx, "s1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Destination != "goa" {
		t.Errorf("destination = %q, failed update must not persist", loaded.Destination)
	}
}

// recordingLocker counts acquisitions and releases.
type recordingLocker struct {
	mu       sync.Mutex
	locked   int
	unlocked int
	fail     bool
}

func (l *recordingLocker) Lock(_ context.Context, _ string, _ time.Duration) (ports.UnlockFunc, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.fail {
		return nil, fmt.Errorf("lock held elsewhere")
	}
	l.locked++
	return func(context.Context) error {
		l.mu.Lock()
		defer l.mu.Unlock()
		l.unlocked++
		return nil
	}, nil
}

func TestManagerUsesDistributedLocker(t *testing.T) {
	locker := &recordingLocker{}
	m := NewManager(memory.NewStore(), WithLocker(locker), WithLockTTL(time.Second))
	ctx := context.Background()

	if err := m.Save(ctx, "s1", testState("s1")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if locker.locked != 1 || locker.unlocked != 1 {
		t.Errorf("locker saw %d/%d lock/unlock, want 1/1", locker.locked, locker.unlocked)
	}

	locker.fail = true
	if err := m.Save(ctx, "s1", testState("s1")); err == nil {
		t.Fatalf("Save succeeded while the distributed lock is held elsewhere")
	}
}
