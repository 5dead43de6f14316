package theme

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"
)

type failingStore struct {
	loadErr error
	saveErr error
}

func (s failingStore) Load(context.Context) (Theme, bool, error) { return "", false, s.loadErr }
func (s failingStore) Save(context.Context, Theme) error         { return s.saveErr }

func TestThemeDefaultsWhenNothingPersisted(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	attr := NewRootAttribute()
	c := New(NewMemoryStore(), WithApplier(attr))

	if c.Initialized() {
		t.Fatal("controller should start uninitialized")
	}
	if got := c.Theme(ctx); got != DefaultTheme {
		t.Fatalf("Theme() = %q, want default %q", got, DefaultTheme)
	}
	if !c.Initialized() {
		t.Fatal("expected first read to initialize the controller")
	}
	if attr.Value() != string(DefaultTheme) {
		t.Fatalf("expected attribute %q, got %q", DefaultTheme, attr.Value())
	}
}

func TestThemeLoadsPersistedPreference(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewMemoryStore()
	_ = store.Save(ctx, Light)
	attr := NewRootAttribute()

	c := New(store, WithApplier(attr))
	if got := c.Theme(ctx); got != Light {
		t.Fatalf("Theme() = %q, want %q", got, Light)
	}
	if attr.Value() != "light" {
		t.Fatalf("expected persisted theme to be applied, got %q", attr.Value())
	}
}

func TestThemeFallsBackOnStoreProblems(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	broken := New(failingStore{loadErr: errors.New("disk on fire")}, WithFallback(Dark))
	if got := broken.Theme(ctx); got != Dark {
		t.Fatalf("expected fallback on load error, got %q", got)
	}

	store := NewMemoryStore()
	_ = store.Save(ctx, Theme("sepia"))
	unknown := New(store, WithFallback(Light))
	if got := unknown.Theme(ctx); got != Light {
		t.Fatalf("expected fallback for unknown stored value, got %q", got)
	}

	ignored := New(nil, WithFallback(Theme("neon")))
	if got := ignored.Theme(ctx); got != DefaultTheme {
		t.Fatalf("invalid fallback should be ignored, got %q", got)
	}
}

func TestSetThemeRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	for _, want := range All {
		want := want
		t.Run(string(want), func(t *testing.T) {
			t.Parallel()
			store := NewMemoryStore()
			c := New(store)
			if err := c.SetTheme(ctx, want); err != nil {
				t.Fatalf("SetTheme(%q) returned error: %v", want, err)
			}
			if got := c.Theme(ctx); got != want {
				t.Fatalf("Theme() = %q, want %q", got, want)
			}
			if stored, ok, _ := store.Load(ctx); !ok || stored != want {
				t.Fatalf("expected %q persisted, got %q (ok=%v)", want, stored, ok)
			}
		})
	}
}

func TestSetThemeDarkExample(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	attr := NewRootAttribute()
	c := New(NewMemoryStore(), WithApplier(attr))

	var received []Theme
	c.Listen(func(t Theme) { received = append(received, t) })

	if err := c.SetTheme(ctx, Dark); err != nil {
		t.Fatalf("SetTheme returned error: %v", err)
	}
	if attr.Value() != "dark" {
		t.Fatalf("expected data-theme dark, got %q", attr.Value())
	}
	if !reflect.DeepEqual(received, []Theme{Dark}) {
		t.Fatalf("expected subscriber to receive [dark], got %v", received)
	}
	if got := c.Theme(ctx); got != Dark {
		t.Fatalf("Theme() = %q, want dark", got)
	}
}

func TestSetThemeRejectsInvalidValue(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := New(NewMemoryStore())
	if err := c.SetTheme(ctx, Light); err != nil {
		t.Fatalf("SetTheme returned error: %v", err)
	}

	notified := false
	c.Listen(func(Theme) { notified = true })

	err := c.SetTheme(ctx, Theme("solarized"))
	if !errors.Is(err, ErrInvalidTheme) {
		t.Fatalf("expected ErrInvalidTheme, got %v", err)
	}
	var invalid *InvalidThemeError
	if !errors.As(err, &invalid) || invalid.Value != "solarized" {
		t.Fatalf("expected InvalidThemeError carrying the value, got %v", err)
	}
	if got := c.Theme(ctx); got != Light {
		t.Fatalf("theme changed after invalid set: %q", got)
	}
	if notified {
		t.Fatal("subscriber must not be notified on invalid set")
	}
}

func TestSetThemeStoreFailureLeavesStateUntouched(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	saveErr := errors.New("read-only")
	attr := NewRootAttribute()
	c := New(failingStore{saveErr: saveErr}, WithFallback(Light), WithApplier(attr))

	if err := c.SetTheme(ctx, Dark); !errors.Is(err, saveErr) {
		t.Fatalf("expected store error, got %v", err)
	}
	if got := c.Theme(ctx); got != Light {
		t.Fatalf("expected fallback theme to remain, got %q", got)
	}
	if attr.Value() != "light" {
		t.Fatalf("presentation should not change on failure, got %q", attr.Value())
	}
}

func TestSubscribersNotifiedInRegistrationOrderExactlyOnce(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := New(nil)

	var calls []string
	c.Listen(func(t Theme) { calls = append(calls, "first:"+string(t)) })
	unsubscribe := c.Listen(func(t Theme) { calls = append(calls, "second:"+string(t)) })
	c.Listen(func(t Theme) { calls = append(calls, "third:"+string(t)) })

	unsubscribe()
	unsubscribe()

	if err := c.SetTheme(ctx, Light); err != nil {
		t.Fatalf("SetTheme returned error: %v", err)
	}

	want := []string{"first:light", "third:light"}
	if !reflect.DeepEqual(calls, want) {
		t.Fatalf("calls = %v, want %v", calls, want)
	}
	if c.Subscribers() != 2 {
		t.Fatalf("expected 2 subscribers, got %d", c.Subscribers())
	}
}

func TestSubscriberRemovedDuringNotificationIsSkipped(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := New(nil)

	var laterCalled bool
	var removeLater Unsubscribe
	c.Listen(func(Theme) { removeLater() })
	removeLater = c.Listen(func(Theme) { laterCalled = true })

	if err := c.SetTheme(ctx, Dark); err != nil {
		t.Fatalf("SetTheme returned error: %v", err)
	}
	if laterCalled {
		t.Fatal("subscriber removed before its turn should not be invoked")
	}
}

func TestNestedSetThemeIsProcessedImmediately(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := New(nil)

	var seen []Theme
	c.Listen(func(t Theme) {
		seen = append(seen, t)
		if t == Dark {
			if err := c.SetTheme(ctx, Light); err != nil {
				panic(err)
			}
		}
	})

	if err := c.SetTheme(ctx, Dark); err != nil {
		t.Fatalf("SetTheme returned error: %v", err)
	}
	if !reflect.DeepEqual(seen, []Theme{Dark, Light}) {
		t.Fatalf("seen = %v, want [dark light]", seen)
	}
	if got := c.Theme(ctx); got != Light {
		t.Fatalf("nested write should win, got %q", got)
	}
}

func TestListenNilReturnsNoop(t *testing.T) {
	t.Parallel()

	c := New(nil)
	c.Listen(nil)()
	if c.Subscribers() != 0 {
		t.Fatalf("expected no subscribers, got %d", c.Subscribers())
	}
}

func TestReloadNotifiesOnlyOnChange(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewMemoryStore()
	c := New(store)
	if err := c.SetTheme(ctx, Light); err != nil {
		t.Fatalf("SetTheme returned error: %v", err)
	}

	var calls int
	c.Listen(func(Theme) { calls++ })

	if _, err := c.Reload(ctx); err != nil {
		t.Fatalf("Reload returned error: %v", err)
	}
	if calls != 0 {
		t.Fatalf("unchanged reload should not notify, got %d calls", calls)
	}

	_ = store.Save(ctx, Dark)
	got, err := c.Reload(ctx)
	if err != nil {
		t.Fatalf("Reload returned error: %v", err)
	}
	if got != Dark || c.Theme(ctx) != Dark || calls != 1 {
		t.Fatalf("expected reload to dark with one notification, got %q and %d calls", got, calls)
	}

	_ = store.Save(ctx, Theme("plaid"))
	if _, err := c.Reload(ctx); !errors.Is(err, ErrInvalidTheme) {
		t.Fatalf("expected ErrInvalidTheme for bad stored value, got %v", err)
	}
	if c.Theme(ctx) != Dark {
		t.Fatal("invalid reload must not change the theme")
	}
}

// lateStore commits a dark write immediately but reports it late, widening
// the window between persisting and updating the active theme.
type lateStore struct {
	*MemoryStore
	committed chan struct{}
	once      sync.Once
}

func (s *lateStore) Save(ctx context.Context, t Theme) error {
	if err := s.MemoryStore.Save(ctx, t); err != nil {
		return err
	}
	if t == Dark {
		s.once.Do(func() { close(s.committed) })
		time.Sleep(50 * time.Millisecond)
	}
	return nil
}

func TestConcurrentSetThemeKeepsActiveAndPersistedInSync(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := &lateStore{MemoryStore: NewMemoryStore(), committed: make(chan struct{})}
	attr := NewRootAttribute()
	c := New(store, WithApplier(attr))

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_ = c.SetTheme(ctx, Dark)
	}()
	go func() {
		defer wg.Done()
		<-store.committed
		_ = c.SetTheme(ctx, Light)
	}()
	wg.Wait()

	persisted, _, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if active := c.Theme(ctx); active != persisted {
		t.Fatalf("active theme %q diverged from persisted %q", active, persisted)
	}
	if attr.Value() != string(persisted) {
		t.Fatalf("applied attribute %q diverged from persisted %q", attr.Value(), persisted)
	}
}

func TestReloadDuringSetThemeNotifiesOnce(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := &lateStore{MemoryStore: NewMemoryStore(), committed: make(chan struct{})}
	c := New(store)
	if err := c.SetTheme(ctx, Light); err != nil {
		t.Fatalf("SetTheme returned error: %v", err)
	}

	var mu sync.Mutex
	var got []Theme
	c.Listen(func(th Theme) {
		mu.Lock()
		got = append(got, th)
		mu.Unlock()
	})

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_ = c.SetTheme(ctx, Dark)
	}()
	go func() {
		defer wg.Done()
		<-store.committed
		_, _ = c.Reload(ctx)
	}()
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	if !reflect.DeepEqual(got, []Theme{Dark}) {
		t.Fatalf("expected a single dark notification, got %v", got)
	}
}
