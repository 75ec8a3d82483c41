package urlparam

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
)

func newTestStore(t *testing.T, rawURL, key, fallback string, opts ...Option) (*Store, *Memory) {
	t.Helper()
	nav, err := NewMemory(rawURL)
	if err != nil {
		t.Fatalf("NewMemory(%q): %v", rawURL, err)
	}
	return NewStore(nav, key, fallback, opts...), nav
}

func TestStoreGetFallbackWhenAbsent(t *testing.T) {
	store, _ := newTestStore(t, "/page", "sort", "asc")

	if got := store.Get(); got != "asc" {
		t.Fatalf("Get: got %q, want asc", got)
	}
}

func TestStoreGetReadsLiveURL(t *testing.T) {
	store, nav := newTestStore(t, "/page?sort=desc&page=2", "sort", "asc")

	if got := store.Get(); got != "desc" {
		t.Fatalf("Get: got %q, want desc", got)
	}

	// Mutate the URL behind the store's back. Get must observe it because
	// the store keeps no private copy.
	u := nav.Location()
	u.RawQuery = "sort=rating"
	nav.Push(u)

	if got := store.Get(); got != "rating" {
		t.Fatalf("Get after external push: got %q, want rating", got)
	}
}

func TestStoreSetRoundTrip(t *testing.T) {
	store, nav := newTestStore(t, "/page?sort=desc&page=2", "sort", "asc")

	store.Set("price")

	if got := store.Get(); got != "price" {
		t.Fatalf("Get after Set: got %q, want price", got)
	}
	if got := nav.Location().Query().Get("page"); got != "2" {
		t.Fatalf("unrelated param: got page=%q, want 2", got)
	}
}

func TestStoreSetEmptyRemovesKey(t *testing.T) {
	store, nav := newTestStore(t, "/page?sort=desc", "sort", "asc")

	store.Set("")

	u := nav.Location()
	if u.RawQuery != "" {
		t.Fatalf("RawQuery: got %q, want empty", u.RawQuery)
	}
	if got := u.String(); got != "/page" {
		t.Fatalf("URL: got %q, want /page", got)
	}
	if got := store.Get(); got != "asc" {
		t.Fatalf("Get after removal: got %q, want fallback asc", got)
	}
}

func TestStoreSetIdempotent(t *testing.T) {
	store, nav := newTestStore(t, "/page", "sort", "")

	store.Set("desc")
	first := nav.Location().String()
	store.Set("desc")

	if got := nav.Location().String(); got != first {
		t.Fatalf("URL after repeated Set: got %q, want %q", got, first)
	}
	if got := store.Get(); got != "desc" {
		t.Fatalf("Get: got %q, want desc", got)
	}
}

func TestStoreIsolationBetweenKeys(t *testing.T) {
	nav, _ := NewMemory("/page?sort=desc&city=berlin")
	sort := NewStore(nav, "sort", "")
	city := NewStore(nav, "city", "")

	sort.Set("asc")

	if got := city.Get(); got != "berlin" {
		t.Fatalf("city after sort.Set: got %q, want berlin", got)
	}
	if got := sort.Get(); got != "asc" {
		t.Fatalf("sort: got %q, want asc", got)
	}
}

func TestStoreSetNotifiesSynchronously(t *testing.T) {
	store, _ := newTestStore(t, "/page", "sort", "asc")

	var observed []string
	cancel := store.Subscribe(func() {
		// The URL must already reflect the write when listeners run.
		observed = append(observed, store.Get())
	})
	defer cancel()

	store.Set("desc")

	if len(observed) != 1 || observed[0] != "desc" {
		t.Fatalf("observed during notification: got %v, want [desc]", observed)
	}
}

func TestStoreUnsubscribeStopsNotifications(t *testing.T) {
	store, _ := newTestStore(t, "/page", "sort", "asc")

	calls := 0
	cancel := store.Subscribe(func() { calls++ })

	store.Set("a")
	cancel()
	store.Set("b")

	if calls != 1 {
		t.Fatalf("calls: got %d, want 1", calls)
	}
}

func TestStoreMultipleSubscribersIndependent(t *testing.T) {
	nav, _ := NewMemory("/page?sort=desc")
	sort := NewStore(nav, "sort", "")
	city := NewStore(nav, "city", "")

	sortCalls, cityCalls := 0, 0
	cancelSort := sort.Subscribe(func() { sortCalls++ })
	city.Subscribe(func() { cityCalls++ })

	sort.Set("asc")
	if sortCalls != 1 || cityCalls != 1 {
		t.Fatalf("after first set: got sort=%d city=%d, want 1 1", sortCalls, cityCalls)
	}

	cancelSort()
	city.Set("berlin")
	if sortCalls != 1 || cityCalls != 2 {
		t.Fatalf("after second set: got sort=%d city=%d, want 1 2", sortCalls, cityCalls)
	}
}

func TestStoreReplaceMode(t *testing.T) {
	nav, _ := NewMemory("/page")
	store := NewStore(nav, "q", "", Replace)

	store.Set("go")
	store.Set("golang")

	if got := store.Get(); got != "golang" {
		t.Fatalf("Get: got %q, want golang", got)
	}
	// Replace mode must not have grown the history stack.
	if nav.Back() {
		t.Fatal("Back: got true, want false (no extra history entries)")
	}
}

func TestStorePushModeGrowsHistory(t *testing.T) {
	nav, _ := NewMemory("/page")
	store := NewStore(nav, "q", "")

	store.Set("go")

	if !nav.Back() {
		t.Fatal("Back: got false, want true")
	}
	if got := store.Get(); got != "" {
		t.Fatalf("Get after back: got %q, want empty fallback", got)
	}
	if !nav.Forward() {
		t.Fatal("Forward: got false, want true")
	}
	if got := store.Get(); got != "go" {
		t.Fatalf("Get after forward: got %q, want go", got)
	}
}

func TestStoreDebounceCoalescesWrites(t *testing.T) {
	clock := clockwork.NewFakeClock()
	nav, _ := NewMemory("/page")
	store := NewStore(nav, "q", "", Debounce(300*time.Millisecond), WithClock(clock))

	notifications := 0
	store.Subscribe(func() { notifications++ })

	store.Set("g")
	store.Set("go")
	store.Set("gol")

	if got := store.Get(); got != "" {
		t.Fatalf("Get before debounce fires: got %q, want empty", got)
	}

	clock.Advance(300 * time.Millisecond)

	// Only the final value reaches the URL, in a single navigation.
	waitFor(t, func() bool { return store.Get() == "gol" })
	if notifications != 1 {
		t.Fatalf("notifications: got %d, want 1", notifications)
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}
