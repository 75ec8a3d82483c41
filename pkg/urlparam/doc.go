// Package urlparam synchronizes values with URL query parameters.
//
// The URL is the single source of truth: a Store never caches the value it
// tracks, every read re-parses the live query string. Writes go through a
// Navigator, which mutates the URL and then notifies every subscriber over
// the same path used for back/forward traversal, so a read issued after a
// write always observes the written value.
//
// # Core Types
//
// Store tracks a single string parameter:
//
//	nav, _ := urlparam.NewMemory("/deals?sort=desc")
//	sort := urlparam.NewStore(nav, "sort", "asc")
//	sort.Get()       // "desc"
//	sort.Set("asc")  // URL becomes /deals?sort=asc, subscribers notified
//	sort.Set("")     // parameter removed from the URL entirely
//
// Param[T] adds typed access on top of a Store:
//
//	page := urlparam.New(nav, "page", 1)
//	page.Set(2)   // URL becomes /deals?page=2
//	page.Get()    // 2
//
// Subscriptions fire in registration order and each returned cancel func
// removes only its own registration:
//
//	cancel := sort.Subscribe(func() { render() })
//	defer cancel()
//
// Navigator implementations: Memory (in-process history stack, used in tests
// and server-side sessions) and live.Session (browser-backed, see pkg/live).
package urlparam
