package urlparam

// Param is a typed view over a Store. The URL remains the source of truth:
// Get deserializes the live query-string value on every call and falls back
// to the configured default when the key is absent or unparsable.
type Param[T any] struct {
	store    *Store
	fallback T
	ser      func(T) string
	de       func(string) (T, error)
}

// New creates a typed parameter tracking key on nav.
//
//	page := urlparam.New(nav, "page", 1)
//	query := urlparam.New(nav, "q", "", urlparam.Replace, urlparam.Debounce(300*time.Millisecond))
func New[T any](nav Navigator, key string, fallback T, opts ...Option) *Param[T] {
	return &Param[T]{
		store:    NewStore(nav, key, "", opts...),
		fallback: fallback,
		ser:      DefaultSerializer[T](),
		de:       DefaultDeserializer[T](),
	}
}

// Serialize sets a custom serializer.
func (p *Param[T]) Serialize(fn func(T) string) *Param[T] {
	p.ser = fn
	return p
}

// Deserialize sets a custom deserializer.
func (p *Param[T]) Deserialize(fn func(string) (T, error)) *Param[T] {
	p.de = fn
	return p
}

// Get returns the current value, or the fallback when the key is absent or
// its raw value does not parse as T.
func (p *Param[T]) Get() T {
	raw, ok := p.store.Lookup()
	if !ok {
		return p.fallback
	}
	v, err := p.de(raw)
	if err != nil {
		return p.fallback
	}
	return v
}

// Set serializes value into the URL. A value serializing to the empty
// string removes the key.
func (p *Param[T]) Set(value T) {
	p.store.Set(p.ser(value))
}

// Update applies fn to the current value and writes the result.
func (p *Param[T]) Update(fn func(T) T) {
	p.Set(fn(p.Get()))
}

// Reset removes the key from the URL, so Get returns the fallback again.
func (p *Param[T]) Reset() {
	p.store.Set("")
}

// IsSet reports whether the key is currently present in the query string.
func (p *Param[T]) IsSet() bool {
	_, ok := p.store.Lookup()
	return ok
}

// Subscribe registers fn to run on every location change.
func (p *Param[T]) Subscribe(fn func()) (cancel func()) {
	return p.store.Subscribe(fn)
}
