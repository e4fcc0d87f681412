package answers

import (
	"context"
	"log"
	"sort"
	"sync"
)

// Store persists question-answer pairs across agent runs. The tracker's
// QA Memory tab implements it; tests use an in-memory fake.
type Store interface {
	// LoadAnswers returns all persisted pairs keyed by memory key.
	LoadAnswers(ctx context.Context) (map[string]string, error)
	// AppendAnswer persists one new pair with its job context.
	AppendAnswer(ctx context.Context, question, answer, jobContext string) error
}

// Bank is the in-memory answer cache backed by a Store. Lookups are pure
// reads; saves write through. A broken store degrades the bank to
// session-only memory instead of failing the application flow.
type Bank struct {
	mu    sync.RWMutex
	cache map[string]string
	store Store
}

// NewBank loads the persisted answers into a fresh bank. A load failure
// is logged and yields an empty bank.
func NewBank(ctx context.Context, store Store) *Bank {
	b := &Bank{
		cache: make(map[string]string),
		store: store,
	}
	if store == nil {
		return b
	}

	loaded, err := store.LoadAnswers(ctx)
	if err != nil {
		log.Printf("[answers] could not load answer memory: %v", err)
		return b
	}
	b.cache = loaded
	log.Printf("[answers] loaded %d remembered answers", len(loaded))
	return b
}

// Lookup returns the remembered answer for key. For free-text keys an
// exact miss falls back to a loose topic match against other free-text
// entries, so "Why are you interested?" can reuse the answer given to
// "Why do you want this role?". Choice keys match exactly or not at all;
// a loosely matched answer would not be a valid option.
func (b *Bank) Lookup(key string) (string, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if answer, ok := b.cache[key]; ok {
		return answer, true
	}
	if isChoiceKey(key) {
		return "", false
	}

	// Deterministic order so the same bank always reuses the same answer.
	cached := make([]string, 0, len(b.cache))
	for k := range b.cache {
		if !isChoiceKey(k) {
			cached = append(cached, k)
		}
	}
	sort.Strings(cached)
	for _, k := range cached {
		if looselySimilar(key, k) {
			return b.cache[k], true
		}
	}
	return "", false
}

// Save remembers key's answer and writes it through to the store. Store
// failures are logged; the in-memory cache keeps the answer either way.
func (b *Bank) Save(ctx context.Context, key, answer, jobContext string) {
	b.mu.Lock()
	b.cache[key] = answer
	b.mu.Unlock()

	if b.store == nil {
		return
	}
	if err := b.store.AppendAnswer(ctx, key, answer, jobContext); err != nil {
		log.Printf("[answers] could not persist answer for %q: %v", key, err)
	}
}

// Size returns the number of cached answers.
func (b *Bank) Size() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.cache)
}
