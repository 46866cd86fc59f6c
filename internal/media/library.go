package media

import (
	"sort"
	"sync"
)

// Library is the in-memory asset collection. It lives for the duration of a
// session; persistence is deliberately out of scope. Assets are only ever
// added or removed, never updated in place.
type Library struct {
	mu     sync.Mutex
	assets map[string]*Asset
}

func NewLibrary() *Library {
	return &Library{assets: make(map[string]*Asset)}
}

// Add inserts an asset. Adding the same ID twice replaces nothing; the first
// entry wins and Add reports false.
func (l *Library) Add(a *Asset) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, exists := l.assets[a.ID]; exists {
		return false
	}
	l.assets[a.ID] = a
	return true
}

// Get returns the asset with the given ID, or nil.
func (l *Library) Get(id string) *Asset {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.assets[id]
}

// Remove deletes an asset and reports whether it existed.
func (l *Library) Remove(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, exists := l.assets[id]; !exists {
		return false
	}
	delete(l.assets, id)
	return true
}

// List returns all assets, newest first (ties broken by ID for a stable
// order).
func (l *Library) List() []*Asset {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]*Asset, 0, len(l.assets))
	for _, a := range l.assets {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Count returns the number of assets in the library.
func (l *Library) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.assets)
}
