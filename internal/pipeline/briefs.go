package pipeline

import (
	"bytes"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/dgallion1/citeshield/internal/config"
	"github.com/dgallion1/citeshield/internal/loader"
	"github.com/dgallion1/citeshield/internal/sections"
)

// Brief is a loaded document together with its section store.
type Brief struct {
	ID          string
	Name        string
	Store       *sections.Store
	Outline     []loader.Heading
	ContentHash string
	CreatedAt   time.Time

	lastAccess time.Time // guarded by BriefStore.mu
}

// BriefInfo is a JSON-safe description of a brief.
type BriefInfo struct {
	ID          string           `json:"doc_id"`
	Name        string           `json:"name"`
	Sections    int              `json:"sections"`
	Lines       int              `json:"lines"`
	Overview    string           `json:"overview"`
	Outline     []loader.Heading `json:"outline"`
	ContentHash string           `json:"content_hash"`
	CreatedAt   time.Time        `json:"created_at"`
}

// Info summarizes the brief.
func (b *Brief) Info() BriefInfo {
	outline := b.Outline
	if outline == nil {
		outline = []loader.Heading{}
	}
	return BriefInfo{
		ID:          b.ID,
		Name:        b.Name,
		Sections:    b.Store.Len(),
		Lines:       b.Store.TotalLines(),
		Overview:    b.Store.Overview(),
		Outline:     outline,
		ContentHash: b.ContentHash,
		CreatedAt:   b.CreatedAt,
	}
}

// LoadDocument parses an uploaded file.
func LoadDocument(filename string, data []byte, cfg config.Config) (*loader.Document, error) {
	return loader.Load(bytes.NewReader(data), filename, cfg.LoaderOptions())
}

// NewBrief chunks a loaded document and indexes it for section access.
func NewBrief(doc *loader.Document, cfg config.Config) (*Brief, error) {
	hash := ContentHashHex([]byte(doc.Text))
	store, err := sections.Build(doc.Name, doc.Text, cfg.ChunkConfig(), cfg.StoreOptions()...)
	if err != nil {
		return nil, err
	}
	return &Brief{
		ID:          DocIDFromHash(hash),
		Name:        doc.Name,
		Store:       store,
		Outline:     doc.Outline,
		ContentHash: hash,
		CreatedAt:   time.Now(),
	}, nil
}

// BuildBrief loads and indexes a file in one step.
func BuildBrief(filename string, data []byte, cfg config.Config) (*Brief, error) {
	doc, err := LoadDocument(filename, data, cfg)
	if err != nil {
		return nil, err
	}
	b, err := NewBrief(doc, cfg)
	if err != nil {
		return nil, fmt.Errorf("build brief %s: %w", filename, err)
	}
	return b, nil
}

// BriefStore is a thread-safe in-memory brief registry. Briefs not read
// within the TTL are evicted by Cleanup.
type BriefStore struct {
	mu     sync.Mutex
	briefs map[string]*Brief
	ttl    time.Duration
}

func NewBriefStore(ttl time.Duration) *BriefStore {
	return &BriefStore{
		briefs: make(map[string]*Brief),
		ttl:    ttl,
	}
}

// Put registers b, replacing any brief with the same ID.
func (s *BriefStore) Put(b *Brief) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b.lastAccess = time.Now()
	s.briefs[b.ID] = b
}

// PutIfAbsent registers b unless a brief with the same ID exists. It returns
// the registered brief and whether b was inserted.
func (s *BriefStore) PutIfAbsent(b *Brief) (*Brief, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	if existing := s.briefs[b.ID]; existing != nil {
		existing.lastAccess = now
		return existing, false
	}
	b.lastAccess = now
	s.briefs[b.ID] = b
	return b, true
}

// Get returns the brief and refreshes its TTL, or nil.
func (s *BriefStore) Get(id string) *Brief {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.briefs[id]
	if b != nil {
		b.lastAccess = time.Now()
	}
	return b
}

// Delete removes a brief and reports whether it existed.
func (s *BriefStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.briefs[id]
	delete(s.briefs, id)
	return ok
}

// List returns all briefs, oldest first.
func (s *BriefStore) List() []*Brief {
	s.mu.Lock()
	out := make([]*Brief, 0, len(s.briefs))
	for _, b := range s.briefs {
		out = append(out, b)
	}
	s.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Len returns the number of registered briefs.
func (s *BriefStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.briefs)
}

// Cleanup removes expired briefs.
func (s *BriefStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, b := range s.briefs {
		if now.Sub(b.lastAccess) > s.ttl {
			delete(s.briefs, id)
		}
	}
}
