// Package session keeps one in-progress listing draft per Telegram user.
// Records expire by age on read; nothing is persisted.
package session

import (
	"sync"
	"time"

	"tezgah/internal/domain"
)

// Awaiting marks which free-text input the bot expects next from the user.
type Awaiting string

const (
	AwaitingNone   Awaiting = ""
	AwaitingImages Awaiting = "images"
	AwaitingNotes  Awaiting = "notes"
)

const (
	DefaultTTL = 15 * time.Minute
	maxImages  = 5
)

// Data is one user's draft listing input.
type Data struct {
	Images    []string
	Notes     string
	Platform  domain.Platform
	Lang      domain.Language
	ImageOps  []domain.ImageOp
	Awaiting  Awaiting
	UpdatedAt time.Time
}

// Store is a keyed, TTL-expiring session map. The interface is deliberately
// get/put/evict-by-age so it could be swapped for an external store without
// touching the bot's flow.
type Store struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[int64]*Data
	now      func() time.Time
}

func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		ttl:      ttl,
		sessions: make(map[int64]*Data),
		now:      time.Now,
	}
}

func defaultSession(now time.Time) *Data {
	return &Data{
		Images:    []string{},
		Notes:     "",
		Platform:  domain.PlatformGeneric,
		Lang:      domain.LanguageEnglish,
		ImageOps:  []domain.ImageOp{domain.OpCaption},
		UpdatedAt: now,
	}
}

// Get returns the user's session, replacing it with a fresh one when the
// stored record has aged past the TTL.
func (s *Store) Get(userID int64) Data {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.fetch(userID)
}

// Reset discards the user's session and starts a fresh one.
func (s *Store) Reset(userID int64) Data {
	s.mu.Lock()
	defer s.mu.Unlock()
	fresh := defaultSession(s.now())
	s.sessions[userID] = fresh
	return *fresh
}

func (s *Store) SetPlatform(userID int64, platform domain.Platform) Data {
	return s.update(userID, func(d *Data) { d.Platform = platform })
}

func (s *Store) SetLang(userID int64, lang domain.Language) Data {
	return s.update(userID, func(d *Data) { d.Lang = lang })
}

// SetImageOps stores the de-duplicated operation set, falling back to
// caption only when the input is empty.
func (s *Store) SetImageOps(userID int64, ops []domain.ImageOp) Data {
	return s.update(userID, func(d *Data) {
		deduped := make([]domain.ImageOp, 0, len(ops))
		seen := make(map[domain.ImageOp]struct{}, len(ops))
		for _, op := range ops {
			if _, ok := seen[op]; ok {
				continue
			}
			seen[op] = struct{}{}
			deduped = append(deduped, op)
		}
		if len(deduped) == 0 {
			deduped = []domain.ImageOp{domain.OpCaption}
		}
		d.ImageOps = deduped
	})
}

func (s *Store) SetAwaiting(userID int64, awaiting Awaiting) Data {
	return s.update(userID, func(d *Data) { d.Awaiting = awaiting })
}

// AddImages merges new URLs into the session, de-duplicating and capping the
// list at five entries.
func (s *Store) AddImages(userID int64, imageURLs []string) Data {
	return s.update(userID, func(d *Data) {
		seen := make(map[string]struct{}, len(d.Images)+len(imageURLs))
		merged := make([]string, 0, maxImages)
		for _, u := range append(append([]string{}, d.Images...), imageURLs...) {
			if _, ok := seen[u]; ok {
				continue
			}
			seen[u] = struct{}{}
			merged = append(merged, u)
			if len(merged) == maxImages {
				break
			}
		}
		d.Images = merged
	})
}

func (s *Store) SetNotes(userID int64, notes string) Data {
	return s.update(userID, func(d *Data) { d.Notes = notes })
}

func (s *Store) update(userID int64, fn func(*Data)) Data {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.fetch(userID)
	fn(d)
	d.UpdatedAt = s.now()
	return *d
}

// fetch expects s.mu to be held.
func (s *Store) fetch(userID int64) *Data {
	now := s.now()
	existing, ok := s.sessions[userID]
	if !ok || now.Sub(existing.UpdatedAt) > s.ttl {
		fresh := defaultSession(now)
		s.sessions[userID] = fresh
		return fresh
	}
	return existing
}
