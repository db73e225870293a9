package translation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	// MaxRecent is the number of recent translations kept in memory.
	MaxRecent = 5
	// MaxTextLength is the longest text, in characters, the API accepts.
	MaxTextLength = 500
)

var (
	ErrEmptyText   = errors.New("nothing to translate")
	ErrTextTooLong = fmt.Errorf("text is longer than %d characters", MaxTextLength)
)

// Translation is a translated text. It is also the saved form.
type Translation struct {
	ID         string `json:"id"`
	Original   string `json:"original"`
	Translated string `json:"translated"`
	FromLang   string `json:"fromLang"`
	ToLang     string `json:"toLang"`
	// Timestamp is in Unix milliseconds.
	Timestamp int64 `json:"timestamp"`
	Cached    bool  `json:"-"`
}

// Time returns the Timestamp as a time.
func (t Translation) Time() time.Time {
	return time.UnixMilli(t.Timestamp)
}

// Service translates through the cache first and remembers recent
// translations for the session.
type Service struct {
	client Client
	cache  *Cache
	now    func() time.Time

	mu     sync.Mutex
	recent []Translation
}

func NewService(client Client, cache *Cache, now func() time.Time) *Service {
	return &Service{client: client, cache: cache, now: now}
}

// SeedRecent fills the recent list with the first saved translations.
func (s *Service) SeedRecent(saved []Translation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := min(len(saved), MaxRecent)
	s.recent = append([]Translation(nil), saved[:n]...)
}

// Translate translates text from one language code to another. Blank text
// returns ErrEmptyText. A cached translation is returned without calling
// the API and is not added to the recent list. A cache write failure is
// logged and does not fail the translation.
func (s *Service) Translate(ctx context.Context, text, from, to string) (Translation, error) {
	if strings.TrimSpace(text) == "" {
		return Translation{}, ErrEmptyText
	}
	if utf8.RuneCountInString(text) > MaxTextLength {
		return Translation{}, ErrTextTooLong
	}

	result := Translation{
		Original:  text,
		FromLang:  from,
		ToLang:    to,
		Timestamp: s.now().UnixMilli(),
	}

	cached, ok, err := s.cache.Get(ctx, text, from, to)
	if err != nil {
		slog.Default().WarnContext(ctx, "translation cache lookup failed", slog.Any("error", err))
	}
	if ok {
		result.Translated = cached
		result.Cached = true
		return result, nil
	}

	translated, err := s.client.Translate(ctx, text, from, to)
	if err != nil {
		return Translation{}, fmt.Errorf("translate %s|%s: %w", from, to, err)
	}
	result.ID = uuid.NewString()
	result.Translated = translated

	if err := s.cache.Set(ctx, text, from, to, translated); err != nil {
		slog.Default().WarnContext(ctx, "failed to cache translation", slog.Any("error", err))
	}

	s.mu.Lock()
	s.recent = append([]Translation{result}, s.recent...)
	if len(s.recent) > MaxRecent {
		s.recent = s.recent[:MaxRecent]
	}
	s.mu.Unlock()

	return result, nil
}

// Recent returns the recent translations, newest first.
func (s *Service) Recent() []Translation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Translation(nil), s.recent...)
}
