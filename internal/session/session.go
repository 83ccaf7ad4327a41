// Package session holds the explicit per-dashboard-session state: the
// logged-in review database client, the attribute model, the caches and the
// user's display settings. All of it lives for the lifetime of the session
// and is dropped together.
package session

import (
	"sync"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/eppi-vis/dashboard/pkg/eppi"
	"github.com/eppi-vis/dashboard/pkg/frequency"
	"github.com/eppi-vis/dashboard/pkg/records"
	"github.com/eppi-vis/dashboard/pkg/search"
	"github.com/eppi-vis/dashboard/pkg/taxonomy"
)

// ColorThemes are the selectable chart color themes.
var ColorThemes = []string{
	"viridis", "blues", "cividis", "greens", "inferno",
	"magma", "plasma", "reds", "rainbow", "turbo",
}

// Settings are the per-session display preferences.
type Settings struct {
	ColorTheme     string `json:"colorTheme" validate:"omitempty,oneof=viridis blues cividis greens inferno magma plasma reds rainbow turbo"`
	MaxCodes       int    `json:"maxCodes" validate:"omitempty,min=2,max=100"`
	MaxLabelLength int    `json:"maxLabelLength" validate:"omitempty,min=1"`
}

// DefaultSettings returns the initial display preferences.
func DefaultSettings() Settings {
	return Settings{
		ColorTheme:     "viridis",
		MaxCodes:       10,
		MaxLabelLength: 50,
	}
}

// Session is one dashboard session. Fields are initialized in this order at
// login and are read-only afterwards, except Settings and Search which are
// guarded by mu: client login, attribute forest fetch and parse, cache
// construction, year histogram fetch.
type Session struct {
	ID        string
	CreatedAt time.Time

	Client      *eppi.Client
	Model       *taxonomy.Model
	Frequencies *frequency.Cache
	Records     *records.Retriever
	Years       []eppi.YearCount

	mu       sync.Mutex
	settings Settings
	search   *search.Search
}

// NewParams carries the initialized collaborators for a session.
type NewParams struct {
	Client      *eppi.Client
	Model       *taxonomy.Model
	Frequencies *frequency.Cache
	Records     *records.Retriever
	Years       []eppi.YearCount
}

// New creates a session with a fresh nanoid.
func New(params NewParams) (*Session, error) {
	id, err := gonanoid.New()
	if err != nil {
		return nil, err
	}
	return &Session{
		ID:          id,
		CreatedAt:   time.Now(),
		Client:      params.Client,
		Model:       params.Model,
		Frequencies: params.Frequencies,
		Records:     params.Records,
		Years:       params.Years,
		settings:    DefaultSettings(),
		search:      search.New(),
	}, nil
}

// Settings returns a copy of the current display preferences.
func (s *Session) Settings() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// UpdateSettings overwrites the non-zero fields of the given preferences.
func (s *Session) UpdateSettings(settings Settings) Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	if settings.ColorTheme != "" {
		s.settings.ColorTheme = settings.ColorTheme
	}
	if settings.MaxCodes != 0 {
		s.settings.MaxCodes = settings.MaxCodes
	}
	if settings.MaxLabelLength != 0 {
		s.settings.MaxLabelLength = settings.MaxLabelLength
	}
	return s.settings
}

// WithSearch runs fn with exclusive access to the session's search builder.
func (s *Session) WithSearch(fn func(*search.Search) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.search)
}

// SearchSnapshot returns a copy of the current search builder state.
func (s *Session) SearchSnapshot() search.Search {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := *s.search
	snapshot.Arms = append([]search.Arm(nil), s.search.Arms...)
	snapshot.Operators = append([]search.Operator(nil), s.search.Operators...)
	return snapshot
}
