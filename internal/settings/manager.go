package settings

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// DefaultProfile names the single local player's settings.
const DefaultProfile = "default"

// ManagerOptions configures a settings manager.
type ManagerOptions struct {
	Profile       string
	DefaultRounds int // must be one of RoundChoices, otherwise DefaultRounds
}

// Manager holds the in-memory settings and writes every change straight back
// to the store. Storage failures are logged and returned but never undo the
// in-memory change.
type Manager struct {
	mu       sync.RWMutex
	store    Store
	profile  string
	defaults Settings
	current  Settings
	logger   zerolog.Logger
}

func NewManager(store Store, opts ManagerOptions, logger zerolog.Logger) *Manager {
	if opts.Profile == "" {
		opts.Profile = DefaultProfile
	}
	defaults := Defaults()
	if ValidRounds(opts.DefaultRounds) {
		defaults.NumRounds = opts.DefaultRounds
	}
	return &Manager{
		store:    store,
		profile:  opts.Profile,
		defaults: defaults,
		current:  defaults,
		logger:   logger.With().Str("component", "settings").Str("profile", opts.Profile).Logger(),
	}
}

// Load reads saved settings and merges them over the defaults. On failure the
// defaults stay in effect and the error is returned for reporting.
func (m *Manager) Load(ctx context.Context) (Settings, error) {
	merged := m.defaults
	data, err := m.store.Get(ctx, m.profile)
	if err == nil && data != nil {
		if uerr := json.Unmarshal(data, &merged); uerr != nil {
			merged = m.defaults
			err = fmt.Errorf("decode settings: %w", uerr)
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		m.logger.Warn().Err(err).Msg("settings load failed, using defaults")
		m.current = m.defaults
		return m.current, err
	}
	m.current = merged.normalize(m.defaults.NumRounds)
	return m.current, nil
}

// Current returns the settings in effect.
func (m *Manager) Current() Settings {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

func (m *Manager) SoundEnabled() bool { return m.Current().Sound }

func (m *Manager) NumRounds() int { return m.Current().NumRounds }

// ToggleDarkMode flips dark mode; turning it on turns neon off.
func (m *Manager) ToggleDarkMode(ctx context.Context) (Settings, error) {
	return m.mutate(ctx, func(s *Settings) {
		s.DarkMode = !s.DarkMode
		if s.DarkMode {
			s.NeonTheme = false
		}
	})
}

// ToggleNeon flips the neon theme; turning it on turns dark mode off.
func (m *Manager) ToggleNeon(ctx context.Context) (Settings, error) {
	return m.mutate(ctx, func(s *Settings) {
		s.NeonTheme = !s.NeonTheme
		if s.NeonTheme {
			s.DarkMode = false
		}
	})
}

func (m *Manager) ToggleSound(ctx context.Context) (Settings, error) {
	return m.mutate(ctx, func(s *Settings) { s.Sound = !s.Sound })
}

func (m *Manager) SetNumRounds(ctx context.Context, n int) (Settings, error) {
	if !ValidRounds(n) {
		return m.Current(), fmt.Errorf("%w: %d", ErrInvalidRoundChoice, n)
	}
	return m.mutate(ctx, func(s *Settings) { s.NumRounds = n })
}

// Replace validates and stores a complete settings document. When both themes
// are requested dark mode wins.
func (m *Manager) Replace(ctx context.Context, next Settings) (Settings, error) {
	if !ValidRounds(next.NumRounds) {
		return m.Current(), fmt.Errorf("%w: %d", ErrInvalidRoundChoice, next.NumRounds)
	}
	return m.mutate(ctx, func(s *Settings) { *s = next.normalize(m.defaults.NumRounds) })
}

func (m *Manager) mutate(ctx context.Context, fn func(*Settings)) (Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fn(&m.current)
	snapshot := m.current

	if err := m.save(ctx, snapshot); err != nil {
		m.logger.Warn().Err(err).Msg("settings save failed, keeping in-memory value")
		return snapshot, err
	}
	return snapshot, nil
}

func (m *Manager) save(ctx context.Context, s Settings) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	return m.store.Put(ctx, m.profile, data)
}
