// Package preferences holds the process-wide display and rules preferences.
//
// A Store is created once at startup with its defaults applied; afterwards
// every change goes through Update, which validates the result and notifies
// subscribers synchronously in registration order.
package preferences

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/initiative/internal/game/difficulty"
)

// Theme names a colour theme.
type Theme string

const (
	ThemeArcane       Theme = "arcane"
	ThemeDungeoneer   Theme = "dungeoneer"
	ThemeHighContrast Theme = "high-contrast"
	ThemeIntrepid     Theme = "intrepid"
	ThemeMystic       Theme = "mystic"
	ThemeWoodland     Theme = "woodland"
)

// Themes lists every theme.
var Themes = []Theme{ThemeArcane, ThemeDungeoneer, ThemeHighContrast, ThemeIntrepid, ThemeMystic, ThemeWoodland}

// Mode is a theme variant.
type Mode string

const (
	ModeDawn  Mode = "dawn"
	ModeDusk  Mode = "dusk"
	ModeNoon  Mode = "noon"
	ModeNight Mode = "night"
	ModeLight Mode = "light"
	ModeDark  Mode = "dark"
)

// FontSize is the base text size.
type FontSize string

const (
	FontSmall  FontSize = "small"
	FontMedium FontSize = "medium"
	FontLarge  FontSize = "large"
)

// FontStyle is the text face family.
type FontStyle string

const (
	FontSans  FontStyle = "sans"
	FontSerif FontStyle = "serif"
)

// MonsterHP selects how a new game sets monster hit points.
type MonsterHP string

const (
	MonsterHPFixed  MonsterHP = "fixed"
	MonsterHPRolled MonsterHP = "rolled"
)

// AvailableModes returns the modes theme supports.
func AvailableModes(theme Theme) []Mode {
	if theme == ThemeHighContrast {
		return []Mode{ModeLight, ModeDark}
	}
	return []Mode{ModeDawn, ModeNoon, ModeDusk, ModeNight}
}

// IsDarkMode reports whether m renders light text on a dark background.
func IsDarkMode(m Mode) bool {
	return m == ModeDusk || m == ModeNight || m == ModeDark
}

// Preferences is one complete set of choices.
type Preferences struct {
	Theme        Theme                   `yaml:"theme"`
	Mode         Mode                    `yaml:"mode"`
	FontSize     FontSize                `yaml:"font_size"`
	FontStyle    FontStyle               `yaml:"font_style"`
	MonsterHP    MonsterHP               `yaml:"monster_hp"`
	RulesVersion difficulty.RulesVersion `yaml:"rules_version"`
}

// Defaults returns the built-in preferences.
func Defaults() Preferences {
	return Preferences{
		Theme:        ThemeDungeoneer,
		Mode:         ModeDusk,
		FontSize:     FontMedium,
		FontStyle:    FontSerif,
		MonsterHP:    MonsterHPRolled,
		RulesVersion: difficulty.SRD51,
	}
}

// Validate reports every invalid field.
func (p Preferences) Validate() error {
	var errs []error
	if !slices.Contains(Themes, p.Theme) {
		errs = append(errs, fmt.Errorf("theme %q is not recognised", p.Theme))
	} else if !slices.Contains(AvailableModes(p.Theme), p.Mode) {
		errs = append(errs, fmt.Errorf("mode %q is not available for theme %q", p.Mode, p.Theme))
	}
	if p.FontSize != FontSmall && p.FontSize != FontMedium && p.FontSize != FontLarge {
		errs = append(errs, fmt.Errorf("font size %q is not recognised", p.FontSize))
	}
	if p.FontStyle != FontSans && p.FontStyle != FontSerif {
		errs = append(errs, fmt.Errorf("font style %q is not recognised", p.FontStyle))
	}
	if p.MonsterHP != MonsterHPFixed && p.MonsterHP != MonsterHPRolled {
		errs = append(errs, fmt.Errorf("monster hp %q is not recognised", p.MonsterHP))
	}
	if _, err := difficulty.ParseRulesVersion(string(p.RulesVersion)); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// BodyClasses returns the style classes a renderer applies for p.
func (p Preferences) BodyClasses() []string {
	classes := []string{
		"theme-" + string(p.Theme),
		"mode-" + string(p.Mode),
		"font-" + string(p.FontSize),
		"font-" + string(p.FontStyle),
	}
	if IsDarkMode(p.Mode) {
		classes = append(classes, "dark")
	}
	return classes
}

// Store is the process-scoped preferences holder. Safe for concurrent use.
type Store struct {
	mu     sync.Mutex
	prefs  Preferences
	nextID int
	subs   map[int]func(Preferences)
}

// NewStore creates a Store holding initial.
//
// Postcondition: returns an error if initial is invalid.
func NewStore(initial Preferences) (*Store, error) {
	if err := initial.Validate(); err != nil {
		return nil, fmt.Errorf("invalid preferences: %w", err)
	}
	return &Store{prefs: initial, subs: make(map[int]func(Preferences))}, nil
}

// Get returns the current preferences.
func (s *Store) Get() Preferences {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prefs
}

// Update applies fn to a copy of the current preferences and, if the result
// is valid, stores it and notifies subscribers. Switching to a theme that does
// not offer the current mode selects the theme's first mode.
//
// Precondition: subscribers must not call back into s.
func (s *Store) Update(fn func(*Preferences)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.prefs
	fn(&next)
	if next.Theme != s.prefs.Theme && slices.Contains(Themes, next.Theme) && !slices.Contains(AvailableModes(next.Theme), next.Mode) {
		next.Mode = AvailableModes(next.Theme)[0]
	}
	if err := next.Validate(); err != nil {
		return fmt.Errorf("invalid preferences: %w", err)
	}
	s.prefs = next

	ids := make([]int, 0, len(s.subs))
	for id := range s.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		s.subs[id](next)
	}
	return nil
}

// Subscribe registers fn and immediately calls it with the current value.
// The returned function unsubscribes.
func (s *Store) Subscribe(fn func(Preferences)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	fn(s.prefs)
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// Load reads preferences from a YAML file. Fields missing from the file keep
// their value from base; a missing file yields base unchanged.
func Load(path string, base Preferences) (Preferences, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return base, nil
	}
	if err != nil {
		return Preferences{}, fmt.Errorf("reading preferences %s: %w", path, err)
	}
	p := base
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Preferences{}, fmt.Errorf("parsing preferences %s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return Preferences{}, fmt.Errorf("preferences %s: %w", path, err)
	}
	return p, nil
}

// Save writes p to path as YAML, creating parent directories.
func Save(path string, p Preferences) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("encoding preferences: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating preferences dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing preferences %s: %w", path, err)
	}
	return nil
}
