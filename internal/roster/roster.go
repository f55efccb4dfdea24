// Package roster loads encounter rosters from YAML and spawns the
// participants of a new game from them.
package roster

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/initiative/internal/game/dice"
	"github.com/cory-johannsen/initiative/internal/game/encounter"
)

// Monster is a roster entry for one or more identical monsters.
type Monster struct {
	Name             string          `yaml:"name"`
	Subtype          string          `yaml:"subtype"`
	CR               int             `yaml:"cr"`
	AC               int             `yaml:"ac"`
	HP               int             `yaml:"hp"`
	HitDice          string          `yaml:"hit_dice"`
	Stats            encounter.Stats `yaml:"stats"`
	InitiativeBonus  int             `yaml:"initiative_bonus"`
	LegendaryActions int             `yaml:"legendary_actions"`
	SmallPortrait    string          `yaml:"small_portrait"`
	FullPortrait     string          `yaml:"full_portrait"`
	Notes            string          `yaml:"notes"`
	// Count spawns that many copies, numbered when more than one. Zero means one.
	Count int `yaml:"count"`
	// Hostile defaults to true.
	Hostile *bool `yaml:"hostile"`
}

// Player is a roster entry for a player character.
type Player struct {
	Name            string            `yaml:"name"`
	Classes         []encounter.Class `yaml:"classes"`
	Stats           encounter.Stats   `yaml:"stats"`
	AC              int               `yaml:"ac"`
	InitiativeBonus int               `yaml:"initiative_bonus"`
	SmallPortrait   string            `yaml:"small_portrait"`
	FullPortrait    string            `yaml:"full_portrait"`
	Notes           string            `yaml:"notes"`
}

// Lair is the optional lair of an encounter.
type Lair struct {
	Name          string `yaml:"name"`
	Notes         string `yaml:"notes"`
	SmallPortrait string `yaml:"small_portrait"`
	FullPortrait  string `yaml:"full_portrait"`
}

// Roster lists everything that takes part in an encounter.
type Roster struct {
	Name     string    `yaml:"name"`
	Monsters []Monster `yaml:"monsters"`
	Players  []Player  `yaml:"players"`
	Lair     *Lair     `yaml:"lair"`
}

// Validate reports every invalid entry.
func (r *Roster) Validate() error {
	var errs []error
	for i, m := range r.Monsters {
		if m.Name == "" {
			errs = append(errs, fmt.Errorf("monster %d: name must not be empty", i))
		}
		if m.CR < 0 {
			errs = append(errs, fmt.Errorf("monster %q: cr must be >= 0", m.Name))
		}
		if m.HP < 1 && m.HitDice == "" {
			errs = append(errs, fmt.Errorf("monster %q: hp must be >= 1 or hit_dice set", m.Name))
		}
		if m.HitDice != "" {
			if _, err := dice.Parse(m.HitDice); err != nil {
				errs = append(errs, fmt.Errorf("monster %q: %w", m.Name, err))
			}
		}
		if m.LegendaryActions < 0 {
			errs = append(errs, fmt.Errorf("monster %q: legendary_actions must be >= 0", m.Name))
		}
		if m.Count < 0 {
			errs = append(errs, fmt.Errorf("monster %q: count must be >= 0", m.Name))
		}
	}
	for i, p := range r.Players {
		if p.Name == "" {
			errs = append(errs, fmt.Errorf("player %d: name must not be empty", i))
		}
		for _, c := range p.Classes {
			if c.Level < 1 || c.Level > 20 {
				errs = append(errs, fmt.Errorf("player %q: %s level %d not in [1, 20]", p.Name, c.Name, c.Level))
			}
		}
	}
	if r.Lair != nil && r.Lair.Name == "" {
		errs = append(errs, errors.New("lair: name must not be empty"))
	}
	return errors.Join(errs...)
}

// LoadFromBytes parses and validates a roster. Unknown fields are rejected.
func LoadFromBytes(data []byte) (*Roster, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var r Roster
	if err := dec.Decode(&r); err != nil {
		return nil, fmt.Errorf("parsing roster YAML: %w", err)
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

// LoadFile reads a roster from path.
func LoadFile(path string) (*Roster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}
	r, err := LoadFromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("loading %q: %w", path, err)
	}
	return r, nil
}

// LoadDir merges every *.yaml roster in dir, in file name order.
//
// Postcondition: at most one lair across all files, otherwise an error.
func LoadDir(dir string) (*Roster, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading roster dir %q: %w", dir, err)
	}
	merged := &Roster{Name: filepath.Base(dir)}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		r, err := LoadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		merged.Monsters = append(merged.Monsters, r.Monsters...)
		merged.Players = append(merged.Players, r.Players...)
		if r.Lair != nil {
			if merged.Lair != nil {
				return nil, fmt.Errorf("roster dir %q: more than one lair", dir)
			}
			merged.Lair = r.Lair
		}
	}
	return merged, nil
}

// Load reads path as a directory of rosters or as a single roster file.
func Load(path string) (*Roster, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("roster %q: %w", path, err)
	}
	if info.IsDir() {
		return LoadDir(path)
	}
	return LoadFile(path)
}
