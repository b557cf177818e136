// Package skill provides the skill catalogue and the per-skill dice contribution.
package skill

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

const (
	// MinLevel and MaxLevel bound a character's skill level.
	MinLevel = 0
	MaxLevel = 10
)

// NameLookup resolves a skill id to its display name.
type NameLookup interface {
	// SkillName returns the display name for id and whether id is known.
	SkillName(id string) (string, bool)
}

// Contribution is one skill's share of a dice pool. Skills add dice only.
//
// Invariant: Dice == Level.
type Contribution struct {
	ID    string
	Name  string
	Level int
	Dice  int
}

// Contribute builds the Contribution for id at level, resolving the display
// name through names and falling back to the id. Level is clamped to [MinLevel, MaxLevel].
func Contribute(id string, level int, names NameLookup) Contribution {
	level = min(max(level, MinLevel), MaxLevel)
	name := id
	if names != nil {
		if n, ok := names.SkillName(id); ok {
			name = n
		}
	}
	return Contribution{ID: id, Name: name, Level: level, Dice: level}
}

// Skill is one catalogue entry.
type Skill struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// Registry is an id-keyed skill catalogue.
type Registry struct {
	skills map[string]*Skill
}

// NewRegistry returns a registry holding skills; later duplicates replace earlier ones.
//
// Postcondition: Returns a registry or an error for an entry with an empty id.
func NewRegistry(skills []*Skill) (*Registry, error) {
	r := &Registry{skills: make(map[string]*Skill, len(skills))}
	for _, s := range skills {
		if s.ID == "" {
			return nil, fmt.Errorf("skill %q has empty id", s.Name)
		}
		if s.Name == "" {
			s.Name = s.ID
		}
		r.skills[s.ID] = s
	}
	return r, nil
}

// LoadRegistry reads a YAML skill catalogue from path.
//
// Precondition: path must be a readable YAML file with a top-level "skills" list.
// Postcondition: Returns a registry or a non-nil error.
func LoadRegistry(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var doc struct {
		Skills []*Skill `yaml:"skills"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing skill file %s: %w", path, err)
	}
	return NewRegistry(doc.Skills)
}

// SkillName implements NameLookup.
func (r *Registry) SkillName(id string) (string, bool) {
	s, ok := r.skills[id]
	if !ok {
		return "", false
	}
	return s.Name, true
}

// Get returns the skill with id.
func (r *Registry) Get(id string) (*Skill, bool) {
	s, ok := r.skills[id]
	return s, ok
}

// All returns every skill sorted by id.
func (r *Registry) All() []*Skill {
	out := make([]*Skill, 0, len(r.skills))
	for _, s := range r.skills {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// MapLookup adapts a plain id→name map to NameLookup.
type MapLookup map[string]string

// SkillName implements NameLookup.
func (m MapLookup) SkillName(id string) (string, bool) {
	n, ok := m[id]
	return n, ok
}
