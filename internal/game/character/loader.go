package character

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/sheetroll/internal/game/stats"
)

// statAliases maps older sheet field names onto canonical stat ids.
var statAliases = map[string]stats.ID{
	"spd":   stats.Speed,
	"mgt":   stats.Might,
	"str":   stats.Might,
	"grt":   stats.Grit,
	"kno":   stats.Knowledge,
	"knw":   stats.Knowledge,
	"fore":  stats.Foresight,
	"fsg":   stats.Foresight,
	"astro": stats.Astrology,
	"ast":   stats.Astrology,
	"magic": stats.Magiks,
	"mag":   stats.Magiks,
	"det":   stats.Determination,
	"cha":   stats.Charisma,
	"chr":   stats.Charisma,
	"lck":   stats.Luck,
}

// record is the on-disk sheet shape, including legacy field names.
type record struct {
	ID         string         `yaml:"id"`
	Name       string         `yaml:"name"`
	Player     bool           `yaml:"player"`
	Stats      map[string]int `yaml:"stats"`
	Attributes map[string]int `yaml:"attributes"`
	Skills     map[string]int `yaml:"skills"`

	InitiativeModifier *int `yaml:"initiative_modifier"`
	Initiative         *int `yaml:"initiative"`
	InitBonus          *int `yaml:"init_bonus"`
}

// normalize maps a decoded record onto the canonical Sheet.
// "attributes" is accepted as a legacy name for "stats", short stat names
// are expanded, and the first of initiative_modifier, initiative, init_bonus
// that is set supplies the initiative modifier.
//
// Two keys in the same block naming one stat (e.g. "speed" and "spd") are an
// error; "stats" still takes priority over "attributes".
//
// Postcondition: Returns a Sheet or an error listing every unknown or
// conflicting stat key.
func (r record) normalize() (Sheet, error) {
	if r.ID == "" {
		return Sheet{}, errors.New("character id must not be empty")
	}
	sheet := Sheet{
		ID:       r.ID,
		Name:     r.Name,
		IsPlayer: r.Player,
		Stats:    make(map[stats.ID]int, len(stats.All())),
		Skills:   make(map[string]int, len(r.Skills)),
	}
	if sheet.Name == "" {
		sheet.Name = r.ID
	}

	var unknown, conflicts []string
	for _, src := range []map[string]int{r.Attributes, r.Stats} {
		keys := make(map[stats.ID][]string, len(src))
		for key, v := range src {
			id, ok := canonicalStat(key)
			if !ok {
				unknown = append(unknown, key)
				continue
			}
			keys[id] = append(keys[id], key)
			sheet.Stats[id] = v
		}
		for id, ks := range keys {
			if len(ks) > 1 {
				sort.Strings(ks)
				conflicts = append(conflicts, fmt.Sprintf("%s (%s)", id, strings.Join(ks, ", ")))
			}
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return Sheet{}, fmt.Errorf("character %q: unknown stats [%s]", r.ID, strings.Join(unknown, ", "))
	}
	if len(conflicts) > 0 {
		sort.Strings(conflicts)
		return Sheet{}, fmt.Errorf("character %q: stats set by more than one key: %s", r.ID, strings.Join(conflicts, "; "))
	}

	for id, lvl := range r.Skills {
		sheet.Skills[id] = lvl
	}

	switch {
	case r.InitiativeModifier != nil:
		sheet.InitiativeModifier = *r.InitiativeModifier
	case r.Initiative != nil:
		sheet.InitiativeModifier = *r.Initiative
	case r.InitBonus != nil:
		sheet.InitiativeModifier = *r.InitBonus
	}
	return sheet, nil
}

func canonicalStat(key string) (stats.ID, bool) {
	k := strings.ToLower(strings.TrimSpace(key))
	if id := stats.ID(k); id.Valid() {
		return id, true
	}
	id, ok := statAliases[k]
	return id, ok
}

// Parse decodes a single YAML sheet.
//
// Postcondition: Returns a normalized Sheet or a non-nil error.
func Parse(data []byte) (Sheet, error) {
	var r record
	if err := yaml.Unmarshal(data, &r); err != nil {
		return Sheet{}, fmt.Errorf("parsing character sheet: %w", err)
	}
	return r.normalize()
}

// LoadSheet reads and normalizes the sheet at path.
//
// Precondition: path must be a readable YAML file.
// Postcondition: Returns a Sheet or a non-nil error.
func LoadSheet(path string) (Sheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Sheet{}, fmt.Errorf("reading %s: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return Sheet{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}
