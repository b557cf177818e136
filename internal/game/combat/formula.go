package combat

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/sheetroll/internal/game/stats"
)

// ErrFormulaNotFound is returned when no formula exists for an attack type and role.
var ErrFormulaNotFound = errors.New("combat formula not found")

// AttackType is the delivery of an attack: physical, ranged or magical.
type AttackType string

const (
	Physical AttackType = "physical"
	Ranged   AttackType = "ranged"
	Magical  AttackType = "magical"
)

// AttackTypes returns every supported attack type.
func AttackTypes() []AttackType {
	return []AttackType{Physical, Ranged, Magical}
}

// ParseAttackType resolves a case-insensitive attack type name.
func ParseAttackType(s string) (AttackType, error) {
	t := AttackType(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AttackTypes() {
		if t == known {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown attack type %q", s)
}

// Formula is the fixed stat pair rolled for one attack type and role.
type Formula struct {
	AttackType AttackType `yaml:"attack_type"`
	Defense    bool       `yaml:"defense"`
	Primary    stats.ID   `yaml:"primary"`
	Secondary  stats.ID   `yaml:"secondary"`
	Label      string     `yaml:"label"`
}

type formulaKey struct {
	attackType AttackType
	defense    bool
}

// FormulaTable maps (attack type, role) to a Formula. It is read-only after construction.
type FormulaTable struct {
	entries map[formulaKey]Formula
}

var defaultFormulas = []Formula{
	{AttackType: Physical, Defense: false, Primary: stats.Speed, Secondary: stats.Might, Label: "Physical Attack"},
	{AttackType: Physical, Defense: true, Primary: stats.Speed, Secondary: stats.Grit, Label: "Physical Defense"},
	{AttackType: Ranged, Defense: false, Primary: stats.Speed, Secondary: stats.Knowledge, Label: "Ranged Attack"},
	{AttackType: Ranged, Defense: true, Primary: stats.Speed, Secondary: stats.Foresight, Label: "Ranged Defense"},
	{AttackType: Magical, Defense: false, Primary: stats.Astrology, Secondary: stats.Magiks, Label: "Magical Attack"},
	{AttackType: Magical, Defense: true, Primary: stats.Determination, Secondary: stats.Foresight, Label: "Magical Defense"},
}

// NewFormulaTable builds a table from formulas; later entries replace earlier
// ones with the same attack type and role.
//
// Postcondition: Returns a table or an error naming the first invalid formula.
func NewFormulaTable(formulas []Formula) (*FormulaTable, error) {
	t := &FormulaTable{entries: make(map[formulaKey]Formula, len(formulas))}
	for i, f := range formulas {
		if err := f.validate(); err != nil {
			return nil, fmt.Errorf("formula %d: %w", i, err)
		}
		if f.Label == "" {
			f.Label = defaultLabel(f.AttackType, f.Defense)
		}
		t.entries[formulaKey{f.AttackType, f.Defense}] = f
	}
	return t, nil
}

// DefaultFormulas returns the built-in formula table.
func DefaultFormulas() *FormulaTable {
	t, err := NewFormulaTable(defaultFormulas)
	if err != nil {
		panic("combat: built-in formula table invalid: " + err.Error())
	}
	return t
}

// LoadFormulas reads a YAML list of formulas from path and layers it over the
// built-in table.
//
// Precondition: path must be a readable YAML file.
// Postcondition: Returns a table or a non-nil error.
func LoadFormulas(path string) (*FormulaTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var doc struct {
		Formulas []Formula `yaml:"formulas"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing formula file %s: %w", path, err)
	}
	merged := make([]Formula, 0, len(defaultFormulas)+len(doc.Formulas))
	merged = append(merged, defaultFormulas...)
	merged = append(merged, doc.Formulas...)
	t, err := NewFormulaTable(merged)
	if err != nil {
		return nil, fmt.Errorf("formula file %s: %w", path, err)
	}
	return t, nil
}

// Lookup returns the formula for attackType and role.
//
// Postcondition: Returns the formula, or an error wrapping ErrFormulaNotFound.
func (t *FormulaTable) Lookup(attackType AttackType, defense bool) (Formula, error) {
	f, ok := t.entries[formulaKey{attackType, defense}]
	if !ok {
		return Formula{}, fmt.Errorf("%w: %s %s", ErrFormulaNotFound, attackType, roleName(defense))
	}
	return f, nil
}

// Len returns the number of formulas in the table.
func (t *FormulaTable) Len() int { return len(t.entries) }

func (f Formula) validate() error {
	if f.AttackType == "" {
		return errors.New("attack_type must not be empty")
	}
	if !f.Primary.Valid() {
		return fmt.Errorf("primary stat %q is not a known stat", f.Primary)
	}
	if !f.Secondary.Valid() {
		return fmt.Errorf("secondary stat %q is not a known stat", f.Secondary)
	}
	return nil
}

func roleName(defense bool) string {
	if defense {
		return "defense"
	}
	return "attack"
}

func defaultLabel(t AttackType, defense bool) string {
	name := string(t)
	if name != "" {
		name = strings.ToUpper(name[:1]) + name[1:]
	}
	if defense {
		return name + " Defense"
	}
	return name + " Attack"
}
