package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func validConfig() Config {
	return Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stderr",
		},
		Dice: DiceConfig{
			HistorySize: 20,
		},
		Combat: CombatConfig{
			TurnTracking: "identity",
		},
	}
}

func TestValidConfig(t *testing.T) {
	cfg := validConfig()
	assert.NoError(t, cfg.Validate())
}

func TestLoadDefaultsOnly(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "stderr", cfg.Logging.Output)
	assert.Equal(t, 20, cfg.Dice.HistorySize)
	assert.Equal(t, int64(0), cfg.Dice.Seed)
	assert.Equal(t, "identity", cfg.Combat.TurnTracking)
	assert.Empty(t, cfg.Combat.FormulasFile)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yaml")
	err := os.WriteFile(path, []byte(`
logging:
  level: debug
  format: console
dice:
  history_size: 5
  seed: 99
combat:
  turn_tracking: index
  formulas_file: formulas.yaml
content:
  skills_file: skills.yaml
`), 0644)
	require.NoError(t, err)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 5, cfg.Dice.HistorySize)
	assert.Equal(t, int64(99), cfg.Dice.Seed)
	assert.Equal(t, "index", cfg.Combat.TurnTracking)
	assert.Equal(t, "formulas.yaml", cfg.Combat.FormulasFile)
	assert.Equal(t, "skills.yaml", cfg.Content.SkillsFile)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("SHEET_DICE_HISTORY_SIZE", "3")
	t.Setenv("SHEET_COMBAT_TURN_TRACKING", "index")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Dice.HistorySize)
	assert.Equal(t, "index", cfg.Combat.TurnTracking)
}

func TestLoadInvalidPath(t *testing.T) {
	_, err := Load("/nonexistent/path.yaml")
	assert.Error(t, err)
}

func TestValidateLogging(t *testing.T) {
	cfg := validConfig()
	cfg.Logging.Level = "trace"
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Logging.Format = "xml"
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Logging.Output = ""
	assert.Error(t, cfg.Validate())
}

func TestValidateTurnTracking(t *testing.T) {
	for _, mode := range []string{"identity", "index"} {
		cfg := validConfig()
		cfg.Combat.TurnTracking = mode
		assert.NoError(t, cfg.Validate(), "mode %q should be valid", mode)
	}
	cfg := validConfig()
	cfg.Combat.TurnTracking = "name"
	assert.Error(t, cfg.Validate())
}

func TestValidateCollectsAllErrors(t *testing.T) {
	cfg := validConfig()
	cfg.Logging.Level = "loud"
	cfg.Dice.HistorySize = 0
	cfg.Combat.TurnTracking = ""
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logging.level")
	assert.Contains(t, err.Error(), "dice.history_size")
	assert.Contains(t, err.Error(), "combat.turn_tracking")
}

func TestProperty_HistorySizeValidation(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		size := rapid.IntRange(-100, 100).Draw(rt, "size")
		cfg := validConfig()
		cfg.Dice.HistorySize = size
		err := cfg.Validate()
		if size >= 1 {
			assert.NoError(rt, err)
		} else {
			assert.Error(rt, err)
		}
	})
}
