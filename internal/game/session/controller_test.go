package session_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/cory-johannsen/sheetroll/internal/config"
	"github.com/cory-johannsen/sheetroll/internal/game/character"
	"github.com/cory-johannsen/sheetroll/internal/game/combat"
	"github.com/cory-johannsen/sheetroll/internal/game/dice"
	"github.com/cory-johannsen/sheetroll/internal/game/pool"
	"github.com/cory-johannsen/sheetroll/internal/game/session"
	"github.com/cory-johannsen/sheetroll/internal/game/skill"
	"github.com/cory-johannsen/sheetroll/internal/game/stats"
)

// fixedSource always returns face-1 so every die shows face.
type fixedSource struct{ face int }

func (f fixedSource) Intn(int) int { return f.face - 1 }

func newController(t *testing.T, face int, logger *zap.Logger) *session.Controller {
	t.Helper()
	c, err := session.NewController(&session.Config{
		Builder: pool.NewBuilder(combat.DefaultFormulas(), skill.MapLookup{"swords": "Swords"}),
		Roller:  dice.NewLoggedRoller(fixedSource{face: face}, logger, 3),
		Tracker: combat.NewTracker(combat.TrackIdentity),
		Logger:  logger,
	})
	require.NoError(t, err)
	return c
}

func sheet() character.Sheet {
	return character.Sheet{
		ID:                 "kira",
		Name:               "Kira",
		Stats:              map[stats.ID]int{stats.Speed: 40, stats.Might: 20},
		Skills:             map[string]int{"swords": 2},
		InitiativeModifier: 3,
		IsPlayer:           true,
	}
}

func TestNewController_MissingDeps(t *testing.T) {
	_, err := session.NewController(&session.Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Builder")
	assert.Contains(t, err.Error(), "Logger")
}

func TestRoll_WithoutPreview(t *testing.T) {
	c := newController(t, 10, zaptest.NewLogger(t))
	_, err := c.Roll()
	assert.ErrorIs(t, err, session.ErrNoCalculation)
}

func TestPreviewThenRoll(t *testing.T) {
	c := newController(t, 20, zaptest.NewLogger(t))

	calc, err := c.Preview(sheet(), pool.Request{
		Mode:       pool.ModeCombat,
		AttackType: combat.Physical,
		Skills:     []string{"swords"},
	})
	require.NoError(t, err)
	// speed 40: 3 dice +4; might 20: 2 dice +2; swords 2 dice
	assert.Equal(t, 7, calc.Pool.TotalDice)
	assert.Equal(t, 6, calc.Pool.TotalModifier)

	held, ok := c.LastCalculation()
	require.True(t, ok)
	assert.Equal(t, calc, held)

	res, err := c.Roll()
	require.NoError(t, err)
	assert.Len(t, res.Faces, 7)
	assert.Equal(t, 146, res.Final)
	assert.True(t, res.Critical)

	last, ok := c.LastResult()
	require.True(t, ok)
	assert.Equal(t, res, last)
	assert.Len(t, c.History(), 1)
}

func TestPreview_InvalidSelectionClearsCalculation(t *testing.T) {
	c := newController(t, 5, zaptest.NewLogger(t))
	_, err := c.Preview(sheet(), pool.Request{Stats: []stats.ID{stats.Speed}})
	require.NoError(t, err)

	_, err = c.Preview(sheet(), pool.Request{})
	assert.ErrorIs(t, err, pool.ErrNoStatsSelected)
	_, ok := c.LastCalculation()
	assert.False(t, ok)
	_, err = c.Roll()
	assert.ErrorIs(t, err, session.ErrNoCalculation)
}

func TestRollRequest_FormulaNotFound(t *testing.T) {
	c := newController(t, 5, zaptest.NewLogger(t))
	_, _, err := c.RollRequest(sheet(), pool.Request{Mode: pool.ModeCombat, AttackType: "psychic"})
	assert.ErrorIs(t, err, combat.ErrFormulaNotFound)
	assert.Empty(t, c.History())
}

func TestHistory_Bounded(t *testing.T) {
	c := newController(t, 1, zaptest.NewLogger(t))
	for i := 0; i < 5; i++ {
		_, _, err := c.RollRequest(sheet(), pool.Request{Stats: []stats.ID{stats.Might}})
		require.NoError(t, err)
	}
	h := c.History()
	require.Len(t, h, 3)
	assert.True(t, h[0].Fumble)
}

func TestClearCalculation(t *testing.T) {
	c := newController(t, 5, zaptest.NewLogger(t))
	_, _, err := c.RollRequest(sheet(), pool.Request{Stats: []stats.ID{stats.Might}})
	require.NoError(t, err)
	c.ClearCalculation()
	_, ok := c.LastCalculation()
	assert.False(t, ok)
	_, ok = c.LastResult()
	assert.False(t, ok)
}

func TestRollExpr(t *testing.T) {
	c := newController(t, 20, zaptest.NewLogger(t))
	r, err := c.RollExpr("2d20+1")
	require.NoError(t, err)
	assert.Equal(t, 41, r.Final)
	assert.True(t, r.Critical)
	assert.Len(t, c.History(), 1)

	_, err = c.RollExpr("2d6")
	assert.Error(t, err)
	_, ok := c.LastCalculation()
	assert.False(t, ok)
}

func TestInitiativeFlow(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	c := newController(t, 10, zap.New(core))

	s, rolled := c.AddCharacter(sheet())
	assert.Equal(t, 13, rolled)
	require.Len(t, s.Entries, 1)
	assert.Equal(t, "kira", s.Entries[0].CharacterID)
	assert.True(t, s.Entries[0].IsPlayer)

	c.AddCombatant(combat.Entry{ID: "ogre", Name: "Ogre", Initiative: 20})
	s = c.StartCombat()
	assert.True(t, s.Active)
	cur, _ := s.Current()
	assert.Equal(t, "ogre", cur.ID)

	s = c.NextTurn()
	cur, _ = s.Current()
	assert.Equal(t, "Kira", cur.Name)

	s = c.NextTurn()
	assert.Equal(t, 2, s.Round)

	s = c.PreviousTurn()
	assert.Equal(t, 1, s.Round)

	s = c.RemoveCombatant("ogre")
	assert.Len(t, s.Entries, 1)
	assert.Equal(t, s, c.CombatState())

	s = c.EndCombat()
	assert.False(t, s.Active)
	assert.Empty(t, s.Entries)

	assert.Equal(t, 1, logs.FilterMessage("combat started").Len())
	assert.Equal(t, 2, logs.FilterMessage("turn advanced").Len())
	assert.Equal(t, 1, logs.FilterMessage("combat ended").Len())
}

func TestNewFromConfig(t *testing.T) {
	dir := t.TempDir()
	skills := filepath.Join(dir, "skills.yaml")
	require.NoError(t, os.WriteFile(skills, []byte("skills:\n  - id: swords\n    name: Blades\n"), 0o644))

	v := config.Defaults()
	v.Set("dice.seed", 11)
	v.Set("content.skills_file", skills)
	cfg, err := config.LoadFromViper(v)
	require.NoError(t, err)

	c, err := session.NewFromConfig(cfg, zaptest.NewLogger(t))
	require.NoError(t, err)

	calc, err := c.Preview(sheet(), pool.Request{Stats: []stats.ID{stats.Speed}, Skills: []string{"swords"}})
	require.NoError(t, err)
	assert.Equal(t, "Blades", calc.Skills[0].Name)
}

func TestNewFromConfig_SeededIsReproducible(t *testing.T) {
	v := config.Defaults()
	v.Set("dice.seed", 1234)
	cfg, err := config.LoadFromViper(v)
	require.NoError(t, err)

	roll := func() dice.Result {
		c, err := session.NewFromConfig(cfg, zap.NewNop())
		require.NoError(t, err)
		_, r, err := c.RollRequest(sheet(), pool.Request{Stats: []stats.ID{stats.Speed, stats.Might}})
		require.NoError(t, err)
		return r
	}
	assert.Equal(t, roll(), roll())
}

func TestNewFromConfig_BadFormulaFile(t *testing.T) {
	v := config.Defaults()
	v.Set("combat.formulas_file", filepath.Join(t.TempDir(), "missing.yaml"))
	cfg, err := config.LoadFromViper(v)
	require.NoError(t, err)

	_, err = session.NewFromConfig(cfg, zap.NewNop())
	assert.Error(t, err)
}
