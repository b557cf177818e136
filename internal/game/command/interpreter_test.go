package command

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/cory-johannsen/sheetroll/internal/game/character"
	"github.com/cory-johannsen/sheetroll/internal/game/combat"
	"github.com/cory-johannsen/sheetroll/internal/game/dice"
	"github.com/cory-johannsen/sheetroll/internal/game/pool"
	"github.com/cory-johannsen/sheetroll/internal/game/session"
	"github.com/cory-johannsen/sheetroll/internal/game/skill"
	"github.com/cory-johannsen/sheetroll/internal/game/stats"
)

type fixedSource struct{ face int }

func (f fixedSource) Intn(int) int { return f.face - 1 }

func newInterpreter(t *testing.T) (*Interpreter, *session.Controller, *bytes.Buffer) {
	t.Helper()
	logger := zaptest.NewLogger(t)
	ctrl, err := session.NewController(&session.Config{
		Builder: pool.NewBuilder(combat.DefaultFormulas(), skill.MapLookup{"swords": "Swords"}),
		Roller:  dice.NewLoggedRoller(fixedSource{face: 10}, logger, 5),
		Tracker: combat.NewTracker(combat.TrackIdentity),
		Logger:  logger,
	})
	require.NoError(t, err)
	kira := character.Sheet{
		ID:                 "kira",
		Name:               "Kira Vale",
		Stats:              map[stats.ID]int{stats.Speed: 40, stats.Might: 20},
		Skills:             map[string]int{"swords": 2},
		InitiativeModifier: 3,
		IsPlayer:           true,
	}
	var out bytes.Buffer
	return NewInterpreter(ctrl, []character.Sheet{kira}, &out), ctrl, &out
}

func TestExecute_BlankLine(t *testing.T) {
	in, _, out := newInterpreter(t)
	require.NoError(t, in.Execute("   "))
	assert.Empty(t, out.String())
}

func TestExecute_UnknownCommand(t *testing.T) {
	in, _, _ := newInterpreter(t)
	assert.ErrorIs(t, in.Execute("fireball"), ErrUnknownCommand)
}

func TestExecute_Quit(t *testing.T) {
	in, _, _ := newInterpreter(t)
	assert.ErrorIs(t, in.Execute("exit"), ErrQuit)
}

func TestExecute_AddAndOrder(t *testing.T) {
	in, ctrl, out := newInterpreter(t)
	require.NoError(t, in.Execute("add Goblin 12 npc"))
	require.NoError(t, in.Execute("add Rook 15"))

	s := ctrl.CombatState()
	require.Len(t, s.Entries, 2)
	assert.Equal(t, "Rook", s.Entries[0].Name)
	assert.True(t, s.Entries[0].IsPlayer)
	assert.False(t, s.Entries[1].IsPlayer)
	assert.Contains(t, out.String(), "2. Goblin (12) [npc]")
}

func TestExecute_AddUsage(t *testing.T) {
	in, _, _ := newInterpreter(t)
	assert.ErrorIs(t, in.Execute("add Goblin"), ErrUsage)
	assert.ErrorIs(t, in.Execute("add Goblin high"), ErrUsage)
	assert.ErrorIs(t, in.Execute("add Goblin 3 boss"), ErrUsage)
}

func TestExecute_CharacterRollsInitiative(t *testing.T) {
	in, ctrl, out := newInterpreter(t)
	require.NoError(t, in.Execute("char KIRA"))

	s := ctrl.CombatState()
	require.Len(t, s.Entries, 1)
	assert.Equal(t, 13, s.Entries[0].Initiative)
	assert.Equal(t, "kira", s.Entries[0].CharacterID)
	assert.Contains(t, out.String(), "Kira Vale rolls 13 for initiative.")
}

func TestExecute_CharacterByName(t *testing.T) {
	in, ctrl, _ := newInterpreter(t)
	require.NoError(t, in.Execute("char kira"))
	assert.ErrorIs(t, in.Execute("char nobody"), ErrUnknownSheet)
	assert.Len(t, ctrl.CombatState().Entries, 1)
}

func TestExecute_TurnCycle(t *testing.T) {
	in, ctrl, out := newInterpreter(t)
	require.NoError(t, in.Execute("add A 20"))
	require.NoError(t, in.Execute("add B 10"))
	require.NoError(t, in.Execute("start"))
	require.NoError(t, in.Execute("n"))
	require.NoError(t, in.Execute("next"))

	s := ctrl.CombatState()
	assert.True(t, s.Active)
	assert.Equal(t, 2, s.Round)
	assert.Equal(t, 0, s.TurnIndex)
	assert.Contains(t, out.String(), "Round 2 (active)")

	require.NoError(t, in.Execute("back"))
	s = ctrl.CombatState()
	assert.Equal(t, 1, s.Round)
	assert.Equal(t, 1, s.TurnIndex)
}

func TestExecute_RemoveByName(t *testing.T) {
	in, ctrl, _ := newInterpreter(t)
	require.NoError(t, in.Execute("add Goblin 12 npc"))
	require.NoError(t, in.Execute("remove goblin"))
	assert.Empty(t, ctrl.CombatState().Entries)
	assert.ErrorIs(t, in.Execute("remove goblin"), ErrUnknownCombatant)
}

func TestExecute_RemoveByID(t *testing.T) {
	in, ctrl, _ := newInterpreter(t)
	require.NoError(t, in.Execute("add Goblin 12 npc"))
	id := ctrl.CombatState().Entries[0].ID
	require.NoError(t, in.Execute("rm "+id))
	assert.Empty(t, ctrl.CombatState().Entries)
}

func TestExecute_End(t *testing.T) {
	in, ctrl, out := newInterpreter(t)
	require.NoError(t, in.Execute("add Goblin 12 npc"))
	require.NoError(t, in.Execute("start"))
	require.NoError(t, in.Execute("end"))
	s := ctrl.CombatState()
	assert.False(t, s.Active)
	assert.Empty(t, s.Entries)
	assert.Contains(t, out.String(), "Combat ended.")
}

func TestExecute_Check(t *testing.T) {
	in, _, out := newInterpreter(t)
	require.NoError(t, in.Execute("check kira Speed"))
	assert.Contains(t, out.String(), "Speed (3d20+4)")
	assert.Contains(t, out.String(), "3d20+4 → [10 10 10] +4 = 34")
}

func TestExecute_CheckErrors(t *testing.T) {
	in, ctrl, _ := newInterpreter(t)
	assert.ErrorIs(t, in.Execute("check kira"), ErrUsage)
	assert.Error(t, in.Execute("check kira strength"))
	assert.ErrorIs(t, in.Execute("check kira ,"), pool.ErrNoStatsSelected)
	assert.ErrorIs(t, in.Execute("check kira speed +x"), ErrUsage)
	assert.Empty(t, ctrl.History())
}

func TestExecute_OversizedBonusDice(t *testing.T) {
	in, ctrl, _ := newInterpreter(t)
	assert.ErrorIs(t, in.Execute("check kira speed +5000d"), pool.ErrPoolTooLarge)
	assert.Empty(t, ctrl.History())
}

func TestExecute_AttackWithExtras(t *testing.T) {
	in, _, out := newInterpreter(t)
	require.NoError(t, in.Execute("attack kira physical swords +1d +2"))
	assert.Contains(t, out.String(), "Physical Attack: Speed + Might + Swords 2 + 1 bonus die (8d20+8)")
	assert.Contains(t, out.String(), "= 88")
}

func TestExecute_Defend(t *testing.T) {
	in, ctrl, _ := newInterpreter(t)
	require.NoError(t, in.Execute("def kira Ranged"))
	calc, ok := ctrl.LastCalculation()
	require.True(t, ok)
	assert.Equal(t, pool.KindDefense, calc.Context.Kind)
	assert.Equal(t, combat.Ranged, calc.Context.AttackType)
}

func TestExecute_AttackUnknownType(t *testing.T) {
	in, _, _ := newInterpreter(t)
	assert.Error(t, in.Execute("attack kira psychic"))
}

func TestExecute_RerollAndHistory(t *testing.T) {
	in, ctrl, out := newInterpreter(t)
	assert.ErrorIs(t, in.Execute("reroll"), session.ErrNoCalculation)

	require.NoError(t, in.Execute("check kira might"))
	require.NoError(t, in.Execute("again"))
	assert.Len(t, ctrl.History(), 2)

	out.Reset()
	require.NoError(t, in.Execute("history"))
	assert.Contains(t, out.String(), " 1. 2d20+2")
	assert.Contains(t, out.String(), " 2. 2d20+2")
}

func TestExecute_HistoryEmpty(t *testing.T) {
	in, _, out := newInterpreter(t)
	require.NoError(t, in.Execute("h"))
	assert.Contains(t, out.String(), "No rolls yet.")
}

func TestExecute_Help(t *testing.T) {
	in, _, out := newInterpreter(t)
	require.NoError(t, in.Execute("help"))
	for _, cmd := range BuiltinCommands() {
		assert.Contains(t, out.String(), cmd.Usage)
	}
}

func TestRun_StopsAtQuitAndReportsErrors(t *testing.T) {
	in, ctrl, out := newInterpreter(t)
	script := strings.Join([]string{
		"add Goblin 12 npc",
		"bogus",
		"quit",
		"add Orc 9 npc",
	}, "\n")
	require.NoError(t, in.Run(strings.NewReader(script), ""))
	assert.Len(t, ctrl.CombatState().Entries, 1)
	assert.Contains(t, out.String(), "error: unknown command")
}

func TestRun_EOF(t *testing.T) {
	in, _, out := newInterpreter(t)
	require.NoError(t, in.Run(strings.NewReader("show\n"), "> "))
	assert.True(t, strings.HasPrefix(out.String(), "> Round 1 (inactive)"))
	assert.Contains(t, out.String(), "no combatants")
}
