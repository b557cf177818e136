package session

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/sheetroll/internal/game/character"
	"github.com/cory-johannsen/sheetroll/internal/game/combat"
	"github.com/cory-johannsen/sheetroll/internal/game/dice"
)

// StartCombat begins the encounter, keeping combatants already added.
func (c *Controller) StartCombat() combat.State {
	s := c.tracker.Start()
	c.logTransition("combat started", s)
	return s
}

// EndCombat ends the encounter and clears the initiative list.
func (c *Controller) EndCombat() combat.State {
	s := c.tracker.End()
	c.logTransition("combat ended", s)
	return s
}

// AddCombatant inserts e into the initiative order.
func (c *Controller) AddCombatant(e combat.Entry) combat.State {
	s := c.tracker.Add(e)
	c.logger.Info("combatant added",
		zap.String("name", e.Name),
		zap.Int("initiative", e.Initiative),
		zap.Int("combatants", len(s.Entries)),
	)
	return s
}

// AddCharacter rolls initiative for sheet (d20 + initiative modifier) and adds
// it to the order linked to the sheet's character id.
//
// Postcondition: Returns the new state and the rolled initiative.
func (c *Controller) AddCharacter(sheet character.Sheet) (combat.State, int) {
	roll := c.roller.Roll(dice.Spec{Count: 1, Modifier: sheet.InitiativeModifier})
	s := c.AddCombatant(combat.Entry{
		Name:        sheet.Name,
		Initiative:  roll.Final,
		IsPlayer:    sheet.IsPlayer,
		CharacterID: sheet.ID,
	})
	return s, roll.Final
}

// RemoveCombatant removes the entry with id.
func (c *Controller) RemoveCombatant(id string) combat.State {
	s := c.tracker.Remove(id)
	c.logTransition("combatant removed", s, zap.String("id", id))
	return s
}

// NextTurn advances to the next combatant.
func (c *Controller) NextTurn() combat.State {
	s := c.tracker.Next()
	c.logTransition("turn advanced", s)
	return s
}

// PreviousTurn steps back to the previous combatant.
func (c *Controller) PreviousTurn() combat.State {
	s := c.tracker.Previous()
	c.logTransition("turn rewound", s)
	return s
}

// CombatState returns the current encounter snapshot.
func (c *Controller) CombatState() combat.State {
	return c.tracker.State()
}

func (c *Controller) logTransition(msg string, s combat.State, extra ...zap.Field) {
	fields := []zap.Field{
		zap.Bool("active", s.Active),
		zap.Int("round", s.Round),
		zap.Int("turn_index", s.TurnIndex),
	}
	if cur, ok := s.Current(); ok {
		fields = append(fields, zap.String("current", cur.Name))
	}
	c.logger.Info(msg, append(fields, extra...)...)
}
