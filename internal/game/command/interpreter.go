package command

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cory-johannsen/sheetroll/internal/game/character"
	"github.com/cory-johannsen/sheetroll/internal/game/combat"
	"github.com/cory-johannsen/sheetroll/internal/game/pool"
	"github.com/cory-johannsen/sheetroll/internal/game/session"
	"github.com/cory-johannsen/sheetroll/internal/game/stats"
)

var (
	// ErrQuit is returned by Execute when the quit command is entered.
	ErrQuit = errors.New("quit")
	// ErrUnknownCommand is returned for input that resolves to no command.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrUsage is returned when a command's arguments are malformed.
	ErrUsage = errors.New("usage")
	// ErrUnknownSheet is returned when a sheet reference matches no loaded sheet.
	ErrUnknownSheet = errors.New("unknown sheet")
	// ErrUnknownCombatant is returned when remove matches no entry.
	ErrUnknownCombatant = errors.New("unknown combatant")
)

// Interpreter executes prompt lines against a session controller.
// It is not safe for concurrent use.
type Interpreter struct {
	registry *Registry
	ctrl     *session.Controller
	sheets   map[string]character.Sheet // lowercased id and name → sheet
	out      io.Writer
}

// NewInterpreter creates an Interpreter writing its output to out.
// Sheets are addressable by id or by case-insensitive name.
//
// Precondition: ctrl and out must be non-nil.
func NewInterpreter(ctrl *session.Controller, sheets []character.Sheet, out io.Writer) *Interpreter {
	idx := make(map[string]character.Sheet, len(sheets)*2)
	for _, s := range sheets {
		idx[strings.ToLower(s.Name)] = s
	}
	// ids win over names when they collide
	for _, s := range sheets {
		idx[strings.ToLower(s.ID)] = s
	}
	return &Interpreter{
		registry: DefaultRegistry(),
		ctrl:     ctrl,
		sheets:   idx,
		out:      out,
	}
}

// Run reads lines from in until EOF or quit, executing each one.
// Command errors are printed and do not stop the loop.
//
// Postcondition: Returns nil on EOF or quit, or the reader's error.
func (in *Interpreter) Run(r io.Reader, prompt string) error {
	scanner := bufio.NewScanner(r)
	for {
		if prompt != "" {
			fmt.Fprint(in.out, prompt)
		}
		if !scanner.Scan() {
			return scanner.Err()
		}
		err := in.Execute(scanner.Text())
		if errors.Is(err, ErrQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintf(in.out, "error: %v\n", err)
		}
	}
}

// Execute runs a single prompt line. Blank lines are ignored.
//
// Postcondition: Returns ErrQuit for the quit command, nil on success, or a
// wrapped error describing the failure.
func (in *Interpreter) Execute(line string) error {
	parsed := Parse(line)
	if parsed.Command == "" {
		return nil
	}
	cmd, ok := in.registry.Resolve(parsed.Command)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCommand, parsed.Command)
	}
	args := parsed.Args

	switch cmd.Handler {
	case HandlerAdd:
		return in.add(cmd, args)
	case HandlerAddChar:
		return in.addCharacter(cmd, args)
	case HandlerRemove:
		return in.remove(cmd, args)
	case HandlerStart:
		in.printState(in.ctrl.StartCombat())
	case HandlerEnd:
		in.ctrl.EndCombat()
		fmt.Fprintln(in.out, "Combat ended.")
	case HandlerNext:
		in.printState(in.ctrl.NextTurn())
	case HandlerPrevious:
		in.printState(in.ctrl.PreviousTurn())
	case HandlerShow:
		in.printState(in.ctrl.CombatState())
	case HandlerCheck:
		return in.check(cmd, args)
	case HandlerAttack:
		return in.combatRoll(cmd, args, false)
	case HandlerDefend:
		return in.combatRoll(cmd, args, true)
	case HandlerReroll:
		return in.reroll()
	case HandlerHistory:
		in.printHistory()
	case HandlerHelp:
		in.printHelp()
	case HandlerQuit:
		return ErrQuit
	default:
		return fmt.Errorf("%w: %q has no handler", ErrUnknownCommand, cmd.Name)
	}
	return nil
}

func (in *Interpreter) add(cmd *Command, args []string) error {
	if len(args) < 2 || len(args) > 3 {
		return usageError(cmd)
	}
	initiative, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("%w: initiative %q is not a number", ErrUsage, args[1])
	}
	isPlayer := true
	if len(args) == 3 {
		if !strings.EqualFold(args[2], "npc") {
			return usageError(cmd)
		}
		isPlayer = false
	}
	s := in.ctrl.AddCombatant(combat.Entry{Name: args[0], Initiative: initiative, IsPlayer: isPlayer})
	in.printState(s)
	return nil
}

func (in *Interpreter) addCharacter(cmd *Command, args []string) error {
	if len(args) != 1 {
		return usageError(cmd)
	}
	sheet, err := in.sheet(args[0])
	if err != nil {
		return err
	}
	s, rolled := in.ctrl.AddCharacter(sheet)
	fmt.Fprintf(in.out, "%s rolls %d for initiative.\n", sheet.Name, rolled)
	in.printState(s)
	return nil
}

func (in *Interpreter) remove(cmd *Command, args []string) error {
	if len(args) != 1 {
		return usageError(cmd)
	}
	id, ok := findEntry(in.ctrl.CombatState(), args[0])
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCombatant, args[0])
	}
	in.printState(in.ctrl.RemoveCombatant(id))
	return nil
}

// findEntry resolves ref to an entry id, matching ids exactly before names
// case-insensitively.
func findEntry(s combat.State, ref string) (string, bool) {
	for _, e := range s.Entries {
		if e.ID == ref {
			return e.ID, true
		}
	}
	for _, e := range s.Entries {
		if strings.EqualFold(e.Name, ref) {
			return e.ID, true
		}
	}
	return "", false
}

func (in *Interpreter) check(cmd *Command, args []string) error {
	if len(args) < 2 {
		return usageError(cmd)
	}
	sheet, err := in.sheet(args[0])
	if err != nil {
		return err
	}
	req := pool.Request{Mode: pool.ModeSimple}
	for _, raw := range strings.Split(args[1], ",") {
		if raw == "" {
			continue
		}
		id, err := stats.Parse(strings.ToLower(raw))
		if err != nil {
			return err
		}
		req.Stats = append(req.Stats, id)
	}
	if err := applyExtras(&req, args[2:]); err != nil {
		return err
	}
	return in.roll(sheet, req)
}

func (in *Interpreter) combatRoll(cmd *Command, args []string, defense bool) error {
	if len(args) < 2 {
		return usageError(cmd)
	}
	sheet, err := in.sheet(args[0])
	if err != nil {
		return err
	}
	attackType, err := combat.ParseAttackType(args[1])
	if err != nil {
		return err
	}
	req := pool.Request{Mode: pool.ModeCombat, AttackType: attackType, Defense: defense}
	if err := applyExtras(&req, args[2:]); err != nil {
		return err
	}
	return in.roll(sheet, req)
}

// applyExtras reads trailing roll arguments: "+Nd" adds bonus dice, "+N" or
// "-N" adds to the bonus modifier and anything else names a skill.
func applyExtras(req *pool.Request, args []string) error {
	for _, arg := range args {
		switch {
		case strings.HasPrefix(arg, "+") && strings.HasSuffix(arg, "d"):
			n, err := strconv.Atoi(strings.TrimSuffix(arg[1:], "d"))
			if err != nil {
				return fmt.Errorf("%w: bonus dice %q", ErrUsage, arg)
			}
			req.BonusDice += n
		case strings.HasPrefix(arg, "+") || strings.HasPrefix(arg, "-"):
			n, err := strconv.Atoi(arg)
			if err != nil {
				return fmt.Errorf("%w: bonus modifier %q", ErrUsage, arg)
			}
			req.BonusModifier += n
		default:
			req.Skills = append(req.Skills, arg)
		}
	}
	return nil
}

func (in *Interpreter) roll(sheet character.Sheet, req pool.Request) error {
	if err := req.Validate(); err != nil {
		return err
	}
	calc, result, err := in.ctrl.RollRequest(sheet, req)
	if err != nil {
		return err
	}
	fmt.Fprintln(in.out, calc.Description)
	fmt.Fprintln(in.out, result.String())
	return nil
}

func (in *Interpreter) reroll() error {
	calc, ok := in.ctrl.LastCalculation()
	if !ok {
		return session.ErrNoCalculation
	}
	result, err := in.ctrl.Roll()
	if err != nil {
		return err
	}
	fmt.Fprintln(in.out, calc.Description)
	fmt.Fprintln(in.out, result.String())
	return nil
}

func (in *Interpreter) sheet(ref string) (character.Sheet, error) {
	s, ok := in.sheets[strings.ToLower(ref)]
	if !ok {
		return character.Sheet{}, fmt.Errorf("%w: %q", ErrUnknownSheet, ref)
	}
	return s, nil
}

func (in *Interpreter) printState(s combat.State) {
	status := "inactive"
	if s.Active {
		status = "active"
	}
	fmt.Fprintf(in.out, "Round %d (%s)\n", s.Round, status)
	if len(s.Entries) == 0 {
		fmt.Fprintln(in.out, "  no combatants")
		return
	}
	for i, e := range s.Entries {
		marker := " "
		if e.Current {
			marker = ">"
		}
		side := "npc"
		if e.IsPlayer {
			side = "pc"
		}
		fmt.Fprintf(in.out, "%s %d. %s (%d) [%s]\n", marker, i+1, e.Name, e.Initiative, side)
	}
}

func (in *Interpreter) printHistory() {
	results := in.ctrl.History()
	if len(results) == 0 {
		fmt.Fprintln(in.out, "No rolls yet.")
		return
	}
	for i, r := range results {
		fmt.Fprintf(in.out, "%2d. %s\n", i+1, r.String())
	}
}

func (in *Interpreter) printHelp() {
	category := ""
	for _, cmd := range in.registry.Commands() {
		if cmd.Category != category {
			category = cmd.Category
			fmt.Fprintf(in.out, "%s:\n", category)
		}
		fmt.Fprintf(in.out, "  %-50s %s\n", cmd.Usage, cmd.Help)
	}
}

func usageError(cmd *Command) error {
	return fmt.Errorf("%w: %s", ErrUsage, cmd.Usage)
}
