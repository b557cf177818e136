// Package command provides the line parser, command registry and interpreter
// behind the interactive tracker prompt.
package command

// Categories for organizing commands.
const (
	CategoryInitiative = "initiative"
	CategoryRoll       = "roll"
	CategorySystem     = "system"
)

// Handler identifiers mapping commands to interpreter actions.
const (
	HandlerAdd      = "add"
	HandlerAddChar  = "char"
	HandlerRemove   = "remove"
	HandlerStart    = "start"
	HandlerEnd      = "end"
	HandlerNext     = "next"
	HandlerPrevious = "prev"
	HandlerShow     = "show"
	HandlerCheck    = "check"
	HandlerAttack   = "attack"
	HandlerDefend   = "defend"
	HandlerReroll   = "reroll"
	HandlerHistory  = "history"
	HandlerHelp     = "help"
	HandlerQuit     = "quit"
)

// Command defines a prompt command.
type Command struct {
	// Name is the canonical command name.
	Name string
	// Aliases are alternate names for this command.
	Aliases []string
	// Usage shows the argument shape, e.g. "add <name> <initiative> [npc]".
	Usage string
	// Help is the short help text.
	Help string
	// Category groups the command.
	Category string
	// Handler maps to the interpreter action.
	Handler string
}

// BuiltinCommands returns every prompt command.
func BuiltinCommands() []Command {
	return []Command{
		{Name: "add", Usage: "add <name> <initiative> [npc]", Help: "Add a combatant with a fixed initiative", Category: CategoryInitiative, Handler: HandlerAdd},
		{Name: "char", Aliases: []string{"join"}, Usage: "char <sheet>", Help: "Roll initiative for a loaded sheet and add it", Category: CategoryInitiative, Handler: HandlerAddChar},
		{Name: "remove", Aliases: []string{"rm"}, Usage: "remove <id|name>", Help: "Remove a combatant", Category: CategoryInitiative, Handler: HandlerRemove},
		{Name: "start", Usage: "start", Help: "Start the encounter", Category: CategoryInitiative, Handler: HandlerStart},
		{Name: "end", Usage: "end", Help: "End the encounter and clear the order", Category: CategoryInitiative, Handler: HandlerEnd},
		{Name: "next", Aliases: []string{"n"}, Usage: "next", Help: "Advance to the next turn", Category: CategoryInitiative, Handler: HandlerNext},
		{Name: "prev", Aliases: []string{"p", "back"}, Usage: "prev", Help: "Go back one turn", Category: CategoryInitiative, Handler: HandlerPrevious},
		{Name: "show", Aliases: []string{"ls", "order"}, Usage: "show", Help: "Show the initiative order", Category: CategoryInitiative, Handler: HandlerShow},
		{Name: "check", Aliases: []string{"roll"}, Usage: "check <sheet> <stat[,stat...]> [skill...]", Help: "Roll a stat check", Category: CategoryRoll, Handler: HandlerCheck},
		{Name: "attack", Aliases: []string{"atk"}, Usage: "attack <sheet> <physical|ranged|magical> [skill...]", Help: "Roll an attack", Category: CategoryRoll, Handler: HandlerAttack},
		{Name: "defend", Aliases: []string{"def"}, Usage: "defend <sheet> <physical|ranged|magical> [skill...]", Help: "Roll a defense", Category: CategoryRoll, Handler: HandlerDefend},
		{Name: "reroll", Aliases: []string{"again"}, Usage: "reroll", Help: "Roll the last calculation again", Category: CategoryRoll, Handler: HandlerReroll},
		{Name: "history", Aliases: []string{"h"}, Usage: "history", Help: "Show recent rolls", Category: CategoryRoll, Handler: HandlerHistory},
		{Name: "help", Aliases: []string{"?"}, Usage: "help", Help: "List commands", Category: CategorySystem, Handler: HandlerHelp},
		{Name: "quit", Aliases: []string{"exit", "q"}, Usage: "quit", Help: "Leave the prompt", Category: CategorySystem, Handler: HandlerQuit},
	}
}
