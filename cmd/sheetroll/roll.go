package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cory-johannsen/sheetroll/internal/game/character"
	"github.com/cory-johannsen/sheetroll/internal/game/combat"
	"github.com/cory-johannsen/sheetroll/internal/game/pool"
	"github.com/cory-johannsen/sheetroll/internal/game/stats"
)

// rollFlags are the selection flags shared by check, attack and defend.
type rollFlags struct {
	character string
	skills    []string
	bonusDice int
	bonusMod  int
}

func (f *rollFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.character, "character", "c", "", "sheet id or name; optional when one sheet is loaded")
	cmd.Flags().StringSliceVarP(&f.skills, "skill", "k", nil, "skill id to add to the pool (repeatable)")
	cmd.Flags().IntVar(&f.bonusDice, "bonus-dice", 0, "extra d20s to add to the pool")
	cmd.Flags().IntVar(&f.bonusMod, "bonus-mod", 0, "flat amount to add to the result")
}

func newCheckCmd(opts *options) *cobra.Command {
	flags := &rollFlags{}
	cmd := &cobra.Command{
		Use:   "check <stat> [stat...]",
		Short: "Roll a stat check",
		Long: `Roll a check over one or more stats of a character sheet.

  Example: sheetroll --sheet kira.yaml check speed might --skill swords`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := pool.Request{Mode: pool.ModeSimple}
			for _, a := range args {
				id, err := stats.Parse(strings.ToLower(a))
				if err != nil {
					return err
				}
				req.Stats = append(req.Stats, id)
			}
			return runRoll(cmd.OutOrStdout(), opts, flags, req)
		},
	}
	flags.register(cmd)
	return cmd
}

func newCombatCmd(opts *options, defense bool) *cobra.Command {
	flags := &rollFlags{}
	use, short := "attack", "Roll an attack"
	if defense {
		use, short = "defend", "Roll a defense"
	}
	cmd := &cobra.Command{
		Use:       use + " <physical|ranged|magical>",
		Short:     short,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(combat.Physical), string(combat.Ranged), string(combat.Magical)},
		RunE: func(cmd *cobra.Command, args []string) error {
			attackType, err := combat.ParseAttackType(args[0])
			if err != nil {
				return err
			}
			req := pool.Request{Mode: pool.ModeCombat, AttackType: attackType, Defense: defense}
			return runRoll(cmd.OutOrStdout(), opts, flags, req)
		},
	}
	flags.register(cmd)
	return cmd
}

func runRoll(out io.Writer, opts *options, flags *rollFlags, req pool.Request) error {
	req.Skills = flags.skills
	req.BonusDice = flags.bonusDice
	req.BonusModifier = flags.bonusMod
	if err := req.Validate(); err != nil {
		return err
	}

	a, err := newApp(opts)
	if err != nil {
		return err
	}
	defer a.close()

	var sheet character.Sheet
	if flags.character != "" || len(a.sheets) > 0 {
		if sheet, err = a.sheet(flags.character); err != nil {
			return err
		}
	}

	calc, result, err := a.ctrl.RollRequest(sheet, req)
	if err != nil {
		a.logger.Error("roll failed", zap.Error(err))
		return err
	}
	fmt.Fprintln(out, calc.Description)
	fmt.Fprintln(out, result.String())
	return nil
}

func newDiceCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "dice <expr>",
		Short: "Roll a dice expression such as 3d20+2",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(opts)
			if err != nil {
				return err
			}
			defer a.close()

			result, err := a.ctrl.RollExpr(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.String())
			return nil
		},
	}
}
