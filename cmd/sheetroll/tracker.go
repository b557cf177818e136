package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/cory-johannsen/sheetroll/internal/game/command"
)

func newTrackerCmd(opts *options) *cobra.Command {
	var script string
	cmd := &cobra.Command{
		Use:   "tracker",
		Short: "Run the interactive initiative tracker",
		Long: `Run an interactive prompt for an encounter: add combatants, roll
initiative for loaded sheets, step through turns and make rolls.
Type "help" at the prompt for the command list.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(opts)
			if err != nil {
				return err
			}
			defer a.close()

			var in io.Reader = cmd.InOrStdin()
			prompt := "> "
			if script != "" {
				f, err := os.Open(script)
				if err != nil {
					return fmt.Errorf("opening script: %w", err)
				}
				defer f.Close()
				in, prompt = f, ""
			}

			interp := command.NewInterpreter(a.ctrl, a.sheets, cmd.OutOrStdout())
			return interp.Run(in, prompt)
		},
	}
	cmd.Flags().StringVar(&script, "script", "", "read prompt lines from a file instead of stdin")
	return cmd
}
