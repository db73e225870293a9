package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newResetCommand() *cobra.Command {
	var yes bool
	command := &cobra.Command{
		Use:   "reset",
		Short: "Erase progress, stats and profile. Saved translations are kept",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if !yes {
				_, _ = fmt.Fprint(out, "This erases your progress, stats and profile. Continue? [y/N] ")
				line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				switch strings.ToLower(strings.TrimSpace(line)) {
				case "y", "yes":
				default:
					_, _ = fmt.Fprintln(out, "Reset cancelled.")
					return nil
				}
			}

			ws, err := openWorkspace(cmd.Context())
			if err != nil {
				return err
			}
			defer func() {
				_ = ws.Close()
			}()

			if err := ws.session.Reset(cmd.Context()); err != nil {
				return fmt.Errorf("session.Reset > %w", err)
			}
			_, _ = fmt.Fprintln(out, "Progress reset.")
			return nil
		},
	}
	command.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation")
	return command
}
