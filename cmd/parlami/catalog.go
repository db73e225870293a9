package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/parlami/internal/catalog"
)

func newCatalogCommand() *cobra.Command {
	catalogCommand := &cobra.Command{
		Use:   "catalog",
		Short: "Lesson catalog commands",
	}

	catalogCommand.AddCommand(&cobra.Command{
		Use:   "validate [file]",
		Short: "Validate a lesson catalog, by default the configured one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) == 1 {
				path = args[0]
			} else {
				cfg, err := loadConfig()
				if err != nil {
					return err
				}
				path = cfg.Catalog.File
			}

			c, err := catalog.Load(path)
			if err != nil {
				return fmt.Errorf("catalog.Load > %w", err)
			}
			source := path
			if source == "" {
				source = "embedded catalog"
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s is valid: %d lessons in %d levels\n", source, c.Len(), len(c.Levels()))
			return nil
		},
	})

	return catalogCommand
}
