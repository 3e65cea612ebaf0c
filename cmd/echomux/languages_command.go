package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLanguagesCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "languages",
		Short: "List the languages accepted by --language",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			languages := cfg.LanguageRegistry().List()
			if jsonOutput {
				return writeJSON(cmd, languages)
			}
			rows := make([][]string, 0, len(languages))
			for _, lang := range languages {
				rows = append(rows, []string{lang.Code, lang.Name, yesNo(lang.Custom)})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(tableSpec{
				Headers: []string{"Code", "Name", "Custom"},
				Rows:    rows,
			}))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the languages as JSON")
	return cmd
}
