package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"proxyforge/internal/language"
)

func newLanguagesCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "languages",
		Short:       "List card languages accepted by --language",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			rows := make([][]string, 0, 10)
			for _, lang := range language.Supported() {
				rows = append(rows, []string{lang.Code, lang.Name})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Code", "Language"}, rows))
			return nil
		},
	}
}
