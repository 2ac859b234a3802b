package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hoanghai1803/newslens/internal/app"
)

var extractCmd = &cobra.Command{
	Use:   "extract <text>",
	Short: "Extract named entities from text",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		svc, err := app.NewEntityService(cfg)
		if err != nil {
			return err
		}

		entities := svc.Extract(cmd.Context(), strings.Join(args, " "))
		if len(entities) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no entities found")
			return nil
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "LABEL\tTEXT\tSCORE")
		for _, e := range entities {
			fmt.Fprintf(tw, "%s\t%s\t%.2f\n", e.Label, e.Text, e.Score)
		}
		return tw.Flush()
	},
}
