package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/youruser/mockupkit/internal/templates"
)

func newTemplatesCmd(appFn func() *app) *cobra.Command {
	var (
		category string
		query    string
		asJSON   bool
	)
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "List the available templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			var opt templates.FilterOptions
			if category != "" {
				c, err := templates.ParseCategory(category)
				if err != nil {
					return err
				}
				opt.Categories = []templates.Category{c}
			}
			opt.FreeWords = query
			out := appFn().registry.Filter(opt)

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tLABEL\tCATEGORY\tSLOT\tRADIUS")
			for _, t := range out {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%g,%g %gx%g\t%g\n",
					t.ID, t.Label, t.Category, t.Slot.X, t.Slot.Y, t.Slot.Width, t.Slot.Height, t.CornerRadius)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "only list this category (web, mobile)")
	cmd.Flags().StringVarP(&query, "query", "q", "", "filter by words in id or label")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}
