package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newStrategiesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "strategies",
		Short: "List named strategies and group aggregates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)

			fmt.Fprintln(tw, "STRATEGY\tDESCRIPTION")

			for _, name := range a.registry.Names() {
				fmt.Fprintf(tw, "%s\t%s\n", name, a.registry.Get(name).Description)
			}

			fmt.Fprintln(tw, "\nAGGREGATE\tDESCRIPTION")

			for _, name := range a.registry.AggregateNames() {
				fmt.Fprintf(tw, "%s\t%s\n", name, a.registry.GetAggregate(name).Description)
			}

			return tw.Flush()
		},
	}
}
