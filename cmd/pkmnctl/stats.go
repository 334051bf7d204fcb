package main

import (
	"github.com/spf13/cobra"
)

func (c *cli) statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print active GTS trades and stored content per kind",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := c.services(cmd.Context())
			if err != nil {
				return err
			}
			defer c.closeServices(svc)

			stats, err := svc.Stats.Collect(cmd.Context())
			if err != nil {
				return err
			}
			return c.printJSON(stats)
		},
	}
}
