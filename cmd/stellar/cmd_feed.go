package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var feedLimit int

// feedCmd prints a snapshot of the public order feed.
var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "Print the public order feed",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		ctx, cancel := context.WithTimeout(cmd.Context(), a.Cfg.APITimeout())
		defer cancel()

		a.Feed.Fetch(ctx)
		if msg := a.Feed.Err(); msg != "" {
			return fmt.Errorf("feed fetch failed: %s", msg)
		}

		total, today := a.Feed.Totals()
		fmt.Printf("completed all time: %d, today: %d\n\n", total, today)

		orders := a.Feed.Orders()
		if feedLimit > 0 && len(orders) > feedLimit {
			orders = orders[:feedLimit]
		}
		for _, o := range orders {
			fmt.Printf("#%-6d %-10s %s\n", o.Number, o.Status.Label(), o.Name)
		}
		return nil
	},
}

func init() {
	feedCmd.Flags().IntVarP(&feedLimit, "limit", "n", 20, "maximum orders to print (0: all)")
}
