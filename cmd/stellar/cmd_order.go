package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// orderCmd looks up a single order by its public number.
var orderCmd = &cobra.Command{
	Use:   "order [number]",
	Short: "Look up one order by number",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		number, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("order number must be an integer, got %q", args[0])
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		ctx, cancel := context.WithTimeout(cmd.Context(), a.Cfg.APITimeout())
		defer cancel()

		a.Orders.LookupByNumber(ctx, number)
		if msg := a.Orders.LookupErr(); msg != "" {
			return fmt.Errorf("lookup failed: %s", msg)
		}

		o := a.Orders.Displayed()
		if o == nil {
			return fmt.Errorf("order %d not found", number)
		}

		fmt.Printf("#%d %s\n", o.Number, o.Name)
		fmt.Printf("status:  %s\n", o.Status.Label())
		fmt.Printf("created: %s\n", o.CreatedAt.Format("2006-01-02 15:04:05"))
		fmt.Println("ingredients:")
		for _, id := range o.Ingredients {
			fmt.Printf("  %s\n", id)
		}
		return nil
	},
}
