package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"stellarburgers/internal/types"
)

// menuCmd prints the ingredient catalog without entering the shell.
var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Print the current ingredient catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		ctx, cancel := context.WithTimeout(cmd.Context(), a.Cfg.APITimeout())
		defer cancel()

		a.Catalog.Fetch(ctx)
		if msg := a.Catalog.Err(); msg != "" {
			return fmt.Errorf("catalog fetch failed: %s", msg)
		}

		var lastType types.IngredientType
		for _, ing := range a.Catalog.Items() {
			if ing.Type != lastType {
				fmt.Printf("\n%s\n", ing.Type)
				lastType = ing.Type
			}
			fmt.Printf("  %-40s %5d\n", ing.Name, ing.Price)
		}
		return nil
	},
}
