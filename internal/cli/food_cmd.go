package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tnguyen/foodlog/internal/cli/formatter"
)

func newFoodCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "food",
		Short: "Search the food database and manage history",
	}

	cmd.AddCommand(
		newFoodSearchCmd(app),
		newFoodHistoryCmd(app),
		newFoodForgetCmd(app),
	)

	return cmd
}

func newFoodSearchCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the food database",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			foods, err := app.Lookup.Search(context.Background(), query)
			if err != nil {
				return err
			}
			if len(foods) == 0 {
				fmt.Printf("No foods match %q.\n", query)
				return nil
			}
			fmt.Print(formatter.FormatFoodTable(foods))
			return nil
		},
	}
	return cmd
}

func newFoodHistoryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List previously used foods, most recent first",
		RunE: func(cmd *cobra.Command, args []string) error {
			foods, err := app.Catalog.FoodHistory(context.Background())
			if err != nil {
				return err
			}
			if len(foods) == 0 {
				fmt.Println("No foods in history yet.")
				return nil
			}
			fmt.Print(formatter.FormatFoodTable(foods))
			return nil
		},
	}
	return cmd
}

func newFoodForgetCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "forget <fdc-id>",
		Short: "Remove a food from history",
		Long:  "Remove a food from history. Existing entries keep their data; only the history listing forgets it.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fdcID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid FDC id %q: %w", args[0], err)
			}
			if err := app.Catalog.RemoveFromHistory(context.Background(), fdcID); err != nil {
				return err
			}
			fmt.Println("Forgotten.")
			return nil
		},
	}
	return cmd
}
