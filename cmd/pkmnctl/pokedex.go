package main

import (
	"context"
	"fmt"
	"os"

	sonic "github.com/bytedance/sonic"
	"github.com/spf13/cobra"

	"github.com/L3Technosmith/pkmnFoundations/internal/usecase"
)

type importer func(ctx context.Context, svc *usecase.PokedexService, raw []byte) (int, error)

var pokedexImporters = map[string]importer{
	"species":    importRows((*usecase.PokedexService).ImportSpecies),
	"moves":      importRows((*usecase.PokedexService).ImportMoves),
	"items":      importRows((*usecase.PokedexService).ImportItems),
	"evolutions": importRows((*usecase.PokedexService).ImportEvolutions),
}

func importRows[T any](insert func(*usecase.PokedexService, context.Context, []T) (int, error)) importer {
	return func(ctx context.Context, svc *usecase.PokedexService, raw []byte) (int, error) {
		var rows []T
		if err := sonic.Unmarshal(raw, &rows); err != nil {
			return 0, fmt.Errorf("%w: decode rows: %v", usecase.ErrInvalidInput, err)
		}
		return insert(svc, ctx, rows)
	}
}

func (c *cli) pokedexCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pokedex",
		Short: "Manage pokedex reference data",
	}

	importCmd := &cobra.Command{
		Use:   "import <species|moves|items|evolutions> <file.json>",
		Short: "Insert reference rows from a JSON array",
		Long: `Insert reference rows from a JSON array whose objects use the api field names.

Example:
  pkmnctl pokedex import species ./data/species.json`,
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"species", "moves", "items", "evolutions"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPokedexImport(cmd.Context(), args[0], args[1])
		},
	}

	cmd.AddCommand(importCmd)
	return cmd
}

func (c *cli) runPokedexImport(ctx context.Context, table, path string) error {
	imp, ok := pokedexImporters[table]
	if !ok {
		return fmt.Errorf("%w: unknown pokedex table %q", usecase.ErrInvalidInput, table)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	svc, err := c.services(ctx)
	if err != nil {
		return err
	}
	defer c.closeServices(svc)

	n, err := imp(ctx, svc.Pokedex, raw)
	if err != nil {
		return err
	}
	c.logger.Info("pokedex import finished", "table", table, "rows", n)
	return c.printJSON(map[string]any{"table": table, "imported": n})
}
