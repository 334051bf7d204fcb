// Command pkmnctl runs the operator tasks that sit beside the api: replaying archived
// uploads, loading pokedex reference data and printing usage stats.
package main

import (
	"os"

	"github.com/L3Technosmith/pkmnFoundations/internal/config"
)

func main() {
	c := newCLI(config.Load, os.Stdout, os.Stderr)
	err := c.rootCmd().Execute()
	c.close()
	if err != nil {
		os.Exit(1)
	}
}
