package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/govern-lab/aegis/pkg/catalog"
	"github.com/govern-lab/aegis/pkg/cli/config"
)

// cmdValidate checks the reference data files without starting the server.
// It is meant for CI pipelines that gate catalog changes.
func cmdValidate() *cli.Command {
	var catalogCfg config.Catalog
	var scoringCfg config.Scoring

	var flags []cli.Flag
	flags = append(flags, catalogCfg.Flags()...)
	flags = append(flags, scoringCfg.Flags()...)

	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Validate taxonomy, control catalog, and scoring table",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			ok := color.New(color.FgGreen).FprintfFunc()
			bad := color.New(color.FgRed).FprintfFunc()

			cat, err := catalogCfg.Configure()
			if err != nil {
				bad(os.Stderr, "✗ catalog: %v\n", err)
				return goerr.Wrap(err, "catalog validation failed")
			}

			ok(os.Stdout, "✓ taxonomy: %d functions\n", len(cat.Functions()))
			ok(os.Stdout, "✓ controls: %d entries\n", len(cat.Controls(catalog.ControlFilter{})))

			scoring, err := scoringCfg.Configure()
			if err != nil {
				bad(os.Stderr, "✗ scoring: %v\n", err)
				return goerr.Wrap(err, "scoring validation failed")
			}
			ok(os.Stdout, "✓ scoring: thresholds %d/%d/%d\n",
				scoring.Thresholds.Medium, scoring.Thresholds.High, scoring.Thresholds.Regulated)

			fmt.Println("configuration is valid")
			return nil
		},
	}
}
