package main

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/macrowatch/macrowatch/internal/app"
	"github.com/macrowatch/macrowatch/internal/config"
)

// withApp builds the pipeline and runs fn against it with a bounded
// context.
func withApp(fn func(ctx context.Context, a *app.App) (interface{}, error)) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	a, err := app.Build(cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	out, err := fn(ctx, a)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func resolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <key>",
		Short: "Resolve an entity to its live reading",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app.App) (interface{}, error) {
				return a.Resolver.CurrentLevel(ctx, args[0])
			})
		},
	}
}

func analyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <key>",
		Short: "Run the full analysis bundle for an entity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app.App) (interface{}, error) {
				return a.Resolver.Analyze(ctx, args[0])
			})
		},
	}
}

func scorecardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scorecard",
		Short: "Compute the composite macro scorecard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app.App) (interface{}, error) {
				return a.Resolver.Scorecard().Compute(ctx), nil
			})
		},
	}
}

func seasonalityCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seasonality <key>",
		Short: "Monthly return pattern for a chartable entity or raw ticker",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app.App) (interface{}, error) {
				symbol := args[0]
				if ent, err := a.Resolver.Registry().Resolve(symbol); err == nil && ent.TechnicalKey != "" {
					symbol = ent.TechnicalKey
				}
				return a.Resolver.Seasonality().Monthly(ctx, symbol)
			})
		},
	}
}

func searchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search the entity catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app.App) (interface{}, error) {
				return a.Resolver.Registry().Search(args[0]), nil
			})
		},
	}
}
