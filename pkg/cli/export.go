package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/fleetscope/fleetscope/pkg/cli/config"
	"github.com/fleetscope/fleetscope/pkg/domain/model"
	"github.com/fleetscope/fleetscope/pkg/usecase"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdExport() *cli.Command {
	var (
		firestoreCfg config.Firestore
		catalogCfg   config.Catalog
		seedCfg      config.Seed
		filters      model.FilterState
		output       string
	)

	flags := joinFlags(
		firestoreCfg.Flags(),
		catalogCfg.Flags(),
		seedCfg.Flags(),
		[]cli.Flag{
			&cli.StringFlag{
				Name:        "output",
				Aliases:     []string{"o"},
				Usage:       "Output CSV file path",
				Required:    true,
				Destination: &output,
			},
			&cli.StringFlag{
				Name:        "region",
				Usage:       "Filter by region",
				Destination: &filters.Region,
			},
			&cli.StringFlag{
				Name:        "country",
				Usage:       "Filter by country",
				Destination: &filters.Country,
			},
			&cli.StringFlag{
				Name:        "product-type",
				Usage:       "Filter by product type",
				Destination: &filters.ProductType,
			},
			&cli.StringFlag{
				Name:        "device-type",
				Usage:       "Filter by device type",
				Destination: &filters.DeviceType,
			},
		},
	)

	return &cli.Command{
		Name:  "export",
		Usage: "Write the filtered dataset as CSV",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			catalog, err := catalogCfg.Configure()
			if err != nil {
				return err
			}

			repo, err := firestoreCfg.Configure(ctx)
			if err != nil {
				return err
			}
			defer repo.Close()

			// Without Firestore the memory repository starts empty; fill
			// it with the mock dataset so the command still produces output
			activeLoad, err := repo.ActiveLoad(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to check repository state")
			}
			if activeLoad == "" {
				loader := usecase.NewLoader(repo, nil, 0)
				if err := loader.Seed(ctx, seedCfg.Configure(catalog).Generate()); err != nil {
					return err
				}
			}

			records, err := repo.ListDevices(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to list devices")
			}

			matched := make([]*model.DeviceRecord, 0, len(records))
			for _, r := range records {
				if filters.Matches(r) {
					matched = append(matched, r)
				}
			}

			csv := usecase.ExportCSV(matched)
			if csv == "" {
				logger.Warn("No rows matched; no file written")
				return nil
			}

			if err := os.WriteFile(output, []byte(csv), 0o644); err != nil {
				return goerr.Wrap(err, "failed to write CSV file",
					goerr.V("path", output))
			}

			logger.Info("CSV written",
				slog.String("path", output),
				slog.Int("rows", len(matched)),
			)
			return nil
		},
	}
}
