package dataimporter

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/controlroom/pkg/database"
	"github.com/travigo/controlroom/pkg/redis_client"
	"github.com/travigo/controlroom/pkg/timetable"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "data-importer",
		Usage: "Loads timetable records into the store",
		Subcommands: []*cli.Command{
			{
				Name:      "file",
				Usage:     "import a YAML or CSV timetable file",
				ArgsUsage: "<path>",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "replace",
						Value: false,
						Usage: "drop every existing train before importing",
					},
				},
				Action: func(c *cli.Context) error {
					path := c.Args().First()
					if path == "" {
						path = "data/trains.yaml"
					}

					trains, err := DecodeFile(path)
					if err != nil {
						return err
					}

					if err := database.Connect(); err != nil {
						return err
					}
					defer database.Disconnect()

					ctx, cancel := context.WithTimeout(c.Context, 2*time.Minute)
					defer cancel()

					store := timetable.NewMongoStore(database.GetCollection(database.TrainsCollection))
					inserted, err := Import(ctx, store, trains, c.Bool("replace"))
					if err != nil {
						return err
					}

					if redis_client.Configured() {
						if err := redis_client.Connect(); err != nil {
							log.Warn().Err(err).Msg("Could not connect to Redis to invalidate train list")
						} else if err := timetable.NewSummaryCache(redis_client.Client, time.Hour).Invalidate(ctx); err != nil {
							log.Warn().Err(err).Msg("Failed to invalidate train list cache")
						}
					}

					log.Info().Str("path", path).Int("inserted", inserted).Int("records", len(trains)).Msg("Imported timetable")

					return nil
				},
			},
		},
	}
}
