package api

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/controlroom/pkg/advisory"
	"github.com/travigo/controlroom/pkg/database"
	"github.com/travigo/controlroom/pkg/dataimporter"
	"github.com/travigo/controlroom/pkg/redis_client"
	"github.com/travigo/controlroom/pkg/reports"
	"github.com/travigo/controlroom/pkg/snapshot"
	"github.com/travigo/controlroom/pkg/timetable"
	"github.com/travigo/controlroom/pkg/util"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "web-api",
		Usage: "Provides the control room web API",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run web api server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "listen",
						Value: ":5000",
						Usage: "listen target for the web server",
					},
					&cli.BoolFlag{
						Name:  "memory",
						Value: false,
						Usage: "serve from an in-memory timetable instead of MongoDB",
					},
					&cli.StringFlag{
						Name:  "seed",
						Value: "data/trains.yaml",
						Usage: "timetable file loaded into the in-memory store",
					},
				},
				Action: func(c *cli.Context) error {
					var store timetable.Store

					if c.Bool("memory") {
						trains, err := dataimporter.DecodeFile(c.String("seed"))
						if err != nil {
							return err
						}
						store = timetable.NewMemoryStore(trains...)

						log.Info().Int("trains", len(trains)).Msg("Using in-memory timetable")
					} else {
						if err := database.Connect(); err != nil {
							return err
						}
						defer database.Disconnect()

						store = timetable.NewMongoStore(database.GetCollection(database.TrainsCollection))
					}

					options := Options{
						Schedule: snapshot.NewService(store, timetable.NewRandomStatusSimulator()),
						Provider: newProvider(),
					}

					if redis_client.Configured() {
						if err := redis_client.Connect(); err != nil {
							return err
						}

						options.SummaryCache = timetable.NewSummaryCache(redis_client.Client, time.Hour)

						publisher, err := reports.NewQueuePublisher(redis_client.QueueConnection)
						if err != nil {
							return err
						}
						options.KPIPublisher = publisher
					}

					return SetupServer(c.String("listen"), options)
				},
			},
		},
	}
}

func newProvider() advisory.Provider {
	env := util.GetEnvironmentVariables()

	if url := env["CONTROLROOM_ADVISORY_URL"]; url != "" {
		log.Info().Str("url", url).Msg("Using external advisory provider")
		return advisory.NewHTTPProvider(url)
	}

	return advisory.RuleProvider{}
}
