package reports

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/controlroom/pkg/consumer"
	"github.com/travigo/controlroom/pkg/elastic_client"
	"github.com/travigo/controlroom/pkg/redis_client"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "reports",
		Usage: "Historical KPI reporting",
		Subcommands: []*cli.Command{
			{
				Name:  "consume",
				Usage: "index queued KPI snapshots into Elasticsearch",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "consumers",
						Value: 2,
						Usage: "number of queue consumers",
					},
					&cli.StringFlag{
						Name:  "stats-listen",
						Value: ":3333",
						Usage: "listen target for the queue stats server, empty to disable",
					},
				},
				Action: func(c *cli.Context) error {
					if err := redis_client.Connect(); err != nil {
						return err
					}
					if err := elastic_client.Connect(true); err != nil {
						return err
					}

					redisConsumer := consumer.RedisConsumer{
						QueueName:       QueueName,
						NumberConsumers: c.Int("consumers"),
						BatchSize:       20,
						Timeout:         2 * time.Second,
						Consumer:        NewBatchConsumer(elastic_client.IndexRequest),
						StatsListen:     c.String("stats-listen"),
					}
					if err := redisConsumer.Setup(); err != nil {
						return err
					}

					signals := make(chan os.Signal, 1)
					signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
					defer signal.Stop(signals)

					<-signals
					go func() {
						<-signals // hard exit on second signal in case shutdown gets stuck
						os.Exit(1)
					}()

					log.Info().Msg("Stopping KPI consumers")
					<-redis_client.QueueConnection.StopAllConsuming()
					elastic_client.WaitUntilQueueEmpty()

					return nil
				},
			},
		},
	}
}
