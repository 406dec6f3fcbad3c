package controlroom

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kr/pretty"
	"github.com/rs/zerolog/log"
	"github.com/travigo/controlroom/pkg/position"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "simulation",
		Usage: "Console control room session against the web API",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run a simulation session",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "api",
						Value: "http://localhost:5000",
						Usage: "base URL of the control room web API",
					},
					&cli.IntFlag{
						Name:  "speed",
						Value: 1,
						Usage: "simulated minutes per tick (1, 2, 4 or 8), SIGHUP cycles it",
					},
					&cli.IntFlag{
						Name:  "start",
						Value: DefaultStartMinutes,
						Usage: "simulation start in minutes since midnight",
					},
					&cli.IntFlag{
						Name:  "train",
						Usage: "train number to raise a disruption for",
					},
					&cli.StringFlag{
						Name:  "cause",
						Value: "Climate",
						Usage: "disruption cause",
					},
					&cli.BoolFlag{
						Name:  "auto-accept",
						Usage: "accept every recommendation as soon as it arrives",
					},
					&cli.DurationFlag{
						Name:  "duration",
						Usage: "stop after this long, runs until interrupted when zero",
					},
				},
				Action: func(c *cli.Context) error {
					client := NewClient(c.String("api"))
					autoAccept := c.Bool("auto-accept")

					var session *Session

					options := DefaultSessionOptions()
					options.StartMinutes = c.Int("start")
					options.Speed = c.Int("speed")
					options.OnTick = func(clock int, markers []position.Marker) {
						delayed := 0
						for _, marker := range markers {
							if marker.Delayed {
								delayed++
							}
						}

						log.Info().
							Str("clock", session.Clock.String()).
							Int("speed", session.Clock.Speed()).
							Int("trains", len(markers)).
							Int("delayed", delayed).
							Int("pending", session.Ledger.Len()).
							Msg("Tick")

						if autoAccept {
							acceptPending(session)
						}
					}

					session = NewSession(c.Context, client, client, options)
					session.Start()

					if trainNo := c.Int("train"); trainNo != 0 {
						session.RequestRecommendations(trainNo, c.String("cause"))
					}

					signals := make(chan os.Signal, 1)
					signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
					defer signal.Stop(signals)

					var timeout <-chan time.Time
					if duration := c.Duration("duration"); duration > 0 {
						timeout = time.After(duration)
					}

					speedSignals := make(chan os.Signal, 1)
					signal.Notify(speedSignals, syscall.SIGHUP)
					defer signal.Stop(speedSignals)

				wait:
					for {
						select {
						case <-speedSignals:
							log.Info().Int("speed", session.Clock.CycleSpeed()).Msg("Simulation speed changed")
						case <-signals:
							break wait
						case <-timeout:
							break wait
						case <-session.Done():
							break wait
						}
					}

					log.Info().Msg("Closing simulation session")
					session.Close()

					for _, recommendation := range session.Ledger.Pending() {
						log.Info().
							Int64("id", recommendation.ID).
							Int("trainNo", recommendation.TrainID).
							Str("action", string(recommendation.ActionType)).
							Msg("Recommendation left pending")
					}

					return nil
				},
			},
		},
	}
}

func acceptPending(session *Session) {
	for _, recommendation := range session.Ledger.Pending() {
		accepted, err := session.Accept(recommendation.ID)
		if err != nil {
			log.Debug().Err(err).Int64("id", recommendation.ID).Msg("Recommendation no longer pending")
			continue
		}

		log.Info().
			Int64("id", accepted.ID).
			Int("trainNo", accepted.TrainID).
			Str("action", string(accepted.ActionType)).
			Str("text", accepted.Text).
			Msg("Accepted recommendation")
		log.Debug().Msg(pretty.Sprint(accepted))
	}
}
