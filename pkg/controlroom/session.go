package controlroom

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc"
	"github.com/travigo/controlroom/pkg/advisory"
	"github.com/travigo/controlroom/pkg/ledger"
	"github.com/travigo/controlroom/pkg/position"
	"github.com/travigo/controlroom/pkg/timetable"
)

var ErrSessionClosed = errors.New("session closed")

type ScheduleSource interface {
	Schedule(ctx context.Context) ([]*timetable.LiveTrainView, error)
}

type Advisor interface {
	Recommend(ctx context.Context, trainNo int, cause string) ([]advisory.Recommendation, error)
}

type SessionOptions struct {
	StartMinutes int
	Speed        int

	PollInterval time.Duration
	TickInterval time.Duration

	// OnTick is called from the clock goroutine after every tick
	OnTick func(clock int, markers []position.Marker)
}

func DefaultSessionOptions() SessionOptions {
	return SessionOptions{
		StartMinutes: DefaultStartMinutes,
		Speed:        1,
		PollInterval: 10 * time.Second,
		TickInterval: time.Second,
	}
}

// Session is one operator's view of the control room: its own clock, board
// and ledger. The schedule poll and the clock run independently so a slow
// fetch never holds up the clock. Once closed no further state changes.
type Session struct {
	Clock  *SimulationClock
	Board  *ledger.Board
	Ledger *ledger.Ledger

	schedule ScheduleSource
	advisor  Advisor
	options  SessionOptions

	ctx    context.Context
	cancel context.CancelFunc
	wg     conc.WaitGroup

	now func() time.Time
}

func NewSession(parent context.Context, schedule ScheduleSource, advisor Advisor, options SessionOptions) *Session {
	ctx, cancel := context.WithCancel(parent)

	defaults := DefaultSessionOptions()
	if options.PollInterval <= 0 {
		options.PollInterval = defaults.PollInterval
	}
	if options.TickInterval <= 0 {
		options.TickInterval = defaults.TickInterval
	}

	clock := NewSimulationClock(options.StartMinutes)
	clock.SetSpeed(options.Speed)

	return &Session{
		Clock:    clock,
		Board:    ledger.NewBoard(),
		Ledger:   ledger.New(),
		schedule: schedule,
		advisor:  advisor,
		options:  options,
		ctx:      ctx,
		cancel:   cancel,
		now:      time.Now,
	}
}

// Start runs the schedule poll and the simulation clock until Close
func (s *Session) Start() {
	s.wg.Go(s.pollLoop)
	s.wg.Go(s.clockLoop)
}

// Close cancels the session and waits for every in-flight request
func (s *Session) Close() {
	s.cancel()
	s.wg.Wait()
}

func (s *Session) Done() <-chan struct{} {
	return s.ctx.Done()
}

// Refresh fetches the schedule and replaces the board with it
func (s *Session) Refresh() error {
	trains, err := s.schedule.Schedule(s.ctx)
	if err != nil {
		return err
	}

	if s.ctx.Err() != nil {
		return ErrSessionClosed
	}
	s.Board.Replace(trains)

	return nil
}

// RequestRecommendations asks the advisor in the background. Results land in
// the ledger unless the session has been closed by then.
func (s *Session) RequestRecommendations(trainNo int, cause string) {
	s.wg.Go(func() {
		advisories, err := s.advisor.Recommend(s.ctx, trainNo, cause)
		if err != nil {
			if s.ctx.Err() == nil {
				log.Error().Err(err).Int("trainNo", trainNo).Str("cause", cause).Msg("Failed to get recommendations")
			}
			return
		}

		if s.ctx.Err() != nil {
			return
		}

		s.Ledger.Add(ledger.FromAdvisories(s.now(), advisories)...)

		log.Info().Int("trainNo", trainNo).Str("cause", cause).Int("count", len(advisories)).Msg("Received recommendations")
	})
}

func (s *Session) Accept(id int64) (ledger.Recommendation, error) {
	if s.ctx.Err() != nil {
		return ledger.Recommendation{}, ErrSessionClosed
	}

	return s.Ledger.Accept(id, s.Board)
}

func (s *Session) Override(id int64) (ledger.Recommendation, error) {
	if s.ctx.Err() != nil {
		return ledger.Recommendation{}, ErrSessionClosed
	}

	return s.Ledger.Override(id, s.Board)
}

func (s *Session) Markers() []position.Marker {
	return position.Markers(s.Board.Trains(), s.Clock.Minutes())
}

func (s *Session) pollLoop() {
	ticker := time.NewTicker(s.options.PollInterval)
	defer ticker.Stop()

	for {
		if err := s.Refresh(); err != nil && s.ctx.Err() == nil {
			log.Error().Err(err).Msg("Failed to fetch schedule")
		}

		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (s *Session) clockLoop() {
	ticker := time.NewTicker(s.options.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
		}

		if s.ctx.Err() != nil {
			return
		}
		clock := s.Clock.Tick()

		if s.options.OnTick != nil {
			s.options.OnTick(clock, s.Markers())
		}
	}
}
