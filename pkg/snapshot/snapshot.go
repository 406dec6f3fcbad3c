package snapshot

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"
	"github.com/travigo/controlroom/pkg/timetable"
)

const defaultMaxRetries = 3

// Service builds live schedule snapshots from the timetable store. It holds
// no state between requests, every call re-samples each train's delay.
type Service struct {
	Store     timetable.Store
	Simulator *timetable.StatusSimulator

	// MaxRetries bounds store retries on ErrStoreUnavailable
	MaxRetries uint64
	// NewBackOff overrides the retry policy, mostly for tests
	NewBackOff func() backoff.BackOff
}

func NewService(store timetable.Store, simulator *timetable.StatusSimulator) *Service {
	return &Service{
		Store:      store,
		Simulator:  simulator,
		MaxRetries: defaultMaxRetries,
	}
}

// GetSchedule returns every stored train with a freshly simulated status.
// Order follows the store and must not be relied on.
func (s *Service) GetSchedule(ctx context.Context) ([]*timetable.LiveTrainView, error) {
	records, err := s.Records(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]*timetable.LiveTrainView, 0, len(records))
	for _, record := range records {
		views = append(views, s.Simulator.Simulate(record))
	}

	return views, nil
}

// Records fetches the raw timetable, retrying while the store is unavailable
func (s *Service) Records(ctx context.Context) ([]*timetable.TrainRecord, error) {
	var records []*timetable.TrainRecord

	operation := func() error {
		var err error
		records, err = s.Store.ListTrains(ctx)

		if err != nil && !errors.Is(err, timetable.ErrStoreUnavailable) {
			return backoff.Permanent(err)
		}

		return err
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(s.backOff(), s.MaxRetries), ctx)

	err := backoff.RetryNotify(operation, policy, func(err error, wait time.Duration) {
		log.Warn().Err(err).Str("wait", wait.String()).Msg("Timetable store read failed, retrying")
	})
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (s *Service) backOff() backoff.BackOff {
	if s.NewBackOff != nil {
		return s.NewBackOff()
	}

	exponential := backoff.NewExponentialBackOff()
	exponential.InitialInterval = 100 * time.Millisecond
	exponential.MaxElapsedTime = 5 * time.Second

	return exponential
}
