package timetable

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStore keeps records in process, in insertion order. Used for local
// runs without MongoDB and in tests.
type MemoryStore struct {
	mutex  sync.RWMutex
	trains []TrainRecord

	unavailable bool
}

func NewMemoryStore(trains ...*TrainRecord) *MemoryStore {
	store := &MemoryStore{}
	for _, train := range trains {
		store.trains = append(store.trains, *train)
	}

	return store
}

// SetUnavailable makes every following call fail with ErrStoreUnavailable
func (s *MemoryStore) SetUnavailable(unavailable bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.unavailable = unavailable
}

func (s *MemoryStore) ListTrains(_ context.Context) ([]*TrainRecord, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if s.unavailable {
		return nil, ErrStoreUnavailable
	}

	trains := make([]*TrainRecord, 0, len(s.trains))
	for i := range s.trains {
		train := s.trains[i]
		trains = append(trains, &train)
	}

	return trains, nil
}

func (s *MemoryStore) GetTrain(_ context.Context, trainNo int) (*TrainRecord, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if s.unavailable {
		return nil, ErrStoreUnavailable
	}

	for _, train := range s.trains {
		if train.TrainNo == trainNo {
			return &train, nil
		}
	}

	return nil, fmt.Errorf("%w: %d", ErrUnknownTrain, trainNo)
}

func (s *MemoryStore) CreateTrain(_ context.Context, train *TrainRecord) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.unavailable {
		return ErrStoreUnavailable
	}

	for _, existing := range s.trains {
		if existing.TrainNo == train.TrainNo {
			return fmt.Errorf("%w: %d", ErrDuplicateTrain, train.TrainNo)
		}
	}

	s.trains = append(s.trains, *train)

	return nil
}

func (s *MemoryStore) ReplaceTrains(_ context.Context, trains []*TrainRecord) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.unavailable {
		return ErrStoreUnavailable
	}

	seen := map[int]bool{}
	replacement := make([]TrainRecord, 0, len(trains))
	for _, train := range trains {
		if seen[train.TrainNo] {
			return fmt.Errorf("%w: %d", ErrDuplicateTrain, train.TrainNo)
		}
		seen[train.TrainNo] = true

		replacement = append(replacement, *train)
	}

	s.trains = replacement

	return nil
}
