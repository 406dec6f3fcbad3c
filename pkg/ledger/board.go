package ledger

import (
	"sync"

	"github.com/travigo/controlroom/pkg/timetable"
)

// Board is a session's view of the schedule. Readers always see a whole
// list: a fetch replaces it entirely and a status change swaps in a copy.
type Board struct {
	mutex  sync.RWMutex
	trains []*timetable.LiveTrainView
}

func NewBoard() *Board {
	return &Board{}
}

func (b *Board) Replace(trains []*timetable.LiveTrainView) {
	replacement := make([]*timetable.LiveTrainView, len(trains))
	copy(replacement, trains)

	b.mutex.Lock()
	b.trains = replacement
	b.mutex.Unlock()
}

// Trains returns the current list. Callers must treat it as read only.
func (b *Board) Trains() []*timetable.LiveTrainView {
	b.mutex.RLock()
	defer b.mutex.RUnlock()

	return b.trains
}

func (b *Board) Train(trainNo int) (*timetable.LiveTrainView, bool) {
	for _, train := range b.Trains() {
		if train.TrainNo == trainNo {
			return train, true
		}
	}

	return nil, false
}

// SetStatus reports whether a train with trainNo was on the board
func (b *Board) SetStatus(trainNo int, status string) bool {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	found := false
	replacement := make([]*timetable.LiveTrainView, len(b.trains))
	for i, train := range b.trains {
		if train.TrainNo == trainNo {
			updated := *train
			updated.Status = status
			train = &updated
			found = true
		}

		replacement[i] = train
	}

	if found {
		b.trains = replacement
	}

	return found
}
