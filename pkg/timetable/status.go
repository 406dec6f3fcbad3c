package timetable

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"time"
)

const (
	MinSimulatedDelay = -2
	MaxSimulatedDelay = 13
)

// RandomSource is satisfied by *rand.Rand
type RandomSource interface {
	IntN(n int) int
}

// StatusSimulator derives a live status for a record from a random delay.
// It is safe for concurrent use; draws are serialised over the source.
type StatusSimulator struct {
	mutex  sync.Mutex
	source RandomSource
}

func NewStatusSimulator(source RandomSource) *StatusSimulator {
	return &StatusSimulator{source: source}
}

func NewSeededStatusSimulator(seed uint64) *StatusSimulator {
	return NewStatusSimulator(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

func NewRandomStatusSimulator() *StatusSimulator {
	return NewSeededStatusSimulator(uint64(time.Now().UnixNano()))
}

// SampleDelay draws a delay uniformly from [MinSimulatedDelay, MaxSimulatedDelay]
func (s *StatusSimulator) SampleDelay() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return s.source.IntN(MaxSimulatedDelay-MinSimulatedDelay+1) + MinSimulatedDelay
}

func (s *StatusSimulator) Simulate(record *TrainRecord) *LiveTrainView {
	delay := s.SampleDelay()

	view := &LiveTrainView{
		TrainRecord:  *record,
		DelayMinutes: delay,
	}
	view.Status = StatusForDelay(delay)

	return view
}

func StatusForDelay(delay int) string {
	switch {
	case delay > 0:
		return fmt.Sprintf("Delayed by %d min", delay)
	case delay < 0:
		return fmt.Sprintf("Arriving %d min early", -delay)
	default:
		return StatusOnTime
	}
}
