package timetable

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fixedSource struct {
	value int
}

func (f fixedSource) IntN(int) int {
	return f.value
}

// delaySource returns a source that yields the given simulated delay
func delaySource(delay int) fixedSource {
	return fixedSource{value: delay - MinSimulatedDelay}
}

func TestStatusForDelay(t *testing.T) {
	assert.Equal(t, "On Time", StatusForDelay(0))
	assert.Equal(t, "Delayed by 13 min", StatusForDelay(13))
	assert.Equal(t, "Delayed by 1 min", StatusForDelay(1))
	assert.Equal(t, "Arriving 2 min early", StatusForDelay(-2))
}

func TestSimulateForcedZeroDelay(t *testing.T) {
	simulator := NewStatusSimulator(delaySource(0))
	record := &TrainRecord{TrainNo: 32242, Name: "SEALDAH - DURONTO EXPRESS", Arrives: "11:10AM", Direction: DirectionDown, Status: "Hold"}

	view := simulator.Simulate(record)

	assert.Equal(t, "On Time", view.Status)
	assert.Equal(t, 0, view.DelayMinutes)
	assert.Equal(t, 32242, view.TrainNo)
	assert.Equal(t, "11:10AM", view.Arrives)
	assert.Equal(t, DirectionDown, view.Direction)
	assert.Equal(t, "Hold", record.Status, "source record must not be mutated")
}

func TestSimulatePassesFieldsThrough(t *testing.T) {
	simulator := NewStatusSimulator(delaySource(7))
	record := &TrainRecord{TrainNo: 33533, Name: "SEALDAH - HASNABAD Local", Arrives: "10:26AM", Departs: "10:27AM", Duration: "1 min", Direction: DirectionUp}

	view := simulator.Simulate(record)

	expected := *record
	expected.Status = "Delayed by 7 min"
	assert.Equal(t, expected, view.TrainRecord)
	assert.Equal(t, 7, view.DelayMinutes)
}

func TestSampleDelayRange(t *testing.T) {
	statusShape := regexp.MustCompile(`^(On Time|Delayed by ([1-9]|1[0-3]) min|Arriving [12] min early)$`)

	for seed := uint64(0); seed < 50; seed++ {
		simulator := NewSeededStatusSimulator(seed)
		seen := map[int]bool{}

		for i := 0; i < 200; i++ {
			delay := simulator.SampleDelay()
			assert.GreaterOrEqual(t, delay, MinSimulatedDelay)
			assert.LessOrEqual(t, delay, MaxSimulatedDelay)
			assert.Regexp(t, statusShape, StatusForDelay(delay))
			seen[delay] = true
		}

		assert.Greater(t, len(seen), 1)
	}
}

func TestSeededSimulatorIsReproducible(t *testing.T) {
	first := NewSeededStatusSimulator(42)
	second := NewSeededStatusSimulator(42)

	for i := 0; i < 20; i++ {
		assert.Equal(t, first.SampleDelay(), second.SampleDelay())
	}
}
