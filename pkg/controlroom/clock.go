package controlroom

import (
	"sync"

	"github.com/travigo/controlroom/pkg/timetable"
)

const (
	DefaultStartMinutes = 600
	MaxSpeed            = 8
)

// SimulationClock is session local virtual time in minutes since midnight
type SimulationClock struct {
	mutex   sync.Mutex
	minutes int
	speed   int
}

func NewSimulationClock(startMinutes int) *SimulationClock {
	return &SimulationClock{
		minutes: wrapMinutes(startMinutes),
		speed:   1,
	}
}

func (c *SimulationClock) Minutes() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	return c.minutes
}

func (c *SimulationClock) Speed() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	return c.speed
}

// SetSpeed clamps speed to [1, MaxSpeed] and rounds it down to a power of
// two so CycleSpeed always lands on 1, 2, 4 or 8
func (c *SimulationClock) SetSpeed(speed int) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	speed = min(max(speed, 1), MaxSpeed)

	c.speed = 1
	for c.speed*2 <= speed {
		c.speed *= 2
	}
}

// CycleSpeed doubles the speed, going back to 1 after MaxSpeed
func (c *SimulationClock) CycleSpeed() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.speed >= MaxSpeed {
		c.speed = 1
	} else {
		c.speed = min(c.speed*2, MaxSpeed)
	}

	return c.speed
}

// Tick advances the clock by the current speed and returns the new time
func (c *SimulationClock) Tick() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.minutes = wrapMinutes(c.minutes + c.speed)

	return c.minutes
}

func (c *SimulationClock) String() string {
	return timetable.FormatClock(c.Minutes())
}

func wrapMinutes(minutes int) int {
	return ((minutes % timetable.MinutesPerDay) + timetable.MinutesPerDay) % timetable.MinutesPerDay
}
