package timetable

import (
	"fmt"
	"strings"
)

type Direction string

const (
	DirectionUp   Direction = "Up"
	DirectionDown Direction = "Down"
)

const StatusOnTime = "On Time"

// TrainRecord is a single timetable entry as held by the store.
// TrainNo is the natural key and must stay stable between snapshots.
type TrainRecord struct {
	TrainNo int    `groups:"basic,summary" json:"trainNo" bson:"trainNo" yaml:"trainNo" csv:"trainNo"`
	Name    string `groups:"basic,summary" json:"name" bson:"name" yaml:"name" csv:"name"`

	Arrives  string `groups:"basic" json:"arrives" bson:"arrives" yaml:"arrives" csv:"arrives"`
	Departs  string `groups:"basic" json:"departs" bson:"departs" yaml:"departs" csv:"departs"`
	Duration string `groups:"basic" json:"duration" bson:"duration" yaml:"duration" csv:"duration"`

	Direction Direction `groups:"basic" json:"direction" bson:"direction" yaml:"direction" csv:"direction"`
	Status    string    `groups:"basic" json:"status" bson:"status" yaml:"status" csv:"status"`
}

// LiveTrainView is a TrainRecord with a freshly simulated status. It only
// exists for the lifetime of a single response.
type LiveTrainView struct {
	TrainRecord

	DelayMinutes int `json:"delayMinutes"`
}

func (t *TrainRecord) IsDown() bool {
	return strings.EqualFold(string(t.Direction), string(DirectionDown))
}

// ApplyDefaults fills in the values the store assumes when a record is created
func (t *TrainRecord) ApplyDefaults() {
	if strings.TrimSpace(t.Status) == "" {
		t.Status = StatusOnTime
	}

	switch {
	case strings.EqualFold(string(t.Direction), string(DirectionUp)):
		t.Direction = DirectionUp
	case strings.EqualFold(string(t.Direction), string(DirectionDown)):
		t.Direction = DirectionDown
	}
}

func (t *TrainRecord) Validate() error {
	if t.TrainNo <= 0 {
		return fmt.Errorf("%w: trainNo must be a positive integer", ErrInvalidTrain)
	}
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("%w: train %d must have a name", ErrInvalidTrain, t.TrainNo)
	}
	if t.Direction != DirectionUp && t.Direction != DirectionDown {
		return fmt.Errorf("%w: train %d has direction %q, expected Up or Down", ErrInvalidTrain, t.TrainNo, t.Direction)
	}

	return nil
}
