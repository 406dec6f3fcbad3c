package timetable

import "context"

// Store is the persisted collection of TrainRecords
type Store interface {
	// ListTrains returns every record in insertion order
	ListTrains(ctx context.Context) ([]*TrainRecord, error)
	GetTrain(ctx context.Context, trainNo int) (*TrainRecord, error)
	CreateTrain(ctx context.Context, train *TrainRecord) error
	// ReplaceTrains drops every existing record and inserts trains
	ReplaceTrains(ctx context.Context, trains []*TrainRecord) error
}
