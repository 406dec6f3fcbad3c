package reports

import (
	"time"

	"github.com/travigo/controlroom/pkg/timetable"
)

type KPISnapshot struct {
	GeneratedAt time.Time `json:"generatedAt"`

	// AverageDelay is over delayed trains only
	AverageDelay  float64 `json:"avgDelay"`
	Throughput    int     `json:"throughput"`
	OnTimePercent float64 `json:"onTimePercent"`

	Delayed int `json:"delayed"`
	Early   int `json:"early"`
	OnTime  int `json:"onTime"`
}

func Calculate(trains []*timetable.LiveTrainView, generatedAt time.Time) KPISnapshot {
	snapshot := KPISnapshot{
		GeneratedAt: generatedAt,
		Throughput:  len(trains),
	}

	totalDelay := 0
	for _, train := range trains {
		switch {
		case train.DelayMinutes > 0:
			snapshot.Delayed++
			totalDelay += train.DelayMinutes
		case train.DelayMinutes < 0:
			snapshot.Early++
		}

		if train.Status == timetable.StatusOnTime {
			snapshot.OnTime++
		}
	}

	if snapshot.Delayed > 0 {
		snapshot.AverageDelay = float64(totalDelay) / float64(snapshot.Delayed)
	}
	if snapshot.Throughput > 0 {
		snapshot.OnTimePercent = float64(snapshot.OnTime) / float64(snapshot.Throughput) * 100
	}

	return snapshot
}
