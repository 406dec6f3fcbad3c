package advisory

import (
	"context"
	"errors"

	"github.com/jinzhu/copier"
	"github.com/travigo/controlroom/pkg/timetable"
)

// ErrProviderFailure wraps any error from a recommendation provider
var ErrProviderFailure = errors.New("advisory provider failure")

type Train struct {
	TrainNo   int    `json:"trainNo"`
	Name      string `json:"name"`
	Arrives   string `json:"arrives"`
	Departs   string `json:"departs"`
	Duration  string `json:"duration"`
	Direction string `json:"direction"`
	Status    string `json:"status"`
}

type Request struct {
	DisruptionTrainID int     `json:"disruptionTrainId"`
	Cause             string  `json:"cause"`
	Trains            []Train `json:"trains"`
}

type KPIs struct {
	PunctualityImpact string `json:"punctualityImpact"`
	ThroughputImpact  string `json:"throughputImpact"`
	AvgDelay          string `json:"avgDelay"`
}

type Recommendation struct {
	TrainNo   int        `json:"trainNo"`
	TrainName string     `json:"trainName"`
	Action    ActionType `json:"action"`
	Text      string     `json:"text"`
	KPIs      *KPIs      `json:"kpis,omitempty"`
}

type Provider interface {
	Recommend(ctx context.Context, request Request) ([]Recommendation, error)
}

func NewRequest(disruptionTrainID int, cause string, records []*timetable.TrainRecord) (Request, error) {
	request := Request{
		DisruptionTrainID: disruptionTrainID,
		Cause:             cause,
		Trains:            []Train{},
	}

	if err := copier.Copy(&request.Trains, records); err != nil {
		return request, err
	}

	for i := range request.Trains {
		if request.Trains[i].Status == "" {
			request.Trains[i].Status = timetable.StatusOnTime
		}
	}

	return request, nil
}
