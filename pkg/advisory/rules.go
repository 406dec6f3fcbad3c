package advisory

import (
	"context"
	"fmt"
	"strings"

	"github.com/travigo/controlroom/pkg/timetable"
	"golang.org/x/exp/slices"
)

const (
	prioritizedNeighbours = 2
	proceedingNeighbours  = 2
)

// RuleProvider answers recommendation requests locally. The disrupted train
// gets the table action for the cause; the trains arriving closest to it are
// told to prioritise, the next closest to proceed.
type RuleProvider struct{}

func (p RuleProvider) Recommend(_ context.Context, request Request) ([]Recommendation, error) {
	cause := strings.TrimSpace(request.Cause)
	if cause == "" {
		cause = "Unknown"
	}

	disruptionIndex := slices.IndexFunc(request.Trains, func(train Train) bool {
		return train.TrainNo == request.DisruptionTrainID
	})
	if disruptionIndex == -1 {
		return []Recommendation{{
			TrainNo:   request.DisruptionTrainID,
			TrainName: fmt.Sprint(request.DisruptionTrainID),
			Action:    ActionNone,
			Text:      "Disruption train not found in provided trains.",
			KPIs:      &KPIs{PunctualityImpact: "N/A", ThroughputImpact: "N/A", AvgDelay: "N/A"},
		}}, nil
	}
	disruption := request.Trains[disruptionIndex]

	recommendations := []Recommendation{disruptionRecommendation(disruption, cause)}

	type neighbour struct {
		train    Train
		distance int
	}

	disruptionArrives := timetable.MinutesOrZero(disruption.Arrives)
	var neighbours []neighbour
	for _, train := range request.Trains {
		if train.TrainNo == disruption.TrainNo {
			continue
		}

		distance := timetable.MinutesOrZero(train.Arrives) - disruptionArrives
		if distance < 0 {
			distance = -distance
		}
		neighbours = append(neighbours, neighbour{train: train, distance: distance})
	}

	slices.SortStableFunc(neighbours, func(a, b neighbour) int {
		return a.distance - b.distance
	})

	for i, n := range neighbours {
		switch {
		case i < prioritizedNeighbours:
			recommendations = append(recommendations, Recommendation{
				TrainNo:   n.train.TrainNo,
				TrainName: n.train.Name,
				Action:    ActionPrioritize,
				Text:      fmt.Sprintf("Prioritise %s (%d) arriving at %s.", n.train.Name, n.train.TrainNo, n.train.Arrives),
				KPIs:      &KPIs{PunctualityImpact: "Improved", ThroughputImpact: "Improved", AvgDelay: "Reduced"},
			})
		case i < prioritizedNeighbours+proceedingNeighbours:
			recommendations = append(recommendations, Recommendation{
				TrainNo:   n.train.TrainNo,
				TrainName: n.train.Name,
				Action:    ActionProceed,
				Text:      fmt.Sprintf("Allow %s (%d) to proceed as scheduled.", n.train.Name, n.train.TrainNo),
				KPIs:      &KPIs{PunctualityImpact: "Low", ThroughputImpact: "Neutral", AvgDelay: "0-5 min"},
			})
		}
	}

	return recommendations, nil
}

func disruptionRecommendation(train Train, cause string) Recommendation {
	action := Suggest(cause)
	recommendation := Recommendation{
		TrainNo:   train.TrainNo,
		TrainName: train.Name,
		Action:    action,
	}

	switch action {
	case ActionHold:
		recommendation.Text = fmt.Sprintf("Hold %s (%d) due to %s.", train.Name, train.TrainNo, strings.ToLower(cause))
		recommendation.KPIs = &KPIs{PunctualityImpact: "Medium", ThroughputImpact: "Medium", AvgDelay: "5-12 min"}
	case ActionRerouted:
		recommendation.Text = fmt.Sprintf("Reroute %s (%d) to avoid the maintenance block.", train.Name, train.TrainNo)
		recommendation.KPIs = &KPIs{PunctualityImpact: "High", ThroughputImpact: "Low", AvgDelay: "10-25 min"}
	case ActionDelayed:
		recommendation.Text = fmt.Sprintf("Delay %s (%d) due to %s.", train.Name, train.TrainNo, strings.ToLower(cause))
		recommendation.KPIs = &KPIs{PunctualityImpact: "High", ThroughputImpact: "Medium", AvgDelay: "8-20 min"}
	default:
		recommendation.Text = fmt.Sprintf("Review %s (%d), no rule covers %s.", train.Name, train.TrainNo, cause)
		recommendation.KPIs = &KPIs{PunctualityImpact: "Unknown", ThroughputImpact: "Unknown", AvgDelay: "Unknown"}
	}

	return recommendation
}
