package advisory

import (
	"fmt"

	"github.com/travigo/controlroom/pkg/timetable"
	"github.com/travigo/controlroom/pkg/util"
)

type ActionType string

const (
	ActionDelayed    ActionType = "Delayed"
	ActionHold       ActionType = "Hold"
	ActionRerouted   ActionType = "Rerouted"
	ActionSuggest    ActionType = "Suggest"
	ActionPrioritize ActionType = "Prioritize"
	ActionProceed    ActionType = "Proceed"
	ActionNone       ActionType = "None"
)

const (
	CauseClimate     = "Climate"
	CauseTraffic     = "Traffic"
	CauseTechnical   = "Technical"
	CauseMaintenance = "Maintenance"
	CauseAccident    = "Accident"
)

// Causes lists every cause with an explicit action
var Causes = []string{CauseClimate, CauseTraffic, CauseTechnical, CauseMaintenance, CauseAccident}

var causeActions = map[string]ActionType{
	"climate":     ActionDelayed,
	"traffic":     ActionHold,
	"technical":   ActionDelayed,
	"maintenance": ActionRerouted,
	"accident":    ActionHold,
}

// Suggest maps a disruption cause to an operator action. Matching ignores
// case and surrounding whitespace; any other cause maps to ActionSuggest.
func Suggest(cause string) ActionType {
	if action, ok := causeActions[util.NormaliseKey(cause)]; ok {
		return action
	}

	return ActionSuggest
}

// DecisionText is the fallback operator suggestion for a disrupted train
func DecisionText(train *timetable.TrainRecord, cause string) string {
	switch util.NormaliseKey(cause) {
	case "climate":
		return fmt.Sprintf("Delay train %s (%d) by 15 minutes due to weather.", train.Name, train.TrainNo)
	case "traffic":
		return fmt.Sprintf("Hold %s (%d) until the congestion ahead clears.", train.Name, train.TrainNo)
	case "technical":
		return fmt.Sprintf("Redirect %s (%d) to maintenance.", train.Name, train.TrainNo)
	case "maintenance":
		return fmt.Sprintf("Reroute %s (%d) around the maintenance block.", train.Name, train.TrainNo)
	case "accident":
		return fmt.Sprintf("Hold %s (%d) at next station.", train.Name, train.TrainNo)
	default:
		return "No action required."
	}
}
