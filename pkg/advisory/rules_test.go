package advisory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/controlroom/pkg/timetable"
)

func sealdahRequest(t *testing.T, disruptionTrainID int, cause string) Request {
	records := []*timetable.TrainRecord{
		{TrainNo: 33533, Name: "SEALDAH - HASNABAD Local", Arrives: "10:26AM", Direction: timetable.DirectionUp},
		{TrainNo: 33661, Name: "BANGAON - SEALDAH Local", Arrives: "10:25AM", Direction: timetable.DirectionDown},
		{TrainNo: 31341, Name: "SEALDAH - NAIHATI Local", Arrives: "10:32AM", Direction: timetable.DirectionUp},
		{TrainNo: 30326, Name: "HASANABAD - SEALDAH Local", Arrives: "10:31AM", Direction: timetable.DirectionDown},
		{TrainNo: 33687, Name: "NAIHATI - SEALDAH Local", Arrives: "10:23AM", Direction: timetable.DirectionDown},
		{TrainNo: 31241, Name: "SEALDAH - BARRACKPORE Local", Arrives: "10:40AM", Direction: timetable.DirectionUp},
		{TrainNo: 32242, Name: "SEALDAH - DURONTO EXPRESS", Arrives: "11:10AM", Direction: timetable.DirectionDown},
	}

	request, err := NewRequest(disruptionTrainID, cause, records)
	require.NoError(t, err)

	return request
}

func TestNewRequestCopiesRecords(t *testing.T) {
	request := sealdahRequest(t, 33533, CauseTraffic)

	require.Len(t, request.Trains, 7)
	assert.Equal(t, 33533, request.Trains[0].TrainNo)
	assert.Equal(t, "SEALDAH - HASNABAD Local", request.Trains[0].Name)
	assert.Equal(t, "10:26AM", request.Trains[0].Arrives)
	assert.Equal(t, "Up", request.Trains[0].Direction)
	assert.Equal(t, timetable.StatusOnTime, request.Trains[0].Status)
}

func TestRuleProviderRecommend(t *testing.T) {
	recommendations, err := RuleProvider{}.Recommend(context.Background(), sealdahRequest(t, 33533, CauseTraffic))
	require.NoError(t, err)
	require.Len(t, recommendations, 5)

	assert.Equal(t, 33533, recommendations[0].TrainNo)
	assert.Equal(t, ActionHold, recommendations[0].Action)
	require.NotNil(t, recommendations[0].KPIs)
	assert.Equal(t, "5-12 min", recommendations[0].KPIs.AvgDelay)

	// 10:25 and 10:23 are closest to 10:26, then 10:31 and 10:32
	assert.Equal(t, 33661, recommendations[1].TrainNo)
	assert.Equal(t, ActionPrioritize, recommendations[1].Action)
	assert.Equal(t, 33687, recommendations[2].TrainNo)
	assert.Equal(t, ActionPrioritize, recommendations[2].Action)
	assert.Equal(t, 30326, recommendations[3].TrainNo)
	assert.Equal(t, ActionProceed, recommendations[3].Action)
	assert.Equal(t, 31341, recommendations[4].TrainNo)
	assert.Equal(t, ActionProceed, recommendations[4].Action)
}

func TestRuleProviderUsesActionTable(t *testing.T) {
	for _, cause := range append(Causes, "Strike") {
		recommendations, err := RuleProvider{}.Recommend(context.Background(), sealdahRequest(t, 32242, cause))
		require.NoError(t, err)

		assert.Equal(t, Suggest(cause), recommendations[0].Action, cause)
		assert.NotEmpty(t, recommendations[0].Text)
	}
}

func TestRuleProviderUnknownTrain(t *testing.T) {
	recommendations, err := RuleProvider{}.Recommend(context.Background(), sealdahRequest(t, 99999, CauseClimate))
	require.NoError(t, err)
	require.Len(t, recommendations, 1)

	assert.Equal(t, 99999, recommendations[0].TrainNo)
	assert.Equal(t, ActionNone, recommendations[0].Action)
}

func TestRuleProviderFewTrains(t *testing.T) {
	request, err := NewRequest(1, CauseAccident, []*timetable.TrainRecord{
		{TrainNo: 1, Name: "One", Arrives: "10:00"},
		{TrainNo: 2, Name: "Two", Arrives: "10:05"},
	})
	require.NoError(t, err)

	recommendations, err := RuleProvider{}.Recommend(context.Background(), request)
	require.NoError(t, err)
	require.Len(t, recommendations, 2)
	assert.Equal(t, ActionHold, recommendations[0].Action)
	assert.Equal(t, ActionPrioritize, recommendations[1].Action)
}
