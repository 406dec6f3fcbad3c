package ledger

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/controlroom/pkg/advisory"
	"github.com/travigo/controlroom/pkg/timetable"
)

func duronto() *timetable.LiveTrainView {
	return &timetable.LiveTrainView{
		TrainRecord: timetable.TrainRecord{TrainNo: 32242, Name: "SEALDAH - DURONTO EXPRESS", Arrives: "11:10AM", Direction: timetable.DirectionDown, Status: "Delayed by 4 min"},
	}
}

func boardWith(trains ...*timetable.LiveTrainView) *Board {
	board := NewBoard()
	board.Replace(trains)

	return board
}

func TestAccept(t *testing.T) {
	board := boardWith(duronto())
	ledger := New()
	ledger.Add(Recommendation{ID: 1, TrainID: 32242, ActionType: advisory.ActionHold})

	accepted, err := ledger.Accept(1, board)
	require.NoError(t, err)
	assert.Equal(t, int64(1), accepted.ID)

	train, ok := board.Train(32242)
	require.True(t, ok)
	assert.Equal(t, "Hold", train.Status)
	assert.Empty(t, ledger.Pending())
}

func TestOverride(t *testing.T) {
	board := boardWith(duronto())
	ledger := New()
	ledger.Add(Recommendation{ID: 1, TrainID: 32242, ActionType: advisory.ActionHold})

	_, err := ledger.Override(1, board)
	require.NoError(t, err)

	train, _ := board.Train(32242)
	assert.Equal(t, "On Time", train.Status)
	assert.Equal(t, 0, ledger.Len())
}

func TestDecisionIsTerminal(t *testing.T) {
	board := boardWith(duronto())
	ledger := New()
	ledger.Add(Recommendation{ID: 1, TrainID: 32242, ActionType: advisory.ActionHold})

	_, err := ledger.Accept(1, board)
	require.NoError(t, err)

	_, err = ledger.Override(1, board)
	assert.ErrorIs(t, err, ErrNotPending)

	train, _ := board.Train(32242)
	assert.Equal(t, "Hold", train.Status)
}

func TestConcurrentDecisionsProcessOnce(t *testing.T) {
	board := boardWith(duronto())
	ledger := New()
	ledger.Add(Recommendation{ID: 7, TrainID: 32242, ActionType: advisory.ActionRerouted})

	var successes atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(accept bool) {
			defer wg.Done()

			var err error
			if accept {
				_, err = ledger.Accept(7, board)
			} else {
				_, err = ledger.Override(7, board)
			}
			if err == nil {
				successes.Add(1)
			}
		}(i%2 == 0)
	}
	wg.Wait()

	assert.Equal(t, int32(1), successes.Load())
}

func TestAcceptUnknownTrainStillRemoves(t *testing.T) {
	board := boardWith(duronto())
	ledger := New()
	ledger.Add(Recommendation{ID: 3, TrainID: 11111, ActionType: advisory.ActionHold})

	_, err := ledger.Accept(3, board)
	require.NoError(t, err)
	assert.Equal(t, 0, ledger.Len())

	train, _ := board.Train(32242)
	assert.Equal(t, "Delayed by 4 min", train.Status)
}

func TestAddPutsNewestFirst(t *testing.T) {
	ledger := New()
	ledger.Add(Recommendation{ID: 1}, Recommendation{ID: 2})
	ledger.Add(Recommendation{ID: 3})

	var ids []int64
	for _, recommendation := range ledger.Pending() {
		ids = append(ids, recommendation.ID)
	}
	assert.Equal(t, []int64{3, 1, 2}, ids)
}

func TestFromAdvisories(t *testing.T) {
	generatedAt := time.UnixMilli(1_700_000_000_000)

	recommendations := FromAdvisories(generatedAt, []advisory.Recommendation{
		{TrainNo: 32242, Action: advisory.ActionHold, Text: "Hold it"},
		{TrainNo: 33533, Text: "No action given"},
	})

	require.Len(t, recommendations, 2)
	assert.Equal(t, int64(1_700_000_000_000), recommendations[0].ID)
	assert.Equal(t, int64(1_700_000_000_001), recommendations[1].ID)
	assert.Equal(t, 32242, recommendations[0].TrainID)
	assert.Equal(t, advisory.ActionHold, recommendations[0].ActionType)
	assert.Equal(t, advisory.ActionSuggest, recommendations[1].ActionType)
}

func TestAddKeepsIDsUniqueAcrossBatches(t *testing.T) {
	generatedAt := time.UnixMilli(1_700_000_000_000)

	board := boardWith(
		duronto(),
		&timetable.LiveTrainView{TrainRecord: timetable.TrainRecord{TrainNo: 33533, Status: timetable.StatusOnTime}},
		&timetable.LiveTrainView{TrainRecord: timetable.TrainRecord{TrainNo: 31341, Status: timetable.StatusOnTime}},
	)
	ledger := New()

	first := ledger.Add(FromAdvisories(generatedAt, []advisory.Recommendation{
		{TrainNo: 32242, Action: advisory.ActionHold},
		{TrainNo: 33533, Action: advisory.ActionPrioritize},
	})...)
	second := ledger.Add(FromAdvisories(generatedAt.Add(time.Millisecond), []advisory.Recommendation{
		{TrainNo: 31341, Action: advisory.ActionProceed},
	})...)

	require.Len(t, first, 2)
	require.Len(t, second, 1)

	seen := map[int64]bool{}
	for _, recommendation := range ledger.Pending() {
		assert.False(t, seen[recommendation.ID], "duplicate id %d", recommendation.ID)
		seen[recommendation.ID] = true
	}
	assert.Len(t, seen, 3)
	assert.Equal(t, first[1].ID+1, second[0].ID)

	_, err := ledger.Accept(second[0].ID, board)
	require.NoError(t, err)

	proceeding, _ := board.Train(31341)
	assert.Equal(t, string(advisory.ActionProceed), proceeding.Status)
	prioritised, _ := board.Train(33533)
	assert.Equal(t, timetable.StatusOnTime, prioritised.Status)

	_, err = ledger.Accept(first[1].ID, board)
	require.NoError(t, err)
	prioritised, _ = board.Train(33533)
	assert.Equal(t, string(advisory.ActionPrioritize), prioritised.Status)
}
