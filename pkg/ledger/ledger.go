package ledger

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/travigo/controlroom/pkg/advisory"
	"github.com/travigo/controlroom/pkg/timetable"
	"golang.org/x/exp/slices"
)

var ErrNotPending = errors.New("recommendation is not pending")

// Recommendation is an advisory waiting for the operator. TrainID is a weak
// reference to a TrainRecord; the train may no longer be on the board.
type Recommendation struct {
	ID         int64               `json:"id"`
	TrainID    int                 `json:"trainId"`
	ActionType advisory.ActionType `json:"actionType"`
	Text       string              `json:"text"`
	KPIs       *advisory.KPIs      `json:"kpis,omitempty"`
}

// FromAdvisories numbers recommendations from the generation time in
// milliseconds plus their position in the batch
func FromAdvisories(generatedAt time.Time, advisories []advisory.Recommendation) []Recommendation {
	base := generatedAt.UnixMilli()

	recommendations := make([]Recommendation, 0, len(advisories))
	for i, advice := range advisories {
		actionType := advice.Action
		if actionType == "" {
			actionType = advisory.ActionSuggest
		}

		recommendations = append(recommendations, Recommendation{
			ID:         base + int64(i),
			TrainID:    advice.TrainNo,
			ActionType: actionType,
			Text:       advice.Text,
			KPIs:       advice.KPIs,
		})
	}

	return recommendations
}

type StatusUpdater interface {
	SetStatus(trainNo int, status string) bool
}

// Ledger holds pending recommendations. Accept and Override are terminal and
// both remove the recommendation, so a second decision on the same id fails.
type Ledger struct {
	mutex   sync.Mutex
	pending []Recommendation

	lastID int64
}

func New() *Ledger {
	return &Ledger{}
}

// Add puts new recommendations ahead of the ones already pending. IDs only
// ever increase within a ledger: an ID at or below the last one issued is
// moved up to the next free value. The stored recommendations are returned.
func (l *Ledger) Add(recommendations ...Recommendation) []Recommendation {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	added := slices.Clone(recommendations)
	for i := range added {
		if added[i].ID <= l.lastID {
			added[i].ID = l.lastID + 1
		}
		l.lastID = added[i].ID
	}

	l.pending = append(slices.Clone(added), l.pending...)

	return added
}

func (l *Ledger) Pending() []Recommendation {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	return slices.Clone(l.pending)
}

func (l *Ledger) Len() int {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	return len(l.pending)
}

// Accept applies the recommended action as the train's status
func (l *Ledger) Accept(id int64, board StatusUpdater) (Recommendation, error) {
	recommendation, err := l.take(id)
	if err != nil {
		return recommendation, err
	}

	board.SetStatus(recommendation.TrainID, string(recommendation.ActionType))

	return recommendation, nil
}

// Override discards the recommendation and puts the train back on time
func (l *Ledger) Override(id int64, board StatusUpdater) (Recommendation, error) {
	recommendation, err := l.take(id)
	if err != nil {
		return recommendation, err
	}

	board.SetStatus(recommendation.TrainID, timetable.StatusOnTime)

	return recommendation, nil
}

func (l *Ledger) take(id int64) (Recommendation, error) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	index := slices.IndexFunc(l.pending, func(r Recommendation) bool {
		return r.ID == id
	})
	if index == -1 {
		return Recommendation{}, fmt.Errorf("%w: %d", ErrNotPending, id)
	}

	recommendation := l.pending[index]
	l.pending = slices.Delete(l.pending, index, index+1)

	return recommendation, nil
}
