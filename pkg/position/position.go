package position

import (
	"math"
	"strings"

	"github.com/travigo/controlroom/pkg/timetable"
)

const (
	BaseLatitude  = 22.57
	BaseLongitude = 88.36

	// LatitudeStep stacks each row so markers don't overlap
	LatitudeStep = 0.001

	JourneyDurationMinutes = 30.0
	OffsetScale            = 0.02
)

type Marker struct {
	TrainNo   int     `json:"trainNo"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
	Status    string  `json:"status"`
	Delayed   bool    `json:"delayed"`
}

// Offset is the longitude offset of a train arriving at arrivesMinutes when
// the simulation clock reads clock. Down trains move the other way.
func Offset(clock int, arrivesMinutes int, down bool) float64 {
	diff := ((clock-arrivesMinutes)%timetable.MinutesPerDay + timetable.MinutesPerDay) % timetable.MinutesPerDay

	offset := (float64(diff) / JourneyDurationMinutes) * OffsetScale
	if down {
		offset = -offset
	}

	return offset
}

// Position computes the synthetic map location of train at row index
func Position(train *timetable.TrainRecord, clock int, index int) (float64, float64) {
	arrives := timetable.MinutesOrZero(train.Arrives)

	latitude := BaseLatitude + float64(index)*LatitudeStep
	longitude := BaseLongitude + Offset(clock, arrives, train.IsDown())

	return latitude, longitude
}

func IsFinite(values ...float64) bool {
	for _, value := range values {
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return false
		}
	}

	return true
}

// Markers positions every train for the given clock. Trains whose position
// is not finite are skipped rather than rendered.
func Markers(trains []*timetable.LiveTrainView, clock int) []Marker {
	markers := make([]Marker, 0, len(trains))

	for index, train := range trains {
		latitude, longitude := Position(&train.TrainRecord, clock, index)
		if !IsFinite(latitude, longitude) {
			continue
		}

		markers = append(markers, Marker{
			TrainNo:   train.TrainNo,
			Name:      train.Name,
			Latitude:  latitude,
			Longitude: longitude,
			Status:    train.Status,
			Delayed:   strings.Contains(strings.ToLower(train.Status), "delayed"),
		})
	}

	return markers
}
