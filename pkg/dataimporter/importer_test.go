package dataimporter

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/controlroom/pkg/timetable"
)

const yamlTimetable = `
trains:
  - trainNo: 33533
    name: SEALDAH - HASNABAD Local
    arrives: "10:26AM"
    departs: "10:27AM"
    duration: 1 min
    direction: Up
  - trainNo: 32242
    name: SEALDAH - DURONTO EXPRESS
    arrives: "11:10AM"
    departs: "11:10AM"
    duration: 0 min
    direction: down
    status: On Time
`

const csvTimetable = `trainNo,name,arrives,departs,duration,direction,status
33661,BANGAON - SEALDAH Local,10:25AM,10:26AM,1 min,Down,
31449,FREIGHT TRAIN,10:35AM,10:35AM,0 min,Up,On Time
`

func TestDetectFormat(t *testing.T) {
	format, err := DetectFormat("data/trains.yaml")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, format)

	format, err = DetectFormat("timetable.CSV")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, format)

	_, err = DetectFormat("timetable.json")
	assert.Error(t, err)
}

func TestDecodeYAML(t *testing.T) {
	trains, err := Decode(strings.NewReader(yamlTimetable), FormatYAML)
	require.NoError(t, err)
	require.Len(t, trains, 2)

	assert.Equal(t, 33533, trains[0].TrainNo)
	assert.Equal(t, "10:26AM", trains[0].Arrives)
	assert.Equal(t, timetable.StatusOnTime, trains[0].Status)
	assert.Equal(t, timetable.DirectionDown, trains[1].Direction)
}

func TestDecodeCSV(t *testing.T) {
	trains, err := Decode(strings.NewReader(csvTimetable), FormatCSV)
	require.NoError(t, err)
	require.Len(t, trains, 2)

	assert.Equal(t, 33661, trains[0].TrainNo)
	assert.Equal(t, "BANGAON - SEALDAH Local", trains[0].Name)
	assert.Equal(t, timetable.StatusOnTime, trains[0].Status)
	assert.Equal(t, "0 min", trains[1].Duration)
}

func TestDecodeRejectsInvalidRecords(t *testing.T) {
	_, err := Decode(strings.NewReader("trains:\n  - trainNo: 1\n    direction: Up\n"), FormatYAML)
	assert.ErrorIs(t, err, timetable.ErrInvalidTrain)

	_, err = Decode(strings.NewReader("trains:\n  - {trainNo: 1, name: A, direction: Up}\n  - {trainNo: 1, name: B, direction: Up}\n"), FormatYAML)
	assert.ErrorIs(t, err, timetable.ErrDuplicateTrain)
}

func TestDecodeSeedFile(t *testing.T) {
	trains, err := DecodeFile("../../data/trains.yaml")
	require.NoError(t, err)

	assert.Len(t, trains, 14)
	for _, train := range trains {
		_, err := timetable.ParseTime(train.Arrives)
		assert.NoError(t, err, train.Arrives)
	}
}

func TestImportReplace(t *testing.T) {
	ctx := context.Background()
	store := timetable.NewMemoryStore(&timetable.TrainRecord{TrainNo: 1, Name: "Old"})
	trains, _ := Decode(strings.NewReader(yamlTimetable), FormatYAML)

	inserted, err := Import(ctx, store, trains, true)
	require.NoError(t, err)
	assert.Equal(t, 2, inserted)

	_, err = store.GetTrain(ctx, 1)
	assert.ErrorIs(t, err, timetable.ErrUnknownTrain)
}

func TestImportSkipsExisting(t *testing.T) {
	ctx := context.Background()
	store := timetable.NewMemoryStore(&timetable.TrainRecord{TrainNo: 33533, Name: "Existing"})
	trains, _ := Decode(strings.NewReader(yamlTimetable), FormatYAML)

	inserted, err := Import(ctx, store, trains, false)
	require.NoError(t, err)
	assert.Equal(t, 1, inserted)

	train, err := store.GetTrain(ctx, 33533)
	require.NoError(t, err)
	assert.Equal(t, "Existing", train.Name)
}

func TestImportStoreUnavailable(t *testing.T) {
	store := timetable.NewMemoryStore()
	store.SetUnavailable(true)
	trains, _ := Decode(strings.NewReader(yamlTimetable), FormatYAML)

	_, err := Import(context.Background(), store, trains, false)
	assert.ErrorIs(t, err, timetable.ErrStoreUnavailable)
}
