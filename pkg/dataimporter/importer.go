package dataimporter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/rs/zerolog/log"
	"github.com/travigo/controlroom/pkg/timetable"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatYAML Format = "yaml"
	FormatCSV  Format = "csv"
)

type timetableFile struct {
	Trains []*timetable.TrainRecord `yaml:"trains"`
}

func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".csv":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("unsupported timetable file %s", path)
	}
}

// Decode reads train records, applies defaults and validates every record
func Decode(reader io.Reader, format Format) ([]*timetable.TrainRecord, error) {
	var trains []*timetable.TrainRecord

	switch format {
	case FormatYAML:
		var file timetableFile
		if err := yaml.NewDecoder(reader).Decode(&file); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
		trains = file.Trains
	case FormatCSV:
		if err := gocsv.Unmarshal(reader, &trains); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported format %s", format)
	}

	seen := map[int]bool{}
	for i, train := range trains {
		train.ApplyDefaults()

		if err := train.Validate(); err != nil {
			return nil, fmt.Errorf("record %d: %w", i+1, err)
		}
		if seen[train.TrainNo] {
			return nil, fmt.Errorf("record %d: %w: %d", i+1, timetable.ErrDuplicateTrain, train.TrainNo)
		}
		seen[train.TrainNo] = true
	}

	return trains, nil
}

func DecodeFile(path string) ([]*timetable.TrainRecord, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return Decode(file, format)
}

// Import writes trains into the store. With replace every existing record is
// dropped first, otherwise trains already present are left untouched.
func Import(ctx context.Context, store timetable.Store, trains []*timetable.TrainRecord, replace bool) (int, error) {
	if replace {
		if err := store.ReplaceTrains(ctx, trains); err != nil {
			return 0, err
		}

		return len(trains), nil
	}

	inserted := 0
	for _, train := range trains {
		err := store.CreateTrain(ctx, train)
		if errors.Is(err, timetable.ErrDuplicateTrain) {
			log.Warn().Int("trainNo", train.TrainNo).Msg("Train already exists, skipping")
			continue
		} else if err != nil {
			return inserted, err
		}

		inserted++
	}

	return inserted, nil
}
