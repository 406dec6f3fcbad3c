package timetable

import "errors"

var (
	// ErrStoreUnavailable is returned when the timetable store cannot be reached or queried
	ErrStoreUnavailable = errors.New("timetable store unavailable")
	ErrUnknownTrain     = errors.New("unknown train")
	ErrDuplicateTrain   = errors.New("train number already exists")
	ErrInvalidTrain     = errors.New("invalid train record")
	ErrMalformedTime    = errors.New("malformed time of day")
)
