package models

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSelection is returned when a city, month or day is outside its closed set.
	ErrInvalidSelection = errors.New("invalid selection")

	// ErrDataSource is returned when a city's backing file is missing, unreadable or malformed.
	ErrDataSource = errors.New("data source error")

	// ErrParse is returned when a row holds a malformed timestamp or number.
	ErrParse = errors.New("parse error")

	// ErrEmptyResult is returned when an aggregate is requested over zero trips.
	ErrEmptyResult = errors.New("no trips match the selected filters")
)

// DataSourceError describes a failed dataset load.
type DataSourceError struct {
	City City
	Path string
	Err  error
}

func (e *DataSourceError) Error() string {
	return fmt.Sprintf("%s: %s (%s): %v", ErrDataSource, e.City, e.Path, e.Err)
}

// Unwrap exposes the underlying cause.
func (e *DataSourceError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrDataSource) hold.
func (e *DataSourceError) Is(target error) bool {
	return target == ErrDataSource
}

// ParseError describes a row that could not be annotated.
// Row is 1-based and counts non-blank data rows only. Line is the physical
// line in the source file, when known.
type ParseError struct {
	Row   int
	Line  int
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s: row %d (line %d): %s %q: %v", ErrParse, e.Row, e.Line, e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("%s: row %d: %s %q: %v", ErrParse, e.Row, e.Field, e.Value, e.Err)
}

// Unwrap exposes the underlying cause.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrParse) hold.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}
