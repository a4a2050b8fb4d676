package dataerr

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrDataLoad matches any DataLoadError via errors.Is.
	ErrDataLoad = errors.New("data load error")
	// ErrDataType matches any DataTypeError via errors.Is.
	ErrDataType = errors.New("data type error")
)

// DataLoadError reports an input file that is missing, unreadable or structurally invalid.
type DataLoadError struct {
	File   string
	Reason string
	Err    error
}

func (e *DataLoadError) Error() string {
	msg := fmt.Sprintf("failed to load %q: %s", e.File, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *DataLoadError) Unwrap() error { return e.Err }

func (e *DataLoadError) Is(target error) bool { return target == ErrDataLoad }

// DataTypeError reports rows whose date, amount or limit could not be parsed.
type DataTypeError struct {
	File     string
	Problems []string
}

func (e *DataTypeError) Error() string {
	return fmt.Sprintf("invalid values in %q: %s", e.File, strings.Join(e.Problems, "; "))
}

func (e *DataTypeError) Is(target error) bool { return target == ErrDataType }

// NewLoadError builds a DataLoadError.
func NewLoadError(file, reason string, err error) *DataLoadError {
	return &DataLoadError{File: file, Reason: reason, Err: err}
}

// UserMessage renders err as the text shown to the analyst in place of the dashboard.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	return "Error loading data: " + err.Error()
}
