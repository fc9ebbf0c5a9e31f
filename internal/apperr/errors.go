// Package apperr defines the error kinds shared by the report pipeline.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrNoData signals an empty eligible record set. It is an empty state, not a failure.
	ErrNoData = errors.New("no data available")
	// ErrInvalidStudentID is returned for non-numeric or non-positive student ids.
	ErrInvalidStudentID = errors.New("invalid student id")
	// ErrFeedbackDisabled is returned by the disabled feedback provider.
	ErrFeedbackDisabled = errors.New("feedback provider disabled")
)

// DataSourceError wraps a failed database operation.
type DataSourceError struct {
	Op  string
	Err error
}

func (e *DataSourceError) Error() string {
	return fmt.Sprintf("data source: %s: %v", e.Op, e.Err)
}

func (e *DataSourceError) Unwrap() error {
	return e.Err
}

// FeedbackServiceError wraps a failed or timed out language-model call.
type FeedbackServiceError struct {
	Provider string
	Err      error
}

func (e *FeedbackServiceError) Error() string {
	return fmt.Sprintf("feedback service %s: %v", e.Provider, e.Err)
}

func (e *FeedbackServiceError) Unwrap() error {
	return e.Err
}

// MalformedRecordError describes a drill record that failed validation.
type MalformedRecordError struct {
	RecordID int64
	DrillID  int64
	Field    string
	Reason   string
}

func (e *MalformedRecordError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("malformed drill record %d (drill %d): %s", e.RecordID, e.DrillID, e.Reason)
	}
	return fmt.Sprintf("malformed drill record %d (drill %d): %s: %s", e.RecordID, e.DrillID, e.Field, e.Reason)
}

// IsDataSource reports whether err carries a DataSourceError.
func IsDataSource(err error) bool {
	var target *DataSourceError
	return errors.As(err, &target)
}

// IsFeedback reports whether err carries a FeedbackServiceError.
func IsFeedback(err error) bool {
	var target *FeedbackServiceError
	return errors.As(err, &target)
}
