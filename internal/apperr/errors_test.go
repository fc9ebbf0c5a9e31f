package apperr

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestDataSourceErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := fmt.Errorf("build report: %w", &DataSourceError{Op: "fetch drills", Err: cause})
	if !IsDataSource(err) {
		t.Fatalf("expected data source error")
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause to be reachable")
	}
	if IsFeedback(err) {
		t.Fatalf("did not expect feedback error")
	}
}

func TestFeedbackServiceErrorUnwrap(t *testing.T) {
	err := &FeedbackServiceError{Provider: "ollama", Err: context.DeadlineExceeded}
	if !IsFeedback(err) {
		t.Fatalf("expected feedback error")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded")
	}
	if err.Error() != "feedback service ollama: context deadline exceeded" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestMalformedRecordErrorMessage(t *testing.T) {
	err := &MalformedRecordError{RecordID: 7, DrillID: 3, Field: "Accuracy", Reason: "must be <= 100"}
	if err.Error() != "malformed drill record 7 (drill 3): Accuracy: must be <= 100" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}
