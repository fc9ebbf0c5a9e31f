package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/verte-zerg/drillreport/internal/apperr"
)

// Error codes returned in the error body.
const (
	CodeInvalidStudentID = "INVALID_STUDENT_ID"
	CodeDataSource       = "DATA_SOURCE_ERROR"
	CodeTimeout          = "TIMEOUT"
	CodeNotFound         = "NOT_FOUND"
	CodeInternal         = "INTERNAL_ERROR"
)

// Error is the API error kind resolved from an internal error.
type Error struct {
	Code    string
	Status  int
	Message string
}

// ErrorResponse is the JSON error body.
type ErrorResponse struct {
	ErrorCode string `json:"error_code"`
	Detail    string `json:"detail"`
	RequestID string `json:"request_id,omitempty"`
}

// Classify maps an internal error to its API error. A deadline wins over the
// data source wrapper around it.
func Classify(err error) Error {
	var dsErr *apperr.DataSourceError
	switch {
	case errors.Is(err, apperr.ErrInvalidStudentID):
		return Error{Code: CodeInvalidStudentID, Status: http.StatusBadRequest, Message: "student id must be a positive integer"}
	case errors.Is(err, context.DeadlineExceeded):
		return Error{Code: CodeTimeout, Status: http.StatusGatewayTimeout, Message: "report generation timed out"}
	case errors.As(err, &dsErr):
		return Error{Code: CodeDataSource, Status: http.StatusServiceUnavailable, Message: "drill data source is unavailable"}
	default:
		return Error{Code: CodeInternal, Status: http.StatusInternalServerError, Message: "internal server error"}
	}
}

func writeError(c *gin.Context, err error) {
	apiErr := Classify(err)
	_ = c.Error(err)
	writeJSON(c, apiErr.Status, ErrorResponse{
		ErrorCode: apiErr.Code,
		Detail:    apiErr.Message,
		RequestID: GetRequestID(c),
	})
}
