package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"

	"github.com/verte-zerg/drillreport/internal/apperr"
	"github.com/verte-zerg/drillreport/internal/logging"
	"github.com/verte-zerg/drillreport/internal/report"
)

// ReportService builds student reports.
type ReportService interface {
	StudentReport(ctx context.Context, studentID int64) (report.StudentReport, error)
	KeyBreakdown(ctx context.Context, studentID int64) (report.KeyBreakdown, error)
}

// Pinger reports data source health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ReportHandler serves the report endpoints.
type ReportHandler struct {
	reports ReportService
	pinger  Pinger
	timeout time.Duration
	metrics *Metrics
	logger  *slog.Logger
}

// NewReportHandler creates the handler. pinger and metrics may be nil.
func NewReportHandler(reports ReportService, pinger Pinger, timeout time.Duration, metrics *Metrics, logger *slog.Logger) *ReportHandler {
	if logger == nil {
		logger = logging.Discard()
	}
	return &ReportHandler{reports: reports, pinger: pinger, timeout: timeout, metrics: metrics, logger: logger}
}

// ModeResponse is one mode of the report response.
type ModeResponse struct {
	Summary           string `json:"summary"`
	Latest            string `json:"latest"`
	AIFeedback        string `json:"ai_feedback"`
	FeedbackAvailable bool   `json:"feedback_available"`
}

// ReportResponse is the body of GET /report/:studentID.
type ReportResponse struct {
	StudentName string       `json:"student_name"`
	Exercise    ModeResponse `json:"exercise"`
	Pool        ModeResponse `json:"pool"`
}

// KeysResponse is the body of GET /report/:studentID/keys.
type KeysResponse struct {
	HasData bool `json:"has_data"`
	report.KeyBreakdown
}

type studentURI struct {
	StudentID int64 `uri:"studentID" binding:"required,gt=0"`
}

// RegisterRoutes mounts the report and health routes.
func (h *ReportHandler) RegisterRoutes(router gin.IRouter) {
	router.GET("/health", h.health)
	router.GET("/report/:studentID", h.studentReport)
	router.GET("/report/:studentID/keys", h.keyBreakdown)
}

func (h *ReportHandler) studentReport(c *gin.Context) {
	id, ok := bindStudentID(c)
	if !ok {
		return
	}
	ctx, cancel := h.requestContext(c)
	defer cancel()

	rep, err := h.reports.StudentReport(ctx, id)
	if err != nil {
		h.logger.Error("report_failed", "request_id", GetRequestID(c), "student_id", id, "err", err)
		writeError(c, err)
		return
	}
	if h.metrics != nil {
		h.metrics.observeReport(rep.Exercise.FeedbackAvailable, rep.Pool.FeedbackAvailable)
	}
	writeJSON(c, http.StatusOK, ReportResponse{
		StudentName: rep.StudentName,
		Exercise:    modeResponse(rep.Exercise),
		Pool:        modeResponse(rep.Pool),
	})
}

func (h *ReportHandler) keyBreakdown(c *gin.Context) {
	id, ok := bindStudentID(c)
	if !ok {
		return
	}
	ctx, cancel := h.requestContext(c)
	defer cancel()

	kb, err := h.reports.KeyBreakdown(ctx, id)
	switch {
	case errors.Is(err, apperr.ErrNoData):
		writeJSON(c, http.StatusOK, KeysResponse{KeyBreakdown: kb})
	case err != nil:
		h.logger.Error("key_breakdown_failed", "request_id", GetRequestID(c), "student_id", id, "err", err)
		writeError(c, err)
	default:
		writeJSON(c, http.StatusOK, KeysResponse{HasData: true, KeyBreakdown: kb})
	}
}

func (h *ReportHandler) health(c *gin.Context) {
	if h.pinger != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.pinger.Ping(ctx); err != nil {
			writeJSON(c, http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": "unreachable"})
			return
		}
	}
	writeJSON(c, http.StatusOK, gin.H{"status": "ok"})
}

func (h *ReportHandler) requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	if h.timeout <= 0 {
		return context.WithCancel(c.Request.Context())
	}
	return context.WithTimeout(c.Request.Context(), h.timeout)
}

func bindStudentID(c *gin.Context) (int64, bool) {
	var uri studentURI
	if err := c.ShouldBindUri(&uri); err != nil {
		writeError(c, apperr.ErrInvalidStudentID)
		return 0, false
	}
	return uri.StudentID, true
}

func modeResponse(m report.ModeReport) ModeResponse {
	return ModeResponse{
		Summary:           m.Summary,
		Latest:            m.Latest,
		AIFeedback:        m.AIFeedback,
		FeedbackAvailable: m.FeedbackAvailable,
	}
}

func writeJSON(c *gin.Context, status int, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	c.Data(status, "application/json; charset=utf-8", data)
}
