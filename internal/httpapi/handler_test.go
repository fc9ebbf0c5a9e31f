package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"

	"github.com/verte-zerg/drillreport/internal/apperr"
	"github.com/verte-zerg/drillreport/internal/logging"
	"github.com/verte-zerg/drillreport/internal/model"
	"github.com/verte-zerg/drillreport/internal/report"
	"github.com/verte-zerg/drillreport/internal/stats"
)

type fakeReports struct {
	report    report.StudentReport
	breakdown report.KeyBreakdown
	err       error
	keysErr   error
	lastID    int64
}

func (f *fakeReports) StudentReport(_ context.Context, id int64) (report.StudentReport, error) {
	f.lastID = id
	return f.report, f.err
}

func (f *fakeReports) KeyBreakdown(_ context.Context, id int64) (report.KeyBreakdown, error) {
	f.lastID = id
	return f.breakdown, f.keysErr
}

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }

func newTestRouter(reports ReportService, pinger Pinger) (*gin.Engine, *Metrics) {
	gin.SetMode(gin.TestMode)
	metrics := NewMetrics()
	router := NewRouter(RouterOptions{
		Reports:        reports,
		Pinger:         pinger,
		Metrics:        metrics,
		RequestTimeout: time.Second,
	})
	return router, metrics
}

func doGet(router http.Handler, path string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestStudentReportEndpoint(t *testing.T) {
	reports := &fakeReports{report: report.StudentReport{
		StudentName: "Ada Lovelace",
		Exercise: report.ModeReport{
			Mode:              model.ModeExercise,
			Summary:           "Exercise Report:\n- Played drill: Home Row.",
			Latest:            "Latest Drill Report:",
			AIFeedback:        "Great job!",
			FeedbackAvailable: true,
		},
		Pool: report.ModeReport{
			Mode:       model.ModePool,
			Summary:    stats.NoDataText("Pool"),
			Latest:     "No recent drill found.",
			AIFeedback: report.FeedbackUnavailable,
		},
	}}
	router, _ := newTestRouter(reports, nil)

	resp := doGet(router, "/report/42", map[string]string{RequestIDHeader: "req-1"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if reports.lastID != 42 {
		t.Fatalf("expected student 42, got %d", reports.lastID)
	}
	if got := resp.Header().Get(RequestIDHeader); got != "req-1" {
		t.Fatalf("expected request id to be echoed, got %q", got)
	}

	var payload ReportResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if payload.StudentName != "Ada Lovelace" {
		t.Fatalf("unexpected name %q", payload.StudentName)
	}
	if payload.Exercise.AIFeedback != "Great job!" || !payload.Exercise.FeedbackAvailable {
		t.Fatalf("unexpected exercise: %+v", payload.Exercise)
	}
	if payload.Pool.Summary != "No Pool data available." || payload.Pool.FeedbackAvailable {
		t.Fatalf("unexpected pool: %+v", payload.Pool)
	}
}

func TestStudentReportErrors(t *testing.T) {
	cases := []struct {
		name   string
		path   string
		err    error
		status int
		code   string
	}{
		{"non numeric id", "/report/abc", nil, http.StatusBadRequest, CodeInvalidStudentID},
		{"zero id", "/report/0", nil, http.StatusBadRequest, CodeInvalidStudentID},
		{"negative id", "/report/-4", nil, http.StatusBadRequest, CodeInvalidStudentID},
		{"data source", "/report/1", &apperr.DataSourceError{Op: "fetch exercise drills", Err: errors.New("dial tcp: refused")}, http.StatusServiceUnavailable, CodeDataSource},
		{"timeout", "/report/1", fmt.Errorf("report: %w", context.DeadlineExceeded), http.StatusGatewayTimeout, CodeTimeout},
		{"fetch timeout", "/report/1", &apperr.DataSourceError{Op: "fetch exercise drills", Err: context.DeadlineExceeded}, http.StatusGatewayTimeout, CodeTimeout},
		{"unexpected", "/report/1", errors.New("boom"), http.StatusInternalServerError, CodeInternal},
	}
	for _, tc := range cases {
		router, _ := newTestRouter(&fakeReports{err: tc.err}, nil)
		resp := doGet(router, tc.path, nil)
		if resp.Code != tc.status {
			t.Fatalf("%s: expected %d, got %d", tc.name, tc.status, resp.Code)
		}
		var body ErrorResponse
		if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
			t.Fatalf("%s: decode: %v", tc.name, err)
		}
		if body.ErrorCode != tc.code {
			t.Fatalf("%s: expected %s, got %s", tc.name, tc.code, body.ErrorCode)
		}
		if body.RequestID == "" || body.RequestID != resp.Header().Get(RequestIDHeader) {
			t.Fatalf("%s: expected generated request id in body and header", tc.name)
		}
		if strings.Contains(body.Detail, "refused") {
			t.Fatalf("%s: internal error leaked into detail: %q", tc.name, body.Detail)
		}
	}
}

func TestKeyBreakdownEndpoint(t *testing.T) {
	reports := &fakeReports{breakdown: report.KeyBreakdown{
		StudentID:   3,
		StudentName: "Ada",
		Latest:      stats.SectionSummary{Drills: 2, TotalKeyCount: 80, WrongKeys: []string{"j"}},
	}}
	router, _ := newTestRouter(reports, nil)
	resp := doGet(router, "/report/3/keys", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var payload map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload["has_data"] != true || payload["student_name"] != "Ada" {
		t.Fatalf("unexpected payload %v", payload)
	}
	latest, ok := payload["latest"].(map[string]any)
	if !ok || latest["total_key_count"] != float64(80) {
		t.Fatalf("unexpected latest section %v", payload["latest"])
	}

	empty := &fakeReports{breakdown: report.KeyBreakdown{StudentName: "Student"}, keysErr: apperr.ErrNoData}
	router, _ = newTestRouter(empty, nil)
	resp = doGet(router, "/report/3/keys", nil)
	if resp.Code != http.StatusOK || !strings.Contains(resp.Body.String(), `"has_data":false`) {
		t.Fatalf("expected empty breakdown, got %d %s", resp.Code, resp.Body.String())
	}
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := newTestRouter(&fakeReports{}, fakePinger{})
	if resp := doGet(router, "/health", nil); resp.Code != http.StatusOK || !strings.Contains(resp.Body.String(), `"status":"ok"`) {
		t.Fatalf("expected healthy response, got %d %s", resp.Code, resp.Body.String())
	}
	router, _ = newTestRouter(&fakeReports{}, fakePinger{err: errors.New("down")})
	if resp := doGet(router, "/health", nil); resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	router, _ := newTestRouter(&fakeReports{report: report.StudentReport{StudentName: "Ada"}}, nil)
	doGet(router, "/report/1", nil)
	resp := doGet(router, "/metrics", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	body, _ := io.ReadAll(resp.Body)
	for _, want := range []string{
		`drillreport_http_requests_total{route="/report/:studentID",status="200"} 1`,
		"drillreport_reports_generated_total 1",
		`drillreport_feedback_failures_total{mode="pool"} 1`,
	} {
		if !strings.Contains(string(body), want) {
			t.Fatalf("expected %q in metrics:\n%s", want, body)
		}
	}
}

func TestNoRoute(t *testing.T) {
	router, _ := newTestRouter(&fakeReports{}, nil)
	resp := doGet(router, "/nope", nil)
	if resp.Code != http.StatusNotFound || !strings.Contains(resp.Body.String(), CodeNotFound) {
		t.Fatalf("expected 404, got %d %s", resp.Code, resp.Body.String())
	}
}

func TestServeShutsDownOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	srv := NewHTTPServer("127.0.0.1:0", http.NotFoundHandler())
	done := make(chan error, 1)
	go func() { done <- Serve(ctx, srv, logging.Discard()) }()
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected clean shutdown, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("server did not stop")
	}
}
