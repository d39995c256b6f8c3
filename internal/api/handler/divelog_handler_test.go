package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/scubalog/dive-log-api/internal/api/middleware"
	"github.com/scubalog/dive-log-api/internal/core/domain"
	"github.com/scubalog/dive-log-api/internal/core/ports"
)

type stubDiveLogService struct {
	created []ports.CreateLogInput
	listed  []ports.ListLogsInput
	log     *domain.DiveLog
}

func (s *stubDiveLogService) Create(_ context.Context, _ domain.Principal, in ports.CreateLogInput) (*domain.DiveLog, error) {
	s.created = append(s.created, in)
	return s.log, nil
}

func (s *stubDiveLogService) List(_ context.Context, _ domain.Principal, in ports.ListLogsInput) ([]*domain.DiveLog, error) {
	s.listed = append(s.listed, in)
	return []*domain.DiveLog{s.log}, nil
}

func (s *stubDiveLogService) Get(context.Context, domain.Principal, string) (*domain.DiveLog, error) {
	return s.log, nil
}

func (s *stubDiveLogService) Update(context.Context, domain.Principal, string, ports.LogFields) (*domain.DiveLog, error) {
	return s.log, nil
}

func (s *stubDiveLogService) Delete(context.Context, domain.Principal, string) error {
	return nil
}

// newTestContext builds an authenticated echo context the way the router
// middleware would.
func newTestContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder, *echo.Echo) {
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.CtxPrincipal, domain.Principal{ID: "u1", Role: domain.RoleBasicUser, Enabled: true})
	return c, rec, e
}

func TestDiveLogHandler_List_InvalidTimeBounds(t *testing.T) {
	cases := []struct {
		query   string
		message string
	}{
		{"tsStart=yesterday", "Invalid tsStart format. Please provide a valid datetime string."},
		{"tsEnd=13/01/2024", "Invalid tsEnd format. Please provide a valid datetime string."},
	}

	for _, tc := range cases {
		svc := &stubDiveLogService{}
		h := NewDiveLogHandler(svc)
		c, rec, e := newTestContext(http.MethodGet, "/api/v1/logbooks?"+tc.query, "")

		if err := h.List(c); err != nil {
			e.HTTPErrorHandler(err, c)
		}

		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("%s: expected 422, got %d", tc.query, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), tc.message) {
			t.Fatalf("%s: body %q missing %q", tc.query, rec.Body.String(), tc.message)
		}
		if len(svc.listed) != 0 {
			t.Fatalf("%s: service called despite invalid bound", tc.query)
		}
	}
}

func TestDiveLogHandler_List_ParsesTimeBounds(t *testing.T) {
	svc := &stubDiveLogService{}
	h := NewDiveLogHandler(svc)
	c, rec, _ := newTestContext(http.MethodGet, "/api/v1/logbooks?tsStart=2024-06-01&tsEnd=2024-06-30T23:59:59", "")

	if err := h.List(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(svc.listed) != 1 {
		t.Fatalf("expected one service call, got %d", len(svc.listed))
	}

	in := svc.listed[0]
	if in.StartFrom == nil || !in.StartFrom.Equal(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("tsStart not parsed: %v", in.StartFrom)
	}
	if in.StartTo == nil || !in.StartTo.Equal(time.Date(2024, 6, 30, 23, 59, 59, 0, time.UTC)) {
		t.Fatalf("tsEnd not parsed: %v", in.StartTo)
	}
	if !in.ActiveUsersOnly || in.SortBy != "createdAt" || !in.SortDesc {
		t.Fatalf("listing defaults not applied: %+v", in)
	}
}

func TestDiveLogHandler_Create_RejectsUnknownTankMaterial(t *testing.T) {
	svc := &stubDiveLogService{}
	h := NewDiveLogHandler(svc)
	c, rec, e := newTestContext(http.MethodPost, "/api/v1/logbooks",
		`{"startTime":"2024-06-01T09:00:00Z","endTime":"2024-06-01T09:45:00Z","maxDepth":18,"location":"Coral Reef","tankMaterial":"Titanium"}`)

	if err := h.Create(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	want := "Please enter a valid tank material from the list: Aluminium, Steel"
	if !strings.Contains(rec.Body.String(), want) {
		t.Fatalf("body %q missing %q", rec.Body.String(), want)
	}
	if len(svc.created) != 0 {
		t.Fatalf("service called despite invalid tank material")
	}
}

func TestDiveLogHandler_Create(t *testing.T) {
	svc := &stubDiveLogService{log: &domain.DiveLog{ID: "log-1"}}
	h := NewDiveLogHandler(svc)
	c, rec, _ := newTestContext(http.MethodPost, "/api/v1/logbooks",
		`{"startTime":"2024-06-01T09:00:00Z","endTime":"2024-06-01T09:45:00Z","maxDepth":18,"location":"Coral Reef","tankMaterial":"Steel","addUser":"u2"}`)

	if err := h.Create(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if len(svc.created) != 1 {
		t.Fatalf("expected one create call, got %d", len(svc.created))
	}

	in := svc.created[0]
	if in.ForUserID != "u2" {
		t.Fatalf("addUser not forwarded: %q", in.ForUserID)
	}
	if in.TankMaterial == nil || *in.TankMaterial != domain.TankSteel {
		t.Fatalf("tank material not forwarded: %v", in.TankMaterial)
	}
	if !strings.Contains(rec.Body.String(), `"data"`) {
		t.Fatalf("response not wrapped in data envelope: %s", rec.Body.String())
	}
}
