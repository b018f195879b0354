package appointment

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func newTestHandler() (*Handler, *fixture, *echo.Echo) {
	f := newFixture()
	return NewHandler(f.svc), f, echo.New()
}

func TestHandler_Create(t *testing.T) {
	h, _, e := newTestHandler()
	body := `{"user_id":"` + uuid.New().String() + `","primary_physician":"Evelyn Reed","schedule":"2026-09-14T15:30:00Z","status":"scheduled"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Create(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}

	var a Appointment
	if err := json.Unmarshal(rec.Body.Bytes(), &a); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if a.Status != StatusPending {
		t.Errorf("submitted status must be ignored, got %q", a.Status)
	}
}

func TestHandler_Create_BadRequest(t *testing.T) {
	h, _, e := newTestHandler()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(req, httptest.NewRecorder())

	if err := h.Create(c); err == nil {
		t.Error("expected error for empty body")
	}
}

func TestHandler_Get_NotFound(t *testing.T) {
	h, _, e := newTestHandler()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues(uuid.New().String())

	err := h.Get(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %v", err)
	}
}

func TestHandler_ListRecent(t *testing.T) {
	h, f, e := newTestHandler()
	userID := f.addPatient("Ada Lovelace", "+994705085021")
	f.addAppointment(t, userID, StatusPending)
	f.addAppointment(t, userID, StatusScheduled)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	if err := h.ListRecent(e.NewContext(req, rec)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var list AggregatedList
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if list.TotalCount != 2 || list.ScheduledCount != 1 || list.PendingCount != 1 {
		t.Errorf("unexpected aggregate: %+v", list)
	}
	if len(list.Appointments) != 2 || list.Appointments[0].Patient == nil {
		t.Errorf("expected enriched rows, got %+v", list.Appointments)
	}
}

func TestHandler_Schedule(t *testing.T) {
	h, f, e := newTestHandler()
	userID := f.addPatient("Ada Lovelace", "+994705085021")
	a := f.addAppointment(t, userID, StatusPending)

	body := `{"schedule":"2026-09-14T15:30:00Z","primary_physician":"Evelyn Reed"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(a.ID.String())

	if err := h.Schedule(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}

	var got Appointment
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if got.Status != StatusScheduled {
		t.Errorf("expected scheduled, got %q", got.Status)
	}
}

func TestHandler_Schedule_UnknownAppointment(t *testing.T) {
	h, _, e := newTestHandler()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"schedule":"2026-09-14T15:30:00Z"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues(uuid.New().String())

	err := h.Schedule(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %v", err)
	}
}

func TestHandler_Cancel(t *testing.T) {
	h, f, e := newTestHandler()
	userID := f.addPatient("Ada Lovelace", "+994705085021")
	a := f.addAppointment(t, userID, StatusPending)

	body := `{"cancellation_reason":"physician unavailable"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(a.ID.String())

	if err := h.Cancel(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got Appointment
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if got.Status != StatusCancelled {
		t.Errorf("expected cancelled, got %q", got.Status)
	}
	if got.CancellationReason == nil || *got.CancellationReason != "physician unavailable" {
		t.Errorf("unexpected reason: %v", got.CancellationReason)
	}
}

func TestHandler_Cancel_InvalidID(t *testing.T) {
	h, _, e := newTestHandler()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")

	if err := h.Cancel(c); err == nil {
		t.Error("expected error for invalid id")
	}
}
