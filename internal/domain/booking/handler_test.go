package booking

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/clinicdesk/clinicdesk/internal/platform/validate"
)

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = validate.New()
	return e
}

func TestSlotsHandler(t *testing.T) {
	e := newTestEcho()
	f := newFixture()
	h := NewHandler(f.svc)

	req := httptest.NewRequest(http.MethodGet, "/?date="+sunday+"&interval=30", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(f.doctorID.String())

	if err := h.Slots(c); err != nil {
		t.Fatalf("Slots: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp struct {
		Date  string `json:"date"`
		Slots []Slot `json:"slots"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Slots) != 4 {
		t.Errorf("got %d slots, want 4", len(resp.Slots))
	}
}

func TestSlotsHandlerRequiresDate(t *testing.T) {
	e := newTestEcho()
	f := newFixture()
	h := NewHandler(f.svc)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(f.doctorID.String())

	err := h.Slots(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestBookHandler(t *testing.T) {
	e := newTestEcho()
	f := newFixture()
	h := NewHandler(f.svc)

	body := `{"doctor_id":"` + f.doctorID.String() + `","date":"` + sunday + `",` +
		`"start_time":"08:00","end_time":"08:30","patient_name":"Lina","patient_phone":"0912345678"}`
	req := httptest.NewRequest(http.MethodPost, "/appointments", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Book(c); err != nil {
		t.Fatalf("Book: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}

	var appt Appointment
	if err := json.Unmarshal(rec.Body.Bytes(), &appt); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if appt.Status != StatusPending {
		t.Errorf("status = %s, want pending", appt.Status)
	}
}

func TestBookHandlerConflict(t *testing.T) {
	e := newTestEcho()
	f := newFixture()
	h := NewHandler(f.svc)

	book := func() (*httptest.ResponseRecorder, error) {
		body := `{"doctor_id":"` + f.doctorID.String() + `","date":"` + sunday + `",` +
			`"start_time":"08:00","end_time":"08:30","patient_name":"Lina","patient_phone":"0912345678"}`
		req := httptest.NewRequest(http.MethodPost, "/appointments", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		return rec, h.Book(e.NewContext(req, rec))
	}

	if _, err := book(); err != nil {
		t.Fatalf("first booking: %v", err)
	}
	_, err := book()
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusConflict {
		t.Fatalf("second booking: expected 409, got %v", err)
	}
}
