package validate

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
)

type window struct {
	Start string `validate:"required,hhmm"`
	End   string `validate:"required,hhmm"`
}

func TestHHMMTag(t *testing.T) {
	v := New()

	valid := []string{"00:00", "08:30", "12:05", "23:59"}
	for _, s := range valid {
		if err := v.Validate(&window{Start: s, End: "23:59"}); err != nil {
			t.Errorf("%q rejected: %v", s, err)
		}
	}

	invalid := []string{"24:00", "8:30", "12:60", "noon", "12:5", "12:05:00"}
	for _, s := range invalid {
		err := v.Validate(&window{Start: s, End: "23:59"})
		if err == nil {
			t.Errorf("%q accepted", s)
			continue
		}
		if he, ok := err.(*echo.HTTPError); !ok || he.Code != http.StatusBadRequest {
			t.Errorf("%q: got %v, want 400", s, err)
		}
	}
}

func TestRequiredTag(t *testing.T) {
	v := New()
	if err := v.Validate(&window{End: "10:00"}); err == nil {
		t.Error("missing required field accepted")
	}
}
