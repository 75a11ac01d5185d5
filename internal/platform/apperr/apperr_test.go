package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{NotFound("doctor %s", "abc"), http.StatusNotFound},
		{Invalid("bad time"), http.StatusBadRequest},
		{Conflict("slot taken"), http.StatusConflict},
		{ErrUnauthorized, http.StatusUnauthorized},
		{Forbidden("not your clinic"), http.StatusForbidden},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := Status(tc.err); got != tc.want {
			t.Errorf("Status(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestWrappingPreservesSentinel(t *testing.T) {
	err := fmt.Errorf("booking failed: %w", Conflict("slot taken"))
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected wrapped error to match ErrConflict")
	}
}
