package errors

import (
	"fmt"
	"net/http"
	"testing"
)

func TestCodeHTTPStatus(t *testing.T) {
	cases := []struct {
		code Code
		want int
	}{
		{CodeNotFound, http.StatusNotFound},
		{CodeValidation, http.StatusBadRequest},
		{CodeConflict, http.StatusConflict},
		{CodeUnavailable, http.StatusBadGateway},
		{CodeInternal, http.StatusInternalServerError},
		{Code("SOMETHING_ELSE"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := tc.code.HTTPStatus(); got != tc.want {
			t.Errorf("%s: got %d, want %d", tc.code, got, tc.want)
		}
	}
}

func TestIsMatchesByCode(t *testing.T) {
	err := NotFound("link 42 does not exist")
	if !Is(err, ErrNotFound) {
		t.Error("NotFound error should match ErrNotFound sentinel")
	}
	if Is(err, ErrConflict) {
		t.Error("NotFound error should not match ErrConflict")
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := Wrap(cause, CodeInternal, "insert failed")

	if Unwrap(err) != cause {
		t.Error("Unwrap should return the original cause")
	}
	if !Is(err, ErrInternal) {
		t.Error("wrapped error should match ErrInternal")
	}
	if want := "insert failed: disk full"; err.Error() != want {
		t.Errorf("Error(): got %q, want %q", err.Error(), want)
	}
}

func TestWithDetails(t *testing.T) {
	base := Validation("bad input")
	detailed := base.WithDetails(map[string]string{"name": "required"})

	if detailed.Code != CodeValidation {
		t.Errorf("Code: got %s, want %s", detailed.Code, CodeValidation)
	}
	if detailed.Details == nil {
		t.Error("Details should be set")
	}
	// Original must not be mutated.
	if base.Details != nil {
		t.Error("WithDetails must not mutate the receiver")
	}
}
