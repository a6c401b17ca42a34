package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHelpersSetStatus(t *testing.T) {
	cases := []struct {
		name string
		err  *Error
		want int
	}{
		{name: "validation", err: Validation("bad input"), want: http.StatusBadRequest},
		{name: "unauthenticated", err: Unauthenticated("no session"), want: http.StatusUnauthorized},
		{name: "forbidden", err: Forbidden("wrong role"), want: http.StatusForbidden},
		{name: "not_found", err: NotFound("missing"), want: http.StatusNotFound},
		{name: "upstream", err: Upstream("store failed", errors.New("boom")), want: http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.err.Status != tc.want {
				t.Fatalf("status=%d, want %d", tc.err.Status, tc.want)
			}
		})
	}
}

func TestFromPassesTaxonomyErrorsThrough(t *testing.T) {
	orig := NotFound("Module not found")
	got := From(fmt.Errorf("wrapped: %w", orig))
	if got.Status != http.StatusNotFound || got.Msg != "Module not found" {
		t.Fatalf("From(wrapped)=%+v, want original", got)
	}
}

func TestFromCollapsesUnknownErrors(t *testing.T) {
	got := From(errors.New("pq: connection refused"))
	if got.Status != http.StatusInternalServerError {
		t.Fatalf("status=%d, want 500", got.Status)
	}
	if got.Msg != "Internal server error" {
		t.Fatalf("msg=%q leaks internals", got.Msg)
	}
}

func TestUnwrap(t *testing.T) {
	inner := errors.New("boom")
	wrapped := Upstream("store failed", inner)
	if !errors.Is(wrapped, inner) {
		t.Fatal("expected errors.Is to reach the wrapped error")
	}
}
