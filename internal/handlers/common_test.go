package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/fairwaylab/swingcoach/internal/services"
)

func TestParsePagination(t *testing.T) {
	app := fiber.New()
	var skip, limit int
	app.Get("/", func(c *fiber.Ctx) error {
		skip, limit = parsePagination(c)
		return c.SendStatus(fiber.StatusOK)
	})

	cases := []struct {
		url       string
		wantSkip  int
		wantLimit int
	}{
		{"/?skip=20&limit=50", 20, 50},
		{"/", 0, 100},
		{"/?skip=-5&limit=0", 0, 100},
		{"/?skip=abc&limit=xyz", 0, 100},
	}
	for _, tc := range cases {
		resp, err := app.Test(httptest.NewRequest("GET", tc.url, nil))
		if err != nil {
			t.Fatalf("%s: %v", tc.url, err)
		}
		resp.Body.Close()
		if skip != tc.wantSkip || limit != tc.wantLimit {
			t.Errorf("%s: got skip=%d limit=%d, want %d/%d", tc.url, skip, limit, tc.wantSkip, tc.wantLimit)
		}
	}
}

func TestRespondErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not found", pgx.ErrNoRows, fiber.StatusNotFound},
		{"forbidden", services.ErrForbidden, fiber.StatusForbidden},
		{"conflict", services.ErrConflict, fiber.StatusConflict},
		{"bad transition", services.ErrInvalidStateTransition, fiber.StatusConflict},
		{"bad input", services.ErrInvalidInput, fiber.StatusBadRequest},
		{"unique violation", &pgconn.PgError{Code: uniqueViolation}, fiber.StatusConflict},
		{"foreign key violation", &pgconn.PgError{Code: foreignKeyViolation}, fiber.StatusConflict},
		{"unknown", fiber.ErrTeapot, fiber.StatusInternalServerError},
	}
	for _, tc := range cases {
		app := fiber.New()
		app.Get("/", func(c *fiber.Ctx) error {
			return respondError(c, tc.err)
		})
		resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		resp.Body.Close()
		if resp.StatusCode != tc.want {
			t.Errorf("%s: got status %d, want %d", tc.name, resp.StatusCode, tc.want)
		}
	}
}

func TestCoalesceValues(t *testing.T) {
	canonical := "driver_swing"
	legacy := "full_swing"

	if got := coalesceValues(&canonical, &legacy); got != &canonical {
		t.Error("canonical field should win over the legacy alias")
	}
	if got := coalesceValues(nil, &legacy); got != &legacy {
		t.Error("legacy alias should be used when the canonical field is absent")
	}
	if got := coalesceValues(nil, nil); got != nil {
		t.Error("all-nil input should stay nil")
	}
}
