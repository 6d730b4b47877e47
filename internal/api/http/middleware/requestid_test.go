package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"

	"github.com/ecnhealth/clinic_console/pkg/reqctx"
)

func TestRequestIDPropagatesMetaIntoContext(t *testing.T) {
	app := fiber.New()
	app.Use(RequestID())

	var meta *reqctx.RequestMeta
	app.Get("/", func(c fiber.Ctx) error {
		m, ok := reqctx.RequestMetaFromContext(c.Context())
		if !ok {
			t.Error("request meta missing from request context")
		}
		meta = m
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(HeaderRequestID, "test-rid-123")
	res, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()

	if meta == nil {
		t.Fatal("handler did not observe request meta")
	}
	if meta.RequestID != "test-rid-123" {
		t.Errorf("RequestID = %q, want incoming header value", meta.RequestID)
	}
	if got := res.Header.Get(HeaderRequestID); got != "test-rid-123" {
		t.Errorf("response %s = %q, want echoed id", HeaderRequestID, got)
	}
}

func TestRequestIDGeneratesWhenAbsent(t *testing.T) {
	app := fiber.New()
	app.Use(RequestID())
	app.Get("/", func(c fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	res, err := app.Test(httptest.NewRequest("GET", "/", nil))
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()

	if res.Header.Get(HeaderRequestID) == "" {
		t.Error("no request id generated for a bare request")
	}
}
