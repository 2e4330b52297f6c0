package middleware_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Wmolina17/backProjectUniversity/internal/middleware"
	"github.com/Wmolina17/backProjectUniversity/utils"
)

const testSecret = "gate-test-secret"

func newGatedApp() *fiber.App {
	app := fiber.New()
	app.Use(middleware.JWTProtect(testSecret))

	ok := func(c *fiber.Ctx) error {
		uid, _ := c.Locals("user_id").(string)
		return c.JSON(fiber.Map{"uid": uid})
	}
	app.Post("/api/login", ok)
	app.Post("/api/register_user", ok)
	app.Post("/api/verify_user", ok)
	app.Get("/api/questions", ok)
	app.Options("/api/questions", ok)
	return app
}

func TestGateAllowsAllowListedRoutes(t *testing.T) {
	app := newGatedApp()

	for _, path := range []string{"/api/login", "/api/register_user", "/api/verify_user"} {
		req := httptest.NewRequest("POST", path, nil)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		if resp.StatusCode != fiber.StatusOK {
			t.Errorf("%s: got status %d, want 200", path, resp.StatusCode)
		}
	}
}

func TestGateAllowsOptionsPreflight(t *testing.T) {
	app := newGatedApp()

	req := httptest.NewRequest("OPTIONS", "/api/questions", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("got status %d, want 200", resp.StatusCode)
	}
}

func TestGateRejectsMissingToken(t *testing.T) {
	app := newGatedApp()

	req := httptest.NewRequest("GET", "/api/questions", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("got status %d, want 401", resp.StatusCode)
	}
}

func TestGateRejectsMalformedHeader(t *testing.T) {
	app := newGatedApp()

	cases := []string{"Token abc", "bearer", "abc.def.ghi"}
	for _, header := range cases {
		req := httptest.NewRequest("GET", "/api/questions", nil)
		req.Header.Set("Authorization", header)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		if resp.StatusCode != fiber.StatusUnauthorized {
			t.Errorf("header %q: got status %d, want 401", header, resp.StatusCode)
		}
	}
}

func TestGateRejectsInvalidToken(t *testing.T) {
	app := newGatedApp()

	expired, err := utils.GenerateToken(testSecret, "uid123", "a@x.com", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	wrongSecret, err := utils.GenerateToken("other-secret", "uid123", "a@x.com", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	for name, token := range map[string]string{
		"expired":      expired,
		"wrong secret": wrongSecret,
		"garbage":      "garbage-token",
	} {
		req := httptest.NewRequest("GET", "/api/questions", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("%s: request failed: %v", name, err)
		}
		if resp.StatusCode != fiber.StatusUnauthorized {
			t.Errorf("%s: got status %d, want 401", name, resp.StatusCode)
		}
	}
}

func TestGateAcceptsValidToken(t *testing.T) {
	app := newGatedApp()

	token, err := utils.GenerateToken(testSecret, "uid123", "a@x.com", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	req := httptest.NewRequest("GET", "/api/questions", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("got status %d, want 200", resp.StatusCode)
	}
}
