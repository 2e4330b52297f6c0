package middleware_test

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/Wmolina17/backProjectUniversity/internal/middleware"
	"github.com/Wmolina17/backProjectUniversity/utils"
)

func newWhoAmIApp() *fiber.App {
	app := fiber.New()
	app.Use(middleware.JWTProtect(testSecret))

	app.Get("/api/whoami", func(c *fiber.Ctx) error {
		uid, err := middleware.UIDFromLocals(c)
		if err != nil {
			return err
		}
		oid, err := middleware.UIDObjectID(c)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"uid": uid, "oid": oid.Hex()})
	})
	return app
}

func TestUIDHelpersReadGateIdentity(t *testing.T) {
	app := newWhoAmIApp()

	userID := bson.NewObjectID().Hex()
	token, err := utils.GenerateToken(testSecret, userID, "a@x.com", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	req := httptest.NewRequest("GET", "/api/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("got status %d, want 200", resp.StatusCode)
	}

	var body struct {
		UID string `json:"uid"`
		OID string `json:"oid"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.UID != userID {
		t.Errorf("UIDFromLocals returned %q, want %q", body.UID, userID)
	}
	if body.OID != userID {
		t.Errorf("UIDObjectID round-tripped to %q, want %q", body.OID, userID)
	}
}

func TestUIDObjectIDRejectsNonHexSubject(t *testing.T) {
	app := newWhoAmIApp()

	token, err := utils.GenerateToken(testSecret, "not-a-hex-oid", "a@x.com", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	req := httptest.NewRequest("GET", "/api/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("got status %d, want 401", resp.StatusCode)
	}
}

func TestUIDFromLocalsWithoutGate(t *testing.T) {
	app := fiber.New()
	app.Get("/bare", func(c *fiber.Ctx) error {
		if _, err := middleware.UIDFromLocals(c); err == nil {
			t.Error("UIDFromLocals succeeded with no identity in Locals")
		}
		return c.SendString("ok")
	})

	if _, err := app.Test(httptest.NewRequest("GET", "/bare", nil)); err != nil {
		t.Fatalf("request failed: %v", err)
	}
}
