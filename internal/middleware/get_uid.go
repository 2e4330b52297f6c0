package middleware

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// UIDFromLocals reads the user_id the JWT gate stashed in Locals.
func UIDFromLocals(c *fiber.Ctx) (string, error) {
	uid, _ := c.Locals("user_id").(string)
	if uid == "" {
		return "", fiber.ErrUnauthorized
	}
	return uid, nil
}

// UIDObjectID reads the user_id from Locals as a bson.ObjectID.
func UIDObjectID(c *fiber.Ctx) (bson.ObjectID, error) {
	v := c.Locals("user_id")
	uid, ok := v.(string)
	if !ok || uid == "" {
		return bson.NilObjectID, fiber.ErrUnauthorized
	}

	oid, err := bson.ObjectIDFromHex(uid)
	if err != nil {
		return bson.NilObjectID, fiber.ErrUnauthorized
	}
	return oid, nil
}
