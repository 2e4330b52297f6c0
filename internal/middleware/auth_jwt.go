package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Wmolina17/backProjectUniversity/dto"
	"github.com/Wmolina17/backProjectUniversity/internal/logging"
	"github.com/Wmolina17/backProjectUniversity/utils"
)

// Routes reachable without a token. Login and registration must stay open
// or nobody could ever obtain a token in the first place.
var allowListPrefixes = []string{
	"/api/login",
	"/api/register_user",
	"/api/verify_user",
}

// JWTProtect gates every route behind a bearer token, except OPTIONS
// preflights and the allow-list above. A panic anywhere in the gate turns
// into a bare 500 so internal detail never leaks to the client.
func JWTProtect(secret string) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logging.L().Error("auth gate panic", zap.Any("panic", r))
				err = c.Status(fiber.StatusInternalServerError).
					JSON(dto.ErrorResponse{Message: "internal server error"})
			}
		}()

		if c.Method() == fiber.MethodOptions {
			return c.Next()
		}

		path := c.Path()
		for _, prefix := range allowListPrefixes {
			if strings.HasPrefix(path, prefix) {
				return c.Next()
			}
		}

		auth := c.Get("Authorization")
		if auth == "" || !strings.HasPrefix(strings.ToLower(auth), "bearer ") {
			return c.Status(fiber.StatusUnauthorized).
				JSON(dto.ErrorResponse{Message: "missing or malformed token"})
		}

		tokenStr := strings.TrimSpace(auth[7:])
		claims, err := utils.VerifyToken(secret, tokenStr)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).
				JSON(dto.ErrorResponse{Message: "invalid or expired token"})
		}

		c.Locals("user_id", claims.UID)
		c.Locals("claims", claims)
		return c.Next()
	}
}
