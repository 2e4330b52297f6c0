package chat

import (
	"context"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Wmolina17/backProjectUniversity/dto"
	"github.com/Wmolina17/backProjectUniversity/internal/logging"
	"github.com/Wmolina17/backProjectUniversity/internal/models"
	"github.com/Wmolina17/backProjectUniversity/internal/repository"
	"github.com/Wmolina17/backProjectUniversity/utils"
)

const persistTimeout = 5 * time.Second

// UpgradeRequired rejects plain HTTP requests on the chat route before the
// websocket handler takes over.
func UpgradeRequired(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// ForumSocket runs one chat session: register, replay history, then an
// append-then-broadcast loop until the peer goes away.
func ForumSocket(hub *Hub) fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		forumID := conn.Params("forumId")

		oid, err := utils.Oid(forumID)
		if err != nil {
			_ = conn.WriteJSON(dto.ErrorResponse{Message: "invalid forum id"})
			_ = conn.Close()
			return
		}

		forums := repository.NewForumRepository()

		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		history, err := forums.FindMessages(ctx, oid)
		cancel()
		if err != nil {
			_ = conn.WriteJSON(dto.ErrorResponse{Message: "forum not found"})
			_ = conn.Close()
			return
		}

		hub.Register(forumID, conn)
		defer func() {
			hub.Unregister(forumID, conn)
			_ = conn.Close()
		}()

		// Full history as a single initial payload.
		if err := conn.WriteJSON(dto.ChatHistory{PreviousMessages: history}); err != nil {
			return
		}

		for {
			var msg models.Message
			if err := conn.ReadJSON(&msg); err != nil {
				// Read faults and normal closes both end the session; the
				// deferred unregister is the only cleanup needed.
				return
			}
			if msg.Date.IsZero() {
				msg.Date = time.Now().UTC()
			}

			ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
			err := forums.PushMessage(ctx, oid, msg)
			cancel()
			if err != nil {
				logging.L().Warn("chat: persist message",
					zap.String("forum_id", forumID), zap.Error(err))
				_ = conn.WriteJSON(dto.ErrorResponse{Message: "failed to persist message"})
				continue
			}

			// Broadcast strictly after the append, so every session sees
			// messages in their persisted order.
			hub.Broadcast(forumID, msg)
		}
	})
}
