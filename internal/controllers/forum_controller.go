package controllers

import (
	"sort"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"

	"github.com/Wmolina17/backProjectUniversity/dto"
	"github.com/Wmolina17/backProjectUniversity/internal/logging"
	"github.com/Wmolina17/backProjectUniversity/internal/middleware"
	"github.com/Wmolina17/backProjectUniversity/internal/models"
	"github.com/Wmolina17/backProjectUniversity/internal/repository"
	"github.com/Wmolina17/backProjectUniversity/utils"
)

const popularForumLimit = 10

// rankPopular attaches the read-time participation score to every forum,
// sorts descending and truncates. Nothing is persisted.
func rankPopular(forums []models.Forum, limit int) []dto.PopularForum {
	ranked := make([]dto.PopularForum, 0, len(forums))
	for _, f := range forums {
		ranked = append(ranked, dto.PopularForum{Forum: f, Statdistics: f.PopularityScore()})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Statdistics > ranked[j].Statdistics
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// ListForums godoc
// @Summary      List all forums
// @Tags         forums
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} models.Forum
// @Router       /api/forum [get]
func ListForums(c *fiber.Ctx) error {
	ctx, cancel := requestContext()
	defer cancel()

	forums := repository.NewForumRepository()

	all, err := forums.FindAll(ctx)
	if err != nil {
		logging.L().Error("forums: list", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: "failed to fetch forums"})
	}

	return c.Status(fiber.StatusOK).JSON(all)
}

// ListPopularForums godoc
// @Summary      Top forums by participation
// @Description  Score is (activeUserCount + messageCount) / 2, computed per request
// @Tags         forums
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.PopularForum
// @Router       /api/popular_forum [get]
func ListPopularForums(c *fiber.Ctx) error {
	ctx, cancel := requestContext()
	defer cancel()

	forums := repository.NewForumRepository()

	all, err := forums.FindAll(ctx)
	if err != nil {
		logging.L().Error("forums: popular list", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: "failed to fetch forums"})
	}

	return c.Status(fiber.StatusOK).JSON(rankPopular(all, popularForumLimit))
}

// CreateForum godoc
// @Summary      Create a forum
// @Tags         forums
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CreateForumRequest true "Forum"
// @Success      201 {object} map[string]interface{}
// @Router       /api/forum [post]
func CreateForum(c *fiber.Ctx) error {
	var req dto.CreateForumRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid request body"})
	}

	creatorID, err := utils.Oid(req.Creator.UserID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid creator id"})
	}

	ctx, cancel := requestContext()
	defer cancel()

	forums := repository.NewForumRepository()
	users := repository.NewUserRepository()

	forum := models.Forum{
		Creator:      req.Creator,
		Title:        req.Title,
		Description:  req.Description,
		Img:          req.Img,
		CreationDate: time.Now().UTC(),
		ActiveUsers:  []models.UserSnapshot{},
		Messages:     []models.Message{},
	}

	oid, err := forums.Insert(ctx, &forum)
	if err != nil {
		logging.L().Error("forums: insert", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: "failed to create forum"})
	}
	forum.ID = oid

	if err := users.PushRef(ctx, creatorID, bson.M{
		"activeOwnForums": oid.Hex(),
		"activeAllForums": oid.Hex(),
	}); err != nil {
		logging.L().Warn("forums: push creator refs",
			zap.String("user_id", req.Creator.UserID), zap.Error(err))
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "forum created successfully",
		"forum":   forum,
	})
}

// UpdateForum godoc
// @Summary      Update title, description or image
// @Tags         forums
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Forum ID (hex ObjectID)"
// @Param        body body dto.UpdateForumRequest true "Fields to change"
// @Success      200 {object} dto.MessageResponse
// @Failure      404 {object} dto.ErrorResponse
// @Router       /api/forum/{id} [put]
func UpdateForum(c *fiber.Ctx) error {
	oid, err := utils.Oid(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid forum id"})
	}

	var req dto.UpdateForumRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid request body"})
	}

	fields := bson.M{}
	if req.Title != "" {
		fields["title"] = req.Title
	}
	if req.Description != "" {
		fields["description"] = req.Description
	}
	if req.Img != "" {
		fields["img"] = req.Img
	}
	if len(fields) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "no updatable fields provided"})
	}

	ctx, cancel := requestContext()
	defer cancel()

	forums := repository.NewForumRepository()
	if err := forums.SetFields(ctx, oid, fields); err != nil {
		if err == repository.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Message: "forum not found"})
		}
		logging.L().Error("forums: update", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: "failed to update forum"})
	}

	return c.Status(fiber.StatusOK).JSON(dto.MessageResponse{Message: "forum updated successfully"})
}

// AddForumMember godoc
// @Summary      Join a forum
// @Tags         forums
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.ForumMemberRequest true "Forum id and user snapshot"
// @Success      200 {object} dto.MessageResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Router       /api/forum/add_user [post]
func AddForumMember(c *fiber.Ctx) error {
	var req dto.ForumMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid request body"})
	}

	oid, err := utils.Oid(req.ForumID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid forum id"})
	}

	ctx, cancel := requestContext()
	defer cancel()

	forums := repository.NewForumRepository()
	users := repository.NewUserRepository()

	forum, err := forums.FindByID(ctx, oid)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Message: "forum not found"})
	}

	if forum.HasMember(req.User.UserID) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Message: "user already belongs to the forum"})
	}

	if err := forums.PushMember(ctx, oid, req.User); err != nil {
		logging.L().Error("forums: push member", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: "failed to join forum"})
	}

	if memberID, err := utils.Oid(req.User.UserID); err == nil {
		if err := users.PushRef(ctx, memberID, bson.M{"activeAllForums": oid.Hex()}); err != nil {
			logging.L().Warn("forums: push activeAllForums",
				zap.String("user_id", req.User.UserID), zap.Error(err))
		}
	}

	return c.Status(fiber.StatusOK).JSON(dto.MessageResponse{Message: "user added to forum successfully"})
}

// RemoveForumMember godoc
// @Summary      Leave a forum
// @Tags         forums
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.ForumMemberRequest true "Forum id and user snapshot"
// @Success      200 {object} dto.MessageResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Router       /api/forum/remove_user [post]
func RemoveForumMember(c *fiber.Ctx) error {
	var req dto.ForumMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid request body"})
	}

	oid, err := utils.Oid(req.ForumID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid forum id"})
	}

	ctx, cancel := requestContext()
	defer cancel()

	forums := repository.NewForumRepository()
	users := repository.NewUserRepository()

	forum, err := forums.FindByID(ctx, oid)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Message: "forum not found"})
	}

	if !forum.HasMember(req.User.UserID) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Message: "user does not belong to the forum"})
	}

	if err := forums.PullMember(ctx, oid, req.User.UserID); err != nil {
		logging.L().Error("forums: pull member", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: "failed to leave forum"})
	}

	if memberID, err := utils.Oid(req.User.UserID); err == nil {
		if err := users.PullRef(ctx, memberID, bson.M{"activeAllForums": oid.Hex()}); err != nil {
			logging.L().Warn("forums: pull activeAllForums",
				zap.String("user_id", req.User.UserID), zap.Error(err))
		}
	}

	return c.Status(fiber.StatusOK).JSON(dto.MessageResponse{Message: "user removed from forum successfully"})
}

// DeleteForum godoc
// @Summary      Delete a forum
// @Description  Only the stored creator may delete; members' forum lists are cleaned up best effort
// @Tags         forums
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.ForumMemberRequest true "Forum id and requester snapshot"
// @Success      200 {object} dto.MessageResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Router       /api/forum/remove_forum [post]
func DeleteForum(c *fiber.Ctx) error {
	var req dto.ForumMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid request body"})
	}

	oid, err := utils.Oid(req.ForumID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid forum id"})
	}

	ctx, cancel := requestContext()
	defer cancel()

	forums := repository.NewForumRepository()
	users := repository.NewUserRepository()

	forum, err := forums.FindByID(ctx, oid)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Message: "forum not found"})
	}

	// The requester is whoever the gate authenticated, not whoever the
	// body claims to be.
	requester, err := middleware.UIDFromLocals(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Message: "missing or malformed token"})
	}
	if forum.Creator.UserID != requester {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Message: "only the creator can delete the forum"})
	}

	if err := forums.Delete(ctx, oid); err != nil {
		logging.L().Error("forums: delete", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: "failed to delete forum"})
	}

	// Per-member cleanup keeps going past individual failures; the forum is
	// already gone and there is no rollback.
	hex := oid.Hex()
	for _, member := range forum.ActiveUsers {
		memberID, err := utils.Oid(member.UserID)
		if err != nil {
			continue
		}
		if err := users.PullRef(ctx, memberID, bson.M{"activeAllForums": hex}); err != nil {
			logging.L().Warn("forums: pull member forum ref",
				zap.String("user_id", member.UserID), zap.Error(err))
		}
	}
	if creatorID, err := utils.Oid(forum.Creator.UserID); err == nil {
		if err := users.PullRef(ctx, creatorID, bson.M{
			"activeOwnForums": hex,
			"activeAllForums": hex,
		}); err != nil {
			logging.L().Warn("forums: pull creator forum refs",
				zap.String("user_id", forum.Creator.UserID), zap.Error(err))
		}
	}

	return c.Status(fiber.StatusOK).JSON(dto.MessageResponse{Message: "forum deleted and members updated successfully"})
}
