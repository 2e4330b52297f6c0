package controllers

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Wmolina17/backProjectUniversity/dto"
	"github.com/Wmolina17/backProjectUniversity/internal/logging"
	"github.com/Wmolina17/backProjectUniversity/internal/repository"
	"github.com/Wmolina17/backProjectUniversity/utils"
)

// GetProfile godoc
// @Summary      Full profile aggregate
// @Description  The user document plus the documents its reference lists point at
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "User ID (hex ObjectID)"
// @Success      200 {object} dto.ProfileResponse
// @Failure      404 {object} dto.ErrorResponse
// @Router       /api/profile/{id} [get]
func GetProfile(c *fiber.Ctx) error {
	oid, err := utils.Oid(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid user id"})
	}

	ctx, cancel := requestContext()
	defer cancel()

	users := repository.NewUserRepository()
	questions := repository.NewQuestionRepository()
	forums := repository.NewForumRepository()
	resources := repository.NewResourceRepository()

	user, err := users.FindByID(ctx, oid)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Message: "user not found"})
	}

	// One $in query per related collection, never one per id.
	active, err := questions.FindByIDs(ctx, utils.Oids(user.ActiveQuestions))
	if err != nil {
		return profileFetchError(c, err)
	}
	answered, err := questions.FindByIDs(ctx, utils.Oids(user.AnsweredQuestions))
	if err != nil {
		return profileFetchError(c, err)
	}
	allForums, err := forums.FindByIDs(ctx, utils.Oids(user.ActiveAllForums))
	if err != nil {
		return profileFetchError(c, err)
	}
	saved, err := resources.FindByIDs(ctx, utils.Oids(user.SavedResources))
	if err != nil {
		return profileFetchError(c, err)
	}
	created, err := resources.FindByIDs(ctx, utils.Oids(user.ResourcesCreated))
	if err != nil {
		return profileFetchError(c, err)
	}

	user.Sanitize()
	return c.Status(fiber.StatusOK).JSON(dto.ProfileResponse{
		Message: "profile fetched successfully",
		Data: dto.ProfileData{
			User:              *user,
			ActiveQuestions:   active,
			AnsweredQuestions: answered,
			ActiveForums:      allForums,
			SavedResources:    saved,
			ResourcesCreated:  created,
		},
	})
}

func profileFetchError(c *fiber.Ctx, err error) error {
	logging.L().Error("profile: fetch related documents", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: "failed to fetch profile"})
}

// UpdateProfile godoc
// @Summary      Update mutable profile fields
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.UpdateProfileRequest true "Password plus fields to change"
// @Success      200 {object} dto.AuthResponse
// @Failure      401 {object} dto.ErrorResponse
// @Router       /api/update_profile [put]
func UpdateProfile(c *fiber.Ctx) error {
	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid request body"})
	}

	ctx, cancel := requestContext()
	defer cancel()

	users := repository.NewUserRepository()

	user, err := verifyPassword(ctx, users, req.Email, req.Password)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Message: "invalid credentials"})
	}

	// Only these fields are client-mutable; counters, ids and reference
	// lists never pass through here.
	fields := bson.M{}
	if req.FullName != "" {
		fields["fullname"] = req.FullName
	}
	if req.Phone != "" {
		fields["phone"] = req.Phone
	}
	if req.Country != "" {
		fields["country"] = req.Country
	}
	if req.Img != "" {
		fields["img"] = req.Img
	}

	if len(fields) > 0 {
		if err := users.SetFields(ctx, user.ID, fields); err != nil {
			logging.L().Error("update_profile: set fields", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: "failed to update profile"})
		}
	}

	refreshed, err := users.FindByID(ctx, user.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: "failed to fetch profile"})
	}

	refreshed.Sanitize()
	return c.Status(fiber.StatusOK).JSON(dto.AuthResponse{Message: "profile updated successfully", User: *refreshed})
}

// UpdateEmail godoc
// @Summary      Change the account email
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.UpdateEmailRequest true "User id, new email, current password"
// @Success      200 {object} dto.MessageResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Router       /api/update_email [put]
func UpdateEmail(c *fiber.Ctx) error {
	var req dto.UpdateEmailRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid request body"})
	}

	oid, err := utils.Oid(req.UserID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid user id"})
	}

	ctx, cancel := requestContext()
	defer cancel()

	users := repository.NewUserRepository()

	user, err := users.FindByID(ctx, oid)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Message: "user not found"})
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Message: "invalid credentials"})
	}

	// Stored in the same canonical form login looks up, or the account
	// could never authenticate again and the unique index could be dodged
	// by case alone.
	newEmail := normalizeEmail(req.NewEmail)
	if newEmail == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "email is required"})
	}

	if other, err := users.FindByEmail(ctx, newEmail); err == nil && other.ID != user.ID {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Message: "email already in use"})
	}

	if err := users.SetFields(ctx, user.ID, bson.M{"email": newEmail}); err != nil {
		logging.L().Error("update_email: set email", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: "failed to update email"})
	}

	return c.Status(fiber.StatusOK).JSON(dto.MessageResponse{Message: "email updated successfully"})
}

// UpdatePassword godoc
// @Summary      Change the account password
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.UpdatePasswordRequest true "Email, current and new password"
// @Success      200 {object} dto.MessageResponse
// @Failure      401 {object} dto.ErrorResponse
// @Router       /api/update_password [put]
func UpdatePassword(c *fiber.Ctx) error {
	var req dto.UpdatePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid request body"})
	}

	ctx, cancel := requestContext()
	defer cancel()

	users := repository.NewUserRepository()

	user, err := verifyPassword(ctx, users, req.Email, req.CurrentPassword)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Message: "invalid credentials"})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: "failed to hash password"})
	}

	if err := users.SetFields(ctx, user.ID, bson.M{"password": string(hashed)}); err != nil {
		logging.L().Error("update_password: set password", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: "failed to update password"})
	}

	return c.Status(fiber.StatusOK).JSON(dto.MessageResponse{Message: "password updated successfully"})
}

// DeleteAccount godoc
// @Summary      Delete the account
// @Description  Removes the user and drops them from every forum's active list
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.DeleteAccountRequest true "Email and password"
// @Success      200 {object} dto.MessageResponse
// @Failure      401 {object} dto.ErrorResponse
// @Router       /api/delete_account [delete]
func DeleteAccount(c *fiber.Ctx) error {
	var req dto.DeleteAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid request body"})
	}

	ctx, cancel := requestContext()
	defer cancel()

	users := repository.NewUserRepository()
	forums := repository.NewForumRepository()

	user, err := verifyPassword(ctx, users, req.Email, req.Password)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Message: "invalid credentials"})
	}

	if err := users.Delete(ctx, user.ID); err != nil {
		logging.L().Error("delete_account: delete user", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: "failed to delete account"})
	}

	// Best-effort cascade: the account is already gone, a failed pull here
	// leaves a dangling snapshot in that forum and is only logged.
	if err := forums.PullMemberEverywhere(ctx, user.ID.Hex()); err != nil {
		logging.L().Warn("delete_account: forum membership cascade",
			zap.String("user_id", user.ID.Hex()), zap.Error(err))
	}

	return c.Status(fiber.StatusOK).JSON(dto.MessageResponse{Message: "account deleted successfully"})
}
