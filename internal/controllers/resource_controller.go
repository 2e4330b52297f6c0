package controllers

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"

	"github.com/Wmolina17/backProjectUniversity/dto"
	"github.com/Wmolina17/backProjectUniversity/internal/logging"
	"github.com/Wmolina17/backProjectUniversity/internal/models"
	"github.com/Wmolina17/backProjectUniversity/internal/repository"
	"github.com/Wmolina17/backProjectUniversity/utils"
)

// isSaved reports whether the resource id is on the user's saved list.
func isSaved(user *models.User, resourceID string) bool {
	for _, id := range user.SavedResources {
		if id == resourceID {
			return true
		}
	}
	return false
}

// ListResources godoc
// @Summary      List all resources
// @Tags         resources
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} models.Resource
// @Router       /api/resources [get]
func ListResources(c *fiber.Ctx) error {
	ctx, cancel := requestContext()
	defer cancel()

	resources := repository.NewResourceRepository()

	all, err := resources.FindAll(ctx)
	if err != nil {
		logging.L().Error("resources: list", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: "failed to fetch resources"})
	}

	return c.Status(fiber.StatusOK).JSON(all)
}

// ListResourcesByUser godoc
// @Summary      Saved and created resources of one user
// @Tags         resources
// @Produce      json
// @Security     BearerAuth
// @Param        userId path string true "User ID (hex ObjectID)"
// @Success      200 {object} dto.UserResources
// @Failure      404 {object} dto.ErrorResponse
// @Router       /api/resources/{userId} [get]
func ListResourcesByUser(c *fiber.Ctx) error {
	oid, err := utils.Oid(c.Params("userId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid user id"})
	}

	ctx, cancel := requestContext()
	defer cancel()

	users := repository.NewUserRepository()
	resources := repository.NewResourceRepository()

	user, err := users.FindByID(ctx, oid)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Message: "user not found"})
	}

	saved, err := resources.FindByIDs(ctx, utils.Oids(user.SavedResources))
	if err != nil {
		logging.L().Error("resources: fetch saved", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: "failed to fetch resources"})
	}
	created, err := resources.FindByIDs(ctx, utils.Oids(user.ResourcesCreated))
	if err != nil {
		logging.L().Error("resources: fetch created", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: "failed to fetch resources"})
	}

	return c.Status(fiber.StatusOK).JSON(dto.UserResources{
		SavedResources:   saved,
		CreatedResources: created,
	})
}

// CreateResource godoc
// @Summary      Publish a resource
// @Tags         resources
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CreateResourceRequest true "Resource"
// @Success      201 {object} map[string]interface{}
// @Failure      404 {object} dto.ErrorResponse
// @Router       /api/resources [post]
func CreateResource(c *fiber.Ctx) error {
	var req dto.CreateResourceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid request body"})
	}

	ownerID, err := utils.Oid(req.UserID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid user id"})
	}

	ctx, cancel := requestContext()
	defer cancel()

	resources := repository.NewResourceRepository()
	users := repository.NewUserRepository()

	resource := models.Resource{
		UserID:          req.UserID,
		Title:           req.Title,
		Description:     req.Description,
		TypeContent:     req.TypeContent,
		RedirectionLink: req.RedirectionLink,
	}

	oid, err := resources.Insert(ctx, &resource)
	if err != nil {
		logging.L().Error("resources: insert", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: "failed to create resource"})
	}
	resource.ID = oid

	// The insert is not rolled back when the owner's list update misses;
	// the 404 surfaces the partial failure to the caller.
	if err := users.PushRef(ctx, ownerID, bson.M{"resourcesCreated": oid.Hex()}); err != nil {
		logging.L().Warn("resources: push resourcesCreated",
			zap.String("user_id", req.UserID), zap.Error(err))
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Message: "owner not found or not updated"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "resource created successfully",
		"resource": resource,
	})
}

// UpdateResource godoc
// @Summary      Update resource fields
// @Tags         resources
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Resource ID (hex ObjectID)"
// @Param        body body dto.UpdateResourceRequest true "Fields to change"
// @Success      200 {object} map[string]interface{}
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Router       /api/resources/{id} [put]
func UpdateResource(c *fiber.Ctx) error {
	oid, err := utils.Oid(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid resource id"})
	}

	var req dto.UpdateResourceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid request body"})
	}

	// Counters and the owner reference are server-managed and not
	// reachable from here.
	fields := bson.M{}
	if req.Title != "" {
		fields["title"] = req.Title
	}
	if req.Description != "" {
		fields["description"] = req.Description
	}
	if req.TypeContent != "" {
		fields["typeContent"] = req.TypeContent
	}
	if req.RedirectionLink != "" {
		fields["redirectionLink"] = req.RedirectionLink
	}
	if len(fields) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "no updatable fields provided"})
	}

	ctx, cancel := requestContext()
	defer cancel()

	resources := repository.NewResourceRepository()
	if err := resources.SetFields(ctx, oid, fields); err != nil {
		if err == repository.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Message: "resource not found"})
		}
		logging.L().Error("resources: update", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: "failed to update resource"})
	}

	updated, err := resources.FindByID(ctx, oid)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: "failed to fetch resource"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":  "resource updated successfully",
		"resource": updated,
	})
}

// DeleteResource godoc
// @Summary      Delete a resource
// @Tags         resources
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Resource ID (hex ObjectID)"
// @Success      200 {object} dto.MessageResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Router       /api/resources/{id} [delete]
func DeleteResource(c *fiber.Ctx) error {
	oid, err := utils.Oid(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid resource id"})
	}

	ctx, cancel := requestContext()
	defer cancel()

	resources := repository.NewResourceRepository()
	if err := resources.Delete(ctx, oid); err != nil {
		if err == repository.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Message: "resource not found"})
		}
		logging.L().Error("resources: delete", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: "failed to delete resource"})
	}

	return c.Status(fiber.StatusOK).JSON(dto.MessageResponse{Message: "resource deleted successfully"})
}

// SaveResource godoc
// @Summary      Save a resource for a user
// @Description  Idempotent; only the first save moves the counter
// @Tags         resources
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Resource ID (hex ObjectID)"
// @Param        userId path string true "User ID (hex ObjectID)"
// @Success      200 {object} dto.MessageResponse
// @Failure      404 {object} dto.ErrorResponse
// @Router       /api/resources/save/{id}/{userId} [put]
func SaveResource(c *fiber.Ctx) error {
	return toggleSave(c, true)
}

// UnsaveResource godoc
// @Summary      Remove a resource from a user's saved list
// @Description  Idempotent; only an actual removal moves the counter
// @Tags         resources
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Resource ID (hex ObjectID)"
// @Param        userId path string true "User ID (hex ObjectID)"
// @Success      200 {object} dto.MessageResponse
// @Failure      404 {object} dto.ErrorResponse
// @Router       /api/resources/unsave/{id}/{userId} [put]
func UnsaveResource(c *fiber.Ctx) error {
	return toggleSave(c, false)
}

func toggleSave(c *fiber.Ctx, save bool) error {
	resourceOID, err := utils.Oid(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid resource id"})
	}
	userOID, err := utils.Oid(c.Params("userId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid user id"})
	}

	ctx, cancel := requestContext()
	defer cancel()

	resources := repository.NewResourceRepository()
	users := repository.NewUserRepository()

	if _, err := resources.FindByID(ctx, resourceOID); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Message: "resource not found"})
	}
	user, err := users.FindByID(ctx, userOID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Message: "user not found"})
	}

	resourceID := resourceOID.Hex()
	already := isSaved(user, resourceID)

	// Mutate only on a state change; repeating the same toggle is a no-op
	// so the counter moves exactly once per distinct edge.
	if save && !already {
		if err := users.PushRef(ctx, userOID, bson.M{"savedResources": resourceID}); err != nil {
			logging.L().Error("resources: push savedResources", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: "failed to save resource"})
		}
		if err := resources.IncSavedCount(ctx, resourceOID, 1); err != nil {
			logging.L().Warn("resources: inc savedCount", zap.Error(err))
		}
	} else if !save && already {
		if err := users.PullRef(ctx, userOID, bson.M{"savedResources": resourceID}); err != nil {
			logging.L().Error("resources: pull savedResources", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: "failed to unsave resource"})
		}
		if err := resources.IncSavedCount(ctx, resourceOID, -1); err != nil {
			logging.L().Warn("resources: dec savedCount", zap.Error(err))
		}
	}

	if save {
		return c.Status(fiber.StatusOK).JSON(dto.MessageResponse{Message: "resource saved"})
	}
	return c.Status(fiber.StatusOK).JSON(dto.MessageResponse{Message: "resource unsaved"})
}

// RecordResourceView godoc
// @Summary      Count one view of a resource
// @Tags         resources
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Resource ID (hex ObjectID)"
// @Success      200 {object} dto.MessageResponse
// @Failure      404 {object} dto.ErrorResponse
// @Router       /api/resources/{id}/view [put]
func RecordResourceView(c *fiber.Ctx) error {
	oid, err := utils.Oid(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid resource id"})
	}

	ctx, cancel := requestContext()
	defer cancel()

	resources := repository.NewResourceRepository()
	if err := resources.IncViewsCount(ctx, oid); err != nil {
		if err == repository.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Message: "resource not found"})
		}
		logging.L().Error("resources: inc viewsCount", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: "failed to record view"})
	}

	return c.Status(fiber.StatusOK).JSON(dto.MessageResponse{Message: "view recorded"})
}
