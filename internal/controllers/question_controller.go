package controllers

import (
	"context"
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

// ownerProjection joins the owning user's public fields into a question
// payload. A missing owner degrades to an empty projection, not an error.
func ownerProjection(ctx context.Context, users *repository.UserRepository, userID string) dto.QuestionOwner {
	oid, err := utils.Oid(userID)
	if err != nil {
		return dto.QuestionOwner{}
	}
	user, err := users.FindByID(ctx, oid)
	if err != nil {
		return dto.QuestionOwner{}
	}
	return dto.QuestionOwner{
		ID:                user.ID.Hex(),
		FullName:          user.FullName,
		ActiveQuestions:   user.ActiveQuestions,
		AnsweredQuestions: user.AnsweredQuestions,
	}
}

// toListItem collapses a question for the list view: owner joined in,
// answers dropped, only the count kept.
func toListItem(q models.Question, owner dto.QuestionOwner) dto.QuestionListItem {
	return dto.QuestionListItem{
		ID:           q.ID.Hex(),
		UserID:       q.UserID,
		Title:        q.Title,
		TextContent:  q.TextContent,
		ViewsCount:   q.ViewsCount,
		AnswersCount: len(q.Answers),
		Date:         q.Date,
		Tags:         q.Tags,
		User:         owner,
	}
}

// ListQuestions godoc
// @Summary      List all questions
// @Description  Answer bodies are withheld on the list view, only counts survive
// @Tags         questions
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} map[string]interface{}
// @Router       /api/questions [get]
func ListQuestions(c *fiber.Ctx) error {
	ctx, cancel := requestContext()
	defer cancel()

	questions := repository.NewQuestionRepository()
	users := repository.NewUserRepository()

	all, err := questions.FindAll(ctx)
	if err != nil {
		logging.L().Error("questions: list", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: "failed to fetch questions"})
	}

	items := make([]dto.QuestionListItem, 0, len(all))
	for _, q := range all {
		items = append(items, toListItem(q, ownerProjection(ctx, users, q.UserID)))
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":   "questions fetched successfully",
		"questions": items,
	})
}

// ListBasicQuestions godoc
// @Summary      Id/title pairs for all questions
// @Tags         questions
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} map[string]interface{}
// @Router       /api/basic_list_questions [get]
func ListBasicQuestions(c *fiber.Ctx) error {
	ctx, cancel := requestContext()
	defer cancel()

	questions := repository.NewQuestionRepository()

	all, err := questions.FindAll(ctx)
	if err != nil {
		logging.L().Error("questions: basic list", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: "failed to fetch questions"})
	}

	basic := make([]dto.BasicQuestion, 0, len(all))
	for _, q := range all {
		basic = append(basic, dto.BasicQuestion{ID: q.ID.Hex(), Title: q.Title})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":   "questions fetched successfully",
		"questions": basic,
	})
}

// CreateQuestion godoc
// @Summary      Post a new question
// @Tags         questions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CreateQuestionRequest true "Question"
// @Success      201 {object} map[string]interface{}
// @Failure      404 {object} dto.ErrorResponse
// @Router       /api/add_question [post]
func CreateQuestion(c *fiber.Ctx) error {
	var req dto.CreateQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid request body"})
	}

	ownerID, err := utils.Oid(req.UserID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid user id"})
	}

	ctx, cancel := requestContext()
	defer cancel()

	users := repository.NewUserRepository()
	questions := repository.NewQuestionRepository()

	if _, err := users.FindByID(ctx, ownerID); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Message: "user not found"})
	}

	question := models.Question{
		UserID:      req.UserID,
		Title:       req.Title,
		TextContent: req.TextContent,
		Date:        time.Now().UTC(),
		Tags:        req.Tags,
		Answers:     []models.Answer{},
	}

	oid, err := questions.Insert(ctx, &question)
	if err != nil {
		logging.L().Error("questions: insert", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: "failed to create question"})
	}
	question.ID = oid

	// Compensating write on the owner's reference list; not rolled back if
	// it fails.
	if err := users.PushRef(ctx, ownerID, bson.M{"activeQuestions": oid.Hex()}); err != nil {
		logging.L().Warn("questions: push activeQuestions",
			zap.String("user_id", req.UserID), zap.Error(err))
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "question created successfully",
		"question": question,
	})
}

// GetQuestion godoc
// @Summary      Question detail
// @Description  Atomically increments the view counter as part of the fetch
// @Tags         questions
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Question ID (hex ObjectID)"
// @Success      200 {object} map[string]interface{}
// @Failure      404 {object} dto.ErrorResponse
// @Router       /api/questions/{id} [get]
func GetQuestion(c *fiber.Ctx) error {
	oid, err := utils.Oid(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid question id"})
	}

	ctx, cancel := requestContext()
	defer cancel()

	questions := repository.NewQuestionRepository()
	users := repository.NewUserRepository()

	q, err := questions.FetchAndCountView(ctx, oid)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Message: "question not found"})
	}

	detail := dto.QuestionDetail{
		Question: *q,
		User:     ownerProjection(ctx, users, q.UserID),
		Answers:  make([]dto.AnswerDetail, 0, len(q.Answers)),
	}
	for _, ans := range q.Answers {
		detail.Answers = append(detail.Answers, dto.AnswerDetail{
			Answer: ans,
			User:   ownerProjection(ctx, users, ans.UserID),
		})
	}
	detail.Question.Answers = nil

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":  "question detail fetched successfully",
		"question": detail,
	})
}

// ListQuestionsByUser godoc
// @Summary      Questions owned by one user
// @Tags         questions
// @Produce      json
// @Security     BearerAuth
// @Param        userId path string true "User ID (hex ObjectID)"
// @Success      200 {object} map[string]interface{}
// @Router       /api/questions/user/{userId} [get]
func ListQuestionsByUser(c *fiber.Ctx) error {
	ctx, cancel := requestContext()
	defer cancel()

	questions := repository.NewQuestionRepository()

	list, err := questions.FindByUser(ctx, c.Params("userId"))
	if err != nil {
		logging.L().Error("questions: list by user", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: "failed to fetch questions"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":   "questions fetched successfully",
		"questions": list,
	})
}

// UpdateQuestion godoc
// @Summary      Update title, body or tags
// @Tags         questions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Question ID (hex ObjectID)"
// @Param        body body dto.UpdateQuestionRequest true "Fields to change"
// @Success      200 {object} dto.MessageResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Router       /api/questions/{id} [put]
func UpdateQuestion(c *fiber.Ctx) error {
	oid, err := utils.Oid(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid question id"})
	}

	var req dto.UpdateQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid request body"})
	}

	fields := bson.M{}
	if req.Title != "" {
		fields["title"] = req.Title
	}
	if req.TextContent != "" {
		fields["textContent"] = req.TextContent
	}
	if req.Tags != nil {
		fields["tags"] = req.Tags
	}
	if len(fields) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "no updatable fields provided"})
	}

	ctx, cancel := requestContext()
	defer cancel()

	questions := repository.NewQuestionRepository()
	if err := questions.SetFields(ctx, oid, fields); err != nil {
		if err == repository.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Message: "question not found"})
		}
		logging.L().Error("questions: update", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: "failed to update question"})
	}

	return c.Status(fiber.StatusOK).JSON(dto.MessageResponse{Message: "question updated successfully"})
}

// DeleteQuestion godoc
// @Summary      Delete a question
// @Tags         questions
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Question ID (hex ObjectID)"
// @Success      200 {object} dto.MessageResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Router       /api/questions/{id} [delete]
func DeleteQuestion(c *fiber.Ctx) error {
	oid, err := utils.Oid(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid question id"})
	}

	ctx, cancel := requestContext()
	defer cancel()

	questions := repository.NewQuestionRepository()
	users := repository.NewUserRepository()

	q, err := questions.FindByID(ctx, oid)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Message: "question not found"})
	}

	if err := questions.Delete(ctx, oid); err != nil {
		logging.L().Error("questions: delete", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: "failed to delete question"})
	}

	if ownerID, err := utils.Oid(q.UserID); err == nil {
		if err := users.PullRef(ctx, ownerID, bson.M{"activeQuestions": oid.Hex()}); err != nil {
			logging.L().Warn("questions: pull activeQuestions",
				zap.String("user_id", q.UserID), zap.Error(err))
		}
	}

	return c.Status(fiber.StatusOK).JSON(dto.MessageResponse{Message: "question deleted successfully"})
}

// AddAnswer godoc
// @Summary      Append an answer to a question
// @Tags         questions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Question ID (hex ObjectID)"
// @Param        body body dto.AddAnswerRequest true "Answer"
// @Success      200 {object} dto.MessageResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Router       /api/questions/add_answer/{id} [put]
func AddAnswer(c *fiber.Ctx) error {
	oid, err := utils.Oid(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid question id"})
	}

	var req dto.AddAnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid request body"})
	}

	// The author is the authenticated user; the body cannot attribute the
	// answer to anyone else.
	authorID, err := middleware.UIDObjectID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Message: "missing or malformed token"})
	}

	ctx, cancel := requestContext()
	defer cancel()

	questions := repository.NewQuestionRepository()
	users := repository.NewUserRepository()

	if _, err := questions.FindByID(ctx, oid); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Message: "question not found"})
	}

	answer := models.Answer{
		UserID:      authorID.Hex(),
		TextContent: req.TextContent,
		Date:        time.Now().UTC(),
		ListLike:    []string{},
		ListDeslike: []string{},
	}

	if err := questions.PushAnswer(ctx, oid, answer); err != nil {
		logging.L().Error("questions: push answer", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: "failed to add answer"})
	}

	if err := users.PushRef(ctx, authorID, bson.M{"answeredQuestions": oid.Hex()}); err != nil {
		logging.L().Warn("questions: push answeredQuestions",
			zap.String("user_id", authorID.Hex()), zap.Error(err))
	}

	return c.Status(fiber.StatusOK).JSON(dto.MessageResponse{Message: "answer added successfully"})
}

// VoteAnswer godoc
// @Summary      Like or dislike an answer
// @Description  One vote per user per answer, in one direction only
// @Tags         questions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.VoteRequest true "Vote"
// @Success      200 {object} dto.MessageResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Router       /api/questions/answer/likeordeslike [post]
func VoteAnswer(c *fiber.Ctx) error {
	var req dto.VoteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid request body"})
	}

	if req.Action != "like" && req.Action != "dislike" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid action"})
	}

	oid, err := utils.Oid(req.QuestionID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid question id"})
	}

	ctx, cancel := requestContext()
	defer cancel()

	questions := repository.NewQuestionRepository()

	q, err := questions.FindByID(ctx, oid)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Message: "question not found"})
	}

	if req.AnswerIndex < 0 || req.AnswerIndex >= len(q.Answers) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "answer index out of range"})
	}

	// Membership in either list blocks the vote, so a user can never vote
	// twice nor in both directions.
	if q.Answers[req.AnswerIndex].HasVoted(req.UserID) {
		return c.Status(fiber.StatusOK).JSON(dto.MessageResponse{Message: "user has already voted on this answer"})
	}

	if err := questions.ApplyVote(ctx, oid, req.AnswerIndex, req.Action, req.UserID); err != nil {
		logging.L().Error("questions: apply vote", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: "failed to register vote"})
	}

	return c.Status(fiber.StatusOK).JSON(dto.MessageResponse{Message: req.Action + " registered successfully"})
}
