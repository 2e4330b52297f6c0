package controllers

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Wmolina17/backProjectUniversity/dto"
	"github.com/Wmolina17/backProjectUniversity/internal/logging"
	"github.com/Wmolina17/backProjectUniversity/internal/models"
	"github.com/Wmolina17/backProjectUniversity/internal/repository"
	"github.com/Wmolina17/backProjectUniversity/utils"
)

const requestTimeout = 5 * time.Second

// jwtSecret is set once at startup and shared with the gate through the
// same config value, so signing and verification cannot drift apart.
var jwtSecret string

// InitAuth hands the controllers the signing secret from config.
func InitAuth(secret string) {
	jwtSecret = secret
}

func requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), requestTimeout)
}

// normalizeEmail is applied to every email before it is stored or looked
// up, so the unique index always compares one canonical form.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func signUserToken(user *models.User) (string, error) {
	return utils.GenerateToken(jwtSecret, user.ID.Hex(), user.Email, utils.TokenTTL)
}

// issueToken signs a fresh token for the user and persists it on the
// record as the denormalized "last issued token".
func issueToken(ctx context.Context, users *repository.UserRepository, user *models.User) (string, error) {
	token, err := signUserToken(user)
	if err != nil {
		return "", err
	}
	if err := users.SetToken(ctx, user.ID, token); err != nil {
		return "", err
	}
	user.Token = token
	return token, nil
}

// Register godoc
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body body dto.RegisterRequest true "Profile and credentials"
// @Success      200 {object} dto.AuthResponse
// @Failure      409 {object} dto.ErrorResponse
// @Router       /api/register_user [post]
func Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid request body"})
	}

	req.Email = normalizeEmail(req.Email)
	if req.Email == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "email and password are required"})
	}

	ctx, cancel := requestContext()
	defer cancel()

	users := repository.NewUserRepository()

	if _, err := users.FindByEmail(ctx, req.Email); err == nil {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Message: "email already registered"})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: "failed to hash password"})
	}

	user := models.User{
		FullName:          req.FullName,
		Phone:             req.Phone,
		Country:           req.Country,
		StudyArea:         req.StudyArea,
		Email:             req.Email,
		Password:          string(hashed),
		Img:               req.Img,
		ActiveQuestions:   []string{},
		AnsweredQuestions: []string{},
		ActiveOwnForums:   []string{},
		ActiveAllForums:   []string{},
		SavedResources:    []string{},
		ResourcesCreated:  []string{},
	}

	oid, err := users.Insert(ctx, &user)
	if err != nil {
		logging.L().Error("register: insert user", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: "failed to create user"})
	}
	user.ID = oid

	if _, err := issueToken(ctx, users, &user); err != nil {
		logging.L().Error("register: issue token", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: "failed to issue token"})
	}

	user.Sanitize()
	return c.Status(fiber.StatusOK).JSON(dto.AuthResponse{Message: "user registered successfully", User: user})
}

// VerifyUser godoc
// @Summary      Check whether an email is registered
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body body dto.VerifyEmailRequest true "Email to check"
// @Success      200 {object} dto.VerifyEmailResponse
// @Router       /api/verify_user [post]
func VerifyUser(c *fiber.Ctx) error {
	var req dto.VerifyEmailRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid request body"})
	}

	ctx, cancel := requestContext()
	defer cancel()

	users := repository.NewUserRepository()

	user, err := users.FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		return c.Status(fiber.StatusOK).JSON(dto.VerifyEmailResponse{Exists: false, User: nil})
	}

	// A found account gets a fresh persisted token even though this route
	// is unauthenticated. The frontend's session-restore flow relies on it.
	if _, err := issueToken(ctx, users, user); err != nil {
		logging.L().Error("verify_user: issue token", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: "failed to issue token"})
	}

	user.Sanitize()
	return c.Status(fiber.StatusOK).JSON(dto.VerifyEmailResponse{Exists: true, User: user})
}

// Login godoc
// @Summary      Log in with email and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body body dto.LoginRequest true "Credentials"
// @Success      200 {object} dto.AuthResponse
// @Failure      401 {object} dto.ErrorResponse
// @Router       /api/login [post]
func Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid request body"})
	}

	ctx, cancel := requestContext()
	defer cancel()

	users := repository.NewUserRepository()

	user, err := users.FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Message: "invalid credentials"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Message: "invalid credentials"})
	}

	if _, err := issueToken(ctx, users, user); err != nil {
		logging.L().Error("login: issue token", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: "failed to issue token"})
	}

	user.Sanitize()
	return c.Status(fiber.StatusOK).JSON(dto.AuthResponse{Message: "login successful", User: *user})
}

// verifyPassword loads a user by email and checks the bcrypt hash.
func verifyPassword(ctx context.Context, users *repository.UserRepository, email, password string) (*models.User, error) {
	user, err := users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, err
	}
	return user, nil
}
