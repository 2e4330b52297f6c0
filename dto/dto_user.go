package dto

import (
	"github.com/Wmolina17/backProjectUniversity/internal/models"
)

type RegisterRequest struct {
	FullName  string `json:"fullname"`
	Phone     string `json:"phone"`
	Country   string `json:"country"`
	StudyArea string `json:"studyArea"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Img       string `json:"img,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type VerifyEmailRequest struct {
	Email string `json:"email"`
}

type VerifyEmailResponse struct {
	Exists bool         `json:"exists"`
	User   *models.User `json:"user"`
}

type AuthResponse struct {
	Message string      `json:"message"`
	User    models.User `json:"user"`
}

type UpdateProfileRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullname,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Country  string `json:"country,omitempty"`
	Img      string `json:"img,omitempty"`
}

type UpdateEmailRequest struct {
	UserID   string `json:"userId"`
	NewEmail string `json:"newEmail"`
	Password string `json:"password"`
}

type UpdatePasswordRequest struct {
	Email           string `json:"email"`
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type DeleteAccountRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ProfileResponse aggregates the user document with the related documents
// its reference lists point at.
type ProfileResponse struct {
	Message string      `json:"message"`
	Data    ProfileData `json:"data"`
}

type ProfileData struct {
	User              models.User       `json:"user"`
	ActiveQuestions   []models.Question `json:"activeQuestions"`
	AnsweredQuestions []models.Question `json:"answeredQuestions"`
	ActiveForums      []models.Forum    `json:"activeForums"`
	SavedResources    []models.Resource `json:"savedResources"`
	ResourcesCreated  []models.Resource `json:"resourcesCreated"`
}
