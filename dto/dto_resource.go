package dto

import (
	"github.com/Wmolina17/backProjectUniversity/internal/models"
)

type CreateResourceRequest struct {
	UserID          string `json:"userId"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	TypeContent     string `json:"typeContent"`
	RedirectionLink string `json:"redirectionLink"`
}

type UpdateResourceRequest struct {
	Title           string `json:"title,omitempty"`
	Description     string `json:"description,omitempty"`
	TypeContent     string `json:"typeContent,omitempty"`
	RedirectionLink string `json:"redirectionLink,omitempty"`
}

// UserResources is the two disjoint lists a user is related to.
type UserResources struct {
	SavedResources   []models.Resource `json:"savedResources"`
	CreatedResources []models.Resource `json:"createdResources"`
}
