package dto

import (
	"github.com/Wmolina17/backProjectUniversity/internal/models"
)

type CreateForumRequest struct {
	Creator     models.UserSnapshot `json:"creator"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Img         string              `json:"img,omitempty"`
}

type UpdateForumRequest struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Img         string `json:"img,omitempty"`
}

// ForumMemberRequest covers add_user, remove_user and remove_forum; for
// remove_forum the embedded user identifies the requester.
type ForumMemberRequest struct {
	ForumID string              `json:"forumId"`
	User    models.UserSnapshot `json:"user"`
}

// PopularForum is a Forum with its read-time participation score attached.
type PopularForum struct {
	models.Forum
	Statdistics float64 `json:"statdistics"`
}

// ChatHistory is the first frame a chat session receives after connecting.
type ChatHistory struct {
	PreviousMessages []models.Message `json:"previous_messages"`
}
