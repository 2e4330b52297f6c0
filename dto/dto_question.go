package dto

import (
	"time"

	"github.com/Wmolina17/backProjectUniversity/internal/models"
)

type CreateQuestionRequest struct {
	UserID      string   `json:"userId"`
	Title       string   `json:"title"`
	TextContent string   `json:"textContent"`
	Tags        []string `json:"tags"`
}

type UpdateQuestionRequest struct {
	Title       string   `json:"title,omitempty"`
	TextContent string   `json:"textContent,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// AddAnswerRequest carries only the answer body; the author is whoever
// the token authenticates.
type AddAnswerRequest struct {
	TextContent string `json:"textContent"`
}

// VoteRequest addresses an answer by its position inside the question.
type VoteRequest struct {
	QuestionID  string `json:"questionId"`
	AnswerIndex int    `json:"answerIndex"`
	Action      string `json:"action"` // "like" | "dislike"
	UserID      string `json:"userId"`
}

// QuestionListItem is the list-view projection: the owner is joined in and
// the answer bodies are withheld, only the count survives.
type QuestionListItem struct {
	ID           string        `json:"_id"`
	UserID       string        `json:"userId"`
	Title        string        `json:"title"`
	TextContent  string        `json:"textContent"`
	ViewsCount   int           `json:"viewsCount"`
	AnswersCount int           `json:"answersCount"`
	Date         time.Time     `json:"date"`
	Tags         []string      `json:"tags"`
	User         QuestionOwner `json:"user"`
}

type QuestionOwner struct {
	ID                string   `json:"_id"`
	FullName          string   `json:"fullname"`
	ActiveQuestions   []string `json:"activeQuestions,omitempty"`
	AnsweredQuestions []string `json:"answeredQuestions,omitempty"`
}

type BasicQuestion struct {
	ID    string `json:"_id"`
	Title string `json:"title"`
}

// QuestionDetail carries the full document plus owner and per-answer user
// projections.
type QuestionDetail struct {
	models.Question
	User    QuestionOwner  `json:"user"`
	Answers []AnswerDetail `json:"answers"`
}

type AnswerDetail struct {
	models.Answer
	User QuestionOwner `json:"user"`
}

type AskAssistantRequest struct {
	Question string `json:"question"`
}

type AskAssistantResponse struct {
	Answer string `json:"answer,omitempty"`
	Error  string `json:"error,omitempty"`
}
