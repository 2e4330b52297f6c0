package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Answer lives embedded in its question. Votes are addressed by the
// answer's position in the slice, so answers are never reordered or
// removed individually.
type Answer struct {
	UserID      string    `bson:"userId" json:"userId"`
	TextContent string    `bson:"textContent" json:"textContent"`
	Date        time.Time `bson:"date" json:"date"`
	Likes       int       `bson:"likes" json:"likes"`
	Dislikes    int       `bson:"dislikes" json:"dislikes"`
	ListLike    []string  `bson:"listLike" json:"listLike"`
	ListDeslike []string  `bson:"listDeslike" json:"listDeslike"`
}

// HasVoted reports whether the user already appears in either vote list.
// A user id can be in at most one of the two, never both.
func (a *Answer) HasVoted(userID string) bool {
	for _, id := range a.ListLike {
		if id == userID {
			return true
		}
	}
	for _, id := range a.ListDeslike {
		if id == userID {
			return true
		}
	}
	return false
}

// Question document. AnswersCount mirrors len(Answers) and is maintained
// by $inc alongside every $push, not recomputed.
type Question struct {
	ID           bson.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	UserID       string        `bson:"userId" json:"userId"`
	Title        string        `bson:"title" json:"title"`
	TextContent  string        `bson:"textContent" json:"textContent"`
	ViewsCount   int           `bson:"viewsCount" json:"viewsCount"`
	AnswersCount int           `bson:"answersCount" json:"answersCount"`
	Date         time.Time     `bson:"date" json:"date"`
	Tags         []string      `bson:"tags" json:"tags"`
	Answers      []Answer      `bson:"answers" json:"answers,omitempty"`
}
