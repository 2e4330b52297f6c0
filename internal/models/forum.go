package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// UserSnapshot is an embedded copy of the identity fields a forum needs,
// frozen at the moment the user joined. It is not a live reference.
type UserSnapshot struct {
	UserID string `bson:"userId" json:"userId"`
	Name   string `bson:"name" json:"name"`
	Img    string `bson:"img,omitempty" json:"img,omitempty"`
	Email  string `bson:"email,omitempty" json:"email,omitempty"`
}

// Message is append-only; there is no edit or delete.
type Message struct {
	UserID      string     `bson:"userId" json:"userId"`
	Name        string     `bson:"name" json:"name"`
	TextContent string     `bson:"textContent" json:"textContent"`
	RespondTo   *RespondTo `bson:"respondTo,omitempty" json:"respondTo,omitempty"`
	Date        time.Time  `bson:"date" json:"date"`
}

// RespondTo is a snapshot of the message being replied to, not a pointer
// into the messages array.
type RespondTo struct {
	UserID      string `bson:"userId" json:"userId"`
	Name        string `bson:"name" json:"name"`
	TextContent string `bson:"textContent" json:"textContent"`
}

// Forum document. The creator is stored apart from ActiveUsers and is the
// only identity allowed to delete the forum.
type Forum struct {
	ID           bson.ObjectID  `bson:"_id,omitempty" json:"_id,omitempty"`
	Creator      UserSnapshot   `bson:"creator" json:"creator"`
	Title        string         `bson:"title" json:"title"`
	Description  string         `bson:"description" json:"description"`
	Img          string         `bson:"img,omitempty" json:"img,omitempty"`
	CreationDate time.Time      `bson:"creationDate" json:"creationDate"`
	ActiveUsers  []UserSnapshot `bson:"activeUsers" json:"activeUsers"`
	Messages     []Message      `bson:"messages" json:"messages"`
}

// HasMember reports whether the user id is already on the active list.
func (f *Forum) HasMember(userID string) bool {
	for _, u := range f.ActiveUsers {
		if u.UserID == userID {
			return true
		}
	}
	return false
}

// PopularityScore ranks a forum by participation. Computed at read time,
// never stored.
func (f *Forum) PopularityScore() float64 {
	return float64(len(f.ActiveUsers)+len(f.Messages)) / 2
}
