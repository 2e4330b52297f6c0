package models

import (
	"go.mongodb.org/mongo-driver/v2/bson"
)

// User is the account document in the Users collection. The six reference
// lists are denormalized joins: other services push/pull ids onto them as
// a side effect of cross-entity actions. They stay eventually consistent
// with the owning collections via compensating writes, not constraints.
type User struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	FullName  string        `bson:"fullname" json:"fullname"`
	Phone     string        `bson:"phone" json:"phone"`
	Country   string        `bson:"country" json:"country"`
	StudyArea string        `bson:"studyArea" json:"studyArea"`
	Email     string        `bson:"email" json:"email"`
	Password  string        `bson:"password,omitempty" json:"password,omitempty"`
	Img       string        `bson:"img,omitempty" json:"img,omitempty"`

	// Last issued bearer token, persisted on login/registration.
	Token string `bson:"token,omitempty" json:"token,omitempty"`

	ActiveQuestions   []string `bson:"activeQuestions" json:"activeQuestions"`
	AnsweredQuestions []string `bson:"answeredQuestions" json:"answeredQuestions"`
	ActiveOwnForums   []string `bson:"activeOwnForums" json:"activeOwnForums"`
	ActiveAllForums   []string `bson:"activeAllForums" json:"activeAllForums"`
	SavedResources    []string `bson:"savedResources" json:"savedResources"`
	ResourcesCreated  []string `bson:"resourcesCreated" json:"resourcesCreated"`
}

// Sanitize blanks the password hash before a User leaves the API.
func (u *User) Sanitize() {
	u.Password = ""
}
