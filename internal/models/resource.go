package models

import (
	"go.mongodb.org/mongo-driver/v2/bson"
)

// Resource document. SavedCount moves exactly once per distinct
// (user, resource) save toggle; the membership check against the user's
// savedResources list happens before any mutation.
type Resource struct {
	ID              bson.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	UserID          string        `bson:"userId" json:"userId"`
	Title           string        `bson:"title" json:"title"`
	Description     string        `bson:"description" json:"description"`
	TypeContent     string        `bson:"typeContent" json:"typeContent"`
	RedirectionLink string        `bson:"redirectionLink" json:"redirectionLink"`
	SavedCount      int           `bson:"savedCount" json:"savedCount"`
	ViewsCount      int           `bson:"viewsCount" json:"viewsCount"`
}
