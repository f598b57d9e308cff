package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Todo is a to-do item owned by a single user.
type Todo struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID    bson.ObjectID `bson:"userId"        json:"userId"`
	Title     string        `bson:"title"         json:"title"`
	Completed bool          `bson:"completed"     json:"completed"`
	CreatedAt time.Time     `bson:"createdAt"     json:"createdAt"`
	UpdatedAt time.Time     `bson:"updatedAt"     json:"updatedAt"`
}
