package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification is a best-effort activity record stored in MongoDB.
// Failures to write one never fail the mutation that triggered it.
type Notification struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Type        string             `json:"type" bson:"type"` // like, comment, follow, comment_like
	ActorID     uint               `json:"actor_id" bson:"actor_id"`
	RecipientID uint               `json:"recipient_id" bson:"recipient_id"`
	TargetID    string             `json:"target_id" bson:"target_id"`     // post ID, comment ID or user ID
	TargetType  string             `json:"target_type" bson:"target_type"` // post, comment, user
	Message     string             `json:"message" bson:"message"`
	IsRead      bool               `json:"is_read" bson:"is_read"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
}
