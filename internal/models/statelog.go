package models

import (
	"time"

	"github.com/google/uuid"
)

// ObjectType identifies which record type a statelog belongs to
type ObjectType string

const (
	ObjectTypePerson ObjectType = "person"
	ObjectTypeGroup  ObjectType = "group"
)

// StateLog is an append-only audit entry recording one executed transition.
// Rows are never updated or deleted.
type StateLog struct {
	ID          string     `json:"id"`
	ObjectType  ObjectType `json:"object_type"`
	ObjectID    string     `json:"object_id"`
	Transition  string     `json:"transition"`
	Status      Status     `json:"status"`
	ByUserID    *string    `json:"by_user_id"`
	Description *string    `json:"description"`
	CreatedAt   time.Time  `json:"created"`
}

// NewStateLog creates an audit entry for a completed transition
func NewStateLog(objectType ObjectType, objectID, transition string, status Status, by *User, description string) *StateLog {
	log := &StateLog{
		ID:         uuid.New().String(),
		ObjectType: objectType,
		ObjectID:   objectID,
		Transition: transition,
		Status:     status,
		CreatedAt:  time.Now(),
	}
	if by != nil {
		id := by.ID
		log.ByUserID = &id
	}
	if description != "" {
		log.Description = &description
	}
	return log
}
