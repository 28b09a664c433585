package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeFunctionalAreaSaved   = "functional_area.saved"
	EventTypeFunctionalAreaDeleted = "functional_area.deleted"
	EventTypePermissionSaved       = "permission.saved"
	EventTypeReferenceChanged      = "reference.changed"
	EventTypeSchemaTouched         = "schema.touched"
)

// SchemaEventTypes lists every event that can change what the database context reports.
var SchemaEventTypes = []string{
	EventTypeFunctionalAreaSaved,
	EventTypeFunctionalAreaDeleted,
	EventTypePermissionSaved,
	EventTypeReferenceChanged,
	EventTypeSchemaTouched,
}

type EntityChangedEvent struct {
	BaseEvent
	EntityID int64  `json:"entity_id"`
	Actor    string `json:"actor"`
}

func NewEntityChangedEvent(eventType string, entityID int64, actor string) *EntityChangedEvent {
	return &EntityChangedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      eventType,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"entity_id": entityID,
				"actor":     actor,
			},
		},
		EntityID: entityID,
		Actor:    actor,
	}
}

type PermissionSavedEvent struct {
	BaseEvent
	RoleID     int64  `json:"role_id"`
	ScreenName string `json:"screen_name"`
	CanRead    bool   `json:"can_read"`
	CanWrite   bool   `json:"can_write"`
}

func NewPermissionSavedEvent(roleID int64, screen string, canRead, canWrite bool) *PermissionSavedEvent {
	return &PermissionSavedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypePermissionSaved,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"role_id":     roleID,
				"screen_name": screen,
				"can_read":    canRead,
				"can_write":   canWrite,
			},
		},
		RoleID:     roleID,
		ScreenName: screen,
		CanRead:    canRead,
		CanWrite:   canWrite,
	}
}
