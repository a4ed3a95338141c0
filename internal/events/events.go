// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"zumarlaw_backend/platform/events"
	"zumarlaw_backend/platform/logger"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
	InMemoryBus = events.InMemoryBus
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// NewInMemoryBus creates a new in-memory event bus.
func NewInMemoryBus(log *logger.Logger) *InMemoryBus {
	return events.NewInMemoryBus(log)
}

// =============================================================================
// Engagement Domain Events
// =============================================================================

// EngagementCompleted is published when a service engagement transitions to
// the completed status, regardless of which source collection it lives in.
type EngagementCompleted struct {
	BaseEvent
	EngagementID uuid.UUID `json:"engagementId"`
	Source       string    `json:"source"` // direct | manual | converted
	ServiceTitle string    `json:"serviceTitle"`
	ClientName   string    `json:"clientName"`
	ClientEmail  string    `json:"clientEmail"`
	Certificate  string    `json:"certificate,omitempty"`
}

func (e EngagementCompleted) EventName() string { return "engagements.completed" }

// EngagementAssigned is published when an engagement is assigned to a staff member.
type EngagementAssigned struct {
	BaseEvent
	EngagementID uuid.UUID `json:"engagementId"`
	Source       string    `json:"source"`
	AssignedTo   string    `json:"assignedTo"`
}

func (e EngagementAssigned) EventName() string { return "engagements.assigned" }
