package calendar

import (
	"context"
	"errors"
	"time"
)

// Storage errors.
var (
	ErrEventNotFound     = errors.New("event not found")
	ErrResourceNotFound  = errors.New("resource not found")
	ErrDuplicateResource = errors.New("resource already exists")
	ErrEmptyResourceID   = errors.New("resource id cannot be empty")
	ErrEmptyTitle        = errors.New("title cannot be empty")
	ErrInvalidEventStart = errors.New("event start is not a valid date")
)

// Repository is the storage used by hosts of the calendar. The view model
// itself never touches it; hosts load from it and apply reschedule intents
// to it.
type Repository interface {
	// CreateResource adds a resource. Row order follows insertion order.
	CreateResource(ctx context.Context, r Resource) error

	// ListResources returns all resources in row order.
	ListResources(ctx context.Context) ([]Resource, error)

	// CreateEvent stores an event, assigning an id if it has none.
	CreateEvent(ctx context.Context, ev *RawEvent) error

	// GetEvent retrieves an event by id.
	GetEvent(ctx context.Context, id string) (RawEvent, error)

	// ListEvents returns every event in insertion order.
	ListEvents(ctx context.Context) ([]RawEvent, error)

	// ListEventsBetween returns events whose day range overlaps [start, end).
	ListEventsBetween(ctx context.Context, start, end time.Time) ([]RawEvent, error)

	// ApplyReschedule stores the updated record from a committed drag.
	ApplyReschedule(ctx context.Context, intent RescheduleIntent) error

	// DeleteEvent removes an event.
	DeleteEvent(ctx context.Context, id string) error

	// Close releases any resources held by the repository.
	Close() error
}
