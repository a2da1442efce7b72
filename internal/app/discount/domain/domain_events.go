package domain

import "time"

// DomainEvent is the base interface for all domain events.
type DomainEvent interface {
	EventType() string
	AggregateID() string
}

// DiscountCreatedEvent is emitted when a discount is created.
type DiscountCreatedEvent struct {
	DiscountID string
	Name       string
	Kind       string
	Value      string
	ValidFrom  time.Time
	ValidTo    time.Time
	ProductIDs []string
	CreatedAt  time.Time
}

func (e *DiscountCreatedEvent) EventType() string {
	return "discount.created"
}

func (e *DiscountCreatedEvent) AggregateID() string {
	return e.DiscountID
}

// DiscountUpdatedEvent is emitted when discount details are updated.
type DiscountUpdatedEvent struct {
	DiscountID string
	Name       string
	Kind       string
	Value      string
	UpdatedAt  time.Time
}

func (e *DiscountUpdatedEvent) EventType() string {
	return "discount.updated"
}

func (e *DiscountUpdatedEvent) AggregateID() string {
	return e.DiscountID
}

// DiscountRescheduledEvent is emitted when a discount's validity window changes.
type DiscountRescheduledEvent struct {
	DiscountID string
	ValidFrom  time.Time
	ValidTo    time.Time
	UpdatedAt  time.Time
}

func (e *DiscountRescheduledEvent) EventType() string {
	return "discount.rescheduled"
}

func (e *DiscountRescheduledEvent) AggregateID() string {
	return e.DiscountID
}

// DiscountProductsChangedEvent is emitted when the covered product set changes.
type DiscountProductsChangedEvent struct {
	DiscountID string
	ProductIDs []string
	UpdatedAt  time.Time
}

func (e *DiscountProductsChangedEvent) EventType() string {
	return "discount.products.changed"
}

func (e *DiscountProductsChangedEvent) AggregateID() string {
	return e.DiscountID
}

// DiscountActivatedEvent is emitted when a discount is made visible.
type DiscountActivatedEvent struct {
	DiscountID string
	Timestamp  time.Time
}

func (e *DiscountActivatedEvent) EventType() string {
	return "discount.activated"
}

func (e *DiscountActivatedEvent) AggregateID() string {
	return e.DiscountID
}

// DiscountDeactivatedEvent is emitted when a discount is hidden.
type DiscountDeactivatedEvent struct {
	DiscountID string
	Timestamp  time.Time
}

func (e *DiscountDeactivatedEvent) EventType() string {
	return "discount.deactivated"
}

func (e *DiscountDeactivatedEvent) AggregateID() string {
	return e.DiscountID
}
