package domain

import (
	"strings"
	"time"

	"github.com/light-bringer/promo-console-service/internal/pkg/clock"
)

// Field names for change tracking
const (
	FieldName        = "name"
	FieldDescription = "description"
	FieldKind        = "kind"
	FieldValue       = "value"
	FieldWindow      = "window"
	FieldProducts    = "products"
	FieldActive      = "active"
)

// Discount is the aggregate root for promotional discounts. It encapsulates
// the lifecycle rules: window classification, progressive edit locking, and
// the administrative visibility toggle. Discounts are never physically
// deleted; visibility is toggled via active.
type Discount struct {
	id          string
	name        string
	description string
	kind        DiscountKind
	value       *Magnitude
	window      DateWindow
	productIDs  []string
	active      bool
	version     int64
	createdAt   time.Time
	updatedAt   time.Time

	// Clock for time operations (injected for testability)
	clock clock.Clock

	// Change tracking for optimized repository updates
	changes *ChangeTracker

	// Domain events to be published
	events []DomainEvent
}

// NewDiscount creates a new Discount aggregate (for creation). The window
// must start strictly after today; the value must satisfy the bounds for
// its kind; at least one product must be covered.
func NewDiscount(id, name, description string, kind DiscountKind, value *Magnitude, window DateWindow, productIDs []string, now time.Time, clk clock.Clock) (*Discount, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	description = strings.TrimSpace(description)
	if description == "" {
		return nil, ErrEmptyDescription
	}

	if err := value.Validate(kind); err != nil {
		return nil, err
	}

	if !window.ValidFrom().After(clock.TruncateToDay(now)) {
		return nil, ErrWindowNotFuture
	}

	products := dedupeIDs(productIDs)
	if len(products) == 0 {
		return nil, ErrNoProducts
	}

	d := &Discount{
		id:          id,
		name:        name,
		description: description,
		kind:        kind,
		value:       value.Copy(),
		window:      window,
		productIDs:  products,
		active:      true,
		version:     1,
		createdAt:   now,
		updatedAt:   now,
		clock:       clk,
		changes:     NewChangeTracker(),
		events:      make([]DomainEvent, 0),
	}

	// Mark all fields as dirty for new discount
	d.changes.MarkDirty(FieldName)
	d.changes.MarkDirty(FieldDescription)
	d.changes.MarkDirty(FieldKind)
	d.changes.MarkDirty(FieldValue)
	d.changes.MarkDirty(FieldWindow)
	d.changes.MarkDirty(FieldProducts)
	d.changes.MarkDirty(FieldActive)

	d.recordEvent(&DiscountCreatedEvent{
		DiscountID: d.id,
		Name:       d.name,
		Kind:       string(d.kind),
		Value:      d.value.String(),
		ValidFrom:  d.window.ValidFrom(),
		ValidTo:    d.window.ValidTo(),
		ProductIDs: d.productIDs,
		CreatedAt:  d.createdAt,
	})

	return d, nil
}

// ReconstructDiscount reconstitutes a Discount from the database.
func ReconstructDiscount(
	id, name, description string,
	kind DiscountKind,
	value *Magnitude,
	window DateWindow,
	productIDs []string,
	active bool,
	version int64,
	createdAt, updatedAt time.Time,
	clk clock.Clock,
) *Discount {
	return &Discount{
		id:          id,
		name:        name,
		description: description,
		kind:        kind,
		value:       value,
		window:      window,
		productIDs:  productIDs,
		active:      active,
		version:     version,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
		clock:       clk,
		changes:     NewChangeTracker(),
		events:      make([]DomainEvent, 0),
	}
}

// Getters
func (d *Discount) ID() string                  { return d.id }
func (d *Discount) Name() string                { return d.name }
func (d *Discount) Description() string         { return d.description }
func (d *Discount) Kind() DiscountKind          { return d.kind }
func (d *Discount) Value() *Magnitude           { return d.value.Copy() }
func (d *Discount) Window() DateWindow          { return d.window }
func (d *Discount) ProductIDs() []string        { return append([]string(nil), d.productIDs...) }
func (d *Discount) Active() bool                { return d.active }
func (d *Discount) Version() int64              { return d.version }
func (d *Discount) CreatedAt() time.Time        { return d.createdAt }
func (d *Discount) UpdatedAt() time.Time        { return d.updatedAt }
func (d *Discount) Changes() *ChangeTracker     { return d.changes }
func (d *Discount) DomainEvents() []DomainEvent { return d.events }

// Status classifies the discount's window against the given instant.
func (d *Discount) Status(now time.Time) Status {
	return d.window.Status(now)
}

// Locks evaluates the edit-lock policy for this discount at the given instant.
func (d *Discount) Locks(now time.Time) FieldLocks {
	return LockedFields(d.window, now)
}

// Rename updates the discount name.
func (d *Discount) Rename(name string, now time.Time) error {
	if err := d.ensureEditable(now); err != nil {
		return err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}

	if name == d.name {
		return nil
	}

	d.name = name
	d.changes.MarkDirty(FieldName)
	d.recordUpdated(now)

	return nil
}

// SetDescription updates the discount description.
func (d *Discount) SetDescription(description string, now time.Time) error {
	if err := d.ensureEditable(now); err != nil {
		return err
	}

	description = strings.TrimSpace(description)
	if description == "" {
		return ErrEmptyDescription
	}

	if description == d.description {
		return nil
	}

	d.description = description
	d.changes.MarkDirty(FieldDescription)
	d.recordUpdated(now)

	return nil
}

// SetValue updates the discount kind and value together, since the bounds
// that apply to the value depend on the kind.
func (d *Discount) SetValue(kind DiscountKind, value *Magnitude, now time.Time) error {
	if err := d.ensureEditable(now); err != nil {
		return err
	}

	if err := value.Validate(kind); err != nil {
		return err
	}

	if kind == d.kind && value.Equals(d.value) {
		return nil
	}

	d.kind = kind
	d.value = value.Copy()
	d.changes.MarkDirty(FieldKind)
	d.changes.MarkDirty(FieldValue)
	d.recordUpdated(now)

	return nil
}

// Reschedule moves the validity window, honoring the edit-lock policy:
// locked bounds submitted with a different value are replaced with their
// original before the window is rebuilt and validated.
func (d *Discount) Reschedule(submitted DateWindow, now time.Time) error {
	locks := d.Locks(now)

	window, err := locks.Sanitize(d.window, submitted)
	if err != nil {
		return err
	}

	if window.Equal(d.window) {
		return nil
	}

	d.window = window
	d.changes.MarkDirty(FieldWindow)
	d.recordEvent(&DiscountRescheduledEvent{
		DiscountID: d.id,
		ValidFrom:  window.ValidFrom(),
		ValidTo:    window.ValidTo(),
		UpdatedAt:  now,
	})

	return nil
}

// AssignProducts replaces the covered product set. Exclusivity against
// other discounts is the caller's responsibility; the aggregate cannot see
// its siblings.
func (d *Discount) AssignProducts(productIDs []string, now time.Time) error {
	if err := d.ensureEditable(now); err != nil {
		return err
	}

	products := dedupeIDs(productIDs)
	if len(products) == 0 {
		return ErrNoProducts
	}

	if sameIDs(products, d.productIDs) {
		return nil
	}

	d.productIDs = products
	d.changes.MarkDirty(FieldProducts)
	d.recordEvent(&DiscountProductsChangedEvent{
		DiscountID: d.id,
		ProductIDs: products,
		UpdatedAt:  now,
	})

	return nil
}

// Activate makes the discount visible. The toggle is administrative and
// independent of temporal status, so it works on expired discounts too.
func (d *Discount) Activate(now time.Time) error {
	if d.active {
		return ErrAlreadyActive
	}

	d.active = true
	d.changes.MarkDirty(FieldActive)
	d.recordEvent(&DiscountActivatedEvent{DiscountID: d.id, Timestamp: now})

	return nil
}

// Deactivate hides the discount.
func (d *Discount) Deactivate(now time.Time) error {
	if !d.active {
		return ErrAlreadyInactive
	}

	d.active = false
	d.changes.MarkDirty(FieldActive)
	d.recordEvent(&DiscountDeactivatedEvent{DiscountID: d.id, Timestamp: now})

	return nil
}

// Claim returns the discount's view in the exclusivity check.
func (d *Discount) Claim() ProductClaim {
	return ProductClaim{
		DiscountID: d.id,
		ProductIDs: d.ProductIDs(),
		Window:     d.window,
		Active:     d.active,
	}
}

// ensureEditable returns ErrDiscountExpired once the window has fully
// lapsed: expiry is terminal for editing purposes.
func (d *Discount) ensureEditable(now time.Time) error {
	if d.Status(now) == StatusExpired {
		return ErrDiscountExpired
	}
	return nil
}

// recordUpdated emits the generic update event.
func (d *Discount) recordUpdated(now time.Time) {
	d.recordEvent(&DiscountUpdatedEvent{
		DiscountID: d.id,
		Name:       d.name,
		Kind:       string(d.kind),
		Value:      d.value.String(),
		UpdatedAt:  now,
	})
}

// recordEvent adds a domain event to the list of events.
func (d *Discount) recordEvent(event DomainEvent) {
	d.events = append(d.events, event)
}

// ClearEvents clears all recorded domain events (called after publishing).
func (d *Discount) ClearEvents() {
	d.events = make([]DomainEvent, 0)
}

func dedupeIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func sameIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[string]struct{}, len(a))
	for _, id := range a {
		set[id] = struct{}{}
	}
	for _, id := range b {
		if _, ok := set[id]; !ok {
			return false
		}
	}
	return true
}
