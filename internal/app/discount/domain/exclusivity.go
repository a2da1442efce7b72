package domain

import "time"

// ProductRef is the slice of the catalog a discount cares about. Products
// are owned by the catalog subsystem; this core only reads identifiers and
// names.
type ProductRef struct {
	ID     string
	Name   string
	Active bool
}

// ProductClaim is the portion of an existing discount relevant to the
// exclusivity check: which products it holds and until when.
type ProductClaim struct {
	DiscountID string
	ProductIDs []string
	Window     DateWindow
	Active     bool
}

// ReservedProducts computes the set of product ids currently held by a
// discount that has not fully lapsed. A discount whose window has ended
// frees its products even if its start date lies in the past; an inactive
// discount never reserves anything. excludeDiscountID removes one discount
// from consideration: when editing, a discount must not see its own
// products as unavailable to itself.
//
// The validTo >= now cutoff is deliberately conservative: while the admin is
// still selecting products the candidate's final window is not yet
// committed, so any discount that could still overlap reserves its products
// rather than attempting a premature precise-overlap computation.
func ReservedProducts(claims []ProductClaim, excludeDiscountID string, now time.Time) map[string]struct{} {
	reserved := make(map[string]struct{})

	for _, c := range claims {
		if !c.Active {
			continue
		}
		if c.DiscountID == excludeDiscountID {
			continue
		}
		if c.Window.Lapsed(now) {
			continue
		}
		for _, id := range c.ProductIDs {
			reserved[id] = struct{}{}
		}
	}

	return reserved
}

// AvailableProducts filters a product catalog down to the products eligible
// for a new or edited discount: allProducts minus every product reserved by
// a non-excluded, non-lapsed, active discount. Inputs are never mutated; a
// fresh slice is returned in catalog order.
func AvailableProducts(allProducts []ProductRef, claims []ProductClaim, excludeDiscountID string, now time.Time) []ProductRef {
	reserved := ReservedProducts(claims, excludeDiscountID, now)

	available := make([]ProductRef, 0, len(allProducts))
	for _, p := range allProducts {
		if _, taken := reserved[p.ID]; taken {
			continue
		}
		available = append(available, p)
	}

	return available
}

// CheckUnreserved verifies that none of the requested product ids is held
// by another discount. This is the authoritative write-time guard: the
// snapshot the admin selected from may have gone stale between screen load
// and submit.
func CheckUnreserved(productIDs []string, claims []ProductClaim, excludeDiscountID string, now time.Time) error {
	reserved := ReservedProducts(claims, excludeDiscountID, now)

	for _, id := range productIDs {
		if _, taken := reserved[id]; taken {
			return ErrProductReserved
		}
	}

	return nil
}
