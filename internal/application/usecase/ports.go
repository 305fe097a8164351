// internal/application/usecase/ports.go
package usecase

import "context"

// Availability is the stock collaborator's answer for one product.
type Availability struct {
	Available    bool `json:"available"`
	MaxAvailable int  `json:"maxAvailable"`
}

// AvailabilityChecker queries live stock before a quantity increase is
// committed. It only reads availability; nothing is ever reserved.
type AvailabilityChecker interface {
	CheckAvailability(ctx context.Context, productID string, qty int) (Availability, error)
}
