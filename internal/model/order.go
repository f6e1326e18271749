package model

import (
	"errors"
	"fmt"
	"time"
)

// OrderStatusPending is the initial status of an order.
const OrderStatusPending = "pending"

// ErrInvalidOrder is returned for orders that cannot be stored.
var ErrInvalidOrder = errors.New("invalid order")

// Order is a reservation of a box. Persisted by the schema but not yet
// exposed over HTTP. Status is free-form past the initial pending.
type Order struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	BoxID      string    `json:"box_id"`
	Quantity   int       `json:"quantity"`
	TotalPrice float64   `json:"total_price"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewOrder reserves quantity units of box for a customer at the box's
// discounted price.
func NewOrder(id, userID string, box *Box, quantity int, now time.Time) (*Order, error) {
	if box == nil {
		return nil, fmt.Errorf("%w: box is required", ErrInvalidOrder)
	}
	o := &Order{
		ID:         id,
		UserID:     userID,
		BoxID:      box.ID,
		Quantity:   quantity,
		TotalPrice: box.PriceAfter * float64(quantity),
		Status:     OrderStatusPending,
		CreatedAt:  now,
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return o, nil
}

// ApplyDefaults fills an empty status with pending and a zero CreatedAt
// with now.
func (o *Order) ApplyDefaults(now time.Time) {
	if o.Status == "" {
		o.Status = OrderStatusPending
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = now
	}
}

// Validate checks the fields the store cannot default.
func (o *Order) Validate() error {
	switch {
	case o.ID == "":
		return fmt.Errorf("%w: id is required", ErrInvalidOrder)
	case o.UserID == "":
		return fmt.Errorf("%w: user id is required", ErrInvalidOrder)
	case o.BoxID == "":
		return fmt.Errorf("%w: box id is required", ErrInvalidOrder)
	case o.Quantity <= 0:
		return fmt.Errorf("%w: quantity must be positive, got %d", ErrInvalidOrder, o.Quantity)
	case o.TotalPrice < 0:
		return fmt.Errorf("%w: total price must not be negative", ErrInvalidOrder)
	}
	return nil
}
