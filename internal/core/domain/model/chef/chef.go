package chef

import (
	"errors"
	"strings"
	"unicode/utf8"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
)

const (
	// MaxActiveChefs caps the number of simultaneously active chefs.
	MaxActiveChefs = 4

	// MaxNameLength bounds the chef name, in characters.
	MaxNameLength = 100
)

var ErrChefIsNotConstructed = errors.New("Chef must be created via NewChef constructor")

// Chef is a member of kitchen staff.
//
// The load counter is mutated in storage by conditional updates (see
// ports.ChefRepository); the in-memory TakeOrder and CompleteOrder mirror those
// updates for callers holding a snapshot.
type Chef struct {
	id                kernel.UUID
	name              string
	status            Status
	currentOrderCount int

	isConstructed bool
}

// NewChef creates an idle chef.
//
// Example:
//
//	c, err := chef.NewChef(kernel.NewUUID(), "Meera", chef.Active)
//	if err != nil {
//	    return err
//	}
func NewChef(id kernel.UUID, name string, status Status) (*Chef, error) {
	c := &Chef{isConstructed: true}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
		c.setStatus(status),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// RestoreChef rebuilds a chef from persistence.
func RestoreChef(id kernel.UUID, name string, status Status, currentOrderCount int) (*Chef, error) {
	c, err := NewChef(id, name, status)
	if err != nil {
		return nil, err
	}
	if currentOrderCount < 0 {
		return nil, errs.NewValueIsOutOfRangeError("currentOrderCount", currentOrderCount, 0, "unbounded")
	}
	c.currentOrderCount = currentOrderCount
	return c, nil
}

func (c *Chef) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrChefIsNotConstructed
	}
	return nil
}

func (c *Chef) IsEqual(other *Chef) bool {
	return other != nil && c.id.IsEqual(other.id)
}

func (c *Chef) ID() kernel.UUID {
	return c.id
}

func (c *Chef) Name() string {
	return c.name
}

func (c *Chef) Status() Status {
	return c.status
}

func (c *Chef) IsActive() bool {
	return c.status == Active
}

// CurrentOrderCount is the number of assigned orders not yet done.
func (c *Chef) CurrentOrderCount() int {
	return c.currentOrderCount
}

// IsIdle reports a zero load.
func (c *Chef) IsIdle() bool {
	return c.currentOrderCount == 0
}

// Rename changes the display name.
func (c *Chef) Rename(name string) error {
	return c.setName(name)
}

// ChangeStatus activates or deactivates the chef. The active-chef cap is a
// roster-wide rule and is enforced by the caller that holds the roster lock.
func (c *Chef) ChangeStatus(status Status) error {
	return c.setStatus(status)
}

// TakeOrder increments the load.
func (c *Chef) TakeOrder() {
	c.currentOrderCount++
}

// CompleteOrder decrements the load, clamped at 0.
func (c *Chef) CompleteOrder() {
	if c.currentOrderCount > 0 {
		c.currentOrderCount--
	}
}

func (c *Chef) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Chef) setName(name string) error {
	name = strings.TrimSpace(name)
	switch n := utf8.RuneCountInString(name); {
	case n == 0:
		return errs.NewValueIsRequiredError("name")
	case n > MaxNameLength:
		return errs.NewValueIsOutOfRangeError("name length", n, 1, MaxNameLength)
	}
	c.name = name
	return nil
}

func (c *Chef) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	c.status = status
	return nil
}
