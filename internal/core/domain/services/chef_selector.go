package services

import (
	"math/rand/v2"

	"restaurant/internal/core/domain/model/chef"
	"restaurant/internal/pkg/errs"
)

// ErrNoActiveChef is returned when no active chef is on the roster.
var ErrNoActiveChef = errs.NewCapacityError("active chef")

// ChefSelector is a domain service choosing which chef cooks the next order.
//
// Business rules:
//   - Only active chefs are candidates
//   - The candidate with the lowest current order count wins
//   - Ties are broken uniformly at random, so equal chefs share work evenly
//
// The selection is pure: it neither changes the chef nor storage. The caller
// commits the choice with a conditional increment keyed on the observed load
// and asks again with a fresh snapshot when that increment loses a race.
//
// Example:
//
//	selector := services.NewChefSelector()
//	picked, err := selector.Select(activeChefs)
//	if errors.Is(err, errs.ErrCapacity) {
//	    // nobody can cook
//	}
type ChefSelector struct {
	intN func(n int) int
}

// NewChefSelector creates a selector using the global random source.
func NewChefSelector() ChefSelector {
	return ChefSelector{intN: rand.IntN}
}

// NewChefSelectorWithRand creates a selector with a deterministic tie breaker.
// intN must return a value in [0, n).
func NewChefSelectorWithRand(intN func(n int) int) ChefSelector {
	return ChefSelector{intN: intN}
}

// Select returns the least-loaded active chef.
//
// Returns:
//   - the chosen chef
//   - ErrNoActiveChef (a CapacityError) when no candidate is active
//   - the chef's validation error when a snapshot is malformed
func (s ChefSelector) Select(chefs []*chef.Chef) (*chef.Chef, error) {
	var candidates []*chef.Chef
	minLoad := -1

	for _, c := range chefs {
		if err := c.Validate(); err != nil {
			return nil, err
		}
		if !c.IsActive() {
			continue
		}

		switch load := c.CurrentOrderCount(); {
		case minLoad < 0 || load < minLoad:
			minLoad = load
			candidates = append(candidates[:0], c)
		case load == minLoad:
			candidates = append(candidates, c)
		}
	}

	if len(candidates) == 0 {
		return nil, ErrNoActiveChef
	}
	if len(candidates) == 1 {
		return candidates[0], nil
	}

	intN := s.intN
	if intN == nil {
		intN = rand.IntN
	}
	return candidates[intN(len(candidates))], nil
}
