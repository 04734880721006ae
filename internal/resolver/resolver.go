package resolver

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"obedio-core/internal/model"
)

var ErrListGuests = errors.New("error listing guests")

// Guests listed at a location are ranked by type, lower wins.
var typeRank = map[model.GuestType]int{
	model.GuestOwner:   1,
	model.GuestVIP:     2,
	model.GuestPartner: 3,
	model.GuestFamily:  4,
	model.GuestRegular: 5,
}

const unmappedRank = 99

func Rank(t model.GuestType) int {
	if r, ok := typeRank[t]; ok {
		return r
	}
	return unmappedRank
}

type guestLister interface {
	ListGuestsByLocation(ctx context.Context, locationID string) ([]model.Guest, error)
}

type Resolver struct {
	guests guestLister
}

func New(guests guestLister) *Resolver {
	return &Resolver{guests: guests}
}

// ResolveGuest returns the guest considered present at locationID, or nil.
func (r *Resolver) ResolveGuest(ctx context.Context, locationID string) (*model.Guest, error) {
	const fn = "Resolver:ResolveGuest"
	guests, err := r.guests.ListGuestsByLocation(ctx, locationID)
	if err != nil {
		return nil, fmt.Errorf("%s:%w:%w", fn, ErrListGuests, err)
	}
	return Select(guests, locationID), nil
}

// Select picks the highest ranked onboard guest at locationID from guests.
// Ties keep input order.
func Select(guests []model.Guest, locationID string) *model.Guest {
	present := make([]model.Guest, 0, len(guests))
	for _, g := range guests {
		if g.Status != model.GuestOnboard || g.LocationID == nil || *g.LocationID != locationID {
			continue
		}
		present = append(present, g)
	}
	if len(present) == 0 {
		return nil
	}
	sort.SliceStable(present, func(i, j int) bool {
		return Rank(present[i].Type) < Rank(present[j].Type)
	})
	return &present[0]
}
