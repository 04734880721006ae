package dnd

import (
	"context"
	"fmt"
	"log/slog"

	"obedio-core/internal/broadcast"
	"obedio-core/internal/model"
	"obedio-core/internal/resolver"

	"github.com/google/uuid"
)

type IssueKind string

const (
	LocationWithoutGuest IssueKind = "location_dnd_without_guest"
	GuestWithoutLocation IssueKind = "guest_dnd_without_location"
	Mismatched           IssueKind = "mismatched_dnd_status"
)

type Issue struct {
	Kind         IssueKind `json:"type"`
	LocationID   string    `json:"locationId,omitempty"`
	LocationName string    `json:"locationName,omitempty"`
	GuestID      string    `json:"guestId,omitempty"`
	GuestName    string    `json:"guestName,omitempty"`
	LocationDND  bool      `json:"locationDnd"`
	GuestDND     bool      `json:"guestDnd"`
	Description  string    `json:"description"`
}

type RepairResult struct {
	Fixed   int      `json:"fixed"`
	Skipped int      `json:"skipped"`
	Errors  []string `json:"errors"`
}

// ValidateConsistency lists every place where location and guest DND
// disagree. The location side goes through the resolver, so only the
// guest considered present is checked.
func ValidateConsistency(locations []model.Location, guests []model.Guest) []Issue {
	issues := []Issue{}
	byID := make(map[string]model.Location, len(locations))
	for _, l := range locations {
		byID[l.ID] = l
	}

	for _, l := range locations {
		if !l.DoNotDisturb {
			continue
		}
		g := resolver.Select(guests, l.ID)
		if g == nil {
			issues = append(issues, Issue{
				Kind:         LocationWithoutGuest,
				LocationID:   l.ID,
				LocationName: l.Name,
				LocationDND:  true,
				Description:  fmt.Sprintf("Location %q has DND active but no guest is present", l.Name),
			})
			continue
		}
		if !g.DoNotDisturb {
			issues = append(issues, Issue{
				Kind:         Mismatched,
				LocationID:   l.ID,
				LocationName: l.Name,
				GuestID:      g.ID,
				GuestName:    g.DisplayName(),
				LocationDND:  true,
				GuestDND:     false,
				Description:  fmt.Sprintf("Location %q has DND active but guest %s does not", l.Name, g.DisplayName()),
			})
		}
	}

	for _, g := range guests {
		if !g.DoNotDisturb {
			continue
		}
		var l model.Location
		found := false
		if g.LocationID != nil {
			l, found = byID[*g.LocationID]
		}
		if !found {
			issues = append(issues, Issue{
				Kind:        GuestWithoutLocation,
				GuestID:     g.ID,
				GuestName:   g.DisplayName(),
				GuestDND:    true,
				Description: fmt.Sprintf("Guest %s has DND active but no location", g.DisplayName()),
			})
			continue
		}
		if !l.DoNotDisturb {
			issues = append(issues, Issue{
				Kind:         Mismatched,
				LocationID:   l.ID,
				LocationName: l.Name,
				GuestID:      g.ID,
				GuestName:    g.DisplayName(),
				LocationDND:  false,
				GuestDND:     true,
				Description:  fmt.Sprintf("Guest %s has DND active but location %q does not", g.DisplayName(), l.Name),
			})
		}
	}
	return issues
}

// Validate loads the current records and checks them.
func (e *Engine) Validate(ctx context.Context) ([]Issue, error) {
	const fn = "Engine:Validate"
	locations, err := e.store.ListLocations(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s:%w:%w", fn, ErrLoadState, err)
	}
	guests, err := e.store.ListGuests(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s:%w:%w", fn, ErrLoadState, err)
	}
	return ValidateConsistency(locations, guests), nil
}

// Repair applies the location-wins policy. Mismatches take the location's
// current flag, guests without a location are cleared, and locations
// without a guest are left alone since a guest may still check in.
func (e *Engine) Repair(ctx context.Context, issues []Issue) RepairResult {
	result := RepairResult{Errors: []string{}}
	for _, issue := range issues {
		var err error
		switch issue.Kind {
		case Mismatched:
			err = e.repairMismatch(ctx, issue)
		case GuestWithoutLocation:
			err = e.repairGuest(ctx, issue.GuestID, nil, false)
		default:
			result.Skipped++
			continue
		}
		if err != nil {
			slog.ErrorContext(ctx, "DND repair failed",
				"kind", issue.Kind,
				"location_id", issue.LocationID,
				"guest_id", issue.GuestID,
				"error", err,
			)
			result.Errors = append(result.Errors, fmt.Sprintf("%s %s: %v", issue.Kind, issue.GuestID, err))
			continue
		}
		result.Fixed++
	}
	slog.InfoContext(ctx, "DND repair finished", "fixed", result.Fixed, "skipped", result.Skipped, "errors", len(result.Errors))
	return result
}

// The location is re-read under the lock so a toggle that landed after
// validation still wins.
func (e *Engine) repairMismatch(ctx context.Context, issue Issue) error {
	unlock := e.lockPair(issue.LocationID, &issue.GuestID)
	defer unlock()

	location, err := e.store.GetLocation(ctx, issue.LocationID)
	if err != nil {
		return err
	}
	return e.setGuest(ctx, issue.GuestID, &location, location.DoNotDisturb)
}

func (e *Engine) repairGuest(ctx context.Context, guestID string, location *model.Location, status bool) error {
	unlock := e.locks.Lock("guest:" + guestID)
	defer unlock()
	return e.setGuest(ctx, guestID, location, status)
}

// Must be called with the guest lock held.
func (e *Engine) setGuest(ctx context.Context, guestID string, location *model.Location, status bool) error {
	guest, err := e.store.SetGuestDND(ctx, guestID, status)
	if err != nil {
		return err
	}
	e.hub.Publish(broadcast.EntityGuest, broadcast.Updated, guest)

	entry := model.ActivityEntry{
		ID:      uuid.NewString(),
		Type:    "dnd",
		Action:  "dnd_repaired",
		GuestID: model.StringPtr(guestID),
		Details: fmt.Sprintf("DND for %s set to %t to match location", guest.DisplayName(), status),
		At:      e.clock.Now(),
	}
	if location != nil {
		entry.LocationID = model.StringPtr(location.ID)
	}
	if err := e.store.AppendActivity(ctx, entry); err != nil {
		slog.ErrorContext(ctx, "Error appending activity", "action", entry.Action, "error", err)
	}
	return nil
}
