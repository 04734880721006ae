package api

import (
	"obedio-core/internal/dnd"
	"obedio-core/internal/model"
)

type ToggleDNDRequest struct {
	Status  bool    `json:"status"`
	GuestID *string `json:"guestId"`
	// ResolveGuest asks the resolver to pick the guest when GuestID is
	// omitted.
	ResolveGuest bool `json:"resolveGuest"`
}

type CreateServiceRequestRequest struct {
	ID              string            `json:"id"`
	LocationID      string            `json:"locationId"`
	GuestID         *string           `json:"guestId"`
	RequestType     model.RequestType `json:"requestType"`
	Priority        model.Priority    `json:"priority"`
	Notes           string            `json:"notes"`
	VoiceTranscript string            `json:"voiceTranscript"`
	AudioURL        string            `json:"audioUrl"`
}

type TransitionRequest struct {
	CrewID string `json:"crewId"`
	Note   string `json:"note"`
}

type GetServiceRequestsResponse struct {
	Requests []model.ServiceRequest `json:"requests"`
}

type GetIssuesResponse struct {
	Issues []dnd.Issue `json:"issues"`
}

type RepairResponse struct {
	Issues []dnd.Issue       `json:"issues"`
	Result dnd.RepairResult `json:"result"`
}

type GetLocationsResponse struct {
	Locations []model.Location `json:"locations"`
}

type GetGuestsResponse struct {
	Guests []model.Guest `json:"guests"`
}

type GetDevicesResponse struct {
	Devices []model.Device `json:"devices"`
}

type GetActivityResponse struct {
	Activity []model.ActivityEntry `json:"activity"`
}
