package model

import (
	"time"
)

type PressType string

const (
	PressSingle PressType = "single"
	PressDouble PressType = "double"
	PressLong   PressType = "long"
	PressShake  PressType = "shake"
)

type Button string

const (
	ButtonMain Button = "main"
	ButtonAux1 Button = "aux1"
	ButtonAux2 Button = "aux2"
	ButtonAux3 Button = "aux3"
	ButtonAux4 Button = "aux4"
)

// DeviceEvent is a single button-press report. It only lives as long as the
// request it spawns.
type DeviceEvent struct {
	DeviceID        string    `json:"deviceId"`
	LocationID      string    `json:"locationId"`
	GuestID         *string   `json:"guestId"`
	PressType       PressType `json:"pressType"`
	Button          Button    `json:"button"`
	Timestamp       time.Time `json:"timestamp"`
	SequenceNumber  int64     `json:"sequenceNumber"`
	Battery         int       `json:"battery"`
	RSSI            int       `json:"rssi"`
	FirmwareVersion string    `json:"firmwareVersion"`
}

type RequestType string

const (
	RequestCall      RequestType = "call"
	RequestService   RequestType = "service"
	RequestEmergency RequestType = "emergency"
)

type Priority string

const (
	PriorityNormal    Priority = "normal"
	PriorityUrgent    Priority = "urgent"
	PriorityEmergency Priority = "emergency"
)

// Rank orders priorities for display, lower first.
func (p Priority) Rank() int {
	switch p {
	case PriorityEmergency:
		return 0
	case PriorityUrgent:
		return 1
	case PriorityNormal:
		return 2
	}
	return 3
}

type RequestStatus string

const (
	StatusPending   RequestStatus = "pending"
	StatusAccepted  RequestStatus = "accepted"
	StatusCompleted RequestStatus = "completed"
	StatusCancelled RequestStatus = "cancelled"
)

func (s RequestStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// MedicalSafety is embedded in emergency requests so responders do not
// need a second lookup.
type MedicalSafety struct {
	Allergies         []string          `json:"allergies,omitempty"`
	MedicalConditions []string          `json:"medicalConditions,omitempty"`
	EmergencyContact  *EmergencyContact `json:"emergencyContact,omitempty"`
}

type EmergencyContact struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Relation string `json:"relation,omitempty"`
}

type ServiceRequest struct {
	ID              string         `json:"id" db:"id"`
	LocationID      string         `json:"locationId" db:"location_id"`
	GuestID         *string        `json:"guestId" db:"guest_id"`
	GuestName       string         `json:"guestName" db:"guest_name"`
	RequestType     RequestType    `json:"requestType" db:"request_type"`
	Priority        Priority       `json:"priority" db:"priority"`
	Status          RequestStatus  `json:"status" db:"status"`
	AssignedToID    *string        `json:"assignedToId" db:"assigned_to_id"`
	Notes           string         `json:"notes" db:"notes"`
	VoiceTranscript string         `json:"voiceTranscript,omitempty" db:"voice_transcript"`
	AudioURL        string         `json:"audioUrl,omitempty" db:"audio_url"`
	Safety          *MedicalSafety `json:"safety,omitempty" db:"safety"`
	AcceptedAt      *time.Time     `json:"acceptedAt" db:"accepted_at"`
	CompletedAt     *time.Time     `json:"completedAt" db:"completed_at"`
	CreatedAt       time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time      `json:"updatedAt" db:"updated_at"`
}

func (r ServiceRequest) EntityID() string { return r.ID }

type Location struct {
	ID            string  `json:"id" db:"id"`
	Name          string  `json:"name" db:"name"`
	DoNotDisturb  bool    `json:"doNotDisturb" db:"do_not_disturb"`
	SmartButtonID *string `json:"smartButtonId" db:"smart_button_id"`
}

func (l Location) EntityID() string { return l.ID }

type GuestType string

const (
	GuestOwner   GuestType = "owner"
	GuestVIP     GuestType = "vip"
	GuestPartner GuestType = "partner"
	GuestFamily  GuestType = "family"
	GuestRegular GuestType = "guest"
)

type GuestStatus string

const (
	GuestExpected GuestStatus = "expected"
	GuestOnboard  GuestStatus = "onboard"
	GuestDeparted GuestStatus = "departed"
)

type Guest struct {
	ID                       string      `json:"id" db:"id"`
	FirstName                string      `json:"firstName" db:"first_name"`
	LastName                 string      `json:"lastName" db:"last_name"`
	LocationID               *string     `json:"locationId" db:"location_id"`
	Type                     GuestType   `json:"type" db:"type"`
	Status                   GuestStatus `json:"status" db:"status"`
	DoNotDisturb             bool        `json:"doNotDisturb" db:"do_not_disturb"`
	Allergies                []string    `json:"allergies" db:"allergies"`
	MedicalConditions        []string    `json:"medicalConditions" db:"medical_conditions"`
	EmergencyContactName     string      `json:"emergencyContactName,omitempty" db:"emergency_contact_name"`
	EmergencyContactPhone    string      `json:"emergencyContactPhone,omitempty" db:"emergency_contact_phone"`
	EmergencyContactRelation string      `json:"emergencyContactRelation,omitempty" db:"emergency_contact_relation"`
	CreatedAt                time.Time   `json:"createdAt" db:"created_at"`
}

func (g Guest) EntityID() string { return g.ID }

func (g Guest) DisplayName() string {
	switch {
	case g.FirstName == "" && g.LastName == "":
		return "Guest"
	case g.LastName == "":
		return g.FirstName
	case g.FirstName == "":
		return g.LastName
	}
	return g.FirstName + " " + g.LastName
}

// Safety returns the medical payload for emergencies, nil when the guest
// record carries nothing useful.
func (g Guest) Safety() *MedicalSafety {
	safety := &MedicalSafety{
		Allergies:         g.Allergies,
		MedicalConditions: g.MedicalConditions,
	}
	if g.EmergencyContactName != "" || g.EmergencyContactPhone != "" {
		safety.EmergencyContact = &EmergencyContact{
			Name:     g.EmergencyContactName,
			Phone:    g.EmergencyContactPhone,
			Relation: g.EmergencyContactRelation,
		}
	}
	if len(safety.Allergies) == 0 && len(safety.MedicalConditions) == 0 && safety.EmergencyContact == nil {
		return nil
	}
	return safety
}

type Device struct {
	DeviceID        string    `json:"deviceId" db:"device_id"`
	LocationID      *string   `json:"locationId" db:"location_id"`
	Battery         *int      `json:"battery" db:"battery"`
	RSSI            *int      `json:"rssi" db:"rssi"`
	FirmwareVersion string    `json:"firmwareVersion" db:"firmware_version"`
	Online          bool      `json:"online" db:"online"`
	LastSeen        time.Time `json:"lastSeen" db:"last_seen"`
}

func (d Device) EntityID() string { return d.DeviceID }

type ActivityEntry struct {
	ID         string            `json:"id" db:"id"`
	Type       string            `json:"type" db:"type"`
	Action     string            `json:"action" db:"action"`
	LocationID *string           `json:"locationId" db:"location_id"`
	GuestID    *string           `json:"guestId" db:"guest_id"`
	RequestID  *string           `json:"requestId" db:"request_id"`
	Details    string            `json:"details" db:"details"`
	Metadata   map[string]string `json:"metadata,omitempty" db:"metadata"`
	At         time.Time         `json:"at" db:"at"`
}

func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
