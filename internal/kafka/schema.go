package kafka

import (
	"time"

	"obedio-core/internal/model"
)

type StructuredConnectRecord struct {
	Schema  Schema       `json:"schema"`
	Payload JournalEvent `json:"payload"`
}

// JournalEvent is the accepted-press record written to the journal topic.
type JournalEvent struct {
	DeviceID       string `json:"device_id"`
	LocationID     string `json:"location_id"`
	Button         string `json:"button"`
	PressType      string `json:"press_type"`
	SequenceNumber int64  `json:"sequence_number"`
	Timestamp      int64  `json:"timestamp"`
}

type Schema struct {
	Type     string  `json:"type"`
	Name     string  `json:"name"`
	Fields   []Field `json:"fields"`
	Optional bool    `json:"optional"`
}

type Field struct {
	Field string `json:"field"`
	Type  string `json:"type"`
}

var JournalSchema = Schema{
	Type:     "struct",
	Name:     "ButtonPress",
	Optional: false,
	Fields: []Field{
		{Field: "device_id", Type: "string"},
		{Field: "location_id", Type: "string"},
		{Field: "button", Type: "string"},
		{Field: "press_type", Type: "string"},
		{Field: "sequence_number", Type: "int64"},
		{Field: "timestamp", Type: "int64"},
	},
}

func NewJournalRecord(e model.DeviceEvent) StructuredConnectRecord {
	return StructuredConnectRecord{
		Schema: JournalSchema,
		Payload: JournalEvent{
			DeviceID:       e.DeviceID,
			LocationID:     e.LocationID,
			Button:         string(e.Button),
			PressType:      string(e.PressType),
			SequenceNumber: e.SequenceNumber,
			Timestamp:      e.Timestamp.UnixMilli(),
		},
	}
}

func (j JournalEvent) Time() time.Time {
	return time.UnixMilli(j.Timestamp).UTC()
}
