package db

// Column lists match the db tags on the model types. Internal columns such
// as seq are never selected.
const (
	locationColumns = `id, name, do_not_disturb, smart_button_id`

	guestColumns = `id, first_name, last_name, location_id, type, status, do_not_disturb,
		allergies, medical_conditions, emergency_contact_name, emergency_contact_phone,
		emergency_contact_relation, created_at`

	requestColumns = `id, location_id, guest_id, guest_name, request_type, priority, status,
		assigned_to_id, notes, voice_transcript, audio_url, safety, accepted_at,
		completed_at, created_at, updated_at`

	deviceColumns = `device_id, location_id, battery, rssi, firmware_version, online, last_seen`

	activityColumns = `id, type, action, location_id, guest_id, request_id, details, metadata, at`
)
