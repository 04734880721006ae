package db

import (
	"context"
	"errors"
	"fmt"

	"obedio-core/internal/model"

	"github.com/georgysavva/scany/pgxscan"
)

var (
	ErrInsertFailed = errors.New("insert operation failed")
	ErrUpdateFailed = errors.New("update operation failed")
	ErrDeleteFailed = errors.New("delete operation failed")
	ErrSelectFailed = errors.New("select operation failed")
)

// fail marks every driver error as a store outage so callers can retry.
func fail(fn string, op, err error) error {
	return fmt.Errorf("%s:%w:%w:%w", fn, op, model.ErrStoreUnavailable, err)
}

func notFound(fn, kind, id string) error {
	return fmt.Errorf("%s:%w: %s %s", fn, model.ErrNotFound, kind, id)
}

func (db *DB) PutLocation(ctx context.Context, l model.Location) (bool, error) {
	const fn = "DB:PutLocation"
	var created bool
	err := db.pool.QueryRow(ctx, `
		INSERT INTO locations (id, name, do_not_disturb, smart_button_id)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			do_not_disturb = EXCLUDED.do_not_disturb,
			smart_button_id = EXCLUDED.smart_button_id
		RETURNING (xmax = 0)
	`, l.ID, l.Name, l.DoNotDisturb, l.SmartButtonID).Scan(&created)
	if err != nil {
		return false, fail(fn, ErrInsertFailed, err)
	}
	return created, nil
}

func (db *DB) GetLocation(ctx context.Context, id string) (model.Location, error) {
	const fn = "DB:GetLocation"
	var l model.Location
	err := pgxscan.Get(ctx, db.pool, &l, `SELECT `+locationColumns+` FROM locations WHERE id = $1`, id)
	if pgxscan.NotFound(err) {
		return model.Location{}, notFound(fn, "location", id)
	}
	if err != nil {
		return model.Location{}, fail(fn, ErrSelectFailed, err)
	}
	return l, nil
}

func (db *DB) ListLocations(ctx context.Context) ([]model.Location, error) {
	const fn = "DB:ListLocations"
	locations := []model.Location{}
	err := pgxscan.Select(ctx, db.pool, &locations, `SELECT `+locationColumns+` FROM locations ORDER BY id`)
	if err != nil {
		return nil, fail(fn, ErrSelectFailed, err)
	}
	return locations, nil
}

func (db *DB) SetLocationDND(ctx context.Context, id string, status bool) (model.Location, error) {
	const fn = "DB:SetLocationDND"
	var l model.Location
	err := pgxscan.Get(ctx, db.pool, &l, `
		UPDATE locations SET do_not_disturb = $2 WHERE id = $1
		RETURNING `+locationColumns, id, status)
	if pgxscan.NotFound(err) {
		return model.Location{}, notFound(fn, "location", id)
	}
	if err != nil {
		return model.Location{}, fail(fn, ErrUpdateFailed, err)
	}
	return l, nil
}

func (db *DB) PutGuest(ctx context.Context, g model.Guest) (bool, error) {
	const fn = "DB:PutGuest"
	var created bool
	err := db.pool.QueryRow(ctx, `
		INSERT INTO guests (
			id, first_name, last_name, location_id, type, status, do_not_disturb,
			allergies, medical_conditions, emergency_contact_name,
			emergency_contact_phone, emergency_contact_relation, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (id) DO UPDATE SET
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			location_id = EXCLUDED.location_id,
			type = EXCLUDED.type,
			status = EXCLUDED.status,
			do_not_disturb = EXCLUDED.do_not_disturb,
			allergies = EXCLUDED.allergies,
			medical_conditions = EXCLUDED.medical_conditions,
			emergency_contact_name = EXCLUDED.emergency_contact_name,
			emergency_contact_phone = EXCLUDED.emergency_contact_phone,
			emergency_contact_relation = EXCLUDED.emergency_contact_relation
		RETURNING (xmax = 0)
	`, g.ID, g.FirstName, g.LastName, g.LocationID, g.Type, g.Status, g.DoNotDisturb,
		g.Allergies, g.MedicalConditions, g.EmergencyContactName,
		g.EmergencyContactPhone, g.EmergencyContactRelation, g.CreatedAt,
	).Scan(&created)
	if err != nil {
		return false, fail(fn, ErrInsertFailed, err)
	}
	return created, nil
}

func (db *DB) GetGuest(ctx context.Context, id string) (model.Guest, error) {
	const fn = "DB:GetGuest"
	var g model.Guest
	err := pgxscan.Get(ctx, db.pool, &g, `SELECT `+guestColumns+` FROM guests WHERE id = $1`, id)
	if pgxscan.NotFound(err) {
		return model.Guest{}, notFound(fn, "guest", id)
	}
	if err != nil {
		return model.Guest{}, fail(fn, ErrSelectFailed, err)
	}
	return g, nil
}

func (db *DB) DeleteGuest(ctx context.Context, id string) (model.Guest, error) {
	const fn = "DB:DeleteGuest"
	var g model.Guest
	err := pgxscan.Get(ctx, db.pool, &g, `DELETE FROM guests WHERE id = $1 RETURNING `+guestColumns, id)
	if pgxscan.NotFound(err) {
		return model.Guest{}, notFound(fn, "guest", id)
	}
	if err != nil {
		return model.Guest{}, fail(fn, ErrDeleteFailed, err)
	}
	return g, nil
}

// ListGuests returns guests in insertion order.
func (db *DB) ListGuests(ctx context.Context) ([]model.Guest, error) {
	const fn = "DB:ListGuests"
	guests := []model.Guest{}
	err := pgxscan.Select(ctx, db.pool, &guests, `SELECT `+guestColumns+` FROM guests ORDER BY seq`)
	if err != nil {
		return nil, fail(fn, ErrSelectFailed, err)
	}
	return guests, nil
}

func (db *DB) ListGuestsByLocation(ctx context.Context, locationID string) ([]model.Guest, error) {
	const fn = "DB:ListGuestsByLocation"
	guests := []model.Guest{}
	err := pgxscan.Select(ctx, db.pool, &guests, `
		SELECT `+guestColumns+` FROM guests
		WHERE location_id = $1
		ORDER BY seq
	`, locationID)
	if err != nil {
		return nil, fail(fn, ErrSelectFailed, err)
	}
	return guests, nil
}

func (db *DB) SetGuestDND(ctx context.Context, id string, status bool) (model.Guest, error) {
	const fn = "DB:SetGuestDND"
	var g model.Guest
	err := pgxscan.Get(ctx, db.pool, &g, `
		UPDATE guests SET do_not_disturb = $2 WHERE id = $1
		RETURNING `+guestColumns, id, status)
	if pgxscan.NotFound(err) {
		return model.Guest{}, notFound(fn, "guest", id)
	}
	if err != nil {
		return model.Guest{}, fail(fn, ErrUpdateFailed, err)
	}
	return g, nil
}

// CreateServiceRequest ignores a repeated id so a retried creation is a
// no-op.
func (db *DB) CreateServiceRequest(ctx context.Context, r model.ServiceRequest) error {
	const fn = "DB:CreateServiceRequest"
	_, err := db.pool.Exec(ctx, `
		INSERT INTO service_requests (`+requestColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (id) DO NOTHING
	`, r.ID, r.LocationID, r.GuestID, r.GuestName, r.RequestType, r.Priority, r.Status,
		r.AssignedToID, r.Notes, r.VoiceTranscript, r.AudioURL, r.Safety, r.AcceptedAt,
		r.CompletedAt, r.CreatedAt, r.UpdatedAt,
	)
	if err != nil {
		return fail(fn, ErrInsertFailed, err)
	}
	return nil
}

func (db *DB) GetServiceRequest(ctx context.Context, id string) (model.ServiceRequest, error) {
	const fn = "DB:GetServiceRequest"
	var r model.ServiceRequest
	err := pgxscan.Get(ctx, db.pool, &r, `SELECT `+requestColumns+` FROM service_requests WHERE id = $1`, id)
	if pgxscan.NotFound(err) {
		return model.ServiceRequest{}, notFound(fn, "service request", id)
	}
	if err != nil {
		return model.ServiceRequest{}, fail(fn, ErrSelectFailed, err)
	}
	return r, nil
}

func (db *DB) UpdateServiceRequest(ctx context.Context, r model.ServiceRequest) error {
	const fn = "DB:UpdateServiceRequest"
	tag, err := db.pool.Exec(ctx, `
		UPDATE service_requests SET
			status = $2,
			assigned_to_id = $3,
			notes = $4,
			accepted_at = $5,
			completed_at = $6,
			updated_at = $7
		WHERE id = $1
	`, r.ID, r.Status, r.AssignedToID, r.Notes, r.AcceptedAt, r.CompletedAt, r.UpdatedAt)
	if err != nil {
		return fail(fn, ErrUpdateFailed, err)
	}
	if tag.RowsAffected() == 0 {
		return notFound(fn, "service request", r.ID)
	}
	return nil
}

func (db *DB) ListServiceRequests(ctx context.Context) ([]model.ServiceRequest, error) {
	const fn = "DB:ListServiceRequests"
	requests := []model.ServiceRequest{}
	err := pgxscan.Select(ctx, db.pool, &requests, `
		SELECT `+requestColumns+` FROM service_requests
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, fail(fn, ErrSelectFailed, err)
	}
	return requests, nil
}

func (db *DB) UpsertDevice(ctx context.Context, d model.Device) error {
	const fn = "DB:UpsertDevice"
	_, err := db.pool.Exec(ctx, `
		INSERT INTO devices (`+deviceColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (device_id) DO UPDATE SET
			location_id = EXCLUDED.location_id,
			battery = EXCLUDED.battery,
			rssi = EXCLUDED.rssi,
			firmware_version = EXCLUDED.firmware_version,
			online = EXCLUDED.online,
			last_seen = EXCLUDED.last_seen
	`, d.DeviceID, d.LocationID, d.Battery, d.RSSI, d.FirmwareVersion, d.Online, d.LastSeen)
	if err != nil {
		return fail(fn, ErrInsertFailed, err)
	}
	return nil
}

func (db *DB) GetDevice(ctx context.Context, id string) (model.Device, error) {
	const fn = "DB:GetDevice"
	var d model.Device
	err := pgxscan.Get(ctx, db.pool, &d, `SELECT `+deviceColumns+` FROM devices WHERE device_id = $1`, id)
	if pgxscan.NotFound(err) {
		return model.Device{}, notFound(fn, "device", id)
	}
	if err != nil {
		return model.Device{}, fail(fn, ErrSelectFailed, err)
	}
	return d, nil
}

func (db *DB) ListDevices(ctx context.Context) ([]model.Device, error) {
	const fn = "DB:ListDevices"
	devices := []model.Device{}
	err := pgxscan.Select(ctx, db.pool, &devices, `SELECT `+deviceColumns+` FROM devices ORDER BY device_id`)
	if err != nil {
		return nil, fail(fn, ErrSelectFailed, err)
	}
	return devices, nil
}

func (db *DB) AppendActivity(ctx context.Context, e model.ActivityEntry) error {
	const fn = "DB:AppendActivity"
	_, err := db.pool.Exec(ctx, `
		INSERT INTO activity (`+activityColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, e.ID, e.Type, e.Action, e.LocationID, e.GuestID, e.RequestID, e.Details, e.Metadata, e.At)
	if err != nil {
		return fail(fn, ErrInsertFailed, err)
	}
	return nil
}

// ListActivity returns the newest entries first. limit <= 0 returns all.
func (db *DB) ListActivity(ctx context.Context, limit int) ([]model.ActivityEntry, error) {
	const fn = "DB:ListActivity"
	var lim *int
	if limit > 0 {
		lim = &limit
	}
	entries := []model.ActivityEntry{}
	err := pgxscan.Select(ctx, db.pool, &entries, `
		SELECT `+activityColumns+` FROM activity
		ORDER BY at DESC, seq DESC
		LIMIT $1
	`, lim)
	if err != nil {
		return nil, fail(fn, ErrSelectFailed, err)
	}
	return entries, nil
}
