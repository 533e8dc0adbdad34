// Package db persists decoded radar frames and their detections in SQLite.
// One row per frame, one row per detection, grouped under a capture session.
package db

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/banshee-data/mmwave.report/internal/mmwave"
)

type DB struct {
	*sql.DB
}

// FrameRecord is the persisted header metadata for one decoded frame.
type FrameRecord struct {
	FrameID            int64     `json:"frame_id"`
	SessionID          string    `json:"session_id"`
	FrameNumber        uint32    `json:"frame_number"`
	SubFrameNumber     uint32    `json:"sub_frame_number"`
	TimeCPUCycles      uint32    `json:"time_cpu_cycles"`
	NumDetectedObjects uint32    `json:"num_detected_objects"`
	ReceivedAt         time.Time `json:"received_at"`
}

// NewDB opens (creating if necessary) the SQLite database at path and brings
// the schema up to date.
func NewDB(path string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// SQLite with a single writer; a busy timeout covers the occasional
	// concurrent read from the API while the ingest loop inserts.
	if _, err := sqlDB.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to set busy_timeout: %w", err)
	}

	db := &DB{sqlDB}
	if err := db.MigrateUp(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

// CreateSession records the start of a capture session against the named
// serial port.
func (db *DB) CreateSession(sessionID, port string) error {
	_, err := db.Exec("INSERT INTO sessions (session_id, port) VALUES (?, ?)", sessionID, port)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// RecordFrame inserts one decoded frame and its detections in a single
// transaction and returns the frame's row ID.
func (db *DB) RecordFrame(sessionID string, rec FrameRecord, objects []mmwave.DetectedObject) (int64, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		INSERT INTO frames (session_id, frame_number, sub_frame_number, time_cpu_cycles, num_detected_objects)
		VALUES (?, ?, ?, ?, ?)`,
		sessionID, rec.FrameNumber, rec.SubFrameNumber, rec.TimeCPUCycles, rec.NumDetectedObjects,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert frame: %w", err)
	}
	frameID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read frame id: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO detections (frame_id, object_index, x, y, z, v, range_m, azimuth_deg, elevation_deg, snr, noise)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare detection insert: %w", err)
	}
	defer stmt.Close()

	for i, obj := range objects {
		if _, err := stmt.Exec(frameID, i, obj.X, obj.Y, obj.Z, obj.V,
			obj.Range, obj.Azimuth, obj.Elevation, obj.SNR, obj.Noise); err != nil {
			return 0, fmt.Errorf("failed to insert detection %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit frame: %w", err)
	}
	return frameID, nil
}

// LatestFrame returns the most recently recorded frame and its detections.
// Returns sql.ErrNoRows when no frames have been recorded yet.
func (db *DB) LatestFrame() (FrameRecord, []mmwave.DetectedObject, error) {
	var rec FrameRecord
	var receivedAtUnix int64
	err := db.QueryRow(`
		SELECT frame_id, session_id, frame_number, sub_frame_number, time_cpu_cycles, num_detected_objects, received_at
		FROM frames ORDER BY frame_id DESC LIMIT 1`).
		Scan(&rec.FrameID, &rec.SessionID, &rec.FrameNumber, &rec.SubFrameNumber,
			&rec.TimeCPUCycles, &rec.NumDetectedObjects, &receivedAtUnix)
	if err != nil {
		return FrameRecord{}, nil, err
	}
	rec.ReceivedAt = time.Unix(receivedAtUnix, 0)

	objects, err := db.FrameDetections(rec.FrameID)
	if err != nil {
		return FrameRecord{}, nil, err
	}
	return rec, objects, nil
}

// FrameDetections returns the detections of one frame in object-index order.
func (db *DB) FrameDetections(frameID int64) ([]mmwave.DetectedObject, error) {
	rows, err := db.Query(`
		SELECT x, y, z, v, range_m, azimuth_deg, elevation_deg, snr, noise
		FROM detections WHERE frame_id = ? ORDER BY object_index`, frameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var objects []mmwave.DetectedObject
	for rows.Next() {
		var obj mmwave.DetectedObject
		if err := rows.Scan(&obj.X, &obj.Y, &obj.Z, &obj.V,
			&obj.Range, &obj.Azimuth, &obj.Elevation, &obj.SNR, &obj.Noise); err != nil {
			return nil, err
		}
		objects = append(objects, obj)
	}
	return objects, rows.Err()
}

// LatestDetections returns up to limit of the most recently recorded
// detections, newest first.
func (db *DB) LatestDetections(limit int) ([]mmwave.DetectedObject, error) {
	rows, err := db.Query(`
		SELECT x, y, z, v, range_m, azimuth_deg, elevation_deg, snr, noise
		FROM detections ORDER BY detection_id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var objects []mmwave.DetectedObject
	for rows.Next() {
		var obj mmwave.DetectedObject
		if err := rows.Scan(&obj.X, &obj.Y, &obj.Z, &obj.V,
			&obj.Range, &obj.Azimuth, &obj.Elevation, &obj.SNR, &obj.Noise); err != nil {
			return nil, err
		}
		objects = append(objects, obj)
	}
	return objects, rows.Err()
}

// FrameCount returns the number of frames recorded so far.
func (db *DB) FrameCount() (int64, error) {
	var n int64
	err := db.QueryRow("SELECT COUNT(*) FROM frames").Scan(&n)
	return n, err
}
