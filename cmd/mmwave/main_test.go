package main

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/banshee-data/mmwave.report/internal/db"
	"github.com/banshee-data/mmwave.report/internal/mmwave/parse"
)

func TestDemoFrameDecodes(t *testing.T) {
	frame := demoFrame()

	objects, status := parse.Decode(frame)
	if !status.Pass() {
		t.Fatalf("demo frame failed validation: %v", status)
	}
	if len(objects) != 2 {
		t.Fatalf("got %d objects, want 2", len(objects))
	}

	// First target sits dead ahead: boresight azimuth.
	if objects[0].Azimuth != 0 {
		t.Errorf("object 0 azimuth = %v, want 0", objects[0].Azimuth)
	}
	if objects[0].SNR != 180 || objects[0].Noise != 25 {
		t.Errorf("object 0 quality = %d/%d, want 180/25", objects[0].SNR, objects[0].Noise)
	}
	if objects[1].SNR != 95 {
		t.Errorf("object 1 snr = %d, want 95", objects[1].SNR)
	}
}

func TestHandleChunkEndToEnd(t *testing.T) {
	d, err := db.NewDB(filepath.Join(t.TempDir(), "e2e_test.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	defer d.Close()

	sessionID := uuid.NewString()
	if err := d.CreateSession(sessionID, "test"); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	if err := handleChunk(d, sessionID, demoFrame()); err != nil {
		t.Fatalf("handleChunk failed: %v", err)
	}

	rec, objects, err := d.LatestFrame()
	if err != nil {
		t.Fatalf("LatestFrame failed: %v", err)
	}
	if rec.FrameNumber != 1 {
		t.Errorf("frame number = %d, want 1", rec.FrameNumber)
	}
	if len(objects) != 2 {
		t.Errorf("got %d detections, want 2", len(objects))
	}
}

func TestHandleChunkSkipsGarbage(t *testing.T) {
	d, err := db.NewDB(filepath.Join(t.TempDir(), "garbage_test.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	defer d.Close()

	// Garbage never reaches the database, so no session is needed.
	if err := handleChunk(d, "unused", []byte{0xff, 0xee, 0xdd}); err != nil {
		t.Fatalf("handleChunk on garbage returned error: %v", err)
	}

	n, err := d.FrameCount()
	if err != nil {
		t.Fatalf("FrameCount failed: %v", err)
	}
	if n != 0 {
		t.Errorf("FrameCount = %d, want 0", n)
	}
}
