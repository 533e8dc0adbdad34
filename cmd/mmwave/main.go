// Command mmwave ingests the binary output stream of a TI IWR6843 mmWave
// radar sensor: it polls the sensor's data serial port, decodes frames into
// detected objects, records them to SQLite, and serves them over HTTP.
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/banshee-data/mmwave.report/internal/api"
	"github.com/banshee-data/mmwave.report/internal/config"
	"github.com/banshee-data/mmwave.report/internal/db"
	"github.com/banshee-data/mmwave.report/internal/monitoring"
	"github.com/banshee-data/mmwave.report/internal/mmwave/parse"
	"github.com/banshee-data/mmwave.report/internal/serialmux"
	"github.com/banshee-data/mmwave.report/internal/version"
)

var (
	devMode    = flag.Bool("dev", false, "Run in dev mode with a mock sensor replaying a synthetic frame")
	listen     = flag.String("listen", ":8080", "Listen address")
	port       = flag.String("port", "/dev/ttyUSB1", "Sensor data serial port (ignored in dev mode)")
	dbPath     = flag.String("db", "sensor_data.db", "Path to the SQLite database")
	configPath = flag.String("config", "", "Optional JSON tuning config path")
)

// handleChunk decodes one poll's worth of bytes and records the frame when it
// passes validation. Failed statuses are expected steady-state noise (reads
// landing mid-frame), so they are logged at debug level only.
func handleChunk(d *db.DB, sessionID string, chunk []byte) error {
	hdr, objects, status := parse.DecodeFrame(chunk)
	if !status.Pass() {
		monitoring.Logf("skipping chunk of %d bytes: %s", len(chunk), status)
		return nil
	}

	rec := db.FrameRecord{
		FrameNumber:        hdr.FrameNumber,
		SubFrameNumber:     hdr.SubFrameNumber,
		TimeCPUCycles:      hdr.TimeCPUCycles,
		NumDetectedObjects: hdr.NumDetectedObjects,
	}
	if _, err := d.RecordFrame(sessionID, rec, objects); err != nil {
		return err
	}
	log.Printf("frame %d: recorded %d detections", hdr.FrameNumber, len(objects))
	return nil
}

func main() {
	flag.Parse()

	log.Printf("mmwave %s (%s, built %s)", version.Version, version.GitSHA, version.BuildTime)

	if *listen == "" {
		log.Fatal("Listen address is required")
	}
	if *port == "" && !*devMode {
		log.Fatal("Serial port is required")
	}

	cfg := config.EmptyTuningConfig()
	if *configPath != "" {
		loaded, err := config.LoadTuningConfig(*configPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
		cfg = loaded
	}

	var sensor serialmux.DataMuxInterface
	if *devMode {
		// Replay a synthetic two-object frame at roughly the sensor's
		// real 10Hz frame cadence.
		sensor = serialmux.NewMockDataMux(demoFrame(), 100*time.Millisecond)
	} else {
		var err error
		sensor, err = serialmux.NewRealDataMux(cfg.GetDataPort(*port), cfg.PortOptions())
		if err != nil {
			log.Fatalf("failed to open sensor data port: %v", err)
		}
	}
	defer sensor.Close()

	d, err := db.NewDB(cfg.GetDatabasePath(*dbPath))
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer d.Close()

	sessionID := uuid.NewString()
	if err := d.CreateSession(sessionID, cfg.GetDataPort(*port)); err != nil {
		log.Fatalf("failed to create capture session: %v", err)
	}
	log.Printf("capture session %s started", sessionID)

	// Wait group for the serial monitor, decode, and HTTP server routines
	var wg sync.WaitGroup
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// run the monitor routine to manage IO on the serial port
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := sensor.Monitor(ctx); err != nil && err != context.Canceled {
			log.Printf("failed to monitor serial port: %v", err)
		}
		log.Print("monitor routine terminated")
	}()

	// subscribe to the data chunks and pass them through the decoder
	wg.Add(1)
	go func() {
		defer wg.Done()
		id, c := sensor.Subscribe()
		defer sensor.Unsubscribe(id)
		for {
			select {
			case chunk, ok := <-c:
				if !ok {
					log.Printf("decode routine terminated: mux closed")
					return
				}
				if err := handleChunk(d, sessionID, chunk); err != nil {
					log.Printf("error recording frame: %v", err)
				}
			case <-ctx.Done():
				log.Printf("decode routine terminated")
				return
			}
		}
	}()

	// HTTP server goroutine
	wg.Add(1)
	go func() {
		defer wg.Done()

		mux := api.NewServer(sensor, d, cfg.GetVelocityUnits()).ServeMux()

		server := &http.Server{
			Addr:    cfg.GetListenAddr(*listen),
			Handler: api.LoggingMiddleware(mux),
		}

		// Start server in a goroutine so it doesn't block
		go func() {
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Fatalf("failed to start server: %v", err)
			}
		}()

		// Wait for context cancellation to shut down server
		<-ctx.Done()
		log.Println("shutting down HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("HTTP server shutdown error: %v", err)
			if err := server.Close(); err != nil {
				log.Printf("HTTP server force close error: %v", err)
			}
		}

		log.Printf("HTTP server routine stopped")
	}()

	wg.Wait()
	log.Printf("Graceful shutdown complete")
}
