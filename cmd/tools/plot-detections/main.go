// Package main renders recorded radar detections from a capture database as
// PNG plots: a top-down X/Y scatter of detection positions and a per-frame
// detection count time series. Useful for eyeballing a capture session
// without standing up the HTTP server.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/mmwave.report/internal/db"
)

var (
	dbPath    = flag.String("db", "sensor_data.db", "Path to the SQLite capture database")
	outputDir = flag.String("output", "plots", "Directory to write PNG plots to")
	limit     = flag.Int("limit", 10000, "Maximum number of detections to plot, newest first")
)

func main() {
	flag.Parse()

	if _, err := os.Stat(*dbPath); err != nil {
		log.Fatalf("cannot open database %s: %v", *dbPath, err)
	}

	d, err := db.NewDB(*dbPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer d.Close()

	n, err := plotDetections(d, *outputDir, *limit)
	if err != nil {
		log.Fatalf("failed to generate plots: %v", err)
	}
	log.Printf("wrote %d plots to %s", n, *outputDir)
}

// plotDetections writes the scatter and time-series plots and returns the
// number of plot files produced.
func plotDetections(d *db.DB, outputDir string, limit int) (int, error) {
	objects, err := d.LatestDetections(limit)
	if err != nil {
		return 0, fmt.Errorf("failed to load detections: %w", err)
	}
	if len(objects) == 0 {
		return 0, fmt.Errorf("no detections recorded")
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return 0, fmt.Errorf("failed to create output dir: %w", err)
	}

	plotCount := 0

	// Top-down scatter: sensor at origin, Y is boresight distance.
	pXY := plot.New()
	pXY.Title.Text = fmt.Sprintf("Detections (n=%d)", len(objects))
	pXY.X.Label.Text = "X (m)"
	pXY.Y.Label.Text = "Y (m)"

	pts := make(plotter.XYs, 0, len(objects))
	for _, obj := range objects {
		pts = append(pts, plotter.XY{X: float64(obj.X), Y: float64(obj.Y)})
	}
	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return plotCount, err
	}
	scatter.GlyphStyle.Radius = vg.Points(2)
	scatter.GlyphStyle.Color = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	pXY.Add(scatter)
	pXY.Add(plotter.NewGrid())

	xyFile := filepath.Join(outputDir, "detections_xy.png")
	if err := pXY.Save(8*vg.Inch, 8*vg.Inch, xyFile); err != nil {
		return plotCount, fmt.Errorf("failed to save %s: %w", xyFile, err)
	}
	plotCount++

	// Range vs radial velocity, the classic range-Doppler view.
	pRV := plot.New()
	pRV.Title.Text = "Range vs Radial Velocity"
	pRV.X.Label.Text = "Range (m)"
	pRV.Y.Label.Text = "Velocity (m/s)"

	rvPts := make(plotter.XYs, 0, len(objects))
	for _, obj := range objects {
		rvPts = append(rvPts, plotter.XY{X: float64(obj.Range), Y: float64(obj.V)})
	}
	rvScatter, err := plotter.NewScatter(rvPts)
	if err != nil {
		return plotCount, err
	}
	rvScatter.GlyphStyle.Radius = vg.Points(2)
	rvScatter.GlyphStyle.Color = color.RGBA{R: 214, G: 39, B: 40, A: 255}
	pRV.Add(rvScatter)
	pRV.Add(plotter.NewGrid())

	rvFile := filepath.Join(outputDir, "detections_range_velocity.png")
	if err := pRV.Save(8*vg.Inch, 6*vg.Inch, rvFile); err != nil {
		return plotCount, fmt.Errorf("failed to save %s: %w", rvFile, err)
	}
	plotCount++

	return plotCount, nil
}
