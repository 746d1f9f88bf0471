// Command recolor applies paint fills to a room photo from the command line.
// It takes a detection result (JSON) and a fill assignment, and writes the
// composited image without starting the UI.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"roompainter/internal/compositor"
	roomimage "roompainter/internal/image"
	"roompainter/internal/region"

	"github.com/sirupsen/logrus"
)

// wallFile is the on-disk detection result: the same shape the detection
// service returns for its walls array. Coordinate lists follow the service
// wire convention and are [row, col] pairs; path-data strings are x/y.
type wallFile struct {
	Walls []struct {
		MaskID      string          `json:"mask_id"`
		Coordinates json.RawMessage `json:"coordinates"`
		Area        float64         `json:"area"`
		Confidence  float64         `json:"confidence"`
	} `json:"walls"`
}

func main() {
	imagePath := flag.String("image", "", "Path to room photo (PNG, JPEG, or TIFF)")
	wallsPath := flag.String("walls", "", "Path to wall detection JSON")
	fills := flag.String("fill", "", "Fill assignment: id=#RRGGBB[,id=#RRGGBB...], or just #RRGGBB for all walls")
	outPath := flag.String("out", "recolored.png", "Output path (PNG or JPEG)")
	verbose := flag.Bool("v", false, "Verbose logging")
	flag.Parse()

	if *imagePath == "" || *wallsPath == "" || *fills == "" {
		fmt.Println("Usage: recolor -image <photo> -walls <detection.json> -fill <id=#RRGGBB,...> [-out recolored.png]")
		os.Exit(1)
	}

	log := logrus.New()
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	photo, err := roomimage.Load(*imagePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load photo: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Loaded photo: %dx%d pixels\n", photo.Width(), photo.Height())

	regions, err := loadWalls(*wallsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load walls: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Loaded %d wall regions\n", len(regions))

	fillMap, err := parseFills(*fills, regions)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Bad fill assignment: %v\n", err)
		os.Exit(1)
	}

	comp := compositor.New(log)
	result, err := comp.ApplyAll(photo.RGBA, regions, fillMap)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Compositing failed: %v\n", err)
		os.Exit(1)
	}

	if err := roomimage.Export(result, *outPath); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write output: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s (%d walls painted)\n", *outPath, len(fillMap))
}

// loadWalls reads and normalizes the detection JSON.
func loadWalls(path string) ([]region.Region, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var wf wallFile
	if err := json.Unmarshal(data, &wf); err != nil {
		return nil, err
	}

	raws := make([]region.RawRegion, 0, len(wf.Walls))
	for _, wall := range wf.Walls {
		var mask any
		rowCol := false

		var pathData string
		if err := json.Unmarshal(wall.Coordinates, &pathData); err == nil {
			mask = pathData
		} else {
			var pairs [][2]float64
			if err := json.Unmarshal(wall.Coordinates, &pairs); err != nil {
				fmt.Fprintf(os.Stderr, "Skipping wall %s: undecodable coordinates\n", wall.MaskID)
				continue
			}
			mask = pairs
			rowCol = true
		}

		raws = append(raws, region.RawRegion{
			ID:         wall.MaskID,
			Mask:       mask,
			RowCol:     rowCol,
			Area:       wall.Area,
			Confidence: wall.Confidence,
		})
	}

	regions, errs := region.NormalizeAll(raws)
	for _, err := range errs {
		fmt.Fprintf(os.Stderr, "Skipping region: %v\n", err)
	}
	return regions, nil
}

// parseFills builds the region-to-fill map. A bare color paints every wall.
func parseFills(spec string, regions []region.Region) (map[string]compositor.Fill, error) {
	out := make(map[string]compositor.Fill)

	if !strings.Contains(spec, "=") {
		fill, err := compositor.SolidHex(spec)
		if err != nil {
			return nil, err
		}
		for _, reg := range regions {
			out[reg.ID] = fill
		}
		return out, nil
	}

	for _, part := range strings.Split(spec, ",") {
		id, hex, ok := strings.Cut(part, "=")
		if !ok {
			return nil, fmt.Errorf("malformed assignment %q", part)
		}
		fill, err := compositor.SolidHex(hex)
		if err != nil {
			return nil, err
		}
		out[strings.TrimSpace(id)] = fill
	}
	return out, nil
}
