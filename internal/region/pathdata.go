package region

import (
	"fmt"
	"strconv"
	"strings"

	"roompainter/pkg/geometry"
)

// ParsePathData parses the subset of SVG path syntax the segmentation
// service emits: absolute M/L commands and Z closes, with multiple subpaths
// for walls that contain holes. Coordinates may be separated by spaces or
// commas.
func ParsePathData(data string) (Path, error) {
	tokens := tokenizePathData(data)
	if len(tokens) == 0 {
		return nil, fmt.Errorf("empty path data")
	}

	var path Path
	var current Contour
	i := 0

	readPoint := func() (geometry.Point2D, error) {
		if i+1 >= len(tokens) {
			return geometry.Point2D{}, fmt.Errorf("truncated coordinate pair at token %d", i)
		}
		x, errX := strconv.ParseFloat(tokens[i], 64)
		y, errY := strconv.ParseFloat(tokens[i+1], 64)
		if errX != nil || errY != nil {
			return geometry.Point2D{}, fmt.Errorf("bad coordinate pair %q,%q", tokens[i], tokens[i+1])
		}
		i += 2
		return geometry.Point2D{X: x, Y: y}, nil
	}

	for i < len(tokens) {
		switch tok := tokens[i]; tok {
		case "M":
			i++
			if len(current) > 0 {
				path = append(path, current)
				current = nil
			}
			pt, err := readPoint()
			if err != nil {
				return nil, err
			}
			current = Contour{pt}

		case "L":
			i++
			if current == nil {
				return nil, fmt.Errorf("L command before any M")
			}
			pt, err := readPoint()
			if err != nil {
				return nil, err
			}
			current = append(current, pt)

		case "Z", "z":
			i++
			if len(current) > 0 {
				path = append(path, current)
				current = nil
			}

		default:
			// Bare numbers after an L are implicit continuation points.
			if current != nil {
				pt, err := readPoint()
				if err != nil {
					return nil, fmt.Errorf("unsupported path command %q", tok)
				}
				current = append(current, pt)
				continue
			}
			return nil, fmt.Errorf("unsupported path command %q", tok)
		}
	}

	if len(current) > 0 {
		path = append(path, current)
	}
	if len(path) == 0 {
		return nil, fmt.Errorf("path data contains no contours")
	}

	return path, nil
}

// tokenizePathData splits path data into command letters and number tokens.
func tokenizePathData(data string) []string {
	var tokens []string
	var buf strings.Builder

	flush := func() {
		if buf.Len() > 0 {
			tokens = append(tokens, buf.String())
			buf.Reset()
		}
	}

	for _, ch := range data {
		switch {
		case ch == 'M' || ch == 'L' || ch == 'Z' || ch == 'z' ||
			(ch >= 'A' && ch <= 'Y') || (ch >= 'a' && ch <= 'y'):
			flush()
			tokens = append(tokens, string(ch))
		case ch == ' ' || ch == ',' || ch == '\t' || ch == '\n' || ch == '\r':
			flush()
		default:
			buf.WriteRune(ch)
		}
	}
	flush()

	return tokens
}
