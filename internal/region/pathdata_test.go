package region

import (
	"testing"

	"github.com/stretchr/testify/require"

	"roompainter/pkg/geometry"
)

func TestParsePathDataBasic(t *testing.T) {
	path, err := ParsePathData("M 10,20 L 30,20 L 30,40 L 10,40 Z")
	require.NoError(t, err)
	require.Len(t, path, 1)
	require.Equal(t, Contour{
		{X: 10, Y: 20}, {X: 30, Y: 20}, {X: 30, Y: 40}, {X: 10, Y: 40},
	}, path[0])
}

func TestParsePathDataImplicitLineTo(t *testing.T) {
	// After an L, bare coordinate pairs continue the line.
	path, err := ParsePathData("M 0,0 L 10,0 20,5 30,10 Z")
	require.NoError(t, err)
	require.Len(t, path[0], 4)
	require.Equal(t, geometry.Point2D{X: 30, Y: 10}, path[0][3])
}

func TestParsePathDataSeparators(t *testing.T) {
	spaced, err := ParsePathData("M 1 2 L 3 4 L 5 6 Z")
	require.NoError(t, err)

	mixed, err := ParsePathData("M1,2 L3,4\nL5,6 z")
	require.NoError(t, err)

	require.Equal(t, spaced, mixed)
}

func TestParsePathDataMultipleContours(t *testing.T) {
	path, err := ParsePathData("M 0,0 L 10,0 L 10,10 Z M 2,2 L 8,2 L 8,8 Z")
	require.NoError(t, err)
	require.Len(t, path, 2)
	require.Len(t, path[0], 3)
	require.Len(t, path[1], 3)
}

func TestParsePathDataUnclosedContourKept(t *testing.T) {
	path, err := ParsePathData("M 0,0 L 10,0 L 10,10")
	require.NoError(t, err)
	require.Len(t, path, 1)
	require.Len(t, path[0], 3)
}

func TestParsePathDataErrors(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"empty", ""},
		{"whitespace only", "   "},
		{"truncated pair", "M 10"},
		{"non-numeric", "M a,b"},
		{"unsupported command", "M 0,0 C 1,2 3,4 5,6"},
		{"line before move", "L 1,2"},
		{"only closes", "Z Z"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParsePathData(tc.data)
			require.Error(t, err)
		})
	}
}
