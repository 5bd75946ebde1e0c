package export

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"LocalBoard/internal/board"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleBoard() []board.ObjectJSON {
	return []board.ObjectJSON{
		{
			ID: "a", Type: board.TypePath, Color: "#ff0000", Width: 4,
			Points: []board.Point{{X: 10, Y: 10}, {X: 200, Y: 150}, {X: 390, Y: 20}},
		},
		{
			ID: "b", Type: board.TypePath, Color: "#0000ff", Width: 6,
			Points: []board.Point{{X: 50, Y: 280}},
		},
		{ID: "empty", Type: board.TypePath},
	}
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePDF(&buf, sampleBoard()))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestPDFFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.pdf")
	require.NoError(t, PDF(path, sampleBoard()))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestPDFEmptyBoard(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, WritePDF(&buf, nil))
}

func TestWritePNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePNG(&buf, sampleBoard(), 320, 240))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 320, img.Bounds().Dx())
	assert.Equal(t, 240, img.Bounds().Dy())

	r, g, b, _ := img.At(1, 1).RGBA()
	assert.Equal(t, [3]uint32{0xffff, 0xffff, 0xffff}, [3]uint32{r, g, b}, "margin stays background")
}

func TestPNGRejectsBadSize(t *testing.T) {
	assert.Error(t, PNG(filepath.Join(t.TempDir(), "x.png"), nil, 0, 10))
}

func TestFitKeepsAspect(t *testing.T) {
	f := newFit(board.Area{X: 0, Y: 0, Width: 100, Height: 50}, 10, 10, 400, 400, 10)
	assert.Equal(t, 4.0, f.scale)
	x, y := f.point(board.Point{X: 100, Y: 50})
	assert.Equal(t, 410.0, x)
	assert.Equal(t, 210.0, y)

	capped := newFit(board.Area{Width: 1, Height: 1}, 0, 0, 400, 400, 2)
	assert.Equal(t, 2.0, capped.scale)
}

func TestRGB255(t *testing.T) {
	r, g, b := rgb255("#ff8000")
	assert.Equal(t, [3]int{255, 128, 0}, [3]int{r, g, b})
}
