package schedule

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/image/font/gofont/goregular"

	"musicroombooking/internal/domain"

	"github.com/stretchr/testify/require"
)

// writeTestAssets creates a plain background template and a real TTF font in
// a temp dir, standing in for the production assets.
func writeTestAssets(t *testing.T) (backgroundPath, fontPath string) {
	t.Helper()
	dir := t.TempDir()

	img := image.NewRGBA(image.Rect(0, 0, 1280, 900))
	for y := 0; y < 900; y++ {
		for x := 0; x < 1280; x++ {
			img.Set(x, y, color.White)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	backgroundPath = filepath.Join(dir, "schedule.jpg")
	require.NoError(t, os.WriteFile(backgroundPath, buf.Bytes(), 0o644))

	fontPath = filepath.Join(dir, "font.ttf")
	require.NoError(t, os.WriteFile(fontPath, goregular.TTF, 0o644))
	return backgroundPath, fontPath
}

func decodeRendered(t *testing.T, encoded string) image.Image {
	t.Helper()
	raw, err := base64.StdEncoding.DecodeString(encoded)
	require.NoError(t, err)
	img, err := jpeg.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	return img
}

func TestRenderer_EmptyWeekStillProducesImage(t *testing.T) {
	bg, font := writeTestAssets(t)
	r := NewRenderer(bg, font, time.UTC)

	// 03:00, outside the marker band: the output is just the background.
	encoded, err := r.Render(nil, monday.Add(3*time.Hour))
	require.NoError(t, err)

	img := decodeRendered(t, encoded)
	require.Equal(t, 1280, img.Bounds().Dx())
	require.Equal(t, 900, img.Bounds().Dy())
}

func TestRenderer_DrawsBookingBox(t *testing.T) {
	bg, font := writeTestAssets(t)
	r := NewRenderer(bg, font, time.UTC)

	bookings := []*domain.Booking{{
		ID:               1,
		ParticipantAlias: "ivan",
		TimeStart:        monday.Add(9 * time.Hour),
		TimeEnd:          monday.Add(11 * time.Hour),
	}}
	encoded, err := r.Render(bookings, monday.Add(3*time.Hour))
	require.NoError(t, err)

	img := decodeRendered(t, encoded)
	// Sample inside the expected box: light gray fill, clearly not white.
	box, err := BoxFor(bookings[0], time.UTC)
	require.NoError(t, err)
	cx := int((box.X0 + box.X1) / 2)
	cy := int((box.Y0+box.Y1)/2) + 8
	r8, g8, b8, _ := img.At(cx, cy).RGBA()
	require.Less(t, r8>>8, uint32(240))
	require.Less(t, g8>>8, uint32(240))
	require.Less(t, b8>>8, uint32(240))
}

func TestRenderer_NowMarkerDrawnInBand(t *testing.T) {
	bg, font := writeTestAssets(t)
	r := NewRenderer(bg, font, time.UTC)

	now := monday.Add(10 * time.Hour)
	encoded, err := r.Render(nil, now)
	require.NoError(t, err)

	img := decodeRendered(t, encoded)
	marker, ok := NowMarker(now, time.UTC)
	require.True(t, ok)
	r8, g8, _, _ := img.At(int((marker.X0+marker.X1)/2), int(marker.Y0)+1).RGBA()
	// Red marker: strong red channel, weak green.
	require.Greater(t, r8>>8, uint32(180))
	require.Less(t, g8>>8, uint32(120))
}

func TestRenderer_MissingAssets(t *testing.T) {
	bg, font := writeTestAssets(t)

	t.Run("missing background", func(t *testing.T) {
		r := NewRenderer(filepath.Join(t.TempDir(), "absent.jpg"), font, time.UTC)
		_, err := r.Render(nil, monday)
		require.ErrorIs(t, err, domain.ErrAssetMissing)
	})

	t.Run("missing font", func(t *testing.T) {
		r := NewRenderer(bg, filepath.Join(t.TempDir(), "absent.ttf"), time.UTC)
		_, err := r.Render(nil, monday)
		require.ErrorIs(t, err, domain.ErrAssetMissing)
	})

	t.Run("corrupt font", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.ttf")
		require.NoError(t, os.WriteFile(bad, []byte("not a font"), 0o644))
		r := NewRenderer(bg, bad, time.UTC)
		_, err := r.Render(nil, monday)
		require.ErrorIs(t, err, domain.ErrAssetMissing)
	})
}
