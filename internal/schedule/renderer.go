package schedule

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/color"
	"image/jpeg"
	"os"
	"time"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"

	"musicroombooking/internal/domain"
)

var (
	boxFill   = color.RGBA{R: 211, G: 211, B: 211, A: 255}
	labelInk  = color.RGBA{R: 48, G: 54, B: 59, A: 255}
	markerInk = color.RGBA{R: 255, G: 0, B: 0, A: 255}
)

// Renderer draws the weekly grid over a background template. Assets are
// loaded on every call, so they may be replaced between requests.
type Renderer struct {
	BackgroundPath string
	FontPath       string
	Location       *time.Location
	// JPEGQuality for the encoded output; zero means jpeg.DefaultQuality.
	JPEGQuality int
}

// NewRenderer returns a Renderer with the given asset paths.
func NewRenderer(backgroundPath, fontPath string, loc *time.Location) *Renderer {
	return &Renderer{
		BackgroundPath: backgroundPath,
		FontPath:       fontPath,
		Location:       loc,
	}
}

// Render draws the given bookings onto the template and returns the result
// as a base64-encoded JPEG. now controls the position of the red now-marker;
// the marker is drawn only when now's hour is inside the visible band.
// Missing or unreadable assets yield ErrAssetMissing.
func (r *Renderer) Render(bookings []*domain.Booking, now time.Time) (string, error) {
	background, err := gg.LoadImage(r.BackgroundPath)
	if err != nil {
		return "", fmt.Errorf("%w: background %s: %v", domain.ErrAssetMissing, r.BackgroundPath, err)
	}

	fontBytes, err := os.ReadFile(r.FontPath)
	if err != nil {
		return "", fmt.Errorf("%w: font %s: %v", domain.ErrAssetMissing, r.FontPath, err)
	}
	parsedFont, err := truetype.Parse(fontBytes)
	if err != nil {
		return "", fmt.Errorf("%w: font %s: %v", domain.ErrAssetMissing, r.FontPath, err)
	}
	face := truetype.NewFace(parsedFont, &truetype.Options{Size: fontSize})
	defer face.Close()

	dc := gg.NewContextForImage(background)
	dc.SetFontFace(face)

	for _, box := range Layout(bookings, r.Location) {
		dc.SetColor(boxFill)
		dc.DrawRoundedRectangle(box.X0, box.Y0, box.X1-box.X0, box.Y1-box.Y0, cornerRadius)
		dc.Fill()

		dc.SetColor(labelInk)
		dc.DrawString(box.Label, box.X0+2, (box.Y0+box.Y1)/2+fontSize/3)
	}

	if marker, ok := NowMarker(now, r.Location); ok {
		dc.SetColor(markerInk)
		dc.DrawRoundedRectangle(marker.X0, marker.Y0, marker.X1-marker.X0, marker.Y1-marker.Y0, NowMarkerHeight/2)
		dc.Fill()
	}

	quality := r.JPEGQuality
	if quality == 0 {
		quality = jpeg.DefaultQuality
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dc.Image(), &jpeg.Options{Quality: quality}); err != nil {
		return "", fmt.Errorf("encode schedule image: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
