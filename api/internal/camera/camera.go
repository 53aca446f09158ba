// Package camera defines the still-capture boundary: acquire a source,
// take one frame, release it.
package camera

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/jpeg"
	_ "image/png" // photo sources may hand us PNG frames
	"math"
)

// ErrUnavailable is returned by Open when the device cannot be acquired
// (no source, or the single capture slot is taken). The condition is
// retryable: callers may Open again once it clears.
var ErrUnavailable = errors.New("camera: device unavailable")

// ErrClosed is returned by Shoot when the device is closed before a frame
// arrives.
var ErrClosed = errors.New("camera: device closed")

// Device is the boundary contract. Once Open succeeds, Close must run
// exactly once on every exit path so the source is never held forever.
type Device interface {
	Open(ctx context.Context) error
	Shoot(ctx context.Context) ([]byte, error)
	Close() error
}

// Options are the fixed capture settings: target frame bounds and JPEG
// quality for the size/fidelity trade-off.
type Options struct {
	MaxWidth  int
	MaxHeight int
	Quality   int
}

// DefaultOptions mirrors the rear-camera constraints of the mobile UI.
var DefaultOptions = Options{MaxWidth: 1280, MaxHeight: 1280, Quality: 70}

// Normalize bounds a captured frame to opt and re-encodes it as JPEG.
func Normalize(raw []byte, opt Options) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return nil, errors.New("camera: empty frame")
	}

	scale := 1.0
	if opt.MaxWidth > 0 && w > opt.MaxWidth {
		scale = math.Min(scale, float64(opt.MaxWidth)/float64(w))
	}
	if opt.MaxHeight > 0 && h > opt.MaxHeight {
		scale = math.Min(scale, float64(opt.MaxHeight)/float64(h))
	}
	if scale < 1 {
		newW := int(float64(w)*scale + 0.5)
		newH := int(float64(h)*scale + 0.5)
		if newW < 1 {
			newW = 1
		}
		if newH < 1 {
			newH = 1
		}
		img = scaleDownNN(img, newW, newH)
	}

	quality := opt.Quality
	if quality <= 0 || quality > 100 {
		quality = DefaultOptions.Quality
	}
	var out bytes.Buffer
	if err := jpeg.Encode(&out, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func scaleDownNN(src image.Image, newW, newH int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	sb := src.Bounds()
	srcW := sb.Dx()
	srcH := sb.Dy()
	for y := 0; y < newH; y++ {
		sy := sb.Min.Y + (y*srcH)/newH
		for x := 0; x < newW; x++ {
			sx := sb.Min.X + (x*srcW)/newW
			dst.Set(x, y, src.At(sx, sy))
		}
	}
	return dst
}
