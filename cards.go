package sitedef

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"

	"golang.org/x/image/draw"
)

// Social card dimensions, matching the og:image:width and og:image:height
// declared in the static metadata.
const (
	CardWidth   = 740
	CardHeight  = 300
	cardQuality = 85
)

// MakeCard decodes an image from src, scales it to cover CardWidth x
// CardHeight, crops the overflow around the center and encodes the result
// as JPEG.
func MakeCard(src io.Reader) ([]byte, error) {
	img, _, err := image.Decode(src)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return nil, errors.New("decode image: empty image")
	}

	crop := cropRect(b)
	dst := image.NewRGBA(image.Rect(0, 0, CardWidth, CardHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, crop, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: cardQuality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// cropRect returns the largest centered region of b with the card's aspect
// ratio.
func cropRect(b image.Rectangle) image.Rectangle {
	w, h := b.Dx(), b.Dy()
	cw, ch := w, h
	if w*CardHeight > h*CardWidth {
		cw = h * CardWidth / CardHeight
	} else {
		ch = w * CardHeight / CardWidth
	}
	x0 := b.Min.X + (w-cw)/2
	y0 := b.Min.Y + (h-ch)/2
	return image.Rect(x0, y0, x0+cw, y0+ch)
}
