package scene

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Texture holds CPU-side pixel data for a 2D texture.
type Texture struct {
	Name   string
	Width  int
	Height int
	// Pixels in RGBA8, 4 bytes per pixel, first row at the bottom.
	Pixels []byte
}

// TextureOptions controls decoding. MaxSize of 0 keeps the source size.
type TextureOptions struct {
	MaxSize int
}

// LoadTexture reads an image file from disk and returns a CPU-side Texture
// ready for upload.
func LoadTexture(path string, opts TextureOptions) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open texture %q: %w", path, err)
	}
	defer f.Close()

	return DecodeTexture(path, f, opts)
}

// DecodeTexture decodes JPEG, PNG, BMP, TIFF or WebP data. The result is
// converted to RGBA8 and flipped so row 0 is the bottom of the image, the
// order OpenGL expects.
func DecodeTexture(name string, r io.Reader, opts TextureOptions) (*Texture, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode texture %q: %w", name, err)
	}

	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, fmt.Errorf("texture %q has no pixels", name)
	}

	dst := image.Rect(0, 0, bounds.Dx(), bounds.Dy())
	if opts.MaxSize > 0 {
		dst = fitWithin(dst, opts.MaxSize)
	}

	rgba := image.NewRGBA(dst)
	if dst.Size() == bounds.Size() {
		xdraw.Draw(rgba, dst, img, bounds.Min, xdraw.Src)
	} else {
		xdraw.CatmullRom.Scale(rgba, dst, img, bounds, xdraw.Src, nil)
	}

	w, h := dst.Dx(), dst.Dy()
	FlipVertical(rgba.Pix, w, h, 4)

	return &Texture{
		Name:   fmt.Sprintf("%s (%s)", name, format),
		Width:  w,
		Height: h,
		Pixels: rgba.Pix,
	}, nil
}

// fitWithin shrinks r, keeping its aspect ratio, so neither side exceeds max.
func fitWithin(r image.Rectangle, max int) image.Rectangle {
	w, h := r.Dx(), r.Dy()
	if w <= max && h <= max {
		return r
	}
	if w >= h {
		h = h * max / w
		w = max
	} else {
		w = w * max / h
		h = max
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return image.Rect(0, 0, w, h)
}

// FlipVertical swaps rows in place so the first row becomes the last.
func FlipVertical(pix []byte, width, height, channels int) {
	stride := width * channels
	tmp := make([]byte, stride)
	for top, bottom := 0, height-1; top < bottom; top, bottom = top+1, bottom-1 {
		a := pix[top*stride : (top+1)*stride]
		b := pix[bottom*stride : (bottom+1)*stride]
		copy(tmp, a)
		copy(a, b)
		copy(b, tmp)
	}
}
