// Package imaging prepares uploaded scans for transmission to vision
// providers: PDF pages are rasterized in page order, images are converted to
// a provider-friendly color mode, contrast-boosted and iteratively
// downscaled until the encoded payload fits the provider byte budget.
//
// Size reduction is best effort. When the scale floor is reached before the
// budget is satisfied the smallest attempted encoding is returned without
// error; callers must not assume the returned pages are under the budget.
package imaging

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"

	// Extra decoders for the upload formats the intake accepts.
	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Page is one normalized page, PNG-encoded.
type Page struct {
	Number int // 1-based page index
	PNG    []byte
	Width  int
	Height int
}

// Options controls normalization. Zero values fall back to defaults.
type Options struct {
	MaxBytes       int64   // encoded size budget, default 5 MiB
	ContrastFactor float64 // multiplicative contrast boost, default 1.5
	DownscaleStep  float64 // scale decrement per attempt, default 0.05
	DownscaleFloor float64 // smallest scale attempted, default 0.1
	MinDimension   int     // stop shrinking below this many pixels, default 100
	RasterDPI      int     // PDF rasterization resolution, default 200
}

func (o Options) withDefaults() Options {
	if o.MaxBytes <= 0 {
		o.MaxBytes = 5 * 1024 * 1024
	}
	if o.ContrastFactor <= 0 {
		o.ContrastFactor = 1.5
	}
	if o.DownscaleStep <= 0 {
		o.DownscaleStep = 0.05
	}
	if o.DownscaleFloor <= 0 {
		o.DownscaleFloor = 0.1
	}
	if o.MinDimension <= 0 {
		o.MinDimension = 100
	}
	if o.RasterDPI <= 0 {
		o.RasterDPI = 200
	}
	return o
}

// Normalizer turns a document file into provider-ready page images.
type Normalizer struct {
	opts   Options
	raster *Rasterizer
}

// NewNormalizer creates a Normalizer. A nil rasterizer gets the default
// poppler-backed one.
func NewNormalizer(opts Options, raster *Rasterizer) *Normalizer {
	opts = opts.withDefaults()
	if raster == nil {
		raster = NewRasterizer(RasterConfig{DPI: opts.RasterDPI})
	}
	return &Normalizer{opts: opts, raster: raster}
}

// Kind classifies a filename by extension.
type Kind string

const (
	KindImage Kind = "image"
	KindPDF   Kind = "pdf"
	KindOther Kind = "other"
)

var imageExts = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
	".webp": true, ".bmp": true, ".tiff": true, ".tif": true,
}

// Classify returns the document kind for a filename.
func Classify(filename string) Kind {
	ext := strings.ToLower(filepath.Ext(filename))
	switch {
	case imageExts[ext]:
		return KindImage
	case ext == ".pdf":
		return KindPDF
	default:
		return KindOther
	}
}

// Normalize prepares every page of the document at path. Single images yield
// one page; PDFs yield one page per sheet in page order.
func (n *Normalizer) Normalize(ctx context.Context, path string, data []byte) ([]Page, error) {
	switch Classify(path) {
	case KindPDF:
		return n.normalizePDF(ctx, path, data)
	case KindImage:
		page, err := n.normalizeImageBytes(data, 1)
		if err != nil {
			return nil, err
		}
		return []Page{page}, nil
	default:
		return nil, errorRegistry.New(ErrUnsupportedFormat).
			WithDetail("filename", filepath.Base(path))
	}
}

func (n *Normalizer) normalizePDF(ctx context.Context, path string, data []byte) ([]Page, error) {
	rasters, err := n.raster.RasterizePDF(ctx, path, data)
	if err != nil {
		return nil, err
	}

	pages := make([]Page, 0, len(rasters))
	for i, raw := range rasters {
		page, err := n.normalizeImageBytes(raw, i+1)
		if err != nil {
			return nil, err
		}
		pages = append(pages, page)
	}
	return pages, nil
}

func (n *Normalizer) normalizeImageBytes(data []byte, number int) (Page, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return Page{}, errorRegistry.NewWithCause(ErrDecodeFailed, err).
			WithDetail("page", number)
	}
	return n.normalizeImage(img, number)
}

func (n *Normalizer) normalizeImage(img image.Image, number int) (Page, error) {
	rgba := toRGBA(img)
	enhanceContrast(rgba, n.opts.ContrastFactor)

	encoded, w, h, err := encodePNG(rgba)
	if err != nil {
		return Page{}, errorRegistry.NewWithCause(ErrDecodeFailed, err)
	}
	if int64(len(encoded)) <= n.opts.MaxBytes {
		return Page{Number: number, PNG: encoded, Width: w, Height: h}, nil
	}

	// Over budget: shrink from 0.9 downward, keeping the smallest attempt
	// so a floor hit still yields usable output.
	origW := rgba.Bounds().Dx()
	origH := rgba.Bounds().Dy()
	best, bestW, bestH := encoded, w, h

	for scale := 0.9; scale > n.opts.DownscaleFloor; scale -= n.opts.DownscaleStep {
		newW := int(float64(origW) * scale)
		newH := int(float64(origH) * scale)
		resized := resize(rgba, newW, newH)

		encoded, w, h, err = encodePNG(resized)
		if err != nil {
			return Page{}, errorRegistry.NewWithCause(ErrDecodeFailed, err)
		}
		if int64(len(encoded)) < int64(len(best)) {
			best, bestW, bestH = encoded, w, h
		}
		if int64(len(encoded)) <= n.opts.MaxBytes ||
			newW < n.opts.MinDimension || newH < n.opts.MinDimension {
			return Page{Number: number, PNG: encoded, Width: w, Height: h}, nil
		}
	}

	return Page{Number: number, PNG: best, Width: bestW, Height: bestH}, nil
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}

// enhanceContrast spreads pixel values away from the image's mean luminance
// by the given factor, clamped to the 0-255 range.
func enhanceContrast(img *image.RGBA, factor float64) {
	if factor == 1.0 {
		return
	}

	b := img.Bounds()
	var sum, count float64
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := img.RGBAAt(x, y)
			sum += 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
			count++
		}
	}
	if count == 0 {
		return
	}
	mean := sum / count

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := img.RGBAAt(x, y)
			img.SetRGBA(x, y, color.RGBA{
				R: clamp(mean + factor*(float64(c.R)-mean)),
				G: clamp(mean + factor*(float64(c.G)-mean)),
				B: clamp(mean + factor*(float64(c.B)-mean)),
				A: c.A,
			})
		}
	}
}

func clamp(v float64) uint8 {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	default:
		return uint8(v)
	}
}

func resize(img image.Image, w, h int) *image.RGBA {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)
	return dst
}

func encodePNG(img image.Image) ([]byte, int, int, error) {
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(&buf, img); err != nil {
		return nil, 0, 0, err
	}
	b := img.Bounds()
	return buf.Bytes(), b.Dx(), b.Dy(), nil
}
