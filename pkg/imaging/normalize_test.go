package imaging_test

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math/rand"
	"os"
	"strings"
	"testing"

	"github.com/casedesk/casedesk/pkg/imaging"
)

// noisePNG encodes a deterministic noise image, the worst case for PNG
// compression, so size assertions are stable across runs.
func noisePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	rng := rand.New(rand.NewSource(1))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(rng.Intn(256)),
				G: uint8(rng.Intn(256)),
				B: uint8(rng.Intn(256)),
				A: 255,
			})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode noise image: %v", err)
	}
	return buf.Bytes()
}

func solidPNG(t *testing.T, w, h int, c color.RGBA) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode solid image: %v", err)
	}
	return buf.Bytes()
}

func decodeDims(t *testing.T, data []byte) (int, int) {
	t.Helper()
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode normalized page: %v", err)
	}
	b := img.Bounds()
	return b.Dx(), b.Dy()
}

func TestNormalize_CompliantImageNeverGrows(t *testing.T) {
	input := noisePNG(t, 256, 256)
	n := imaging.NewNormalizer(imaging.Options{}, nil)

	first, err := n.Normalize(context.Background(), "scan.png", input)
	if err != nil {
		t.Fatalf("first pass: %v", err)
	}
	if len(first) != 1 {
		t.Fatalf("expected 1 page, got %d", len(first))
	}
	if len(first[0].PNG) > len(input) {
		t.Fatalf("first pass grew the payload: %d > %d", len(first[0].PNG), len(input))
	}
	if first[0].Width != 256 || first[0].Height != 256 {
		t.Fatalf("under-budget image was resized: %dx%d", first[0].Width, first[0].Height)
	}

	second, err := n.Normalize(context.Background(), "scan.png", first[0].PNG)
	if err != nil {
		t.Fatalf("second pass: %v", err)
	}
	if len(second[0].PNG) > len(first[0].PNG) {
		t.Fatalf("second pass grew the payload: %d > %d", len(second[0].PNG), len(first[0].PNG))
	}
	if second[0].Width != 256 || second[0].Height != 256 {
		t.Fatalf("second pass changed dimensions: %dx%d", second[0].Width, second[0].Height)
	}
}

func TestNormalize_FloorReturnsDegradedOutput(t *testing.T) {
	input := noisePNG(t, 120, 120)
	n := imaging.NewNormalizer(imaging.Options{MaxBytes: 10}, nil)

	pages, err := n.Normalize(context.Background(), "scan.png", input)
	if err != nil {
		t.Fatalf("floor hit must not error: %v", err)
	}

	page := pages[0]
	if len(page.PNG) == 0 {
		t.Fatal("floor hit returned empty payload")
	}
	// An impossible byte budget still yields the last attempted encoding.
	if int64(len(page.PNG)) <= 10 {
		t.Fatalf("10-byte budget cannot be met, got %d bytes", len(page.PNG))
	}
	if page.Width >= 120 || page.Width < 1 {
		t.Fatalf("expected floor-bounded downscale, got width %d", page.Width)
	}

	w, h := decodeDims(t, page.PNG)
	if w != page.Width || h != page.Height {
		t.Fatalf("reported dims %dx%d do not match payload %dx%d", page.Width, page.Height, w, h)
	}
}

func TestNormalize_UnsupportedFormat(t *testing.T) {
	n := imaging.NewNormalizer(imaging.Options{}, nil)
	if _, err := n.Normalize(context.Background(), "notes.docx", []byte("x")); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestClassify(t *testing.T) {
	cases := map[string]imaging.Kind{
		"scan.PNG":   imaging.KindImage,
		"photo.jpeg": imaging.KindImage,
		"doc.pdf":    imaging.KindPDF,
		"notes.txt":  imaging.KindOther,
	}
	for name, want := range cases {
		if got := imaging.Classify(name); got != want {
			t.Errorf("Classify(%q) = %v, want %v", name, got, want)
		}
	}
}

// fakeRasterRunner stands in for poppler: instead of executing pdftoppm it
// drops pre-rendered pages at the output prefix, deliberately out of order.
type fakeRasterRunner struct {
	t      *testing.T
	pages  [][]byte
	binary string
	args   []string
}

func (f *fakeRasterRunner) Run(_ context.Context, name string, args ...string) error {
	f.binary = name
	f.args = args

	prefix := args[len(args)-1]
	for i := len(f.pages) - 1; i >= 0; i-- {
		path := fmt.Sprintf("%s-%d.png", prefix, i+1)
		if err := os.WriteFile(path, f.pages[i], 0o600); err != nil {
			f.t.Fatalf("write fake page: %v", err)
		}
	}
	return nil
}

func TestNormalize_PDFPagesInOrder(t *testing.T) {
	fake := &fakeRasterRunner{t: t, pages: [][]byte{
		solidPNG(t, 40, 40, color.RGBA{R: 255, A: 255}),
		solidPNG(t, 50, 50, color.RGBA{B: 255, A: 255}),
	}}
	raster := imaging.NewRasterizer(imaging.RasterConfig{DPI: 150, Runner: fake})
	n := imaging.NewNormalizer(imaging.Options{}, raster)

	pdf := []byte("%PDF-1.4 stub")
	pages, err := n.Normalize(context.Background(), "doc.pdf", pdf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pages) != 2 {
		t.Fatalf("expected 2 pages, got %d", len(pages))
	}
	if pages[0].Number != 1 || pages[1].Number != 2 {
		t.Fatalf("page numbering broken: %d, %d", pages[0].Number, pages[1].Number)
	}
	if pages[0].Width != 40 || pages[1].Width != 50 {
		t.Fatalf("pages out of order: %d, %d", pages[0].Width, pages[1].Width)
	}

	if fake.binary != "pdftoppm" {
		t.Fatalf("expected default pdftoppm binary, got %q", fake.binary)
	}
	joined := strings.Join(fake.args, " ")
	if !strings.Contains(joined, "-r 150") {
		t.Fatalf("configured DPI not passed through: %v", fake.args)
	}
	if !strings.HasSuffix(fake.args[len(fake.args)-2], "input.pdf") {
		t.Fatalf("uploaded bytes not staged as a file: %v", fake.args)
	}
}

func TestRasterizePDF_NoPagesProduced(t *testing.T) {
	fake := &fakeRasterRunner{t: t}
	raster := imaging.NewRasterizer(imaging.RasterConfig{Runner: fake})

	if _, err := raster.RasterizePDF(context.Background(), "", []byte("%PDF-1.4 stub")); err == nil {
		t.Fatal("expected error when rasterization yields no pages")
	}
}
