package imaging

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Runner executes an external binary. Injectable so tests can fake poppler.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) error
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = nil
	cmd.Stderr = nil
	return cmd.Run()
}

// RasterConfig configures PDF rasterization.
type RasterConfig struct {
	Pdftoppm string // binary name or absolute path; empty means "pdftoppm"
	DPI      int    // rasterization resolution, default 200
	Runner   Runner // defaults to exec
}

// Rasterizer converts PDF pages to PNG images using poppler's pdftoppm,
// the same tool the intake workflow has always relied on for scans.
type Rasterizer struct {
	cfg RasterConfig
}

// NewRasterizer creates a Rasterizer with defaults filled in.
func NewRasterizer(cfg RasterConfig) *Rasterizer {
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = "pdftoppm"
	}
	if cfg.DPI <= 0 {
		cfg.DPI = 200
	}
	if cfg.Runner == nil {
		cfg.Runner = execRunner{}
	}
	return &Rasterizer{cfg: cfg}
}

// RasterizePDF renders every page of the PDF to a PNG, returned in page
// order. When data is non-nil it is written to a temporary file first;
// otherwise path must point at a readable PDF.
func (r *Rasterizer) RasterizePDF(ctx context.Context, path string, data []byte) ([][]byte, error) {
	workDir, err := os.MkdirTemp("", "casedesk-raster-*")
	if err != nil {
		return nil, errorRegistry.NewWithCause(ErrRasterizeFailed, err)
	}
	defer os.RemoveAll(workDir)

	src := path
	if data != nil {
		src = filepath.Join(workDir, "input.pdf")
		if err := os.WriteFile(src, data, 0o600); err != nil {
			return nil, errorRegistry.NewWithCause(ErrRasterizeFailed, err)
		}
	}

	prefix := filepath.Join(workDir, "page")
	args := []string{"-png", "-r", strconv.Itoa(r.cfg.DPI), src, prefix}
	if err := r.cfg.Runner.Run(ctx, r.cfg.Pdftoppm, args...); err != nil {
		return nil, errorRegistry.NewWithCause(ErrRasterizeFailed, err).
			WithDetail("binary", r.cfg.Pdftoppm)
	}

	entries, err := os.ReadDir(workDir)
	if err != nil {
		return nil, errorRegistry.NewWithCause(ErrRasterizeFailed, err)
	}

	// pdftoppm zero-pads page numbers, so a lexical sort is page order.
	var names []string
	for _, e := range entries {
		name := e.Name()
		if strings.HasPrefix(name, "page") && strings.HasSuffix(name, ".png") {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	if len(names) == 0 {
		return nil, errorRegistry.New(ErrRasterizeFailed).
			WithDetail("reason", "no pages produced")
	}

	pages := make([][]byte, 0, len(names))
	for _, name := range names {
		raw, err := os.ReadFile(filepath.Join(workDir, name))
		if err != nil {
			return nil, errorRegistry.NewWithCause(ErrReadFailed, err)
		}
		pages = append(pages, raw)
	}
	return pages, nil
}
