package ticket

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// LatexRenderer compiles LaTeX sources by shelling out to latexmk.  Each
// render gets its own temporary working directory, so concurrent ticket
// requests never touch each other's artifacts; the directory is removed on
// success and failure alike.
type LatexRenderer struct{}

// Render writes the source to <name>.tex in a fresh temp dir, runs latexmk
// and returns the compiled PDF bytes.
func (LatexRenderer) Render(ctx context.Context, name string, source []byte) ([]byte, error) {
	dir, err := os.MkdirTemp("", "ticket-*")
	if err != nil {
		return nil, fmt.Errorf("latex: temp dir: %w", err)
	}
	defer func() { _ = os.RemoveAll(dir) }()

	texFile := filepath.Join(dir, name+".tex")
	if err := os.WriteFile(texFile, source, 0o644); err != nil {
		return nil, fmt.Errorf("latex: write source: %w", err)
	}

	cmd := exec.CommandContext(ctx, "latexmk", "-pdf", "-interaction=nonstopmode", "-outdir="+dir, texFile)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("latex: compile: %w: %s", err, tail(out, 400))
	}

	pdf, err := os.ReadFile(filepath.Join(dir, name+".pdf"))
	if err != nil {
		return nil, fmt.Errorf("latex: read output: %w", err)
	}
	return pdf, nil
}

// tail returns the last n bytes of compiler output for error messages.
func tail(b []byte, n int) []byte {
	if len(b) <= n {
		return b
	}
	return b[len(b)-n:]
}
