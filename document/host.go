package document

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/Aashish23092/payslip-filler/dto"
)

// Host substitutes placeholders in one document format. src and dst may be
// the same path; dst is only replaced once the whole document was written.
type Host interface {
	Substitute(ctx context.Context, src, dst string, r *Replacer) (Stats, error)
}

// Registry maps file extensions to hosts.
type Registry struct {
	mu    sync.RWMutex
	hosts map[string]Host
}

// NewRegistry returns a registry with the docx, xlsx and text hosts.
func NewRegistry() *Registry {
	r := &Registry{hosts: make(map[string]Host)}
	r.hosts[".docx"] = DocxHost{}
	r.hosts[".xlsx"] = XlsxHost{}
	r.hosts[".txt"] = TextHost{}
	r.hosts[".md"] = TextHost{}
	return r
}

func (r *Registry) Register(ext string, h Host) error {
	ext = normalizeExt(ext)
	if ext == "." {
		return fmt.Errorf("extension cannot be empty")
	}
	if h == nil {
		return fmt.Errorf("host cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.hosts[ext] = h
	return nil
}

// For returns the host for path's extension.
func (r *Registry) For(path string) (Host, error) {
	ext := normalizeExt(filepath.Ext(path))

	r.mu.RLock()
	h, ok := r.hosts[ext]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: template %q", dto.ErrUnsupportedFormat, filepath.Base(path))
	}
	return h, nil
}

func (r *Registry) Supports(path string) bool {
	_, err := r.For(path)
	return err == nil
}

// Extensions lists the registered extensions, sorted.
func (r *Registry) Extensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	exts := make([]string, 0, len(r.hosts))
	for ext := range r.hosts {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

func normalizeExt(ext string) string {
	return "." + strings.TrimPrefix(strings.ToLower(strings.TrimSpace(ext)), ".")
}

// writeFileAtomic writes dst through a temp file in the same directory.
func writeFileAtomic(dst string, perm os.FileMode, write func(w io.Writer) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(dst), "."+filepath.Base(dst)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := write(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), perm); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return fmt.Errorf("failed to replace %s: %w", dst, err)
	}
	return nil
}

func fileMode(path string) os.FileMode {
	if info, err := os.Stat(path); err == nil {
		return info.Mode().Perm()
	}
	return 0o644
}
