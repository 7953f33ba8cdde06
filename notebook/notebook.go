// Package notebook renders notebook display artifacts for exported files.
package notebook

import (
	"errors"
	"fmt"
	"html"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// ErrNoRichDisplay is returned outside a notebook kernel.
var ErrNoRichDisplay = errors.New("rich display unavailable: use DownloadLink inside a notebook kernel")

// KernelEnv lists environment variables set by notebook kernels.
var KernelEnv = []string{
	"JPY_PARENT_PID",
	"JPY_SESSION_NAME",
	"JUPYTER_SERVER_ROOT",
	"GONB_DIR",
}

// DefaultPrefix is the URL path the notebook server serves files under.
const DefaultPrefix = "files/"

// HTML is a fragment of HTML markup for a notebook cell.
type HTML string

// String returns the markup.
func (h HTML) String() string { return string(h) }

// MIME returns the display bundle used by notebook kernels.
func (h HTML) MIME() map[string]any {
	return map[string]any{"text/html": string(h)}
}

// Renderer builds download links. The zero value uses the process working
// directory and environment.
type Renderer struct {
	// Getwd returns the notebook working directory. Defaults to os.Getwd.
	Getwd func() (string, error)
	// Getenv looks up kernel markers. Defaults to os.Getenv.
	Getenv func(string) string
	// Prefix is prepended to the link target. Defaults to DefaultPrefix.
	Prefix string
	// Force renders even when no kernel is detected.
	Force bool
}

// DownloadLink renders a download link for path using the default Renderer.
func DownloadLink(path, text string) (HTML, error) {
	var r Renderer
	return r.DownloadLink(path, text)
}

// Available reports whether a notebook kernel was detected.
func (r *Renderer) Available() bool {
	getenv := r.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	for _, key := range KernelEnv {
		if getenv(key) != "" {
			return true
		}
	}
	return false
}

// DownloadLink renders an anchor that downloads path from the notebook
// server. Paths under the working directory link by their relative path;
// any other path links by its file name. An empty text defaults to
// "⬇️ Download <name>".
func (r *Renderer) DownloadLink(path, text string) (HTML, error) {
	if !r.Force && !r.Available() {
		return "", ErrNoRichDisplay
	}

	getwd := r.Getwd
	if getwd == nil {
		getwd = os.Getwd
	}
	cwd, err := getwd()
	if err != nil {
		return "", fmt.Errorf("resolving working directory: %w", err)
	}

	abs := path
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(cwd, abs)
	}
	abs = filepath.Clean(abs)
	name := filepath.Base(abs)

	target := name
	if rel, ok := under(cwd, abs); ok {
		target = filepath.ToSlash(rel)
	}

	if text == "" {
		text = "⬇️ Download " + name
	}
	prefix := r.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}

	return HTML(fmt.Sprintf(`<a href="%s" download="%s">%s</a>`,
		html.EscapeString(prefix+escapePath(target)),
		html.EscapeString(name),
		html.EscapeString(text),
	)), nil
}

// escapePath percent-encodes each segment of a slash-separated path.
func escapePath(p string) string {
	parts := strings.Split(p, "/")
	for i, part := range parts {
		parts[i] = url.PathEscape(part)
	}
	return strings.Join(parts, "/")
}

// under returns path relative to dir when path lies inside dir.
func under(dir, path string) (string, bool) {
	rel, err := filepath.Rel(filepath.Clean(dir), path)
	if err != nil || rel == "." || filepath.IsAbs(rel) {
		return "", false
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return rel, true
}
