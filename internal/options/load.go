package options

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/olivierh59500/particle-links/internal/geom"
)

// StatusError reports a non-2xx response while fetching remote options
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetch %s: status %d", e.URL, e.StatusCode)
}

// Load reads options from path on top of the defaults.
// Files ending in .json are decoded as JSON, everything else as TOML.
func Load(path string) (*Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read options: %w", err)
	}
	o, err := Decode(data, isJSON(path))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return o, nil
}

// Decode parses raw options on top of the defaults
func Decode(data []byte, asJSON bool) (*Options, error) {
	o := Default()
	if asJSON {
		if err := json.Unmarshal(data, o); err != nil {
			return nil, err
		}
	} else {
		if _, err := toml.Decode(string(data), o); err != nil {
			return nil, err
		}
	}
	o.Normalize()
	return o, nil
}

// Save writes options to path, format chosen by extension
func Save(o *Options, path string) error {
	var buf bytes.Buffer
	if isJSON(path) {
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		if err := enc.Encode(o); err != nil {
			return fmt.Errorf("encode options: %w", err)
		}
	} else if err := toml.NewEncoder(&buf).Encode(o); err != nil {
		return fmt.Errorf("encode options: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// LoadURL fetches remote options. A non-2xx status returns *StatusError.
func LoadURL(ctx context.Context, client *http.Client, url string) (*Options, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode}
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}

	asJSON := isJSON(url) || strings.Contains(resp.Header.Get("Content-Type"), "json")
	o, err := Decode(data, asJSON)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", url, err)
	}
	return o, nil
}

// Normalize fills values a partial file may leave at zero
func (o *Options) Normalize() {
	if o.Canvas.PixelRatio <= 0 {
		o.Canvas.PixelRatio = 1
	}
	if o.Canvas.Width <= 0 {
		o.Canvas.Width = 800
	}
	if o.Canvas.Height <= 0 {
		o.Canvas.Height = 600
	}
	if o.Interactivity.Modes.Repulse == nil {
		o.Interactivity.Modes.Repulse = DefaultRepulse()
	}
	if r := o.Interactivity.Modes.Repulse; r.Easing != "" && !r.Easing.Known() {
		log.Printf("options: unknown easing %q, using linear", r.Easing)
		r.Easing = geom.EaseLinear
	}
	for i := range o.Interactivity.Events.OnDiv {
		if o.Interactivity.Events.OnDiv[i].Type == "" {
			o.Interactivity.Events.OnDiv[i].Type = DivCircle
		}
	}
	if o.BackgroundMask.Composite == "" {
		o.BackgroundMask.Composite = "destination-out"
	}
}

func isJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}
