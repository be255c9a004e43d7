package content

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed page.yaml
var defaultPageYAML []byte

// Default returns the bundled BoardPackNYC page.
func Default() (*Page, error) {
	page, err := Parse(defaultPageYAML)
	if err != nil {
		return nil, fmt.Errorf("content: bundled page: %w", err)
	}
	return page, nil
}

// Load reads a page from path. An empty path returns the bundled page.
func Load(path string) (*Page, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("content: read %s: %w", path, err)
	}
	page, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("content: %s: %w", path, err)
	}
	return page, nil
}

// Parse decodes a page. Unknown keys are rejected so typos in section names
// do not silently drop copy.
func Parse(data []byte) (*Page, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var page Page
	if err := dec.Decode(&page); err != nil {
		if errors.Is(err, io.EOF) {
			return &page, nil
		}
		return nil, fmt.Errorf("decode page: %w", err)
	}
	return &page, nil
}
