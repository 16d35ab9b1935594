package catalog

import (
	"context"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/sitecert/core/target"
)

const (
	ProtocolHTTP  = "http"
	ProtocolHTTPS = "https"
)

// Binding is one host/protocol binding of a site.
type Binding struct {
	Host     string `yaml:"host"`
	Protocol string `yaml:"protocol"`
	Port     int    `yaml:"port,omitempty"`
}

// IsHTTPS reports whether the binding serves TLS.
func (b Binding) IsHTTPS() bool {
	return strings.EqualFold(strings.TrimSpace(b.Protocol), ProtocolHTTPS)
}

// Site is a web server site as reported by an inventory.
type Site struct {
	ID       target.SiteID `yaml:"id"`
	Name     string        `yaml:"name"`
	RootPath string        `yaml:"root_path"`
	Bindings []Binding     `yaml:"bindings"`
}

// Inventory lists the raw sites of a web server.
type Inventory interface {
	Sites(ctx context.Context) ([]Site, error)
}

// StaticInventory serves a fixed list of sites.
type StaticInventory []Site

func (s StaticInventory) Sites(ctx context.Context) ([]Site, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]Site, len(s))
	for i, site := range s {
		site.Bindings = append([]Binding(nil), site.Bindings...)
		out[i] = site
	}
	return out, nil
}

// FileInventory reads sites from a YAML file on every call, so edits to the
// file are picked up by the next listing.
type FileInventory struct {
	path string
}

func NewFileInventory(path string) *FileInventory {
	return &FileInventory{path: path}
}

type inventoryDocument struct {
	Sites []Site `yaml:"sites"`
}

func (f *FileInventory) Sites(ctx context.Context) ([]Site, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInventoryUnavailable, err)
	}
	return ParseInventory(data)
}

// ParseInventory decodes a YAML inventory document and checks site ids are
// positive and unique.
func ParseInventory(data []byte) ([]Site, error) {
	var doc inventoryDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInventory, err)
	}

	seen := make(map[target.SiteID]struct{}, len(doc.Sites))
	for _, s := range doc.Sites {
		if s.ID <= 0 {
			return nil, fmt.Errorf("%w: site %q has no positive id", ErrInvalidInventory, s.Name)
		}
		if _, ok := seen[s.ID]; ok {
			return nil, fmt.Errorf("%w: duplicate site id %d", ErrInvalidInventory, s.ID)
		}
		seen[s.ID] = struct{}{}
	}
	return doc.Sites, nil
}
