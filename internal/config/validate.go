package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	switch c.Storage.Driver {
	case StorageDriverPostgres:
		if c.Database.DSN == "" {
			return fmt.Errorf("database.dsn is required for storage driver %q", c.Storage.Driver)
		}
	case StorageDriverDisk:
		if strings.TrimSpace(c.Storage.DiskPath) == "" {
			return fmt.Errorf("storage.disk_path is required for storage driver %q", c.Storage.Driver)
		}
	default:
		return fmt.Errorf("storage.driver must be %q or %q (got %q)", StorageDriverPostgres, StorageDriverDisk, c.Storage.Driver)
	}

	if err := c.Editor.validate(); err != nil {
		return fmt.Errorf("editor: %w", err)
	}

	if err := c.Templates.validate(); err != nil {
		return fmt.Errorf("templates: %w", err)
	}

	if c.RateLimit.RequestsPerMinute < 0 {
		return fmt.Errorf("rate_limit.requests_per_minute must be >= 0 (got %d)", c.RateLimit.RequestsPerMinute)
	}

	return nil
}

func (e *EditorConfig) validate() error {
	if e.MaxQueueIndex <= 0 {
		return fmt.Errorf("max_queue_index must be > 0 (got %d)", e.MaxQueueIndex)
	}
	if e.HistoryLimit < 0 {
		return fmt.Errorf("history_limit must be >= 0 (got %d)", e.HistoryLimit)
	}
	if e.DefaultWidth <= 0 || e.DefaultHeight <= 0 {
		return fmt.Errorf("default_width and default_height must be > 0 (got %dx%d)", e.DefaultWidth, e.DefaultHeight)
	}
	return nil
}

func (t *TemplatesConfig) validate() error {
	if t.MaxBytes <= 0 {
		return fmt.Errorf("max_bytes must be > 0 (got %d)", t.MaxBytes)
	}

	catalog, err := ParseCatalog(t.CatalogRaw)
	if err != nil {
		return fmt.Errorf("catalog: %w", err)
	}
	t.Catalog = catalog

	return nil
}

// ParseCatalog parses a comma-separated list of name=location pairs
// (e.g. "Intro=https://example.com/intro.json,Blank=./templates/blank.json").
// An empty string returns a nil slice.
func ParseCatalog(raw string) ([]TemplateSource, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	catalog := make([]TemplateSource, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))

	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		name, location, ok := strings.Cut(p, "=")
		name = strings.TrimSpace(name)
		location = strings.TrimSpace(location)
		if !ok || name == "" || location == "" {
			return nil, fmt.Errorf("invalid entry %q: want name=location", p)
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("duplicate template name %q", name)
		}
		seen[name] = struct{}{}
		catalog = append(catalog, TemplateSource{Name: name, Location: location})
	}

	return catalog, nil
}
