package models

import "gorm.io/datatypes"

// Metadata is the store-provided descriptive field set written by enrichment.
// Nil fields are stored as NULL.
type Metadata struct {
	Title            *string
	URL              *string
	Description      *string
	MinInstalls      *int64
	MaxInstalls      *int64
	Icon             *string
	PrimaryGenre     *string
	Released         *int64
	Updated          *int64
	Developer        *string
	DeveloperID      *string
	DeveloperEmail   *string
	DeveloperWebsite *string
	Score            *float64
	Reviews          *int64
	Ratings          *int64
	Histogram        datatypes.JSON
}

// Columns maps the metadata onto the 'app' columns for an update.
func (m Metadata) Columns() map[string]any {
	var histogram any
	if len(m.Histogram) > 0 {
		histogram = m.Histogram
	}
	return map[string]any{
		"title":             m.Title,
		"url":               m.URL,
		"description":       m.Description,
		"min_installs":      m.MinInstalls,
		"max_installs":      m.MaxInstalls,
		"icon":              m.Icon,
		"primary_genre":     m.PrimaryGenre,
		"released":          m.Released,
		"updated":           m.Updated,
		"developer":         m.Developer,
		"developer_id":      m.DeveloperID,
		"developer_email":   m.DeveloperEmail,
		"developer_website": m.DeveloperWebsite,
		"score":             m.Score,
		"reviews":           m.Reviews,
		"ratings":           m.Ratings,
		"histogram":         histogram,
	}
}

// String returns a pointer to s, or nil when s is empty.
func String(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Int64 returns a pointer to v.
func Int64(v int64) *int64 {
	return &v
}

// Float64 returns a pointer to v.
func Float64(v float64) *float64 {
	return &v
}
