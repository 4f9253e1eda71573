package models

import (
	"errors"
	"fmt"

	"gorm.io/datatypes"
)

// Platform identifies the app store an application is published in.
type Platform string

const (
	PlatformAndroid Platform = "android"
	PlatformIOS     Platform = "ios"
)

// IsValid reports whether the platform is one of the supported stores.
func (p Platform) IsValid() bool {
	switch p {
	case PlatformAndroid, PlatformIOS:
		return true
	default:
		return false
	}
}

// ErrInvalidApp is returned by Validate for records missing required identity fields.
var ErrInvalidApp = errors.New("invalid app record")

// App represents the 'app' table: one row per distinct application on a platform.
// Identity fields are required; every descriptive field stays NULL until enrichment.
type App struct {
	ID             uint     `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	IntuneID       string   `gorm:"column:intune_id;not null;uniqueIndex" json:"intuneId"`
	PlatformAppKey string   `gorm:"column:platform_app_key;not null;uniqueIndex" json:"platformAppKey"`
	Platform       Platform `gorm:"column:platform;not null;type:text" json:"platform"`
	AppID          string   `gorm:"column:app_id;not null" json:"appId"`
	DisplayName    *string  `gorm:"column:display_name" json:"displayName"`
	Publisher      *string  `gorm:"column:publisher" json:"publisher"`

	Title            *string        `gorm:"column:title" json:"title"`
	URL              *string        `gorm:"column:url" json:"url"`
	Description      *string        `gorm:"column:description" json:"description"`
	MinInstalls      *int64         `gorm:"column:min_installs" json:"minInstalls"`
	MaxInstalls      *int64         `gorm:"column:max_installs" json:"maxInstalls"`
	Icon             *string        `gorm:"column:icon" json:"icon"`
	PrimaryGenre     *string        `gorm:"column:primary_genre" json:"primaryGenre"`
	Released         *int64         `gorm:"column:released" json:"released"`
	Updated          *int64         `gorm:"column:updated" json:"updated"`
	Developer        *string        `gorm:"column:developer" json:"developer"`
	DeveloperID      *string        `gorm:"column:developer_id" json:"developerId"`
	DeveloperEmail   *string        `gorm:"column:developer_email" json:"developerEmail"`
	DeveloperWebsite *string        `gorm:"column:developer_website" json:"developerWebsite"`
	Score            *float64       `gorm:"column:score" json:"score"`
	Reviews          *int64         `gorm:"column:reviews" json:"reviews"`
	Ratings          *int64         `gorm:"column:ratings" json:"ratings"`
	Histogram        datatypes.JSON `gorm:"column:histogram" json:"histogram"`
}

// TableName overrides the table name.
func (App) TableName() string {
	return "app"
}

// Columns lists the table's columns in export order.
var Columns = []string{
	"id", "intune_id", "platform_app_key", "platform", "app_id", "display_name", "publisher",
	"title", "url", "description", "min_installs", "max_installs", "icon", "primary_genre",
	"released", "updated", "developer", "developer_id", "developer_email", "developer_website",
	"score", "reviews", "ratings", "histogram",
}

// BuildKey composes the cross-store key "{platform}-{storeId}".
func BuildKey(platform Platform, storeID string) string {
	return fmt.Sprintf("%s-%s", platform, storeID)
}

// Validate checks the required identity fields at the ingestion boundary.
func (a *App) Validate() error {
	if a.IntuneID == "" {
		return fmt.Errorf("%w: empty inventory id", ErrInvalidApp)
	}
	if !a.Platform.IsValid() {
		return fmt.Errorf("%w: unsupported platform %q", ErrInvalidApp, a.Platform)
	}
	if a.AppID == "" {
		return fmt.Errorf("%w: empty store id", ErrInvalidApp)
	}
	if a.PlatformAppKey != BuildKey(a.Platform, a.AppID) {
		return fmt.Errorf("%w: key %q does not match %s/%s", ErrInvalidApp, a.PlatformAppKey, a.Platform, a.AppID)
	}
	return nil
}

// IsEnriched reports whether enrichment has run for the record, successfully or not.
func (a *App) IsEnriched() bool {
	return a.Title != nil
}

// Values returns the row's fields in the order of Columns.
func (a *App) Values() []any {
	return []any{
		a.ID, a.IntuneID, a.PlatformAppKey, a.Platform, a.AppID, a.DisplayName, a.Publisher,
		a.Title, a.URL, a.Description, a.MinInstalls, a.MaxInstalls, a.Icon, a.PrimaryGenre,
		a.Released, a.Updated, a.Developer, a.DeveloperID, a.DeveloperEmail, a.DeveloperWebsite,
		a.Score, a.Reviews, a.Ratings, a.Histogram,
	}
}
