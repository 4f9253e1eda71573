package inventory

import (
	"errors"
	"fmt"
	"strings"

	"app-inventory/core/graph"
	"app-inventory/feature/inventory/models"
)

const (
	// AppStorePrefix is stripped from iOS store URLs before the id segment is read.
	AppStorePrefix = "https://apps.apple.com/"
	// PlayStorePrefix is stripped from Android store URLs up to the package id parameter.
	PlayStorePrefix = "https://play.google.com/store/apps/details?id="
)

var (
	// ErrUnsupportedPlatform marks inventory records that are neither Android nor iOS apps.
	ErrUnsupportedPlatform = errors.New("unsupported platform")
	// ErrUnresolvedStoreID marks records whose store identifier could not be derived.
	ErrUnresolvedStoreID = errors.New("store identifier could not be resolved")
)

// DetectPlatform maps an @odata.type discriminator to a platform.
func DetectPlatform(odataType string) (models.Platform, error) {
	t := strings.ToLower(odataType)
	switch {
	case strings.Contains(t, "android"):
		return models.PlatformAndroid, nil
	case strings.Contains(t, "ios"):
		return models.PlatformIOS, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedPlatform, odataType)
	}
}

// ParseAppStoreID extracts the numeric id from an App Store URL.
// "https://apps.apple.com/us/app/facebook/id284882215?uo=4" yields "284882215".
func ParseAppStoreID(storeURL string) (string, bool) {
	if !strings.HasPrefix(storeURL, AppStorePrefix) {
		return "", false
	}
	path := strings.TrimPrefix(storeURL, AppStorePrefix)
	path, _, _ = strings.Cut(path, "?")
	segments := strings.Split(path, "/")
	id := strings.TrimPrefix(segments[len(segments)-1], "id")
	if id == "" {
		return "", false
	}
	return id, true
}

// ParsePlayStoreID extracts the package name from a Play Store URL.
// "https://play.google.com/store/apps/details?id=com.einnovation.temu&hl=en_US" yields "com.einnovation.temu".
func ParsePlayStoreID(storeURL string) (string, bool) {
	if !strings.HasPrefix(storeURL, PlayStorePrefix) {
		return "", false
	}
	id, _, _ := strings.Cut(strings.TrimPrefix(storeURL, PlayStorePrefix), "&")
	if id == "" {
		return "", false
	}
	return id, true
}

// Resolve derives the Application Record identity for one inventory record.
// A package id on the record wins over the store URL.
func Resolve(rec graph.MobileApp) (*models.App, error) {
	platform, err := DetectPlatform(rec.ODataType)
	if err != nil {
		return nil, err
	}

	storeID := rec.PackageID
	if storeID == "" {
		var ok bool
		switch platform {
		case models.PlatformIOS:
			storeID, ok = ParseAppStoreID(rec.AppStoreURL)
		case models.PlatformAndroid:
			storeID, ok = ParsePlayStoreID(rec.AppStoreURL)
		}
		if !ok {
			return nil, fmt.Errorf("%w: %s app %s has store url %q", ErrUnresolvedStoreID, platform, rec.ID, rec.AppStoreURL)
		}
	}

	app := &models.App{
		IntuneID:       rec.ID,
		PlatformAppKey: models.BuildKey(platform, storeID),
		Platform:       platform,
		AppID:          storeID,
		DisplayName:    models.String(rec.DisplayName),
		Publisher:      models.String(rec.Publisher),
	}
	if err := app.Validate(); err != nil {
		return nil, err
	}
	return app, nil
}
