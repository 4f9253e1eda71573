package metadata

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"app-inventory/feature/inventory/models"

	"github.com/tidwall/gjson"
)

// AppStoreProvider reads listings from the Apple lookup API.
type AppStoreProvider struct {
	baseURL string
	country string
	client  *http.Client
}

// NewAppStoreProvider creates an App Store provider.
func NewAppStoreProvider(cfg Config, client *http.Client) *AppStoreProvider {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout()}
	}
	return &AppStoreProvider{
		baseURL: strings.TrimSuffix(cfg.AppStoreURL, "/"),
		country: cfg.Country,
		client:  client,
	}
}

func (p *AppStoreProvider) Name() string {
	return "app-store"
}

// Lookup queries /lookup?id={appID}. The id is the numeric track id.
func (p *AppStoreProvider) Lookup(ctx context.Context, appID string) (*models.Metadata, error) {
	query := url.Values{}
	query.Set("id", appID)
	if p.country != "" {
		query.Set("country", p.country)
	}

	body, err := get(ctx, p.client, p.Name(), p.baseURL+"/lookup?"+query.Encode())
	if err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("app-store returned invalid JSON for %s", appID)
	}

	doc := gjson.ParseBytes(body)
	if doc.Get("resultCount").Int() == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, appID)
	}
	return parseAppStoreResult(doc.Get("results.0")), nil
}

func parseAppStoreResult(r gjson.Result) *models.Metadata {
	return &models.Metadata{
		Title:            stringField(r, "trackName"),
		URL:              stringField(r, "trackViewUrl"),
		Description:      stringField(r, "description"),
		Icon:             stringField(r, "artworkUrl512", "artworkUrl100", "artworkUrl60"),
		PrimaryGenre:     stringField(r, "primaryGenreName"),
		Released:         timestampField(r, "releaseDate"),
		Updated:          timestampField(r, "currentVersionReleaseDate"),
		Developer:        stringField(r, "sellerName", "artistName"),
		DeveloperID:      stringField(r, "artistId"),
		DeveloperWebsite: stringField(r, "sellerUrl"),
		Score:            floatField(r, "averageUserRating"),
		Reviews:          intField(r, "userRatingCount"),
		Ratings:          intField(r, "userRatingCount"),
	}
}
