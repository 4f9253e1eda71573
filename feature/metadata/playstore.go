package metadata

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"app-inventory/core/utils"
	"app-inventory/feature/inventory/models"

	"github.com/andybalholm/cascadia"
	"github.com/tidwall/gjson"
	"golang.org/x/net/html"
	"gorm.io/datatypes"
)

var (
	jsonLDSelector    = cascadia.MustCompile(`script[type="application/ld+json"]`)
	metaSelector      = cascadia.MustCompile(`meta[content]`)
	ariaLabelSelector = cascadia.MustCompile(`[aria-label]`)
)

var (
	// "100M+ Downloads", "10,000,000+ downloads"
	downloadsPattern = regexp.MustCompile(`(?i)(\d[\d,.]*[KMB]?)\+\s*downloads`)
	// "5 stars, 1,234,567 ratings"
	starCountPattern = regexp.MustCompile(`(?i)^\s*([1-5])\s+stars?\b\D*(\d[\d,.]*[KMB]?)`)
)

// PlayStoreProvider reads listings from the Google Play details page.
// Fields come from the page's schema.org SoftwareApplication block, with the
// Open Graph meta tags as fallback.
type PlayStoreProvider struct {
	baseURL  string
	country  string
	language string
	client   *http.Client
}

// NewPlayStoreProvider creates a Google Play provider.
func NewPlayStoreProvider(cfg Config, client *http.Client) *PlayStoreProvider {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout()}
	}
	return &PlayStoreProvider{
		baseURL:  strings.TrimSuffix(cfg.PlayStoreURL, "/"),
		country:  cfg.Country,
		language: cfg.Language,
		client:   client,
	}
}

func (p *PlayStoreProvider) Name() string {
	return "play-store"
}

// Lookup fetches /store/apps/details?id={appID}. The id is the package name.
func (p *PlayStoreProvider) Lookup(ctx context.Context, appID string) (*models.Metadata, error) {
	query := url.Values{}
	query.Set("id", appID)
	if p.language != "" {
		query.Set("hl", p.language)
	}
	if p.country != "" {
		query.Set("gl", p.country)
	}

	body, err := get(ctx, p.client, p.Name(), p.baseURL+"/store/apps/details?"+query.Encode())
	if err != nil {
		return nil, err
	}

	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse play-store page for %s: %w", appID, err)
	}
	return parsePlayStorePage(doc, appID)
}

func parsePlayStorePage(doc *html.Node, appID string) (*models.Metadata, error) {
	app, found := findSoftwareApplication(doc)
	meta := metaContent(doc)

	if !found && meta["og:title"] == "" {
		return nil, fmt.Errorf("play-store page for %s has no listing data", appID)
	}

	var m models.Metadata
	if found {
		m = models.Metadata{
			Title:            stringField(app, "name"),
			URL:              stringField(app, "url"),
			Description:      stringField(app, "description"),
			Icon:             stringField(app, "image.url", "image"),
			PrimaryGenre:     stringField(app, "applicationCategory", "genre"),
			Released:         timestampField(app, "datePublished"),
			Updated:          timestampField(app, "dateModified"),
			Developer:        stringField(app, "author.name"),
			DeveloperEmail:   stringField(app, "author.email"),
			DeveloperWebsite: stringField(app, "author.url"),
			Score:            floatField(app, "aggregateRating.ratingValue"),
			Reviews:          intField(app, "aggregateRating.reviewCount"),
			Ratings:          intField(app, "aggregateRating.ratingCount"),
		}
	}

	if m.Title == nil {
		m.Title = models.String(strings.TrimSuffix(meta["og:title"], " - Apps on Google Play"))
	}
	if m.Description == nil {
		m.Description = models.String(firstNonEmpty(meta["og:description"], meta["description"]))
	}
	if m.Icon == nil {
		m.Icon = models.String(meta["og:image"])
	}
	if m.URL == nil {
		m.URL = models.String(meta["og:url"])
	}

	// Play publishes only the lower bound of the install range
	m.MinInstalls = installCount(doc)
	m.Histogram = ratingHistogram(doc)
	return &m, nil
}

// installCount reads the "Downloads" figure shown on the listing.
func installCount(doc *html.Node) *int64 {
	match := downloadsPattern.FindStringSubmatch(visibleText(doc))
	if match == nil {
		return nil
	}
	n := utils.ToInt64(match[1])
	if n <= 0 {
		return nil
	}
	return &n
}

// ratingHistogram collects the per-star counts from the rating bars' labels
// into {"1": n, ..., "5": n}. Stars without a bar are omitted.
func ratingHistogram(doc *html.Node) datatypes.JSON {
	counts := make(map[string]int64)
	for _, node := range ariaLabelSelector.MatchAll(doc) {
		for _, attr := range node.Attr {
			if attr.Key != "aria-label" {
				continue
			}
			if match := starCountPattern.FindStringSubmatch(attr.Val); match != nil {
				if _, seen := counts[match[1]]; !seen {
					counts[match[1]] = utils.ToInt64(match[2])
				}
			}
		}
	}
	if len(counts) == 0 {
		return nil
	}
	raw, err := json.Marshal(counts)
	if err != nil {
		return nil
	}
	return datatypes.JSON(raw)
}

// visibleText joins the page's text nodes, skipping scripts and styles.
func visibleText(doc *html.Node) string {
	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				sb.WriteString(text)
				sb.WriteByte(' ')
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return sb.String()
}

// findSoftwareApplication returns the first JSON-LD block typed SoftwareApplication.
func findSoftwareApplication(doc *html.Node) (gjson.Result, bool) {
	for _, node := range jsonLDSelector.MatchAll(doc) {
		if node.FirstChild == nil {
			continue
		}
		raw := node.FirstChild.Data
		if !gjson.Valid(raw) {
			continue
		}
		parsed := gjson.Parse(raw)
		candidates := []gjson.Result{parsed}
		if parsed.IsArray() {
			candidates = parsed.Array()
		}
		for _, c := range candidates {
			if strings.EqualFold(c.Get("@type").String(), "SoftwareApplication") {
				return c, true
			}
		}
	}
	return gjson.Result{}, false
}

// metaContent indexes meta tags by their property or name attribute.
func metaContent(doc *html.Node) map[string]string {
	out := make(map[string]string)
	for _, node := range metaSelector.MatchAll(doc) {
		var key, content string
		for _, attr := range node.Attr {
			switch attr.Key {
			case "property", "name", "itemprop":
				if key == "" {
					key = attr.Val
				}
			case "content":
				content = attr.Val
			}
		}
		if key != "" && out[key] == "" {
			out[key] = strings.TrimSpace(content)
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
