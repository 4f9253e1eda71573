package graph

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrMissingCredentials is returned when a required credential is not configured.
var ErrMissingCredentials = errors.New("missing required credentials")

// Config holds configuration for the Microsoft identity platform and Graph API.
type Config struct {
	// TenantID is the Entra ID tenant (TENANT_ID or --tenantId).
	TenantID string `mapstructure:"tenant_id" default:""`
	// ClientID is the app registration's client ID (CLIENT_ID or --clientId).
	ClientID string `mapstructure:"client_id" default:""`
	// ClientSecret is the app registration's secret (CLIENT_SECRET only).
	ClientSecret string `mapstructure:"client_secret" default:""`
	// AuthorityURL is the identity provider host.
	AuthorityURL string `mapstructure:"authority_url" default:"https://login.microsoftonline.com"`
	// BaseURL is the Graph API root the inventory is read from.
	BaseURL string `mapstructure:"base_url" default:"https://graph.microsoft.com/beta"`
	// Scope is the resource scope requested with the client-credentials grant.
	Scope string `mapstructure:"scope" default:"https://graph.microsoft.com/.default"`
	// TimeoutSeconds bounds every individual HTTP request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

// Validate reports every missing credential in one error.
func (c Config) Validate() error {
	var missing []string
	if c.TenantID == "" {
		missing = append(missing, "tenant ID (--tenantId or TENANT_ID)")
	}
	if c.ClientID == "" {
		missing = append(missing, "client ID (--clientId or CLIENT_ID)")
	}
	if c.ClientSecret == "" {
		missing = append(missing, "client secret (CLIENT_SECRET)")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingCredentials, strings.Join(missing, ", "))
	}
	return nil
}

// Timeout returns the per-request timeout, defaulting to 30s.
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// TokenURL returns the tenant's OAuth 2.0 v2 token endpoint.
func (c Config) TokenURL() string {
	return fmt.Sprintf("%s/%s/oauth2/v2.0/token", strings.TrimSuffix(c.AuthorityURL, "/"), c.TenantID)
}

// MobileAppsURL returns the Intune mobile app collection endpoint.
func (c Config) MobileAppsURL() string {
	return strings.TrimSuffix(c.BaseURL, "/") + "/deviceAppManagement/mobileApps"
}
