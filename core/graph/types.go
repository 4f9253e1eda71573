package graph

import "fmt"

// TokenResponse is the identity platform's token payload.
type TokenResponse struct {
	TokenType   string `json:"token_type"`
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// MobileApp is one inventory record from deviceAppManagement/mobileApps.
// Only the fields used for identification are decoded.
type MobileApp struct {
	ID          string `json:"id"`
	ODataType   string `json:"@odata.type"`
	DisplayName string `json:"displayName"`
	Publisher   string `json:"publisher"`
	AppStoreURL string `json:"appStoreUrl"`
	PackageID   string `json:"packageId"`
	BundleID    string `json:"bundleId"`
}

// MobileAppPage is one page of the mobileApps collection.
type MobileAppPage struct {
	Value    []MobileApp `json:"value"`
	NextLink string      `json:"@odata.nextLink"`
}

// HTTPError represents a non-success response from the identity platform or Graph.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// IsUnauthorized returns true when the credentials or token were rejected.
func (e *HTTPError) IsUnauthorized() bool {
	return e.StatusCode == 401 || e.StatusCode == 403
}
