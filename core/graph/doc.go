// Package graph talks to the Microsoft identity platform and the Graph API.
//
// It covers the first two phases of an inventory run:
//
//   - TokenProvider exchanges tenant ID, client ID and client secret for a bearer token
//     with a single client-credentials form POST against
//     {authority}/{tenant}/oauth2/v2.0/token, scope https://graph.microsoft.com/.default.
//   - Client.ListMobileApps pages through deviceAppManagement/mobileApps, following
//     @odata.nextLink until the collection is exhausted, and returns every record in
//     API order.
//
// Neither operation retries. A non-2xx response is returned as *HTTPError and aborts the
// run. Missing credentials are reported by Config.Validate before any request is made.
package graph
