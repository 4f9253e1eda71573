// Package metadata enriches stored applications with public app-store listings.
//
// # Providers
//
//   - AppStoreProvider queries the Apple lookup API (/lookup?id=...) for iOS apps keyed
//     by their numeric store id.
//   - PlayStoreProvider fetches the Google Play details page for Android apps keyed by
//     package name and reads its schema.org SoftwareApplication block.
//
// Both map their store-specific genre field onto the single primary genre column and
// normalize release/update dates to epoch seconds, whether the store returned an ISO
// string or epoch milliseconds.
//
// # Enricher
//
// The Enricher walks every record without a title sequentially. After each lookup
// finishes, successful or not, it pauses for a fixed interval (5s by default), so a
// pass over n records takes at least n intervals.
//
// A failed lookup writes the error text into the title column. The record then counts
// as enriched and later runs skip it; clearing the title makes it eligible again.
package metadata
