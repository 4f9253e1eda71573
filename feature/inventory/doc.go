// Package inventory turns Graph mobile app records into de-duplicated Application Records.
//
// # Resolution
//
// Resolve derives the platform from the record's @odata.type and the store identifier
// from its packageId or store URL:
//
//	https://apps.apple.com/us/app/facebook/id284882215?uo=4            -> ios-284882215
//	https://play.google.com/store/apps/details?id=com.einnovation.temu -> android-com.einnovation.temu
//
// Records of any other platform, or whose URL yields no identifier, are skipped.
//
// # Persistence
//
// Store wraps the gorm connection. UpsertNew inserts a row only when neither its key nor
// its inventory ID exists yet, so ingesting the same inventory again changes nothing.
// Metadata columns are written later by the enrichment pass.
package inventory
