// Package models defines the Application Record persisted in the 'app' table.
//
// App carries the identity fields filled at ingestion (inventory ID, platform, store
// identifier and the derived platformAppKey) and the nullable descriptive fields that
// enrichment fills later. Metadata is the descriptive field set on its own, as returned
// by a store provider and written back with a single update.
package models
