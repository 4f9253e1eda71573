// Package pipeline orchestrates one inventory run.
//
// Phases run sequentially: request a token, fetch every inventory page, persist new
// records, optionally enrich records without a title, then export the table. A failing
// phase ends the run; per-record resolution and enrichment errors do not.
//
//	p := pipeline.New(tokens, client, ingester, exporter, "intune_apps", logger,
//	    pipeline.WithEnricher(enricher))
//	summary, err := p.Run(ctx)
package pipeline
