// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client and is used as an optional upload target for export
// artifacts, so that every run's CSV and JSON can be published to AWS S3 or a
// self-hosted MinIO instance next to the local output directory.
//
// # Client Interface
//
// The Client interface exposes only what the exporter needs, making it easy to
// mock storage interactions in unit tests (see core/storage/mocks).
//
//   - BucketExists: Verifies access to the target bucket.
//   - MakeBucket: Creates the bucket when missing (see EnsureBucket).
//   - PutObject: Uploads content (with size and options).
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	if err := storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region); err != nil {
//	    return err
//	}
package storage
