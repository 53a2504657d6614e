// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client so datasets can be read from and written to AWS S3 or a
// self-hosted MinIO instance. The Client interface keeps the surface small enough to
// mock with testify (see core/storage/mocks).
//
// # Helpers
//
//   - EnsureBucket: creates the target bucket before the first upload.
//   - ListKeys: lists dataset objects under a prefix, filtered by extension.
//   - IsNotFound: recognizes missing bucket/object responses.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	keys, err := storage.ListKeys(ctx, client, cfg.Storage.Bucket, "exports/", ".csv")
package storage
