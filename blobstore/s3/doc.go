// Package s3 provides an S3 implementation of the blobstore.BlobStore interface.
//
// # Usage
//
//	store, err := s3.NewStoreFromConfig(ctx, "my-bucket", "vectors/")
//	err = persistence.Save(ctx, store, "postings.cv", cv)
//
// Or with an existing client:
//
//	store := s3.NewStore(s3sdk.NewFromConfig(cfg), "my-bucket", "vectors/")
//
// # Features
//
//   - Multipart uploads for large blobs via the SDK upload manager
//   - CRC32C integrity validation on single-part puts
//   - Automatic pagination for listing
//   - Configurable prefix for multi-tenant isolation
package s3
