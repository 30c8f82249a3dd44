// Package persistence stores compact vectors in a self-describing,
// checksummed and optionally compressed container.
//
// # Container Layout
//
//	+--------+---------+-------------+-------+---------+-------------+----------+---------+
//	| magic  | version | compression | flags | rawSize | payloadSize | checksum | payload |
//	| u32    | u16     | u8          | u8    | u64     | u64         | u64      | ...     |
//	+--------+---------+-------------+-------+---------+-------------+----------+---------+
//
// All integers are little endian. The payload is the compactvec binary
// encoding, compressed with the codec named in the header. The checksum is
// xxhash64 over the first 24 header bytes followed by the payload, so a
// corrupt size field is caught before any buffer is sized from it.
//
// Codecs: LZ4 block (fast, the default), ZSTD (better ratio) and Snappy. A
// payload that does not shrink is stored uncompressed.
//
// # Destinations
//
//   - Encode / Decode: in-memory bytes
//   - SaveToFile / LoadFromFile: atomic temp-file + rename on local disk,
//     memory-mapped reads
//   - Save / Load: any blobstore.BlobStore (local, memory, S3, MinIO)
//   - SaveAll / LoadAll: concurrent batches against a blob store
package persistence
