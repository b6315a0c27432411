// Package yxdb reads and writes YXDB table files: a 512-byte header page,
// an XML schema serialized as UTF-16LE, an LZF-compressed miniblock stream
// carrying the records, and a trailing block index.
//
// The file layout, offsets in bytes from the start:
//
//	0x000  description          64 bytes, UTF-8, zero-padded
//	0x040  fileId               u32le
//	0x044  creationDate         u32le (POSIX seconds)
//	0x048  flags1               u32le
//	0x04C  flags2               u32le
//	0x050  metaInfoLength       u32le (UTF-16 code units)
//	0x054  mystery              u32le (preserved verbatim)
//	0x058  spatialIndexPos      u64le
//	0x060  recordBlockIndexPos  u64le
//	0x068  numRecords           u64le
//	0x070  compressionVersion   u32le
//	0x074  reservedSpace        bytes through offset 0x200
//	0x200  schema, UTF-16LE, ends with '\n' '\0'
//	…      miniblocks until recordBlockIndexPos
//	recordBlockIndexPos: u32le count, then count × u64le offsets
package yxdb

// FileID values published in the header. The spatial variant signals that a
// legacy spatial index region exists; only its offset pointer is preserved.
const (
	FileIDSpatialIndex = 0x00440205
	FileID             = 0x00440204
)

// Format invariants. These are not tunable.
const (
	headerPageSize     = 512
	recordsPerBlock    = 65536
	miniblockThreshold = 65536
	lzfBufferSize      = 262144

	spatialIndexRecordBlockSize = 32

	// Bytes between the last fixed header field and the end of the page.
	reservedSpaceSize = headerPageSize - 0x74
)
