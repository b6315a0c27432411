package yxdb

import (
	"strings"

	"github.com/yxdb-io/yxdb/internal/wire"
)

// Header is the fixed 512-byte page at the start of every table file.
// Mystery and ReservedSpace have unknown semantics and round-trip verbatim.
type Header struct {
	Description         string // At most 64 bytes of UTF-8; longer is truncated.
	FileID              uint32
	CreationDate        uint32 // POSIX seconds, truncated to 32 bits.
	Flags1              uint32
	Flags2              uint32
	MetaInfoLength      uint32 // Length of the schema region in UTF-16 code units.
	Mystery             uint32
	SpatialIndexPos     uint64
	RecordBlockIndexPos uint64
	NumRecords          uint64
	CompressionVersion  uint32
	ReservedSpace       []byte // Remainder of the page, preserved as read.
}

// encode renders the header page. Output is exactly headerPageSize bytes.
func (h *Header) encode(w *wire.Writer) {
	desc := make([]byte, 64)
	copy(desc, h.Description)
	w.PutBytes(desc)

	w.PutUint32(h.FileID)
	w.PutUint32(h.CreationDate)
	w.PutUint32(h.Flags1)
	w.PutUint32(h.Flags2)
	w.PutUint32(h.MetaInfoLength)
	w.PutUint32(h.Mystery)
	w.PutUint64(h.SpatialIndexPos)
	w.PutUint64(h.RecordBlockIndexPos)
	w.PutUint64(h.NumRecords)
	w.PutUint32(h.CompressionVersion)

	reserved := make([]byte, reservedSpaceSize)
	copy(reserved, h.ReservedSpace)
	w.PutBytes(reserved)
}

// decodeHeader parses one header page from an isolated 512-byte window.
func decodeHeader(r *wire.Reader) (*Header, error) {
	h := &Header{}

	desc, err := r.Bytes(64)
	if err != nil {
		return nil, err
	}
	h.Description = strings.TrimRight(string(desc), "\x00")

	for _, dst := range []*uint32{&h.FileID, &h.CreationDate, &h.Flags1, &h.Flags2, &h.MetaInfoLength, &h.Mystery} {
		if *dst, err = r.Uint32(); err != nil {
			return nil, err
		}
	}
	for _, dst := range []*uint64{&h.SpatialIndexPos, &h.RecordBlockIndexPos, &h.NumRecords} {
		if *dst, err = r.Uint64(); err != nil {
			return nil, err
		}
	}
	if h.CompressionVersion, err = r.Uint32(); err != nil {
		return nil, err
	}
	if h.ReservedSpace, err = r.Bytes(reservedSpaceSize); err != nil {
		return nil, err
	}
	return h, nil
}
