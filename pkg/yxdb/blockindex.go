package yxdb

import (
	"encoding/binary"
	"fmt"

	"github.com/yxdb-io/yxdb/internal/wire"
)

// BlockIndex is the trailing dense array of block offsets: a u32le count
// followed by that many u64le file offsets, one per emitted block.
type BlockIndex struct {
	Offsets []uint64
}

func (bi *BlockIndex) encode(w *wire.Writer) {
	w.PutUint32(uint32(len(bi.Offsets)))
	for _, off := range bi.Offsets {
		w.PutUint64(off)
	}
}

func decodeBlockIndex(raw []byte) (*BlockIndex, error) {
	if len(raw) < 4 {
		return nil, fmt.Errorf("block index: need 4 bytes for count, got %d", len(raw))
	}
	count := int(binary.LittleEndian.Uint32(raw))
	if want := 4 + count*8; len(raw) != want {
		return nil, fmt.Errorf("block index: count %d needs %d bytes, got %d", count, want, len(raw))
	}

	bi := &BlockIndex{Offsets: make([]uint64, count)}
	for i := range bi.Offsets {
		bi.Offsets[i] = binary.LittleEndian.Uint64(raw[4+i*8:])
	}
	return bi, nil
}
