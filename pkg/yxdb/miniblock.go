package yxdb

import (
	"fmt"

	lzf "github.com/zhuyie/golzf"

	"github.com/yxdb-io/yxdb/internal/wire"
)

// Miniblock framing: a u32le length prefix whose bit 31 means "stored raw".
// The flag polarity is inverted: bit clear means the payload is LZF
// compressed. The writer only ever sets the bit on the uncompressed path,
// so sizes with bit 31 clear round-trip unambiguously.
const (
	rawFlag       = 0x80000000
	maxPayloadLen = 0x7FFFFFFF
)

// readMiniblock decodes one miniblock and returns its payload.
func readMiniblock(r *wire.Reader) ([]byte, error) {
	writtenSize, err := r.Uint32()
	if err != nil {
		return nil, fmt.Errorf("miniblock prefix: %w", err)
	}

	payloadLen := int(writtenSize & maxPayloadLen)
	compressed := writtenSize&rawFlag == 0

	payload, err := r.Bytes(payloadLen)
	if err != nil {
		return nil, fmt.Errorf("miniblock payload: %w", err)
	}
	if !compressed {
		return payload, nil
	}

	out := make([]byte, lzfBufferSize)
	n, err := lzf.Decompress(payload, out)
	if err != nil {
		return nil, fmt.Errorf("%w (%v)", ErrDecompressOverflow, err)
	}
	return out[:n], nil
}

// writeMiniblock encodes one miniblock. Compression is kept only when it
// saves at least one byte; otherwise the payload is stored raw with bit 31
// set.
func writeMiniblock(w *wire.Writer, payload []byte) error {
	if len(payload) > maxPayloadLen {
		return fmt.Errorf("%w: %d bytes", ErrMiniblockTooLarge, len(payload))
	}

	if len(payload) > 1 {
		out := make([]byte, len(payload)-1)
		if n, err := lzf.Compress(payload, out); err == nil && n > 0 {
			w.PutUint32(uint32(n))
			w.PutBytes(out[:n])
			return nil
		}
	}

	w.PutUint32(uint32(len(payload)) | rawFlag)
	w.PutBytes(payload)
	return nil
}
