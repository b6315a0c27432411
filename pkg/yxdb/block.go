package yxdb

import (
	"fmt"
	"io"

	"github.com/yxdb-io/yxdb/internal/wire"
)

// blockReader streams the logical block payload: the concatenation of every
// miniblock payload inside the block region. Miniblocks are pulled lazily,
// so at most one decoded miniblock is resident at a time.
type blockReader struct {
	r         *wire.Reader
	remaining int64 // encoded bytes left in the block region

	buf []byte // decoded payload not yet handed out
	off int
}

func newBlockReader(r *wire.Reader, regionSize int64) *blockReader {
	return &blockReader{r: r, remaining: regionSize}
}

func (b *blockReader) buffered() int {
	return len(b.buf) - b.off
}

// fill decodes the next miniblock into the buffer. Returns io.EOF once the
// block region is exhausted.
func (b *blockReader) fill() error {
	for b.buffered() == 0 {
		if b.remaining == 0 {
			return io.EOF
		}
		before := b.r.Consumed()
		payload, err := readMiniblock(b.r)
		if err != nil {
			return err
		}
		consumed := b.r.Consumed() - before
		if consumed > b.remaining {
			return fmt.Errorf("block stream: miniblock ran %d bytes past the region end", consumed-b.remaining)
		}
		b.remaining -= consumed
		b.buf = payload
		b.off = 0
	}
	return nil
}

// take returns the next n payload bytes, reading across miniblock
// boundaries as needed. Returns io.EOF only on a clean boundary with zero
// bytes delivered; running dry mid-read is an unexpected end.
func (b *blockReader) take(n int) ([]byte, error) {
	if err := b.fill(); err != nil {
		return nil, err
	}

	// Fast path: served out of the current miniblock without copying.
	if b.buffered() >= n {
		out := b.buf[b.off : b.off+n]
		b.off += n
		return out, nil
	}

	out := make([]byte, 0, n)
	for len(out) < n {
		if err := b.fill(); err != nil {
			if err == io.EOF {
				return nil, io.ErrUnexpectedEOF
			}
			return nil, err
		}
		take := n - len(out)
		if avail := b.buffered(); take > avail {
			take = avail
		}
		out = append(out, b.buf[b.off:b.off+take]...)
		b.off += take
	}
	return out, nil
}

// drain discards the rest of the block region without decompressing it.
func (b *blockReader) drain() error {
	b.buf = nil
	b.off = 0
	if b.remaining == 0 {
		return nil
	}
	_, err := b.r.Bytes(int(b.remaining))
	b.remaining = 0
	return err
}

// writeBlockPayload splits a logical payload into miniblocks. Split points
// are not observable: block equality is over the concatenated payload. An
// empty payload still emits exactly one (empty) miniblock.
func writeBlockPayload(w *wire.Writer, payload []byte) error {
	if len(payload) == 0 {
		return writeMiniblock(w, nil)
	}
	for len(payload) > 0 {
		n := miniblockThreshold
		if len(payload) < n {
			n = len(payload)
		}
		if err := writeMiniblock(w, payload[:n]); err != nil {
			return err
		}
		payload = payload[n:]
	}
	return nil
}
