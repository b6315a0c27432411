package yxdb

import (
	"fmt"
	"io"
	"time"

	"github.com/zerodha/logf"

	"github.com/yxdb-io/yxdb/internal/wire"
)

// Writer encodes a table file. The header carries pointers into regions
// written after it, so the schema and block stream are staged in memory and
// the whole file is flushed to the sink at Close.
type Writer struct {
	lo   logf.Logger
	opts *Options

	dst        io.Writer
	recordInfo *RecordInfo
	schemaRaw  []byte

	cur            *wire.Writer // payload of the block being filled
	tail           *wire.Writer // encoded block stream
	index          BlockIndex
	scratch        []byte // per-field encode buffer, sized to the widest field
	numRecords     uint64
	recordsInBlock int
	closed         bool

	syncer interface {
		Sync() error
		Close() error
	}
}

// NewWriter prepares a table file writer for the given schema. Nothing is
// written to dst until Close.
func NewWriter(dst io.Writer, ri *RecordInfo, opts ...Option) (*Writer, error) {
	o, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}
	if ri == nil || len(ri.Fields) == 0 {
		return nil, fmt.Errorf("schema has no fields")
	}

	schemaRaw, err := ri.encode()
	if err != nil {
		return nil, err
	}

	widest := 0
	for _, f := range ri.Fields {
		if w := f.fixedSize(); w > widest {
			widest = w
		}
	}

	return &Writer{
		lo:         initLogger(o.debug),
		opts:       o,
		dst:        dst,
		recordInfo: ri,
		schemaRaw:  schemaRaw,
		cur:        wire.NewWriter(),
		tail:       wire.NewWriter(),
		scratch:    make([]byte, widest),
	}, nil
}

// Write appends one record to the stream. Record order is preserved in the
// file. Schemas declaring variable-width fields are refused before any
// bytes are staged.
func (w *Writer) Write(rec Record) error {
	if w.closed {
		return fmt.Errorf("write on closed writer")
	}
	if err := encodeRecord(w.cur, w.recordInfo, rec, w.scratch); err != nil {
		return err
	}
	w.numRecords++
	w.recordsInBlock++

	if w.recordsInBlock == recordsPerBlock {
		return w.flushBlock()
	}
	return nil
}

// flushBlock stamps the current block's file offset into the index and
// encodes its payload into the staged block stream.
func (w *Writer) flushBlock() error {
	offset := uint64(headerPageSize + len(w.schemaRaw) + w.tail.Len())
	w.index.Offsets = append(w.index.Offsets, offset)

	if err := writeBlockPayload(w.tail, w.cur.Bytes()); err != nil {
		return err
	}
	w.lo.Debug("flushed block", "records", w.recordsInBlock, "offset", offset)

	w.cur = wire.NewWriter()
	w.recordsInBlock = 0
	return nil
}

// Close flushes the final block, renders the header with the now-known
// pointers and writes the whole file to the sink.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	// An empty record stream still carries one empty block.
	if w.recordsInBlock > 0 || w.numRecords == 0 {
		if err := w.flushBlock(); err != nil {
			return err
		}
	}

	creationDate := w.opts.creationDate
	if creationDate == 0 {
		creationDate = uint32(time.Now().Unix())
	}

	header := &Header{
		Description:         w.opts.description,
		FileID:              w.opts.fileID,
		CreationDate:        creationDate,
		Flags1:              w.opts.flags1,
		Flags2:              w.opts.flags2,
		MetaInfoLength:      uint32(len(w.schemaRaw) / 2),
		RecordBlockIndexPos: uint64(headerPageSize + len(w.schemaRaw) + w.tail.Len()),
		NumRecords:          w.numRecords,
		CompressionVersion:  w.opts.compressionVersion,
	}

	out := wire.NewWriter()
	header.encode(out)
	out.PutBytes(w.schemaRaw)
	out.PutBytes(w.tail.Bytes())
	w.index.encode(out)

	if _, err := out.WriteTo(w.dst); err != nil {
		return fmt.Errorf("writing table file: %w", err)
	}
	w.lo.Debug("wrote table file", "records", w.numRecords, "blocks", len(w.index.Offsets))

	if w.syncer != nil {
		if err := w.syncer.Sync(); err != nil {
			return fmt.Errorf("syncing table file: %w", err)
		}
		return w.syncer.Close()
	}
	return nil
}
