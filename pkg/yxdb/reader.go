package yxdb

import (
	"fmt"
	"io"

	"github.com/zerodha/logf"

	"github.com/yxdb-io/yxdb/internal/wire"
)

// Reader decodes a table file from a sequential stream. Construction parses
// the header and schema; records are then pulled one at a time with Next,
// holding at most one decoded miniblock in memory. After the record stream
// drains, BlockIndex reads the trailer.
type Reader struct {
	lo   logf.Logger
	opts *Options

	r          *wire.Reader
	header     *Header
	recordInfo *RecordInfo
	blocks     *blockReader

	index  *BlockIndex
	closer io.Closer
}

// NewReader reads the header and schema regions from src and prepares the
// record stream.
func NewReader(src io.Reader, opts ...Option) (*Reader, error) {
	o, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}

	rd := &Reader{
		lo:   initLogger(o.debug),
		opts: o,
		r:    wire.NewReader(src),
	}

	err = rd.r.Isolate(headerPageSize, "header", func(sub *wire.Reader) error {
		rd.header, err = decodeHeader(sub)
		return err
	})
	if err != nil {
		return nil, err
	}
	rd.lo.Debug("decoded header", "fileId", rd.header.FileID, "numRecords", rd.header.NumRecords)

	metaBytes := int64(rd.header.MetaInfoLength) * 2
	err = rd.r.Isolate(metaBytes, "metadata", func(sub *wire.Reader) error {
		raw, err := sub.Rest()
		if err != nil {
			return err
		}
		rd.recordInfo, err = decodeRecordInfo(raw)
		return err
	})
	if err != nil {
		return nil, err
	}
	if len(rd.recordInfo.Fields) == 0 {
		return nil, fmt.Errorf("schema has no fields")
	}
	rd.lo.Debug("decoded schema", "fields", len(rd.recordInfo.Fields))

	blockEnd := int64(rd.header.RecordBlockIndexPos)
	blockStart := int64(headerPageSize) + metaBytes
	if blockEnd < blockStart {
		return nil, fmt.Errorf("record block index position %d is inside the metadata region", blockEnd)
	}
	rd.blocks = newBlockReader(rd.r, blockEnd-blockStart)

	return rd, nil
}

// Header returns the decoded header page. NumRecords is advisory; the
// authoritative count is how many records Next yields.
func (rd *Reader) Header() *Header {
	return rd.header
}

// RecordInfo returns the decoded schema.
func (rd *Reader) RecordInfo() *RecordInfo {
	return rd.recordInfo
}

// Next returns the next record, or io.EOF once the block stream is
// exhausted on a clean record boundary. A partial trailing record is a
// format error.
func (rd *Reader) Next() (Record, error) {
	return decodeRecord(rd.blocks, rd.recordInfo)
}

// Records collects the remaining record stream into memory. This is the
// slow path: prefer iterating with Next.
func (rd *Reader) Records() ([]Record, error) {
	var records []Record
	for {
		rec, err := rd.Next()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
}

// BlockIndex reads the trailing index. Any unread remainder of the block
// region is skipped without decompression, so abandoning the record stream
// mid-way is safe.
func (rd *Reader) BlockIndex() (*BlockIndex, error) {
	if rd.index != nil {
		return rd.index, nil
	}
	if err := rd.blocks.drain(); err != nil {
		return nil, fmt.Errorf("skipping block stream: %w", err)
	}

	raw, err := rd.r.Rest()
	if err != nil {
		return nil, err
	}
	rd.index, err = decodeBlockIndex(raw)
	if err != nil {
		return nil, err
	}
	rd.lo.Debug("decoded block index", "blocks", len(rd.index.Offsets))
	return rd.index, nil
}

// Close releases the underlying file when the Reader owns one.
func (rd *Reader) Close() error {
	if rd.closer == nil {
		return nil
	}
	return rd.closer.Close()
}
