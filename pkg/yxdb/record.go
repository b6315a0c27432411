package yxdb

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/yxdb-io/yxdb/internal/wire"
	"github.com/yxdb-io/yxdb/pkg/field"
)

// Record is one row. Values parallels the schema's field sequence; nil
// marks a null. VarData is the record's raw variable-data tail, kept opaque
// on decode and nil for fixed-width schemas.
type Record struct {
	Values  []any
	VarData []byte
}

// decodeRecord reads one record from the block payload stream. Returns
// io.EOF on a clean record boundary with no bytes left.
func decodeRecord(b *blockReader, ri *RecordInfo) (Record, error) {
	rec := Record{Values: make([]any, 0, len(ri.Fields))}

	for i, f := range ri.Fields {
		buf, err := b.take(f.fixedSize())
		if err != nil {
			if err == io.EOF && i == 0 {
				return Record{}, io.EOF
			}
			return Record{}, partial(f.Name, err)
		}
		v, err := field.Read(f.Type, sizeOf(f), buf)
		if err != nil {
			return Record{}, fmt.Errorf("field %q: %w", f.Name, err)
		}
		rec.Values = append(rec.Values, v)
	}

	if ri.HasVarFields() {
		lenBuf, err := b.take(4)
		if err != nil {
			return Record{}, partial("variable data length", err)
		}
		tail, err := b.take(int(binary.LittleEndian.Uint32(lenBuf)))
		if err != nil {
			return Record{}, partial("variable data", err)
		}
		rec.VarData = append([]byte(nil), tail...)
	}
	return rec, nil
}

// encodeRecord writes one record's fixed portion in schema order. Schemas
// with variable-width fields cannot be written; the error fires before any
// bytes are emitted.
func encodeRecord(w *wire.Writer, ri *RecordInfo, rec Record, scratch []byte) error {
	if ri.HasVarFields() {
		return ErrVarDataUnimplemented
	}
	if len(rec.Values) != len(ri.Fields) {
		return fmt.Errorf("record has %d values, schema has %d fields", len(rec.Values), len(ri.Fields))
	}

	for i, f := range ri.Fields {
		buf := scratch[:f.fixedSize()]
		if err := field.Write(f.Type, sizeOf(f), rec.Values[i], buf); err != nil {
			return fmt.Errorf("field %q: %w", f.Name, err)
		}
		w.PutBytes(buf)
	}
	return nil
}

func sizeOf(f Field) int {
	if f.Size == NoValue {
		return 0
	}
	return f.Size
}

func partial(what string, err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return fmt.Errorf("%w: %s truncated", ErrPartialRecord, what)
	}
	return err
}
