package yxdb

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yxdb-io/yxdb/internal/wire"
	"github.com/yxdb-io/yxdb/pkg/field"
)

func blockOver(encoded []byte) *blockReader {
	return newBlockReader(wire.NewReader(bytes.NewReader(encoded)), int64(len(encoded)))
}

func TestRecordRoundTrip(t *testing.T) {
	var (
		assert = assert.New(t)
	)

	ri := &RecordInfo{Fields: []Field{
		NewField("id", field.Int32),
		NewSizedField("name", field.String, 8),
		NewField("score", field.Double),
		NewField("active", field.Bool),
	}}
	records := []Record{
		{Values: []any{int32(1), "ada", 99.5, true}},
		{Values: []any{int32(2), "grace", 87.25, false}},
		{Values: []any{nil, "alan", nil, nil}},
	}

	w := wire.NewWriter()
	scratch := make([]byte, 16)
	for _, rec := range records {
		assert.NoError(encodeRecord(w, ri, rec, scratch))
	}

	blk := wire.NewWriter()
	assert.NoError(writeBlockPayload(blk, w.Bytes()))

	br := blockOver(blk.Bytes())
	for _, want := range records {
		got, err := decodeRecord(br, ri)
		assert.NoError(err)
		assert.Equal(want, got)
	}
	_, err := decodeRecord(br, ri)
	assert.Equal(io.EOF, err)
}

func TestRecordEncodeVarDataFails(t *testing.T) {
	var (
		assert = assert.New(t)
	)

	ri := &RecordInfo{Fields: []Field{
		NewField("id", field.Int32),
		NewSizedField("notes", field.VString, 1000),
	}}

	w := wire.NewWriter()
	err := encodeRecord(w, ri, Record{Values: []any{int32(1), uint32(0)}}, make([]byte, 16))
	assert.ErrorIs(err, ErrVarDataUnimplemented)

	// Nothing was emitted for the record.
	assert.Zero(w.Len())
}

func TestRecordDecodeVarDataTail(t *testing.T) {
	var (
		assert = assert.New(t)
	)

	ri := &RecordInfo{Fields: []Field{
		NewField("id", field.Int32),
		NewSizedField("notes", field.VString, 1000),
	}}

	// One record: Int32 fixed portion, V_String pointer word, then a
	// 6-byte variable tail.
	payload := wire.NewWriter()
	fixed := make([]byte, field.Int32.FixedSize(0))
	assert.NoError(field.Write(field.Int32, 0, int32(7), fixed))
	payload.PutBytes(fixed)
	payload.PutUint32(0xC0DE)
	payload.PutUint32(6)
	payload.PutBytes([]byte("opaque"))

	blk := wire.NewWriter()
	assert.NoError(writeBlockPayload(blk, payload.Bytes()))

	br := blockOver(blk.Bytes())
	rec, err := decodeRecord(br, ri)
	assert.NoError(err)
	assert.Equal([]any{int32(7), uint32(0xC0DE)}, rec.Values)
	assert.Equal([]byte("opaque"), rec.VarData)

	_, err = decodeRecord(br, ri)
	assert.Equal(io.EOF, err)
}

func TestRecordPartial(t *testing.T) {
	var (
		assert = assert.New(t)
	)

	ri := &RecordInfo{Fields: []Field{
		NewField("a", field.Int32),
		NewField("b", field.Int32),
	}}

	// One full record plus a truncated second one.
	w := wire.NewWriter()
	scratch := make([]byte, 8)
	assert.NoError(encodeRecord(w, ri, Record{Values: []any{int32(1), int32(2)}}, scratch))
	payload := append(w.Bytes(), 0xFF, 0xFF, 0xFF)

	blk := wire.NewWriter()
	assert.NoError(writeBlockPayload(blk, payload))

	br := blockOver(blk.Bytes())
	_, err := decodeRecord(br, ri)
	assert.NoError(err)

	_, err = decodeRecord(br, ri)
	assert.ErrorIs(err, ErrPartialRecord)
}

func TestRecordValueCountMismatch(t *testing.T) {
	var (
		assert = assert.New(t)
	)

	ri := &RecordInfo{Fields: []Field{NewField("a", field.Int32)}}
	err := encodeRecord(wire.NewWriter(), ri, Record{Values: []any{int32(1), int32(2)}}, make([]byte, 8))
	assert.Error(err)
}
