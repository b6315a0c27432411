package yxdb_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/yxdb-io/yxdb/pkg/field"
	"github.com/yxdb-io/yxdb/pkg/yxdb"
)

func benchSchema() *yxdb.RecordInfo {
	return &yxdb.RecordInfo{Fields: []yxdb.Field{
		yxdb.NewField("id", field.Int64),
		yxdb.NewSizedField("name", field.String, 32),
		yxdb.NewField("score", field.Double),
	}}
}

func BenchmarkWrite(b *testing.B) {
	rec := yxdb.Record{Values: []any{int64(42), "metric", 3.14}}

	// One record is 9 + 33 + 9 bytes of fixed portion.
	b.SetBytes(51)
	b.ReportAllocs()
	b.ResetTimer()

	var buf bytes.Buffer
	w, err := yxdb.NewWriter(&buf, benchSchema())
	if err != nil {
		b.Fatal(err)
	}
	for i := 0; i < b.N; i++ {
		if err := w.Write(rec); err != nil {
			b.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		b.Fatal(err)
	}
	b.StopTimer()
}

func BenchmarkRead(b *testing.B) {
	var buf bytes.Buffer
	w, err := yxdb.NewWriter(&buf, benchSchema())
	if err != nil {
		b.Fatal(err)
	}
	rec := yxdb.Record{Values: []any{int64(42), "metric", 3.14}}
	for i := 0; i < 100000; i++ {
		if err := w.Write(rec); err != nil {
			b.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		b.Fatal(err)
	}
	encoded := buf.Bytes()

	b.SetBytes(51)
	b.ReportAllocs()
	b.ResetTimer()

	read := 0
	for read < b.N {
		rd, err := yxdb.NewReader(bytes.NewReader(encoded))
		if err != nil {
			b.Fatal(err)
		}
		for read < b.N {
			if _, err := rd.Next(); err != nil {
				if err == io.EOF {
					break
				}
				b.Fatal(err)
			}
			read++
		}
	}
	b.StopTimer()
}
