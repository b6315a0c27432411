package yxdb

import (
	"github.com/yxdb-io/yxdb/internal/datafile"
)

// OpenFile opens a table file on disk and returns a Reader over it. The
// Reader's Close releases the file handle.
func OpenFile(path string, opts ...Option) (*Reader, error) {
	df, err := datafile.OpenReader(path)
	if err != nil {
		return nil, err
	}
	rd, err := NewReader(df, opts...)
	if err != nil {
		df.Close()
		return nil, err
	}
	rd.closer = df
	return rd, nil
}

// CreateFile creates a table file on disk, locked for exclusive write, and
// returns a Writer over it. The Writer's Close flushes, syncs and releases
// the file.
func CreateFile(path string, ri *RecordInfo, opts ...Option) (*Writer, error) {
	df, err := datafile.Create(path)
	if err != nil {
		return nil, err
	}
	w, err := NewWriter(df, ri, opts...)
	if err != nil {
		df.Close()
		return nil, err
	}
	w.syncer = df
	return w, nil
}
