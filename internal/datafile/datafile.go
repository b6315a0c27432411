// Package datafile owns the filesystem side of a table file: a sequential
// read handle, and an exclusive write handle guarded by an advisory flock so
// two processes cannot produce the same file at once.
package datafile

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

type DataFile struct {
	f       *os.File
	flocked bool
}

// OpenReader opens an existing table file for sequential reading.
func OpenReader(path string) (*DataFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening table file for reading: %w", err)
	}
	return &DataFile{f: f}, nil
}

// Create creates a new table file and takes an exclusive advisory lock on
// it for the lifetime of the handle.
func Create(path string) (*DataFile, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("error creating table file: %w", err)
	}
	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
		f.Close()
		return nil, fmt.Errorf("cannot acquire lock on file %q: %w", path, err)
	}
	return &DataFile{f: f, flocked: true}, nil
}

func (d *DataFile) Read(p []byte) (int, error) {
	return d.f.Read(p)
}

func (d *DataFile) Write(p []byte) (int, error) {
	return d.f.Write(p)
}

// Size returns the size of the table file in bytes.
func (d *DataFile) Size() (int64, error) {
	stat, err := d.f.Stat()
	if err != nil {
		return -1, fmt.Errorf("error fetching file stats: %w", err)
	}
	return stat.Size(), nil
}

// Sync flushes the in-memory buffers to the disk.
func (d *DataFile) Sync() error {
	return d.f.Sync()
}

// Close releases the lock, if held, and closes the file.
func (d *DataFile) Close() error {
	if d.flocked {
		if err := unix.Flock(int(d.f.Fd()), unix.LOCK_UN); err != nil {
			return fmt.Errorf("cannot unlock file %q: %w", d.f.Name(), err)
		}
		d.flocked = false
	}
	return d.f.Close()
}
