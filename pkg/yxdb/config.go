package yxdb

import (
	"time"

	"github.com/zerodha/logf"
)

const defaultCompressionVersion = 1

// Options represents configuration for a Reader or Writer.
type Options struct {
	debug              bool   // Enable debug logging.
	description        string // Header description, at most 64 bytes.
	fileID             uint32 // Header file id.
	creationDate       uint32 // POSIX seconds; 0 means "now" at Close.
	flags1             uint32
	flags2             uint32
	compressionVersion uint32
}

// Option is a function on the Options for a Reader or Writer.
type Option func(*Options) error

func defaultOptions() *Options {
	return &Options{
		fileID:             FileID,
		compressionVersion: defaultCompressionVersion,
	}
}

func WithDebug() Option {
	return func(o *Options) error {
		o.debug = true
		return nil
	}
}

// WithDescription sets the header description. Longer than 64 bytes is
// truncated on encode.
func WithDescription(desc string) Option {
	return func(o *Options) error {
		o.description = desc
		return nil
	}
}

// WithFileID overrides the default file id, e.g. FileIDSpatialIndex.
func WithFileID(id uint32) Option {
	return func(o *Options) error {
		o.fileID = id
		return nil
	}
}

// WithCreationTime pins the header creation date instead of stamping the
// wall clock at Close.
func WithCreationTime(t time.Time) Option {
	return func(o *Options) error {
		o.creationDate = uint32(t.Unix())
		return nil
	}
}

// WithFlags sets the two opaque header flag words.
func WithFlags(flags1, flags2 uint32) Option {
	return func(o *Options) error {
		o.flags1 = flags1
		o.flags2 = flags2
		return nil
	}
}

// initLogger initializes logger instance.
func initLogger(debug bool) logf.Logger {
	opts := logf.Opts{EnableCaller: true}
	if debug {
		opts.Level = logf.DebugLevel
	}
	return logf.New(opts)
}

func applyOptions(opts []Option) (*Options, error) {
	o := defaultOptions()
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}
