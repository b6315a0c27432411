package yxdb

import "errors"

var (
	ErrTrailerMissing       = errors.New("metadata region too short to hold trailer")
	ErrNoRecordInfo         = errors.New("no RecordInfo entries found")
	ErrTooManyRecordInfo    = errors.New("too many RecordInfo entries found")
	ErrVarDataUnimplemented = errors.New("variable data unimplemented")
	ErrDecompressOverflow   = errors.New("unable to decompress; increase buffer size?")
	ErrMiniblockTooLarge    = errors.New("miniblock payload too large for length prefix")
	ErrPartialRecord        = errors.New("partial record at end of block stream")
)
