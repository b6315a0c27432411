// Package field implements the per-field value codec: the scalar type set,
// their XML names, fixed-portion byte widths and the encode/decode of one
// value into its fixed portion. The surrounding record codec is agnostic to
// the types listed here.
package field

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"time"
	"unicode/utf16"
)

type Type uint8

const (
	Bool Type = iota
	Byte
	Int16
	Int32
	Int64
	FixedDecimal
	Float
	Double
	String
	WString
	VString
	VWString
	Date
	DateTime
	Blob
	SpatialObj
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04:05"

	// Null indicator values for the trailing flag byte. Bool has no flag
	// byte and stores boolNull in the value byte itself.
	notNull  = 0
	isNull   = 1
	boolNull = 2
)

var ErrUnknownType = errors.New("unknown field type")

var typeNames = map[Type]string{
	Bool:         "Bool",
	Byte:         "Byte",
	Int16:        "Int16",
	Int32:        "Int32",
	Int64:        "Int64",
	FixedDecimal: "FixedDecimal",
	Float:        "Float",
	Double:       "Double",
	String:       "String",
	WString:      "WString",
	VString:      "V_String",
	VWString:     "V_WString",
	Date:         "Date",
	DateTime:     "DateTime",
	Blob:         "Blob",
	SpatialObj:   "SpatialObj",
}

var namesToType = func() map[string]Type {
	m := make(map[string]Type, len(typeNames))
	for t, name := range typeNames {
		m[name] = t
	}
	return m
}()

// Name returns the type's name as it appears in the schema XML.
func (t Type) Name() string {
	return typeNames[t]
}

func (t Type) String() string {
	return t.Name()
}

// TypeFromName maps a schema XML type attribute to its type tag.
func TypeFromName(name string) (Type, error) {
	t, ok := namesToType[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownType, name)
	}
	return t, nil
}

// HasVarData reports whether values of this type spill into the record's
// variable-data tail. Their fixed portion is a 4-byte pointer word.
func (t Type) HasVarData() bool {
	switch t {
	case VString, VWString, Blob, SpatialObj:
		return true
	}
	return false
}

// NeedsSize reports whether the schema must carry a size attribute for this
// type.
func (t Type) NeedsSize() bool {
	switch t {
	case FixedDecimal, String, WString:
		return true
	}
	return false
}

// FixedSize returns the number of bytes the type occupies in a record's
// fixed portion, including the trailing null flag where the type carries
// one. size is the schema-declared width; it is ignored by types of
// constant width.
func (t Type) FixedSize(size int) int {
	switch t {
	case Bool:
		return 1
	case Byte:
		return 2
	case Int16:
		return 3
	case Int32, Float:
		return 5
	case Int64, Double:
		return 9
	case FixedDecimal, String:
		return size + 1
	case WString:
		return size*2 + 1
	case Date:
		return len(dateLayout) + 1
	case DateTime:
		return len(dateTimeLayout) + 1
	case VString, VWString, Blob, SpatialObj:
		return 4
	}
	return 0
}

// Read decodes one value from its fixed portion. buf must be exactly
// FixedSize(size) bytes. A null value decodes to nil. Variable-width types
// decode to their raw uint32 pointer word; the data itself lives in the
// record's variable tail.
func Read(t Type, size int, buf []byte) (any, error) {
	if len(buf) != t.FixedSize(size) {
		return nil, fmt.Errorf("field type %s: fixed portion is %d bytes, got %d", t, t.FixedSize(size), len(buf))
	}

	switch t {
	case Bool:
		if buf[0] == boolNull {
			return nil, nil
		}
		return buf[0] == 1, nil
	case Byte:
		if buf[1] != notNull {
			return nil, nil
		}
		return buf[0], nil
	case Int16:
		if buf[2] != notNull {
			return nil, nil
		}
		return int16(binary.LittleEndian.Uint16(buf)), nil
	case Int32:
		if buf[4] != notNull {
			return nil, nil
		}
		return int32(binary.LittleEndian.Uint32(buf)), nil
	case Int64:
		if buf[8] != notNull {
			return nil, nil
		}
		return int64(binary.LittleEndian.Uint64(buf)), nil
	case Float:
		if buf[4] != notNull {
			return nil, nil
		}
		return math.Float32frombits(binary.LittleEndian.Uint32(buf)), nil
	case Double:
		if buf[8] != notNull {
			return nil, nil
		}
		return math.Float64frombits(binary.LittleEndian.Uint64(buf)), nil
	case FixedDecimal, String:
		if buf[size] != notNull {
			return nil, nil
		}
		return cutAtNul(buf[:size]), nil
	case WString:
		if buf[size*2] != notNull {
			return nil, nil
		}
		return decodeUTF16(buf[:size*2]), nil
	case Date:
		return readTime(buf, dateLayout)
	case DateTime:
		return readTime(buf, dateTimeLayout)
	case VString, VWString, Blob, SpatialObj:
		return binary.LittleEndian.Uint32(buf), nil
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownType, t)
}

// Write encodes one value into its fixed portion. buf must be exactly
// FixedSize(size) bytes and is fully overwritten. nil encodes a null.
func Write(t Type, size int, v any, buf []byte) error {
	if len(buf) != t.FixedSize(size) {
		return fmt.Errorf("field type %s: fixed portion is %d bytes, got %d", t, t.FixedSize(size), len(buf))
	}
	for i := range buf {
		buf[i] = 0
	}

	if v == nil {
		if t == Bool {
			buf[0] = boolNull
		} else {
			buf[len(buf)-1] = isNull
		}
		return nil
	}

	switch t {
	case Bool:
		b, ok := v.(bool)
		if !ok {
			return badValue(t, v)
		}
		if b {
			buf[0] = 1
		}
	case Byte:
		b, ok := v.(uint8)
		if !ok {
			return badValue(t, v)
		}
		buf[0] = b
	case Int16:
		n, ok := asInt64(v)
		if !ok {
			return badValue(t, v)
		}
		binary.LittleEndian.PutUint16(buf, uint16(n))
	case Int32:
		n, ok := asInt64(v)
		if !ok {
			return badValue(t, v)
		}
		binary.LittleEndian.PutUint32(buf, uint32(n))
	case Int64:
		n, ok := asInt64(v)
		if !ok {
			return badValue(t, v)
		}
		binary.LittleEndian.PutUint64(buf, uint64(n))
	case Float:
		f, ok := v.(float32)
		if !ok {
			return badValue(t, v)
		}
		binary.LittleEndian.PutUint32(buf, math.Float32bits(f))
	case Double:
		f, ok := v.(float64)
		if !ok {
			return badValue(t, v)
		}
		binary.LittleEndian.PutUint64(buf, math.Float64bits(f))
	case FixedDecimal, String:
		s, ok := v.(string)
		if !ok {
			return badValue(t, v)
		}
		copy(buf[:size], s)
	case WString:
		s, ok := v.(string)
		if !ok {
			return badValue(t, v)
		}
		units := utf16.Encode([]rune(s))
		if len(units) > size {
			units = units[:size]
		}
		for i, u := range units {
			binary.LittleEndian.PutUint16(buf[i*2:], u)
		}
	case Date:
		return writeTime(t, v, buf, dateLayout)
	case DateTime:
		return writeTime(t, v, buf, dateTimeLayout)
	case VString, VWString, Blob, SpatialObj:
		p, ok := v.(uint32)
		if !ok {
			return badValue(t, v)
		}
		binary.LittleEndian.PutUint32(buf, p)
	default:
		return fmt.Errorf("%w: %d", ErrUnknownType, t)
	}
	return nil
}

func readTime(buf []byte, layout string) (any, error) {
	if buf[len(layout)] != notNull {
		return nil, nil
	}
	ts, err := time.Parse(layout, string(buf[:len(layout)]))
	if err != nil {
		return nil, fmt.Errorf("malformed time value: %w", err)
	}
	return ts, nil
}

func writeTime(t Type, v any, buf []byte, layout string) error {
	ts, ok := v.(time.Time)
	if !ok {
		return badValue(t, v)
	}
	copy(buf, ts.Format(layout))
	return nil
}

func badValue(t Type, v any) error {
	return fmt.Errorf("field type %s: cannot encode value of type %T", t, v)
}

func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case int:
		return int64(n), true
	}
	return 0, false
}

func cutAtNul(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}

func decodeUTF16(b []byte) string {
	units := make([]uint16, 0, len(b)/2)
	for i := 0; i+1 < len(b); i += 2 {
		u := binary.LittleEndian.Uint16(b[i:])
		if u == 0 {
			break
		}
		units = append(units, u)
	}
	return string(utf16.Decode(units))
}
