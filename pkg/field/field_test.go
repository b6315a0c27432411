package field

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTypeNames(t *testing.T) {
	var (
		assert = assert.New(t)
	)

	for typ, name := range map[Type]string{
		Bool:         "Bool",
		FixedDecimal: "FixedDecimal",
		VString:      "V_String",
		VWString:     "V_WString",
		SpatialObj:   "SpatialObj",
	} {
		assert.Equal(name, typ.Name())

		back, err := TypeFromName(name)
		assert.NoError(err)
		assert.Equal(typ, back)
	}

	_, err := TypeFromName("Int128")
	assert.ErrorIs(err, ErrUnknownType)
}

func TestFixedSize(t *testing.T) {
	var (
		assert = assert.New(t)
	)

	assert.Equal(1, Bool.FixedSize(0))
	assert.Equal(2, Byte.FixedSize(0))
	assert.Equal(3, Int16.FixedSize(0))
	assert.Equal(5, Int32.FixedSize(0))
	assert.Equal(9, Int64.FixedSize(0))
	assert.Equal(5, Float.FixedSize(0))
	assert.Equal(9, Double.FixedSize(0))
	assert.Equal(11, FixedDecimal.FixedSize(10))
	assert.Equal(17, String.FixedSize(16))
	assert.Equal(33, WString.FixedSize(16))
	assert.Equal(11, Date.FixedSize(0))
	assert.Equal(20, DateTime.FixedSize(0))
	assert.Equal(4, VString.FixedSize(0))
	assert.Equal(4, Blob.FixedSize(0))
}

func TestHasVarData(t *testing.T) {
	var (
		assert = assert.New(t)
	)

	for _, typ := range []Type{VString, VWString, Blob, SpatialObj} {
		assert.True(typ.HasVarData(), typ.Name())
	}
	for _, typ := range []Type{Bool, Byte, Int32, Double, String, WString, Date} {
		assert.False(typ.HasVarData(), typ.Name())
	}
}

func roundTrip(t *testing.T, typ Type, size int, v any) any {
	buf := make([]byte, typ.FixedSize(size))
	err := Write(typ, size, v, buf)
	assert.NoError(t, err)

	back, err := Read(typ, size, buf)
	assert.NoError(t, err)
	return back
}

func TestValueRoundTrip(t *testing.T) {
	var (
		assert = assert.New(t)
	)

	t.Run("Scalars", func(t *testing.T) {
		assert.Equal(true, roundTrip(t, Bool, 0, true))
		assert.Equal(false, roundTrip(t, Bool, 0, false))
		assert.Equal(uint8(200), roundTrip(t, Byte, 0, uint8(200)))
		assert.Equal(int16(-42), roundTrip(t, Int16, 0, int16(-42)))
		assert.Equal(int32(1<<30), roundTrip(t, Int32, 0, int32(1<<30)))
		assert.Equal(int64(-1<<60), roundTrip(t, Int64, 0, int64(-1<<60)))
		assert.Equal(float32(1.5), roundTrip(t, Float, 0, float32(1.5)))
		assert.Equal(3.14159, roundTrip(t, Double, 0, 3.14159))
	})

	t.Run("Text", func(t *testing.T) {
		assert.Equal("hello", roundTrip(t, String, 16, "hello"))
		assert.Equal("héllo wörld", roundTrip(t, WString, 16, "héllo wörld"))
		assert.Equal("123.45", roundTrip(t, FixedDecimal, 10, "123.45"))
	})

	t.Run("Time", func(t *testing.T) {
		day := time.Date(2023, 4, 5, 0, 0, 0, 0, time.UTC)
		assert.Equal(day, roundTrip(t, Date, 0, day))

		stamp := time.Date(2023, 4, 5, 16, 45, 12, 0, time.UTC)
		assert.Equal(stamp, roundTrip(t, DateTime, 0, stamp))
	})

	t.Run("VarPointerWords", func(t *testing.T) {
		assert.Equal(uint32(0xCAFE), roundTrip(t, VString, 0, uint32(0xCAFE)))
		assert.Equal(uint32(7), roundTrip(t, Blob, 0, uint32(7)))
	})

	t.Run("IntConvenience", func(t *testing.T) {
		assert.Equal(int32(7), roundTrip(t, Int32, 0, 7))
	})
}

func TestNullRoundTrip(t *testing.T) {
	var (
		assert = assert.New(t)
	)

	for _, tc := range []struct {
		typ  Type
		size int
	}{
		{Bool, 0}, {Byte, 0}, {Int16, 0}, {Int32, 0}, {Int64, 0},
		{Float, 0}, {Double, 0}, {FixedDecimal, 10}, {String, 8},
		{WString, 8}, {Date, 0}, {DateTime, 0},
	} {
		assert.Nil(roundTrip(t, tc.typ, tc.size, nil), tc.typ.Name())
	}
}

func TestStringTruncation(t *testing.T) {
	var (
		assert = assert.New(t)
	)

	assert.Equal("abcd", roundTrip(t, String, 4, "abcdefgh"))
	assert.Equal("abcd", roundTrip(t, WString, 4, "abcdefgh"))
}

func TestBadValueType(t *testing.T) {
	var (
		assert = assert.New(t)
	)

	buf := make([]byte, Int32.FixedSize(0))
	assert.Error(Write(Int32, 0, "not a number", buf))

	buf = make([]byte, Bool.FixedSize(0))
	assert.Error(Write(Bool, 0, 1, buf))
}

func TestWidthMismatch(t *testing.T) {
	var (
		assert = assert.New(t)
	)

	_, err := Read(Int32, 0, make([]byte, 3))
	assert.Error(err)

	assert.Error(Write(Int32, 0, int32(1), make([]byte, 3)))
}
