package yxdb

import (
	"fmt"
	"strconv"

	"github.com/beevik/etree"
	"golang.org/x/text/encoding/unicode"

	"github.com/yxdb-io/yxdb/pkg/field"
)

// NoValue marks an absent size or scale on a Field.
const NoValue = -1

// Field is one named column of the schema. Size and Scale are NoValue when
// the type does not carry them.
type Field struct {
	Name  string
	Type  field.Type
	Size  int
	Scale int
}

// NewField returns a field of a constant-width type.
func NewField(name string, t field.Type) Field {
	return Field{Name: name, Type: t, Size: NoValue, Scale: NoValue}
}

// NewSizedField returns a field of a type whose width the schema declares.
func NewSizedField(name string, t field.Type, size int) Field {
	return Field{Name: name, Type: t, Size: size, Scale: NoValue}
}

// NewDecimalField returns a fixed-decimal field with the given width and
// scale.
func NewDecimalField(name string, size, scale int) Field {
	return Field{Name: name, Type: field.FixedDecimal, Size: size, Scale: scale}
}

func (f Field) fixedSize() int {
	size := f.Size
	if size == NoValue {
		size = 0
	}
	return f.Type.FixedSize(size)
}

// RecordInfo is the schema: an ordered field sequence. Order is significant
// and preserved across round-trip.
type RecordInfo struct {
	Fields []Field
}

// HasVarFields reports whether any field spills into a variable-data tail.
func (ri *RecordInfo) HasVarFields() bool {
	for _, f := range ri.Fields {
		if f.Type.HasVarData() {
			return true
		}
	}
	return false
}

// fixedSize is the byte width of one record's fixed portion.
func (ri *RecordInfo) fixedSize() int {
	total := 0
	for _, f := range ri.Fields {
		total += f.fixedSize()
	}
	return total
}

var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// encode renders the schema region: the XML document without a declaration,
// a '\n' '\0' trailer, all encoded UTF-16LE. The byte length is always even;
// the header stores it divided by two.
func (ri *RecordInfo) encode() ([]byte, error) {
	doc := etree.NewDocument()
	meta := doc.CreateElement("MetaInfo")
	rec := meta.CreateElement("RecordInfo")
	for _, f := range ri.Fields {
		el := rec.CreateElement("Field")
		el.CreateAttr("name", f.Name)
		el.CreateAttr("type", f.Type.Name())
		if f.Size != NoValue {
			el.CreateAttr("size", strconv.Itoa(f.Size))
		}
		if f.Scale != NoValue {
			el.CreateAttr("scale", strconv.Itoa(f.Scale))
		}
	}

	text, err := doc.WriteToString()
	if err != nil {
		return nil, fmt.Errorf("rendering schema xml: %w", err)
	}
	raw, err := utf16le.NewEncoder().Bytes([]byte(text + "\n\x00"))
	if err != nil {
		return nil, fmt.Errorf("encoding schema text: %w", err)
	}
	return raw, nil
}

// decodeRecordInfo parses the schema region. raw is the full metadata
// window; the final two UTF-16 code units are the trailer and carry no
// schema text.
func decodeRecordInfo(raw []byte) (*RecordInfo, error) {
	if len(raw) < 4 {
		return nil, ErrTrailerMissing
	}
	text, err := utf16le.NewDecoder().Bytes(raw[:len(raw)-4])
	if err != nil {
		return nil, fmt.Errorf("decoding schema text: %w", err)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(text); err != nil {
		return nil, fmt.Errorf("parsing schema xml: %w", err)
	}

	entries := doc.FindElements("//RecordInfo")
	switch {
	case len(entries) == 0:
		return nil, ErrNoRecordInfo
	case len(entries) > 1:
		return nil, ErrTooManyRecordInfo
	}

	ri := &RecordInfo{}
	for _, el := range entries[0].SelectElements("Field") {
		f := Field{Size: NoValue, Scale: NoValue}

		name := el.SelectAttr("name")
		if name == nil {
			return nil, fmt.Errorf("schema field missing name attribute")
		}
		f.Name = name.Value

		typeAttr := el.SelectAttr("type")
		if typeAttr == nil {
			return nil, fmt.Errorf("schema field %q missing type attribute", f.Name)
		}
		if f.Type, err = field.TypeFromName(typeAttr.Value); err != nil {
			return nil, fmt.Errorf("schema field %q: %w", f.Name, err)
		}

		if f.Size, err = intAttr(el, "size", f.Name); err != nil {
			return nil, err
		}
		if f.Scale, err = intAttr(el, "scale", f.Name); err != nil {
			return nil, err
		}
		ri.Fields = append(ri.Fields, f)
	}
	return ri, nil
}

func intAttr(el *etree.Element, key, fieldName string) (int, error) {
	attr := el.SelectAttr(key)
	if attr == nil {
		return NoValue, nil
	}
	n, err := strconv.Atoi(attr.Value)
	if err != nil {
		return NoValue, fmt.Errorf("schema field %q: malformed %s attribute %q", fieldName, key, attr.Value)
	}
	return n, nil
}
