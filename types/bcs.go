package types

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/fardream/go-bcs/bcs"
	"github.com/pkg/errors"
)

var (
	// ErrTrailingBytes is returned by Decode when the input holds more
	// bytes than the value it encodes
	ErrTrailingBytes = errors.New("trailing bytes after value")

	// ErrShortInput is returned when the input ends before the value
	ErrShortInput = errors.New("unexpected end of input")

	// ErrLengthOutOfRange is returned when a length prefix claims more
	// elements than the input has bytes left
	ErrLengthOutOfRange = errors.New("length prefix exceeds remaining input")

	// ErrUnknownVariant is returned for enum variant indices the type
	// does not model
	ErrUnknownVariant = errors.New("unknown enum variant")

	// ErrNonCanonical is returned for inputs that do not re-encode to
	// the same bytes, such as padded ULEB128 or bool bytes above 1
	ErrNonCanonical = errors.New("non-canonical encoding")

	// ErrTooDeep is returned for values nested beyond maxDepth, such as
	// a vector<vector<...>> type tag built to exhaust the stack
	ErrTooDeep = errors.New("value nested too deep")
)

const maxDepth = 256

var enumType = reflect.TypeOf((*bcs.Enum)(nil)).Elem()

// Encode returns the BCS encoding of v
func Encode(v interface{}) ([]byte, error) {
	return bcs.Marshal(v)
}

// Decode decodes data into v. The whole input must be consumed and must
// be the canonical encoding of the decoded value, so short, trailing-byte
// and padded inputs all fail. Length prefixes are checked against the
// remaining input before anything is allocated.
func Decode(data []byte, v interface{}) (err error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return errors.New("bcs decode: not a pointer or nil pointer")
	}

	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("bcs decode: %v", r)
		}
	}()

	d := &decoder{data: data}
	if err := d.decode(rv.Elem()); err != nil {
		return errors.Wrapf(err, "bcs decode at offset %d", d.pos)
	}

	if d.pos != len(data) {
		return errors.Wrap(ErrTrailingBytes, fmt.Sprintf("consumed %d of %d bytes", d.pos, len(data)))
	}

	encoded, err := bcs.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "bcs re-encode")
	}
	if !bytes.Equal(encoded, data) {
		return ErrNonCanonical
	}

	return nil
}

// Unit is the payload of enum variants that carry no data
type Unit struct{}

// decoder reads the layouts go-bcs writes: enums are structs of
// pointer variants, structs are their exported fields in order.
type decoder struct {
	data  []byte
	pos   int
	depth int
}

func (d *decoder) remaining() int {
	return len(d.data) - d.pos
}

func (d *decoder) read(n int) ([]byte, error) {
	if n > d.remaining() {
		return nil, ErrShortInput
	}

	b := d.data[d.pos : d.pos+n]
	d.pos += n
	return b, nil
}

func (d *decoder) readByte() (byte, error) {
	b, err := d.read(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// readULEB128 reads a u32 ULEB128 value in its shortest form
func (d *decoder) readULEB128() (uint64, error) {
	var v uint64
	for shift := uint(0); shift < 35; shift += 7 {
		b, err := d.readByte()
		if err != nil {
			return 0, err
		}

		v |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			if b == 0 && shift > 0 {
				return 0, errors.Wrap(ErrNonCanonical, "padded uleb128")
			}
			if v > math.MaxUint32 {
				return 0, errors.New("uleb128 overflows u32")
			}
			return v, nil
		}
	}

	return 0, errors.New("uleb128 longer than 5 bytes")
}

// readLength reads a sequence length. Every element takes at least one
// byte, so a length above the remaining input can never be satisfied.
func (d *decoder) readLength() (int, error) {
	n, err := d.readULEB128()
	if err != nil {
		return 0, err
	}

	if n > uint64(d.remaining()) {
		return 0, errors.Wrapf(ErrLengthOutOfRange, "length %d with %d bytes left", n, d.remaining())
	}

	return int(n), nil
}

func (d *decoder) decode(v reflect.Value) error {
	d.depth++
	defer func() { d.depth-- }()
	if d.depth > maxDepth {
		return ErrTooDeep
	}

	if v.Kind() == reflect.Struct && v.Type().Implements(enumType) {
		return d.decodeEnum(v)
	}

	switch v.Kind() {
	case reflect.Pointer:
		p := reflect.New(v.Type().Elem())
		if err := d.decode(p.Elem()); err != nil {
			return err
		}
		v.Set(p)
		return nil

	case reflect.Bool:
		b, err := d.readByte()
		if err != nil {
			return err
		}
		if b > 1 {
			return errors.Wrapf(ErrNonCanonical, "bool byte %d", b)
		}
		v.SetBool(b == 1)
		return nil

	case reflect.Uint8:
		b, err := d.readByte()
		if err != nil {
			return err
		}
		v.SetUint(uint64(b))
		return nil

	case reflect.Uint16:
		b, err := d.read(2)
		if err != nil {
			return err
		}
		v.SetUint(uint64(binary.LittleEndian.Uint16(b)))
		return nil

	case reflect.Uint32:
		b, err := d.read(4)
		if err != nil {
			return err
		}
		v.SetUint(uint64(binary.LittleEndian.Uint32(b)))
		return nil

	case reflect.Uint64:
		b, err := d.read(8)
		if err != nil {
			return err
		}
		v.SetUint(binary.LittleEndian.Uint64(b))
		return nil

	case reflect.String:
		n, err := d.readLength()
		if err != nil {
			return err
		}
		b, err := d.read(n)
		if err != nil {
			return err
		}
		if !utf8.Valid(b) {
			return errors.New("string is not utf-8")
		}
		v.SetString(string(b))
		return nil

	case reflect.Slice:
		return d.decodeSlice(v)

	case reflect.Array:
		for i := 0; i < v.Len(); i++ {
			if err := d.decode(v.Index(i)); err != nil {
				return err
			}
		}
		return nil

	case reflect.Struct:
		return d.decodeStruct(v)

	default:
		return errors.Errorf("unsupported kind %s", v.Kind())
	}
}

func (d *decoder) decodeSlice(v reflect.Value) error {
	n, err := d.readLength()
	if err != nil {
		return err
	}

	if v.Type().Elem().Kind() == reflect.Uint8 {
		b, err := d.read(n)
		if err != nil {
			return err
		}
		v.SetBytes(append([]byte{}, b...))
		return nil
	}

	s := reflect.MakeSlice(v.Type(), n, n)
	for i := 0; i < n; i++ {
		if err := d.decode(s.Index(i)); err != nil {
			return errors.Wrapf(err, "element %d", i)
		}
	}

	v.Set(s)
	return nil
}

func (d *decoder) decodeStruct(v reflect.Value) error {
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		if !t.Field(i).IsExported() || isIgnored(t.Field(i)) {
			continue
		}
		if err := d.decode(v.Field(i)); err != nil {
			return errors.Wrap(err, t.Field(i).Name)
		}
	}
	return nil
}

func (d *decoder) decodeEnum(v reflect.Value) error {
	index, err := d.readULEB128()
	if err != nil {
		return err
	}

	t := v.Type()
	if index >= uint64(t.NumField()) {
		return errors.Wrapf(ErrUnknownVariant, "%s variant %d", t.Name(), index)
	}

	field := int(index)
	if !t.Field(field).IsExported() || isIgnored(t.Field(field)) {
		return errors.Wrapf(ErrUnknownVariant, "%s variant %d", t.Name(), index)
	}

	v.Set(reflect.Zero(t))
	if err := d.decode(v.Field(field)); err != nil {
		return errors.Wrap(err, t.Field(field).Name)
	}
	return nil
}

func isIgnored(f reflect.StructField) bool {
	return strings.TrimSpace(f.Tag.Get("bcs")) == "-"
}
