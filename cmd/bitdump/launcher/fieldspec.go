package launcher

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/veldt-labs/bitcodec/bitio"
	"github.com/veldt-labs/bitcodec/codec"
)

// FieldKind enumerates the value shapes a field spec can name.
type FieldKind uint8

const (
	KindUint FieldKind = iota
	KindInt
	KindFloat
	KindBool
	KindBits
	KindBigUint
	KindBigInt
	KindBytes
	KindSkip
)

// Field is one parsed entry of a decode recipe.
type Field struct {
	Name  string
	Kind  FieldKind
	Width int // natural bit width for numbers, byte count for bytes, bit count for skip
	Ctx   codec.Ctx
}

// FieldValue is one decoded result. Skip fields carry a nil Value.
type FieldValue struct {
	Name  string      `json:"name"`
	Value interface{} `json:"value"`
	Bits  uint64      `json:"bits"`
}

var fieldKinds = map[string]struct {
	kind  FieldKind
	width int
}{
	"u8":    {KindUint, 8},
	"u16":   {KindUint, 16},
	"u32":   {KindUint, 32},
	"u64":   {KindUint, 64},
	"i8":    {KindInt, 8},
	"i16":   {KindInt, 16},
	"i32":   {KindInt, 32},
	"i64":   {KindInt, 64},
	"f32":   {KindFloat, 32},
	"f64":   {KindFloat, 64},
	"bool":  {KindBool, 8},
	"bits":  {KindBits, 64},
	"u128":  {KindBigUint, 128},
	"i128":  {KindBigInt, 128},
	"bytes": {KindBytes, 0},
	"skip":  {KindSkip, 0},
}

// ParseField turns a spec like "length=u16/be/12" into a Field. The part
// before '=' names the field, the first segment after it picks the kind, and
// the remaining attributes select endianness (le|be), bit order (msb0|lsb0)
// or a numeric size. The size counts bits for numeric kinds, bytes for the
// bytes kind and bits for skip.
func ParseField(spec string) (Field, error) {
	name, rest, ok := strings.Cut(spec, "=")
	if !ok || name == "" || rest == "" {
		return Field{}, fmt.Errorf("field spec %q: want name=kind[/attr...]", spec)
	}
	parts := strings.Split(rest, "/")
	def, ok := fieldKinds[parts[0]]
	if !ok {
		return Field{}, fmt.Errorf("field %s: unknown kind %q", name, parts[0])
	}
	f := Field{Name: name, Kind: def.kind, Width: def.width}
	for _, attr := range parts[1:] {
		switch attr {
		case "le":
			f.Ctx.Endian = codec.LittleEndian
		case "be":
			f.Ctx.Endian = codec.BigEndian
		case "msb0":
			f.Ctx.Order = bitio.Msb0
		case "lsb0":
			f.Ctx.Order = bitio.Lsb0
		default:
			n, err := strconv.Atoi(attr)
			if err != nil || n <= 0 {
				return Field{}, fmt.Errorf("field %s: unknown attribute %q", name, attr)
			}
			switch f.Kind {
			case KindBytes, KindSkip:
				f.Width = n
			default:
				f.Ctx.Size = codec.Bits(uint64(n))
			}
		}
	}
	if f.Width == 0 {
		if f.Kind == KindBytes {
			return Field{}, fmt.Errorf("field %s: bytes needs a byte count, e.g. %s=bytes/4", name, name)
		}
		return Field{}, fmt.Errorf("field %s: skip needs a bit count, e.g. %s=skip/4", name, name)
	}
	if f.Kind == KindBits && !f.Ctx.Size.IsSet() {
		return Field{}, fmt.Errorf("field %s: bits needs a width, e.g. %s=bits/5", name, name)
	}
	return f, nil
}

// ParseFields parses a whole recipe, left to right.
func ParseFields(specs []string) ([]Field, error) {
	fields := make([]Field, 0, len(specs))
	for _, spec := range specs {
		f, err := ParseField(spec)
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	return fields, nil
}

// Read consumes the field from the decoder and renders its value.
func (f Field) Read(d *codec.Decoder) (FieldValue, error) {
	start := d.R.BitsRead()
	var v interface{}
	var err error
	switch f.Kind {
	case KindUint:
		switch f.Width {
		case 8:
			v, err = d.U8(f.Ctx)
		case 16:
			v, err = d.U16(f.Ctx)
		case 32:
			v, err = d.U32(f.Ctx)
		default:
			v, err = d.U64(f.Ctx)
		}
	case KindBits:
		v, err = d.U64(f.Ctx)
	case KindInt:
		switch f.Width {
		case 8:
			v, err = d.I8(f.Ctx)
		case 16:
			v, err = d.I16(f.Ctx)
		case 32:
			v, err = d.I32(f.Ctx)
		default:
			v, err = d.I64(f.Ctx)
		}
	case KindFloat:
		if f.Width == 32 {
			v, err = d.F32(f.Ctx)
		} else {
			v, err = d.F64(f.Ctx)
		}
	case KindBool:
		v, err = d.Bool(f.Ctx)
	case KindBigUint:
		v, err = d.BigUint(f.Ctx)
	case KindBigInt:
		v, err = d.BigInt(f.Ctx)
	case KindBytes:
		p := make([]byte, f.Width)
		if err = d.Bytes(p, f.Ctx); err == nil {
			v = hexutil.Bytes(p)
		}
	case KindSkip:
		err = d.R.SkipBits(uint64(f.Width))
	}
	if err != nil {
		return FieldValue{}, err
	}
	return FieldValue{Name: f.Name, Value: v, Bits: d.R.BitsRead() - start}, nil
}
