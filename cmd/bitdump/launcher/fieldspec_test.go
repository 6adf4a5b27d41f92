package launcher

import (
	"encoding/binary"
	"math"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veldt-labs/bitcodec/bitio"
	"github.com/veldt-labs/bitcodec/bytebuf"
	"github.com/veldt-labs/bitcodec/codec"
)

func newFieldDecoder(data []byte) *codec.Decoder {
	return codec.NewDecoder(bitio.NewReader(bytebuf.NewReader(data)))
}

func TestParseField(t *testing.T) {
	for _, tc := range []struct {
		spec    string
		want    Field
		wantErr bool
	}{
		{
			spec: "version=u8/3",
			want: Field{Name: "version", Kind: KindUint, Width: 8, Ctx: codec.Ctx{Size: codec.Bits(3)}},
		},
		{
			spec: "length=u16/be/12",
			want: Field{Name: "length", Kind: KindUint, Width: 16, Ctx: codec.Ctx{Endian: codec.BigEndian, Size: codec.Bits(12)}},
		},
		{
			spec: "count=u32/le",
			want: Field{Name: "count", Kind: KindUint, Width: 32, Ctx: codec.Ctx{Endian: codec.LittleEndian}},
		},
		{
			spec: "flags=u8/lsb0",
			want: Field{Name: "flags", Kind: KindUint, Width: 8, Ctx: codec.Ctx{Order: bitio.Lsb0}},
		},
		{
			spec: "temp=i16/le",
			want: Field{Name: "temp", Kind: KindInt, Width: 16, Ctx: codec.Ctx{Endian: codec.LittleEndian}},
		},
		{
			spec: "ratio=f64",
			want: Field{Name: "ratio", Kind: KindFloat, Width: 64},
		},
		{
			spec: "ok=bool/1",
			want: Field{Name: "ok", Kind: KindBool, Width: 8, Ctx: codec.Ctx{Size: codec.Bits(1)}},
		},
		{
			spec: "flags=bits/5",
			want: Field{Name: "flags", Kind: KindBits, Width: 64, Ctx: codec.Ctx{Size: codec.Bits(5)}},
		},
		{
			spec: "id=u128",
			want: Field{Name: "id", Kind: KindBigUint, Width: 128},
		},
		{
			spec: "balance=i128/le",
			want: Field{Name: "balance", Kind: KindBigInt, Width: 128, Ctx: codec.Ctx{Endian: codec.LittleEndian}},
		},
		{
			spec: "payload=bytes/4",
			want: Field{Name: "payload", Kind: KindBytes, Width: 4},
		},
		{
			spec: "pad=skip/6",
			want: Field{Name: "pad", Kind: KindSkip, Width: 6},
		},
		{spec: "noequals", wantErr: true},
		{spec: "=u8", wantErr: true},
		{spec: "empty=", wantErr: true},
		{spec: "x=u9", wantErr: true},
		{spec: "x=u8/huh", wantErr: true},
		{spec: "x=u8/0", wantErr: true},
		{spec: "x=u8/-3", wantErr: true},
		{spec: "x=bytes", wantErr: true},
		{spec: "x=skip", wantErr: true},
		{spec: "x=bits", wantErr: true},
	} {
		t.Run(tc.spec, func(t *testing.T) {
			f, err := ParseField(tc.spec)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, f)
		})
	}
}

func TestParseFields(t *testing.T) {
	fields, err := ParseFields([]string{"a=u8", "b=u16/le"})
	require.NoError(t, err)
	require.Len(t, fields, 2)
	assert.Equal(t, "a", fields[0].Name)
	assert.Equal(t, "b", fields[1].Name)

	_, err = ParseFields([]string{"a=u8", "b=wat"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown kind")
}

func TestFieldRead_PackedHeader(t *testing.T) {
	fields, err := ParseFields([]string{"version=u8/3", "compressed=bool/1", "length=u16/be/12"})
	require.NoError(t, err)

	d := newFieldDecoder([]byte{0x51, 0x23})
	var values []FieldValue
	for _, f := range fields {
		v, err := f.Read(d)
		require.NoErrorf(t, err, "field %s", f.Name)
		values = append(values, v)
	}

	require.Len(t, values, 3)
	assert.Equal(t, uint8(2), values[0].Value)
	assert.EqualValues(t, 3, values[0].Bits)
	assert.Equal(t, true, values[1].Value)
	assert.EqualValues(t, 1, values[1].Bits)
	assert.Equal(t, uint16(0x123), values[2].Value)
	assert.EqualValues(t, 12, values[2].Bits)
}

func TestFieldRead_SkipAndBytes(t *testing.T) {
	fields, err := ParseFields([]string{"pre=skip/8", "payload=bytes/2", "tail=u8"})
	require.NoError(t, err)

	d := newFieldDecoder([]byte{0xDE, 0xAD, 0xBE, 0xEF})

	skip, err := fields[0].Read(d)
	require.NoError(t, err)
	assert.Nil(t, skip.Value)
	assert.EqualValues(t, 8, skip.Bits)

	payload, err := fields[1].Read(d)
	require.NoError(t, err)
	assert.Equal(t, hexutil.Bytes{0xAD, 0xBE}, payload.Value)
	assert.EqualValues(t, 16, payload.Bits)

	tail, err := fields[2].Read(d)
	require.NoError(t, err)
	assert.Equal(t, uint8(0xEF), tail.Value)
}

func TestFieldRead_NumericKinds(t *testing.T) {
	f, err := ParseField("temp=i16/le")
	require.NoError(t, err)
	v, err := f.Read(newFieldDecoder([]byte{0xFE, 0xFF}))
	require.NoError(t, err)
	assert.Equal(t, int16(-2), v.Value)

	f, err = ParseField("ratio=f32")
	require.NoError(t, err)
	raw := make([]byte, 4)
	binary.BigEndian.PutUint32(raw, math.Float32bits(1.5))
	v, err = f.Read(newFieldDecoder(raw))
	require.NoError(t, err)
	assert.Equal(t, float32(1.5), v.Value)

	f, err = ParseField("flags=bits/5")
	require.NoError(t, err)
	v, err = f.Read(newFieldDecoder([]byte{0xAD}))
	require.NoError(t, err)
	assert.Equal(t, uint64(0b10101), v.Value)
	assert.EqualValues(t, 5, v.Bits)
}

func TestFieldRead_BigWidths(t *testing.T) {
	data := make([]byte, 16)
	for i := range data {
		data[i] = byte(i)
	}

	f, err := ParseField("id=u128")
	require.NoError(t, err)
	v, err := f.Read(newFieldDecoder(data))
	require.NoError(t, err)
	require.IsType(t, (*big.Int)(nil), v.Value)
	assert.Zero(t, v.Value.(*big.Int).Cmp(new(big.Int).SetBytes(data)))
	assert.EqualValues(t, 128, v.Bits)
}

func TestFieldRead_Incomplete(t *testing.T) {
	f, err := ParseField("x=u32")
	require.NoError(t, err)
	_, err = f.Read(newFieldDecoder([]byte{0x01}))
	require.ErrorIs(t, err, codec.ErrIncomplete)
}
