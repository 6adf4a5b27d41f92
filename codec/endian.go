package codec

import "encoding/binary"

// Endian selects the byte order of multi-byte values. The zero value is
// Native, which resolves to the host's byte order at runtime.
type Endian uint8

const (
	Native Endian = iota
	LittleEndian
	BigEndian
)

// hostLittle records the host byte order, resolved once at startup.
var hostLittle = binary.NativeEndian.Uint16([]byte{0x01, 0x00}) == 0x0001

// NativeEndian returns the concrete byte order Native resolves to on this
// host.
func NativeEndian() Endian {
	if hostLittle {
		return LittleEndian
	}
	return BigEndian
}

func (e Endian) String() string {
	switch e {
	case Native:
		return "native"
	case LittleEndian:
		return "little"
	case BigEndian:
		return "big"
	}
	return "unknown"
}

// little reports whether values under this endianness lay out their least
// significant byte first.
func (e Endian) little() bool {
	switch e {
	case LittleEndian:
		return true
	case BigEndian:
		return false
	}
	return hostLittle
}
