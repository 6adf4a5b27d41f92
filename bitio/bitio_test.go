package bitio

import (
	"bytes"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testWord represents a single value to write and read back from the stream.
// 'bits' is the number of bits the value occupies (e.g., 5 bits).
// 'v' is the actual integer value.
type testWord struct {
	bits int
	v    uint64
}

// bytesToFit calculates the minimum number of bytes required to store a given
// number of bits. For example, 9 bits require 2 bytes.
func bytesToFit(bits int) int {
	if bits%8 == 0 {
		return bits / 8
	}
	return bits/8 + 1
}

// genTestWords generates a slice of random testWords for fuzz-like testing.
// maxCount: maximum number of words to generate.
// maxBits: maximum number of bits a single word can use.
func genTestWords(r *rand.Rand, maxCount int, maxBits int) []testWord {
	count := r.Intn(maxCount)
	words := make([]testWord, count)
	for i := range words {
		if maxBits == 1 {
			words[i].bits = 1
		} else {
			words[i].bits = 1 + r.Intn(maxBits-1)
		}
		words[i].v = r.Uint64() & mask(words[i].bits)
	}
	return words
}

// testBitStream is the core assertion logic used by the randomized tests.
// It performs a full cycle under one bit order:
// 1. Writes all words through a Writer and finalizes.
// 2. Verifies the output length and the write counter.
// 3. Reads all words back and verifies they match the originals.
// 4. Verifies the finalize padding is zero and the stream is exhausted.
func testBitStream(t *testing.T, words []testWord, o Order, name string) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	totalBits := 0
	for i, word := range words {
		require.NoErrorf(t, w.WriteBitsOrder(word.v, word.bits, o), "%s: write #%d", name, i)
		totalBits += word.bits
	}
	assert.EqualValuesf(t, totalBits, w.BitsWritten(), "%s: BitsWritten mismatch", name)

	require.NoErrorf(t, w.Finalize(), "%s: finalize", name)
	require.NoErrorf(t, w.Finalize(), "%s: repeated finalize", name)
	assert.EqualValuesf(t, bytesToFit(totalBits), buf.Len(), "%s: byte length mismatch", name)

	r := NewReader(bytes.NewReader(buf.Bytes()))
	totalRead := 0
	for i, word := range words {
		v, err := r.ReadBitsOrder(word.bits, o)
		require.NoErrorf(t, err, "%s: read #%d", name, i)
		assert.EqualValuesf(t, word.v, v, "%s: read value mismatch at #%d", name, i)
		totalRead += word.bits
		assert.EqualValuesf(t, totalRead, r.BitsRead(), "%s: BitsRead mismatch after #%d", name, i)
	}

	// The only bits left are the finalize padding, and they must be zero.
	if pad := bytesToFit(totalBits)*8 - totalBits; pad > 0 {
		v, err := r.ReadBitsOrder(pad, o)
		require.NoErrorf(t, err, "%s: pad read", name)
		assert.EqualValuesf(t, 0, v, "%s: padding bits must be zero", name)
	}
	assert.Truef(t, r.AtEnd(), "%s: stream should be exhausted", name)

	_, err := r.ReadBitsOrder(1, o)
	assert.ErrorIsf(t, err, ErrIncomplete, "%s: read past end", name)
}

func testBothOrders(t *testing.T, words []testWord, name string) {
	for _, o := range []Order{Msb0, Lsb0} {
		testBitStream(t, words, o, fmt.Sprintf("%s/%s", name, o))
	}
}

// TestBitStreamEmpty verifies that an empty word set produces an empty stream.
func TestBitStreamEmpty(t *testing.T) {
	testBothOrders(t, []testWord{}, "empty")
}

// TestBitStreamB0 verifies writing a single bit of value '0'.
func TestBitStreamB0(t *testing.T) {
	testBothOrders(t, []testWord{
		{1, 0b0},
	}, "b0")
}

// TestBitStreamB1 verifies writing a single bit of value '1'.
func TestBitStreamB1(t *testing.T) {
	testBothOrders(t, []testWord{
		{1, 0b1},
	}, "b1")
}

// TestBitStreamPattern01 verifies an alternating 9-bit pattern.
// This tests crossing a byte boundary (8 bits + 1 bit).
func TestBitStreamPattern01(t *testing.T) {
	testBothOrders(t, []testWord{
		{9, 0b010101010},
	}, "b010101010")
}

// TestBitStreamPatternLong verifies a 17-bit pattern.
// This tests crossing multiple byte boundaries (8 + 8 + 1).
func TestBitStreamPatternLong(t *testing.T) {
	testBothOrders(t, []testWord{
		{17, 0b01010101010101010},
	}, "b01010101010101010")
}

// TestBitStreamBoundaries explicitly targets byte boundaries to ensure
// off-by-one errors don't occur during writes that span bytes.
func TestBitStreamBoundaries(t *testing.T) {
	tests := []struct {
		name  string
		words []testWord
	}{
		{
			name:  "Aligned Byte",
			words: []testWord{{8, 0xFF}},
		},
		{
			name:  "Byte + 4 bits",
			words: []testWord{{8, 0xFF}, {4, 0xA}},
		},
		{
			name:  "4 bits + Byte (Crossing boundary)",
			words: []testWord{{4, 0xA}, {8, 0xFF}},
		},
		{
			name:  "Exact 16 bits",
			words: []testWord{{16, 0xFFFF}},
		},
		{
			name:  "Full 64-bit word",
			words: []testWord{{64, 0xDEADBEEFCAFEBABE}},
		},
		{
			name:  "1 bit + 64-bit word",
			words: []testWord{{1, 1}, {64, 0xFFFFFFFFFFFFFFFF}},
		},
		{
			name:  "7 bits + 64-bit word",
			words: []testWord{{7, 0x55}, {64, 0x0123456789ABCDEF}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			testBothOrders(t, tc.words, tc.name)
		})
	}
}

// TestBitStreamRand1 runs 50 random iterations of writing multiple 1-bit
// words, effectively a stream of booleans.
func TestBitStreamRand1(t *testing.T) {
	r := rand.New(rand.NewSource(0))
	for i := 0; i < 50; i++ {
		testBothOrders(t, genTestWords(r, 24, 1), fmt.Sprintf("1 bit, case#%d", i))
	}
}

// TestBitStreamRand8 runs 50 random iterations where words are up to 8 bits
// long, mixing byte-aligned and non-aligned writes.
func TestBitStreamRand8(t *testing.T) {
	r := rand.New(rand.NewSource(0))
	for i := 0; i < 50; i++ {
		testBothOrders(t, genTestWords(r, 100, 8), fmt.Sprintf("8 bits, case#%d", i))
	}
}

// TestBitStreamRand17 runs 50 random iterations where words are up to 17 bits
// long, testing values larger than a single byte.
func TestBitStreamRand17(t *testing.T) {
	r := rand.New(rand.NewSource(0))
	for i := 0; i < 50; i++ {
		testBothOrders(t, genTestWords(r, 50, 17), fmt.Sprintf("17 bits, case#%d", i))
	}
}

// TestBitStreamRand64 runs 50 random iterations with words up to the full
// 64-bit carrier width.
func TestBitStreamRand64(t *testing.T) {
	r := rand.New(rand.NewSource(0))
	for i := 0; i < 50; i++ {
		testBothOrders(t, genTestWords(r, 30, 64), fmt.Sprintf("64 bits, case#%d", i))
	}
}

// BenchmarkWriter_WriteBits measures performance of writing fixed-size bit
// chunks.
func BenchmarkWriter_WriteBits(b *testing.B) {
	for nbits := 1; nbits <= 9; nbits++ {
		b.Run(fmt.Sprintf("%d bits", nbits), func(b *testing.B) {
			var buf bytes.Buffer
			buf.Grow(bytesToFit(nbits * b.N))
			w := NewWriter(&buf)
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				_ = w.WriteBits(0xff, nbits)
			}
		})
	}
}

// BenchmarkReader_ReadBits measures performance of reading fixed-size bit
// chunks.
func BenchmarkReader_ReadBits(b *testing.B) {
	for nbits := 1; nbits <= 9; nbits++ {
		b.Run(fmt.Sprintf("%d bits", nbits), func(b *testing.B) {
			data := make([]byte, bytesToFit(nbits*b.N))
			r := NewReader(bytes.NewReader(data))
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				_, _ = r.ReadBits(nbits)
			}
		})
	}
}

// BenchmarkReader_ReadFull compares the aligned fast path against the
// mid-byte assembly path.
func BenchmarkReader_ReadFull(b *testing.B) {
	const chunk = 64
	data := make([]byte, chunk)

	b.Run("aligned", func(b *testing.B) {
		p := make([]byte, chunk)
		for i := 0; i < b.N; i++ {
			r := NewReader(bytes.NewReader(data))
			_, _ = r.ReadFull(p)
		}
	})
	b.Run("mid-byte", func(b *testing.B) {
		p := make([]byte, chunk-1)
		for i := 0; i < b.N; i++ {
			r := NewReader(bytes.NewReader(data))
			_, _ = r.ReadBits(3)
			_, _ = r.ReadFull(p)
		}
	})
}
