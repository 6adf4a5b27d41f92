package codec

// A Limit tells ReadSeq when a variable-length sequence stops. The four
// stopping rules cover a fixed element count, a predicate on the last
// element, a fixed amount of input, and exhausting the stream.
type Limit[T any] struct {
	kind  limitKind
	count uint64
	pred  func(T) bool
	size  Size
}

type limitKind uint8

const (
	limitCount limitKind = iota
	limitUntil
	limitSized
	limitToEnd
)

// Count stops after exactly n elements. Count(0) yields an empty sequence
// without touching the stream.
func Count[T any](n uint64) Limit[T] {
	return Limit[T]{kind: limitCount, count: n}
}

// Until stops after the first element for which pred holds. The matching
// element is included in the result.
func Until[T any](pred func(T) bool) Limit[T] {
	return Limit[T]{kind: limitUntil, pred: pred}
}

// Sized stops once the sequence has consumed exactly the given amount of
// input. An element straddling the boundary is an error, not a truncated
// element.
func Sized[T any](s Size) Limit[T] {
	return Limit[T]{kind: limitSized, size: s}
}

// ToEnd stops when the stream is exhausted.
func ToEnd[T any]() Limit[T] {
	return Limit[T]{kind: limitToEnd}
}

// ElemReader decodes a single element. The method values of Decoder satisfy
// it directly, so (*Decoder).U8 is a valid element reader.
type ElemReader[T any] func(*Decoder, Ctx) (T, error)

// ElemWriter encodes a single element, mirroring ElemReader for the method
// values of Encoder.
type ElemWriter[T any] func(*Encoder, T, Ctx) error

// ReadSeq decodes a variable-length sequence of elements, each under the
// same context, stopping per lim. Element errors propagate as they are, so
// a sequence that runs off the stream reports the failing element's
// truncation.
func ReadSeq[T any](d *Decoder, lim Limit[T], elem ElemReader[T], c Ctx) ([]T, error) {
	switch lim.kind {
	case limitCount:
		// The preallocation is capped so a hostile count hits Incomplete
		// before it can reserve memory.
		capHint := lim.count
		if capHint > 1024 {
			capHint = 1024
		}
		out := make([]T, 0, capHint)
		for i := uint64(0); i < lim.count; i++ {
			v, err := elem(d, c)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil

	case limitUntil:
		if lim.pred == nil {
			return nil, &InvalidParamError{Msg: "Until limit without a predicate"}
		}
		var out []T
		for {
			v, err := elem(d, c)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
			if lim.pred(v) {
				return out, nil
			}
		}

	case limitSized:
		if !lim.size.IsSet() {
			return nil, &InvalidParamError{Msg: "Sized limit without an explicit size"}
		}
		target := lim.size.BitCount()
		out := []T{}
		start := d.R.BitsRead()
		for d.R.BitsRead()-start < target {
			v, err := elem(d, c)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		if used := d.R.BitsRead() - start; used > target {
			return nil, &SizeMismatchError{Need: used, Capacity: target}
		}
		return out, nil

	case limitToEnd:
		out := []T{}
		for !d.R.AtEnd() {
			v, err := elem(d, c)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	}
	return nil, &InvalidParamError{Msg: "unknown limit kind"}
}

// WriteSeq encodes every element of items under the same context. The write
// side needs no limit: the stopping rule is a property of the wire format,
// already reflected in what the caller assembled.
func WriteSeq[T any](e *Encoder, items []T, elem ElemWriter[T], c Ctx) error {
	for _, v := range items {
		if err := elem(e, v, c); err != nil {
			return err
		}
	}
	return nil
}
