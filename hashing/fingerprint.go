package hashing

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"hash"
	"math"
	"reflect"
	"sort"

	"golang.org/x/crypto/blake2b"
)

// Size is the length in bytes of a [Sum].
const Size = blake2b.Size256

// Sum is the BLAKE2b-256 fingerprint of a value's canonical encoding.
// Sums are comparable and can be used directly as map keys.
type Sum [Size]byte

// String returns the lowercase hex form of s.
func (s Sum) String() string { return hex.EncodeToString(s[:]) }

// Fingerprinter lets host types supply their own canonical bytes.
type Fingerprinter interface {
	Fingerprint() []byte
}

// Of returns the fingerprint of v.
//
// Values that compare equal under structural equality share a fingerprint:
// numbers are encoded by value regardless of kind (1, int64(1) and 1.0 hash
// alike), string kinds by content, and containers as the sorted set of their
// key/value encodings, so []any{"x"} and map[any]any{1: "x"} hash alike.
func Of(v any) Sum {
	h, _ := blake2b.New256(nil)
	encode(h, v)
	var s Sum
	copy(s[:], h.Sum(nil))
	return s
}

// Equal reports whether a and b have the same fingerprint.
func Equal(a, b any) bool { return Of(a) == Of(b) }

const (
	tagNil    = 'n'
	tagTrue   = 't'
	tagFalse  = 'f'
	tagInt    = 'i'
	tagFloat  = 'd'
	tagString = 's'
	tagTable  = 'c'
	tagHost   = 'h'
	tagOpaque = 'o'
)

func encode(w hash.Hash, v any) {
	if v == nil {
		w.Write([]byte{tagNil})
		return
	}
	if f, ok := v.(Fingerprinter); ok {
		b := f.Fingerprint()
		w.Write([]byte{tagHost})
		writeLen(w, len(b))
		w.Write(b)
		return
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		if rv.Bool() {
			w.Write([]byte{tagTrue})
		} else {
			w.Write([]byte{tagFalse})
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		writeInt(w, rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u <= math.MaxInt64 {
			writeInt(w, int64(u))
		} else {
			writeFloat(w, float64(u))
		}
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64 {
			writeInt(w, int64(f))
		} else {
			writeFloat(w, f)
		}
	case reflect.String:
		s := rv.String()
		w.Write([]byte{tagString})
		writeLen(w, len(s))
		w.Write([]byte(s))
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			encodeTable(w, nil)
			return
		}
		pairs := make([]pair, rv.Len())
		for i := range pairs {
			pairs[i] = pair{key: keyBytes(i + 1), value: rv.Index(i).Interface()}
		}
		encodeTable(w, pairs)
	case reflect.Map:
		pairs := make([]pair, 0, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			pairs = append(pairs, pair{key: keyBytes(iter.Key().Interface()), value: iter.Value().Interface()})
		}
		encodeTable(w, pairs)
	case reflect.Pointer:
		if rv.IsNil() {
			w.Write([]byte{tagNil})
			return
		}
		encodeOpaque(w, fmt.Sprintf("%T@%x", v, rv.Pointer()))
	default:
		encodeOpaque(w, fmt.Sprintf("%T:%#v", v, v))
	}
}

type pair struct {
	key   []byte
	value any
}

func encodeTable(w hash.Hash, pairs []pair) {
	sort.Slice(pairs, func(i, j int) bool { return bytes.Compare(pairs[i].key, pairs[j].key) < 0 })
	w.Write([]byte{tagTable})
	writeLen(w, len(pairs))
	for _, p := range pairs {
		w.Write(p.key)
		encode(w, p.value)
	}
}

func keyBytes(k any) []byte {
	h, _ := blake2b.New256(nil)
	encode(h, k)
	return h.Sum(nil)
}

func encodeOpaque(w hash.Hash, s string) {
	w.Write([]byte{tagOpaque})
	writeLen(w, len(s))
	w.Write([]byte(s))
}

func writeInt(w hash.Hash, n int64) {
	var buf [9]byte
	buf[0] = tagInt
	binary.BigEndian.PutUint64(buf[1:], uint64(n))
	w.Write(buf[:])
}

func writeFloat(w hash.Hash, f float64) {
	var buf [9]byte
	buf[0] = tagFloat
	binary.BigEndian.PutUint64(buf[1:], math.Float64bits(f))
	w.Write(buf[:])
}

func writeLen(w hash.Hash, n int) {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(n))
	w.Write(buf[:])
}
