package common

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"github.com/consensys/gnark-crypto/ecc/stark-curve/fp"
)

// FeltSize is the length of the big-endian byte encoding of a Felt.
const FeltSize = fp.Bytes

const (
	ErrFeltOverflow = ConstError("value exceeds the field modulus")
	ErrInvalidHex   = ConstError("invalid hex encoding")
)

// Felt is an element of the Stark prime field p = 2^251 + 17*2^192 + 1. The
// zero value is the field's zero. Felts are comparable and may be used as map
// keys, since every field element has a unique internal representation.
type Felt struct {
	val fp.Element
}

var maxFelt = func() Felt {
	var f Felt
	f.val.SetOne()
	f.val.Neg(&f.val)
	return f
}()

// MaxFelt returns p-1, the largest element of the field.
func MaxFelt() Felt {
	return maxFelt
}

// FieldModulus returns the prime p of the field.
func FieldModulus() *big.Int {
	return fp.Modulus()
}

// FeltFromUint64 converts the given integer into a field element.
func FeltFromUint64(v uint64) Felt {
	var f Felt
	f.val.SetUint64(v)
	return f
}

// FeltFromBytes interprets the given bytes as a big-endian integer. Values not
// smaller than the field modulus are rejected instead of being reduced.
func FeltFromBytes(b []byte) (Felt, error) {
	// Leading zeros are irrelevant for the value.
	for len(b) > FeltSize && b[0] == 0 {
		b = b[1:]
	}
	if len(b) > FeltSize {
		return Felt{}, fmt.Errorf("%w: %d bytes", ErrFeltOverflow, len(b))
	}
	if new(big.Int).SetBytes(b).Cmp(fp.Modulus()) >= 0 {
		return Felt{}, fmt.Errorf("%w: 0x%x", ErrFeltOverflow, b)
	}
	var f Felt
	f.val.SetBytes(b)
	return f, nil
}

// HexToFelt parses a hex string with an optional 0x prefix.
func HexToFelt(s string) (Felt, error) {
	digits := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if len(digits) == 0 {
		return Felt{}, fmt.Errorf("%w: %q", ErrInvalidHex, s)
	}
	if len(digits)%2 == 1 {
		digits = "0" + digits
	}
	b, err := hex.DecodeString(digits)
	if err != nil {
		return Felt{}, fmt.Errorf("%w: %q", ErrInvalidHex, s)
	}
	return FeltFromBytes(b)
}

// MustHexToFelt is like HexToFelt but panics on invalid input. It is intended
// for constants and tests.
func MustHexToFelt(s string) Felt {
	f, err := HexToFelt(s)
	if err != nil {
		panic(err)
	}
	return f
}

// Bytes returns the big-endian encoding of the element.
func (f Felt) Bytes() [FeltSize]byte {
	return f.val.Bytes()
}

func (f Felt) IsZero() bool {
	return f.val.IsZero()
}

// Cmp compares the integer values of f and o and returns -1, 0, or 1.
func (f Felt) Cmp(o Felt) int {
	return f.val.Cmp(&o.val)
}

// Add returns f + o in the field.
func (f Felt) Add(o Felt) Felt {
	var res Felt
	res.val.Add(&f.val, &o.val)
	return res
}

// Uint64 returns the value of f if it fits into 64 bits.
func (f Felt) Uint64() (uint64, bool) {
	b := f.Bytes()
	for _, cur := range b[:FeltSize-8] {
		if cur != 0 {
			return 0, false
		}
	}
	return binary.BigEndian.Uint64(b[FeltSize-8:]), true
}

func (f Felt) String() string {
	return "0x" + f.val.Text(16)
}

func (f Felt) MarshalJSON() ([]byte, error) {
	return []byte(`"` + f.String() + `"`), nil
}

func (f *Felt) UnmarshalJSON(data []byte) error {
	str := string(data)
	if len(str) < 2 || str[0] != '"' || str[len(str)-1] != '"' {
		return fmt.Errorf("%w: felt must be a JSON string, got %s", ErrInvalidHex, str)
	}
	res, err := HexToFelt(str[1 : len(str)-1])
	if err != nil {
		return err
	}
	*f = res
	return nil
}
