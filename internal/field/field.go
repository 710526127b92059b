// Package field implements 256-bit modular integer arithmetic over the
// BN254 scalar field. It is the leaf-most component of the witness
// generator: every operator the graph IR supports evaluates through it.
package field

import (
	"math/big"

	"github.com/holiman/uint256"
	werrors "witness/internal/errors"
)

// Element is a field element in canonical form: an unsigned 256-bit
// integer satisfying 0 <= value < P. Arithmetic helpers on Element always
// return a canonical result or an error; they never produce a value >= P.
type Element struct {
	v uint256.Int
}

// P is the BN254 scalar field modulus.
var P = mustModulus()

func mustModulus() uint256.Int {
	// The canonical decimal form, matched against ark-bn254::Fr::MODULUS
	// and gnark-crypto's fr.Modulus().
	const decimal = "21888242871839275222246405745257275088548364400416034343698204186575808495617"
	b, ok := new(big.Int).SetString(decimal, 10)
	if !ok {
		panic("field: invalid modulus literal")
	}
	var m uint256.Int
	m.SetFromBig(b)
	return m
}

// Zero and One are the additive and multiplicative identities.
var (
	Zero = Element{}
	One  = MustFromUint64(1)
)

// FromUint64 builds a canonical Element from a small unsigned integer.
func FromUint64(v uint64) Element {
	var e Element
	e.v.SetUint64(v)
	return e
}

// MustFromUint64 is FromUint64 for compile-time-known constants.
func MustFromUint64(v uint64) Element { return FromUint64(v) }

// FromBigInt reduces v modulo P and returns the canonical Element. A
// negative v is reduced into [0, P) the same way Go's math/big.Int.Mod
// would for a Euclidean modulus.
func FromBigInt(v *big.Int) Element {
	p := P.ToBig()
	m := new(big.Int).Mod(v, p)
	var e Element
	e.v.SetFromBig(m)
	return e
}

// FromCanonicalUint256 wraps an already-reduced uint256.Int. It reports
// false (and a zero Element) if the value is not canonical; FromBigInt and
// Reduce accept any value and reduce it instead.
func FromCanonicalUint256(v uint256.Int) (Element, bool) {
	if v.Cmp(&P) >= 0 {
		return Element{}, false
	}
	return Element{v: v}, true
}

// Reduce takes an arbitrary uint256.Int lift and reduces it modulo P.
func Reduce(v uint256.Int) Element {
	var e Element
	e.v.Mod(&v, &P)
	return e
}

// Uint256 returns the canonical 256-bit lift of e.
func (e Element) Uint256() uint256.Int { return e.v }

// BigInt returns the canonical value as a math/big.Int.
func (e Element) BigInt() *big.Int { return e.v.ToBig() }

// IsZero reports whether e is the additive identity.
func (e Element) IsZero() bool { return e.v.IsZero() }

// Equal reports bit-for-bit equality of two canonical elements.
func (e Element) Equal(o Element) bool { return e.v.Eq(&o.v) }

// Less reports e < o on the canonical integer lifts.
func (e Element) Less(o Element) bool { return e.v.Lt(&o.v) }

// String renders the canonical decimal value.
func (e Element) String() string { return e.v.ToBig().String() }

// Bytes32 returns the big-endian 32-byte encoding of the canonical value.
func (e Element) Bytes32() [32]byte { return e.v.Bytes32() }

// FromBytes32 decodes a big-endian 32-byte encoding into an Element,
// reducing modulo P if the encoded integer is out of range.
func FromBytes32(b [32]byte) Element {
	var v uint256.Int
	v.SetBytes32(b[:])
	return Reduce(v)
}

// ArithError reports a failed arithmetic operation, such as division by an
// operand that lifts to zero.
type ArithError struct {
	Op string
}

func (e *ArithError) Error() string { return "field: " + e.Op + ": division by zero" }

// Code reports the stable error code for an ArithError.
func (e *ArithError) Code() werrors.Code { return werrors.ErrDivisionByZero }
