package field

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/holiman/uint256"
)

// The arithmetic kernel splits cleanly in two:
//
//   - Add, Sub, Mul, Div and Pow are genuine field operations: their
//     result depends on P. These are computed by bridging through
//     gnark-crypto's fr.Element, the Montgomery-form BN254 scalar-field
//     type the wider ecosystem already uses for exactly this arithmetic
//     (gnark's Exp/Inverse give correct, constant-time modular
//     exponentiation and Fermat inversion without us hand-rolling either).
//   - Idiv, Mod, the bitwise ops, the shifts, and the comparison/logical
//     predicates operate on the plain 256-bit integer lift of each
//     operand (ignoring P except for the final reduction), and stay in
//     uint256.Int, which exposes exactly that flavor of arithmetic.

func (e Element) toFr() fr.Element {
	var z fr.Element
	z.SetBigInt(e.BigInt())
	return z
}

func fromFr(z *fr.Element) Element {
	var bi big.Int
	z.BigInt(&bi)
	return FromBigInt(&bi)
}

// Add returns (e+o) mod P.
func (e Element) Add(o Element) Element {
	a, b := e.toFr(), o.toFr()
	var z fr.Element
	z.Add(&a, &b)
	return fromFr(&z)
}

// Sub returns (e-o) mod P.
func (e Element) Sub(o Element) Element {
	a, b := e.toFr(), o.toFr()
	var z fr.Element
	z.Sub(&a, &b)
	return fromFr(&z)
}

// Mul returns (e*o) mod P.
func (e Element) Mul(o Element) Element {
	a, b := e.toFr(), o.toFr()
	var z fr.Element
	z.Mul(&a, &b)
	return fromFr(&z)
}

// Neg returns (-e) mod P.
func (e Element) Neg() Element {
	a := e.toFr()
	var z fr.Element
	z.Neg(&a)
	return fromFr(&z)
}

// Inverse returns e^-1 mod P, or an ArithError if e is zero.
func (e Element) Inverse() (Element, error) {
	if e.IsZero() {
		return Element{}, &ArithError{Op: "inverse"}
	}
	a := e.toFr()
	var z fr.Element
	z.Inverse(&a)
	return fromFr(&z), nil
}

// Div returns e * o^-1 mod P, or an ArithError if o is zero.
func (e Element) Div(o Element) (Element, error) {
	inv, err := o.Inverse()
	if err != nil {
		return Element{}, &ArithError{Op: "div"}
	}
	return e.Mul(inv), nil
}

// Pow returns e^exp mod P, where exp is the integer lift of the exponent
// operand. Pow(x, 0) == 1 even when x == 0, matching Fermat-exponentiation
// convention.
func (e Element) Pow(exp Element) Element {
	a := e.toFr()
	var z fr.Element
	z.Exp(a, exp.BigInt())
	return fromFr(&z)
}

// Idiv returns floor(e/o) on the integer lifts, reduced modulo P, or an
// ArithError if o lifts to zero.
func (e Element) Idiv(o Element) (Element, error) {
	if o.IsZero() {
		return Element{}, &ArithError{Op: "idiv"}
	}
	var q uint256.Int
	q.Div(&e.v, &o.v)
	return Reduce(q), nil
}

// Mod returns e mod o on the integer lifts, reduced modulo P, or an
// ArithError if o lifts to zero.
func (e Element) Mod(o Element) (Element, error) {
	if o.IsZero() {
		return Element{}, &ArithError{Op: "mod"}
	}
	var r uint256.Int
	r.Mod(&e.v, &o.v)
	return Reduce(r), nil
}

// Eq returns 1 if e == o on the integer lifts, else 0.
func (e Element) Eq(o Element) Element { return boolElement(e.v.Eq(&o.v)) }

// Neq returns 1 if e != o on the integer lifts, else 0.
func (e Element) Neq(o Element) Element { return boolElement(!e.v.Eq(&o.v)) }

// Lt returns 1 if e < o on the integer lifts, else 0.
func (e Element) Lt(o Element) Element { return boolElement(e.v.Lt(&o.v)) }

// Gt returns 1 if e > o on the integer lifts, else 0.
func (e Element) Gt(o Element) Element { return boolElement(e.v.Gt(&o.v)) }

// Leq returns 1 if e <= o on the integer lifts, else 0.
func (e Element) Leq(o Element) Element { return boolElement(!e.v.Gt(&o.v)) }

// Geq returns 1 if e >= o on the integer lifts, else 0.
func (e Element) Geq(o Element) Element { return boolElement(!e.v.Lt(&o.v)) }

// Land returns the short-circuit-style logical AND of the two operands'
// truthiness (nonzero-as-truth), as 0 or 1.
func (e Element) Land(o Element) Element {
	return boolElement(!e.v.IsZero() && !o.v.IsZero())
}

// Lor returns the logical OR of the two operands' truthiness, as 0 or 1.
func (e Element) Lor(o Element) Element {
	return boolElement(!e.v.IsZero() || !o.v.IsZero())
}

// Band returns (e & o) on the integer lifts, reduced modulo P.
func (e Element) Band(o Element) Element {
	var z uint256.Int
	z.And(&e.v, &o.v)
	return Reduce(z)
}

// Bor returns (e | o) on the integer lifts, reduced modulo P.
func (e Element) Bor(o Element) Element {
	var z uint256.Int
	z.Or(&e.v, &o.v)
	return Reduce(z)
}

// Bxor returns (e ^ o) on the integer lifts, reduced modulo P.
func (e Element) Bxor(o Element) Element {
	var z uint256.Int
	z.Xor(&e.v, &o.v)
	return Reduce(z)
}

// Shl returns e shifted left by o's low bits on the integer lift of e,
// reduced modulo P.
func (e Element) Shl(o Element) Element {
	var z uint256.Int
	shift := shiftAmount(o)
	z.Lsh(&e.v, shift)
	return Reduce(z)
}

// Shr returns e shifted right by o's low bits on the integer lift of e,
// reduced modulo P.
func (e Element) Shr(o Element) Element {
	var z uint256.Int
	shift := shiftAmount(o)
	z.Rsh(&e.v, shift)
	return Reduce(z)
}

// shiftAmount clamps a shift operand to uint256's native shift count; any
// value >= 256 shifts a 256-bit lift to all-zero regardless of the exact
// magnitude, matching standard big-unsigned-integer shift semantics.
func shiftAmount(o Element) uint {
	if o.v.BitLen() > 32 || o.v.Uint64() >= 256 {
		return 256
	}
	return uint(o.v.Uint64())
}

func boolElement(b bool) Element {
	if b {
		return One
	}
	return Zero
}
