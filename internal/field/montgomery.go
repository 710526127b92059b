package field

import "math/big"

// rInv is R^-1 mod P, where R = 2^256. It is the one constant needed to
// turn a Montgomery-form 256-bit integer into its canonical value with a
// single multiply-and-reduce, independent of how those limbs were produced.
//
// Computed once at package init via math/big rather than hand-transcribed
// as a literal: this value is derived, not specified, and deriving it from
// P removes any chance of a transcription error in a 254-bit constant.
var rInv = computeRInv()

func computeRInv() *big.Int {
	p := P.ToBig()
	r := new(big.Int).Lsh(big.NewInt(1), 256)
	r.Mod(r, p)
	inv := new(big.Int).ModInverse(r, p)
	if inv == nil {
		panic("field: 2^256 has no inverse mod P")
	}
	return inv
}

// FromMontgomery converts a constant whose 32 stored bytes are the
// Montgomery-form representation (value * R mod P, R = 2^256) into its
// canonical Element. This is the single Montgomery reduction the spec
// calls for at constant-deserialization time; it is not used anywhere in
// the hot evaluation path.
func FromMontgomery(montBytes [32]byte) Element {
	mont := FromBytes32(montBytes)
	canonical := new(big.Int).Mul(mont.BigInt(), rInv)
	return FromBigInt(canonical)
}
