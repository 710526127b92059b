package inputs

// FNV1a hashes name with the 64-bit FNV-1a algorithm (§4.7). It is
// hand-written rather than built on the standard library's hash/fnv:
// the constants table format pins this exact algorithm and the spec's
// own test vectors (P8) are the authority we need to match byte-for-byte,
// so there is no benefit to routing through a generic hash.Hash wrapper.
func FNV1a(name string) uint64 {
	const (
		offsetBasis uint64 = 0xCBF29CE484222325
		prime       uint64 = 0x100000001B3
	)
	h := offsetBasis
	for i := 0; i < len(name); i++ {
		h ^= uint64(name[i])
		h *= prime
	}
	return h
}
