package compare

// hashSeed is the fixed starting value for every hash this package
// computes. It doubles as the "empty content" sentinel: a zero-length
// line, word or char always hashes to exactly this value, so callers can
// test for emptiness with a single comparison instead of checking length
// separately (see the ignoreEmptyLines fast path in lineextract.go). The
// teacher randomizes an equivalent seed per process (dm/hash.go); this
// package cannot, because the empty-line sentinel and the options tests
// in §8 of the spec require it to be stable across runs.
const hashSeed uint64 = 0x84222325

// mix folds one byte into a running hash. It is the same shape as the
// original engine's Hash(hval, letter): XOR in the byte, then add several
// shifted copies of the result so that nearby bytes spread across the
// whole 64-bit word instead of only the low bits.
func mix(hval uint64, b byte) uint64 {
	hval ^= uint64(b)
	hval += (hval << 1) + (hval << 4) + (hval << 5) + (hval << 7) + (hval << 8) + (hval << 40)
	return hval
}

// hashBytes computes the hash of a byte slice, applying case folding
// and/or whitespace skipping first if requested. Every granularity-level
// hash (line, word, char) bottoms out here.
func hashBytes(b []byte, ignoreCase, ignoreSpaces bool) uint64 {
	h := hashSeed
	for _, c := range b {
		if ignoreSpaces && (c == ' ' || c == '\t') {
			continue
		}
		if ignoreCase && c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		h = mix(h, c)
	}
	return h
}

// LineHash hashes one extracted line under the given options.
func LineHash(line []byte, opts CompareOptions) uint64 {
	return hashBytes(line, opts.IgnoreCase, opts.IgnoreSpaces)
}

// WordHash hashes one word token. Word boundaries already account for
// ignoreSpaces (space-class runs are never emitted as words), so only case
// folding is applied here.
func WordHash(word []byte, opts CompareOptions) uint64 {
	return hashBytes(word, opts.IgnoreCase, false)
}

// CharHash hashes a single character (which may be multiple bytes for a
// non-ASCII rune).
func CharHash(ch []byte, opts CompareOptions) uint64 {
	return hashBytes(ch, opts.IgnoreCase, false)
}

// isEmptyHash reports whether h is the hash of zero content, i.e. the
// unmodified seed.
func isEmptyHash(h uint64) bool {
	return h == hashSeed
}
