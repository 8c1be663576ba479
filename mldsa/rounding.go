package mldsa

// Rounding functions.

// Split r into (r1, r0) with r = r1*2^d + r0 mod q and r0 in
// (-2^(d-1), 2^(d-1)]. r1 is in [0, 2^10-1]; r0 is returned modulo q.
func power2Round(r fieldElement) (r1 fieldElement, r0 fieldElement) {
	x := int32(r)
	h := (x + (1 << (d - 1)) - 1) >> d
	return fieldElement(h), fieldFromInt32(x - (h << d))
}

// Split r into (r1, r0) with r = r1*(2*gamma2) + r0 mod q, r0 in
// (-gamma2, gamma2], except for the corner case r - r0 = q - 1, where
// r1 = 0 and r0 is decremented. Only the two standard gamma2 values are
// supported. The computation is branch-free with regard to r.
func decompose(r fieldElement, gamma2 int32) (r1 int32, r0 int32) {
	x := int32(r)
	r1 = (x + 127) >> 7
	if gamma2 == (q-1)/32 {
		r1 = (r1*1025 + (1 << 21)) >> 22
		r1 &= 15
	} else {
		r1 = (r1*11275 + (1 << 23)) >> 24
		r1 ^= ((43 - r1) >> 31) & r1
	}
	r0 = x - r1*2*gamma2
	r0 -= (((q-1)/2 - r0) >> 31) & q
	return
}

func highBits(r fieldElement, gamma2 int32) int32 {
	r1, _ := decompose(r, gamma2)
	return r1
}

func lowBits(r fieldElement, gamma2 int32) int32 {
	_, r0 := decompose(r, gamma2)
	return r0
}

// Return 1 if adding z to r changes the high bits of r, 0 otherwise.
func makeHint(z, r fieldElement, gamma2 int32) fieldElement {
	x := highBits(r, gamma2) ^ highBits(fieldAdd(r, z), gamma2)
	return fieldElement(uint32(x|-x) >> 31)
}

// Recover the high bits of r+z, given r and the hint computed by
// makeHint(z, r). This is used on public values only.
func useHint(h fieldElement, r fieldElement, gamma2 int32) int32 {
	m := (q - 1) / (2 * gamma2)
	r1, r0 := decompose(r, gamma2)
	if h == 0 {
		return r1
	}
	if r0 > 0 {
		if r1 == m-1 {
			return 0
		}
		return r1 + 1
	}
	if r1 == 0 {
		return m - 1
	}
	return r1 - 1
}
