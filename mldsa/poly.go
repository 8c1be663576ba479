package mldsa

// Vector and matrix helpers. Vectors are plain slices of polynomials; a
// k*l matrix is a slice of k*l polynomials in row-major order.

// Convert a vector to NTT representation; dst and src have the same length.
func vecNTT(dst []nttElement, src []ringElement) {
	for i := range src {
		dst[i] = ntt(src[i])
	}
}

// Compute dst = A*v, with A a len(dst)*len(v) matrix; all operands are
// in NTT representation.
func matVecMulNTT(dst []nttElement, a []nttElement, v []nttElement) {
	l := len(v)
	for i := range dst {
		var acc nttElement
		row := a[i*l : (i+1)*l]
		for j := 0; j < l; j++ {
			acc = polyAdd(acc, nttMul(row[j], v[j]))
		}
		dst[i] = acc
	}
}

// Return 1 if any coefficient of the vector has a centered absolute
// value greater than or equal to bound, 0 otherwise. All coefficients are
// always scanned, and no branch depends on their values.
func vecNormAtLeast(v []ringElement, bound int32) uint32 {
	var r int32
	for i := range v {
		for j := 0; j < n; j++ {
			// bound-1-|x| is negative exactly when |x| >= bound.
			r |= (bound - 1) - fieldAbs(v[i][j])
		}
	}
	return uint32(r) >> 31
}

// Same as vecNormAtLeast(), for values that are already given as
// signed integers.
func signedNormAtLeast(v [][n]int32, bound int32) uint32 {
	var r int32
	for i := range v {
		for j := 0; j < n; j++ {
			x := v[i][j]
			m := x >> 31
			r |= (bound - 1) - ((x ^ m) - m)
		}
	}
	return uint32(r) >> 31
}

// Count the non-zero coefficients of a vector of 0/1 polynomials.
func vecWeight(v []ringElement) int {
	w := uint32(0)
	for i := range v {
		for j := 0; j < n; j++ {
			w += uint32(v[i][j])
		}
	}
	return int(w)
}

// Secret values are overwritten explicitly when no longer needed, on
// every exit path, instead of being left to the garbage collector.

func scrubBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

func scrubRing(v []ringElement) {
	for i := range v {
		v[i] = ringElement{}
	}
}

func scrubNTT(v []nttElement) {
	for i := range v {
		v[i] = nttElement{}
	}
}

func scrubSigned(v [][n]int32) {
	for i := range v {
		v[i] = [n]int32{}
	}
}
