package mldsa

// Arithmetic modulo q = 8380417.
//
// Field elements are held in uint32 values in the [0,q-1] range.
// Multiplications go through Montgomery reduction with R = 2^32; fieldMul
// compensates for the Montgomery factor so that callers always handle
// plain (non-Montgomery) values. None of these functions contains a
// data-dependent branch or memory access.

type fieldElement uint32

const (
	// -1/q mod 2^32
	qNegInv = 4236238847

	// 2^64 mod q
	montR2 = 2365951

	// (1/256)*2^32 mod q, scaling factor for the inverse NTT
	nInvMont = 16382
)

// Reduce a value in [0,2q-1] to [0,q-1].
func fieldReduceOnce(a uint32) fieldElement {
	a -= q
	a += q & -(a >> 31)
	return fieldElement(a)
}

// Addition modulo q.
func fieldAdd(a, b fieldElement) fieldElement {
	return fieldReduceOnce(uint32(a) + uint32(b))
}

// Subtraction modulo q.
func fieldSub(a, b fieldElement) fieldElement {
	return fieldReduceOnce(uint32(a) - uint32(b) + q)
}

// Negation modulo q.
func fieldNeg(a fieldElement) fieldElement {
	return fieldSub(0, a)
}

// Montgomery reduction: for x < q*2^32, return x/2^32 mod q.
func fieldMontReduce(x uint64) fieldElement {
	t := uint32(x) * qNegInv
	return fieldReduceOnce(uint32((x + uint64(t)*q) >> 32))
}

// Montgomery multiplication: a*b/2^32 mod q.
func fieldMontMul(a, b fieldElement) fieldElement {
	return fieldMontReduce(uint64(a) * uint64(b))
}

// Multiplication modulo q.
func fieldMul(a, b fieldElement) fieldElement {
	return fieldMontMul(fieldMontMul(a, b), montR2)
}

// Convert a signed integer in [-q+1,q-1] into a field element.
func fieldFromInt32(x int32) fieldElement {
	return fieldReduceOnce(uint32(x + q))
}

// Interpret a field element as a signed integer in [-(q-1)/2,(q-1)/2].
func fieldToCentered(a fieldElement) int32 {
	x := int32(a)
	// x > (q-1)/2  ->  subtract q
	return x - (q & (((q-1)/2 - x) >> 31))
}

// Absolute value of the centered representative of a.
func fieldAbs(a fieldElement) int32 {
	x := fieldToCentered(a)
	m := x >> 31
	return (x ^ m) - m
}
