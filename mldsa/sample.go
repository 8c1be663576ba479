package mldsa

import (
	sha3 "golang.org/x/crypto/sha3"
)

// Pseudorandom sampling of the public matrix, the secret vectors, the
// masking vector and the challenge.
//
// The rejection samplers are bounded: the probability that the bound is
// reached with a correct XOF is far below 2^-128, so reaching it means
// that something is badly broken, and we panic rather than return a
// biased polynomial.

const (
	// Maximum number of 3-byte candidates for one NTT polynomial of A.
	maxRejNTTDraws = 481

	// Maximum number of bytes (two candidates each) for one polynomial
	// of s1 or s2.
	maxRejBoundedDraws = 481

	// Maximum number of XOF bytes for one challenge, sign bits included.
	maxSampleInBallBytes = 221
)

// Sample a polynomial with uniform coefficients modulo q, directly in NTT
// representation, from the provided XOF.
func rejNTTPoly(xof sha3.ShakeHash) (a nttElement) {
	var buf [168]byte
	ptr := len(buf)
	j := 0
	for draws := 0; j < n; draws++ {
		if draws >= maxRejNTTDraws {
			panic("mldsa: RejNTTPoly exhausted its draw bound")
		}
		if ptr == len(buf) {
			xof.Read(buf[:])
			ptr = 0
		}
		x := uint32(buf[ptr]) | (uint32(buf[ptr+1]) << 8) |
			(uint32(buf[ptr+2]&0x7F) << 16)
		ptr += 3
		if x < q {
			a[j] = fieldElement(x)
			j++
		}
	}
	return
}

// Sample a polynomial with coefficients in [-eta,eta] from the provided
// XOF. Each byte yields two candidates (low nibble first).
func rejBoundedPoly(xof sha3.ShakeHash, eta int32) (a ringElement) {
	var buf [136]byte
	ptr := len(buf)
	j := 0
	for draws := 0; j < n; draws++ {
		if draws >= maxRejBoundedDraws {
			panic("mldsa: RejBoundedPoly exhausted its draw bound")
		}
		if ptr == len(buf) {
			xof.Read(buf[:])
			ptr = 0
		}
		z := buf[ptr]
		ptr++
		for _, b := range [2]int32{int32(z & 0x0F), int32(z >> 4)} {
			if j >= n {
				break
			}
			if eta == 2 {
				if b < 15 {
					a[j] = fieldFromInt32(2 - b%5)
					j++
				}
			} else {
				if b < 9 {
					a[j] = fieldFromInt32(4 - b)
					j++
				}
			}
		}
	}
	return
}

// Generate the k*l matrix A (row-major, NTT representation) from the
// public seed rho. Entry (r,s) uses SHAKE128(rho || s || r).
func expandA(p *ParameterSet, rho []byte) []nttElement {
	a := make([]nttElement, p.k*p.l)
	xof := sha3.NewShake128()
	for r := 0; r < p.k; r++ {
		for s := 0; s < p.l; s++ {
			xof.Reset()
			xof.Write(rho)
			xof.Write([]byte{uint8(s), uint8(r)})
			a[r*p.l+s] = rejNTTPoly(xof)
		}
	}
	return a
}

// Generate the secret vectors s1 (l polynomials) and s2 (k polynomials)
// from the 64-byte seed rhoPrime.
func expandS(p *ParameterSet, rhoPrime []byte) (s1 []ringElement, s2 []ringElement) {
	s1 = make([]ringElement, p.l)
	s2 = make([]ringElement, p.k)
	xof := sha3.NewShake256()
	for r := 0; r < p.l+p.k; r++ {
		xof.Reset()
		xof.Write(rhoPrime)
		xof.Write([]byte{uint8(r), uint8(r >> 8)})
		if r < p.l {
			s1[r] = rejBoundedPoly(xof, p.eta)
		} else {
			s2[r-p.l] = rejBoundedPoly(xof, p.eta)
		}
	}
	return
}

// Generate the masking vector y (l polynomials, coefficients in
// [-gamma1+1,gamma1]) into dst, from the 64-byte seed rhoPP and counter
// kappa. buf must have length zPolySize() and is left holding secret
// data; the caller scrubs it.
func expandMask(p *ParameterSet, dst []ringElement, rhoPP []byte, kappa int, buf []byte) {
	xof := sha3.NewShake256()
	g1 := p.gamma1()
	for r := 0; r < p.l; r++ {
		x := kappa + r
		xof.Reset()
		xof.Write(rhoPP)
		xof.Write([]byte{uint8(x), uint8(x >> 8)})
		xof.Read(buf)
		// All bit patterns over gamma1Bits+1 bits are valid, this cannot
		// fail.
		dst[r], _ = bitUnpack(buf, g1-1, g1)
	}
}

// Generate the challenge polynomial c, with exactly tau coefficients
// equal to +1 or -1 and all others zero, from the commitment hash c~.
func sampleInBall(p *ParameterSet, cTilde []byte) (c ringElement) {
	xof := sha3.NewShake256()
	xof.Write(cTilde)
	var buf [maxSampleInBallBytes]byte
	xof.Read(buf[:])
	signs := uint64(0)
	for i := 0; i < 8; i++ {
		signs |= uint64(buf[i]) << (8 * i)
	}
	ptr := 8
	for i := n - p.tau; i < n; i++ {
		var j int
		for {
			if ptr >= len(buf) {
				panic("mldsa: SampleInBall exhausted its draw bound")
			}
			j = int(buf[ptr])
			ptr++
			if j <= i {
				break
			}
		}
		c[i] = c[j]
		// 1 - 2*bit, i.e. +1 or q-1
		c[j] = fieldFromInt32(1 - 2*int32(signs&1))
		signs >>= 1
	}
	return
}
