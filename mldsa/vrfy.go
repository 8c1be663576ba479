package mldsa

import (
	"crypto"
	"crypto/subtle"
)

// Verify an ML-DSA signature.
//
//	- vk is the verifying key (public)
//	- ctx is the domain-separation context string
//	- id identifies the pre-hash function (0 for raw message)
//	- data is the pre-hashed message (or message itself if id is zero)
//	- sig is the signature to verify
//
// Returned value is true for a valid signature, false otherwise. A
// signature of the wrong length or with a non-canonical encoding is
// invalid; so is any signature when the context is oversized or the
// pre-hash identifier is unsupported.
func Verify(vk *VerifyingKey,
	ctx DomainContext, id crypto.Hash, data []byte, sig []byte) bool {

	if vk == nil {
		return false
	}
	p := vk.params
	cTilde, z, h, err := decodeSignature(p, sig)
	if err != nil {
		return false
	}

	// Structural checks; all values here are public.
	if vecNormAtLeast(z, p.gamma1()-p.beta()) != 0 {
		return false
	}
	if vecWeight(h) > p.omega {
		return false
	}
	c := sampleInBall(p, cTilde)
	if challengeWeight(&c) != p.tau {
		return false
	}

	mu, err := hashMessage(vk.tr[:], ctx, id, data)
	if err != nil {
		return false
	}

	// w'approx = NTT^-1(A*NTT(z) - NTT(c)*NTT(t1*2^d))
	zNTT := make([]nttElement, p.l)
	vecNTT(zNTT, z)
	wNTT := make([]nttElement, p.k)
	matVecMulNTT(wNTT, vk.a, zNTT)
	cNTT := ntt(c)
	w1 := make([]ringElement, p.k)
	g2 := p.gamma2
	for i := 0; i < p.k; i++ {
		w := invNTT(polySub(wNTT[i], nttMul(cNTT, vk.t1NTT[i])))
		for j := 0; j < n; j++ {
			w1[i][j] = fieldElement(useHint(h[i][j], w[j], g2))
		}
	}

	// c~' = H(mu || w1Encode(w1'))
	w1Buf := make([]byte, p.k*p.w1PolySize())
	_ = w1Encode(p, w1Buf, w1)
	cTilde2 := make([]byte, p.cTildeSize())
	shake256(cTilde2, mu[:], w1Buf)
	return subtle.ConstantTimeCompare(cTilde, cTilde2) == 1
}

// Count the non-zero coefficients of a challenge polynomial.
func challengeWeight(c *ringElement) int {
	w := 0
	for j := 0; j < n; j++ {
		if c[j] != 0 {
			w++
		}
	}
	return w
}
