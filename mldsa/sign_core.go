package mldsa

import (
	"golang.org/x/xerrors"
)

// Maximum number of attempts of the signing loop. The expected number of
// attempts is at most 5.1 (for ML-DSA-65); the probability of needing
// more than 814 attempts is below 2^-128 for all parameter sets.
const maxSignAttempts = 814

// Per-call working area of the signing loop. Everything in it depends on
// the secret key or on the secret mask, and is scrubbed when signing
// completes, whether it succeeds or not.
type signScratch struct {
	rhoPP  [rhoPrimeSize]byte
	cTilde [64]byte
	buf    []byte // one packed polynomial of y
	w1Buf  []byte // encoded w1

	y    []ringElement
	yNTT []nttElement
	z    []ringElement
	wNTT []nttElement
	w    []ringElement
	w1   []ringElement
	r    []ringElement // w - c*s2
	r0   [][n]int32    // LowBits(w - c*s2)
	ct0  []ringElement
	h    []ringElement
}

func newSignScratch(p *ParameterSet) *signScratch {
	return &signScratch{
		buf:   make([]byte, p.zPolySize()),
		w1Buf: make([]byte, p.k*p.w1PolySize()),
		y:     make([]ringElement, p.l),
		yNTT:  make([]nttElement, p.l),
		z:     make([]ringElement, p.l),
		wNTT:  make([]nttElement, p.k),
		w:     make([]ringElement, p.k),
		w1:    make([]ringElement, p.k),
		r:     make([]ringElement, p.k),
		r0:    make([][n]int32, p.k),
		ct0:   make([]ringElement, p.k),
		h:     make([]ringElement, p.k),
	}
}

func (s *signScratch) scrub() {
	scrubBytes(s.rhoPP[:])
	scrubBytes(s.cTilde[:])
	scrubBytes(s.buf)
	scrubBytes(s.w1Buf)
	scrubRing(s.y)
	scrubNTT(s.yNTT)
	scrubRing(s.z)
	scrubNTT(s.wNTT)
	scrubRing(s.w)
	scrubRing(s.w1)
	scrubRing(s.r)
	scrubSigned(s.r0)
	scrubRing(s.ct0)
	scrubRing(s.h)
}

// Internal signing function (ML-DSA.Sign_internal). The signing key,
// the message representative mu (64 bytes), the 32-byte randomizer
// (all-zeros for deterministic signing) and the signature output buffer
// are provided. At most maxAttempts iterations are performed; if none of
// them succeeds, an error wrapping ErrRejectionLimitExceeded is returned.
//
// Each iteration computes all its rejection conditions over the complete
// vectors and combines them into a single bit, which is the only secret-
// derived value that the control flow depends on.
func signCore(sk *SigningKey, mu []byte, rnd []byte, sig []byte,
	maxAttempts int) error {

	p := sk.params
	s := newSignScratch(p)
	defer s.scrub()

	// rho'' = SHAKE256(K || rnd || mu)
	shake256(s.rhoPP[:], sk.key[:], rnd, mu)

	a := sk.vk.a
	g1 := p.gamma1()
	g2 := p.gamma2
	beta := p.beta()
	cTilde := s.cTilde[:p.cTildeSize()]

	kappa := 0
	for attempt := 0; attempt < maxAttempts; attempt++ {
		// y <- ExpandMask(rho'', kappa); w = A*y
		expandMask(p, s.y, s.rhoPP[:], kappa, s.buf)
		kappa += p.l
		vecNTT(s.yNTT, s.y)
		matVecMulNTT(s.wNTT, a, s.yNTT)
		for i := 0; i < p.k; i++ {
			s.w[i] = invNTT(s.wNTT[i])
			for j := 0; j < n; j++ {
				s.w1[i][j] = fieldElement(highBits(s.w[i][j], g2))
			}
		}

		// c~ = H(mu || w1Encode(w1)), c = SampleInBall(c~)
		_ = w1Encode(p, s.w1Buf, s.w1)
		shake256(cTilde, mu, s.w1Buf)
		cNTT := ntt(sampleInBall(p, cTilde))

		// z = y + c*s1
		for i := 0; i < p.l; i++ {
			s.z[i] = polyAdd(s.y[i], invNTT(nttMul(cNTT, sk.s1NTT[i])))
		}

		// r0 = LowBits(w - c*s2)
		for i := 0; i < p.k; i++ {
			s.r[i] = polySub(s.w[i], invNTT(nttMul(cNTT, sk.s2NTT[i])))
			for j := 0; j < n; j++ {
				s.r0[i][j] = lowBits(s.r[i][j], g2)
			}
		}

		// h = MakeHint(-c*t0, w - c*s2 + c*t0)
		for i := 0; i < p.k; i++ {
			s.ct0[i] = invNTT(nttMul(cNTT, sk.t0NTT[i]))
			for j := 0; j < n; j++ {
				ct0 := s.ct0[i][j]
				s.h[i][j] = makeHint(fieldNeg(ct0),
					fieldAdd(s.r[i][j], ct0), g2)
			}
		}

		reject := vecNormAtLeast(s.z, g1-beta)
		reject |= signedNormAtLeast(s.r0, g2-beta)
		reject |= vecNormAtLeast(s.ct0, g2)
		reject |= uint32(int32(p.omega-vecWeight(s.h))) >> 31
		if reject != 0 {
			continue
		}

		// All values are in range, encoding cannot fail.
		return encodeSignature(p, sig, cTilde, s.z, s.h)
	}
	return xerrors.Errorf("%d attempts: %w", maxAttempts, ErrRejectionLimitExceeded)
}
