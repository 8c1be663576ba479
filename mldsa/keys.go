package mldsa

import (
	"crypto"
	"crypto/subtle"

	"golang.org/x/xerrors"
)

// A VerifyingKey is an ML-DSA public key. It keeps, next to its encoding,
// the values that verification needs (the matrix A, NTT(t1*2^d) and tr),
// so that they are not recomputed for each signature. A VerifyingKey is
// immutable and safe for concurrent use.
type VerifyingKey struct {
	params *ParameterSet
	rho    [rhoSize]byte
	t1     []ringElement
	t1NTT  []nttElement // NTT(t1*2^d)
	a      []nttElement
	tr     [trSize]byte
	enc    []byte
}

// A SigningKey is an ML-DSA private key. It keeps the secret vectors in
// both representations, and its verifying key.
//
// A SigningKey may be used concurrently for signing. Destroy must not be
// called while a signature is being computed with the key.
type SigningKey struct {
	params *ParameterSet
	rho    [rhoSize]byte
	key    [keySize]byte
	tr     [trSize]byte
	s1     []ringElement
	s2     []ringElement
	t0     []ringElement
	s1NTT  []nttElement
	s2NTT  []nttElement
	t0NTT  []nttElement
	vk     *VerifyingKey
	enc    []byte

	// Key generation seed; nil if the key was decoded.
	seed []byte

	destroyed bool
}

// Build a verifying key from rho and t1 (and A, if already known).
func newVerifyingKey(p *ParameterSet, rho []byte, t1 []ringElement,
	a []nttElement) *VerifyingKey {

	vk := &VerifyingKey{
		params: p,
		t1:     t1,
		a:      a,
	}
	copy(vk.rho[:], rho)
	if vk.a == nil {
		vk.a = expandA(p, rho)
	}
	vk.t1NTT = make([]nttElement, p.k)
	for i := 0; i < p.k; i++ {
		var f ringElement
		for j := 0; j < n; j++ {
			f[j] = t1[i][j] << d
		}
		vk.t1NTT[i] = ntt(f)
	}
	vk.enc = make([]byte, p.VerifyingKeySize())
	off := copy(vk.enc, rho)
	for i := 0; i < p.k; i++ {
		// t1 comes out of power2Round() or simpleBitUnpack(), both of
		// which produce values in [0,1023].
		j, _ := simpleBitPack(vk.enc[off:], &t1[i], 1023)
		off += j
	}
	vk.tr = hashVerifyingKey(vk.enc)
	return vk
}

// DecodeVerifyingKey decodes an encoded verifying key for the provided
// parameter set. An error wrapping ErrInvalidEncoding is returned if the
// length does not match the parameter set.
func DecodeVerifyingKey(p *ParameterSet, b []byte) (*VerifyingKey, error) {
	if p == nil {
		return nil, xerrors.Errorf("nil parameter set: %w", ErrInvalidParameterSet)
	}
	if len(b) != p.VerifyingKeySize() {
		return nil, xerrors.Errorf("%s verifying key of %d bytes: %w",
			p.name, len(b), ErrInvalidEncoding)
	}
	t1 := make([]ringElement, p.k)
	off := rhoSize
	for i := 0; i < p.k; i++ {
		var err error
		t1[i], err = simpleBitUnpack(b[off:], 1023)
		if err != nil {
			return nil, err
		}
		off += t1PolySize
	}
	return newVerifyingKey(p, b[:rhoSize], t1, nil), nil
}

// Bytes returns the encoding of the verifying key (rho || t1).
func (vk *VerifyingKey) Bytes() []byte {
	return append([]byte(nil), vk.enc...)
}

// Params returns the parameter set of the key.
func (vk *VerifyingKey) Params() *ParameterSet {
	return vk.params
}

// Equal reports whether vk and x are the same verifying key.
func (vk *VerifyingKey) Equal(x crypto.PublicKey) bool {
	xk, ok := x.(*VerifyingKey)
	if !ok {
		return false
	}
	return vk.params == xk.params &&
		subtle.ConstantTimeCompare(vk.enc, xk.enc) == 1
}

// Assemble a signing key from its secret vectors; t is recomputed and
// split, and the verifying key is derived. a may be nil.
func newSigningKey(p *ParameterSet, rho []byte, key []byte,
	s1 []ringElement, s2 []ringElement, a []nttElement) *SigningKey {

	if a == nil {
		a = expandA(p, rho)
	}
	sk := &SigningKey{
		params: p,
		s1:     s1,
		s2:     s2,
		s1NTT:  make([]nttElement, p.l),
		s2NTT:  make([]nttElement, p.k),
		t0:     make([]ringElement, p.k),
		t0NTT:  make([]nttElement, p.k),
	}
	copy(sk.rho[:], rho)
	copy(sk.key[:], key)
	vecNTT(sk.s1NTT, s1)
	vecNTT(sk.s2NTT, s2)

	t := computeT(p, a, sk.s1NTT, s2)
	t1 := make([]ringElement, p.k)
	for i := 0; i < p.k; i++ {
		for j := 0; j < n; j++ {
			t1[i][j], sk.t0[i][j] = power2Round(t[i][j])
		}
	}
	scrubRing(t)
	vecNTT(sk.t0NTT, sk.t0)

	sk.vk = newVerifyingKey(p, rho, t1, a)
	sk.tr = sk.vk.tr
	sk.enc = encodeSigningKey(sk)
	return sk
}

// Compute t = NTT^-1(A*NTT(s1)) + s2.
func computeT(p *ParameterSet, a []nttElement, s1NTT []nttElement,
	s2 []ringElement) []ringElement {

	tHat := make([]nttElement, p.k)
	matVecMulNTT(tHat, a, s1NTT)
	t := make([]ringElement, p.k)
	for i := range t {
		t[i] = polyAdd(invNTT(tHat[i]), s2[i])
	}
	scrubNTT(tHat)
	return t
}

// Encode a signing key: rho || K || tr || s1 || s2 || t0.
func encodeSigningKey(sk *SigningKey) []byte {
	p := sk.params
	b := make([]byte, p.SigningKeySize())
	off := copy(b, sk.rho[:])
	off += copy(b[off:], sk.key[:])
	off += copy(b[off:], sk.tr[:])
	// The secret vectors come out of the sampler or of the strict
	// decoder, and t0 out of power2Round(), so they always fit.
	for i := range sk.s1 {
		j, _ := bitPack(b[off:], &sk.s1[i], p.eta, p.eta)
		off += j
	}
	for i := range sk.s2 {
		j, _ := bitPack(b[off:], &sk.s2[i], p.eta, p.eta)
		off += j
	}
	for i := range sk.t0 {
		j, _ := bitPack(b[off:], &sk.t0[i], (1<<(d-1))-1, 1<<(d-1))
		off += j
	}
	return b
}

// DecodeSigningKey decodes an encoded signing key for the provided
// parameter set. The secret coefficients must be in range, and the
// encoded t0 and tr must match the values recomputed from rho, s1 and
// s2; otherwise, an error wrapping ErrInvalidEncoding is returned. A
// decoded key has no seed.
func DecodeSigningKey(p *ParameterSet, b []byte) (*SigningKey, error) {
	if p == nil {
		return nil, xerrors.Errorf("nil parameter set: %w", ErrInvalidParameterSet)
	}
	if len(b) != p.SigningKeySize() {
		return nil, xerrors.Errorf("%s signing key of %d bytes: %w",
			p.name, len(b), ErrInvalidEncoding)
	}
	rho := b[:rhoSize]
	key := b[rhoSize : rhoSize+keySize]
	tr := b[rhoSize+keySize : rhoSize+keySize+trSize]
	off := rhoSize + keySize + trSize
	s1 := make([]ringElement, p.l)
	s2 := make([]ringElement, p.k)
	t0 := make([]ringElement, p.k)
	defer scrubRing(t0)
	var err error
	for i := range s1 {
		s1[i], err = bitUnpack(b[off:], p.eta, p.eta)
		if err != nil {
			return nil, xerrors.Errorf("s1: %w", err)
		}
		off += p.etaPolySize()
	}
	for i := range s2 {
		s2[i], err = bitUnpack(b[off:], p.eta, p.eta)
		if err != nil {
			return nil, xerrors.Errorf("s2: %w", err)
		}
		off += p.etaPolySize()
	}
	for i := range t0 {
		// All 13-bit patterns are valid, this cannot fail.
		t0[i], _ = bitUnpack(b[off:], (1<<(d-1))-1, 1<<(d-1))
		off += t0PolySize
	}

	sk := newSigningKey(p, rho, key, s1, s2, nil)
	diff := uint32(0)
	for i := range t0 {
		for j := 0; j < n; j++ {
			diff |= uint32(t0[i][j] ^ sk.t0[i][j])
		}
	}
	if diff != 0 {
		sk.Destroy()
		return nil, xerrors.Errorf("t0 does not match s1 and s2: %w", ErrInvalidEncoding)
	}
	if subtle.ConstantTimeCompare(tr, sk.tr[:]) != 1 {
		sk.Destroy()
		return nil, xerrors.Errorf("tr does not match the public key: %w", ErrInvalidEncoding)
	}
	return sk, nil
}

// Bytes returns the encoding of the signing key. It returns nil once the
// key has been destroyed.
func (sk *SigningKey) Bytes() []byte {
	if sk.destroyed {
		return nil
	}
	return append([]byte(nil), sk.enc...)
}

// Seed returns a copy of the 32-byte seed that the key was generated
// from, or nil if the key was decoded from its expanded encoding (or
// destroyed).
func (sk *SigningKey) Seed() []byte {
	if sk.seed == nil || sk.destroyed {
		return nil
	}
	return append([]byte(nil), sk.seed...)
}

// Params returns the parameter set of the key.
func (sk *SigningKey) Params() *ParameterSet {
	return sk.params
}

// VerifyingKey returns the verifying key that matches sk.
func (sk *SigningKey) VerifyingKey() *VerifyingKey {
	return sk.vk
}

// Public returns the verifying key that matches sk, as a
// crypto.PublicKey (crypto.Signer interface).
func (sk *SigningKey) Public() crypto.PublicKey {
	return sk.vk
}

// Equal reports whether sk and x are the same signing key. The
// comparison is constant-time.
func (sk *SigningKey) Equal(x crypto.PrivateKey) bool {
	xk, ok := x.(*SigningKey)
	if !ok || sk.destroyed || xk.destroyed {
		return false
	}
	return sk.params == xk.params &&
		subtle.ConstantTimeCompare(sk.enc, xk.enc) == 1
}

// Destroy overwrites all secret material held by the key. The key can
// no longer be used for signing afterwards; its verifying key remains
// usable.
func (sk *SigningKey) Destroy() {
	scrubBytes(sk.key[:])
	scrubBytes(sk.enc)
	scrubBytes(sk.seed)
	scrubRing(sk.s1)
	scrubRing(sk.s2)
	scrubRing(sk.t0)
	scrubNTT(sk.s1NTT)
	scrubNTT(sk.s2NTT)
	scrubNTT(sk.t0NTT)
	sk.destroyed = true
}
