package mldsa

import (
	"crypto/rand"
	"io"

	"golang.org/x/xerrors"
)

// Generate a new signing key (and its verifying key).
//
//	- p is the parameter set (MLDSA44, MLDSA65 or MLDSA87).
//	- rng is random source to use (nil to use the OS RNG).
//
// 32 bytes are read from rng; if that fails, the returned error wraps
// ErrEntropySourceFailure. Apart from this read, key generation is
// deterministic: the same seed always yields the same key (see
// NewKeyFromSeed).
func GenerateKey(p *ParameterSet, rng io.Reader) (*SigningKey, error) {
	if p == nil {
		return nil, xerrors.Errorf("nil parameter set: %w", ErrInvalidParameterSet)
	}
	if rng == nil {
		rng = rand.Reader
	}
	var seed [SeedSize]byte
	defer scrubBytes(seed[:])
	if _, err := io.ReadFull(rng, seed[:]); err != nil {
		return nil, xerrors.Errorf("reading key seed (%v): %w",
			err, ErrEntropySourceFailure)
	}
	return keygenInner(p, seed[:]), nil
}

// NewKeyFromSeed derives a signing key from a 32-byte seed. This is the
// ML-DSA.KeyGen_internal function; the seed must come from a
// cryptographically secure source, and should be kept as secret as the
// key itself. A seed of the wrong length yields an error wrapping
// ErrInvalidEncoding.
func NewKeyFromSeed(p *ParameterSet, seed []byte) (*SigningKey, error) {
	if p == nil {
		return nil, xerrors.Errorf("nil parameter set: %w", ErrInvalidParameterSet)
	}
	if len(seed) != SeedSize {
		return nil, xerrors.Errorf("seed of %d bytes: %w", len(seed), ErrInvalidEncoding)
	}
	return keygenInner(p, seed), nil
}

// Inner function; the parameter set is assumed to be correct, and the
// output is deterministic for the provided seed.
func keygenInner(p *ParameterSet, seed []byte) *SigningKey {
	// (rho, rho', K) = SHAKE256(seed || k || l)
	var buf [rhoSize + rhoPrimeSize + keySize]byte
	defer scrubBytes(buf[:])
	shake256(buf[:], seed, []byte{uint8(p.k), uint8(p.l)})
	rho := buf[:rhoSize]
	rhoPrime := buf[rhoSize : rhoSize+rhoPrimeSize]
	key := buf[rhoSize+rhoPrimeSize:]

	a := expandA(p, rho)
	s1, s2 := expandS(p, rhoPrime)
	sk := newSigningKey(p, rho, key, s1, s2, a)
	sk.seed = append([]byte(nil), seed...)
	return sk
}
