package mldsa

import (
	"golang.org/x/xerrors"
)

// Ring constants, shared by all parameter sets.
const (
	// n is the degree of the ring Z_q[X]/(X^n+1).
	n = 256

	// q = 2^23 - 2^13 + 1
	q = 8380417

	// d is the number of bits dropped from t into t0.
	d = 13

	// SeedSize is the length, in bytes, of a key generation seed.
	SeedSize = 32
)

// Sizes of fixed-length fields of keys and signatures.
const (
	rhoSize      = 32
	keySize      = 32
	trSize       = 64
	muSize       = 64
	rhoPrimeSize = 64
	rndSize      = 32
)

// A ParameterSet holds the constants of one ML-DSA security level. The
// three standard sets are MLDSA44, MLDSA65 and MLDSA87; they are never
// modified after package initialization and may be shared freely between
// goroutines.
type ParameterSet struct {
	name string

	k int // rows of A
	l int // columns of A

	eta     int32 // secret coefficient bound
	etaBits uint  // bits per packed secret coefficient

	tau int // weight of the challenge polynomial

	gamma1Bits uint  // gamma1 = 2^gamma1Bits
	gamma2     int32 // low-order rounding range
	w1Bits     uint  // bits per packed w1 coefficient

	omega  int // maximum number of hint bits
	lambda int // collision strength of c~, in bits
}

// ML-DSA-44 (NIST security category 2).
var MLDSA44 = &ParameterSet{
	name:       "ML-DSA-44",
	k:          4,
	l:          4,
	eta:        2,
	etaBits:    3,
	tau:        39,
	gamma1Bits: 17,
	gamma2:     (q - 1) / 88,
	w1Bits:     6,
	omega:      80,
	lambda:     128,
}

// ML-DSA-65 (NIST security category 3).
var MLDSA65 = &ParameterSet{
	name:       "ML-DSA-65",
	k:          6,
	l:          5,
	eta:        4,
	etaBits:    4,
	tau:        49,
	gamma1Bits: 19,
	gamma2:     (q - 1) / 32,
	w1Bits:     4,
	omega:      55,
	lambda:     192,
}

// ML-DSA-87 (NIST security category 5).
var MLDSA87 = &ParameterSet{
	name:       "ML-DSA-87",
	k:          8,
	l:          7,
	eta:        2,
	etaBits:    3,
	tau:        60,
	gamma1Bits: 19,
	gamma2:     (q - 1) / 32,
	w1Bits:     4,
	omega:      75,
	lambda:     256,
}

// ParameterSets lists the supported parameter sets, from the lowest
// security level to the highest.
var ParameterSets = []*ParameterSet{MLDSA44, MLDSA65, MLDSA87}

// ParameterSetByName returns the parameter set with the provided name
// ("ML-DSA-44", "ML-DSA-65" or "ML-DSA-87"). Any other name yields an
// error wrapping ErrInvalidParameterSet.
func ParameterSetByName(name string) (*ParameterSet, error) {
	for _, p := range ParameterSets {
		if p.name == name {
			return p, nil
		}
	}
	return nil, xerrors.Errorf("%q: %w", name, ErrInvalidParameterSet)
}

// Name returns the standard name of the parameter set.
func (p *ParameterSet) Name() string {
	return p.name
}

func (p *ParameterSet) String() string {
	return p.name
}

// gamma1 is the half-width of the masking range.
func (p *ParameterSet) gamma1() int32 {
	return int32(1) << p.gamma1Bits
}

// beta bounds the infinity norm of c*s1 and c*s2.
func (p *ParameterSet) beta() int32 {
	return int32(p.tau) * p.eta
}

// Length of the commitment hash c~.
func (p *ParameterSet) cTildeSize() int {
	return p.lambda / 4
}

// Size of one packed polynomial of z.
func (p *ParameterSet) zPolySize() int {
	return 32 * int(p.gamma1Bits+1)
}

// Size of one packed polynomial of s1 or s2.
func (p *ParameterSet) etaPolySize() int {
	return 32 * int(p.etaBits)
}

// Size of one packed polynomial of w1.
func (p *ParameterSet) w1PolySize() int {
	return 32 * int(p.w1Bits)
}

// VerifyingKeySize returns the size, in bytes, of an encoded verifying
// key: rho || t1, with 10 bits per coefficient of t1.
func (p *ParameterSet) VerifyingKeySize() int {
	return rhoSize + p.k*t1PolySize
}

// SigningKeySize returns the size, in bytes, of an encoded signing key:
// rho || K || tr || s1 || s2 || t0.
func (p *ParameterSet) SigningKeySize() int {
	return rhoSize + keySize + trSize +
		(p.k+p.l)*p.etaPolySize() + p.k*t0PolySize
}

// SignatureSize returns the size, in bytes, of an encoded signature:
// c~ || z || h.
func (p *ParameterSet) SignatureSize() int {
	return p.cTildeSize() + p.l*p.zPolySize() + p.omega + p.k
}
