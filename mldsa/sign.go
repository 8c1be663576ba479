package mldsa

import (
	"crypto"
	"crypto/rand"
	"io"

	"golang.org/x/xerrors"
)

// Sign a message using a given signing key (hedged variant).
//
//	- rng is the random source to use (nil to use the OS RNG)
//	- sk is the signing key (private)
//	- ctx is the domain separation context
//	- id is the pre-hash function identifier (0 if no pre-hashing)
//	- data is pre-hashed message (message itself if no pre-hashing)
//
// Using the OS RNG (i.e. setting rng to nil) is recommended. 32 bytes are
// read from rng and mixed with the key and message; a weak random source
// does not make the signature insecure, but it loses the protection
// against fault and side-channel attacks that fresh randomness provides.
// If id is not zero, data must be the output of the identified hash
// function over the message (HashML-DSA).
func Sign(rng io.Reader, sk *SigningKey,
	ctx DomainContext, id crypto.Hash, data []byte) ([]byte, error) {

	var rnd [rndSize]byte
	defer scrubBytes(rnd[:])
	if rng == nil {
		rng = rand.Reader
	}
	if _, err := io.ReadFull(rng, rnd[:]); err != nil {
		return nil, xerrors.Errorf("reading signature randomness (%v): %w",
			err, ErrEntropySourceFailure)
	}
	return signInnerSeeded(rnd[:], sk, ctx, id, data)
}

// Sign a message using a given signing key (deterministic variant). The
// parameters are the same as in [Sign], without the random source: the
// same key and inputs always yield the same signature.
func SignDeterministic(sk *SigningKey,
	ctx DomainContext, id crypto.Hash, data []byte) ([]byte, error) {

	var rnd [rndSize]byte
	return signInnerSeeded(rnd[:], sk, ctx, id, data)
}

// SignerOpts holds the options for [SigningKey.Sign].
type SignerOpts struct {
	// Domain separation context (at most 255 bytes).
	Context DomainContext

	// Pre-hash function; 0 for pure ML-DSA, where the message itself is
	// signed.
	Hash crypto.Hash

	// If true, the random source is not used and the signature is
	// deterministic.
	Deterministic bool
}

// HashFunc returns the pre-hash function identifier (crypto.SignerOpts
// interface).
func (opts *SignerOpts) HashFunc() crypto.Hash {
	return opts.Hash
}

// Sign implements the crypto.Signer interface. If opts is a *SignerOpts,
// its context and randomization settings are used; otherwise, the empty
// context and the hedged variant are used. In both cases, a non-zero
// opts.HashFunc() means that msg is a digest computed with that function.
func (sk *SigningKey) Sign(rng io.Reader, msg []byte,
	opts crypto.SignerOpts) ([]byte, error) {

	ctx := DOMAIN_NONE
	id := crypto.Hash(0)
	deterministic := false
	if o, ok := opts.(*SignerOpts); ok && o != nil {
		ctx = o.Context
		id = o.Hash
		deterministic = o.Deterministic
	} else if opts != nil {
		id = opts.HashFunc()
	}
	if deterministic {
		return SignDeterministic(sk, ctx, id, msg)
	}
	return Sign(rng, sk, ctx, id, msg)
}

// Inner signature function with an explicit randomizer; this is used for
// reproducible test vectors.
func signInnerSeeded(rnd []byte, sk *SigningKey,
	ctx DomainContext, id crypto.Hash, data []byte) ([]byte, error) {

	if sk == nil {
		return nil, xerrors.Errorf("nil signing key: %w", ErrInvalidEncoding)
	}
	if sk.destroyed {
		return nil, ErrKeyDestroyed
	}
	mu, err := hashMessage(sk.tr[:], ctx, id, data)
	if err != nil {
		return nil, err
	}
	sig := make([]byte, sk.params.SignatureSize())
	if err := signCore(sk, mu[:], rnd, sig, maxSignAttempts); err != nil {
		return nil, err
	}
	return sig, nil
}
