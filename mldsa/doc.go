// This package implements the ML-DSA signature algorithm (FIPS 204).
//
// ML-DSA (formerly CRYSTALS-Dilithium) is a lattice-based signature
// scheme, believed to resist attacks by quantum computers. It comes in
// three parameter sets, exposed as [MLDSA44], [MLDSA65] and [MLDSA87],
// which correspond to NIST security categories 2, 3 and 5. A parameter
// set can also be looked up by its standard name with
// [ParameterSetByName]. Parameter sets are explicit arguments of key
// generation and key decoding; keys then carry their parameter set.
//
// A key pair consists of a signing key (private, [SigningKey]) and a
// verifying key (public, [VerifyingKey]). Each key is exchanged in an
// encoded format which has a fixed size for a given parameter set; the
// [ParameterSet.SigningKeySize] and [ParameterSet.VerifyingKeySize]
// methods return that size. A new key pair is created with
// [GenerateKey], which takes as parameter the parameter set and a source
// of randomness. The random source MUST be cryptographically secure. If
// the source is nil, then the operating system's RNG is used (through
// crypto/rand.Reader). Key generation from a 32-byte seed is deterministic
// ([NewKeyFromSeed]), and keys that were generated that way remember the
// seed, which is the most compact form of the private key.
//
// A signature is generated using a signing key, and over a message to
// sign. Signatures have a fixed size for a given parameter set; the
// [ParameterSet.SignatureSize] method returns that size. The message is
// "pre-hashed" and provided as three elements: a domain separation
// context string, an identifier for the pre-hash function, and the
// pre-hashed data itself. The context string is an arbitrary
// (non-secret) sequence of up to 255 bytes. The identifier is one of
// the [crypto/hash.Hash] constants such as SHA3_256 (this selects the
// HashML-DSA variant); value 0 can be used to indicate a "raw" message,
// i.e. not actually pre-hashed, in which case the pre-hashed data is the
// message itself. [Sign] is the hedged variant, which mixes fresh
// randomness into the signature, and [SignDeterministic] the
// deterministic one. [SigningKey] also implements [crypto.Signer].
//
// Signature verification is performed with the [Verify] function; the
// verifying key, pre-hashed message (along with the domain context string
// and the pre-hash function identifier), and the signature are provided,
// and the output is Boolean.
//
// Signing keys hold secret values in memory until [SigningKey.Destroy] is
// called. All temporary values computed while signing are overwritten
// before the signing functions return.
package mldsa
