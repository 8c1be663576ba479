package suite

import (
	"io"

	"github.com/benjivesterby/go-ml-dsa/mldsa"
	"golang.org/x/xerrors"
)

const errNotMLDSACipherSuite = "invalid cipher suite"
const errInvalidBufferSize = "invalid buffer size"

// ErrInvalidSignature is returned by Verify when the signature does not
// match the message and the public key.
var ErrInvalidSignature = xerrors.New("signature not verified")

// MLDSAPublicKey is the public key implementation for the ML-DSA cipher
// suites.
type MLDSAPublicKey struct {
	vk *mldsa.VerifyingKey
}

// NewMLDSAPublicKey wraps a verifying key.
func NewMLDSAPublicKey(vk *mldsa.VerifyingKey) *MLDSAPublicKey {
	return &MLDSAPublicKey{vk: vk}
}

// Name returns the name of the cipher suite.
func (pk *MLDSAPublicKey) Name() Name {
	return pk.vk.Params().Name()
}

func (pk *MLDSAPublicKey) String() string {
	return pk.Pack().String()
}

// Pack returns the tagged encoding of the public key.
func (pk *MLDSAPublicKey) Pack() *CipherData {
	return &CipherData{Name: pk.Name(), Data: pk.vk.Bytes()}
}

// Equal returns true when both public keys are equal.
func (pk *MLDSAPublicKey) Equal(other PublicKey) bool {
	return pk.Pack().Equal(other.Pack())
}

// VerifyingKey returns the wrapped verifying key.
func (pk *MLDSAPublicKey) VerifyingKey() *mldsa.VerifyingKey {
	return pk.vk
}

// MLDSASecretKey is the secret key implementation for the ML-DSA cipher
// suites.
type MLDSASecretKey struct {
	sk *mldsa.SigningKey
}

// NewMLDSASecretKey wraps a signing key.
func NewMLDSASecretKey(sk *mldsa.SigningKey) *MLDSASecretKey {
	return &MLDSASecretKey{sk: sk}
}

// Name returns the cipher suite name.
func (sk *MLDSASecretKey) Name() Name {
	return sk.sk.Params().Name()
}

func (sk *MLDSASecretKey) String() string {
	return sk.Pack().String()
}

// Pack returns the tagged encoding of the secret key.
func (sk *MLDSASecretKey) Pack() *CipherData {
	return &CipherData{Name: sk.Name(), Data: sk.sk.Bytes()}
}

// Public returns the public key that matches the secret key.
func (sk *MLDSASecretKey) Public() *MLDSAPublicKey {
	return &MLDSAPublicKey{vk: sk.sk.VerifyingKey()}
}

// Destroy erases the secret material of the key.
func (sk *MLDSASecretKey) Destroy() {
	sk.sk.Destroy()
}

// MLDSASignature is the signature implementation for the ML-DSA cipher
// suites.
type MLDSASignature struct {
	name Name
	data []byte
}

// Name returns the name of the cipher suite.
func (sig *MLDSASignature) Name() Name {
	return sig.name
}

func (sig *MLDSASignature) String() string {
	return sig.Pack().String()
}

// Pack returns the tagged encoding of the signature.
func (sig *MLDSASignature) Pack() *CipherData {
	return &CipherData{Name: sig.name, Data: sig.data}
}

// MLDSACipherSuite is a cipher suite implementation using one ML-DSA
// parameter set. Signatures are hedged, over the raw message, with an
// empty context string.
type MLDSACipherSuite struct {
	params *mldsa.ParameterSet
}

// NewMLDSACipherSuite returns an instance of the cipher suite for the
// given parameter set.
func NewMLDSACipherSuite(p *mldsa.ParameterSet) *MLDSACipherSuite {
	return &MLDSACipherSuite{params: p}
}

// Name returns the name of the suite, which is the parameter set name.
func (s *MLDSACipherSuite) Name() Name {
	return s.params.Name()
}

// PublicKey takes a raw public key and converts it to a public key.
func (s *MLDSACipherSuite) PublicKey(raw *CipherData) (PublicKey, error) {
	if raw.Name != s.Name() {
		return nil, xerrors.New(errNotMLDSACipherSuite)
	}

	if len(raw.Data) != s.params.VerifyingKeySize() {
		return nil, xerrors.New(errInvalidBufferSize)
	}

	vk, err := mldsa.DecodeVerifyingKey(s.params, raw.Data)
	if err != nil {
		return nil, xerrors.Errorf("decoding verifying key: %w", err)
	}
	return &MLDSAPublicKey{vk: vk}, nil
}

// SecretKey takes a raw secret key and converts it to a secret key.
func (s *MLDSACipherSuite) SecretKey(raw *CipherData) (SecretKey, error) {
	if raw.Name != s.Name() {
		return nil, xerrors.New(errNotMLDSACipherSuite)
	}

	if len(raw.Data) != s.params.SigningKeySize() {
		return nil, xerrors.New(errInvalidBufferSize)
	}

	sk, err := mldsa.DecodeSigningKey(s.params, raw.Data)
	if err != nil {
		return nil, xerrors.Errorf("decoding signing key: %w", err)
	}
	return &MLDSASecretKey{sk: sk}, nil
}

// Signature takes a raw signature and converts it to a signature.
func (s *MLDSACipherSuite) Signature(raw *CipherData) (Signature, error) {
	if raw.Name != s.Name() {
		return nil, xerrors.New(errNotMLDSACipherSuite)
	}

	if len(raw.Data) != s.params.SignatureSize() {
		return nil, xerrors.New(errInvalidBufferSize)
	}

	return &MLDSASignature{name: raw.Name, data: raw.Data}, nil
}

// GenerateKeyPair generates a secret key and its associated public key. When
// reader is nil, it will use the default randomness source.
func (s *MLDSACipherSuite) GenerateKeyPair(reader io.Reader) (PublicKey, SecretKey, error) {
	sk, err := mldsa.GenerateKey(s.params, reader)
	if err != nil {
		return nil, nil, xerrors.Errorf("generate %s key: %w", s.Name(), err)
	}

	return &MLDSAPublicKey{vk: sk.VerifyingKey()}, &MLDSASecretKey{sk: sk}, nil
}

// Sign signs the message with the secret key and returns the signature that
// can be verified with the public key.
func (s *MLDSACipherSuite) Sign(sk SecretKey, msg []byte) (Signature, error) {
	secretKey, err := s.unpackSecretKey(sk)
	if err != nil {
		return nil, xerrors.Errorf("unpacking secret key: %w", err)
	}

	sigbuf, err := mldsa.Sign(nil, secretKey.sk, mldsa.DOMAIN_NONE, 0, msg)
	if err != nil {
		return nil, xerrors.Errorf("signing: %w", err)
	}

	return &MLDSASignature{name: s.Name(), data: sigbuf}, nil
}

// Verify returns nil when the signature of the message can be verified by
// the public key.
func (s *MLDSACipherSuite) Verify(pk PublicKey, sig Signature, msg []byte) error {
	publicKey, err := s.unpackPublicKey(pk)
	if err != nil {
		return xerrors.Errorf("unpacking public key: %w", err)
	}

	signature, err := s.unpackSignature(sig)
	if err != nil {
		return xerrors.Errorf("unpacking signature: %w", err)
	}

	if !mldsa.Verify(publicKey.vk, mldsa.DOMAIN_NONE, 0, msg, signature.data) {
		return ErrInvalidSignature
	}

	return nil
}

func (s *MLDSACipherSuite) unpackPublicKey(pk PublicKey) (*MLDSAPublicKey, error) {
	if publicKey, ok := pk.(*MLDSAPublicKey); ok && publicKey.Name() == s.Name() {
		return publicKey, nil
	}

	return nil, xerrors.New("wrong type of public key")
}

func (s *MLDSACipherSuite) unpackSecretKey(sk SecretKey) (*MLDSASecretKey, error) {
	if secretKey, ok := sk.(*MLDSASecretKey); ok && secretKey.Name() == s.Name() {
		return secretKey, nil
	}

	return nil, xerrors.New("wrong type of secret key")
}

func (s *MLDSACipherSuite) unpackSignature(sig Signature) (*MLDSASignature, error) {
	if signature, ok := sig.(*MLDSASignature); ok && signature.Name() == s.Name() {
		return signature, nil
	}

	return nil, xerrors.New("wrong type of signature")
}
