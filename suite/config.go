package suite

import (
	"bytes"
	"io"

	"github.com/BurntSushi/toml"
	"golang.org/x/xerrors"
)

// KeyPairConfig is the TOML representation of a key pair. Both keys are
// stored in the text form of their cipher data.
type KeyPairConfig struct {
	Suite   string
	Public  string
	Private string
}

// NewKeyPairConfig fills a configuration from a key pair.
func NewKeyPairConfig(pk PublicKey, sk SecretKey) (*KeyPairConfig, error) {
	if pk.Name() != sk.Name() {
		return nil, xerrors.New("mismatching cipher names")
	}

	pub, err := pk.Pack().MarshalText()
	if err != nil {
		return nil, xerrors.Errorf("encoding public key: %w", err)
	}

	priv, err := sk.Pack().MarshalText()
	if err != nil {
		return nil, xerrors.Errorf("encoding secret key: %w", err)
	}

	return &KeyPairConfig{
		Suite:   pk.Name(),
		Public:  string(pub),
		Private: string(priv),
	}, nil
}

// Save writes the configuration as TOML.
func (c *KeyPairConfig) Save(w io.Writer) error {
	err := toml.NewEncoder(w).Encode(c)
	if err != nil {
		return xerrors.Errorf("toml encoding: %w", err)
	}
	return nil
}

// LoadKeyPairConfig reads a configuration written by Save.
func LoadKeyPairConfig(r io.Reader) (*KeyPairConfig, error) {
	c := &KeyPairConfig{}
	_, err := toml.DecodeReader(r, c)
	if err != nil {
		return nil, xerrors.Errorf("toml decoding: %w", err)
	}
	return c, nil
}

// probeMessage is signed to check that both keys of a pair match.
var probeMessage = []byte("key pair probe")

// UnpackKeyPair converts the configuration into a key pair of a registered
// cipher suite. The pair is checked by signing a probe message with the
// secret key and verifying it with the public key.
func (cr *Registry) UnpackKeyPair(c *KeyPairConfig) (PublicKey, SecretKey, error) {
	pubData := &CipherData{}
	err := pubData.UnmarshalText([]byte(c.Public))
	if err != nil {
		return nil, nil, xerrors.Errorf("public key: %w", err)
	}

	privData := &CipherData{}
	err = privData.UnmarshalText([]byte(c.Private))
	if err != nil {
		return nil, nil, xerrors.Errorf("secret key: %w", err)
	}

	if pubData.Name != c.Suite || privData.Name != c.Suite {
		return nil, nil, xerrors.New("mismatching cipher names")
	}

	pk, err := cr.UnpackPublicKey(pubData)
	if err != nil {
		return nil, nil, xerrors.Errorf("public key: %w", err)
	}

	sk, err := cr.UnpackSecretKey(privData)
	if err != nil {
		return nil, nil, xerrors.Errorf("secret key: %w", err)
	}

	sig, err := cr.Sign(sk, probeMessage)
	if err != nil {
		return nil, nil, xerrors.Errorf("probe: %w", err)
	}

	err = cr.Verify(pk, sig, probeMessage)
	if err != nil {
		return nil, nil, xerrors.Errorf("keys do not match: %w", err)
	}

	return pk, sk, nil
}

// String returns the TOML text of the configuration.
func (c *KeyPairConfig) String() string {
	var buf bytes.Buffer
	if err := c.Save(&buf); err != nil {
		return ""
	}
	return buf.String()
}
