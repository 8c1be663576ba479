package mldsa

import (
	"crypto"
	sha3 "golang.org/x/crypto/sha3"

	"golang.org/x/xerrors"
)

// Utility functions.

// An alias for a domain context, which is an arbitrary sequence of up
// to 255 bytes that is meant to be used for domain separation.
type DomainContext []byte

// A pre-allocated empty context string.
var DOMAIN_NONE = DomainContext([]byte{})

// Fill dst with the SHAKE256 output over the concatenation of the
// provided parts.
func shake256(dst []byte, parts ...[]byte) {
	sh := sha3.NewShake256()
	for _, b := range parts {
		sh.Write(b)
	}
	sh.Read(dst)
}

// Hash the provided verifying (public) key into 64 bytes (tr).
func hashVerifyingKey(vkey []byte) (tr [trSize]byte) {
	shake256(tr[:], vkey)
	return
}

// Compute the message representative mu.
//
//	tr     SHAKE256 of the verifying key (64 bytes)
//	ctx    domain separation context
//	id     identifier for pre-hash function
//	data   pre-hashed data to sign/verify
//
// If id is 0 then the data is supposed to be "raw" (no pre-hashing) and
// the pure ML-DSA representative 0 || len(ctx) || ctx || data is used.
// Otherwise data must be the output of the identified hash function and
// the HashML-DSA representative 1 || len(ctx) || ctx || OID || data is
// used. An error is returned if the hash identifier is unrecognized, if
// the data length does not match it, or if the context length is greater
// than 255 bytes.
func hashMessage(tr []byte, ctx DomainContext, id crypto.Hash,
	data []byte) (mu [muSize]byte, err error) {

	if len(ctx) > 255 {
		err = xerrors.Errorf("context of %d bytes: %w", len(ctx), ErrContextTooLong)
		return
	}
	var hb [2]byte
	hb[1] = uint8(len(ctx))
	var hashID []byte
	if id != 0 {
		hb[0] = 0x01
		hashID = preHashOID(id)
		if hashID == nil {
			err = xerrors.Errorf("hash function %d: %w", uint(id), ErrUnsupportedHash)
			return
		}
		if len(data) != id.Size() {
			err = xerrors.Errorf("%d-byte digest for %v: %w",
				len(data), id, ErrInvalidEncoding)
			return
		}
	}
	shake256(mu[:], tr, hb[:], ctx, hashID, data)
	return
}

// Get the DER-encoded OID of a supported pre-hash function, or nil.
func preHashOID(id crypto.Hash) []byte {
	switch id {
	case crypto.SHA224:
		return oidSHA224
	case crypto.SHA256:
		return oidSHA256
	case crypto.SHA384:
		return oidSHA384
	case crypto.SHA512:
		return oidSHA512
	case crypto.SHA512_224:
		return oidSHA512_224
	case crypto.SHA512_256:
		return oidSHA512_256
	case crypto.SHA3_224:
		return oidSHA3_224
	case crypto.SHA3_256:
		return oidSHA3_256
	case crypto.SHA3_384:
		return oidSHA3_384
	case crypto.SHA3_512:
		return oidSHA3_512
	// TODO: add SHAKE128 and SHAKE256 (OIDs ...04.02.0B and ...04.02.0C)
	// once crypto.Hash has identifiers for them.
	default:
		return nil
	}
}

var oidSHA256 = []byte{
	0x06, 0x09, 0x60, 0x86, 0x48, 0x01, 0x65, 0x03, 0x04, 0x02, 0x01,
}
var oidSHA384 = []byte{
	0x06, 0x09, 0x60, 0x86, 0x48, 0x01, 0x65, 0x03, 0x04, 0x02, 0x02,
}
var oidSHA512 = []byte{
	0x06, 0x09, 0x60, 0x86, 0x48, 0x01, 0x65, 0x03, 0x04, 0x02, 0x03,
}
var oidSHA224 = []byte{
	0x06, 0x09, 0x60, 0x86, 0x48, 0x01, 0x65, 0x03, 0x04, 0x02, 0x04,
}
var oidSHA512_224 = []byte{
	0x06, 0x09, 0x60, 0x86, 0x48, 0x01, 0x65, 0x03, 0x04, 0x02, 0x05,
}
var oidSHA512_256 = []byte{
	0x06, 0x09, 0x60, 0x86, 0x48, 0x01, 0x65, 0x03, 0x04, 0x02, 0x06,
}
var oidSHA3_224 = []byte{
	0x06, 0x09, 0x60, 0x86, 0x48, 0x01, 0x65, 0x03, 0x04, 0x02, 0x07,
}
var oidSHA3_256 = []byte{
	0x06, 0x09, 0x60, 0x86, 0x48, 0x01, 0x65, 0x03, 0x04, 0x02, 0x08,
}
var oidSHA3_384 = []byte{
	0x06, 0x09, 0x60, 0x86, 0x48, 0x01, 0x65, 0x03, 0x04, 0x02, 0x09,
}
var oidSHA3_512 = []byte{
	0x06, 0x09, 0x60, 0x86, 0x48, 0x01, 0x65, 0x03, 0x04, 0x02, 0x0A,
}
