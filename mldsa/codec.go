package mldsa

import (
	"math/bits"

	"golang.org/x/xerrors"
)

// Bit packing of polynomials. All formats store each coefficient over a
// fixed number of bits, least significant bit first, and the bits of
// consecutive coefficients are concatenated; since n = 256, a packed
// polynomial always fills an integral number of bytes.
//
// Encoders check that every coefficient is in its declared range and
// report ErrInvalidEncoding otherwise (the destination contents are then
// unspecified). The range check does not exit early, so that secret
// polynomials are processed in constant time. Decoders reject values that
// have no valid interpretation.

// Packed sizes of t1 (10 bits per coefficient) and t0 (13 bits).
const (
	t1PolySize = 32 * 10
	t0PolySize = 32 * d
)

// Encode polynomial f, whose coefficients must all be in [0,b], using
// bitlen(b) bits per coefficient. The number of written bytes is returned.
func simpleBitPack(dst []byte, f *ringElement, b uint32) (int, error) {
	nbits := uint(bits.Len32(b))
	bad := uint32(0)
	acc := uint64(0)
	accLen := uint(0)
	j := 0
	for i := 0; i < n; i++ {
		x := uint32(f[i])
		bad |= b - x
		acc |= uint64(x) << accLen
		accLen += nbits
		for accLen >= 8 {
			dst[j] = uint8(acc)
			j++
			acc >>= 8
			accLen -= 8
		}
	}
	if (bad >> 31) != 0 {
		return j, xerrors.Errorf("coefficient above %d: %w", b, ErrInvalidEncoding)
	}
	return j, nil
}

// Decode a polynomial encoded with simpleBitPack(). src must contain at
// least 32*bitlen(b) bytes; an error is returned if a decoded value
// exceeds b.
func simpleBitUnpack(src []byte, b uint32) (f ringElement, err error) {
	nbits := uint(bits.Len32(b))
	needed := 32 * int(nbits)
	if len(src) < needed {
		return f, xerrors.Errorf("truncated polynomial: %w", ErrInvalidEncoding)
	}
	mask := (uint32(1) << nbits) - 1
	bad := uint32(0)
	acc := uint64(0)
	accLen := uint(0)
	i := 0
	for j := 0; j < needed; j++ {
		acc |= uint64(src[j]) << accLen
		accLen += 8
		for accLen >= nbits && i < n {
			x := uint32(acc) & mask
			acc >>= nbits
			accLen -= nbits
			bad |= b - x
			f[i] = fieldElement(x)
			i++
		}
	}
	if (bad >> 31) != 0 {
		return f, xerrors.Errorf("coefficient above %d: %w", b, ErrInvalidEncoding)
	}
	return f, nil
}

// Encode polynomial f, whose coefficients (in centered representation)
// must all be in [-a,b]. Each coefficient x is stored as b-x over
// bitlen(a+b) bits. The number of written bytes is returned.
func bitPack(dst []byte, f *ringElement, a int32, b int32) (int, error) {
	nbits := uint(bits.Len32(uint32(a + b)))
	bad := int32(0)
	acc := uint64(0)
	accLen := uint(0)
	j := 0
	for i := 0; i < n; i++ {
		v := b - fieldToCentered(f[i])
		bad |= v | (a + b - v)
		acc |= uint64(uint32(v)) << accLen
		accLen += nbits
		for accLen >= 8 {
			dst[j] = uint8(acc)
			j++
			acc >>= 8
			accLen -= 8
		}
	}
	if bad < 0 {
		return j, xerrors.Errorf("coefficient outside [%d,%d]: %w",
			-a, b, ErrInvalidEncoding)
	}
	return j, nil
}

// Decode a polynomial encoded with bitPack(). src must contain at least
// 32*bitlen(a+b) bytes. If a+b+1 is not a power of two, some bit patterns
// do not map to a value in [-a,b]; they are rejected.
func bitUnpack(src []byte, a int32, b int32) (f ringElement, err error) {
	nbits := uint(bits.Len32(uint32(a + b)))
	needed := 32 * int(nbits)
	if len(src) < needed {
		return f, xerrors.Errorf("truncated polynomial: %w", ErrInvalidEncoding)
	}
	mask := (uint32(1) << nbits) - 1
	bad := int32(0)
	acc := uint64(0)
	accLen := uint(0)
	i := 0
	for j := 0; j < needed; j++ {
		acc |= uint64(src[j]) << accLen
		accLen += 8
		for accLen >= nbits && i < n {
			v := int32(uint32(acc) & mask)
			acc >>= nbits
			accLen -= nbits
			bad |= a + b - v
			f[i] = fieldFromInt32(b - v)
			i++
		}
	}
	if bad < 0 {
		return f, xerrors.Errorf("coefficient outside [%d,%d]: %w",
			-a, b, ErrInvalidEncoding)
	}
	return f, nil
}

// Encode the hint vector h (polynomials with 0/1 coefficients) over
// omega+len(h) bytes: the indices of the non-zero coefficients, then, for
// each polynomial, the cumulative count of non-zero coefficients. Unused
// index slots are zero. An error is returned if h has more than omega
// non-zero coefficients, or a coefficient other than 0 or 1.
func hintBitPack(dst []byte, h []ringElement, omega int) error {
	k := len(h)
	for i := 0; i < omega+k; i++ {
		dst[i] = 0
	}
	idx := 0
	for i := 0; i < k; i++ {
		for j := 0; j < n; j++ {
			switch h[i][j] {
			case 0:
				continue
			case 1:
			default:
				return xerrors.Errorf("hint value %d: %w", h[i][j], ErrInvalidEncoding)
			}
			if idx >= omega {
				return xerrors.Errorf("more than %d hints: %w", omega, ErrInvalidEncoding)
			}
			dst[idx] = uint8(j)
			idx++
		}
		dst[omega+i] = uint8(idx)
	}
	return nil
}

// Decode a hint vector encoded with hintBitPack() into h (whose length
// gives the number of polynomials). Only the unique canonical encoding
// of each hint vector is accepted: cumulative counts must be
// non-decreasing and at most omega, indices must be strictly increasing
// within each polynomial, and unused index slots must be zero.
func hintBitUnpack(src []byte, h []ringElement, omega int) error {
	k := len(h)
	if len(src) != omega+k {
		return xerrors.Errorf("hint length %d: %w", len(src), ErrInvalidEncoding)
	}
	idx := 0
	for i := 0; i < k; i++ {
		h[i] = ringElement{}
		limit := int(src[omega+i])
		if limit < idx || limit > omega {
			return xerrors.Errorf("hint count %d: %w", limit, ErrInvalidEncoding)
		}
		first := idx
		for ; idx < limit; idx++ {
			if idx > first && src[idx-1] >= src[idx] {
				return xerrors.Errorf("unordered hint indices: %w", ErrInvalidEncoding)
			}
			h[i][src[idx]] = 1
		}
	}
	for ; idx < omega; idx++ {
		if src[idx] != 0 {
			return xerrors.Errorf("non-zero hint padding: %w", ErrInvalidEncoding)
		}
	}
	return nil
}

// Encode the high bits w1 of the commitment, as hashed into c~.
func w1Encode(p *ParameterSet, dst []byte, w1 []ringElement) error {
	b := uint32((q-1)/(2*p.gamma2)) - 1
	off := 0
	for i := range w1 {
		j, err := simpleBitPack(dst[off:], &w1[i], b)
		if err != nil {
			return err
		}
		off += j
	}
	return nil
}

// Encode a signature (c~, z, h) into sig, which must have length
// p.SignatureSize().
func encodeSignature(p *ParameterSet, sig []byte,
	cTilde []byte, z []ringElement, h []ringElement) error {

	off := copy(sig, cTilde[:p.cTildeSize()])
	g1 := p.gamma1()
	for i := 0; i < p.l; i++ {
		j, err := bitPack(sig[off:], &z[i], g1-1, g1)
		if err != nil {
			return err
		}
		off += j
	}
	return hintBitPack(sig[off:], h, p.omega)
}

// Decode a signature. The returned cTilde aliases sig. Decoding fails if
// the length is wrong or the hint is not canonical; the norm of z is not
// checked here.
func decodeSignature(p *ParameterSet, sig []byte) (cTilde []byte,
	z []ringElement, h []ringElement, err error) {

	if len(sig) != p.SignatureSize() {
		err = xerrors.Errorf("signature length %d: %w", len(sig), ErrInvalidEncoding)
		return
	}
	cTilde = sig[:p.cTildeSize()]
	off := len(cTilde)
	g1 := p.gamma1()
	z = make([]ringElement, p.l)
	for i := 0; i < p.l; i++ {
		z[i], err = bitUnpack(sig[off:], g1-1, g1)
		if err != nil {
			return
		}
		off += p.zPolySize()
	}
	h = make([]ringElement, p.k)
	err = hintBitUnpack(sig[off:], h, p.omega)
	return
}
