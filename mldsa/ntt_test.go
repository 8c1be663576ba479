package mldsa

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tuneinsight/lattigo/v4/ring"
)

// Schoolbook product modulo X^n+1 and q.
func negacyclicMul(a, b *ringElement) (c ringElement) {
	var acc [n]uint64
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			p := uint64(a[i]) * uint64(b[j]) % q
			if i+j < n {
				acc[i+j] += p
			} else {
				acc[i+j-n] += q - p
			}
		}
	}
	for i := range c {
		c[i] = fieldElement(acc[i] % q)
	}
	return
}

func TestNTTRoundTrip(t *testing.T) {
	tr := newTestRand(3)
	for k := 0; k < 100; k++ {
		f := tr.ring()
		if k == 0 {
			f = ringElement{}
			f[0] = 1
		}
		g := invNTT(ntt(f))
		require.Equal(t, f, g)
	}
}

func TestNTTMul(t *testing.T) {
	tr := newTestRand(4)
	for k := 0; k < 10; k++ {
		a := tr.ring()
		b := tr.ring()
		c := invNTT(nttMul(ntt(a), ntt(b)))
		require.Equal(t, negacyclicMul(&a, &b), c)
	}

	// X^255 * X = -1
	var a, b ringElement
	a[n-1] = 1
	b[1] = 1
	c := invNTT(nttMul(ntt(a), ntt(b)))
	var exp ringElement
	exp[0] = q - 1
	require.Equal(t, exp, c)
}

// Independent check of the negacyclic product against the lattigo ring
// arithmetic over the same modulus.
func TestNTTMulLattigo(t *testing.T) {
	r, err := ring.NewRing(n, []uint64{q})
	require.NoError(t, err)

	tr := newTestRand(5)
	for k := 0; k < 20; k++ {
		a := tr.ring()
		b := tr.ring()
		pa := r.NewPoly()
		pb := r.NewPoly()
		for i := 0; i < n; i++ {
			pa.Coeffs[0][i] = uint64(a[i])
			pb.Coeffs[0][i] = uint64(b[i])
		}
		r.MForm(pa, pa)
		r.MForm(pb, pb)
		r.NTT(pa, pa)
		r.NTT(pb, pb)
		pc := r.NewPoly()
		r.MulCoeffsMontgomery(pa, pb, pc)
		r.InvNTT(pc, pc)
		r.InvMForm(pc, pc)

		c := invNTT(nttMul(ntt(a), ntt(b)))
		for i := 0; i < n; i++ {
			if uint64(c[i]) != pc.Coeffs[0][i] {
				t.Fatalf("ERR: coefficient %d: %d (lattigo: %d)\n",
					i, c[i], pc.Coeffs[0][i])
			}
		}
	}
}

func TestPolyAddSub(t *testing.T) {
	tr := newTestRand(6)
	a := tr.ring()
	b := tr.ring()
	c := polyAdd(a, b)
	require.Equal(t, a, polySub(c, b))

	// Linearity of the transform.
	require.Equal(t, ntt(c), polyAdd(ntt(a), ntt(b)))
	require.Equal(t, ntt(polySub(a, b)), polySub(ntt(a), ntt(b)))
}

func TestMatVecMul(t *testing.T) {
	tr := newTestRand(7)
	p := MLDSA65
	a := make([]nttElement, p.k*p.l)
	for i := range a {
		a[i] = ntt(tr.ring())
	}
	v := make([]ringElement, p.l)
	for i := range v {
		v[i] = tr.ring()
	}
	vHat := make([]nttElement, p.l)
	vecNTT(vHat, v)
	w := make([]nttElement, p.k)
	matVecMulNTT(w, a, vHat)
	for i := 0; i < p.k; i++ {
		var exp ringElement
		for j := 0; j < p.l; j++ {
			aij := invNTT(a[i*p.l+j])
			exp = polyAdd(exp, negacyclicMul(&aij, &v[j]))
		}
		require.Equal(t, exp, invNTT(w[i]))
	}
}
