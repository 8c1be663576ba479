package mldsa

import (
	"testing"
)

// Reference decomposition, straight from the definition.
func refDecompose(r int32, gamma2 int32) (int32, int32) {
	r0 := r % (2 * gamma2)
	if r0 > gamma2 {
		r0 -= 2 * gamma2
	}
	if r-r0 == q-1 {
		return 0, r0 - 1
	}
	return (r - r0) / (2 * gamma2), r0
}

func TestPower2Round(t *testing.T) {
	for r := int32(0); r < q; r++ {
		r1, r0 := power2Round(fieldElement(r))
		c0 := fieldToCentered(r0)
		if c0 <= -(1<<(d-1)) || c0 > 1<<(d-1) {
			t.Fatalf("ERR power2Round: %d -> r0 = %d\n", r, c0)
		}
		if int32(r1)<<d+c0 != r || r1 > 1023 {
			t.Fatalf("ERR power2Round: %d -> (%d, %d)\n", r, r1, c0)
		}
	}
}

func TestDecompose(t *testing.T) {
	for _, gamma2 := range []int32{(q - 1) / 88, (q - 1) / 32} {
		for r := int32(0); r < q; r++ {
			r1, r0 := decompose(fieldElement(r), gamma2)
			e1, e0 := refDecompose(r, gamma2)
			if r1 != e1 || r0 != e0 {
				t.Fatalf("ERR decompose(%d, %d): (%d, %d) (exp: (%d, %d))\n",
					r, gamma2, r1, r0, e1, e0)
			}
		}
	}
}

func TestHints(t *testing.T) {
	tr := newTestRand(8)
	for _, gamma2 := range []int32{(q - 1) / 88, (q - 1) / 32} {
		for i := 0; i < 200000; i++ {
			r := tr.fieldElement()
			// |z| <= gamma2
			zc := int32(tr.next()%uint32(2*gamma2+1)) - gamma2
			if i < 4 {
				r = fieldElement(q - 1 - uint32(i))
				zc = gamma2 - int32(i)
			}
			z := fieldFromInt32(zc)
			h := makeHint(z, r, gamma2)
			exp := highBits(fieldAdd(r, z), gamma2)
			if (h != 0) != (exp != highBits(r, gamma2)) {
				t.Fatalf("ERR makeHint(%d, %d) = %d\n", zc, r, h)
			}
			if got := useHint(h, r, gamma2); got != exp {
				t.Fatalf("ERR useHint(%d, %d): %d (exp: %d)\n", h, r, got, exp)
			}
		}
	}
}
