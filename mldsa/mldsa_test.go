package mldsa

import (
	"bytes"
	"crypto"
	"encoding/hex"
	"fmt"
	sha3 "golang.org/x/crypto/sha3"
	"testing"
)

func TestMLDSA_Self(t *testing.T) {
	for _, p := range ParameterSets {
		fmt.Printf("[%s]", p.Name())
		for i := 0; i < 10; i++ {
			sk, err := GenerateKey(p, nil)
			if err != nil {
				t.Fatal(err)
			}
			skey := sk.Bytes()
			vkey := sk.VerifyingKey().Bytes()
			if len(skey) != p.SigningKeySize() {
				t.Fatalf("wrong signing key size (%s): %d\n", p, len(skey))
			}
			if len(vkey) != p.VerifyingKeySize() {
				t.Fatalf("wrong verifying key size (%s): %d\n", p, len(vkey))
			}
			data := []byte("test")
			sig, err := Sign(nil, sk, DOMAIN_NONE, 0, data)
			if err != nil {
				t.Fatal(err)
			}
			if len(sig) != p.SignatureSize() {
				t.Fatalf("wrong signature size (%s): %d\n", p, len(sig))
			}
			if !Verify(sk.VerifyingKey(), DOMAIN_NONE, 0, data, sig) {
				t.Fatalf("signature verification failed (%s)\n", p)
			}
			fmt.Print(".")
		}
	}
	fmt.Println()
}

// Test vectors:
// kat_N[] contains 4 vectors for ML-DSA-N
// For test vector kat_N[j]:
//
//	Let seed1 = 0x00 || N || j
//	Let seed2 = 0x01 || N || j
//	(N over one byte, j over 4 bytes, little-endian)
//	The key generation seed is the first 32 bytes of SHAKE256(seed1).
//	A key pair (sk, vk) is generated. A message is signed:
//	    domain context: "domain" (6 bytes)
//	    message: "message" (7 bytes)
//	    if j is odd, message is pre-hashed with SHA3-256 and the
//	    signature is hedged with the first 32 bytes of SHAKE256(seed2);
//	    otherwise, the message is raw and the signature deterministic
//	KAT_N[j] is SHA3-256(sk || vk || sig)
var kat_44 = []string{
	"1eb0c2a4cb296b74b044c5f6c19e2212b059776d9a657e5640a73ef302ac31ad",
	"91d04ec7455e33e1dc0d7e7eacc81282b1969d7b6e08db93755df32c3f8f8f2d",
	"b44b0e7c3b248fd1ca82ffd3d845da128776325786c09fc2034bab72839d7496",
	"d67ce98b5e577104218f951b3a73b2f87ca8c066776d8ede39a93e1df563f5d1",
}
var kat_65 = []string{
	"289825b5c9fd9b0d947528dd216ce4e0bbf2430cf0344e4cf716d8a7140e3b07",
	"6ad24552b18586815aeea48fd6daf601dc15d619323b39e279fff116070373bf",
	"aab4f017ce2cd3d6ee9a025f840c884e27245312ea8d37829b76577a1726c3bb",
	"2ca529905ba80a40bcb477db764c3b1134c4f0029e0981e1f17b83088dceb10e",
}
var kat_87 = []string{
	"91cb7da16135b8ac5ac907e051f73a8934856e5ec69c631e9916f3518a08e61d",
	"acae0a7bd795050f1937ce823290826f95034295f60f048d422388fbd8392647",
	"b38a812e8f9c24a20ced71748cb9aecdcdd9516a514500d4b09d3e8afd8be530",
	"3810dbf593499204665853c0b98e89783a3cbd9e695c44c35680225c862e8e8a",
}

func TestMLDSA_KAT(t *testing.T) {
	testMLDSA_KAT_inner(t, MLDSA44, 44, kat_44)
	testMLDSA_KAT_inner(t, MLDSA65, 65, kat_65)
	testMLDSA_KAT_inner(t, MLDSA87, 87, kat_87)
	fmt.Println()
}

func testMLDSA_KAT_inner(t *testing.T, p *ParameterSet, level byte, kat []string) {
	fmt.Printf("[%s]", p)
	for j := 0; j < len(kat); j++ {
		var seed [6]byte
		seed[0] = 0x00
		seed[1] = level
		seed[2] = byte(j)
		seed[3] = byte(j >> 8)
		seed[4] = byte(j >> 16)
		seed[5] = byte(j >> 24)

		var seedKgen [32]byte
		sh := sha3.NewShake256()
		sh.Write(seed[:])
		sh.Read(seedKgen[:])
		sk, err := GenerateKey(p, bytes.NewReader(seedKgen[:]))
		if err != nil {
			t.Fatal(err)
		}

		ctx := DomainContext([]byte("domain"))
		var id crypto.Hash
		var rnd [32]byte
		msg := []byte("message")
		if (j & 1) == 0 {
			id = 0
		} else {
			id = crypto.SHA3_256
			hv := sha3.Sum256(msg)
			msg = hv[:]
			seed[0] = 0x01
			sh.Reset()
			sh.Write(seed[:])
			sh.Read(rnd[:])
		}
		sig, err := signInnerSeeded(rnd[:], sk, ctx, id, msg)
		if err != nil {
			t.Fatal(err)
		}
		vk := sk.VerifyingKey()
		if !Verify(vk, ctx, id, msg, sig) {
			t.Fatalf("signature verification failed (%s, j=%d)", p, j)
		}

		sc := sha3.New256()
		sc.Write(sk.Bytes())
		sc.Write(vk.Bytes())
		sc.Write(sig)
		tmp := sc.Sum(nil)
		ref, _ := hex.DecodeString(kat[j])
		if !bytes.Equal(tmp, ref) {
			t.Fatalf("KAT failed (%s, j=%d): wrong hash\n", p, j)
		}

		fmt.Print(".")
	}
}

// All-zero seed, ML-DSA-44, empty message and context, deterministic
// signature.
func TestMLDSA_ZeroSeed(t *testing.T) {
	sk, err := NewKeyFromSeed(MLDSA44, make([]byte, 32))
	if err != nil {
		t.Fatal(err)
	}
	vkey := sk.VerifyingKey().Bytes()
	if len(vkey) != 1312 {
		t.Fatalf("wrong verifying key size: %d", len(vkey))
	}
	skey := sk.Bytes()
	if len(skey) != 2560 {
		t.Fatalf("wrong signing key size: %d", len(skey))
	}
	if hex.EncodeToString(vkey[:16]) != "ba71f9f64e11baeb58fa9c6fbb6e14e6" {
		t.Fatalf("wrong verifying key: %x...", vkey[:16])
	}
	sig, err := SignDeterministic(sk, DOMAIN_NONE, 0, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(sig) != 2420 {
		t.Fatalf("wrong signature size: %d", len(sig))
	}
	if !Verify(sk.VerifyingKey(), DOMAIN_NONE, 0, nil, sig) {
		t.Fatal("signature verification failed")
	}

	for _, tc := range []struct {
		name string
		data []byte
		ref  string
	}{
		{"vk", vkey, "0f3cf699dcd46ec303d7bf35b185988d452dfde433ada2413f1f0604d91c1d6a"},
		{"sk", skey, "389cc952935bd876a4ed2c48b625f530bb9c012ddd8a1d1055e112c089e9fdcf"},
		{"sig", sig, "732beb9e6cce2a82a70620b6849e3f55edf9092f9e39a9fa5000736d38ed4886"},
	} {
		hv := sha3.Sum256(tc.data)
		if hex.EncodeToString(hv[:]) != tc.ref {
			t.Fatalf("wrong %s hash: %x", tc.name, hv[:])
		}
	}
}

func BenchmarkKeyGen44(b *testing.B) {
	benchKeygenInner(b, MLDSA44)
}

func BenchmarkKeyGen65(b *testing.B) {
	benchKeygenInner(b, MLDSA65)
}

func BenchmarkKeyGen87(b *testing.B) {
	benchKeygenInner(b, MLDSA87)
}

func benchKeygenInner(b *testing.B, p *ParameterSet) {
	for i := 0; i < b.N; i++ {
		GenerateKey(p, nil)
	}
}

func BenchmarkSign44(b *testing.B) {
	benchSignInner(b, MLDSA44)
}

func BenchmarkSign65(b *testing.B) {
	benchSignInner(b, MLDSA65)
}

func BenchmarkSign87(b *testing.B) {
	benchSignInner(b, MLDSA87)
}

func benchSignInner(b *testing.B, p *ParameterSet) {
	// Make a key pair.
	sk, _ := GenerateKey(p, nil)
	vk := sk.VerifyingKey()

	// Data is a raw message, not pre-hashed, and context is empty.
	data := []byte("test")

	// A few blank signatures for "warm-up".
	for i := 0; i < 10; i++ {
		sig, err := Sign(nil, sk, DOMAIN_NONE, 0, data)
		if err != nil {
			b.Fatalf("failure, err = %v", err)
		}
		if !Verify(vk, DOMAIN_NONE, 0, data, sig) {
			b.Fatalf("ERR: signature verification failed")
		}
		data = sig[len(sig)-32:]
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sig, _ := Sign(nil, sk, DOMAIN_NONE, 0, data)
		data = sig[len(sig)-32:]
	}
}

func BenchmarkVerify44(b *testing.B) {
	benchVerifyInner(b, MLDSA44)
}

func BenchmarkVerify65(b *testing.B) {
	benchVerifyInner(b, MLDSA65)
}

func BenchmarkVerify87(b *testing.B) {
	benchVerifyInner(b, MLDSA87)
}

func benchVerifyInner(b *testing.B, p *ParameterSet) {
	// Make a key pair.
	sk, _ := GenerateKey(p, nil)
	vk := sk.VerifyingKey()

	// Data is a raw message, not pre-hashed, and context is empty.
	data := []byte("test")

	// Compute some signatures.
	var sigs [10][]byte
	for i := 0; i < 10; i++ {
		sigs[i], _ = Sign(nil, sk, DOMAIN_NONE, 0, data)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if !Verify(vk, DOMAIN_NONE, 0, data, sigs[i%len(sigs)]) {
			b.Fatal("signature verification failed")
		}
	}
}
