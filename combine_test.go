package p256k1

import "testing"

func TestCombineProducesVerifiableSignature(t *testing.T) {
	c1 := newCosigner(t, 0x11)
	c2 := newCosigner(t, 0x12)
	c3 := newCosigner(t, 0x13)
	msg := make([]byte, 32)
	msg[0] = 0x99
	seed := make([]byte, 32)
	seed[0] = 0x77

	cosigners := []cosigner{c1, c2, c3}
	sig := signAggregate(t, cosigners, msg, seed)

	pubkeys := []*PublicKey{c1.pubkey, c2.pubkey, c3.pubkey}
	if !AggregateVerify(pubkeys, sig[:], msg) {
		t.Fatal("expected combined signature to verify")
	}
}

func TestCombineRejectsShortPartial(t *testing.T) {
	c1 := newCosigner(t, 0x01)
	c2 := newCosigner(t, 0x02)
	msg := make([]byte, 32)
	seed := make([]byte, 32)
	seed[0] = 6

	pubkeys := []*PublicKey{c1.pubkey, c2.pubkey}
	sess, err := SessionCreate(pubkeys, seed)
	if err != nil {
		t.Fatalf("SessionCreate: %v", err)
	}
	defer sess.Destroy()

	for i := range pubkeys {
		if err := sess.GenerateNonce(i); err != nil {
			t.Fatalf("GenerateNonce(%d): %v", i, err)
		}
	}
	p0, err := sess.PartialSign(msg, c1.seckey, 0)
	if err != nil {
		t.Fatalf("PartialSign(0): %v", err)
	}

	if _, err := Combine(sess, [][]byte{p0[:], {1, 2, 3}}); err == nil {
		t.Fatal("expected Combine to reject a short partial")
	}
}
