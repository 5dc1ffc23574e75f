package p256k1

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
)

// Raw scalar-to-point multiplication doesn't depend on the Schnorr
// challenge convention (QR-y here, even-y under BIP-340), so btcec's
// independently implemented curve arithmetic is a useful cross-check
// for ECPubkeyCreate/PublicKeyParse: both libraries must derive the
// same compressed SEC1 point from the same secret scalar.
func TestCrossCheckPubkeyDerivationAgainstBtcec(t *testing.T) {
	for trial := 0; trial < 16; trial++ {
		seckey := make([]byte, 32)
		var sc Scalar
		for {
			if _, err := rand.Read(seckey); err != nil {
				t.Fatalf("rand: %v", err)
			}
			if sc.setB32Seckey(seckey) {
				break
			}
		}

		var ours PublicKey
		if err := ECPubkeyCreate(&ours, seckey); err != nil {
			t.Fatalf("ECPubkeyCreate: %v", err)
		}
		oursCompressed := ours.Serialize()

		_, btcecPub := btcec.PrivKeyFromBytes(seckey)
		theirsCompressed := btcecPub.SerializeCompressed()

		if !bytes.Equal(oursCompressed[:], theirsCompressed) {
			t.Fatalf("trial %d: derived pubkeys disagree:\n  ours=%x\n  btcec=%x",
				trial, oursCompressed, theirsCompressed)
		}
	}
}

// PublicKeyParse must round-trip a point that btcec itself produced, since
// both are the same SEC1 compressed encoding of the same curve.
func TestCrossCheckPublicKeyParseAgainstBtcec(t *testing.T) {
	seckey := make([]byte, 32)
	var sc Scalar
	for {
		if _, err := rand.Read(seckey); err != nil {
			t.Fatalf("rand: %v", err)
		}
		if sc.setB32Seckey(seckey) {
			break
		}
	}

	_, btcecPub := btcec.PrivKeyFromBytes(seckey)
	compressed := btcecPub.SerializeCompressed()

	parsed, err := PublicKeyParse(compressed)
	if err != nil {
		t.Fatalf("PublicKeyParse: %v", err)
	}
	roundTrip := parsed.Serialize()
	if !bytes.Equal(roundTrip[:], compressed) {
		t.Fatalf("round trip mismatch: got %x want %x", roundTrip, compressed)
	}
}
