package p256k1

import (
	"errors"
)

// PublicKey holds a parsed, on-curve, non-infinity public key. The internal
// representation is the raw 64-byte affine (x, y) pair used by
// GroupElementAffine.toBytes/fromBytes; PublicKeyParse and Serialize handle
// the 33-byte SEC1 compressed wire form consumed by the challenge hashes.
type PublicKey struct {
	data [64]byte
}

// ECPubkeyCreate derives the public key for a 32-byte secret key.
func ECPubkeyCreate(pubkey *PublicKey, seckey []byte) error {
	if pubkey == nil {
		return errors.New("pubkey cannot be nil")
	}

	var sk Scalar
	if !sk.setB32Seckey(seckey) {
		return errors.New("invalid secret key")
	}

	var pj GroupElementJacobian
	EcmultGen(&pj, &sk)
	sk.clear()

	var pa GroupElementAffine
	pa.setGEJ(&pj)
	if pa.isInfinity() {
		return errors.New("invalid secret key")
	}
	pa.x.normalize()
	pa.y.normalize()
	pa.toBytes(pubkey.data[:])

	return nil
}

// point returns the affine group element underlying pubkey.
func (pubkey *PublicKey) point() GroupElementAffine {
	var pt GroupElementAffine
	pt.fromBytes(pubkey.data[:])
	return pt
}

// PublicKeyParse parses a 33-byte SEC1 compressed public key.
func PublicKeyParse(input []byte) (*PublicKey, error) {
	if len(input) != 33 {
		return nil, errors.New("compressed public key must be 33 bytes")
	}
	if input[0] != 0x02 && input[0] != 0x03 {
		return nil, errors.New("invalid compressed public key prefix")
	}

	var x FieldElement
	if err := x.setB32(input[1:33]); err != nil {
		return nil, errors.New("public key x-coordinate out of range")
	}

	var pt GroupElementAffine
	if !pt.setXOVar(&x, input[0] == 0x03) {
		return nil, errors.New("x-coordinate is not on the curve")
	}
	if pt.isInfinity() {
		return nil, errors.New("public key cannot be the point at infinity")
	}

	pt.x.normalize()
	pt.y.normalize()

	pk := &PublicKey{}
	pt.toBytes(pk.data[:])
	return pk, nil
}

// Serialize returns the 33-byte SEC1 compressed encoding of pubkey. This is
// the form consumed by the single- and multi-signer challenge hashes.
func (pubkey *PublicKey) Serialize() [33]byte {
	pt := pubkey.point()
	pt.x.normalize()
	pt.y.normalize()

	var out [33]byte
	if pt.y.isOdd() {
		out[0] = 0x03
	} else {
		out[0] = 0x02
	}
	pt.x.getB32(out[1:])
	return out
}
