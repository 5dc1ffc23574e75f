package p256k1

// Challenge hash constructions for single- and multi-signer Schnorr.
//
// The single-signer form is e = H(R || m); the multi-signer form binds every
// cosigner to the whole cosigner set and the joint nonce via a shared
// prehash, then customizes each signer's challenge with its position in the
// pubkey list. Customizing per index defeats rogue-key attacks that would
// otherwise let cosigners with algebraically related keys cancel out.

// indexVarint serializes i as a base-128 little-endian integer without a
// continuation bit: the low 7 bits of i become one byte, then i shifts right
// 7, repeated until i is zero. i == 0 serializes to zero bytes. This is a
// deliberate quirk of the scheme, not a general-purpose varint: the encoded
// length is never parsed back out, only hashed, so the ambiguity with
// standard varints doesn't matter here. Reimplementers must match the byte
// sequence exactly.
func indexVarint(i uint32) []byte {
	var out []byte
	for i > 0 {
		out = append(out, byte(i&0x7f))
		i >>= 7
	}
	return out
}

// hashToScalar reduces a 32-byte SHA-256 digest to a scalar mod n, returning
// ok=false if the raw digest is >= n. This is reject-on-overflow, not
// reduce-on-overflow: setB32 already reduces, so the overflow flag it
// returns is exactly the signal we need.
func hashToScalar(digest [32]byte) (e Scalar, ok bool) {
	overflow := e.setB32(digest[:])
	return e, !overflow
}

// singleSignerChallenge computes e = H(compressed(R) || m) for the
// single-signer scheme.
func singleSignerChallenge(rPub *PublicKey, msg []byte) (Scalar, bool) {
	h := NewSHA256()
	rBytes := rPub.Serialize()
	h.Write(rBytes[:])
	h.Write(msg)
	var digest [32]byte
	h.Finalize(digest[:])
	h.Clear()
	return hashToScalar(digest)
}

// multiSignerPrehash computes SHA256(compressed(P_1) || ... ||
// compressed(P_n) || R_x || m). Pubkey order is caller-supplied and
// significant: permuting it changes every per-signer challenge.
func multiSignerPrehash(pubkeys []*PublicKey, rx *FieldElement, msg []byte) [32]byte {
	h := NewSHA256()
	for _, p := range pubkeys {
		b := p.Serialize()
		h.Write(b[:])
	}
	var rxBytes [32]byte
	rxCopy := *rx
	rxCopy.normalize()
	rxCopy.getB32(rxBytes[:])
	h.Write(rxBytes[:])
	h.Write(msg)
	var out [32]byte
	h.Finalize(out[:])
	h.Clear()
	return out
}

// perSignerChallenge computes e_i = H(varint(i) || prehash).
func perSignerChallenge(prehash [32]byte, i uint32) (Scalar, bool) {
	h := NewSHA256()
	h.Write(indexVarint(i))
	h.Write(prehash[:])
	var digest [32]byte
	h.Finalize(digest[:])
	h.Clear()
	return hashToScalar(digest)
}

// jointChallenge picks the challenge scalar for a cosigner set of size n at
// position i against joint nonce x-coordinate rx. At n=1 this is required to
// be bit-identical to singleSignerChallenge so that aggregateVerify([P], sig)
// and VerifySingle(P, sig, nil) accept exactly the same signatures: a lone
// signer never goes through the multi-signer prehash/per-index construction.
func jointChallenge(pubkeys []*PublicKey, rx *FieldElement, msg []byte, i uint32) (Scalar, bool) {
	if len(pubkeys) == 1 {
		rxCopy := *rx
		rxCopy.normalize()
		var rAff GroupElementAffine
		if !setXQuad(&rAff, &rxCopy) {
			return Scalar{}, false
		}
		rPub := publicKeyFromAffine(&rAff)
		return singleSignerChallenge(rPub, msg)
	}
	prehash := multiSignerPrehash(pubkeys, rx, msg)
	return perSignerChallenge(prehash, i)
}
