package p256k1

// AggregateVerify checks a 64-byte signature produced by session_create ->
// generate_nonce -> partial_sign -> combine against the same ordered cosigner
// set used to produce it. At n=1 this must accept exactly what
// VerifySingle(pubkeys[0], sig, nil) accepts: see jointChallenge.
func AggregateVerify(pubkeys []*PublicKey, sig64, msg32 []byte) bool {
	if len(pubkeys) == 0 || len(sig64) != 64 || len(msg32) != 32 {
		return false
	}

	var s Scalar
	if overflow := s.setB32(sig64[:32]); overflow {
		return false
	}

	var rx FieldElement
	if err := rx.setB32(sig64[32:64]); err != nil {
		return false
	}
	rx.normalize()

	n := len(pubkeys)
	scalars := make([]*Scalar, n+1)
	points := make([]*GroupElementAffine, n+1)

	scalars[0] = &s
	gen := Generator
	points[0] = &gen

	for i, p := range pubkeys {
		e, ok := jointChallenge(pubkeys, &rx, msg32, uint32(i))
		if !ok {
			return false
		}
		e.negate(&e)
		pt := p.point()
		scalars[i+1] = &e
		points[i+1] = &pt
	}

	var qj GroupElementJacobian
	EcmultMulti(&qj, scalars, points)

	var qAff GroupElementAffine
	qAff.setGEJ(&qj)
	if qAff.isInfinity() {
		return false
	}
	qAff.x.normalize()
	qAff.y.normalize()

	return qAff.x.equal(&rx) && qAff.y.isSquare()
}

// easyVerifyScratchBytes bounds the scratch region reserved by EasyVerify:
// enough for a handful of cosigners at 1024 bytes per signer without
// unbounded growth for large n.
const easyVerifyScratchBytes = 4096
const easyVerifyScratchStride = 1024

// EasyVerify wraps AggregateVerify with a bounded scratch allocation sized to
// the cosigner count: (n+1)*1024 bytes, capped at 4096, zeroed on return. The
// buffer is not passed to AggregateVerify, which allocates its own scalar and
// point slices, so cosigner sets larger than the cap verify exactly as
// smaller ones do.
func EasyVerify(pubkeys []*PublicKey, sig64, msg32 []byte) bool {
	need := (len(pubkeys) + 1) * easyVerifyScratchStride
	if need > easyVerifyScratchBytes {
		need = easyVerifyScratchBytes
	}
	scratch := make([]byte, need)
	defer func() {
		for i := range scratch {
			scratch[i] = 0
		}
	}()

	return AggregateVerify(pubkeys, sig64, msg32)
}
