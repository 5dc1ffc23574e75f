package p256k1

import (
	"errors"
	"unsafe"
)

// Single-signer Schnorr sign/verify (spec section 4.2). This is the
// degenerate n=1 case of the aggregate scheme in session.go: the same
// QR-y convention, the same wire format, and aggregateVerify([]*PublicKey{P},
// sig) must accept exactly what VerifySingle(P, sig, nil) accepts.

var (
	ErrInvalidSecretKey   = errors.New("invalid secret key")
	ErrInvalidNonce       = errors.New("invalid nonce")
	ErrChallengeOverflow  = errors.New("challenge scalar overflow")
	ErrInvalidSignature   = errors.New("invalid signature")
	ErrInvalidPublicNonce = errors.New("invalid public nonce")
)

// signOpts holds the optional arguments to SignSingle.
type signOpts struct {
	nonce32  []byte
	pubNonce *PublicKey
	rngSeed  []byte
}

// SignOption customizes a single-signer Sign call.
type SignOption func(*signOpts)

// WithNonce supplies an externally generated 32-byte secret nonce instead of
// drawing one from the deterministic RNG.
func WithNonce(k32 []byte) SignOption {
	return func(o *signOpts) { o.nonce32 = k32 }
}

// WithPublicNonce binds a specific public nonce into the challenge hash
// instead of the (possibly negated) nonce actually computed during signing.
// Supplying the same point that would have been computed internally
// produces a bit-identical signature to omitting this option.
func WithPublicNonce(r *PublicKey) SignOption {
	return func(o *signOpts) { o.pubNonce = r }
}

// WithRNGSeed seeds the deterministic nonce RNG. Required unless WithNonce
// is also given.
func WithRNGSeed(seed32 []byte) SignOption {
	return func(o *signOpts) { o.rngSeed = seed32 }
}

// publicKeyFromAffine wraps a non-infinity affine point as a PublicKey.
func publicKeyFromAffine(pt *GroupElementAffine) *PublicKey {
	pt.x.normalize()
	pt.y.normalize()
	pk := &PublicKey{}
	pt.toBytes(pk.data[:])
	return pk
}

// nonceFromRNG draws secret nonces from seed until one parses as a valid,
// nonzero scalar. RNG output landing on zero or on an overflowing value
// would require a 256-bit HMAC-SHA256 draw to exceed the group order or hit
// exactly zero, both practically impossible; the loop exists to make that
// impossibility structural rather than assumed.
func nonceFromRNG(seed32 []byte) (Scalar, error) {
	if len(seed32) != 32 {
		return Scalar{}, ErrInvalidNonce
	}
	rng := NewRFC6979HMACSHA256(seed32)
	defer memclear(unsafe.Pointer(rng), unsafe.Sizeof(*rng))

	for {
		var buf [32]byte
		rng.Generate(buf[:])
		var k Scalar
		overflow := k.setB32(buf[:])
		memclear(unsafe.Pointer(&buf[0]), 32)
		if !overflow && !k.isZero() {
			return k, nil
		}
	}
}

// nonceJacobian computes R = k*G and applies the QR-y normalization,
// negating k in place if R.y is not a quadratic residue.
func nonceJacobian(k *Scalar) GroupElementJacobian {
	var rj GroupElementJacobian
	EcmultGen(&rj, k)
	if !hasQuadYJacobian(&rj) {
		k.negate(k)
		EcmultGen(&rj, k)
	}
	return rj
}

// SignSingle produces a 64-byte Schnorr signature over a 32-byte message
// under a 32-byte secret key. Callers supply either WithNonce (an externally
// generated secret nonce) or WithRNGSeed (to draw one deterministically).
func SignSingle(msg32, seckey32 []byte, opts ...SignOption) (sig [64]byte, err error) {
	if len(msg32) != 32 {
		return sig, errors.New("message must be 32 bytes")
	}

	o := &signOpts{}
	for _, opt := range opts {
		opt(o)
	}

	var k Scalar
	if o.nonce32 != nil {
		if overflow := k.setB32(o.nonce32); overflow || k.isZero() {
			k.clear()
			return sig, ErrInvalidNonce
		}
	} else {
		k, err = nonceFromRNG(o.rngSeed)
		if err != nil {
			return sig, err
		}
	}

	rj := nonceJacobian(&k)
	var rAff GroupElementAffine
	rAff.setGEJ(&rj)
	rAff.x.normalize()
	rAff.y.normalize()

	noncePub := o.pubNonce
	if noncePub == nil {
		noncePub = publicKeyFromAffine(&rAff)
	}

	e, ok := singleSignerChallenge(noncePub, msg32)
	if !ok {
		k.clear()
		return sig, ErrChallengeOverflow
	}

	var x Scalar
	if overflow := x.setB32(seckey32); overflow || x.isZero() {
		x.clear()
		k.clear()
		return sig, ErrInvalidSecretKey
	}

	var s Scalar
	s.mul(&e, &x)
	s.add(&s, &k)

	var rxBytes [32]byte
	rAff.x.getB32(rxBytes[:])
	s.getB32(sig[:32])
	copy(sig[32:], rxBytes[:])

	x.clear()
	k.clear()
	e.clear()
	s.clear()

	return sig, nil
}

// verifyOpts holds the optional arguments to VerifySingle.
type verifyOpts struct {
	pubNonce *PublicKey
}

// VerifyOption customizes a single-signer Verify call.
type VerifyOption func(*verifyOpts)

// WithVerifyPublicNonce binds a caller-supplied public nonce into the
// challenge instead of reconstructing R from the signature's x-coordinate.
func WithVerifyPublicNonce(r *PublicKey) VerifyOption {
	return func(o *verifyOpts) { o.pubNonce = r }
}

// VerifySingle checks a 64-byte signature over msg32 against a single public
// key. Both the x-match and the quadratic-residue check on the recovered
// nonce point are required: x alone admits the point's negation.
func VerifySingle(sig64, msg32 []byte, pubkey *PublicKey, opts ...VerifyOption) bool {
	if len(sig64) != 64 || len(msg32) != 32 || pubkey == nil {
		return false
	}

	o := &verifyOpts{}
	for _, opt := range opts {
		opt(o)
	}

	var s Scalar
	if overflow := s.setB32(sig64[:32]); overflow {
		return false
	}

	var rx FieldElement
	if err := rx.setB32(sig64[32:64]); err != nil {
		return false
	}

	noncePub := o.pubNonce
	if noncePub == nil {
		var rAff GroupElementAffine
		if !setXQuad(&rAff, &rx) {
			return false
		}
		noncePub = publicKeyFromAffine(&rAff)
	}

	e, ok := singleSignerChallenge(noncePub, msg32)
	if !ok {
		return false
	}
	e.negate(&e)

	pPt := pubkey.point()
	var qj GroupElementJacobian
	Ecmult(&qj, &s, &e, &pPt)

	var qAff GroupElementAffine
	qAff.setGEJ(&qj)
	if qAff.isInfinity() {
		return false
	}
	qAff.x.normalize()
	qAff.y.normalize()

	rxNorm := rx
	rxNorm.normalize()

	return qAff.x.equal(&rxNorm) && qAff.y.isSquare()
}
