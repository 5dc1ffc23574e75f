package p256k1

import (
	"errors"
	"unsafe"
)

// NonceProgress tracks, per cosigner index, how far that signer has
// advanced through the nonce/sign protocol.
type NonceProgress int

const (
	// NonceProgressUnknown is the initial state: no nonce registered yet.
	NonceProgressUnknown NonceProgress = iota
	// NonceProgressOther marks a nonce supplied by another party. No path
	// in this package writes this state; it is reserved for a future
	// foreign-nonce exchange protocol this package does not implement.
	// Guessing at that exchange protocol isn't safe, so the state just sits
	// here unwritten.
	NonceProgressOther
	// NonceProgressOurs means generateNonce has run for this index.
	NonceProgressOurs
	// NonceProgressSigned means partialSign has run for this index.
	NonceProgressSigned
)

var (
	ErrIndexOutOfRange  = errors.New("cosigner index out of range")
	ErrNonceAlreadySet  = errors.New("nonce already generated for this index")
	ErrNoncesIncomplete = errors.New("not every cosigner has registered a nonce")
	ErrNotOurs          = errors.New("index has no nonce owned by this signer")
	ErrPartialCountMismatch = errors.New("wrong number of partial signatures")
	ErrPartialOverflow  = errors.New("partial signature scalar overflow")
)

// Session is a single-owner state machine for one n-of-n aggregate signing
// round: the cosigner set, each signer's secret nonce, the running sum of
// public nonces, and per-index progress. It is not safe to mutate from
// multiple goroutines; concurrent callers must serialize externally.
type Session struct {
	pubkeys  []*PublicKey
	secnonce []Scalar
	progress []NonceProgress
	ragg     GroupElementJacobian
	rng      *RFC6979HMACSHA256
}

// SessionCreate allocates a session for the given ordered cosigner set. The
// pubkey order is significant: it must match across every cosigner's call to
// aggregateVerify.
func SessionCreate(pubkeys []*PublicKey, seed32 []byte) (*Session, error) {
	if len(pubkeys) == 0 {
		return nil, errors.New("at least one cosigner is required")
	}
	if len(seed32) != 32 {
		return nil, errors.New("seed must be 32 bytes")
	}

	n := len(pubkeys)
	s := &Session{
		pubkeys:  make([]*PublicKey, n),
		secnonce: make([]Scalar, n),
		progress: make([]NonceProgress, n),
		rng:      NewRFC6979HMACSHA256(seed32),
	}
	copy(s.pubkeys, pubkeys)
	s.ragg.setInfinity()

	return s, nil
}

// GenerateNonce draws cosigner i's secret nonce, applies the QR-y
// normalization, and folds its public nonce into the running sum. Fails if
// i is out of range or already has a nonce.
func (s *Session) GenerateNonce(i int) error {
	if i < 0 || i >= len(s.pubkeys) {
		return ErrIndexOutOfRange
	}
	if s.progress[i] != NonceProgressUnknown {
		return ErrNonceAlreadySet
	}

	var buf [32]byte
	var k Scalar
	for {
		s.rng.Generate(buf[:])
		overflow := k.setB32(buf[:])
		if !overflow && !k.isZero() {
			break
		}
	}
	memclear(unsafe.Pointer(&buf[0]), 32)

	rj := nonceJacobian(&k)

	s.secnonce[i] = k
	s.ragg.addVar(&s.ragg, &rj)
	s.progress[i] = NonceProgressOurs

	return nil
}

// ready reports whether every cosigner index has moved past Unknown.
func (s *Session) ready() bool {
	for _, p := range s.progress {
		if p == NonceProgressUnknown {
			return false
		}
	}
	return true
}

// normalizedRagg returns the affine joint nonce with the QR-y convention
// applied, and whether the stored ragg needed negating to get there. Every
// signer performs this same check on the same ragg and negates its own
// secret nonce accordingly, so combining the partial scalars afterward
// yields a consistent s.
func (s *Session) normalizedRagg() (aff GroupElementAffine, negated bool) {
	aff.setGEJ(&s.ragg)
	aff.y.normalize()
	if !aff.y.isSquare() {
		aff.negate(&aff)
		negated = true
	}
	aff.x.normalize()
	aff.y.normalize()
	return aff, negated
}

// PartialSign produces cosigner i's scalar contribution s_i = k_i + e_i*x_i
// to the joint signature. Every cosigner's nonce must already be registered
// (generateNonce called for every index, not just i), and i itself must not
// have signed yet.
func (s *Session) PartialSign(msg32, seckey32 []byte, i int) (partial [32]byte, err error) {
	if i < 0 || i >= len(s.pubkeys) {
		return partial, ErrIndexOutOfRange
	}
	if !s.ready() {
		return partial, ErrNoncesIncomplete
	}
	if s.progress[i] != NonceProgressOurs {
		return partial, ErrNotOurs
	}

	var x Scalar
	if overflow := x.setB32(seckey32); overflow || x.isZero() {
		x.clear()
		return partial, ErrInvalidSecretKey
	}

	raggAff, negated := s.normalizedRagg()

	k := s.secnonce[i]
	if negated {
		k.negate(&k)
	}

	e, ok := jointChallenge(s.pubkeys, &raggAff.x, msg32, uint32(i))
	if !ok {
		x.clear()
		k.clear()
		return partial, ErrChallengeOverflow
	}

	var si Scalar
	si.mul(&e, &x)
	si.add(&si, &k)
	si.getB32(partial[:])

	x.clear()
	k.clear()
	e.clear()
	si.clear()
	s.progress[i] = NonceProgressSigned

	return partial, nil
}

// Destroy zeroes every piece of secret material the session holds (in
// particular the secret-nonce array) and finalizes the RNG. Destroying a nil
// session is a no-op.
func (s *Session) Destroy() {
	if s == nil {
		return
	}
	for i := range s.secnonce {
		s.secnonce[i].clear()
	}
	if s.rng != nil {
		s.rng.Finalize()
		memclear(unsafe.Pointer(s.rng), unsafe.Sizeof(*s.rng))
	}
	s.ragg.clear()
}
