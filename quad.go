package p256k1

// Quadratic-residue (QR) normalization. Every R transmitted on the wire is
// the representative of {R, -R} whose y coordinate is a quadratic residue
// mod p. This lets a signature carry only R.x: the verifier reconstructs R
// by choosing the QR root, and the signer/combiner/partial-signer all apply
// the same negation rule so a single x value always round-trips to the same
// point. Implementers must apply the rule identically everywhere or
// signatures fail in ways that look like unrelated bugs.

// hasQuadYJacobian reports whether the affine y-coordinate of a jacobian
// point is a quadratic residue. The point must not be at infinity.
func hasQuadYJacobian(p *GroupElementJacobian) bool {
	var aff GroupElementAffine
	aff.setGEJ(p)
	aff.y.normalize()
	return aff.y.isSquare()
}

// hasQuadYAffine reports whether an affine point's y-coordinate is a
// quadratic residue.
func hasQuadYAffine(p *GroupElementAffine) bool {
	y := p.y
	y.normalize()
	return y.isSquare()
}

// setXQuad reconstructs the affine point with the given x-coordinate whose
// y-coordinate is a quadratic residue. Returns false if x does not lie on
// the curve.
func setXQuad(r *GroupElementAffine, x *FieldElement) bool {
	var x2, x3, y2, y FieldElement
	x2.sqr(x)
	x3.mul(&x2, x)
	var seven FieldElement
	seven.setInt(7)
	y2 = x3
	y2.add(&seven)

	if !y.sqrt(&y2) {
		return false
	}
	y.normalize()
	if !y.isSquare() {
		y.negate(&y, 1)
		y.normalize()
	}

	r.setXY(x, &y)
	return true
}
