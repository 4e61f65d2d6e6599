package geometry

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// FitAffine computes the affine transform mapping src[i] to dst[i] by least
// squares. Three non-collinear correspondences determine the transform
// exactly; more are solved in the least-squares sense via QR.
func FitAffine(src, dst []Point2D) (AffineTransform, error) {
	if len(src) != len(dst) {
		return AffineTransform{}, fmt.Errorf("point count mismatch: %d vs %d", len(src), len(dst))
	}
	n := len(src)
	if n < 3 {
		return AffineTransform{}, fmt.Errorf("need at least 3 points, got %d", n)
	}

	// Rows come in pairs:
	//   x' = a*x + b*y + tx
	//   y' = c*x + d*y + ty
	A := mat.NewDense(n*2, 6, nil)
	B := mat.NewVecDense(n*2, nil)

	for i := 0; i < n; i++ {
		x, y := src[i].X, src[i].Y
		xp, yp := dst[i].X, dst[i].Y

		A.Set(i*2, 0, x)
		A.Set(i*2, 1, y)
		A.Set(i*2, 2, 1)
		B.SetVec(i*2, xp)

		A.Set(i*2+1, 3, x)
		A.Set(i*2+1, 4, y)
		A.Set(i*2+1, 5, 1)
		B.SetVec(i*2+1, yp)
	}

	var qr mat.QR
	qr.Factorize(A)

	var params mat.VecDense
	if err := qr.SolveVecTo(&params, false, B); err != nil {
		return AffineTransform{}, fmt.Errorf("affine solve: %w", err)
	}

	return AffineTransform{
		A:  params.AtVec(0),
		B:  params.AtVec(1),
		TX: params.AtVec(2),
		C:  params.AtVec(3),
		D:  params.AtVec(4),
		TY: params.AtVec(5),
	}, nil
}

// FitRectMapping computes the affine transform carrying one axis-aligned
// rectangle onto another, from their corner correspondence. This is how
// screen space is related to native pixel space: only the rectangles as
// actually rendered matter, not how pan or zoom produced them.
func FitRectMapping(from, to Rect) (AffineTransform, error) {
	if from.Empty() || to.Empty() {
		return AffineTransform{}, fmt.Errorf("degenerate rectangle")
	}
	src := []Point2D{from.TopLeft(), {X: from.X + from.Width, Y: from.Y}, from.BottomRight()}
	dst := []Point2D{to.TopLeft(), {X: to.X + to.Width, Y: to.Y}, to.BottomRight()}
	return FitAffine(src, dst)
}
