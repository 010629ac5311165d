// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package linear

import (
	"github.com/chewxy/math32"
)

// M4 is a column-major 4x4 matrix of float32.
type M4 [4]V4

// I makes m an identity matrix.
func (m *M4) I() { *m = M4{{1}, {0, 1}, {0, 0, 1}, {0, 0, 0, 1}} }

// Mul sets m to contain l ⋅ r.
// m may alias either operand.
func (m *M4) Mul(l, r *M4) {
	var n M4
	for i := range n {
		for j := range n {
			for k := range n {
				n[i][j] += l[k][j] * r[i][k]
			}
		}
	}
	*m = n
}

// Translate sets m to contain a translation matrix.
func (m *M4) Translate(x, y, z float32) {
	m.I()
	m[3] = V4{x, y, z, 1}
}

// RotateQ sets m to contain a rotation matrix
// from unit quaternion q.
func (m *M4) RotateQ(q *Q) {
	x, y, z, w := q.V[0], q.V[1], q.V[2], q.R
	xx, yy, zz := x*x, y*y, z*z
	xy, xz, yz := x*y, x*z, y*z
	wx, wy, wz := w*x, w*y, w*z
	*m = M4{
		{1 - 2*(yy+zz), 2 * (xy + wz), 2 * (xz - wy), 0},
		{2 * (xy - wz), 1 - 2*(xx+zz), 2 * (yz + wx), 0},
		{2 * (xz + wy), 2 * (yz - wx), 1 - 2*(xx+yy), 0},
		{0, 0, 0, 1},
	}
}

// Rotate sets m to contain a rotation of angle radians
// around axis. axis need not be normalized.
// A zero axis produces the identity.
func (m *M4) Rotate(angle float32, axis *V3) {
	var q Q
	q.Rotate(angle, axis)
	m.RotateQ(&q)
}

// Perspective sets m to contain a perspective projection
// with vertical field of view yfov (radians), the given
// aspect ratio (width/height) and finite clip planes.
// Clip space depth is in [-1, 1].
func (m *M4) Perspective(yfov, aspect, znear, zfar float32) {
	f := 1 / math32.Tan(yfov*0.5)
	nf := 1 / (znear - zfar)
	*m = M4{
		{f / aspect},
		{1: f},
		{2: (zfar + znear) * nf, 3: -1},
		{2: 2 * zfar * znear * nf},
	}
}

// LookAt sets m to contain a view transform looking
// from eye at center, with up as the up direction.
func (m *M4) LookAt(eye, center, up *V3) {
	var x, y, z V3
	z.Sub(eye, center)
	z.Norm(&z)
	x.Cross(up, &z)
	x.Norm(&x)
	y.Cross(&z, &x)
	*m = M4{
		{x[0], y[0], z[0], 0},
		{x[1], y[1], z[1], 0},
		{x[2], y[2], z[2], 0},
		{-x.Dot(eye), -y.Dot(eye), -z.Dot(eye), 1},
	}
}
