// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package linear

import (
	"github.com/chewxy/math32"
)

// Q is a quaternion of float32.
type Q struct {
	V V3
	R float32
}

// I makes q an identity quaternion.
func (q *Q) I() { *q = Q{R: 1} }

// Rotate sets q to contain a rotation of angle radians
// around axis.
func (q *Q) Rotate(angle float32, axis *V3) {
	var n V3
	n.Norm(axis)
	if n == (V3{}) {
		q.I()
		return
	}
	q.V.Scale(math32.Sin(angle*0.5), &n)
	q.R = math32.Cos(angle * 0.5)
}
