// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package linear

import (
	"math"
	"testing"
)

func approx(a, b float32) bool { return math.Abs(float64(a-b)) < 1e-5 }

func approxV4(v, w V4) bool {
	for i := range v {
		if !approx(v[i], w[i]) {
			return false
		}
	}
	return true
}

func TestV(t *testing.T) {
	var u V3
	v := V3{1, 2, 4}
	w := V3{0, -1, 2}

	if u.Sub(&v, &w); u != (V3{1, 3, 2}) {
		t.Fatalf("V3.Sub\nhave %v\nwant [1 3 2]", u)
	}
	if u.Scale(-1, &v); u != (V3{-1, -2, -4}) {
		t.Fatalf("V3.Scale\nhave %v\nwant [-1 -2 -4]", u)
	}
	if d := v.Dot(&w); d != 6 {
		t.Fatalf("V3.Dot\nhave %v\nwant 6\n", d)
	}
	if l := v.Len(); !approx(l, float32(math.Sqrt(21))) {
		t.Fatalf("V3.Len\nhave %v\nwant %v\n", l, math.Sqrt(21))
	}

	v = V3{0, 0, -2}
	w = V3{0, 4, 0}

	if v.Norm(&v); v != (V3{0, 0, -1}) {
		t.Fatalf("V3.Norm\nhave %v\nwant [0 0 -1]", v)
	}
	if w.Norm(&w); w != (V3{0, 1, 0}) {
		t.Fatalf("V3.Norm\nhave %v\nwant [0 1 0]", w)
	}
	if u.Cross(&v, &w); u != (V3{1, 0, 0}) {
		t.Fatalf("V3.Cross\nhave %v\nwant [1 0 0]", u)
	}
	if u.Cross(&w, &v); u != (V3{-1, 0, 0}) {
		t.Fatalf("V3.Cross\nhave %v\nwant [-1 0 0]", u)
	}
	var z V3
	if z.Norm(&z); z != (V3{}) {
		t.Fatalf("V3.Norm\nhave %v\nwant [0 0 0]", z)
	}

	var x V4
	y := V4{1, 2, 3, 4}
	var m M4
	m.I()
	if x.Mul(&m, &y); x != y {
		t.Fatalf("V4.Mul\nhave %v\nwant %v", x, y)
	}
	m.Translate(1, -1, 2)
	if y.Mul(&m, &y); y != (V4{5, -2, 11, 4}) {
		t.Fatalf("V4.Mul (aliased)\nhave %v\nwant [5 -2 11 4]", y)
	}
}

func TestM(t *testing.T) {
	var l M4
	m := M4{
		{1, 2, 3, 4},
		{5, 6, 7, 8},
		{9, 10, 11, 12},
		{13, 14, 15, 16},
	}
	// Cyclic permutation of columns.
	n := M4{
		{0, 0, 0, 1},
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
	}

	if l.I(); l != (M4{{1}, {0, 1}, {0, 0, 1}, {0, 0, 0, 1}}) {
		t.Fatalf("M4.I\nhave %v", l)
	}
	if l.Mul(&m, &n); l != (M4{m[3], m[0], m[1], m[2]}) {
		t.Fatalf("M4.Mul\nhave %v\nwant %v", l, M4{m[3], m[0], m[1], m[2]})
	}
	l = m
	if l.Mul(&l, &n); l != (M4{m[3], m[0], m[1], m[2]}) {
		t.Fatalf("M4.Mul (aliased)\nhave %v\nwant %v", l, M4{m[3], m[0], m[1], m[2]})
	}
}

func TestQ(t *testing.T) {
	var r Q
	if r.I(); r != (Q{R: 1}) {
		t.Fatalf("Q.I\nhave %v\nwant {[0 0 0] 1}", r)
	}
	if r.Rotate(math.Pi, &V3{0, 2, 0}); !approx(r.V[1], 1) || !approx(r.R, 0) {
		t.Fatalf("Q.Rotate\nhave %v\nwant {[0 1 0] 0}", r)
	}
	if r.Rotate(1, &V3{}); r != (Q{R: 1}) {
		t.Fatalf("Q.Rotate (zero axis)\nhave %v\nwant {[0 0 0] 1}", r)
	}
}

func TestTRS(t *testing.T) {
	var x, r, s M4
	var q Q

	x.Translate(-1, -2, -3)
	q.Rotate(0, &V3{1})
	r.RotateQ(&q)
	s = M4{{5}, {1: 5}, {2: 5}, {3: 1}}
	x.Mul(&x, &r)
	x.Mul(&x, &s)
	if x != (M4{{5}, {1: 5}, {2: 5}, {-1, -2, -3, 1}}) {
		t.Fatalf("T*R*S\nhave %v\nwant %v", x, M4{{5}, {1: 5}, {2: 5}, {-1, -2, -3, 1}})
	}
	v := V4{1, 1, 1, 1}
	v.Mul(&x, &v)
	if v != (V4{4, 3, 2, 1}) {
		t.Fatalf("TRS*v\nhave %v\nwant %v", v, V4{4, 3, 2, 1})
	}
}

func TestRotate(t *testing.T) {
	var m M4
	for _, x := range [...]struct {
		axis     V3
		angle    float32
		in, want V4
	}{
		{V3{0, 0, 1}, math.Pi / 2, V4{1, 0, 0, 1}, V4{0, 1, 0, 1}},
		{V3{0, 0, 3}, math.Pi / 2, V4{0, 1, 0, 1}, V4{-1, 0, 0, 1}},
		{V3{0, 1, 0}, math.Pi, V4{1, 0, 0, 1}, V4{-1, 0, 0, 1}},
		{V3{1, 0, 0}, math.Pi / 2, V4{0, 0, 1, 1}, V4{0, -1, 0, 1}},
		{V3{1, 1, 1}, 2 * math.Pi / 3, V4{1, 0, 0, 1}, V4{0, 1, 0, 1}},
		{V3{}, 1, V4{1, 2, 3, 1}, V4{1, 2, 3, 1}},
	} {
		m.Rotate(x.angle, &x.axis)
		var v V4
		if v.Mul(&m, &x.in); !approxV4(v, x.want) {
			t.Fatalf("M4.Rotate(%v, %v) * %v\nhave %v\nwant %v", x.angle, x.axis, x.in, v, x.want)
		}
	}
}

func TestPerspective(t *testing.T) {
	const near, far = 0.1, 1000
	var m M4
	m.Perspective(math.Pi/4, 4.0/3, near, far)
	if m[2][3] != -1 || m[3][3] != 0 {
		t.Fatalf("M4.Perspective: w row\nhave %v %v\nwant -1 0", m[2][3], m[3][3])
	}
	f := float32(1 / math.Tan(math.Pi/8))
	if !approx(m[1][1], f) || !approx(m[0][0], f*3/4) {
		t.Fatalf("M4.Perspective: scale\nhave %v %v\nwant %v %v", m[0][0], m[1][1], f*3/4, f)
	}
	for _, x := range [...][2]float32{{-near, -1}, {-far, 1}} {
		var v V4
		v.Mul(&m, &V4{0, 0, x[0], 1})
		if z := v[2] / v[3]; math.Abs(float64(z-x[1])) > 1e-3 {
			t.Fatalf("M4.Perspective: depth at %v\nhave %v\nwant %v", x[0], z, x[1])
		}
	}
}

func TestLookAt(t *testing.T) {
	var m M4
	eye := V3{0, 0, -10}
	m.LookAt(&eye, &V3{}, &V3{0, 1, 0})
	var v V4
	if v.Mul(&m, &V4{0, 0, 0, 1}); !approxV4(v, V4{0, 0, -10, 1}) {
		t.Fatalf("M4.LookAt: center\nhave %v\nwant [0 0 -10 1]", v)
	}
	if v.Mul(&m, &V4{eye[0], eye[1], eye[2], 1}); !approxV4(v, V4{0, 0, 0, 1}) {
		t.Fatalf("M4.LookAt: eye\nhave %v\nwant [0 0 0 1]", v)
	}
	if v.Mul(&m, &V4{0, 1, 0, 0}); !approxV4(v, V4{0, 1, 0, 0}) {
		t.Fatalf("M4.LookAt: up\nhave %v\nwant [0 1 0 0]", v)
	}
}
