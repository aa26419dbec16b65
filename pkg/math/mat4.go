package math

import "github.com/chewxy/math32"

// Mat4 is a 4x4 matrix in column-major order (OpenGL compatible).
type Mat4 [16]float32

// Perspective returns a perspective projection matrix.
// fovY is in radians, aspect is width/height.
func Perspective(fovY, aspect, near, far float32) Mat4 {
	f := 1 / math32.Tan(fovY/2)
	nf := 1 / (near - far)

	return Mat4{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, (far + near) * nf, -1,
		0, 0, 2 * far * near * nf, 0,
	}
}

// ViewYawPitch returns a view matrix for a Z-up world. Yaw turns around Z
// starting at +X, pitch tilts the view up; both are in rotation units.
func ViewYawPitch(eye Vec3, yaw, pitch int) Mat4 {
	sy, cy := SinCos(yaw)
	sp, cp := SinCos(pitch)

	f := Vec3{cy * cp, sy * cp, sp}
	s := Vec3{sy, -cy, 0}
	u := s.Cross(f)

	return Mat4{
		s.X, u.X, -f.X, 0,
		s.Y, u.Y, -f.Y, 0,
		s.Z, u.Z, -f.Z, 0,
		-s.Dot(eye), -u.Dot(eye), f.Dot(eye), 1,
	}
}

// Mul returns m * other.
func (m Mat4) Mul(other Mat4) Mat4 {
	var result Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			result[col*4+row] =
				m[0*4+row]*other[col*4+0] +
					m[1*4+row]*other[col*4+1] +
					m[2*4+row]*other[col*4+2] +
					m[3*4+row]*other[col*4+3]
		}
	}
	return result
}

// Ortho returns an orthographic projection matrix.
func Ortho(left, right, bottom, top, near, far float32) Mat4 {
	rl := 1 / (right - left)
	tb := 1 / (top - bottom)
	fn := 1 / (far - near)
	return Mat4{
		2 * rl, 0, 0, 0,
		0, 2 * tb, 0, 0,
		0, 0, -2 * fn, 0,
		-(right + left) * rl, -(top + bottom) * tb, -(far + near) * fn, 1,
	}
}

// Transform returns m * (x, y, z, w).
func (m Mat4) Transform(x, y, z, w float32) (float32, float32, float32, float32) {
	return m[0]*x + m[4]*y + m[8]*z + m[12]*w,
		m[1]*x + m[5]*y + m[9]*z + m[13]*w,
		m[2]*x + m[6]*y + m[10]*z + m[14]*w,
		m[3]*x + m[7]*y + m[11]*z + m[15]*w
}
