// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package tsr implements symmetric 2nd and 4th order tensor algebra for the
// fracture driving-stress calculations: construction, addition, scaling,
// tensor-tensor contraction, isotropic and anisotropic compliance, and
// partial inversion holding one stress component fixed.
package tsr

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// Sym2 is a symmetric 2nd-order tensor stored in full (xx,yy,zz,xy,yz,zx) form
type Sym2 struct {
	Xx, Yy, Zz, Xy, Yz, Zx float64
}

// NewSym2 builds a symmetric tensor from its six independent components
func NewSym2(xx, yy, zz, xy, yz, zx float64) Sym2 {
	return Sym2{Xx: xx, Yy: yy, Zz: zz, Xy: xy, Yz: yz, Zx: zx}
}

// Iso builds an isotropic (hydrostatic) tensor p·I
func Iso(p float64) Sym2 {
	return Sym2{Xx: p, Yy: p, Zz: p}
}

// Vec returns the Voigt-ordered vector [xx,yy,zz,xy,yz,zx]
func (t Sym2) Vec() [6]float64 {
	return [6]float64{t.Xx, t.Yy, t.Zz, t.Xy, t.Yz, t.Zx}
}

// FromVec builds a Sym2 from a Voigt-ordered vector
func FromVec(v [6]float64) Sym2 {
	return Sym2{Xx: v[0], Yy: v[1], Zz: v[2], Xy: v[3], Yz: v[4], Zx: v[5]}
}

// Add returns t + o
func (t Sym2) Add(o Sym2) Sym2 {
	return Sym2{t.Xx + o.Xx, t.Yy + o.Yy, t.Zz + o.Zz, t.Xy + o.Xy, t.Yz + o.Yz, t.Zx + o.Zx}
}

// Sub returns t - o
func (t Sym2) Sub(o Sym2) Sym2 {
	return Sym2{t.Xx - o.Xx, t.Yy - o.Yy, t.Zz - o.Zz, t.Xy - o.Xy, t.Yz - o.Yz, t.Zx - o.Zx}
}

// Scale returns c·t
func (t Sym2) Scale(c float64) Sym2 {
	return Sym2{c * t.Xx, c * t.Yy, c * t.Zz, c * t.Xy, c * t.Yz, c * t.Zx}
}

// Trace returns xx+yy+zz
func (t Sym2) Trace() float64 {
	return t.Xx + t.Yy + t.Zz
}

// Contract computes the double-dot product a:b = Σ a_ij b_ij (engineering
// off-diagonal components are doubled, matching the usual Voigt metric)
func Contract(a, b Sym2) float64 {
	return a.Xx*b.Xx + a.Yy*b.Yy + a.Zz*b.Zz +
		2*(a.Xy*b.Xy+a.Yz*b.Yz+a.Zx*b.Zx)
}

// Im is the Voigt-form identity 2nd-order tensor, matching the constant
// tables mdl/solid.SmallElasticity.Update uses (tsr.Im) for an isotropic host
var Im = [6]float64{1, 1, 1, 0, 0, 0}

// Compliance4 is a symmetric 4th-order tensor stored as a 6x6 Voigt matrix
type Compliance4 [6][6]float64

// psd is the deviatoric projection tensor in Voigt form, I_sym - (1/3)Im⊗Im,
// matching the role of tsr.Psd in mdl/solid.SmallElasticity.CalcD
func psd() (p [6][6]float64) {
	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			var iSym float64
			if i == j {
				iSym = 1
				if i >= 3 {
					iSym = 0.5 // engineering-shear identity on the shear block
				}
			}
			p[i][j] = iSym - Im[i]*Im[j]/3.0
		}
	}
	return
}

// IsotropicStiffness builds the 4th-order stiffness D = dσ/dε for an
// isotropic linear-elastic material with bulk modulus K and shear modulus G,
// following mdl/solid.SmallElasticity.CalcD's K·Im⊗Im + 2G·Psd form
func IsotropicStiffness(K, G float64) Compliance4 {
	p := psd()
	var d Compliance4
	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			d[i][j] = K*Im[i]*Im[j] + 2*G*p[i][j]
		}
	}
	return d
}

// IsotropicCompliance builds S = D^-1 for an isotropic material directly
// from E and ν (closed form, no matrix inversion needed)
func IsotropicCompliance(E, nu float64) Compliance4 {
	var s Compliance4
	g := E / (2 * (1 + nu))
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if i == j {
				s[i][j] = 1.0 / E
			} else {
				s[i][j] = -nu / E
			}
		}
	}
	for i := 3; i < 6; i++ {
		s[i][i] = 1.0 / g
	}
	return s
}

// AddFractureContribution adds the excess compliance contributed by one
// fracture dip set, proportional to its P32 (fracture area per unit volume)
// and oriented by azimuth and dip (radians). Follows the linear-slip
// (Schoenberg-style) approximation: the fracture adds normal and shear
// compliance along its own local n/s1/s2 axes, rotated into xyz.
func (s *Compliance4) AddFractureContribution(p32, azimuth, dip, normalCompliance, shearCompliance float64) {
	n := unitNormal(azimuth, dip)
	add := fractureComplianceWorld(n, p32*normalCompliance, p32*shearCompliance)
	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			s[i][j] += add[i][j]
		}
	}
}

// unitNormal returns the unit normal of a plane with the given strike azimuth
// (measured from x, radians) and dip angle from horizontal (radians)
func unitNormal(azimuth, dip float64) [3]float64 {
	// strike direction is (cos az, sin az, 0); dip direction is perpendicular
	// to strike, tilted down by dip; the plane normal is perpendicular to both
	sinA, cosA := math.Sin(azimuth), math.Cos(azimuth)
	sinD, cosD := math.Sin(dip), math.Cos(dip)
	return [3]float64{-sinA * sinD, cosA * sinD, cosD}
}

// fractureComplianceWorld builds the 6x6 world-frame excess compliance of a
// single fracture orientation with normal n, scaled normal compliance Zn and
// shear compliance Zt (linear-slip model: excess compliance = Zn·(n⊗n)⊗(n⊗n)
// + Zt·symmetrized shear terms)
func fractureComplianceWorld(n [3]float64, zn, zt float64) (c [6][6]float64) {
	nn := [3][3]float64{
		{n[0] * n[0], n[0] * n[1], n[0] * n[2]},
		{n[1] * n[0], n[1] * n[1], n[1] * n[2]},
		{n[2] * n[0], n[2] * n[1], n[2] * n[2]},
	}
	idx := [3][3]int{{0, 3, 5}, {3, 1, 4}, {5, 4, 2}}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			vi := idx[i][j]
			for k := 0; k < 3; k++ {
				for l := 0; l < 3; l++ {
					vj := idx[k][l]
					c[vi][vj] += zt * shearProjector(n, i, j, k, l)
				}
			}
		}
	}
	c[0][0] += zn * nn[0][0] * nn[0][0]
	c[1][1] += zn * nn[1][1] * nn[1][1]
	c[2][2] += zn * nn[2][2] * nn[2][2]
	c[0][1] += zn * nn[0][0] * nn[1][1]
	c[1][0] = c[0][1]
	c[0][2] += zn * nn[0][0] * nn[2][2]
	c[2][0] = c[0][2]
	c[1][2] += zn * nn[1][1] * nn[2][2]
	c[2][1] = c[1][2]
	return
}

// shearProjector approximates the symmetrized shear contribution
// (delta_ik n_j n_l + ... )/4 used by the linear-slip fracture model
func shearProjector(n [3]float64, i, j, k, l int) float64 {
	delta := func(a, b int) float64 {
		if a == b {
			return 1
		}
		return 0
	}
	return 0.25 * (delta(i, k)*n[j]*n[l] + delta(i, l)*n[j]*n[k] +
		delta(j, k)*n[i]*n[l] + delta(j, l)*n[i]*n[k])
}

// Apply contracts a 4th-order tensor with a 2nd-order tensor, c:t, returning
// the Voigt-ordered vector of the result (used to apply a compliance to a
// stress, or a stiffness to a strain)
func (c Compliance4) Apply(t Sym2) [6]float64 {
	v := t.Vec()
	var out [6]float64
	for i := 0; i < 6; i++ {
		var sum float64
		for j := 0; j < 6; j++ {
			sum += c[i][j] * v[j]
		}
		out[i] = sum
	}
	return out
}

// ApplySym is Apply but returns a Sym2 directly
func (c Compliance4) ApplySym(t Sym2) Sym2 {
	return FromVec(c.Apply(t))
}

// PartialInvert holds one stress component (σ_zz) fixed and recomputes the
// remaining stress components that are consistent with the given strain and
// the supplied compliance/stiffness, used to enforce vertical lithostatic
// stress while allowing the horizontal effective stress state to evolve.
// strain carries all 6 known strain components EXCEPT Zz (which is solved
// for); sigmaZZFixed is the prescribed value of σ_zz.
func PartialInvert(stiff Compliance4, strain Sym2, sigmaZZFixed float64) (stress Sym2, epsZZ float64, err error) {
	d := stiff
	row2 := [6]float64{d[2][0], d[2][1], d[2][2], d[2][3], d[2][4], d[2][5]}
	if row2[2] == 0 {
		return stress, 0, chk.Err("tsr.PartialInvert: singular D[2][2]=0, cannot solve for strain_zz")
	}
	known := strain.Vec()
	var rhs float64
	for i := 0; i < 6; i++ {
		if i == 2 {
			continue
		}
		rhs += row2[i] * known[i]
	}
	epsZZ = (sigmaZZFixed - rhs) / row2[2]
	known[2] = epsZZ
	var sigVec [6]float64
	for i := 0; i < 6; i++ {
		var sum float64
		for j := 0; j < 6; j++ {
			sum += d[i][j] * known[j]
		}
		sigVec[i] = sum
	}
	stress = FromVec(sigVec)
	return
}
