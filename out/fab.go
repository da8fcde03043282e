// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"bufio"
	"math"
	"os"

	"github.com/cpmech/gosl/io"

	"github.com/JointFlow/DFMGenerator-sub007/gdfn"
)

// fabPanel is one quadrilateral trace segment of a macrofracture wing: the
// FAB format's "fracture" unit is one per-segment panel, not one
// macrofracture (§8 scenario 6 "No_Fractures = total segment count over
// both propagation directions")
type fabPanel struct {
	dipSet          int
	permeability    float64
	compressibility float64
	aperture        float64
	corners         [4]gdfn.Point3 // topA, topB, bottomB, bottomA, winding order
}

// WriteFAB writes net to path in the FAB format (§6): BEGIN FORMAT header,
// a three-property PROPERTIES section (Permeability, Compressibility,
// Aperture), a single-set SETS section, one FRACTURE entry per trace
// panel (4 nodes each, §8 scenario 6 "No_Nodes = No_Fractures × 4"), and
// empty TESSFRACTURE / ROCKBLOCK sections.
func WriteFAB(path string, net *gdfn.GlobalDFN) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		cerr := f.Close()
		if err == nil {
			err = cerr
		}
	}()
	w := bufio.NewWriter(f)
	defer func() {
		ferr := w.Flush()
		if err == nil {
			err = ferr
		}
	}()

	panels := collectFabPanels(net)

	io.Ff(w, "BEGIN FORMAT\n")
	io.Ff(w, "    Format = Ascii\n")
	io.Ff(w, "    XAxis = East\n")
	io.Ff(w, "    Scale = 1\n")
	io.Ff(w, "    No_Fractures = %d\n", len(panels))
	io.Ff(w, "    No_TessFractures = 0\n")
	io.Ff(w, "    No_Nodes = %d\n", len(panels)*4)
	io.Ff(w, "END FORMAT\n")

	io.Ff(w, "BEGIN PROPERTIES\n")
	io.Ff(w, "    Property = 1, Real*4, Permeability\n")
	io.Ff(w, "    Property = 2, Real*4, Compressibility\n")
	io.Ff(w, "    Property = 3, Real*4, Aperture\n")
	io.Ff(w, "END PROPERTIES\n")

	io.Ff(w, "BEGIN SETS\n")
	io.Ff(w, "    Set = 1, \"Set 1\"\n")
	io.Ff(w, "END SETS\n")

	io.Ff(w, "BEGIN FRACTURE\n")
	for id, p := range panels {
		io.Ff(w, "%d %d %d %.6e %.6e %.6e\n", id+1, len(p.corners), p.dipSet+1,
			p.permeability, p.compressibility, p.aperture)
		for i, c := range p.corners {
			io.Ff(w, "%d %.6e %.6e %.6e\n", i+1, c.X, c.Y, c.Z)
		}
		writeFabNormal(w, p.corners)
	}
	io.Ff(w, "END FRACTURE\n")

	io.Ff(w, "BEGIN TESSFRACTURE\n")
	io.Ff(w, "END TESSFRACTURE\n")
	io.Ff(w, "BEGIN ROCKBLOCK\n")
	io.Ff(w, "END ROCKBLOCK\n")
	return nil
}

// collectFabPanels flattens every macrofracture wing trace into one panel
// per consecutive top/bottom cornerpoint pair
func collectFabPanels(net *gdfn.GlobalDFN) []fabPanel {
	var panels []fabPanel
	for _, m := range net.Macrofractures {
		panels = append(panels, wingPanels(m, m.Plus)...)
		panels = append(panels, wingPanels(m, m.Minus)...)
	}
	return panels
}

func wingPanels(m *gdfn.MacrofractureXYZ, wing gdfn.Wing) []fabPanel {
	var panels []fabPanel
	n := len(wing.TopTrace)
	if n > len(wing.BottomTrace) {
		n = len(wing.BottomTrace)
	}
	for i := 0; i+1 < n; i += 2 {
		panels = append(panels, fabPanel{
			dipSet:          m.DipSetIndex,
			permeability:    m.Permeability,
			compressibility: m.Compressibility,
			aperture:        m.Aperture,
			corners: [4]gdfn.Point3{
				wing.TopTrace[i], wing.TopTrace[i+1],
				wing.BottomTrace[i+1], wing.BottomTrace[i],
			},
		})
	}
	return panels
}

// writeFabNormal emits the terminating unit-normal-vector line for a planar
// quadrilateral panel, via the cross product of its first two edges
func writeFabNormal(w *bufio.Writer, c [4]gdfn.Point3) {
	ux, uy, uz := c[1].X-c[0].X, c[1].Y-c[0].Y, c[1].Z-c[0].Z
	vx, vy, vz := c[3].X-c[0].X, c[3].Y-c[0].Y, c[3].Z-c[0].Z
	nx := uy*vz - uz*vy
	ny := uz*vx - ux*vz
	nz := ux*vy - uy*vx
	length := nx*nx + ny*ny + nz*nz
	if length > 0 {
		inv := 1.0 / math.Sqrt(length)
		nx, ny, nz = nx*inv, ny*inv, nz*inv
	}
	io.Ff(w, "%.6e %.6e %.6e\n", nx, ny, nz)
}
