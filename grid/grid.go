// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package grid implements FractureGrid (§3, §4.9): the 2D (row,col) array
// of gridblocks with four-neighbour connectivity, aliased shared
// cornerpoints, and the grid-wide timestep merge that feeds the global
// scheduler. Follows the per-entity collection + neighbour-bookkeeping
// pattern of fem/domain.go's Domain.
package grid

import (
	"sort"

	"github.com/cpmech/gosl/chk"

	"github.com/JointFlow/DFMGenerator-sub007/gblk"
	"github.com/JointFlow/DFMGenerator-sub007/inpctl"
	"github.com/JointFlow/DFMGenerator-sub007/rng"
)

// BlockTimestep tags one gridblock's timestep end-time with its block
// identity, the unit the global scheduler merges (§4.9)
type BlockTimestep struct {
	Row, Col int
	EndTime  float64
}

// FractureGrid owns every gridblock exclusively (§3 ownership); a nil entry
// at (row,col) represents a pinched-out column
type FractureGrid struct {
	Rows, Cols int
	Blocks     [][]*gblk.Gridblock // Blocks[row][col], nil = pinched-out

	Control *inpctl.DFNControl // grid-wide DFN generation policy
	Rnd     *rng.Source        // the grid's single seeded random source (§5, §9)

	DFNThicknessCutoffActivated bool // raised if any block fell below MinimumLayerThickness
}

// New allocates an empty rows×cols grid; the caller populates Blocks[r][c]
// (leaving an entry nil pinches out that column)
func New(rows, cols int, seed int, ctl *inpctl.DFNControl) *FractureGrid {
	blocks := make([][]*gblk.Gridblock, rows)
	for r := range blocks {
		blocks[r] = make([]*gblk.Gridblock, cols)
	}
	return &FractureGrid{
		Rows: rows, Cols: cols,
		Blocks:  blocks,
		Control: ctl,
		Rnd:     rng.NewSource(seed),
	}
}

// At returns the gridblock at (row,col), or nil if out of range or pinched-out
func (o *FractureGrid) At(row, col int) *gblk.Gridblock {
	if row < 0 || row >= o.Rows || col < 0 || col >= o.Cols {
		return nil
	}
	return o.Blocks[row][col]
}

// North/East/South/West return the four-neighbour gridblock, or nil at the
// grid boundary or across a pinch-out (§3 "four-neighbour references")
func (o *FractureGrid) North(row, col int) *gblk.Gridblock { return o.At(row-1, col) }
func (o *FractureGrid) South(row, col int) *gblk.Gridblock { return o.At(row+1, col) }
func (o *FractureGrid) East(row, col int) *gblk.Gridblock  { return o.At(row, col+1) }
func (o *FractureGrid) West(row, col int) *gblk.Gridblock  { return o.At(row, col-1) }

// ShareCorners aliases block (r1,c1)'s corner pair at edge indices
// (topIdx,bottomIdx) with block (r2,c2)'s corner pair (otherTopIdx,
// otherBottomIdx): both blocks end up pointing at the same *Corner values,
// so editing one propagates to the other (§3 "cornerpoints ... are aliased")
func (o *FractureGrid) ShareCorners(r1, c1, topIdx, bottomIdx int, r2, c2, otherTopIdx, otherBottomIdx int) error {
	a, b := o.At(r1, c1), o.At(r2, c2)
	if a == nil || b == nil {
		return chk.Err("grid: ShareCorners: one of the two blocks is nil (pinched-out or out of range)")
	}
	b.Top[otherTopIdx] = a.Top[topIdx]
	b.Bottom[otherBottomIdx] = a.Bottom[bottomIdx]
	return nil
}

// RefreshGeometry recomputes ThicknessAtDeformation/DepthAtDeformation for
// every non-nil block and raises the grid-level DFNThicknessCutoffActivated
// flag if any block fell below minimumLayerThickness (§4.9, §7 "never fatal")
func (o *FractureGrid) RefreshGeometry(minimumLayerThickness float64) {
	for r := 0; r < o.Rows; r++ {
		for c := 0; c < o.Cols; c++ {
			b := o.Blocks[r][c]
			if b == nil {
				continue
			}
			b.RefreshGeometry(minimumLayerThickness)
			if b.DFNThicknessCutoffActivated {
				o.DFNThicknessCutoffActivated = true
			}
		}
	}
}

// RunEpisodeAll advances every non-nil block through one deformation
// episode independently (the implicit calculator is per-block, §4.6), using
// depthToSigmaV/depthToPorePressure to derive each block's initial vertical
// stress and pore pressure from its own DepthAtDeformation. A per-block
// failure is localized (§7 "Propagation policy"): it is recorded in the
// returned map and does not abort sibling blocks.
func (o *FractureGrid) RunEpisodeAll(ep *inpctl.DeformationEpisode, startTime float64, depthToSigmaV, depthToPorePressure func(depth float64) float64) (results map[[2]int]gblk.EpisodeResult, errs map[[2]int]error) {
	results = make(map[[2]int]gblk.EpisodeResult)
	errs = make(map[[2]int]error)
	for r := 0; r < o.Rows; r++ {
		for c := 0; c < o.Cols; c++ {
			b := o.Blocks[r][c]
			if b == nil {
				continue
			}
			sigmaV := depthToSigmaV(b.DepthAtDeformation)
			porePressure := depthToPorePressure(b.DepthAtDeformation)
			res, err := b.RunEpisode(ep, startTime, sigmaV, porePressure)
			key := [2]int{r, c}
			if err != nil {
				errs[key] = err
				continue
			}
			results[key] = res
		}
	}
	return
}

// MergeTimesteps merges every non-nil block's timestep end-times into one
// global ascending order, stably tie-broken by (row,col) (§4.9)
func (o *FractureGrid) MergeTimesteps(perBlock map[[2]int]gblk.EpisodeResult) []BlockTimestep {
	var all []BlockTimestep
	for r := 0; r < o.Rows; r++ {
		for c := 0; c < o.Cols; c++ {
			res, ok := perBlock[[2]int{r, c}]
			if !ok {
				continue
			}
			for _, et := range res.TimestepEndTimes {
				all = append(all, BlockTimestep{Row: r, Col: c, EndTime: et})
			}
		}
	}
	// stable ascending merge by end-time with (row,col) tie-break (§4.9);
	// an in-memory total-order merge is exactly sort.SliceStable's job, the
	// same stdlib-justified choice sched makes for the global timeline
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].EndTime != all[j].EndTime {
			return all[i].EndTime < all[j].EndTime
		}
		if all[i].Row != all[j].Row {
			return all[i].Row < all[j].Row
		}
		return all[i].Col < all[j].Col
	})
	return all
}
