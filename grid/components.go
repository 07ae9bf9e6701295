package grid

// Components finds all 4-connected regions of Free cells.
// Returns a slice of components; each component is a slice of row-major cell
// indices in BFS discovery order. Components are ordered by their first cell.
//
// To convert an index back to a Coordinate, use Coordinate(idx).
//
// Time:   O(R·C·4).
// Memory: O(R·C) for visited flags and output.
func (g *Grid) Components() [][]int {
	seen := make([]bool, len(g.cells))
	var comps [][]int

	for i0, cell := range g.cells {
		if cell != Free || seen[i0] {
			continue
		}
		queue := []int{i0}
		seen[i0] = true
		var comp []int

		for qi := 0; qi < len(queue); qi++ {
			u := queue[qi]
			comp = append(comp, u)
			uc := g.Coordinate(u)
			for _, d := range Offsets4 {
				v := uc.Add(d)
				if !g.IsFree(v) {
					continue
				}
				vi := g.index(v)
				if !seen[vi] {
					seen[vi] = true
					queue = append(queue, vi)
				}
			}
		}
		comps = append(comps, comp)
	}
	return comps
}

// Connected reports whether a and b are both Free and lie in the same
// 4-connected component. It stops as soon as b is reached.
// Time: O(R·C) worst case.
func (g *Grid) Connected(a, b Coordinate) bool {
	if !g.IsFree(a) || !g.IsFree(b) {
		return false
	}
	if a == b {
		return true
	}
	seen := make([]bool, len(g.cells))
	seen[g.index(a)] = true
	queue := []Coordinate{a}
	for qi := 0; qi < len(queue); qi++ {
		for _, d := range Offsets4 {
			v := queue[qi].Add(d)
			if !g.IsFree(v) || seen[g.index(v)] {
				continue
			}
			if v == b {
				return true
			}
			seen[g.index(v)] = true
			queue = append(queue, v)
		}
	}
	return false
}
