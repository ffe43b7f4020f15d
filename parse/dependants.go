package parse

// Leftmost returns the dependants of idx attached to its left, nearest to idx
// first. At most n are returned; n == All returns every one.
func (p *PartialParse) Leftmost(idx, n int) []int {
	deps := []int{}
	for d := idx - 1; d > 0; d-- {
		if n != All && len(deps) >= n {
			break
		}
		if h, ok := p.Head(d); ok && h == idx {
			deps = append(deps, d)
		}
	}
	return deps
}

// Rightmost returns the dependants of idx attached to its right, nearest to
// idx first. At most n are returned; n == All returns every one.
func (p *PartialParse) Rightmost(idx, n int) []int {
	deps := []int{}
	for d := idx + 1; d < len(p.sentence); d++ {
		if n != All && len(deps) >= n {
			break
		}
		if h, ok := p.Head(d); ok && h == idx {
			deps = append(deps, d)
		}
	}
	return deps
}
