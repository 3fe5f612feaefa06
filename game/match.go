package game

// allEqualOrAllUnique reports whether x, y, z are all the same or pairwise
// distinct. Exactly two equal values is the only failing shape.
func allEqualOrAllUnique[T comparable](x, y, z T) bool {
	return (x == y && y == z) || (x != y && y != z && x != z)
}

// IsMatch reports whether three cards form a set: on every characteristic
// the three values are all equal or all different.
func IsMatch(a, b, c Card) bool {
	return allEqualOrAllUnique(a.Shape, b.Shape, c.Shape) &&
		allEqualOrAllUnique(a.Color, b.Color, c.Color) &&
		allEqualOrAllUnique(a.Number, b.Number, c.Number) &&
		allEqualOrAllUnique(a.Shading, b.Shading, c.Shading)
}

// CountMatches returns how many unordered triples of available cards in
// cards form a set.
func CountMatches(cards []Card) int {
	n := 0
	eachTriple(len(cards), func(i, j, k int) bool {
		a, b, c := cards[i], cards[j], cards[k]
		if a.IsAvailable() && b.IsAvailable() && c.IsAvailable() && IsMatch(a, b, c) {
			n++
		}
		return true
	})
	return n
}

// eachTriple calls fn for every i<j<k below n in lexicographic order until
// fn returns false.
func eachTriple(n int, fn func(i, j, k int) bool) {
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			for k := j + 1; k < n; k++ {
				if !fn(i, j, k) {
					return
				}
			}
		}
	}
}
