package bookings

// Dedup concatenates the path results in the given order and keeps the first ref seen for each uid.
// The returned slice is freshly allocated; its order is not the presentation order.
func Dedup(results [][]Ref) []Ref {
	total := 0
	for _, refs := range results {
		total += len(refs)
	}
	seen := make(map[string]struct{}, total)
	out := make([]Ref, 0, total)
	for _, refs := range results {
		for _, r := range refs {
			if _, ok := seen[r.UID]; ok {
				continue
			}
			seen[r.UID] = struct{}{}
			out = append(out, r)
		}
	}
	return out
}

// ids returns the numeric ids of refs.
func ids(refs []Ref) []int {
	out := make([]int, len(refs))
	for i, r := range refs {
		out[i] = r.ID
	}
	return out
}
