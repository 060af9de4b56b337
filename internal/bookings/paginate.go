package bookings

// Paginate derives the next cursor from the number of bookings that survived dedup and enrichment.
// Without clamp the list is returned as is, which can exceed take.
func Paginate[T any](items []T, take, skip int, clamp bool) ([]T, *int) {
	count := len(items)
	if count <= take {
		return items, nil
	}
	if clamp {
		next := skip + take
		return items[:take], &next
	}
	next := skip + count
	return items, &next
}
