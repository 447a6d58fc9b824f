package ui

// Window maps a cursor position within a result list to the visible
// slice bounds. The cursor stays centered except near the ends of the
// list, where the window pins to the start or end. The caller clamps
// cursor to [0, length-1] before windowing.
func Window(length, cursor, visible int) (start, end int) {
	if length == 0 || visible <= 0 {
		return 0, 0
	}

	start = cursor - visible/2
	if maxStart := length - visible; start > maxStart {
		start = maxStart
	}
	if start < 0 {
		start = 0
	}

	end = start + visible
	if end > length {
		end = length
	}
	return start, end
}
