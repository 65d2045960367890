package codec

// Range is a half-open format version interval [Since, Until). Until 0
// leaves the range open-ended.
type Range struct {
	Since int
	Until int
}

// Since returns the range of versions v and newer.
func Since(v int) Range {
	return Range{Since: v}
}

// Before returns the range of versions older than v.
func Before(v int) Range {
	return Range{Since: minVersion, Until: v}
}

// Between returns [from, until).
func Between(from, until int) Range {
	return Range{Since: from, Until: until}
}

const minVersion = -1 << 31

func (r Range) Contains(v int) bool {
	if v < r.Since {
		return false
	}
	return r.Until == 0 || v < r.Until
}
