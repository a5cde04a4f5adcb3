package listing

import "slices"

// CompareNames orders entries by name, ignoring ASCII case
func CompareNames(a, b Entry) int {
	x, y := a.Name, b.Name
	for i := 0; i < len(x) && i < len(y); i++ {
		cx, cy := lowerASCII(x[i]), lowerASCII(y[i])
		if cx != cy {
			if cx < cy {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(x) < len(y):
		return -1
	case len(x) > len(y):
		return 1
	}
	return 0
}

func lowerASCII(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

// Sort orders entries in place by name, optionally keeping directories ahead of
// everything else. The sort is stable.
func Sort(entries []Entry, dirsFirst bool) {
	slices.SortStableFunc(entries, func(a, b Entry) int {
		if dirsFirst && a.IsDir() != b.IsDir() {
			if a.IsDir() {
				return -1
			}
			return 1
		}
		return CompareNames(a, b)
	})
}
