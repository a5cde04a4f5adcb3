package listing

const (
	permChars = "rwx"
	noPerm    = '-'
)

// FormatPermissions renders the low nine mode bits as a ten-character string:
// 'd' or '.' for the entry type, then rwx triplets for owner, group and other.
func FormatPermissions(mode uint32, dir bool) string {
	var b [10]byte
	b[0] = '.'
	if dir {
		b[0] = 'd'
	}
	for i := 0; i < 9; i++ {
		if mode&(1<<(8-i)) != 0 {
			b[i+1] = permChars[i%3]
		} else {
			b[i+1] = noPerm
		}
	}
	return string(b[:])
}
