package listing

import (
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DirectorySize is shown in the size column for anything that is not a regular file
const DirectorySize = "-"

// sizePrefixes are indexed by order-1
var sizePrefixes = [...]byte{'k', 'M', 'G', 'T', 'P', 'E'}

const binaryMarker = "i"

var separatorPrinter = message.NewPrinter(language.English)

// FormatWithSeparator renders n in base 10 with a comma every three digits
// from the right. Values under 1000 have no separator.
func FormatWithSeparator(n uint64) string {
	return separatorPrinter.Sprintf("%d", n)
}

// FormatHumanSize renders a byte count with a unit prefix.
//
// The count is divided by 1000 (or 1024 when binary is set) while it is strictly
// greater than the divisor, so exactly 1000 bytes stays "1,000" in decimal mode.
// Scaled values of ten or more are rounded to an integer; smaller ones keep one
// decimal digit. When that digit rounds up to ten the carry goes into the integer
// part, so 1.96k renders as "2.0k" and 9.97k as "10k".
func FormatHumanSize(n uint64, binary bool) string {
	divisor := 1000.0
	if binary {
		divisor = 1024.0
	}

	value := float64(n)
	order := 0
	for value > divisor && order < len(sizePrefixes) {
		value /= divisor
		order++
	}

	if order == 0 {
		return FormatWithSeparator(n)
	}

	unit := string(sizePrefixes[order-1])
	if binary {
		unit += binaryMarker
	}
	return formatScaled(value) + unit
}

func formatScaled(value float64) string {
	if value < 10 {
		tenths := uint64(math.Round(value * 10))
		if tenths < 100 {
			return FormatWithSeparator(tenths/10) + "." + strconv.FormatUint(tenths%10, 10)
		}
	}
	return FormatWithSeparator(uint64(math.Round(value)))
}
