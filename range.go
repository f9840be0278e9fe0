package servit

import (
	"fmt"
	"strconv"
	"strings"
)

const rangeUnit = "bytes="

// ParseRange plans the byte window requested by a Range header for a file of
// the given size.
//
// Only a single range is supported, either "bytes=<start>-[<end>]" or the
// suffix form "bytes=-<n>". The boolean result is false when no range
// applies: the header is empty, malformed, inverted or lists several ranges,
// in which case the whole file is served. An end past the last byte is
// clamped. A start at or past the end of the file returns
// ErrRangeNotSatisfiable.
func ParseRange(header string, size int64) (Range, bool, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return Range{}, false, nil
	}

	if len(header) < len(rangeUnit) || !strings.EqualFold(header[:len(rangeUnit)], rangeUnit) {
		return Range{}, false, nil
	}

	set := strings.TrimSpace(header[len(rangeUnit):])
	if strings.Contains(set, ",") {
		return Range{}, false, nil
	}

	startStr, endStr, ok := strings.Cut(set, "-")
	if !ok {
		return Range{}, false, nil
	}
	startStr = strings.TrimSpace(startStr)
	endStr = strings.TrimSpace(endStr)

	if startStr == "" {
		return parseSuffixRange(endStr, size)
	}

	start, err := strconv.ParseInt(startStr, 10, 64)
	if err != nil || start < 0 {
		return Range{}, false, nil
	}

	end := size - 1
	if endStr != "" {
		end, err = strconv.ParseInt(endStr, 10, 64)
		if err != nil || end < start {
			return Range{}, false, nil
		}
	}

	if start >= size {
		return Range{}, false, fmt.Errorf("parse range %q: %w", header, ErrRangeNotSatisfiable)
	}

	if end > size-1 {
		end = size - 1
	}

	return Range{Start: start, End: end}, true, nil
}

func parseSuffixRange(s string, size int64) (Range, bool, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 {
		return Range{}, false, nil
	}

	if n == 0 || size == 0 {
		return Range{}, false, fmt.Errorf("parse range: suffix %d: %w", n, ErrRangeNotSatisfiable)
	}

	if n > size {
		n = size
	}

	return Range{Start: size - n, End: size - 1}, true, nil
}
