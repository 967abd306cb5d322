package pkg

import (
	"unsafe"
)

// BytesToString converts bytes slice to a string without extra allocation.
// buf must not be modified afterwards.
func BytesToString(buf []byte) string {
	return unsafe.String(unsafe.SliceData(buf), len(buf))
}
