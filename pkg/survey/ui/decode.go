package ui

import "strings"

// Callback data scheme shared by the keyboards and the decoder.
const (
	PrefixLocale = "lang:"
	PrefixModule = "m:"
	PrefixRating = "r:"
	PrefixReady  = "yn:"

	// ModuleDone is the terminal token of the multi-select grid.
	ModuleDone = "done"
)

// TapKind classifies a decoded button tap.
type TapKind int

const (
	TapUnknown TapKind = iota
	TapLocale
	TapModule
	TapRating
	TapReady
)

// DecodeCallback translates raw callback data into a semantic (kind, value)
// pair. Unknown payloads decode to TapUnknown with the raw data preserved.
func DecodeCallback(data string) (TapKind, string) {
	parts := strings.SplitN(data, ":", 2)
	if len(parts) != 2 {
		return TapUnknown, data
	}
	value := parts[1]
	switch parts[0] + ":" {
	case PrefixLocale:
		return TapLocale, value
	case PrefixModule:
		return TapModule, value
	case PrefixRating:
		return TapRating, value
	case PrefixReady:
		return TapReady, value
	default:
		return TapUnknown, data
	}
}
