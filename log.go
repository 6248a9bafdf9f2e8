package dispatch

import "net/url"

// LogMaskVal replaces sensitive values before they are logged.
const LogMaskVal = "xxxxxx"

// Mask replaces every value under key in vals with a single LogMaskVal.
func Mask(vals url.Values, key string) {
	if _, ok := vals[key]; !ok {
		return
	}

	vals[key] = []string{LogMaskVal}
}
