package chain

import "strings"

// Providers have no standard error code for an oversized log query; each
// one words the rejection differently. These markers cover the providers
// we have run against.
var rangeTooLargeMarkers = []string{
	"block range",
	"query returned more than",
	"too many results",
	"range too large",
	"exceed maximum block",
	"response size exceeded",
}

// IsRangeTooLarge reports whether err is the provider rejecting a log
// query because the requested block range is too wide. These are not
// transient: retrying the identical range fails forever, so the caller
// must shrink the window instead.
func IsRangeTooLarge(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range rangeTooLargeMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
