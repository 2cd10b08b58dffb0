package history

import (
	"fmt"
	"strings"
	"time"
)

// Browser identifies which history source produced a record.
type Browser string

const (
	Chrome  Browser = "Chrome"
	Firefox Browser = "Firefox"
	Safari  Browser = "Safari"
)

// Browsers lists every supported browser in collection order.
var Browsers = []Browser{Chrome, Firefox, Safari}

// ParseBrowser matches a browser name case-insensitively.
func ParseBrowser(s string) (Browser, error) {
	for _, b := range Browsers {
		if strings.EqualFold(s, string(b)) {
			return b, nil
		}
	}
	return "", fmt.Errorf("unknown browser %q", s)
}

// VisitRecord is one visit read from a browser history database.
type VisitRecord struct {
	URL        string
	Title      string
	VisitTime  time.Time // always UTC
	SourcePath string    // original database path, never the scratch copy
	Browser    Browser
}
