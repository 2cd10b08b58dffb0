package history

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrTimestampOverflow is returned when a raw timestamp cannot be placed on
// the time line without overflowing int64 arithmetic.
var ErrTimestampOverflow = errors.New("timestamp overflow")

var (
	ChromeEpoch  = time.Date(1601, time.January, 1, 0, 0, 0, 0, time.UTC)
	FirefoxEpoch = time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC)
	SafariEpoch  = time.Date(2001, time.January, 1, 0, 0, 0, 0, time.UTC)
)

// Epoch offsets relative to the Unix epoch.
const (
	chromeEpochUnixMicros = -11644473600 * 1_000_000
	safariEpochUnixSecs   = 978307200

	// Largest magnitude at which every integral float64 is exact.
	safariMaxSecs = 1 << 53
)

// ChromeTime converts microseconds since 1601-01-01 UTC.
func ChromeTime(raw int64) (time.Time, error) {
	// raw + chromeEpochUnixMicros underflows when raw is close to MinInt64.
	if raw < math.MinInt64-chromeEpochUnixMicros {
		return time.Time{}, fmt.Errorf("chrome time %d: %w", raw, ErrTimestampOverflow)
	}
	return time.UnixMicro(raw + chromeEpochUnixMicros).UTC(), nil
}

// FirefoxTime converts microseconds since the Unix epoch.
func FirefoxTime(raw int64) (time.Time, error) {
	return time.UnixMicro(raw).UTC(), nil
}

// SafariTime converts seconds since 2001-01-01 UTC. The fractional part is
// truncated, not rounded.
func SafariTime(raw float64) (time.Time, error) {
	secs := math.Trunc(raw)
	if math.IsNaN(secs) || math.Abs(secs) > safariMaxSecs {
		return time.Time{}, fmt.Errorf("safari time %v: %w", raw, ErrTimestampOverflow)
	}
	return time.Unix(int64(secs)+safariEpochUnixSecs, 0).UTC(), nil
}
