package history

import (
	"database/sql"
	"fmt"
	"time"
)

// TitlePolicy decides what a NULL title becomes.
type TitlePolicy int

const (
	// TitleRequired rejects NULL titles, aborting the read.
	TitleRequired TitlePolicy = iota
	// TitleFromURL substitutes the visit URL.
	TitleFromURL
	// TitleEmpty substitutes "".
	TitleEmpty
)

// Source describes how one browser stores history. Every query selects
// exactly (url, title, raw timestamp), newest first.
type Source struct {
	Browser   Browser
	Query     string
	Timestamp func(raw any) (time.Time, error)
	Title     TitlePolicy
}

var sources = map[Browser]Source{
	Chrome: {
		Browser: Chrome,
		Query: `
			SELECT urls.url, urls.title, visits.visit_time
			FROM urls JOIN visits ON urls.id = visits.url
			ORDER BY visits.visit_time DESC`,
		Timestamp: micros(ChromeTime),
		Title:     TitleRequired,
	},
	Firefox: {
		Browser: Firefox,
		Query: `
			SELECT p.url, COALESCE(p.title, p.url), h.visit_date
			FROM moz_places p
			JOIN moz_historyvisits h ON p.id = h.place_id
			WHERE p.url NOT LIKE 'about:%'
			  AND p.url NOT LIKE 'place:%'
			ORDER BY h.visit_date DESC`,
		Timestamp: micros(FirefoxTime),
		Title:     TitleFromURL,
	},
	Safari: {
		Browser: Safari,
		Query: `
			SELECT history_items.url, history_visits.title, history_visits.visit_time
			FROM history_items
			JOIN history_visits ON history_items.id = history_visits.history_item
			ORDER BY history_visits.visit_time DESC`,
		Timestamp: seconds(SafariTime),
		Title:     TitleEmpty,
	},
}

// SourceFor returns the descriptor for b.
func SourceFor(b Browser) (Source, bool) {
	s, ok := sources[b]
	return s, ok
}

func micros(conv func(int64) (time.Time, error)) func(any) (time.Time, error) {
	return func(raw any) (time.Time, error) {
		v, ok := raw.(int64)
		if !ok {
			return time.Time{}, fmt.Errorf("unexpected timestamp type %T", raw)
		}
		return conv(v)
	}
}

func seconds(conv func(float64) (time.Time, error)) func(any) (time.Time, error) {
	return func(raw any) (time.Time, error) {
		switch v := raw.(type) {
		case float64:
			return conv(v)
		case int64:
			return conv(float64(v))
		default:
			return time.Time{}, fmt.Errorf("unexpected timestamp type %T", raw)
		}
	}
}

// title applies the policy to a scanned title column.
func (s Source) title(url string, t sql.NullString) (string, error) {
	if t.Valid {
		return t.String, nil
	}
	switch s.Title {
	case TitleFromURL:
		return url, nil
	case TitleEmpty:
		return "", nil
	default:
		return "", fmt.Errorf("missing title for %s", url)
	}
}
