package loader

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// Accepted timestamp layouts inside file names, most precise first.
var timestampLayouts = []string{
	"2006-01-02 15:04:05.999999",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseIdentifier extracts the market name and snapshot timestamp from a
// snapshot file identifier such as
// "data/boursorama/2023/boursorama 2023-01-02 09:02:02.532041.csv".
//
// The market is the token before the first space of the base name; the
// remainder, minus the extension, is the timestamp.
func ParseIdentifier(identifier string) (market string, ts time.Time, err error) {
	base := filepath.Base(identifier)
	base = strings.TrimSuffix(base, filepath.Ext(base))

	market, token, found := strings.Cut(base, " ")
	if !found {
		return "", time.Time{}, fmt.Errorf("identifier %q has no timestamp token", identifier)
	}

	for _, layout := range timestampLayouts {
		if ts, err = time.ParseInLocation(layout, token, time.UTC); err == nil {
			return market, ts, nil
		}
	}
	return "", time.Time{}, fmt.Errorf("identifier %q: unparseable timestamp %q", identifier, token)
}
