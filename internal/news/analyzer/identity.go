package analyzer

import (
	"crypto/md5"
	"encoding/hex"
	"time"
)

// NewsID derives the dedup key of an article from its title, url and publish date.
func NewsID(title, url string, publishDate time.Time) string {
	sum := md5.Sum([]byte(title + "_" + url + "_" + ISOFormat(publishDate)))
	return hex.EncodeToString(sum[:])
}

// ISOFormat renders t as YYYY-MM-DDTHH:MM:SS[.ffffff]±HH:MM. Microseconds are only written when
// non-zero, so whole-second timestamps keep a short, stable form.
func ISOFormat(t time.Time) string {
	layout := "2006-01-02T15:04:05"
	if t.Nanosecond()/int(time.Microsecond) != 0 {
		layout += ".000000"
	}
	return t.Format(layout + "-07:00")
}
