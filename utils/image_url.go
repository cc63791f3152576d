package utils

import (
	"net/url"
	"strconv"
	"strings"
)

// ImageURLWithWidth returns base with its width query parameter set to width.
// An existing width parameter is replaced. A non-positive width returns base
// unchanged.
func ImageURLWithWidth(base string, width int) string {
	if base == "" || width <= 0 {
		return base
	}

	u, err := url.Parse(base)
	if err != nil {
		// Leave unparseable URLs to the CDN, just append the hint
		sep := "?"
		if strings.Contains(base, "?") {
			sep = "&"
		}
		return base + sep + "width=" + strconv.Itoa(width)
	}

	q := u.Query()
	q.Set("width", strconv.Itoa(width))
	u.RawQuery = q.Encode()
	return u.String()
}

// ProxiedImageURL returns the local image proxy path serving src at width
func ProxiedImageURL(src string, width int) string {
	q := url.Values{}
	q.Set("src", src)
	if width > 0 {
		q.Set("width", strconv.Itoa(width))
	}
	return "/images?" + q.Encode()
}

// SplitImageWidth separates the width query parameter from raw. It returns
// raw without the parameter and the parsed width, or 0 when absent or invalid.
func SplitImageWidth(raw string) (string, int) {
	u, err := url.Parse(raw)
	if err != nil {
		return raw, 0
	}
	q := u.Query()
	w, err := strconv.Atoi(q.Get("width"))
	if err != nil || w < 0 {
		w = 0
	}
	q.Del("width")
	u.RawQuery = q.Encode()
	return u.String(), w
}
