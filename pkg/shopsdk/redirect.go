package shopsdk

import (
	"net/url"
	"strings"
)

// RedirectFromURL returns the redirect query parameter of the sign-in page
// URL raw. Anything that is not a same-origin path yields "/". A bare
// relative value such as "shipping" is treated as "/shipping".
func RedirectFromURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "/"
	}
	target := strings.TrimSpace(u.Query().Get("redirect"))
	if target == "" {
		return "/"
	}

	t, err := url.Parse(target)
	if err != nil || t.Scheme != "" || t.Host != "" || t.Opaque != "" {
		return "/"
	}
	if strings.HasPrefix(target, "//") || strings.Contains(target, "\\") {
		return "/"
	}
	if !strings.HasPrefix(target, "/") {
		target = "/" + target
	}
	return target
}
