package httpclient

import (
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"
)

// NewDefaultHTTPClient creates a simple HTTP client with a timeout
func NewDefaultHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
	}
}

// NewCookieClient creates an HTTP client with a cookie jar so that session
// cookies set by listing sites are carried across follow-crawl fetches.
func NewCookieClient(timeout time.Duration) (*http.Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	return &http.Client{
		Jar:     jar,
		Timeout: timeout,
	}, nil
}

// SeedCookies preloads the client's jar with cookies for a site, grouped by
// their declared domain so the jar accepts each under a matching URL.
func SeedCookies(client *http.Client, cookies []*http.Cookie, fallbackHost string) {
	if client.Jar == nil || len(cookies) == 0 {
		return
	}

	cookiesByDomain := make(map[string][]*http.Cookie)
	for _, c := range cookies {
		domain := c.Domain
		if len(domain) > 0 && domain[0] == '.' {
			domain = domain[1:]
		}
		if domain == "" {
			domain = fallbackHost
		}
		cookiesByDomain[domain] = append(cookiesByDomain[domain], c)
	}

	for domain, domainCookies := range cookiesByDomain {
		domainURL, err := url.Parse(fmt.Sprintf("https://%s/", domain))
		if err != nil {
			continue
		}
		client.Jar.SetCookies(domainURL, domainCookies)
	}
}
