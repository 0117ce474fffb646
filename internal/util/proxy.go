package util

import (
	"fmt"
	"net/http"
	"net/url"
)

// NewProxyFunc returns the proxy selector for judge requests. Explicit proxies
// win per scheme; anything left unset falls back to the environment.
func NewProxyFunc(httpProxy, httpsProxy string) func(*http.Request) (*url.URL, error) {
	if httpProxy == "" && httpsProxy == "" {
		return http.ProxyFromEnvironment
	}

	return func(req *http.Request) (*url.URL, error) {
		switch {
		case req.URL.Scheme == "https" && httpsProxy != "":
			return parseProxy(httpsProxy)
		case req.URL.Scheme == "http" && httpProxy != "":
			return parseProxy(httpProxy)
		}
		return http.ProxyFromEnvironment(req)
	}
}

func parseProxy(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid proxy %q: %w", raw, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid proxy %q: missing scheme or host", raw)
	}
	return u, nil
}
