package util

import (
	"net/http"
	"net/url"
	"strings"
)

// NewProxyFunc builds a transport proxy function from explicit proxy
// URLs. With no explicit proxies it defers to the standard environment
// variables. Hosts matching a noProxy entry (comma-separated, suffix
// matched) bypass the proxy.
func NewProxyFunc(httpProxy, httpsProxy, noProxy string) func(*http.Request) (*url.URL, error) {
	if httpProxy == "" && httpsProxy == "" {
		return http.ProxyFromEnvironment
	}

	var skip []string
	for _, entry := range strings.Split(noProxy, ",") {
		if entry = strings.TrimSpace(entry); entry != "" {
			skip = append(skip, entry)
		}
	}

	return func(req *http.Request) (*url.URL, error) {
		host := req.URL.Hostname()
		for _, entry := range skip {
			if host == entry || strings.HasSuffix(host, "."+strings.TrimPrefix(entry, ".")) {
				return nil, nil
			}
		}
		if req.URL.Scheme == "https" && httpsProxy != "" {
			return url.Parse(httpsProxy)
		}
		if httpProxy != "" {
			return url.Parse(httpProxy)
		}
		return http.ProxyFromEnvironment(req)
	}
}
