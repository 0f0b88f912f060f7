package clients

import "net/http"

// newHTTPClient builds the client shared by the service adapters. No global
// timeout is set; each request is bounded by the caller's context.
func newHTTPClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 100,
		},
	}
}
