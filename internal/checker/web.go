package checker

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"
)

// probeWebsite reports whether a live HTTP server answers for the domain.
// It sends a HEAD request over plain HTTP first and retries over HTTPS only
// when the first attempt fails at the transport level. Any response with a
// status below 500 counts as live, 4xx included: an error page still proves
// a server is answering for the hostname.
func (c *Checker) probeWebsite(ctx context.Context, domain string) bool {
	for _, scheme := range []string{"http", "https"} {
		live, err := c.headRequest(ctx, scheme+"://"+domain)
		if err == nil {
			return live
		}
		c.log.WithFields(logrus.Fields{
			"domain": domain,
			"scheme": scheme,
			"error":  err.Error(),
		}).Debug("website probe attempt failed")
	}
	return false
}

// headRequest issues one HEAD request, following redirects. The returned
// error is non-nil only for transport-level failures.
func (c *Checker) headRequest(ctx context.Context, url string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return false, err
	}
	resp, err := c.web.Do(req)
	if err != nil {
		return false, err
	}
	resp.Body.Close()
	return resp.StatusCode < http.StatusInternalServerError, nil
}
