package checker

import (
	"context"
	"errors"
	"net"

	"github.com/sirupsen/logrus"
)

// hostResolver is the slice of net.Resolver the DNS probe needs
type hostResolver interface {
	LookupHost(ctx context.Context, host string) ([]string, error)
}

// lookupDNS reports whether the domain resolves to at least one address.
// Both a clean "no such host" and a transport failure count as unresolved;
// only the log level tells them apart.
func (c *Checker) lookupDNS(ctx context.Context, domain string) bool {
	addrs, err := c.resolver.LookupHost(ctx, domain)
	if err != nil {
		var dnsErr *net.DNSError
		if errors.As(err, &dnsErr) && dnsErr.IsNotFound {
			c.log.WithField("domain", domain).Debug("dns: name not found")
		} else {
			c.log.WithFields(logrus.Fields{
				"domain": domain,
				"error":  err.Error(),
			}).Warn("dns: lookup failed")
		}
		return false
	}
	return len(addrs) > 0
}
