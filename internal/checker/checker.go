package checker

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/likexian/whois"
	"github.com/sirupsen/logrus"

	"github.com/gegianno/domain-checker/internal/models"
)

// Config controls timeouts and concurrency for a Checker. Zero values fall
// back to the defaults below.
type Config struct {
	WhoisTimeout time.Duration  // registry query timeout (default 5s)
	HTTPTimeout  time.Duration  // per-attempt website probe timeout (default 5s)
	DNSServer    string         // resolver address (default 8.8.8.8:53)
	Workers      int            // batch worker pool size (default 5)
	Logger       *logrus.Logger // defaults to logrus.StandardLogger()
}

const (
	defaultWhoisTimeout = 5 * time.Second
	defaultHTTPTimeout  = 5 * time.Second
	defaultDNSServer    = "8.8.8.8:53"
	defaultWorkers      = 5
)

// Checker runs multi-signal availability checks for domain names
type Checker struct {
	cfg      Config
	log      *logrus.Logger
	resolver hostResolver
	web      *http.Client
	registry registryFunc
}

// New creates a Checker with default configuration
func New() *Checker {
	return NewWithConfig(Config{})
}

// NewWithConfig creates a Checker, filling unset config fields with defaults
func NewWithConfig(cfg Config) *Checker {
	if cfg.WhoisTimeout <= 0 {
		cfg.WhoisTimeout = defaultWhoisTimeout
	}
	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = defaultHTTPTimeout
	}
	if cfg.DNSServer == "" {
		cfg.DNSServer = defaultDNSServer
	}
	if cfg.Workers <= 0 {
		cfg.Workers = defaultWorkers
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.StandardLogger()
	}

	whoisClient := whois.NewClient()
	whoisClient.SetTimeout(cfg.WhoisTimeout)

	return &Checker{
		cfg: cfg,
		log: cfg.Logger,
		resolver: &net.Resolver{
			PreferGo: true,
			Dial: func(ctx context.Context, network, address string) (net.Conn, error) {
				d := net.Dialer{Timeout: 5 * time.Second}
				return d.DialContext(ctx, network, cfg.DNSServer)
			},
		},
		web: &http.Client{
			Timeout: cfg.HTTPTimeout,
		},
		registry: newRegistryLookup(whoisClient),
	}
}

// Check runs the full probe sequence for one domain: registry lookup, DNS
// resolution, then a website probe when DNS resolved. The signals are
// reconciled into a single verdict; any failure yields an Unknown result
// rather than an error.
func (c *Checker) Check(ctx context.Context, domain string) (result models.DomainCheckResult) {
	start := time.Now()
	c.log.WithField("domain", domain).Info("checking domain")

	defer func() {
		if r := recover(); r != nil {
			result = models.DomainCheckResult{
				Domain:       domain,
				Availability: models.StatusUnknown,
				Message:      fmt.Sprintf("error checking domain: %v", r),
				CheckedAt:    time.Now(),
			}
		}
		c.log.WithFields(logrus.Fields{
			"domain":  domain,
			"elapsed": time.Since(start).Round(time.Millisecond).String(),
		}).Info("finished checking domain")
	}()

	reg := c.registry(ctx, domain)

	hasDNS := c.lookupDNS(ctx, domain)
	hasWebsite := hasDNS && c.probeWebsite(ctx, domain)

	result = models.DomainCheckResult{
		Domain:     domain,
		HasDNS:     hasDNS,
		HasWebsite: hasWebsite,
		CheckedAt:  time.Now(),
	}

	switch reg.Status {
	case RegistryFound:
		if reg.Expiration != nil || hasDNS || hasWebsite {
			result.Availability = models.StatusRegistered
			result.ExpirationDate = reg.Expiration
			result.Registrar = reg.Registrar
			result.Message = "domain is registered"
		} else {
			result.Availability = models.StatusAvailable
			result.Message = "domain appears to be available"
		}

	case RegistryNotFound:
		// The registry has no record, but DNS or a live website still
		// proves registration (privacy-shielded or malformed records).
		if hasDNS || hasWebsite {
			result.Availability = models.StatusRegistered
			result.Message = "domain is registered (confirmed via DNS/HTTP)"
		} else {
			result.Availability = models.StatusAvailable
			result.Message = "domain appears to be available"
		}

	case RegistryError:
		if hasDNS || hasWebsite {
			result.Availability = models.StatusRegistered
			result.Message = fmt.Sprintf("domain is registered (confirmed via DNS/HTTP; registry lookup failed: %v)", reg.Err)
		} else {
			result.Availability = models.StatusAvailable
			result.Message = fmt.Sprintf("domain appears to be available (registry lookup failed: %v)", reg.Err)
		}
	}

	return result
}
