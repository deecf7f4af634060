package checker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/likexian/whois"
	whoisparser "github.com/likexian/whois-parser"
)

// RegistryStatus classifies the outcome of a registry (WHOIS) lookup
type RegistryStatus int

const (
	// RegistryFound means the registry returned a record; Expiration and
	// Registrar carry whatever fields the record exposed.
	RegistryFound RegistryStatus = iota
	// RegistryNotFound is the registry's clean "no such domain" answer.
	RegistryNotFound
	// RegistryError covers timeouts, connection failures, and responses
	// that could not be parsed; Err holds the reason.
	RegistryError
)

// RegistryResult is the tagged outcome of one registry lookup
type RegistryResult struct {
	Status     RegistryStatus
	Expiration *time.Time
	Registrar  string
	Err        error
}

type registryFunc func(ctx context.Context, domain string) RegistryResult

// newRegistryLookup builds the registry probe on top of a WHOIS client with
// its own timeout. The query itself does not take a context; the channel
// hand-off lets a cancelled context stop the wait while the query winds
// down on its own timeout.
func newRegistryLookup(client *whois.Client) registryFunc {
	return func(ctx context.Context, domain string) RegistryResult {
		type answer struct {
			raw string
			err error
		}
		ch := make(chan answer, 1)
		go func() {
			raw, err := client.Whois(domain)
			ch <- answer{raw: raw, err: err}
		}()

		select {
		case <-ctx.Done():
			return RegistryResult{Status: RegistryError, Err: ctx.Err()}
		case a := <-ch:
			if a.err != nil {
				return RegistryResult{Status: RegistryError, Err: fmt.Errorf("whois query: %w", a.err)}
			}
			return parseRegistryResponse(a.raw)
		}
	}
}

// parseRegistryResponse turns raw WHOIS text into a RegistryResult
func parseRegistryResponse(raw string) RegistryResult {
	info, err := whoisparser.Parse(raw)
	if err != nil {
		if errors.Is(err, whoisparser.ErrNotFoundDomain) {
			return RegistryResult{Status: RegistryNotFound}
		}
		return RegistryResult{Status: RegistryError, Err: fmt.Errorf("whois parse: %w", err)}
	}

	res := RegistryResult{Status: RegistryFound}
	if info.Domain != nil {
		// Parser already collapses multiple expiry lines to the first.
		res.Expiration = info.Domain.ExpirationDateInTime
	}
	if info.Registrar != nil {
		res.Registrar = info.Registrar.Name
	}
	return res
}
