package checker

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/gegianno/domain-checker/internal/models"
)

// NormalizeDomains trims whitespace from each entry and drops blanks,
// preserving order.
func NormalizeDomains(domains []string) []string {
	normalized := make([]string, 0, len(domains))
	for _, d := range domains {
		d = strings.TrimSpace(d)
		if d != "" {
			normalized = append(normalized, d)
		}
	}
	return normalized
}

// CheckBatch checks many domains concurrently over a worker pool of
// Config.Workers and returns one result per normalized input domain, in
// completion order. A failing domain never aborts the batch; it yields an
// Unknown result instead. CheckBatch returns only when every check has
// finished.
func (c *Checker) CheckBatch(ctx context.Context, domains []string) []models.DomainCheckResult {
	domains = NormalizeDomains(domains)
	total := len(domains)
	if total == 0 {
		return nil
	}

	c.log.WithFields(logrus.Fields{
		"domains": total,
		"workers": c.cfg.Workers,
	}).Info("starting batch check")
	start := time.Now()

	resultCh := make(chan models.DomainCheckResult)
	sem := make(chan struct{}, c.cfg.Workers)
	var wg sync.WaitGroup

	for _, domain := range domains {
		wg.Add(1)
		go func(domain string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			resultCh <- c.runCheck(ctx, domain)
		}(domain)
	}

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	results := make([]models.DomainCheckResult, 0, total)
	for r := range resultCh {
		results = append(results, r)
		c.log.Infof("progress: %d/%d domains checked (%.1f%%)",
			len(results), total, float64(len(results))/float64(total)*100)
	}

	c.log.WithField("elapsed", time.Since(start).Round(time.Millisecond).String()).
		Info("completed all domain checks")
	return results
}

// runCheck shields the batch from a panicking check. Check already recovers
// internally; this is the last line of defense so one domain can never take
// down its siblings.
func (c *Checker) runCheck(ctx context.Context, domain string) (result models.DomainCheckResult) {
	defer func() {
		if r := recover(); r != nil {
			c.log.WithField("domain", domain).Errorf("error processing domain: %v", r)
			result = models.DomainCheckResult{
				Domain:       domain,
				Availability: models.StatusUnknown,
				Message:      fmt.Sprintf("error: %v", r),
				CheckedAt:    time.Now(),
			}
		}
	}()
	return c.Check(ctx, domain)
}
