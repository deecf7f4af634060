package checker

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/gegianno/domain-checker/internal/models"
)

func TestNormalizeDomains(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{
			name:  "trims and drops blanks",
			input: []string{"  example.com ", "", "   ", "example.net\n"},
			want:  []string{"example.com", "example.net"},
		},
		{
			name:  "order preserved",
			input: []string{"b.com", "a.com"},
			want:  []string{"b.com", "a.com"},
		},
		{
			name:  "all blank",
			input: []string{"", "  "},
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeDomains(tt.input))
		})
	}
}

func TestCheckBatch_OneResultPerDomain(t *testing.T) {
	domains := make([]string, 10)
	for i := range domains {
		domains[i] = fmt.Sprintf("domain-%d.com", i)
	}

	c := newTestChecker()
	c.cfg.Workers = 5
	c.registry = func(ctx context.Context, domain string) RegistryResult {
		return RegistryResult{Status: RegistryNotFound}
	}
	c.resolver = resolveNotFound()

	results := c.CheckBatch(context.Background(), domains)

	assert.Len(t, results, len(domains))

	seen := make(map[string]bool, len(results))
	for _, r := range results {
		assert.False(t, seen[r.Domain], "duplicate result for %s", r.Domain)
		seen[r.Domain] = true
	}
	for _, d := range domains {
		assert.True(t, seen[d], "missing result for %s", d)
	}
}

func TestCheckBatch_RespectsWorkerLimit(t *testing.T) {
	var active, peak int32
	var mu sync.Mutex

	c := newTestChecker()
	c.cfg.Workers = 3
	c.registry = func(ctx context.Context, domain string) RegistryResult {
		n := atomic.AddInt32(&active, 1)
		mu.Lock()
		if n > peak {
			peak = n
		}
		mu.Unlock()
		time.Sleep(10 * time.Millisecond)
		atomic.AddInt32(&active, -1)
		return RegistryResult{Status: RegistryNotFound}
	}
	c.resolver = resolveNotFound()

	domains := make([]string, 12)
	for i := range domains {
		domains[i] = fmt.Sprintf("domain-%d.com", i)
	}
	results := c.CheckBatch(context.Background(), domains)

	assert.Len(t, results, 12)
	mu.Lock()
	defer mu.Unlock()
	assert.LessOrEqual(t, peak, int32(3), "worker pool limit exceeded")
}

func TestCheckBatch_NormalizesInput(t *testing.T) {
	c := newTestChecker()
	c.registry = func(ctx context.Context, domain string) RegistryResult {
		return RegistryResult{Status: RegistryNotFound}
	}
	c.resolver = resolveNotFound()

	results := c.CheckBatch(context.Background(), []string{" example.com ", "", "  "})

	assert.Len(t, results, 1)
	assert.Equal(t, "example.com", results[0].Domain)
}

func TestCheckBatch_EmptyInput(t *testing.T) {
	c := newTestChecker()
	assert.Empty(t, c.CheckBatch(context.Background(), nil))
	assert.Empty(t, c.CheckBatch(context.Background(), []string{"", " "}))
}

func TestCheckBatch_OneFailureDoesNotAbortBatch(t *testing.T) {
	c := newTestChecker()
	c.registry = func(ctx context.Context, domain string) RegistryResult {
		if domain == "broken.com" {
			panic("simulated defect")
		}
		return RegistryResult{Status: RegistryNotFound}
	}
	c.resolver = resolveNotFound()

	results := c.CheckBatch(context.Background(), []string{"ok.com", "broken.com", "fine.com"})

	assert.Len(t, results, 3)
	for _, r := range results {
		if r.Domain == "broken.com" {
			assert.Equal(t, models.StatusUnknown, r.Availability)
			assert.Contains(t, r.Message, "simulated defect")
		} else {
			assert.Equal(t, models.StatusAvailable, r.Availability)
		}
	}
}

func TestCheckBatch_InvariantsHold(t *testing.T) {
	// Mixed signal combinations; hasWebsite must imply hasDns and
	// available must imply no signals at all.
	c := newTestChecker()
	c.registry = func(ctx context.Context, domain string) RegistryResult {
		if domain == "registered.com" {
			exp := time.Now().AddDate(1, 0, 0)
			return RegistryResult{Status: RegistryFound, Expiration: &exp}
		}
		return RegistryResult{Status: RegistryNotFound}
	}
	c.resolver = resolverFunc(func(ctx context.Context, host string) ([]string, error) {
		if host == "free.com" {
			return nil, notFoundDNSError(host)
		}
		return []string{"203.0.113.5"}, nil
	})
	c.web = &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
		return headResponse(http.StatusOK), nil
	})}

	results := c.CheckBatch(context.Background(), []string{"registered.com", "parked.com", "free.com"})

	assert.Len(t, results, 3)
	for _, r := range results {
		if r.HasWebsite {
			assert.True(t, r.HasDNS, "%s: hasWebsite without hasDns", r.Domain)
		}
		if r.Availability == models.StatusAvailable {
			assert.Nil(t, r.ExpirationDate, "%s: available with expiration", r.Domain)
			assert.False(t, r.HasDNS, "%s: available with dns", r.Domain)
			assert.False(t, r.HasWebsite, "%s: available with website", r.Domain)
		}
	}
}
