package audit

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// Auditor fetches and analyzes pages, pacing requests so multi-URL runs
// stay polite toward the target host.
type Auditor struct {
	http    *http.Client
	limiter *rate.Limiter
}

// NewAuditor builds an auditor with a 10s request timeout and a default
// pace of two requests per second.
func NewAuditor() *Auditor {
	return &Auditor{
		http:    &http.Client{Timeout: 10 * time.Second},
		limiter: rate.NewLimiter(rate.Every(500*time.Millisecond), 1),
	}
}

// SetPace overrides the request pacing interval.
func (a *Auditor) SetPace(interval time.Duration) {
	if interval <= 0 {
		return
	}
	a.limiter = rate.NewLimiter(rate.Every(interval), 1)
}

// Audit fetches one URL and analyzes the response body.
func (a *Auditor) Audit(ctx context.Context, pageURL string) (Report, error) {
	if err := a.limiter.Wait(ctx); err != nil {
		return Report{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return Report{}, fmt.Errorf("audit: build request: %w", err)
	}
	req.Header.Set("User-Agent", "meridian-seoaudit/1.0")
	resp, err := a.http.Do(req)
	if err != nil {
		return Report{}, fmt.Errorf("audit: fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return Report{}, fmt.Errorf("audit: fetch %s: status %d", pageURL, resp.StatusCode)
	}
	return Analyze(pageURL, resp.Body)
}

// Result pairs a URL with its report or fetch error.
type Result struct {
	URL    string
	Report Report
	Err    error
}

// AuditAll audits every URL in order. Per-URL failures are recorded, not
// fatal; the context cancels the whole run.
func (a *Auditor) AuditAll(ctx context.Context, urls []string) []Result {
	results := make([]Result, 0, len(urls))
	for _, u := range urls {
		if ctx.Err() != nil {
			results = append(results, Result{URL: u, Err: ctx.Err()})
			continue
		}
		rep, err := a.Audit(ctx, u)
		results = append(results, Result{URL: u, Report: rep, Err: err})
	}
	return results
}
