// Command seoaudit fetches live pages and reports on their head metadata,
// structured data, and on-page markup. Exit status is non-zero when any
// page fails to fetch or produces an error-severity finding, so it can
// gate a deploy pipeline.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"meridianpress.org/meridian-web/internal/audit"
)

func main() {
	_ = godotenv.Load()

	var (
		pace     time.Duration
		timeout  time.Duration
		warnFail bool
	)
	flag.DurationVar(&pace, "pace", 500*time.Millisecond, "minimum interval between requests")
	flag.DurationVar(&timeout, "timeout", 5*time.Minute, "overall run timeout")
	flag.BoolVar(&warnFail, "strict", false, "treat warnings as failures")
	flag.Parse()

	urls := flag.Args()
	if len(urls) == 0 {
		fmt.Fprintln(os.Stderr, "usage: seoaudit [flags] URL [URL...]")
		os.Exit(2)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Sugar()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	a := audit.NewAuditor()
	a.SetPace(pace)

	failed := false
	for _, res := range a.AuditAll(ctx, urls) {
		if res.Err != nil {
			log.Errorw("fetch failed", "url", res.URL, "err", res.Err)
			failed = true
			continue
		}
		r := res.Report
		log.Infow("audited",
			"url", r.URL,
			"title_len", len(r.Title),
			"description_len", len(r.Description),
			"canonical", r.Canonical,
			"h1_count", r.H1Count,
			"jsonld_count", r.JSONLDCount,
			"images_missing_alt", r.ImagesMissingAlt,
			"internal_links", r.InternalLinks,
			"external_links", r.ExternalLinks,
			"findings", len(r.Findings),
		)
		for _, f := range r.Findings {
			switch f.Severity {
			case audit.SeverityError:
				log.Errorw("finding", "url", r.URL, "check", f.Check, "detail", f.Detail)
			default:
				log.Warnw("finding", "url", r.URL, "check", f.Check, "detail", f.Detail)
			}
		}
		if r.Failed() || (warnFail && len(r.Findings) > 0) {
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}
