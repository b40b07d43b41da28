// Command signoff signs pending portal items for the configured identity.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/viant/signoff"
	"github.com/viant/signoff/internal/logger"
	"github.com/viant/signoff/portal"
)

func main() {
	configURL := flag.String("config", "", "configuration URL (file path or any afs URL)")
	mode := flag.String("mode", "", "run mode: auto, ask or report")
	categories := flag.String("categories", "", "comma separated categories: payouts,salaries,invoices")
	printReport := flag.Bool("report", false, "print the run report as JSON to stdout")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	os.Exit(run(ctx, *configURL, *mode, *categories, *printReport))
}

func run(ctx context.Context, configURL, mode, categories string, printReport bool) int {
	config := signoff.DefaultConfig()
	if configURL != "" {
		var err error
		if config, err = signoff.LoadConfig(ctx, configURL); err != nil {
			fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
			return 1
		}
	}
	config.ApplyEnv()
	if mode != "" {
		config.Policy.Mode = strings.ToLower(mode)
	}
	if categories != "" {
		config.Policy.AllowList = splitList(categories)
	}

	log := logger.New(config.Logging.Level, config.Logging.Format, os.Stderr)
	srv, err := signoff.New(config,
		signoff.WithLogger(log),
		signoff.WithAskFunc(newPrompt(os.Stdin, os.Stderr).Ask),
	)
	if err != nil {
		log.Error("invalid configuration", "error", err)
		return 1
	}

	report, err := srv.Run(ctx)
	if printReport && report != nil {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		_ = encoder.Encode(report)
	}
	if err != nil {
		var apiErr *portal.APIError
		if errors.As(err, &apiErr) {
			log.Error("portal request failed",
				"method", apiErr.Method,
				"url", apiErr.URL,
				"status", apiErr.StatusCode,
				"body", string(apiErr.Body),
				"headers", apiErr.Header)
		}
		return 1
	}
	return 0
}

func splitList(value string) []string {
	var ret []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			ret = append(ret, item)
		}
	}
	return ret
}
