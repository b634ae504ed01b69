// Command salesctl is a command-line front end over the sales orders API.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/JaimeStill/sales-lab/pkg/logging"
	"github.com/JaimeStill/sales-lab/pkg/salesapi"
)

var clientEnv = &salesapi.Env{
	BaseURL: "SALESCTL_BASE_URL",
	Timeout: "SALESCTL_TIMEOUT",
}

func main() {
	var (
		baseURL = flag.String("base-url", "", "API base URL (default "+salesapi.DefaultBaseURL+")")
		timeout = flag.String("timeout", "30s", "Request timeout")
		verbose = flag.Bool("v", false, "Log each request to stderr")
	)
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}

	cfg := &salesapi.Config{BaseURL: *baseURL, Timeout: *timeout}
	if err := cfg.Finalize(clientEnv); err != nil {
		fatal(err)
	}

	level := logging.LevelWarn
	if *verbose {
		level = logging.LevelDebug
	}
	logger := logging.NewWithWriter(&logging.Config{Level: level, Format: logging.FormatText}, os.Stderr)

	client, err := salesapi.New(cfg, salesapi.WithLogger(logger))
	if err != nil {
		fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, client, flag.Args(), os.Stdout); err != nil {
		fatal(err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: salesctl [-base-url URL] [-timeout D] [-v] <command> [flags]")
	fmt.Fprintln(os.Stderr, "\ncommands:")
	for _, c := range commands {
		fmt.Fprintf(os.Stderr, "  %-9s %s\n", c.name, c.description)
	}
	fmt.Fprintln(os.Stderr)
	flag.PrintDefaults()
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "salesctl: %v\n", err)
	if code := salesapi.StatusCode(err); code >= 500 {
		os.Exit(3)
	}
	os.Exit(1)
}
