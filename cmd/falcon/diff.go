package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/blackcoderx/falcon/pkg/aggregate"
	"github.com/blackcoderx/falcon/pkg/config"
	"github.com/blackcoderx/falcon/pkg/engine"
	"github.com/blackcoderx/falcon/pkg/httpclient"
	"github.com/blackcoderx/falcon/pkg/importer"
	"github.com/blackcoderx/falcon/pkg/render/curldump"
	"github.com/blackcoderx/falcon/pkg/render/htmlreport"
	"github.com/blackcoderx/falcon/pkg/render/text"
	"github.com/blackcoderx/falcon/pkg/render/tui"
	"github.com/blackcoderx/falcon/pkg/userdata"
	"github.com/blackcoderx/falcon/pkg/wizard"
)

// Exit codes from spec.md §6: higher severity wins.
const (
	exitOK            = 0
	exitDiffers       = 1
	exitError         = 2
	exitConfigInvalid = 3
	exitCancelled     = 130
)

var (
	diffConfigPath     string
	diffUsersFile      string
	diffEnvironments   string
	diffRoutes         string
	diffReportPath     string
	diffOutputFile     string
	diffNoTUI          bool
	diffForceTUI       bool
	diffVerbose        bool
	diffIncludeHeaders bool
	diffIncludeErrors  bool
	diffDiffView       string
	diffInit           bool
	diffRatePerSecond  float64
	diffCopyCurl       bool

	diffCmd = &cobra.Command{
		Use:   "diff",
		Short: "Run the same requests against several environments and compare responses",
		RunE:  runDiff,
	}
)

func init() {
	diffCmd.Flags().StringVar(&diffConfigPath, "config", "httpdiff.toml", "config file")
	diffCmd.Flags().StringVar(&diffUsersFile, "users-file", "", "CSV file of user rows (one test identity per row)")
	diffCmd.Flags().StringVar(&diffEnvironments, "environments", "", "comma-separated environment names to run (default: all)")
	diffCmd.Flags().StringVar(&diffRoutes, "routes", "", "comma-separated route names to run (default: all)")
	diffCmd.Flags().StringVar(&diffReportPath, "report", "", "write a self-contained HTML report to this path")
	diffCmd.Flags().StringVar(&diffOutputFile, "output-file", "", "write the equivalent curl commands to this path")
	diffCmd.Flags().BoolVar(&diffNoTUI, "no-tui", false, "force plain-text output even on a TTY")
	diffCmd.Flags().BoolVar(&diffForceTUI, "force-tui", false, "force the interactive TUI even when stdout is not a TTY")
	diffCmd.Flags().BoolVar(&diffVerbose, "verbose", false, "print every route event, not just the final summary")
	diffCmd.Flags().BoolVar(&diffIncludeHeaders, "include-headers", false, "include response headers in the comparison")
	diffCmd.Flags().BoolVar(&diffIncludeErrors, "include-errors", false, "compare surviving environments instead of failing the whole route when one errors")
	diffCmd.Flags().StringVar(&diffDiffView, "diff-view", "unified", "body diff presentation: unified or side-by-side")
	diffCmd.Flags().BoolVar(&diffInit, "init", false, "write a starter config via an interactive wizard and exit")
	diffCmd.Flags().Float64Var(&diffRatePerSecond, "rate", 0, "cap requests per second across the whole run (0 disables pacing)")
	diffCmd.Flags().BoolVar(&diffCopyCurl, "copy", false, "copy the curl dump to the clipboard in addition to any --output-file")

	diffCmd.AddCommand(importCmd)
}

func runDiff(cmd *cobra.Command, args []string) error {
	if diffInit {
		if err := wizard.WriteDefaults(diffConfigPath); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(exitConfigInvalid)
		}
		fmt.Printf("wrote %s\n", diffConfigPath)
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(diffConfigPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitConfigInvalid)
	}

	if err := config.ResolveOAuth2(ctx, cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitConfigInvalid)
	}

	rows := []userdata.Row{{}}
	if diffUsersFile != "" {
		rows, err = userdata.Load(diffUsersFile)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(exitConfigInvalid)
		}
	}

	client := httpclient.NewFastHTTPClient(cfg.Global.FollowRedirects, cfg.Global.MaxBodyBytes)
	agg := aggregate.New()
	e := engine.New(cfg, client, agg)

	opts := engine.Options{
		Environments:   splitCSV(diffEnvironments),
		Routes:         splitCSV(diffRoutes),
		IncludeHeaders: diffIncludeHeaders,
		IncludeErrors:  diffIncludeErrors,
		RatePerSecond:  diffRatePerSecond,
	}

	useTUI := !diffNoTUI && (diffForceTUI || isatty.IsTerminal(os.Stdout.Fd()))

	var results []engine.RowRouteResult
	if useTUI {
		results, err = runWithTUI(ctx, e, rows, opts, agg)
	} else {
		results, err = runWithText(ctx, e, rows, opts, agg)
	}

	if ctx.Err() != nil {
		fmt.Fprintln(os.Stderr, "falcon diff: cancelled")
		writeSideOutputs(agg, e, results)
		os.Exit(exitCancelled)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitConfigInvalid)
	}

	writeSideOutputs(agg, e, results)

	os.Exit(agg.Summary().ExitCode())
	return nil
}

func runWithText(ctx context.Context, e *engine.Engine, rows []userdata.Row, opts engine.Options, agg *aggregate.Aggregator) ([]engine.RowRouteResult, error) {
	renderer := text.New(os.Stdout, false, text.DiffView(diffDiffView))
	if diffVerbose {
		agg.OnEvent(renderer.Event)
	}

	results, err := e.Run(ctx, rows, opts)
	if err != nil {
		return nil, err
	}

	if rerr := renderer.Summary(agg.Summary(), results); rerr != nil {
		fmt.Fprintln(os.Stderr, rerr)
	}
	return results, nil
}

func runWithTUI(ctx context.Context, e *engine.Engine, rows []userdata.Row, opts engine.Options, agg *aggregate.Aggregator) ([]engine.RowRouteResult, error) {
	program := tui.NewProgram()
	agg.OnEvent(program.Send)

	type runOutcome struct {
		results []engine.RowRouteResult
		err     error
	}
	done := make(chan runOutcome, 1)
	go func() {
		results, err := e.Run(ctx, rows, opts)
		done <- runOutcome{results: results, err: err}
	}()

	if err := program.Run(); err != nil {
		return nil, err
	}

	outcome := <-done
	return outcome.results, outcome.err
}

func writeSideOutputs(agg *aggregate.Aggregator, e *engine.Engine, results []engine.RowRouteResult) {
	if diffReportPath != "" {
		if err := htmlreport.Write(diffReportPath, agg.Summary(), results); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}

	// The curl dump is emitted regardless of comparison outcome (spec.md
	// §4.9), so it always runs once requests are logged.
	requests := e.Requests()
	if diffOutputFile != "" {
		if err := curldump.Write(diffOutputFile, requests); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}
	if diffCopyCurl {
		if err := curldump.CopyToClipboard(requests); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Generate a [[routes]] TOML fragment from an existing API surface",
}

func init() {
	importCmd.AddCommand(&cobra.Command{
		Use:   "postman <collection.json>",
		Short: "Import routes from a Postman Collection v2.1 document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			routes, err := importer.FromPostman(content)
			if err != nil {
				return err
			}
			fmt.Print(importer.ToTOML(routes))
			return nil
		},
	})

	importCmd.AddCommand(&cobra.Command{
		Use:   "openapi <spec.yaml|spec.json>",
		Short: "Import routes from an OpenAPI 3.x document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			routes, err := importer.FromOpenAPI(content)
			if err != nil {
				return err
			}
			fmt.Print(importer.ToTOML(routes))
			return nil
		},
	})
}
