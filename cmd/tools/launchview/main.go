// launchview prints the launch dashboard in a terminal: one fetch, then the
// status chart and the filtered launch table.
//
// Usage:
//
//	launchview [--url=http://localhost:3000] [--status=all|success|failed|upcoming] [--format=ascii|markdown]
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/zhouzirui/launchboard/backend/internal/client"
	"github.com/zhouzirui/launchboard/backend/internal/config"
	"github.com/zhouzirui/launchboard/backend/internal/dashboard"
	"github.com/zhouzirui/launchboard/backend/internal/dashboard/chart"
	"github.com/zhouzirui/launchboard/backend/internal/model/launch"
)

var flags struct {
	url      string
	status   string
	format   string
	statuses []string
	timeout  time.Duration
}

var rootCmd = &cobra.Command{
	Use:           "launchview",
	Short:         "Show launches by status from a launchboard server",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runView,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	f := rootCmd.Flags()
	f.StringVar(&flags.url, "url", defaultURL(), "Base URL of the launchboard server")
	f.StringVar(&flags.status, "status", string(dashboard.FilterAll), "Status filter: all or one of the charted statuses")
	f.StringVar(&flags.format, "format", chart.KindASCII, "Output format: ascii or markdown")
	f.StringSliceVar(&flags.statuses, "statuses", nil, "Statuses charted as bars (default: DASHBOARD_STATUSES, else success,failed,upcoming)")
	f.DurationVar(&flags.timeout, "timeout", 30*time.Second, "Fetch timeout")
}

func defaultURL() string {
	if v := strings.TrimSpace(os.Getenv("LAUNCHBOARD_URL")); v != "" {
		return v
	}
	return "http://localhost:3000"
}

func statusNames(statuses []launch.Status) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

// trackedStatuses mirrors the server's DASHBOARD_STATUSES so both charts agree.
func trackedStatuses() ([]string, error) {
	dash, err := config.LoadDashboard()
	if err != nil {
		return nil, err
	}
	return statusNames(dash.TrackedStatuses()), nil
}

func runView(cmd *cobra.Command, _ []string) error {
	chart.RegisterDefaults()
	if !chart.Registered(flags.format) {
		return fmt.Errorf("unsupported format %q", flags.format)
	}

	names := flags.statuses
	if !cmd.Flags().Changed("statuses") {
		tracked, err := trackedStatuses()
		if err != nil {
			return err
		}
		names = tracked
	}

	statuses := make([]launch.Status, 0, len(names))
	for _, s := range names {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			statuses = append(statuses, launch.Status(s))
		}
	}
	view := dashboard.NewView(statuses)

	filter, err := view.ParseFilter(flags.status)
	if err != nil {
		return err
	}
	if err := view.SetFilter(filter); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), flags.timeout)
	defer cancel()

	// A failed fetch is already logged by the view; render whatever it holds.
	_ = view.Load(ctx, client.New(flags.url))

	return dashboard.Render(cmd.OutOrStdout(), view.Snapshot(), flags.format)
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[WARN] failed to load .env, using system environment: %v", err)
	}

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
