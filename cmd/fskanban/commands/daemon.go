package commands

import (
	"context"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"fskanban/internal/daemon"
)

const daemonTimeout = 10 * time.Second

// daemonCmd talks to a running fskanband
var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Query the background reconciler",
	Long: `Query fskanband, the daemon that watches the data directory and repairs
duplicate ids as soon as a sync tool writes them.

Start it with:
  fskanband

Examples:
  fskanban daemon status
  fskanban daemon check
  fskanban daemon watch`,
}

var daemonStatusCmd = &cobra.Command{
	Use:         "status",
	Short:       "Show daemon status",
	Annotations: map[string]string{skipContainer: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), daemonTimeout)
		defer cancel()

		status, err := daemonClient().Status(ctx)
		if err != nil {
			return err
		}

		if formatter.Structured() {
			return formatter.Print(status)
		}
		printer.Header("fskanband")
		printer.Println("Socket:      %s", status.SocketPath)
		printer.Println("Started:     %s", status.StartedAt.Format(time.RFC3339))
		printer.Println("Reconciles:  %d", status.Reconciles)
		printer.Println("Repairs:     %d", status.Repairs)
		printer.Println("Subscribers: %d", status.Subscribers)
		if !status.LastReconcile.IsZero() {
			printer.Println("Last run:    %s", status.LastReconcile.Format(time.RFC3339))
		}
		if status.LastError != "" {
			printer.Warning("Last error: %s", status.LastError)
		}
		return nil
	},
}

var daemonCheckCmd = &cobra.Command{
	Use:         "check",
	Short:       "Ask the daemon to reconcile now",
	Annotations: map[string]string{skipContainer: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), daemonTimeout)
		defer cancel()

		repairs, err := daemonClient().Check(ctx)
		if err != nil {
			return err
		}

		if formatter.Structured() {
			return formatter.Print(repairs)
		}
		printRepairs(repairs)
		return nil
	},
}

var daemonWatchCmd = &cobra.Command{
	Use:         "watch",
	Short:       "Print daemon notifications as they arrive",
	Annotations: map[string]string{skipContainer: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		notifications, err := daemonClient().Subscribe(ctx)
		if err != nil {
			return err
		}

		for n := range notifications {
			if formatter.Structured() {
				if err := formatter.Print(n); err != nil {
					return err
				}
				continue
			}
			switch n.Type {
			case daemon.NotificationBoardRepaired:
				printRepairs(n.Repairs)
			default:
				printer.Info("%s: %s", n.Type, strings.Join(n.Paths, ", "))
			}
		}
		return nil
	},
}

func daemonClient() *daemon.Client {
	return daemon.NewClient(daemon.GetSocketPath(cfg))
}

func init() {
	rootCmd.AddCommand(daemonCmd)

	daemonCmd.AddCommand(daemonStatusCmd)
	daemonCmd.AddCommand(daemonCheckCmd)
	daemonCmd.AddCommand(daemonWatchCmd)
}
