package main

import (
	"context"
	"errors"
	"expvar"
	"fmt"
	"net/http"
	_ "net/http/pprof" // Import for side effects: registers pprof handlers
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

var (
	profileN        int
	profileStrategy string
	profileAddr     string
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Run a vector workload behind a pprof and expvar endpoint",
	Long: `profile starts an HTTP server exposing /debug/pprof and /debug/vars,
pushes N elements into a vector, churns its front with inserts and erases, and
then stays alive for profiling until interrupted.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		selected, err := selectStrategies(profileStrategy)
		if err != nil {
			return err
		}
		if len(selected) != 1 {
			return errors.New("profile needs exactly one strategy")
		}
		s := selected[0]

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		v := newVector(s)
		state := newSnapshot(s.name)
		state.record(v)
		expvar.Publish("simplevector", expvar.Func(func() any { return state.view() }))

		srv := &http.Server{Addr: profileAddr, ReadHeaderTimeout: 5 * time.Second}
		serveErr := make(chan error, 1)
		go func() {
			serveErr <- srv.ListenAndServe()
		}()
		printInfo("Serving pprof on http://%s/debug/pprof/ and stats on /debug/vars\n", profileAddr)
		logger.Info("profile workload starting", "strategy", s.name, "n", profileN)

		m, err := measure(func() error {
			err := pushAll(v, profileN)
			state.record(v)
			if err != nil {
				return err
			}
			err = churn(v, min(profileN/100, 10_000))
			state.record(v)
			return err
		})
		if err != nil {
			return err
		}
		printInfo("Finished workload in %s: Len %d, Cap %d, TotalAlloc diff %d bytes\n",
			m.dur.Round(time.Millisecond), v.Len(), v.Cap(), m.totalAlloc)
		printInfo("Program is keeping alive for profiling. Press Ctrl+C to exit.\n")

		select {
		case <-ctx.Done():
		case err := <-serveErr:
			if !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("pprof server: %w", err)
			}
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

func init() {
	profileCmd.Flags().IntVarP(&profileN, "count", "n", 2_000_000, "Number of elements to push")
	profileCmd.Flags().StringVarP(&profileStrategy, "strategy", "s", "heap", "Allocator: heap, pool or arena")
	profileCmd.Flags().StringVar(&profileAddr, "addr", "localhost:6060", "Listen address for pprof and expvar")
	rootCmd.AddCommand(profileCmd)
}
