package main

import (
	"time"

	"github.com/INLOpen/simplevector"
	"github.com/spf13/cobra"
)

var (
	pushN        int
	pushStrategy string
	pushReserve  bool
)

var pushCmd = &cobra.Command{
	Use:   "push",
	Short: "Time PushBack workloads for each allocation strategy",
	Long: `push appends N integers to a fresh vector per strategy and reports
ns/op, heap bytes allocated, final length and capacity, allocator counters and
the peak RSS of the process. A built-in append run is printed as a baseline.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		selected, err := selectStrategies(pushStrategy)
		if err != nil {
			return err
		}
		printInfo("Running PushBack microbench (N=%d)\n", pushN)

		for _, s := range selected {
			v := newVector(s)
			if pushReserve {
				if err := v.Reserve(pushN); err != nil {
					return err
				}
			}
			m, err := measure(func() error { return pushAll(v, pushN) })
			if err != nil {
				return err
			}
			printInfo("\nConfig: %s\n", s.name)
			printResult(m, v.Len(), v.Cap())
			printStats(v.AllocStats())
			v.Destroy()
		}

		var baseline []int
		m, err := measure(func() error {
			for i := 0; i < pushN; i++ {
				baseline = append(baseline, i)
			}
			return nil
		})
		if err != nil {
			return err
		}
		printInfo("\nConfig: builtin-append\n")
		printResult(m, len(baseline), cap(baseline))

		if rss, ok := peakRSS(); ok {
			printInfo("\nPeak RSS: %d bytes\n", rss)
		}
		return nil
	},
}

func printResult(m measurement, length, capacity int) {
	nsPerOp := float64(m.dur.Nanoseconds()) / float64(max(pushN, 1))
	printInfo("Duration: %s, ns/op: %.1f, TotalAlloc diff: %d bytes, Len: %d, Cap: %d\n",
		m.dur.Round(time.Microsecond), nsPerOp, m.totalAlloc, length, capacity)
}

func printStats(s simplevector.Stats) {
	printInfo("Acquisitions: %d, Releases: %d, Failures: %d, Live slots: %d, Chunks: %d\n",
		s.Acquisitions, s.Releases, s.Failures, s.LiveSlots, s.Chunks)
}

func init() {
	pushCmd.Flags().IntVarP(&pushN, "count", "n", 200_000, "Number of elements to push")
	pushCmd.Flags().StringVarP(&pushStrategy, "strategy", "s", "all", "Allocator: heap, pool, arena or all")
	pushCmd.Flags().BoolVar(&pushReserve, "reserve", false, "Reserve N slots before pushing")
	rootCmd.AddCommand(pushCmd)
}
