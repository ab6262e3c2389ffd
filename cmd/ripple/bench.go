package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/vango-dev/ripple/pkg/ripple"
)

func benchCmd() *cobra.Command {
	var (
		size int
		ops  int
		fan  int
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Compare incremental maintenance against full recomputation",
		Long: `Mutate a source set and maintain the flattened union of a one-to-many
transform two ways: incrementally through FlatMap, and by recomputing the
union from scratch after every mutation. Reports wall time for both.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			transform := func(n int) []int {
				out := make([]int, fan)
				for i := range out {
					out[i] = n*fan + i
				}
				return out
			}

			elems := make([]int, size)
			for i := range elems {
				elems[i] = i
			}
			info("source size %d, %d mutations, fan-out %d", size, ops, fan)

			// Incremental path.
			rnd := rand.New(rand.NewSource(1))
			source := ripple.NewMutableSet(elems...)
			derived := ripple.FlatMap(source, transform)
			defer derived.Close()

			start := time.Now()
			for i := 0; i < ops; i++ {
				source.WithTransaction(func() {
					source.Remove(rnd.Intn(size))
					source.Insert(rnd.Intn(size))
				})
			}
			incremental := time.Since(start)
			success("incremental: %s (%.0f ops/sec), derived size %d",
				incremental, float64(ops)/incremental.Seconds(), derived.Len())

			// Reference path: recompute the union after every mutation.
			rnd = rand.New(rand.NewSource(1))
			naive := ripple.NewMutableSet(elems...)
			var full ripple.Set[int]

			start = time.Now()
			for i := 0; i < ops; i++ {
				naive.WithTransaction(func() {
					naive.Remove(rnd.Intn(size))
					naive.Insert(rnd.Intn(size))
				})
				full = ripple.NewSet[int]()
				for e := range naive.Contents() {
					for _, t := range transform(e) {
						full.Add(t)
					}
				}
			}
			recompute := time.Since(start)
			success("recompute:   %s (%.0f ops/sec), derived size %d",
				recompute, float64(ops)/recompute.Seconds(), full.Len())

			if !derived.Contents().Equal(full) {
				return fmt.Errorf("incremental result drifted from reference")
			}
			success("results match: no drift after %d mutations", ops)
			return nil
		},
	}

	cmd.Flags().IntVar(&size, "size", 10000, "Number of source elements")
	cmd.Flags().IntVar(&ops, "ops", 1000, "Number of mutations")
	cmd.Flags().IntVar(&fan, "fan", 3, "Targets produced per source element")

	return cmd
}
