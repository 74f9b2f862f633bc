// deformbench times the parallel deform kernel across worker counts and
// batch sizes and checks that every combination produces the same result.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Faultbox/meshdeform/internal/engine/deform"
	"github.com/Faultbox/meshdeform/internal/engine/jobs"
	"github.com/Faultbox/meshdeform/internal/engine/mesh"
	"github.com/Faultbox/meshdeform/pkg/math"
)

func main() {
	size := flag.Int("size", 512, "Grid cells per side")
	spacing := flag.Float64("spacing", 0.01, "Grid spacing")
	radius := flag.Float64("radius", deform.DefaultRadius, "Radius of deformation")
	workersFlag := flag.String("workers", "1,2,8,64", "Comma-separated worker counts")
	batchesFlag := flag.String("batches", "1,64,500,0", "Comma-separated batch sizes (0 = auto)")
	runs := flag.Int("runs", 5, "Runs per combination")
	flag.Parse()

	workers, err := parseInts(*workersFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: -workers: %v\n", err)
		os.Exit(1)
	}
	batches, err := parseInts(*batchesFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: -batches: %v\n", err)
		os.Exit(1)
	}

	grid, err := mesh.NewGrid(*size, *size, float32(*spacing))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	base := grid.Vertices()

	params := deform.DefaultParams()
	params.Radius = float32(*radius)
	if err := params.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("vertices: %d  threshold: %.3f  runs: %d\n\n", len(base), params.Threshold(), *runs)
	fmt.Printf("%8s %8s %12s %10s\n", "workers", "batch", "avg", "deformed")

	expected := -1
	for _, w := range workers {
		pool := jobs.NewPool(w)
		for _, b := range batches {
			avg, count, err := benchmark(pool, b, base, params, *runs)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("%8d %8d %12s %10d\n", pool.Workers(), b, avg, count)

			if expected < 0 {
				expected = count
			} else if count != expected {
				fmt.Fprintf(os.Stderr, "Mismatch: workers=%d batch=%d deformed %d, expected %d\n", w, b, count, expected)
				os.Exit(1)
			}
		}
	}
}

// benchmark runs one deform pass over a fresh copy of base per run.
func benchmark(pool *jobs.Pool, batch int, base []math.Vec3, params deform.Params, runs int) (time.Duration, int, error) {
	var total time.Duration
	count := 0
	for range runs {
		verts := append([]math.Vec3(nil), base...)
		start := time.Now()
		pending := deform.NewCounter().Schedule(pool, len(verts), batch, func(cc deform.ConcurrentCounter) jobs.ParallelJob {
			return deform.Job{
				Vertices:  verts,
				Threshold: params.Threshold(),
				Power:     params.Power,
				Counter:   cc,
			}
		})
		joined, err := pending.Join()
		total += time.Since(start)
		if err != nil {
			joined.Release()
			return 0, 0, err
		}
		count = joined.Count()
		joined.Release()
	}
	if runs == 0 {
		return 0, 0, nil
	}
	return total / time.Duration(runs), count, nil
}

func parseInts(s string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}
