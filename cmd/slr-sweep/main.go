package main

import (
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/guptarohit/asciigraph"

	"rockcoast/internal/app"
	"rockcoast/internal/sims/rockcoast"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("slr-sweep", flag.ContinueOnError)
	fs.SetOutput(stderr)
	cfg := app.NewConfig()
	cfg.Bind(fs)
	from := fs.Float64("from", -0.005, "lowest sea-level rate (m/yr)")
	to := fs.Float64("to", 0.005, "highest sea-level rate (m/yr)")
	step := fs.Float64("step", 0.001, "rate increment (m/yr)")
	list := fs.String("rates", "", "comma-separated rates; overrides -from/-to/-step")
	workers := fs.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	plot := fs.Bool("plot", true, "plot retreat centroid against rate")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	log, err := cfg.Logger(stderr)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	base, err := cfg.ModelConfig()
	if err != nil {
		log.Error("load config", "err", err)
		return 2
	}
	if err := base.Validate(); err != nil {
		log.Error("invalid config", "err", err)
		return 2
	}

	var rates []float64
	if *list != "" {
		rates, err = parseRates(*list)
	} else {
		rates, err = rateRange(*from, *to, *step)
	}
	if err != nil {
		log.Error("rates", "err", err)
		return 2
	}

	fmt.Fprintf(stdout, "Sweeping %d sea-level rates (%d workers, end time %g)\n", len(rates), *workers, base.EndTime)
	start := time.Now()
	records := rockcoast.SweepSeaLevelRise(base, rates, *workers)
	elapsed := time.Since(start)

	failed := 0
	fmt.Fprintf(stdout, "\n%10s %10s %12s %12s %12s %8s\n", "rate", "final SL", "max retreat", "at z", "centroid", "rows")
	for _, rec := range records {
		if rec.Err != nil {
			failed++
			log.Error("scenario failed", "rate", rec.Rate, "err", rec.Err)
			continue
		}
		r := rec.Result
		fmt.Fprintf(stdout, "%10.4f %10.3f %12.2f %12.2f %12.2f %8d\n",
			rec.Rate, r.FinalSeaLevel, r.MaxRetreat, r.MaxRetreatElevation, r.RetreatCentroid, r.ErodedRows)
	}

	ranked := append([]rockcoast.SweepRecord(nil), records...)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Result.MaxRetreat > ranked[j].Result.MaxRetreat })
	if len(ranked) > 0 && ranked[0].Err == nil {
		fmt.Fprintf(stdout, "\nDeepest notch: rate %.4f, %.2f m at z=%.2f (elapsed %s)\n",
			ranked[0].Rate, ranked[0].Result.MaxRetreat, ranked[0].Result.MaxRetreatElevation, elapsed.Round(time.Millisecond))
	}

	if *plot && len(records)-failed > 1 {
		centroids := make([]float64, 0, len(records))
		for _, rec := range records {
			if rec.Err == nil {
				centroids = append(centroids, rec.Result.RetreatCentroid)
			}
		}
		fmt.Fprintln(stdout)
		fmt.Fprintln(stdout, asciigraph.Plot(centroids,
			asciigraph.Height(10),
			asciigraph.Caption(fmt.Sprintf("retreat centroid (m) for rates %g..%g m/yr", rates[0], rates[len(rates)-1]))))
	}
	if failed > 0 {
		return 1
	}
	return 0
}

// rateRange returns from, from+step, ... up to and including to.
func rateRange(from, to, step float64) ([]float64, error) {
	if step <= 0 || math.IsNaN(step) {
		return nil, fmt.Errorf("step %g must be positive", step)
	}
	if to < from {
		return nil, fmt.Errorf("range %g..%g is empty", from, to)
	}
	n := int(math.Floor((to-from)/step+1e-9)) + 1
	rates := make([]float64, n)
	for i := range rates {
		rates[i] = from + float64(i)*step
	}
	return rates, nil
}

func parseRates(list string) ([]float64, error) {
	var rates []float64
	for _, field := range strings.Split(list, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, fmt.Errorf("rate %q: %w", field, err)
		}
		rates = append(rates, v)
	}
	if len(rates) == 0 {
		return nil, fmt.Errorf("no rates in %q", list)
	}
	return rates, nil
}
