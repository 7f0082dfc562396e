package rockcoast

import "sync"

// TerraceResult summarises the final profile of a run for comparing forcing
// scenarios.
type TerraceResult struct {
	SeaLevelRise  float64
	FinalSeaLevel float64
	// MaxRetreat is the largest landward movement of any row.
	MaxRetreat float64
	// MaxRetreatElevation is the elevation of the first row reaching MaxRetreat.
	MaxRetreatElevation float64
	// RetreatCentroid is the retreat-weighted mean elevation of eroded rows.
	RetreatCentroid float64
	// ErodedRows counts rows that moved at all.
	ErodedRows  int
	Diagnostics Diagnostics
}

// Measure computes terrace metrics from the current state of m.
func Measure(m *Model) TerraceResult {
	res := TerraceResult{
		SeaLevelRise:  m.cfg.SeaLevelRise,
		FinalSeaLevel: m.seaLevel,
		Diagnostics:   m.diag,
	}
	if m.profile == nil {
		return res
	}
	var weighted, total float64
	for i, r := range m.Retreat() {
		if r <= 0 {
			continue
		}
		z := m.profile.Z[i]
		res.ErodedRows++
		weighted += r * z
		total += r
		if r > res.MaxRetreat {
			res.MaxRetreat = r
			res.MaxRetreatElevation = z
		}
	}
	if total > 0 {
		res.RetreatCentroid = weighted / total
	}
	return res
}

// TerraceRun executes cfg to completion without sinks and measures the
// resulting profile.
func TerraceRun(cfg Config) (TerraceResult, error) {
	m := New(cfg)
	if err := m.Run(); err != nil {
		return TerraceResult{SeaLevelRise: cfg.SeaLevelRise}, err
	}
	return Measure(m), nil
}

// SweepRecord is one scenario of a sea-level sweep.
type SweepRecord struct {
	Rate   float64
	Result TerraceResult
	Err    error
}

// SweepSeaLevelRise runs base once per sea-level rate on a pool of workers.
// Each run is independent and single-threaded; records are returned in the
// order of rates.
func SweepSeaLevelRise(base Config, rates []float64, workers int) []SweepRecord {
	if workers <= 0 {
		workers = 1
	}
	records := make([]SweepRecord, len(rates))
	jobs := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				cfg := base
				cfg.SeaLevelRise = rates[idx]
				res, err := TerraceRun(cfg)
				records[idx] = SweepRecord{Rate: rates[idx], Result: res, Err: err}
			}
		}()
	}

	for i := range rates {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	return records
}
