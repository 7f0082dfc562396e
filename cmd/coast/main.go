package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"gopkg.in/src-d/go-billy.v4/osfs"

	"rockcoast/internal/app"
	"rockcoast/internal/core"
	"rockcoast/internal/sims/rockcoast"
	"rockcoast/internal/sinks"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	ascii      bool
	asciiWidth int
	csvDir     string
	archive    string
	runName    string
	jsonPath   string
	streamAddr string
	linger     time.Duration
	progress   bool
	params     bool
	schema     bool
	dumpConfig bool
	summary    bool
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("coast", flag.ContinueOnError)
	fs.SetOutput(stderr)
	cfg := app.NewConfig()
	cfg.Bind(fs)
	var opt options
	fs.BoolVar(&opt.ascii, "ascii", false, "plot every snapshot in the terminal")
	fs.IntVar(&opt.asciiWidth, "ascii-width", 72, "terminal plot width in columns")
	fs.StringVar(&opt.csvDir, "csv", "", "write every snapshot as CSV into this directory")
	fs.StringVar(&opt.archive, "archive", "", "archive snapshots into this SQLite database")
	fs.StringVar(&opt.runName, "run-name", "", "run name recorded in the archive")
	fs.StringVar(&opt.jsonPath, "json", "", "write snapshots as JSON lines to this file ('-' for stdout)")
	fs.StringVar(&opt.streamAddr, "stream", "", "serve snapshots over websocket at this address (path /ws)")
	fs.DurationVar(&opt.linger, "linger", 0, "keep the stream server up this long after the run")
	fs.BoolVar(&opt.progress, "progress", false, "show a progress bar on stderr")
	fs.BoolVar(&opt.params, "params", false, "print the parameter table and exit")
	fs.BoolVar(&opt.schema, "schema", false, "print the JSON schema of the config file and exit")
	fs.BoolVar(&opt.dumpConfig, "dump-config", false, "print the effective config as YAML and exit")
	fs.BoolVar(&opt.summary, "summary", true, "print a run summary")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	log, err := cfg.Logger(stderr)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	if opt.schema {
		data, err := json.MarshalIndent(app.ConfigSchema(), "", "  ")
		if err != nil {
			log.Error("marshal schema", "err", err)
			return 1
		}
		fmt.Fprintf(stdout, "%s\n", data)
		return 0
	}

	modelCfg, err := cfg.ModelConfig()
	if err != nil {
		log.Error("load config", "err", err)
		return 2
	}
	if opt.params {
		fmt.Fprintln(stdout, app.ParameterTable(modelCfg))
		return 0
	}
	if opt.dumpConfig {
		data, err := modelCfg.YAML()
		if err != nil {
			log.Error("encode config", "err", err)
			return 1
		}
		stdout.Write(data)
		return 0
	}
	if err := modelCfg.Validate(); err != nil {
		log.Error("invalid config", "err", err)
		return 2
	}

	ctx := context.Background()
	fan, stop, err := buildSinks(ctx, opt, modelCfg, stdout, log)
	if err != nil {
		log.Error("open sinks", "err", err)
		return 1
	}
	defer stop()

	modelOpts := []rockcoast.Option{rockcoast.WithLogger(log)}
	if len(fan) > 0 {
		modelOpts = append(modelOpts, rockcoast.WithSnapshotSink(fan))
	}
	var bar *sinks.Progress
	if opt.progress {
		bar = sinks.NewProgress(stderr, modelCfg.Time, modelCfg.EndTime, core.NewThrottle(10))
		modelOpts = append(modelOpts, rockcoast.WithProgressSink(bar))
	}

	m := rockcoast.New(modelCfg, modelOpts...)
	start := time.Now()
	if err := m.Run(); err != nil {
		log.Error("run failed", "err", err)
		return 1
	}
	if bar != nil {
		bar.Finish()
	}
	log.Debug("run timing", "elapsed", time.Since(start))

	if opt.summary {
		fmt.Fprintln(stdout, app.Summary(m))
	}
	if opt.streamAddr != "" && opt.linger > 0 {
		log.Info("stream lingering", "addr", opt.streamAddr, "for", opt.linger)
		time.Sleep(opt.linger)
	}
	return 0
}

func buildSinks(ctx context.Context, opt options, cfg rockcoast.Config, stdout io.Writer, log *slog.Logger) (sinks.Fanout, func(), error) {
	var fan sinks.Fanout
	var cleanup []func()
	stop := func() {
		for i := len(cleanup) - 1; i >= 0; i-- {
			cleanup[i]()
		}
	}
	fail := func(err error) (sinks.Fanout, func(), error) {
		stop()
		return nil, func() {}, err
	}

	if opt.ascii {
		fan = append(fan, sinks.NewASCII(stdout, opt.asciiWidth, 16))
	}
	if opt.csvDir != "" {
		fan = append(fan, sinks.NewCSV(osfs.New(opt.csvDir), ""))
	}
	if opt.jsonPath != "" {
		w := stdout
		if opt.jsonPath != "-" {
			f, err := os.Create(opt.jsonPath)
			if err != nil {
				return fail(fmt.Errorf("create %s: %w", opt.jsonPath, err))
			}
			cleanup = append(cleanup, func() { f.Close() })
			w = f
		}
		js := sinks.NewJSON(w)
		cleanup = append(cleanup, func() { js.Close(ctx) })
		fan = append(fan, js)
	}
	if opt.archive != "" {
		a, err := sinks.OpenArchive(opt.archive, log)
		if err != nil {
			return fail(err)
		}
		cleanup = append(cleanup, func() { a.Close(ctx) })
		name := opt.runName
		if name == "" {
			name = fmt.Sprintf("slr=%g uplift=%g", cfg.SeaLevelRise, cfg.EarthquakeUplift)
		}
		if _, err := a.BeginRun(name, cfg); err != nil {
			return fail(err)
		}
		fan = append(fan, a)
	}
	if opt.streamAddr != "" {
		stream := sinks.NewStream(log)
		mux := http.NewServeMux()
		mux.Handle("/ws", stream)
		srv := &http.Server{Addr: opt.streamAddr, Handler: mux}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("stream server", "err", err)
			}
		}()
		cleanup = append(cleanup, func() {
			stream.Close(ctx)
			shutdown, cancel := context.WithTimeout(ctx, 2*time.Second)
			defer cancel()
			srv.Shutdown(shutdown)
		})
		fan = append(fan, stream)
		log.Info("streaming snapshots", "addr", opt.streamAddr, "path", "/ws")
	}
	return fan, stop, nil
}
