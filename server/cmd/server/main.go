package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"reflect"
	"syscall"

	"github.com/aukilabs/go-tooling/pkg/cli"
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	cfg "github.com/automoto/sectorcore/config"
	"github.com/automoto/sectorcore/server/core"
	"github.com/automoto/sectorcore/systems"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/segmentio/encoding/json"
)

// The server version number. Set at build.
var version = "v0.1.0"

// Keeps the config field names readable by the cli package under obfuscation.
var _ = reflect.TypeOf(config{})

type config struct {
	AssetsDir   string `cli:""        env:"SECTORCORE_ASSETS_DIR"   help:"Directory holding the levels folder."`
	Level       string `cli:""        env:"SECTORCORE_LEVEL"        help:"Level to simulate. Defaults to the first level by name."`
	TickRate    int    `cli:""        env:"SECTORCORE_TICK_RATE"    help:"Simulation ticks per second."`
	MetricsAddr string `cli:""        env:"SECTORCORE_METRICS_ADDR" help:"Listening address for Prometheus metrics. Empty disables it."`
	LogLevel    string `cli:""        env:"SECTORCORE_LOG_LEVEL"    help:"Log level (debug|info|warning|error)."`
	LogIndent   bool   `cli:""        env:"SECTORCORE_LOG_INDENT"   help:"Indent logs."`
	Persist     bool   `cli:""        env:"SECTORCORE_PERSIST"      help:"Save the player pose on exit and restore it on start."`
	AppName     string `cli:",hidden" env:"SECTORCORE_APP_NAME"     help:"Name of the persistence store."`
	Version     bool   `cli:""        env:"-"                       help:"Show version."`
	Help        bool   `cli:""        env:"-"                       help:"Show help."`
}

func main() {
	conf := config{
		AssetsDir:   "assets",
		TickRate:    cfg.Physics.TickRate,
		MetricsAddr: ":9090",
		LogLevel:    logs.InfoLevel.String(),
		AppName:     "sectorcore",
	}

	ctx, cancel := cli.ContextWithSignals(context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer cancel()

	cli.Register().
		Help("Runs a headless sector level simulation.").
		Options(&conf)
	cli.Load()

	if conf.Version {
		fmt.Println(version)
		os.Exit(0)
	}

	logs.SetLevel(logs.ParseLevel(conf.LogLevel))
	logs.Encoder = json.Marshal
	if conf.LogIndent {
		logs.Encoder = func(v any) ([]byte, error) {
			return json.MarshalIndent(v, "", "  ")
		}
	}
	errors.Encoder = json.Marshal

	if conf.TickRate <= 0 {
		logs.Fatal(errors.New("tick rate must be positive").
			WithTag("tick_rate", conf.TickRate))
	}
	// Bodies step by 1/TickRate, so the simulation rate follows the loop rate
	cfg.Physics.TickRate = conf.TickRate

	if conf.Persist {
		if err := systems.InitPersistence(conf.AppName); err != nil {
			logs.Warn(err)
		}
	}

	levels, names, err := core.LoadAllServerLevels(conf.AssetsDir)
	if err != nil {
		logs.Fatal(err)
	}
	if conf.Level == "" {
		conf.Level = names[0]
	}
	lvl, ok := levels[conf.Level]
	if !ok {
		logs.Fatal(errors.New("unknown level").
			WithTag("level", conf.Level).
			WithTag("available", names))
	}

	if conf.MetricsAddr != "" {
		var admin http.ServeMux
		admin.Handle("/metrics", promhttp.Handler())
		srv := &http.Server{Addr: conf.MetricsAddr, Handler: &admin}
		go func() {
			logs.WithTag("addr", conf.MetricsAddr).Info("starting metrics server")
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logs.Warn(errors.New("metrics server failed").Wrap(err))
			}
		}()
		defer srv.Close()
	}

	server := core.NewServer(lvl, conf.TickRate)

	logs.WithTag("version", version).
		WithTag("log_level", conf.LogLevel).
		WithTag("level", conf.Level).
		WithTag("tick_rate", conf.TickRate).
		Info("starting sectorcore server")

	server.Loop().Run(ctx)
	server.Stop()
}
