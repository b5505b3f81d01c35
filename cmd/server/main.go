package main

import (
	"context"
	_ "embed"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	persistlog "milsim.dev/internal/persistence/log"
	"milsim.dev/internal/sim/catalogs"
	"milsim.dev/internal/sim/force"
	"milsim.dev/internal/sim/tuning"
	"milsim.dev/internal/transport/ws"
)

//go:embed dashboard.html
var dashboardHTML []byte

func main() {
	var (
		addr       = flag.String("addr", ":8080", "http listen address")
		configDir  = flag.String("configs", "./configs", "config directory")
		tuningPath = flag.String("tuning", "", "path to tuning.yaml (default: <configs>/tuning.yaml)")
		dataDir    = flag.String("data", "./data", "runtime data directory")
		seed       = flag.Int64("seed", 0, "random seed (0 = time-based)")
		demo       = flag.Bool("demo", false, "seed the sample scenario at startup")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "[server] ", log.LstdFlags|log.Lmicroseconds)

	cats, err := catalogs.Load(*configDir)
	if err != nil {
		logger.Fatalf("load catalogs: %v", err)
	}

	tp := strings.TrimSpace(*tuningPath)
	if tp == "" {
		tp = filepath.Join(*configDir, "tuning.yaml")
	}
	tune, err := tuning.Load(tp)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Fatalf("load tuning: %v", err)
		}
		logger.Printf("tuning not found (%s); using defaults", tp)
		tune = tuning.Defaults()
	}

	var cfg force.Config
	if *seed != 0 {
		cfg.Rand = rand.New(rand.NewSource(*seed))
	}
	reg := force.New(cfg, cats, tune)

	_ = os.MkdirAll(*dataDir, 0o755)
	journal := persistlog.NewJournalLogger(*dataDir)
	defer journal.Close()
	reg.AddEventSink(journal.Sink())

	if *demo {
		reg.SeedDemo()
		logger.Printf("sample scenario seeded")
	}

	ctx, cancel := signalContext()
	defer cancel()

	wsrv := ws.NewServer(reg, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(rw http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(rw, r)
			return
		}
		rw.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = rw.Write(dashboardHTML)
	})
	mux.HandleFunc("/healthz", func(rw http.ResponseWriter, r *http.Request) {
		rw.WriteHeader(200)
		_, _ = rw.Write([]byte("ok"))
	})
	mux.HandleFunc("/metrics", func(rw http.ResponseWriter, r *http.Request) {
		rw.Header().Set("Content-Type", "text/plain; version=0.0.4")
		soldiers, teams, missions, clients := wsrv.Counts()

		// Minimal Prometheus exposition format.
		fmt.Fprintf(rw, "# HELP milsim_soldiers Registered soldiers.\n")
		fmt.Fprintf(rw, "# TYPE milsim_soldiers gauge\n")
		fmt.Fprintf(rw, "milsim_soldiers %d\n", soldiers)
		fmt.Fprintf(rw, "# HELP milsim_teams Registered teams.\n")
		fmt.Fprintf(rw, "# TYPE milsim_teams gauge\n")
		fmt.Fprintf(rw, "milsim_teams %d\n", teams)
		fmt.Fprintf(rw, "# HELP milsim_missions Registered missions.\n")
		fmt.Fprintf(rw, "# TYPE milsim_missions gauge\n")
		fmt.Fprintf(rw, "milsim_missions %d\n", missions)
		fmt.Fprintf(rw, "# HELP milsim_ws_clients Connected dashboard clients.\n")
		fmt.Fprintf(rw, "# TYPE milsim_ws_clients gauge\n")
		fmt.Fprintf(rw, "milsim_ws_clients %d\n", clients)
	})
	mux.HandleFunc("/v1/ws", wsrv.Handler())

	srv := &http.Server{
		Addr:              *addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel2()
		_ = srv.Shutdown(ctx2)
	}()

	logger.Printf("listening on %s", *addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("ListenAndServe: %v", err)
	}
}

func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	ch := make(chan os.Signal, 2)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-ch
		cancel()
	}()
	return ctx, cancel
}
