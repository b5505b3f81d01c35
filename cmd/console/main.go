package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	persistlog "milsim.dev/internal/persistence/log"
	"milsim.dev/internal/sim/catalogs"
	"milsim.dev/internal/sim/force"
	"milsim.dev/internal/sim/tuning"
)

func main() {
	var (
		configDir  = flag.String("configs", "./configs", "config directory")
		tuningPath = flag.String("tuning", "", "path to tuning.yaml (default: <configs>/tuning.yaml)")
		dataDir    = flag.String("data", "./data", "runtime data directory")
		seed       = flag.Int64("seed", 0, "random seed (0 = time-based)")
		noJournal  = flag.Bool("no_journal", false, "disable the compressed event journal")
	)
	flag.Parse()

	logger := log.New(os.Stderr, "[console] ", log.LstdFlags)

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
		tune = tuning.Defaults()
	}

	var cfg force.Config
	if *seed != 0 {
		cfg.Rand = rand.New(rand.NewSource(*seed))
	}
	reg := force.New(cfg, cats, tune)

	if !*noJournal {
		_ = os.MkdirAll(*dataDir, 0o755)
		journal := persistlog.NewJournalLogger(*dataDir)
		defer journal.Close()
		reg.AddEventSink(journal.Sink())
	}

	c := &console{reg: reg, in: bufio.NewScanner(os.Stdin)}

	if strings.EqualFold(c.prompt("Create sample data? (y/n): "), "y") {
		reg.SeedDemo()
		fmt.Println("Sample data created!")
	}
	c.run()
}

type console struct {
	reg *force.Registry
	in  *bufio.Scanner
}

func (c *console) run() {
	for {
		fmt.Println("\n===== MILITARY SIMULATOR =====")
		fmt.Println("1. Manage Soldiers")
		fmt.Println("2. Manage Teams")
		fmt.Println("3. Manage Missions")
		fmt.Println("4. Simulation Controls")
		fmt.Println("5. Reports")
		fmt.Println("6. Exit")

		switch c.prompt("\nEnter your choice (1-6): ") {
		case "1":
			c.soldierMenu()
		case "2":
			c.teamMenu()
		case "3":
			c.missionMenu()
		case "4":
			c.simulationMenu()
		case "5":
			c.reportsMenu()
		case "6":
			fmt.Println("Exiting simulator...")
			return
		default:
			fmt.Println("Invalid choice")
		}
	}
}

func (c *console) prompt(label string) string {
	fmt.Print(label)
	if !c.in.Scan() {
		// Stdin closed. Treat as exit.
		os.Exit(0)
	}
	return strings.TrimSpace(c.in.Text())
}

func (c *console) promptDefault(label, def string) string {
	if s := c.prompt(label); s != "" {
		return s
	}
	return def
}

func (c *console) promptInt(label string) (int, bool) {
	var n int
	if _, err := fmt.Sscanf(c.prompt(label), "%d", &n); err != nil {
		return 0, false
	}
	return n, true
}

func (c *console) pause() {
	c.prompt("\nPress Enter to continue...")
}
