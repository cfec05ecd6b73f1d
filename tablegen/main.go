package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"

	"github.com/itohio/pmactab/pkg/config"
)

func main() {
	var (
		configFlag      = flag.String("config", "config.yaml", "Configuration file path")
		dataFlag        = flag.String("data", "", "Dynamometer log CSV (overrides config)")
		outFlag         = flag.String("out", "", "Output directory (overrides config)")
		sizeFlag        = flag.Int("size", -1, "Table grid points per axis (overrides config)")
		maxCurrentFlag  = flag.Float64("max-current", -1, "Table current range in A peak (overrides config)")
		polePairsFlag   = flag.Int("pole-pairs", -1, "Motor pole pairs (overrides config)")
		rsFlag          = flag.Float64("rs", -1, "Stator resistance in Ohm (overrides config)")
		keFlag          = flag.Float64("ke", -1, "Back-EMF constant in V_rms,LL/krpm (overrides config)")
		workersFlag     = flag.Int("workers", -1, "Parallel table rows (overrides config)")
		syntheticFlag   = flag.Bool("synthetic", false, "Generate a synthetic log from the configured motor model instead of reading CSV")
		plotsFlag       = flag.Bool("plots", true, "Render plots (overrides config when given)")
		writeConfigFlag = flag.String("write-config", "", "Write the effective configuration to this file and exit")
	)
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Command line overrides
	if *dataFlag != "" {
		cfg.Data.Path = *dataFlag
	}
	if *outFlag != "" {
		cfg.Output.Dir = *outFlag
	}
	if *sizeFlag >= 0 {
		cfg.Table.Size = *sizeFlag
	}
	if *maxCurrentFlag >= 0 {
		cfg.Table.MaxCurrent = *maxCurrentFlag
	}
	if *polePairsFlag >= 0 {
		cfg.Motor.PolePairs = *polePairsFlag
	}
	if *rsFlag >= 0 {
		cfg.Motor.StatorResistance = *rsFlag
	}
	if *keFlag >= 0 {
		cfg.Motor.Ke = *keFlag
	}
	if *workersFlag >= 0 {
		cfg.Table.Workers = *workersFlag
	}
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "plots" {
			cfg.Output.Plots = *plotsFlag
		}
	})

	if *writeConfigFlag != "" {
		if err := cfg.Save(*writeConfigFlag); err != nil {
			log.Fatalf("Failed to write configuration: %v", err)
		}
		log.Printf("Configuration written to %s", *writeConfigFlag)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err = run(ctx, cfg, *syntheticFlag)
	stop()
	if err != nil {
		log.Fatalf("Table generation failed: %v", err)
	}
}
