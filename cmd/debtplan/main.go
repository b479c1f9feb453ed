package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/mihyar/debtplan"
	"github.com/mihyar/debtplan/internal/config"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// planInput is the on-disk shape consumers hand to the CLI: a debt set plus
// the monthly budget available for payments.
type planInput struct {
	Debts  debtplan.DebtSet `json:"debts"`
	Budget string           `json:"budget"`
}

func main() {
	inputPath := flag.String("input", "", "path to a JSON file of {debts, budget}")
	strategy := flag.String("strategy", "", "optional: \"snowball\" or \"avalanche\" to compare against the optimizer instead of running it")
	flag.Parse()

	if *inputPath == "" {
		log.Fatal("debtplan: -input is required")
	}

	cfg := config.Load()
	logger := buildLogger(cfg.Logging.Level)
	defer logger.Sync()

	raw, err := os.ReadFile(*inputPath)
	if err != nil {
		logger.Fatal("reading input file", zap.Error(err))
	}

	var input planInput
	if err := json.Unmarshal(raw, &input); err != nil {
		logger.Fatal("parsing input file", zap.Error(err))
	}
	mintMissingIDs(input.Debts)

	budget, err := decimal.NewFromString(input.Budget)
	if err != nil {
		logger.Fatal("parsing budget", zap.Error(err))
	}

	var report debtplan.PlanReport
	if *strategy != "" {
		report, err = debtplan.SimulateStrategy(input.Debts, budget, debtplan.PayoffStrategy(*strategy), cfg.Search.MaxMonths, time.Now())
	} else {
		opts := debtplan.Options{
			MaxIterations: cfg.Search.MaxIterations,
			MaxMonths:     cfg.Search.MaxMonths,
			MaxWallClock:  cfg.Search.WallClock(),
			HeapCapacity:  cfg.Search.HeapCapacity,
			EvictionMode:  evictionModeFromString(cfg.Search.EvictionMode),
			Logger:        logger,
		}
		report, err = debtplan.Plan(input.Debts, budget, opts)
	}
	if err != nil {
		logger.Fatal("planning failed", zap.Error(err))
	}

	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		logger.Fatal("encoding report", zap.Error(err))
	}
	os.Stdout.Write(out)
	os.Stdout.Write([]byte("\n"))
}

func buildLogger(level string) *zap.Logger {
	cfg := zap.NewProductionConfig()
	switch level {
	case "debug":
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "warn":
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	default:
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		log.Fatalf("debtplan: building logger: %v", err)
	}
	return logger
}

// mintMissingIDs assigns an opaque UUID to any debt whose input JSON left
// ID blank, so hand-written sample files don't need to invent one.
func mintMissingIDs(debts debtplan.DebtSet) {
	for i := range debts {
		if debts[i].ID == "" {
			debts[i].ID = uuid.New().String()
		}
	}
}

func evictionModeFromString(s string) debtplan.EvictionMode {
	switch s {
	case "batch":
		return debtplan.EvictBatch
	case "percentage":
		return debtplan.EvictPercentage
	default:
		return debtplan.EvictStrict
	}
}
