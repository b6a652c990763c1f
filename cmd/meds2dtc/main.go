// Command meds2dtc converts MEDS input tables into the static, description
// and event tables of the digital twin pipeline.
//
// All settings come from the environment (or a .env file); see internal/config.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/JonMunkholm/meds2dtc/internal/config"
	"github.com/JonMunkholm/meds2dtc/internal/core"
	_ "github.com/JonMunkholm/meds2dtc/internal/core/tables" // Register input tables
	"github.com/JonMunkholm/meds2dtc/internal/ingest"
	"github.com/JonMunkholm/meds2dtc/internal/logging"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Load .env file if it exists; real environment variables take precedence
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		return 2
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
	ingest.ContextCheckInterval = cfg.Ingest.ContextCheckInterval

	runID := uuid.NewString()
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = logging.WithRunID(ctx, runID)
	logger := logging.FromContext(ctx)

	logger.Info("configuration loaded", "config", cfg.String())

	mapping, err := config.LoadCategoryMapping(cfg.Convert.CategoryMappingFile)
	if err != nil {
		return fail(logger, "failed to load category mapping", err)
	}
	if mapping != nil {
		logger.Info("category mapping loaded", "entries", len(mapping))
	}

	loadCtx, cancel := context.WithTimeout(ctx, cfg.Ingest.Timeout)
	defer cancel()

	inputs, err := ingest.LoadInputs(loadCtx, ingest.Paths{
		Codes: cfg.Input.CodesPath,
		Data:  cfg.Input.DataPath,
		Split: cfg.Input.SplitPath,
		Sheet: cfg.Input.Sheet,
	})
	if err != nil {
		return fail(logger, "failed to load inputs", err)
	}
	logger.Info("inputs loaded",
		"codes", len(inputs.Codes),
		"events", len(inputs.Events),
		"split_rows", len(inputs.Split.Rows),
		"split_columns", len(inputs.Split.Columns),
	)

	converter := core.NewConverter(core.Options{
		PreferTextValueOverNumeric: cfg.Convert.PreferTextValue,
		NoValueDefault:             cfg.Convert.NoValueDefault,
		EventCategoryMapping:       mapping,
		DefaultCategory:            cfg.Convert.DefaultCategory,
	}, slog.Default())

	res, err := converter.ConvertRun(runID, inputs)
	if err != nil {
		return fail(logger, "conversion failed", err)
	}

	names := ingest.OutputNames{
		Static:       cfg.Output.StaticFile,
		Descriptions: cfg.Output.DescriptionFile,
		Events:       cfg.Output.EventsFile,
	}
	if err := ingest.WriteOutputs(cfg.Output.Dir, names, res); err != nil {
		return fail(logger, "failed to write outputs", err)
	}
	logger.Info("outputs written", "dir", cfg.Output.Dir)

	if cfg.Convert.FailOnDuplicates && res.HasDiagnostic(core.DiagDuplicateEvents) {
		logger.Error("duplicate events present and FAIL_ON_DUPLICATES is set")
		return 1
	}
	return 0
}

// fail logs the technical error and prints the user-facing message.
func fail(logger *slog.Logger, msg string, err error) int {
	logger.Error(msg, "error", err)
	fmt.Fprintln(os.Stderr, core.FormatUserError(err))
	return 1
}
