package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/xhad/molrmsd/internal/models"
	"github.com/xhad/molrmsd/pkg/loader"
	"github.com/xhad/molrmsd/pkg/rmsd"
	"github.com/xhad/molrmsd/server"
)

func getProgressBar(total int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription(color.BlueString(description)),
		progressbar.OptionSetItsString("files"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetRenderBlankState(true),
	)
}

func run(config Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize components
	structures, err := loader.NewWithConfig(loader.LoaderConfig{
		Backend:    config.Backend,
		ObabelPath: config.ObabelPath,
		ScratchDir: config.ScratchDir,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize loader: %v", err)
	}

	switch {
	case config.Serve:
		return serve(ctx, config, structures)
	case config.Reference != "":
		if len(config.Files) == 0 {
			return errors.New("batch mode needs at least one model file")
		}
		return runBatch(ctx, config, structures)
	case len(config.Files) == 2:
		return runPair(ctx, config, structures)
	}
	usage()
	return errors.New("expected a probe and a reference file")
}

func serve(ctx context.Context, config Config, structures *loader.Loader) error {
	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	srv := server.NewServer(server.Config{
		Addr:          config.Addr,
		RateLimit:     config.RateLimit,
		Burst:         config.Burst,
		MaxUploadSize: config.MaxUpload,
	}, structures, rmsd.Calculator{}, logger)
	return srv.ListenAndServe(ctx)
}

func runPair(ctx context.Context, config Config, structures *loader.Loader) error {
	probePath, referencePath := config.Files[0], config.Files[1]

	probe, err := structures.Load(ctx, probePath)
	if err != nil {
		return err
	}
	reference, err := structures.Load(ctx, referencePath)
	if err != nil {
		return err
	}

	if config.ShowTables {
		color.Cyan("\nProbe molecule")
		fmt.Printf("File name: %s\n", filepath.Base(probePath))
		printTable(probe)
		color.Cyan("\nReference molecule")
		fmt.Printf("File name: %s\n", filepath.Base(referencePath))
		printTable(reference)
		fmt.Println()
	}

	value, err := rmsd.Calculate(probe, reference)
	if err != nil {
		return err
	}
	if config.PerAtom {
		devs, err := rmsd.Deviations(probe, reference)
		if err != nil {
			return err
		}
		printDeviations(probe, reference, devs, config.Precision)
	}

	color.Green("RMSD: %.*f\n", config.Precision, value)
	return nil
}

type batchResult struct {
	file  string
	value float64
	err   error
}

// runBatch scores every model against one reference. A failing model is
// reported and does not stop the batch.
func runBatch(ctx context.Context, config Config, structures *loader.Loader) error {
	reference, err := structures.Load(ctx, config.Reference)
	if err != nil {
		return err
	}
	if config.ShowTables {
		color.Cyan("\nReference molecule")
		fmt.Printf("File name: %s\n", filepath.Base(config.Reference))
		printTable(reference)
		fmt.Println()
	}

	bar := getProgressBar(len(config.Files), "Scoring models...")
	results := make([]batchResult, 0, len(config.Files))
	for _, path := range config.Files {
		if ctx.Err() != nil {
			break
		}
		res := batchResult{file: path}
		model, err := structures.Load(ctx, path)
		if err == nil {
			res.value, err = rmsd.Calculate(model, reference)
		}
		res.err = err
		results = append(results, res)
		bar.Add(1)
	}
	bar.Finish()
	fmt.Fprintln(os.Stderr)

	failed := 0
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, res := range results {
		if res.err != nil {
			failed++
			fmt.Fprintf(w, "%s\t%s\n", res.file, color.RedString("Error: %v", res.err))
			continue
		}
		fmt.Fprintf(w, "%s\t%s\n", res.file, color.GreenString("RMSD: %.*f", config.Precision, res.value))
	}
	w.Flush()

	if ctx.Err() != nil {
		return ctx.Err()
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d models failed", failed, len(results))
	}
	return nil
}

func printTable(table models.AtomTable) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "atom_id\tatom_name\tx\ty\tz\tatom_type\tsubst_id\tsubst_name\tcharge\t")
	for _, rec := range table {
		fmt.Fprintf(w, "%d\t%s\t%.4f\t%.4f\t%.4f\t%s\t%d\t%s\t%.4f\t\n",
			rec.AtomID, rec.AtomName, rec.X, rec.Y, rec.Z, rec.AtomType, rec.SubstID, rec.SubstName, rec.Charge)
	}
	w.Flush()
}

func printDeviations(probe, reference models.AtomTable, devs []float64, precision int) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "#\tprobe\treference\tdistance")
	for i, d := range devs {
		fmt.Fprintf(w, "%d\t%s\t%s\t%.*f\n", i+1, probe[i].AtomName, reference[i].AtomName, precision, d)
	}
	w.Flush()
}
