// Command photoredact strips privacy-sensitive metadata from a directory of
// photos, mirroring the tree into an output directory. JPEGs are redacted in
// place, HEIC/HEIF captures are transcoded to JPEG, everything else passes
// through unchanged.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"mime"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/rodaine/table"

	"photoredact/internal/codec"
	"photoredact/internal/config"
	"photoredact/internal/logging"
	"photoredact/internal/pipeline"
	"photoredact/internal/transcode"
)

type cliFlags struct {
	InputDir  string
	OutputDir string
	Profile   string
	StripPNG  bool
}

var cli cliFlags

func init() {
	flag.StringVar(&cli.InputDir, "in", "", "input directory (required)")
	flag.StringVar(&cli.OutputDir, "out", "", "output directory (required)")
	flag.StringVar(&cli.Profile, "profile", "", "optional YAML redaction profile")
	flag.BoolVar(&cli.StripPNG, "strip-png", false, "strip metadata chunks from PNG files instead of passing them through")
}

func validateFlags() error {
	if cli.InputDir == "" {
		return fmt.Errorf("input directory must not be empty")
	}
	if cli.OutputDir == "" {
		return fmt.Errorf("output directory must not be empty")
	}
	if _, err := os.Stat(cli.InputDir); os.IsNotExist(err) {
		return fmt.Errorf("input directory does not exist: %s", cli.InputDir)
	}
	return nil
}

func main() {
	flag.Parse()

	if err := validateFlags(); err != nil {
		log.Fatal(err)
	}

	cfg := config.Load()
	if cli.Profile != "" {
		var err error
		cfg, err = cfg.ApplyProfile(cli.Profile)
		if err != nil {
			log.Fatal(err)
		}
	}
	if cli.StripPNG {
		cfg.StripPNG = true
	}

	logger := logging.NewJSONLogger(os.Stderr, "photoredact", cfg.LogLevel)
	if !transcode.Supported() {
		logger.Warn("heic_support_disabled",
			"note", "HEIC inputs will fail; rebuild without the noheif tag")
	}

	opts := cfg.RedactionOptions().WithDefaults()
	p := pipeline.New(pipeline.Config{
		Codec:      codec.JPEG{},
		Transcoder: transcode.HEIC{Quality: opts.HeicQuality, MaxWidth: cfg.MaxWidth},
		Options:    opts,
		StripPNG:   cfg.StripPNG,
		Log:        logger,
	})

	inputs, modTimes, err := collectInputs(cli.InputDir)
	if err != nil {
		log.Fatal(err)
	}
	if len(inputs) == 0 {
		fmt.Println("no files to process")
		return
	}

	if err := os.MkdirAll(cli.OutputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	batch := p.ProcessBatch(inputs, func(i, total int, name string) {
		fmt.Printf("[%d/%d] %s\n", i, total, name)
	})

	if err := writeResults(batch, modTimes, logger); err != nil {
		log.Fatal(err)
	}

	printSummary(batch, inputs)

	if batch.Failed > 0 {
		os.Exit(1)
	}
}

// collectInputs walks the input tree and loads every regular file, keyed by
// its path relative to the root. Modification times ride along so outputs
// can keep them.
func collectInputs(root string) ([]pipeline.Input, []time.Time, error) {
	var inputs []pipeline.Input
	var modTimes []time.Time
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read input file: %v", err)
		}
		inputs = append(inputs, pipeline.Input{
			Name: rel,
			MIME: mime.TypeByExtension(filepath.Ext(path)),
			Data: data,
		})
		modTimes = append(modTimes, info.ModTime())
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return inputs, modTimes, nil
}

// writeResults mirrors the batch into the output directory, preserving each
// source file's modification time.
func writeResults(batch pipeline.BatchResult, modTimes []time.Time, logger *slog.Logger) error {
	for i, res := range batch.Files {
		outPath := filepath.Join(cli.OutputDir, res.Name)
		if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %v", err)
		}
		if err := os.WriteFile(outPath, res.Data, 0644); err != nil {
			return fmt.Errorf("failed to write output file: %v", err)
		}
		if err := os.Chtimes(outPath, modTimes[i], modTimes[i]); err != nil {
			logger.Warn("mtime_not_preserved", "file", outPath, "error", err)
		}
	}
	return nil
}

func printSummary(batch pipeline.BatchResult, inputs []pipeline.Input) {
	headerFmt := color.New(color.FgGreen, color.Underline).SprintfFunc()
	columnFmt := color.New(color.FgYellow).SprintfFunc()

	tbl := table.New("File", "Format", "Tier", "Removed", "Status", "In", "Out")
	tbl.WithHeaderFormatter(headerFmt).WithFirstColumnFormatter(columnFmt)
	for i, res := range batch.Files {
		status := color.GreenString("ok")
		if !res.Success() {
			status = color.RedString("failed")
		}
		tbl.AddRow(res.Name, res.Format.String(), res.Tier.String(),
			len(res.Report.Removed), status, len(inputs[i].Data), len(res.Data))
	}
	fmt.Println()
	tbl.Print()
	fmt.Printf("\nrun %s: %d ok, %d failed, %d bytes in, %d bytes out\n",
		batch.RunID, batch.Succeeded, batch.Failed,
		batch.TotalInputSize, batch.TotalCleanedSize)
}
