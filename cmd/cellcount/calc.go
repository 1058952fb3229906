package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/ukaji3/cellcount-go/internal/config"
	"github.com/ukaji3/cellcount-go/internal/validate"
	"github.com/ukaji3/cellcount-go/pkg/cellcount"
	"github.com/ukaji3/cellcount-go/pkg/cellcount/models"
	"github.com/ukaji3/cellcount-go/pkg/cellcount/output"
	"github.com/ukaji3/cellcount-go/pkg/cellcount/parser"
	"go.uber.org/zap"
)

// calcError carries the user-facing message of a failed calculation.
type calcError struct {
	msg string
	err error
}

func (e *calcError) Error() string { return e.msg }
func (e *calcError) Unwrap() error { return e.err }

type calcOptions struct {
	squares        int
	live           countsFlag
	dead           countsFlag
	countsFile     string
	countsSheet    string
	dilution       float64
	stockVolume    float64
	targetCells    float64
	dispenseVolume float64
	format         string
	outputPath     string
	pretty         bool
}

func newCalcCmd(cfg *config.Config, logger *zap.Logger) *cobra.Command {
	defaults := cfg.Inputs()
	opts := &calcOptions{}

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Calculate the working suspension recipe from hemocytometer counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCalc(cmd, opts, defaults, logger.Named("calc"))
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&opts.squares, "squares", defaults.SquareCount, "Number of squares counted")
	flags.Var(&opts.live, "live", "Live counts per square, comma separated or repeated")
	flags.Var(&opts.dead, "dead", "Dead counts per square, comma separated or repeated")
	flags.StringVar(&opts.countsFile, "counts-file", "", "Read counts from an xlsx workbook (live in column A, dead in column B)")
	flags.StringVar(&opts.countsSheet, "counts-sheet", "", "Sheet of --counts-file to read (default: first sheet)")
	flags.Float64Var(&opts.dilution, "dilution", defaults.DilutionFactor, "Dilution factor applied before counting")
	flags.Float64Var(&opts.stockVolume, "stock-volume", defaults.StockVolumeMl, "Stock suspension volume (mL)")
	flags.Float64Var(&opts.targetCells, "target-cells", defaults.TargetCellsPerDish, "Target live cells per dish")
	flags.Float64Var(&opts.dispenseVolume, "dispense-volume", defaults.DispenseVolumeMl, "Working suspension volume per dish (mL)")
	flags.StringVarP(&opts.format, "format", "f", string(cellcount.FormatText), "Output format: text, json, csv, xlsx")
	flags.StringVarP(&opts.outputPath, "output", "o", "", "Output file or directory (default: stdout)")
	flags.BoolVar(&opts.pretty, "pretty", false, "Pretty-print JSON output")

	cmd.MarkFlagsMutuallyExclusive("counts-file", "live")
	cmd.MarkFlagsMutuallyExclusive("counts-file", "dead")

	return cmd
}

func runCalc(cmd *cobra.Command, opts *calcOptions, defaults cellcount.Defaults, logger *zap.Logger) error {
	format, err := cellcount.ParseFormat(opts.format)
	if err != nil {
		return err
	}

	counts, err := collectCounts(cmd, opts, defaults)
	if err != nil {
		return err
	}

	squares := opts.squares
	if !cmd.Flags().Changed("squares") {
		squares = len(counts)
	}

	req := models.CalculationRequest{
		SquareCount:        squares,
		Counts:             counts,
		DilutionFactor:     opts.dilution,
		StockVolumeMl:      opts.stockVolume,
		TargetCellsPerDish: opts.targetCells,
		DispenseVolumeMl:   opts.dispenseVolume,
	}
	if err := validate.NewValidator().Request(req); err != nil {
		return err
	}

	res, err := cellcount.Calculate(req)
	if err != nil {
		logger.Debug("calculation failed", zap.Error(err))
		return &calcError{msg: output.FailureMessage(err), err: err}
	}
	logger.Debug("calculation done",
		zap.Float64("cells_per_ml", res.CellsPerMl),
		zap.Int("final_dish_count", res.FinalDishCount))

	rec := &models.ExportRecord{
		ID:           uuid.NewString(),
		CalculatedAt: time.Now(),
		Request:      req,
		Result:       *res,
	}

	var buf bytes.Buffer
	if err := writeOutput(&buf, rec, format, opts.pretty); err != nil {
		return fmt.Errorf("rendering %s output: %w", format, err)
	}

	if opts.outputPath == "" {
		_, err := cmd.OutOrStdout().Write(buf.Bytes())
		return err
	}

	path := opts.outputPath
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, output.FileName(rec.CalculatedAt, format))
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	logger.Info("wrote output", zap.String("path", path))
	return nil
}

// collectCounts gathers counts from the workbook, the count flags, or the defaults.
func collectCounts(cmd *cobra.Command, opts *calcOptions, defaults cellcount.Defaults) ([]models.CountInput, error) {
	if opts.countsFile != "" {
		if _, err := os.Stat(opts.countsFile); os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %s", opts.countsFile)
		}
		counts, err := parser.ReadCountsFile(opts.countsFile, opts.countsSheet)
		if err != nil {
			return nil, fmt.Errorf("reading counts: %w", err)
		}
		return counts, nil
	}

	if len(opts.live.values) == 0 {
		if len(opts.dead.values) > 0 {
			return nil, fmt.Errorf("--dead given without --live")
		}
		n := defaults.SquareCount
		if cmd.Flags().Changed("squares") {
			n = opts.squares
		}
		if n <= 0 {
			return nil, fmt.Errorf("--squares must be > 0")
		}
		return models.UniformCounts(n, defaults.Live, defaults.Dead), nil
	}

	return parser.ParseCounts(opts.live.values, opts.dead.values)
}

func writeOutput(w io.Writer, rec *models.ExportRecord, format cellcount.Format, pretty bool) error {
	switch format {
	case cellcount.FormatJSON:
		data, err := output.ToJSON(rec, pretty)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case cellcount.FormatCSV:
		return output.WriteCSV(w, rec)
	case cellcount.FormatXLSX:
		return output.WriteXLSX(w, rec)
	default:
		return output.WriteText(w, &rec.Result)
	}
}
