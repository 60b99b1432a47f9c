package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/Dmkdok/meal-planner/internal/layout"
	"github.com/Dmkdok/meal-planner/internal/logging"
	"github.com/Dmkdok/meal-planner/internal/provision"
	"github.com/Dmkdok/meal-planner/internal/report"
)

const (
	formatCSV  = "csv"
	formatJSON = "json"
)

type options struct {
	layoutFile  string
	name        string
	tripDays    int
	peopleCount int
	format      string
	logLevel    string
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	kingpin.FatalIfError(err, "parse flags")

	logger, err := logging.New(opts.logLevel)
	kingpin.FatalIfError(err, "initialize logger")
	defer func() {
		_ = logger.Sync()
	}()

	if err := run(opts, os.Stdout, logger); err != nil {
		logger.Error("provisioning failed", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
}

func parseFlags(args []string) (options, error) {
	app := kingpin.New("provision", "Compute the food to buy for a trip from a YAML meal layout")
	layoutFile := app.Flag("layout", "YAML file with one layout or a list under \"layouts\"").Short('l').Required().String()
	name := app.Flag("name", "Layout to use when the file holds several").String()
	tripDays := app.Flag("days", "Trip length in days").Short('d').Required().Int()
	peopleCount := app.Flag("people", "Number of people in the group").Short('p').Required().Int()
	format := app.Flag("format", "Output format").Default(formatCSV).Enum(formatCSV, formatJSON)
	logLevel := app.Flag("log-level", "Log level").Default("warn").Enum("debug", "info", "warn", "error")

	if _, err := app.Parse(args); err != nil {
		return options{}, err
	}
	return options{
		layoutFile:  *layoutFile,
		name:        *name,
		tripDays:    *tripDays,
		peopleCount: *peopleCount,
		format:      *format,
		logLevel:    *logLevel,
	}, nil
}

func run(opts options, out io.Writer, logger *zap.Logger) error {
	layouts, err := layout.LoadFile(opts.layoutFile)
	if err != nil {
		return err
	}

	l, err := pickLayout(layouts, opts.name)
	if err != nil {
		return err
	}
	if err := l.Validate(); err != nil {
		return fmt.Errorf("layout %q: %w", l.Name, err)
	}

	result, err := provision.New().Calculate(l.Request(opts.tripDays, opts.peopleCount))
	if err != nil {
		return err
	}
	logger.Debug("calculation finished",
		zap.String("layout", l.Name),
		zap.Int("products", len(result.Products)),
		zap.Ints("repetitions", result.Repetitions),
	)
	for _, p := range result.Products {
		if p.MissingWeight {
			logger.Warn("product has no weight", zap.String("product", p.Name))
		}
	}

	if opts.format == formatJSON {
		return report.WriteJSON(out, result, l.MealTypesByDay())
	}
	return report.WriteCSV(out, result, l.MealTypesByDay())
}

func pickLayout(layouts []layout.Layout, name string) (layout.Layout, error) {
	if len(layouts) == 0 {
		return layout.Layout{}, fmt.Errorf("no layouts in file")
	}
	if name == "" {
		return layouts[0], nil
	}
	for _, l := range layouts {
		if strings.EqualFold(strings.TrimSpace(l.Name), strings.TrimSpace(name)) {
			return l, nil
		}
	}
	return layout.Layout{}, fmt.Errorf("layout %q not found", name)
}
