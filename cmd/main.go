package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v2"

	"shiftcal/internal/config"
	"shiftcal/internal/models"
	"shiftcal/internal/planner"
)

const dateLayout = "2006-01-02"

func main() {
	// Load .env file first, but don't error if it doesn't exist.
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "shiftcal",
		Usage: "Build an iCalendar file from a list of work shifts.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Value: "shiftcal.yaml", Usage: "Path to the YAML config file."},
			&cli.BoolFlag{Name: "interop", Usage: "Save with RFC 5545 escaping and folding instead of the plain dialect."},
		},
		Commands: []*cli.Command{
			generateCommand(),
			interactiveCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("Application failed", "error", err)
		os.Exit(1)
	}
}

func generateCommand() *cli.Command {
	return &cli.Command{
		Name:  "generate",
		Usage: "Build a calendar from --shift flags and save it in one go.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "date", Aliases: []string{"d"}, Usage: "Default date (YYYY-MM-DD) for shifts that omit one."},
			&cli.StringSliceFlag{Name: "shift", Aliases: []string{"s"}, Usage: "Shift spec: [YYYY-MM-DD,]HH:MM-HH:MM. Repeatable."},
			&cli.StringFlag{Name: "summary", Usage: "Label for the shifts (default from config)."},
			&cli.StringFlag{Name: "organiser", Usage: "Organiser for the shifts (default from config)."},
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "Output path; extension is normalized to .ics."},
		},
		Action: func(c *cli.Context) error {
			logger := setupLogger(os.Getenv("LOG_LEVEL"))

			cfg, err := loadConfig(c, logger)
			if err != nil {
				return err
			}

			specs := c.StringSlice("shift")
			if len(specs) == 0 {
				return fmt.Errorf("no shifts given; pass at least one --shift")
			}

			summary := cfg.Summary
			if c.IsSet("summary") {
				summary = c.String("summary")
			}

			p := planner.New(logger, cfg.ProdID, organiser(c, cfg))
			for _, spec := range specs {
				start, end, err := parseShift(spec, c.String("date"), cfg)
				if err != nil {
					return err
				}
				p.AddShift(start, end, summary)
			}

			out := cfg.Output
			if c.IsSet("out") {
				out = c.String("out")
			}
			saveTo, err := save(c, p, out)
			if err != nil {
				return err
			}
			fmt.Println(saveTo)
			return nil
		},
	}
}

func interactiveCommand() *cli.Command {
	return &cli.Command{
		Name:  "interactive",
		Usage: "Add and remove shifts line by line, then save.",
		Action: func(c *cli.Context) error {
			logger := setupLogger(os.Getenv("LOG_LEVEL"))

			cfg, err := loadConfig(c, logger)
			if err != nil {
				return err
			}

			p := planner.New(logger, cfg.ProdID, organiser(c, cfg))
			fmt.Println("Commands: add DATE [START END] [SUMMARY], undo, del DATE START, list, show, save [PATH], quit")

			scanner := bufio.NewScanner(os.Stdin)
			for {
				fmt.Print("> ")
				if !scanner.Scan() {
					break
				}
				line := strings.TrimSpace(scanner.Text())
				if line == "" {
					continue
				}
				if done := runLine(c, p, cfg, logger, line); done {
					break
				}
			}
			return scanner.Err()
		},
	}
}

// runLine executes one interactive command. It reports whether the session
// should end.
func runLine(c *cli.Context, p *planner.Planner, cfg *config.Config, logger *slog.Logger, line string) bool {
	fields := strings.Fields(line)
	switch fields[0] {
	case "add":
		if len(fields) < 2 {
			fmt.Println("usage: add DATE [START END] [SUMMARY]")
			return false
		}
		start, end, summary, err := parseAdd(fields[1:], cfg)
		if err != nil {
			fmt.Println(err)
			return false
		}
		p.AddShift(start, end, summary)
	case "undo":
		if _, ok := p.DeleteLast(); !ok {
			fmt.Println("nothing to delete")
		}
	case "del":
		if len(fields) != 3 {
			fmt.Println("usage: del DATE START")
			return false
		}
		start, err := parseDateTime(fields[1], fields[2])
		if err != nil {
			fmt.Println(err)
			return false
		}
		probe := models.Event{DTStart: start}
		if !p.DeleteMatching(probe) {
			fmt.Println("no shift starts at", start.Format("2006-01-02 15:04"))
		}
	case "list":
		for i, label := range p.Summaries() {
			fmt.Printf("%2d. %s\n", i+1, label)
		}
	case "show":
		fmt.Println(p.Render())
	case "save":
		out := cfg.Output
		if len(fields) > 1 {
			out = fields[1]
		}
		saveTo, err := save(c, p, out)
		if err != nil {
			logger.Error("Save failed", "error", err)
			return false
		}
		fmt.Println("saved to", saveTo)
	case "quit", "exit":
		return true
	default:
		fmt.Println("unknown command:", fields[0])
	}
	return false
}

// parseAdd parses "DATE [START END] [SUMMARY...]" from an interactive add.
// Omitted times fall back to the configured defaults.
func parseAdd(args []string, cfg *config.Config) (start, end time.Time, summary string, err error) {
	date := args[0]
	startStr, endStr := cfg.DefaultStart, cfg.DefaultEnd
	rest := args[1:]
	if len(rest) >= 2 {
		if _, serr := config.ParseClock(rest[0]); serr == nil {
			startStr, endStr = rest[0], rest[1]
			rest = rest[2:]
		}
	}

	start, err = parseDateTime(date, startStr)
	if err != nil {
		return time.Time{}, time.Time{}, "", err
	}
	end, err = parseDateTime(date, endStr)
	if err != nil {
		return time.Time{}, time.Time{}, "", err
	}

	summary = cfg.Summary
	if len(rest) > 0 {
		summary = strings.Join(rest, " ")
	}
	return start, end, summary, nil
}

// parseShift parses a --shift spec of the form [DATE,]START-END, taking the
// date from defaultDate when the spec omits it and the times from the
// config when the spec is a bare DATE.
func parseShift(spec, defaultDate string, cfg *config.Config) (start, end time.Time, err error) {
	date := defaultDate
	times := spec
	if i := strings.IndexByte(spec, ','); i >= 0 {
		date, times = spec[:i], spec[i+1:]
	} else if _, derr := time.Parse(dateLayout, spec); derr == nil {
		date, times = spec, ""
	}
	if date == "" {
		return time.Time{}, time.Time{}, fmt.Errorf("shift %q has no date and no --date was given", spec)
	}

	startStr, endStr := cfg.DefaultStart, cfg.DefaultEnd
	if times != "" {
		var ok bool
		startStr, endStr, ok = strings.Cut(times, "-")
		if !ok {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid shift %q (want [DATE,]HH:MM-HH:MM)", spec)
		}
	}

	start, err = parseDateTime(date, startStr)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err = parseDateTime(date, endStr)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

// parseDateTime combines a YYYY-MM-DD date and an HH:MM wall-clock time
// into a local timestamp.
func parseDateTime(date, clock string) (time.Time, error) {
	d, err := time.ParseInLocation(dateLayout, date, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", date, err)
	}
	t, err := config.ParseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), 0, 0, time.Local), nil
}

func loadConfig(c *cli.Context, logger *slog.Logger) (*config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if v := os.Getenv("SHIFTCAL_ORGANISER"); v != "" {
		cfg.Organiser = v
	}
	if v := os.Getenv("SHIFTCAL_PRODID"); v != "" {
		cfg.ProdID = v
	}
	logger.Debug("Loaded configuration.", "organiser", cfg.Organiser, "prodid", cfg.ProdID)
	return cfg, nil
}

func organiser(c *cli.Context, cfg *config.Config) string {
	if c.IsSet("organiser") {
		return c.String("organiser")
	}
	return cfg.Organiser
}

func save(c *cli.Context, p *planner.Planner, out string) (string, error) {
	if c.Bool("interop") {
		return p.SaveInterop(out)
	}
	return p.Save(out)
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch strings.ToLower(level) {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	if isatty.IsTerminal(os.Stderr.Fd()) {
		return slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: logLevel}))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}
