// Package launcher runs the interactive menu: pick sample data or a CSV file,
// review its summary, then render a chart.
package launcher

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/okian/radar/internal/adapters/csvtable"
	"github.com/okian/radar/internal/app"
	"github.com/okian/radar/internal/domain/sample"
	"github.com/okian/radar/internal/domain/table"
	"github.com/okian/radar/pkg/logger"
)

// Defaults offered at the prompts.
const (
	DefaultTitle    = "Student Performance Radar Chart"
	DefaultFilename = "radar_chart.png"
)

const ruleWidth = 50

// GeneratorFunc builds a generator for a loaded table.
type GeneratorFunc func(t *table.Table) (*app.Generator, error)

// Launcher is the interactive menu loop.
type Launcher struct {
	in     *bufio.Scanner
	out    io.Writer
	seed   int64
	show   bool
	build  GeneratorFunc
	logger logger.Logger

	heading lipgloss.Style
	success lipgloss.Style
	failure lipgloss.Style
	faint   lipgloss.Style
}

// Option applies a configuration option to the Launcher.
type Option func(*Launcher)

// WithSeed sets the sample data seed.
func WithSeed(seed int64) Option {
	return func(l *Launcher) { l.seed = seed }
}

// WithShow controls whether saved charts are also displayed.
func WithShow(show bool) Option {
	return func(l *Launcher) { l.show = show }
}

// WithGenerator sets how generators are built for loaded tables.
func WithGenerator(fn GeneratorFunc) Option {
	return func(l *Launcher) {
		if fn != nil {
			l.build = fn
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(lg logger.Logger) Option {
	return func(l *Launcher) {
		if lg != nil {
			l.logger = lg
		}
	}
}

// New creates a launcher reading answers from in and writing to out.
func New(in io.Reader, out io.Writer, opts ...Option) *Launcher {
	r := lipgloss.NewRenderer(out)
	l := &Launcher{
		in:      bufio.NewScanner(in),
		out:     out,
		seed:    sample.DefaultSeed,
		show:    true,
		build:   func(t *table.Table) (*app.Generator, error) { return app.New(t) },
		logger:  logger.Nop(),
		heading: r.NewStyle().Bold(true),
		success: r.NewStyle().Foreground(lipgloss.Color("2")),
		failure: r.NewStyle().Foreground(lipgloss.Color("1")),
		faint:   r.NewStyle().Faint(true),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Run shows the menu until the user exits, input ends or ctx is done.
func (l *Launcher) Run(ctx context.Context) error {
	l.banner()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		l.println("Options:")
		l.println("1. Use sample data")
		l.println("2. Load from CSV file")
		l.println("3. Exit")

		choice, ok := l.prompt("\nEnter your choice (1-3): ")
		if !ok {
			return l.inputErr()
		}

		switch choice {
		case "1":
			l.println("\nUsing sample data...")
			if err := l.chart(ctx, sample.Generate(l.seed)); err != nil {
				if errors.Is(err, io.EOF) {
					return l.inputErr()
				}
				l.fail("Error: %v", err)
			}
		case "2":
			path, ok := l.prompt("\nEnter CSV file path: ")
			if !ok {
				return l.inputErr()
			}
			if !csvtable.Exists(path) {
				l.fail("Error: File '%s' not found.", path)
				break
			}
			if err := l.loadAndChart(ctx, path); err != nil {
				if errors.Is(err, io.EOF) {
					return l.inputErr()
				}
				l.fail("Error processing file: %v", err)
			}
		case "3":
			l.println("\nGoodbye!")
			return nil
		default:
			l.fail("Invalid choice. Please enter 1, 2, or 3.")
		}

		l.println(l.faint.Render("\n" + strings.Repeat("-", ruleWidth)))
	}
}

func (l *Launcher) loadAndChart(ctx context.Context, path string) error {
	t, err := csvtable.Load(path)
	if err != nil {
		return err
	}
	return l.chart(ctx, t)
}

// chart prints the summary, asks for a title and file name and renders.
func (l *Launcher) chart(ctx context.Context, t *table.Table) error {
	g, err := l.build(t)
	if err != nil {
		return err
	}
	if err := g.PrintSummary(l.out); err != nil {
		return err
	}

	title, ok := l.prompt("\nEnter chart title (or press Enter for default): ")
	if !ok {
		return io.EOF
	}
	if title == "" {
		title = DefaultTitle
	}
	filename, ok := l.prompt(fmt.Sprintf("Enter output filename (or press Enter for '%s'): ", DefaultFilename))
	if !ok {
		return io.EOF
	}
	if filename == "" {
		filename = DefaultFilename
	}

	if _, err := g.GenerateChart(ctx, app.ChartOptions{Title: title, SavePath: filename, Show: l.show}); err != nil {
		return err
	}
	l.logger.Info(ctx, "chart saved", logger.String("path", filename), logger.Int("entities", t.NumEntities()))
	l.println(l.success.Render(fmt.Sprintf("Chart saved as '%s'", filename)))
	return nil
}

func (l *Launcher) banner() {
	l.println(l.heading.Render("Radar Chart Generator"))
	l.println(strings.Repeat("=", ruleWidth))
	l.println("This tool creates radar charts from CSV data where:")
	l.println("- Each row = student (different colored lines)")
	l.println("- Each column = subject (angles on the radar)")
	l.println("")
}

// prompt prints label and reads one trimmed line. ok is false once input is
// exhausted.
func (l *Launcher) prompt(label string) (string, bool) {
	_, _ = fmt.Fprint(l.out, label)
	if !l.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(l.in.Text()), true
}

// inputErr ends the loop: nil at end of input, the read error otherwise.
func (l *Launcher) inputErr() error {
	l.println("")
	if err := l.in.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	return nil
}

func (l *Launcher) fail(format string, args ...any) {
	l.println(l.failure.Render(fmt.Sprintf(format, args...)))
}

func (l *Launcher) println(s string) {
	_, _ = fmt.Fprintln(l.out, s)
}
