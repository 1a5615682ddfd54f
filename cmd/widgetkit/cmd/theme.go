package cmd

import (
	"fmt"
	"os"
	"slices"
	"sort"

	"github.com/go-drift/widgetkit/cmd/widgetkit/internal/demo"
	"github.com/go-drift/widgetkit/pkg/config"
	"github.com/go-drift/widgetkit/pkg/core"
	werrors "github.com/go-drift/widgetkit/pkg/errors"
	"github.com/go-drift/widgetkit/pkg/raster"
	"github.com/go-drift/widgetkit/pkg/widgets"
)

func init() {
	RegisterCommand(&Command{
		Name:  "theme",
		Short: "Check a theme file",
		Long: `Load a YAML theme file, apply it to one of every widget and report
every entry that was rejected.

The command exits with an error when the file cannot be read, declares an
unsupported version, or has rejected entries.`,
		Usage: "widgetkit theme <file>",
		Run:   runTheme,
	})
}

var themeClasses = []string{
	widgets.ButtonClass,
	widgets.LabelClass,
	widgets.ComboBoxClass,
	widgets.ProgressBarClass,
	widgets.CanvasClass,
	widgets.PlotClass,
}

// collector keeps configuration warnings and forwards everything else.
type collector struct {
	next     werrors.ErrorHandler
	warnings []*werrors.ConfigError
}

func (c *collector) HandleError(err *werrors.WidgetError) { c.next.HandleError(err) }
func (c *collector) HandlePanic(err *werrors.PanicError)  { c.next.HandlePanic(err) }
func (c *collector) HandleConfigError(err *werrors.ConfigError) {
	c.warnings = append(c.warnings, err)
}

func runTheme(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("theme requires exactly one file")
	}
	problems, err := checkTheme(args[0])
	if err != nil {
		return err
	}
	if len(problems) > 0 {
		return fmt.Errorf("%d theme entries rejected", len(problems))
	}
	return nil
}

// checkTheme prints a summary of the theme at path and returns the
// rejected entries.
func checkTheme(path string) ([]string, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(stdout, "Theme: %s\n", path)
	fmt.Fprintf(stdout, "  version: %s\n", cfg.Version)
	fmt.Fprintf(stdout, "  scale:   %g\n", cfg.Scale)

	var problems []string
	names := make([]string, 0, len(cfg.Theme))
	for name := range cfg.Theme {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if !slices.Contains(themeClasses, name) {
			problems = append(problems, fmt.Sprintf("theme.%s: unknown widget class", name))
		}
	}

	col := &collector{next: werrors.DefaultHandler}
	werrors.SetHandler(col)
	defer werrors.SetHandler(col.next)

	fonts := raster.NewFonts()
	ctx, err := core.NewContext(core.WithConfig(cfg), core.WithFonts(fonts, fonts))
	if err != nil {
		return nil, err
	}
	defer ctx.Shutdown()
	scene, err := demo.Build(ctx)
	if err != nil {
		return nil, err
	}
	defer scene.Free()

	for _, w := range col.warnings {
		problems = append(problems, w.Error())
	}
	fmt.Fprintf(stdout, "  classes: %d\n", len(names))
	for _, p := range problems {
		fmt.Fprintf(os.Stderr, "  rejected: %s\n", p)
	}
	if len(problems) == 0 {
		fmt.Fprintln(stdout, "OK")
	}
	return problems, nil
}
