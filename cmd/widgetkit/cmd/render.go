package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-drift/widgetkit/cmd/widgetkit/internal/demo"
	"github.com/go-drift/widgetkit/pkg/config"
	"github.com/go-drift/widgetkit/pkg/core"
	"github.com/go-drift/widgetkit/pkg/graphics"
	"github.com/go-drift/widgetkit/pkg/raster"
)

func init() {
	RegisterCommand(&Command{
		Name:  "render",
		Short: "Render the demo scene to PNG",
		Long: `Render one of every widget through the software backend and write
the result as a PNG image.

Flags:
  -o, --output FILE    Output file (default: widgetkit.png)
  --theme FILE         YAML theme applied to every widget
  --scale N            High-DPI scale factor (overrides the theme and WIDGETKIT_HIGHDPI)
  --background COLOR   Window color as #rrggbb or r,g,b,a (default: #f0f0f0)
  --expand             Open the combo box list before rendering
  --click X,Y          Click at a window position before rendering (repeatable)`,
		Usage: "widgetkit render [-o FILE] [--theme FILE] [--scale N] [--expand] [--click X,Y]",
		Run:   runRender,
	})
}

type renderOptions struct {
	output     string
	theme      string
	scale      float64
	background graphics.Color
	expand     bool
	clicks     []graphics.Point
}

func parseRenderArgs(args []string) (renderOptions, error) {
	opts := renderOptions{
		output:     "widgetkit.png",
		background: graphics.RGB(0xf0, 0xf0, 0xf0),
	}
	value := func(i int, flag string) (string, error) {
		if i+1 >= len(args) {
			return "", fmt.Errorf("%s requires a value", flag)
		}
		return args[i+1], nil
	}
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "-o", "--output", "--theme", "--scale", "--background", "--click":
			v, err := value(i, arg)
			if err != nil {
				return opts, err
			}
			i++
			if err := opts.set(arg, v); err != nil {
				return opts, err
			}
		case "--expand":
			opts.expand = true
		default:
			if name, v, ok := strings.Cut(arg, "="); ok && strings.HasPrefix(name, "--") {
				if err := opts.set(name, v); err != nil {
					return opts, err
				}
				continue
			}
			return opts, fmt.Errorf("unknown flag: %s", arg)
		}
	}
	return opts, nil
}

func (o *renderOptions) set(flag, v string) error {
	switch flag {
	case "-o", "--output":
		o.output = v
	case "--theme":
		o.theme = v
	case "--scale":
		s, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("--scale: %w", err)
		}
		o.scale = s
	case "--background":
		c, err := graphics.ParseColor(v)
		if err != nil {
			return fmt.Errorf("--background: %w", err)
		}
		o.background = c
	case "--click":
		xs, ys, ok := strings.Cut(v, ",")
		if !ok {
			return fmt.Errorf("--click: want X,Y, got %q", v)
		}
		x, errX := strconv.Atoi(strings.TrimSpace(xs))
		y, errY := strconv.Atoi(strings.TrimSpace(ys))
		if errX != nil || errY != nil {
			return fmt.Errorf("--click: want integer X,Y, got %q", v)
		}
		o.clicks = append(o.clicks, graphics.Pt(x, y))
	default:
		return fmt.Errorf("unknown flag: %s", flag)
	}
	return nil
}

func runRender(args []string) error {
	opts, err := parseRenderArgs(args)
	if err != nil {
		return err
	}
	cv, err := renderScene(opts, os.LookupEnv)
	if err != nil {
		return err
	}

	f, err := os.Create(opts.output)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	if err := cv.WritePNG(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	size := cv.Size()
	fmt.Fprintf(stdout, "Wrote %s (%dx%d)\n", opts.output, size.W, size.H)
	return nil
}

// renderScene builds the demo scene, replays the requested clicks and
// draws it into a new canvas.
func renderScene(opts renderOptions, lookup func(string) (string, bool)) (*raster.Canvas, error) {
	cfg, err := config.LoadOptional(opts.theme)
	if err != nil {
		return nil, err
	}
	fonts := raster.NewFonts()
	coreOpts := []core.Option{
		core.WithConfig(cfg),
		core.WithEnv(lookup),
		core.WithFonts(fonts, fonts),
	}
	if opts.scale > 0 {
		coreOpts = append(coreOpts, core.WithScale(opts.scale))
	}
	ctx, err := core.NewContext(coreOpts...)
	if err != nil {
		return nil, err
	}
	defer ctx.Shutdown()

	scene, err := demo.Build(ctx)
	if err != nil {
		return nil, err
	}
	defer scene.Free()

	if opts.expand {
		b := scene.Combo.Base().Bounds()
		if err := scene.Click(b.X+b.W/2, b.Y+b.H/2); err != nil {
			return nil, err
		}
	}
	for _, p := range opts.clicks {
		if err := scene.Click(p.X, p.Y); err != nil {
			return nil, err
		}
	}

	size := scene.Size()
	cv := raster.New(size.W, size.H)
	cv.Clear(opts.background)
	if err := scene.Render(cv); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return cv, nil
}
