// Command sketchdemo renders a generative plotter drawing for a range of
// seeds, one SVG per seed.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"

	"github.com/gogpu/sketch"
	"github.com/gogpu/sketch/internal/batch"
	"github.com/gogpu/sketch/pipeline"
)

func main() {
	var (
		start     = flag.Uint64("seed", 1, "first seed")
		count     = flag.Int("count", 4, "number of seeds to render")
		page      = flag.String("page", "a4", "page size name or WxH")
		landscape = flag.Bool("landscape", false, "landscape orientation")
		spec      = flag.String("pipeline", "linemerge linesimplify reloop linesort", "pipeline spec, empty to skip")
		outDir    = flag.String("out", ".", "output directory")
		workers   = flag.Int("workers", runtime.GOMAXPROCS(0), "parallel renders")
		verbose   = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	sketch.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	size, err := sketch.ParsePageSize(*page)
	if err != nil {
		log.Fatalf("Invalid page: %v", err)
	}
	if *count < 1 {
		log.Fatalf("Invalid count %d", *count)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	pool := batch.New(*workers)
	defer pool.Close()

	jobs := make([]batch.Job, *count)
	for i := range jobs {
		seed := *start + uint64(i)
		jobs[i] = func(ctx context.Context) error {
			s := sketch.New(
				sketch.WithSeed(seed),
				sketch.WithPageSize(size),
				sketch.WithLandscape(*landscape),
				sketch.WithPipeline(pipeline.New(pipeline.WithSeed(seed))),
			)
			if err := draw(s, seed); err != nil {
				return fmt.Errorf("seed %d: %w", seed, err)
			}
			if *spec != "" {
				if err := s.Vpype(ctx, *spec); err != nil {
					return fmt.Errorf("seed %d: %w", seed, err)
				}
			}
			path := filepath.Join(*outDir, fmt.Sprintf("sketch_%d.svg", seed))
			return s.Save(path, sketch.WithDescription(fmt.Sprintf("seed %d", seed)))
		}
	}
	if err := pool.Run(ctx, jobs); err != nil {
		log.Fatalf("Render failed: %v", err)
	}
	log.Printf("Rendered %d sketches to %s\n", *count, *outDir)
}

func draw(s *sketch.Sketch, seed uint64) error {
	if err := s.DetailLength("0.1mm"); err != nil {
		return err
	}
	if err := s.PenWidthLength("0.3mm", 1); err != nil {
		return err
	}
	if err := s.PenWidthLength("0.5mm", 2); err != nil {
		return err
	}
	if err := drawRings(s); err != nil {
		return err
	}
	if err := drawTiles(s); err != nil {
		return err
	}
	return drawCaption(s, seed)
}

// drawRings draws concentric rings displaced by noise.
func drawRings(s *sketch.Sketch) error {
	defer s.PushMatrix()()
	s.Translate(s.Width()/2, s.Height()*0.4)
	const points = 180
	for r := 20.0; r < s.Width()*0.35; r += 6 {
		line := make([]sketch.Point, points)
		for i := range line {
			a := 2 * math.Pi * float64(i) / points
			x, y := math.Cos(a), math.Sin(a)
			d := r * (0.8 + 0.4*s.Noise(x+1, y+1, r/100))
			line[i] = sketch.Pt(x*d, y*d)
		}
		if err := s.Polygon(line); err != nil {
			return err
		}
	}
	return nil
}

// drawTiles draws a row of randomly rotated, hatched tiles built from a
// sub-sketch. Each tile is a square with a round hole and a bar through it
// that shows only over the hole.
func drawTiles(s *sketch.Sketch) error {
	tile := sketch.New()
	if err := tile.Fill(2); err != nil {
		return err
	}
	sh := tile.CreateShape()
	if err := sh.Rect(-15, -15, 30, 30, sketch.Union); err != nil {
		return err
	}
	if err := sh.Circle(0, 0, 6, sketch.Difference); err != nil {
		return err
	}
	if err := sh.Line(-15, 0, 15, 0); err != nil {
		return err
	}
	if err := tile.Shape(sh, true, true); err != nil {
		return err
	}

	defer s.PushMatrix()()
	s.Translate(s.Width()*0.15, s.Height()*0.8)
	step := s.Width() * 0.7 / 6
	for range 7 {
		err := s.WithMatrix(func() error {
			s.Rotate(s.RandomRange(-math.Pi/8, math.Pi/8))
			s.Scale(s.RandomRange(0.8, 1.3))
			return s.Sketch(tile)
		})
		if err != nil {
			return err
		}
		s.Translate(step, 0)
	}
	return nil
}

func drawCaption(s *sketch.Sketch, seed uint64) error {
	s.TextMode(sketch.TextLabel)
	return s.Text(fmt.Sprintf("seed %d", seed), s.Width()/2, s.Height()*0.93,
		sketch.WithTextSize(14), sketch.WithTextAlign(sketch.AlignCenter))
}
