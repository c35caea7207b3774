// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Command distplot draws histograms of the generator's sampled costs and
// utilizations into the charts directory.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/petenewcomb/tsg-go"
	"github.com/petenewcomb/tsg-go/sample"
)

type histogram struct {
	Title        string
	XAxisLabel   string
	Values       plotter.Values
	Bins         int
	Color        color.Color
	FileBasename string
}

func setupPlot(h *histogram) *plot.Plot {
	p := plot.New()

	p.Title.Text = h.Title
	p.X.Label.Text = h.XAxisLabel
	p.Y.Label.Text = "Density"

	p.Title.TextStyle.Color = color.Gray{128}
	p.X.Color = color.Gray{128}
	p.Y.Color = color.Gray{128}
	p.X.Label.TextStyle.Color = color.Gray{128}
	p.Y.Label.TextStyle.Color = color.Gray{128}
	p.X.Tick.Color = color.Gray{128}
	p.Y.Tick.Color = color.Gray{128}
	p.X.Tick.Label.Color = color.Gray{128}
	p.Y.Tick.Label.Color = color.Gray{128}
	p.BackgroundColor = color.Transparent

	return p
}

func plotHistogram(outDir string, h *histogram) error {
	p := setupPlot(h)
	hist, err := plotter.NewHist(h.Values, h.Bins)
	if err != nil {
		return err
	}
	hist.Normalize(1)
	hist.FillColor = h.Color
	hist.LineStyle.Width = 0
	p.Add(hist)

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return err
	}
	return p.Save(9*vg.Inch, 6*vg.Inch, filepath.Join(outDir, h.FileBasename+".svg"))
}

func main() {
	seed := flag.Uint64("seed", 1, "random seed")
	samples := flag.Int("samples", 20000, "draws per histogram")
	tasks := flag.Int("tasks", 10, "tasks per utilization vector")
	utilization := flag.Float64("utilization", 0.7, "total utilization per vector")
	outDir := flag.String("out", "charts", "output directory")
	flag.Parse()

	s := sample.NewSampler(*seed)

	palette, err := brewer.GetPalette(brewer.TypeQualitative, "Paired", 12)
	if err != nil {
		log.Fatal(err)
	}
	colors := palette.Colors()

	var histograms []histogram
	for i, m := range sample.WATERSCatalogue {
		costs, err := s.Costs(m, *samples, true)
		if err != nil {
			log.Fatalf("Error sampling %v ms costs: %v", m.Period, err)
		}
		histograms = append(histograms, histogram{
			Title:        fmt.Sprintf("WATERS %v ms Runnable WCET", m.Period),
			XAxisLabel:   "WCET (ms)",
			Values:       costs,
			Bins:         50,
			Color:        colors[i%len(colors)],
			FileBasename: fmt.Sprintf("waters_cost_%vms", m.Period),
		})
	}

	vectors := *samples / *tasks
	uunifast, err := s.UUniFastSets(*tasks, *utilization, vectors)
	if err != nil {
		log.Fatal(err)
	}
	fixedSum, err := s.RandFixedSum(*tasks, *utilization, vectors)
	if err != nil {
		log.Fatal(err)
	}
	for _, d := range []struct {
		name, label string
		rows        [][]float64
	}{
		{"uunifast", "UUniFast", uunifast},
		{"randfixedsum", "RandFixedSum", fixedSum},
	} {
		var first plotter.Values
		for _, row := range d.rows {
			first = append(first, row[0])
		}
		histograms = append(histograms, histogram{
			Title:        fmt.Sprintf("%s Task Utilization (n=%d, U=%v)", d.label, *tasks, *utilization),
			XAxisLabel:   "Utilization",
			Values:       first,
			Bins:         40,
			Color:        colors[(len(histograms)+1)%len(colors)],
			FileBasename: d.name + "_utilization",
		})
	}

	cfg := tsg.DefaultConfig.Clone()
	cfg.Strategy = tsg.StrategyWATERS
	cfg.TaskCount = *tasks
	cfg.Utilization = *utilization
	cfg.SetCount = 50
	g := tsg.NewGenerator(*seed)
	sets, err := g.GenerateSets(cfg)
	if err != nil {
		log.Fatal(err)
	}
	var setUtilizations plotter.Values
	for _, ts := range sets {
		setUtilizations = append(setUtilizations, ts.Utilization())
	}
	histograms = append(histograms, histogram{
		Title:        fmt.Sprintf("WATERS Set Utilization (target %v ± %v)", cfg.Utilization, cfg.WATERS.Threshold),
		XAxisLabel:   "Utilization",
		Values:       setUtilizations,
		Bins:         20,
		Color:        colors[len(histograms)%len(colors)],
		FileBasename: "waters_set_utilization",
	})

	for i := range histograms {
		if err := plotHistogram(*outDir, &histograms[i]); err != nil {
			log.Fatalf("Error creating chart: %v", err)
		}
	}

	fmt.Printf("Charts generated successfully in the %q directory.\n", *outDir)
}
