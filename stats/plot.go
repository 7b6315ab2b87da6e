package stats

import (
	"github.com/guptarohit/asciigraph"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// ASCII draws the mean cumulative DP and GQ curves (levels 1..Ylim) for
// a terminal.
func ASCII(s []Summary) string {
	depth, quality := Average(s)
	if len(depth) < 2 {
		return ""
	}
	return asciigraph.PlotMany([][]float64{depth[1:], quality[1:]},
		asciigraph.Height(10),
		asciigraph.Precision(2),
		asciigraph.SeriesColors(asciigraph.Red, asciigraph.Blue),
		asciigraph.Caption("fraction of records with DP (red) / GQ (blue) >= level"))
}

func curve(values []float64) plotter.XYs {
	if len(values) < 2 {
		return nil
	}
	pts := make(plotter.XYs, len(values)-1)
	for i := 1; i < len(values); i++ {
		pts[i-1].X = float64(i)
		pts[i-1].Y = values[i]
	}
	return pts
}

// SavePlot writes the mean cumulative DP and GQ curves to file. The
// image format follows the file extension (png, svg, pdf, ...).
func SavePlot(file string, s []Summary) error {
	depth, quality := Average(s)
	p := plot.New()
	p.Title.Text = "Sample depth and genotype quality"
	p.X.Label.Text = "Level"
	p.Y.Label.Text = "Fraction of records >= level"
	p.Y.Min = 0
	p.Y.Max = 1
	err := plotutil.AddLines(p, "DP", curve(depth), "GQ", curve(quality))
	if err != nil {
		return err
	}
	return p.Save(6*vg.Inch, 4*vg.Inch, file)
}
