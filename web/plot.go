package web

import (
	"bytes"
	"html/template"
	"log"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// LossPlot renders the training loss history as an inline SVG chart.
func (s *Server) LossPlot(width, height int) template.HTML {
	plt := newPlot()
	var pts plotter.XYs
	xmax := 1.0
	for _, st := range s.History {
		pts = append(pts, plotter.XY{X: float64(st.Epoch), Y: st.Loss})
		if float64(st.Epoch) > xmax {
			xmax = float64(st.Epoch)
		}
	}
	line := newLinePlot(pts, 0, 1, xmax)
	plt.Add(line)
	plt.Legend.Add("training loss ", line)
	return writePlot(plt, width, height)
}

// FreqPlot renders the corpus character frequencies as an inline SVG chart.
func (s *Server) FreqPlot(width, height int) template.HTML {
	plt := newPlot()
	pts := make(plotter.XYs, len(s.freqs))
	for i, f := range s.freqs {
		pts[i] = plotter.XY{X: float64(i), Y: f * 100}
	}
	line := newLinePlot(pts, 1, 0, float64(len(s.freqs)-1))
	plt.Add(line)
	plt.Legend.Add("char frequency % ", line)
	return writePlot(plt, width, height)
}

func newPlot() *plot.Plot {
	p, err := plot.New()
	if err != nil {
		log.Fatal("Plot error: ", err)
	}
	p.X.Padding, p.Y.Padding = 0, 0
	p.Legend.Top = true
	p.Add(plotter.NewGrid())
	return p
}

func writePlot(p *plot.Plot, w, h int) template.HTML {
	var buf bytes.Buffer
	writer, err := p.WriterTo(vg.Inch*vg.Length(w), vg.Inch*vg.Length(h), "svg")
	if err != nil {
		log.Fatal("Error writing plot: ", err)
	}
	writer.WriteTo(&buf)
	return template.HTML(buf.String())
}

func newLinePlot(pts plotter.XYs, ix int, xmin, xmax float64) linePlot {
	ymax := 0.0
	for _, pt := range pts {
		if pt.Y > ymax {
			ymax = pt.Y
		}
	}
	l, _ := plotter.NewLine(pts)
	l.Width = 2
	l.Color = plotutil.Color(ix)
	return linePlot{Line: l, xmin: xmin, xmax: xmax, ymin: 0, ymax: ymax}
}

// modified plotter.Line with a fixed scale
type linePlot struct {
	*plotter.Line
	xmin, xmax, ymin, ymax float64
}

func (l linePlot) DataRange() (xmin, xmax, ymin, ymax float64) {
	return l.xmin, l.xmax, l.ymin, l.ymax
}
