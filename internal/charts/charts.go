// Package charts renders rating charts as PNG images.
package charts

import (
	"bytes"
	"fmt"

	"github.com/SoMedNinja/padel-app-sub001/internal/elo"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ContentType is the MIME type of rendered charts.
const ContentType = "image/png"

// Palette holds the chart colors as hex strings.
type Palette struct {
	Background string
	Line       string
	Dot        string
	Baseline   string
	Text       string
}

// DefaultPalette is a court-blue line on white.
var DefaultPalette = Palette{
	Background: "ffffff",
	Line:       "1f6feb",
	Dot:        "f2b705",
	Baseline:   "9aa0a6",
	Text:       "24292f",
}

const noHistoryMessage = "No rated matches yet"

// EloHistory draws a player's rating after every rated match. The starting rating is
// plotted as the first point, one second before the first match.
func EloHistory(player elo.PlayerStats, palette Palette) ([]byte, error) {
	if len(player.History) == 0 {
		return renderNoData(palette)
	}

	first := player.History[0]
	xs := append(make([]float64, 0, len(player.History)+1), chart.TimeToFloat64(first.Timestamp)-1e9)
	ys := append(make([]float64, 0, len(player.History)+1), float64(player.StartElo))
	for _, h := range player.History {
		xs = append(xs, chart.TimeToFloat64(h.Timestamp))
		ys = append(ys, float64(h.Elo))
	}

	series := chart.ContinuousSeries{
		Name:    player.Name,
		XValues: xs,
		YValues: ys,
		Style: chart.Style{
			StrokeColor: drawing.ColorFromHex(palette.Line),
			StrokeWidth: 2,
			DotWidth:    3,
			DotColor:    drawing.ColorFromHex(palette.Dot),
		},
	}
	baseline := chart.ContinuousSeries{
		Name:    "Baseline",
		XValues: []float64{xs[0], xs[len(xs)-1]},
		YValues: []float64{elo.EloBaseline, elo.EloBaseline},
		Style: chart.Style{
			StrokeColor:     drawing.ColorFromHex(palette.Baseline),
			StrokeWidth:     1,
			StrokeDashArray: []float64{4, 4},
		},
	}

	graph := chart.Chart{
		Title:      fmt.Sprintf("%s: %d Elo", player.Name, player.Elo),
		Width:      800,
		Height:     400,
		Background: chart.Style{FillColor: drawing.ColorFromHex(palette.Background)},
		Canvas:     chart.Style{FillColor: drawing.ColorFromHex(palette.Background)},
		TitleStyle: chart.Style{FontColor: drawing.ColorFromHex(palette.Text)},
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatterWithFormat("2006-01-02"),
			Style:          chart.Style{FontColor: drawing.ColorFromHex(palette.Text)},
		},
		YAxis: chart.YAxis{
			Name:  "Elo",
			Style: chart.Style{FontColor: drawing.ColorFromHex(palette.Text)},
		},
		Series: []chart.Series{baseline, series},
	}

	buf := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buf); err != nil {
		return nil, fmt.Errorf("failed to render elo chart: %w", err)
	}
	return buf.Bytes(), nil
}

// renderNoData draws the message only. The renderer needs one visible series, so a
// transparent one is plotted under hidden axes.
func renderNoData(palette Palette) ([]byte, error) {
	graph := chart.Chart{
		Width:      400,
		Height:     200,
		Background: chart.Style{FillColor: drawing.ColorFromHex(palette.Background)},
		Canvas:     chart.Style{FillColor: drawing.ColorFromHex(palette.Background)},
		XAxis:      chart.XAxis{Style: chart.Hidden()},
		YAxis:      chart.YAxis{Style: chart.Hidden()},
		Series: []chart.Series{
			chart.ContinuousSeries{
				XValues: []float64{0, 1},
				YValues: []float64{0, 1},
				Style:   chart.Style{StrokeColor: drawing.ColorTransparent},
			},
		},
		Elements: []chart.Renderable{
			func(r chart.Renderer, cb chart.Box, _ chart.Style) {
				r.SetFontColor(drawing.ColorFromHex(palette.Text))
				r.SetFontSize(12.0)
				tb := r.MeasureText(noHistoryMessage)
				r.Text(noHistoryMessage, (cb.Width()-tb.Width())/2, (cb.Height()+tb.Height())/2)
			},
		},
	}
	buf := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buf); err != nil {
		return nil, fmt.Errorf("failed to render placeholder: %w", err)
	}
	return buf.Bytes(), nil
}
