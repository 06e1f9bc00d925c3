package stats

import (
	"bytes"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ChartPalette holds #RRGGBB colours for the leaderboard chart.
type ChartPalette struct {
	Background string
	Text       string
	Bar        string
	// TeamColors overrides Bar per badge team.
	TeamColors map[string]string
}

func DefaultChartPalette() ChartPalette {
	return ChartPalette{
		Background: "#ffffff",
		Text:       "#111827",
		Bar:        "#2563eb",
	}
}

// MaxChartBars caps how many leaderboard rows are drawn.
const MaxChartBars = 10

// RenderChart draws the top of the leaderboard as a PNG bar chart of totals. Rows with
// no headline count are left out; when none remain a placeholder image is returned.
func RenderChart(entries []Entry, palette ChartPalette) ([]byte, error) {
	bars := make([]chart.Value, 0, MaxChartBars)
	maxTotal := 0
	for _, entry := range entries {
		if len(bars) == MaxChartBars {
			break
		}
		if entry.Total <= 0 {
			continue
		}
		color := palette.Bar
		if teamColor, ok := palette.TeamColors[entry.BadgeTeam()]; ok {
			color = teamColor
		}
		bars = append(bars, chart.Value{
			Label: entry.Identity.Name,
			Value: float64(entry.Total),
			Style: chart.Style{
				FillColor:   hexColor(color),
				StrokeColor: hexColor(color),
				StrokeWidth: 1,
			},
		})
		if entry.Total > maxTotal {
			maxTotal = entry.Total
		}
	}
	if len(bars) == 0 {
		return renderNoDataPlaceholder(palette)
	}

	graph := chart.BarChart{
		Width:    960,
		Height:   480,
		BarWidth: 60,
		Background: chart.Style{
			FillColor: hexColor(palette.Background),
			Padding: chart.Box{
				Top:    24,
				Bottom: 40,
			},
		},
		Canvas: chart.Style{
			FillColor: hexColor(palette.Background),
		},
		XAxis: chart.Style{
			FontColor: hexColor(palette.Text),
			FontSize:  8,
		},
		YAxis: chart.YAxis{
			Style: chart.Style{
				FontColor: hexColor(palette.Text),
			},
			Range: &chart.ContinuousRange{
				Min: 0,
				Max: float64(maxTotal + 1),
			},
		},
		Bars: bars,
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

func renderNoDataPlaceholder(palette ChartPalette) ([]byte, error) {
	const (
		width  = 400
		height = 200
		msg    = "Aucune participation enregistrée"
	)

	graph := chart.Chart{
		Width:  width,
		Height: height,
		Background: chart.Style{
			FillColor: hexColor(palette.Background),
		},
		Canvas: chart.Style{
			FillColor: hexColor(palette.Background),
		},
		XAxis: chart.XAxis{Style: chart.Style{Hidden: true}},
		YAxis: chart.YAxis{Style: chart.Style{Hidden: true}},
		// Chart refuses to render without a series, so draw an invisible one.
		Series: []chart.Series{
			chart.ContinuousSeries{
				Style:   chart.Style{Hidden: true},
				XValues: []float64{0, 1},
				YValues: []float64{0, 1},
			},
		},
		Elements: []chart.Renderable{
			func(r chart.Renderer, cb chart.Box, chartDefaults chart.Style) {
				r.SetFontColor(hexColor(palette.Text))
				r.SetFontSize(12.0)
				tb := r.MeasureText(msg)
				x := (cb.Width() - tb.Width()) / 2
				y := (cb.Height() + tb.Height()) / 2
				r.Text(msg, x, y)
			},
		},
	}
	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

func hexColor(value string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(strings.TrimSpace(value), "#"))
}
