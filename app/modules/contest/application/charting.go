package contestservice

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var (
	chartBackground = drawing.Color{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	chartLine       = drawing.Color{R: 0x2b, G: 0x6c, B: 0xb0, A: 0xff}
	chartDot        = drawing.Color{R: 0xd4, G: 0xa0, B: 0x17, A: 0xff}
	chartText       = drawing.Color{R: 0x33, G: 0x33, B: 0x33, A: 0xff}
)

// RenderVotesChart produces a PNG line chart of daily ballot counts for the
// admin dashboard.
func (s *ContestService) RenderVotesChart(ctx context.Context, contestID int64) ([]byte, error) {
	ctx, span := s.tracer.Start(ctx, "ContestService.RenderVotesChart")
	defer span.End()

	if _, err := s.repo.GetContestByID(ctx, contestID); err != nil {
		return nil, err
	}

	days, err := s.tally.VotesByDay(ctx, contestID)
	if err != nil {
		return nil, fmt.Errorf("failed to load daily tallies: %w", err)
	}
	if len(days) < 2 {
		return renderNoDataPlaceholder()
	}

	xValues := make([]time.Time, len(days))
	yValues := make([]float64, len(days))
	for i, d := range days {
		xValues[i] = d.Day
		yValues[i] = float64(d.Count)
	}

	mainSeries := chart.TimeSeries{
		Name:    "Votes per day",
		XValues: xValues,
		YValues: yValues,
		Style: chart.Style{
			StrokeColor: chartLine,
			StrokeWidth: 2,
			DotWidth:    4,
			DotColor:    chartDot,
		},
	}

	graph := chart.Chart{
		Width:  800,
		Height: 400,
		Background: chart.Style{
			FillColor: chartBackground,
		},
		Canvas: chart.Style{
			FillColor: chartBackground,
		},
		XAxis: chart.XAxis{
			Name:           "Date",
			ValueFormatter: chart.TimeValueFormatterWithFormat("2006-01-02"),
			Style: chart.Style{
				FontColor: chartText,
			},
		},
		YAxis: chart.YAxis{
			Name: "Votes",
			Style: chart.Style{
				FontColor: chartText,
			},
		},
		Series: []chart.Series{mainSeries},
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

func renderNoDataPlaceholder() ([]byte, error) {
	const (
		width  = 400
		height = 200
		msg    = "Not enough voting data yet"
	)

	graph := chart.Chart{
		Width:  width,
		Height: height,
		Background: chart.Style{
			FillColor: chartBackground,
		},
		Canvas: chart.Style{
			FillColor: chartBackground,
		},
		Elements: []chart.Renderable{
			func(r chart.Renderer, cb chart.Box, chartDefaults chart.Style) {
				r.SetFontColor(chartText)
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
