package auctionservice

import (
	"bytes"
	"sort"
	"time"

	auctiondb "github.com/Black-And-White-Club/gala-night/app/modules/auction/infrastructure/repositories"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ChartPalette holds the colors used for bid charts.
type ChartPalette struct {
	Background  drawing.Color
	PrimaryLine drawing.Color
	AccentLine  drawing.Color
	TextColor   drawing.Color
}

// DefaultPalette is black and gold on white.
var DefaultPalette = ChartPalette{
	Background:  drawing.ColorWhite,
	PrimaryLine: drawing.Color{R: 20, G: 20, B: 20, A: 255},
	AccentLine:  drawing.Color{R: 201, G: 162, B: 39, A: 255},
	TextColor:   drawing.Color{R: 40, G: 40, B: 40, A: 255},
}

// RenderBidHistory draws the item's price over time as a PNG, starting from the
// starting bid at creation. Bids may arrive in any order.
func RenderBidHistory(item *auctiondb.AuctionItem, bids []auctiondb.Bid, palette ChartPalette) ([]byte, error) {
	if len(bids) == 0 {
		return renderNoBidsPlaceholder(palette)
	}

	history := make([]auctiondb.Bid, len(bids))
	copy(history, bids)
	sort.SliceStable(history, func(i, j int) bool {
		return history[i].CreatedAt.Before(history[j].CreatedAt)
	})

	start := item.CreatedAt
	if !start.Before(history[0].CreatedAt) {
		start = history[0].CreatedAt.Add(-time.Minute)
	}

	xValues := make([]time.Time, 0, len(history)+1)
	yValues := make([]float64, 0, len(history)+1)
	xValues = append(xValues, start)
	yValues = append(yValues, item.StartingBid)

	maxAmount := item.StartingBid
	for _, b := range history {
		xValues = append(xValues, b.CreatedAt)
		yValues = append(yValues, b.Amount)
		if b.Amount > maxAmount {
			maxAmount = b.Amount
		}
	}

	last := xValues[len(xValues)-1]
	if !last.After(start) {
		last = start.Add(time.Minute)
	}

	series := chart.TimeSeries{
		Name:    item.Title,
		XValues: xValues,
		YValues: yValues,
		Style: chart.Style{
			StrokeColor: palette.PrimaryLine,
			StrokeWidth: 2,
			DotWidth:    4,
			DotColor:    palette.AccentLine,
		},
	}

	graph := chart.Chart{
		Title:  item.Title,
		Width:  800,
		Height: 400,
		TitleStyle: chart.Style{
			FontColor: palette.TextColor,
		},
		Background: chart.Style{
			FillColor: palette.Background,
			Padding:   chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		Canvas: chart.Style{
			FillColor: palette.Background,
		},
		XAxis: chart.XAxis{
			Name:           "Time",
			ValueFormatter: chart.TimeValueFormatterWithFormat("3:04pm"),
			Style:          chart.Style{FontColor: palette.TextColor},
			Range: &chart.ContinuousRange{
				Min: chart.TimeToFloat64(start),
				Max: chart.TimeToFloat64(last),
			},
		},
		YAxis: chart.YAxis{
			Name:  "Bid ($)",
			Style: chart.Style{FontColor: palette.TextColor},
			Range: &chart.ContinuousRange{
				Min: 0,
				Max: maxAmount*1.1 + 1,
			},
		},
		Series: []chart.Series{series},
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

func renderNoBidsPlaceholder(palette ChartPalette) ([]byte, error) {
	const (
		width  = 400
		height = 200
		msg    = "No bids yet"
	)

	graph := chart.Chart{
		Width:  width,
		Height: height,
		Background: chart.Style{
			FillColor: palette.Background,
		},
		Canvas: chart.Style{
			FillColor: palette.Background,
		},
		XAxis: chart.XAxis{Style: chart.Hidden()},
		YAxis: chart.YAxis{Style: chart.Hidden()},
		// go-chart refuses to render without a series
		Series: []chart.Series{
			chart.ContinuousSeries{
				Style:   chart.Hidden(),
				XValues: []float64{0, 1},
				YValues: []float64{0, 0},
			},
		},
		Elements: []chart.Renderable{
			func(r chart.Renderer, cb chart.Box, _ chart.Style) {
				r.SetFontColor(palette.TextColor)
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
