package analytics

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// DailyChart turns daily sales into a two-series line chart
func DailyChart(daily []DailySales) ChartData {
	labels := make([]string, len(daily))
	revenue := make([]float64, len(daily))
	orders := make([]float64, len(daily))

	for i, d := range daily {
		labels[i] = d.Day
		revenue[i] = d.Revenue.InexactFloat64()
		orders[i] = float64(d.Orders)
	}

	return ChartData{
		Type:   "line",
		Labels: labels,
		Series: []ChartSeries{
			{Name: "Revenue", Values: revenue},
			{Name: "Orders", Values: orders},
		},
	}
}

// StatCards compares current with previous for the dashboard headline
func StatCards(current, previous Summary) []StatCard {
	const label = "vs previous period"
	return []StatCard{
		card("Revenue", current.Revenue.StringFixed(2), current.Revenue, previous.Revenue, label),
		card("Orders", fmt.Sprintf("%d", current.Orders), decimal.NewFromInt(current.Orders), decimal.NewFromInt(previous.Orders), label),
		card("Average order", current.AverageOrder.StringFixed(2), current.AverageOrder, previous.AverageOrder, label),
		card("Discounts given", current.Discounts.StringFixed(2), current.Discounts, previous.Discounts, label),
	}
}

func card(title, value string, current, previous decimal.Decimal, label string) StatCard {
	c := StatCard{Title: title, Value: value, ChangeLabel: label, Trend: "neutral"}
	if !previous.IsPositive() {
		return c
	}

	change := current.Sub(previous).Div(previous).Mul(decimal.NewFromInt(100)).Round(1)
	c.Change = change.InexactFloat64()
	switch change.Sign() {
	case 1:
		c.Trend = "up"
	case -1:
		c.Trend = "down"
	}
	return c
}
