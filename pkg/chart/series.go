package chart

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/example/ledgerview/pkg/account"
)

// DefaultPoints is the length of a balance series when none is requested
const DefaultPoints = 7

// BalanceSeries reconstructs the last points balances of acc, oldest first,
// by walking back from its current balance through entries.
//
// Entries touching the account are replayed from balance minus their sum.
// When none touch it, the last points entries overall are replayed instead.
// Short histories are left-padded with the starting balance, so the result
// always holds exactly points values.
func BalanceSeries(acc account.Account, entries []Entry, points int) []float64 {
	if points <= 0 {
		points = DefaultPoints
	}
	balance := decimal.NewFromFloat(acc.Balance)

	if len(entries) == 0 {
		flat := round(balance.Div(decimal.NewFromInt(int64(points))), 0)
		return repeat(flat, points)
	}

	sorted := byDate(entries, time.Now())

	var matched []datedEntry
	for _, e := range sorted {
		if touches(e.Entry, acc.Number) {
			matched = append(matched, e)
		}
	}
	if len(matched) > 0 {
		return replay(balance, matched, points)
	}

	if len(sorted) > points {
		sorted = sorted[len(sorted)-points:]
	}
	return replay(balance, sorted, points)
}

// replay starts from balance minus the sum of entries and accumulates them in
// order, rounding each running value to cents.
func replay(balance decimal.Decimal, entries []datedEntry, points int) []float64 {
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(decimal.NewFromFloat(e.Amount))
	}
	start := balance.Sub(total)

	series := make([]float64, 0, max(points, len(entries)))
	for i := 0; i < points-len(entries); i++ {
		series = append(series, round(start, 2))
	}
	running := start
	for _, e := range entries {
		running = running.Add(decimal.NewFromFloat(e.Amount))
		series = append(series, round(running, 2))
	}
	return series[len(series)-points:]
}

func repeat(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}
