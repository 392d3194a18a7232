package chart

import (
	"sort"
	"strconv"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/example/ledgerview/pkg/account"
	"github.com/example/ledgerview/pkg/transaction"
)

const (
	RevenueLabel = "Revenus"
	ExpenseLabel = "Dépenses"
)

// frenchShortMonths follows the fr-FR abbreviated month names
var frenchShortMonths = [12]string{
	"janv.", "févr.", "mars", "avr.", "mai", "juin",
	"juil.", "août", "sept.", "oct.", "nov.", "déc.",
}

// Slice is one labelled segment of the donut chart
type Slice struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// MonthlySeries feeds the stacked income/expense bar chart
type MonthlySeries struct {
	Categories []string  `json:"categories"`
	Income     []float64 `json:"income"`
	Expenses   []float64 `json:"expenses"`
}

// PlaceholderMonthly is shown when there is nothing to bucket
func PlaceholderMonthly() MonthlySeries {
	return MonthlySeries{
		Categories: []string{"Jan", "Feb", "Mar", "Apr", "May"},
		Income:     []float64{500, 700, 650, 800, 720},
		Expenses:   []float64{300, 250, 420, 310, 380},
	}
}

// Donut splits entries into revenue (non-negative amounts) and expense
// (absolute negative amounts). A non-nil account restricts the entries to it.
func Donut(entries []Entry, acc *account.Account) []Slice {
	revenue, expense := decimal.Zero, decimal.Zero
	for _, e := range ForAccount(entries, acc) {
		amount := decimal.NewFromFloat(e.Amount)
		if amount.Sign() >= 0 {
			revenue = revenue.Add(amount)
		} else {
			expense = expense.Add(amount.Abs())
		}
	}
	return []Slice{
		{Label: RevenueLabel, Value: round(revenue, 2)},
		{Label: ExpenseLabel, Value: round(expense, 2)},
	}
}

type monthBucket struct {
	label   string
	first   time.Time
	income  decimal.Decimal
	expense decimal.Decimal
}

// Monthly groups entries by calendar month, oldest month first. Entries with
// an unreadable date are left out. Without any bucket the placeholder
// series is returned.
func Monthly(entries []Entry, acc *account.Account) MonthlySeries {
	now := time.Now()
	index := make(map[string]*monthBucket)
	var buckets []*monthBucket

	for _, e := range ForAccount(entries, acc) {
		at := transaction.ParseDate(e.Date, now)
		if at.IsZero() {
			continue
		}
		label := MonthLabel(at)
		b, ok := index[label]
		if !ok {
			b = &monthBucket{label: label, first: at}
			index[label] = b
			buckets = append(buckets, b)
		}
		amount := decimal.NewFromFloat(e.Amount)
		if amount.Sign() >= 0 {
			b.income = b.income.Add(amount)
		} else {
			b.expense = b.expense.Add(amount.Abs())
		}
	}

	if len(buckets) == 0 {
		return PlaceholderMonthly()
	}

	sort.SliceStable(buckets, func(i, j int) bool { return buckets[i].first.Before(buckets[j].first) })
	series := MonthlySeries{
		Categories: make([]string, 0, len(buckets)),
		Income:     make([]float64, 0, len(buckets)),
		Expenses:   make([]float64, 0, len(buckets)),
	}
	for _, b := range buckets {
		series.Categories = append(series.Categories, b.label)
		series.Income = append(series.Income, round(b.income, 2))
		series.Expenses = append(series.Expenses, round(b.expense, 2))
	}
	return series
}

// MonthLabel formats t as a capitalized French short month and year,
// e.g. "Janv. 2024".
func MonthLabel(t time.Time) string {
	return capitalize(frenchShortMonths[t.Month()-1] + " " + strconv.Itoa(t.Year()))
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
