package transaction

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// DefaultPageSize is the number of rows per table page
const DefaultPageSize = 5

var typeFilterAliases = map[string]Type{
	"deposit":       Deposit,
	"depot":         Deposit,
	"withdrawal":    Withdrawal,
	"retrait":       Withdrawal,
	"transfer":      Transfer,
	"virement":      Transfer,
	"payment":       Payment,
	"paiement":      Payment,
	"refund":        Refund,
	"remboursement": Refund,
}

// Relevant keeps the raw records whose source or destination is accountID
func Relevant(raws []Raw, accountID string) []Raw {
	if accountID == "" {
		return nil
	}
	var out []Raw
	for _, r := range raws {
		if refID(r.CompteSource) == accountID || refID(r.CompteDestination) == accountID {
			out = append(out, r)
		}
	}
	return out
}

// Filter narrows the transaction table. Zero fields do not filter.
type Filter struct {
	Type  string
	From  time.Time
	To    time.Time
	Query string
}

// Apply returns the transactions matching every set criterion
func (f Filter) Apply(list []Normalized) []Normalized {
	q := strings.ToLower(strings.TrimSpace(f.Query))
	typ := strings.ToLower(strings.TrimSpace(f.Type))

	var out []Normalized
	for _, n := range list {
		if !matchesType(n.Type, typ) {
			continue
		}
		if !f.From.IsZero() || !f.To.IsZero() {
			// rows with an unreadable date are never excluded by the range
			if date := ParseDate(n.Date, time.Now()); !date.IsZero() {
				day := dayOf(date)
				if !f.From.IsZero() && day.Before(dayOf(f.From)) {
					continue
				}
				if !f.To.IsZero() && day.After(dayOf(f.To)) {
					continue
				}
			}
		}
		if q != "" {
			hay := strings.ToLower(n.Sender + " " + n.Receiver + " " + n.Label + " " + n.AccountType)
			if !strings.Contains(hay, q) {
				continue
			}
		}
		out = append(out, n)
	}
	return out
}

func matchesType(t Type, filter string) bool {
	if filter == "" || filter == "all" {
		return true
	}
	if want, ok := typeFilterAliases[filter]; ok {
		return t == want
	}
	return strings.ToLower(string(t)) == filter
}

func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Sort orders list in place by column ("id", "date", "label" or "amount").
// Unknown columns sort by date. Equal rows keep their relative order.
// Text columns use French collation, ignore case and compare digit runs
// by value, so "TX-2" sorts before "TX-10".
func Sort(list []Normalized, column string, descending bool) {
	now := time.Now()
	coll := collate.New(language.French, collate.IgnoreCase, collate.Numeric)
	cmp := func(a, b Normalized) int {
		switch column {
		case "amount":
			return compareFloat(a.Amount, b.Amount)
		case "id":
			return coll.CompareString(a.ID, b.ID)
		case "label", "description":
			return coll.CompareString(a.Label, b.Label)
		default:
			return ParseDate(a.Date, now).Compare(ParseDate(b.Date, now))
		}
	}
	sort.SliceStable(list, func(i, j int) bool {
		c := cmp(list[i], list[j])
		if descending {
			return c > 0
		}
		return c < 0
	})
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Page is one page of the transaction table
type Page struct {
	Items      []Normalized `json:"items"`
	Page       int          `json:"page"`
	Size       int          `json:"size"`
	TotalPages int          `json:"totalPages"`
	TotalItems int          `json:"totalItems"`
}

// Paginate cuts list into pages of size and returns the 1-based page.
// TotalPages is never below one. Pages past the end are empty.
func Paginate(list []Normalized, page, size int) Page {
	if size <= 0 {
		size = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}
	n := len(list)
	total := n / size
	if n%size != 0 {
		total++
	}
	if total < 1 {
		total = 1
	}
	p := Page{Items: []Normalized{}, Page: page, Size: size, TotalPages: total, TotalItems: n}
	if n == 0 || page > total {
		return p
	}

	// page <= total keeps start below n
	start := (page - 1) * size
	end := start + min(size, n-start)
	p.Items = list[start:end]
	return p
}
