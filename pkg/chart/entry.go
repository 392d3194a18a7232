// Package chart derives the numeric series behind the dashboard charts from
// signed transaction entries and account snapshots.
package chart

import (
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/example/ledgerview/pkg/account"
	"github.com/example/ledgerview/pkg/transaction"
)

// Entry is one signed movement used for charting. Amount is positive when
// money enters the viewed account and negative when it leaves.
type Entry struct {
	ID              string  `json:"id,omitempty"`
	Date            string  `json:"date"`
	SenderAccount   string  `json:"senderAccount"`
	ReceiverAccount string  `json:"receiverAccount"`
	Amount          float64 `json:"amount"`
}

// EntriesFromRaw builds chart entries from API records. Account fields carry
// the raw account numbers and the amount is signed by the direction inferred
// for perspectiveID. Without a perspective the backend sign is kept.
func EntriesFromRaw(raws []transaction.Raw, perspectiveID string, now time.Time) []Entry {
	out := make([]Entry, 0, len(raws))
	for _, r := range raws {
		amount := r.Montant
		if perspectiveID != "" {
			t := transaction.Classify(r.TransactionType)
			amount = math.Abs(amount)
			if transaction.InferDirection(t, refID(r.CompteSource), refID(r.CompteDestination), perspectiveID) == transaction.Debit {
				amount = -amount
			}
		}
		out = append(out, Entry{
			ID:              r.ID,
			Date:            transaction.ResolveDate(r.DateCreation, r.DateUpdate, now),
			SenderAccount:   refNumber(r.CompteSource),
			ReceiverAccount: refNumber(r.CompteDestination),
			Amount:          amount,
		})
	}
	return out
}

// ForAccount keeps the entries sent from or received by acc.
// A nil account keeps everything.
func ForAccount(entries []Entry, acc *account.Account) []Entry {
	if acc == nil {
		return entries
	}
	var out []Entry
	for _, e := range entries {
		if touches(e, acc.Number) {
			out = append(out, e)
		}
	}
	return out
}

func touches(e Entry, number string) bool {
	return number != "" && (e.SenderAccount == number || e.ReceiverAccount == number)
}

type datedEntry struct {
	Entry
	at time.Time
}

// byDate parses every entry date and returns the entries oldest first.
// Entries on the same instant keep their input order.
func byDate(entries []Entry, now time.Time) []datedEntry {
	out := make([]datedEntry, len(entries))
	for i, e := range entries {
		out[i] = datedEntry{Entry: e, at: transaction.ParseDate(e.Date, now)}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].at.Before(out[j].at) })
	return out
}

func round(v decimal.Decimal, places int32) float64 {
	return v.Round(places).InexactFloat64()
}

func refID(ref *transaction.AccountRef) string {
	if ref == nil {
		return ""
	}
	return ref.ID
}

func refNumber(ref *transaction.AccountRef) string {
	if ref == nil {
		return ""
	}
	return ref.Numero
}
