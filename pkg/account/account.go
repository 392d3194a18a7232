package account

import (
	"github.com/shopspring/decimal"

	"github.com/example/ledgerview/pkg/transaction"
)

// State is the display status derived from an account balance
type State string

const (
	Active    State = "Actif"
	Blocked   State = "Bloqué"
	Suspended State = "Suspendu"
)

// DefaultCurrency is attached to accounts when no currency is configured
const DefaultCurrency = "FCFA"

// DefaultTypeLabels maps backend account types to display labels
var DefaultTypeLabels = map[string]string{
	"COURANT":   "Compte courant",
	"EPARGNE":   "Compte épargne",
	"LIVRET":    "Livret A",
	"PLACEMENT": "Placement Immo",
}

// Compte is an account snapshot as returned by the GraphQL API
type Compte struct {
	ID           string             `json:"id"`
	Numero       string             `json:"numero"`
	Solde        float64            `json:"solde"`
	TypeCompte   string             `json:"typeCompte,omitempty"`
	DateCreation string             `json:"dateCreation,omitempty"`
	Libelle      string             `json:"libelle,omitempty"`
	Proprietaire *transaction.Owner `json:"proprietaire,omitempty"`
}

// Account is the chart-facing view of a Compte
type Account struct {
	ID       string  `json:"id"`
	Type     string  `json:"type"`
	State    State   `json:"state"`
	Balance  float64 `json:"balance"`
	Number   string  `json:"number"`
	Currency string  `json:"currency"`
}

// Mapper converts API snapshots into accounts
type Mapper struct {
	TypeLabels map[string]string
	Currency   string
}

// FromCompte maps c with the default labels and currency
func FromCompte(c Compte) Account {
	var m Mapper
	return m.Map(c)
}

// Map converts a single snapshot. Unknown account types keep their raw value.
func (m Mapper) Map(c Compte) Account {
	labels := m.TypeLabels
	if labels == nil {
		labels = DefaultTypeLabels
	}
	label, ok := labels[c.TypeCompte]
	if !ok || label == "" {
		label = c.TypeCompte
	}
	currency := m.Currency
	if currency == "" {
		currency = DefaultCurrency
	}
	return Account{
		ID:       c.ID,
		Type:     label,
		State:    StateOf(c.Solde),
		Balance:  c.Solde,
		Number:   c.Numero,
		Currency: currency,
	}
}

// MapAll converts every snapshot in order
func (m Mapper) MapAll(comptes []Compte) []Account {
	out := make([]Account, 0, len(comptes))
	for _, c := range comptes {
		out = append(out, m.Map(c))
	}
	return out
}

// StateOf returns Actif for a positive balance, Suspendu for zero and
// Bloqué for a negative balance.
func StateOf(balance float64) State {
	switch {
	case balance > 0:
		return Active
	case balance == 0:
		return Suspended
	default:
		return Blocked
	}
}

// TotalBalance sums the balances of accounts
func TotalBalance(accounts []Account) float64 {
	total := decimal.Zero
	for _, a := range accounts {
		total = total.Add(decimal.NewFromFloat(a.Balance))
	}
	return total.InexactFloat64()
}

// Find returns the account with the given id
func Find(accounts []Account, id string) (Account, bool) {
	for _, a := range accounts {
		if a.ID == id {
			return a, true
		}
	}
	return Account{}, false
}
