package transaction

// Type is the closed set of transaction categories shown in the dashboard
type Type string

const (
	Deposit    Type = "DEPOSIT"
	Withdrawal Type = "WITHDRAWAL"
	Transfer   Type = "TRANSFER"
	Payment    Type = "PAYMENT"
	Refund     Type = "REFUND"
)

// Direction tells whether a transaction adds to or takes from the viewed account
type Direction string

const (
	Credit Direction = "CREDIT"
	Debit  Direction = "DEBIT"
)

// Owner is the account holder as returned by the banking API
type Owner struct {
	ID          string `json:"id,omitempty"`
	Nom         string `json:"nom,omitempty"`
	Prenom      string `json:"prenom,omitempty"`
	Identifiant string `json:"identifiant,omitempty"`
	Email       string `json:"email,omitempty"`
}

// AccountRef is the account reference embedded in a raw transaction
type AccountRef struct {
	ID           string `json:"id,omitempty"`
	Numero       string `json:"numero,omitempty"`
	TypeCompte   string `json:"typeCompte,omitempty"`
	Proprietaire *Owner `json:"proprietaire,omitempty"`
}

// Raw is a transaction record as fetched from the GraphQL API.
// Either account reference may be nil (deposits have no source, withdrawals
// no destination).
type Raw struct {
	ID                string      `json:"id"`
	Montant           float64     `json:"montant"`
	DateCreation      string      `json:"dateCreation,omitempty"`
	DateUpdate        string      `json:"dateUpdate,omitempty"`
	TransactionType   string      `json:"transactionType,omitempty"`
	CompteSource      *AccountRef `json:"compteSource,omitempty"`
	CompteDestination *AccountRef `json:"compteDestination,omitempty"`
}

// Normalized is a display-ready transaction seen from one account
type Normalized struct {
	ID              string    `json:"id"`
	Date            string    `json:"date"`
	Sender          string    `json:"sender"`
	Receiver        string    `json:"receiver"`
	SenderAccount   string    `json:"senderAccount"`
	ReceiverAccount string    `json:"receiverAccount"`
	Label           string    `json:"label"`
	AccountType     string    `json:"accountType"`
	Type            Type      `json:"type"`
	Amount          float64   `json:"amount"`
	Direction       Direction `json:"direction"`
}

// Signed returns the amount with the sign implied by the direction
func (n Normalized) Signed() float64 {
	if n.Direction == Debit {
		return -n.Amount
	}
	return n.Amount
}

// List holds a collection of normalized transactions
type List struct {
	Transactions []Normalized `json:"transactions"`
	Total        int          `json:"total"`
	Account      string       `json:"account"`
}

// Add appends a transaction to the list
func (l *List) Add(n Normalized) {
	l.Transactions = append(l.Transactions, n)
	l.Total = len(l.Transactions)
}

// ByDirection returns a new list holding the transactions flowing in the
// given direction
func (l *List) ByDirection(d Direction) *List {
	filtered := &List{Account: l.Account, Transactions: []Normalized{}}
	for _, n := range l.Transactions {
		if n.Direction == d {
			filtered.Add(n)
		}
	}
	return filtered
}
