package transaction

import (
	"fmt"
	"strings"
)

var backendTypes = map[string]Type{
	"DEPOT":         Deposit,
	"RETRAIT":       Withdrawal,
	"VIREMENT":      Transfer,
	"PAIEMENT":      Payment,
	"REMBOURSEMENT": Refund,
}

// Classify maps a backend transaction tag onto Type.
// Unknown and empty tags are treated as transfers.
func Classify(tag string) Type {
	if t, ok := backendTypes[strings.ToUpper(strings.TrimSpace(tag))]; ok {
		return t
	}
	return Transfer
}

// InferDirection derives CREDIT or DEBIT for a transaction as seen from the
// perspective account. A transfer touching neither side is reported as DEBIT.
func InferDirection(t Type, sourceID, destinationID, perspectiveID string) Direction {
	switch t {
	case Deposit, Refund:
		return Credit
	case Withdrawal, Payment:
		return Debit
	}
	if destinationID != "" && destinationID == perspectiveID {
		return Credit
	}
	// outgoing, or neither side is the perspective account
	return Debit
}

// ParseDirection reads "credit" or "debit" in any case
func ParseDirection(s string) (Direction, error) {
	switch d := Direction(strings.ToUpper(strings.TrimSpace(s))); d {
	case Credit, Debit:
		return d, nil
	}
	return "", fmt.Errorf("unknown direction %q", s)
}
