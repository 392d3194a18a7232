package input

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/example/ledgerview/pkg/account"
	"github.com/example/ledgerview/pkg/transaction"
)

var (
	ErrUnsupportedPayload = errors.New("unsupported payload")
	ErrGraphQL            = errors.New("graphql error")
)

var (
	transactionFields  = []string{"transactions", "getTransactions"}
	accountListFields  = []string{"comptesParClientId", "comptes"}
	singleAccountField = "accountById"
)

type envelope struct {
	Data   map[string]json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// DecodeTransactions reads a JSON array of transactions or a GraphQL
// response carrying one under data.transactions or data.getTransactions.
func DecodeTransactions(r io.Reader) ([]transaction.Raw, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read transactions: %w", err)
	}
	body = bytes.TrimSpace(body)

	if isArray(body) {
		var raws []transaction.Raw
		if err := json.Unmarshal(body, &raws); err != nil {
			return nil, fmt.Errorf("failed to decode transactions: %w", err)
		}
		return raws, nil
	}

	env, err := decodeEnvelope(body)
	if err != nil {
		return nil, err
	}
	for _, field := range transactionFields {
		msg, ok := env.Data[field]
		if !ok {
			continue
		}
		var raws []transaction.Raw
		if err := json.Unmarshal(msg, &raws); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", field, err)
		}
		return raws, nil
	}
	return nil, fmt.Errorf("%w: no transaction list in response", ErrUnsupportedPayload)
}

// DecodeAccounts reads account snapshots from a JSON array, a single JSON
// object, or a GraphQL response (comptesParClientId, comptes, accountById).
func DecodeAccounts(r io.Reader) ([]account.Compte, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read accounts: %w", err)
	}
	body = bytes.TrimSpace(body)

	if isArray(body) {
		var comptes []account.Compte
		if err := json.Unmarshal(body, &comptes); err != nil {
			return nil, fmt.Errorf("failed to decode accounts: %w", err)
		}
		return comptes, nil
	}

	env, err := decodeEnvelope(body)
	if err != nil {
		return nil, err
	}
	if env.Data == nil {
		var c account.Compte
		if err := json.Unmarshal(body, &c); err != nil {
			return nil, fmt.Errorf("failed to decode account: %w", err)
		}
		if c.ID == "" && c.Numero == "" {
			return nil, fmt.Errorf("%w: object is not an account", ErrUnsupportedPayload)
		}
		return []account.Compte{c}, nil
	}
	for _, field := range accountListFields {
		msg, ok := env.Data[field]
		if !ok {
			continue
		}
		var comptes []account.Compte
		if err := json.Unmarshal(msg, &comptes); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", field, err)
		}
		return comptes, nil
	}
	if msg, ok := env.Data[singleAccountField]; ok {
		var c account.Compte
		if err := json.Unmarshal(msg, &c); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", singleAccountField, err)
		}
		return []account.Compte{c}, nil
	}
	return nil, fmt.Errorf("%w: no account in response", ErrUnsupportedPayload)
}

// LoadTransactions decodes the transactions stored at path
func LoadTransactions(path string) ([]transaction.Raw, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open transactions file: %w", err)
	}
	defer f.Close()
	return DecodeTransactions(f)
}

// LoadAccounts decodes the account snapshots stored at path
func LoadAccounts(path string) ([]account.Compte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open accounts file: %w", err)
	}
	defer f.Close()
	return DecodeAccounts(f)
}

func isArray(body []byte) bool {
	return len(body) > 0 && body[0] == '['
}

func decodeEnvelope(body []byte) (envelope, error) {
	var env envelope
	if len(body) == 0 || body[0] != '{' {
		return env, fmt.Errorf("%w: expected a JSON array or object", ErrUnsupportedPayload)
	}
	if err := json.Unmarshal(body, &env); err != nil {
		return env, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(env.Errors) > 0 {
		msgs := make([]string, 0, len(env.Errors))
		for _, e := range env.Errors {
			msgs = append(msgs, e.Message)
		}
		return env, fmt.Errorf("%w: %s", ErrGraphQL, strings.Join(msgs, "; "))
	}
	return env, nil
}
