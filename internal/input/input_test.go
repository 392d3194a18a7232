package input

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pagedResponse = `{
  "data": {
    "transactions": [
      {
        "id": "101",
        "montant": -1500.5,
        "dateCreation": "2024-03-21T10:00:00",
        "transactionType": "VIREMENT",
        "compteSource": {
          "id": "1",
          "numero": "SN0001",
          "proprietaire": {"id": "7", "nom": "Diop", "prenom": "Awa", "identifiant": "CLI-7"}
        },
        "compteDestination": {"id": "2", "numero": "SN0002"}
      }
    ]
  }
}`

func TestDecodeTransactions_Envelope(t *testing.T) {
	raws, err := DecodeTransactions(strings.NewReader(pagedResponse))
	require.NoError(t, err)
	require.Len(t, raws, 1)

	r := raws[0]
	assert.Equal(t, "101", r.ID)
	assert.Equal(t, -1500.5, r.Montant)
	assert.Equal(t, "VIREMENT", r.TransactionType)
	require.NotNil(t, r.CompteSource)
	assert.Equal(t, "Awa", r.CompteSource.Proprietaire.Prenom)
	require.NotNil(t, r.CompteDestination)
	assert.Nil(t, r.CompteDestination.Proprietaire)
}

func TestDecodeTransactions_ByAccountAndArray(t *testing.T) {
	raws, err := DecodeTransactions(strings.NewReader(`{"data":{"getTransactions":[{"id":"1","montant":5}]}}`))
	require.NoError(t, err)
	assert.Len(t, raws, 1)

	raws, err = DecodeTransactions(strings.NewReader(` [{"id":"1"},{"id":"2"}] `))
	require.NoError(t, err)
	assert.Len(t, raws, 2)
}

func TestDecodeTransactions_Errors(t *testing.T) {
	_, err := DecodeTransactions(strings.NewReader(`{"data":{"clients":[]}}`))
	assert.ErrorIs(t, err, ErrUnsupportedPayload)

	_, err = DecodeTransactions(strings.NewReader(`{"errors":[{"message":"Unauthorized"}],"data":null}`))
	assert.ErrorIs(t, err, ErrGraphQL)
	assert.Contains(t, err.Error(), "Unauthorized")

	_, err = DecodeTransactions(strings.NewReader(`"nope"`))
	assert.ErrorIs(t, err, ErrUnsupportedPayload)

	_, err = DecodeTransactions(strings.NewReader(`[{"id": 1,}]`))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode transactions")
}

func TestDecodeAccounts(t *testing.T) {
	comptes, err := DecodeAccounts(strings.NewReader(`{"data":{"comptesParClientId":[{"id":"1","numero":"SN0001","solde":700,"typeCompte":"COURANT"}]}}`))
	require.NoError(t, err)
	require.Len(t, comptes, 1)
	assert.Equal(t, 700.0, comptes[0].Solde)

	comptes, err = DecodeAccounts(strings.NewReader(`{"data":{"accountById":{"id":"9","numero":"SN0009","solde":-3}}}`))
	require.NoError(t, err)
	require.Len(t, comptes, 1)
	assert.Equal(t, "9", comptes[0].ID)

	comptes, err = DecodeAccounts(strings.NewReader(`{"id":"4","numero":"SN0004","solde":1}`))
	require.NoError(t, err)
	require.Len(t, comptes, 1)
	assert.Equal(t, "SN0004", comptes[0].Numero)

	comptes, err = DecodeAccounts(strings.NewReader(`[{"id":"1"},{"id":"2"}]`))
	require.NoError(t, err)
	assert.Len(t, comptes, 2)

	_, err = DecodeAccounts(strings.NewReader(`{"foo":"bar"}`))
	assert.ErrorIs(t, err, ErrUnsupportedPayload)
}

func TestLoadFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tx.json")
	require.NoError(t, os.WriteFile(path, []byte(pagedResponse), 0644))

	raws, err := LoadTransactions(path)
	require.NoError(t, err)
	assert.Len(t, raws, 1)

	_, err = LoadAccounts(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open accounts file")
}
