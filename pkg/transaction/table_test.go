package transaction

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tableFixture() []Normalized {
	return []Normalized{
		{ID: "TX-3", Date: "2024-03-03T09:00:00Z", Sender: "Awa Diop", Receiver: "Boutique Sandaga", Label: "Awa Diop → Boutique Sandaga", AccountType: "COURANT", Type: Payment, Amount: 40},
		{ID: "TX-1", Date: "01.03.2024", Sender: "—", Receiver: "Awa Diop", Label: "— → Awa Diop", Type: Deposit, Amount: 500},
		{ID: "TX-2", Date: "2024-03-02", Sender: "Awa Diop", Receiver: "Moussa Ndiaye", Label: "Awa Diop → Moussa Ndiaye", AccountType: "EPARGNE", Type: Transfer, Amount: 120},
		{ID: "TX-4", Date: "2024-03-05T18:45:00Z", Sender: "Awa Diop", Receiver: "—", Label: "Awa Diop → —", Type: Withdrawal, Amount: 60},
	}
}

func ids(list []Normalized) []string {
	out := make([]string, 0, len(list))
	for _, n := range list {
		out = append(out, n.ID)
	}
	return out
}

func TestRelevant(t *testing.T) {
	raws := []Raw{
		{ID: "a", CompteSource: &AccountRef{ID: "1"}},
		{ID: "b", CompteDestination: &AccountRef{ID: "1"}},
		{ID: "c", CompteSource: &AccountRef{ID: "2"}, CompteDestination: &AccountRef{ID: "3"}},
		{ID: "d"},
	}

	got := Relevant(raws, "1")
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "b", got[1].ID)

	assert.Empty(t, Relevant(raws, ""))
}

func TestFilter_Type(t *testing.T) {
	list := tableFixture()

	assert.Equal(t, []string{"TX-1"}, ids(Filter{Type: "depot"}.Apply(list)))
	assert.Equal(t, []string{"TX-1"}, ids(Filter{Type: "Deposit"}.Apply(list)))
	assert.Equal(t, []string{"TX-2"}, ids(Filter{Type: "virement"}.Apply(list)))
	assert.Equal(t, []string{"TX-4"}, ids(Filter{Type: "withdrawal"}.Apply(list)))
	assert.Len(t, Filter{Type: "all"}.Apply(list), 4)
	assert.Empty(t, Filter{Type: "fee"}.Apply(list))
}

func TestFilter_DateRangeIsInclusive(t *testing.T) {
	list := tableFixture()

	f := Filter{
		From: time.Date(2024, 3, 2, 23, 0, 0, 0, time.UTC),
		To:   time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC),
	}
	assert.Equal(t, []string{"TX-3", "TX-2"}, ids(f.Apply(list)))

	onlyFrom := Filter{From: time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)}
	assert.Equal(t, []string{"TX-4"}, ids(onlyFrom.Apply(list)))
}

func TestFilter_DateRangeKeepsUnreadableDates(t *testing.T) {
	list := append(tableFixture(), Normalized{ID: "TX-5", Date: "not a date", Type: Payment, Amount: 10})

	f := Filter{From: time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)}
	assert.Equal(t, []string{"TX-4", "TX-5"}, ids(f.Apply(list)))
}

func TestFilter_Query(t *testing.T) {
	list := tableFixture()

	assert.Equal(t, []string{"TX-2"}, ids(Filter{Query: "  MOUSSA "}.Apply(list)))
	assert.Equal(t, []string{"TX-2"}, ids(Filter{Query: "epargne"}.Apply(list)))
	assert.Len(t, Filter{Query: "awa"}.Apply(list), 4)
}

func TestSort(t *testing.T) {
	list := tableFixture()

	Sort(list, "date", false)
	assert.Equal(t, []string{"TX-1", "TX-2", "TX-3", "TX-4"}, ids(list))

	Sort(list, "date", true)
	assert.Equal(t, []string{"TX-4", "TX-3", "TX-2", "TX-1"}, ids(list))

	Sort(list, "amount", false)
	assert.Equal(t, []string{"TX-3", "TX-4", "TX-2", "TX-1"}, ids(list))

	Sort(list, "id", true)
	assert.Equal(t, []string{"TX-4", "TX-3", "TX-2", "TX-1"}, ids(list))
}

func TestSort_TextColumnsAreNumericAndLocaleAware(t *testing.T) {
	list := []Normalized{
		{ID: "TX-10", Label: "Loyer 12"},
		{ID: "tx-2", Label: "Loyer 2"},
		{ID: "TX-1", Label: "loyer 100"},
		{ID: "TX-3", Label: "Épargne"},
	}

	Sort(list, "id", false)
	assert.Equal(t, []string{"TX-1", "tx-2", "TX-3", "TX-10"}, ids(list))

	Sort(list, "id", true)
	assert.Equal(t, []string{"TX-10", "TX-3", "tx-2", "TX-1"}, ids(list))

	Sort(list, "label", false)
	assert.Equal(t, []string{"TX-3", "tx-2", "TX-10", "TX-1"}, ids(list))
}

func TestSort_StableOnTies(t *testing.T) {
	list := []Normalized{
		{ID: "b", Amount: 10},
		{ID: "a", Amount: 10},
		{ID: "c", Amount: 5},
	}
	Sort(list, "amount", false)
	assert.Equal(t, []string{"c", "b", "a"}, ids(list))
}

func TestPaginate(t *testing.T) {
	list := tableFixture()

	p := Paginate(list, 1, 3)
	assert.Equal(t, []string{"TX-3", "TX-1", "TX-2"}, ids(p.Items))
	assert.Equal(t, 2, p.TotalPages)
	assert.Equal(t, 4, p.TotalItems)

	p = Paginate(list, 2, 3)
	assert.Equal(t, []string{"TX-4"}, ids(p.Items))

	p = Paginate(list, 3, 3)
	assert.Empty(t, p.Items)

	p = Paginate(list, 5, 3)
	assert.Empty(t, p.Items)
	assert.Equal(t, 2, p.TotalPages)

	p = Paginate(nil, 0, 0)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultPageSize, p.Size)
	assert.Equal(t, 1, p.TotalPages)
	assert.NotNil(t, p.Items)
}

func TestPaginate_HugeValues(t *testing.T) {
	list := tableFixture()

	p := Paginate(list, 3, 1<<62)
	assert.Empty(t, p.Items)
	assert.Equal(t, 1, p.TotalPages)
	assert.Equal(t, 4, p.TotalItems)

	p = Paginate(list, 1, 1<<62)
	assert.Equal(t, []string{"TX-3", "TX-1", "TX-2", "TX-4"}, ids(p.Items))

	p = Paginate(list, 1<<62, 2)
	assert.Empty(t, p.Items)
	assert.Equal(t, 2, p.TotalPages)

	maxInt := int(^uint(0) >> 1)
	p = Paginate(list, maxInt, maxInt)
	assert.Empty(t, p.Items)
}

func TestParseDate(t *testing.T) {
	now := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2024, 3, 21, 0, 0, 0, 0, time.UTC), ParseDate("21.03.2024", now))
	assert.Equal(t, time.Date(2024, 3, 21, 0, 0, 0, 0, time.UTC), ParseDate("2024-03-21", now))
	assert.Equal(t, time.Date(2024, 3, 21, 10, 5, 0, 0, time.UTC), ParseDate("2024-03-21T10:05:00", now))
	assert.True(t, ParseDate("2024-03-21T10:05:00.250Z", now).Equal(time.Date(2024, 3, 21, 10, 5, 0, 250e6, time.UTC)))
	assert.Equal(t, now, ParseDate("", now))
	assert.True(t, ParseDate("not a date", now).IsZero())
	assert.True(t, ParseDate("1.2", now).IsZero())
}
