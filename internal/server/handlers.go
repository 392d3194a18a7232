package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/example/ledgerview/internal/input"
	"github.com/example/ledgerview/internal/logger"
	"github.com/example/ledgerview/pkg/account"
	"github.com/example/ledgerview/pkg/chart"
	"github.com/example/ledgerview/pkg/transaction"
)

const dayLayout = "2006-01-02"

type chartRequest struct {
	Account      *account.Compte   `json:"account"`
	Transactions []transaction.Raw `json:"transactions"`
	Points       int               `json:"points"`
}

type balanceResponse struct {
	Account account.Account `json:"account"`
	Series  []float64       `json:"series"`
}

type summaryResponse struct {
	Accounts     []account.Account `json:"accounts"`
	TotalBalance float64           `json:"totalBalance"`
}

// normalizeTransactions returns one page of the transaction table of the
// account named by the "account" query parameter.
func (s *Server) normalizeTransactions(c *gin.Context) {
	accountID := c.Query("account")
	if accountID == "" {
		writeError(c, http.StatusBadRequest, "account query parameter is required")
		return
	}

	filter, err := parseFilter(c)
	if err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}
	page, err := intQuery(c, "page", 1)
	if err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}
	size, err := intQuery(c, "size", transaction.DefaultPageSize)
	if err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}

	var direction transaction.Direction
	if v := c.Query("direction"); v != "" {
		if direction, err = transaction.ParseDirection(v); err != nil {
			writeError(c, http.StatusBadRequest, err.Error())
			return
		}
	}

	raws, err := input.DecodeTransactions(c.Request.Body)
	if err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}

	relevant := transaction.Relevant(raws, accountID)
	list := filter.Apply(s.normalizer.NormalizeAll(relevant, accountID))
	transaction.Sort(list, c.DefaultQuery("sort", "date"), c.DefaultQuery("dir", "desc") != "asc")
	if direction != "" {
		all := &transaction.List{Account: accountID, Transactions: list}
		list = all.ByDirection(direction).Transactions
	}

	reqLog := logger.FromContext(c.Request.Context())
	reqLog.Debug().
		Str("account_id", accountID).
		Int("received", len(raws)).
		Int("matched", len(list)).
		Msg("Normalized transactions")

	c.JSON(http.StatusOK, transaction.Paginate(list, page, size))
}

func (s *Server) balanceChart(c *gin.Context) {
	var req chartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Account == nil {
		writeError(c, http.StatusBadRequest, "account is required")
		return
	}

	acc := s.mapper.Map(*req.Account)
	points := req.Points
	if points <= 0 {
		points = s.cfg.SeriesPoints
	}
	entries := chart.EntriesFromRaw(req.Transactions, acc.ID, time.Now())

	c.JSON(http.StatusOK, balanceResponse{
		Account: acc,
		Series:  chart.BalanceSeries(acc, entries, points),
	})
}

func (s *Server) donutChart(c *gin.Context) {
	entries, acc, ok := s.bindChart(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, chart.Donut(entries, acc))
}

func (s *Server) monthlyChart(c *gin.Context) {
	entries, acc, ok := s.bindChart(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, chart.Monthly(entries, acc))
}

// bindChart reads a chart request whose account is optional
func (s *Server) bindChart(c *gin.Context) ([]chart.Entry, *account.Account, bool) {
	var req chartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return nil, nil, false
	}
	if req.Account == nil {
		return chart.EntriesFromRaw(req.Transactions, "", time.Now()), nil, true
	}
	acc := s.mapper.Map(*req.Account)
	return chart.EntriesFromRaw(req.Transactions, acc.ID, time.Now()), &acc, true
}

func (s *Server) accountsSummary(c *gin.Context) {
	comptes, err := input.DecodeAccounts(c.Request.Body)
	if err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}
	accounts := s.mapper.MapAll(comptes)
	c.JSON(http.StatusOK, summaryResponse{
		Accounts:     accounts,
		TotalBalance: account.TotalBalance(accounts),
	})
}

func parseFilter(c *gin.Context) (transaction.Filter, error) {
	f := transaction.Filter{
		Type:  c.Query("type"),
		Query: c.Query("q"),
	}
	var err error
	if from := c.Query("from"); from != "" {
		if f.From, err = time.Parse(dayLayout, from); err != nil {
			return f, errInvalidQuery("from must be YYYY-MM-DD")
		}
	}
	if to := c.Query("to"); to != "" {
		if f.To, err = time.Parse(dayLayout, to); err != nil {
			return f, errInvalidQuery("to must be YYYY-MM-DD")
		}
	}
	return f, nil
}

func intQuery(c *gin.Context, key string, def int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errInvalidQuery(key + " must be an integer")
	}
	return v, nil
}

type errInvalidQuery string

func (e errInvalidQuery) Error() string { return string(e) }
