package gateway

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/securebank/callcenter-agent/banking/memdb"
	"github.com/securebank/callcenter-agent/banking/model"
)

// TransactionAPI fronts the transaction processing system: history, search
// and spending analytics.
type TransactionAPI struct {
	c  *client
	db *memdb.DB
}

func newTransactionAPI(db *memdb.DB, cfg simConfig) *TransactionAPI {
	return &TransactionAPI{
		c:  newClient("TransactionAPI", 50*time.Millisecond, 250*time.Millisecond, cfg),
		db: db,
	}
}

func (api *TransactionAPI) Stats() Stats { return api.c.stats() }

// SearchFilter narrows a transaction search. Zero-valued fields are ignored.
type SearchFilter struct {
	MerchantName    string
	MinAmount       *decimal.Decimal
	MaxAmount       *decimal.Decimal
	TransactionType model.TransactionType
	Days            int
}

// SpendingSummary breaks down account activity by merchant category.
type SpendingSummary struct {
	AccountID        string            `json:"account_id"`
	PeriodDays       int               `json:"period_days"`
	TotalSpending    string            `json:"total_spending"`
	TotalIncome      string            `json:"total_income"`
	NetChange        string            `json:"net_change"`
	TransactionCount int               `json:"transaction_count"`
	ByCategory       map[string]string `json:"by_category"`
	TopCategories    []string          `json:"top_categories"`
}

func (api *TransactionAPI) Transaction(ctx context.Context, transactionID string) Response[*model.Transaction] {
	return run(ctx, api.c, fmt.Sprintf("get_transaction(%s)", transactionID), func() (*model.Transaction, error) {
		tx, _ := api.db.Transaction(transactionID)
		return tx, nil
	})
}

func (api *TransactionAPI) RecentTransactions(ctx context.Context, accountID string, limit, days int) Response[[]*model.Transaction] {
	if limit <= 0 {
		limit = 10
	}
	if days <= 0 {
		days = 30
	}
	operation := fmt.Sprintf("get_recent_transactions(%s, limit=%d)", accountID, limit)
	return run(ctx, api.c, operation, func() ([]*model.Transaction, error) {
		return api.db.AccountTransactions(accountID, limit, days), nil
	})
}

func (api *TransactionAPI) SearchTransactions(ctx context.Context, accountID string, filter SearchFilter) Response[[]*model.Transaction] {
	days := filter.Days
	if days <= 0 {
		days = 90
	}
	return run(ctx, api.c, fmt.Sprintf("search_transactions(%s)", accountID), func() ([]*model.Transaction, error) {
		candidates := api.db.AccountTransactions(accountID, 100, days)

		results := make([]*model.Transaction, 0, len(candidates))
		for _, tx := range candidates {
			if filter.MerchantName != "" && tx.MerchantName != "" &&
				!containsFold(tx.MerchantName, filter.MerchantName) {
				continue
			}
			if filter.MinAmount != nil && tx.Amount.LessThan(*filter.MinAmount) {
				continue
			}
			if filter.MaxAmount != nil && tx.Amount.GreaterThan(*filter.MaxAmount) {
				continue
			}
			if filter.TransactionType != "" && tx.TransactionType != filter.TransactionType {
				continue
			}
			results = append(results, tx)
		}
		return results, nil
	})
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

var debitTypes = map[model.TransactionType]bool{
	model.TxPurchase:      true,
	model.TxWithdrawal:    true,
	model.TxATMWithdrawal: true,
	model.TxPayment:       true,
	model.TxTransferOut:   true,
	model.TxFee:           true,
}

func (api *TransactionAPI) SpendingSummary(ctx context.Context, accountID string, days int) Response[*SpendingSummary] {
	if days <= 0 {
		days = 30
	}
	operation := fmt.Sprintf("get_spending_summary(%s, days=%d)", accountID, days)
	return run(ctx, api.c, operation, func() (*SpendingSummary, error) {
		transactions := api.db.AccountTransactions(accountID, 100, days)

		categoryTotals := make(map[string]decimal.Decimal)
		totalSpending := decimal.Zero
		totalIncome := decimal.Zero

		for _, tx := range transactions {
			switch {
			case debitTypes[tx.TransactionType]:
				totalSpending = totalSpending.Add(tx.Amount)
				category := tx.MerchantCategory
				if category == "" {
					category = "Other"
				}
				categoryTotals[category] = categoryTotals[category].Add(tx.Amount)
			case tx.TransactionType.IsCredit():
				totalIncome = totalIncome.Add(tx.Amount)
			}
		}

		byCategory := make(map[string]string, len(categoryTotals))
		top := make([]string, 0, len(categoryTotals))
		for category, total := range categoryTotals {
			byCategory[category] = total.String()
			top = append(top, category)
		}
		sort.Slice(top, func(i, j int) bool {
			return categoryTotals[top[i]].GreaterThan(categoryTotals[top[j]])
		})

		return &SpendingSummary{
			AccountID:        accountID,
			PeriodDays:       days,
			TotalSpending:    totalSpending.String(),
			TotalIncome:      totalIncome.String(),
			NetChange:        totalIncome.Sub(totalSpending).String(),
			TransactionCount: len(transactions),
			ByCategory:       byCategory,
			TopCategories:    top,
		}, nil
	})
}

// LargeTransactions returns transactions at or above the threshold within
// the lookback window.
func (api *TransactionAPI) LargeTransactions(ctx context.Context, accountID string, threshold decimal.Decimal, days int) Response[[]*model.Transaction] {
	if days <= 0 {
		days = 30
	}
	operation := fmt.Sprintf("get_large_transactions(%s, threshold=$%s)", accountID, threshold)
	return run(ctx, api.c, operation, func() ([]*model.Transaction, error) {
		candidates := api.db.AccountTransactions(accountID, 100, days)
		results := make([]*model.Transaction, 0, len(candidates))
		for _, tx := range candidates {
			if tx.Amount.GreaterThanOrEqual(threshold) {
				results = append(results, tx)
			}
		}
		return results, nil
	})
}
