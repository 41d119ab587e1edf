package gateway

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/securebank/callcenter-agent/banking/memdb"
	"github.com/securebank/callcenter-agent/banking/model"
)

// AccountAPI fronts the core banking system: balances and transfers.
type AccountAPI struct {
	c  *client
	db *memdb.DB
}

func newAccountAPI(db *memdb.DB, cfg simConfig) *AccountAPI {
	return &AccountAPI{
		c:  newClient("AccountAPI", 40*time.Millisecond, 180*time.Millisecond, cfg),
		db: db,
	}
}

func (api *AccountAPI) Stats() Stats { return api.c.stats() }

// BalanceSnapshot is the point-in-time balance view for one account.
type BalanceSnapshot struct {
	AccountID        string `json:"account_id"`
	AccountType      string `json:"account_type"`
	Balance          string `json:"balance"`
	AvailableBalance string `json:"available_balance"`
	Currency         string `json:"currency"`
	LastUpdated      string `json:"last_updated"`
}

// AccountBreakdown is one line of a customer's aggregate balance.
type AccountBreakdown struct {
	AccountID   string `json:"account_id"`
	AccountType string `json:"account_type"`
	Balance     string `json:"balance"`
}

// TotalBalance aggregates balances across all of a customer's accounts.
type TotalBalance struct {
	CustomerID     string             `json:"customer_id"`
	TotalBalance   string             `json:"total_balance"`
	TotalAvailable string             `json:"total_available"`
	AccountCount   int                `json:"account_count"`
	Breakdown      []AccountBreakdown `json:"breakdown"`
}

// TransferReceipt confirms a completed funds transfer.
type TransferReceipt struct {
	ReferenceNumber string `json:"reference_number"`
	FromAccount     string `json:"from_account"`
	ToAccount       string `json:"to_account"`
	Amount          string `json:"amount"`
	Description     string `json:"description"`
	NewBalanceFrom  string `json:"new_balance_from"`
	NewBalanceTo    string `json:"new_balance_to"`
}

func (api *AccountAPI) Account(ctx context.Context, accountID string) Response[*model.Account] {
	return run(ctx, api.c, fmt.Sprintf("get_account(%s)", accountID), func() (*model.Account, error) {
		account, _ := api.db.Account(accountID)
		return account, nil
	})
}

func (api *AccountAPI) CustomerAccounts(ctx context.Context, customerID string) Response[[]*model.Account] {
	return run(ctx, api.c, fmt.Sprintf("get_customer_accounts(%s)", customerID), func() ([]*model.Account, error) {
		return api.db.CustomerAccounts(customerID), nil
	})
}

func (api *AccountAPI) Balance(ctx context.Context, accountID string) Response[*BalanceSnapshot] {
	return run(ctx, api.c, fmt.Sprintf("get_account_balance(%s)", accountID), func() (*BalanceSnapshot, error) {
		account, ok := api.db.Account(accountID)
		if !ok {
			return nil, nil
		}
		return &BalanceSnapshot{
			AccountID:        account.AccountID,
			AccountType:      string(account.AccountType),
			Balance:          account.Balance.String(),
			AvailableBalance: account.AvailableBalance.String(),
			Currency:         account.Currency,
			LastUpdated:      account.LastActivityDate.Format(time.RFC3339),
		}, nil
	})
}

func (api *AccountAPI) TotalBalance(ctx context.Context, customerID string) Response[*TotalBalance] {
	return run(ctx, api.c, fmt.Sprintf("get_total_balance(%s)", customerID), func() (*TotalBalance, error) {
		accounts := api.db.CustomerAccounts(customerID)
		if len(accounts) == 0 {
			return nil, nil
		}

		totalBalance := decimal.Zero
		totalAvailable := decimal.Zero
		breakdown := make([]AccountBreakdown, 0, len(accounts))
		for _, acc := range accounts {
			totalBalance = totalBalance.Add(acc.Balance)
			totalAvailable = totalAvailable.Add(acc.AvailableBalance)
			breakdown = append(breakdown, AccountBreakdown{
				AccountID:   acc.AccountID,
				AccountType: string(acc.AccountType),
				Balance:     acc.Balance.String(),
			})
		}

		return &TotalBalance{
			CustomerID:     customerID,
			TotalBalance:   totalBalance.String(),
			TotalAvailable: totalAvailable.String(),
			AccountCount:   len(accounts),
			Breakdown:      breakdown,
		}, nil
	})
}

// Transfer moves funds between two accounts. Unlike the read paths, a bad
// transfer is a real error: missing accounts and insufficient funds surface
// in the envelope's error fields.
func (api *AccountAPI) Transfer(ctx context.Context, fromAccountID, toAccountID string, amount decimal.Decimal, description string) Response[*TransferReceipt] {
	if description == "" {
		description = "Transfer"
	}
	operation := fmt.Sprintf("transfer_funds(%s -> %s, $%s)", fromAccountID, toAccountID, amount)
	return run(ctx, api.c, operation, func() (*TransferReceipt, error) {
		from, okFrom := api.db.Account(fromAccountID)
		if !okFrom {
			return nil, fmt.Errorf("source account %s not found", fromAccountID)
		}
		to, okTo := api.db.Account(toAccountID)
		if !okTo {
			return nil, fmt.Errorf("destination account %s not found", toAccountID)
		}
		if from.AvailableBalance.LessThan(amount) {
			return nil, fmt.Errorf("insufficient funds: available $%s, requested $%s", from.AvailableBalance, amount)
		}

		reference, ok := api.db.TransferFunds(fromAccountID, toAccountID, amount, description)
		if !ok {
			return nil, fmt.Errorf("transfer failed")
		}

		return &TransferReceipt{
			ReferenceNumber: reference,
			FromAccount:     fromAccountID,
			ToAccount:       toAccountID,
			Amount:          amount.String(),
			Description:     description,
			NewBalanceFrom:  from.Balance.String(),
			NewBalanceTo:    to.Balance.String(),
		}, nil
	})
}
