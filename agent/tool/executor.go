package tool

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/securebank/callcenter-agent/agent/contract"
	"github.com/securebank/callcenter-agent/agent/conversation"
	"github.com/securebank/callcenter-agent/banking/gateway"
	"github.com/securebank/callcenter-agent/banking/model"
)

const timeLayout = "2006-01-02 15:04"

// Executor dispatches planned tool calls to the banking gateway and folds
// every outcome into a ToolResult. Execute never returns a Go error: bad
// parameters, unknown tools and upstream failures all become failed results
// the response generator can speak.
type Executor struct {
	gw       *gateway.Gateway
	handlers map[string]handler
}

type handler func(ctx context.Context, params map[string]any) contract.ToolResult

func NewExecutor(gw *gateway.Gateway) *Executor {
	e := &Executor{gw: gw}
	e.handlers = map[string]handler{
		"identify_customer_by_phone": e.identifyByPhone,
		"identify_customer_by_email": e.identifyByEmail,
		"verify_customer_identity":   e.verifyCustomer,
		"get_customer_profile":       e.customerProfile,

		"check_account_balance":    e.checkBalance,
		"get_all_account_balances": e.allBalances,
		"get_customer_accounts":    e.customerAccounts,
		"transfer_funds":           e.transferFunds,

		"get_recent_transactions": e.recentTransactions,
		"search_transactions":     e.searchTransactions,
		"get_spending_summary":    e.spendingSummary,
		"find_transaction":        e.findTransaction,

		"get_loan_summary":     e.loanSummary,
		"get_loan_details":     e.loanDetails,
		"get_payment_schedule": e.paymentSchedule,
		"get_payoff_amount":    e.payoffAmount,

		"get_card_summary":        e.cardSummary,
		"check_card_status":       e.checkCardStatus,
		"report_card_lost_stolen": e.reportCardLostStolen,
		"block_card":              e.blockCard,

		"get_open_tickets":      e.openTickets,
		"get_ticket_details":    e.ticketDetails,
		"create_support_ticket": e.createSupportTicket,
		"escalate_ticket":       e.escalateTicket,
		"get_ticket_history":    e.ticketHistory,
	}
	return e
}

// Execute runs one tool and records the invocation on the conversation
// context when one is supplied.
func (e *Executor) Execute(ctx context.Context, name string, params map[string]any, conv *conversation.Context) contract.ToolResult {
	log.Info().Str("tool", name).Interface("params", params).Msg("executing tool")

	h, ok := e.handlers[name]
	if !ok {
		return contract.Failure(fmt.Sprintf("%s: %s", contract.ErrUnknownTool, name))
	}

	result := h(ctx, params)

	if conv != nil {
		conv.RecordAction(name, map[string]any{
			"parameters": params,
			"success":    result.OK(),
		})
	}

	return result
}

/* ----------------------------- param access ------------------------------ */

func strParam(params map[string]any, key string) string {
	v, _ := params[key].(string)
	return v
}

func intParam(params map[string]any, key string, fallback int) int {
	switch v := params[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return fallback
}

func boolParam(params map[string]any, key string) bool {
	v, _ := params[key].(bool)
	return v
}

// decimalParam accepts both numeric and string amounts, since planner
// extraction yields strings while function-calling payloads yield numbers.
func decimalParam(params map[string]any, key string) (decimal.Decimal, bool) {
	switch v := params[key].(type) {
	case string:
		d, err := decimal.NewFromString(v)
		return d, err == nil
	case float64:
		return decimal.NewFromFloat(v), true
	case int:
		return decimal.NewFromInt(int64(v)), true
	case decimal.Decimal:
		return v, true
	}
	return decimal.Decimal{}, false
}

/* --------------------------- customer handlers --------------------------- */

func (e *Executor) identifyByPhone(ctx context.Context, params map[string]any) contract.ToolResult {
	resp := e.gw.Customer.CustomerByPhone(ctx, strParam(params, "phone_number"))
	if resp.Success && resp.Data != nil {
		return contract.ToolResult{
			"success":        true,
			"customer_found": true,
			"customer_id":    resp.Data.CustomerID,
			"name":           resp.Data.FullName(),
			"email":          resp.Data.Email,
			"segment":        resp.Data.Segment,
		}
	}
	return contract.ToolResult{
		"success":        true,
		"customer_found": false,
		"message":        "No customer found with this phone number",
	}
}

func (e *Executor) identifyByEmail(ctx context.Context, params map[string]any) contract.ToolResult {
	resp := e.gw.Customer.CustomerByEmail(ctx, strParam(params, "email"))
	if resp.Success && resp.Data != nil {
		return contract.ToolResult{
			"success":        true,
			"customer_found": true,
			"customer_id":    resp.Data.CustomerID,
			"name":           resp.Data.FullName(),
			"phone":          resp.Data.Phone,
			"segment":        resp.Data.Segment,
		}
	}
	return contract.ToolResult{
		"success":        true,
		"customer_found": false,
		"message":        "No customer found with this email",
	}
}

func (e *Executor) verifyCustomer(ctx context.Context, params map[string]any) contract.ToolResult {
	resp := e.gw.Customer.Verify(ctx,
		strParam(params, "customer_id"),
		strParam(params, "ssn_last_four"),
		strParam(params, "date_of_birth"),
	)
	verified := resp.Success && resp.Data
	message := "Verification failed"
	if verified {
		message = "Identity verified successfully"
	}
	return contract.ToolResult{
		"success":  true,
		"verified": verified,
		"message":  message,
	}
}

func (e *Executor) customerProfile(ctx context.Context, params map[string]any) contract.ToolResult {
	resp := e.gw.Customer.Profile(ctx, strParam(params, "customer_id"))
	if !resp.Success || resp.Data == nil {
		return contract.Failure("Customer not found")
	}
	profile := resp.Data
	return contract.ToolResult{
		"success": true,
		"customer": map[string]any{
			"id":      profile.Customer.CustomerID,
			"name":    profile.Customer.FullName(),
			"email":   profile.Customer.Email,
			"phone":   profile.Customer.Phone,
			"segment": profile.Customer.Segment,
			"address": fmt.Sprintf("%s, %s", profile.Customer.Address.City, profile.Customer.Address.State),
		},
		"accounts_count":           len(profile.Accounts),
		"total_relationship_value": profile.TotalRelationshipValue.String(),
		"customer_since_years":     profile.CustomerSinceYears,
		"open_tickets_count":       len(profile.OpenTickets),
		"active_loans_count":       len(profile.Loans),
		"cards_count":              len(profile.Cards),
	}
}

/* ---------------------------- account handlers --------------------------- */

func (e *Executor) checkBalance(ctx context.Context, params map[string]any) contract.ToolResult {
	resp := e.gw.Account.Balance(ctx, strParam(params, "account_id"))
	if !resp.Success || resp.Data == nil {
		return contract.Failure("Account not found")
	}
	return contract.ToolResult{
		"success":           true,
		"account_id":        resp.Data.AccountID,
		"account_type":      resp.Data.AccountType,
		"balance":           resp.Data.Balance,
		"available_balance": resp.Data.AvailableBalance,
		"currency":          resp.Data.Currency,
		"last_updated":      resp.Data.LastUpdated,
	}
}

func (e *Executor) allBalances(ctx context.Context, params map[string]any) contract.ToolResult {
	resp := e.gw.Account.TotalBalance(ctx, strParam(params, "customer_id"))
	if !resp.Success || resp.Data == nil {
		return contract.Failure("Could not retrieve balances")
	}
	breakdown := make([]map[string]any, 0, len(resp.Data.Breakdown))
	for _, line := range resp.Data.Breakdown {
		breakdown = append(breakdown, map[string]any{
			"account_id":   line.AccountID,
			"account_type": line.AccountType,
			"balance":      line.Balance,
		})
	}
	return contract.ToolResult{
		"success":         true,
		"customer_id":     resp.Data.CustomerID,
		"total_balance":   resp.Data.TotalBalance,
		"total_available": resp.Data.TotalAvailable,
		"account_count":   resp.Data.AccountCount,
		"breakdown":       breakdown,
	}
}

func (e *Executor) customerAccounts(ctx context.Context, params map[string]any) contract.ToolResult {
	resp := e.gw.Account.CustomerAccounts(ctx, strParam(params, "customer_id"))
	if !resp.Success || resp.Data == nil {
		return contract.Failure("Could not retrieve accounts")
	}
	accounts := make([]map[string]any, 0, len(resp.Data))
	for _, acc := range resp.Data {
		accounts = append(accounts, map[string]any{
			"account_id":        acc.AccountID,
			"type":              string(acc.AccountType),
			"account_number":    acc.AccountNumber,
			"balance":           acc.Balance.String(),
			"available_balance": acc.AvailableBalance.String(),
			"status":            string(acc.Status),
		})
	}
	return contract.ToolResult{"success": true, "accounts": accounts, "count": len(accounts)}
}

func (e *Executor) transferFunds(ctx context.Context, params map[string]any) contract.ToolResult {
	amount, ok := decimalParam(params, "amount")
	if !ok {
		return contract.Failure("invalid transfer amount")
	}
	description := strParam(params, "description")

	resp := e.gw.Account.Transfer(ctx,
		strParam(params, "from_account_id"),
		strParam(params, "to_account_id"),
		amount,
		description,
	)
	if !resp.Success || resp.Data == nil {
		if resp.Error != "" {
			return contract.Failure(resp.Error)
		}
		return contract.Failure("Transfer failed")
	}
	return contract.ToolResult{
		"success":          true,
		"reference_number": resp.Data.ReferenceNumber,
		"from_account":     resp.Data.FromAccount,
		"to_account":       resp.Data.ToAccount,
		"amount":           resp.Data.Amount,
		"description":      resp.Data.Description,
		"new_balance_from": resp.Data.NewBalanceFrom,
		"new_balance_to":   resp.Data.NewBalanceTo,
	}
}

/* -------------------------- transaction handlers ------------------------- */

func transactionLine(tx *model.Transaction, withStatus bool) map[string]any {
	line := map[string]any{
		"id":          tx.TransactionID,
		"date":        tx.Timestamp.Format(timeLayout),
		"type":        string(tx.TransactionType),
		"amount":      tx.Amount.String(),
		"description": tx.Description,
		"merchant":    tx.MerchantName,
	}
	if withStatus {
		line["status"] = string(tx.Status)
		line["balance_after"] = tx.BalanceAfter.String()
	}
	return line
}

func (e *Executor) recentTransactions(ctx context.Context, params map[string]any) contract.ToolResult {
	resp := e.gw.Transaction.RecentTransactions(ctx,
		strParam(params, "account_id"),
		intParam(params, "limit", 10),
		intParam(params, "days", 30),
	)
	if !resp.Success || resp.Data == nil {
		return contract.Failure("Could not retrieve transactions")
	}
	transactions := make([]map[string]any, 0, len(resp.Data))
	for _, tx := range resp.Data {
		transactions = append(transactions, transactionLine(tx, true))
	}
	return contract.ToolResult{"success": true, "transactions": transactions, "count": len(transactions)}
}

func (e *Executor) searchTransactions(ctx context.Context, params map[string]any) contract.ToolResult {
	filter := gateway.SearchFilter{
		MerchantName:    strParam(params, "merchant_name"),
		TransactionType: model.TransactionType(strParam(params, "transaction_type")),
	}
	if min, ok := decimalParam(params, "min_amount"); ok {
		filter.MinAmount = &min
	}
	if max, ok := decimalParam(params, "max_amount"); ok {
		filter.MaxAmount = &max
	}

	resp := e.gw.Transaction.SearchTransactions(ctx, strParam(params, "account_id"), filter)
	if !resp.Success || resp.Data == nil {
		return contract.Failure("Search failed")
	}
	transactions := make([]map[string]any, 0, len(resp.Data))
	for _, tx := range resp.Data {
		transactions = append(transactions, transactionLine(tx, false))
	}
	return contract.ToolResult{"success": true, "transactions": transactions, "count": len(transactions)}
}

func (e *Executor) spendingSummary(ctx context.Context, params map[string]any) contract.ToolResult {
	resp := e.gw.Transaction.SpendingSummary(ctx,
		strParam(params, "account_id"),
		intParam(params, "days", 30),
	)
	if !resp.Success || resp.Data == nil {
		return contract.Failure("Could not generate spending summary")
	}
	return contract.ToolResult{
		"success":           true,
		"account_id":        resp.Data.AccountID,
		"period_days":       resp.Data.PeriodDays,
		"total_spending":    resp.Data.TotalSpending,
		"total_income":      resp.Data.TotalIncome,
		"net_change":        resp.Data.NetChange,
		"transaction_count": resp.Data.TransactionCount,
		"by_category":       resp.Data.ByCategory,
		"top_categories":    resp.Data.TopCategories,
	}
}

func (e *Executor) findTransaction(ctx context.Context, params map[string]any) contract.ToolResult {
	resp := e.gw.Transaction.Transaction(ctx, strParam(params, "transaction_id"))
	if !resp.Success || resp.Data == nil {
		return contract.Failure("Transaction not found")
	}
	tx := resp.Data
	return contract.ToolResult{
		"success": true,
		"transaction": map[string]any{
			"id":          tx.TransactionID,
			"date":        tx.Timestamp.Format(timeLayout),
			"type":        string(tx.TransactionType),
			"amount":      tx.Amount.String(),
			"description": tx.Description,
			"merchant":    tx.MerchantName,
			"status":      string(tx.Status),
			"reference":   tx.ReferenceNumber,
		},
	}
}

/* ------------------------------ loan handlers ---------------------------- */

func (e *Executor) loanSummary(ctx context.Context, params map[string]any) contract.ToolResult {
	resp := e.gw.Loan.Summary(ctx, strParam(params, "customer_id"))
	if !resp.Success || resp.Data == nil {
		return contract.Failure("Could not retrieve loan information")
	}
	loans := make([]map[string]any, 0, len(resp.Data.Loans))
	for _, line := range resp.Data.Loans {
		loans = append(loans, map[string]any{
			"loan_id":           line.LoanID,
			"type":              line.Type,
			"balance":           line.Balance,
			"monthly_payment":   line.MonthlyPayment,
			"next_payment_date": line.NextPaymentDate,
			"status":            line.Status,
		})
	}
	return contract.ToolResult{
		"success":               true,
		"customer_id":           resp.Data.CustomerID,
		"total_loans":           resp.Data.TotalLoans,
		"active_loans":          resp.Data.ActiveLoans,
		"total_balance":         resp.Data.TotalBalance,
		"total_monthly_payment": resp.Data.TotalMonthlyPayment,
		"loans":                 loans,
	}
}

func (e *Executor) loanDetails(ctx context.Context, params map[string]any) contract.ToolResult {
	resp := e.gw.Loan.Loan(ctx, strParam(params, "loan_id"))
	if !resp.Success || resp.Data == nil {
		return contract.Failure("Loan not found")
	}
	loan := resp.Data
	return contract.ToolResult{
		"success": true,
		"loan": map[string]any{
			"id":                 loan.LoanID,
			"type":               string(loan.LoanType),
			"principal":          loan.PrincipalAmount.String(),
			"current_balance":    loan.CurrentBalance.String(),
			"interest_rate":      loan.InterestRate.String(),
			"monthly_payment":    loan.MonthlyPayment.String(),
			"next_payment_date":  loan.NextPaymentDate.Format("2006-01-02"),
			"payments_made":      loan.PaymentsMade,
			"payments_remaining": loan.PaymentsRemaining,
			"status":             string(loan.Status),
		},
	}
}

func (e *Executor) paymentSchedule(ctx context.Context, params map[string]any) contract.ToolResult {
	resp := e.gw.Loan.PaymentSchedule(ctx, strParam(params, "loan_id"))
	if !resp.Success || resp.Data == nil {
		return contract.Failure("Could not retrieve payment schedule")
	}
	payments := make([]map[string]any, 0, len(resp.Data.UpcomingPayments))
	for _, p := range resp.Data.UpcomingPayments {
		payments = append(payments, map[string]any{
			"payment_number":     p.PaymentNumber,
			"due_date":           p.DueDate,
			"amount":             p.Amount,
			"principal_estimate": p.PrincipalEstimate,
			"interest_estimate":  p.InterestEstimate,
		})
	}
	return contract.ToolResult{
		"success":            true,
		"loan_id":            resp.Data.LoanID,
		"loan_type":          resp.Data.LoanType,
		"current_balance":    resp.Data.CurrentBalance,
		"interest_rate":      resp.Data.InterestRate,
		"payments_made":      resp.Data.PaymentsMade,
		"payments_remaining": resp.Data.PaymentsRemaining,
		"maturity_date":      resp.Data.MaturityDate,
		"upcoming_payments":  payments,
	}
}

func (e *Executor) payoffAmount(ctx context.Context, params map[string]any) contract.ToolResult {
	resp := e.gw.Loan.PayoffQuote(ctx, strParam(params, "loan_id"))
	if !resp.Success || resp.Data == nil {
		return contract.Failure("Could not calculate payoff amount")
	}
	return contract.ToolResult{
		"success":          true,
		"loan_id":          resp.Data.LoanID,
		"current_balance":  resp.Data.CurrentBalance,
		"accrued_interest": resp.Data.AccruedInterest,
		"payoff_amount":    resp.Data.PayoffAmount,
		"valid_through":    resp.Data.ValidThrough,
		"note":             resp.Data.Note,
	}
}

/* ------------------------------ card handlers ---------------------------- */

func (e *Executor) cardSummary(ctx context.Context, params map[string]any) contract.ToolResult {
	resp := e.gw.Card.Summary(ctx, strParam(params, "customer_id"))
	if !resp.Success || resp.Data == nil {
		return contract.Failure("Could not retrieve card information")
	}
	cards := make([]map[string]any, 0, len(resp.Data.Cards))
	for _, line := range resp.Data.Cards {
		card := map[string]any{
			"card_id":    line.CardID,
			"type":       line.Type,
			"last_four":  line.LastFour,
			"expiration": line.Expiration,
			"status":     line.Status,
		}
		if line.CreditLimit != "" {
			card["credit_limit"] = line.CreditLimit
			card["current_balance"] = line.CurrentBalance
		}
		cards = append(cards, card)
	}
	return contract.ToolResult{
		"success":                true,
		"customer_id":            resp.Data.CustomerID,
		"total_cards":            resp.Data.TotalCards,
		"active_cards":           resp.Data.ActiveCards,
		"debit_cards":            resp.Data.DebitCards,
		"credit_cards":           resp.Data.CreditCards,
		"total_credit_limit":     resp.Data.TotalCreditLimit,
		"total_credit_used":      resp.Data.TotalCreditUsed,
		"total_available_credit": resp.Data.TotalAvailableCredit,
		"cards":                  cards,
	}
}

func (e *Executor) checkCardStatus(ctx context.Context, params map[string]any) contract.ToolResult {
	resp := e.gw.Card.Status(ctx, strParam(params, "card_id"))
	if !resp.Success || resp.Data == nil {
		return contract.Failure("Card not found")
	}
	return contract.ToolResult{
		"success":               true,
		"card_id":               resp.Data.CardID,
		"card_number_masked":    resp.Data.CardNumberMasked,
		"card_type":             resp.Data.CardType,
		"status":                resp.Data.Status,
		"is_active":             resp.Data.IsActive,
		"expiration_date":       resp.Data.ExpirationDate,
		"international_enabled": resp.Data.InternationalEnabled,
		"contactless_enabled":   resp.Data.ContactlessEnabled,
		"daily_limit":           resp.Data.DailyLimit,
	}
}

func (e *Executor) reportCardLostStolen(ctx context.Context, params map[string]any) contract.ToolResult {
	reportType := "lost"
	if boolParam(params, "is_stolen") {
		reportType = "stolen"
	}
	resp := e.gw.Card.ReportLostStolen(ctx,
		strParam(params, "customer_id"),
		strParam(params, "card_last_four"),
		reportType,
	)
	if !resp.Success || resp.Data == nil {
		if resp.Error != "" {
			return contract.Failure(resp.Error)
		}
		return contract.Failure("Could not process report")
	}
	actions := make([]any, 0, len(resp.Data.ActionsTaken))
	for _, action := range resp.Data.ActionsTaken {
		actions = append(actions, action)
	}
	return contract.ToolResult{
		"success":            true,
		"card_id":            resp.Data.CardID,
		"card_number_masked": resp.Data.CardNumberMasked,
		"card_type":          resp.Data.CardType,
		"report_type":        resp.Data.ReportType,
		"status":             resp.Data.Status,
		"reported_at":        resp.Data.ReportedAt,
		"actions_taken":      actions,
		"next_steps":         resp.Data.NextSteps,
	}
}

func (e *Executor) blockCard(ctx context.Context, params map[string]any) contract.ToolResult {
	reason := strParam(params, "reason")
	if reason == "" {
		reason = "customer_request"
	}
	resp := e.gw.Card.Block(ctx, strParam(params, "card_id"), reason)
	if !resp.Success || resp.Data == nil {
		if resp.Error != "" {
			return contract.Failure(resp.Error)
		}
		return contract.Failure("Could not block card")
	}
	return contract.ToolResult{
		"success":            true,
		"card_id":            resp.Data.CardID,
		"card_number_masked": resp.Data.CardNumberMasked,
		"reason":             resp.Data.Reason,
		"previous_status":    resp.Data.PreviousStatus,
		"current_status":     resp.Data.CurrentStatus,
		"blocked_at":         resp.Data.BlockedAt,
		"message":            resp.Data.Message,
	}
}

/* ----------------------------- support handlers -------------------------- */

func (e *Executor) openTickets(ctx context.Context, params map[string]any) contract.ToolResult {
	resp := e.gw.Support.CustomerTickets(ctx, strParam(params, "customer_id"), false)
	if !resp.Success || resp.Data == nil {
		return contract.Failure("Could not retrieve tickets")
	}
	tickets := make([]map[string]any, 0, len(resp.Data))
	for _, t := range resp.Data {
		tickets = append(tickets, map[string]any{
			"ticket_id":  t.TicketID,
			"subject":    t.Subject,
			"category":   string(t.Category),
			"status":     string(t.Status),
			"priority":   string(t.Priority),
			"created_at": t.CreatedAt.Format(timeLayout),
		})
	}
	return contract.ToolResult{"success": true, "tickets": tickets, "count": len(tickets)}
}

func (e *Executor) ticketDetails(ctx context.Context, params map[string]any) contract.ToolResult {
	resp := e.gw.Support.Ticket(ctx, strParam(params, "ticket_id"))
	if !resp.Success || resp.Data == nil {
		return contract.Failure("Ticket not found")
	}
	t := resp.Data
	return contract.ToolResult{
		"success": true,
		"ticket": map[string]any{
			"ticket_id":   t.TicketID,
			"subject":     t.Subject,
			"description": t.Description,
			"category":    string(t.Category),
			"status":      string(t.Status),
			"priority":    string(t.Priority),
			"created_at":  t.CreatedAt.Format(timeLayout),
			"updated_at":  t.UpdatedAt.Format(timeLayout),
			"assigned_to": t.AssignedTo,
			"resolution":  t.Resolution,
			"notes":       t.Notes,
		},
	}
}

func (e *Executor) createSupportTicket(ctx context.Context, params map[string]any) contract.ToolResult {
	priority := strParam(params, "priority")
	if priority == "" {
		priority = "medium"
	}
	resp := e.gw.Support.CreateTicket(ctx, gateway.CreateTicketInput{
		CustomerID:  strParam(params, "customer_id"),
		Category:    strParam(params, "category"),
		Subject:     strParam(params, "subject"),
		Description: strParam(params, "description"),
		Priority:    priority,
	})
	if !resp.Success || resp.Data == nil {
		return contract.Failure("Could not create ticket")
	}
	return contract.ToolResult{
		"success":                true,
		"ticket_id":              resp.Data.TicketID,
		"status":                 resp.Data.Status,
		"priority":               resp.Data.Priority,
		"category":               resp.Data.Category,
		"created_at":             resp.Data.CreatedAt,
		"message":                resp.Data.Message,
		"expected_response_time": resp.Data.ExpectedResponseTime,
	}
}

func (e *Executor) escalateTicket(ctx context.Context, params map[string]any) contract.ToolResult {
	resp := e.gw.Support.Escalate(ctx, strParam(params, "ticket_id"), strParam(params, "reason"))
	if !resp.Success || resp.Data == nil {
		return contract.Failure("Could not escalate ticket")
	}
	return contract.ToolResult{
		"success":           true,
		"ticket_id":         resp.Data.TicketID,
		"previous_priority": resp.Data.PreviousPriority,
		"new_priority":      resp.Data.NewPriority,
		"status":            resp.Data.Status,
		"reason":            resp.Data.Reason,
		"escalated_at":      resp.Data.EscalatedAt,
		"message":           resp.Data.Message,
	}
}

func (e *Executor) ticketHistory(ctx context.Context, params map[string]any) contract.ToolResult {
	resp := e.gw.Support.History(ctx, strParam(params, "customer_id"))
	if !resp.Success || resp.Data == nil {
		return contract.Failure("Could not retrieve ticket history")
	}
	recent := make([]map[string]any, 0, len(resp.Data.RecentTickets))
	for _, t := range resp.Data.RecentTickets {
		recent = append(recent, map[string]any{
			"ticket_id":  t.TicketID,
			"subject":    t.Subject,
			"category":   t.Category,
			"status":     t.Status,
			"created_at": t.CreatedAt,
			"resolution": t.Resolution,
		})
	}
	return contract.ToolResult{
		"success":        true,
		"customer_id":    resp.Data.CustomerID,
		"total_tickets":  resp.Data.TotalTickets,
		"open":           resp.Data.Open,
		"in_progress":    resp.Data.InProgress,
		"resolved":       resp.Data.Resolved,
		"closed":         resp.Data.Closed,
		"recent_tickets": recent,
	}
}
