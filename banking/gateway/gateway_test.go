package gateway

import (
	"context"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/securebank/callcenter-agent/banking/memdb"
	"github.com/securebank/callcenter-agent/banking/model"
)

func newTestGateway(t *testing.T, opts ...Option) *Gateway {
	t.Helper()
	db := memdb.New(memdb.WithRand(rand.New(rand.NewSource(1))))
	base := []Option{WithLatencyRange(0, 0), WithRand(rand.New(rand.NewSource(1)))}
	return New(db, append(base, opts...)...)
}

func TestCustomerLookups(t *testing.T) {
	t.Parallel()
	gw := newTestGateway(t)
	ctx := context.Background()

	resp := gw.Customer.CustomerByPhone(ctx, "+1-555-0101")
	if !resp.Success {
		t.Fatalf("lookup failed: %s", resp.Error)
	}
	if resp.Data == nil || resp.Data.CustomerID != "CUST001" {
		t.Fatalf("wrong customer: %+v", resp.Data)
	}
	if resp.RequestID == "" {
		t.Fatalf("expected a request id")
	}

	// Misses succeed with no data.
	miss := gw.Customer.CustomerByPhone(ctx, "+1-555-9999")
	if !miss.Success || miss.Data != nil {
		t.Fatalf("miss should succeed with nil data: %+v", miss)
	}
}

func TestVerifyCustomer(t *testing.T) {
	t.Parallel()
	gw := newTestGateway(t)
	ctx := context.Background()

	resp := gw.Customer.Verify(ctx, "CUST001", "4521", "1985-03-15")
	if !resp.Success || !resp.Data {
		t.Fatalf("expected verification to pass: %+v", resp)
	}

	wrong := gw.Customer.Verify(ctx, "CUST001", "0000", "1985-03-15")
	if !wrong.Success || wrong.Data {
		t.Fatalf("wrong ssn should verify false")
	}

	unknown := gw.Customer.Verify(ctx, "CUST999", "4521", "1985-03-15")
	if !unknown.Success || unknown.Data {
		t.Fatalf("unknown customer should verify false")
	}
}

func TestTotalBalance(t *testing.T) {
	t.Parallel()
	gw := newTestGateway(t)

	resp := gw.Account.TotalBalance(context.Background(), "CUST001")
	if !resp.Success || resp.Data == nil {
		t.Fatalf("expected total balance: %+v", resp)
	}
	if resp.Data.AccountCount != 2 {
		t.Fatalf("expected 2 accounts, got %d", resp.Data.AccountCount)
	}
	if resp.Data.TotalBalance != "67582.67" {
		t.Fatalf("unexpected total: %s", resp.Data.TotalBalance)
	}
}

func TestTransferErrors(t *testing.T) {
	t.Parallel()
	gw := newTestGateway(t)
	ctx := context.Background()

	resp := gw.Account.Transfer(ctx, "ACC001", "NOPE", decimal.NewFromInt(10), "")
	if resp.Success {
		t.Fatalf("transfer to missing account should fail")
	}
	if resp.ErrorCode != "API_ERROR" {
		t.Fatalf("unexpected error code: %s", resp.ErrorCode)
	}

	broke := gw.Account.Transfer(ctx, "ACC007", "ACC001", decimal.NewFromInt(999999), "")
	if broke.Success {
		t.Fatalf("insufficient funds should fail")
	}

	ok := gw.Account.Transfer(ctx, "ACC001", "ACC002", decimal.NewFromInt(100), "rent")
	if !ok.Success || ok.Data == nil || ok.Data.ReferenceNumber == "" {
		t.Fatalf("valid transfer should succeed: %+v", ok)
	}
}

func TestSearchTransactions(t *testing.T) {
	t.Parallel()
	gw := newTestGateway(t)
	ctx := context.Background()

	min := decimal.NewFromInt(100)
	resp := gw.Transaction.SearchTransactions(ctx, "ACC004", SearchFilter{MinAmount: &min})
	if !resp.Success {
		t.Fatalf("search failed: %s", resp.Error)
	}
	for _, tx := range resp.Data {
		if tx.Amount.LessThan(min) {
			t.Fatalf("filter leaked amount %s", tx.Amount)
		}
	}

	typed := gw.Transaction.SearchTransactions(ctx, "ACC004", SearchFilter{TransactionType: model.TxPurchase})
	for _, tx := range typed.Data {
		if tx.TransactionType != model.TxPurchase {
			t.Fatalf("type filter leaked %s", tx.TransactionType)
		}
	}
}

func TestLargeTransactions(t *testing.T) {
	t.Parallel()
	gw := newTestGateway(t)

	threshold := decimal.NewFromInt(200)
	resp := gw.Transaction.LargeTransactions(context.Background(), "ACC001", threshold, 90)
	if !resp.Success {
		t.Fatalf("lookup failed: %s", resp.Error)
	}
	for _, tx := range resp.Data {
		if tx.Amount.LessThan(threshold) {
			t.Fatalf("threshold leaked amount %s", tx.Amount)
		}
	}
}

func TestSpendingSummary(t *testing.T) {
	t.Parallel()
	gw := newTestGateway(t)

	resp := gw.Transaction.SpendingSummary(context.Background(), "ACC001", 60)
	if !resp.Success || resp.Data == nil {
		t.Fatalf("summary failed: %+v", resp)
	}

	spending := decimal.RequireFromString(resp.Data.TotalSpending)
	income := decimal.RequireFromString(resp.Data.TotalIncome)
	net := decimal.RequireFromString(resp.Data.NetChange)
	if !net.Equal(income.Sub(spending)) {
		t.Fatalf("net change inconsistent: %s != %s - %s", net, income, spending)
	}

	for i := 1; i < len(resp.Data.TopCategories); i++ {
		prev := decimal.RequireFromString(resp.Data.ByCategory[resp.Data.TopCategories[i-1]])
		cur := decimal.RequireFromString(resp.Data.ByCategory[resp.Data.TopCategories[i]])
		if cur.GreaterThan(prev) {
			t.Fatalf("categories not sorted by spend")
		}
	}
}

func TestPaymentSchedule(t *testing.T) {
	t.Parallel()
	gw := newTestGateway(t)

	resp := gw.Loan.PaymentSchedule(context.Background(), "LOAN001")
	if !resp.Success || resp.Data == nil {
		t.Fatalf("schedule failed: %+v", resp)
	}
	if len(resp.Data.UpcomingPayments) != 6 {
		t.Fatalf("expected 6 upcoming payments, got %d", len(resp.Data.UpcomingPayments))
	}
	first := resp.Data.UpcomingPayments[0]
	if first.PaymentNumber != 21 {
		t.Fatalf("expected payment number 21, got %d", first.PaymentNumber)
	}
	if first.PrincipalEstimate != "479.85" || first.InterestEstimate != "205.65" {
		t.Fatalf("unexpected estimates: %s / %s", first.PrincipalEstimate, first.InterestEstimate)
	}
}

func TestPayoffQuote(t *testing.T) {
	t.Parallel()
	gw := newTestGateway(t)

	resp := gw.Loan.PayoffQuote(context.Background(), "LOAN001")
	if !resp.Success || resp.Data == nil {
		t.Fatalf("payoff failed: %+v", resp)
	}

	// balance * rate/365/100 * 10 days
	balance := decimal.RequireFromString("28456.78")
	daily := decimal.RequireFromString("6.5").Div(decimal.NewFromInt(365)).Div(decimal.NewFromInt(100))
	wantAccrued := balance.Mul(daily).Mul(decimal.NewFromInt(10)).Round(2)
	if resp.Data.AccruedInterest != wantAccrued.String() {
		t.Fatalf("accrued interest %s, want %s", resp.Data.AccruedInterest, wantAccrued)
	}

	missing := gw.Loan.PayoffQuote(context.Background(), "LOAN999")
	if !missing.Success || missing.Data != nil {
		t.Fatalf("missing loan should succeed with nil data")
	}
}

func TestCardSummary(t *testing.T) {
	t.Parallel()
	gw := newTestGateway(t)

	resp := gw.Card.Summary(context.Background(), "CUST002")
	if !resp.Success || resp.Data == nil {
		t.Fatalf("summary failed: %+v", resp)
	}
	if resp.Data.TotalCards != 2 || resp.Data.CreditCards != 1 || resp.Data.DebitCards != 1 {
		t.Fatalf("unexpected counts: %+v", resp.Data)
	}
	// CARD008 is seeded lost, so only the debit card is active.
	if resp.Data.ActiveCards != 1 {
		t.Fatalf("expected 1 active card, got %d", resp.Data.ActiveCards)
	}
}

func TestBlockCardIdempotent(t *testing.T) {
	t.Parallel()
	gw := newTestGateway(t)
	ctx := context.Background()

	first := gw.Card.Block(ctx, "CARD004", "fraud")
	if !first.Success || first.Data.CurrentStatus != string(model.CardBlocked) {
		t.Fatalf("block failed: %+v", first)
	}

	again := gw.Card.Block(ctx, "CARD004", "fraud")
	if !again.Success || again.Data.PreviousStatus != string(model.CardBlocked) {
		t.Fatalf("second block should report already blocked: %+v", again)
	}

	missing := gw.Card.Block(ctx, "CARD999", "lost")
	if missing.Success {
		t.Fatalf("blocking unknown card should fail")
	}
}

func TestReportLostStolen(t *testing.T) {
	t.Parallel()
	gw := newTestGateway(t)
	ctx := context.Background()

	resp := gw.Card.ReportLostStolen(ctx, "CUST001", "4521", "stolen")
	if !resp.Success || resp.Data == nil {
		t.Fatalf("report failed: %+v", resp)
	}
	if resp.Data.Status != string(model.CardStolen) {
		t.Fatalf("expected stolen status, got %s", resp.Data.Status)
	}

	var notified bool
	for _, action := range resp.Data.ActionsTaken {
		if action == "Fraud monitoring team has been notified" {
			notified = true
		}
	}
	if !notified {
		t.Fatalf("stolen report should notify fraud team")
	}

	missing := gw.Card.ReportLostStolen(ctx, "CUST001", "0000", "lost")
	if missing.Success {
		t.Fatalf("report with unknown last four should fail")
	}
}

func TestCreateAndEscalateTicket(t *testing.T) {
	t.Parallel()
	gw := newTestGateway(t)
	ctx := context.Background()

	created := gw.Support.CreateTicket(ctx, CreateTicketInput{
		CustomerID:  "CUST001",
		Category:    "complaint",
		Subject:     "Slow service",
		Description: "Waited 40 minutes on hold.",
		Priority:    "nonsense",
	})
	if !created.Success || created.Data == nil {
		t.Fatalf("create failed: %+v", created)
	}
	if created.Data.Priority != string(model.PriorityMedium) {
		t.Fatalf("unknown priority should default to medium, got %s", created.Data.Priority)
	}
	if created.Data.ExpectedResponseTime != "Within 24 hours" {
		t.Fatalf("unexpected response time: %s", created.Data.ExpectedResponseTime)
	}

	escalated := gw.Support.Escalate(ctx, created.Data.TicketID, "customer called twice")
	if !escalated.Success || escalated.Data == nil {
		t.Fatalf("escalation failed: %+v", escalated)
	}
	if escalated.Data.NewPriority != string(model.PriorityHigh) {
		t.Fatalf("medium should escalate to high, got %s", escalated.Data.NewPriority)
	}
	if escalated.Data.Status != string(model.TicketEscalated) {
		t.Fatalf("unexpected status: %s", escalated.Data.Status)
	}
}

func TestUpdateTicket(t *testing.T) {
	t.Parallel()
	gw := newTestGateway(t)
	ctx := context.Background()

	resp := gw.Support.UpdateTicket(ctx, "TKT001", UpdateTicketInput{
		Status:     "in_progress",
		AddNote:    "Customer provided the disputed transaction id.",
		Resolution: "Charge reversed after merchant confirmation.",
	})
	if !resp.Success || resp.Data == nil {
		t.Fatalf("update failed: %+v", resp)
	}
	if len(resp.Data.UpdatesApplied) == 0 {
		t.Fatalf("expected applied updates: %v", resp.Data.UpdatesApplied)
	}
	// A resolution closes the ticket regardless of the requested status.
	if resp.Data.CurrentStatus != string(model.TicketResolved) {
		t.Fatalf("resolution should resolve the ticket, got %s", resp.Data.CurrentStatus)
	}

	missing := gw.Support.UpdateTicket(ctx, "TKT999", UpdateTicketInput{Status: "open"})
	if missing.Success {
		t.Fatalf("updating an unknown ticket should fail")
	}
}

func TestTicketHistory(t *testing.T) {
	t.Parallel()
	gw := newTestGateway(t)

	resp := gw.Support.History(context.Background(), "CUST002")
	if !resp.Success || resp.Data == nil {
		t.Fatalf("history failed: %+v", resp)
	}
	if resp.Data.TotalTickets != 1 || resp.Data.Resolved != 1 {
		t.Fatalf("unexpected history: %+v", resp.Data)
	}
}

func TestConcurrentAPIFamilies(t *testing.T) {
	t.Parallel()
	// Nonzero latency and a failure rate force every call through the rng;
	// two families rolling at once must not share randomness state.
	gw := newTestGateway(t,
		WithLatencyRange(time.Nanosecond, 2*time.Nanosecond),
		WithFailureRate(0.5),
	)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			resp := gw.Customer.Customer(ctx, "CUST001")
			if resp.RequestID == "" {
				t.Errorf("missing request id: %+v", resp)
			}
		}()
		go func() {
			defer wg.Done()
			resp := gw.Account.Balance(ctx, "ACC001")
			if resp.RequestID == "" {
				t.Errorf("missing request id: %+v", resp)
			}
		}()
	}
	wg.Wait()

	stats := gw.APIStats()
	if stats["customer_api"].TotalRequests != 100 || stats["account_api"].TotalRequests != 100 {
		t.Fatalf("request accounting lost calls: %+v", stats)
	}
}

func TestFailureInjection(t *testing.T) {
	t.Parallel()
	gw := newTestGateway(t, WithFailureRate(1.0))

	resp := gw.Customer.Customer(context.Background(), "CUST001")
	if resp.Success {
		t.Fatalf("forced failure rate should fail every call")
	}
	if resp.ErrorCode != "API_ERROR" {
		t.Fatalf("unexpected error code: %s", resp.ErrorCode)
	}
}

func TestAPIStats(t *testing.T) {
	t.Parallel()
	gw := newTestGateway(t)

	gw.Customer.Customer(context.Background(), "CUST001")
	gw.Customer.Customer(context.Background(), "CUST002")

	stats := gw.APIStats()
	if stats["customer_api"].TotalRequests != 2 {
		t.Fatalf("expected 2 customer requests, got %d", stats["customer_api"].TotalRequests)
	}
	if stats["loan_api"].TotalRequests != 0 {
		t.Fatalf("loan api should be untouched")
	}
}
