package tool

import (
	"context"
	"math/rand"
	"strings"
	"testing"

	"github.com/securebank/callcenter-agent/agent/conversation"
	"github.com/securebank/callcenter-agent/banking/gateway"
	"github.com/securebank/callcenter-agent/banking/memdb"
)

func newTestExecutor(t *testing.T) *Executor {
	t.Helper()
	db := memdb.New(memdb.WithRand(rand.New(rand.NewSource(1))))
	gw := gateway.New(db,
		gateway.WithLatencyRange(0, 0),
		gateway.WithRand(rand.New(rand.NewSource(1))),
	)
	return NewExecutor(gw)
}

func TestExecuteUnknownTool(t *testing.T) {
	t.Parallel()
	e := newTestExecutor(t)

	result := e.Execute(context.Background(), "launch_rocket", nil, nil)
	if result.OK() {
		t.Fatalf("unknown tool must fail")
	}
	if !strings.Contains(result.ErrMessage(), "launch_rocket") {
		t.Fatalf("error should name the tool: %q", result.ErrMessage())
	}
}

func TestExecuteIdentifyByPhone(t *testing.T) {
	t.Parallel()
	e := newTestExecutor(t)
	ctx := context.Background()

	result := e.Execute(ctx, "identify_customer_by_phone",
		map[string]any{"phone_number": "+1-555-0101"}, nil)
	if !result.OK() {
		t.Fatalf("lookup failed: %q", result.ErrMessage())
	}
	if found, _ := result["customer_found"].(bool); !found {
		t.Fatalf("expected customer_found: %+v", result)
	}
	if result["customer_id"] != "CUST001" || result["name"] != "John Anderson" {
		t.Fatalf("wrong customer: %+v", result)
	}

	miss := e.Execute(ctx, "identify_customer_by_phone",
		map[string]any{"phone_number": "+1-555-9999"}, nil)
	if !miss.OK() {
		t.Fatalf("a miss is not a failure: %+v", miss)
	}
	if found, _ := miss["customer_found"].(bool); found {
		t.Fatalf("no customer should be found")
	}
	if miss["message"] != "No customer found with this phone number" {
		t.Fatalf("unexpected miss message: %v", miss["message"])
	}
}

func TestExecuteVerifyIdentity(t *testing.T) {
	t.Parallel()
	e := newTestExecutor(t)
	ctx := context.Background()

	result := e.Execute(ctx, "verify_customer_identity", map[string]any{
		"customer_id":   "CUST001",
		"ssn_last_four": "4521",
		"date_of_birth": "1985-03-15",
	}, nil)
	if verified, _ := result["verified"].(bool); !verified {
		t.Fatalf("expected verification to pass: %+v", result)
	}

	result = e.Execute(ctx, "verify_customer_identity", map[string]any{
		"customer_id":   "CUST001",
		"ssn_last_four": "0000",
		"date_of_birth": "1985-03-15",
	}, nil)
	if verified, _ := result["verified"].(bool); verified {
		t.Fatalf("wrong ssn must not verify")
	}
	if result["message"] != "Verification failed" {
		t.Fatalf("unexpected message: %v", result["message"])
	}
}

func TestExecuteAccountTools(t *testing.T) {
	t.Parallel()
	e := newTestExecutor(t)
	ctx := context.Background()

	result := e.Execute(ctx, "get_customer_accounts",
		map[string]any{"customer_id": "CUST001"}, nil)
	if !result.OK() {
		t.Fatalf("accounts lookup failed: %q", result.ErrMessage())
	}
	accounts, _ := result["accounts"].([]map[string]any)
	if len(accounts) != 2 || result["count"] != 2 {
		t.Fatalf("CUST001 should have 2 accounts: %+v", result)
	}

	result = e.Execute(ctx, "check_account_balance",
		map[string]any{"account_id": "ACC999"}, nil)
	if result.OK() || result.ErrMessage() != "Account not found" {
		t.Fatalf("missing account should fail cleanly: %+v", result)
	}

	result = e.Execute(ctx, "get_all_account_balances",
		map[string]any{"customer_id": "CUST001"}, nil)
	if !result.OK() || result["total_balance"] != "67582.67" {
		t.Fatalf("unexpected balances: %+v", result)
	}
}

func TestExecuteTransferFunds(t *testing.T) {
	t.Parallel()
	e := newTestExecutor(t)
	ctx := context.Background()

	result := e.Execute(ctx, "transfer_funds", map[string]any{
		"from_account_id": "ACC002",
		"to_account_id":   "ACC001",
		"amount":          250.0,
		"description":     "vacation fund",
	}, nil)
	if !result.OK() {
		t.Fatalf("transfer failed: %q", result.ErrMessage())
	}
	ref, _ := result["reference_number"].(string)
	if !strings.HasPrefix(ref, "REF") {
		t.Fatalf("expected a reference number, got %q", ref)
	}

	result = e.Execute(ctx, "transfer_funds", map[string]any{
		"from_account_id": "ACC001",
		"to_account_id":   "ACC002",
		"amount":          "not-a-number",
	}, nil)
	if result.OK() {
		t.Fatalf("bad amount must fail")
	}

	result = e.Execute(ctx, "transfer_funds", map[string]any{
		"from_account_id": "ACC001",
		"to_account_id":   "ACC002",
		"amount":          9999999.0,
	}, nil)
	if result.OK() || !strings.Contains(result.ErrMessage(), "insufficient funds") {
		t.Fatalf("overdraft should surface the gateway error: %+v", result)
	}
}

func TestExecuteRecentTransactions(t *testing.T) {
	t.Parallel()
	e := newTestExecutor(t)

	result := e.Execute(context.Background(), "get_recent_transactions", map[string]any{
		"account_id": "ACC001",
		"limit":      5.0, // function-calling payloads deliver numbers as float64
	}, nil)
	if !result.OK() {
		t.Fatalf("lookup failed: %q", result.ErrMessage())
	}
	transactions, _ := result["transactions"].([]map[string]any)
	if len(transactions) == 0 || len(transactions) > 5 {
		t.Fatalf("limit not honored: %d transactions", len(transactions))
	}
	first := transactions[0]
	for _, key := range []string{"id", "date", "type", "amount", "status", "balance_after"} {
		if _, ok := first[key]; !ok {
			t.Fatalf("transaction line missing %q: %+v", key, first)
		}
	}
}

func TestExecuteCardTools(t *testing.T) {
	t.Parallel()
	e := newTestExecutor(t)
	ctx := context.Background()

	result := e.Execute(ctx, "get_card_summary",
		map[string]any{"customer_id": "CUST002"}, nil)
	if !result.OK() || result["total_cards"] != 2 {
		t.Fatalf("unexpected card summary: %+v", result)
	}

	result = e.Execute(ctx, "report_card_lost_stolen", map[string]any{
		"customer_id":    "CUST001",
		"card_last_four": "0000",
		"is_stolen":      true,
	}, nil)
	if result.OK() || !strings.Contains(result.ErrMessage(), "no card found ending in 0000") {
		t.Fatalf("unknown card should fail with the gateway message: %+v", result)
	}
}

func TestExecuteSupportTools(t *testing.T) {
	t.Parallel()
	e := newTestExecutor(t)
	ctx := context.Background()

	result := e.Execute(ctx, "create_support_ticket", map[string]any{
		"customer_id": "CUST003",
		"category":    "complaint",
		"subject":     "App keeps crashing",
		"description": "The mobile app crashes on login.",
	}, nil)
	if !result.OK() {
		t.Fatalf("create failed: %q", result.ErrMessage())
	}
	if result["priority"] != "medium" {
		t.Fatalf("default priority should be medium: %+v", result)
	}
	if result["expected_response_time"] != "Within 24 hours" {
		t.Fatalf("unexpected response time: %v", result["expected_response_time"])
	}

	ticketID, _ := result["ticket_id"].(string)
	result = e.Execute(ctx, "escalate_ticket", map[string]any{
		"ticket_id": ticketID,
		"reason":    "customer called twice",
	}, nil)
	if !result.OK() || result["new_priority"] != "high" {
		t.Fatalf("escalation should bump medium to high: %+v", result)
	}
}

func TestExecuteRecordsAction(t *testing.T) {
	t.Parallel()
	e := newTestExecutor(t)
	conv := conversation.NewContext("s1")

	e.Execute(context.Background(), "get_customer_accounts",
		map[string]any{"customer_id": "CUST001"}, conv)

	if len(conv.ActionsTaken) != 1 {
		t.Fatalf("expected one recorded action, got %d", len(conv.ActionsTaken))
	}
	action := conv.ActionsTaken[0]
	if action.Type != "get_customer_accounts" {
		t.Fatalf("wrong tool recorded: %+v", action)
	}
	if ok, _ := action.Details["success"].(bool); !ok {
		t.Fatalf("action should record success: %+v", action.Details)
	}
}
