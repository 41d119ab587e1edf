package orchestrator

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/securebank/callcenter-agent/agent/contract"
	"github.com/securebank/callcenter-agent/banking/gateway"
	"github.com/securebank/callcenter-agent/banking/memdb"
)

func newTestAgent(t *testing.T) *Agent {
	t.Helper()
	db := memdb.New(memdb.WithRand(rand.New(rand.NewSource(1))))
	gw := gateway.New(db,
		gateway.WithLatencyRange(0, 0),
		gateway.WithRand(rand.New(rand.NewSource(1))),
	)
	agent, err := New(gw)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return agent
}

func TestProcessMessageInvalidSession(t *testing.T) {
	t.Parallel()
	agent := newTestAgent(t)

	result := agent.ProcessMessage(context.Background(), "no-such-session", "hello")
	if result.Err != "Invalid session ID" {
		t.Fatalf("unexpected error: %q", result.Err)
	}
	if !strings.Contains(result.Response, "session has expired") {
		t.Fatalf("expired-session reply missing: %q", result.Response)
	}
}

func TestAnonymousGreeting(t *testing.T) {
	t.Parallel()
	agent := newTestAgent(t)
	sessionID := agent.CreateSession()

	result := agent.ProcessMessage(context.Background(), sessionID, "good morning")
	if result.Err != "" {
		t.Fatalf("turn failed: %q", result.Err)
	}
	if result.Intent != contract.IntentGeneralInquiry {
		t.Fatalf("intent = %s", result.Intent)
	}
	if len(result.ToolsCalled) != 0 {
		t.Fatalf("anonymous caller should trigger no tools: %v", result.ToolsCalled)
	}
	if !strings.Contains(result.Response, "Welcome to SecureBank") {
		t.Fatalf("greeting missing: %q", result.Response)
	}
}

func TestIdentifyThenBalanceFlow(t *testing.T) {
	t.Parallel()
	agent := newTestAgent(t)
	ctx := context.Background()
	sessionID := agent.CreateSession()

	result := agent.ProcessMessage(ctx, sessionID, "My phone number is +1-555-0101")
	if result.Intent != contract.IntentIdentify {
		t.Fatalf("intent = %s", result.Intent)
	}
	if !result.CustomerIdentified {
		t.Fatalf("caller should be identified after the lookup")
	}
	if !strings.Contains(result.Response, "Hello John Anderson!") {
		t.Fatalf("identify reply wrong: %q", result.Response)
	}
	if !strings.Contains(result.SessionSummary, "CUST001") {
		t.Fatalf("summary should name the customer: %q", result.SessionSummary)
	}

	result = agent.ProcessMessage(ctx, sessionID, "What's my account balance?")
	if result.Intent != contract.IntentBalanceInquiry {
		t.Fatalf("intent = %s", result.Intent)
	}
	if len(result.ToolsCalled) != 1 || result.ToolsCalled[0] != "get_all_account_balances" {
		t.Fatalf("unexpected tools: %v", result.ToolsCalled)
	}
	if !strings.Contains(result.Response, "Your total balance across all accounts is $67582.67.") {
		t.Fatalf("balance reply wrong: %q", result.Response)
	}
}

func TestLostCardFlow(t *testing.T) {
	t.Parallel()
	agent := newTestAgent(t)
	ctx := context.Background()
	sessionID := agent.CreateSession()

	agent.ProcessMessage(ctx, sessionID, "My phone number is +1-555-0101")

	result := agent.ProcessMessage(ctx, sessionID, "I lost my card ending in 4521")
	if result.Intent != contract.IntentLostCard {
		t.Fatalf("intent = %s", result.Intent)
	}
	if len(result.ToolsCalled) != 1 || result.ToolsCalled[0] != "report_card_lost_stolen" {
		t.Fatalf("unexpected tools: %v", result.ToolsCalled)
	}
	report := result.ToolResults[0].Result
	if report["report_type"] != "lost" || report["status"] != "lost" {
		t.Fatalf("card should be reported lost: %+v", report)
	}
	if !strings.Contains(result.Response, "Actions taken:") {
		t.Fatalf("reply should list actions: %q", result.Response)
	}
}

func TestUnidentifiedBalanceAsksForIdentity(t *testing.T) {
	t.Parallel()
	agent := newTestAgent(t)
	sessionID := agent.CreateSession()

	result := agent.ProcessMessage(context.Background(), sessionID, "what's my balance")
	if result.Intent != contract.IntentBalanceInquiry {
		t.Fatalf("intent = %s", result.Intent)
	}
	if len(result.ToolsCalled) != 0 {
		t.Fatalf("no tools should run for an anonymous balance inquiry: %v", result.ToolsCalled)
	}
	if !strings.Contains(result.Response, "phone number or email") {
		t.Fatalf("reply should ask for an identifier: %q", result.Response)
	}
}

func TestIdentifyCustomerDirect(t *testing.T) {
	t.Parallel()
	agent := newTestAgent(t)
	ctx := context.Background()
	sessionID := agent.CreateSession()

	result, err := agent.IdentifyCustomer(ctx, sessionID, "", "sarah.mitchell@email.com")
	if err != nil {
		t.Fatalf("IdentifyCustomer: %v", err)
	}
	if found, _ := result["customer_found"].(bool); !found {
		t.Fatalf("customer should be found: %+v", result)
	}

	// With an identified caller, a small-talk turn falls back to the
	// profile overview.
	turn := agent.ProcessMessage(ctx, sessionID, "good morning")
	if !turn.CustomerIdentified {
		t.Fatalf("session should carry the identified customer")
	}
	if len(turn.ToolsCalled) != 1 || turn.ToolsCalled[0] != "get_customer_profile" {
		t.Fatalf("unexpected tools: %v", turn.ToolsCalled)
	}
	if !strings.Contains(turn.Response, "Here's your account overview:") {
		t.Fatalf("profile overview missing: %q", turn.Response)
	}

	if _, err := agent.IdentifyCustomer(ctx, sessionID, "", ""); !errors.Is(err, contract.ErrNoIdentifier) {
		t.Fatalf("expected ErrNoIdentifier, got %v", err)
	}

	if _, err := agent.IdentifyCustomer(ctx, "gone", "+1-555-0101", ""); !errors.Is(err, contract.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestEndSession(t *testing.T) {
	t.Parallel()
	agent := newTestAgent(t)
	ctx := context.Background()
	sessionID := agent.CreateSession()

	agent.ProcessMessage(ctx, sessionID, "my email is john.anderson@email.com")
	agent.ProcessMessage(ctx, sessionID, "show me my accounts")

	if agent.SessionCount() != 1 {
		t.Fatalf("session count = %d", agent.SessionCount())
	}

	summary, err := agent.EndSession(sessionID)
	if err != nil {
		t.Fatalf("EndSession: %v", err)
	}
	if summary.SessionID != sessionID {
		t.Fatalf("wrong session id: %q", summary.SessionID)
	}
	// Two turns: two user messages, two replies, plus tool log entries.
	if summary.MessageCount < 4 {
		t.Fatalf("message count = %d", summary.MessageCount)
	}
	if summary.ActionCount == 0 {
		t.Fatalf("tool invocations should be recorded")
	}
	if len(summary.IntentsDetected) != 2 {
		t.Fatalf("intents = %v", summary.IntentsDetected)
	}
	if agent.SessionCount() != 0 {
		t.Fatalf("session should be gone")
	}

	if _, err := agent.EndSession(sessionID); !errors.Is(err, contract.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestListTools(t *testing.T) {
	t.Parallel()
	agent := newTestAgent(t)

	listings := agent.ListTools()
	if len(listings) != 25 {
		t.Fatalf("tool count = %d, want 25", len(listings))
	}
	for _, l := range listings {
		if l.Name == "" || l.Description == "" {
			t.Fatalf("incomplete listing: %+v", l)
		}
	}
}
