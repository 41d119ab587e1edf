package intent

import (
	"testing"

	"github.com/securebank/callcenter-agent/agent/contract"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	cases := []struct {
		message string
		want    contract.Intent
	}{
		{"What's my account balance?", contract.IntentBalanceInquiry},
		{"how much do I have", contract.IntentBalanceInquiry},
		{"Show me my recent transactions", contract.IntentTransactionHistory},
		{"I need my statement", contract.IntentTransactionHistory},
		{"I want to send money to my savings", contract.IntentTransferFunds},
		{"I lost my card yesterday", contract.IntentLostCard},
		{"my card was stolen", contract.IntentLostCard},
		{"please freeze my card", contract.IntentBlockCard},
		{"when is my mortgage due", contract.IntentLoanInquiry},
		{"what's the payoff on my auto note", contract.IntentLoanInquiry},
		{"I have a complaint", contract.IntentSupportTicket},
		{"there's a problem with the app", contract.IntentSupportTicket},
		{"show me my accounts", contract.IntentAccountInfo},
		{"what's my card status", contract.IntentCardInfo},
		{"my phone is 555-0101", contract.IntentIdentify},
		{"who am i to you", contract.IntentIdentify},
		{"good morning", contract.IntentGeneralInquiry},
		{"", contract.IntentGeneralInquiry},
	}

	for _, tc := range cases {
		if got := Classify(tc.message); got != tc.want {
			t.Fatalf("Classify(%q) = %s, want %s", tc.message, got, tc.want)
		}
	}
}

// The rule order is load-bearing: a message matching several intents must
// resolve to the earliest one in the table.
func TestClassifyOrderPins(t *testing.T) {
	t.Parallel()

	// "balance" (balance_inquiry) appears before "transfer" (transfer_funds).
	if got := Classify("transfer if my balance allows it"); got != contract.IntentBalanceInquiry {
		t.Fatalf("balance should shadow transfer, got %s", got)
	}
	// "history" (transaction_history) beats "loan" (loan_inquiry).
	if got := Classify("loan payment history"); got != contract.IntentTransactionHistory {
		t.Fatalf("history should shadow loan, got %s", got)
	}
	// "lost" (lost_card) beats "block" (block_card).
	if got := Classify("I lost my card, please block it"); got != contract.IntentLostCard {
		t.Fatalf("lost should shadow block, got %s", got)
	}
}

func TestClassifyCaseInsensitive(t *testing.T) {
	t.Parallel()

	if got := Classify("WHAT IS MY BALANCE"); got != contract.IntentBalanceInquiry {
		t.Fatalf("matching should ignore case, got %s", got)
	}
}
