// Package intent maps raw caller text to a symbolic intent label by keyword
// matching. A production deployment would swap this for an NLU model; the
// rule table keeps the demo deterministic.
package intent

import (
	"strings"

	"github.com/securebank/callcenter-agent/agent/contract"
)

type rule struct {
	intent   contract.Intent
	patterns []string
}

// rules are evaluated in order and the first matching pattern wins, so
// earlier intents shadow later ones ("balance" beats "transfer" when both
// appear). The order is part of the classifier's behavior.
var rules = []rule{
	{contract.IntentBalanceInquiry, []string{"balance", "how much", "account balance", "available"}},
	{contract.IntentTransactionHistory, []string{"transactions", "history", "recent", "statement", "spending"}},
	{contract.IntentTransferFunds, []string{"transfer", "send money", "move money", "pay"}},
	{contract.IntentLostCard, []string{"lost", "stolen", "missing card", "can't find my card"}},
	{contract.IntentBlockCard, []string{"block", "freeze", "deactivate", "stop card"}},
	{contract.IntentLoanInquiry, []string{"loan", "payment schedule", "payoff", "mortgage"}},
	{contract.IntentSupportTicket, []string{"complaint", "issue", "problem", "help", "support"}},
	{contract.IntentAccountInfo, []string{"accounts", "my accounts", "account details"}},
	{contract.IntentCardInfo, []string{"cards", "credit card", "debit card", "card status"}},
	{contract.IntentIdentify, []string{"my name", "identify", "phone", "email", "who am i"}},
}

// Classify returns the first intent whose pattern appears in the message,
// or general_inquiry when nothing matches.
func Classify(message string) contract.Intent {
	lowered := strings.ToLower(message)
	for _, r := range rules {
		for _, pattern := range r.patterns {
			if strings.Contains(lowered, pattern) {
				return r.intent
			}
		}
	}
	return contract.IntentGeneralInquiry
}
