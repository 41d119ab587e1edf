// Package respond turns tool outcomes into caller-facing text. The
// templates stand in for LLM-generated responses, so the rest of the
// pipeline stays the same when a real model takes over.
package respond

import (
	"fmt"
	"strings"

	"github.com/securebank/callcenter-agent/agent/contract"
	"github.com/securebank/callcenter-agent/agent/conversation"
)

// Generate builds the assistant's reply for one turn. Each tool outcome
// contributes one block; blocks are joined with blank lines.
func Generate(ctx *conversation.Context, outcomes []contract.ToolOutcome) string {
	if len(outcomes) == 0 {
		if !ctx.IsCustomerIdentified() {
			return "Hello! Welcome to SecureBank. I'd be happy to help you today. " +
				"To get started, could you please provide your phone number or email " +
				"so I can look up your account?"
		}
		name := "there"
		if ctx.Session != nil && ctx.Session.Customer != nil {
			name = ctx.Session.Customer.FirstName
		}
		return fmt.Sprintf("Hello %s! How can I assist you today? I can help you with "+
			"account balances, transactions, cards, loans, or any other banking needs.", name)
	}

	var blocks []string
	for _, outcome := range outcomes {
		data := outcome.Result
		if !data.OK() && data.ErrMessage() != "" {
			blocks = append(blocks, fmt.Sprintf("I encountered an issue: %s", data.ErrMessage()))
			continue
		}
		if block := formatToolResult(outcome.Tool, data); block != "" {
			blocks = append(blocks, block)
		}
	}

	if len(blocks) == 0 {
		return "I've processed your request. Is there anything else I can help you with?"
	}
	return strings.Join(blocks, "\n\n")
}

func formatToolResult(tool string, data contract.ToolResult) string {
	switch tool {
	case "identify_customer_by_phone", "identify_customer_by_email":
		if found, _ := data["customer_found"].(bool); found {
			return fmt.Sprintf("I found your account. Hello %s! "+
				"You're registered as a %s customer. "+
				"How can I assist you today?",
				str(data, "name"), str(data, "segment"))
		}
		return "I couldn't find an account with that information. " +
			"Could you please verify your phone number or email?"

	case "get_all_account_balances":
		var b strings.Builder
		fmt.Fprintf(&b, "Your total balance across all accounts is $%s.\n\nHere's the breakdown:",
			str(data, "total_balance"))
		for _, acc := range list(data, "breakdown") {
			fmt.Fprintf(&b, "\n- %s (%s): $%s",
				title(str(acc, "account_type")), str(acc, "account_id"), str(acc, "balance"))
		}
		return b.String()

	case "get_customer_accounts":
		accounts := list(data, "accounts")
		if len(accounts) == 0 {
			return "You don't have any accounts on file."
		}
		var b strings.Builder
		fmt.Fprintf(&b, "You have %d account(s):", len(accounts))
		for _, acc := range accounts {
			fmt.Fprintf(&b, "\n- %s (%s): $%s available - Status: %s",
				title(str(acc, "type")), str(acc, "account_number"),
				str(acc, "balance"), str(acc, "status"))
		}
		return b.String()

	case "get_recent_transactions":
		txs := list(data, "transactions")
		if len(txs) == 0 {
			return "No recent transactions found."
		}
		var b strings.Builder
		fmt.Fprintf(&b, "Here are your %d most recent transactions:", len(txs))
		shown := txs
		if len(shown) > 5 {
			shown = shown[:5]
		}
		for _, tx := range shown {
			fmt.Fprintf(&b, "\n- %s: %s - $%s (%s)",
				str(tx, "date"), str(tx, "description"), str(tx, "amount"), str(tx, "type"))
		}
		if len(txs) > 5 {
			fmt.Fprintf(&b, "\n...and %d more transactions.", len(txs)-5)
		}
		return b.String()

	case "get_card_summary":
		cards := list(data, "cards")
		if len(cards) == 0 {
			return "You don't have any cards on file."
		}
		var b strings.Builder
		fmt.Fprintf(&b, "You have %d card(s):", len(cards))
		for _, card := range cards {
			status := str(card, "status")
			if status == "active" {
				status = "Active"
			} else {
				status = strings.ToUpper(status)
			}
			fmt.Fprintf(&b, "\n- %s card ending in %s: %s",
				title(str(card, "type")), str(card, "last_four"), status)
			if limit := str(card, "credit_limit"); limit != "" {
				balance := str(card, "current_balance")
				if balance == "" {
					balance = "0"
				}
				fmt.Fprintf(&b, " (Credit limit: $%s, Balance: $%s)", limit, balance)
			}
		}
		return b.String()

	case "report_card_lost_stolen":
		masked := str(data, "card_number_masked")
		lastFour := masked
		if idx := strings.LastIndex(masked, "-"); idx >= 0 {
			lastFour = masked[idx+1:]
		}
		var b strings.Builder
		fmt.Fprintf(&b, "I've processed your report for the card ending in %s.\n\nActions taken:", lastFour)
		for _, action := range anyList(data, "actions_taken") {
			if s, _ := action.(string); s != "" {
				fmt.Fprintf(&b, "\n- %s", s)
			}
		}
		fmt.Fprintf(&b, "\n\n%s", str(data, "next_steps"))
		return b.String()

	case "get_loan_summary":
		loans := list(data, "loans")
		if len(loans) == 0 {
			return "You don't have any active loans."
		}
		var b strings.Builder
		fmt.Fprintf(&b, "You have %d loan(s) with a total balance of $%s:",
			len(loans), str(data, "total_balance"))
		for _, loan := range loans {
			fmt.Fprintf(&b, "\n- %s Loan (%s): $%s remaining",
				title(str(loan, "type")), str(loan, "loan_id"), str(loan, "balance"))
			fmt.Fprintf(&b, "\n  Monthly payment: $%s - Next due: %s",
				str(loan, "monthly_payment"), str(loan, "next_payment_date"))
		}
		return b.String()

	case "get_open_tickets":
		tickets := list(data, "tickets")
		if len(tickets) == 0 {
			return "You don't have any open support tickets."
		}
		var b strings.Builder
		fmt.Fprintf(&b, "You have %d open support ticket(s):", len(tickets))
		for _, ticket := range tickets {
			fmt.Fprintf(&b, "\n- %s: %s", str(ticket, "ticket_id"), str(ticket, "subject"))
			fmt.Fprintf(&b, "\n  Status: %s | Priority: %s | Created: %s",
				str(ticket, "status"), str(ticket, "priority"), str(ticket, "created_at"))
		}
		return b.String()

	case "get_customer_profile":
		var b strings.Builder
		b.WriteString("Here's your account overview:\n")
		fmt.Fprintf(&b, "- Accounts: %d\n", num(data, "accounts_count"))
		fmt.Fprintf(&b, "- Total value: $%s\n", str(data, "total_relationship_value"))
		fmt.Fprintf(&b, "- Active loans: %d\n", num(data, "active_loans_count"))
		fmt.Fprintf(&b, "- Cards: %d\n", num(data, "cards_count"))
		fmt.Fprintf(&b, "- Open tickets: %d\n", num(data, "open_tickets_count"))
		fmt.Fprintf(&b, "\nYou've been a valued customer for %d years.", num(data, "customer_since_years"))
		return b.String()

	case "transfer_funds":
		if data.OK() {
			return fmt.Sprintf("Transfer completed successfully!\n"+
				"Reference number: %s\n"+
				"Amount: $%s\n"+
				"From account: %s\n"+
				"To account: %s",
				str(data, "reference_number"), str(data, "amount"),
				str(data, "from_account"), str(data, "to_account"))
		}
		msg := data.ErrMessage()
		if msg == "" {
			msg = "Unknown error"
		}
		return fmt.Sprintf("Transfer failed: %s", msg)

	case "create_support_ticket":
		if data.OK() {
			return fmt.Sprintf("I've created a support ticket for you.\n"+
				"Ticket ID: %s\n"+
				"Expected response: %s\n\n%s",
				str(data, "ticket_id"), str(data, "expected_response_time"), str(data, "message"))
		}
	}

	return ""
}

func str(data map[string]any, key string) string {
	v, _ := data[key].(string)
	return v
}

func num(data map[string]any, key string) int {
	switch v := data[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	}
	return 0
}

func list(data map[string]any, key string) []map[string]any {
	switch v := data[key].(type) {
	case []map[string]any:
		return v
	case []any:
		items := make([]map[string]any, 0, len(v))
		for _, item := range v {
			if m, ok := item.(map[string]any); ok {
				items = append(items, m)
			}
		}
		return items
	}
	return nil
}

func anyList(data map[string]any, key string) []any {
	switch v := data[key].(type) {
	case []any:
		return v
	case []string:
		items := make([]any, len(v))
		for i, s := range v {
			items[i] = s
		}
		return items
	}
	return nil
}

// title upper-cases the first letter of each word, treating underscores as
// word breaks too so enum values like "money_market" render as "Money_Market".
func title(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		parts := strings.Split(w, "_")
		for j, p := range parts {
			if p == "" {
				continue
			}
			parts[j] = strings.ToUpper(p[:1]) + strings.ToLower(p[1:])
		}
		words[i] = strings.Join(parts, "_")
	}
	return strings.Join(words, " ")
}
