// Package contract holds the shared types the agent pipeline passes between
// its stages: tool calls and results, per-turn output and session summaries.
package contract

import "errors"

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrUnknownTool     = errors.New("unknown tool")
	ErrNoIdentifier    = errors.New("must provide phone or email")
)

// Intent is a symbolic label for what the caller wants this turn.
type Intent string

const (
	IntentBalanceInquiry     Intent = "balance_inquiry"
	IntentTransactionHistory Intent = "transaction_history"
	IntentTransferFunds      Intent = "transfer_funds"
	IntentLostCard           Intent = "lost_card"
	IntentBlockCard          Intent = "block_card"
	IntentLoanInquiry        Intent = "loan_inquiry"
	IntentSupportTicket      Intent = "support_ticket"
	IntentAccountInfo        Intent = "account_info"
	IntentCardInfo           Intent = "card_info"
	IntentIdentify           Intent = "identify"
	IntentGeneralInquiry     Intent = "general_inquiry"
)

// ToolCall names one tool invocation the planner decided on.
type ToolCall struct {
	Name       string         `json:"name"`
	Parameters map[string]any `json:"parameters"`
}

// ToolResult is the executor's uniform envelope: a free-form payload that
// always carries a "success" flag and, on failure, an "error" message.
type ToolResult map[string]any

// OK reports the result's success flag.
func (r ToolResult) OK() bool {
	ok, _ := r["success"].(bool)
	return ok
}

// ErrMessage returns the error text, empty when the call succeeded.
func (r ToolResult) ErrMessage() string {
	msg, _ := r["error"].(string)
	return msg
}

// Failure builds a failed ToolResult with the given message.
func Failure(message string) ToolResult {
	return ToolResult{"success": false, "error": message}
}

// ToolOutcome pairs a tool name with the result it produced.
type ToolOutcome struct {
	Tool   string     `json:"tool"`
	Result ToolResult `json:"result"`
}

// TurnResult is everything one process_message turn produced. Err is set
// instead of a Go error so callers always receive a renderable reply.
type TurnResult struct {
	Response           string        `json:"response"`
	Intent             Intent        `json:"intent,omitempty"`
	ToolsCalled        []string      `json:"tools_called,omitempty"`
	ToolResults        []ToolOutcome `json:"tool_results,omitempty"`
	CustomerIdentified bool          `json:"customer_identified"`
	SessionSummary     string        `json:"session_summary,omitempty"`
	Err                string        `json:"error,omitempty"`
}

// SessionSummary is returned when a session ends.
type SessionSummary struct {
	SessionID       string   `json:"session_id"`
	DurationSeconds float64  `json:"duration_seconds"`
	MessageCount    int      `json:"messages_count"`
	ActionCount     int      `json:"actions_taken"`
	IntentsDetected []Intent `json:"intents_detected"`
}
