// Package orchestrator is the agent's front door. It owns the session
// table and runs each caller message through the classify/plan/execute/
// respond turn graph.
package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloudwego/eino/compose"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/securebank/callcenter-agent/agent/contract"
	"github.com/securebank/callcenter-agent/agent/conversation"
	"github.com/securebank/callcenter-agent/agent/tool"
	"github.com/securebank/callcenter-agent/banking/gateway"
)

// Agent is the call-center agent service.
type Agent struct {
	gw       *gateway.Gateway
	executor *tool.Executor
	sessions *conversation.Store

	turnRunner compose.Runnable[turnInput, contract.TurnResult]
}

func New(gw *gateway.Gateway) (*Agent, error) {
	if gw == nil {
		return nil, errors.New("api gateway is required")
	}

	a := &Agent{
		gw:       gw,
		executor: tool.NewExecutor(gw),
		sessions: conversation.NewStore(),
	}

	turnRunner, err := a.compileTurnGraph(context.Background())
	if err != nil {
		return nil, err
	}
	a.turnRunner = turnRunner

	log.Info().Int("tools", len(tool.Definitions())).Msg("banking agent initialized")
	return a, nil
}

// CreateSession opens a new conversation and returns its id.
func (a *Agent) CreateSession() string {
	sessionID := uuid.NewString()
	a.sessions.Put(conversation.NewContext(sessionID))
	log.Info().Str("session_id", sessionID).Msg("created new session")
	return sessionID
}

// ProcessMessage runs one turn. Errors surface inside the TurnResult so the
// caller always has something to read back to the customer.
func (a *Agent) ProcessMessage(ctx context.Context, sessionID, message string) contract.TurnResult {
	conv, err := a.sessions.Get(sessionID)
	if err != nil {
		return contract.TurnResult{
			Err: "Invalid session ID",
			Response: "I'm sorry, but your session has expired. " +
				"Please start a new conversation.",
		}
	}

	conv.AddUserMessage(message)

	result, err := a.turnRunner.Invoke(ctx, turnInput{conv: conv, message: message})
	if err != nil {
		log.Error().Err(err).Str("session_id", sessionID).Msg("turn failed")
		return contract.TurnResult{
			Err: err.Error(),
			Response: "I'm sorry, something went wrong while handling your request. " +
				"Please try again.",
		}
	}
	return result
}

// IdentifyCustomer pre-identifies the caller, e.g. from caller id, without
// a conversational turn.
func (a *Agent) IdentifyCustomer(ctx context.Context, sessionID, phone, email string) (contract.ToolResult, error) {
	conv, err := a.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	var result contract.ToolResult
	switch {
	case phone != "":
		result = a.executor.Execute(ctx, "identify_customer_by_phone",
			map[string]any{"phone_number": phone}, conv)
	case email != "":
		result = a.executor.Execute(ctx, "identify_customer_by_email",
			map[string]any{"email": email}, conv)
	default:
		return nil, contract.ErrNoIdentifier
	}

	a.installCustomerSession(ctx, conv, result)
	return result, nil
}

// installCustomerSession binds the looked-up customer to the conversation.
// Identification alone never grants verified status.
func (a *Agent) installCustomerSession(ctx context.Context, conv *conversation.Context, result contract.ToolResult) {
	if found, _ := result["customer_found"].(bool); !found {
		return
	}
	customerID, _ := result["customer_id"].(string)
	if customerID == "" || conv.CustomerID() == customerID {
		return
	}

	resp := a.gw.Customer.Customer(ctx, customerID)
	if !resp.Success || resp.Data == nil {
		log.Warn().Str("customer_id", customerID).Msg("identified customer not retrievable")
		return
	}

	conv.SetCustomerSession(&conversation.CustomerSession{
		CustomerID:        customerID,
		Customer:          resp.Data,
		Verified:          false,
		VerificationLevel: conversation.VerificationBasic,
	})
}

// EndSession closes the conversation and returns its summary.
func (a *Agent) EndSession(sessionID string) (contract.SessionSummary, error) {
	conv, err := a.sessions.Remove(sessionID)
	if err != nil {
		return contract.SessionSummary{}, fmt.Errorf("end session %s: %w", sessionID, err)
	}

	summary := contract.SessionSummary{
		SessionID:       sessionID,
		DurationSeconds: conv.LastActivity.Sub(conv.StartedAt).Seconds(),
		MessageCount:    len(conv.Messages),
		ActionCount:     len(conv.ActionsTaken),
		IntentsDetected: conv.IntentHistory,
	}
	log.Info().Str("session_id", sessionID).Int("messages", summary.MessageCount).Msg("session ended")
	return summary, nil
}

// SessionCount reports how many conversations are open.
func (a *Agent) SessionCount() int {
	return a.sessions.Len()
}

// ToolListing is one row of the agent's tool inventory.
type ToolListing struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ListTools returns the agent's tool inventory.
func (a *Agent) ListTools() []ToolListing {
	defs := tool.Definitions()
	listings := make([]ToolListing, len(defs))
	for i, def := range defs {
		listings[i] = ToolListing{Name: def.Name, Description: def.Description}
	}
	return listings
}
