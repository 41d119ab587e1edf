// Package conversation tracks per-session state: who the caller is, what
// was said, which tools ran and what they returned.
package conversation

import (
	"fmt"
	"strings"
	"time"

	"github.com/securebank/callcenter-agent/agent/contract"
	"github.com/securebank/callcenter-agent/banking/model"
)

// Role labels a message's author.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
	RoleTool      Role = "tool"
)

// VerificationLevel is how far the caller's identity has been established.
type VerificationLevel string

const (
	VerificationNone  VerificationLevel = "none"
	VerificationBasic VerificationLevel = "basic"
	VerificationFull  VerificationLevel = "full"
)

// Message is one entry in the conversation log.
type Message struct {
	Role       Role                `json:"role"`
	Content    string              `json:"content"`
	Timestamp  time.Time           `json:"timestamp"`
	ToolName   string              `json:"tool_name,omitempty"`
	ToolResult contract.ToolResult `json:"tool_result,omitempty"`
}

// CustomerSession binds an identified customer to the conversation.
type CustomerSession struct {
	CustomerID        string                 `json:"customer_id"`
	Customer          *model.Customer        `json:"customer,omitempty"`
	Profile           *model.CustomerProfile `json:"profile,omitempty"`
	Verified          bool                   `json:"verified"`
	VerificationLevel VerificationLevel      `json:"verification_level"`
	StartedAt         time.Time              `json:"started_at"`
}

// Action records one tool invocation for the session audit trail.
type Action struct {
	Type      string         `json:"type"`
	Details   map[string]any `json:"details"`
	Timestamp time.Time      `json:"timestamp"`
}

// Context is the mutable state of one conversation. It is not safe for
// concurrent mutation; the agent processes at most one turn per session
// at a time.
type Context struct {
	SessionID     string                         `json:"session_id"`
	Session       *CustomerSession               `json:"session,omitempty"`
	Messages      []Message                      `json:"messages"`
	RetrievedData map[string]contract.ToolResult `json:"retrieved_data"`
	ActionsTaken  []Action                       `json:"actions_taken"`
	IntentHistory []contract.Intent              `json:"intent_history"`
	StartedAt     time.Time                      `json:"started_at"`
	LastActivity  time.Time                      `json:"last_activity"`
}

func NewContext(sessionID string) *Context {
	now := time.Now()
	return &Context{
		SessionID:     sessionID,
		RetrievedData: make(map[string]contract.ToolResult),
		StartedAt:     now,
		LastActivity:  now,
	}
}

func (c *Context) addMessage(msg Message) {
	msg.Timestamp = time.Now()
	c.Messages = append(c.Messages, msg)
	c.LastActivity = msg.Timestamp
}

func (c *Context) AddUserMessage(content string) {
	c.addMessage(Message{Role: RoleUser, Content: content})
}

func (c *Context) AddAssistantMessage(content string) {
	c.addMessage(Message{Role: RoleAssistant, Content: content})
}

// AddToolResult logs a tool execution and caches the payload under the tool
// name for later turns.
func (c *Context) AddToolResult(toolName string, result contract.ToolResult) {
	c.addMessage(Message{
		Role:       RoleTool,
		Content:    fmt.Sprintf("Tool '%s' executed", toolName),
		ToolName:   toolName,
		ToolResult: result,
	})
	c.RetrievedData[toolName] = result
}

func (c *Context) RecordAction(actionType string, details map[string]any) {
	c.ActionsTaken = append(c.ActionsTaken, Action{
		Type:      actionType,
		Details:   details,
		Timestamp: time.Now(),
	})
}

func (c *Context) AddIntent(intent contract.Intent) {
	c.IntentHistory = append(c.IntentHistory, intent)
}

func (c *Context) SetCustomerSession(session *CustomerSession) {
	c.Session = session
}

func (c *Context) IsCustomerIdentified() bool {
	return c.Session != nil && c.Session.Customer != nil
}

func (c *Context) IsCustomerVerified() bool {
	return c.Session != nil && c.Session.Verified
}

// CustomerID returns the identified customer's id, empty if unknown.
func (c *Context) CustomerID() string {
	if c.Session == nil {
		return ""
	}
	return c.Session.CustomerID
}

// Summary renders a one-line digest of the conversation so far.
func (c *Context) Summary() string {
	var parts []string

	if c.Session != nil && c.Session.Customer != nil {
		parts = append(parts, fmt.Sprintf("Customer: %s (ID: %s)",
			c.Session.Customer.FullName(), c.Session.CustomerID))
		parts = append(parts, fmt.Sprintf("Verification: %s", c.Session.VerificationLevel))
	}

	if len(c.IntentHistory) > 0 {
		recent := c.IntentHistory
		if len(recent) > 3 {
			recent = recent[len(recent)-3:]
		}
		labels := make([]string, len(recent))
		for i, intent := range recent {
			labels[i] = string(intent)
		}
		parts = append(parts, "Intents: "+strings.Join(labels, ", "))
	}

	if len(c.ActionsTaken) > 0 {
		recent := c.ActionsTaken
		if len(recent) > 3 {
			recent = recent[len(recent)-3:]
		}
		types := make([]string, len(recent))
		for i, action := range recent {
			types[i] = action.Type
		}
		parts = append(parts, "Recent actions: "+strings.Join(types, ", "))
	}

	if len(parts) == 0 {
		return "New conversation"
	}
	return strings.Join(parts, " | ")
}

// ChatHistory returns the recent user/assistant exchange in wire shape for
// an LLM prompt, skipping tool entries.
func (c *Context) ChatHistory(maxMessages int) []map[string]string {
	recent := c.Messages
	if len(recent) > maxMessages {
		recent = recent[len(recent)-maxMessages:]
	}

	history := make([]map[string]string, 0, len(recent))
	for _, msg := range recent {
		if msg.Role == RoleUser || msg.Role == RoleAssistant {
			history = append(history, map[string]string{
				"role":    string(msg.Role),
				"content": msg.Content,
			})
		}
	}
	return history
}
