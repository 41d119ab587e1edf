package gateway

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/securebank/callcenter-agent/banking/memdb"
	"github.com/securebank/callcenter-agent/banking/model"
)

// SupportAPI fronts the CRM ticketing system: ticket CRUD, history and
// escalation.
type SupportAPI struct {
	c  *client
	db *memdb.DB
}

func newSupportAPI(db *memdb.DB, cfg simConfig) *SupportAPI {
	return &SupportAPI{
		c:  newClient("SupportAPI", 30*time.Millisecond, 120*time.Millisecond, cfg),
		db: db,
	}
}

func (api *SupportAPI) Stats() Stats { return api.c.stats() }

// CreateTicketInput carries the fields for opening a new ticket. Unknown
// category/priority strings fall back to general_inquiry/medium.
type CreateTicketInput struct {
	CustomerID           string
	Category             string
	Subject              string
	Description          string
	Priority             string
	RelatedAccountID     string
	RelatedTransactionID string
}

// TicketReceipt confirms a created ticket.
type TicketReceipt struct {
	TicketID             string `json:"ticket_id"`
	Status               string `json:"status"`
	Priority             string `json:"priority"`
	Category             string `json:"category"`
	CreatedAt            string `json:"created_at"`
	Message              string `json:"message"`
	ExpectedResponseTime string `json:"expected_response_time"`
}

// UpdateTicketInput carries optional ticket changes. Setting Resolution
// also resolves the ticket.
type UpdateTicketInput struct {
	Status     string
	AddNote    string
	Resolution string
}

// TicketUpdateResult confirms applied ticket changes.
type TicketUpdateResult struct {
	TicketID       string   `json:"ticket_id"`
	UpdatesApplied []string `json:"updates_applied"`
	CurrentStatus  string   `json:"current_status"`
	UpdatedAt      string   `json:"updated_at"`
}

// TicketDigest is one ticket inside a history summary.
type TicketDigest struct {
	TicketID   string `json:"ticket_id"`
	Subject    string `json:"subject"`
	Category   string `json:"category"`
	Status     string `json:"status"`
	CreatedAt  string `json:"created_at"`
	Resolution string `json:"resolution,omitempty"`
}

// TicketHistory summarizes a customer's ticket record by status.
type TicketHistory struct {
	CustomerID    string         `json:"customer_id"`
	TotalTickets  int            `json:"total_tickets"`
	Open          int            `json:"open"`
	InProgress    int            `json:"in_progress"`
	Resolved      int            `json:"resolved"`
	Closed        int            `json:"closed"`
	RecentTickets []TicketDigest `json:"recent_tickets"`
}

// EscalationResult confirms a priority escalation.
type EscalationResult struct {
	TicketID         string `json:"ticket_id"`
	PreviousPriority string `json:"previous_priority"`
	NewPriority      string `json:"new_priority"`
	Status           string `json:"status"`
	Reason           string `json:"reason"`
	EscalatedAt      string `json:"escalated_at"`
	Message          string `json:"message"`
}

func (api *SupportAPI) Ticket(ctx context.Context, ticketID string) Response[*model.SupportTicket] {
	return run(ctx, api.c, fmt.Sprintf("get_ticket(%s)", ticketID), func() (*model.SupportTicket, error) {
		ticket, _ := api.db.Ticket(ticketID)
		return ticket, nil
	})
}

func (api *SupportAPI) CustomerTickets(ctx context.Context, customerID string, includeClosed bool) Response[[]*model.SupportTicket] {
	return run(ctx, api.c, fmt.Sprintf("get_customer_tickets(%s)", customerID), func() ([]*model.SupportTicket, error) {
		return api.db.CustomerTickets(customerID, includeClosed), nil
	})
}

var validCategories = map[string]model.TicketCategory{
	string(model.CategoryAccountInquiry):     model.CategoryAccountInquiry,
	string(model.CategoryTransactionDispute): model.CategoryTransactionDispute,
	string(model.CategoryCardIssue):          model.CategoryCardIssue,
	string(model.CategoryLoanInquiry):        model.CategoryLoanInquiry,
	string(model.CategoryTechnicalIssue):     model.CategoryTechnicalIssue,
	string(model.CategoryFraudReport):        model.CategoryFraudReport,
	string(model.CategoryGeneralInquiry):     model.CategoryGeneralInquiry,
	string(model.CategoryComplaint):          model.CategoryComplaint,
}

var validPriorities = map[string]model.TicketPriority{
	string(model.PriorityLow):    model.PriorityLow,
	string(model.PriorityMedium): model.PriorityMedium,
	string(model.PriorityHigh):   model.PriorityHigh,
	string(model.PriorityUrgent): model.PriorityUrgent,
}

var priorityResponseTimes = map[model.TicketPriority]string{
	model.PriorityUrgent: "Within 1 hour",
	model.PriorityHigh:   "Within 4 hours",
	model.PriorityMedium: "Within 24 hours",
	model.PriorityLow:    "Within 48 hours",
}

func (api *SupportAPI) CreateTicket(ctx context.Context, input CreateTicketInput) Response[*TicketReceipt] {
	operation := fmt.Sprintf("create_ticket(%s, %s)", input.CustomerID, input.Category)
	return run(ctx, api.c, operation, func() (*TicketReceipt, error) {
		category, ok := validCategories[input.Category]
		if !ok {
			category = model.CategoryGeneralInquiry
		}
		priority, ok := validPriorities[input.Priority]
		if !ok {
			priority = model.PriorityMedium
		}

		now := time.Now()
		ticket := &model.SupportTicket{
			TicketID:             api.db.NextTicketID(),
			CustomerID:           input.CustomerID,
			Category:             category,
			Subject:              input.Subject,
			Description:          input.Description,
			Status:               model.TicketOpen,
			Priority:             priority,
			CreatedAt:            now,
			UpdatedAt:            now,
			RelatedAccountID:     input.RelatedAccountID,
			RelatedTransactionID: input.RelatedTransactionID,
		}
		api.db.CreateTicket(ticket)

		return &TicketReceipt{
			TicketID:  ticket.TicketID,
			Status:    string(model.TicketOpen),
			Priority:  string(priority),
			Category:  string(category),
			CreatedAt: now.Format(time.RFC3339),
			Message: fmt.Sprintf("Your support ticket #%s has been created. "+
				"A representative will review your request shortly.", ticket.TicketID),
			ExpectedResponseTime: priorityResponseTimes[priority],
		}, nil
	})
}

func (api *SupportAPI) UpdateTicket(ctx context.Context, ticketID string, input UpdateTicketInput) Response[*TicketUpdateResult] {
	return run(ctx, api.c, fmt.Sprintf("update_ticket(%s)", ticketID), func() (*TicketUpdateResult, error) {
		ticket, ok := api.db.Ticket(ticketID)
		if !ok {
			return nil, fmt.Errorf("ticket %s not found", ticketID)
		}

		var update memdb.TicketUpdate
		var applied []string

		if input.Status != "" {
			if status, valid := validStatuses[input.Status]; valid {
				update.Status = &status
				applied = append(applied, "status")
			}
		}
		if input.AddNote != "" {
			notes := append(append([]string{}, ticket.Notes...),
				fmt.Sprintf("[%s] %s", time.Now().Format("2006-01-02 15:04"), input.AddNote))
			update.Notes = notes
			applied = append(applied, "notes")
		}
		if input.Resolution != "" {
			update.Resolution = &input.Resolution
			resolved := model.TicketResolved
			update.Status = &resolved
			applied = append(applied, "resolution", "status")
		}

		api.db.UpdateTicket(ticketID, update)

		current := ticket.Status
		if update.Status != nil {
			current = *update.Status
		}

		return &TicketUpdateResult{
			TicketID:       ticketID,
			UpdatesApplied: applied,
			CurrentStatus:  string(current),
			UpdatedAt:      time.Now().Format(time.RFC3339),
		}, nil
	})
}

var validStatuses = map[string]model.TicketStatus{
	string(model.TicketOpen):       model.TicketOpen,
	string(model.TicketInProgress): model.TicketInProgress,
	string(model.TicketResolved):   model.TicketResolved,
	string(model.TicketClosed):     model.TicketClosed,
	string(model.TicketEscalated):  model.TicketEscalated,
}

func (api *SupportAPI) History(ctx context.Context, customerID string) Response[*TicketHistory] {
	return run(ctx, api.c, fmt.Sprintf("get_ticket_history(%s)", customerID), func() (*TicketHistory, error) {
		tickets := api.db.CustomerTickets(customerID, true)

		history := &TicketHistory{CustomerID: customerID, TotalTickets: len(tickets)}
		for _, t := range tickets {
			switch t.Status {
			case model.TicketOpen:
				history.Open++
			case model.TicketInProgress:
				history.InProgress++
			case model.TicketResolved:
				history.Resolved++
			case model.TicketClosed:
				history.Closed++
			}
		}

		sorted := append([]*model.SupportTicket{}, tickets...)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].CreatedAt.After(sorted[j].CreatedAt) })
		if len(sorted) > 5 {
			sorted = sorted[:5]
		}
		for _, t := range sorted {
			history.RecentTickets = append(history.RecentTickets, TicketDigest{
				TicketID:   t.TicketID,
				Subject:    t.Subject,
				Category:   string(t.Category),
				Status:     string(t.Status),
				CreatedAt:  t.CreatedAt.Format(time.RFC3339),
				Resolution: t.Resolution,
			})
		}
		return history, nil
	})
}

// Escalate bumps a ticket one priority step and marks it escalated.
func (api *SupportAPI) Escalate(ctx context.Context, ticketID, reason string) Response[*EscalationResult] {
	return run(ctx, api.c, fmt.Sprintf("escalate_ticket(%s)", ticketID), func() (*EscalationResult, error) {
		ticket, ok := api.db.Ticket(ticketID)
		if !ok {
			return nil, fmt.Errorf("ticket %s not found", ticketID)
		}

		previous := ticket.Priority
		newPriority := previous.Escalate()
		status := model.TicketEscalated
		notes := append(append([]string{}, ticket.Notes...),
			fmt.Sprintf("[%s] ESCALATED: %s", time.Now().Format("2006-01-02 15:04"), reason))

		api.db.UpdateTicket(ticketID, memdb.TicketUpdate{
			Status:   &status,
			Priority: &newPriority,
			Notes:    notes,
		})

		return &EscalationResult{
			TicketID:         ticketID,
			PreviousPriority: string(previous),
			NewPriority:      string(newPriority),
			Status:           string(status),
			Reason:           reason,
			EscalatedAt:      time.Now().Format(time.RFC3339),
			Message:          "Your ticket has been escalated and will receive priority attention.",
		}, nil
	})
}
