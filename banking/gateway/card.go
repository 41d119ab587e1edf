package gateway

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/securebank/callcenter-agent/banking/memdb"
	"github.com/securebank/callcenter-agent/banking/model"
)

// CardAPI fronts the card management system: card lookups, blocks and
// lost/stolen reports.
type CardAPI struct {
	c  *client
	db *memdb.DB
}

func newCardAPI(db *memdb.DB, cfg simConfig) *CardAPI {
	return &CardAPI{
		c:  newClient("CardAPI", 40*time.Millisecond, 150*time.Millisecond, cfg),
		db: db,
	}
}

func (api *CardAPI) Stats() Stats { return api.c.stats() }

// CardLine is one card inside a customer summary.
type CardLine struct {
	CardID         string `json:"card_id"`
	Type           string `json:"type"`
	LastFour       string `json:"last_four"`
	Expiration     string `json:"expiration"`
	Status         string `json:"status"`
	CreditLimit    string `json:"credit_limit,omitempty"`
	CurrentBalance string `json:"current_balance,omitempty"`
}

// CardSummary aggregates a customer's cards and credit exposure.
type CardSummary struct {
	CustomerID           string     `json:"customer_id"`
	TotalCards           int        `json:"total_cards"`
	ActiveCards          int        `json:"active_cards"`
	DebitCards           int        `json:"debit_cards"`
	CreditCards          int        `json:"credit_cards"`
	TotalCreditLimit     string     `json:"total_credit_limit"`
	TotalCreditUsed      string     `json:"total_credit_used"`
	TotalAvailableCredit string     `json:"total_available_credit"`
	Cards                []CardLine `json:"cards"`
}

// BlockResult confirms a card block or reports it was already blocked.
type BlockResult struct {
	CardID           string `json:"card_id"`
	CardNumberMasked string `json:"card_number_masked,omitempty"`
	Reason           string `json:"reason,omitempty"`
	PreviousStatus   string `json:"previous_status"`
	CurrentStatus    string `json:"current_status"`
	BlockedAt        string `json:"blocked_at,omitempty"`
	Message          string `json:"message"`
}

// LostStolenReport confirms a lost/stolen card report.
type LostStolenReport struct {
	CardID           string   `json:"card_id"`
	CardNumberMasked string   `json:"card_number_masked"`
	CardType         string   `json:"card_type"`
	ReportType       string   `json:"report_type"`
	Status           string   `json:"status"`
	ReportedAt       string   `json:"reported_at"`
	ActionsTaken     []string `json:"actions_taken"`
	NextSteps        string   `json:"next_steps"`
}

// CardStatusInfo is the current status view of one card.
type CardStatusInfo struct {
	CardID               string `json:"card_id"`
	CardNumberMasked     string `json:"card_number_masked"`
	CardType             string `json:"card_type"`
	Status               string `json:"status"`
	IsActive             bool   `json:"is_active"`
	ExpirationDate       string `json:"expiration_date"`
	InternationalEnabled bool   `json:"international_enabled"`
	ContactlessEnabled   bool   `json:"contactless_enabled"`
	DailyLimit           string `json:"daily_limit"`
}

func (api *CardAPI) Card(ctx context.Context, cardID string) Response[*model.Card] {
	return run(ctx, api.c, fmt.Sprintf("get_card(%s)", cardID), func() (*model.Card, error) {
		card, _ := api.db.Card(cardID)
		return card, nil
	})
}

func (api *CardAPI) CustomerCards(ctx context.Context, customerID string) Response[[]*model.Card] {
	return run(ctx, api.c, fmt.Sprintf("get_customer_cards(%s)", customerID), func() ([]*model.Card, error) {
		return api.db.CustomerCards(customerID), nil
	})
}

func (api *CardAPI) Summary(ctx context.Context, customerID string) Response[*CardSummary] {
	return run(ctx, api.c, fmt.Sprintf("get_card_summary(%s)", customerID), func() (*CardSummary, error) {
		cards := api.db.CustomerCards(customerID)
		if len(cards) == 0 {
			return &CardSummary{CustomerID: customerID, Cards: []CardLine{}}, nil
		}

		summary := &CardSummary{CustomerID: customerID, TotalCards: len(cards)}
		creditLimit := decimal.Zero
		creditUsed := decimal.Zero

		for _, card := range cards {
			if card.Status == model.CardActive {
				summary.ActiveCards++
			}
			switch card.CardType {
			case model.CardDebit:
				summary.DebitCards++
			case model.CardCredit:
				summary.CreditCards++
				creditLimit = creditLimit.Add(card.CreditLimit)
				creditUsed = creditUsed.Add(card.CurrentBalance)
			}

			line := CardLine{
				CardID:     card.CardID,
				Type:       string(card.CardType),
				LastFour:   card.LastFour(),
				Expiration: card.ExpirationDate,
				Status:     string(card.Status),
			}
			if card.CardType == model.CardCredit {
				line.CreditLimit = card.CreditLimit.String()
				line.CurrentBalance = card.CurrentBalance.String()
			}
			summary.Cards = append(summary.Cards, line)
		}

		summary.TotalCreditLimit = creditLimit.String()
		summary.TotalCreditUsed = creditUsed.String()
		summary.TotalAvailableCredit = creditLimit.Sub(creditUsed).String()
		return summary, nil
	})
}

var blockReasonStatus = map[string]model.CardStatus{
	"lost":             model.CardLost,
	"stolen":           model.CardStolen,
	"fraud":            model.CardBlocked,
	"customer_request": model.CardBlocked,
}

// Block freezes a card. Blocking an already-blocked card succeeds and says so.
func (api *CardAPI) Block(ctx context.Context, cardID, reason string) Response[*BlockResult] {
	if reason == "" {
		reason = "customer_request"
	}
	operation := fmt.Sprintf("block_card(%s, reason=%s)", cardID, reason)
	return run(ctx, api.c, operation, func() (*BlockResult, error) {
		card, ok := api.db.Card(cardID)
		if !ok {
			return nil, fmt.Errorf("card %s not found", cardID)
		}

		if card.Status == model.CardBlocked || card.Status == model.CardLost || card.Status == model.CardStolen {
			return &BlockResult{
				CardID:         cardID,
				PreviousStatus: string(card.Status),
				CurrentStatus:  string(card.Status),
				Message:        fmt.Sprintf("Card is already blocked (status: %s)", card.Status),
			}, nil
		}

		newStatus, mapped := blockReasonStatus[strings.ToLower(reason)]
		if !mapped {
			newStatus = model.CardBlocked
		}

		previous := card.Status
		api.db.BlockCard(cardID, newStatus)

		return &BlockResult{
			CardID:           cardID,
			CardNumberMasked: card.CardNumberMasked,
			Reason:           reason,
			PreviousStatus:   string(previous),
			CurrentStatus:    string(newStatus),
			BlockedAt:        time.Now().Format(time.RFC3339),
			Message: fmt.Sprintf("Card ending in %s has been blocked. "+
				"A replacement card will be shipped within 5-7 business days.", card.LastFour()),
		}, nil
	})
}

// ReportLostStolen blocks the customer's card matching the given last four
// digits. reportType is "lost" or "stolen".
func (api *CardAPI) ReportLostStolen(ctx context.Context, customerID, cardLastFour, reportType string) Response[*LostStolenReport] {
	operation := fmt.Sprintf("report_lost_stolen(%s, ****%s, %s)", customerID, cardLastFour, reportType)
	return run(ctx, api.c, operation, func() (*LostStolenReport, error) {
		var match *model.Card
		for _, card := range api.db.CustomerCards(customerID) {
			if strings.HasSuffix(card.CardNumberMasked, cardLastFour) {
				match = card
				break
			}
		}
		if match == nil {
			return nil, fmt.Errorf("no card found ending in %s for this customer", cardLastFour)
		}

		newStatus := model.CardLost
		if reportType == "stolen" {
			newStatus = model.CardStolen
		}
		api.db.BlockCard(match.CardID, newStatus)

		actions := []string{
			"Card has been immediately blocked",
			"All pending transactions will be reviewed",
		}
		if reportType == "stolen" {
			actions = append(actions, "Fraud monitoring team has been notified")
		}
		actions = append(actions, "A replacement card will be shipped within 5-7 business days")

		return &LostStolenReport{
			CardID:           match.CardID,
			CardNumberMasked: match.CardNumberMasked,
			CardType:         string(match.CardType),
			ReportType:       reportType,
			Status:           string(newStatus),
			ReportedAt:       time.Now().Format(time.RFC3339),
			ActionsTaken:     actions,
			NextSteps: "Please monitor your account for any unauthorized transactions. " +
				"If you see any suspicious activity, please report it immediately.",
		}, nil
	})
}

func (api *CardAPI) Status(ctx context.Context, cardID string) Response[*CardStatusInfo] {
	return run(ctx, api.c, fmt.Sprintf("check_card_status(%s)", cardID), func() (*CardStatusInfo, error) {
		card, ok := api.db.Card(cardID)
		if !ok {
			return nil, nil
		}
		return &CardStatusInfo{
			CardID:               card.CardID,
			CardNumberMasked:     card.CardNumberMasked,
			CardType:             string(card.CardType),
			Status:               string(card.Status),
			IsActive:             card.Status == model.CardActive,
			ExpirationDate:       card.ExpirationDate,
			InternationalEnabled: card.InternationalEnabled,
			ContactlessEnabled:   card.ContactlessEnabled,
			DailyLimit:           card.DailyLimit.String(),
		}, nil
	})
}
