// Package model defines the banking entities served by the simulated backend.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type AccountType string

const (
	AccountChecking    AccountType = "checking"
	AccountSavings     AccountType = "savings"
	AccountMoneyMarket AccountType = "money_market"
	AccountCD          AccountType = "certificate_of_deposit"
)

type AccountStatus string

const (
	AccountActive  AccountStatus = "active"
	AccountFrozen  AccountStatus = "frozen"
	AccountClosed  AccountStatus = "closed"
	AccountPending AccountStatus = "pending"
)

type TransactionType string

const (
	TxDeposit       TransactionType = "deposit"
	TxWithdrawal    TransactionType = "withdrawal"
	TxTransferIn    TransactionType = "transfer_in"
	TxTransferOut   TransactionType = "transfer_out"
	TxPayment       TransactionType = "payment"
	TxFee           TransactionType = "fee"
	TxInterest      TransactionType = "interest"
	TxRefund        TransactionType = "refund"
	TxPurchase      TransactionType = "purchase"
	TxATMWithdrawal TransactionType = "atm_withdrawal"
)

// IsCredit reports whether the transaction type increases the balance.
func (t TransactionType) IsCredit() bool {
	switch t {
	case TxDeposit, TxTransferIn, TxRefund, TxInterest:
		return true
	}
	return false
}

type TransactionStatus string

const (
	TxCompleted TransactionStatus = "completed"
	TxPending   TransactionStatus = "pending"
	TxFailed    TransactionStatus = "failed"
	TxReversed  TransactionStatus = "reversed"
)

type LoanType string

const (
	LoanPersonal   LoanType = "personal"
	LoanMortgage   LoanType = "mortgage"
	LoanAuto       LoanType = "auto"
	LoanStudent    LoanType = "student"
	LoanCreditLine LoanType = "credit_line"
)

type LoanStatus string

const (
	LoanActive          LoanStatus = "active"
	LoanPaidOff         LoanStatus = "paid_off"
	LoanDefaulted       LoanStatus = "defaulted"
	LoanPendingApproval LoanStatus = "pending_approval"
)

type CardType string

const (
	CardDebit   CardType = "debit"
	CardCredit  CardType = "credit"
	CardPrepaid CardType = "prepaid"
)

type CardStatus string

const (
	CardActive  CardStatus = "active"
	CardBlocked CardStatus = "blocked"
	CardExpired CardStatus = "expired"
	CardLost    CardStatus = "lost"
	CardStolen  CardStatus = "stolen"
)

type TicketStatus string

const (
	TicketOpen       TicketStatus = "open"
	TicketInProgress TicketStatus = "in_progress"
	TicketResolved   TicketStatus = "resolved"
	TicketClosed     TicketStatus = "closed"
	TicketEscalated  TicketStatus = "escalated"
)

type TicketPriority string

const (
	PriorityLow    TicketPriority = "low"
	PriorityMedium TicketPriority = "medium"
	PriorityHigh   TicketPriority = "high"
	PriorityUrgent TicketPriority = "urgent"
)

// EscalationOrder is the priority ladder used by ticket escalation: each
// escalation bumps one step toward urgent.
var EscalationOrder = []TicketPriority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

// Escalate returns the next priority up the ladder. Urgent stays urgent.
func (p TicketPriority) Escalate() TicketPriority {
	for i, candidate := range EscalationOrder {
		if candidate == p && i+1 < len(EscalationOrder) {
			return EscalationOrder[i+1]
		}
	}
	if p == PriorityUrgent {
		return PriorityUrgent
	}
	return PriorityMedium
}

type TicketCategory string

const (
	CategoryAccountInquiry     TicketCategory = "account_inquiry"
	CategoryTransactionDispute TicketCategory = "transaction_dispute"
	CategoryCardIssue          TicketCategory = "card_issue"
	CategoryLoanInquiry        TicketCategory = "loan_inquiry"
	CategoryTechnicalIssue     TicketCategory = "technical_issue"
	CategoryFraudReport        TicketCategory = "fraud_report"
	CategoryGeneralInquiry     TicketCategory = "general_inquiry"
	CategoryComplaint          TicketCategory = "complaint"
)

type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
	Country string `json:"country"`
}

type Customer struct {
	CustomerID  string    `json:"customer_id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	DateOfBirth time.Time `json:"date_of_birth"`
	SSNLastFour string    `json:"ssn_last_four"`
	Address     Address   `json:"address"`
	CreatedAt   time.Time `json:"created_at"`
	Verified    bool      `json:"is_verified"`
	RiskScore   int       `json:"risk_score"`
	Segment     string    `json:"segment"` // standard, premium, private
}

func (c *Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}

type Account struct {
	AccountID        string          `json:"account_id"`
	CustomerID       string          `json:"customer_id"`
	AccountType      AccountType     `json:"account_type"`
	AccountNumber    string          `json:"account_number"` // masked
	RoutingNumber    string          `json:"routing_number"`
	Balance          decimal.Decimal `json:"balance"`
	AvailableBalance decimal.Decimal `json:"available_balance"`
	Currency         string          `json:"currency"`
	Status           AccountStatus   `json:"status"`
	OpenedDate       time.Time       `json:"opened_date"`
	InterestRate     decimal.Decimal `json:"interest_rate"`
	OverdraftLimit   decimal.Decimal `json:"overdraft_limit"`
	LastActivityDate time.Time       `json:"last_activity_date"`
}

type Transaction struct {
	TransactionID    string            `json:"transaction_id"`
	AccountID        string            `json:"account_id"`
	TransactionType  TransactionType   `json:"transaction_type"`
	Amount           decimal.Decimal   `json:"amount"`
	Currency         string            `json:"currency"`
	Description      string            `json:"description"`
	MerchantName     string            `json:"merchant_name,omitempty"`
	MerchantCategory string            `json:"merchant_category,omitempty"`
	Status           TransactionStatus `json:"status"`
	Timestamp        time.Time         `json:"timestamp"`
	ReferenceNumber  string            `json:"reference_number"`
	BalanceAfter     decimal.Decimal   `json:"balance_after"`
	Location         string            `json:"location,omitempty"`
}

type Loan struct {
	LoanID            string          `json:"loan_id"`
	CustomerID        string          `json:"customer_id"`
	LoanType          LoanType        `json:"loan_type"`
	PrincipalAmount   decimal.Decimal `json:"principal_amount"`
	CurrentBalance    decimal.Decimal `json:"current_balance"`
	InterestRate      decimal.Decimal `json:"interest_rate"` // annual percent
	TermMonths        int             `json:"term_months"`
	MonthlyPayment    decimal.Decimal `json:"monthly_payment"`
	NextPaymentDate   time.Time       `json:"next_payment_date"`
	NextPaymentAmount decimal.Decimal `json:"next_payment_amount"`
	Status            LoanStatus      `json:"status"`
	OriginationDate   time.Time       `json:"origination_date"`
	MaturityDate      time.Time       `json:"maturity_date"`
	PaymentsMade      int             `json:"payments_made"`
	PaymentsRemaining int             `json:"payments_remaining"`
	Collateral        string          `json:"collateral,omitempty"`
}

type Card struct {
	CardID               string          `json:"card_id"`
	CustomerID           string          `json:"customer_id"`
	AccountID            string          `json:"account_id"`
	CardType             CardType        `json:"card_type"`
	CardNumberMasked     string          `json:"card_number_masked"` // ****-****-****-1234
	ExpirationDate       string          `json:"expiration_date"`    // MM/YY
	Status               CardStatus      `json:"status"`
	CreditLimit          decimal.Decimal `json:"credit_limit"`
	CurrentBalance       decimal.Decimal `json:"current_balance"`
	AvailableCredit      decimal.Decimal `json:"available_credit"`
	IssuedDate           time.Time       `json:"issued_date"`
	DailyLimit           decimal.Decimal `json:"daily_limit"`
	InternationalEnabled bool            `json:"international_enabled"`
	ContactlessEnabled   bool            `json:"contactless_enabled"`
}

// LastFour returns the trailing digits of the masked card number.
func (c *Card) LastFour() string {
	masked := c.CardNumberMasked
	for i := len(masked) - 1; i >= 0; i-- {
		if masked[i] == '-' {
			return masked[i+1:]
		}
	}
	return masked
}

type SupportTicket struct {
	TicketID             string         `json:"ticket_id"`
	CustomerID           string         `json:"customer_id"`
	Category             TicketCategory `json:"category"`
	Subject              string         `json:"subject"`
	Description          string         `json:"description"`
	Status               TicketStatus   `json:"status"`
	Priority             TicketPriority `json:"priority"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
	AssignedTo           string         `json:"assigned_to,omitempty"`
	Resolution           string         `json:"resolution,omitempty"`
	RelatedAccountID     string         `json:"related_account_id,omitempty"`
	RelatedTransactionID string         `json:"related_transaction_id,omitempty"`
	Notes                []string       `json:"notes,omitempty"`
}

// CustomerProfile aggregates everything the bank knows about one customer.
type CustomerProfile struct {
	Customer               *Customer       `json:"customer"`
	Accounts               []*Account      `json:"accounts"`
	RecentTransactions     []*Transaction  `json:"recent_transactions"`
	Loans                  []*Loan         `json:"loans"`
	Cards                  []*Card         `json:"cards"`
	OpenTickets            []*SupportTicket `json:"open_tickets"`
	TotalRelationshipValue decimal.Decimal `json:"total_relationship_value"`
	CustomerSinceYears     int             `json:"customer_since_years"`
}
