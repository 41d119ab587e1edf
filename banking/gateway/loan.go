package gateway

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/securebank/callcenter-agent/banking/memdb"
	"github.com/securebank/callcenter-agent/banking/model"
)

// LoanAPI fronts the loan servicing system: summaries, payment schedules
// and payoff quotes.
type LoanAPI struct {
	c  *client
	db *memdb.DB
}

func newLoanAPI(db *memdb.DB, cfg simConfig) *LoanAPI {
	return &LoanAPI{
		c:  newClient("LoanAPI", 60*time.Millisecond, 200*time.Millisecond, cfg),
		db: db,
	}
}

func (api *LoanAPI) Stats() Stats { return api.c.stats() }

// LoanLine is one loan inside a customer summary.
type LoanLine struct {
	LoanID          string `json:"loan_id"`
	Type            string `json:"type"`
	Balance         string `json:"balance"`
	MonthlyPayment  string `json:"monthly_payment"`
	NextPaymentDate string `json:"next_payment_date"`
	Status          string `json:"status"`
}

// LoanSummary aggregates a customer's loan portfolio.
type LoanSummary struct {
	CustomerID          string     `json:"customer_id"`
	TotalLoans          int        `json:"total_loans"`
	ActiveLoans         int        `json:"active_loans"`
	TotalBalance        string     `json:"total_balance"`
	TotalMonthlyPayment string     `json:"total_monthly_payment"`
	Loans               []LoanLine `json:"loans"`
}

// ScheduledPayment is one upcoming installment. Principal and interest are
// rough 70/30 estimates, not an amortization table.
type ScheduledPayment struct {
	PaymentNumber     int    `json:"payment_number"`
	DueDate           string `json:"due_date"`
	Amount            string `json:"amount"`
	PrincipalEstimate string `json:"principal_estimate"`
	InterestEstimate  string `json:"interest_estimate"`
}

// PaymentSchedule lists the next installments for a loan.
type PaymentSchedule struct {
	LoanID            string             `json:"loan_id"`
	LoanType          string             `json:"loan_type"`
	CurrentBalance    string             `json:"current_balance"`
	InterestRate      string             `json:"interest_rate"`
	PaymentsMade      int                `json:"payments_made"`
	PaymentsRemaining int                `json:"payments_remaining"`
	MaturityDate      string             `json:"maturity_date"`
	UpcomingPayments  []ScheduledPayment `json:"upcoming_payments"`
}

// PayoffQuote is the amount needed to close a loan, valid for ten days.
type PayoffQuote struct {
	LoanID          string `json:"loan_id"`
	CurrentBalance  string `json:"current_balance"`
	AccruedInterest string `json:"accrued_interest"`
	PayoffAmount    string `json:"payoff_amount"`
	ValidThrough    string `json:"valid_through"`
	Note            string `json:"note"`
}

func (api *LoanAPI) Loan(ctx context.Context, loanID string) Response[*model.Loan] {
	return run(ctx, api.c, fmt.Sprintf("get_loan(%s)", loanID), func() (*model.Loan, error) {
		loan, _ := api.db.Loan(loanID)
		return loan, nil
	})
}

func (api *LoanAPI) CustomerLoans(ctx context.Context, customerID string) Response[[]*model.Loan] {
	return run(ctx, api.c, fmt.Sprintf("get_customer_loans(%s)", customerID), func() ([]*model.Loan, error) {
		return api.db.CustomerLoans(customerID), nil
	})
}

func (api *LoanAPI) Summary(ctx context.Context, customerID string) Response[*LoanSummary] {
	return run(ctx, api.c, fmt.Sprintf("get_loan_summary(%s)", customerID), func() (*LoanSummary, error) {
		loans := api.db.CustomerLoans(customerID)
		if len(loans) == 0 {
			return &LoanSummary{
				CustomerID:          customerID,
				TotalBalance:        "0",
				TotalMonthlyPayment: "0",
				Loans:               []LoanLine{},
			}, nil
		}

		totalBalance := decimal.Zero
		totalMonthly := decimal.Zero
		active := 0
		lines := make([]LoanLine, 0, len(loans))
		for _, loan := range loans {
			if loan.Status == model.LoanActive {
				active++
				totalBalance = totalBalance.Add(loan.CurrentBalance)
				totalMonthly = totalMonthly.Add(loan.MonthlyPayment)
			}
			lines = append(lines, LoanLine{
				LoanID:          loan.LoanID,
				Type:            string(loan.LoanType),
				Balance:         loan.CurrentBalance.String(),
				MonthlyPayment:  loan.MonthlyPayment.String(),
				NextPaymentDate: loan.NextPaymentDate.Format("2006-01-02"),
				Status:          string(loan.Status),
			})
		}

		return &LoanSummary{
			CustomerID:          customerID,
			TotalLoans:          len(loans),
			ActiveLoans:         active,
			TotalBalance:        totalBalance.String(),
			TotalMonthlyPayment: totalMonthly.String(),
			Loans:               lines,
		}, nil
	})
}

func (api *LoanAPI) PaymentSchedule(ctx context.Context, loanID string) Response[*PaymentSchedule] {
	return run(ctx, api.c, fmt.Sprintf("get_payment_schedule(%s)", loanID), func() (*PaymentSchedule, error) {
		loan, ok := api.db.Loan(loanID)
		if !ok {
			return nil, nil
		}

		count := loan.PaymentsRemaining
		if count > 6 {
			count = 6
		}

		principal := loan.MonthlyPayment.Mul(decimal.RequireFromString("0.7")).Round(2)
		interest := loan.MonthlyPayment.Mul(decimal.RequireFromString("0.3")).Round(2)

		payments := make([]ScheduledPayment, 0, count)
		dueDate := loan.NextPaymentDate
		for i := 0; i < count; i++ {
			payments = append(payments, ScheduledPayment{
				PaymentNumber:     loan.PaymentsMade + i + 1,
				DueDate:           dueDate.Format("2006-01-02"),
				Amount:            loan.MonthlyPayment.String(),
				PrincipalEstimate: principal.String(),
				InterestEstimate:  interest.String(),
			})
			dueDate = nextMonth(dueDate)
		}

		return &PaymentSchedule{
			LoanID:            loanID,
			LoanType:          string(loan.LoanType),
			CurrentBalance:    loan.CurrentBalance.String(),
			InterestRate:      loan.InterestRate.String(),
			PaymentsMade:      loan.PaymentsMade,
			PaymentsRemaining: loan.PaymentsRemaining,
			MaturityDate:      loan.MaturityDate.Format("2006-01-02"),
			UpcomingPayments:  payments,
		}, nil
	})
}

const payoffValidDays = 10

func (api *LoanAPI) PayoffQuote(ctx context.Context, loanID string) Response[*PayoffQuote] {
	return run(ctx, api.c, fmt.Sprintf("get_payoff_amount(%s)", loanID), func() (*PayoffQuote, error) {
		loan, ok := api.db.Loan(loanID)
		if !ok {
			return nil, nil
		}

		// Current balance plus interest accrued over the processing window.
		dailyRate := loan.InterestRate.
			Div(decimal.NewFromInt(365)).
			Div(decimal.NewFromInt(100))
		accrued := loan.CurrentBalance.Mul(dailyRate).Mul(decimal.NewFromInt(payoffValidDays))
		payoff := loan.CurrentBalance.Add(accrued)

		return &PayoffQuote{
			LoanID:          loanID,
			CurrentBalance:  loan.CurrentBalance.String(),
			AccruedInterest: accrued.Round(2).String(),
			PayoffAmount:    payoff.Round(2).String(),
			ValidThrough:    time.Now().AddDate(0, 0, payoffValidDays).Format("2006-01-02"),
			Note:            "Payoff amount valid for 10 days. Contact us for exact payoff after this date.",
		}, nil
	})
}

// nextMonth advances a due date one month, clamping to the 28th when the
// next month is shorter than the current day of month.
func nextMonth(d time.Time) time.Time {
	year, month, day := d.Date()
	next := time.Date(year, month+1, day, 0, 0, 0, 0, d.Location())
	if next.Day() != day {
		next = time.Date(year, month+1, 28, 0, 0, 0, 0, d.Location())
	}
	return next
}
