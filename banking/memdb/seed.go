package memdb

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/securebank/callcenter-agent/banking/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func (db *DB) seed() {
	now := db.now()

	customers := []*model.Customer{
		{
			CustomerID:  "CUST001",
			FirstName:   "John",
			LastName:    "Anderson",
			Email:       "john.anderson@email.com",
			Phone:       "+1-555-0101",
			DateOfBirth: date(1985, time.March, 15),
			SSNLastFour: "4521",
			Address:     model.Address{Street: "123 Oak Street", City: "San Francisco", State: "CA", ZipCode: "94102", Country: "USA"},
			CreatedAt:   time.Date(2019, time.June, 15, 10, 30, 0, 0, time.UTC),
			Segment:     "premium",
			RiskScore:   25,
		},
		{
			CustomerID:  "CUST002",
			FirstName:   "Sarah",
			LastName:    "Mitchell",
			Email:       "sarah.mitchell@email.com",
			Phone:       "+1-555-0102",
			DateOfBirth: date(1990, time.July, 22),
			SSNLastFour: "7834",
			Address:     model.Address{Street: "456 Pine Avenue", City: "Los Angeles", State: "CA", ZipCode: "90001", Country: "USA"},
			CreatedAt:   time.Date(2020, time.January, 10, 14, 45, 0, 0, time.UTC),
			Segment:     "standard",
			RiskScore:   35,
		},
		{
			CustomerID:  "CUST003",
			FirstName:   "Michael",
			LastName:    "Chen",
			Email:       "michael.chen@email.com",
			Phone:       "+1-555-0103",
			DateOfBirth: date(1978, time.November, 8),
			SSNLastFour: "2156",
			Address:     model.Address{Street: "789 Maple Drive", City: "Seattle", State: "WA", ZipCode: "98101", Country: "USA"},
			CreatedAt:   time.Date(2015, time.March, 20, 9, 15, 0, 0, time.UTC),
			Segment:     "private",
			RiskScore:   15,
		},
		{
			CustomerID:  "CUST004",
			FirstName:   "Emily",
			LastName:    "Rodriguez",
			Email:       "emily.rodriguez@email.com",
			Phone:       "+1-555-0104",
			DateOfBirth: date(1995, time.May, 30),
			SSNLastFour: "9012",
			Address:     model.Address{Street: "321 Cedar Lane", City: "Austin", State: "TX", ZipCode: "78701", Country: "USA"},
			CreatedAt:   time.Date(2022, time.August, 5, 11, 0, 0, 0, time.UTC),
			Segment:     "standard",
			RiskScore:   45,
		},
		{
			CustomerID:  "CUST005",
			FirstName:   "Robert",
			LastName:    "Thompson",
			Email:       "robert.thompson@email.com",
			Phone:       "+1-555-0105",
			DateOfBirth: date(1968, time.September, 12),
			SSNLastFour: "3478",
			Address:     model.Address{Street: "555 Birch Road", City: "Chicago", State: "IL", ZipCode: "60601", Country: "USA"},
			CreatedAt:   time.Date(2010, time.November, 25, 16, 30, 0, 0, time.UTC),
			Segment:     "private",
			RiskScore:   20,
		},
	}
	for _, c := range customers {
		db.customers[c.CustomerID] = c
		db.phoneToCustomer[c.Phone] = c.CustomerID
		db.emailToCustomer[c.Email] = c.CustomerID
	}

	accounts := []*model.Account{
		{
			AccountID: "ACC001", CustomerID: "CUST001", AccountType: model.AccountChecking,
			AccountNumber: "****4521", RoutingNumber: "121000358",
			Balance: dec("15432.67"), AvailableBalance: dec("14932.67"),
			Currency: "USD", Status: model.AccountActive,
			OpenedDate: date(2019, time.June, 15), OverdraftLimit: dec("500.00"),
			LastActivityDate: now.Add(-2 * time.Hour),
		},
		{
			AccountID: "ACC002", CustomerID: "CUST001", AccountType: model.AccountSavings,
			AccountNumber: "****4522", RoutingNumber: "121000358",
			Balance: dec("52150.00"), AvailableBalance: dec("52150.00"),
			Currency: "USD", Status: model.AccountActive,
			OpenedDate: date(2019, time.July, 1), InterestRate: dec("4.25"),
			LastActivityDate: now.AddDate(0, 0, -5),
		},
		{
			AccountID: "ACC003", CustomerID: "CUST002", AccountType: model.AccountChecking,
			AccountNumber: "****7834", RoutingNumber: "121000358",
			Balance: dec("3245.89"), AvailableBalance: dec("3245.89"),
			Currency: "USD", Status: model.AccountActive,
			OpenedDate: date(2020, time.January, 10), OverdraftLimit: dec("200.00"),
			LastActivityDate: now.Add(-12 * time.Hour),
		},
		{
			AccountID: "ACC004", CustomerID: "CUST003", AccountType: model.AccountChecking,
			AccountNumber: "****2156", RoutingNumber: "121000358",
			Balance: dec("89234.50"), AvailableBalance: dec("88734.50"),
			Currency: "USD", Status: model.AccountActive,
			OpenedDate: date(2015, time.March, 20), OverdraftLimit: dec("2000.00"),
			LastActivityDate: now.Add(-1 * time.Hour),
		},
		{
			AccountID: "ACC005", CustomerID: "CUST003", AccountType: model.AccountSavings,
			AccountNumber: "****2157", RoutingNumber: "121000358",
			Balance: dec("245000.00"), AvailableBalance: dec("245000.00"),
			Currency: "USD", Status: model.AccountActive,
			OpenedDate: date(2015, time.April, 1), InterestRate: dec("4.50"),
			LastActivityDate: now.AddDate(0, 0, -3),
		},
		{
			AccountID: "ACC006", CustomerID: "CUST003", AccountType: model.AccountMoneyMarket,
			AccountNumber: "****2158", RoutingNumber: "121000358",
			Balance: dec("150000.00"), AvailableBalance: dec("150000.00"),
			Currency: "USD", Status: model.AccountActive,
			OpenedDate: date(2018, time.January, 15), InterestRate: dec("5.00"),
			LastActivityDate: now.AddDate(0, 0, -10),
		},
		{
			AccountID: "ACC007", CustomerID: "CUST004", AccountType: model.AccountChecking,
			AccountNumber: "****9012", RoutingNumber: "121000358",
			Balance: dec("1876.43"), AvailableBalance: dec("1876.43"),
			Currency: "USD", Status: model.AccountActive,
			OpenedDate: date(2022, time.August, 5), OverdraftLimit: dec("100.00"),
			LastActivityDate: now.Add(-6 * time.Hour),
		},
		{
			AccountID: "ACC008", CustomerID: "CUST005", AccountType: model.AccountChecking,
			AccountNumber: "****3478", RoutingNumber: "121000358",
			Balance: dec("45678.90"), AvailableBalance: dec("45178.90"),
			Currency: "USD", Status: model.AccountActive,
			OpenedDate: date(2010, time.November, 25), OverdraftLimit: dec("1000.00"),
			LastActivityDate: now.Add(-4 * time.Hour),
		},
		{
			AccountID: "ACC009", CustomerID: "CUST005", AccountType: model.AccountSavings,
			AccountNumber: "****3479", RoutingNumber: "121000358",
			Balance: dec("320000.00"), AvailableBalance: dec("320000.00"),
			Currency: "USD", Status: model.AccountActive,
			OpenedDate: date(2010, time.December, 1), InterestRate: dec("4.75"),
			LastActivityDate: now.AddDate(0, 0, -7),
		},
	}
	for _, a := range accounts {
		db.accounts[a.AccountID] = a
		db.customerAccounts[a.CustomerID] = append(db.customerAccounts[a.CustomerID], a.AccountID)
	}

	db.generateTransactions(accounts)

	loans := []*model.Loan{
		{
			LoanID: "LOAN001", CustomerID: "CUST001", LoanType: model.LoanAuto,
			PrincipalAmount: dec("35000.00"), CurrentBalance: dec("28456.78"),
			InterestRate: dec("6.5"), TermMonths: 60, MonthlyPayment: dec("685.50"),
			NextPaymentDate: now.AddDate(0, 0, 15), NextPaymentAmount: dec("685.50"),
			Status:          model.LoanActive,
			OriginationDate: date(2022, time.March, 1), MaturityDate: date(2027, time.March, 1),
			PaymentsMade: 20, PaymentsRemaining: 40,
			Collateral: "2022 Toyota Camry",
		},
		{
			LoanID: "LOAN002", CustomerID: "CUST003", LoanType: model.LoanMortgage,
			PrincipalAmount: dec("650000.00"), CurrentBalance: dec("542345.67"),
			InterestRate: dec("6.875"), TermMonths: 360, MonthlyPayment: dec("4267.89"),
			NextPaymentDate: now.AddDate(0, 0, 8), NextPaymentAmount: dec("4267.89"),
			Status:          model.LoanActive,
			OriginationDate: date(2019, time.June, 1), MaturityDate: date(2049, time.June, 1),
			PaymentsMade: 54, PaymentsRemaining: 306,
			Collateral: "789 Maple Drive, Seattle, WA",
		},
		{
			LoanID: "LOAN003", CustomerID: "CUST004", LoanType: model.LoanPersonal,
			PrincipalAmount: dec("10000.00"), CurrentBalance: dec("7234.56"),
			InterestRate: dec("9.99"), TermMonths: 36, MonthlyPayment: dec("322.67"),
			NextPaymentDate: now.AddDate(0, 0, 3), NextPaymentAmount: dec("322.67"),
			Status:          model.LoanActive,
			OriginationDate: date(2023, time.May, 1), MaturityDate: date(2026, time.May, 1),
			PaymentsMade: 18, PaymentsRemaining: 18,
		},
		{
			LoanID: "LOAN004", CustomerID: "CUST005", LoanType: model.LoanCreditLine,
			PrincipalAmount: dec("50000.00"), CurrentBalance: dec("12500.00"),
			InterestRate: dec("8.25"), TermMonths: 120, MonthlyPayment: dec("500.00"),
			NextPaymentDate: now.AddDate(0, 0, 20), NextPaymentAmount: dec("500.00"),
			Status:          model.LoanActive,
			OriginationDate: date(2020, time.January, 1), MaturityDate: date(2030, time.January, 1),
			PaymentsMade: 48, PaymentsRemaining: 72,
		},
	}
	for _, l := range loans {
		db.loans[l.LoanID] = l
		db.customerLoans[l.CustomerID] = append(db.customerLoans[l.CustomerID], l.LoanID)
	}

	cards := []*model.Card{
		{
			CardID: "CARD001", CustomerID: "CUST001", AccountID: "ACC001",
			CardType: model.CardDebit, CardNumberMasked: "****-****-****-4521",
			ExpirationDate: "09/26", Status: model.CardActive,
			IssuedDate: date(2023, time.September, 1), DailyLimit: dec("5000.00"),
			InternationalEnabled: true, ContactlessEnabled: true,
		},
		{
			CardID: "CARD002", CustomerID: "CUST001", AccountID: "ACC001",
			CardType: model.CardCredit, CardNumberMasked: "****-****-****-8834",
			ExpirationDate: "12/27", Status: model.CardActive,
			CreditLimit: dec("15000.00"), CurrentBalance: dec("3456.78"), AvailableCredit: dec("11543.22"),
			IssuedDate: date(2022, time.December, 1), DailyLimit: dec("10000.00"),
		},
		{
			CardID: "CARD003", CustomerID: "CUST002", AccountID: "ACC003",
			CardType: model.CardDebit, CardNumberMasked: "****-****-****-7834",
			ExpirationDate: "03/25", Status: model.CardActive,
			IssuedDate: date(2022, time.March, 15), DailyLimit: dec("2000.00"),
		},
		{
			CardID: "CARD004", CustomerID: "CUST003", AccountID: "ACC004",
			CardType: model.CardDebit, CardNumberMasked: "****-****-****-2156",
			ExpirationDate: "06/26", Status: model.CardActive,
			IssuedDate: date(2023, time.June, 1), DailyLimit: dec("10000.00"),
		},
		{
			CardID: "CARD005", CustomerID: "CUST003", AccountID: "ACC004",
			CardType: model.CardCredit, CardNumberMasked: "****-****-****-5567",
			ExpirationDate: "08/28", Status: model.CardActive,
			CreditLimit: dec("50000.00"), CurrentBalance: dec("8234.56"), AvailableCredit: dec("41765.44"),
			IssuedDate: date(2021, time.August, 1), DailyLimit: dec("25000.00"),
		},
		{
			CardID: "CARD006", CustomerID: "CUST004", AccountID: "ACC007",
			CardType: model.CardDebit, CardNumberMasked: "****-****-****-9012",
			ExpirationDate: "11/25", Status: model.CardActive,
			IssuedDate: date(2022, time.November, 1), DailyLimit: dec("1500.00"),
		},
		{
			CardID: "CARD007", CustomerID: "CUST005", AccountID: "ACC008",
			CardType: model.CardDebit, CardNumberMasked: "****-****-****-3478",
			ExpirationDate: "04/26", Status: model.CardActive,
			IssuedDate: date(2023, time.April, 1), DailyLimit: dec("7500.00"),
		},
		{
			CardID: "CARD008", CustomerID: "CUST002", AccountID: "ACC003",
			CardType: model.CardCredit, CardNumberMasked: "****-****-****-1199",
			ExpirationDate: "01/24", Status: model.CardLost,
			CreditLimit: dec("5000.00"), CurrentBalance: dec("1234.56"), AvailableCredit: dec("3765.44"),
			IssuedDate: date(2021, time.January, 15), DailyLimit: dec("3000.00"),
		},
	}
	for _, c := range cards {
		db.cards[c.CardID] = c
		db.customerCards[c.CustomerID] = append(db.customerCards[c.CustomerID], c.CardID)
	}

	tickets := []*model.SupportTicket{
		{
			TicketID: "TKT001", CustomerID: "CUST001",
			Category: model.CategoryTransactionDispute,
			Subject:  "Unauthorized charge dispute",
			Description: "I noticed a charge of $89.99 from 'UNKNOWN MERCHANT' " +
				"that I did not authorize.",
			Status: model.TicketInProgress, Priority: model.PriorityHigh,
			CreatedAt: now.AddDate(0, 0, -2), UpdatedAt: now.Add(-4 * time.Hour),
			AssignedTo: "Agent Smith", RelatedAccountID: "ACC001",
			Notes: []string{
				"Customer contacted via phone",
				"Investigating merchant details",
				"Provisional credit issued",
			},
		},
		{
			TicketID: "TKT002", CustomerID: "CUST002",
			Category:    model.CategoryCardIssue,
			Subject:     "Lost credit card",
			Description: "Lost my credit card ending in 1199. Need replacement.",
			Status:      model.TicketResolved, Priority: model.PriorityUrgent,
			CreatedAt: now.AddDate(0, 0, -5), UpdatedAt: now.AddDate(0, 0, -3),
			AssignedTo: "Agent Johnson",
			Resolution: "Card blocked immediately. New card shipped via express delivery.",
			Notes: []string{
				"Card blocked at 2:34 PM",
				"No fraudulent transactions detected",
				"New card shipped to home address",
			},
		},
		{
			TicketID: "TKT003", CustomerID: "CUST004",
			Category:    model.CategoryLoanInquiry,
			Subject:     "Question about payment schedule",
			Description: "Want to understand my loan payment schedule and if I can make extra payments.",
			Status:      model.TicketOpen, Priority: model.PriorityMedium,
			CreatedAt: now.Add(-6 * time.Hour), UpdatedAt: now.Add(-6 * time.Hour),
		},
		{
			TicketID: "TKT004", CustomerID: "CUST003",
			Category:    model.CategoryTechnicalIssue,
			Subject:     "Mobile app not loading account info",
			Description: "The mobile banking app shows an error when trying to view account details.",
			Status:      model.TicketResolved, Priority: model.PriorityLow,
			CreatedAt: now.AddDate(0, 0, -10), UpdatedAt: now.AddDate(0, 0, -8),
			AssignedTo: "Tech Support",
			Resolution: "App cache cleared. Issue resolved after app update.",
			Notes: []string{
				"Customer using iOS 16.5",
				"Recommended clearing cache",
				"Issue resolved after cache clear",
			},
		},
	}
	for _, t := range tickets {
		db.tickets[t.TicketID] = t
		db.customerTickets[t.CustomerID] = append(db.customerTickets[t.CustomerID], t.TicketID)
	}
}

type merchant struct {
	name     string
	category string
}

var merchants = []merchant{
	{"Amazon", "Online Shopping"},
	{"Whole Foods", "Grocery"},
	{"Shell Gas Station", "Gas"},
	{"Netflix", "Entertainment"},
	{"Spotify", "Entertainment"},
	{"Target", "Retail"},
	{"Starbucks", "Restaurant"},
	{"Uber", "Transportation"},
	{"AT&T", "Utilities"},
	{"PG&E", "Utilities"},
	{"CVS Pharmacy", "Healthcare"},
	{"Home Depot", "Home Improvement"},
	{"Apple Store", "Electronics"},
	{"Costco", "Wholesale"},
	{"Trader Joe's", "Grocery"},
}

var txLocations = []string{
	"San Francisco, CA",
	"Los Angeles, CA",
	"Seattle, WA",
	"Austin, TX",
	"Chicago, IL",
	"New York, NY",
	"Online",
}

var billDescriptions = []string{
	"Bill Payment - Electric",
	"Bill Payment - Internet",
	"Bill Payment - Phone",
	"Insurance Premium",
	"Subscription Payment",
}

var atmAmounts = []int{20, 40, 60, 80, 100, 200, 300}

var generatedTypes = []model.TransactionType{
	model.TxPurchase,
	model.TxPurchase,
	model.TxPurchase,
	model.TxDeposit,
	model.TxWithdrawal,
	model.TxPayment,
	model.TxTransferOut,
	model.TxATMWithdrawal,
}

// generateTransactions synthesizes 15-30 transactions per account over the
// last 60 days. Accounts are processed in slice order so an injected rand
// source reproduces the same history.
func (db *DB) generateTransactions(accounts []*model.Account) {
	counter := 1

	for _, account := range accounts {
		n := db.rng.Intn(16) + 15
		balance := account.Balance

		for i := 0; i < n; i++ {
			daysAgo := db.rng.Intn(61)
			hoursAgo := db.rng.Intn(24)
			timestamp := db.now().Add(-time.Duration(daysAgo)*24*time.Hour - time.Duration(hoursAgo)*time.Hour)

			txType := generatedTypes[db.rng.Intn(len(generatedTypes))]

			var (
				amount      decimal.Decimal
				description string
				merchName   string
				merchCat    string
				location    string
			)

			switch txType {
			case model.TxDeposit:
				amount = decimal.NewFromInt(int64(db.rng.Intn(4901) + 100))
				description = "Direct Deposit - Payroll"
			case model.TxPurchase:
				m := merchants[db.rng.Intn(len(merchants))]
				merchName, merchCat = m.name, m.category
				amount = randomAmount(db, 5, 500)
				description = "Purchase at " + merchName
			case model.TxATMWithdrawal:
				amount = decimal.NewFromInt(int64(atmAmounts[db.rng.Intn(len(atmAmounts))]))
				description = "ATM Withdrawal"
			case model.TxPayment:
				amount = randomAmount(db, 50, 500)
				description = billDescriptions[db.rng.Intn(len(billDescriptions))]
			case model.TxTransferOut:
				amount = decimal.NewFromInt(int64(db.rng.Intn(1901) + 100))
				description = "Transfer to External Account"
			default:
				amount = randomAmount(db, 20, 300)
				description = "Withdrawal"
			}

			if txType.IsCredit() {
				balance = balance.Add(amount)
			} else {
				balance = balance.Sub(amount)
			}

			if txType != model.TxDeposit {
				location = txLocations[db.rng.Intn(len(txLocations))]
			}

			tx := &model.Transaction{
				TransactionID:    fmt.Sprintf("TXN%06d", counter),
				AccountID:        account.AccountID,
				TransactionType:  txType,
				Amount:           amount,
				Currency:         "USD",
				Description:      description,
				MerchantName:     merchName,
				MerchantCategory: merchCat,
				Status:           model.TxCompleted,
				Timestamp:        timestamp,
				ReferenceNumber:  fmt.Sprintf("REF%06d", db.rng.Intn(900000)+100000),
				BalanceAfter:     balance,
				Location:         location,
			}

			db.transactions[tx.TransactionID] = tx
			db.accountTransactions[account.AccountID] = append(db.accountTransactions[account.AccountID], tx.TransactionID)
			counter++
		}
	}
}

// randomAmount draws a uniform amount in [min,max) rounded to cents.
func randomAmount(db *DB, min, max float64) decimal.Decimal {
	v := min + db.rng.Float64()*(max-min)
	return decimal.NewFromFloat(v).Round(2)
}
