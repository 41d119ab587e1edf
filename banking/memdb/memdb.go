// Package memdb is the in-memory stand-in for the bank's backing systems.
// It holds a fixed fixture set and supports the handful of mutations the
// call-center tools need. All access is serialized through one mutex.
package memdb

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/securebank/callcenter-agent/banking/model"
)

type DB struct {
	mu sync.Mutex

	customers    map[string]*model.Customer
	accounts     map[string]*model.Account
	transactions map[string]*model.Transaction
	loans        map[string]*model.Loan
	cards        map[string]*model.Card
	tickets      map[string]*model.SupportTicket

	customerAccounts    map[string][]string
	accountTransactions map[string][]string
	customerLoans       map[string][]string
	customerCards       map[string][]string
	customerTickets     map[string][]string

	phoneToCustomer map[string]string
	emailToCustomer map[string]string

	rng *rand.Rand
	now func() time.Time
}

type Option func(*DB)

// WithRand injects the randomness source used for generated transaction
// history and ticket/reference numbers. Useful for deterministic tests.
func WithRand(rng *rand.Rand) Option {
	return func(db *DB) {
		if rng != nil {
			db.rng = rng
		}
	}
}

// WithClock injects the time source used for seeded relative dates.
func WithClock(now func() time.Time) Option {
	return func(db *DB) {
		if now != nil {
			db.now = now
		}
	}
}

func New(opts ...Option) *DB {
	db := &DB{
		customers:    make(map[string]*model.Customer),
		accounts:     make(map[string]*model.Account),
		transactions: make(map[string]*model.Transaction),
		loans:        make(map[string]*model.Loan),
		cards:        make(map[string]*model.Card),
		tickets:      make(map[string]*model.SupportTicket),

		customerAccounts:    make(map[string][]string),
		accountTransactions: make(map[string][]string),
		customerLoans:       make(map[string][]string),
		customerCards:       make(map[string][]string),
		customerTickets:     make(map[string][]string),

		phoneToCustomer: make(map[string]string),
		emailToCustomer: make(map[string]string),

		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
		now: time.Now,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(db)
		}
	}

	db.seed()
	return db
}

/* ------------------------------- queries -------------------------------- */

func (db *DB) Customer(customerID string) (*model.Customer, bool) {
	db.mu.Lock()
	defer db.mu.Unlock()
	c, ok := db.customers[customerID]
	return c, ok
}

func (db *DB) CustomerByPhone(phone string) (*model.Customer, bool) {
	db.mu.Lock()
	defer db.mu.Unlock()
	id, ok := db.phoneToCustomer[phone]
	if !ok {
		return nil, false
	}
	c, ok := db.customers[id]
	return c, ok
}

func (db *DB) CustomerByEmail(email string) (*model.Customer, bool) {
	db.mu.Lock()
	defer db.mu.Unlock()
	id, ok := db.emailToCustomer[strings.ToLower(email)]
	if !ok {
		return nil, false
	}
	c, ok := db.customers[id]
	return c, ok
}

func (db *DB) SearchCustomers(query string) []*model.Customer {
	db.mu.Lock()
	defer db.mu.Unlock()

	var results []*model.Customer
	lowered := strings.ToLower(query)
	for _, c := range db.customers {
		if strings.Contains(strings.ToLower(c.FirstName), lowered) ||
			strings.Contains(strings.ToLower(c.LastName), lowered) ||
			strings.Contains(strings.ToLower(c.Email), lowered) ||
			strings.Contains(c.Phone, query) {
			results = append(results, c)
		}
	}
	sort.Slice(results, func(i, j int) bool { return results[i].CustomerID < results[j].CustomerID })
	return results
}

func (db *DB) AllCustomers() []*model.Customer {
	db.mu.Lock()
	defer db.mu.Unlock()

	out := make([]*model.Customer, 0, len(db.customers))
	for _, c := range db.customers {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CustomerID < out[j].CustomerID })
	return out
}

func (db *DB) Account(accountID string) (*model.Account, bool) {
	db.mu.Lock()
	defer db.mu.Unlock()
	a, ok := db.accounts[accountID]
	return a, ok
}

func (db *DB) CustomerAccounts(customerID string) []*model.Account {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.customerAccountsLocked(customerID)
}

func (db *DB) customerAccountsLocked(customerID string) []*model.Account {
	var out []*model.Account
	for _, id := range db.customerAccounts[customerID] {
		if a, ok := db.accounts[id]; ok {
			out = append(out, a)
		}
	}
	return out
}

func (db *DB) Transaction(transactionID string) (*model.Transaction, bool) {
	db.mu.Lock()
	defer db.mu.Unlock()
	tx, ok := db.transactions[transactionID]
	return tx, ok
}

// AccountTransactions returns up to limit transactions within the lookback
// window, newest first.
func (db *DB) AccountTransactions(accountID string, limit, days int) []*model.Transaction {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.accountTransactionsLocked(accountID, limit, days)
}

func (db *DB) accountTransactionsLocked(accountID string, limit, days int) []*model.Transaction {
	cutoff := db.now().AddDate(0, 0, -days)

	var out []*model.Transaction
	for _, id := range db.accountTransactions[accountID] {
		tx, ok := db.transactions[id]
		if !ok {
			continue
		}
		if tx.Timestamp.Before(cutoff) {
			continue
		}
		out = append(out, tx)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (db *DB) Loan(loanID string) (*model.Loan, bool) {
	db.mu.Lock()
	defer db.mu.Unlock()
	l, ok := db.loans[loanID]
	return l, ok
}

func (db *DB) CustomerLoans(customerID string) []*model.Loan {
	db.mu.Lock()
	defer db.mu.Unlock()

	var out []*model.Loan
	for _, id := range db.customerLoans[customerID] {
		if l, ok := db.loans[id]; ok {
			out = append(out, l)
		}
	}
	return out
}

func (db *DB) Card(cardID string) (*model.Card, bool) {
	db.mu.Lock()
	defer db.mu.Unlock()
	c, ok := db.cards[cardID]
	return c, ok
}

func (db *DB) CustomerCards(customerID string) []*model.Card {
	db.mu.Lock()
	defer db.mu.Unlock()

	var out []*model.Card
	for _, id := range db.customerCards[customerID] {
		if c, ok := db.cards[id]; ok {
			out = append(out, c)
		}
	}
	return out
}

func (db *DB) Ticket(ticketID string) (*model.SupportTicket, bool) {
	db.mu.Lock()
	defer db.mu.Unlock()
	t, ok := db.tickets[ticketID]
	return t, ok
}

func (db *DB) CustomerTickets(customerID string, includeClosed bool) []*model.SupportTicket {
	db.mu.Lock()
	defer db.mu.Unlock()

	var out []*model.SupportTicket
	for _, id := range db.customerTickets[customerID] {
		t, ok := db.tickets[id]
		if !ok {
			continue
		}
		if !includeClosed && (t.Status == model.TicketClosed || t.Status == model.TicketResolved) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Profile assembles the aggregate customer view: accounts, the 10 most recent
// transactions across them, loans, cards and open tickets.
func (db *DB) Profile(customerID string) (*model.CustomerProfile, bool) {
	db.mu.Lock()
	defer db.mu.Unlock()

	customer, ok := db.customers[customerID]
	if !ok {
		return nil, false
	}

	accounts := db.customerAccountsLocked(customerID)

	var recent []*model.Transaction
	for _, acc := range accounts {
		recent = append(recent, db.accountTransactionsLocked(acc.AccountID, 5, 30)...)
	}
	sort.Slice(recent, func(i, j int) bool { return recent[i].Timestamp.After(recent[j].Timestamp) })
	if len(recent) > 10 {
		recent = recent[:10]
	}

	total := decimal.Zero
	for _, acc := range accounts {
		total = total.Add(acc.Balance)
	}

	var loans []*model.Loan
	for _, id := range db.customerLoans[customerID] {
		if l, ok := db.loans[id]; ok {
			loans = append(loans, l)
		}
	}
	var cards []*model.Card
	for _, id := range db.customerCards[customerID] {
		if c, ok := db.cards[id]; ok {
			cards = append(cards, c)
		}
	}
	var openTickets []*model.SupportTicket
	for _, id := range db.customerTickets[customerID] {
		t, ok := db.tickets[id]
		if !ok {
			continue
		}
		if t.Status == model.TicketClosed || t.Status == model.TicketResolved {
			continue
		}
		openTickets = append(openTickets, t)
	}

	years := int(db.now().Sub(customer.CreatedAt).Hours() / 24 / 365)

	return &model.CustomerProfile{
		Customer:               customer,
		Accounts:               accounts,
		RecentTransactions:     recent,
		Loans:                  loans,
		Cards:                  cards,
		OpenTickets:            openTickets,
		TotalRelationshipValue: total,
		CustomerSinceYears:     years,
	}, true
}

/* ------------------------------ mutations -------------------------------- */

// BlockCard transitions a card into the given blocked/lost/stolen status.
func (db *DB) BlockCard(cardID string, status model.CardStatus) bool {
	db.mu.Lock()
	defer db.mu.Unlock()

	card, ok := db.cards[cardID]
	if !ok {
		return false
	}
	card.Status = status
	return true
}

func (db *DB) CreateTicket(ticket *model.SupportTicket) string {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.tickets[ticket.TicketID] = ticket
	db.customerTickets[ticket.CustomerID] = append(db.customerTickets[ticket.CustomerID], ticket.TicketID)
	return ticket.TicketID
}

// TicketUpdate carries the optional fields UpdateTicket may change.
type TicketUpdate struct {
	Status     *model.TicketStatus
	Priority   *model.TicketPriority
	Notes      []string
	Resolution *string
}

func (db *DB) UpdateTicket(ticketID string, update TicketUpdate) bool {
	db.mu.Lock()
	defer db.mu.Unlock()

	ticket, ok := db.tickets[ticketID]
	if !ok {
		return false
	}
	if update.Status != nil {
		ticket.Status = *update.Status
	}
	if update.Priority != nil {
		ticket.Priority = *update.Priority
	}
	if update.Notes != nil {
		ticket.Notes = update.Notes
	}
	if update.Resolution != nil {
		ticket.Resolution = *update.Resolution
	}
	ticket.UpdatedAt = db.now()
	return true
}

// TransferFunds moves amount between two accounts and records the paired
// debit/credit transactions. Returns the shared reference number.
func (db *DB) TransferFunds(fromID, toID string, amount decimal.Decimal, description string) (string, bool) {
	db.mu.Lock()
	defer db.mu.Unlock()

	from, okFrom := db.accounts[fromID]
	to, okTo := db.accounts[toID]
	if !okFrom || !okTo {
		return "", false
	}
	if from.AvailableBalance.LessThan(amount) {
		return "", false
	}

	timestamp := db.now()
	reference := fmt.Sprintf("REF%06d", db.rng.Intn(900000)+100000)

	debit := &model.Transaction{
		TransactionID:   fmt.Sprintf("TXN%06d", db.rng.Intn(900000)+100000),
		AccountID:       fromID,
		TransactionType: model.TxTransferOut,
		Amount:          amount,
		Currency:        "USD",
		Description:     description,
		Status:          model.TxCompleted,
		Timestamp:       timestamp,
		ReferenceNumber: reference,
		BalanceAfter:    from.Balance.Sub(amount),
	}
	credit := &model.Transaction{
		TransactionID:   fmt.Sprintf("TXN%06d", db.rng.Intn(900000)+100000),
		AccountID:       toID,
		TransactionType: model.TxTransferIn,
		Amount:          amount,
		Currency:        "USD",
		Description:     description,
		Status:          model.TxCompleted,
		Timestamp:       timestamp,
		ReferenceNumber: reference,
		BalanceAfter:    to.Balance.Add(amount),
	}

	from.Balance = from.Balance.Sub(amount)
	from.AvailableBalance = from.AvailableBalance.Sub(amount)
	to.Balance = to.Balance.Add(amount)
	to.AvailableBalance = to.AvailableBalance.Add(amount)

	db.transactions[debit.TransactionID] = debit
	db.transactions[credit.TransactionID] = credit
	db.accountTransactions[fromID] = append(db.accountTransactions[fromID], debit.TransactionID)
	db.accountTransactions[toID] = append(db.accountTransactions[toID], credit.TransactionID)

	return reference, true
}

// NextTicketID mints a ticket id in the fixture numbering space.
func (db *DB) NextTicketID() string {
	db.mu.Lock()
	defer db.mu.Unlock()
	return fmt.Sprintf("TKT%05d", db.rng.Intn(90000)+10000)
}
