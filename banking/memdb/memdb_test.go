package memdb

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/securebank/callcenter-agent/banking/model"
)

func newTestDB() *DB {
	return New(WithRand(rand.New(rand.NewSource(42))))
}

func TestSeedFixtures(t *testing.T) {
	t.Parallel()
	db := newTestDB()

	customer, ok := db.Customer("CUST001")
	if !ok {
		t.Fatalf("expected CUST001 to exist")
	}
	if got := customer.FullName(); got != "John Anderson" {
		t.Fatalf("unexpected name: %s", got)
	}

	if _, ok := db.CustomerByPhone("+1-555-0101"); !ok {
		t.Fatalf("phone lookup failed for CUST001")
	}
	if _, ok := db.CustomerByEmail("sarah.mitchell@email.com"); !ok {
		t.Fatalf("email lookup failed for CUST002")
	}
	if _, ok := db.CustomerByPhone("+1-555-9999"); ok {
		t.Fatalf("unknown phone should not resolve")
	}

	if got := len(db.CustomerAccounts("CUST003")); got != 3 {
		t.Fatalf("expected 3 accounts for CUST003, got %d", got)
	}

	card, ok := db.Card("CARD008")
	if !ok {
		t.Fatalf("expected CARD008 to exist")
	}
	if card.Status != model.CardLost {
		t.Fatalf("CARD008 should be seeded lost, got %s", card.Status)
	}
	if card.LastFour() != "1199" {
		t.Fatalf("unexpected last four: %s", card.LastFour())
	}
}

func TestGeneratedTransactions(t *testing.T) {
	t.Parallel()
	db := newTestDB()

	txs := db.AccountTransactions("ACC001", 100, 60)
	if len(txs) < 1 {
		t.Fatalf("expected generated transactions for ACC001")
	}
	for i := 1; i < len(txs); i++ {
		if txs[i].Timestamp.After(txs[i-1].Timestamp) {
			t.Fatalf("transactions not sorted newest first")
		}
	}

	limited := db.AccountTransactions("ACC001", 5, 60)
	if len(limited) > 5 {
		t.Fatalf("limit not applied, got %d", len(limited))
	}
}

func TestDeterministicWithSeed(t *testing.T) {
	t.Parallel()

	a := New(WithRand(rand.New(rand.NewSource(7))))
	b := New(WithRand(rand.New(rand.NewSource(7))))

	txA := a.AccountTransactions("ACC004", 100, 60)
	txB := b.AccountTransactions("ACC004", 100, 60)
	if len(txA) != len(txB) {
		t.Fatalf("same seed produced different histories: %d vs %d", len(txA), len(txB))
	}
	for i := range txA {
		if !txA[i].Amount.Equal(txB[i].Amount) || txA[i].Description != txB[i].Description {
			t.Fatalf("transaction %d differs between identical seeds", i)
		}
	}
}

func TestTransferFunds(t *testing.T) {
	t.Parallel()
	db := newTestDB()

	from, _ := db.Account("ACC001")
	to, _ := db.Account("ACC002")
	beforeFrom := from.Balance
	beforeTo := to.Balance

	amount := decimal.RequireFromString("250.00")
	ref, ok := db.TransferFunds("ACC001", "ACC002", amount, "Internal Transfer")
	if !ok {
		t.Fatalf("transfer should succeed")
	}
	if ref == "" {
		t.Fatalf("expected reference number")
	}

	if !from.Balance.Equal(beforeFrom.Sub(amount)) {
		t.Fatalf("source balance not debited: %s", from.Balance)
	}
	if !to.Balance.Equal(beforeTo.Add(amount)) {
		t.Fatalf("destination balance not credited: %s", to.Balance)
	}

	// The paired transactions share the transfer reference.
	var matched int
	for _, tx := range db.AccountTransactions("ACC001", 100, 1) {
		if tx.ReferenceNumber == ref && tx.TransactionType == model.TxTransferOut {
			matched++
		}
	}
	for _, tx := range db.AccountTransactions("ACC002", 100, 1) {
		if tx.ReferenceNumber == ref && tx.TransactionType == model.TxTransferIn {
			matched++
		}
	}
	if matched != 2 {
		t.Fatalf("expected paired debit/credit, found %d", matched)
	}
}

func TestTransferInsufficientFunds(t *testing.T) {
	t.Parallel()
	db := newTestDB()

	if _, ok := db.TransferFunds("ACC007", "ACC001", decimal.RequireFromString("999999.00"), "big"); ok {
		t.Fatalf("transfer above available balance should fail")
	}
	if _, ok := db.TransferFunds("ACC001", "NOPE", decimal.RequireFromString("1.00"), "x"); ok {
		t.Fatalf("transfer to unknown account should fail")
	}
}

func TestBlockCard(t *testing.T) {
	t.Parallel()
	db := newTestDB()

	if !db.BlockCard("CARD003", model.CardStolen) {
		t.Fatalf("block should succeed for existing card")
	}
	card, _ := db.Card("CARD003")
	if card.Status != model.CardStolen {
		t.Fatalf("status not updated: %s", card.Status)
	}
	if db.BlockCard("CARD999", model.CardBlocked) {
		t.Fatalf("block should fail for unknown card")
	}
}

func TestTicketLifecycle(t *testing.T) {
	t.Parallel()
	db := newTestDB()

	open := db.CustomerTickets("CUST002", false)
	for _, tk := range open {
		if tk.Status == model.TicketResolved || tk.Status == model.TicketClosed {
			t.Fatalf("closed filter leaked %s", tk.TicketID)
		}
	}
	all := db.CustomerTickets("CUST002", true)
	if len(all) <= len(open) {
		t.Fatalf("include_closed should return more tickets")
	}

	id := db.CreateTicket(&model.SupportTicket{
		TicketID:   "TKT99001",
		CustomerID: "CUST005",
		Category:   model.CategoryComplaint,
		Subject:    "Long wait times",
		Status:     model.TicketOpen,
		Priority:   model.PriorityMedium,
	})
	if id != "TKT99001" {
		t.Fatalf("unexpected ticket id %s", id)
	}

	status := model.TicketEscalated
	priority := model.PriorityHigh
	if !db.UpdateTicket(id, TicketUpdate{Status: &status, Priority: &priority}) {
		t.Fatalf("update should succeed")
	}
	ticket, _ := db.Ticket(id)
	if ticket.Status != model.TicketEscalated || ticket.Priority != model.PriorityHigh {
		t.Fatalf("update not applied: %s/%s", ticket.Status, ticket.Priority)
	}
}

func TestProfileAggregation(t *testing.T) {
	t.Parallel()
	db := newTestDB()

	profile, ok := db.Profile("CUST001")
	if !ok {
		t.Fatalf("expected profile for CUST001")
	}
	if len(profile.Accounts) != 2 {
		t.Fatalf("expected 2 accounts, got %d", len(profile.Accounts))
	}
	if len(profile.RecentTransactions) > 10 {
		t.Fatalf("recent transactions capped at 10, got %d", len(profile.RecentTransactions))
	}

	want := decimal.RequireFromString("15432.67").Add(decimal.RequireFromString("52150.00"))
	if !profile.TotalRelationshipValue.Equal(want) {
		t.Fatalf("relationship value %s, want %s", profile.TotalRelationshipValue, want)
	}
	if profile.CustomerSinceYears < 5 {
		t.Fatalf("CUST001 joined 2019, years=%d", profile.CustomerSinceYears)
	}

	if _, ok := db.Profile("CUST999"); ok {
		t.Fatalf("unknown customer should have no profile")
	}
}
