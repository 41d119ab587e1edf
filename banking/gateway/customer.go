package gateway

import (
	"context"
	"fmt"
	"time"

	"github.com/securebank/callcenter-agent/banking/memdb"
	"github.com/securebank/callcenter-agent/banking/model"
)

// CustomerAPI fronts the customer information system: profile lookup,
// caller identification and identity verification.
type CustomerAPI struct {
	c  *client
	db *memdb.DB
}

func newCustomerAPI(db *memdb.DB, cfg simConfig) *CustomerAPI {
	return &CustomerAPI{
		c:  newClient("CustomerAPI", 30*time.Millisecond, 150*time.Millisecond, cfg),
		db: db,
	}
}

func (api *CustomerAPI) Stats() Stats { return api.c.stats() }

func (api *CustomerAPI) Customer(ctx context.Context, customerID string) Response[*model.Customer] {
	return run(ctx, api.c, fmt.Sprintf("get_customer(%s)", customerID), func() (*model.Customer, error) {
		customer, _ := api.db.Customer(customerID)
		return customer, nil
	})
}

// CustomerByPhone resolves the caller's phone number to a customer record.
// A miss is not an error: the envelope succeeds with nil data.
func (api *CustomerAPI) CustomerByPhone(ctx context.Context, phone string) Response[*model.Customer] {
	return run(ctx, api.c, fmt.Sprintf("get_customer_by_phone(%s)", phone), func() (*model.Customer, error) {
		customer, _ := api.db.CustomerByPhone(phone)
		return customer, nil
	})
}

func (api *CustomerAPI) CustomerByEmail(ctx context.Context, email string) Response[*model.Customer] {
	return run(ctx, api.c, fmt.Sprintf("get_customer_by_email(%s)", email), func() (*model.Customer, error) {
		customer, _ := api.db.CustomerByEmail(email)
		return customer, nil
	})
}

func (api *CustomerAPI) SearchCustomers(ctx context.Context, query string) Response[[]*model.Customer] {
	return run(ctx, api.c, fmt.Sprintf("search_customers(%s)", query), func() ([]*model.Customer, error) {
		return api.db.SearchCustomers(query), nil
	})
}

func (api *CustomerAPI) Profile(ctx context.Context, customerID string) Response[*model.CustomerProfile] {
	return run(ctx, api.c, fmt.Sprintf("get_customer_profile(%s)", customerID), func() (*model.CustomerProfile, error) {
		profile, _ := api.db.Profile(customerID)
		return profile, nil
	})
}

// Verify checks the customer's SSN last four and date of birth
// (YYYY-MM-DD). Unknown customers verify false.
func (api *CustomerAPI) Verify(ctx context.Context, customerID, ssnLastFour, dateOfBirth string) Response[bool] {
	return run(ctx, api.c, fmt.Sprintf("verify_customer(%s)", customerID), func() (bool, error) {
		customer, ok := api.db.Customer(customerID)
		if !ok {
			return false, nil
		}
		return customer.SSNLastFour == ssnLastFour &&
			customer.DateOfBirth.Format("2006-01-02") == dateOfBirth, nil
	})
}

func (api *CustomerAPI) AllCustomers(ctx context.Context) Response[[]*model.Customer] {
	return run(ctx, api.c, "get_all_customers()", func() ([]*model.Customer, error) {
		return api.db.AllCustomers(), nil
	})
}
