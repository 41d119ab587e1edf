// Package tool holds the agent's tool catalog and the executor that
// dispatches planned calls to the banking gateway.
package tool

import (
	"github.com/cloudwego/eino/schema"
	"github.com/openai/openai-go"
)

// ParamType is the JSON-schema type of one tool parameter.
type ParamType string

const (
	TypeString  ParamType = "string"
	TypeInteger ParamType = "integer"
	TypeNumber  ParamType = "number"
	TypeBoolean ParamType = "boolean"
)

// Param describes one tool parameter.
type Param struct {
	Name        string
	Type        ParamType
	Description string
	Required    bool
}

// Definition describes one tool in the catalog, in a shape that exports
// cleanly to both eino tool infos and OpenAI function definitions.
type Definition struct {
	Name        string
	Description string
	Params      []Param
}

// Definitions returns the full tool catalog in its canonical order.
func Definitions() []Definition {
	return catalog
}

// Names returns every tool name in catalog order.
func Names() []string {
	names := make([]string, len(catalog))
	for i, def := range catalog {
		names[i] = def.Name
	}
	return names
}

// ByName returns the definition for a tool, or false if unknown.
func ByName(name string) (Definition, bool) {
	for _, def := range catalog {
		if def.Name == name {
			return def, true
		}
	}
	return Definition{}, false
}

var einoTypes = map[ParamType]schema.DataType{
	TypeString:  schema.String,
	TypeInteger: schema.Integer,
	TypeNumber:  schema.Number,
	TypeBoolean: schema.Boolean,
}

// EinoToolInfos exports the catalog as eino tool infos, ready to bind to a
// chat model node.
func EinoToolInfos() []*schema.ToolInfo {
	infos := make([]*schema.ToolInfo, 0, len(catalog))
	for _, def := range catalog {
		params := make(map[string]*schema.ParameterInfo, len(def.Params))
		for _, p := range def.Params {
			params[p.Name] = &schema.ParameterInfo{
				Type:     einoTypes[p.Type],
				Desc:     p.Description,
				Required: p.Required,
			}
		}
		infos = append(infos, &schema.ToolInfo{
			Name:        def.Name,
			Desc:        def.Description,
			ParamsOneOf: schema.NewParamsOneOfByParams(params),
		})
	}
	return infos
}

// OpenAIToolParams exports the catalog in the OpenAI function-calling wire
// format, for callers that talk to the completions API directly.
func OpenAIToolParams() []openai.ChatCompletionToolParam {
	tools := make([]openai.ChatCompletionToolParam, 0, len(catalog))
	for _, def := range catalog {
		properties := make(map[string]any, len(def.Params))
		var required []string
		for _, p := range def.Params {
			properties[p.Name] = map[string]any{
				"type":        string(p.Type),
				"description": p.Description,
			}
			if p.Required {
				required = append(required, p.Name)
			}
		}
		tools = append(tools, openai.ChatCompletionToolParam{
			Function: openai.FunctionDefinitionParam{
				Name:        def.Name,
				Description: openai.String(def.Description),
				Parameters: openai.FunctionParameters{
					"type":       "object",
					"properties": properties,
					"required":   required,
				},
			},
		})
	}
	return tools
}

var catalog = []Definition{
	{
		Name:        "identify_customer_by_phone",
		Description: "Look up a customer using their phone number. Use this when a customer calls in and provides their phone number for identification.",
		Params: []Param{
			{Name: "phone_number", Type: TypeString, Description: "The customer's phone number (e.g., +1-555-0101)", Required: true},
		},
	},
	{
		Name:        "identify_customer_by_email",
		Description: "Look up a customer using their email address. Use this when a customer provides their email for identification.",
		Params: []Param{
			{Name: "email", Type: TypeString, Description: "The customer's email address", Required: true},
		},
	},
	{
		Name:        "verify_customer_identity",
		Description: "Verify a customer's identity using their date of birth and last 4 digits of SSN. Use this before performing sensitive operations.",
		Params: []Param{
			{Name: "customer_id", Type: TypeString, Description: "The customer's ID", Required: true},
			{Name: "date_of_birth", Type: TypeString, Description: "Customer's date of birth in YYYY-MM-DD format", Required: true},
			{Name: "ssn_last_four", Type: TypeString, Description: "Last 4 digits of the customer's SSN", Required: true},
		},
	},
	{
		Name:        "get_customer_profile",
		Description: "Get a comprehensive customer profile including accounts, recent transactions, loans, cards, and support tickets. Use this to get full context about a customer.",
		Params: []Param{
			{Name: "customer_id", Type: TypeString, Description: "The customer's ID", Required: true},
		},
	},
	{
		Name:        "check_account_balance",
		Description: "Check the current balance of a specific account. Returns balance, available balance, and last activity.",
		Params: []Param{
			{Name: "account_id", Type: TypeString, Description: "The account ID to check", Required: true},
		},
	},
	{
		Name:        "get_all_account_balances",
		Description: "Get balances for all accounts belonging to a customer. Returns total balance and breakdown by account.",
		Params: []Param{
			{Name: "customer_id", Type: TypeString, Description: "The customer's ID", Required: true},
		},
	},
	{
		Name:        "get_customer_accounts",
		Description: "List all accounts for a customer with details like account type, status, and balance.",
		Params: []Param{
			{Name: "customer_id", Type: TypeString, Description: "The customer's ID", Required: true},
		},
	},
	{
		Name:        "transfer_funds",
		Description: "Transfer money between accounts. Requires verification. Returns transfer confirmation and new balances.",
		Params: []Param{
			{Name: "from_account_id", Type: TypeString, Description: "Source account ID", Required: true},
			{Name: "to_account_id", Type: TypeString, Description: "Destination account ID", Required: true},
			{Name: "amount", Type: TypeNumber, Description: "Amount to transfer", Required: true},
			{Name: "description", Type: TypeString, Description: "Transfer description/memo"},
		},
	},
	{
		Name:        "get_recent_transactions",
		Description: "Get recent transactions for an account. Returns transaction details including amount, merchant, date, and status.",
		Params: []Param{
			{Name: "account_id", Type: TypeString, Description: "The account ID", Required: true},
			{Name: "limit", Type: TypeInteger, Description: "Maximum number of transactions to return (default: 10)"},
			{Name: "days", Type: TypeInteger, Description: "Number of days to look back (default: 30)"},
		},
	},
	{
		Name:        "search_transactions",
		Description: "Search for specific transactions with filters like merchant name, amount range, or transaction type.",
		Params: []Param{
			{Name: "account_id", Type: TypeString, Description: "The account ID", Required: true},
			{Name: "merchant_name", Type: TypeString, Description: "Filter by merchant name (partial match)"},
			{Name: "min_amount", Type: TypeNumber, Description: "Minimum transaction amount"},
			{Name: "max_amount", Type: TypeNumber, Description: "Maximum transaction amount"},
			{Name: "transaction_type", Type: TypeString, Description: "Type of transaction (purchase, deposit, withdrawal, transfer_in, transfer_out, payment)"},
		},
	},
	{
		Name:        "get_spending_summary",
		Description: "Get a spending analysis breakdown by category for an account. Shows total spending, income, and category breakdown.",
		Params: []Param{
			{Name: "account_id", Type: TypeString, Description: "The account ID", Required: true},
			{Name: "days", Type: TypeInteger, Description: "Number of days to analyze (default: 30)"},
		},
	},
	{
		Name:        "find_transaction",
		Description: "Look up a specific transaction by its ID or reference number.",
		Params: []Param{
			{Name: "transaction_id", Type: TypeString, Description: "The transaction ID or reference number", Required: true},
		},
	},
	{
		Name:        "get_loan_summary",
		Description: "Get summary of all loans for a customer including balances, monthly payments, and next payment dates.",
		Params: []Param{
			{Name: "customer_id", Type: TypeString, Description: "The customer's ID", Required: true},
		},
	},
	{
		Name:        "get_loan_details",
		Description: "Get detailed information about a specific loan.",
		Params: []Param{
			{Name: "loan_id", Type: TypeString, Description: "The loan ID", Required: true},
		},
	},
	{
		Name:        "get_payment_schedule",
		Description: "Get the upcoming payment schedule for a loan. Shows next 6 payments with dates and amounts.",
		Params: []Param{
			{Name: "loan_id", Type: TypeString, Description: "The loan ID", Required: true},
		},
	},
	{
		Name:        "get_payoff_amount",
		Description: "Calculate the payoff amount to pay off a loan in full. Valid for 10 days.",
		Params: []Param{
			{Name: "loan_id", Type: TypeString, Description: "The loan ID", Required: true},
		},
	},
	{
		Name:        "get_card_summary",
		Description: "Get summary of all cards for a customer including card types, status, and credit limits.",
		Params: []Param{
			{Name: "customer_id", Type: TypeString, Description: "The customer's ID", Required: true},
		},
	},
	{
		Name:        "check_card_status",
		Description: "Check the current status of a specific card.",
		Params: []Param{
			{Name: "card_id", Type: TypeString, Description: "The card ID", Required: true},
		},
	},
	{
		Name:        "report_card_lost_stolen",
		Description: "Report a card as lost or stolen. This will immediately block the card and initiate a replacement.",
		Params: []Param{
			{Name: "customer_id", Type: TypeString, Description: "The customer's ID", Required: true},
			{Name: "card_last_four", Type: TypeString, Description: "Last 4 digits of the card number", Required: true},
			{Name: "is_stolen", Type: TypeBoolean, Description: "True if stolen, False if just lost"},
		},
	},
	{
		Name:        "block_card",
		Description: "Block/freeze a card temporarily. Use for suspected fraud or customer request.",
		Params: []Param{
			{Name: "card_id", Type: TypeString, Description: "The card ID to block", Required: true},
			{Name: "reason", Type: TypeString, Description: "Reason for blocking (lost, stolen, fraud, customer_request)"},
		},
	},
	{
		Name:        "get_open_tickets",
		Description: "Get all open support tickets for a customer.",
		Params: []Param{
			{Name: "customer_id", Type: TypeString, Description: "The customer's ID", Required: true},
		},
	},
	{
		Name:        "get_ticket_details",
		Description: "Get details of a specific support ticket.",
		Params: []Param{
			{Name: "ticket_id", Type: TypeString, Description: "The ticket ID", Required: true},
		},
	},
	{
		Name:        "create_support_ticket",
		Description: "Create a new support ticket for an issue that cannot be resolved immediately.",
		Params: []Param{
			{Name: "customer_id", Type: TypeString, Description: "The customer's ID", Required: true},
			{Name: "category", Type: TypeString, Description: "Ticket category (account_inquiry, transaction_dispute, card_issue, loan_inquiry, technical_issue, fraud_report, general_inquiry, complaint)", Required: true},
			{Name: "subject", Type: TypeString, Description: "Brief subject/title of the issue", Required: true},
			{Name: "description", Type: TypeString, Description: "Detailed description of the issue", Required: true},
			{Name: "priority", Type: TypeString, Description: "Priority level (low, medium, high, urgent)"},
		},
	},
	{
		Name:        "escalate_ticket",
		Description: "Escalate a support ticket to higher priority for urgent attention.",
		Params: []Param{
			{Name: "ticket_id", Type: TypeString, Description: "The ticket ID to escalate", Required: true},
			{Name: "reason", Type: TypeString, Description: "Reason for escalation", Required: true},
		},
	},
	{
		Name:        "get_ticket_history",
		Description: "Get complete ticket history for a customer including resolved tickets.",
		Params: []Param{
			{Name: "customer_id", Type: TypeString, Description: "The customer's ID", Required: true},
		},
	},
}
