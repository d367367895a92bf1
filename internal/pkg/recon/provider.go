package recon

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/CollectraHQ/Collectra/app/models"
)

// Supported webhook providers. These double as collection types on the
// pending collection rows the matcher searches.
const (
	ProviderBkash = "bkash"
	ProviderNagad = "nagad"
)

var payloadValidator = validator.New()

// KnownProvider reports whether a decoder exists for the provider.
func KnownProvider(provider string) bool {
	switch provider {
	case ProviderBkash, ProviderNagad:
		return true
	default:
		return false
	}
}

// bkashPayload mirrors the bKash payment notification shape.
type bkashPayload struct {
	TrxID                 string `json:"trxID" validate:"required,max=100"`
	Amount                string `json:"amount" validate:"required"`
	Currency              string `json:"currency" validate:"required,len=3"`
	TransactionStatus     string `json:"transactionStatus" validate:"required"`
	PaymentExecuteTime    string `json:"paymentExecuteTime" validate:"required"`
	CustomerMsisdn        string `json:"customerMsisdn"`
	MerchantInvoiceNumber string `json:"merchantInvoiceNumber"`
}

// nagadPayload mirrors the Nagad payment notification shape.
type nagadPayload struct {
	PaymentRefID   string `json:"paymentRefId" validate:"required,max=100"`
	Amount         string `json:"amount" validate:"required"`
	Currency       string `json:"currency" validate:"required,len=3"`
	Status         string `json:"status" validate:"required"`
	DateTime       string `json:"dateTime" validate:"required"`
	ClientMobileNo string `json:"clientMobileNo"`
	OrderID        string `json:"orderId"`
}

// DecodeEvent validates the provider payload and maps it onto the canonical
// PaymentEvent. All downstream code works only with the canonical type.
func DecodeEvent(provider string, body []byte, receivedAt time.Time) (*models.PaymentEvent, error) {
	switch provider {
	case ProviderBkash:
		return decodeBkash(body, receivedAt)
	case ProviderNagad:
		return decodeNagad(body, receivedAt)
	default:
		return nil, ErrUnknownProvider
	}
}

func decodeBkash(body []byte, receivedAt time.Time) (*models.PaymentEvent, error) {
	var p bkashPayload
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchema, err)
	}
	if err := payloadValidator.Struct(p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchema, err)
	}

	amount, err := parseAmount(p.Amount)
	if err != nil {
		return nil, err
	}
	eventAt, err := parseEventTime(p.PaymentExecuteTime)
	if err != nil {
		return nil, err
	}

	return &models.PaymentEvent{
		Provider:       ProviderBkash,
		ExternalTxnID:  strings.TrimSpace(p.TrxID),
		Amount:         amount,
		Currency:       strings.ToUpper(p.Currency),
		ProviderStatus: p.TransactionStatus,
		Outcome:        outcomeFor(p.TransactionStatus),
		EventAt:        eventAt,
		ReceivedAt:     receivedAt,
		RawPayload:     string(body),
	}, nil
}

func decodeNagad(body []byte, receivedAt time.Time) (*models.PaymentEvent, error) {
	var p nagadPayload
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchema, err)
	}
	if err := payloadValidator.Struct(p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchema, err)
	}

	amount, err := parseAmount(p.Amount)
	if err != nil {
		return nil, err
	}
	eventAt, err := parseEventTime(p.DateTime)
	if err != nil {
		return nil, err
	}

	return &models.PaymentEvent{
		Provider:       ProviderNagad,
		ExternalTxnID:  strings.TrimSpace(p.PaymentRefID),
		Amount:         amount,
		Currency:       strings.ToUpper(p.Currency),
		ProviderStatus: p.Status,
		Outcome:        outcomeFor(p.Status),
		EventAt:        eventAt,
		ReceivedAt:     receivedAt,
		RawPayload:     string(body),
	}, nil
}

// outcomeFor maps the provider status string to the canonical outcome. Only
// SUCCESS events attempt matching; everything else is recorded for audit.
func outcomeFor(providerStatus string) string {
	switch strings.ToLower(strings.TrimSpace(providerStatus)) {
	case "completed", "success", "successful":
		return models.EVENT_OUTCOME_SUCCESS
	default:
		return models.EVENT_OUTCOME_OTHER
	}
}

func parseAmount(raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: bad amount %q", ErrSchema, raw)
	}
	if !amount.IsPositive() {
		return decimal.Decimal{}, fmt.Errorf("%w: non-positive amount %q", ErrSchema, raw)
	}
	return amount, nil
}

var eventTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"20060102150405",
	"2006-01-02 15:04:05",
}

func parseEventTime(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range eventTimeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: bad event time %q", ErrSchema, raw)
}

// ExtractExternalTxnID pulls the provider's transaction identifier out of a
// raw payload without full schema validation. Used to key REJECTED_SCHEMA
// audit rows when the rest of the payload is malformed.
func ExtractExternalTxnID(provider string, body []byte) string {
	var generic map[string]any
	if err := json.Unmarshal(body, &generic); err != nil {
		return ""
	}
	var key string
	switch provider {
	case ProviderBkash:
		key = "trxID"
	case ProviderNagad:
		key = "paymentRefId"
	default:
		return ""
	}
	if v, ok := generic[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}
