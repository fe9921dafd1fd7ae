package forecast

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var ErrInvalidTransaction = errors.New("invalid transaction")

// Amounts are limited in scale and precision so that aggregation and
// division stay cheap.
const (
	maxAmountExponent = 30
	maxAmountDigits   = 40
)

// Transaction is a dated, signed amount. The sign convention is the caller's;
// it is carried through aggregation unchanged.
type Transaction struct {
	Date   time.Time
	Amount decimal.Decimal
}

// TransactionInput is a transaction as received on the wire, before validation.
type TransactionInput struct {
	Date   json.RawMessage `json:"date"`
	Amount json.RawMessage `json:"amount"`
}

// dateLayouts are tried in order. Date-only forms are interpreted in UTC.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006/01/02",
	"2006-01",
}

func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, errors.New("date is empty")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", value)
}

// FieldError describes one invalid field of one transaction.
type FieldError struct {
	Index int
	Field string
	Value string
	Err   error
}

func (e FieldError) Error() string {
	return fmt.Sprintf("transaction %d: %s %s: %v", e.Index, e.Field, e.Value, e.Err)
}

func (e FieldError) Unwrap() error {
	return e.Err
}

// TransactionErrors lists every invalid field found in a request. It matches
// ErrInvalidTransaction with errors.Is.
type TransactionErrors []FieldError

func (e TransactionErrors) Error() string {
	messages := make([]string, 0, len(e))
	for _, fieldErr := range e {
		messages = append(messages, fieldErr.Error())
	}
	return fmt.Sprintf("%s: %s", ErrInvalidTransaction, strings.Join(messages, "; "))
}

func (e TransactionErrors) Is(target error) bool {
	return target == ErrInvalidTransaction
}

// ParseTransactions validates every input. Either all inputs are valid and
// returned in order, or a TransactionErrors naming each bad field is returned.
func ParseTransactions(inputs []TransactionInput) ([]Transaction, error) {
	transactions := make([]Transaction, 0, len(inputs))
	var errs TransactionErrors
	for i, input := range inputs {
		date, dateErr := parseDateField(input.Date)
		if dateErr != nil {
			errs = append(errs, FieldError{Index: i, Field: "date", Value: rawValue(input.Date), Err: dateErr})
		}
		amount, amountErr := parseAmountField(input.Amount)
		if amountErr != nil {
			errs = append(errs, FieldError{Index: i, Field: "amount", Value: rawValue(input.Amount), Err: amountErr})
		}
		if dateErr == nil && amountErr == nil {
			transactions = append(transactions, Transaction{Date: date, Amount: amount})
		}
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return transactions, nil
}

func parseDateField(raw json.RawMessage) (time.Time, error) {
	if isMissing(raw) {
		return time.Time{}, errors.New("date is required")
	}
	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		return time.Time{}, errors.New("date must be a string")
	}
	return ParseDate(value)
}

func parseAmountField(raw json.RawMessage) (decimal.Decimal, error) {
	if isMissing(raw) {
		return decimal.Decimal{}, errors.New("amount is required")
	}
	var amount decimal.Decimal
	if err := amount.UnmarshalJSON(raw); err != nil {
		return decimal.Decimal{}, errors.New("amount must be a number")
	}
	if exp := amount.Exponent(); exp > maxAmountExponent || exp < -maxAmountExponent || amount.NumDigits() > maxAmountDigits {
		return decimal.Decimal{}, errors.New("amount out of range")
	}
	return amount, nil
}

func isMissing(raw json.RawMessage) bool {
	trimmed := strings.TrimSpace(string(raw))
	return trimmed == "" || trimmed == "null"
}

func rawValue(raw json.RawMessage) string {
	if isMissing(raw) {
		return "<missing>"
	}
	return string(raw)
}
