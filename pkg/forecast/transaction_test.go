package forecast

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func input(date, amount string) TransactionInput {
	return TransactionInput{Date: json.RawMessage(date), Amount: json.RawMessage(amount)}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		value string
		want  Month
	}{
		{"2024-01-15", Month{2024, time.January}},
		{"2024-02-29T23:59:59Z", Month{2024, time.February}},
		{"2024-03-31T23:30:00+07:00", Month{2024, time.March}},
		{"2024-04-01T08:00:00", Month{2024, time.April}},
		{"2024-05-02 10:11:12", Month{2024, time.May}},
		{"2024/06/03", Month{2024, time.June}},
		{" 2024-07-04 ", Month{2024, time.July}},
		{"2024-08", Month{2024, time.August}},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			date, err := ParseDate(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, MonthOf(date))
		})
	}

	for _, invalid := range []string{"", "yesterday", "2024-13-01", "2024-02-30", "15/01/2024"} {
		t.Run("invalid "+invalid, func(t *testing.T) {
			_, err := ParseDate(invalid)
			assert.Error(t, err)
		})
	}
}

func TestParseTransactions(t *testing.T) {
	t.Run("should parse numbers and numeric strings", func(t *testing.T) {
		// when
		transactions, err := ParseTransactions([]TransactionInput{
			input(`"2024-01-15"`, `12.5`),
			input(`"2024-01-16"`, `"-3"`),
			input(`"2024-02-01"`, `1e3`),
		})

		// then
		require.NoError(t, err)
		require.Len(t, transactions, 3)
		assert.Equal(t, "12.5", transactions[0].Amount.String())
		assert.Equal(t, "-3", transactions[1].Amount.String())
		assert.Equal(t, "1000", transactions[2].Amount.String())
	})

	t.Run("empty input is valid", func(t *testing.T) {
		transactions, err := ParseTransactions(nil)
		require.NoError(t, err)
		assert.Empty(t, transactions)
	})

	t.Run("should report every malformed field", func(t *testing.T) {
		// when
		transactions, err := ParseTransactions([]TransactionInput{
			input(`"2024-01-15"`, `10`),
			input(`"not a date"`, `10`),
			input(``, `null`),
			input(`20240115`, `"ten"`),
		})

		// then
		require.Error(t, err)
		assert.Nil(t, transactions)
		assert.ErrorIs(t, err, ErrInvalidTransaction)

		var errs TransactionErrors
		require.ErrorAs(t, err, &errs)
		require.Len(t, errs, 5)
		assert.Equal(t, FieldError{Index: 1, Field: "date", Value: `"not a date"`, Err: errs[0].Err}, errs[0])
		assert.Equal(t, 2, errs[1].Index)
		assert.Equal(t, "date", errs[1].Field)
		assert.Equal(t, "<missing>", errs[1].Value)
		assert.Equal(t, 2, errs[2].Index)
		assert.Equal(t, "amount", errs[2].Field)
		assert.EqualError(t, errs[3].Err, "date must be a string")
		assert.EqualError(t, errs[4].Err, "amount must be a number")
		assert.Contains(t, err.Error(), "transaction 1: date")
	})

	t.Run("should reject amounts with extreme scale or precision", func(t *testing.T) {
		for _, amount := range []string{
			`1e-50000000`,
			`1e-2147483648`,
			`1e31`,
			`"0.0000000000000000000000000000001"`,
			`12345678901234567890123456789012345678901`,
		} {
			t.Run(amount, func(t *testing.T) {
				// when
				_, err := ParseTransactions([]TransactionInput{input(`"2024-01-01"`, amount)})

				// then
				var errs TransactionErrors
				require.ErrorAs(t, err, &errs)
				require.Len(t, errs, 1)
				assert.Equal(t, "amount", errs[0].Field)
				assert.EqualError(t, errs[0].Err, "amount out of range")
			})
		}
	})

	t.Run("should accept amounts at the bounds", func(t *testing.T) {
		transactions, err := ParseTransactions([]TransactionInput{
			input(`"2024-01-01"`, `1e30`),
			input(`"2024-01-02"`, `"0.000000000000000000000000000001"`),
		})
		require.NoError(t, err)
		assert.Len(t, transactions, 2)
	})
}
