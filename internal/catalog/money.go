package catalog

import (
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Money is a currency amount that serializes as a plain JSON number with
// two decimals and parses without going through float64.
type Money struct {
	decimal.Decimal
}

func NewMoney(d decimal.Decimal) Money {
	return Money{Decimal: d}
}

func MoneyFromInt(v int64) Money {
	return Money{Decimal: decimal.NewFromInt(v)}
}

func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, err
	}
	return Money{Decimal: d}, nil
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.StringFixed(2)), nil
}

func (m *Money) UnmarshalJSON(b []byte) error {
	return m.Decimal.UnmarshalJSON(b)
}

func (m Money) MarshalYAML() (interface{}, error) {
	return m.StringFixed(2), nil
}

func (m *Money) UnmarshalYAML(node *yaml.Node) error {
	parsed, err := ParseMoney(node.Value)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func (m Money) String() string {
	return m.StringFixed(2)
}
