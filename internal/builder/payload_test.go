package builder

import (
	"encoding/json"
	"testing"

	"catering/internal/catalog"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderData_RoundTrip(t *testing.T) {
	a := menuA()
	a.Price, _ = catalog.ParseMoney("1249.99")
	b := newBuilder(t, a, menuB(), menuC())

	b.SetPortionsDirect("A", 7)
	b.SetPortionsDirect("C", 3)
	require.True(t, b.StartDishSelection())
	b.ToggleDish("A", "D2")
	b.ToggleDish("A", "D3")
	require.True(t, b.GoToNextMenu())
	b.ToggleDish("C", "F1")
	require.True(t, b.GoToNextMenu())

	data, err := b.OrderData()
	require.NoError(t, err)

	parsed, err := ParsePayload(data)
	require.NoError(t, err)
	require.Len(t, parsed.Orders, len(b.ActiveMenus()))

	sum := decimal.Zero
	for _, line := range parsed.Orders {
		want := line.PricePerPortion.Mul(decimal.NewFromInt(int64(line.Portions)))
		assert.True(t, want.Equal(line.TotalPrice.Decimal), line.MenuID)
		sum = sum.Add(line.TotalPrice.Decimal)
	}
	assert.True(t, sum.Equal(parsed.TotalPrice.Decimal))
	assert.Equal(t, "8749.93", parsed.Orders[0].TotalPrice.StringFixed(2))
	assert.Equal(t, 10, parsed.TotalPortions)
}

func TestOrderData_WireShape(t *testing.T) {
	b := newBuilder(t, menuA())
	b.SetPortionsDirect("A", 3)
	b.StartDishSelection()
	b.ToggleDish("A", "D2")
	b.ToggleDish("A", "D1")
	b.GoToNextMenu()

	data, err := b.OrderData()
	require.NoError(t, err)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(data), &raw))
	assert.Equal(t, 1500.0, raw["totalPrice"])
	assert.Equal(t, 3.0, raw["totalPortions"])

	orders := raw["orders"].([]interface{})
	line := orders[0].(map[string]interface{})
	assert.Equal(t, "A", line["menuId"])
	assert.Equal(t, "Menu A", line["menuName"])
	assert.Equal(t, 500.0, line["pricePerPortion"])
	assert.Equal(t, 1500.0, line["totalPrice"])
	assert.Equal(t, 2.0, line["dishCount"])
	assert.Equal(t, []interface{}{"D1", "D2"}, line["selectedDishIds"])
}

func TestParsePayload_Invalid(t *testing.T) {
	_, err := ParsePayload("{not json")
	assert.Error(t, err)

	p, err := ParsePayload(`{"totalPrice": 0, "totalPortions": 0}`)
	require.NoError(t, err)
	assert.NotNil(t, p.Orders)
}
