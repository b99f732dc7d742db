package pos

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAggregatesByDateAndProduct(t *testing.T) {
	csv := `date,product,quantity,revenue
2025-03-01,Widget,2,20.00
2025-03-01,Widget,3,30.00
2025-03-01,Gizmo,1,5.50
2025-03-02,Widget,4,40.00
`
	records, err := Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, records, 3)

	// Sorted by date, then product
	assert.Equal(t, "2025-03-01", records[0].Date)
	assert.Equal(t, "Gizmo", records[0].ProductName)

	assert.Equal(t, "Widget", records[1].ProductName)
	assert.Equal(t, 5, records[1].Quantity, "repeated lines are summed")
	assert.InDelta(t, 50.0, records[1].Revenue, 0.001)

	assert.Equal(t, "2025-03-02", records[2].Date)
	assert.Equal(t, 4, records[2].Quantity)
}

func TestParseHeaderSynonyms(t *testing.T) {
	csv := `Transaction Date,Item Name,Qty,Total
03/01/2025,Widget,2,20.00
`
	records, err := Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "2025-03-01", records[0].Date, "dates are normalized to YYYY-MM-DD")
	assert.Equal(t, "Widget", records[0].ProductName)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{
			name:    "empty input",
			input:   "",
			wantErr: "empty POS export",
		},
		{
			name:    "missing revenue column",
			input:   "date,product,quantity\n2025-03-01,Widget,2\n",
			wantErr: "missing revenue column",
		},
		{
			name:    "bad date",
			input:   "date,product,quantity,revenue\nyesterday,Widget,2,20\n",
			wantErr: "invalid date",
		},
		{
			name:    "bad quantity",
			input:   "date,product,quantity,revenue\n2025-03-01,Widget,two,20\n",
			wantErr: "invalid quantity",
		},
		{
			name:    "empty product",
			input:   "date,product,quantity,revenue\n2025-03-01,,2,20\n",
			wantErr: "product name is empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGroupByDate(t *testing.T) {
	csv := `date,product,quantity,revenue
2025-03-01,Widget,2,20.00
2025-03-02,Widget,4,40.00
2025-03-01,Gizmo,1,5.00
`
	records, err := Parse(strings.NewReader(csv))
	require.NoError(t, err)

	grouped := GroupByDate(records)
	require.Len(t, grouped, 2)
	assert.Len(t, grouped["2025-03-01"], 2)
	assert.Len(t, grouped["2025-03-02"], 1)
}
