package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeIdent(t *testing.T) {
	tests := map[string]string{
		"":            "",
		"Name":        "name",
		"OrderID":     "orderid",
		"order_id":    "orderid",
		"order-id":    "orderid",
		"Order ID":    "orderid",
		"camel.Case":  "camelcase",
		"ÜberPreis":   "überpreis",
		"already_low": "alreadylow",
	}

	for in, want := range tests {
		assert.Equal(t, want, NormalizeIdent(in), in)
	}
}
