package handler

import (
	"strconv"
	"strings"

	tradeapp "github.com/moldshop/erp/internal/application/trade"
	"github.com/moldshop/erp/internal/domain/shared"
)

// orderLinesForm carries order lines the way an HTML order form posts
// them: parallel arrays indexed by line. Rows without a product are blank
// rows of the form and are skipped; any other row needs a quantity and a
// unit price.
type orderLinesForm struct {
	ProductIDs []string `form:"product_id[]"`
	Quantities []string `form:"quantity[]"`
	UnitPrices []string `form:"unit_price[]"`
}

func (f orderLinesForm) lines() ([]tradeapp.OrderLineRequest, error) {
	var lines []tradeapp.OrderLineRequest
	for i, rawID := range f.ProductIDs {
		if strings.TrimSpace(rawID) == "" {
			continue
		}
		if i >= len(f.Quantities) || i >= len(f.UnitPrices) {
			return nil, shared.NewValidationError(lineField("items", i), "Line is missing its quantity or unit price")
		}

		productID, err := parseUUID(lineField("product_id", i), rawID)
		if err != nil {
			return nil, err
		}
		quantity, err := parseInt64(lineField("quantity", i), f.Quantities[i])
		if err != nil {
			return nil, err
		}
		unitPrice, err := parseDecimal(lineField("unit_price", i), f.UnitPrices[i])
		if err != nil {
			return nil, err
		}
		lines = append(lines, tradeapp.OrderLineRequest{
			ProductID: productID,
			Quantity:  quantity,
			UnitPrice: &unitPrice,
		})
	}
	return lines, nil
}

func lineField(name string, i int) string {
	return name + "[" + strconv.Itoa(i) + "]"
}
