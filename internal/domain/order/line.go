package order

import "errors"

var ErrInvalidQuantity = errors.New("order: quantity must be greater than zero")

// Line is a value object owned exclusively by the Order that contains it.
type Line struct {
	ProductName string
	Quantity    int
	UnitPrice   Money
}

// NewLine builds an order line. Quantity must be positive.
func NewLine(productName string, quantity int, unitPrice Money) (Line, error) {
	if quantity <= 0 {
		return Line{}, ErrInvalidQuantity
	}
	return Line{
		ProductName: productName,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
	}, nil
}

// Total derives the line price: unit price times quantity, same currency.
func (l Line) Total() Money {
	return Money{
		Amount:   l.UnitPrice.Amount * int64(l.Quantity),
		Currency: l.UnitPrice.Currency,
	}
}
