package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

var (
	specialHallMultiplier = decimal.RequireFromString("1.3")
	weekendMultiplier     = decimal.RequireFromString("1.5")
)

// TicketPrice is the unit seat price for a hall on a given date. It is a pure
// function: base price, ×1.3 for special halls, ×1.5 on Saturday and Sunday,
// applied multiplicatively.
func TicketPrice(hall Hall, date time.Time) decimal.Decimal {
	price := hall.BasePrice

	if hall.IsSpecial {
		price = price.Mul(specialHallMultiplier)
	}

	if isWeekend(date) {
		price = price.Mul(weekendMultiplier)
	}

	return price
}

func isWeekend(date time.Time) bool {
	wd := date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
