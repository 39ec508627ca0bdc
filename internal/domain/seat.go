package domain

import "fmt"

const maxRowLetters = 26

// Seat identifies one place in a hall by its row letter and seat number.
// Seats are value objects; they have no identity outside a hall's grid.
type Seat struct {
	Letter string
	Number int
}

func (s Seat) Label() string {
	return fmt.Sprintf("%s%d", s.Letter, s.Number)
}

// RowLetter maps a zero-based row index to its letter. Halls are capped at
// 26 rows by migration, so a single letter is always enough.
func RowLetter(row int) string {
	if row < 0 || row >= maxRowLetters {
		return ""
	}

	return string(rune('A' + row))
}

func rowIndex(letter string) (int, bool) {
	if len(letter) != 1 || letter[0] < 'A' || letter[0] > 'Z' {
		return 0, false
	}

	return int(letter[0] - 'A'), true
}

// DedupeSeats reports the first seat that appears more than once in the
// request, if any.
func DedupeSeats(seats []Seat) (Seat, bool) {
	seen := make(map[Seat]struct{}, len(seats))

	for _, s := range seats {
		if _, ok := seen[s]; ok {
			return s, true
		}
		seen[s] = struct{}{}
	}

	return Seat{}, false
}
