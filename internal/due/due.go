// Package due classifies task due timestamps by urgency relative to a time
// reference.
package due

// Category is the urgency of a task relative to a time reference.
type Category int

const (
	Overdue Category = iota
	DueSoon
	DueLater
)

// SoonDays is the number of whole days before the due timestamp during which
// a task counts as due soon.
const SoonDays = 3

const secondsPerDay = 24 * 60 * 60

// Categories returns every category in display order.
func Categories() []Category {
	return []Category{Overdue, DueSoon, DueLater}
}

// String returns the category name.
func (c Category) String() string {
	switch c {
	case Overdue:
		return "OVERDUE"
	case DueSoon:
		return "DUE_SOON"
	case DueLater:
		return "DUE_LATER"
	default:
		return "UNKNOWN"
	}
}

// Categorize classifies a due timestamp against a reference. Both are unix
// seconds. A task is overdue only when the reference is strictly after the
// due timestamp.
func Categorize(due, reference int64) Category {
	if reference > due {
		return Overdue
	}
	if (due-reference)/secondsPerDay < SoonDays {
		return DueSoon
	}
	return DueLater
}

// Class maps a category to its presentation tag.
func Class(c Category) string {
	switch c {
	case Overdue:
		return "overdue"
	case DueSoon:
		return "duesoon"
	case DueLater:
		return "duelater"
	default:
		return ""
	}
}

// ClassOf returns the presentation tag for a due timestamp.
func ClassOf(due, reference int64) string {
	return Class(Categorize(due, reference))
}

// CountByCategory counts due timestamps per category. Every category is
// present in the result, possibly with a zero count.
func CountByCategory(dues []int64, reference int64) map[Category]int {
	counts := make(map[Category]int, 3)
	for _, c := range Categories() {
		counts[c] = 0
	}
	for _, d := range dues {
		counts[Categorize(d, reference)]++
	}
	return counts
}
