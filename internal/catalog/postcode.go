package catalog

import (
	"regexp"
	"sort"
	"strconv"
)

// Area labels embed a UK postcode district, e.g. "Brick Lane - E1".
var postcodePattern = regexp.MustCompile(`[A-Z]{1,2}[0-9]+`)

// ExtractPostcode pulls the postcode district out of an area label.
// Returns "" when the label carries no district; that is not an error.
func ExtractPostcode(area string) string {
	return postcodePattern.FindString(area)
}

var (
	lettersPattern = regexp.MustCompile(`[A-Z]+`)
	digitsPattern  = regexp.MustCompile(`[0-9]+`)
)

// ComparePostcodes orders districts by letter prefix, then numerically.
func ComparePostcodes(a, b string) int {
	aLetters := lettersPattern.FindString(a)
	bLetters := lettersPattern.FindString(b)
	if aLetters != bLetters {
		if aLetters < bLetters {
			return -1
		}
		return 1
	}
	aNum, _ := strconv.Atoi(digitsPattern.FindString(a))
	bNum, _ := strconv.Atoi(digitsPattern.FindString(b))
	return aNum - bNum
}

func SortAreasByPostcode(areas []string) []string {
	sorted := make([]string, len(areas))
	copy(sorted, areas)
	sort.SliceStable(sorted, func(i, j int) bool {
		return ComparePostcodes(ExtractPostcode(sorted[i]), ExtractPostcode(sorted[j])) < 0
	})
	return sorted
}
