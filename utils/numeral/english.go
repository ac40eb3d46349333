package numeral

var (
	enUnits = [...]string{"", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine",
		"ten", "eleven", "twelve", "thirteen", "fourteen", "fifteen", "sixteen", "seventeen",
		"eighteen", "nineteen"}
	enTens   = [...]string{"", "", "twenty", "thirty", "forty", "fifty", "sixty", "seventy", "eighty", "ninety"}
	enScales = [...]string{"", "thousand", "million"}
)

type englishGrammar struct{}

func (englishGrammar) Zero() string { return "zero" }

// Triplet renders "one hundred five", "twenty-three". English has no
// grammatical gender for numerals.
func (englishGrammar) Triplet(n int, _ Gender) []string {
	var words []string
	if h := n / 100; h > 0 {
		words = append(words, enUnits[h], "hundred")
	}
	rest := n % 100
	switch {
	case rest == 0:
	case rest < 20:
		words = append(words, enUnits[rest])
	case rest%10 == 0:
		words = append(words, enTens[rest/10])
	default:
		words = append(words, enTens[rest/10]+"-"+enUnits[rest%10])
	}
	return words
}

func (englishGrammar) Scale(scale int, _ int) (string, Gender) {
	return enScales[scale], Masculine
}
