package numeral

var (
	uaUnitsMasculine = [...]string{"", "один", "два", "три", "чотири", "п'ять", "шість", "сім", "вісім", "дев'ять"}
	uaUnitsFeminine  = [...]string{"", "одна", "дві", "три", "чотири", "п'ять", "шість", "сім", "вісім", "дев'ять"}
	uaUnitsNeuter    = [...]string{"", "одне", "два", "три", "чотири", "п'ять", "шість", "сім", "вісім", "дев'ять"}
	uaTeens          = [...]string{"десять", "одинадцять", "дванадцять", "тринадцять", "чотирнадцять",
		"п'ятнадцять", "шістнадцять", "сімнадцять", "вісімнадцять", "дев'ятнадцять"}
	uaTens     = [...]string{"", "", "двадцять", "тридцять", "сорок", "п'ятдесят", "шістдесят", "сімдесят", "вісімдесят", "дев'яносто"}
	uaHundreds = [...]string{"", "сто", "двісті", "триста", "чотириста", "п'ятсот", "шістсот", "сімсот", "вісімсот", "дев'ятсот"}
)

// uaScale is a group name with its three agreement forms.
type uaScale struct {
	forms  [3]string // indexed by Form
	gender Gender
}

var uaScales = [...]uaScale{
	{},
	{forms: [3]string{"тисяча", "тисячі", "тисяч"}, gender: Feminine},
	{forms: [3]string{"мільйон", "мільйони", "мільйонів"}, gender: Masculine},
}

type ukrainianGrammar struct{}

func (ukrainianGrammar) Zero() string { return "нуль" }

func (ukrainianGrammar) Triplet(n int, g Gender) []string {
	var words []string
	if h := n / 100; h > 0 {
		words = append(words, uaHundreds[h])
	}
	rest := n % 100
	switch {
	case rest == 0:
	case rest >= 10 && rest < 20:
		words = append(words, uaTeens[rest-10])
	default:
		if t := rest / 10; t > 0 {
			words = append(words, uaTens[t])
		}
		if u := rest % 10; u > 0 {
			words = append(words, uaUnit(u, g))
		}
	}
	return words
}

func uaUnit(u int, g Gender) string {
	switch g {
	case Feminine:
		return uaUnitsFeminine[u]
	case Neuter:
		return uaUnitsNeuter[u]
	}
	return uaUnitsMasculine[u]
}

func (ukrainianGrammar) Scale(scale int, count int) (string, Gender) {
	s := uaScales[scale]
	return s.forms[Agreement(int64(count))], s.gender
}
