package story

// Каталоги параметров персонализации. Бэкенд валидирует их повторно;
// локальные копии нужны для формы и для доклиентской валидации.

// Themes lists the selectable story themes.
var Themes = []string{
	"Adventure",
	"Fantasy",
	"Science Fiction",
	"Mystery",
	"Friendship",
	"Animals",
	"Space",
	"Underwater",
	"Fairy Tale",
	"Superhero",
	"Educational",
	"Holiday",
	"Family",
	"Nature",
	"Magic",
}

// Length is a selectable story length with its page range.
type Length struct {
	Value string
	Label string
	Pages string
}

// Lengths lists the selectable story lengths.
var Lengths = []Length{
	{Value: "short", Label: "Short (3-5 pages)", Pages: "3-5"},
	{Value: "medium", Label: "Medium (6-10 pages)", Pages: "6-10"},
	{Value: "long", Label: "Long (11-15 pages)", Pages: "11-15"},
}

// Genders lists the selectable child genders.
var Genders = []string{"boy", "girl", "other"}

// InterestSuggestions lists interests offered in the creation form. Free
// text interests are accepted too; this is a suggestion set, not an enum.
var InterestSuggestions = []string{
	"Animals", "Sports", "Music", "Art", "Science", "Technology",
	"Reading", "Dancing", "Cooking", "Building", "Nature", "Traveling",
	"Games", "Puzzles", "Magic", "Dinosaurs", "Space", "Ocean",
	"Cars", "Trains", "Planes", "Bikes", "Princesses", "Knights",
	"Dragons", "Unicorns", "Robots", "Aliens",
}

func validTheme(theme string) bool {
	for _, t := range Themes {
		if t == theme {
			return true
		}
	}
	return false
}

func validLength(value string) bool {
	for _, l := range Lengths {
		if l.Value == value {
			return true
		}
	}
	return false
}

func validGender(value string) bool {
	for _, g := range Genders {
		if g == value {
			return true
		}
	}
	return false
}
