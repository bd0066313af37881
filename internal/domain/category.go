package domain

// Difficulty is an OpenTDB difficulty level.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Valid reports whether d is one of the three known levels.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Category is a trivia category with its OpenTDB identifier.
type Category struct {
	ID   int
	Name string
}

// Categories lists the quiz categories offered to users, in menu order.
var Categories = []Category{
	{9, "General Knowledge"},
	{10, "Books"},
	{11, "Film"},
	{12, "Music"},
	{17, "Science & Nature"},
	{18, "Computers"},
	{19, "Mathematics"},
	{20, "Mythology"},
	{21, "Sports"},
	{22, "Geography"},
	{23, "History"},
	{24, "Politics"},
	{25, "Art"},
}

// CategoryByID returns the category with the given OpenTDB ID, if known.
func CategoryByID(id int) (Category, bool) {
	for _, c := range Categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}
