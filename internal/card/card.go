package card

// Record is one raw card object as delivered by LorcanaJSON. Every field is optional.
type Record map[string]any

// Ability is a single entry of a card's abilities list
type Ability struct {
	FullText string
	Type     string
}

// Entry represents a normalized card, one per unique simple name
type Entry struct {
	Name         string // simpleName, the table key
	ID           int
	ImageURL     string // images.full
	Color        string // ink color(s), e.g. Amber or Amber-Steel
	AbilityText  string // fullText of every ability, joined by a literal \n
	AbilityTypes string // type of every ability, joined by ", "
	Strength     int
	Willpower    int
	Lore         int
	Cost         int
	Inkwell      bool
	Drying       int
	Inked        int
	Tapped       int
}

// Values returns the entry's fields in table column order
func (e Entry) Values() []any {
	return []any{
		e.ID,
		e.ImageURL,
		e.Color,
		e.AbilityText,
		e.AbilityTypes,
		e.Strength,
		e.Willpower,
		e.Lore,
		e.Cost,
		e.Inkwell,
		e.Drying,
		e.Inked,
		e.Tapped,
	}
}

// ColumnCount is the number of values in a table row
const ColumnCount = 13
