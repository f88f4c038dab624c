package viewmodel

// Option is one choice of a select input.
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// FormField describes one input of the generic entity form.
type FormField struct {
	Name     string
	Label    string
	Type     string // text, email, tel, number, date, password, select, checkbox, textarea
	Value    string
	Options  []Option
	Required bool
	Error    string
	Hint     string
	Checked  bool
}

// FilterField is one control of the dashboard filter bar.
type FilterField struct {
	Key     string
	Label   string
	Type    string // search, text, select, date
	Value   string
	Options []Option
	// MaxLength limits code inputs such as currency (3) or country (2).
	MaxLength int
}

// ActiveFilter is a removable chip for a filter present in the URL.
type ActiveFilter struct {
	Key       string
	Label     string
	Value     string
	RemoveURL string
}
