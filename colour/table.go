package colour

// DefaultExpected is the initial guess at the number of distinct nicknames.
const DefaultExpected = 30

// TableConfig configures a Table.
type TableConfig struct {
	// Expected is how many different nicknames the log is likely to contain.
	// Zero selects DefaultExpected. The estimate doubles whenever it is
	// reached, so a low guess only costs some colour spacing.
	Expected int
	// Chooser defaults to DefaultChooser().
	Chooser *Chooser
	// Defaults are preset nickname colours ("#rrggbb") that take priority
	// over generated ones.
	Defaults map[string]string
}

// Table assigns colours to nicknames for a single rendered document.
type Table struct {
	chooser  *Chooser
	assigned int
	expected int
	colours  map[string]string
}

// NewTable creates an empty Table seeded with cfg.Defaults.
func NewTable(cfg TableConfig) *Table {
	t := &Table{
		chooser:  cfg.Chooser,
		expected: cfg.Expected,
		colours:  make(map[string]string, len(cfg.Defaults)),
	}
	if t.chooser == nil {
		t.chooser = DefaultChooser()
	}
	if t.expected <= 0 {
		t.expected = DefaultExpected
	}
	for nick, c := range cfg.Defaults {
		t.colours[nick] = c
	}
	return t
}

// Colour returns the colour of nick, assigning the next one on first sight.
func (t *Table) Colour(nick string) string {
	if c, ok := t.colours[nick]; ok && c != "" {
		return c
	}
	t.assigned++
	if t.assigned >= t.expected {
		t.expected *= 2
	}
	c := t.chooser.Choose(t.assigned, t.expected)
	t.colours[nick] = c
	return c
}

// Rename moves the colour of oldNick to newNick. Unknown nicknames are
// ignored.
func (t *Table) Rename(oldNick, newNick string) {
	c, ok := t.colours[oldNick]
	if !ok {
		return
	}
	delete(t.colours, oldNick)
	t.colours[newNick] = c
}

// Lookup reports the colour of nick without assigning one.
func (t *Table) Lookup(nick string) (string, bool) {
	c, ok := t.colours[nick]
	return c, ok
}

// Assigned returns how many colours have been generated so far.
func (t *Table) Assigned() int { return t.assigned }

// Expected returns the current denominator used for colour spacing.
func (t *Table) Expected() int { return t.expected }
