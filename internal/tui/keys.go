package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the browser's key bindings.
type KeyMap struct {
	Search     key.Binding
	Gender     key.Binding
	Country    key.Binding
	SortName   key.Binding
	SortEmail  key.Binding
	SortAge    key.Binding
	PrevPage   key.Binding
	NextPage   key.Binding
	Select     key.Binding
	Clear      key.Binding
	Quit       key.Binding
	Confirm    key.Binding
	CancelEdit key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Search:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Gender:     key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "gender")),
		Country:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "country")),
		SortName:   key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "sort name")),
		SortEmail:  key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "sort email")),
		SortAge:    key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "sort age")),
		PrevPage:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev page")),
		NextPage:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next page")),
		Select:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
		Clear:      key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "close details")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Confirm:    key.NewBinding(key.WithKeys("enter")),
		CancelEdit: key.NewBinding(key.WithKeys("esc")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Gender, k.Country, k.SortName, k.SortEmail, k.SortAge, k.PrevPage, k.NextPage, k.Select, k.Clear, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Search, k.Gender, k.Country},
		{k.SortName, k.SortEmail, k.SortAge},
		{k.PrevPage, k.NextPage, k.Select, k.Clear, k.Quit},
	}
}
