package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	New       key.Binding
	Edit      key.Binding
	Delete    key.Binding
	Search    key.Binding
	Theme     key.Binding
	Quit      key.Binding
	Save      key.Binding
	Cancel    key.Binding
	Field     key.Binding
	PrevNote  key.Binding
	NextNote  key.Binding
	Confirm   key.Binding
	ForceQuit key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		New:       key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
		Edit:      key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit")),
		Delete:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Search:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Theme:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		Save:      key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Field:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch field")),
		PrevNote:  key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "prev note")),
		NextNote:  key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "next note")),
		Confirm:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "done")),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

// browseHelp implements help.KeyMap for the list
type browseHelp struct{ keyMap }

func (k browseHelp) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.New, k.Edit, k.Delete, k.Search, k.Theme, k.Quit}
}

func (k browseHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// editHelp implements help.KeyMap while editing
type editHelp struct{ keyMap }

func (k editHelp) ShortHelp() []key.Binding {
	return []key.Binding{k.Save, k.Cancel, k.Field, k.PrevNote, k.NextNote}
}

func (k editHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
