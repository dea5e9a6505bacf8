package multiselect

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

// SelectableItem extends list.Item with selection state.
type SelectableItem interface {
	list.Item
	IsSelected() bool
	SetSelected(bool)
}

// Model wraps a bubbles/list.Model with multi-select capabilities.
// Selection is keyed by FilterValue so it survives item rebuilds.
type Model struct {
	List          list.Model
	selectedKeys  map[string]bool
	originalTitle string
	checked       string
	unchecked     string
}

// New creates a multi-select model wrapping the given list.
func New(l list.Model) Model {
	return Model{
		List:          l,
		selectedKeys:  make(map[string]bool),
		originalTitle: l.Title,
		checked:       "[✓] ",
		unchecked:     "[ ] ",
	}
}

// Toggle toggles the selection state of the current item.
// Returns false when the cursor is not on a selectable item.
func (m *Model) Toggle() bool {
	item, ok := m.List.SelectedItem().(SelectableItem)
	if !ok {
		return false
	}

	key := item.FilterValue()
	if m.selectedKeys[key] {
		delete(m.selectedKeys, key)
	} else {
		m.selectedKeys[key] = true
	}

	m.rebuildItems()
	m.updateTitle()
	return true
}

// ClearSelection removes all selections.
func (m *Model) ClearSelection() {
	m.selectedKeys = make(map[string]bool)
	m.rebuildItems()
	m.updateTitle()
}

// SelectedKeys returns the keys of all selected items.
func (m *Model) SelectedKeys() []string {
	keys := make([]string, 0, len(m.selectedKeys))
	for key := range m.selectedKeys {
		keys = append(keys, key)
	}
	return keys
}

// SelectedCount returns the number of selected items.
func (m *Model) SelectedCount() int {
	return len(m.selectedKeys)
}

// SetTitle updates the base title (without count suffix).
func (m *Model) SetTitle(title string) {
	m.originalTitle = title
	m.updateTitle()
}

// RestoreSelectionState re-applies selection state after the list items
// were replaced.
func (m *Model) RestoreSelectionState() {
	m.rebuildItems()
	m.updateTitle()
}

// CheckboxPrefix returns the checkbox prefix for an item.
// Meant to be used by custom item delegates.
func (m *Model) CheckboxPrefix(item SelectableItem) string {
	if item.IsSelected() {
		return m.checked
	}
	return m.unchecked
}

// rebuildItems pushes the current selection state into the list items.
// Items may be stored by value, so each one is updated and written back.
func (m *Model) rebuildItems() {
	items := m.List.Items()
	newItems := make([]list.Item, len(items))

	for i, item := range items {
		if sel, ok := item.(SelectableItem); ok {
			sel.SetSelected(m.selectedKeys[sel.FilterValue()])
			newItems[i] = sel
		} else {
			newItems[i] = item
		}
	}
	m.List.SetItems(newItems)
}

func (m *Model) updateTitle() {
	if len(m.selectedKeys) == 0 {
		m.List.Title = m.originalTitle
		return
	}
	m.List.Title = fmt.Sprintf("%s (%d selected)", m.originalTitle, len(m.selectedKeys))
}

// Update forwards messages to the wrapped list.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.List, cmd = m.List.Update(msg)
	return m, cmd
}

// View renders the list.
func (m Model) View() string {
	return m.List.View()
}
