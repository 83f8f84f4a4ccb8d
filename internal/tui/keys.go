package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type keyMap struct {
	Answer  [4]key.Binding
	Advance key.Binding
	Mute    key.Binding
	Quit    key.Binding
}

// Option labels, Latin then Khmer, share positions.
var answerKeys = [4][]string{
	{"1", "a", "A", "ក"},
	{"2", "b", "B", "ខ"},
	{"3", "c", "C", "គ"},
	{"4", "d", "D", "ឃ"},
}

var optionLabels = [4]string{"A", "B", "C", "D"}

func defaultKeys() keyMap {
	var k keyMap
	for i, keys := range answerKeys {
		k.Answer[i] = key.NewBinding(key.WithKeys(keys...), key.WithHelp(keys[0], "answer "+optionLabels[i]))
	}
	k.Advance = key.NewBinding(key.WithKeys("enter", " ", "n"), key.WithHelp("enter", "next"))
	k.Mute = key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "mute"))
	k.Quit = key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "exit"))
	return k
}

func (k keyMap) answerIndex(msg tea.KeyMsg) (int, bool) {
	for i, b := range k.Answer {
		if key.Matches(msg, b) {
			return i, true
		}
	}
	return 0, false
}
