package interact

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	goir "github.com/jdginn/go-ir-tools/ir"
)

var docStyle = lipgloss.NewStyle().Margin(1, 2)

type item struct {
	reading   goir.Reading
	reference goir.Reading
}

func (i item) Title() string {
	return fmt.Sprintf("%gHz %.2f dB", i.reading.Frequency, i.reading.MagnitudeDB)
}

func (i item) Description() string {
	return fmt.Sprintf("%+.2f dB relative to %gHz", i.reading.MagnitudeDB-i.reference.MagnitudeDB, i.reference.Frequency)
}

func (i item) FilterValue() string {
	return i.Title()
}

type model struct {
	list list.Model
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m model) View() string {
	return docStyle.Render(m.list.View())
}

func items(readings []goir.Reading) []list.Item {
	items := make([]list.Item, len(readings))
	for i, r := range readings {
		items[i] = item{reading: r, reference: readings[0]}
	}
	return items
}

func newModel(title string, readings []goir.Reading) model {
	m := model{list: list.New(items(readings), list.NewDefaultDelegate(), 0, 0)}
	m.list.Title = title
	return m
}

// Interact shows the readings in a scrollable terminal list until the user quits.
func Interact(title string, readings []goir.Reading) error {
	p := tea.NewProgram(newModel(title, readings), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running response browser: %w", err)
	}
	return nil
}
