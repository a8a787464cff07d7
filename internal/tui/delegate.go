package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ethanolivertroy/crosswalk/internal/model"
)

// MasterDelegate renders Master records with their classification and
// best match
type MasterDelegate struct {
	ShowDescription bool
	Styles          MasterDelegateStyles
}

type MasterDelegateStyles struct {
	NormalTitle   lipgloss.Style
	NormalDesc    lipgloss.Style
	SelectedTitle lipgloss.Style
	SelectedDesc  lipgloss.Style
	DimmedTitle   lipgloss.Style
	DimmedDesc    lipgloss.Style
	ID            lipgloss.Style
}

// NewMasterDelegate builds a delegate from the current theme
func NewMasterDelegate() MasterDelegate {
	return MasterDelegate{
		ShowDescription: true,
		Styles: MasterDelegateStyles{
			NormalTitle:   lipgloss.NewStyle().Foreground(ForegroundColor),
			NormalDesc:    lipgloss.NewStyle().Foreground(SubtleColor),
			SelectedTitle: lipgloss.NewStyle().Foreground(PrimaryColor).Bold(true),
			SelectedDesc:  lipgloss.NewStyle().Foreground(ForegroundColor),
			DimmedTitle:   lipgloss.NewStyle().Foreground(SubtleColor),
			DimmedDesc:    lipgloss.NewStyle().Foreground(SubtleColor),
			ID:            lipgloss.NewStyle().Foreground(SecondaryColor).Bold(true),
		},
	}
}

func (d MasterDelegate) Height() int {
	if d.ShowDescription {
		return 2
	}
	return 1
}

func (d MasterDelegate) Spacing() int {
	return 1
}

func (d MasterDelegate) Update(tea.Msg, *list.Model) tea.Cmd {
	return nil
}

func (d MasterDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	rec, ok := item.(model.MasterItem)
	if !ok {
		return
	}

	selected := index == m.Index()
	titleStyle, descStyle, idStyle := d.Styles.NormalTitle, d.Styles.NormalDesc, d.Styles.ID
	switch {
	case m.FilterState() == list.Filtering:
		titleStyle, descStyle, idStyle = d.Styles.DimmedTitle, d.Styles.DimmedDesc, d.Styles.DimmedTitle
	case selected:
		titleStyle, descStyle = d.Styles.SelectedTitle, d.Styles.SelectedDesc
	}

	line := idStyle.Render(fmt.Sprintf("[%s]", rec.ID)) +
		titleStyle.Render(" "+rec.Title()) +
		" " + ClassBadge(rec.Class)
	if rec.Best != nil {
		line += " " + ConfidenceBadge(rec.Best.Confidence)
	}

	wrap := NormalItemStyle
	if selected {
		wrap = SelectedItemStyle
	}
	fmt.Fprint(w, wrap.Render(line))

	if d.ShowDescription {
		fmt.Fprint(w, "\n"+wrap.Render(descStyle.Render(rec.Description())))
	}
}
