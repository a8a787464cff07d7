package model

import (
	"fmt"
	"strings"
)

// MasterItem wraps a Master record with its correlation state to implement list.Item
type MasterItem struct {
	ControlRecord
	Class     Classification
	Best      *Correlation
	LinkCount int
}

// Title returns the display title for the list
func (m MasterItem) Title() string {
	if m.ControlRecord.Title == "" {
		return m.Domain
	}
	return m.ControlRecord.Title
}

// Description returns the secondary text for the list
func (m MasterItem) Description() string {
	parts := []string{m.Domain}
	if ref := m.StandardRef(); ref != "" {
		parts = append(parts, ref)
	}
	if m.Frequency != "" {
		parts = append(parts, string(m.Frequency))
	}
	if m.Best != nil {
		parts = append(parts, fmt.Sprintf("Best: %s %s (%d%%)", m.Best.TargetFramework, m.Best.TargetID, m.Best.Confidence))
	}
	return strings.Join(parts, " | ")
}

// FilterValue returns the string used for filtering
func (m MasterItem) FilterValue() string {
	return strings.Join([]string{
		m.ID,
		m.ControlRecord.Title,
		m.Domain,
		m.StandardCode,
		string(m.Class),
	}, " ")
}

// MasterSelectedMsg is sent when the browser opens or leaves a Master
// record. Item is nil when no record is selected.
type MasterSelectedMsg struct {
	Item *MasterItem
}
