package ui

import "github.com/charmbracelet/lipgloss"

var (
	// General.

	subtle    = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}
	highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	special   = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	muted     = lipgloss.AdaptiveColor{Light: "#969B86", Dark: "#696969"}

	purple    = lipgloss.Color("#560A86")
	green     = lipgloss.Color("#80ED99")
	yellow    = lipgloss.Color("#F2C94C")
	red       = lipgloss.Color("#FF5F87")
	white     = lipgloss.Color("#FAFAFA")
	lightGrey = lipgloss.Color("#383838")
	darkGrey  = lipgloss.Color("#282828")

	divider = lipgloss.NewStyle().
		SetString("•").
		Padding(0, 1).
		Foreground(subtle).
		String()

	url = lipgloss.NewStyle().Foreground(special).Render

	// Tabs.

	activeTabBorder = lipgloss.Border{
		Top:         "─",
		Bottom:      " ",
		Left:        "│",
		Right:       "│",
		TopLeft:     "╭",
		TopRight:    "╮",
		BottomLeft:  "┘",
		BottomRight: "└",
	}

	tabBorder = lipgloss.Border{
		Top:         "─",
		Bottom:      "─",
		Left:        "│",
		Right:       "│",
		TopLeft:     "╭",
		TopRight:    "╮",
		BottomLeft:  "┴",
		BottomRight: "┴",
	}

	tab = lipgloss.NewStyle().
		Border(tabBorder, true).
		BorderForeground(highlight).
		Padding(0, 1)

	activeTab = tab.Copy().Border(activeTabBorder, true)

	tabGap = tab.Copy().
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false)

	// Title.

	titleStyle = lipgloss.NewStyle().
			MarginLeft(1).
			MarginRight(5).
			Padding(0, 1).
			Italic(true)

	descStyle = lipgloss.NewStyle().MarginTop(1)

	infoStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(subtle)

	// List.

	list = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, false).
		BorderForeground(subtle).
		MarginRight(2).
		Height(8).
		Width(3 + 1)

	listHeader = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(subtle).
			MarginRight(2).
			Render

	listItem = lipgloss.NewStyle().Padding(0, 1).Render

	// Table

	headerCellStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(highlight)

	rowSelectedStyle = lipgloss.NewStyle().
				Foreground(white).
				Background(purple)

	linkStyle = lipgloss.NewStyle().
			Underline(true).
			Foreground(special)

	secondaryTextStyle = lipgloss.NewStyle().Foreground(muted)

	pullPositionStyle = lipgloss.NewStyle().
				Align(lipgloss.Right).
				Padding(0, 1)

	pullListStyle = lipgloss.NewStyle().
			Align(lipgloss.Left).
			Background(lightGrey).
			Padding(1, 1, 1, 1)

	// Tag
	tagStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Align(lipgloss.Center)

	tagAlertStyle = tagStyle.Copy().
			Foreground(white).
			Background(red)

	tagSuccessStyle = tagStyle.Copy().
			Foreground(lightGrey).
			Background(green)

	tagSpecialStyle = tagStyle.Copy().
			Foreground(white).
			Background(purple)

	tagDraftStyle = tagStyle.Copy().
			Foreground(white).
			Background(darkGrey)

	// Votes

	voteApprovedStyle = lipgloss.NewStyle().Foreground(green)
	voteWaitingStyle  = lipgloss.NewStyle().Foreground(yellow)
	voteRejectedStyle = lipgloss.NewStyle().Foreground(red)

	// Page.

	docStyle = lipgloss.NewStyle().Padding(1, 2, 1, 2)
)
