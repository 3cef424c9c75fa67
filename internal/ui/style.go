package ui

import "github.com/charmbracelet/lipgloss"

var TitleGray = lipgloss.Color("252")
var HelpGray = lipgloss.Color("241")

var Title = lipgloss.NewStyle().Inline(true).Bold(true).Foreground(TitleGray).Render
var Help = lipgloss.NewStyle().Inline(true).Foreground(HelpGray).Render
var Success = lipgloss.NewStyle().Inline(true).Foreground(lipgloss.Color("70")).Render
var Warning = lipgloss.NewStyle().Inline(true).Foreground(lipgloss.Color("214")).Render
var Error = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Render
