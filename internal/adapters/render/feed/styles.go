package feed

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title    lipgloss.Style
	header   lipgloss.Style
	badge    lipgloss.Style
	success  lipgloss.Style
	failure  lipgloss.Style
	neutral  lipgloss.Style
	label    lipgloss.Style
	detail   lipgloss.Style
	toast    lipgloss.Style
	toastErr lipgloss.Style
	empty    lipgloss.Style
	hint     lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:    lipgloss.NewStyle().Bold(true),
		header:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		badge:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("231")).Background(lipgloss.Color("160")).Padding(0, 1),
		success:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		failure:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		neutral:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		label:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		detail:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		toast:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("231")).Background(lipgloss.Color("28")).Padding(0, 1),
		toastErr: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("231")).Background(lipgloss.Color("124")).Padding(0, 1),
		empty:    lipgloss.NewStyle().Faint(true),
		hint:     lipgloss.NewStyle().Faint(true).MarginTop(1),
	}
}
