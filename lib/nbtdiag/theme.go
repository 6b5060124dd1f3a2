// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package nbtdiag

import "github.com/charmbracelet/lipgloss"

// Theme holds the 256-color palette indices used when color is on.
type Theme struct {
	Label   lipgloss.Color
	Name    lipgloss.Color
	Number  lipgloss.Color
	String  lipgloss.Color
	Summary lipgloss.Color
	Warning lipgloss.Color
}

// DefaultTheme is tuned for dark terminals.
var DefaultTheme = Theme{
	Label:   lipgloss.Color("39"),
	Name:    lipgloss.Color("222"),
	Number:  lipgloss.Color("114"),
	String:  lipgloss.Color("180"),
	Summary: lipgloss.Color("245"),
	Warning: lipgloss.Color("203"),
}

// style renders one span of text.
type style func(string) string

func plain(text string) string { return text }

// styles is a Theme bound to a renderer.
type styles struct {
	label   style
	name    style
	number  style
	text    style
	summary style
	warning style
}

// plainStyles leaves text untouched.
func plainStyles() styles {
	return styles{plain, plain, plain, plain, plain, plain}
}

func render(lipStyle lipgloss.Style) style {
	return func(text string) string { return lipStyle.Render(text) }
}

func newStyles(renderer *lipgloss.Renderer, theme Theme) styles {
	return styles{
		label:   render(renderer.NewStyle().Foreground(theme.Label).Bold(true)),
		name:    render(renderer.NewStyle().Foreground(theme.Name)),
		number:  render(renderer.NewStyle().Foreground(theme.Number)),
		text:    render(renderer.NewStyle().Foreground(theme.String)),
		summary: render(renderer.NewStyle().Foreground(theme.Summary).Italic(true)),
		warning: render(renderer.NewStyle().Foreground(theme.Warning)),
	}
}
