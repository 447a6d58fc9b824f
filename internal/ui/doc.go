// Package ui provides rendering functions for the ib terminal UI.
//
// It contains the Render function which takes RenderParams and produces
// the screen for the active workflow phase, the Window helper that maps
// a cursor position to the visible slice of a result list, and Lipgloss
// style definitions. Rendering is pure and separated from state
// management.
package ui
