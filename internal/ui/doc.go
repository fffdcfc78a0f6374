// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for browsing pet stores:
//  1. [StoreListView] : Browse store summaries
//  2. [StoreDetailView] : Inspect the employees and customers of one store
//  3. [ConfirmDeleteView] : Confirm deleting the selected store
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// Every service call runs as a [tea.Cmd], so the interface never blocks on the database.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, d, y/n, r, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
