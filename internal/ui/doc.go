// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view booking workflow:
//  1. [VenueListView] : Browse and search the venue directory
//  2. [VenueDetailView] : Pick dates and guests for a venue
//  3. [ConfirmView] : Review the total price and confirm
//  4. [SubmitView] : Wait for the server response
//  5. [ResultView] : Display the confirmed booking or the failure
//
// A [LoginView] interposes when a booking is attempted without stored
// credentials. The [Model] implements bubbletea/Elm's standard
// Init/Update/View pattern; date and guest validation runs locally on
// every change through the booking state machine, so invalid selections
// never reach the server.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, y/n, q)
// with contextual help displayed via charmbracelet/bubbles/help. The
// color palette follows the stored dark mode preference.
package ui
