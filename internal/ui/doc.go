// Package ui provides the terminal user interface for petdesk.
//
// The UI is a Bubble Tea program that renders snapshots of a pet
// collection. It owns no pet data itself: every change goes through the
// Collection interface and the next snapshot is drawn.
//
// Layout:
//
//   - Header: online/offline badge and the Dogs, Cats, Total and Value
//     statistics for the pets currently listed
//   - Command bar: key hints for the active view plus the theme name
//   - Pets view: selectable list beside a detail pane
//   - Log view: tail of the application log file, colored by level
//   - Notice line: loading, error and success notices
//
// Collection operations run as tea.Cmds so network calls never block
// rendering. A periodic tick re-reads the snapshot, which is also how
// notices disappear once they expire.
//
// Key bindings:
//
//   - /: search by name, type or description (esc clears)
//   - a: add a pet, d: delete the selected pet
//   - r: reload from the backend, S: load sample pets
//   - l: toggle the activity log, T: cycle theme, ?: help
//   - q or ctrl+c: quit
package ui
