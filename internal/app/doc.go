// Package app is the composition root of petdesk.
//
// Run wires the pieces together and blocks until the UI exits:
//
//  1. Load .env, the TOML config, and command-line overrides
//  2. Open the zap log file (the terminal belongs to the UI)
//  3. Build the backend client, the file-backed local store, and the
//     pet collection that reconciles them
//  4. Optionally start the background poller (refresh_interval > 0)
//  5. Run the Bubble Tea UI, which performs the first load itself
//
// The poller refreshes the collection on a fixed interval and backs off
// exponentially, capped at 30s, while the backend keeps failing. Cancelling
// the context stops both the poller and the UI.
package app
