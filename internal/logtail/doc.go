// Package logtail reads the tail of petdesk's own log file for the activity
// view.
//
// Read keeps a ring buffer of the last maxLines lines, so memory stays bounded
// no matter how large the file grows. Parse splits zap's console encoding
// (time, level, caller, message, fields) so the UI can color by level.
//
//	lines, err := logtail.Read(cfg.LogPath(), 200)
//	if err != nil {
//		return err
//	}
//	for _, e := range logtail.ParseAll(lines) {
//		fmt.Println(e.Level, e.Message)
//	}
package logtail
