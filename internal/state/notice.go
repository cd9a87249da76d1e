package state

import (
	"time"
)

// NoticeKind classifies a user-facing notice.
type NoticeKind string

const (
	NoticeLoading NoticeKind = "loading"
	NoticeError   NoticeKind = "error"
	NoticeSuccess NoticeKind = "success"
)

// noticeOrder is the order notices are reported in snapshots.
var noticeOrder = []NoticeKind{NoticeLoading, NoticeError, NoticeSuccess}

// Notice is a transient message shown to the user.
type Notice struct {
	Kind      NoticeKind
	Message   string
	At        time.Time
	ExpiresAt time.Time // zero for loading notices
}

// Active reports whether the notice should still be shown at now.
func (n Notice) Active(now time.Time) bool {
	if n.Message == "" {
		return false
	}
	return n.ExpiresAt.IsZero() || now.Before(n.ExpiresAt)
}

// notifyLocked replaces the notice of the same kind. Caller holds c.mu.
func (c *Collection) notifyLocked(kind NoticeKind, message string) {
	now := c.now()
	n := Notice{Kind: kind, Message: message, At: now}
	if kind != NoticeLoading {
		n.ExpiresAt = now.Add(c.noticeDuration)
	}
	c.notices[kind] = n
}

// beginLoadingLocked shows message until every in-flight operation finishes.
func (c *Collection) beginLoadingLocked(message string) {
	c.busy++
	c.notifyLocked(NoticeLoading, message)
}

func (c *Collection) endLoadingLocked() {
	if c.busy > 0 {
		c.busy--
	}
	if c.busy == 0 {
		delete(c.notices, NoticeLoading)
	}
}

// Dismiss removes the notice of the given kind.
func (c *Collection) Dismiss(kind NoticeKind) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if kind == NoticeLoading && c.busy > 0 {
		return
	}
	delete(c.notices, kind)
}

func (c *Collection) activeNoticesLocked() []Notice {
	now := c.now()
	var out []Notice
	for _, kind := range noticeOrder {
		n, ok := c.notices[kind]
		if ok && n.Active(now) {
			out = append(out, n)
		}
	}
	return out
}
