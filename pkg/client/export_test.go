package client

import "time"

// SetTimersForTest shortens the auto-dismiss timers so tests do not
// sleep for seconds.
func (a *App) SetTimersForTest(notice, copied time.Duration) {
	a.do(func() {
		a.noticeTTL = notice
		a.copiedTTL = copied
	})
}
