package ports

import "time"

// Clock supplies event timestamps when a caller omits one, and recorded-at times.
type Clock interface {
	Now() time.Time
}
