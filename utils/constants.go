// File: utils/constants.go
package utils

import "time"

// SessionCachePrefix is the prefix used for Redis booking-session keys.
const SessionCachePrefix = "bsession:"

// SubmitLockPrefix is the prefix for the per-session submit lock key.
const SubmitLockPrefix = "bsubmit:"

// SessionTTL is the time-to-live for an in-progress booking session.
const SessionTTL = 30 * time.Minute

// SubmitLockTTL bounds how long a submit lock may be held if a submission
// never completes.
const SubmitLockTTL = 2 * time.Minute
