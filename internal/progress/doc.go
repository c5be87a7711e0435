// Package progress defines the observer events emitted while a deck is
// materialized, and a tracker that turns step counts into monotone
// percentages.
package progress
