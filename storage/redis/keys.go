package redis

import "fmt"

// Key prefix for all live roster data
const keyPrefix = "snaky"

// sessionKey returns the Redis key for a live session
func sessionKey(id string) string {
	return fmt.Sprintf("%s:session:%s", keyPrefix, id)
}

// sessionIndexKey returns the Redis key of the set holding all session ids
func sessionIndexKey() string {
	return keyPrefix + ":sessions"
}
