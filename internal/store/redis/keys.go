package redis

const (
	// KeyPrefixSeen is the prefix for seen-bookmark fingerprint keys
	KeyPrefixSeen = "linkherald:seen:"
	// KeyRelayed counts notifications delivered to Slack
	KeyRelayed = "linkherald:stats:relayed"
	// KeyFailed counts deliveries that ended in an error
	KeyFailed = "linkherald:stats:failed"
	// KeySuppressed counts duplicates skipped inside the dedupe window
	KeySuppressed = "linkherald:stats:suppressed"
)

// SeenKey returns the Redis key for a bookmark fingerprint
func SeenKey(fingerprint string) string {
	return KeyPrefixSeen + fingerprint
}
