package report

import "context"

// CacheKeyPrefix namespaces every report cache entry. Invalidation always
// sweeps this whole prefix.
const CacheKeyPrefix = "report:"

// Cache stores rendered report payloads. Entries have no TTL; eviction is
// invalidation-driven only. Implementations must be safe for concurrent
// Get, Set, and InvalidatePrefix calls, and a failed or unsupported
// pattern deletion must fall back to clearing the entire cache rather
// than leaving stale entries behind.
type Cache interface {
	// Get returns the cached payload for key and whether it was present
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores the payload under key
	Set(ctx context.Context, key, value string) error

	// InvalidatePrefix removes every key sharing the prefix
	InvalidatePrefix(ctx context.Context, prefix string) error
}
