// File: utils/constants.go
package utils

import "time"

// AuthCachePrefix is the prefix used for Redis authorization cache keys.
const AuthCachePrefix = "auth:"

// AuthCacheTTL is the time-to-live for authorization cache entries.
const AuthCacheTTL = time.Hour

// AvailabilityCachePrefix is the prefix for cached doctor availability configs.
const AvailabilityCachePrefix = "availability:"

// AvailabilityCacheTTL bounds how stale a cached availability config may get.
const AvailabilityCacheTTL = 5 * time.Minute
