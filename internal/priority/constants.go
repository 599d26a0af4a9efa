package priority

import "time"

// Cache sizing for computed orders
const (
	DefaultCacheSize = 512
	DefaultCacheTTL  = 30 * time.Minute
)

// Log messages
const (
	LogMsgOrderComputed  = "Drop priority order computed"
	LogMsgOverrideUsed   = "Using saved priority override"
	LogMsgOverrideUnused = "Override names drops outside the pool"
)

// Log field keys
const (
	LogFieldSignature   = "signature"
	LogFieldMinSetPrice = "min_set_price"
	LogFieldMode        = "mode"
	LogFieldPlat        = "plat"
	LogFieldDucat       = "ducat"
	LogFieldExtra       = "extra"
)
