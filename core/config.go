package core

import "time"

// Config blend client config
type Config struct {
	Network Network           `json:"network"`
	Pools   map[string]string `json:"pools"`
	Cache   CacheConfig       `json:"cache"`
}

// Network ledger endpoints
type Network struct {
	RPCEndpoint     string `json:"rpc_endpoint"`
	HorizonEndpoint string `json:"horizon_endpoint"`
	Passphrase      string `json:"passphrase"`
}

// CacheConfig cache defaults
type CacheConfig struct {
	// DefaultTTL fallback ttl for UseCache reads that do not carry one
	DefaultTTL time.Duration `json:"default_ttl"`
	// StatusTTL short ttl for pool-status reads used during validation
	StatusTTL time.Duration `json:"status_ttl"`
	// Capacity max entries held by the store
	Capacity int `json:"capacity"`
}

// ContractID resolve the contract id for a pool.
func (c *Config) ContractID(poolID string) (string, bool) {
	id, ok := c.Pools[poolID]
	return id, ok
}

// DefaultTTL ttl with a sane fallback when unset.
func (c *Config) DefaultTTL() time.Duration {
	if c.Cache.DefaultTTL > 0 {
		return c.Cache.DefaultTTL
	}
	return 5 * time.Minute
}

// StatusTTL ttl for pool-status validation reads.
func (c *Config) StatusTTL() time.Duration {
	if c.Cache.StatusTTL > 0 {
		return c.Cache.StatusTTL
	}
	return 30 * time.Second
}
