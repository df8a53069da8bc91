package config

const (
	// DefaultDifficulty is the number of leading hex zero characters a
	// freshly mined digest must carry when no config file overrides it.
	DefaultDifficulty = 4

	// Genesis record field values. Changing these changes every digest in
	// every chain built from the default config.
	GenesisTimestamp = "2009-01-03T18:15:05Z"
	GenesisPayload   = "genesis"

	DefaultProgressInterval = 100000
)
