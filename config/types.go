package config

// GenesisConfig holds the fixed, well-known fields of the genesis record
type GenesisConfig struct {
	Timestamp string `yaml:"timestamp"`
	Payload   string `yaml:"payload"`
}

// ChainConfig holds the configuration from chain.yml
type ChainConfig struct {
	Difficulty int           `yaml:"difficulty"`
	Genesis    GenesisConfig `yaml:"genesis"`
}

// ConfigFile is the top-level structure for chain.yml
type ConfigFile struct {
	Config ChainConfig `yaml:"config"`
}

// MinerConfig holds mining loop tuning from an .ini file
type MinerConfig struct {
	// ProgressInterval is how many attempts pass between progress log
	// lines. Zero disables progress logging.
	ProgressInterval uint64 `ini:"progress_interval"`
}
