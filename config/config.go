package config

import (
	"fmt"
	"os"

	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"

	"powchain/errors"
	"powchain/logx"
)

// DefaultChainConfig returns the built-in chain configuration used when no
// chain.yml is supplied.
func DefaultChainConfig() *ChainConfig {
	return &ChainConfig{
		Difficulty: DefaultDifficulty,
		Genesis: GenesisConfig{
			Timestamp: GenesisTimestamp,
			Payload:   GenesisPayload,
		},
	}
}

// LoadChainConfig reads and parses the chain.yml file
func LoadChainConfig(path string) (*ChainConfig, error) {
	file, err := os.Open(path)
	if err != nil {
		logx.Error("CONFIG", fmt.Sprintf("Failed to open chain config %s: %v", path, err))
		return nil, err
	}
	defer file.Close()

	var cfgFile ConfigFile
	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(&cfgFile); err != nil {
		logx.Error("CONFIG", fmt.Sprintf("Failed to decode chain config %s: %v", path, err))
		return nil, err
	}

	cfg := &cfgFile.Config
	if cfg.Genesis.Timestamp == "" {
		cfg.Genesis.Timestamp = GenesisTimestamp
	}
	if cfg.Genesis.Payload == "" {
		cfg.Genesis.Payload = GenesisPayload
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logx.Info("CONFIG", fmt.Sprintf("Loaded chain config: difficulty=%d genesis_timestamp=%s", cfg.Difficulty, cfg.Genesis.Timestamp))
	return cfg, nil
}

// Validate rejects configurations that must never reach the mining loop.
func (c *ChainConfig) Validate() error {
	if c.Difficulty < 0 {
		return errors.NewInvalidDifficultyError(fmt.Sprintf("difficulty must be non-negative, got %d", c.Difficulty))
	}
	return nil
}

// DefaultMinerConfig returns the built-in miner tuning.
func DefaultMinerConfig() *MinerConfig {
	return &MinerConfig{
		ProgressInterval: DefaultProgressInterval,
	}
}

// LoadMinerConfig reads miner tuning from an .ini file
func LoadMinerConfig(path string) (*MinerConfig, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, err
	}
	minerSection := cfg.Section("miner")
	minerCfg := DefaultMinerConfig()
	err = minerSection.MapTo(minerCfg)
	if err != nil {
		return nil, err
	}
	return minerCfg, nil
}
