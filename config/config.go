package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"hikechain/crypto"

	"github.com/BurntSushi/toml"
)

type Config struct {
	RPCAddress        string `toml:"RPCAddress"`
	DataDir           string `toml:"DataDir"`
	NetworkName       string `toml:"NetworkName"`
	AdminKeystorePath string `toml:"AdminKeystorePath"`
	AdminAddress      string `toml:"AdminAddress"`
	VaultAddress      string `toml:"VaultAddress"`
	TreasuryAddress   string `toml:"TreasuryAddress"`
}

// Load loads the configuration from the given path, creating a default file
// with a fresh admin keystore when none exists yet.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return createDefault(path)
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}

	if err := ensureKeystore(path, cfg); err != nil {
		return nil, err
	}

	if strings.TrimSpace(cfg.NetworkName) == "" {
		cfg.NetworkName = "hike-local"
	}
	if strings.TrimSpace(cfg.AdminAddress) == "" {
		return nil, fmt.Errorf("config file %s is missing AdminAddress", path)
	}
	if strings.TrimSpace(cfg.VaultAddress) == "" {
		return nil, fmt.Errorf("config file %s is missing VaultAddress", path)
	}
	if strings.TrimSpace(cfg.TreasuryAddress) == "" {
		return nil, fmt.Errorf("config file %s is missing TreasuryAddress", path)
	}

	return cfg, nil
}

// AdminAddr decodes the configured admin address.
func (c *Config) AdminAddr() ([20]byte, error) {
	return decodeAddr(c.AdminAddress)
}

// VaultAddr decodes the configured vault address.
func (c *Config) VaultAddr() ([20]byte, error) {
	return decodeAddr(c.VaultAddress)
}

// TreasuryAddr decodes the configured treasury address.
func (c *Config) TreasuryAddr() ([20]byte, error) {
	return decodeAddr(c.TreasuryAddress)
}

func decodeAddr(value string) ([20]byte, error) {
	var out [20]byte
	decoded, err := crypto.DecodeAddress(strings.TrimSpace(value))
	if err != nil {
		return out, err
	}
	copy(out[:], decoded.Bytes())
	return out, nil
}

func ensureKeystore(configPath string, cfg *Config) error {
	keystorePath := cfg.AdminKeystorePath
	if keystorePath == "" {
		keystorePath = defaultKeystorePath(configPath)
	}

	if _, err := os.Stat(keystorePath); os.IsNotExist(err) {
		key, genErr := crypto.GeneratePrivateKey()
		if genErr != nil {
			return genErr
		}
		if err := crypto.SaveToKeystore(keystorePath, key, ""); err != nil {
			return err
		}
		if strings.TrimSpace(cfg.AdminAddress) == "" {
			cfg.AdminAddress = key.PubKey().Address().String()
		}
	} else if err != nil {
		return err
	}

	if cfg.AdminKeystorePath != keystorePath {
		cfg.AdminKeystorePath = keystorePath
		return persist(configPath, cfg)
	}

	return nil
}

// createDefault creates and saves a default configuration file. The generated
// admin key doubles as the vault and treasury until the operator assigns
// dedicated accounts.
func createDefault(path string) (*Config, error) {
	key, err := crypto.GeneratePrivateKey()
	if err != nil {
		return nil, err
	}

	keystorePath := defaultKeystorePath(path)
	if err := crypto.SaveToKeystore(keystorePath, key, ""); err != nil {
		return nil, err
	}

	addr := key.PubKey().Address().String()
	cfg := &Config{
		RPCAddress:        ":8080",
		DataDir:           "./hike-data",
		NetworkName:       "hike-local",
		AdminKeystorePath: keystorePath,
		AdminAddress:      addr,
		VaultAddress:      addr,
		TreasuryAddress:   addr,
	}

	if err := persist(path, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func persist(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC|os.O_CREATE, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

func defaultKeystorePath(configPath string) string {
	dir := filepath.Dir(configPath)
	if dir == "." || dir == "" {
		dir = ""
	}
	return filepath.Join(dir, "admin.keystore")
}
