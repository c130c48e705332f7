package config

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"hikechain/crypto"
)

func testAddr(t *testing.T) string {
	t.Helper()
	key, err := crypto.GeneratePrivateKey()
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	return key.PubKey().Address().String()
}

func TestLoadParsesExistingConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	keystorePath := filepath.Join(dir, "admin.keystore")
	admin := testAddr(t)
	vault := testAddr(t)
	treasury := testAddr(t)
	contents := fmt.Sprintf(`RPCAddress = "0.0.0.0:9000"
DataDir = "./data"
NetworkName = "hike-testnet"
AdminKeystorePath = "%s"
AdminAddress = "%s"
VaultAddress = "%s"
TreasuryAddress = "%s"
`, keystorePath, admin, vault, treasury)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.RPCAddress != "0.0.0.0:9000" {
		t.Fatalf("unexpected rpc address %q", cfg.RPCAddress)
	}
	if cfg.NetworkName != "hike-testnet" {
		t.Fatalf("unexpected network name %q", cfg.NetworkName)
	}
	if cfg.AdminAddress != admin {
		t.Fatalf("unexpected admin address %q", cfg.AdminAddress)
	}
	if _, err := os.Stat(keystorePath); err != nil {
		t.Fatalf("expected keystore to be created: %v", err)
	}
	adminAddr, err := cfg.AdminAddr()
	if err != nil {
		t.Fatalf("decode admin address: %v", err)
	}
	if crypto.MustNewAddress(crypto.HikePrefix, adminAddr[:]).String() != admin {
		t.Fatalf("admin address round trip mismatch")
	}
}

func TestLoadCreatesDefaultConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.RPCAddress == "" || cfg.DataDir == "" {
		t.Fatalf("expected populated defaults, got %+v", cfg)
	}
	if cfg.AdminAddress == "" {
		t.Fatalf("expected generated admin address")
	}
	if cfg.VaultAddress != cfg.AdminAddress || cfg.TreasuryAddress != cfg.AdminAddress {
		t.Fatalf("default vault and treasury must fall back to the admin account")
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected config file written: %v", err)
	}
	if _, err := os.Stat(cfg.AdminKeystorePath); err != nil {
		t.Fatalf("expected keystore written: %v", err)
	}
	key, err := crypto.LoadFromKeystore(cfg.AdminKeystorePath, "")
	if err != nil {
		t.Fatalf("load keystore: %v", err)
	}
	if key.PubKey().Address().String() != cfg.AdminAddress {
		t.Fatalf("keystore key does not match configured admin address")
	}
}

func TestLoadRejectsMissingAddresses(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	keystorePath := filepath.Join(dir, "admin.keystore")
	key, err := crypto.GeneratePrivateKey()
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	if err := crypto.SaveToKeystore(keystorePath, key, ""); err != nil {
		t.Fatalf("save keystore: %v", err)
	}
	contents := fmt.Sprintf(`RPCAddress = ":8080"
DataDir = "./data"
AdminKeystorePath = "%s"
AdminAddress = "%s"
`, keystorePath, key.PubKey().Address().String())
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for missing vault address")
	}
}
