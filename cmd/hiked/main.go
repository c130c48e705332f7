package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"hikechain/config"
	"hikechain/core"
	"hikechain/observability/logging"
	"hikechain/rpc"
	"hikechain/storage"
)

func main() {
	configFile := flag.String("config", "./config.toml", "Path to the configuration file")
	flag.Parse()

	env := strings.TrimSpace(os.Getenv("HIKED_ENV"))
	logger := logging.Setup("hiked", env)

	cfg, err := config.Load(*configFile)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	admin, err := cfg.AdminAddr()
	if err != nil {
		logger.Error("Invalid admin address", slog.Any("error", err))
		os.Exit(1)
	}
	vault, err := cfg.VaultAddr()
	if err != nil {
		logger.Error("Invalid vault address", slog.Any("error", err))
		os.Exit(1)
	}
	treasury, err := cfg.TreasuryAddr()
	if err != nil {
		logger.Error("Invalid treasury address", slog.Any("error", err))
		os.Exit(1)
	}

	db, err := storage.NewLevelDB(cfg.DataDir)
	if err != nil {
		panic(fmt.Sprintf("Failed to open database: %v", err))
	}
	defer db.Close()

	node := core.NewNode(db, admin, vault, treasury)
	node.SetLogger(logger)

	logger.Info("Node initialized",
		slog.String("network", cfg.NetworkName),
		slog.String("admin", cfg.AdminAddress),
		slog.String("dataDir", cfg.DataDir))

	server := rpc.NewServer(node)
	if err := server.Start(cfg.RPCAddress); err != nil {
		logger.Error("RPC server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}
