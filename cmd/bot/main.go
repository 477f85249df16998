package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/IjehJoel987/Tekegram/bot"
	"github.com/IjehJoel987/Tekegram/core/bootstrap"
	"github.com/IjehJoel987/Tekegram/core/cmd"
	coreconfig "github.com/IjehJoel987/Tekegram/core/config"
)

func main() {
	// Local development convenience; a missing .env is fine.
	_ = godotenv.Load()

	err := cmd.Run(cmd.Options{
		ConfigEnvVar:      "CONFIG_PATH",
		DefaultConfigPath: "config.yaml",
		LoadConfig: func(path string) (cmd.ConfigCarrier, error) {
			return coreconfig.Load(path)
		},
		Bootstrap: func(carrier cmd.ConfigCarrier) (cmd.TelegramApp, error) {
			cfg := carrier.CoreConfig()
			result, err := bootstrap.Run(context.Background(), bootstrap.Options{Config: cfg})
			if err != nil {
				return nil, err
			}
			return bot.New(cfg, result.Snapshot, result.Store)
		},
	})
	if err != nil {
		log.Println(fmt.Errorf("fatal: %w", err))
		os.Exit(1)
	}
}
