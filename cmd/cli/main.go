package main

import (
	"context"
	"log"
	"os"

	"github.com/VinkoRobi2/CameYa-sub001/internal/buildinfo"
	"github.com/VinkoRobi2/CameYa-sub001/internal/client/cli"
	"github.com/VinkoRobi2/CameYa-sub001/internal/client/config"
	"github.com/VinkoRobi2/CameYa-sub001/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()

	cfg := config.LoadConfig()
	logger := logging.Setup(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
