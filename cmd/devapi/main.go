package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/common-nighthawk/go-figure"

	"github.com/VinkoRobi2/CameYa-sub001/internal/buildinfo"
	"github.com/VinkoRobi2/CameYa-sub001/internal/devapi"
	"github.com/VinkoRobi2/CameYa-sub001/internal/devapi/config"
	"github.com/VinkoRobi2/CameYa-sub001/internal/logging"
)

func main() {

	fmt.Println(figure.NewFigure("CameYa dev", "cybermedium", true).String())
	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()

	cfg := config.LoadConfig()
	logger := logging.SetupZerolog(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	app, err := devapi.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
