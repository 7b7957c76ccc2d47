package main

import (
	"context"
	"log"
	"os"

	"github.com/surya-health-tech/Glucose-Curve/internal/buildinfo"
	"github.com/surya-health-tech/Glucose-Curve/internal/cli"
	"github.com/surya-health-tech/Glucose-Curve/internal/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(ctx, cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
