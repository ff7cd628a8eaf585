package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/docpublish/internal/buildinfo"
	"github.com/dmitrijs2005/docpublish/internal/receiver"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg, err := receiver.LoadConfig()
	if err != nil {
		log.Fatalf("%v", err)
	}

	app, err := receiver.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}

}
