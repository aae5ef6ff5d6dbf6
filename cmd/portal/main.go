package main

import (
	"context"
	"log"

	"github.com/dmitrijs2005/kitportal/internal/portal"
	"github.com/dmitrijs2005/kitportal/internal/portal/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := portal.NewApp(cfg)

	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)

}
