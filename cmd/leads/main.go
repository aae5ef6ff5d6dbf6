package main

import (
	"context"
	"log"

	"github.com/dmitrijs2005/kitportal/internal/leads"
	"github.com/dmitrijs2005/kitportal/internal/leads/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := leads.NewApp(ctx, cfg)

	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)

}
