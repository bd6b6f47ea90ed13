package main

import (
	"log"
	"os"

	"github.com/Perry5596/ShopAI-sub001/internal/client/cli"
)

func main() {
	r := &cli.Runner{Stdout: os.Stdout}

	if err := r.App().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
