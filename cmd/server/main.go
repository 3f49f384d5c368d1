// Command server runs the local site backend over HTTP.
package main

import (
	"context"
	"log"

	"github.com/ycsite/siteops/internal/app"
)

func main() {
	if err := app.Run(context.Background()); err != nil {
		log.Fatalf("server: %v", err)
	}
}
