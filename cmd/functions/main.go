package main

import (
	"os"

	// registers the function entrypoints
	_ "github.com/2beens/gymsheets/functions/gymsheets"

	"github.com/GoogleCloudPlatform/functions-framework-go/funcframework"
	log "github.com/sirupsen/logrus"
)

func main() {
	port := "8080"
	if envPort := os.Getenv("PORT"); envPort != "" {
		port = envPort
	}
	log.Infof(" > functions host listening on port [%s]", port)
	if err := funcframework.Start(port); err != nil {
		log.Fatalf("funcframework.Start: %s", err)
	}
}
