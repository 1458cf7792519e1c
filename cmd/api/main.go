package main

import (
	"fmt"
	"os"

	_ "marketplace_escrow/docs"

	_ "github.com/joho/godotenv/autoload"
)

// @title           Order Settlement & Escrow API
// @version         1.0
// @description     Checkout drafts, escrow-backed orders, clearing release, additional-hours billing and storno review.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080

// @BasePath  /v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
