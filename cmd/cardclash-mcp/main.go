package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/peterkuimelis/cardclash/internal/app"
	cardclashmcp "github.com/peterkuimelis/cardclash/internal/mcp"
)

func main() {
	configFile := flag.String("config", "cardclash.toml", "path to config file")
	decks := flag.String("decks", "", "path to decks YAML file (overrides config)")
	flag.Parse()

	a, err := app.Open(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	decksFile := a.Config.Decks.Path
	if *decks != "" {
		decksFile = *decks
	}

	s := server.NewMCPServer("cardclash", "1.0.0")
	cardclashmcp.NewTools(a.Catalog, a.Manager, decksFile).RegisterTools(s)

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
