// Command demoserver serves a local site for trying footcheck against.
// Usage: go run ./cmd/demoserver [port]
// Default port: 9999
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/raysh454/footcheck/internal/demoserver"
)

func main() {
	cfg := demoserver.DefaultConfig()

	if len(os.Args) > 1 {
		port, err := strconv.Atoi(os.Args[1])
		if err != nil || port < 1 || port > 65535 {
			log.Fatalf("Invalid port: %s", os.Args[1])
		}
		cfg.Port = port
	}

	fmt.Println("footcheck demo server")
	fmt.Println()
	fmt.Println("/, /about and /services have a complete footer at version 1")
	fmt.Println("and a broken one at version 2:")
	fmt.Printf("  curl -d path=/about -d version=2 http://localhost:%d/demo/set-version\n", cfg.Port)
	fmt.Println("Single-version failure cases live under /scenarios/.")
	fmt.Println()
	fmt.Printf("  footcheck --backend nethttp http://localhost:%d/ http://localhost:%d/about http://localhost:%d/services\n",
		cfg.Port, cfg.Port, cfg.Port)
	fmt.Println()

	server := demoserver.NewDemoServer(cfg)
	if err := server.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
