// invctl cliente de terminal del inventario. Reutiliza los servicios del gateway
// con la sesión guardada en un archivo local.
//
// Uso:
//
//	invctl login --email caja@tienda.com --password secreto
//	invctl products --q leche
//	invctl movement --product p1 --type IN --qty 10 --price 0.65
//	invctl report --date 2024-05-01
//	invctl logout
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/diego1198/inventory-frontend/pkg/config"
	"github.com/diego1198/inventory-frontend/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: "development", Level: cfg.App.LogLevel, Output: os.Stderr})

	cli := newCLI(cfg.API.BaseURL, cfg.API.Timeout(), cfg.Session.File, log)
	cli.stdout, cli.stderr = os.Stdout, os.Stderr
	os.Exit(cli.run(context.Background(), os.Args[1:]))
}
