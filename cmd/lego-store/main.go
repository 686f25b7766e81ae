package main

import (
	"os"

	_ "github.com/LeoR1u/ProyectoLegos/docs"
	"github.com/LeoR1u/ProyectoLegos/internal/cli"
)

//	@title						Lego Store API
//	@version					1.0
//	@description				Storefront with session carts, pending carts across logins, checkout and PDF tickets.
//	@BasePath					/
//	@securityDefinitions.apikey	SessionCookie
//	@in							cookie
//	@name						lego_sid
func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
