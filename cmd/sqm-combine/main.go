// cmd/sqm-combine/main.go
package main

import (
	"sqmcombine/internal/app"
	"sqmcombine/internal/appshell"
)

func main() {
	appshell.Main(app.RunContext)
}
