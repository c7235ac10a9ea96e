package main

import "github.com/rynok-dev/marketplace-backend/internal/app"

func main() {
	app.Run()
}
