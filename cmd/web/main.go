package main

import "museworks_backend/internal/app"

func main() {
	app.Run()
}
