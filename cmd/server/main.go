package main

import (
	"log"

	"github.com/joho/godotenv"

	"formiverse/internal/app"
)

// @title           Formiverse API
// @version         1.0
// @description     Form builder backend: OTP registration, JWT sessions, forms, questions and response collection.
// @BasePath        /api/v1/users
func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf(".env not loaded: %v", err)
	}
	app.Run()
}
