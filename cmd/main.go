package main

import (
	"context"
	"log"
	"os"

	"github.com/PaulBerthelot21/nutrylog/config"
	"github.com/PaulBerthelot21/nutrylog/routes"
	"github.com/PaulBerthelot21/nutrylog/utils"
)

func main() {
	config.LoadEnv()
	db := config.InitDB()

	ctx := context.Background()

	var uploader *utils.S3Uploader
	if os.Getenv("S3_BUCKET") != "" {
		var err error
		uploader, err = utils.NewS3Uploader(ctx)
		if err != nil {
			log.Fatalf("S3 init failed: %v", err)
		}
	}

	var mailer *utils.Mailer
	if os.Getenv("SES_EMAIL") != "" {
		var err error
		mailer, err = utils.NewMailer(ctx)
		if err != nil {
			log.Fatalf("SES init failed: %v", err)
		}
	}

	r := routes.SetupRouter(db, uploader, mailer)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
