package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"goforms/cmd/fx/feedback_ai_fx"
	"goforms/cmd/fx/mail_fx"
	"goforms/cmd/fx/report_fx"
	"goforms/internal/api/controllers"
	"goforms/internal/infra"
	"goforms/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	app := fx.New(
		fx.Provide(infra.InitPostgresql),
		report_fx.Module,
		mail_fx.Module,
		feedback_ai_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
		fx.Invoke(closeDBOnShutdown),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := os.Getenv("PORT")
				if port == "" {
					port = "8080"
				}
				log.Printf("Starting HTTP server at :%s", port)
				if err := engine.Run(":" + port); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return nil
		},
	})
}

func closeDBOnShutdown(lc fx.Lifecycle, db *gorm.DB) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			infra.ClosePostgresql(db)
			return nil
		},
	})
}

func ProvideRouter(reportController *controllers.ReportController) *gin.Engine {
	r := gin.Default()
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.TraceIDMiddleware())

	RegisterRoutes(r, reportController)

	return r
}

func RegisterRoutes(r *gin.Engine, reportController *controllers.ReportController) {
	reports := r.Group("/reports")
	reports.POST("/:responseId/download", reportController.DownloadReport)
	reports.POST("/:responseId/email", reportController.EmailReport)
	reports.POST("/preview", reportController.PreviewReport)
}
