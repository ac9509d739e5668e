package commands

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"migration-service/internal/handlers"
	"migration-service/internal/repository"
)

func newServeCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the read-only migration audit API",
		RunE: func(cmd *cobra.Command, args []string) error {
			dest, err := app.Dest()
			if err != nil {
				return err
			}
			store, err := app.Store()
			if err != nil {
				return err
			}

			if app.Config.IsProduction() {
				gin.SetMode(gin.ReleaseMode)
			}

			handler := handlers.NewAuditHandler(repository.NewRunRepository(dest), store)

			router := gin.Default()
			router.Use(cors.New(cors.Config{
				AllowOrigins:     []string{"*"},
				AllowMethods:     []string{"GET", "OPTIONS"},
				AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
				ExposeHeaders:    []string{"Content-Length"},
				AllowCredentials: false,
				MaxAge:           12 * time.Hour,
			}))

			router.GET("/health", handler.Health)

			v1 := router.Group("/api/v1")
			{
				v1.GET("/runs", handler.ListRuns)
				v1.GET("/runs/:id", handler.GetRun)
				v1.GET("/maps/:entity", handler.GetIdentityMap)
			}

			addr := app.Config.GetServerAddress()
			app.Log.WithField("address", addr).Info("Starting migration audit API")
			return router.Run(addr)
		},
	}
}
