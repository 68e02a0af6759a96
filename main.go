package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"blog-cms/pkg/config"
	"blog-cms/pkg/handlers"
	"blog-cms/pkg/logging"
	"blog-cms/pkg/schedule"
	"blog-cms/pkg/services"
)

func main() {
	var debug bool

	rootCmd := &cobra.Command{
		Use:           "blog-cms",
		Short:         "CMS and validator for a front-matter blog repository",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "debug logging")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "run the CMS server",
		RunE: func(cmd *cobra.Command, args []string) error {
			config.Init()
			logging.Init(debug)
			defer logging.Sync()
			return runServer()
		},
	}

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "run the document checks over the content tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			config.Init()
			logging.Init(debug)
			defer logging.Sync()
			return runCheck()
		},
	}

	rootCmd.AddCommand(serveCmd, checkCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func runServer() error {
	services.InitRenderCache()

	r := gin.Default()

	// Session Setup
	store := cookie.NewStore([]byte(os.Getenv("SESSION_SECRET")))
	r.Use(sessions.Sessions("mysession", store))

	// Static Files & Templates
	r.LoadHTMLGlob("templates/*")
	r.Static(config.PreviewURL, config.PublicPath)
	r.Static("/static", "./static") // Serve static assets (css/js)

	// --- Auth Routes ---
	r.GET("/login", handlers.LoginPage)
	r.GET("/login/github", handlers.GithubLogin)
	r.GET("/auth/callback", handlers.AuthCallback)
	r.GET("/logout", handlers.Logout)

	// --- Main App (Authorized) ---
	authorized := r.Group("/")
	authorized.Use(handlers.AuthRequired)
	{
		authorized.GET("/", func(c *gin.Context) { c.HTML(http.StatusOK, "index.html", nil) })

		api := authorized.Group("/api")
		{
			api.POST("/build", handlers.HandleBuild)
			api.GET("/articles", handlers.ListArticles)
			api.GET("/article", handlers.GetArticle)
			api.POST("/article", handlers.SaveArticle)
			api.POST("/create", handlers.CreateArticle)
			api.GET("/validate", handlers.ValidateContent)
			api.GET("/render", handlers.RenderArticle)
			api.GET("/profile", handlers.GetProfile)
			api.POST("/profile", handlers.SaveProfile)
			api.POST("/diff", handlers.GetDiff)
			api.GET("/config", handlers.GetSiteConfig)
			api.POST("/sync", handlers.HandleSync)
			api.POST("/publish", handlers.HandlePublish)
			api.GET("/media", handlers.ListMedia)
			api.POST("/media", handlers.UploadMedia)
			api.POST("/media/delete", handlers.DeleteMedia)
			api.GET("/media/raw", handlers.ServeMediaRaw)
		}
	}

	scheduler := schedule.NewCronScheduler()
	if err := scheduler.AddJob(schedule.RescanJob{}, config.RescanSpec); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler.Start(ctx)
	defer scheduler.Stop()

	srv := &http.Server{Addr: ":8080", Handler: r}
	go func() {
		logging.L().Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.L().Error("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logging.L().Info("server stopping...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func runCheck() error {
	reports, err := services.ValidateTree()
	if err != nil {
		return err
	}

	failed := 0
	for _, report := range reports {
		for _, msg := range report.Errors {
			fmt.Printf("%s: error: %s\n", report.Path, msg)
		}
		for _, msg := range report.Warnings {
			fmt.Printf("%s: warning: %s\n", report.Path, msg)
		}
		if !report.Valid {
			failed++
		}
	}

	fmt.Printf("%d documents checked, %d invalid\n", len(reports), failed)
	if failed > 0 {
		return fmt.Errorf("%d documents fail validation", failed)
	}
	return nil
}
