package main

import (
	"context"
	"html/template"
	"log"
	"net/http"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/Sreeharips1/portfolio/internal/catalog"
	"github.com/Sreeharips1/portfolio/internal/config"
	"github.com/Sreeharips1/portfolio/internal/content"
	"github.com/Sreeharips1/portfolio/internal/typewriter"
	"github.com/Sreeharips1/portfolio/internal/view"
)

var serveFlags struct {
	port   string
	assets string
	mode   string
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.FromEnv()
		if err != nil {
			return err
		}
		if serveFlags.port != "" {
			cfg.Port = serveFlags.port
		}
		if serveFlags.assets != "" {
			cfg.AssetsDir = serveFlags.assets
		}
		if serveFlags.mode != "" {
			cfg.Mode = serveFlags.mode
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return serve(ctx, cfg)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveFlags.port, "port", "", "listen port (overrides PORT)")
	serveCmd.Flags().StringVar(&serveFlags.assets, "assets", "", "directory with photos, certificates, projects and pdf (overrides ASSETS_DIR)")
	serveCmd.Flags().StringVar(&serveFlags.mode, "mode", "", "gin mode: debug, release or test (overrides GIN_MODE)")
	rootCmd.Flags().AddFlagSet(serveCmd.Flags())
	rootCmd.AddCommand(serveCmd)
}

func serve(ctx context.Context, cfg config.Config) error {
	gin.SetMode(cfg.Mode)

	c, err := content.Load()
	if err != nil {
		return err
	}
	cat, err := catalog.Open(c)
	if err != nil {
		return err
	}
	defer cat.Close()

	views := view.NewRegistry(viewSettings(cfg, c, cat), cfg.ViewTTL)
	go views.Run(ctx)

	s, err := newServer(cfg, c, cat, views)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           s.router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		log.Printf("Serving portfolio on %s", srv.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return errors.Wrap(err, "listen")
	case <-ctx.Done():
	}

	log.Println("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func viewSettings(cfg config.Config, c *content.Content, cat *catalog.Catalog) view.Settings {
	return view.Settings{
		Certifications:   cat.CertificationCount(),
		CarouselInterval: cfg.CarouselInterval,
		Tagline:          c.Profile.Tagline,
		Typewriter: typewriter.Options{
			BaseDelay:   cfg.TypewriterDelay,
			Step:        cfg.TypewriterStep,
			CaretPeriod: cfg.CaretPeriod,
		},
	}
}

type server struct {
	cfg       config.Config
	content   *content.Content
	catalog   *catalog.Catalog
	views     *view.Registry
	templates *template.Template
}

func newServer(cfg config.Config, c *content.Content, cat *catalog.Catalog, views *view.Registry) (*server, error) {
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, errors.Wrap(err, "parse templates")
	}
	return &server{cfg: cfg, content: c, catalog: cat, views: views, templates: tmpl}, nil
}

func (s *server) router() *gin.Engine {
	r := gin.Default()
	r.SetHTMLTemplate(s.templates)

	r.StaticFS("/static", http.FS(staticFiles()))
	for _, dir := range []string{"photos", "certificates", "projects", "pdf"} {
		r.Static("/"+dir, filepath.Join(s.cfg.AssetsDir, dir))
	}

	r.GET("/", s.index)
	r.GET("/resume", s.resume)
	r.GET("/certifications/:index/download", s.downloadCertification)

	r.GET("/views/:id/events", s.events)

	views := r.Group("/views/:id")
	views.Use(s.viewMiddleware())
	{
		views.POST("/scene", s.sceneLoaded)
		views.POST("/sections/:section", s.observeSection)
		views.POST("/certifications/:index", s.selectCertification)
		views.GET("/projects/:project", s.openProject)
		views.DELETE("/projects", s.closeProject)
		views.POST("/contact", s.submitContact)
	}
	return r
}
