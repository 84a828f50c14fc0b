package main

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/Sreeharips1/portfolio/internal/carousel"
	"github.com/Sreeharips1/portfolio/internal/catalog"
	"github.com/Sreeharips1/portfolio/internal/contact"
	"github.com/Sreeharips1/portfolio/internal/view"
	"github.com/Sreeharips1/portfolio/internal/visibility"
)

const viewKey = "view"

// Middleware to resolve the view named in the path. A view whose stream
// dropped is revived; an unknown one asks htmx to reload the page.
func (s *server) viewMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		v, err := s.views.Revive(c.Param("id"))
		if err != nil {
			if c.GetHeader("HX-Request") == "true" {
				c.Header("HX-Refresh", "true")
			}
			c.AbortWithStatus(http.StatusGone)
			return
		}
		c.Set(viewKey, v)
		c.Next()
	}
}

func currentView(c *gin.Context) *view.View {
	return c.MustGet(viewKey).(*view.View)
}

func (s *server) renderPage(c *gin.Context, name string, v *view.View) {
	p, err := s.page(v)
	if err != nil {
		log.Printf("Error building page: %v", err)
		c.String(http.StatusInternalServerError, "Internal server error")
		return
	}
	c.HTML(http.StatusOK, name, p)
}

// Home page route
func (s *server) index(c *gin.Context) {
	v, err := s.views.Create()
	if err != nil {
		log.Printf("Error creating view: %v", err)
		c.String(http.StatusInternalServerError, "Internal server error")
		return
	}
	s.renderPage(c, "index.html", v)
}

// events streams the view's timer-driven updates. The view is released
// when the client goes away and revived when the stream reconnects. A
// stream for an unknown view tells the page to reload.
func (s *server) events(c *gin.Context) {
	v, err := s.views.Revive(c.Param("id"))
	if err != nil {
		openStream(c)
		c.SSEvent("session", reloadScript)
		return
	}
	ctx := c.Request.Context()
	events, err := v.Mount(ctx)
	if err != nil {
		c.AbortWithStatus(http.StatusConflict)
		return
	}
	defer s.views.Release(v.ID)

	openStream(c)

	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case ev, ok := <-events:
			if !ok {
				return false
			}
			data, err := s.renderEvent(v, ev)
			if err != nil {
				log.Printf("Error rendering %s event: %v", ev.Kind, err)
				return true
			}
			c.SSEvent(string(ev.Kind), data)
			return true
		}
	})
}

const reloadScript = `<script>window.location.reload()</script>`

func openStream(c *gin.Context) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Writer.WriteHeaderNow()
	c.Writer.Flush()
}

func (s *server) renderEvent(v *view.View, ev view.Event) (string, error) {
	switch ev.Kind {
	case view.EventTypewriter:
		return s.renderFragment("typewriter", ev.Frame)
	case view.EventCertification:
		p, err := s.panelPage(v)
		if err != nil {
			return "", err
		}
		return s.renderFragment("certification-panel", p)
	}
	return "", errors.Errorf("unknown event kind %q", ev.Kind)
}

// sceneLoaded is posted by the hero iframe's load handler.
func (s *server) sceneLoaded(c *gin.Context) {
	v := currentView(c)
	if _, err := v.SceneLoaded(); err != nil {
		log.Printf("Error starting tagline: %v", err)
		c.AbortWithStatus(http.StatusGone)
		return
	}
	s.renderPage(c, "hero-content", v)
}

// observeSection feeds a bounding-rect report to the section's detector.
// Until the section reveals the answer is 204, which htmx leaves unswapped.
func (s *server) observeSection(c *gin.Context) {
	v := currentView(c)
	section := c.Param("section")

	var m visibility.Measurement
	if err := c.ShouldBind(&m); err != nil {
		c.String(http.StatusBadRequest, "Invalid measurement")
		return
	}
	revealed, err := v.Observe(section, m)
	switch {
	case errors.Is(err, view.ErrUnknownSection):
		c.AbortWithStatus(http.StatusNotFound)
		return
	case err != nil:
		c.AbortWithStatus(http.StatusGone)
		return
	}
	if !revealed {
		c.Status(http.StatusNoContent)
		return
	}
	s.renderPage(c, section, v)
}

func (s *server) selectCertification(c *gin.Context) {
	v := currentView(c)
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid certification index")
		return
	}
	if err := v.Carousel.Select(index); err != nil {
		if errors.Is(err, carousel.ErrOutOfRange) {
			c.AbortWithStatus(http.StatusNotFound)
			return
		}
		log.Printf("Error selecting certification: %v", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	p, err := s.panelPage(v)
	if err != nil {
		log.Printf("Error building page: %v", err)
		c.String(http.StatusInternalServerError, "Internal server error")
		return
	}
	c.HTML(http.StatusOK, "certification-panel", p)
}

func (s *server) openProject(c *gin.Context) {
	v := currentView(c)
	id := c.Param("project")
	if _, err := s.catalog.Project(id); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			c.AbortWithStatus(http.StatusNotFound)
			return
		}
		log.Printf("Error loading project %s: %v", id, err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	v.Modal.Open(id)
	s.renderPage(c, "project-modal", v)
}

func (s *server) closeProject(c *gin.Context) {
	currentView(c).Modal.Close()
	c.String(http.StatusOK, "")
}

// Handle contact form submission with HTMX. The mailto URI travels in an
// HX-Trigger event; the page script navigates to it and htmx still swaps
// the form with its banner.
func (s *server) submitContact(c *gin.Context) {
	v := currentView(c)

	var f contact.Form
	if err := c.ShouldBind(&f); err != nil {
		log.Printf("Error binding contact form: %v", err)
	}
	_, err := v.Contact.Submit(s.cfg.ContactAddress, f, func(uri string) error {
		trigger, err := json.Marshal(map[string]string{"mailto": uri})
		if err != nil {
			return err
		}
		c.Header("HX-Trigger", string(trigger))
		return nil
	})
	if err != nil {
		log.Printf("Error sending contact message: %v", err)
	}
	s.renderPage(c, "contact-form", v)
}

func (s *server) resume(c *gin.Context) {
	c.FileAttachment(filepath.Join(s.cfg.AssetsDir, s.content.Profile.Resume), s.content.Profile.ResumeFile())
}

func (s *server) downloadCertification(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid certification index")
		return
	}
	cert, err := s.catalog.Certification(index)
	if err != nil {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}
	c.FileAttachment(filepath.Join(s.cfg.AssetsDir, cert.ImagePath), cert.DownloadName())
}
