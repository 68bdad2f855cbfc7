/**
 * Copyright 2025 Adobe. All rights reserved.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License. You may obtain a copy
 * of the License at http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software distributed under
 * the License is distributed on an "AS IS" BASIS, WITHOUT WARRANTIES OR REPRESENTATIONS
 * OF ANY KIND, either express or implied. See the License for the specific language
 * governing permissions and limitations under the License.
 */

package console

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net"
	"net/http"
	"slices"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/adobe/gateway-console-uitest/lib/log"
)

// DefaultWorkspace is always served by the console
const DefaultWorkspace = "default"

//go:embed templates/*.html static/*
var assets embed.FS

// Server serves the console screens and the small json api used by the delete modal
type Server struct {
	store      Store
	workspaces []string
	engine     *gin.Engine
	srv        *http.Server
}

// NewServer creates the console over the store. The default workspace is added when missing.
func NewServer(store Store, workspaces ...string) (*Server, error) {
	unique := []string{DefaultWorkspace}
	for _, ws := range workspaces {
		if ws != "" && !slices.Contains(unique, ws) {
			unique = append(unique, ws)
		}
	}
	workspaces = unique

	tmpl, err := template.ParseFS(assets, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("console: unable to parse templates: %w", err)
	}
	static, err := fs.Sub(assets, "static")
	if err != nil {
		return nil, fmt.Errorf("console: static assets: %w", err)
	}

	s := &Server{store: store, workspaces: workspaces}

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())
	router.SetHTMLTemplate(tmpl)
	router.StaticFS("/static", http.FS(static))

	router.GET("/", s.handleWorkspaces)

	ui := router.Group("/:ws", s.requireWorkspace(false))
	{
		ui.GET("/overview/", s.handleOverview)
		ui.GET("/services/", s.handleServiceList)
		ui.GET("/services/create", s.handleServiceForm)
		ui.POST("/services/create", s.handleServiceCreate)
		ui.GET("/routes/", s.handleRouteList)
		ui.GET("/routes/create", s.handleRouteForm)
		ui.POST("/routes/create", s.handleRouteCreate)
	}

	api := router.Group("/api/:ws", s.requireWorkspace(true))
	{
		api.GET("/services", s.apiListServices)
		api.DELETE("/services/:key", s.apiDeleteService)
		api.GET("/routes", s.apiListRoutes)
		api.DELETE("/routes/:key", s.apiDeleteRoute)
	}

	router.NoRoute(func(c *gin.Context) {
		c.HTML(http.StatusNotFound, "not_found.html", gin.H{
			"Title":   "Not Found",
			"Message": "Page " + c.Request.URL.Path + " not found",
		})
	})

	s.engine = router
	return s, nil
}

// Handler returns the http handler of the console
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Workspaces returns the served workspaces
func (s *Server) Workspaces() []string {
	return slices.Clone(s.workspaces)
}

// Start listens on the address and serves in background. Returns base url of the console, useful
// when the address port is 0.
func (s *Server) Start(address string) (string, error) {
	logger := log.WithFunc("console", "Start")
	ln, err := net.Listen("tcp", address)
	if err != nil {
		return "", fmt.Errorf("console: unable to listen on %s: %w", address, err)
	}
	s.srv = &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Console server stopped", "err", err)
		}
	}()

	baseURL := "http://" + ln.Addr().String()
	logger.Info("Console started", "url", baseURL, "workspaces", s.workspaces)
	return baseURL, nil
}

// Shutdown stops the server gracefully
func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("console: shutdown: %w", err)
	}
	log.WithFunc("console", "Shutdown").Info("Console stopped")
	return nil
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.WithFunc("console", "request").Debug("Request served",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
		)
	}
}

func (s *Server) requireWorkspace(api bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		ws := c.Param("ws")
		if slices.Contains(s.workspaces, ws) {
			c.Next()
			return
		}
		msg := fmt.Sprintf("workspace %q not found", ws)
		if api {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": msg})
			return
		}
		c.HTML(http.StatusNotFound, "not_found.html", gin.H{"Title": "Not Found", "Message": msg})
		c.Abort()
	}
}

// statusOf maps the store error to the http status
func statusOf(err error) int {
	switch {
	case errors.Is(err, ErrUniqueViolation):
		return http.StatusConflict
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalid), errors.Is(err, ErrForeignKey):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
