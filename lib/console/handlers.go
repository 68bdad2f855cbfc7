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
	"fmt"
	"maps"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/adobe/gateway-console-uitest/lib/log"
)

type listRow struct {
	Key   string
	Cells []string
}

func page(c *gin.Context, title string, data gin.H) gin.H {
	out := gin.H{"Title": title, "Workspace": c.Param("ws")}
	maps.Copy(out, data)
	return out
}

func (s *Server) handleWorkspaces(c *gin.Context) {
	c.HTML(http.StatusOK, "workspaces.html", gin.H{"Title": "Workspaces", "Workspaces": s.workspaces})
}

func (s *Server) handleOverview(c *gin.Context) {
	ws := c.Param("ws")
	services, err := s.store.ListServices(ws)
	if err != nil {
		c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	routes, err := s.store.ListRoutes(ws)
	if err != nil {
		c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	c.HTML(http.StatusOK, "overview.html", page(c, "Overview", gin.H{
		"Services": len(services),
		"Routes":   len(routes),
	}))
}

func (s *Server) handleServiceList(c *gin.Context) {
	ws := c.Param("ws")
	services, err := s.store.ListServices(ws)
	if err != nil {
		c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	rows := make([]listRow, 0, len(services))
	for _, svc := range services {
		rows = append(rows, listRow{Key: svc.Key(), Cells: []string{
			svc.Name, svc.Protocol, svc.Host, strconv.Itoa(svc.Port), svc.Path, strings.Join(svc.Tags, ", "),
		}})
	}
	c.HTML(http.StatusOK, "list.html", page(c, "Gateway Services", gin.H{
		"Container":     "kong-ui-entities-gateway-services-list",
		"API":           "/api/" + ws + "/services",
		"Entity":        "gateway service",
		"AddText":       "New gateway service",
		"NewTestID":     "new-gateway-service",
		"ToolbarTestID": "toolbar-add-gateway-service",
		"Columns":       []string{"Name", "Protocol", "Host", "Port", "Path", "Tags"},
		"Rows":          rows,
	}))
}

func (s *Server) renderServiceForm(c *gin.Context, status int, formErr error) {
	data := gin.H{
		"Families":      ProtocolFamilies,
		"PathProtocols": strings.Join(pathProtocols, ","),
	}
	if formErr != nil {
		data["Error"] = formErr.Error()
	}
	c.HTML(status, "service_form.html", page(c, "Create a Gateway Service", data))
}

func (s *Server) handleServiceForm(c *gin.Context) {
	s.renderServiceForm(c, http.StatusOK, nil)
}

func (s *Server) handleServiceCreate(c *gin.Context) {
	logger := log.WithFunc("console", "handleServiceCreate")
	ws := c.Param("ws")
	svc, err := serviceFromForm(c)
	if err == nil {
		svc, err = s.store.AddService(ws, svc)
	}
	if err != nil {
		logger.Debug("Service rejected", "workspace", ws, "name", svc.Name, "err", err)
		s.renderServiceForm(c, statusOf(err), err)
		return
	}
	logger.Info("Service created", "workspace", ws, "name", svc.Name, "id", svc.ID, "url", svc.URL())
	c.Redirect(http.StatusSeeOther, "/"+ws+"/services/")
}

// serviceFromForm reads the posted service form, endpoint comes from the url or from the
// separate fields depending on the selected mode
func serviceFromForm(c *gin.Context) (Service, error) {
	svc := Service{
		Name:       strings.TrimSpace(c.PostForm("name")),
		Tags:       SplitTags(c.PostForm("tags")),
		ClientCert: strings.TrimSpace(c.PostForm("client_cert")),
		CACert:     strings.TrimSpace(c.PostForm("ca_certs")),
	}
	if c.DefaultPostForm("mode", "url") == "url" {
		raw := strings.TrimSpace(c.PostForm("url"))
		if raw == "" {
			return svc, fmt.Errorf("%w: url is required", ErrInvalid)
		}
		if err := svc.SetURL(raw); err != nil {
			return svc, fmt.Errorf("%w: %v", ErrInvalid, err)
		}
	} else {
		svc.Protocol = c.PostForm("protocol")
		svc.Host = strings.TrimSpace(c.PostForm("host"))
		svc.Path = strings.TrimSpace(c.PostForm("path"))
		port, err := formInt(c, "port")
		if err != nil {
			return svc, err
		}
		svc.Port = port
	}

	numbers := []struct {
		field string
		value *int
	}{
		{"retries", &svc.Retries},
		{"connect_timeout", &svc.ConnectTimeout},
		{"write_timeout", &svc.WriteTimeout},
		{"read_timeout", &svc.ReadTimeout},
	}
	for _, n := range numbers {
		v, err := formInt(c, n.field)
		if err != nil {
			return svc, err
		}
		*n.value = v
	}
	if _, ok := c.GetPostForm("tls_verify"); ok {
		svc.TLSVerify = new(bool)
		*svc.TLSVerify = true
	}
	return svc, nil
}

// formInt parses the number field, empty field is 0
func formInt(c *gin.Context, field string) (int, error) {
	raw := strings.TrimSpace(c.PostForm(field))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s should be a number", ErrInvalid, field)
	}
	return v, nil
}

func (s *Server) handleRouteList(c *gin.Context) {
	ws := c.Param("ws")
	routes, err := s.store.ListRoutes(ws)
	if err != nil {
		c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	rows := make([]listRow, 0, len(routes))
	for _, r := range routes {
		rows = append(rows, listRow{Key: r.Key(), Cells: []string{r.Name, r.ServiceName, strings.Join(r.Paths, ", ")}})
	}
	c.HTML(http.StatusOK, "list.html", page(c, "Routes", gin.H{
		"Container":     "kong-ui-entities-routes-list",
		"API":           "/api/" + ws + "/routes",
		"Entity":        "route",
		"AddText":       "New route",
		"NewTestID":     "new-route",
		"ToolbarTestID": "toolbar-add-route",
		"Columns":       []string{"Name", "Service", "Paths"},
		"Rows":          rows,
	}))
}

func (s *Server) renderRouteForm(c *gin.Context, status int, formErr error) {
	services, err := s.store.ListServices(c.Param("ws"))
	if err != nil {
		c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	keys := make([]string, 0, len(services))
	for _, svc := range services {
		keys = append(keys, svc.Key())
	}
	data := gin.H{"Services": keys}
	if formErr != nil {
		data["Error"] = formErr.Error()
	}
	c.HTML(status, "route_form.html", page(c, "Create a Route", data))
}

func (s *Server) handleRouteForm(c *gin.Context) {
	s.renderRouteForm(c, http.StatusOK, nil)
}

func (s *Server) handleRouteCreate(c *gin.Context) {
	logger := log.WithFunc("console", "handleRouteCreate")
	ws := c.Param("ws")
	route := Route{
		Name:        strings.TrimSpace(c.PostForm("name")),
		ServiceName: strings.TrimSpace(c.PostForm("service")),
	}
	if path := strings.TrimSpace(c.PostForm("paths")); path != "" {
		route.Paths = []string{path}
	}

	route, err := s.store.AddRoute(ws, route)
	if err != nil {
		logger.Debug("Route rejected", "workspace", ws, "name", route.Name, "err", err)
		status := statusOf(err)
		// Unknown service is reported by the form
		if status == http.StatusNotFound {
			status = http.StatusBadRequest
		}
		s.renderRouteForm(c, status, err)
		return
	}
	logger.Info("Route created", "workspace", ws, "name", route.Name, "id", route.ID, "service", route.ServiceName)
	c.Redirect(http.StatusSeeOther, "/"+ws+"/routes/")
}

func (s *Server) apiListServices(c *gin.Context) {
	services, err := s.store.ListServices(c.Param("ws"))
	if err != nil {
		c.JSON(statusOf(err), gin.H{"message": err.Error()})
		return
	}
	if services == nil {
		services = []Service{}
	}
	c.JSON(http.StatusOK, gin.H{"data": services})
}

func (s *Server) apiDeleteService(c *gin.Context) {
	s.apiDelete(c, "service", s.store.DeleteService)
}

func (s *Server) apiListRoutes(c *gin.Context) {
	routes, err := s.store.ListRoutes(c.Param("ws"))
	if err != nil {
		c.JSON(statusOf(err), gin.H{"message": err.Error()})
		return
	}
	if routes == nil {
		routes = []Route{}
	}
	c.JSON(http.StatusOK, gin.H{"data": routes})
}

func (s *Server) apiDeleteRoute(c *gin.Context) {
	s.apiDelete(c, "route", s.store.DeleteRoute)
}

func (*Server) apiDelete(c *gin.Context, kind string, del func(workspace, key string) error) {
	logger := log.WithFunc("console", "apiDelete")
	ws, key := c.Param("ws"), c.Param("key")
	if err := del(ws, key); err != nil {
		logger.Debug("Delete rejected", "kind", kind, "workspace", ws, "key", key, "err", err)
		c.JSON(statusOf(err), gin.H{"message": err.Error()})
		return
	}
	logger.Info("Deleted", "kind", kind, "workspace", ws, "key", key)
	c.Status(http.StatusNoContent)
}
