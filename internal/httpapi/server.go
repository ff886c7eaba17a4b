// Package httpapi exposes the orchestrator over HTTP for the optional
// "bkmr serve" mode. It is a thin echo layer: all business logic lives in
// internal/service, this package only translates requests/responses.
package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/sysid/bkmr/internal/domain"
	"github.com/sysid/bkmr/internal/query"
	"github.com/sysid/bkmr/internal/service"
)

// Server wraps an echo instance wired to a Service.
type Server struct {
	echo *echo.Echo
	svc  *service.Service
}

func New(svc *service.Service) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	s := &Server{echo: e, svc: svc}
	e.GET("/healthz", s.health)
	e.GET("/bookmarks", s.search)
	e.POST("/bookmarks", s.add)
	e.GET("/bookmarks/:id", s.getByID)
	e.DELETE("/bookmarks/:id", s.delete)
	e.GET("/bookmarks/search/semantic", s.semanticSearch)
	return s
}

// Start blocks serving on addr (e.g. ":8080") until the process is signaled.
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) search(c echo.Context) error {
	q := query.New()
	if text := c.QueryParam("q"); text != "" {
		q = q.WithSpec(query.TextSearch{Query: text})
	}
	if tags := c.QueryParam("tags"); tags != "" {
		q = q.WithSpec(query.AllTags{Tags: domain.ParseTags(tags)})
	}
	results, err := s.svc.Search(c.Request().Context(), q)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, results)
}

type addRequest struct {
	URL           string   `json:"url"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Tags          []string `json:"tags"`
	Embeddable    bool     `json:"embeddable"`
	FetchMetadata bool     `json:"fetch_metadata"`
}

func (s *Server) add(c echo.Context) error {
	var req addRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}
	b, err := s.svc.Add(c.Request().Context(), req.URL, service.AddOptions{
		Title:         req.Title,
		Description:   req.Description,
		Tags:          domain.ParseTags(strings.Join(req.Tags, ",")),
		Embeddable:    req.Embeddable,
		FetchMetadata: req.FetchMetadata,
	})
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusCreated, b)
}

func (s *Server) getByID(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid id"})
	}
	b, err := s.svc.Store.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, b)
}

func (s *Server) delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid id"})
	}
	ok, err := s.svc.Delete(c.Request().Context(), id)
	if err != nil {
		return respondErr(c, err)
	}
	if !ok {
		return c.NoContent(http.StatusNotFound)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) semanticSearch(c echo.Context) error {
	text := c.QueryParam("q")
	if text == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "q is required"})
	}
	limit := 10
	if raw := c.QueryParam("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}
	results, err := s.svc.SemanticSearch(c.Request().Context(), text, limit)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, results)
}

func respondErr(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrDuplicateName), errors.Is(err, domain.ErrBookmarkExists):
		return c.JSON(http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrInvalidTag):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
	}
}
