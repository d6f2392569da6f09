package web

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samber/do"
	"github.com/zhulik/vote/internal/core"
	"github.com/zhulik/vote/internal/httpserver"
	"github.com/zhulik/vote/internal/vote"
)

type Server struct {
	*httpserver.Server

	service *vote.Service
}

// NewServer creates a new Server instance serving the voting page on "/".
func NewServer(injector *do.Injector) (*Server, error) {
	config, err := do.Invoke[core.Config](injector)
	if err != nil {
		return nil, err
	}

	server, err := httpserver.NewServer(injector, "web.Server", config.HTTPPort(), StatusFor)
	if err != nil {
		return nil, fmt.Errorf("failed to create a new http server: %w", err)
	}

	service, err := do.Invoke[*vote.Service](injector)
	if err != nil {
		return nil, err
	}

	tmpl, err := NewTemplate()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	srv := &Server{
		Server:  server,
		service: service,
	}

	srv.Router.SetHTMLTemplate(tmpl)

	srv.Router.GET("/", srv.IndexHandler)
	srv.Router.POST("/", srv.IndexHandler)

	srv.Router.NoMethod(func(c *gin.Context) {
		c.Error(core.ErrMethodNotAllowed) //nolint:errcheck
	})

	return srv, nil
}

func (s *Server) IndexHandler(c *gin.Context) {
	model, err := s.service.Handle(c.Request.Context(), c.Request.Method, c.PostForm(core.FormFieldVote))
	if err != nil {
		c.Error(err) //nolint:errcheck

		return
	}

	c.HTML(http.StatusOK, IndexTemplate, model)
}
