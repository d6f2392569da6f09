package httpserver

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func NewRouter(logger logrus.FieldLogger, mapper StatusMapper) *gin.Engine {
	router := gin.New()

	router.HandleMethodNotAllowed = true

	router.Use(RequestID())
	router.Use(LoggingMiddleware(logger))
	router.Use(Recovery(logger))
	router.Use(ErrorHandler(logger, mapper))

	return router
}
