package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"apigee-gateway/observability"
	"apigee-gateway/resilience"
	"apigee-gateway/tools"
)

// Routes wires the gateway's HTTP surface onto the engine.
func (s *Server) Routes(dispatcher *tools.Dispatcher, invoker *resilience.Invoker, service, version string) {
	s.engine.GET("/health", healthHandler(invoker, service, version))
	s.engine.GET("/alive", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "up"})
	})
	s.engine.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "up"})
	})

	api := s.engine.Group("/api")
	api.GET("/tools", listToolsHandler(dispatcher))
	api.POST("/tools/:name", callToolHandler(dispatcher))
}

func listToolsHandler(dispatcher *tools.Dispatcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		respondOK(c, gin.H{"tools": dispatcher.Tools()})
	}
}

func callToolHandler(dispatcher *tools.Dispatcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		var args map[string]any
		if c.Request.ContentLength != 0 {
			if err := c.ShouldBindJSON(&args); err != nil {
				respondWithError(c, apperrValidation(err))
				return
			}
		}

		result, err := dispatcher.Dispatch(c.Request.Context(), c.Param("name"), args)
		if err != nil {
			respondWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, DataResponse{
			Data:          result.Data,
			CorrelationID: result.CorrelationID,
		})
	}
}

func healthHandler(invoker *resilience.Invoker, service, version string) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := observability.NewServiceHealth(service, version)

		states := invoker.BreakerStates()
		named := make(map[string]string, len(states))
		for key, state := range states {
			named[key] = state.String()
		}
		health.AddComponent(observability.BreakerHealth(named))

		status := http.StatusOK
		if health.Status == observability.HealthStatusDown {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, health)
	}
}
