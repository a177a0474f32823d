package api

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.Engine, s *Server) {
	api := r.Group("/api")
	{
		api.GET("/health", s.health)
		api.GET("/templates", s.listTemplates)
		api.GET("/templates/:id", s.getTemplate)
		api.GET("/templates/:id/thumbnail", s.templateThumbnail)
		api.POST("/mockups", s.compose)
	}
}

// NewRouter builds the engine with recovery, request ids and request logging.
func NewRouter(s *Server) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestID(), requestLogger(s.log))
	r.MaxMultipartMemory = s.cfg.Upload.MaxBytes + multipartOverhead
	RegisterRoutes(r, s)
	return r
}
