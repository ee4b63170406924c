package http

import (
	"github.com/gin-gonic/gin"
	"github.com/kerem-kaynak/fabrika/internal/appcontext"
	"github.com/kerem-kaynak/fabrika/internal/http/middleware"
	"github.com/kerem-kaynak/fabrika/internal/importer"
)

type APIService struct {
	engine  *gin.Engine
	context *appcontext.Context
}

func NewHTTPService(ctx *appcontext.Context) *APIService {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.CORSMiddleware())

	service := &APIService{
		engine:  engine,
		context: ctx,
	}
	service.setupRoutes()
	return service
}

func (h *APIService) Engine() *gin.Engine {
	return h.engine
}

func (h *APIService) setupRoutes() {
	h.engine.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := h.engine.Group("/api/v1")
	v1.Use(middleware.JWTAuthMiddleware())

	h.setupStorageModelRoutes(v1)
	h.setupViewModelRoutes(v1)
	h.setupFormModelRoutes(v1)
	h.setupOperationModelRoutes(v1)
	h.setupDomainModelRoutes(v1)
	h.setupDashboardRoutes(v1)
	h.setupSearchRoutes(v1)
}

func (h *APIService) setupStorageModelRoutes(group *gin.RouterGroup) {
	models := group.Group("/storage-models")
	imp := importer.New(h.context.DB)

	models.POST("/", CreateStorageModel(h.context, imp))
	models.GET("/", GetStorageModels(h.context))
}

func (h *APIService) setupViewModelRoutes(group *gin.RouterGroup) {
	views := group.Group("/view-models")

	views.POST("/", CreateViewModel(h.context))
	views.GET("/", GetViewModels(h.context))
}

func (h *APIService) setupFormModelRoutes(group *gin.RouterGroup) {
	forms := group.Group("/form-models")

	forms.POST("/", CreateFormModel(h.context))
	forms.GET("/", GetFormModels(h.context))
}

func (h *APIService) setupOperationModelRoutes(group *gin.RouterGroup) {
	operations := group.Group("/operation-models")

	operations.POST("/", CreateOperationModel(h.context))
	operations.GET("/", GetOperationModels(h.context))
}

func (h *APIService) setupDomainModelRoutes(group *gin.RouterGroup) {
	domains := group.Group("/domain-models")

	domains.POST("/", CreateDomainModel(h.context))
	domains.GET("/", GetDomainModels(h.context))
}

func (h *APIService) setupDashboardRoutes(group *gin.RouterGroup) {
	group.GET("/dashboard", GetDashboard(h.context))
}

func (h *APIService) setupSearchRoutes(group *gin.RouterGroup) {
	group.GET("/search", Search(h.context))
}
