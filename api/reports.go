package api

import (
	"net/http"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/service/reports"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ReportHandler struct {
	service reports.ReportUseCase
	log     *zap.Logger
}

type popularRoutesPage struct {
	page
	Routes []domain.RouteStats
}

func NewReportHandler(service reports.ReportUseCase, log *zap.Logger) *ReportHandler {
	return &ReportHandler{service: service, log: log}
}

func (h *ReportHandler) Register(router *gin.RouterGroup) {
	router.GET("/popular-routes", h.popularRoutes)
}

func (h *ReportHandler) popularRoutes(c *gin.Context) {
	routes, err := h.service.PopularRoutes(c.Request.Context())
	if err != nil {
		h.log.Error("popular routes", zap.String("request_id", GetRequestID(c)), zap.Error(err))
		c.HTML(http.StatusInternalServerError, "popular_routes.html", popularRoutesPage{page: page{Title: "Popular routes", Error: internalErrorMessage}})
		return
	}
	c.HTML(http.StatusOK, "popular_routes.html", popularRoutesPage{page: page{Title: "Popular routes"}, Routes: routes})
}
