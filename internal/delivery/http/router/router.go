// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"pharmachain/internal/delivery/http/middleware"
	"pharmachain/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	ParticipantHandler *handler.ParticipantHandler
	InventoryHandler   *handler.InventoryHandler
	BatchHandler       *handler.BatchHandler
	OrderHandler       *handler.OrderHandler
	AuthMiddleware     *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	participantHandler *handler.ParticipantHandler
	inventoryHandler   *handler.InventoryHandler
	batchHandler       *handler.BatchHandler
	orderHandler       *handler.OrderHandler
	authMiddleware     *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		participantHandler: params.ParticipantHandler,
		inventoryHandler:   params.InventoryHandler,
		batchHandler:       params.BatchHandler,
		orderHandler:       params.OrderHandler,
		authMiddleware:     params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
// Reads are public; every mutation requires an authenticated identity, whose
// ledger role is then checked by the use case layer.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	participantGroup := e.Group("/participants")
	{
		participantGroup.GET("/:identity/role", r.participantHandler.GetRole)
		participantGroup.POST("", r.participantHandler.RegisterParticipant, r.authMiddleware.Authenticate)
	}

	e.POST("/ownership/transfer", r.participantHandler.TransferOwnership, r.authMiddleware.Authenticate)

	materialGroup := e.Group("/materials")
	{
		materialGroup.GET("/:materialId", r.inventoryHandler.GetMaterial)
		materialGroup.POST("/restock", r.inventoryHandler.Restock, r.authMiddleware.Authenticate)
	}

	batchGroup := e.Group("/batches")
	{
		batchGroup.GET("/:medicineId/:batchId", r.batchHandler.GetBatch)
		batchGroup.GET("/:medicineId/:batchId/qr", r.batchHandler.GetBatchQR)
		batchGroup.POST("", r.batchHandler.CreateBatch, r.authMiddleware.Authenticate)
	}

	orderGroup := e.Group("/orders")
	{
		orderGroup.GET("/:orderId", r.orderHandler.GetOrder)
		orderGroup.POST("", r.orderHandler.CreateOrder, r.authMiddleware.Authenticate)
		orderGroup.POST("/:orderId/transporter", r.orderHandler.AssignTransporter, r.authMiddleware.Authenticate)
		orderGroup.POST("/:orderId/status", r.orderHandler.UpdateOrderStatus, r.authMiddleware.Authenticate)
	}
}
