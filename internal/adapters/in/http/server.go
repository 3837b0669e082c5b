// Package http exposes the order lifecycle over a REST API using echo.
package http

import (
	"errors"
	"net/http"

	"fueldrop/internal/core/application/usecases/commands"
	"fueldrop/internal/core/application/usecases/queries"
	"fueldrop/internal/core/domain/model/kernel"
	"fueldrop/internal/core/domain/model/order"
	"fueldrop/internal/core/ports"
	"fueldrop/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	assignCourierHandler commands.AssignCourierCommandHandler
	progressOrderHandler commands.ProgressOrderCommandHandler
	completeOrderHandler commands.CompleteOrderCommandHandler
	cancelOrderHandler   commands.CancelOrderCommandHandler

	// Query handlers
	getOrderHandler         queries.GetOrderQueryHandler
	getUnpaidBalanceHandler queries.GetUnpaidBalanceQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	assignCourierHandler commands.AssignCourierCommandHandler,
	progressOrderHandler commands.ProgressOrderCommandHandler,
	completeOrderHandler commands.CompleteOrderCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getUnpaidBalanceHandler queries.GetUnpaidBalanceQueryHandler,
) *Server {
	return &Server{
		assignCourierHandler:    assignCourierHandler,
		progressOrderHandler:    progressOrderHandler,
		completeOrderHandler:    completeOrderHandler,
		cancelOrderHandler:      cancelOrderHandler,
		getOrderHandler:         getOrderHandler,
		getUnpaidBalanceHandler: getUnpaidBalanceHandler,
	}
}

// RegisterRoutes binds the API endpoints to the echo router.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders/:id/assign", s.AssignCourier)
	api.POST("/orders/:id/accept", s.AcceptOrder)
	api.POST("/orders/:id/enroute", s.BeginRoute)
	api.POST("/orders/:id/service", s.BeginService)
	api.POST("/orders/:id/complete", s.CompleteOrder)
	api.POST("/orders/:id/cancel", s.CancelOrder)
	api.GET("/orders/:id", s.GetOrder)
	api.GET("/users/:id/unpaid-balance", s.GetUnpaidBalance)
}

// Error is the API's error payload.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// writeError maps application failures onto HTTP status codes: unknown ids
// are 404, illegal transitions 409, external gateway failures 502.
func writeError(ctx echo.Context, err error) error {
	var gatewayErr *ports.GatewayError

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, commands.ErrTooLateToCancel),
		errors.Is(err, errs.ErrValueIsInvalid):
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	case errors.As(err, &gatewayErr):
		return ctx.JSON(http.StatusBadGateway, Error{
			Code:    http.StatusBadGateway,
			Message: err.Error(),
		})
	default:
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: err.Error(),
		})
	}
}

func orderIDParam(ctx echo.Context) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param("id"))
}

// AssignCourierRequest is the body of POST /orders/{id}/assign.
type AssignCourierRequest struct {
	CourierID string `json:"courier_id"`

	// NoReassign skips orders that already have a courier instead of
	// rebinding them.
	NoReassign bool `json:"no_reassign"`
}

// AssignCourier handles POST /api/v1/orders/{id}/assign.
func (s *Server) AssignCourier(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: "invalid order id"})
	}

	var req AssignCourierRequest
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: "invalid request body"})
	}

	courierID, err := kernel.UUIDFromString(req.CourierID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: "invalid courier id"})
	}

	cmd, err := commands.NewAssignCourierCommand(orderID, courierID, commands.AssignCourierOptions{
		NoReassign: req.NoReassign,
	})
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: err.Error()})
	}

	if err = s.assignCourierHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func (s *Server) progress(
	ctx echo.Context,
	build func(kernel.UUID) (commands.ProgressOrderCommand, error),
) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: "invalid order id"})
	}

	cmd, err := build(orderID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: err.Error()})
	}

	if err = s.progressOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AcceptOrder handles POST /api/v1/orders/{id}/accept.
func (s *Server) AcceptOrder(ctx echo.Context) error {
	return s.progress(ctx, commands.NewAcceptOrderCommand)
}

// BeginRoute handles POST /api/v1/orders/{id}/enroute.
func (s *Server) BeginRoute(ctx echo.Context) error {
	return s.progress(ctx, commands.NewBeginRouteCommand)
}

// BeginService handles POST /api/v1/orders/{id}/service.
func (s *Server) BeginService(ctx echo.Context) error {
	return s.progress(ctx, commands.NewBeginServiceCommand)
}

// CompleteOrder handles POST /api/v1/orders/{id}/complete.
func (s *Server) CompleteOrder(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: "invalid order id"})
	}

	cmd, err := commands.NewCompleteOrderCommand(orderID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: err.Error()})
	}

	if err = s.completeOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelOrderRequest is the body of POST /orders/{id}/cancel.
type CancelOrderRequest struct {
	UserID              string   `json:"user_id"`
	FromDashboard       bool     `json:"from_dashboard"`
	NotifyCustomer      bool     `json:"notify_customer"`
	SuppressUserDetails bool     `json:"suppress_user_details"`
	CancellableStatuses []string `json:"cancellable_statuses,omitempty"`
}

// CancelOrderResponse is returned on successful cancellation.
type CancelOrderResponse struct {
	User *CancelOrderUser `json:"user,omitempty"`
}

// CancelOrderUser is the customer profile echoed back for display.
type CancelOrderUser struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	ReferralCode string `json:"referral_code"`
}

// CancelOrder handles POST /api/v1/orders/{id}/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: "invalid order id"})
	}

	var req CancelOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: "invalid request body"})
	}

	userID, err := kernel.UUIDFromString(req.UserID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: "invalid user id"})
	}

	var cancellable []order.Status
	if req.CancellableStatuses != nil {
		cancellable, err = parseStatuses(req.CancellableStatuses)
		if err != nil {
			return ctx.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: err.Error()})
		}
	}

	cmd, err := commands.NewCancelOrderCommand(userID, orderID, commands.CancelOrderOptions{
		FromDashboard:       req.FromDashboard,
		NotifyCustomer:      req.NotifyCustomer,
		SuppressUserDetails: req.SuppressUserDetails,
		CancellableStatuses: cancellable,
	})
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: err.Error()})
	}

	result, err := s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	response := CancelOrderResponse{}
	if result.User != nil {
		response.User = &CancelOrderUser{
			ID:           result.User.ID().String(),
			Name:         result.User.Name(),
			Phone:        result.User.Phone(),
			ReferralCode: result.User.ReferralCode(),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// parseStatuses maps status names from the request onto domain statuses.
func parseStatuses(names []string) ([]order.Status, error) {
	statuses := make([]order.Status, 0, len(names))
	for _, name := range names {
		status, err := order.StatusFromString(name)
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

// OrderResponse is the display projection of one order.
type OrderResponse struct {
	ID         string            `json:"id"`
	UserID     string            `json:"user_id"`
	CourierID  *string           `json:"courier_id,omitempty"`
	Status     string            `json:"status"`
	StatusLog  []StatusLogEntry  `json:"status_log"`
	GasType    string            `json:"gas_type"`
	Gallons    int               `json:"gallons"`
	TotalPrice int               `json:"total_price"`
	Paid       bool              `json:"paid"`
	RefundID   string            `json:"refund_id,omitempty"`
	Address    map[string]string `json:"address"`
}

// StatusLogEntry is one status history record.
type StatusLogEntry struct {
	Status string `json:"status"`
	At     int64  `json:"at"`
}

// GetOrder handles GET /api/v1/orders/{id}.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: "invalid order id"})
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: err.Error()})
	}

	view, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := OrderResponse{
		ID:         view.ID.String(),
		UserID:     view.UserID.String(),
		Status:     view.Status.String(),
		GasType:    view.GasType,
		Gallons:    view.Gallons,
		TotalPrice: view.TotalPrice,
		Paid:       view.Paid,
		RefundID:   view.RefundID,
		Address: map[string]string{
			"street": view.Street,
			"city":   view.City,
			"state":  view.State,
			"zip":    view.Zip,
		},
	}
	if view.CourierID != nil {
		courierID := view.CourierID.String()
		response.CourierID = &courierID
	}
	for _, change := range view.StatusLog {
		response.StatusLog = append(response.StatusLog, StatusLogEntry{
			Status: change.Status.String(),
			At:     change.At.Unix(),
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// UnpaidBalanceResponse carries a customer's outstanding balance in cents.
type UnpaidBalanceResponse struct {
	UnpaidCents int `json:"unpaid_cents"`
}

// GetUnpaidBalance handles GET /api/v1/users/{id}/unpaid-balance.
func (s *Server) GetUnpaidBalance(ctx echo.Context) error {
	userID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: "invalid user id"})
	}

	query, err := queries.NewGetUnpaidBalanceQuery(userID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: err.Error()})
	}

	balance, err := s.getUnpaidBalanceHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, UnpaidBalanceResponse{UnpaidCents: balance.UnpaidCents})
}
