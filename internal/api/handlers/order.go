package handlers

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/LeoR1u/ProyectoLegos/internal/api/middleware"
	"github.com/LeoR1u/ProyectoLegos/internal/errors"
	"github.com/LeoR1u/ProyectoLegos/internal/models"
	service "github.com/LeoR1u/ProyectoLegos/internal/services"
	"github.com/LeoR1u/ProyectoLegos/internal/ticket"
	"github.com/LeoR1u/ProyectoLegos/internal/utils"
	"github.com/LeoR1u/ProyectoLegos/internal/utils/response"
)

type OrderHandler struct {
	orderService service.OrderService
	renderer     ticket.Renderer
	storeName    string
	now          func() time.Time
}

func NewOrderHandler(orderService service.OrderService, renderer ticket.Renderer, storeName string) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		renderer:     renderer,
		storeName:    storeName,
		now:          time.Now,
	}
}

// Checkout godoc
//	@Summary		Check out the cart
//	@Description	Turns the session cart into an order and returns its ticket. Visitors who are not signed in are sent to /login, an empty cart is sent back to /.
//	@Tags			Orders
//	@Produce		application/pdf
//	@Success		200	{file}		file					"Ticket attachment ticket_<orderId>.pdf"
//	@Success		303	"Redirect to /login or /"
//	@Failure		500	{object}	response.ErrorResponse	"Order could not be stored, cart kept"
//	@Security		SessionCookie
//	@Router			/checkout [post]
func (h *OrderHandler) Checkout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		sess, ok := currentSession(w, r)
		if !ok {
			return
		}

		if sess.Cart.IsEmpty() {
			logger.Info("Checkout with empty cart, redirecting")
			redirect(w, r, HomePath)
			return
		}

		order, err := h.orderService.Checkout(r.Context(), sess.User, sess.Cart)
		if err != nil {
			logger.Error("Checkout failed", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger = logger.With(slog.Int64("orderId", order.ID))
		logger.Info("Checkout completed")

		h.writeTicket(w, r, order, sess.User.Username)
	}
}

// History godoc
//	@Summary		Order history
//	@Description	Lists the user's orders, most recent first, each with a "name (qty)" item summary.
//	@Tags			Orders
//	@Produce		json
//	@Success		200	{object}	models.OrderHistoryResponse	"Orders"
//	@Success		303	"Redirect to /login"
//	@Failure		500	{object}	response.ErrorResponse		"Internal server error"
//	@Security		SessionCookie
//	@Router			/history [get]
func (h *OrderHandler) History() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		sess, ok := currentSession(w, r)
		if !ok {
			return
		}

		history, err := h.orderService.History(r.Context(), sess.User)
		if err != nil {
			logger.Error("Failed to list orders", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Orders listed successfully", slog.Int("total", history.Total))
		response.Success(w, http.StatusOK, history)
	}
}

// DownloadTicket godoc
//	@Summary		Download a past ticket
//	@Tags			Orders
//	@Produce		application/pdf
//	@Param			id	path		int						true	"Order ID"
//	@Success		200	{file}		file					"Ticket attachment"
//	@Success		303	"Redirect to /login"
//	@Failure		400	{object}	response.ErrorResponse	"Invalid order ID"
//	@Failure		404	{object}	response.ErrorResponse	"Order not found"
//	@Failure		500	{object}	response.ErrorResponse	"Internal server error"
//	@Security		SessionCookie
//	@Router			/orders/{id}/ticket [get]
func (h *OrderHandler) DownloadTicket() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		sess, ok := currentSession(w, r)
		if !ok {
			return
		}

		id, err := utils.ParseID(r, "id")
		if err != nil {
			logger.Warn("Invalid order id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		order, err := h.orderService.GetOrder(r.Context(), sess.User, id)
		if err != nil {
			logger.Warn("Failed to get order", slog.Int64("orderId", id), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		h.writeTicket(w, r, order, sess.User.Username)
	}
}

// writeTicket renders into a buffer first so a rendering failure can still be
// reported as JSON.
func (h *OrderHandler) writeTicket(w http.ResponseWriter, r *http.Request, order *models.Order, customer string) {
	tk := ticket.Project(h.storeName, order, customer, h.now())

	var buf bytes.Buffer
	if err := h.renderer.Render(&buf, tk); err != nil {
		middleware.LoggerFromContext(r.Context()).Error("Failed to render ticket", slog.Int64("orderId", order.ID), slog.Any("error", err))
		response.Error(w, errors.InternalError("Failed to generate ticket").
			WithDetail(fmt.Sprintf("order %d was stored; the ticket is available at /orders/%d/ticket", order.ID, order.ID)).
			WithError(err))
		return
	}

	w.Header().Set("Content-Type", h.renderer.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", h.renderer.FileName(tk)))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
