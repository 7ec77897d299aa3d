package ticketing

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"festly/internal/shared/utils/response"
)

type Controller interface {
	ListTicketTypes(c *gin.Context)
	PurchaseTicket(c *gin.Context)
	CancelTicket(c *gin.Context)
	ListMyTickets(c *gin.Context)
	GetTicketQR(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

// ListTicketTypes godoc
// @Summary List purchasable ticket types with live remaining stock
// @Tags tickets
// @Produce json
// @Router /tickets/types [get]
func (ctrl *controller) ListTicketTypes(c *gin.Context) {
	items, err := ctrl.service.ListTicketTypes(c.Request.Context())
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to fetch ticket types", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Ticket types retrieved successfully", items, nil)
}

// PurchaseTicket godoc
// @Summary Purchase one ticket of the given type
// @Tags tickets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body PurchaseRequest true "purchase payload"
// @Router /tickets/purchase [post]
func (ctrl *controller) PurchaseTicket(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	ticketTypeID, err := uuid.Parse(req.TicketTypeID)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid ticket type ID", nil, nil)
		return
	}

	ticket, err := ctrl.service.PurchaseTicket(c.Request.Context(), userID, ticketTypeID)
	if err != nil {
		status, message := purchaseErrorStatus(err)
		response.RespondJSON(c, "error", status, message, nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Ticket purchased successfully", ticket.ToResponse(), nil)
}

// CancelTicket godoc
// @Summary Cancel a valid ticket and free its stock
// @Tags tickets
// @Produce json
// @Security BearerAuth
// @Param id path string true "ticket id"
// @Router /tickets/{id}/cancel [post]
func (ctrl *controller) CancelTicket(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ticketID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid ticket ID", nil, nil)
		return
	}

	if err := ctrl.service.CancelTicket(c.Request.Context(), userID, ticketID); err != nil {
		if errors.Is(err, ErrTicketNotFound) {
			response.RespondJSON(c, "error", http.StatusNotFound, "Ticket not found or already cancelled", nil, nil)
			return
		}
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to cancel ticket", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Ticket cancelled successfully", nil, nil)
}

// ListMyTickets godoc
// @Summary List the caller's valid tickets
// @Tags tickets
// @Produce json
// @Security BearerAuth
// @Router /tickets/mine [get]
func (ctrl *controller) ListMyTickets(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	tickets, err := ctrl.service.ListUserValidTickets(c.Request.Context(), userID)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to fetch tickets", nil, nil)
		return
	}

	resp := make([]TicketResponse, 0, len(tickets))
	for i := range tickets {
		resp = append(resp, tickets[i].ToResponse())
	}

	response.RespondJSON(c, "success", http.StatusOK, "Tickets retrieved successfully", resp, nil)
}

// GetTicketQR godoc
// @Summary Render a ticket's redemption code as a QR PNG
// @Tags tickets
// @Produce png
// @Security BearerAuth
// @Param id path string true "ticket id"
// @Param size query int false "image size in pixels"
// @Router /tickets/{id}/qr [get]
func (ctrl *controller) GetTicketQR(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ticketID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid ticket ID", nil, nil)
		return
	}

	size, _ := strconv.Atoi(c.DefaultQuery("size", "256"))

	png, err := ctrl.service.RenderTicketQR(c.Request.Context(), userID, ticketID, size)
	if err != nil {
		if errors.Is(err, ErrTicketNotFound) {
			response.RespondJSON(c, "error", http.StatusNotFound, "Ticket not found or already cancelled", nil, nil)
			return
		}
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to render QR code", nil, nil)
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}

func purchaseErrorStatus(err error) (int, string) {
	var venueErr *VenueCapacityError
	switch {
	case errors.Is(err, ErrTicketTypeNotFound):
		return http.StatusNotFound, "Ticket type not found"
	case errors.Is(err, ErrDuplicateActiveTicket):
		return http.StatusConflict, "You already hold a valid ticket; cancel it first"
	case errors.Is(err, ErrCapacityExhausted):
		return http.StatusConflict, "Sold out (ticket limit reached)"
	case errors.As(err, &venueErr):
		return http.StatusConflict, "Sold out for " + venueErr.DayName + " (venue capacity reached)"
	case errors.Is(err, ErrSalesNotOpen):
		return http.StatusForbidden, "Sales have not started yet for this ticket"
	case errors.Is(err, ErrSalesClosed):
		return http.StatusForbidden, "Sales have ended for this ticket"
	default:
		return http.StatusInternalServerError, "Failed to purchase ticket"
	}
}

// currentUserID extracts the authenticated user id set by the JWT
// middleware; it writes the error response itself when absent or malformed.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	raw, exists := c.Get("user_id")
	if !exists {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "Not authenticated", nil, nil)
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(raw.(string))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Invalid user ID format", nil, nil)
		return uuid.Nil, false
	}
	return userID, true
}
