// internal/handlers/order.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/buyx/backend/internal/services"
	"github.com/buyx/backend/internal/utils"
)

type OrderHandler struct {
	orderService *services.OrderService
}

func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

// POST /orders/checkout
func (h *OrderHandler) Checkout(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var delivery services.DeliveryDetails
	if err := c.ShouldBindJSON(&delivery); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	// Validate request
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&delivery)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	order, err := h.orderService.Checkout(userID, &delivery)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyCart):
			utils.BadRequestResponse(c, err.Error(), nil)
		case errors.Is(err, services.ErrInsufficientStock):
			utils.ConflictResponse(c, err.Error())
		default:
			utils.InternalErrorResponse(c, "Failed to place order")
		}
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": "Order placed successfully",
		"order":   order,
	})
}

// POST /orders/buy-now
func (h *OrderHandler) BuyNow(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req services.BuyNowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	// Validate request
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	product, err := h.orderService.BuyNow(userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			utils.NotFoundResponse(c, "Product not found")
		case errors.Is(err, services.ErrOutOfStock), errors.Is(err, services.ErrInsufficientStock):
			utils.BadRequestResponse(c, err.Error(), nil)
		default:
			utils.InternalErrorResponse(c, "Failed to start buy-now")
		}
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":  "Proceed to checkout",
		"product":  product,
		"quantity": req.Quantity,
	})
}

// POST /orders/buy-now/checkout
func (h *OrderHandler) CheckoutBuyNow(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var delivery services.DeliveryDetails
	if err := c.ShouldBindJSON(&delivery); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	// Validate request
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&delivery)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	order, err := h.orderService.CheckoutBuyNow(userID, &delivery)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoSelectionPending):
			utils.BadRequestResponse(c, err.Error(), nil)
		case errors.Is(err, services.ErrNotFound):
			utils.NotFoundResponse(c, "Product not found")
		case errors.Is(err, services.ErrInsufficientStock):
			utils.ConflictResponse(c, err.Error())
		default:
			utils.InternalErrorResponse(c, "Failed to place order")
		}
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": "Order placed successfully",
		"order":   order,
	})
}

// POST /orders/:number/payment
func (h *OrderHandler) ProcessPayment(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	orderNumber := c.Param("number")

	var req services.ProcessPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	// Validate request
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	order, err := h.orderService.ProcessPayment(userID, orderNumber, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPaymentMethodUnsupported):
			// Not a failure: the order is untouched and the client is told
			// which methods work today.
			utils.SuccessResponse(c, gin.H{
				"message": "This payment method is not available yet. Please use Cash on Delivery.",
				"order":   order,
			})
		case errors.Is(err, services.ErrNotFound):
			utils.NotFoundResponse(c, "Order not found")
		case errors.Is(err, services.ErrInvalidTransition):
			utils.BadRequestResponse(c, "Order can no longer be paid", nil)
		default:
			utils.InternalErrorResponse(c, "Failed to process payment")
		}
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": "Order confirmed. Pay on delivery.",
		"order":   order,
	})
}

// GET /orders
func (h *OrderHandler) ListOrders(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	orders, err := h.orderService.GetUserOrders(userID)
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to fetch orders")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"orders": orders,
	})
}

// GET /orders/:number
func (h *OrderHandler) GetOrder(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	order, err := h.orderService.GetUserOrder(userID, c.Param("number"))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.NotFoundResponse(c, "Order not found")
			return
		}
		utils.InternalErrorResponse(c, "Failed to fetch order")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"order": order,
	})
}
