package customers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/crmhub/crm-graphql/app/crm"
	"github.com/crmhub/crm-graphql/models"
)

type CustomerResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

func toResponse(c *models.Customer) CustomerResponse {
	return CustomerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		CreatedAt: c.CreatedAt,
	}
}

// CustomerProvider is satisfied by *crm.Service.
type CustomerProvider interface {
	ListCustomers(ctx context.Context) ([]models.Customer, error)
	CreateCustomer(ctx context.Context, in crm.CustomerInput) (*models.Customer, error)
}

type CustomerHandler struct {
	svc CustomerProvider
}

func NewCustomerHandler(s CustomerProvider) *CustomerHandler {
	return &CustomerHandler{svc: s}
}

func (h *CustomerHandler) Register(r gin.IRouter) {
	r.GET("/customers", h.HandleGetAll)
	r.POST("/customers", h.HandleCreate)
}

func (h *CustomerHandler) HandleGetAll(c *gin.Context) {
	customers, err := h.svc.ListCustomers(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch customers"})
		return
	}

	response := make([]CustomerResponse, len(customers))
	for i := range customers {
		response[i] = toResponse(&customers[i])
	}
	c.JSON(http.StatusOK, response)
}

func (h *CustomerHandler) HandleCreate(c *gin.Context) {
	var input struct {
		Name  string  `json:"name"`
		Email string  `json:"email"`
		Phone *string `json:"phone"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}

	customer, err := h.svc.CreateCustomer(c.Request.Context(), crm.CustomerInput{
		Name:  input.Name,
		Email: input.Email,
		Phone: input.Phone,
	})
	if err != nil {
		status := statusFor(crm.KindOf(err))
		if status == http.StatusInternalServerError {
			_ = c.Error(err)
		}
		c.JSON(status, gin.H{"error": err.Error(), "code": string(crm.KindOf(err))})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Customer created successfully",
		"customer": toResponse(customer),
	})
}

func statusFor(kind crm.Kind) int {
	switch kind {
	case crm.DuplicateEmail:
		return http.StatusConflict
	case crm.InvalidInput, crm.InvalidPhoneFormat:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
