package request

import "github.com/sangkips/quotedesk-api/internal/application/service"

// PartyRequest is the body of both create and update party requests
type PartyRequest struct {
	Name    string  `json:"name" binding:"required,max=255"`
	Phone   string  `json:"phone" binding:"required,max=50"`
	Address *string `json:"address"`
	Email   *string `json:"email" binding:"omitempty,email"`
}

// CreateInput converts the request into service input
func (r *PartyRequest) CreateInput() *service.CreatePartyInput {
	return &service.CreatePartyInput{
		Name:    r.Name,
		Phone:   r.Phone,
		Address: r.Address,
		Email:   r.Email,
	}
}
