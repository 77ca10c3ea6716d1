package dto

import "github.com/jhoicas/stockroom-api/internal/domain/entity"

// ToProductResponse incluye el campo derivado isLowStock.
func ToProductResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		SKU:         p.SKU,
		Quantity:    p.Quantity,
		Unit:        p.Unit,
		MinQuantity: p.MinQuantity,
		Category:    p.Category,
		Location:    p.Location,
		Notes:       p.Notes,
		IsActive:    p.IsActive,
		IsLowStock:  p.IsLowStock(),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func ToProductResponses(items []*entity.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(items))
	for _, p := range items {
		out = append(out, ToProductResponse(p))
	}
	return out
}

func ToMovementResponse(m *entity.Movement) MovementResponse {
	r := MovementResponse{
		ID:                 m.ID,
		ProductID:          m.ProductID,
		ProductName:        m.ProductName,
		UserID:             m.UserID,
		Username:           m.Username,
		OperationType:      string(m.OperationType),
		QuantityChange:     m.QuantityChange,
		OldQuantity:        m.OldQuantity,
		NewQuantity:        m.NewQuantity,
		Timestamp:          m.Timestamp,
		Details:            m.Details,
		IsUndone:           m.IsUndone,
		OriginalMovementID: m.OriginalMovementID,
	}
	if m.Original != nil {
		r.Original = &MovementRefResponse{
			ID:             m.Original.ID,
			OperationType:  string(m.Original.OperationType),
			QuantityChange: m.Original.QuantityChange,
		}
	}
	return r
}

func ToMovementResponses(items []*entity.Movement) []MovementResponse {
	out := make([]MovementResponse, 0, len(items))
	for _, m := range items {
		out = append(out, ToMovementResponse(m))
	}
	return out
}

// ToUserResponse nunca expone el hash del password.
func ToUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Role:      string(u.Role),
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
