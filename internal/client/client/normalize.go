package client

import (
	"strings"

	"github.com/WTLInterns/hrm-cli/internal/client/models"
)

// principalPayload mirrors the JSON shape the backend returns for a user.
// The backend is inconsistent about the role field: newer endpoints send
// "role", older ones send "roll". normalize resolves the value in that
// order, "role" first, then "roll".
type principalPayload struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	Roll         string `json:"roll"`
	ProfileImage string `json:"profileImage"`
	Token        string `json:"token"`
}

func (p *principalPayload) normalize() *models.Principal {
	role := p.Role
	if role == "" {
		role = p.Roll
	}
	return &models.Principal{
		ID:           p.ID,
		Name:         p.Name,
		Email:        p.Email,
		Role:         models.Role(strings.ToUpper(role)),
		ProfileImage: p.ProfileImage,
	}
}
