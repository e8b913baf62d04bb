package httpapi

import (
	"time"

	"github.com/dmitrijs2005/listkeeper/internal/server/models"
)

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ProjectRequest carries create/update payloads. The wire names (texto,
// image_path) are kept for compatibility with the existing frontend. A nil
// OrderIndex on update keeps the stored position.
type ProjectRequest struct {
	Title       string `json:"texto"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	Image       string `json:"image_path"`
	Pinned      bool   `json:"pinned"`
	OrderIndex  *int64 `json:"order_index"`
}

type ReorderRequest struct {
	Order []int64 `json:"order"`
}

type UserPayload struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type ProjectPayload struct {
	ID          int64     `json:"id"`
	Title       string    `json:"texto"`
	Description string    `json:"description"`
	Priority    string    `json:"priority"`
	Image       string    `json:"image_path"`
	Pinned      bool      `json:"pinned"`
	OrderIndex  int64     `json:"order_index"`
	CreatedAt   time.Time `json:"created_at"`
}

func toUserPayload(u *models.User) UserPayload {
	return UserPayload{ID: u.ID, Username: u.Username, Email: u.Email}
}

func toProjectPayload(p *models.Project) ProjectPayload {
	return ProjectPayload{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Priority:    p.Priority,
		Image:       p.Image,
		Pinned:      p.Pinned,
		OrderIndex:  p.OrderIndex,
		CreatedAt:   p.CreatedAt,
	}
}
