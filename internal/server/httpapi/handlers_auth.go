package httpapi

import (
	"context"
	"net/http"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/utils"
)

func (s *Server) handleRegister(ctx context.Context, c *app.RequestContext) {
	var req RegisterRequest
	if err := c.BindAndValidate(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.H{"error": "invalid request body"})
		return
	}

	// identifiers only, never the password itself
	s.logger.Debug(ctx, "register request",
		"username", req.Username, "email", req.Email, "password_len", len(req.Password))

	user, token, err := s.users.Register(ctx, req.Username, req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.H{
		"success": true,
		"token":   token,
		"user":    toUserPayload(user),
	})
}

func (s *Server) handleLogin(ctx context.Context, c *app.RequestContext) {
	var req LoginRequest
	if err := c.BindAndValidate(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.H{"error": "invalid request body"})
		return
	}

	s.logger.Debug(ctx, "login request",
		"email", req.Email, "password_len", len(req.Password))

	user, token, err := s.users.Login(ctx, c.ClientIP(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.H{
		"success": true,
		"token":   token,
		"user":    toUserPayload(user),
	})
}
