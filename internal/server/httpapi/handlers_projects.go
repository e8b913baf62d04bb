package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/dmitrijs2005/listkeeper/internal/common"
)

func (s *Server) handleCreateProject(ctx context.Context, c *app.RequestContext) {
	var req ProjectRequest
	if err := c.BindAndValidate(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.H{"error": "invalid request body"})
		return
	}

	project, err := s.projects.Create(ctx, authUserID(c),
		req.Title, req.Description, req.Priority, req.Image, req.Pinned)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.H{
		"success": true,
		"id":      project.ID,
		"message": "project created",
	})
}

func (s *Server) handleListProjects(ctx context.Context, c *app.RequestContext) {
	items, err := s.projects.List(ctx, authUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	payload := make([]ProjectPayload, 0, len(items))
	for _, p := range items {
		payload = append(payload, toProjectPayload(p))
	}

	c.JSON(http.StatusOK, utils.H{"success": true, "items": payload})
}

func (s *Server) handleUpdateProject(ctx context.Context, c *app.RequestContext) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, common.ErrorNotFound)
		return
	}

	var req ProjectRequest
	if err := c.BindAndValidate(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.H{"error": "invalid request body"})
		return
	}

	err = s.projects.Update(ctx, authUserID(c), id,
		req.Title, req.Description, req.Priority, req.Image, req.Pinned, req.OrderIndex)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.H{"success": true, "message": "project updated"})
}

func (s *Server) handleDeleteProject(ctx context.Context, c *app.RequestContext) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, common.ErrorNotFound)
		return
	}

	if err := s.projects.Delete(ctx, authUserID(c), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.H{"success": true, "message": "project deleted"})
}

func (s *Server) handleDeleteAllProjects(ctx context.Context, c *app.RequestContext) {
	count, err := s.projects.DeleteAll(ctx, authUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.H{
		"success": true,
		"deleted": count,
		"message": fmt.Sprintf("%d project(s) deleted", count),
	})
}

func (s *Server) handleReorderProjects(ctx context.Context, c *app.RequestContext) {
	var req ReorderRequest
	if err := c.BindAndValidate(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.H{"error": "invalid request body"})
		return
	}

	if err := s.projects.Reorder(ctx, authUserID(c), req.Order); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.H{"success": true, "message": "order updated"})
}
