package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/beanboard/menu-service/internal/menu"
	"github.com/beanboard/menu-service/internal/menu/service"
	"github.com/beanboard/menu-service/internal/menu/snapshot"
	"github.com/gin-gonic/gin"
)

// DeletedMessage is the confirmation returned by DELETE whether or not the id existed.
const DeletedMessage = "Deleted successfully"

// RegisterMenuRoutes mounts the menu CRUD endpoints under /api/menu.
func RegisterMenuRoutes(r gin.IRouter, svc service.Service) {
	g := r.Group("/api/menu")

	g.GET("", func(c *gin.Context) {
		list, err := svc.List(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	})

	g.POST("", func(c *gin.Context) {
		var req menu.MenuItem
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		created, err := svc.Create(c.Request.Context(), req)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, created)
	})

	g.PUT("/:id", func(c *gin.Context) {
		id := c.Param("id")
		var req menu.Patch
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := svc.Update(c.Request.Context(), id, req); err != nil {
			writeError(c, err)
			return
		}
		// echo the id plus the submitted fields, not the whole stored document
		out := gin.H{"id": id}
		for k, v := range req.Fields() {
			out[k] = v
		}
		c.JSON(http.StatusOK, out)
	})

	g.DELETE("/:id", func(c *gin.Context) {
		id := c.Param("id")
		if err := svc.Delete(c.Request.Context(), id); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": DeletedMessage, "id": id})
	})
}

// Snapshotter takes one menu snapshot.
type Snapshotter interface {
	Take(ctx context.Context) (*snapshot.Snapshot, error)
}

// RegisterSnapshotRoutes mounts POST /api/menu/snapshots.
func RegisterSnapshotRoutes(r gin.IRouter, s Snapshotter) {
	r.POST("/api/menu/snapshots", func(c *gin.Context) {
		snap, err := s.Take(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, snap)
	})
}

// writeError converts a service error into the uniform {"error": msg} body.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, menu.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, menu.ErrNotFound):
		status = http.StatusNotFound
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
