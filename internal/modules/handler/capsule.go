package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hostforge/hostforge/internal/modules/model"
	"github.com/hostforge/hostforge/internal/modules/serializer"
	"github.com/hostforge/hostforge/internal/modules/service"
)

type CapsuleHandler struct {
	svc service.CapsuleService
}

func NewCapsuleHandler(s service.CapsuleService) *CapsuleHandler {
	return &CapsuleHandler{svc: s}
}

type ListCapsulesReq struct {
	Status string `form:"status,default=all" example:"running"`
	Search string `form:"search" example:"storefront"`
}

// ListCapsules returns the filtered, ordered capsule collection.
func (h *CapsuleHandler) ListCapsules(c *gin.Context) {
	req := ListCapsulesReq{}
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	filter, ok := model.ParseStatusFilter(req.Status)
	if !ok {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("unknown status filter", nil))
		return
	}

	capsules, err := h.svc.List(c.Request.Context(), service.ListCapsulesInput{
		Filter: filter,
		Search: req.Search,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.InternalErr("", err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: capsules})
}

type CreateCapsuleReq struct {
	Name      string `json:"name" binding:"required" example:"My Shop"`
	Domain    string `json:"domain" example:"myshop.example.com"`
	Blueprint string `json:"blueprint" binding:"required,oneof=wordpress nodejs laravel static docker" example:"wordpress"`
	Region    string `json:"region" example:"eu-central"`
}

// CreateCapsule provisions a new capsule from a blueprint.
func (h *CapsuleHandler) CreateCapsule(c *gin.Context) {
	req := CreateCapsuleReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	blueprint, ok := model.ParseBlueprint(req.Blueprint)
	if !ok {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("unknown blueprint", nil))
		return
	}

	capsule, err := h.svc.Create(c.Request.Context(), service.CreateCapsuleInput{
		Name:      req.Name,
		Domain:    req.Domain,
		Blueprint: blueprint,
		Region:    req.Region,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	c.JSON(http.StatusCreated, serializer.Response{Data: capsule})
}

// GetCapsule returns one capsule by id.
func (h *CapsuleHandler) GetCapsule(c *gin.Context) {
	capsule, err := h.svc.Get(c.Request.Context(), c.Param("capsule_id"))
	if err != nil {
		if errors.Is(err, service.ErrCapsuleNotFound) {
			c.JSON(http.StatusNotFound, serializer.NotFoundErr("capsule not found", nil))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.InternalErr("", err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: capsule})
}

type PatchCapsuleReq struct {
	Name        *string `json:"name"`
	Domain      *string `json:"domain"`
	Blueprint   *string `json:"blueprint"`
	Status      *string `json:"status"`
	Region      *string `json:"region"`
	IP          *string `json:"ip"`
	HealthScore *int    `json:"health_score"`
}

// PatchCapsule shallow-merges the supplied fields over the stored record.
func (h *CapsuleHandler) PatchCapsule(c *gin.Context) {
	req := PatchCapsuleReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	patch := model.CapsulePatch{
		Name:        req.Name,
		Domain:      req.Domain,
		Region:      req.Region,
		IP:          req.IP,
		HealthScore: req.HealthScore,
	}
	if req.Blueprint != nil {
		blueprint, ok := model.ParseBlueprint(*req.Blueprint)
		if !ok {
			c.JSON(http.StatusBadRequest, serializer.ParamErr("unknown blueprint", nil))
			return
		}
		patch.Blueprint = &blueprint
	}
	if req.Status != nil {
		status, ok := model.ParseStatus(*req.Status)
		if !ok {
			c.JSON(http.StatusBadRequest, serializer.ParamErr("unknown status", nil))
			return
		}
		patch.Status = &status
	}

	capsule, err := h.svc.Patch(c.Request.Context(), c.Param("capsule_id"), patch)
	if err != nil {
		if errors.Is(err, service.ErrCapsuleNotFound) {
			c.JSON(http.StatusNotFound, serializer.NotFoundErr("capsule not found", nil))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.InternalErr("", err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: capsule})
}

// DeleteCapsule removes a capsule; deleting an absent id is a no-op.
func (h *CapsuleHandler) DeleteCapsule(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("capsule_id")); err != nil {
		c.JSON(http.StatusInternalServerError, serializer.InternalErr("", err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Msg: "deleted"})
}
