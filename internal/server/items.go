package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	itemdomain "github.com/stocklab/itemd/internal/item/domain"
)

type createItemRequest struct {
	Name        string          `json:"name" binding:"required,min=3,max=100"`
	Description *string         `json:"description" binding:"omitempty,max=500"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Active      *bool           `json:"active"`
}

type updateItemRequest struct {
	Name        string          `json:"name" binding:"required,min=3,max=100"`
	Description *string         `json:"description" binding:"omitempty,max=500"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Active      bool            `json:"active"`
}

func (s *Server) ListItems(c *gin.Context) {
	var query struct {
		Page       int  `form:"page,default=0"`
		OnlyActive bool `form:"only_active,default=false"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	var (
		page *itemdomain.Page
		err  error
	)
	if query.OnlyActive {
		page, err = s.itemSvc.ListActive(c.Request.Context(), query.Page)
	} else {
		page, err = s.itemSvc.ListAll(c.Request.Context(), query.Page)
	}
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": page})
}

func (s *Server) ListLowStockItems(c *gin.Context) {
	threshold := s.runtimeCfg.Get().LowStockThreshold
	if raw := strings.TrimSpace(c.Query("threshold")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			AbortWithError(c, newValidationError("threshold", "invalid_threshold", "invalid threshold"))
			return
		}
		threshold = parsed
	}

	items, err := s.itemSvc.ListLowStock(c.Request.Context(), threshold)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": items})
}

func (s *Server) GetItemByID(c *gin.Context) {
	id, ok := itemID(c)
	if !ok {
		return
	}

	item, err := s.itemSvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": item})
}

func (s *Server) CreateItem(c *gin.Context) {
	var req createItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	item, err := s.itemSvc.Create(c.Request.Context(), itemdomain.CreateRequest{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Active:      req.Active,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": item})
}

func (s *Server) UpdateItem(c *gin.Context) {
	id, ok := itemID(c)
	if !ok {
		return
	}

	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	item, err := s.itemSvc.Update(c.Request.Context(), id, itemdomain.UpdateRequest{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Active:      req.Active,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": item})
}

func (s *Server) PatchItem(c *gin.Context) {
	id, ok := itemID(c)
	if !ok {
		return
	}

	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	if len(fields) == 0 {
		AbortWithError(c, newValidationError("request", "empty_patch", "no fields to update"))
		return
	}

	item, err := s.itemSvc.Patch(c.Request.Context(), id, fields)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": item})
}

func (s *Server) DeleteItem(c *gin.Context) {
	id, ok := itemID(c)
	if !ok {
		return
	}

	if err := s.itemSvc.SoftDelete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) HardDeleteItem(c *gin.Context) {
	id, ok := itemID(c)
	if !ok {
		return
	}

	if err := s.itemSvc.HardDelete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func itemID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Param("id")), 10, 64)
	if err != nil {
		AbortWithError(c, newValidationError("id", "invalid_id", "invalid item id"))
		return 0, false
	}
	return id, true
}
