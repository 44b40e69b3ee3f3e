package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/pos-till/services"
	"github.com/yeremiapane/pos-till/utils"
)

type MenuController struct {
	Catalog *services.CatalogService
}

func NewMenuController(catalog *services.CatalogService) *MenuController {
	return &MenuController{Catalog: catalog}
}

// GetMenu -> ?category=Makanan&q=goreng
func (mc *MenuController) GetMenu(c *gin.Context) {
	menu, err := mc.Catalog.Menu(c.Request.Context(), services.MenuFilter{
		Category: c.Query("category"),
		Query:    c.Query("q"),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of products", menu)
}
