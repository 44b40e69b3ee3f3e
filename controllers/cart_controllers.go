package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/pos-till/models"
	"github.com/yeremiapane/pos-till/services"
	"github.com/yeremiapane/pos-till/utils"
)

type CartController struct {
	Cart *services.CartBuilder
}

func NewCartController(cart *services.CartBuilder) *CartController {
	return &CartController{Cart: cart}
}

type cartView struct {
	Lines []models.CartLine `json:"lines"`
	models.CartTotals
}

func (cc *CartController) view() cartView {
	return cartView{Lines: cc.Cart.Lines(), CartTotals: cc.Cart.ComputeTotals()}
}

func (cc *CartController) GetCart(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "Cart", cc.view())
}

// AddItem -> tambah produk, atau qty+1 kalau sudah ada di keranjang
func (cc *CartController) AddItem(c *gin.Context) {
	var body struct {
		ID       int64         `json:"id"`
		Name     string        `json:"name" binding:"required"`
		Price    models.Amount `json:"price"`
		Image    string        `json:"image"`
		Category string        `json:"category"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindError(c, err)
		return
	}
	if body.ID <= 0 {
		respondServiceError(c, &services.ValidationError{Field: "id", Message: "wajib diisi"})
		return
	}
	if body.Price.Int64() < 0 {
		respondServiceError(c, &services.ValidationError{Field: "price", Message: "tidak boleh negatif"})
		return
	}

	p := models.Product{ID: body.ID, Name: body.Name, Price: body.Price, Image: body.Image}
	if body.Category != "" {
		p.Category = &models.Category{Name: body.Category}
	}
	cc.Cart.AddItem(p)
	utils.RespondJSON(c, http.StatusOK, p.Name+" ditambahkan", cc.view())
}

// DecreaseItem -> qty-1, baris dihapus kalau qty habis
func (cc *CartController) DecreaseItem(c *gin.Context) {
	productID, ok := int64Param(c, "product_id")
	if !ok {
		return
	}
	cc.Cart.DecreaseItem(productID)
	utils.RespondJSON(c, http.StatusOK, "Cart updated", cc.view())
}

func (cc *CartController) ClearCart(c *gin.Context) {
	cc.Cart.Clear()
	utils.RespondJSON(c, http.StatusOK, "Cart dikosongkan", cc.view())
}
