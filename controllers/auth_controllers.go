package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/pos-till/models"
	"github.com/yeremiapane/pos-till/services"
	"github.com/yeremiapane/pos-till/utils"
)

type AuthController struct {
	Auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{Auth: auth}
}

type employeeView struct {
	models.Employee
	Initials string `json:"initials"`
}

// GetEmployees -> daftar kasir untuk layar pilih user
func (ac *AuthController) GetEmployees(c *gin.Context) {
	employees, err := ac.Auth.Employees(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	out := make([]employeeView, 0, len(employees))
	for _, e := range employees {
		out = append(out, employeeView{Employee: e, Initials: services.Initials(e.Name)})
	}
	utils.RespondJSON(c, http.StatusOK, "List of employees", out)
}

// VerifyPIN -> login kasir dengan PIN 6 digit
func (ac *AuthController) VerifyPIN(c *gin.Context) {
	var body struct {
		UserID int64  `json:"user_id" binding:"required"`
		Name   string `json:"name"`
		PIN    string `json:"pin"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindError(c, err)
		return
	}

	if err := ac.Auth.Login(c.Request.Context(), body.UserID, body.Name, body.PIN); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Login berhasil", gin.H{"user_name": body.Name})
}

func (ac *AuthController) Logout(c *gin.Context) {
	if err := ac.Auth.Logout(); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Logout berhasil", nil)
}
