package controllers

import (
	"errors"
	"listitapi/models"
	"log"
	"net/http"
	"net/mail"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
)

func (api *API) Register(c *gin.Context) {
	var user models.User
	if err := c.ShouldBindJSON(&user); err != nil {
		log.Println(err)
		sendError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := validateUser(user); err != nil {
		log.Println(err)
		sendError(c, http.StatusBadRequest, err.Error())
		return
	}

	var exists bool
	if err := api.Db.QueryRow("SELECT EXISTS(SELECT 1 FROM users WHERE (email = $1 OR user_name = $2) AND NOT deleted)", user.Email, user.UserName).Scan(&exists); err != nil {
		log.Println(err)
		sendError(c, http.StatusInternalServerError, err.Error())
		return
	}

	if exists {
		sendError(c, http.StatusConflict, "user-already-exist")
		return
	}

	id := uuid.Must(uuid.NewV4()).String()

	if _, err := api.Db.Exec(`
		INSERT INTO users (id, user_name, email, password, zip_code, phone_number, created_at, updated_at)
		VALUES ($1, $2, $3, crypt($4, gen_salt('bf', 8)), $5, $6, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
	`, id, user.UserName, user.Email, user.Password, user.ZipCode, user.PhoneNumber); err != nil {
		log.Println(err)
		sendError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, genericOK)
}

func validateUser(user models.User) error {
	if user.UserName == "" {
		return errors.New("missing-user-name")
	}

	if user.Email == "" {
		return errors.New("missing-email")
	}

	if _, err := mail.ParseAddress(user.Email); err != nil {
		log.Println(err)
		return errors.New("invalid-email")
	}

	if user.Password == "" {
		return errors.New("missing-password")
	}

	if len(user.Password) < 8 {
		return errors.New("password-must-be-at-least-8-characters")
	}

	return nil
}
