package controllers

import (
	"listitapi/models"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

func (api *API) PostProductPhoto(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		sendError(c, http.StatusBadRequest, "invalid-id")
		return
	}

	var photo models.ProductPhoto
	if err := c.ShouldBindJSON(&photo); err != nil {
		log.Println(err)
		sendError(c, http.StatusBadRequest, err.Error())
		return
	}

	if photo.Url == "" {
		sendError(c, http.StatusBadRequest, "missing-url")
		return
	}

	// path wins over whatever the body carried
	photo.ProductId = id

	err = api.Db.QueryRow(`
		INSERT INTO product_photos (name, url, active, product_id)
		VALUES ($1, $2, $3, $4)
		RETURNING product_photo_id
	`, photo.Name, photo.Url, photo.Active, photo.ProductId).Scan(&photo.ProductPhotoId)
	if err != nil {
		log.Println(err)
		sendError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, photo)
}

func (api *API) RemoveProductPhoto(c *gin.Context) {
	if _, err := strconv.Atoi(c.Param("id")); err != nil {
		sendError(c, http.StatusBadRequest, "invalid-id")
		return
	}

	photoId, err := strconv.Atoi(c.Param("photoId"))
	if err != nil {
		sendError(c, http.StatusBadRequest, "invalid-photo-id")
		return
	}

	tag, err := api.Db.Exec(`DELETE FROM product_photos WHERE product_photo_id = $1`, photoId)
	if err != nil {
		log.Println(err)
		sendError(c, http.StatusInternalServerError, err.Error())
		return
	}

	if t, _ := tag.RowsAffected(); t == 0 {
		sendError(c, http.StatusNotFound, "photo-not-found")
		return
	}

	c.Status(http.StatusOK)
}
