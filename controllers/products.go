package controllers

import (
	"database/sql"
	"fmt"
	"listitapi/models"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
)

var productSelect = `SELECT
		p.product_id, p.name, p.description, p.posted, p.sold, p.active,
		p.user_id, p.amount, p.condition, c.name, c.category_id
	FROM products p
	JOIN categories c
	ON p.category_id = c.category_id`

func (api *API) GetProducts(c *gin.Context) {
	products, err := api.fetchProducts("", nil)
	if err != nil {
		log.Println(err)
		sendError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, products)
}

func (api *API) SearchProducts(c *gin.Context) {
	term := c.Query("term")

	filterQ := " WHERE (p.name ILIKE $1 OR c.name ILIKE $1 OR p.description ILIKE $1)"
	products, err := api.fetchProducts(filterQ, []interface{}{"%" + term + "%"})
	if err != nil {
		log.Println(err)
		sendError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, products)
}

func (api *API) GetProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		sendError(c, http.StatusBadRequest, "invalid-id")
		return
	}

	var detail models.ProductDetailResponse
	var description, condition sql.NullString
	var zipCode, phoneNumber sql.NullString

	err = api.Db.QueryRow(`SELECT
			p.product_id, p.name, p.amount, p.condition, p.description,
			u.user_name, u.id, u.zip_code, u.phone_number,
			c.name, c.category_id
		FROM products p
		JOIN users u
		ON p.user_id = u.id
		JOIN categories c
		ON p.category_id = c.category_id
		WHERE p.product_id = $1`, id).
		Scan(&detail.ProductId, &detail.Name, &detail.Amount, &condition, &description,
			&detail.Seller.UserName, &detail.Seller.Id, &zipCode, &phoneNumber,
			&detail.Category.Name, &detail.Category.CategoryId)

	if err != nil {
		if err == sql.ErrNoRows {
			sendError(c, http.StatusNotFound, "product-not-found")
			return
		}
		log.Println(err)
		sendError(c, http.StatusInternalServerError, err.Error())
		return
	}

	detail.Condition = condition.String
	detail.Description = description.String
	detail.Seller.ZipCode = zipCode.String
	detail.Seller.PhoneNumber = phoneNumber.String
	detail.Photos = []models.PhotoDetailResponse{}

	rows, err := api.Db.Query(`SELECT product_photo_id, name, url, active FROM product_photos WHERE product_id = $1`, id)
	if err != nil {
		log.Println(err)
		sendError(c, http.StatusInternalServerError, err.Error())
		return
	}

	defer rows.Close()

	for rows.Next() {
		var photo models.PhotoDetailResponse
		var name sql.NullString
		if err := rows.Scan(&photo.ProductPhotoId, &name, &photo.Url, &photo.Active); err != nil {
			log.Println(err)
			sendError(c, http.StatusInternalServerError, err.Error())
			return
		}
		photo.Name = name.String
		detail.Photos = append(detail.Photos, photo)
	}

	c.JSON(http.StatusOK, detail)
}

func (api *API) PutProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		sendError(c, http.StatusBadRequest, "invalid-id")
		return
	}

	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		log.Println(err)
		sendError(c, http.StatusBadRequest, err.Error())
		return
	}

	errs := validateProduct(product)
	if product.Category == nil {
		errs = append(errs, models.FieldError{Field: "Category", Message: "missing-category"})
	}

	if len(errs) > 0 {
		c.JSON(http.StatusBadRequest, models.ValidationResponseError{
			Message: "validation-error",
			Detail:  errs,
		})
		return
	}

	if id != product.ProductId {
		sendError(c, http.StatusBadRequest, "id-mismatch")
		return
	}

	tx, err := api.Db.Begin()
	if err != nil {
		log.Println(err)
		sendError(c, http.StatusInternalServerError, err.Error())
		return
	}

	defer tx.Rollback()

	tag, err := tx.Exec(`
		UPDATE products
		SET name = $1, description = $2, amount = $3, condition = $4, category_id = $5, version = version + 1
		WHERE product_id = $6
	`, product.Name, product.Description, product.Amount, product.Condition, product.Category.CategoryId, id)
	if err != nil {
		api.handleSaveError(c, id, err)
		return
	}

	if t, _ := tag.RowsAffected(); t == 0 {
		sendError(c, http.StatusNotFound, "product-not-found")
		return
	}

	// wholesale photo replacement
	if _, err := tx.Exec(`DELETE FROM product_photos WHERE product_id = $1`, id); err != nil {
		api.handleSaveError(c, id, err)
		return
	}

	for _, photo := range product.ProductPhotos {
		if _, err := tx.Exec(`
			INSERT INTO product_photos (name, url, active, product_id)
			VALUES ($1, $2, $3, $4)
		`, photo.Name, photo.Url, photo.Active, id); err != nil {
			api.handleSaveError(c, id, err)
			return
		}
	}

	if err := tx.Commit(); err != nil {
		api.handleSaveError(c, id, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (api *API) PostProduct(c *gin.Context) {
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		log.Println(err)
		sendError(c, http.StatusBadRequest, err.Error())
		return
	}

	categoryId := product.CategoryId
	if categoryId == 0 && product.Category != nil {
		categoryId = product.Category.CategoryId
	}

	errs := validateProduct(product)
	if categoryId < 1 {
		errs = append(errs, models.FieldError{Field: "CategoryId", Message: "missing-category-id"})
	}

	if len(errs) > 0 {
		c.JSON(http.StatusBadRequest, models.ValidationResponseError{
			Message: "validation-error",
			Detail:  errs,
		})
		return
	}

	u := ParsePayload(c)

	var userId string
	err := api.Db.QueryRow(`SELECT id FROM users WHERE user_name = $1 AND NOT deleted`, u.UserName).Scan(&userId)
	if err != nil {
		if err == sql.ErrNoRows {
			log.Println("no user row for principal", u.UserName)
			sendError(c, http.StatusInternalServerError, "user-not-found")
			return
		}
		log.Println(err)
		sendError(c, http.StatusInternalServerError, err.Error())
		return
	}

	tx, err := api.Db.Begin()
	if err != nil {
		log.Println(err)
		sendError(c, http.StatusInternalServerError, err.Error())
		return
	}

	defer tx.Rollback()

	// Posted and UserId are always server-assigned
	err = tx.QueryRow(`
		INSERT INTO products (name, description, posted, sold, active, user_id, amount, condition, category_id, version)
		VALUES ($1, $2, CURRENT_TIMESTAMP, $3, $4, $5, $6, $7, $8, 1)
		RETURNING product_id, posted
	`, product.Name, product.Description, product.Sold, product.Active, userId,
		product.Amount, product.Condition, categoryId).Scan(&product.ProductId, &product.Posted)
	if err != nil {
		log.Println(err)
		sendError(c, http.StatusInternalServerError, err.Error())
		return
	}

	product.UserId = userId
	product.CategoryId = categoryId

	for i := range product.ProductPhotos {
		photo := &product.ProductPhotos[i]
		photo.ProductId = product.ProductId
		if err := tx.QueryRow(`
			INSERT INTO product_photos (name, url, active, product_id)
			VALUES ($1, $2, $3, $4)
			RETURNING product_photo_id
		`, photo.Name, photo.Url, photo.Active, photo.ProductId).Scan(&photo.ProductPhotoId); err != nil {
			log.Println(err)
			sendError(c, http.StatusInternalServerError, err.Error())
			return
		}
	}

	if err := tx.Commit(); err != nil {
		log.Println(err)
		sendError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.Header("Location", fmt.Sprintf("/api/products/%d", product.ProductId))
	c.JSON(http.StatusCreated, product)
}

func (api *API) DeleteProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		sendError(c, http.StatusBadRequest, "invalid-id")
		return
	}

	tx, err := api.Db.Begin()
	if err != nil {
		log.Println(err)
		sendError(c, http.StatusInternalServerError, err.Error())
		return
	}

	defer tx.Rollback()

	var product models.Product
	var description, condition sql.NullString

	err = tx.QueryRow(`
		SELECT product_id, name, description, posted, sold, active, user_id, amount, condition, category_id
		FROM products
		WHERE product_id = $1
	`, id).Scan(&product.ProductId, &product.Name, &description, &product.Posted, &product.Sold,
		&product.Active, &product.UserId, &product.Amount, &condition, &product.CategoryId)
	if err != nil {
		if err == sql.ErrNoRows {
			sendError(c, http.StatusNotFound, "product-not-found")
			return
		}
		log.Println(err)
		sendError(c, http.StatusInternalServerError, err.Error())
		return
	}

	product.Description = description.String
	product.Condition = condition.String

	// child rows first, the delete is hard
	if _, err := tx.Exec(`DELETE FROM product_photos WHERE product_id = $1`, id); err != nil {
		log.Println(err)
		sendError(c, http.StatusInternalServerError, err.Error())
		return
	}

	if _, err := tx.Exec(`DELETE FROM product_tags WHERE product_id = $1`, id); err != nil {
		log.Println(err)
		sendError(c, http.StatusInternalServerError, err.Error())
		return
	}

	if _, err := tx.Exec(`DELETE FROM products WHERE product_id = $1`, id); err != nil {
		log.Println(err)
		sendError(c, http.StatusInternalServerError, err.Error())
		return
	}

	if err := tx.Commit(); err != nil {
		log.Println(err)
		sendError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, product)
}

func (api *API) fetchProducts(filterQ string, stms []interface{}) ([]models.ProductResponse, error) {
	rows, err := api.Db.Query(productSelect+filterQ, stms...)
	if err != nil {
		log.Println(err)
		return nil, err
	}

	defer rows.Close()

	products := []models.ProductResponse{}
	var ids []int64

	for rows.Next() {
		var product models.ProductResponse
		var description, condition sql.NullString
		err = rows.Scan(&product.ProductId, &product.Name, &description, &product.Posted,
			&product.Sold, &product.Active, &product.UserId, &product.Amount, &condition,
			&product.Category.Name, &product.Category.CategoryId)
		if err != nil {
			log.Println(err)
			return nil, err
		}

		product.Description = description.String
		product.Condition = condition.String
		product.Photos = []models.PhotoResponse{}
		product.ProductTag = []models.TagResponse{}

		products = append(products, product)
		ids = append(ids, int64(product.ProductId))
	}

	if len(ids) == 0 {
		return products, nil
	}

	photos, err := api.loadProductPhotos(ids)
	if err != nil {
		return nil, err
	}

	tags, err := api.loadProductTags(ids)
	if err != nil {
		return nil, err
	}

	for i := range products {
		id := products[i].ProductId
		if p, ok := photos[id]; ok {
			products[i].Photos = p
		}
		if t, ok := tags[id]; ok {
			products[i].ProductTag = t
		}
	}

	return products, nil
}

func (api *API) loadProductPhotos(ids []int64) (map[int][]models.PhotoResponse, error) {
	rows, err := api.Db.Query(`SELECT product_id, name, url, active FROM product_photos WHERE product_id = ANY($1)`, pq.Array(ids))
	if err != nil {
		log.Println(err)
		return nil, err
	}

	defer rows.Close()

	photos := map[int][]models.PhotoResponse{}

	for rows.Next() {
		var productId int
		var photo models.PhotoResponse
		var name sql.NullString
		if err := rows.Scan(&productId, &name, &photo.Url, &photo.Active); err != nil {
			log.Println(err)
			return nil, err
		}
		photo.Name = name.String
		photos[productId] = append(photos[productId], photo)
	}

	return photos, nil
}

func (api *API) loadProductTags(ids []int64) (map[int][]models.TagResponse, error) {
	rows, err := api.Db.Query(`
		SELECT pt.product_id, t.name
		FROM product_tags pt
		JOIN tags t
		ON pt.tag_id = t.tag_id
		WHERE pt.product_id = ANY($1)`, pq.Array(ids))
	if err != nil {
		log.Println(err)
		return nil, err
	}

	defer rows.Close()

	tags := map[int][]models.TagResponse{}

	for rows.Next() {
		var productId int
		var tag models.TagResponse
		if err := rows.Scan(&productId, &tag.Name); err != nil {
			log.Println(err)
			return nil, err
		}
		tags[productId] = append(tags[productId], tag)
	}

	return tags, nil
}

// handleSaveError turns a persist failure into the client-facing signal: a
// serialization conflict on a row that vanished is a 404, on a row that is
// still there a 409, anything else a 500.
func (api *API) handleSaveError(c *gin.Context, id int, err error) {
	log.Println(err)

	if !isConflict(err) {
		sendError(c, http.StatusInternalServerError, err.Error())
		return
	}

	var exists bool
	if checkErr := api.Db.QueryRow(`SELECT EXISTS(SELECT 1 FROM products WHERE product_id = $1)`, id).Scan(&exists); checkErr != nil {
		log.Println(checkErr)
		sendError(c, http.StatusInternalServerError, checkErr.Error())
		return
	}

	if !exists {
		sendError(c, http.StatusNotFound, "product-not-found")
		return
	}

	sendError(c, http.StatusConflict, "conflict")
}

func isConflict(err error) bool {
	if pqErr, ok := err.(*pq.Error); ok {
		return pqErr.Code == "40001" || pqErr.Code == "40P01"
	}
	return false
}

func validateProduct(product models.Product) (errs []models.FieldError) {
	if product.Name == "" {
		errs = append(errs, models.FieldError{Field: "Name", Message: "missing-name"})
	}

	if product.Description == "" {
		errs = append(errs, models.FieldError{Field: "Description", Message: "missing-description"})
	}

	if product.Amount < 0 {
		errs = append(errs, models.FieldError{Field: "Amount", Message: "invalid-amount"})
	}

	if product.Condition == "" {
		errs = append(errs, models.FieldError{Field: "Condition", Message: "missing-condition"})
	}

	return
}
