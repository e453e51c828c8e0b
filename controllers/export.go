package controllers

import (
	"fmt"
	"listitapi/models"
	"log"
	"net/http"
	"time"

	"github.com/360EntSecGroup-Skylar/excelize/v2"
	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"
)

func (api *API) ExportProducts(c *gin.Context) {
	products, err := api.fetchProducts("", nil)
	if err != nil {
		log.Println(err)
		sendError(c, http.StatusInternalServerError, err.Error())
		return
	}

	handleExcelListings(c, products)
}

func handleExcelListings(c *gin.Context, products []models.ProductResponse) {
	if len(products) == 0 {
		sendError(c, http.StatusNotFound, "listings-not-found")
		return
	}

	f := excelize.NewFile()

	sheet := "Listings"
	f.NewSheet(sheet)
	// delete default sheet
	f.DeleteSheet("Sheet1")

	err := f.SetColWidth(sheet, "A", "F", 50)
	if err != nil {
		sendError(c, http.StatusInternalServerError, err.Error())
		return
	}

	headerStyle, err := f.NewStyle(s1)
	if err != nil {
		sendError(c, http.StatusInternalServerError, err.Error())
		return
	}

	dataStyle, err := f.NewStyle(s2)
	if err != nil {
		sendError(c, http.StatusInternalServerError, err.Error())
		return
	}

	streamWriter, err := f.NewStreamWriter(sheet)
	if err != nil {
		sendError(c, http.StatusInternalServerError, err.Error())
		return
	}

	if err = streamWriter.SetRow("A1", []interface{}{
		excelize.Cell{StyleID: headerStyle, Value: "Name"},
		excelize.Cell{StyleID: headerStyle, Value: "Category"},
		excelize.Cell{StyleID: headerStyle, Value: "Condition"},
		excelize.Cell{StyleID: headerStyle, Value: "Amount"},
		excelize.Cell{StyleID: headerStyle, Value: "Sold"},
		excelize.Cell{StyleID: headerStyle, Value: "Posted"}}); err != nil {
		sendError(c, http.StatusInternalServerError, err.Error())
		return
	}

	for n, product := range products {
		amountFormatted := fmt.Sprintf("$%s", humanize.Commaf(product.Amount))

		row := make([]interface{}, 6)
		row[0] = excelize.Cell{StyleID: dataStyle, Value: product.Name}
		row[1] = excelize.Cell{StyleID: dataStyle, Value: product.Category.Name}
		row[2] = excelize.Cell{StyleID: dataStyle, Value: product.Condition}
		row[3] = excelize.Cell{StyleID: dataStyle, Value: amountFormatted}
		row[4] = excelize.Cell{StyleID: dataStyle, Value: product.Sold}
		row[5] = excelize.Cell{StyleID: dataStyle, Value: product.Posted.Format("2006-01-02 15:04:05")}

		cell, _ := excelize.CoordinatesToCellName(1, n+2)
		if err = streamWriter.SetRow(cell, row); err != nil {
			sendError(c, http.StatusInternalServerError, err.Error())
			return
		}
	}

	if err := streamWriter.Flush(); err != nil {
		sendError(c, http.StatusInternalServerError, err.Error())
		return
	}

	fileName := fmt.Sprintf("report_listings_%s.xlsx", time.Now().UTC().Format("20060102_150405"))

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment;filename=\""+fileName+"\"")

	if _, err := f.WriteTo(c.Writer); err != nil {
		sendError(c, http.StatusInternalServerError, err.Error())
		return
	}

}
