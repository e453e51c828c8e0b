package models

import "time"

// Product is the persisted listing shape. Posted and UserId are always
// assigned server-side on create; Version is bumped by the store on every
// update.
type Product struct {
	ProductId     int            `json:"ProductId"`
	Name          string         `json:"Name"`
	Description   string         `json:"Description"`
	Posted        time.Time      `json:"Posted"`
	Sold          bool           `json:"Sold"`
	Active        bool           `json:"Active"`
	UserId        string         `json:"UserId"`
	Amount        float64        `json:"Amount"`
	Condition     string         `json:"Condition"`
	CategoryId    int            `json:"CategoryId"`
	Category      *Category      `json:"Category"`
	ProductPhotos []ProductPhoto `json:"ProductPhotos"`
}

type Category struct {
	CategoryId int    `json:"CategoryId"`
	Name       string `json:"Name"`
}

type ProductPhoto struct {
	ProductPhotoId int    `json:"ProductPhotoId"`
	Name           string `json:"Name"`
	Url            string `json:"Url"`
	Active         bool   `json:"Active"`
	ProductId      int    `json:"ProductId"`
}

// Response projections. Field names and order are part of the client
// contract, do not rename.

type ProductResponse struct {
	ProductId   int              `json:"ProductId"`
	Name        string           `json:"Name"`
	Description string           `json:"Description"`
	Posted      time.Time        `json:"Posted"`
	Sold        bool             `json:"Sold"`
	Active      bool             `json:"Active"`
	UserId      string           `json:"UserId"`
	Amount      float64          `json:"Amount"`
	Condition   string           `json:"Condition"`
	Category    CategoryResponse `json:"Category"`
	Photos      []PhotoResponse  `json:"Photos"`
	ProductTag  []TagResponse    `json:"ProductTag"`
}

type CategoryResponse struct {
	Name       string `json:"Name"`
	CategoryId int    `json:"CategoryId"`
}

type PhotoResponse struct {
	Name   string `json:"Name"`
	Url    string `json:"Url"`
	Active bool   `json:"Active"`
}

type TagResponse struct {
	Name string `json:"Name"`
}

type ProductDetailResponse struct {
	ProductId   int                   `json:"ProductId"`
	Name        string                `json:"Name"`
	Amount      float64               `json:"Amount"`
	Condition   string                `json:"Condition"`
	Description string                `json:"Description"`
	Seller      SellerResponse        `json:"Seller"`
	Category    CategoryResponse      `json:"Category"`
	Photos      []PhotoDetailResponse `json:"Photos"`
}

type SellerResponse struct {
	UserName    string `json:"UserName"`
	Id          string `json:"Id"`
	ZipCode     string `json:"ZipCode"`
	PhoneNumber string `json:"PhoneNumber"`
}

type PhotoDetailResponse struct {
	Name           string `json:"Name"`
	Url            string `json:"Url"`
	ProductPhotoId int    `json:"ProductPhotoId"`
	Active         bool   `json:"Active"`
}
