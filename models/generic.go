package models

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationResponseError struct {
	Message string       `json:"message"`
	Detail  []FieldError `json:"detail"`
}
