package http

import "retail-admin-web/internal/form"

type validateReq struct {
	Field  string      `json:"field" binding:"required"`
	Values form.Values `json:"values"`
}

type validateResp struct {
	Field string `json:"field"`
	Error string `json:"error"`
}
