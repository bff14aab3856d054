package http

import (
	"errors"

	"github.com/gin-gonic/gin"

	"retail-admin-web/internal/form"
	"retail-admin-web/pkg/response"
)

const (
	MsgUnknownForm  = "formulario desconocido"
	MsgUnknownField = "campo desconocido"
)

var errBadRequest = errors.New("solicitud inválida")

// Validate godoc
// @Summary     Validate one form field
// @Description Runs the field rules of a named form as when the field loses focus. Cross-field rules see every submitted value.
// @Tags        Forms
// @Accept      json
// @Produce     json
// @Param       form path string      true "Form name (login, registro, products, categories, users, compra)"
// @Param       body body validateReq true "Field name and current form values"
// @Success     200  {object} validateResp
// @Failure     400  {object} response.Resp "Bad Request"
// @Failure     404  {object} response.Resp "Unknown form"
// @Failure     422  {object} response.Resp "Unknown field"
// @Failure     500  {object} response.Resp "Internal error"
// @Router      /api/forms/{form}/validate [POST]
func (h *handler) Validate(c *gin.Context) {
	ctx := c.Request.Context()

	f, ok := h.lookup(c.Param("form"))
	if !ok {
		response.NotFound(c, MsgUnknownForm)
		return
	}

	var req validateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Debugf(ctx, "validation.http.Validate bind: %v", err)
		response.Error(c, errBadRequest, nil)
		return
	}
	if _, ok := f.Field(req.Field); !ok {
		response.Invalid(c, MsgUnknownField, map[string]string{req.Field: MsgUnknownField})
		return
	}

	st := f.Restore(nil, req.Values)
	st, _ = f.Update(st, form.Blurred{Name: req.Field})

	response.OK(c, validateResp{Field: req.Field, Error: st.Visible(req.Field)})
}
