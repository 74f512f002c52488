package handler

import (
	"errors"
	"net/http"

	"github.com/ogurasousui/codex-employee-records/internal/core/employee"
)

func toHTTPError(err error) (int, errorResponse) {
	var verr *employee.ValidationError
	switch {
	case errors.As(err, &verr):
		resp := errorResponse{Error: "validation failed"}
		for _, f := range verr.Fields {
			resp.Fields = append(resp.Fields, fieldErrorResponse{Field: f.Field, Message: f.Message})
		}
		return http.StatusBadRequest, resp
	case errors.Is(err, employee.ErrInvalidEmpID):
		return http.StatusBadRequest, errorResponse{Error: err.Error()}
	case errors.Is(err, employee.ErrEmpIDAlreadyExists):
		return http.StatusConflict, errorResponse{Error: err.Error()}
	case errors.Is(err, employee.ErrEmployeeNotFound):
		return http.StatusNotFound, errorResponse{Error: err.Error()}
	default:
		return http.StatusInternalServerError, errorResponse{Error: "internal server error"}
	}
}
