package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ogurasousui/codex-employee-records/internal/core/employee"
	"github.com/rs/zerolog"
)

// EmployeeHandler は /api/employees の HTTP 実装です。
type EmployeeHandler struct {
	svc    employee.UseCase
	logger zerolog.Logger
}

// NewEmployeeHandler は EmployeeHandler を生成します。
func NewEmployeeHandler(svc employee.UseCase, logger zerolog.Logger) *EmployeeHandler {
	return &EmployeeHandler{svc: svc, logger: logger}
}

// Register はルーティングを登録します。
func (h *EmployeeHandler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.ListEmployees)
	rg.POST("", h.CreateEmployee)
	rg.GET("/:empId", h.GetEmployee)
	rg.PUT("/:empId", h.UpdateEmployee)
	rg.DELETE("/:empId", h.DeleteEmployee)
}

// ListEmployees は社員の一覧を返します。
func (h *EmployeeHandler) ListEmployees(c *gin.Context) {
	list, err := h.svc.ListEmployees(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toEmployeeResponses(list))
}

// GetEmployee は社員番号で社員を返します。
func (h *EmployeeHandler) GetEmployee(c *gin.Context) {
	found, err := h.svc.GetEmployee(c.Request.Context(), employee.GetEmployeeInput{EmpID: c.Param("empId")})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toEmployeeResponse(found))
}

// CreateEmployee は社員を作成します。
func (h *EmployeeHandler) CreateEmployee(c *gin.Context) {
	var req employeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	in, err := req.toCreateInput()
	if err != nil {
		h.fail(c, err)
		return
	}

	created, err := h.svc.CreateEmployee(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.logger.Info().Str("emp_id", created.EmpID).Int64("id", created.ID).Msg("employee created")
	c.JSON(http.StatusOK, toEmployeeResponse(created))
}

// UpdateEmployee は社員の全項目を上書きします。
func (h *EmployeeHandler) UpdateEmployee(c *gin.Context) {
	var req employeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	in, err := req.toUpdateInput(c.Param("empId"))
	if err != nil {
		h.fail(c, err)
		return
	}

	updated, err := h.svc.UpdateEmployee(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.logger.Info().Str("emp_id", updated.EmpID).Msg("employee updated")
	c.JSON(http.StatusOK, toEmployeeResponse(updated))
}

// DeleteEmployee は社員を削除します。存在しない社員番号でも 204 を返します。
func (h *EmployeeHandler) DeleteEmployee(c *gin.Context) {
	empID := c.Param("empId")
	if err := h.svc.DeleteEmployee(c.Request.Context(), employee.DeleteEmployeeInput{EmpID: empID}); err != nil {
		h.fail(c, err)
		return
	}

	h.logger.Info().Str("emp_id", empID).Msg("employee deleted")
	c.Status(http.StatusNoContent)
}

func (h *EmployeeHandler) fail(c *gin.Context, err error) {
	status, body := toHTTPError(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
	}
	c.AbortWithStatusJSON(status, body)
}
