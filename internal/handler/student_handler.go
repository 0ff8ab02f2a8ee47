package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/edutrack/studentbook/internal/model"
	"github.com/edutrack/studentbook/internal/repository"
	"github.com/edutrack/studentbook/internal/response"
	"github.com/edutrack/studentbook/internal/service"
	"github.com/edutrack/studentbook/internal/validator"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// StudentHandler handles the /students route group.
type StudentHandler struct {
	studentService *service.StudentService
	exportService  *service.ExportService
}

// NewStudentHandler creates a new StudentHandler.
func NewStudentHandler(studentService *service.StudentService, exportService *service.ExportService) *StudentHandler {
	return &StudentHandler{
		studentService: studentService,
		exportService:  exportService,
	}
}

// ListStudents handles GET /students.
func (h *StudentHandler) ListStudents(c *gin.Context) {
	students, err := h.studentService.ListStudents(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"students": students})
}

// GetStudent handles GET /students/:id.
func (h *StudentHandler) GetStudent(c *gin.Context) {
	id, ok := h.studentID(c)
	if !ok {
		return
	}

	student, err := h.studentService.GetStudentByID(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"student": student})
}

// CreateStudent handles POST /students. The storage layer assigns the id.
func (h *StudentHandler) CreateStudent(c *gin.Context) {
	var req model.CreateStudentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	dob, err := time.Parse(time.DateOnly, req.DOB)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}

	student := &model.Student{
		Name:    req.Name,
		Address: req.Address.Address(),
		Age:     req.Age,
		Email:   req.Email,
		Mobile:  req.Mobile,
		Gender:  req.Gender,
		DOB:     dob,
	}

	if err := h.studentService.CreateStudent(c.Request.Context(), student); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"student": student})
}

// ListStudentsByAddress handles GET /students/by-address. The address
// filter rides in the request body and matches all three fields exactly.
func (h *StudentHandler) ListStudentsByAddress(c *gin.Context) {
	var req model.AddressRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	students, err := h.studentService.ListStudentsByAddress(c.Request.Context(), req.Address())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"students": students})
}

// ListStudentsBetweenAge handles GET /students/between-age. Both bounds
// are required query parameters and the range is inclusive.
func (h *StudentHandler) ListStudentsBetweenAge(c *gin.Context) {
	startAge, err := strconv.Atoi(c.Query("startAge"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}
	endAge, err := strconv.Atoi(c.Query("endAge"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}

	students, err := h.studentService.ListStudentsBetweenAge(c.Request.Context(), startAge, endAge)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"students": students})
}

// UpdateStudentEmail handles PUT /students/:id/email. The caller must
// quote the stored email in oldEmail for the update to go through.
func (h *StudentHandler) UpdateStudentEmail(c *gin.Context) {
	id, ok := h.studentID(c)
	if !ok {
		return
	}

	oldEmail := c.Query("oldEmail")
	newEmail := c.Query("newEmail")
	if oldEmail == "" || newEmail == "" {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}

	student, err := h.studentService.UpdateStudentEmail(c.Request.Context(), id, oldEmail, newEmail)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"student": student})
}

// UpdateStudentAddress handles PUT /students/:id/address.
func (h *StudentHandler) UpdateStudentAddress(c *gin.Context) {
	id, ok := h.studentID(c)
	if !ok {
		return
	}

	var req model.AddressRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	student, err := h.studentService.UpdateStudentAddress(c.Request.Context(), id, req.Address())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"student": student})
}

// ListStudentSummaries handles GET /students/name-address-age.
func (h *StudentHandler) ListStudentSummaries(c *gin.Context) {
	summaries, err := h.studentService.ListStudentSummaries(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"summaries": summaries})
}

// ExportStudents handles GET /students/export, streaming the roster as an
// xlsx attachment.
func (h *StudentHandler) ExportStudents(c *gin.Context) {
	data, err := h.exportService.RosterXLSX(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="students.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, data)
}

// studentID parses the :id path parameter. On failure it writes the error
// response itself and returns ok=false.
func (h *StudentHandler) studentID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return 0, false
	}
	return id, true
}

// fail maps business errors onto HTTP statuses in one place so every
// route reports the same status for the same failure.
func (h *StudentHandler) fail(c *gin.Context, err error) {
	var verr *model.ValidationError
	switch {
	case errors.As(err, &verr):
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, verr.Fields())
	case errors.Is(err, repository.ErrStudentNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, service.ErrEmailMismatch):
		response.Fail(c, http.StatusPreconditionFailed, response.ErrEmailMismatch)
	case errors.Is(err, repository.ErrDuplicateEmail):
		response.Fail(c, http.StatusConflict, response.ErrEmailTaken)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
