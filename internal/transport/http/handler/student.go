package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"campus-webapps/internal/app"
	"campus-webapps/internal/model"
	"campus-webapps/internal/transport/http/response"
	"campus-webapps/internal/view"
)

const (
	msgListStudentsFailed  = "Failed to load students"
	msgLoadStudentFailed   = "Failed to load student"
	msgSaveStudentFailed   = "Failed to save student"
	msgDeleteStudentFailed = "Failed to delete student"
)

type StudentHandler struct {
	pages
	studentService *app.StudentService
}

type StudentForm struct {
	Name   string `form:"name"`
	Age    string `form:"age"`
	Course string `form:"course"`
}

func (f StudentForm) input() app.StudentInput {
	return app.StudentInput{Name: f.Name, Age: f.Age, Course: f.Course}
}

func (f StudentForm) values() view.StudentValues {
	return view.StudentValues{Name: f.Name, Age: f.Age, Course: f.Course}
}

func NewStudentHandler(studentService *app.StudentService, renderer view.Renderer, logger *slog.Logger) *StudentHandler {
	return &StudentHandler{
		pages:          pages{renderer: renderer, logger: logger},
		studentService: studentService,
	}
}

func (h *StudentHandler) Index(c *gin.Context) {
	students, err := h.studentService.List(c.Request.Context())
	if err != nil {
		h.fail(c, http.StatusInternalServerError, msgListStudentsFailed, err)
		return
	}
	h.render(c, http.StatusOK, view.PageStudents, view.StudentsPage{Students: students})
}

func (h *StudentHandler) Add(c *gin.Context) {
	var form StudentForm
	_ = c.ShouldBind(&form)

	_, err := h.studentService.Create(c.Request.Context(), form.input())
	if v, ok := app.AsValidation(err); ok {
		students, listErr := h.studentService.List(c.Request.Context())
		if listErr != nil {
			h.fail(c, http.StatusInternalServerError, msgListStudentsFailed, listErr)
			return
		}
		h.render(c, http.StatusBadRequest, view.PageStudents, view.StudentsPage{
			Students: students,
			Errors:   v.Fields,
			Values:   form.values(),
		})
		return
	}
	if err != nil {
		h.fail(c, http.StatusInternalServerError, msgSaveStudentFailed, err)
		return
	}
	response.Redirect(c, "/")
}

func (h *StudentHandler) View(c *gin.Context) {
	student, ok := h.load(c)
	if !ok {
		return
	}
	h.render(c, http.StatusOK, view.PageStudent, view.StudentPage{Student: student})
}

func (h *StudentHandler) Edit(c *gin.Context) {
	student, ok := h.load(c)
	if !ok {
		return
	}
	page := view.StudentPage{Student: student}
	if student != nil {
		page.Values = view.StudentValues{
			Name:   student.Name,
			Age:    strconv.Itoa(student.Age),
			Course: student.Course,
		}
	}
	h.render(c, http.StatusOK, view.PageStudentEdit, page)
}

func (h *StudentHandler) Update(c *gin.Context) {
	id, ok := parseStudentID(c)
	if !ok {
		return
	}

	var form StudentForm
	_ = c.ShouldBind(&form)

	err := h.studentService.Update(c.Request.Context(), id, form.input())
	if v, ok := app.AsValidation(err); ok {
		student, getErr := h.studentService.Get(c.Request.Context(), id)
		if getErr != nil {
			h.fail(c, http.StatusInternalServerError, msgLoadStudentFailed, getErr)
			return
		}
		h.render(c, http.StatusBadRequest, view.PageStudentEdit, view.StudentPage{
			Student: student,
			Errors:  v.Fields,
			Values:  form.values(),
		})
		return
	}
	if err != nil {
		h.fail(c, http.StatusInternalServerError, msgSaveStudentFailed, err)
		return
	}
	response.Redirect(c, "/")
}

func (h *StudentHandler) Delete(c *gin.Context) {
	id, ok := parseStudentID(c)
	if !ok {
		return
	}
	if err := h.studentService.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, http.StatusInternalServerError, msgDeleteStudentFailed, err)
		return
	}
	response.Redirect(c, "/")
}

// load fetches the student named by the :id param. A missing student is
// returned as nil with ok true.
func (h *StudentHandler) load(c *gin.Context) (*model.Student, bool) {
	id, ok := parseStudentID(c)
	if !ok {
		return nil, false
	}
	student, err := h.studentService.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, http.StatusInternalServerError, msgLoadStudentFailed, err)
		return nil, false
	}
	return student, true
}

func parseStudentID(c *gin.Context) (uint, bool) {
	id64, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id64 == 0 {
		response.Text(c, http.StatusBadRequest, response.MsgInvalidStudentID)
		return 0, false
	}
	return uint(id64), true
}
