package handlers

import (
	"net/http"

	"taskhub_backend/internal/middleware"
	"taskhub_backend/internal/services"
	"taskhub_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ProjectHandler struct {
	*BaseHandler
	projectService *services.ProjectService
}

func NewProjectHandler(base *BaseHandler, projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		BaseHandler:    base,
		projectService: projectService,
	}
}

// RegisterRoutes регистрирует маршруты проектов.
// Все маршруты требуют аутентификации; мутации дополнительно
// проверяются на роль owner внутри сервиса.
func (h *ProjectHandler) RegisterRoutes(rg *gin.RouterGroup) {
	projects := rg.Group("/projects")
	projects.Use(middleware.AuthMiddleware())
	{
		projects.POST("", h.CreateProject)
		projects.GET("", h.ListProjects)
		projects.GET("/:id", h.GetProject)
		projects.PUT("/:id", h.UpdateProject)
		projects.DELETE("/:id", h.DeleteProject)

		projects.GET("/:id/members", h.ListMembers)
		projects.POST("/:id/members", h.AddMember)
		projects.DELETE("/:id/members/:userId", h.RemoveMember)
	}
}

func (h *ProjectHandler) CreateProject(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateProjectRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	response, err := h.projectService.CreateProject(db, userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

func (h *ProjectHandler) ListProjects(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	db := h.GetDB(c)

	responses, err := h.projectService.ListProjects(db)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, responses)
}

func (h *ProjectHandler) GetProject(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	projectID, ok := h.RequireParam(c, "id")
	if !ok {
		return
	}

	db := h.GetDB(c)

	response, err := h.projectService.GetProject(db, projectID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	projectID, ok := h.RequireParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateProjectRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	response, err := h.projectService.UpdateProject(db, projectID, userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	projectID, ok := h.RequireParam(c, "id")
	if !ok {
		return
	}

	db := h.GetDB(c)

	if err := h.projectService.DeleteProject(db, projectID, userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Project deleted",
	})
}

func (h *ProjectHandler) ListMembers(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	projectID, ok := h.RequireParam(c, "id")
	if !ok {
		return
	}

	db := h.GetDB(c)

	responses, err := h.projectService.ListMembers(db, projectID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, responses)
}

func (h *ProjectHandler) AddMember(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	projectID, ok := h.RequireParam(c, "id")
	if !ok {
		return
	}

	var req dto.AddMemberRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	if err := h.projectService.AddMember(db, projectID, userID, &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Member added",
	})
}

func (h *ProjectHandler) RemoveMember(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	projectID, ok := h.RequireParam(c, "id")
	if !ok {
		return
	}

	memberID, ok := h.RequireParam(c, "userId")
	if !ok {
		return
	}

	db := h.GetDB(c)

	if err := h.projectService.RemoveMember(db, projectID, userID, memberID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Member removed",
	})
}
