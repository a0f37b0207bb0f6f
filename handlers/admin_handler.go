package handlers

import (
	"bytes"
	"html/template"
	"log"
	"net/http"

	"recipeshare-backend/repository"

	"github.com/gin-gonic/gin"
)

// dashboardTemplate escapes every interpolated field through html/template
// autoescaping. This is the render-time defense line: it holds even if a
// stored comment somehow bypassed ingestion-time sanitization.
var dashboardTemplate = template.Must(template.New("dashboard").Parse(`<h1>Admin Dashboard</h1>
<h2>Recent Comments Review</h2>
<ul>
{{- range . }}
<li><b>{{ .User }}</b> on {{ .Recipe }}: <br> {{ .Text }}</li>
{{- end }}
</ul>
`))

type dashboardComment struct {
	Recipe string
	User   string
	Text   string
}

// AdminHandler renders the comment review dashboard
type AdminHandler struct {
	recipeRepo *repository.RecipeRepository
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(recipeRepo *repository.RecipeRepository) *AdminHandler {
	return &AdminHandler{recipeRepo: recipeRepo}
}

// Dashboard handles GET /admin/dashboard
func (h *AdminHandler) Dashboard(c *gin.Context) {
	markup, err := h.renderDashboard()
	if err != nil {
		log.Printf("failed to render dashboard: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", markup)
}

// renderDashboard aggregates every comment across all recipes into markup.
func (h *AdminHandler) renderDashboard() ([]byte, error) {
	var comments []dashboardComment
	for _, recipe := range h.recipeRepo.ListAll() {
		for _, comment := range recipe.Comments {
			comments = append(comments, dashboardComment{
				Recipe: recipe.Name,
				User:   comment.User,
				Text:   comment.Text,
			})
		}
	}

	var buf bytes.Buffer
	if err := dashboardTemplate.Execute(&buf, comments); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
