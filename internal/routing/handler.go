package routing

import (
	"fmt"
	"strings"

	"konfeksiyon-backend/internal/database"
	"konfeksiyon-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type OperationRequest struct {
	Name            string   `json:"name"`
	StandardMinutes float64  `json:"standard_minutes"`
	DependsOn       []string `json:"depends_on"` // operasyon ADLARI
	MachineType     string   `json:"machine_type"`
}

type StepRequest struct {
	StepName   string             `json:"step_name"`
	WorkCenter string             `json:"work_center"`
	Sequence   int                `json:"sequence"`
	Operations []OperationRequest `json:"operations"`
}

type CreateTemplateRequest struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Steps       []StepRequest `json:"steps"`
}

type OperationResponse struct {
	ID              uint     `json:"id"`
	Name            string   `json:"name"`
	StandardMinutes float64  `json:"standard_minutes"`
	DependsOn       []string `json:"depends_on"`
	MachineType     string   `json:"machine_type"`
}

type StepResponse struct {
	ID         uint                `json:"id"`
	StepName   string              `json:"step_name"`
	WorkCenter string              `json:"work_center"`
	Sequence   int                 `json:"sequence"`
	Operations []OperationResponse `json:"operations"`
}

type TemplateResponse struct {
	ID          uint           `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	IsActive    bool           `json:"is_active"`
	Steps       []StepResponse `json:"steps,omitempty"`
	Warnings    []string       `json:"warnings,omitempty"`
	CreatedAt   string         `json:"created_at"`
}

// validateOperations: Şablon içindeki operasyon adlarını kontrol eder.
// Mükerrer ad hatadır; şablonda olmayan bir bağımlılık adı hata DEĞİLDİR
// (bilerek: serbest metin eşleşme), ama uyarı olarak döner çünkü o
// operasyon hiçbir zaman başlatılamayacaktır.
func validateOperations(steps []StepRequest) ([]string, error) {
	names := make(map[string]bool)
	for _, st := range steps {
		for _, op := range st.Operations {
			name := strings.TrimSpace(op.Name)
			if name == "" {
				return nil, fmt.Errorf("operasyon adı boş olamaz")
			}
			if op.StandardMinutes < 0 {
				return nil, fmt.Errorf("standart dakika negatif olamaz: %s", name)
			}
			if names[name] {
				return nil, fmt.Errorf("mükerrer operasyon adı: %s", name)
			}
			names[name] = true
		}
	}

	var warnings []string
	for _, st := range steps {
		for _, op := range st.Operations {
			for _, dep := range op.DependsOn {
				dep = strings.TrimSpace(dep)
				if dep != "" && !names[dep] {
					warnings = append(warnings,
						fmt.Sprintf("'%s' operasyonunun bağımlılığı şablonda yok: '%s' (operasyon kalıcı bloke kalır)", op.Name, dep))
				}
			}
		}
	}
	return warnings, nil
}

// POST /api/route-templates
func CreateTemplateHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateTemplateRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Şablon adı boş olamaz")
		}
		if len(body.Steps) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "En az bir rota adımı tanımlanmalı")
		}

		warnings, err := validateOperations(body.Steps)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		tpl := models.RouteTemplate{
			Name:        body.Name,
			Description: body.Description,
			IsActive:    true,
		}

		for _, st := range body.Steps {
			step := models.RoutingStep{
				StepName:   strings.TrimSpace(st.StepName),
				WorkCenter: st.WorkCenter,
				Sequence:   st.Sequence,
			}
			for _, op := range st.Operations {
				step.Operations = append(step.Operations, models.SewingOperation{
					Name:            strings.TrimSpace(op.Name),
					StandardMinutes: op.StandardMinutes,
					DependsOn:       strings.Join(op.DependsOn, ", "),
					MachineType:     op.MachineType,
				})
			}
			tpl.Steps = append(tpl.Steps, step)
		}

		if err := database.DB.Create(&tpl).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Rota şablonu oluşturulamadı")
		}

		resp := buildTemplateResponse(&tpl, true)
		resp.Warnings = warnings
		return c.Status(fiber.StatusCreated).JSON(resp)
	}
}

// GET /api/route-templates
func ListTemplatesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var templates []models.RouteTemplate
		if err := database.DB.Order("name ASC").Find(&templates).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Rota şablonları listelenemedi")
		}

		resp := make([]TemplateResponse, 0, len(templates))
		for i := range templates {
			resp = append(resp, buildTemplateResponse(&templates[i], false))
		}

		return c.JSON(resp)
	}
}

// GET /api/route-templates/:id
func GetTemplateHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var tpl models.RouteTemplate
		if err := database.DB.
			Preload("Steps", func(db *gorm.DB) *gorm.DB { return db.Order("routing_steps.sequence ASC") }).
			Preload("Steps.Operations").
			First(&tpl, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Rota şablonu bulunamadı")
		}

		return c.JSON(buildTemplateResponse(&tpl, true))
	}
}

// PUT /api/route-templates/:id
// Sadece ad/açıklama/aktiflik güncellenir. Adım ve operasyon değişikliği için
// yeni şablon açılır; üretimdeki siparişlerin rotası değişmemeli.
func UpdateTemplateHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var tpl models.RouteTemplate
		if err := database.DB.First(&tpl, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Rota şablonu bulunamadı")
		}

		var body struct {
			Name        *string `json:"name"`
			Description *string `json:"description"`
			IsActive    *bool   `json:"is_active"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Şablon adı boş olamaz")
			}
			tpl.Name = name
		}
		if body.Description != nil {
			tpl.Description = *body.Description
		}
		if body.IsActive != nil {
			tpl.IsActive = *body.IsActive
		}

		if err := database.DB.Save(&tpl).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Rota şablonu güncellenemedi")
		}

		return c.JSON(buildTemplateResponse(&tpl, false))
	}
}

// DELETE /api/route-templates/:id
func DeleteTemplateHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var tpl models.RouteTemplate
		if err := database.DB.First(&tpl, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Rota şablonu bulunamadı")
		}

		// Siparişe atanmış şablon silinemez
		var orderCount int64
		database.DB.Model(&models.Order{}).Where("route_template_id = ?", tpl.ID).Count(&orderCount)
		if orderCount > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Siparişe atanmış şablon silinemez, pasife alın")
		}

		if err := database.DB.Select("Steps").Delete(&tpl).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Rota şablonu silinemedi")
		}

		return c.JSON(fiber.Map{"message": "Rota şablonu silindi"})
	}
}

func buildTemplateResponse(tpl *models.RouteTemplate, withSteps bool) TemplateResponse {
	resp := TemplateResponse{
		ID:          tpl.ID,
		Name:        tpl.Name,
		Description: tpl.Description,
		IsActive:    tpl.IsActive,
		CreatedAt:   tpl.CreatedAt.Format("2006-01-02 15:04:05"),
	}

	if withSteps {
		resp.Steps = make([]StepResponse, 0, len(tpl.Steps))
		for _, st := range tpl.Steps {
			stepResp := StepResponse{
				ID:         st.ID,
				StepName:   st.StepName,
				WorkCenter: st.WorkCenter,
				Sequence:   st.Sequence,
				Operations: make([]OperationResponse, 0, len(st.Operations)),
			}
			for _, op := range st.Operations {
				stepResp.Operations = append(stepResp.Operations, OperationResponse{
					ID:              op.ID,
					Name:            op.Name,
					StandardMinutes: op.StandardMinutes,
					DependsOn:       op.DependsOnNames(),
					MachineType:     op.MachineType,
				})
			}
			resp.Steps = append(resp.Steps, stepResp)
		}
	}

	return resp
}
