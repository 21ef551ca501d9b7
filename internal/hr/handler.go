package hr

import (
	"fmt"
	"strings"
	"time"

	"konfeksiyon-backend/internal/audit"
	"konfeksiyon-backend/internal/auth"
	"konfeksiyon-backend/internal/database"
	"konfeksiyon-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type EmployeeRequest struct {
	Name      string  `json:"name"`
	Role      string  `json:"role"`
	PieceRate float64 `json:"piece_rate"`
	HireDate  string  `json:"hire_date"` // "2006-01-02", boş olabilir
}

type EmployeeResponse struct {
	ID        uint    `json:"id"`
	Name      string  `json:"name"`
	Role      string  `json:"role"`
	PieceRate float64 `json:"piece_rate"`
	IsActive  bool    `json:"is_active"`
	HireDate  string  `json:"hire_date,omitempty"`
}

func buildEmployeeResponse(e *models.Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:        e.ID,
		Name:      e.Name,
		Role:      e.Role,
		PieceRate: e.PieceRate,
		IsActive:  e.IsActive,
	}
	if !e.HireDate.IsZero() {
		resp.HireDate = e.HireDate.Format("2006-01-02")
	}
	return resp
}

// POST /api/employees
func CreateEmployeeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body EmployeeRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Çalışan adı boş olamaz")
		}
		if body.PieceRate < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Parça başı ücret negatif olamaz")
		}

		employee := models.Employee{
			Name:      body.Name,
			Role:      body.Role,
			PieceRate: body.PieceRate,
			IsActive:  true,
		}

		if body.HireDate != "" {
			hireDate, err := time.Parse("2006-01-02", body.HireDate)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Geçersiz işe giriş tarihi, format: 2006-01-02")
			}
			employee.HireDate = hireDate
		}

		if err := database.DB.Create(&employee).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Çalışan oluşturulamadı")
		}

		if userID, userName, err := auth.GetUserInfo(c); err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "employee",
				EntityID:    employee.ID,
				Action:      models.AuditActionCreate,
				Description: fmt.Sprintf("Çalışan eklendi: %s (%s)", employee.Name, employee.Role),
				Before:      nil,
				After:       employee,
			})
		}

		return c.Status(fiber.StatusCreated).JSON(buildEmployeeResponse(&employee))
	}
}

// GET /api/employees?active=true
func ListEmployeesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := database.DB.Order("name ASC")
		if c.Query("active") == "true" {
			query = query.Where("is_active = ?", true)
		}

		var employees []models.Employee
		if err := query.Find(&employees).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Çalışanlar listelenemedi")
		}

		resp := make([]EmployeeResponse, 0, len(employees))
		for i := range employees {
			resp = append(resp, buildEmployeeResponse(&employees[i]))
		}

		return c.JSON(resp)
	}
}

// PUT /api/employees/:id
func UpdateEmployeeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var employee models.Employee
		if err := database.DB.First(&employee, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Çalışan bulunamadı")
		}

		var body struct {
			Name      *string  `json:"name"`
			Role      *string  `json:"role"`
			PieceRate *float64 `json:"piece_rate"`
			IsActive  *bool    `json:"is_active"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		before := employee

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Çalışan adı boş olamaz")
			}
			employee.Name = name
		}
		if body.Role != nil {
			employee.Role = *body.Role
		}
		if body.PieceRate != nil {
			if *body.PieceRate < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Parça başı ücret negatif olamaz")
			}
			employee.PieceRate = *body.PieceRate
		}
		if body.IsActive != nil {
			employee.IsActive = *body.IsActive
		}

		if err := database.DB.Save(&employee).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Çalışan güncellenemedi")
		}

		if userID, userName, err := auth.GetUserInfo(c); err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "employee",
				EntityID:    employee.ID,
				Action:      models.AuditActionUpdate,
				Description: fmt.Sprintf("Çalışan güncellendi: %s", employee.Name),
				Before:      before,
				After:       employee,
			})
		}

		return c.JSON(buildEmployeeResponse(&employee))
	}
}
