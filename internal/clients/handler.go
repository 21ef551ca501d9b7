package clients

import (
	"strings"

	"konfeksiyon-backend/internal/database"
	"konfeksiyon-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type ClientResponse struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Brand        string `json:"brand"`
	ContactName  string `json:"contact_name"`
	ContactEmail string `json:"contact_email"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	CreatedAt    string `json:"created_at"`
}

type CreateClientRequest struct {
	Name         string `json:"name"`
	Brand        string `json:"brand"`
	ContactName  string `json:"contact_name"`
	ContactEmail string `json:"contact_email"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
}

type UpdateClientRequest struct {
	Name         *string `json:"name"`
	Brand        *string `json:"brand"`
	ContactName  *string `json:"contact_name"`
	ContactEmail *string `json:"contact_email"`
	Phone        *string `json:"phone"`
	Address      *string `json:"address"`
}

func CreateClientHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateClientRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri gönderildi")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Müşteri adı boş olamaz")
		}

		client := models.Client{
			Name:         body.Name,
			Brand:        strings.TrimSpace(body.Brand),
			ContactName:  body.ContactName,
			ContactEmail: strings.TrimSpace(strings.ToLower(body.ContactEmail)),
			Phone:        strings.TrimSpace(body.Phone),
			Address:      body.Address,
		}

		if err := database.DB.Create(&client).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Müşteri oluşturulamadı")
		}

		return c.Status(fiber.StatusCreated).JSON(buildClientResponse(&client))
	}
}

func ListClientsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var clientList []models.Client
		if err := database.DB.Order("name ASC").Find(&clientList).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Müşteriler listelenemedi")
		}

		res := make([]ClientResponse, 0, len(clientList))
		for i := range clientList {
			res = append(res, buildClientResponse(&clientList[i]))
		}

		return c.JSON(res)
	}
}

func GetClientHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var client models.Client
		if err := database.DB.First(&client, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Müşteri bulunamadı")
		}

		return c.JSON(buildClientResponse(&client))
	}
}

func UpdateClientHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var client models.Client
		if err := database.DB.First(&client, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Müşteri bulunamadı")
		}

		var body UpdateClientRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri gönderildi")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Müşteri adı boş olamaz")
			}
			client.Name = name
		}
		if body.Brand != nil {
			client.Brand = strings.TrimSpace(*body.Brand)
		}
		if body.ContactName != nil {
			client.ContactName = *body.ContactName
		}
		if body.ContactEmail != nil {
			client.ContactEmail = strings.TrimSpace(strings.ToLower(*body.ContactEmail))
		}
		if body.Phone != nil {
			client.Phone = strings.TrimSpace(*body.Phone)
		}
		if body.Address != nil {
			client.Address = *body.Address
		}

		if err := database.DB.Save(&client).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Müşteri güncellenemedi")
		}

		return c.JSON(buildClientResponse(&client))
	}
}

func DeleteClientHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var client models.Client
		if err := database.DB.First(&client, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Müşteri bulunamadı")
		}

		// Siparişi olan müşteri silinemez
		var orderCount int64
		database.DB.Model(&models.Order{}).Where("client_id = ?", client.ID).Count(&orderCount)
		if orderCount > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Siparişi olan müşteri silinemez")
		}

		if err := database.DB.Delete(&client).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Müşteri silinemedi")
		}

		return c.JSON(fiber.Map{"message": "Müşteri silindi"})
	}
}

func buildClientResponse(client *models.Client) ClientResponse {
	return ClientResponse{
		ID:           client.ID,
		Name:         client.Name,
		Brand:        client.Brand,
		ContactName:  client.ContactName,
		ContactEmail: client.ContactEmail,
		Phone:        client.Phone,
		Address:      client.Address,
		CreatedAt:    client.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
