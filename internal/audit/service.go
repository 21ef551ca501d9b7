package audit

import (
	"encoding/json"
	"fmt"
	"time"

	"konfeksiyon-backend/internal/database"
	"konfeksiyon-backend/internal/models"
)

type LogOptions struct {
	UserID      uint
	UserName    string
	EntityType  string
	EntityID    uint
	Action      models.AuditAction
	Description string
	Before      any
	After       any
}

func WriteLog(opts LogOptions) error {
	// PostgreSQL jsonb için boş string yerine "null" JSON string'i kullanmalıyız
	beforeStr := "null" // Default: null JSON
	afterStr := "null"  // Default: null JSON

	if opts.Before != nil {
		if b, err := json.Marshal(opts.Before); err == nil {
			beforeStr = string(b)
		}
	}
	if opts.After != nil {
		if b, err := json.Marshal(opts.After); err == nil {
			afterStr = string(b)
		}
	}

	log := models.AuditLog{
		UserID:      opts.UserID,
		UserName:    opts.UserName,
		EntityType:  opts.EntityType,
		EntityID:    opts.EntityID,
		Action:      opts.Action,
		Description: opts.Description,
		BeforeData:  beforeStr,
		AfterData:   afterStr,
		Undone:      false,
		IsUndone:    false,
	}

	if err := database.DB.Create(&log).Error; err != nil {
		return fmt.Errorf("audit log kaydedilemedi: %w", err)
	}

	return nil
}

// UndoLog - Bir audit log'u undo et
func UndoLog(logID uint, userID uint, userName string) error {
	var log models.AuditLog
	if err := database.DB.First(&log, "id = ?", logID).Error; err != nil {
		return fmt.Errorf("log bulunamadı: %w", err)
	}

	// Zaten undo edilmiş mi?
	if log.IsUndone {
		return fmt.Errorf("bu işlem zaten geri alınmış")
	}

	// Undo işlemini gerçekleştir
	switch log.Action {
	case models.AuditActionCreate:
		// Create ise entity'yi sil
		if err := deleteEntity(log.EntityType, log.EntityID); err != nil {
			return fmt.Errorf("entity silinemedi: %w", err)
		}

	case models.AuditActionUpdate:
		// Update ise önceki haline geri döndür
		if err := restoreEntity(log.EntityType, log.EntityID, log.BeforeData); err != nil {
			return fmt.Errorf("entity geri yüklenemedi: %w", err)
		}

	case models.AuditActionDelete:
		// Delete ise entity'yi geri oluştur (create)
		if err := recreateEntity(log.EntityType, log.AfterData); err != nil {
			return fmt.Errorf("entity geri oluşturulamadı: %w", err)
		}

	default:
		return fmt.Errorf("bu işlem türü geri alınamaz")
	}

	// Log'u işaretle
	now := time.Now()
	log.IsUndone = true
	log.UndoneBy = &userID
	log.UndoneAt = &now

	if err := database.DB.Save(&log).Error; err != nil {
		return fmt.Errorf("log güncellenemedi: %w", err)
	}

	// Undo işlemi için yeni bir log oluştur
	undoLog := models.AuditLog{
		UserID:      userID,
		UserName:    userName,
		EntityType:  log.EntityType,
		EntityID:    log.EntityID,
		Action:      models.AuditActionUndo,
		Description: fmt.Sprintf("Geri alındı: %s", log.Description),
		BeforeData:  log.AfterData,
		AfterData:   log.BeforeData,
		Undone:      true,
		IsUndone:    false,
	}

	if err := database.DB.Create(&undoLog).Error; err != nil {
		return fmt.Errorf("undo log kaydedilemedi: %w", err)
	}

	return nil
}

// deleteEntity - Entity'yi sil
// Bohça ve operasyon kayıtları bilinçli olarak listede yok: üretim geçmişi
// sadece ileri yönde hareket eder, bohça silmek ilerleme kayıtlarını da yok eder
func deleteEntity(entityType string, entityID uint) error {
	switch entityType {
	case "order":
		return database.DB.Delete(&models.Order{}, "id = ?", entityID).Error
	case "invoice":
		return database.DB.Delete(&models.Invoice{}, "id = ?", entityID).Error
	case "payment":
		return database.DB.Delete(&models.Payment{}, "id = ?", entityID).Error
	case "qc_inspection":
		return database.DB.Delete(&models.QCInspection{}, "id = ?", entityID).Error
	case "material":
		return database.DB.Delete(&models.Material{}, "id = ?", entityID).Error
	case "stock_entry":
		return database.DB.Delete(&models.MaterialStockEntry{}, "id = ?", entityID).Error
	case "employee":
		return database.DB.Delete(&models.Employee{}, "id = ?", entityID).Error
	default:
		return fmt.Errorf("bilinmeyen entity tipi: %s", entityType)
	}
}

// recreateEntity - Silinen entity'yi geri oluştur
func recreateEntity(entityType string, dataJSON string) error {
	switch entityType {
	case "order":
		var order models.Order
		if err := json.Unmarshal([]byte(dataJSON), &order); err != nil {
			return err
		}
		order.ID = 0 // Yeni entity oluştur
		return database.DB.Create(&order).Error

	case "invoice":
		var invoice models.Invoice
		if err := json.Unmarshal([]byte(dataJSON), &invoice); err != nil {
			return err
		}
		invoice.ID = 0
		return database.DB.Create(&invoice).Error

	case "payment":
		var payment models.Payment
		if err := json.Unmarshal([]byte(dataJSON), &payment); err != nil {
			return err
		}
		payment.ID = 0
		return database.DB.Create(&payment).Error

	case "qc_inspection":
		var inspection models.QCInspection
		if err := json.Unmarshal([]byte(dataJSON), &inspection); err != nil {
			return err
		}
		inspection.ID = 0
		return database.DB.Create(&inspection).Error

	case "material":
		var material models.Material
		if err := json.Unmarshal([]byte(dataJSON), &material); err != nil {
			return err
		}
		material.ID = 0
		return database.DB.Create(&material).Error

	case "stock_entry":
		var entry models.MaterialStockEntry
		if err := json.Unmarshal([]byte(dataJSON), &entry); err != nil {
			return err
		}
		entry.ID = 0
		return database.DB.Create(&entry).Error

	case "employee":
		var employee models.Employee
		if err := json.Unmarshal([]byte(dataJSON), &employee); err != nil {
			return err
		}
		employee.ID = 0
		return database.DB.Create(&employee).Error

	default:
		return fmt.Errorf("bilinmeyen entity tipi: %s", entityType)
	}
}

// restoreEntity - Entity'yi geri yükle (update)
func restoreEntity(entityType string, entityID uint, dataJSON string) error {
	switch entityType {
	case "order":
		var order models.Order
		if err := json.Unmarshal([]byte(dataJSON), &order); err != nil {
			return err
		}
		return database.DB.Model(&models.Order{}).Where("id = ?", entityID).Updates(map[string]interface{}{
			"client_id":            order.ClientID,
			"route_template_id":    order.RouteTemplateID,
			"product_type":         order.ProductType,
			"total_qty":            order.TotalQty,
			"unit_price":           order.UnitPrice,
			"total_value":          order.TotalValue,
			"target_delivery_date": order.TargetDeliveryDate,
			"status":               order.Status,
			"note":                 order.Note,
		}).Error

	case "invoice":
		var invoice models.Invoice
		if err := json.Unmarshal([]byte(dataJSON), &invoice); err != nil {
			return err
		}
		return database.DB.Model(&models.Invoice{}).Where("id = ?", entityID).Updates(map[string]interface{}{
			"order_id":   invoice.OrderID,
			"amount":     invoice.Amount,
			"issue_date": invoice.IssueDate,
			"due_date":   invoice.DueDate,
			"status":     invoice.Status,
			"note":       invoice.Note,
		}).Error

	case "stock_entry":
		var entry models.MaterialStockEntry
		if err := json.Unmarshal([]byte(dataJSON), &entry); err != nil {
			return err
		}
		return database.DB.Model(&models.MaterialStockEntry{}).Where("id = ?", entityID).Updates(map[string]interface{}{
			"material_id": entry.MaterialID,
			"order_id":    entry.OrderID,
			"type":        entry.Type,
			"quantity":    entry.Quantity,
			"date":        entry.Date,
			"note":        entry.Note,
		}).Error

	case "employee":
		var employee models.Employee
		if err := json.Unmarshal([]byte(dataJSON), &employee); err != nil {
			return err
		}
		return database.DB.Model(&models.Employee{}).Where("id = ?", entityID).Updates(map[string]interface{}{
			"name":       employee.Name,
			"role":       employee.Role,
			"piece_rate": employee.PieceRate,
			"is_active":  employee.IsActive,
		}).Error

	case "material":
		var material models.Material
		if err := json.Unmarshal([]byte(dataJSON), &material); err != nil {
			return err
		}
		return database.DB.Model(&models.Material{}).Where("id = ?", entityID).Updates(map[string]interface{}{
			"name":       material.Name,
			"stock_code": material.StockCode,
			"unit":       material.Unit,
		}).Error

	default:
		return fmt.Errorf("bilinmeyen entity tipi: %s", entityType)
	}
}
