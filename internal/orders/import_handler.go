package orders

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"konfeksiyon-backend/internal/database"
	"konfeksiyon-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

// normalizeTurkish: Türkçe karakterleri ASCII karşılıklarına çevirir
// Örn: "ÖZGÜR TEKSTİL" -> "ozgur tekstil"
func normalizeTurkish(s string) string {
	replacements := map[rune]string{
		'ç': "c", 'Ç': "C",
		'ğ': "g", 'Ğ': "G",
		'ı': "i", 'İ': "I",
		'ö': "o", 'Ö': "O",
		'ş': "s", 'Ş': "S",
		'ü': "u", 'Ü': "U",
	}

	var result strings.Builder
	for _, r := range s {
		if replacement, ok := replacements[r]; ok {
			result.WriteString(replacement)
		} else {
			result.WriteRune(r)
		}
	}
	return strings.ToLower(strings.TrimSpace(result.String()))
}

// parseTurkishFloat: Türkçe formatındaki sayıyı float'a çevir (1.234,56 -> 1234.56)
func parseTurkishFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "TL", "")
	s = strings.ReplaceAll(s, "₺", "")
	s = strings.TrimSpace(s)

	// Hem "1.234,56" hem "1234.56" formatını destekle
	if strings.Contains(s, ",") {
		// Binlik ayırıcı noktaları kaldır
		s = strings.ReplaceAll(s, ".", "")
		// Virgülü noktaya çevir (ondalık ayırıcı)
		s = strings.ReplaceAll(s, ",", ".")
	}

	return strconv.ParseFloat(s, 64)
}

// parseDeliveryDate: "2026-03-15" veya "15.03.2026" formatındaki tarihi çözer
func parseDeliveryDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if d, err := time.Parse("2006-01-02", s); err == nil {
		return d, nil
	}
	if d, err := time.Parse("02.01.2006", s); err == nil {
		return d, nil
	}
	if d, err := time.Parse("02/01/2006", s); err == nil {
		return d, nil
	}
	return time.Time{}, fmt.Errorf("tarih çözümlenemedi: %q", s)
}

type ImportOrdersResponse struct {
	Success       bool     `json:"success"`
	ImportedCount int      `json:"imported_count"`
	SkippedRows   []string `json:"skipped_rows"`
	Message       string   `json:"message"`
}

// POST /api/orders/import-xlsx
// XLSX dosyasından toplu sipariş aktarır.
// Beklenen kolonlar: PO No | Müşteri | Ürün Tipi | Adet | Birim Fiyat | Termin
func ImportOrdersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Dosya yükleme
		fileHeader, err := c.FormFile("file")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Dosya yüklenemedi: "+err.Error())
		}

		if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".xlsx") {
			return fiber.NewError(fiber.StatusBadRequest, "Sadece .xlsx dosyaları yüklenebilir")
		}

		file, err := fileHeader.Open()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Dosya açılamadı: "+err.Error())
		}
		defer file.Close()

		// Excelize ile dosyayı oku
		excelFile, err := excelize.OpenReader(file)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Excel dosyası okunamadı: "+err.Error())
		}
		defer excelFile.Close()

		sheetList := excelFile.GetSheetList()
		if len(sheetList) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Excel dosyasında sheet bulunamadı")
		}

		rows, err := excelFile.GetRows(sheetList[0])
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Sheet okunamadı: "+err.Error())
		}

		if len(rows) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Excel dosyası boş")
		}

		// İlk satırın başlık satırı olup olmadığını kontrol et
		startIndex := 0
		if len(rows[0]) > 0 {
			firstCell := strings.ToUpper(strings.TrimSpace(rows[0][0]))
			if strings.Contains(firstCell, "PO") || strings.Contains(firstCell, "SİPARİŞ") ||
				strings.Contains(firstCell, "SIPARIS") || strings.Contains(firstCell, "ORDER") {
				startIndex = 1
				log.Printf("İlk satır başlık satırı olarak algılandı, atlanıyor")
			}
		}

		// Müşterileri bir kez çek, normalize edilmiş adla eşleştir
		var clientList []models.Client
		if err := database.DB.Find(&clientList).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Müşteriler yüklenemedi")
		}
		clientsByName := make(map[string]uint, len(clientList))
		for _, cl := range clientList {
			clientsByName[normalizeTurkish(cl.Name)] = cl.ID
			if cl.Brand != "" {
				clientsByName[normalizeTurkish(cl.Brand)] = cl.ID
			}
		}

		importedCount := 0
		skippedRows := make([]string, 0)

		for i := startIndex; i < len(rows); i++ {
			row := rows[i]
			rowNo := i + 1

			if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
				continue
			}
			if len(row) < 6 {
				skippedRows = append(skippedRows, fmt.Sprintf("satır %d: eksik kolon", rowNo))
				continue
			}

			poNumber := strings.TrimSpace(row[0])
			clientName := strings.TrimSpace(row[1])
			productType := strings.TrimSpace(row[2])

			clientID, ok := clientsByName[normalizeTurkish(clientName)]
			if !ok {
				skippedRows = append(skippedRows, fmt.Sprintf("satır %d: müşteri eşleşmedi (%s)", rowNo, clientName))
				continue
			}

			qtyF, err := parseTurkishFloat(row[3])
			if err != nil || qtyF <= 0 {
				skippedRows = append(skippedRows, fmt.Sprintf("satır %d: adet geçersiz (%s)", rowNo, row[3]))
				continue
			}
			totalQty := int(qtyF)

			unitPrice, err := parseTurkishFloat(row[4])
			if err != nil || unitPrice < 0 {
				skippedRows = append(skippedRows, fmt.Sprintf("satır %d: birim fiyat geçersiz (%s)", rowNo, row[4]))
				continue
			}

			targetDate, err := parseDeliveryDate(row[5])
			if err != nil {
				skippedRows = append(skippedRows, fmt.Sprintf("satır %d: termin tarihi geçersiz (%s)", rowNo, row[5]))
				continue
			}

			// Aynı po_number varsa atla
			var count int64
			database.DB.Model(&models.Order{}).Where("po_number = ?", poNumber).Count(&count)
			if count > 0 {
				skippedRows = append(skippedRows, fmt.Sprintf("satır %d: po_number zaten kayıtlı (%s)", rowNo, poNumber))
				continue
			}

			order := models.Order{
				PONumber:           poNumber,
				ClientID:           clientID,
				ProductType:        productType,
				TotalQty:           totalQty,
				UnitPrice:          unitPrice,
				TotalValue:         float64(totalQty) * unitPrice,
				TargetDeliveryDate: targetDate,
				Status:             models.OrderStatusDraft,
			}

			if err := database.DB.Create(&order).Error; err != nil {
				log.Printf("Sipariş aktarılırken hata (po_number=%s): %v", poNumber, err)
				skippedRows = append(skippedRows, fmt.Sprintf("satır %d: kayıt hatası", rowNo))
				continue
			}

			importedCount++
		}

		return c.JSON(ImportOrdersResponse{
			Success:       true,
			ImportedCount: importedCount,
			SkippedRows:   skippedRows,
			Message:       fmt.Sprintf("%d sipariş aktarıldı. %d satır atlandı.", importedCount, len(skippedRows)),
		})
	}
}
