package production

import "konfeksiyon-backend/internal/models"

// OperationSpec: İlerleme hesabı için operasyon tanımı. Rota şablonundan
// beslenir; DependsOn listesi operasyon ADLARIDIR (foreign key değil).
type OperationSpec struct {
	Name            string
	StandardMinutes float64
	DependsOn       []string
}

// BundleProgress: Bir bohçanın hesaplanmış ilerleme durumu
type BundleProgress struct {
	OverallProgressPct          float64  `json:"overall_progress_pct"`           // standart dakika ağırlıklı yüzde
	NextAvailableOperations     []string `json:"next_available_operations"`      // başlanabilir operasyonlar
	BlockedOperations           []string `json:"blocked_operations"`             // bağımlılığı bitmemiş operasyonlar
	EstimatedCompletionTimeMins float64  `json:"estimated_completion_time_mins"` // kalan standart dakika toplamı
}

// CalculateBundleProgress: Operasyon listesi ve tamamlanan operasyon adları
// kümesinden bohça ilerlemesini hesaplar. Saf fonksiyon, veritabanına dokunmaz.
//
// Kurallar:
//   - Yüzde, adet sayısıyla değil standart dakika ile ağırlıklandırılır
//     (10 dakikalık operasyon 1 dakikalık operasyonun 10 katı ilerleme sayılır).
//   - Bir operasyon, DependsOn listesindeki TÜM adlar tamamlanmışsa
//     "başlanabilir"; en az biri tamamlanmamışsa "bloke".
//   - Listede olmayan bir bağımlılık adı hiçbir zaman tamamlanamaz; ona
//     bağlı operasyon kalıcı olarak bloke kalır (hata fırlatılmaz).
//   - Toplam standart dakika 0 ise yüzde 0 döner (NaN değil).
//   - Kalan süre tahmini operatör paralelliğini ve bohça adedini modellemez,
//     sadece tamamlanmamış operasyonların standart dakika toplamıdır.
func CalculateBundleProgress(operations []OperationSpec, completed map[string]bool) BundleProgress {
	result := BundleProgress{
		NextAvailableOperations: []string{},
		BlockedOperations:       []string{},
	}

	if len(operations) == 0 {
		return result
	}

	// Aynı ada sahip mükerrer operasyon varsa ilkini esas al
	// (şablon tarafında isimler benzersiz, bu sadece savunma)
	seen := make(map[string]bool, len(operations))
	ops := make([]OperationSpec, 0, len(operations))
	for _, op := range operations {
		if seen[op.Name] {
			continue
		}
		seen[op.Name] = true
		ops = append(ops, op)
	}

	var totalMinutes, completedMinutes, remainingMinutes float64
	for _, op := range ops {
		totalMinutes += op.StandardMinutes
		if completed[op.Name] {
			completedMinutes += op.StandardMinutes
		} else {
			remainingMinutes += op.StandardMinutes
		}
	}

	for _, op := range ops {
		if completed[op.Name] {
			continue
		}

		ready := true
		for _, dep := range op.DependsOn {
			// Bağımlılık ancak operasyon listesinde VAR ve tamamlanmışsa sağlanır;
			// bilinmeyen ad = sağlanamaz bağımlılık
			if !seen[dep] || !completed[dep] {
				ready = false
				break
			}
		}

		if ready {
			result.NextAvailableOperations = append(result.NextAvailableOperations, op.Name)
		} else {
			result.BlockedOperations = append(result.BlockedOperations, op.Name)
		}
	}

	if totalMinutes > 0 {
		result.OverallProgressPct = completedMinutes / totalMinutes * 100
	}
	result.EstimatedCompletionTimeMins = remainingMinutes

	return result
}

// operationSpecs: Model katmanındaki dikim operasyonlarını hesaplayıcının
// beklediği forma çevirir. Adım/operasyon sırası korunur.
func operationSpecs(ops []models.SewingOperation) []OperationSpec {
	specs := make([]OperationSpec, 0, len(ops))
	for _, op := range ops {
		specs = append(specs, OperationSpec{
			Name:            op.Name,
			StandardMinutes: op.StandardMinutes,
			DependsOn:       op.DependsOnNames(),
		})
	}
	return specs
}
