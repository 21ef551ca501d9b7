package production

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func tshirtOperations() []OperationSpec {
	return []OperationSpec{
		{Name: "cut", StandardMinutes: 5, DependsOn: nil},
		{Name: "sew", StandardMinutes: 15, DependsOn: []string{"cut"}},
		{Name: "qc", StandardMinutes: 5, DependsOn: []string{"sew"}},
	}
}

func TestCalculateBundleProgress_NothingCompleted(t *testing.T) {
	result := CalculateBundleProgress(tshirtOperations(), map[string]bool{})

	require.Equal(t, 0.0, result.OverallProgressPct)
	require.Equal(t, []string{"cut"}, result.NextAvailableOperations)
	require.ElementsMatch(t, []string{"sew", "qc"}, result.BlockedOperations)
	require.Equal(t, 25.0, result.EstimatedCompletionTimeMins)
}

func TestCalculateBundleProgress_PartiallyCompleted(t *testing.T) {
	result := CalculateBundleProgress(tshirtOperations(), map[string]bool{"cut": true})

	// 5 / 25 dakika = %20 (adet oranı değil, dakika ağırlıklı)
	require.InDelta(t, 20.0, result.OverallProgressPct, 0.0001)
	require.Equal(t, []string{"sew"}, result.NextAvailableOperations)
	require.Equal(t, []string{"qc"}, result.BlockedOperations)
	require.Equal(t, 20.0, result.EstimatedCompletionTimeMins)
}

func TestCalculateBundleProgress_AllCompleted(t *testing.T) {
	result := CalculateBundleProgress(tshirtOperations(), map[string]bool{
		"cut": true, "sew": true, "qc": true,
	})

	require.Equal(t, 100.0, result.OverallProgressPct)
	require.Empty(t, result.NextAvailableOperations)
	require.Empty(t, result.BlockedOperations)
	require.Equal(t, 0.0, result.EstimatedCompletionTimeMins)
}

func TestCalculateBundleProgress_EmptyOperationList(t *testing.T) {
	result := CalculateBundleProgress(nil, map[string]bool{"cut": true})

	require.Equal(t, 0.0, result.OverallProgressPct)
	require.Empty(t, result.NextAvailableOperations)
	require.Empty(t, result.BlockedOperations)
	require.Equal(t, 0.0, result.EstimatedCompletionTimeMins)
}

func TestCalculateBundleProgress_ZeroTotalMinutes(t *testing.T) {
	ops := []OperationSpec{
		{Name: "etiket", StandardMinutes: 0},
		{Name: "poşetleme", StandardMinutes: 0, DependsOn: []string{"etiket"}},
	}

	// Toplam dakika 0 iken yüzde tam olarak 0 dönmeli, NaN değil
	result := CalculateBundleProgress(ops, map[string]bool{"etiket": true})
	require.Equal(t, 0.0, result.OverallProgressPct)
	require.Equal(t, []string{"poşetleme"}, result.NextAvailableOperations)
}

func TestCalculateBundleProgress_UnknownDependencyBlocksForever(t *testing.T) {
	ops := []OperationSpec{
		{Name: "kol takma", StandardMinutes: 10},
		{Name: "yaka takma", StandardMinutes: 8, DependsOn: []string{"olmayan operasyon"}},
	}

	// Diğer her şey tamamlansa bile bilinmeyen bağımlılık bloke bırakır
	result := CalculateBundleProgress(ops, map[string]bool{"kol takma": true})
	require.Empty(t, result.NextAvailableOperations)
	require.Equal(t, []string{"yaka takma"}, result.BlockedOperations)

	// Bilinmeyen ad tamamlanmış kümede görünse dahi sağlanmış sayılmaz
	result = CalculateBundleProgress(ops, map[string]bool{
		"kol takma": true, "olmayan operasyon": true,
	})
	require.Equal(t, []string{"yaka takma"}, result.BlockedOperations)
}

func TestCalculateBundleProgress_PartitionProperty(t *testing.T) {
	ops := []OperationSpec{
		{Name: "a", StandardMinutes: 1},
		{Name: "b", StandardMinutes: 2, DependsOn: []string{"a"}},
		{Name: "c", StandardMinutes: 3, DependsOn: []string{"a", "b"}},
		{Name: "d", StandardMinutes: 4, DependsOn: []string{"yok"}},
		{Name: "e", StandardMinutes: 5},
	}

	completedSets := []map[string]bool{
		{},
		{"a": true},
		{"a": true, "b": true},
		{"a": true, "b": true, "e": true},
		{"a": true, "b": true, "c": true, "e": true},
	}

	for _, completed := range completedSets {
		result := CalculateBundleProgress(ops, completed)

		// available ∪ blocked ∪ completed = tüm operasyonlar, kesişimsiz
		all := make(map[string]int)
		for _, name := range result.NextAvailableOperations {
			all[name]++
		}
		for _, name := range result.BlockedOperations {
			all[name]++
		}
		for name := range completed {
			all[name]++
		}

		for _, op := range ops {
			require.Equal(t, 1, all[op.Name], "operasyon tam bir kümede olmalı: %s", op.Name)
		}
		require.Len(t, all, len(ops))
	}
}

func TestCalculateBundleProgress_EmptyDependsOnAlwaysAvailable(t *testing.T) {
	ops := []OperationSpec{
		{Name: "cep dikme", StandardMinutes: 6},
		{Name: "pat dikme", StandardMinutes: 7, DependsOn: []string{"cep dikme"}},
	}

	result := CalculateBundleProgress(ops, map[string]bool{})
	require.Contains(t, result.NextAvailableOperations, "cep dikme")

	// Tamamlandıysa artık listede olmamalı
	result = CalculateBundleProgress(ops, map[string]bool{"cep dikme": true})
	require.NotContains(t, result.NextAvailableOperations, "cep dikme")
}

func TestCalculateBundleProgress_DependentNeverAvailableBeforeDependency(t *testing.T) {
	ops := []OperationSpec{
		{Name: "omuz çatma", StandardMinutes: 4},
		{Name: "yan çatma", StandardMinutes: 9, DependsOn: []string{"omuz çatma"}},
	}

	result := CalculateBundleProgress(ops, map[string]bool{})
	require.NotContains(t, result.NextAvailableOperations, "yan çatma")
	require.Contains(t, result.BlockedOperations, "yan çatma")
}

func TestCalculateBundleProgress_MonotonicProgress(t *testing.T) {
	ops := []OperationSpec{
		{Name: "a", StandardMinutes: 3},
		{Name: "b", StandardMinutes: 7, DependsOn: []string{"a"}},
		{Name: "c", StandardMinutes: 2, DependsOn: []string{"b"}},
		{Name: "d", StandardMinutes: 8},
	}

	order := []string{"a", "d", "b", "c"}
	completed := map[string]bool{}
	prev := -1.0

	// Tamamlanan küme büyüdükçe yüzde hiç azalmamalı
	for _, name := range order {
		completed[name] = true
		result := CalculateBundleProgress(ops, completed)
		require.GreaterOrEqual(t, result.OverallProgressPct, prev)
		prev = result.OverallProgressPct
	}
	require.Equal(t, 100.0, prev)
}

func TestCalculateBundleProgress_DuplicateNamesKeepFirst(t *testing.T) {
	ops := []OperationSpec{
		{Name: "dikiş", StandardMinutes: 10},
		{Name: "dikiş", StandardMinutes: 99}, // mükerrer ad: ilki esas alınır
		{Name: "ütü", StandardMinutes: 10, DependsOn: []string{"dikiş"}},
	}

	result := CalculateBundleProgress(ops, map[string]bool{"dikiş": true})
	require.InDelta(t, 50.0, result.OverallProgressPct, 0.0001)
	require.Equal(t, []string{"ütü"}, result.NextAvailableOperations)
}

func TestCalculateBundleProgress_MultipleDependencies(t *testing.T) {
	ops := []OperationSpec{
		{Name: "ön panel", StandardMinutes: 5},
		{Name: "arka panel", StandardMinutes: 5},
		{Name: "birleştirme", StandardMinutes: 12, DependsOn: []string{"ön panel", "arka panel"}},
	}

	// Tek bağımlılık bitmişken hâlâ bloke
	result := CalculateBundleProgress(ops, map[string]bool{"ön panel": true})
	require.Contains(t, result.BlockedOperations, "birleştirme")
	require.Contains(t, result.NextAvailableOperations, "arka panel")

	// İkisi de bitince başlanabilir
	result = CalculateBundleProgress(ops, map[string]bool{"ön panel": true, "arka panel": true})
	require.Equal(t, []string{"birleştirme"}, result.NextAvailableOperations)
	require.Empty(t, result.BlockedOperations)
}
