package routing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func tshirtSteps() []StepRequest {
	return []StepRequest{
		{
			StepName: "Kesim", Sequence: 1,
			Operations: []OperationRequest{
				{Name: "kesim", StandardMinutes: 5},
			},
		},
		{
			StepName: "Dikim", Sequence: 2,
			Operations: []OperationRequest{
				{Name: "kol takma", StandardMinutes: 10, DependsOn: []string{"kesim"}},
				{Name: "yaka takma", StandardMinutes: 8, DependsOn: []string{"kesim", "kol takma"}},
			},
		},
	}
}

func TestValidateOperations_Valid(t *testing.T) {
	warnings, err := validateOperations(tshirtSteps())

	require.NoError(t, err)
	require.Empty(t, warnings)
}

func TestValidateOperations_DuplicateName(t *testing.T) {
	steps := tshirtSteps()
	steps[1].Operations = append(steps[1].Operations, OperationRequest{Name: "kesim", StandardMinutes: 3})

	_, err := validateOperations(steps)

	require.Error(t, err)
	require.Contains(t, err.Error(), "mükerrer operasyon adı")
}

// Başka bir adımda da olsa aynı ad mükerrerdir; eşleşme şablon genelinde isimle yapılır
func TestValidateOperations_DuplicateAcrossSteps(t *testing.T) {
	steps := tshirtSteps()
	steps = append(steps, StepRequest{
		StepName: "Kalite", Sequence: 3,
		Operations: []OperationRequest{{Name: "kol takma", StandardMinutes: 2}},
	})

	_, err := validateOperations(steps)

	require.Error(t, err)
}

func TestValidateOperations_EmptyName(t *testing.T) {
	steps := tshirtSteps()
	steps[0].Operations[0].Name = "   "

	_, err := validateOperations(steps)

	require.Error(t, err)
	require.Contains(t, err.Error(), "boş olamaz")
}

func TestValidateOperations_NegativeMinutes(t *testing.T) {
	steps := tshirtSteps()
	steps[0].Operations[0].StandardMinutes = -1

	_, err := validateOperations(steps)

	require.Error(t, err)
}

// Şablonda olmayan bağımlılık hata değil uyarıdır: kayıt edilir ama o
// operasyon hiçbir zaman başlatılamaz
func TestValidateOperations_UnknownDependencyWarns(t *testing.T) {
	steps := tshirtSteps()
	steps[1].Operations[0].DependsOn = []string{"kesim", "ütüleme"}

	warnings, err := validateOperations(steps)

	require.NoError(t, err)
	require.Len(t, warnings, 1)
	require.Contains(t, warnings[0], "ütüleme")
	require.Contains(t, warnings[0], "kalıcı bloke")
}

func TestValidateOperations_BlankDependencyIgnored(t *testing.T) {
	steps := tshirtSteps()
	steps[1].Operations[0].DependsOn = []string{"kesim", "  "}

	warnings, err := validateOperations(steps)

	require.NoError(t, err)
	require.Empty(t, warnings)
}
