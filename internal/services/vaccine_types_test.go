package services

import (
	"testing"

	"github.com/acairampoma/gallerapp-back-sub001/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateVaccineType(t *testing.T) {
	env := newTestEnv(t)

	vt, err := env.types.Create(CreateVaccineTypeInput{
		Name:                   "Newcastle",
		DiseaseName:            "Enfermedad de Newcastle",
		ApplicationMethod:      models.MethodOcular,
		ProtectionDurationDays: intPtr(90),
		IsMandatory:            true,
	})
	require.NoError(t, err)

	assert.NotZero(t, vt.ID)
	assert.True(t, vt.IsActive)
	assert.True(t, vt.IsMandatory)
	assert.Equal(t, 90, *vt.ProtectionDurationDays)
}

func TestCreateVaccineTypeDuplicateName(t *testing.T) {
	env := newTestEnv(t)
	env.mustCreateVaccineType(t, "Newcastle", intPtr(90), true)

	_, err := env.types.Create(CreateVaccineTypeInput{
		Name:              "Newcastle",
		DiseaseName:       "Enfermedad de Newcastle",
		ApplicationMethod: models.MethodOcular,
	})
	require.Error(t, err)
	assert.True(t, IsConflict(err))
}

func TestCreateVaccineTypeValidation(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name  string
		input CreateVaccineTypeInput
		field string
	}{
		{
			name:  "empty name",
			input: CreateVaccineTypeInput{DiseaseName: "x", ApplicationMethod: models.MethodIM},
			field: "name",
		},
		{
			name:  "unknown method",
			input: CreateVaccineTypeInput{Name: "a", DiseaseName: "x", ApplicationMethod: "inyectada"},
			field: "application_method",
		},
		{
			name: "zero protection window",
			input: CreateVaccineTypeInput{
				Name: "a", DiseaseName: "x", ApplicationMethod: models.MethodIM,
				ProtectionDurationDays: intPtr(0),
			},
			field: "protection_duration_days",
		},
		{
			name: "negative minimum age",
			input: CreateVaccineTypeInput{
				Name: "a", DiseaseName: "x", ApplicationMethod: models.MethodIM,
				MinimumAgeDays: intPtr(-1),
			},
			field: "minimum_age_days",
		},
		{
			name: "bad color code",
			input: CreateVaccineTypeInput{
				Name: "a", DiseaseName: "x", ApplicationMethod: models.MethodIM,
				ColorCode: "red",
			},
			field: "color_code",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.types.Create(tc.input)
			require.Error(t, err)
			var invalidErr *InvalidError
			require.ErrorAs(t, err, &invalidErr)
			assert.Equal(t, tc.field, invalidErr.Field)
		})
	}
}

func TestUnknownEnumErrorNamesPermittedSet(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.types.Create(CreateVaccineTypeInput{
		Name:              "Viruela",
		DiseaseName:       "Viruela aviar",
		ApplicationMethod: "subdermal",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "puncion")
	assert.Contains(t, err.Error(), "ocular")
}

func TestUpdateVaccineType(t *testing.T) {
	env := newTestEnv(t)
	vt := env.mustCreateVaccineType(t, "Newcastle", intPtr(90), true)

	newName := "Newcastle B1"
	updated, err := env.types.Update(vt.ID, UpdateVaccineTypeInput{
		Name:                   &newName,
		ProtectionDurationDays: intPtr(120),
	})
	require.NoError(t, err)
	assert.Equal(t, "Newcastle B1", updated.Name)
	assert.Equal(t, 120, *updated.ProtectionDurationDays)

	_, err = env.types.Update(9999, UpdateVaccineTypeInput{Name: &newName})
	var notFoundErr *NotFoundError
	require.ErrorAs(t, err, &notFoundErr)
	assert.Equal(t, "vaccine type", notFoundErr.Entity)
}

func TestListVaccineTypesExcludesInactive(t *testing.T) {
	env := newTestEnv(t)
	env.mustCreateVaccineType(t, "Newcastle", intPtr(90), true)
	inactive := env.mustCreateVaccineType(t, "Viruela", nil, false)

	_, err := env.types.Deactivate(inactive.ID)
	require.NoError(t, err)

	active, err := env.types.List(false)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Newcastle", active[0].Name)

	all, err := env.types.List(true)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestInactiveTypeRefusedForNewReferences(t *testing.T) {
	env := newTestEnv(t)
	vt := env.mustCreateVaccineType(t, "Viruela", intPtr(30), false)
	date := models.NewDate(2025, 1, 1)
	env.mustCreateRecord(t, 1, vt.ID, date)

	_, err := env.types.Deactivate(vt.ID)
	require.NoError(t, err)

	// Historical record keeps its reference; new ones are refused.
	_, err = env.records.Create(CreateRecordInput{
		RoosterID:       2,
		VaccineTypeID:   vt.ID,
		ApplicationDate: date,
	}, 7)
	var invalidErr *InvalidError
	require.ErrorAs(t, err, &invalidErr)
	assert.Equal(t, "vaccine_type_id", invalidErr.Field)

	var count int64
	require.NoError(t, env.db.Model(&models.VaccinationRecord{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
