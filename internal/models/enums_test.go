package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnumValidation(t *testing.T) {
	assert.True(t, MethodOcular.Valid())
	assert.True(t, MethodAgua.Valid())
	assert.False(t, ApplicationMethod("intravenosa").Valid())

	assert.True(t, ImmunityProtegido.Valid())
	assert.False(t, ImmunityStatus("inmune").Valid())

	assert.True(t, ReactionNinguna.Valid())
	assert.False(t, AdverseReaction("shock").Valid())

	assert.True(t, RecordAplicada.Valid())
	assert.False(t, RecordStatus("borrada").Valid())

	assert.True(t, PriorityUrgente.Valid())
	assert.False(t, SchedulePriority("critica").Valid())

	assert.True(t, AlertRecordatorio.Valid())
	assert.False(t, AlertType("aviso").Valid())
}

func TestPermittedSetsSpellOutValues(t *testing.T) {
	assert.Equal(t, "IM, SC, oral, ocular, nasal, puncion, agua", PermittedApplicationMethods())
	assert.Equal(t, "aplicada, pendiente, cancelada", PermittedRecordStatuses())
	assert.Contains(t, PermittedImmunityStatuses(), "refuerzo_necesario")
	assert.Contains(t, PermittedAdverseReactions(), "inflamacion_leve")
	assert.Contains(t, PermittedSchedulePriorities(), "urgente")
	assert.Contains(t, PermittedAlertTypes(), "proxima")
}

func TestPriorityAtLeastIsMonotone(t *testing.T) {
	assert.True(t, PriorityUrgente.AtLeast(PriorityAlta))
	assert.True(t, PriorityAlta.AtLeast(PriorityAlta))
	assert.False(t, PriorityBaja.AtLeast(PriorityNormal))
	assert.False(t, PriorityAlta.AtLeast(PriorityUrgente))
}

func TestColorCodeValidation(t *testing.T) {
	assert.True(t, ValidColorCode("#1A2B3C"))
	assert.True(t, ValidColorCode("#ffffff"))
	assert.False(t, ValidColorCode("1A2B3C"))
	assert.False(t, ValidColorCode("#1A2B3"))
	assert.False(t, ValidColorCode("#1A2B3G"))
	assert.False(t, ValidColorCode("rojo"))
}
