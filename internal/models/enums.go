package models

import "strings"

// ApplicationMethod is how a vaccine is administered.
type ApplicationMethod string

const (
	MethodIM      ApplicationMethod = "IM"
	MethodSC      ApplicationMethod = "SC"
	MethodOral    ApplicationMethod = "oral"
	MethodOcular  ApplicationMethod = "ocular"
	MethodNasal   ApplicationMethod = "nasal"
	MethodPuncion ApplicationMethod = "puncion"
	MethodAgua    ApplicationMethod = "agua"
)

// ImmunityStatus tracks how protected a rooster is after a vaccination.
type ImmunityStatus string

const (
	ImmunityProtegido         ImmunityStatus = "protegido"
	ImmunityProteccionParcial ImmunityStatus = "proteccion_parcial"
	ImmunityDesarrollo        ImmunityStatus = "desarrollo"
	ImmunityPendiente         ImmunityStatus = "pendiente"
	ImmunityRefuerzoNecesario ImmunityStatus = "refuerzo_necesario"
)

// AdverseReaction is the observed reaction to an applied vaccine.
type AdverseReaction string

const (
	ReactionNinguna         AdverseReaction = "ninguna"
	ReactionInflamacionLeve AdverseReaction = "inflamacion_leve"
	ReactionFiebre          AdverseReaction = "fiebre"
	ReactionPerdidaApetito  AdverseReaction = "perdida_apetito"
	ReactionLetargo         AdverseReaction = "letargo"
	ReactionLocal           AdverseReaction = "reaccion_local"
	ReactionOtra            AdverseReaction = "otra"
)

// RecordStatus is the lifecycle state of a vaccination record.
type RecordStatus string

const (
	RecordAplicada  RecordStatus = "aplicada"
	RecordPendiente RecordStatus = "pendiente"
	RecordCancelada RecordStatus = "cancelada"
)

// SchedulePriority ranks how pressing a scheduled vaccination is.
type SchedulePriority string

const (
	PriorityBaja    SchedulePriority = "baja"
	PriorityNormal  SchedulePriority = "normal"
	PriorityAlta    SchedulePriority = "alta"
	PriorityUrgente SchedulePriority = "urgente"
)

// AlertType classifies how close (or past) a schedule is.
type AlertType string

const (
	AlertProxima      AlertType = "proxima"
	AlertVencida      AlertType = "vencida"
	AlertUrgente      AlertType = "urgente"
	AlertRecordatorio AlertType = "recordatorio"
)

var (
	applicationMethods = []ApplicationMethod{MethodIM, MethodSC, MethodOral, MethodOcular, MethodNasal, MethodPuncion, MethodAgua}
	immunityStatuses   = []ImmunityStatus{ImmunityProtegido, ImmunityProteccionParcial, ImmunityDesarrollo, ImmunityPendiente, ImmunityRefuerzoNecesario}
	adverseReactions   = []AdverseReaction{ReactionNinguna, ReactionInflamacionLeve, ReactionFiebre, ReactionPerdidaApetito, ReactionLetargo, ReactionLocal, ReactionOtra}
	recordStatuses     = []RecordStatus{RecordAplicada, RecordPendiente, RecordCancelada}
	schedulePriorities = []SchedulePriority{PriorityBaja, PriorityNormal, PriorityAlta, PriorityUrgente}
	alertTypes         = []AlertType{AlertProxima, AlertVencida, AlertUrgente, AlertRecordatorio}
)

func (m ApplicationMethod) Valid() bool { return contains(applicationMethods, m) }
func (s ImmunityStatus) Valid() bool    { return contains(immunityStatuses, s) }
func (r AdverseReaction) Valid() bool   { return contains(adverseReactions, r) }
func (s RecordStatus) Valid() bool      { return contains(recordStatuses, s) }
func (p SchedulePriority) Valid() bool  { return contains(schedulePriorities, p) }
func (t AlertType) Valid() bool         { return contains(alertTypes, t) }

// PermittedApplicationMethods lists the accepted values for error messages.
func PermittedApplicationMethods() string { return join(applicationMethods) }
func PermittedImmunityStatuses() string   { return join(immunityStatuses) }
func PermittedAdverseReactions() string   { return join(adverseReactions) }
func PermittedRecordStatuses() string     { return join(recordStatuses) }
func PermittedSchedulePriorities() string { return join(schedulePriorities) }
func PermittedAlertTypes() string         { return join(alertTypes) }

// rank orders priorities so escalation can be made monotonic.
func (p SchedulePriority) rank() int {
	switch p {
	case PriorityBaja:
		return 0
	case PriorityNormal:
		return 1
	case PriorityAlta:
		return 2
	case PriorityUrgente:
		return 3
	}
	return -1
}

// AtLeast reports whether p is at least as urgent as other.
func (p SchedulePriority) AtLeast(other SchedulePriority) bool {
	return p.rank() >= other.rank()
}

func contains[T comparable](values []T, v T) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

func join[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}
