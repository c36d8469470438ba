package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrSessionActive      ErrCode = "SESSION_ALREADY_ACTIVE"
	ErrSessionInvalidated ErrCode = "SESSION_INVALIDATED"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid       ErrCode = "TOKEN_INVALID"
	ErrTokenExpired       ErrCode = "TOKEN_EXPIRED"

	// ─── Authorization ─────────────────────────────────────────────────
	ErrForbidden             ErrCode = "FORBIDDEN"
	ErrInstitutionAccessOnly ErrCode = "INSTITUTION_ACCESS_ONLY"
	ErrAdminAccessOnly       ErrCode = "ADMIN_ACCESS_ONLY"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidID      ErrCode = "INVALID_ID"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound         ErrCode = "NOT_FOUND"
	ErrConflict         ErrCode = "CONFLICT"
	ErrDependencyExists ErrCode = "DEPENDENCY_EXISTS"
	ErrActionForbidden  ErrCode = "ACTION_FORBIDDEN"

	// ─── Scoring ───────────────────────────────────────────────────────
	ErrInvalidCondition  ErrCode = "INVALID_CONDITION"
	ErrInvalidRuleModel  ErrCode = "INVALID_RULE_MODEL"
	ErrInvalidAnswer     ErrCode = "INVALID_ANSWER"
	ErrThresholdSet      ErrCode = "INVALID_THRESHOLD_SET"
	ErrAssessmentOpen    ErrCode = "ASSESSMENT_INCOMPLETE"
	ErrAssessmentClosed  ErrCode = "ASSESSMENT_ALREADY_SUBMITTED"
	ErrNoThresholds      ErrCode = "NO_THRESHOLDS_CONFIGURED"
	ErrRuleOrderMismatch ErrCode = "RULE_ORDER_MISMATCH"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authentication ────────────────────────────────────────────────
	case ErrInvalidCredentials:
		return "Email ou mot de passe incorrect."
	case ErrSessionActive:
		return "Vous êtes déjà connecté sur un autre appareil."
	case ErrSessionInvalidated:
		return "Votre session a expiré. Veuillez vous reconnecter."
	case ErrTokenRequired:
		return "Un jeton d'authentification est requis."
	case ErrTokenInvalid:
		return "Le jeton d'authentification est invalide."
	case ErrTokenExpired:
		return "Le jeton d'authentification a expiré."

	// ─── Authorization ─────────────────────────────────────────────────
	case ErrForbidden:
		return "Vous n'avez pas la permission d'accéder à cette ressource."
	case ErrInstitutionAccessOnly:
		return "Cette ressource est réservée aux institutions."
	case ErrAdminAccessOnly:
		return "Cette ressource est réservée aux administrateurs."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "La validation a échoué. Veuillez vérifier votre saisie."
	case ErrInvalidID:
		return "Le format de l'identifiant est invalide."
	case ErrInvalidPayload:
		return "Le contenu de la requête est invalide."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "Ressource introuvable."
	case ErrConflict:
		return "Cette ressource existe déjà."
	case ErrDependencyExists:
		return "Impossible de supprimer: la ressource est encore utilisée."
	case ErrActionForbidden:
		return "Cette action n'est pas autorisée."

	// ─── Scoring ───────────────────────────────────────────────────────
	case ErrInvalidCondition:
		return "La condition de notation est invalide."
	case ErrInvalidRuleModel:
		return "Une règle doit définir soit des points, soit une note RI."
	case ErrInvalidAnswer:
		return "La réponse ne correspond pas au type de la question."
	case ErrThresholdSet:
		return "Les seuils de risque doivent couvrir 0 à 100 sans chevauchement."
	case ErrAssessmentOpen:
		return "L'évaluation est incomplète et ne peut pas être soumise."
	case ErrAssessmentClosed:
		return "L'évaluation a déjà été soumise."
	case ErrNoThresholds:
		return "Aucun seuil de risque n'est configuré."
	case ErrRuleOrderMismatch:
		return "La liste de réordonnancement doit contenir toutes les règles de la question."

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Trop de requêtes. Veuillez réessayer plus tard."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "Une erreur interne est survenue."
	default:
		return "Une erreur inattendue est survenue."
	}
}
