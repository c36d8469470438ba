package config

import (
	"fmt"

	"github.com/google/uuid"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// UserSessionKey returns the cache key for a user's active session token.
func (r *CacheKeyStruct) UserSessionKey(userID uuid.UUID) string {
	return fmt.Sprintf("login:%s", userID)
}

// InstitutionAnswersKey returns the cache key for an institution's
// autosaved answers.
func (r *CacheKeyStruct) InstitutionAnswersKey(institutionID uuid.UUID) string {
	return fmt.Sprintf("institution:%s:answers", institutionID)
}

// QuestionnaireKey returns the cache key for the published questionnaire
// payload (sections, questions, rule-less view served to institutions).
func (r *CacheKeyStruct) QuestionnaireKey() string {
	return "questionnaire:payload"
}

// ThresholdsKey returns the cache key for the active risk threshold set.
func (r *CacheKeyStruct) ThresholdsKey() string {
	return "thresholds:active"
}

// QuestionRulesKey returns the cache key for one question's decoded rules.
func (r *CacheKeyStruct) QuestionRulesKey(questionID uuid.UUID) string {
	return fmt.Sprintf("question:%s:rules", questionID)
}

// RiskUpdatesChannel returns the Redis PubSub channel carrying score and
// classification changes to dashboard subscribers.
func (r *CacheKeyStruct) RiskUpdatesChannel() string {
	return "risk:updates"
}

var CacheKey = NewCacheKeyStruct()
