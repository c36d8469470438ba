package main

import (
	"context"
	"fmt"
	"time"

	"github.com/mioraralevason/suivi-backend/internal/config"
	"github.com/mioraralevason/suivi-backend/internal/database"
	"github.com/mioraralevason/suivi-backend/internal/logger"
	"github.com/mioraralevason/suivi-backend/internal/model"
	"github.com/mioraralevason/suivi-backend/internal/repository"
	"github.com/mioraralevason/suivi-backend/internal/scoring"
	"golang.org/x/crypto/bcrypt"
)

func ptr[T any](v T) *T { return &v }

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	sectionRepo := repository.NewSectionRepository(pool)
	questionRepo := repository.NewQuestionRepository(pool)
	ruleRepo := repository.NewRuleRepository(pool)
	thresholdRepo := repository.NewThresholdRepository(pool)
	institutionRepo := repository.NewInstitutionRepository(pool)
	userRepo := repository.NewUserRepository(pool)
	countryRepo := repository.NewCountryRepository(pool)

	fmt.Println("=== Seeding Demo Data ===")

	// ─── Risk Thresholds ───────────────────────────────────────────────
	if _, err := thresholdRepo.Replace(ctx, []scoring.Threshold{
		{Level: scoring.RiskLow, Label: "Risque faible", MinScore: 0, MaxScore: 50, SupervisionPeriod: "5 ans"},
		{Level: scoring.RiskMedium, Label: "Risque moyen", MinScore: 50, MaxScore: 80, SupervisionPeriod: "3 ans"},
		{Level: scoring.RiskHigh, Label: "Risque élevé", MinScore: 80, MaxScore: 100, SupervisionPeriod: "1 an"},
	}); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed thresholds")
	}
	fmt.Println("Seeded 3 risk thresholds")

	// ─── Questionnaire Structure ───────────────────────────────────────
	clients := &model.Section{Label: "Clients", Coefficient: 3, Position: 0}
	produits := &model.Section{Label: "Produits et services", Coefficient: 2, Position: 1}
	distribution := &model.Section{Label: "Canaux de distribution", Coefficient: 1, Position: 2}
	for _, s := range []*model.Section{clients, produits, distribution} {
		if err := sectionRepo.Create(ctx, s); err != nil {
			log.Fatal().Err(err).Str("section", s.Label).Msg("Failed to create section")
		}
	}

	profil := &model.SubSection{SectionID: clients.ID, Label: "Profil de la clientèle", Position: 0}
	nature := &model.SubSection{SectionID: produits.ID, Label: "Nature des produits", Position: 0}
	canaux := &model.SubSection{SectionID: distribution.ID, Label: "Canaux utilisés", Position: 0}
	for _, ss := range []*model.SubSection{profil, nature, canaux} {
		if err := sectionRepo.CreateSubSection(ctx, ss); err != nil {
			log.Fatal().Err(err).Str("sub_section", ss.Label).Msg("Failed to create sub-section")
		}
	}

	type seedRule struct {
		condition string
		points    *float64
		noteRI    *float64
		noteSC    *float64
	}
	type seedQuestion struct {
		question model.Question
		rules    []seedRule
	}

	seeds := []seedQuestion{
		{
			question: model.Question{
				SubSectionID:          profil.ID,
				Label:                 "L'institution compte-t-elle des clients PEP ?",
				Definition:            "Personnes politiquement exposées au sens de la réglementation LBC/FT.",
				Type:                  scoring.TypeBoolean,
				Required:              true,
				JustificationRequired: true,
				Position:              0,
			},
			rules: []seedRule{
				{condition: "reponse = 'oui'", points: ptr(10.0)},
				{condition: "reponse = 'non'", points: ptr(0.0)},
			},
		},
		{
			question: model.Question{
				SubSectionID: profil.ID,
				Label:        "Part des clients non-résidents (%)",
				Type:         scoring.TypePercentage,
				Required:     true,
				Position:     1,
			},
			rules: []seedRule{
				{condition: "reponse::NUMERIC > 50", points: ptr(10.0)},
				{condition: "reponse::NUMERIC BETWEEN 20 AND 50", points: ptr(5.0)},
				{condition: "reponse::NUMERIC < 20", points: ptr(1.0)},
			},
		},
		{
			question: model.Question{
				SubSectionID: nature.ID,
				Label:        "Quels services l'institution propose-t-elle ?",
				Type:         scoring.TypeMultipleChoice,
				Required:     true,
				Options:      []string{"dépôts", "crédits", "transferts internationaux", "monnaie électronique"},
				Position:     0,
			},
			rules: []seedRule{
				{condition: "reponse @> ARRAY['transferts internationaux', 'monnaie électronique']", points: ptr(10.0)},
				{condition: "reponse @> ARRAY['transferts internationaux']", points: ptr(8.0)},
				{condition: "reponse @> ARRAY['monnaie électronique']", points: ptr(6.0)},
				{condition: "reponse @> ARRAY['dépôts']", points: ptr(2.0)},
				{condition: "reponse @> ARRAY['crédits']", points: ptr(2.0)},
			},
		},
		{
			question: model.Question{
				SubSectionID:    nature.ID,
				Label:           "Niveau d'exposition des produits aux espèces",
				Type:            scoring.TypeSingleChoice,
				Required:        true,
				CommentRequired: true,
				Options:         []string{"faible", "modéré", "important"},
				Position:        1,
			},
			rules: []seedRule{
				{condition: "reponse = 'important'", noteRI: ptr(4.0), noteSC: ptr(2.0)},
				{condition: "reponse = 'modéré'", noteRI: ptr(3.0), noteSC: ptr(3.0)},
				{condition: "reponse = 'faible'", noteRI: ptr(1.0), noteSC: ptr(4.0)},
			},
		},
		{
			question: model.Question{
				SubSectionID: canaux.ID,
				Label:        "Nombre d'agences et de points de service",
				Type:         scoring.TypeInteger,
				Required:     true,
				Min:          ptr(0.0),
				Position:     0,
			},
			rules: []seedRule{
				{condition: "reponse::NUMERIC >= 20", points: ptr(8.0)},
				{condition: "reponse::NUMERIC BETWEEN 5 AND 19", points: ptr(4.0)},
				{condition: "reponse::NUMERIC < 5", points: ptr(1.0)},
			},
		},
		{
			question: model.Question{
				SubSectionID: canaux.ID,
				Label:        "Date de la dernière revue du dispositif LBC/FT",
				Type:         scoring.TypeDate,
				Required:     true,
				Position:     1,
			},
			rules: []seedRule{
				{condition: "reponse::DATE < '2023-01-01'", points: ptr(10.0)},
				{condition: "reponse::DATE >= '2023-01-01'", points: ptr(2.0)},
			},
		},
	}

	questionCount, ruleCount := 0, 0
	for i := range seeds {
		q := &seeds[i].question
		if err := questionRepo.Create(ctx, q); err != nil {
			log.Fatal().Err(err).Str("question", q.Label).Msg("Failed to create question")
		}
		questionCount++
		for _, r := range seeds[i].rules {
			sr := &model.ScoringRule{
				QuestionID: q.ID,
				Condition:  r.condition,
				Points:     r.points,
				NoteRI:     r.noteRI,
				NoteSC:     r.noteSC,
			}
			if err := ruleRepo.Create(ctx, sr); err != nil {
				log.Fatal().Err(err).Str("condition", r.condition).Msg("Failed to create rule")
			}
			ruleCount++
		}
	}
	fmt.Printf("Seeded %d questions with %d scoring rules\n", questionCount, ruleCount)

	// ─── Country Risk Lists ────────────────────────────────────────────
	countries := []model.Country{
		{Name: "Corée du Nord", Code: "KP", ListType: model.ListBlacklist},
		{Name: "Iran", Code: "IR", ListType: model.ListBlacklist},
		{Name: "Myanmar", Code: "MM", ListType: model.ListBlacklist},
		{Name: "Monaco", Code: "MC", ListType: model.ListGreylist},
		{Name: "Afrique du Sud", Code: "ZA", ListType: model.ListGreylist},
	}
	for i := range countries {
		if err := countryRepo.Create(ctx, &countries[i]); err != nil {
			log.Fatal().Err(err).Str("country", countries[i].Name).Msg("Failed to create country")
		}
	}
	fmt.Printf("Seeded %d risk-listed countries\n", len(countries))

	// ─── Demo Institution and Accounts ─────────────────────────────────
	inst := &model.Institution{
		Name:          "Microfinance Iarivo",
		Sector:        "microfinance",
		Address:       "Lot II A 45, Antananarivo",
		EmployeeCount: ptr(42),
		AnnualRevenue: ptr(1250000.0),
	}
	if err := institutionRepo.Create(ctx, inst); err != nil {
		log.Fatal().Err(err).Msg("Failed to create institution")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("demo-suivi"), cfg.BcryptCost)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to hash password")
	}

	accounts := []*model.User{
		{Email: "admin@suivi.local", Name: "Administrateur", PasswordHash: string(hash), Role: model.RoleAdmin},
		{Email: "superviseur@suivi.local", Name: "Superviseur", PasswordHash: string(hash), Role: model.RoleSuperviseur},
		{Email: "contact@iarivo.mg", Name: "Microfinance Iarivo", PasswordHash: string(hash), Role: model.RoleInstitution, InstitutionID: &inst.ID},
	}
	for _, u := range accounts {
		if err := userRepo.Create(ctx, u); err != nil {
			log.Fatal().Err(err).Str("email", u.Email).Msg("Failed to create user")
		}
	}
	fmt.Printf("Seeded institution %s and %d accounts (password: demo-suivi)\n", inst.Name, len(accounts))

	fmt.Println("\nSeed completed!")
}
