// Command seed-demo loads a small demo dataset: one professor, three
// students, a class with everyone enrolled, a validated exam, graded
// responses, and two detected misconception clusters ready for review.
package main

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/conceptlens/conceptlens-backend/internal/config"
	"github.com/conceptlens/conceptlens-backend/internal/database"
	"github.com/conceptlens/conceptlens-backend/internal/logger"
	"github.com/conceptlens/conceptlens-backend/internal/model"
	"github.com/conceptlens/conceptlens-backend/internal/repository"
	"github.com/conceptlens/conceptlens-backend/internal/service"
)

const demoPassword = "password123"

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	userRepo := repository.NewUserRepository(pool)
	classRepo := repository.NewClassRepository(pool)
	examRepo := repository.NewExamRepository(pool)
	responseRepo := repository.NewResponseRepository(pool)
	misRepo := repository.NewMisconceptionRepository(pool)

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), cfg.BcryptCost)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to hash demo password")
	}

	professor := &model.User{
		FullName:     "Prof. Ada Reyes",
		Email:        "professor@conceptlens.dev",
		PasswordHash: string(hash),
		Role:         model.RoleProfessor,
	}
	if err := userRepo.Create(ctx, professor); err != nil {
		log.Fatal().Err(err).Msg("Failed to create professor")
	}

	students := make([]*model.User, 0, 3)
	for i, name := range []string{"Sam Ortiz", "Lena Kova", "Ravi Anand"} {
		student := &model.User{
			FullName:     name,
			Email:        fmt.Sprintf("student%d@conceptlens.dev", i+1),
			PasswordHash: string(hash),
			Role:         model.RoleStudent,
		}
		if err := userRepo.Create(ctx, student); err != nil {
			log.Fatal().Err(err).Msg("Failed to create student")
		}
		students = append(students, student)
	}

	code, err := service.GenerateClassCode()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to generate class code")
	}
	class := &model.Class{
		Name:        "Database Systems 101",
		SubjectID:   "Database Systems",
		ProfessorID: professor.ID,
		ClassCode:   code,
	}
	if err := classRepo.Create(ctx, class); err != nil {
		log.Fatal().Err(err).Msg("Failed to create class")
	}
	for _, student := range students {
		if err := classRepo.AddStudent(ctx, class.ID, student.ID); err != nil {
			log.Fatal().Err(err).Msg("Failed to enroll student")
		}
	}

	exam := &model.Exam{
		ProfessorID: professor.ID,
		SubjectID:   "Database Systems",
		Title:       "Quiz 1: Keys and Normalization",
		IsValidated: true,
		ClassIDs:    []uuid.UUID{class.ID},
		Questions: []model.Question{
			{
				Text:          "What is a foreign key constraint?",
				Options:       []string{"A reference to a primary key in another table", "A unique index", "A NULL marker", "A trigger"},
				CorrectOption: "A reference to a primary key in another table",
				OrderNum:      0,
			},
			{
				Text:          "Which normal form removes transitive dependencies?",
				Options:       []string{"1NF", "2NF", "3NF", "BCNF"},
				CorrectOption: "3NF",
				OrderNum:      1,
			},
		},
	}
	if err := examRepo.Create(ctx, exam); err != nil {
		log.Fatal().Err(err).Msg("Failed to create exam")
	}

	wrongAnswers := []string{"A NULL marker", "A unique index", "A NULL marker"}
	responses := make([]model.StudentResponse, 0, len(students)*2)
	for i, student := range students {
		responses = append(responses,
			model.StudentResponse{
				AssessmentID: exam.ID,
				StudentID:    student.ID,
				QuestionID:   exam.Questions[0].ID,
				ResponseText: wrongAnswers[i],
				IsCorrect:    false,
			},
			model.StudentResponse{
				AssessmentID: exam.ID,
				StudentID:    student.ID,
				QuestionID:   exam.Questions[1].ID,
				ResponseText: "3NF",
				IsCorrect:    true,
			},
		)
	}
	if err := responseRepo.BulkInsert(ctx, responses); err != nil {
		log.Fatal().Err(err).Msg("Failed to store responses")
	}

	stored, err := responseRepo.ListByAssessment(ctx, exam.ID)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to reload responses")
	}
	var exampleIDs []uuid.UUID
	for _, r := range stored {
		if !r.IsCorrect {
			exampleIDs = append(exampleIDs, r.ID)
		}
	}

	clusters := []*model.Misconception{
		{
			AssessmentID:    exam.ID,
			QuestionID:      exam.Questions[0].ID.String(),
			ClusterLabel:    "Students selected 'A NULL marker' instead of the reference definition",
			StudentCount:    2,
			ConfidenceScore: 0.91,
			Status:          model.MisconceptionPending,
			ExampleIDs:      exampleIDs,
		},
		{
			AssessmentID:    exam.ID,
			QuestionID:      exam.Questions[0].ID.String(),
			ClusterLabel:    "Confusion with 'A unique index' on the foreign key question",
			StudentCount:    1,
			ConfidenceScore: 0.78,
			Status:          model.MisconceptionPending,
		},
	}
	for _, m := range clusters {
		if err := misRepo.Insert(ctx, m); err != nil {
			log.Fatal().Err(err).Msg("Failed to insert misconception")
		}
	}

	fmt.Println("Demo data loaded.")
	fmt.Printf("  professor login: %s / %s\n", professor.Email, demoPassword)
	fmt.Printf("  class code:      %s\n", class.ClassCode)
	fmt.Printf("  exam id:         %s\n", exam.ID)
}
