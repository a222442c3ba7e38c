package services

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Sajidcodecrack/HealthyEats2.0-sub000/internal/models"
	"github.com/Sajidcodecrack/HealthyEats2.0-sub000/internal/repository"
)

const dateLayout = "2006-01-02"

type calorieLogStore interface {
	UpsertLog(ctx context.Context, userID int64, date string) (*models.DailyLog, error)
	UpsertMeal(ctx context.Context, logID int64, mealType string, calories int) (*models.MealEntry, error)
	RecomputeTotal(ctx context.Context, logID int64) (int, error)
	SetGoalIfUnset(ctx context.Context, logID int64, goal int) (bool, error)
	SetGoal(ctx context.Context, logID int64, goal int) error
	ConfirmMeal(ctx context.Context, userID int64, date string, mealType string) error
	GetByUserAndDate(ctx context.Context, userID int64, date string) (*models.DailyLog, error)
	ListSince(ctx context.Context, userID int64, from string) ([]models.DailyLog, error)
}

type profileReader interface {
	GetByUserID(ctx context.Context, userID int64) (*models.UserProfile, error)
}

type goalAlertPublisher interface {
	PublishGoalExceeded(userID int64, date string, totalCalories, calorieGoal int)
}

type CalorieService struct {
	db       *pgxpool.Pool
	logRepo  calorieLogStore
	profiles profileReader
	alerts   goalAlertPublisher
	now      func() time.Time
}

func NewCalorieService(
	db *pgxpool.Pool,
	logRepo *repository.CalorieLogRepository,
	profiles *repository.UserProfileRepository,
	alerts goalAlertPublisher,
) *CalorieService {
	return &CalorieService{
		db:       db,
		logRepo:  logRepo,
		profiles: profiles,
		alerts:   alerts,
		now:      time.Now,
	}
}

func (s *CalorieService) today() string {
	return s.now().Format(dateLayout)
}

// LogMeal upserts a meal entry into today's log, recomputes the running
// total, and, the first time a log has no goal, derives one from the user's
// profile BMI. The whole mutation runs in one transaction so the total can
// never drift from the meal rows.
func (s *CalorieService) LogMeal(ctx context.Context, userID int64, mealType string, calories int) (*models.DailyLog, error) {
	if !models.ValidMealType(mealType) || calories < 0 {
		return nil, ErrInvalidInput
	}

	date := s.today()

	logRepo := s.logRepo
	var tx pgx.Tx
	if s.db != nil {
		var err error
		tx, err = s.db.Begin(ctx)
		if err != nil {
			return nil, err
		}
		defer func() {
			_ = tx.Rollback(ctx)
		}()
		logRepo = repository.NewCalorieLogRepository(tx)
	}

	logRow, err := logRepo.UpsertLog(ctx, userID, date)
	if err != nil {
		return nil, err
	}

	if _, err := logRepo.UpsertMeal(ctx, logRow.ID, mealType, calories); err != nil {
		return nil, err
	}

	if _, err := logRepo.RecomputeTotal(ctx, logRow.ID); err != nil {
		return nil, err
	}

	if logRow.CalorieGoal == nil {
		if goal, ok := s.suggestedGoalFromProfile(ctx, userID); ok {
			if _, err := logRepo.SetGoalIfUnset(ctx, logRow.ID, goal); err != nil {
				return nil, err
			}
		}
	}

	if tx != nil {
		if err := tx.Commit(ctx); err != nil {
			return nil, err
		}
	}

	updated, err := s.logRepo.GetByUserAndDate(ctx, userID, date)
	if err != nil {
		return nil, err
	}

	if s.alerts != nil && updated.CalorieGoal != nil && updated.TotalCalories > *updated.CalorieGoal {
		s.alerts.PublishGoalExceeded(userID, date, updated.TotalCalories, *updated.CalorieGoal)
	}

	return updated, nil
}

// suggestedGoalFromProfile computes the BMI fallback. A missing or incomplete
// profile is not an error here: the meal log proceeds, the goal stays unset.
func (s *CalorieService) suggestedGoalFromProfile(ctx context.Context, userID int64) (int, bool) {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return 0, false
	}
	if profile.HeightFeet == nil || profile.HeightInches == nil || profile.WeightKG == nil {
		return 0, false
	}

	bmi, err := CalculateBMI(*profile.HeightFeet, *profile.HeightInches, *profile.WeightKG)
	if err != nil {
		return 0, false
	}
	return SuggestCalorieIntake(bmi), true
}

// SetGoal explicitly sets today's goal. It always wins over the BMI fallback
// regardless of call order.
func (s *CalorieService) SetGoal(ctx context.Context, userID int64, goal int) (*models.DailyLog, error) {
	if goal <= 0 {
		return nil, ErrInvalidInput
	}

	date := s.today()
	logRow, err := s.logRepo.UpsertLog(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	if err := s.logRepo.SetGoal(ctx, logRow.ID, goal); err != nil {
		return nil, err
	}
	return s.logRepo.GetByUserAndDate(ctx, userID, date)
}

// ConfirmMeal marks today's entry for the given type as eaten.
// pgx.ErrNoRows surfaces when there is no log or no matching meal.
func (s *CalorieService) ConfirmMeal(ctx context.Context, userID int64, mealType string) (*models.DailyLog, error) {
	if !models.ValidMealType(mealType) {
		return nil, ErrInvalidInput
	}

	date := s.today()
	if err := s.logRepo.ConfirmMeal(ctx, userID, date, mealType); err != nil {
		return nil, err
	}
	return s.logRepo.GetByUserAndDate(ctx, userID, date)
}

// GetToday returns today's log, or pgx.ErrNoRows when none exists yet; the
// handler maps that to the empty-object contract.
func (s *CalorieService) GetToday(ctx context.Context, userID int64) (*models.DailyLog, error) {
	return s.logRepo.GetByUserAndDate(ctx, userID, s.today())
}

// GetWeekly returns logs for the trailing 7 calendar days, today included.
func (s *CalorieService) GetWeekly(ctx context.Context, userID int64) ([]models.DailyLog, error) {
	from := s.now().AddDate(0, 0, -6).Format(dateLayout)
	return s.logRepo.ListSince(ctx, userID, from)
}
