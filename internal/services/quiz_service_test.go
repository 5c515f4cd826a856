package services

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/nclex-prep/quiz-service/internal/cache"
	"github.com/nclex-prep/quiz-service/internal/events"
	"github.com/nclex-prep/quiz-service/internal/models"
	"github.com/nclex-prep/quiz-service/internal/repositories"
	"github.com/nclex-prep/quiz-service/internal/validator"
)

// MockQuizRepository is a mock implementation of QuizRepository
type MockQuizRepository struct {
	mock.Mock
}

func (m *MockQuizRepository) Create(ctx context.Context, quiz *models.Quiz) error {
	args := m.Called(ctx, quiz)
	return args.Error(0)
}

func (m *MockQuizRepository) GetByID(ctx context.Context, id uint) (*models.Quiz, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Quiz), args.Error(1)
}

func (m *MockQuizRepository) Update(ctx context.Context, quiz *models.Quiz) error {
	args := m.Called(ctx, quiz)
	return args.Error(0)
}

func (m *MockQuizRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockQuizRepository) List(ctx context.Context, filters repositories.QuizFilters) ([]*models.Quiz, int64, error) {
	args := m.Called(ctx, filters)
	return args.Get(0).([]*models.Quiz), args.Get(1).(int64), args.Error(2)
}

func (m *MockQuizRepository) GetByCourse(ctx context.Context, courseID uint, filters repositories.QuizFilters) ([]*models.Quiz, int64, error) {
	args := m.Called(ctx, courseID, filters)
	return args.Get(0).([]*models.Quiz), args.Get(1).(int64), args.Error(2)
}

func (m *MockQuizRepository) Search(ctx context.Context, query string, filters repositories.QuizFilters) ([]*models.Quiz, int64, error) {
	args := m.Called(ctx, query, filters)
	return args.Get(0).([]*models.Quiz), args.Get(1).(int64), args.Error(2)
}

func (m *MockQuizRepository) UpdateStatus(ctx context.Context, id uint, status models.QuizStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockQuizRepository) ExistsByTitle(ctx context.Context, title string, courseID uint, excludeID *uint) (bool, error) {
	args := m.Called(ctx, title, courseID, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockQuizRepository) CountByCourse(ctx context.Context, courseID uint) (int64, error) {
	args := m.Called(ctx, courseID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockQuizRepository) GetCourseStats(ctx context.Context, courseID uint) (*repositories.QuizStats, error) {
	args := m.Called(ctx, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repositories.QuizStats), args.Error(1)
}

// MockCourseRepository is a mock implementation of CourseRepository
type MockCourseRepository struct {
	mock.Mock
}

func (m *MockCourseRepository) GetByID(ctx context.Context, id uint) (*models.Course, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Course), args.Error(1)
}

func (m *MockCourseRepository) List(ctx context.Context, filters repositories.CourseFilters) ([]*models.Course, int64, error) {
	args := m.Called(ctx, filters)
	return args.Get(0).([]*models.Course), args.Get(1).(int64), args.Error(2)
}

func (m *MockCourseRepository) GetModules(ctx context.Context, courseID uint) ([]*models.Module, error) {
	args := m.Called(ctx, courseID)
	return args.Get(0).([]*models.Module), args.Error(1)
}

func (m *MockCourseRepository) GetVideos(ctx context.Context, courseID uint) ([]*models.Video, error) {
	args := m.Called(ctx, courseID)
	return args.Get(0).([]*models.Video), args.Error(1)
}

// MockRepository aggregates the entity mocks
type MockRepository struct {
	quiz   *MockQuizRepository
	course *MockCourseRepository
}

func newMockRepository() *MockRepository {
	return &MockRepository{
		quiz:   new(MockQuizRepository),
		course: new(MockCourseRepository),
	}
}

func (m *MockRepository) Quiz() repositories.QuizRepository     { return m.quiz }
func (m *MockRepository) Course() repositories.CourseRepository { return m.course }
func (m *MockRepository) Ping(ctx context.Context) error        { return nil }
func (m *MockRepository) Close() error                          { return nil }

// noopCache satisfies CacheService without a redis instance
type noopCache struct{}

func (noopCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return nil
}
func (noopCache) Get(ctx context.Context, key string, dest interface{}) error {
	return cache.ErrCacheMiss
}
func (noopCache) Delete(ctx context.Context, key string) error      { return nil }
func (noopCache) DeletePattern(ctx context.Context, p string) error { return nil }

// ===== TEST FIXTURES =====

func testLogger() *slog.Logger {
	return slog.Default()
}

func testCourse() *models.Course {
	return &models.Course{ID: 10, Title: "Pharmacology Review"}
}

func validSaveRequest() *SaveQuizRequest {
	return &SaveQuizRequest{
		Title:    "Cardiac Medications Quiz",
		CourseID: 10,
		Questions: []models.Question{
			{
				Type:   models.MultipleChoice,
				Text:   "Which medication slows heart rate?",
				Points: 1,
				MultipleChoiceContent: &models.MultipleChoiceContent{
					Options:              []string{"Metoprolol", "Epinephrine"},
					CorrectAnswers:       []int{0},
					RequiredAnswersCount: 1,
				},
			},
		},
	}
}

func newTestQuizService(repo *MockRepository, publisher events.EventPublisher) QuizService {
	return NewQuizService(repo, noopCache{}, publisher, testLogger(), validator.New())
}

// ===== CREATE TESTS =====

func TestQuizService_Create_Success(t *testing.T) {
	repo := newMockRepository()
	publisher := events.NewMockEventPublisher(testLogger())
	service := newTestQuizService(repo, publisher)

	repo.course.On("GetByID", mock.Anything, uint(10)).Return(testCourse(), nil)
	repo.course.On("GetModules", mock.Anything, uint(10)).Return([]*models.Module{}, nil)
	repo.course.On("GetVideos", mock.Anything, uint(10)).Return([]*models.Video{}, nil)
	repo.quiz.On("ExistsByTitle", mock.Anything, "Cardiac Medications Quiz", uint(10), (*uint)(nil)).Return(false, nil)
	repo.quiz.On("Create", mock.Anything, mock.AnythingOfType("*models.Quiz")).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Quiz).ID = 1
	}).Return(nil)

	resp, err := service.Create(context.Background(), validSaveRequest(), 42)

	require.NoError(t, err)
	assert.Equal(t, uint(1), resp.ID)
	assert.Equal(t, models.QuizDraft, resp.Status)
	assert.Equal(t, uint(42), resp.CreatedBy)
	assert.Equal(t, 1, resp.QuestionCount)

	require.Len(t, publisher.Events, 1)
	assert.Equal(t, events.EventQuizCreated, publisher.Events[0].Type)
	repo.quiz.AssertExpectations(t)
}

func TestQuizService_Create_ValidationFailure(t *testing.T) {
	repo := newMockRepository()
	service := newTestQuizService(repo, events.NewMockEventPublisher(testLogger()))

	repo.course.On("GetByID", mock.Anything, uint(10)).Return(testCourse(), nil)
	repo.course.On("GetModules", mock.Anything, uint(10)).Return([]*models.Module{}, nil)
	repo.course.On("GetVideos", mock.Anything, uint(10)).Return([]*models.Video{}, nil)

	req := validSaveRequest()
	req.Title = "   "

	_, err := service.Create(context.Background(), req, 42)

	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Contains(t, err.Error(), "quiz title is required")
	repo.quiz.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestQuizService_Create_TitleCheckedBeforeCourseLookup(t *testing.T) {
	repo := newMockRepository()
	service := newTestQuizService(repo, events.NewMockEventPublisher(testLogger()))

	req := validSaveRequest()
	req.Title = ""
	req.CourseID = 0

	_, err := service.Create(context.Background(), req, 42)

	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Contains(t, err.Error(), "quiz title is required")
	repo.course.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestQuizService_Create_CourseSelectionCheckedBeforeLookup(t *testing.T) {
	repo := newMockRepository()
	service := newTestQuizService(repo, events.NewMockEventPublisher(testLogger()))

	req := validSaveRequest()
	req.CourseID = 0

	_, err := service.Create(context.Background(), req, 42)

	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Contains(t, err.Error(), "a course must be selected")
	repo.course.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestQuizService_Create_RejectsOutOfRangePassingScore(t *testing.T) {
	repo := newMockRepository()
	service := newTestQuizService(repo, events.NewMockEventPublisher(testLogger()))

	req := validSaveRequest()
	score := 150
	req.PassingScore = &score

	_, err := service.Create(context.Background(), req, 42)

	require.Error(t, err)
	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	require.Len(t, verrs, 1)
	assert.Equal(t, "passing_score", verrs[0].Field)
	assert.True(t, IsValidation(err))
	repo.course.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestQuizService_Create_RejectsUnknownQuestionTypeField(t *testing.T) {
	repo := newMockRepository()
	service := newTestQuizService(repo, events.NewMockEventPublisher(testLogger()))

	req := validSaveRequest()
	req.Questions[0].Type = "essay"

	_, err := service.Create(context.Background(), req, 42)

	require.Error(t, err)
	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	require.Len(t, verrs, 1)
	assert.Equal(t, "question_type", verrs[0].Field)
	assert.Contains(t, verrs[0].Message, "valid question type")
}

func TestQuizService_Create_CourseMissing(t *testing.T) {
	repo := newMockRepository()
	service := newTestQuizService(repo, events.NewMockEventPublisher(testLogger()))

	repo.course.On("GetByID", mock.Anything, uint(10)).Return(nil, gorm.ErrRecordNotFound)

	_, err := service.Create(context.Background(), validSaveRequest(), 42)

	assert.ErrorIs(t, err, ErrCourseNotFound)
}

func TestQuizService_Create_DuplicateTitle(t *testing.T) {
	repo := newMockRepository()
	service := newTestQuizService(repo, events.NewMockEventPublisher(testLogger()))

	repo.course.On("GetByID", mock.Anything, uint(10)).Return(testCourse(), nil)
	repo.course.On("GetModules", mock.Anything, uint(10)).Return([]*models.Module{}, nil)
	repo.course.On("GetVideos", mock.Anything, uint(10)).Return([]*models.Video{}, nil)
	repo.quiz.On("ExistsByTitle", mock.Anything, "Cardiac Medications Quiz", uint(10), (*uint)(nil)).Return(true, nil)

	_, err := service.Create(context.Background(), validSaveRequest(), 42)

	assert.ErrorIs(t, err, ErrQuizDuplicateTitle)
	assert.True(t, IsConflict(err))
}

func TestQuizService_Create_ModuleRequiredWhenCourseHasModules(t *testing.T) {
	repo := newMockRepository()
	service := newTestQuizService(repo, events.NewMockEventPublisher(testLogger()))

	repo.course.On("GetByID", mock.Anything, uint(10)).Return(testCourse(), nil)
	repo.course.On("GetModules", mock.Anything, uint(10)).Return([]*models.Module{{ID: 3, CourseID: 10}}, nil)
	repo.course.On("GetVideos", mock.Anything, uint(10)).Return([]*models.Video{}, nil)

	_, err := service.Create(context.Background(), validSaveRequest(), 42)

	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Contains(t, err.Error(), "select a module")
}

// ===== UPDATE TESTS =====

func TestQuizService_Update_ReplacesDocument(t *testing.T) {
	repo := newMockRepository()
	service := newTestQuizService(repo, events.NewMockEventPublisher(testLogger()))

	existing := &models.Quiz{
		ID:        7,
		Title:     "Old Title",
		CourseID:  10,
		Status:    models.QuizDraft,
		CreatedBy: 42,
	}
	quizID := uint(7)

	repo.quiz.On("GetByID", mock.Anything, quizID).Return(existing, nil)
	repo.course.On("GetByID", mock.Anything, uint(10)).Return(testCourse(), nil)
	repo.course.On("GetModules", mock.Anything, uint(10)).Return([]*models.Module{}, nil)
	repo.course.On("GetVideos", mock.Anything, uint(10)).Return([]*models.Video{}, nil)
	repo.quiz.On("ExistsByTitle", mock.Anything, "Cardiac Medications Quiz", uint(10), &quizID).Return(false, nil)
	repo.quiz.On("Update", mock.Anything, mock.AnythingOfType("*models.Quiz")).Return(nil)

	resp, err := service.Update(context.Background(), 7, validSaveRequest(), 42)

	require.NoError(t, err)
	assert.Equal(t, uint(7), resp.ID)
	assert.Equal(t, "Cardiac Medications Quiz", resp.Title)
	// Status and ownership survive a document replace.
	assert.Equal(t, models.QuizDraft, resp.Status)
	assert.Equal(t, uint(42), resp.CreatedBy)
}

func TestQuizService_Update_NotFound(t *testing.T) {
	repo := newMockRepository()
	service := newTestQuizService(repo, events.NewMockEventPublisher(testLogger()))

	repo.quiz.On("GetByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

	_, err := service.Update(context.Background(), 99, validSaveRequest(), 42)

	assert.ErrorIs(t, err, ErrQuizNotFound)
	assert.True(t, IsNotFound(err))
}

// ===== GATE NORMALIZATION THROUGH SAVE =====

func TestQuizService_Create_ClearsGateWhenDisabled(t *testing.T) {
	repo := newMockRepository()
	service := newTestQuizService(repo, events.NewMockEventPublisher(testLogger()))

	repo.course.On("GetByID", mock.Anything, uint(10)).Return(testCourse(), nil)
	repo.course.On("GetModules", mock.Anything, uint(10)).Return([]*models.Module{}, nil)
	repo.course.On("GetVideos", mock.Anything, uint(10)).Return([]*models.Video{{ID: 5, CourseID: 10}}, nil)
	repo.quiz.On("ExistsByTitle", mock.Anything, mock.Anything, uint(10), (*uint)(nil)).Return(false, nil)

	var saved *models.Quiz
	repo.quiz.On("Create", mock.Anything, mock.AnythingOfType("*models.Quiz")).Run(func(args mock.Arguments) {
		saved = args.Get(1).(*models.Quiz)
	}).Return(nil)

	req := validSaveRequest()
	req.RequiresVideoCompletion = false
	req.PrerequisiteVideoIDs = []uint{5}

	_, err := service.Create(context.Background(), req, 42)

	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Empty(t, saved.PrerequisiteVideoIDs)
}

func TestQuizService_Create_RejectsForeignPrerequisiteVideo(t *testing.T) {
	repo := newMockRepository()
	service := newTestQuizService(repo, events.NewMockEventPublisher(testLogger()))

	repo.course.On("GetByID", mock.Anything, uint(10)).Return(testCourse(), nil)
	repo.course.On("GetModules", mock.Anything, uint(10)).Return([]*models.Module{}, nil)
	repo.course.On("GetVideos", mock.Anything, uint(10)).Return([]*models.Video{{ID: 5, CourseID: 10}}, nil)

	req := validSaveRequest()
	req.RequiresVideoCompletion = true
	req.PrerequisiteVideoIDs = []uint{5, 999}

	_, err := service.Create(context.Background(), req, 42)

	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Contains(t, err.Error(), "prerequisite videos")
}

// ===== PUBLISH TESTS =====

func TestQuizService_Publish_Success(t *testing.T) {
	repo := newMockRepository()
	publisher := events.NewMockEventPublisher(testLogger())
	service := newTestQuizService(repo, publisher)

	stored := &models.Quiz{
		ID:       7,
		Title:    "Cardiac Medications Quiz",
		CourseID: 10,
		Status:   models.QuizDraft,
		Questions: []models.Question{
			{
				Type:   models.MultipleChoice,
				Text:   "Which medication slows heart rate?",
				Points: 2,
				MultipleChoiceContent: &models.MultipleChoiceContent{
					Options:              []string{"Metoprolol", "Epinephrine"},
					CorrectAnswers:       []int{0},
					RequiredAnswersCount: 1,
				},
			},
		},
	}

	repo.quiz.On("GetByID", mock.Anything, uint(7)).Return(stored, nil)
	repo.course.On("GetByID", mock.Anything, uint(10)).Return(testCourse(), nil)
	repo.course.On("GetModules", mock.Anything, uint(10)).Return([]*models.Module{}, nil)
	repo.course.On("GetVideos", mock.Anything, uint(10)).Return([]*models.Video{}, nil)
	repo.quiz.On("UpdateStatus", mock.Anything, uint(7), models.QuizPublished).Return(nil)

	resp, err := service.Publish(context.Background(), 7, 42)

	require.NoError(t, err)
	assert.Equal(t, models.QuizPublished, resp.Status)

	require.Len(t, publisher.Events, 1)
	assert.Equal(t, events.EventQuizPublished, publisher.Events[0].Type)
}

func TestQuizService_Publish_RejectsNonDraft(t *testing.T) {
	repo := newMockRepository()
	service := newTestQuizService(repo, events.NewMockEventPublisher(testLogger()))

	stored := &models.Quiz{ID: 7, Status: models.QuizPublished}
	repo.quiz.On("GetByID", mock.Anything, uint(7)).Return(stored, nil)

	_, err := service.Publish(context.Background(), 7, 42)

	require.Error(t, err)
	var bre *BusinessRuleError
	require.ErrorAs(t, err, &bre)
	assert.Equal(t, "publish_requires_draft", bre.Rule)
	assert.True(t, IsBusinessRule(err))
	repo.quiz.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

// ===== ARCHIVE TESTS =====

func TestQuizService_Archive_Success(t *testing.T) {
	repo := newMockRepository()
	service := newTestQuizService(repo, events.NewMockEventPublisher(testLogger()))

	stored := &models.Quiz{ID: 7, Title: "Cardiac Medications Quiz", CourseID: 10, Status: models.QuizPublished}
	repo.quiz.On("GetByID", mock.Anything, uint(7)).Return(stored, nil)
	repo.quiz.On("UpdateStatus", mock.Anything, uint(7), models.QuizArchived).Return(nil)

	resp, err := service.Archive(context.Background(), 7, 42)

	require.NoError(t, err)
	assert.Equal(t, models.QuizArchived, resp.Status)
}

func TestQuizService_Archive_RejectsNonPublished(t *testing.T) {
	repo := newMockRepository()
	service := newTestQuizService(repo, events.NewMockEventPublisher(testLogger()))

	stored := &models.Quiz{ID: 7, Status: models.QuizDraft}
	repo.quiz.On("GetByID", mock.Anything, uint(7)).Return(stored, nil)

	_, err := service.Archive(context.Background(), 7, 42)

	require.Error(t, err)
	var bre *BusinessRuleError
	require.ErrorAs(t, err, &bre)
	assert.Equal(t, "archive_requires_published", bre.Rule)
	assert.True(t, IsBusinessRule(err))
	repo.quiz.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

// ===== COURSE STATS TESTS =====

func TestQuizService_GetCourseStats(t *testing.T) {
	repo := newMockRepository()
	service := newTestQuizService(repo, events.NewMockEventPublisher(testLogger()))

	repo.course.On("GetByID", mock.Anything, uint(10)).Return(testCourse(), nil)
	repo.quiz.On("GetCourseStats", mock.Anything, uint(10)).Return(&repositories.QuizStats{
		QuizzesInCourse: 3,
		PublishedCount:  2,
		DraftCount:      1,
		GatedQuizzes:    1,
		QuestionCount:   12,
		TotalPoints:     30,
	}, nil)

	stats, err := service.GetCourseStats(context.Background(), 10)

	require.NoError(t, err)
	assert.Equal(t, 3, stats.QuizzesInCourse)
	assert.Equal(t, 2, stats.PublishedCount)
	assert.Equal(t, 12, stats.QuestionCount)
}

func TestQuizService_GetCourseStats_CourseMissing(t *testing.T) {
	repo := newMockRepository()
	service := newTestQuizService(repo, events.NewMockEventPublisher(testLogger()))

	repo.course.On("GetByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

	_, err := service.GetCourseStats(context.Background(), 99)

	assert.ErrorIs(t, err, ErrCourseNotFound)
	repo.quiz.AssertNotCalled(t, "GetCourseStats", mock.Anything, mock.Anything)
}

// ===== DELETE TESTS =====

func TestQuizService_Delete_PublishesEvent(t *testing.T) {
	repo := newMockRepository()
	publisher := events.NewMockEventPublisher(testLogger())
	service := newTestQuizService(repo, publisher)

	stored := &models.Quiz{ID: 7, Title: "Cardiac Medications Quiz", CourseID: 10}
	repo.quiz.On("GetByID", mock.Anything, uint(7)).Return(stored, nil)
	repo.quiz.On("Delete", mock.Anything, uint(7)).Return(nil)

	err := service.Delete(context.Background(), 7, 42)

	require.NoError(t, err)
	require.Len(t, publisher.Events, 1)
	assert.Equal(t, events.EventQuizDeleted, publisher.Events[0].Type)
}

// ===== EVENT FAILURE IS NOT FATAL =====

type failingPublisher struct{}

func (failingPublisher) PublishQuizEvent(ctx context.Context, event *events.QuizEvent) error {
	return errors.New("broker unavailable")
}
func (failingPublisher) Close() error { return nil }

func TestQuizService_Create_SurvivesPublisherFailure(t *testing.T) {
	repo := newMockRepository()
	service := newTestQuizService(repo, failingPublisher{})

	repo.course.On("GetByID", mock.Anything, uint(10)).Return(testCourse(), nil)
	repo.course.On("GetModules", mock.Anything, uint(10)).Return([]*models.Module{}, nil)
	repo.course.On("GetVideos", mock.Anything, uint(10)).Return([]*models.Video{}, nil)
	repo.quiz.On("ExistsByTitle", mock.Anything, mock.Anything, uint(10), (*uint)(nil)).Return(false, nil)
	repo.quiz.On("Create", mock.Anything, mock.AnythingOfType("*models.Quiz")).Return(nil)

	_, err := service.Create(context.Background(), validSaveRequest(), 42)

	assert.NoError(t, err)
}
