package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"example.com/volunteerhub/internal/auth"
	"example.com/volunteerhub/internal/models"
	"example.com/volunteerhub/internal/repositories"
)

func newTestUserService(users *mockUserStore) *UserService {
	jwt := auth.NewJWTManager("test-secret", time.Hour, "volunteerhub-test")
	return NewUserService(users, jwt)
}

func TestSignupHashesPassword(t *testing.T) {
	users := &mockUserStore{}
	var created *models.User
	users.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).
		Run(func(args mock.Arguments) { created = args.Get(1).(*models.User) }).
		Return(nil)

	svc := newTestUserService(users)
	user, err := svc.Signup(context.Background(), models.SignupRequest{
		Email:    "jane@example.com",
		Password: "s3cret-password",
		FullName: "Jane Doe",
		DOB:      "1990-04-01",
	})

	require.NoError(t, err)
	require.NotNil(t, created)
	require.NotEqual(t, "s3cret-password", created.PasswordHash)
	require.True(t, auth.CheckPassword(created.PasswordHash, "s3cret-password"))
	require.Equal(t, "Jane Doe", user.FullName)
}

func TestSignupRejectsShortPassword(t *testing.T) {
	users := &mockUserStore{}
	svc := newTestUserService(users)

	_, err := svc.Signup(context.Background(), models.SignupRequest{
		Email:    "jane@example.com",
		Password: "short",
	})

	require.Equal(t, KindValidation, KindOf(err))
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSignupDuplicateEmailIsConflict(t *testing.T) {
	users := &mockUserStore{}
	users.On("Create", mock.Anything, mock.Anything).Return(repositories.ErrDuplicateKey)

	svc := newTestUserService(users)
	_, err := svc.Signup(context.Background(), models.SignupRequest{
		Email:    "jane@example.com",
		Password: "s3cret-password",
	})

	require.Equal(t, KindConflict, KindOf(err))
}

func TestLoginIssuesVolunteerToken(t *testing.T) {
	hash, err := auth.HashPassword("s3cret-password")
	require.NoError(t, err)

	userID := models.NewUserID()
	users := &mockUserStore{}
	users.On("GetByEmail", mock.Anything, "jane@example.com").
		Return(&models.User{ID: userID, Email: "jane@example.com", PasswordHash: hash}, nil)

	jwt := auth.NewJWTManager("test-secret", time.Hour, "volunteerhub-test")
	svc := NewUserService(users, jwt)

	result, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "jane@example.com",
		Password: "s3cret-password",
	})
	require.NoError(t, err)
	require.Equal(t, auth.RoleVolunteer, result.UserType)

	claims, err := jwt.Validate(result.Token)
	require.NoError(t, err)
	require.Equal(t, userID.String(), claims.Subject)
	require.Equal(t, auth.RoleVolunteer, claims.Role)
}

func TestLoginWrongPasswordIsUnauthorized(t *testing.T) {
	hash, err := auth.HashPassword("s3cret-password")
	require.NoError(t, err)

	users := &mockUserStore{}
	users.On("GetByEmail", mock.Anything, "jane@example.com").
		Return(&models.User{ID: models.NewUserID(), PasswordHash: hash}, nil)

	svc := newTestUserService(users)
	_, err = svc.Login(context.Background(), models.LoginRequest{
		Email:    "jane@example.com",
		Password: "wrong-password",
	})

	require.Equal(t, KindUnauthorized, KindOf(err))
}

func TestLoginUnknownEmailIsUnauthorized(t *testing.T) {
	users := &mockUserStore{}
	users.On("GetByEmail", mock.Anything, "nobody@example.com").
		Return(nil, repositories.ErrNotFound)

	svc := newTestUserService(users)
	_, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "nobody@example.com",
		Password: "s3cret-password",
	})

	require.Equal(t, KindUnauthorized, KindOf(err))
}

func TestUpdateProfileOnlyTouchesMutableFields(t *testing.T) {
	userID := models.NewUserID()
	users := &mockUserStore{}
	users.On("GetByID", mock.Anything, userID).Return(&models.User{
		ID:       userID,
		Email:    "jane@example.com",
		FullName: "Jane Doe",
		DOB:      "1990-04-01",
	}, nil)

	var updated *models.User
	users.On("Update", mock.Anything, mock.AnythingOfType("*models.User")).
		Run(func(args mock.Arguments) { updated = args.Get(1).(*models.User) }).
		Return(nil)

	newName := "Jane Q. Doe"
	svc := newTestUserService(users)
	_, err := svc.UpdateProfile(context.Background(), userID, models.UpdateProfileRequest{
		FullName: &newName,
	})

	require.NoError(t, err)
	require.Equal(t, "Jane Q. Doe", updated.FullName)
	require.Equal(t, "jane@example.com", updated.Email)
	require.Equal(t, "1990-04-01", updated.DOB)
}

func TestMyEventsSplitsAroundToday(t *testing.T) {
	userID := models.NewUserID()
	today := time.Now().Format(models.DateLayout)
	yesterday := time.Now().AddDate(0, 0, -1).Format(models.DateLayout)
	nextMonth := time.Now().AddDate(0, 1, 0).Format(models.DateLayout)

	users := &mockUserStore{}
	users.On("ListEvents", mock.Anything, userID).Return([]models.EventSummary{
		{ID: models.NewEventID(), Name: "Past", Date: yesterday},
		{ID: models.NewEventID(), Name: "Today", Date: today},
		{ID: models.NewEventID(), Name: "Future", Date: nextMonth},
	}, nil)

	svc := newTestUserService(users)
	got, err := svc.MyEvents(context.Background(), userID)

	require.NoError(t, err)
	require.Len(t, got.PastEvents, 1)
	require.Equal(t, "Past", got.PastEvents[0].Name)
	require.Len(t, got.UpcomingEvents, 2)
	require.Equal(t, "Today", got.UpcomingEvents[0].Name)
}
