package database

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/navanish17/ai-career-advisor/internal/domain/entities"
	"github.com/navanish17/ai-career-advisor/internal/infrastructure/clients/postgres"
	apperrors "github.com/navanish17/ai-career-advisor/pkg/errors"
)

func setupMockDB(t *testing.T) (*postgres.Client, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return postgres.NewClientWithDB(db), mock
}

func TestInteractionAdapterCreate(t *testing.T) {
	client, mock := setupMockDB(t)
	adapter := NewInteractionAdapter(client)

	mock.ExpectExec(`INSERT INTO "user_career_interactions"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := adapter.Create(context.Background(), &entities.Interaction{
		ID:         "int-1",
		UserEmail:  "asha@example.com",
		CareerName: "Software Engineer",
		Type:       entities.InteractionSaved,
		Score:      0.7,
		CreatedAt:  time.Now(),
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInteractionAdapterListByUser(t *testing.T) {
	client, mock := setupMockDB(t)
	adapter := NewInteractionAdapter(client)

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "user_email", "career_name", "interaction_type", "score",
		"source", "session_id", "created_at",
	}).
		AddRow("int-1", "asha@example.com", "Software Engineer", "viewed", 0.3, nil, nil, now).
		AddRow("int-2", "asha@example.com", "Data Scientist", "saved", 0.7, "results_page", "sess-9", now)

	mock.ExpectQuery(`SELECT .+ FROM "user_career_interactions" WHERE`).
		WillReturnRows(rows)

	interactions, err := adapter.ListByUser(context.Background(), "asha@example.com")

	require.NoError(t, err)
	require.Len(t, interactions, 2)
	assert.Equal(t, entities.InteractionViewed, interactions[0].Type)
	assert.Equal(t, "", interactions[0].Source)
	assert.Equal(t, "Data Scientist", interactions[1].CareerName)
	assert.Equal(t, "results_page", interactions[1].Source)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInteractionAdapterCountByUser(t *testing.T) {
	client, mock := setupMockDB(t)
	adapter := NewInteractionAdapter(client)

	mock.ExpectQuery(`SELECT COUNT`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	count, err := adapter.CountByUser(context.Background(), "asha@example.com")

	require.NoError(t, err)
	assert.Equal(t, 4, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInteractionAdapterListNeighborEmails(t *testing.T) {
	client, mock := setupMockDB(t)
	adapter := NewInteractionAdapter(client)

	rows := sqlmock.NewRows([]string{"user_email"}).
		AddRow("ravi@example.com").
		AddRow("meera@example.com")

	mock.ExpectQuery(`SELECT DISTINCT "user_email" FROM "user_career_interactions"`).
		WillReturnRows(rows)

	emails, err := adapter.ListNeighborEmails(
		context.Background(),
		[]string{"Software Engineer", "Data Scientist"},
		"asha@example.com",
	)

	require.NoError(t, err)
	assert.Equal(t, []string{"ravi@example.com", "meera@example.com"}, emails)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInteractionAdapterListNeighborEmailsEmptyInput(t *testing.T) {
	client, mock := setupMockDB(t)
	adapter := NewInteractionAdapter(client)

	// No career names means no query at all.
	emails, err := adapter.ListNeighborEmails(context.Background(), nil, "asha@example.com")

	require.NoError(t, err)
	assert.Empty(t, emails)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInteractionAdapterListNeighborScores(t *testing.T) {
	client, mock := setupMockDB(t)
	adapter := NewInteractionAdapter(client)

	rows := sqlmock.NewRows([]string{"score"}).
		AddRow(0.7).
		AddRow(1.0).
		AddRow(-0.5)

	mock.ExpectQuery(`SELECT "score" FROM "user_career_interactions"`).
		WillReturnRows(rows)

	scores, err := adapter.ListNeighborScores(
		context.Background(),
		[]string{"ravi@example.com", "meera@example.com"},
		"Data Scientist",
	)

	require.NoError(t, err)
	assert.Equal(t, []float64{0.7, 1.0, -0.5}, scores)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCareerAdapterUpdateSemanticVectorNotFound(t *testing.T) {
	client, mock := setupMockDB(t)
	adapter := NewCareerAdapter(client)

	mock.ExpectExec(`UPDATE "career_attributes" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := adapter.UpdateSemanticVector(context.Background(), "Astronaut", []float64{0.1, 0.2})

	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}
