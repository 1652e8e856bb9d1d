package repository

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/desejolivre/chat-backend/internal/common"
	"github.com/desejolivre/chat-backend/internal/domain"
	"github.com/stretchr/testify/assert"
)

func conversationRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "client_id", "companion_id", "status", "last_message_at", "created_at", "updated_at"})
}

func TestConversationFindByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewConversationRepository(db)

	mock.ExpectQuery("SELECT \\* FROM `chat_conversations` WHERE id = \\?").
		WithArgs(10, 1).
		WillReturnRows(conversationRows().AddRow(10, 1, 2, "active", nil, time.Now(), time.Now()))

	conversation, err := repo.FindByID(10)

	assert.NoError(t, err)
	assert.Equal(t, int64(10), conversation.ID)
	assert.Equal(t, int64(2), conversation.CompanionID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConversationFindByID_AbsentReturnsNil(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewConversationRepository(db)

	mock.ExpectQuery("SELECT \\* FROM `chat_conversations` WHERE id = \\?").
		WithArgs(99, 1).
		WillReturnRows(conversationRows())

	conversation, err := repo.FindByID(99)

	assert.NoError(t, err)
	assert.Nil(t, conversation)
}

func TestConversationFindByPair(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewConversationRepository(db)

	mock.ExpectQuery("SELECT \\* FROM `chat_conversations` WHERE client_id = \\? AND companion_id = \\?").
		WithArgs(1, 2, 1).
		WillReturnRows(conversationRows().AddRow(10, 1, 2, "active", nil, time.Now(), time.Now()))

	conversation, err := repo.FindByPair(1, 2)

	assert.NoError(t, err)
	assert.Equal(t, int64(10), conversation.ID)
}

func TestConversationCreate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewConversationRepository(db)

	mock.ExpectExec("INSERT INTO `chat_conversations`").
		WillReturnResult(sqlmock.NewResult(11, 1))

	conversation := &domain.Conversation{ClientID: 1, CompanionID: 2, Status: domain.ConversationActive}
	err := repo.Create(conversation)

	assert.NoError(t, err)
	assert.Equal(t, int64(11), conversation.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConversationTouchActivity(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewConversationRepository(db)

	mock.ExpectExec("UPDATE `chat_conversations` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.TouchActivity(10, time.Now()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConversationTouchActivity_MissingConversation(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewConversationRepository(db)

	mock.ExpectExec("UPDATE `chat_conversations` SET").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.TouchActivity(99, time.Now())

	assert.ErrorIs(t, err, common.ErrConversationNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConversationListForUser(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewConversationRepository(db)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `chat_conversations`").
		WithArgs(1, 1, "active").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	now := time.Now()
	mock.ExpectQuery("SELECT \\* FROM `chat_conversations` WHERE \\(client_id = \\? OR companion_id = \\?\\)").
		WithArgs(1, 1, "active", 20).
		WillReturnRows(conversationRows().
			AddRow(10, 1, 2, "active", now, now, now).
			AddRow(11, 1, 3, "active", nil, now, now))

	conversations, total, err := repo.ListForUser(1, domain.ConversationActive, 0, 20)

	assert.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, conversations, 2)
	assert.Equal(t, int64(10), conversations[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
