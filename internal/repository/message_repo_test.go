package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/desejolivre/chat-backend/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestCreateAndTouchConversation_CommitsBothWrites(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMessageRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `chat_messages`").
		WillReturnResult(sqlmock.NewResult(100, 1))
	mock.ExpectExec("UPDATE `chat_conversations` SET `last_message_at`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	message := &domain.Message{
		ConversationID: 10,
		SenderKind:     domain.SenderUser,
		SenderID:       1,
		Content:        "oi",
		MessageType:    domain.MessageText,
		CreatedAt:      time.Now(),
	}
	err := repo.CreateAndTouchConversation(message)

	assert.NoError(t, err)
	assert.Equal(t, int64(100), message.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateAndTouchConversation_RollsBackOnInsertFailure(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMessageRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `chat_messages`").
		WillReturnError(errors.New("insert failed"))
	mock.ExpectRollback()

	err := repo.CreateAndTouchConversation(&domain.Message{ConversationID: 10, Content: "oi"})

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkReadBulk_SkipsOwnMessages(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMessageRepository(db)

	mock.ExpectExec("UPDATE `chat_messages` SET").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), domain.SenderUser, int64(1), 10, false).
		WillReturnResult(sqlmock.NewResult(0, 2))

	err := repo.MarkReadBulk(10, 1, time.Now())

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUnreadCount(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMessageRepository(db)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `chat_messages`").
		WithArgs(domain.SenderUser, int64(1), 10, false).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.UnreadCount(10, 1)

	assert.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestUnreadCountForUser_JoinsConversations(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMessageRepository(db)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `chat_messages` JOIN chat_conversations").
		WithArgs(domain.SenderUser, int64(1), int64(1), int64(1), false).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	count, err := repo.UnreadCountForUser(1)

	assert.NoError(t, err)
	assert.Equal(t, int64(7), count)
}

func TestLatestByConversation_EmptyReturnsNil(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMessageRepository(db)

	mock.ExpectQuery("SELECT \\* FROM `chat_messages` WHERE conversation_id = \\?").
		WithArgs(10, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "conversation_id", "content"}))

	message, err := repo.LatestByConversation(10)

	assert.NoError(t, err)
	assert.Nil(t, message)
}
