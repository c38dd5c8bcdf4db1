package repository

import (
	"campusflow/core/database"
	"campusflow/core/logger"
	"campusflow/modules/chat/entity"
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type ChatRepositoryInterface interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Chat, error)
	GetByDMKey(ctx context.Context, key string) (*entity.Chat, error)
	CreateDM(ctx context.Context, chat *entity.Chat) (*entity.Chat, error)
	JoinSubject(ctx context.Context, kind string, subjectID, userID uuid.UUID) error
	LeaveSubject(ctx context.Context, kind string, subjectID, userID uuid.UUID) (uuid.UUID, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]entity.ChatSummary, error)
	UnreadCount(ctx context.Context, chatID, userID uuid.UUID) (int, error)
	UnreadTotal(ctx context.Context, userID uuid.UUID) (int, error)

	ListMessages(ctx context.Context, chatID uuid.UUID, before *time.Time, limit int) ([]entity.Message, error)
	AddMessage(ctx context.Context, msg *entity.Message, recipients []uuid.UUID) error
	MarkRead(ctx context.Context, chatID, userID uuid.UUID) error
	MessageExists(ctx context.Context, id uuid.UUID) (bool, error)
}

const chatColumns = `c.id, c.type, c.subject_id, c.participants, c.dm_key, c.last_message, c.last_message_at, c.created_at, c.updated_at`

const messageColumns = `id, chat_id, sender_id, sender_name, sender_avatar, text, read_by, created_at, updated_at`

type ChatRepository struct {
	db database.IDatabase
}

func NewChatRepository(db database.IDatabase) ChatRepositoryInterface {
	return &ChatRepository{db: db}
}

func (r *ChatRepository) getOne(ctx context.Context, where string, arg any) (*entity.Chat, error) {
	var chat entity.Chat
	err := r.db.GetContext(ctx, &chat, `SELECT `+chatColumns+` FROM chats c WHERE `+where, arg)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &chat, nil
}

func (r *ChatRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Chat, error) {
	chat, err := r.getOne(ctx, "c.id = $1", id)
	if err != nil {
		logger.Error("ChatRepository:GetByID", err)
	}
	return chat, err
}

func (r *ChatRepository) GetByDMKey(ctx context.Context, key string) (*entity.Chat, error) {
	chat, err := r.getOne(ctx, "c.dm_key = $1", key)
	if err != nil {
		logger.Error("ChatRepository:GetByDMKey", err)
	}
	return chat, err
}

// CreateDM inserts the chat unless its dm_key already exists, and returns whichever row won.
func (r *ChatRepository) CreateDM(ctx context.Context, chat *entity.Chat) (*entity.Chat, error) {
	query := `
		INSERT INTO chats (id, type, participants, dm_key, created_at, updated_at)
		VALUES (:id, :type, :participants, :dm_key, :created_at, :updated_at)
		ON CONFLICT (dm_key) DO NOTHING
	`
	if _, err := r.db.NamedExecContext(ctx, query, chat); err != nil {
		logger.Error("ChatRepository:CreateDM", err)
		return nil, err
	}
	return r.GetByDMKey(ctx, *chat.DMKey)
}

// JoinSubject creates the group or room chat on first use and adds the user once.
func (r *ChatRepository) JoinSubject(ctx context.Context, kind string, subjectID, userID uuid.UUID) error {
	query := `
		INSERT INTO chats (id, type, subject_id, participants)
		VALUES ($1, $2, $3, ARRAY[$4]::TEXT[])
		ON CONFLICT (type, subject_id) WHERE subject_id IS NOT NULL DO UPDATE
		SET participants = CASE
				WHEN $4 = ANY (chats.participants) THEN chats.participants
				ELSE array_append(chats.participants, $4)
			END,
			updated_at = NOW()
	`
	if err := r.db.ExecContext(ctx, query, uuid.New(), kind, subjectID, userID.String()); err != nil {
		logger.Error("ChatRepository:JoinSubject", err)
		return err
	}
	return nil
}

// LeaveSubject returns the chat the user was removed from, or uuid.Nil when the subject has none.
func (r *ChatRepository) LeaveSubject(ctx context.Context, kind string, subjectID, userID uuid.UUID) (uuid.UUID, error) {
	var chatID uuid.UUID
	err := r.db.WithTx(ctx, func(tx database.Querier) error {
		err := tx.GetContext(ctx, &chatID, `
			UPDATE chats SET participants = array_remove(participants, $3), updated_at = NOW()
			WHERE type = $1 AND subject_id = $2
			RETURNING id
		`, kind, subjectID, userID.String())
		if err == sql.ErrNoRows {
			chatID = uuid.Nil
			return nil
		}
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `DELETE FROM chat_unreads WHERE chat_id = $1 AND user_id = $2`, chatID, userID)
		return err
	})
	if err != nil {
		logger.Error("ChatRepository:LeaveSubject", err)
		return uuid.Nil, err
	}
	return chatID, nil
}

func (r *ChatRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]entity.ChatSummary, error) {
	query := `
		SELECT ` + chatColumns + `, COALESCE(u.count, 0) AS unread_count
		FROM chats c
		LEFT JOIN chat_unreads u ON u.chat_id = c.id AND u.user_id = $1
		WHERE $2 = ANY (c.participants)
	`
	var chats []entity.ChatSummary
	if err := r.db.SelectContext(ctx, &chats, query, userID, userID.String()); err != nil {
		logger.Error("ChatRepository:ListForUser", err)
		return nil, err
	}
	return chats, nil
}

func (r *ChatRepository) UnreadCount(ctx context.Context, chatID, userID uuid.UUID) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COALESCE(MAX(count), 0) FROM chat_unreads WHERE chat_id = $1 AND user_id = $2`, chatID, userID)
	if err != nil {
		logger.Error("ChatRepository:UnreadCount", err)
		return 0, err
	}
	return count, nil
}

func (r *ChatRepository) UnreadTotal(ctx context.Context, userID uuid.UUID) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COALESCE(SUM(count), 0) FROM chat_unreads WHERE user_id = $1`, userID); err != nil {
		logger.Error("ChatRepository:UnreadTotal", err)
		return 0, err
	}
	return total, nil
}

func (r *ChatRepository) ListMessages(ctx context.Context, chatID uuid.UUID, before *time.Time, limit int) ([]entity.Message, error) {
	var (
		messages []entity.Message
		err      error
	)
	if before != nil {
		err = r.db.SelectContext(ctx, &messages, `SELECT `+messageColumns+` FROM messages
			WHERE chat_id = $1 AND created_at < $2 ORDER BY created_at DESC LIMIT $3`, chatID, *before, limit)
	} else {
		err = r.db.SelectContext(ctx, &messages, `SELECT `+messageColumns+` FROM messages
			WHERE chat_id = $1 ORDER BY created_at DESC LIMIT $2`, chatID, limit)
	}
	if err != nil {
		logger.Error("ChatRepository:ListMessages", err)
		return nil, err
	}
	return messages, nil
}

// AddMessage stores the message, moves the chat preview and bumps each recipient's unread counter.
func (r *ChatRepository) AddMessage(ctx context.Context, msg *entity.Message, recipients []uuid.UUID) error {
	err := r.db.WithTx(ctx, func(tx database.Querier) error {
		insert := `
			INSERT INTO messages (id, chat_id, sender_id, sender_name, sender_avatar, text, read_by, created_at, updated_at)
			VALUES (:id, :chat_id, :sender_id, :sender_name, :sender_avatar, :text, :read_by, :created_at, :updated_at)
		`
		if _, err := tx.NamedExecContext(ctx, insert, msg); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE chats SET last_message = $2, last_message_at = $3, updated_at = NOW() WHERE id = $1`,
			msg.ChatID, msg.Text, msg.CreatedAt,
		); err != nil {
			return err
		}
		if len(recipients) == 0 {
			return nil
		}
		ids := make(pq.StringArray, len(recipients))
		for i, id := range recipients {
			ids[i] = id.String()
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO chat_unreads (chat_id, user_id, count)
			SELECT $1, unnest($2::UUID[]), 1
			ON CONFLICT (chat_id, user_id) DO UPDATE SET count = chat_unreads.count + 1
		`, msg.ChatID, ids)
		return err
	})
	if err != nil {
		logger.Error("ChatRepository:AddMessage", err)
	}
	return err
}

func (r *ChatRepository) MarkRead(ctx context.Context, chatID, userID uuid.UUID) error {
	err := r.db.WithTx(ctx, func(tx database.Querier) error {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO chat_unreads (chat_id, user_id, count) VALUES ($1, $2, 0)
			ON CONFLICT (chat_id, user_id) DO UPDATE SET count = 0
		`, chatID, userID); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `
			UPDATE messages SET read_by = array_append(read_by, $2)
			WHERE chat_id = $1 AND sender_id <> $3 AND NOT ($2 = ANY (read_by))
		`, chatID, userID.String(), userID)
		return err
	})
	if err != nil {
		logger.Error("ChatRepository:MarkRead", err)
	}
	return err
}

func (r *ChatRepository) MessageExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	if err := r.db.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM messages WHERE id = $1)`, id); err != nil {
		logger.Error("ChatRepository:MessageExists", err)
		return false, err
	}
	return exists, nil
}
