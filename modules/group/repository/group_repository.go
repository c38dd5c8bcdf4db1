package repository

import (
	"campusflow/core/database"
	"campusflow/core/logger"
	"campusflow/core/params"
	"campusflow/modules/group/entity"
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type GroupRepositoryInterface interface {
	Create(ctx context.Context, group *entity.Group) error
	SlugExists(ctx context.Context, slug string) (bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Group, error)
	Update(ctx context.Context, group *entity.Group) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, groupType string, params params.QueryParams) (*entity.PaginatedGroupEntity, error)

	AddMember(ctx context.Context, groupID, userID uuid.UUID, role string) (int, error)
	RemoveMember(ctx context.Context, groupID, userID uuid.UUID) (int, error)
	IsMember(ctx context.Context, groupID, userID uuid.UUID) (bool, error)
	ListMembers(ctx context.Context, groupID uuid.UUID) ([]entity.Member, error)
	ListMemberIDs(ctx context.Context, groupID uuid.UUID) ([]uuid.UUID, error)
	GroupIDsForUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

const groupColumns = `id, name, slug, type, description, owner_id, member_count, created_at, updated_at`

type GroupRepository struct {
	db database.IDatabase
}

func NewGroupRepository(db database.IDatabase) GroupRepositoryInterface {
	return &GroupRepository{db: db}
}

// Create inserts the group with its owner as the first moderator.
func (r *GroupRepository) Create(ctx context.Context, group *entity.Group) error {
	err := r.db.WithTx(ctx, func(tx database.Querier) error {
		query := `
			INSERT INTO groups (id, name, slug, type, description, owner_id, member_count, created_at, updated_at)
			VALUES (:id, :name, :slug, :type, :description, :owner_id, 1, :created_at, :updated_at)
		`
		if _, err := tx.NamedExecContext(ctx, query, group); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO group_members (group_id, user_id, role) VALUES ($1, $2, $3)`,
			group.ID, group.OwnerID, entity.RoleModerator,
		)
		return err
	})
	if err != nil {
		logger.Error("GroupRepository:Create", err)
		return err
	}
	group.MemberCount = 1
	return nil
}

func (r *GroupRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM groups WHERE slug = $1)`, slug)
	if err != nil {
		logger.Error("GroupRepository:SlugExists", err)
		return false, err
	}
	return exists, nil
}

func (r *GroupRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Group, error) {
	var group entity.Group
	err := r.db.GetContext(ctx, &group, `SELECT `+groupColumns+` FROM groups WHERE id = $1`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("GroupRepository:GetByID", err)
		return nil, err
	}
	return &group, nil
}

func (r *GroupRepository) Update(ctx context.Context, group *entity.Group) error {
	query := `
		UPDATE groups
		SET name = $1, description = $2, updated_at = NOW()
		WHERE id = $3
	`
	if err := r.db.ExecContext(ctx, query, group.Name, group.Description, group.ID); err != nil {
		logger.Error("GroupRepository:Update", err)
		return err
	}
	return nil
}

func (r *GroupRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.ExecContext(ctx, `DELETE FROM groups WHERE id = $1`, id); err != nil {
		logger.Error("GroupRepository:Delete", err)
		return err
	}
	return nil
}

func (r *GroupRepository) List(ctx context.Context, groupType string, params params.QueryParams) (*entity.PaginatedGroupEntity, error) {
	var (
		conditions []string
		args       []any
	)
	argIndex := 1

	if groupType != "" {
		conditions = append(conditions, fmt.Sprintf("type = $%d", argIndex))
		args = append(args, groupType)
		argIndex++
	}
	if params.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(name ILIKE $%d OR description ILIKE $%d)", argIndex, argIndex))
		args = append(args, "%"+params.Search+"%")
		argIndex++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	var totalItems int
	if err := r.db.GetContext(ctx, &totalItems, "SELECT COUNT(*) FROM groups"+whereClause, args...); err != nil {
		logger.Error("GroupRepository:List:Count", err)
		return nil, err
	}

	dataQuery := `SELECT ` + groupColumns + ` FROM groups` + whereClause +
		fmt.Sprintf(" ORDER BY member_count DESC, created_at DESC LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, params.PageSize, params.Offset())

	var groups []entity.Group
	if err := r.db.SelectContext(ctx, &groups, dataQuery, args...); err != nil {
		logger.Error("GroupRepository:List:Select", err)
		return nil, err
	}

	return &entity.PaginatedGroupEntity{
		Items:      groups,
		TotalItems: totalItems,
		PageNumber: params.PageNumber,
		PageSize:   params.PageSize,
	}, nil
}

// AddMember is idempotent. It returns the member count after the call.
func (r *GroupRepository) AddMember(ctx context.Context, groupID, userID uuid.UUID, role string) (int, error) {
	var count int
	err := r.db.WithTx(ctx, func(tx database.Querier) error {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO group_members (group_id, user_id, role)
			VALUES ($1, $2, $3)
			ON CONFLICT (group_id, user_id) DO NOTHING
		`, groupID, userID, role)
		if err != nil {
			return err
		}
		added, err := res.RowsAffected()
		if err != nil {
			return err
		}
		return tx.GetContext(ctx, &count, `
			UPDATE groups SET member_count = member_count + $2, updated_at = NOW()
			WHERE id = $1
			RETURNING member_count
		`, groupID, added)
	})
	if err != nil {
		logger.Error("GroupRepository:AddMember", err)
		return 0, err
	}
	return count, nil
}

// RemoveMember is idempotent. It returns the member count after the call.
func (r *GroupRepository) RemoveMember(ctx context.Context, groupID, userID uuid.UUID) (int, error) {
	var count int
	err := r.db.WithTx(ctx, func(tx database.Querier) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM group_members WHERE group_id = $1 AND user_id = $2`, groupID, userID)
		if err != nil {
			return err
		}
		removed, err := res.RowsAffected()
		if err != nil {
			return err
		}
		return tx.GetContext(ctx, &count, `
			UPDATE groups SET member_count = GREATEST(member_count - $2, 0), updated_at = NOW()
			WHERE id = $1
			RETURNING member_count
		`, groupID, removed)
	})
	if err != nil {
		logger.Error("GroupRepository:RemoveMember", err)
		return 0, err
	}
	return count, nil
}

func (r *GroupRepository) IsMember(ctx context.Context, groupID, userID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM group_members WHERE group_id = $1 AND user_id = $2)`, groupID, userID)
	if err != nil {
		logger.Error("GroupRepository:IsMember", err)
		return false, err
	}
	return exists, nil
}

func (r *GroupRepository) ListMembers(ctx context.Context, groupID uuid.UUID) ([]entity.Member, error) {
	query := `
		SELECT gm.group_id, gm.user_id, gm.role, gm.joined_at, u.name, u.avatar_url
		FROM group_members gm
		JOIN users u ON u.id = gm.user_id
		WHERE gm.group_id = $1
		ORDER BY gm.role = 'moderator' DESC, gm.joined_at ASC
	`
	var members []entity.Member
	if err := r.db.SelectContext(ctx, &members, query, groupID); err != nil {
		logger.Error("GroupRepository:ListMembers", err)
		return nil, err
	}
	return members, nil
}

func (r *GroupRepository) ListMemberIDs(ctx context.Context, groupID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.SelectContext(ctx, &ids, `SELECT user_id FROM group_members WHERE group_id = $1`, groupID); err != nil {
		logger.Error("GroupRepository:ListMemberIDs", err)
		return nil, err
	}
	return ids, nil
}

func (r *GroupRepository) GroupIDsForUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.SelectContext(ctx, &ids, `SELECT group_id FROM group_members WHERE user_id = $1`, userID); err != nil {
		logger.Error("GroupRepository:GroupIDsForUser", err)
		return nil, err
	}
	return ids, nil
}
