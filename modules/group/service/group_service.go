package service

import (
	"campusflow/core/constants"
	"campusflow/core/errors"
	"campusflow/core/logger"
	"campusflow/core/params"
	"campusflow/core/utils"
	"campusflow/modules/group/dto"
	"campusflow/modules/group/entity"
	"campusflow/modules/group/mapper"
	"campusflow/modules/group/repository"
	userEntity "campusflow/modules/user/entity"
	"context"

	"github.com/google/uuid"
)

const ChatKindGroup = "group"

type UserDirectory interface {
	GetUser(ctx context.Context, id uuid.UUID) (*userEntity.User, *errors.AppError)
}

// Chats keeps the group chat participants in step with the member list.
type Chats interface {
	JoinSubject(ctx context.Context, kind string, subjectID, userID uuid.UUID) error
	LeaveSubject(ctx context.Context, kind string, subjectID, userID uuid.UUID) error
}

type GroupService struct {
	repo  repository.GroupRepositoryInterface
	users UserDirectory
	chats Chats
}

func NewGroupService(repo repository.GroupRepositoryInterface, users UserDirectory, chats Chats) *GroupService {
	return &GroupService{repo: repo, users: users, chats: chats}
}

func (s *GroupService) load(ctx context.Context, id uuid.UUID) (*entity.Group, *errors.AppError) {
	group, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get group failed", err)
	}
	if group == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "group not found", nil)
	}
	return group, nil
}

func (s *GroupService) loadOwned(ctx context.Context, id, userID uuid.UUID) (*entity.Group, *errors.AppError) {
	group, appErr := s.load(ctx, id)
	if appErr != nil {
		return nil, appErr
	}
	if group.OwnerID == userID {
		return group, nil
	}
	user, appErr := s.users.GetUser(ctx, userID)
	if appErr != nil {
		return nil, appErr
	}
	if !user.RoleAdmin {
		return nil, errors.NewAppError(errors.ErrForbidden, "only the owner or an admin can change this group", nil)
	}
	return group, nil
}

func (s *GroupService) slugFor(ctx context.Context, name string) (string, error) {
	slug := utils.Slugify(name)
	taken, err := s.repo.SlugExists(ctx, slug)
	if err != nil {
		return "", err
	}
	if taken {
		slug = utils.UniqueSlug(name)
	}
	return slug, nil
}

func (s *GroupService) CreateGroup(ctx context.Context, userID uuid.UUID, req *dto.GroupRequest) (*dto.GroupResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	name := utils.Sanitize(req.Name)
	slug, err := s.slugFor(ctx, name)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "create group failed", err)
	}

	group := &entity.Group{
		Name:        name,
		Slug:        slug,
		Type:        req.Type,
		Description: utils.Sanitize(req.Description),
		OwnerID:     userID,
	}
	group.Touch()

	if err := s.repo.Create(ctx, group); err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "create group failed", err)
	}
	s.syncChat(ctx, group.ID, userID, true)

	logger.Info("GroupService:CreateGroup", "group_id", group.ID, "slug", group.Slug)
	resp := mapper.ToGroupResponse(group)
	resp.IsMember = true
	return resp, nil
}

func (s *GroupService) GetGroup(ctx context.Context, userID, id uuid.UUID) (*dto.GroupResponse, *errors.AppError) {
	group, appErr := s.load(ctx, id)
	if appErr != nil {
		return nil, appErr
	}
	member, err := s.repo.IsMember(ctx, id, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get group failed", err)
	}
	resp := mapper.ToGroupResponse(group)
	resp.IsMember = member
	return resp, nil
}

func (s *GroupService) ListGroups(ctx context.Context, groupType string, params params.QueryParams) (*dto.PaginatedGroupResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	groups, err := s.repo.List(ctx, groupType, params)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get groups failed", err)
	}
	return mapper.ToGroupPaginationResponse(groups), nil
}

func (s *GroupService) UpdateGroup(ctx context.Context, userID, id uuid.UUID, req *dto.UpdateGroupRequest) (*dto.GroupResponse, *errors.AppError) {
	group, appErr := s.loadOwned(ctx, id, userID)
	if appErr != nil {
		return nil, appErr
	}
	if req.Name != nil {
		group.Name = utils.Sanitize(*req.Name)
	}
	if req.Description != nil {
		group.Description = utils.Sanitize(*req.Description)
	}
	if err := s.repo.Update(ctx, group); err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "update group failed", err)
	}
	return mapper.ToGroupResponse(group), nil
}

func (s *GroupService) DeleteGroup(ctx context.Context, userID, id uuid.UUID) *errors.AppError {
	if _, appErr := s.loadOwned(ctx, id, userID); appErr != nil {
		return appErr
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return errors.NewAppError(errors.ErrDeleteFailed, "delete group failed", err)
	}
	return nil
}

func (s *GroupService) Join(ctx context.Context, userID, id uuid.UUID) (*dto.MembershipResponse, *errors.AppError) {
	if _, appErr := s.load(ctx, id); appErr != nil {
		return nil, appErr
	}
	count, err := s.repo.AddMember(ctx, id, userID, entity.RoleMember)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "join group failed", err)
	}
	s.syncChat(ctx, id, userID, true)
	return &dto.MembershipResponse{GroupID: id, IsMember: true, MemberCount: count}, nil
}

func (s *GroupService) Leave(ctx context.Context, userID, id uuid.UUID) (*dto.MembershipResponse, *errors.AppError) {
	group, appErr := s.load(ctx, id)
	if appErr != nil {
		return nil, appErr
	}
	if group.OwnerID == userID {
		return nil, errors.NewAppError(errors.ErrConflict, "the owner cannot leave the group", nil)
	}
	count, err := s.repo.RemoveMember(ctx, id, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "leave group failed", err)
	}
	s.syncChat(ctx, id, userID, false)
	return &dto.MembershipResponse{GroupID: id, IsMember: false, MemberCount: count}, nil
}

func (s *GroupService) Members(ctx context.Context, id uuid.UUID) ([]dto.MemberResponse, *errors.AppError) {
	if _, appErr := s.load(ctx, id); appErr != nil {
		return nil, appErr
	}
	members, err := s.repo.ListMembers(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get members failed", err)
	}
	return mapper.ToMemberResponses(members), nil
}

// Exists reports whether the group is there, for modules that target groups by id.
func (s *GroupService) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	group, err := s.repo.GetByID(ctx, id)
	return group != nil, err
}

func (s *GroupService) MemberIDs(ctx context.Context, id uuid.UUID) ([]uuid.UUID, error) {
	return s.repo.ListMemberIDs(ctx, id)
}

func (s *GroupService) GroupIDsFor(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	return s.repo.GroupIDsForUser(ctx, userID)
}

func (s *GroupService) syncChat(ctx context.Context, groupID, userID uuid.UUID, join bool) {
	if s.chats == nil {
		return
	}
	var err error
	if join {
		err = s.chats.JoinSubject(ctx, ChatKindGroup, groupID, userID)
	} else {
		err = s.chats.LeaveSubject(ctx, ChatKindGroup, groupID, userID)
	}
	if err != nil {
		logger.Error("GroupService:SyncChat", err)
	}
}
