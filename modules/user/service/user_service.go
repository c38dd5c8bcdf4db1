package service

import (
	"campusflow/core/constants"
	"campusflow/core/errors"
	"campusflow/core/logger"
	"campusflow/core/storage"
	"campusflow/core/utils"
	"campusflow/modules/user/dto"
	"campusflow/modules/user/entity"
	"campusflow/modules/user/mapper"
	"campusflow/modules/user/repository"
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type UserService struct {
	repo     repository.UserRepositoryInterface
	uploader storage.Uploader
}

func NewUserService(repo repository.UserRepositoryInterface, uploader storage.Uploader) *UserService {
	return &UserService{repo: repo, uploader: uploader}
}

func (s *UserService) load(ctx context.Context, id uuid.UUID) (*entity.User, *errors.AppError) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get user failed", err)
	}
	if user == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "user not found", nil)
	}
	return user, nil
}

// GetUser returns the raw entity for other modules.
func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*entity.User, *errors.AppError) {
	return s.load(ctx, id)
}

func (s *UserService) GetMe(ctx context.Context, id uuid.UUID) (*dto.UserResponse, *errors.AppError) {
	user, appErr := s.load(ctx, id)
	if appErr != nil {
		return nil, appErr
	}
	return mapper.ToUserResponse(user), nil
}

func (s *UserService) GetProfile(ctx context.Context, id uuid.UUID) (*dto.PublicProfile, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	user, appErr := s.load(ctx, id)
	if appErr != nil {
		return nil, appErr
	}
	profile := mapper.ToPublicProfile(user)
	return &profile, nil
}

// Profiles resolves each distinct id once.
func (s *UserService) Profiles(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]dto.PublicProfile, error) {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	unique := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	out := make(map[uuid.UUID]dto.PublicProfile, len(unique))
	if len(unique) == 0 {
		return out, nil
	}
	users, err := s.repo.GetByIDs(ctx, unique)
	if err != nil {
		return nil, err
	}
	for i := range users {
		out[users[i].ID] = mapper.ToPublicProfile(&users[i])
	}
	return out, nil
}

func (s *UserService) UpdateMe(ctx context.Context, id uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	user, appErr := s.load(ctx, id)
	if appErr != nil {
		return nil, appErr
	}

	if req.Name != nil {
		user.Name = utils.Sanitize(*req.Name)
	}
	if req.Course != nil {
		user.Course = utils.Sanitize(*req.Course)
	}
	if req.Year != nil {
		user.Year = *req.Year
	}
	if req.Interests != nil {
		user.Interests = normalizeInterests(req.Interests)
	}
	if req.Bio != nil {
		user.Bio = utils.Sanitize(*req.Bio)
	}
	if req.QuietHours != nil {
		user.QuietStart = req.QuietHours.Start
		user.QuietEnd = req.QuietHours.End
		user.QuietEnabled = req.QuietHours.Enabled
	}

	if err := s.repo.UpdateProfile(ctx, user); err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "update profile failed", err)
	}
	return mapper.ToUserResponse(user), nil
}

// normalizeInterests trims, lowercases and dedupes, keeping first-seen order.
func normalizeInterests(in []string) pq.StringArray {
	seen := map[string]struct{}{}
	out := pq.StringArray{}
	for _, raw := range in {
		v := strings.ToLower(utils.Sanitize(raw))
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func (s *UserService) SetPushToken(ctx context.Context, id uuid.UUID, token string) *errors.AppError {
	token = strings.TrimSpace(token)
	if err := s.repo.SetPushToken(ctx, id, &token); err != nil {
		return errors.NewAppError(errors.ErrUpdateFailed, "register push token failed", err)
	}
	logger.Info("UserService:SetPushToken", "user_id", id)
	return nil
}

func (s *UserService) ClearPushToken(ctx context.Context, id uuid.UUID) *errors.AppError {
	if err := s.repo.SetPushToken(ctx, id, nil); err != nil {
		return errors.NewAppError(errors.ErrUpdateFailed, "clear push token failed", err)
	}
	return nil
}

func (s *UserService) UploadAvatar(ctx context.Context, id uuid.UUID, raw []byte) (*dto.AvatarResponse, *errors.AppError) {
	if _, appErr := s.load(ctx, id); appErr != nil {
		return nil, appErr
	}
	if s.uploader == nil {
		return nil, errors.NewAppError(errors.ErrUploadFailed, "storage is not configured", nil)
	}

	img, err := storage.ProcessImage(raw, storage.ImageAvatar)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "file is not a supported image", err)
	}

	key := fmt.Sprintf("avatars/%s/%s.webp", id, utils.GenerateID())
	progress := 0
	url, err := s.uploader.Upload(ctx, key, storage.WebPType, img, func(sent, total int64) {
		if p := storage.Percent(sent, total); p >= progress+25 || p == 100 {
			progress = p
			logger.Debug("UserService:UploadAvatar:Progress", "user_id", id, "percent", p)
		}
	})
	if err != nil {
		return nil, errors.NewAppError(errors.ErrUploadFailed, "upload avatar failed", err)
	}

	if err := s.repo.SetAvatar(ctx, id, url); err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "save avatar failed", err)
	}
	return &dto.AvatarResponse{AvatarURL: url, Progress: progress}, nil
}

func (s *UserService) Block(ctx context.Context, blockerID, blockedID uuid.UUID) *errors.AppError {
	if blockerID == blockedID {
		return errors.NewAppError(errors.ErrInvalidInput, "you cannot block yourself", nil)
	}
	if _, appErr := s.load(ctx, blockedID); appErr != nil {
		return appErr
	}
	if err := s.repo.Block(ctx, blockerID, blockedID); err != nil {
		return errors.NewAppError(errors.ErrUpdateFailed, "block user failed", err)
	}
	return nil
}

func (s *UserService) Unblock(ctx context.Context, blockerID, blockedID uuid.UUID) *errors.AppError {
	if err := s.repo.Unblock(ctx, blockerID, blockedID); err != nil {
		return errors.NewAppError(errors.ErrUpdateFailed, "unblock user failed", err)
	}
	return nil
}

func (s *UserService) ListBlocked(ctx context.Context, blockerID uuid.UUID) ([]dto.PublicProfile, *errors.AppError) {
	users, err := s.repo.ListBlocked(ctx, blockerID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "list blocked users failed", err)
	}
	return mapper.ToPublicProfiles(users), nil
}

func (s *UserService) IsBlockedEither(ctx context.Context, a, b uuid.UUID) (bool, error) {
	return s.repo.IsBlockedEither(ctx, a, b)
}

func (s *UserService) BlockedEither(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]struct{}, error) {
	ids, err := s.repo.BlockedEither(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		out[id] = struct{}{}
	}
	return out, nil
}

func (s *UserService) SetRoles(ctx context.Context, id uuid.UUID, req *dto.RolesRequest) (*dto.UserResponse, *errors.AppError) {
	user, appErr := s.load(ctx, id)
	if appErr != nil {
		return nil, appErr
	}
	if req.Organizer != nil {
		user.RoleOrganizer = *req.Organizer
	}
	if req.Admin != nil {
		user.RoleAdmin = *req.Admin
	}
	if err := s.repo.SetRoles(ctx, id, user.RoleOrganizer, user.RoleAdmin); err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "update roles failed", err)
	}
	logger.Info("UserService:SetRoles", "user_id", id, "organizer", user.RoleOrganizer, "admin", user.RoleAdmin)
	return mapper.ToUserResponse(user), nil
}

// HasRole lets the middleware check roles against the store rather than the token.
func (s *UserService) HasRole(ctx context.Context, userID uuid.UUID, role string) (bool, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return false, err
	}
	return user != nil && user.HasRole(role), nil
}

func (s *UserService) ListOthers(ctx context.Context, exclude uuid.UUID, course string) ([]entity.User, error) {
	return s.repo.ListOthers(ctx, exclude, course)
}

func (s *UserService) AudienceAll(ctx context.Context) ([]uuid.UUID, error) {
	return s.repo.ListAllIDs(ctx)
}

func (s *UserService) AudienceYear(ctx context.Context, year int) ([]uuid.UUID, error) {
	return s.repo.ListIDsByYear(ctx, year)
}

func (s *UserService) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	user, err := s.repo.GetByID(ctx, id)
	return user != nil, err
}

func (s *UserService) CountUsers(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}
