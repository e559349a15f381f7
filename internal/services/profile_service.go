package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"hoho/internal/models/db_models"
	"hoho/internal/models/request_models"
	"hoho/internal/models/response_models"
	"hoho/internal/repositories"
	mem "hoho/pkg/memcache"
	"hoho/pkg/utils"
)

// ProfileServiceInterface covers verified profile changes and the
// OTP-gated password change. Name and age commit immediately; email and
// phone are staged and only promoted once the code sent to the NEW
// destination matches.
type ProfileServiceInterface interface {
	RequestChange(ctx context.Context, flowToken string, userID uuid.UUID, req request_models.UpdateProfileRequest) (*response_models.ProfileChangeResponse, error)
	ConfirmChange(ctx context.Context, flowToken string, userID uuid.UUID, req request_models.ConfirmProfileRequest) error

	InitiatePasswordChange(ctx context.Context, flowToken string, userID uuid.UUID) error
	ConfirmPasswordChange(ctx context.Context, flowToken string, userID uuid.UUID, req request_models.ConfirmPasswordChangeRequest) error
}

type ProfileService struct {
	userRepo repositories.UserRepository
	notifier NotifierInterface
	flows    mem.FlowStateStore
}

func NewProfileService(
	userRepo repositories.UserRepository,
	notifier NotifierInterface,
	flows mem.FlowStateStore,
) ProfileServiceInterface {
	return &ProfileService{
		userRepo: userRepo,
		notifier: notifier,
		flows:    flows,
	}
}

func (s *ProfileService) RequestChange(ctx context.Context, flowToken string, userID uuid.UUID, req request_models.UpdateProfileRequest) (*response_models.ProfileChangeResponse, error) {
	user, err := s.activeUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	newPhone, err := utils.NormalizePhone(req.Phone)
	if err != nil {
		return nil, err
	}
	newEmail := strings.ToLower(req.Email)

	emailChanged := newEmail != "" && newEmail != user.Email
	phoneChanged := newPhone != "" && (user.Phone == nil || newPhone != *user.Phone)

	// Non-sensitive fields commit right away, whatever happens to the
	// staged contact changes below.
	if req.FirstName != "" {
		user.FirstName = req.FirstName
	}
	if req.LastName != "" {
		user.LastName = req.LastName
	}
	if req.Age != nil {
		user.Age = req.Age
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	if !emailChanged && !phoneChanged {
		return &response_models.ProfileChangeResponse{}, nil
	}

	if emailChanged {
		if existing, err := s.userRepo.FindByEmail(ctx, newEmail); err != nil {
			return nil, utils.ErrDatabaseError
		} else if existing != nil && existing.ID != user.ID {
			return nil, fmt.Errorf("%w: email already registered", utils.ErrAlreadyExists)
		}
	}
	if phoneChanged {
		if existing, err := s.userRepo.FindByPhone(ctx, newPhone); err != nil {
			return nil, utils.ErrDatabaseError
		} else if existing != nil && existing.ID != user.ID {
			return nil, fmt.Errorf("%w: phone already registered", utils.ErrAlreadyExists)
		}
	}

	// Dispatch before persisting anything staged. A failed send must
	// leave no pending change behind.
	if emailChanged {
		user.NewEmail = &newEmail
		if err := issueCode(user, ChannelEmail); err != nil {
			return nil, utils.ErrDatabaseError
		}
		if err := s.notifier.Dispatch(ctx, ChannelEmail, newEmail, *user.EmailOTP, "email change"); err != nil {
			return nil, err
		}
	}
	if phoneChanged {
		user.NewPhone = &newPhone
		if err := issueCode(user, ChannelSMS); err != nil {
			return nil, utils.ErrDatabaseError
		}
		if err := s.notifier.Dispatch(ctx, ChannelSMS, newPhone, *user.PhoneOTP, "phone change"); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	state, _ := s.flows.Get(flowToken)
	state.Kind = mem.FlowProfileChange
	state.Step = 2
	state.PendingUserID = user.ID.String()
	if emailChanged {
		state.PendingEmail = true
	}
	if phoneChanged {
		state.PendingPhone = true
	}
	state.OwnerDraft = nil
	s.flows.Put(flowToken, state, flowTTL)

	return &response_models.ProfileChangeResponse{
		PendingEmail: state.PendingEmail,
		PendingPhone: state.PendingPhone,
	}, nil
}

func (s *ProfileService) ConfirmChange(ctx context.Context, flowToken string, userID uuid.UUID, req request_models.ConfirmProfileRequest) error {
	state, ok := s.flows.Get(flowToken)
	if !ok || state.Kind != mem.FlowProfileChange || (!state.PendingEmail && !state.PendingPhone) {
		return utils.ErrFlowExpired
	}

	var done bool
	err := s.userRepo.Transact(ctx, func(repo repositories.UserRepository) error {
		user, err := repo.FindByID(ctx, userID)
		if err != nil {
			return utils.ErrDatabaseError
		}
		if user == nil || !user.IsActive {
			s.flows.Clear(flowToken)
			return utils.ErrFlowExpired
		}

		var emailErr, phoneErr error
		if state.PendingEmail {
			if user.NewEmail == nil {
				emailErr = utils.ErrFlowExpired
			} else {
				emailErr = checkCode(user.EmailOTP, user.EmailOTPIssuedAt, user.EmailOTPAttempts, req.EmailCode)
			}
		}
		if state.PendingPhone {
			if user.NewPhone == nil {
				phoneErr = utils.ErrFlowExpired
			} else {
				phoneErr = checkCode(user.PhoneOTP, user.PhoneOTPIssuedAt, user.PhoneOTPAttempts, req.PhoneCode)
			}
		}

		if emailErr == nil && phoneErr == nil {
			if state.PendingEmail {
				user.Email = *user.NewEmail
				user.IsEmailVerified = true
				user.NewEmail = nil
				clearEmailCode(user)
			}
			if state.PendingPhone {
				user.Phone = user.NewPhone
				user.IsPhoneVerified = true
				user.NewPhone = nil
				clearPhoneCode(user)
			}
			done = true
			return repo.Save(ctx, user)
		}

		// Partial matches promote nothing. The staged values and their
		// codes stay put so the user can retry with the same codes.
		if emailErr != nil && !isTerminal(emailErr) {
			user.EmailOTPAttempts++
		}
		if phoneErr != nil && !isTerminal(phoneErr) {
			user.PhoneOTPAttempts++
		}
		if saveErr := repo.Save(ctx, user); saveErr != nil {
			return saveErr
		}
		return combineChannelErrors(emailErr, phoneErr)
	})
	if err != nil {
		return err
	}

	if done {
		s.flows.Clear(flowToken)
	}
	return nil
}

func (s *ProfileService) InitiatePasswordChange(ctx context.Context, flowToken string, userID uuid.UUID) error {
	user, err := s.activeUser(ctx, userID)
	if err != nil {
		return err
	}

	// The email OTP columns hold at most one outstanding code. A staged
	// email change owns them until it is confirmed or abandoned; issuing
	// a password code now would clobber it and strand NewEmail.
	if user.NewEmail != nil {
		return fmt.Errorf("%w: an email change is awaiting verification; confirm it first", utils.ErrValidation)
	}

	if err := issueCode(user, ChannelEmail); err != nil {
		return utils.ErrDatabaseError
	}
	if err := s.notifier.Dispatch(ctx, ChannelEmail, user.Email, *user.EmailOTP, "password change"); err != nil {
		return err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return err
	}

	s.flows.Put(flowToken, mem.FlowState{
		Kind:          mem.FlowPasswordChange,
		Step:          2,
		PendingUserID: user.ID.String(),
	}, flowTTL)
	return nil
}

func (s *ProfileService) ConfirmPasswordChange(ctx context.Context, flowToken string, userID uuid.UUID, req request_models.ConfirmPasswordChangeRequest) error {
	state, ok := s.flows.Get(flowToken)
	if !ok || state.Kind != mem.FlowPasswordChange {
		return utils.ErrFlowExpired
	}

	var done bool
	err := s.userRepo.Transact(ctx, func(repo repositories.UserRepository) error {
		user, err := repo.FindByID(ctx, userID)
		if err != nil {
			return utils.ErrDatabaseError
		}
		if user == nil || !user.IsActive {
			s.flows.Clear(flowToken)
			return utils.ErrFlowExpired
		}

		if codeErr := checkCode(user.EmailOTP, user.EmailOTPIssuedAt, user.EmailOTPAttempts, req.EmailCode); codeErr != nil {
			if !isTerminal(codeErr) {
				user.EmailOTPAttempts++
				if saveErr := repo.Save(ctx, user); saveErr != nil {
					return saveErr
				}
			}
			return codeErr
		}

		hash, err := utils.HashPassword(req.NewPassword)
		if err != nil {
			return utils.ErrDatabaseError
		}
		user.PasswordHash = hash
		clearEmailCode(user)
		done = true
		return repo.Save(ctx, user)
	})
	if err != nil {
		return err
	}

	if done {
		s.flows.Clear(flowToken)
	}
	return nil
}

func (s *ProfileService) activeUser(ctx context.Context, userID uuid.UUID) (*db_models.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if user == nil || !user.IsActive {
		return nil, utils.ErrAccountNotFound
	}
	return user, nil
}

// isTerminal reports whether a code failure should not consume an attempt:
// the code is already expired or the budget already spent.
func isTerminal(err error) bool {
	return err == utils.ErrCodeExpired || err == utils.ErrTooManyAttempts || err == utils.ErrFlowExpired
}
