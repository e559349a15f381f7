package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"hoho/internal/models/db_models"
	"hoho/internal/models/request_models"
	"hoho/internal/models/response_models"
	"hoho/internal/repositories"
	mem "hoho/pkg/memcache"
	"hoho/pkg/utils"
)

const (
	otpLength      = 6
	otpTTL         = 10 * time.Minute
	otpMaxAttempts = 5
	flowTTL        = 30 * time.Minute
)

// RegistrationServiceInterface drives the two-step user registration and
// the three-step hotel-owner registration. An account starts inactive and
// becomes active only once every code issued for the flow has matched.
type RegistrationServiceInterface interface {
	SubmitIdentity(ctx context.Context, flowToken string, req request_models.RegisterRequest) (*response_models.FlowStepResponse, error)
	SubmitOwnerIdentity(ctx context.Context, flowToken string, req request_models.OwnerRegisterRequest) (*response_models.FlowStepResponse, error)
	SubmitHotelDetails(ctx context.Context, flowToken string, req request_models.HotelDetailsRequest) (*response_models.FlowStepResponse, error)
	SubmitCodes(ctx context.Context, flowToken string, req request_models.VerifyCodesRequest) error

	// ResumeOrDiscard is the fresh-entry cleanup: an abandoned inactive
	// account referenced by the flow state is hard-deleted (hotel
	// cascading with it) and the flow state cleared.
	ResumeOrDiscard(ctx context.Context, flowToken string) error
}

type RegistrationService struct {
	userRepo  repositories.UserRepository
	hotelRepo repositories.HotelRepository
	notifier  NotifierInterface
	flows     mem.FlowStateStore
}

func NewRegistrationService(
	userRepo repositories.UserRepository,
	hotelRepo repositories.HotelRepository,
	notifier NotifierInterface,
	flows mem.FlowStateStore,
) RegistrationServiceInterface {
	return &RegistrationService{
		userRepo:  userRepo,
		hotelRepo: hotelRepo,
		notifier:  notifier,
		flows:     flows,
	}
}

func (s *RegistrationService) SubmitIdentity(ctx context.Context, flowToken string, req request_models.RegisterRequest) (*response_models.FlowStepResponse, error) {
	phone, err := utils.NormalizePhone(req.Phone)
	if err != nil {
		return nil, err
	}

	if err := s.checkUniqueness(ctx, req.Username, req.Email, phone); err != nil {
		return nil, err
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	user := &db_models.User{
		Username:     req.Username,
		Email:        strings.ToLower(req.Email),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Age:          req.Age,
		PasswordHash: hash,
		IsActive:     false,
	}
	if phone != "" {
		user.Phone = &phone
	}

	if err := issueCode(user, ChannelEmail); err != nil {
		return nil, utils.ErrDatabaseError
	}
	if phone != "" {
		if err := issueCode(user, ChannelSMS); err != nil {
			return nil, utils.ErrDatabaseError
		}
	}

	if err := s.userRepo.Insert(ctx, user); err != nil {
		return nil, err
	}

	if err := s.dispatchIssuedCodes(ctx, user, "registration"); err != nil {
		// No inactive account may linger claiming a code was sent when
		// none was delivered: roll the whole attempt back.
		if delErr := s.userRepo.HardDelete(ctx, user.ID); delErr != nil {
			log.Printf("registration: rollback of user %s failed: %v", user.ID, delErr)
		}
		return nil, err
	}

	s.flows.Put(flowToken, mem.FlowState{
		Kind:          mem.FlowRegister,
		Step:          2,
		PendingUserID: user.ID.String(),
	}, flowTTL)

	return &response_models.FlowStepResponse{
		Flow:          mem.FlowRegister,
		Step:          2,
		PhoneRequired: phone != "",
	}, nil
}

func (s *RegistrationService) SubmitOwnerIdentity(ctx context.Context, flowToken string, req request_models.OwnerRegisterRequest) (*response_models.FlowStepResponse, error) {
	phone, err := utils.NormalizePhone(req.Phone)
	if err != nil {
		return nil, err
	}
	if phone == "" {
		return nil, fmt.Errorf("%w: owners must supply a contact phone", utils.ErrValidation)
	}

	if err := s.checkUniqueness(ctx, req.Username, req.Email, phone); err != nil {
		return nil, err
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	// The owner identity stays in the flow store only; no user row exists
	// until the hotel details of step 2 arrive.
	s.flows.Put(flowToken, mem.FlowState{
		Kind: mem.FlowOwnerRegister,
		Step: 2,
		OwnerDraft: &mem.OwnerDraft{
			Username:  req.Username,
			Email:     strings.ToLower(req.Email),
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Phone:     phone,
			Password:  hash,
		},
	}, flowTTL)

	return &response_models.FlowStepResponse{Flow: mem.FlowOwnerRegister, Step: 2}, nil
}

func (s *RegistrationService) SubmitHotelDetails(ctx context.Context, flowToken string, req request_models.HotelDetailsRequest) (*response_models.FlowStepResponse, error) {
	state, ok := s.flows.Get(flowToken)
	if !ok || state.Kind != mem.FlowOwnerRegister || state.OwnerDraft == nil {
		return nil, utils.ErrFlowExpired
	}
	draft := state.OwnerDraft

	user := &db_models.User{
		Username:     draft.Username,
		Email:        draft.Email,
		Phone:        &draft.Phone,
		FirstName:    draft.FirstName,
		LastName:     draft.LastName,
		PasswordHash: draft.Password,
		IsActive:     false,
		IsHotelOwner: true,
	}
	if err := issueCode(user, ChannelEmail); err != nil {
		return nil, utils.ErrDatabaseError
	}
	if err := issueCode(user, ChannelSMS); err != nil {
		return nil, utils.ErrDatabaseError
	}

	if err := s.userRepo.Insert(ctx, user); err != nil {
		return nil, err
	}

	hotel := &db_models.Hotel{
		OwnerID:           user.ID,
		Name:              req.Name,
		Place:             req.Place,
		Address:           req.Address,
		LicenseNumber:     req.LicenseNumber,
		OwnershipProofURL: req.OwnershipProofURL,
		OwnerIDProofURL:   req.OwnerIDProofURL,
	}
	if err := s.hotelRepo.Insert(ctx, hotel); err != nil {
		if delErr := s.userRepo.HardDelete(ctx, user.ID); delErr != nil {
			log.Printf("owner registration: rollback of user %s failed: %v", user.ID, delErr)
		}
		return nil, err
	}

	if err := s.dispatchIssuedCodes(ctx, user, "hotel owner registration"); err != nil {
		if delErr := s.userRepo.HardDelete(ctx, user.ID); delErr != nil {
			log.Printf("owner registration: rollback of user %s failed: %v", user.ID, delErr)
		}
		return nil, err
	}

	s.flows.Put(flowToken, mem.FlowState{
		Kind:          mem.FlowOwnerRegister,
		Step:          3,
		PendingUserID: user.ID.String(),
	}, flowTTL)

	return &response_models.FlowStepResponse{
		Flow:          mem.FlowOwnerRegister,
		Step:          3,
		PhoneRequired: true,
	}, nil
}

func (s *RegistrationService) SubmitCodes(ctx context.Context, flowToken string, req request_models.VerifyCodesRequest) error {
	state, ok := s.flows.Get(flowToken)
	if !ok || state.PendingUserID == "" ||
		(state.Kind != mem.FlowRegister && state.Kind != mem.FlowOwnerRegister) {
		return utils.ErrFlowExpired
	}

	userID, err := uuid.Parse(state.PendingUserID)
	if err != nil {
		s.flows.Clear(flowToken)
		return utils.ErrFlowExpired
	}

	var activated bool
	err = s.userRepo.Transact(ctx, func(repo repositories.UserRepository) error {
		user, err := repo.FindByID(ctx, userID)
		if err != nil {
			return utils.ErrDatabaseError
		}
		if user == nil || user.IsActive {
			s.flows.Clear(flowToken)
			return utils.ErrFlowExpired
		}

		emailErr := checkCode(user.EmailOTP, user.EmailOTPIssuedAt, user.EmailOTPAttempts, req.EmailCode)
		var phoneErr error
		if user.PhoneOTP != nil {
			phoneErr = checkCode(user.PhoneOTP, user.PhoneOTPIssuedAt, user.PhoneOTPAttempts, req.PhoneCode)
		}

		if emailErr == nil && phoneErr == nil {
			user.IsEmailVerified = true
			user.IsPhoneVerified = user.PhoneOTP != nil
			user.IsActive = true
			clearEmailCode(user)
			clearPhoneCode(user)
			activated = true
			return repo.Save(ctx, user)
		}

		// Failed attempt: nothing is cleared, the same outstanding codes
		// stay valid for a retry; only the attempt counters move.
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

	if activated {
		s.flows.Clear(flowToken)
	}
	return nil
}

func (s *RegistrationService) ResumeOrDiscard(ctx context.Context, flowToken string) error {
	state, ok := s.flows.Get(flowToken)
	if !ok {
		return nil
	}
	if state.Kind != mem.FlowRegister && state.Kind != mem.FlowOwnerRegister {
		return nil
	}

	if state.PendingUserID != "" {
		if userID, err := uuid.Parse(state.PendingUserID); err == nil {
			user, err := s.userRepo.FindByID(ctx, userID)
			if err != nil {
				return utils.ErrDatabaseError
			}
			if user != nil && !user.IsActive {
				if err := s.userRepo.HardDelete(ctx, userID); err != nil {
					return utils.ErrDatabaseError
				}
				log.Printf("registration: discarded abandoned inactive account %s", userID)
			}
		}
	}

	s.flows.Clear(flowToken)
	return nil
}

func (s *RegistrationService) checkUniqueness(ctx context.Context, username, email, phone string) error {
	if existing, err := s.userRepo.FindByUsername(ctx, username); err != nil {
		return utils.ErrDatabaseError
	} else if existing != nil {
		return fmt.Errorf("%w: username already taken", utils.ErrAlreadyExists)
	}

	if existing, err := s.userRepo.FindByEmail(ctx, email); err != nil {
		return utils.ErrDatabaseError
	} else if existing != nil {
		return fmt.Errorf("%w: email already registered", utils.ErrAlreadyExists)
	}

	if phone != "" {
		if existing, err := s.userRepo.FindByPhone(ctx, phone); err != nil {
			return utils.ErrDatabaseError
		} else if existing != nil {
			return fmt.Errorf("%w: phone already registered", utils.ErrAlreadyExists)
		}
	}

	return nil
}

func (s *RegistrationService) dispatchIssuedCodes(ctx context.Context, user *db_models.User, purpose string) error {
	if user.EmailOTP != nil {
		if err := s.notifier.Dispatch(ctx, ChannelEmail, user.Email, *user.EmailOTP, purpose); err != nil {
			return err
		}
	}
	if user.PhoneOTP != nil && user.Phone != nil {
		if err := s.notifier.Dispatch(ctx, ChannelSMS, *user.Phone, *user.PhoneOTP, purpose); err != nil {
			return err
		}
	}
	return nil
}

// issueCode generates a fresh code for the channel and stamps its issuance
// time, resetting the attempt counter.
func issueCode(user *db_models.User, channel Channel) error {
	code, err := utils.GenerateOtpCode(otpLength)
	if err != nil {
		return err
	}
	now := utils.NowUnixSeconds()
	switch channel {
	case ChannelEmail:
		user.EmailOTP = &code
		user.EmailOTPIssuedAt = &now
		user.EmailOTPAttempts = 0
	case ChannelSMS:
		user.PhoneOTP = &code
		user.PhoneOTPIssuedAt = &now
		user.PhoneOTPAttempts = 0
	}
	return nil
}

func clearEmailCode(user *db_models.User) {
	user.EmailOTP = nil
	user.EmailOTPIssuedAt = nil
	user.EmailOTPAttempts = 0
}

func clearPhoneCode(user *db_models.User) {
	user.PhoneOTP = nil
	user.PhoneOTPIssuedAt = nil
	user.PhoneOTPAttempts = 0
}

// checkCode validates one entered code against an outstanding one.
// Exact string equality decides a match; expiry and the attempt budget are
// checked first and produce their own error kinds.
func checkCode(stored *string, issuedAt *int64, attempts int, entered string) error {
	if stored == nil {
		return utils.ErrFlowExpired
	}
	if issuedAt == nil || utils.UnixSecondsOlderThan(*issuedAt, otpTTL) {
		return utils.ErrCodeExpired
	}
	if attempts >= otpMaxAttempts {
		return utils.ErrTooManyAttempts
	}
	if entered != *stored {
		return utils.ErrCodeMismatch
	}
	return nil
}

func combineChannelErrors(emailErr, phoneErr error) error {
	var failed []string
	if emailErr != nil {
		failed = append(failed, "email")
	}
	if phoneErr != nil {
		failed = append(failed, "phone")
	}
	if len(failed) == 0 {
		return nil
	}
	// errors.Join keeps both sentinels reachable through errors.Is when
	// the channels fail for different reasons.
	return fmt.Errorf("%w (%s)", errors.Join(emailErr, phoneErr), strings.Join(failed, ", "))
}
