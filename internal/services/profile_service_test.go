package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"hoho/internal/models/db_models"
	"hoho/internal/models/request_models"
	mem "hoho/pkg/memcache"
	"hoho/pkg/utils"
)

type profileFixture struct {
	users    *fakeUserRepo
	notifier *fakeNotifier
	flows    *mem.FlowStates
	svc      ProfileServiceInterface
	userID   uuid.UUID
}

func newProfileFixture(t *testing.T) *profileFixture {
	t.Helper()
	users := newFakeUserRepo()
	notifier := &fakeNotifier{}
	flows := mem.NewFlowStates()

	phone := "+919812345678"
	hash, err := utils.HashPassword("oldpassword")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	user := &db_models.User{
		Username:        "alice",
		Email:           "a@x.com",
		Phone:           &phone,
		FirstName:       "Alice",
		PasswordHash:    hash,
		IsActive:        true,
		IsEmailVerified: true,
		IsPhoneVerified: true,
	}
	if err := users.Insert(context.Background(), user); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	return &profileFixture{
		users:    users,
		notifier: notifier,
		flows:    flows,
		svc:      NewProfileService(users, notifier, flows),
		userID:   user.ID,
	}
}

func TestNameChangeCommitsImmediately(t *testing.T) {
	fx := newProfileFixture(t)
	ctx := context.Background()

	pending, err := fx.svc.RequestChange(ctx, "tok", fx.userID, request_models.UpdateProfileRequest{
		FirstName: "Alicia",
	})
	if err != nil {
		t.Fatalf("RequestChange: %v", err)
	}
	if pending.PendingEmail || pending.PendingPhone {
		t.Fatalf("name change should not stage anything: %+v", pending)
	}

	user, _ := fx.users.FindByID(ctx, fx.userID)
	if user.FirstName != "Alicia" {
		t.Fatalf("first name = %q, want Alicia", user.FirstName)
	}
	if len(fx.notifier.sent) != 0 {
		t.Fatal("codes dispatched for a non-sensitive change")
	}
}

func TestPhoneOnlyChange(t *testing.T) {
	fx := newProfileFixture(t)
	ctx := context.Background()

	pending, err := fx.svc.RequestChange(ctx, "tok", fx.userID, request_models.UpdateProfileRequest{
		Phone: "+919899999999",
	})
	if err != nil {
		t.Fatalf("RequestChange: %v", err)
	}
	if pending.PendingEmail || !pending.PendingPhone {
		t.Fatalf("want phone pending only, got %+v", pending)
	}
	if fx.notifier.count(ChannelEmail) != 0 {
		t.Fatal("email code dispatched for a phone-only change")
	}
	if got := fx.notifier.sent[0].destination; got != "+919899999999" {
		t.Fatalf("sms sent to %q, want the NEW phone", got)
	}

	// Old phone stays primary until confirmation.
	user, _ := fx.users.FindByID(ctx, fx.userID)
	if *user.Phone != "+919812345678" {
		t.Fatalf("primary phone changed before confirmation: %q", *user.Phone)
	}

	err = fx.svc.ConfirmChange(ctx, "tok", fx.userID, request_models.ConfirmProfileRequest{
		PhoneCode: fx.notifier.lastCode(ChannelSMS),
	})
	if err != nil {
		t.Fatalf("ConfirmChange: %v", err)
	}

	user, _ = fx.users.FindByID(ctx, fx.userID)
	if *user.Phone != "+919899999999" {
		t.Fatalf("phone not promoted: %q", *user.Phone)
	}
	if user.NewPhone != nil || user.PhoneOTP != nil {
		t.Fatal("staged phone state not cleared after promotion")
	}
	if _, ok := fx.flows.Get("tok"); ok {
		t.Fatal("flow state not cleared after confirmation")
	}
}

func TestMismatchRetryReusesSameCode(t *testing.T) {
	fx := newProfileFixture(t)
	ctx := context.Background()

	if _, err := fx.svc.RequestChange(ctx, "tok", fx.userID, request_models.UpdateProfileRequest{
		Email: "new@x.com",
	}); err != nil {
		t.Fatalf("RequestChange: %v", err)
	}
	code := fx.notifier.lastCode(ChannelEmail)

	err := fx.svc.ConfirmChange(ctx, "tok", fx.userID, request_models.ConfirmProfileRequest{
		EmailCode: "000000",
	})
	if !errors.Is(err, utils.ErrCodeMismatch) {
		t.Fatalf("want ErrCodeMismatch, got %v", err)
	}

	user, _ := fx.users.FindByID(ctx, fx.userID)
	if user.NewEmail == nil || *user.NewEmail != "new@x.com" {
		t.Fatal("staged email destroyed by failed attempt")
	}
	if user.Email != "a@x.com" {
		t.Fatalf("primary email changed on mismatch: %q", user.Email)
	}
	if fx.notifier.count(ChannelEmail) != 1 {
		t.Fatal("a new code was dispatched; the outstanding one should be reused")
	}

	if err := fx.svc.ConfirmChange(ctx, "tok", fx.userID, request_models.ConfirmProfileRequest{
		EmailCode: code,
	}); err != nil {
		t.Fatalf("retry with same code: %v", err)
	}
	user, _ = fx.users.FindByID(ctx, fx.userID)
	if user.Email != "new@x.com" {
		t.Fatalf("email not promoted after retry: %q", user.Email)
	}
}

func TestDispatchFailureStagesNothing(t *testing.T) {
	fx := newProfileFixture(t)
	fx.notifier.failSMS = true
	ctx := context.Background()

	_, err := fx.svc.RequestChange(ctx, "tok", fx.userID, request_models.UpdateProfileRequest{
		FirstName: "Alicia",
		Phone:     "+919899999999",
	})
	if !errors.Is(err, utils.ErrDispatchFailed) {
		t.Fatalf("want ErrDispatchFailed, got %v", err)
	}

	user, _ := fx.users.FindByID(ctx, fx.userID)
	if user.NewPhone != nil || user.PhoneOTP != nil {
		t.Fatal("staged phone persisted despite dispatch failure")
	}
	if user.FirstName != "Alicia" {
		t.Fatal("non-sensitive change should commit even when dispatch fails")
	}
	if state, ok := fx.flows.Get("tok"); ok && state.PendingPhone {
		t.Fatal("pending flag set despite dispatch failure")
	}
}

func TestEmailAndPhoneChangeBothPending(t *testing.T) {
	fx := newProfileFixture(t)
	ctx := context.Background()

	pending, err := fx.svc.RequestChange(ctx, "tok", fx.userID, request_models.UpdateProfileRequest{
		Email: "new@x.com",
		Phone: "+919899999999",
	})
	if err != nil {
		t.Fatalf("RequestChange: %v", err)
	}
	if !pending.PendingEmail || !pending.PendingPhone {
		t.Fatalf("want both pending, got %+v", pending)
	}

	// One matching code is not enough.
	err = fx.svc.ConfirmChange(ctx, "tok", fx.userID, request_models.ConfirmProfileRequest{
		EmailCode: fx.notifier.lastCode(ChannelEmail),
		PhoneCode: "000000",
	})
	if !errors.Is(err, utils.ErrCodeMismatch) {
		t.Fatalf("want ErrCodeMismatch, got %v", err)
	}
	user, _ := fx.users.FindByID(ctx, fx.userID)
	if user.Email != "a@x.com" || *user.Phone != "+919812345678" {
		t.Fatal("partial match promoted a staged value")
	}

	err = fx.svc.ConfirmChange(ctx, "tok", fx.userID, request_models.ConfirmProfileRequest{
		EmailCode: fx.notifier.lastCode(ChannelEmail),
		PhoneCode: fx.notifier.lastCode(ChannelSMS),
	})
	if err != nil {
		t.Fatalf("ConfirmChange: %v", err)
	}
	user, _ = fx.users.FindByID(ctx, fx.userID)
	if user.Email != "new@x.com" || *user.Phone != "+919899999999" {
		t.Fatalf("both values should promote together: %q %q", user.Email, *user.Phone)
	}
}

func TestSameEmailCaseVariantIsNoChange(t *testing.T) {
	fx := newProfileFixture(t)
	ctx := context.Background()

	pending, err := fx.svc.RequestChange(ctx, "tok", fx.userID, request_models.UpdateProfileRequest{
		Email: "A@X.COM",
	})
	if err != nil {
		t.Fatalf("RequestChange: %v", err)
	}
	if pending.PendingEmail {
		t.Fatal("case-variant of the current email treated as a change")
	}
	if len(fx.notifier.sent) != 0 {
		t.Fatal("code dispatched for a non-change")
	}
}

func TestPasswordChangeBlockedWhileEmailChangePending(t *testing.T) {
	fx := newProfileFixture(t)
	ctx := context.Background()

	if _, err := fx.svc.RequestChange(ctx, "tok", fx.userID, request_models.UpdateProfileRequest{
		Email: "new@x.com",
	}); err != nil {
		t.Fatalf("RequestChange: %v", err)
	}
	emailCode := fx.notifier.lastCode(ChannelEmail)

	err := fx.svc.InitiatePasswordChange(ctx, "tok", fx.userID)
	if !errors.Is(err, utils.ErrValidation) {
		t.Fatalf("want ErrValidation while email change pending, got %v", err)
	}

	// The staged change and its code survive the rejected initiation.
	user, _ := fx.users.FindByID(ctx, fx.userID)
	if user.NewEmail == nil || user.EmailOTP == nil || *user.EmailOTP != emailCode {
		t.Fatal("pending email change was disturbed")
	}
	if err := fx.svc.ConfirmChange(ctx, "tok", fx.userID, request_models.ConfirmProfileRequest{
		EmailCode: emailCode,
	}); err != nil {
		t.Fatalf("ConfirmChange after rejected initiation: %v", err)
	}
}

func TestPasswordChangeByOtp(t *testing.T) {
	fx := newProfileFixture(t)
	ctx := context.Background()

	if err := fx.svc.InitiatePasswordChange(ctx, "tok", fx.userID); err != nil {
		t.Fatalf("InitiatePasswordChange: %v", err)
	}
	if fx.notifier.count(ChannelEmail) != 1 {
		t.Fatal("expected one email code")
	}

	err := fx.svc.ConfirmPasswordChange(ctx, "tok", fx.userID, request_models.ConfirmPasswordChangeRequest{
		EmailCode:   "000000",
		NewPassword: "newpassword",
	})
	if !errors.Is(err, utils.ErrCodeMismatch) {
		t.Fatalf("want ErrCodeMismatch, got %v", err)
	}

	err = fx.svc.ConfirmPasswordChange(ctx, "tok", fx.userID, request_models.ConfirmPasswordChangeRequest{
		EmailCode:   fx.notifier.lastCode(ChannelEmail),
		NewPassword: "newpassword",
	})
	if err != nil {
		t.Fatalf("ConfirmPasswordChange: %v", err)
	}

	user, _ := fx.users.FindByID(ctx, fx.userID)
	if utils.ComparePasswords(user.PasswordHash, "newpassword") != nil {
		t.Fatal("new password does not verify")
	}
	if utils.ComparePasswords(user.PasswordHash, "oldpassword") == nil {
		t.Fatal("old password still verifies")
	}
	if user.EmailOTP != nil {
		t.Fatal("code not cleared after password change")
	}
}
