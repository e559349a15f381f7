package repositories

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hoho/internal/models/db_models"
	"hoho/pkg/utils"
)

type UserRepository interface {
	Insert(ctx context.Context, user *db_models.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*db_models.User, error)
	FindByEmail(ctx context.Context, email string) (*db_models.User, error)
	FindByUsername(ctx context.Context, username string) (*db_models.User, error)
	FindByPhone(ctx context.Context, phone string) (*db_models.User, error)
	Save(ctx context.Context, user *db_models.User) error

	// HardDelete removes the user row outright together with any hotel it
	// owns. Used for abandoned-registration cleanup and account deletion.
	HardDelete(ctx context.Context, id uuid.UUID) error

	// Transact runs fn against a transaction-scoped repository. FindByID
	// takes a row lock inside a transaction, which makes each flow
	// transition a single atomic read-modify-write.
	Transact(ctx context.Context, fn func(repo UserRepository) error) error
}

type userRepository struct {
	db   *gorm.DB
	inTx bool
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{
		db: db,
	}
}

func (r *userRepository) Insert(ctx context.Context, user *db_models.User) error {
	user.Email = strings.ToLower(user.Email)
	err := r.db.WithContext(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return utils.ErrAlreadyExists
	}
	return err
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.User, error) {
	var user db_models.User

	query := r.db.WithContext(ctx)
	if r.inTx {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	err := query.First(&user, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*db_models.User, error) {
	return r.findOne(ctx, "email = ?", strings.ToLower(email))
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*db_models.User, error) {
	return r.findOne(ctx, "username = ?", username)
}

func (r *userRepository) FindByPhone(ctx context.Context, phone string) (*db_models.User, error) {
	return r.findOne(ctx, "phone = ?", phone)
}

func (r *userRepository) findOne(ctx context.Context, query string, arg interface{}) (*db_models.User, error) {
	var user db_models.User
	err := r.db.WithContext(ctx).First(&user, query, arg).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &user, nil
}

func (r *userRepository) Save(ctx context.Context, user *db_models.User) error {
	user.Email = strings.ToLower(user.Email)
	err := r.db.WithContext(ctx).Save(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return utils.ErrAlreadyExists
	}
	return err
}

func (r *userRepository) HardDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("owner_id = ?", id).Delete(&db_models.Hotel{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&db_models.User{}, "id = ?", id).Error
	})
}

func (r *userRepository) Transact(ctx context.Context, fn func(repo UserRepository) error) error {
	if r.inTx {
		return fn(r)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&userRepository{db: tx, inTx: true})
	})
}
