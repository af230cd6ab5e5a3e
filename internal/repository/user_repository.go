package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/d60-Lab/pos-service/internal/model"
	"github.com/d60-Lab/pos-service/pkg/apperr"
)

// UserRepository 用户仓储接口
type UserRepository interface {
	List(ctx context.Context) ([]model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	Create(ctx context.Context, u *model.User) error
	Update(ctx context.Context, id int64, username, email string) (*model.User, error)
	// Delete 硬删除；被订单引用的用户返回约束错误（400）
	Delete(ctx context.Context, id int64) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository { return &userRepository{db: db} }

func (r *userRepository) List(ctx context.Context) ([]model.User, error) {
	users := make([]model.User, 0)
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&users).Error
	return users, err
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).First(&u, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFoundf("User not found")
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) Create(ctx context.Context, u *model.User) error {
	err := r.db.WithContext(ctx).Create(u).Error
	return classify(err, "Username or email already exists")
}

func (r *userRepository) Update(ctx context.Context, id int64, username, email string) (*model.User, error) {
	res := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).
		Updates(map[string]any{"username": username, "email": email})
	if res.Error != nil {
		return nil, classify(res.Error, "Username or email already exists")
	}
	if res.RowsAffected == 0 {
		return nil, apperr.NotFoundf("User not found")
	}
	return r.GetByID(ctx, id)
}

// Delete 硬删除；外键开启时，名下尚有订单的用户删除会被约束拦下（400）
func (r *userRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.User{}, id)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrForeignKeyViolated) {
			return apperr.Wrap(apperr.KindConstraint, "Cannot delete user with existing orders", res.Error)
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFoundf("User not found")
	}
	return nil
}
