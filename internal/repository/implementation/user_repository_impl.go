package implementation

import (
	"context"

	"github.com/daohd2003/FRECS-sub006/internal/entity"
	"github.com/daohd2003/FRECS-sub006/internal/model"
	"github.com/daohd2003/FRECS-sub006/internal/repository/contract"
	"github.com/daohd2003/FRECS-sub006/internal/repository/specification"

	"gorm.io/gorm"
)

type userRepositoryImpl struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) contract.UserRepository {
	return &userRepositoryImpl{db: db}
}

func (r *userRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	var modelUser model.User
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.First(&modelUser).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return r.mapToEntity(&modelUser), nil
}

func (r *userRepositoryImpl) FindAllByRole(ctx context.Context, role entity.UserRole) ([]*entity.User, error) {
	var modelUsers []*model.User
	err := r.db.WithContext(ctx).
		Where("role = ?", string(role)).
		Find(&modelUsers).Error
	if err != nil {
		return nil, err
	}

	var users []*entity.User
	for _, mu := range modelUsers {
		users = append(users, r.mapToEntity(mu))
	}
	return users, nil
}

func (r *userRepositoryImpl) mapToEntity(mu *model.User) *entity.User {
	return &entity.User{
		ID:        mu.ID,
		Email:     mu.Email,
		FullName:  mu.FullName,
		Role:      entity.UserRole(mu.Role),
		Status:    mu.Status,
		CreatedAt: mu.CreatedAt,
	}
}
