package stores

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/justsurfingit/job-board/internal/models"
)

type GormStudentStore struct{ DB *gorm.DB }

// profileColumns are the fields a student may edit on their own profile.
var profileColumns = []string{
	"name", "github_id", "linkedin_id", "cgpa", "experience", "portfolio", "phone", "address",
}

func (s *GormStudentStore) CreateWithUser(ctx context.Context, u *models.User, st *models.Student) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		u.Email = normalizeEmail(u.Email)
		if err := tx.Create(u).Error; err != nil {
			return err
		}
		st.UserID = u.ID
		return tx.Omit(clause.Associations).Create(st).Error
	})
}

func (s *GormStudentStore) GetByID(ctx context.Context, id uint) (*models.Student, error) {
	var st models.Student
	if err := s.DB.WithContext(ctx).First(&st, id).Error; err != nil {
		return nil, err
	}
	return &st, nil
}

func (s *GormStudentStore) GetByUserID(ctx context.Context, userID uint) (*models.Student, error) {
	var st models.Student
	if err := s.DB.WithContext(ctx).Where("user_id = ?", userID).First(&st).Error; err != nil {
		return nil, err
	}
	return &st, nil
}

func (s *GormStudentStore) accounts(ctx context.Context) *gorm.DB {
	return s.DB.WithContext(ctx).
		Table("students").
		Select("students.*, users.email AS email").
		Joins("JOIN users ON users.id = students.user_id")
}

func (s *GormStudentStore) GetAccount(ctx context.Context, id uint) (*models.StudentAccount, error) {
	var acc models.StudentAccount
	if err := s.accounts(ctx).Where("students.id = ?", id).Take(&acc).Error; err != nil {
		return nil, err
	}
	return &acc, nil
}

func (s *GormStudentStore) ListAccounts(ctx context.Context) ([]models.StudentAccount, error) {
	accounts := []models.StudentAccount{}
	if err := s.accounts(ctx).Order("students.name ASC").Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}

func (s *GormStudentStore) UpdateProfile(ctx context.Context, st *models.Student) error {
	res := s.DB.WithContext(ctx).
		Model(&models.Student{ID: st.ID}).
		Select(profileColumns).
		Updates(st)
	return affectedOrNotFound(res)
}

func (s *GormStudentStore) UpdateResume(ctx context.Context, id uint, key string) error {
	res := s.DB.WithContext(ctx).Model(&models.Student{ID: id}).Update("resume", key)
	return affectedOrNotFound(res)
}

func (s *GormStudentStore) SearchByName(ctx context.Context, query string, limit int) ([]models.Student, error) {
	students := []models.Student{}
	err := s.DB.WithContext(ctx).
		Where("name ILIKE ?", containsPattern(query)).
		Order("name ASC").
		Limit(limit).
		Find(&students).Error
	if err != nil {
		return nil, err
	}
	return students, nil
}

func (s *GormStudentStore) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.DB.WithContext(ctx).Model(&models.Student{}).Count(&n).Error
	return n, err
}
