package repository

import (
	"byway/models"
	"byway/utils/apperr"
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, notFound(err, "User", id)
	}
	return &user, nil
}

func (r *UserRepo) GetByIDs(ctx context.Context, ids []uint) ([]models.User, error) {
	var users []models.User
	if len(ids) == 0 {
		return users, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id ASC").Find(&users).Error
	return users, err
}

func (r *UserRepo) Page(ctx context.Context, page, size int) ([]models.User, int64, error) {
	var (
		users []models.User
		total int64
	)
	if err := r.db.WithContext(ctx).Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.db.WithContext(ctx).Order("id ASC").Offset(offset(page, size)).Limit(size).Find(&users).Error
	return users, total, err
}

func (r *UserRepo) All(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).Order("id ASC").Find(&users).Error
	return users, err
}

func (r *UserRepo) Admins(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).Where("is_admin = ?", true).Order("id ASC").Find(&users).Error
	return users, err
}

func (r *UserRepo) Create(ctx context.Context, user *models.User) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(user).Error
	if isDuplicate(err) {
		return apperr.Conflict("Email or username already in use!")
	}
	return err
}

func (r *UserRepo) Update(ctx context.Context, user *models.User) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Save(user).Error
	if isDuplicate(err) {
		return apperr.Conflict("Email or username already in use!")
	}
	return err
}

func (r *UserRepo) Delete(ctx context.Context, user *models.User) error {
	err := r.db.WithContext(ctx).Delete(&models.User{}, user.ID).Error
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return apperr.Conflict("Cannot delete a user who owns courses.", user.ID)
	}
	return err
}

func (r *UserRepo) EnrollmentCount(ctx context.Context, id uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Enrollment{}).Where("user_id = ?", id).Count(&n).Error
	return n, err
}

func normalizeIdentity(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func (r *UserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", normalizeIdentity(email)).Count(&n).Error
	return n > 0, err
}

func (r *UserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("username = ?", normalizeIdentity(username)).Count(&n).Error
	return n > 0, err
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	email = normalizeIdentity(email)
	var user models.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound(fmt.Sprintf("User with email %s not found.", email))
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	username = normalizeIdentity(username)
	var user models.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound(fmt.Sprintf("User with username %s not found.", username))
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// OwnedCourseIDs lists the courses the user is enrolled in, ascending.
func (r *UserRepo) OwnedCourseIDs(ctx context.Context, userID uint) ([]uint, error) {
	ids := []uint{}
	err := r.db.WithContext(ctx).Model(&models.Enrollment{}).
		Where("user_id = ?", userID).
		Order("course_id ASC").
		Pluck("course_id", &ids).Error
	return ids, err
}

// EnrollAll adds every course to the user's enrollments or none of them. Ownership is checked
// again inside the transaction and the unique (user_id, course_id) index rejects a racing
// duplicate, so a conflicting purchase leaves no partial state.
func (r *UserRepo) EnrollAll(ctx context.Context, userID uint, courseIDs []uint) error {
	if len(courseIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var owned []uint
		err := tx.Model(&models.Enrollment{}).
			Where("user_id = ? AND course_id IN ?", userID, courseIDs).
			Pluck("course_id", &owned).Error
		if err != nil {
			return err
		}
		if len(owned) > 0 {
			sort.Slice(owned, func(i, j int) bool { return owned[i] < owned[j] })
			return apperr.Conflict("User already owns course(s): "+apperr.JoinIDs(owned), owned...)
		}

		rows := make([]models.Enrollment, len(courseIDs))
		for i, id := range courseIDs {
			rows[i] = models.Enrollment{UserID: userID, CourseID: id}
		}
		if err := tx.Create(&rows).Error; err != nil {
			if isDuplicate(err) {
				return apperr.Conflict("User already owns course(s): "+apperr.JoinIDs(courseIDs), courseIDs...)
			}
			return err
		}
		return nil
	})
}
