package services

import (
	"byway/models"
	"byway/utils/apperr"
	"byway/utils/logger"
	"byway/utils/notify"
	"context"
	"sort"
)

type PurchaseCourses interface {
	GetByIDs(ctx context.Context, ids []uint) ([]models.Course, error)
}

type EnrollmentStore interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	OwnedCourseIDs(ctx context.Context, userID uint) ([]uint, error)
	EnrollAll(ctx context.Context, userID uint, courseIDs []uint) error
}

type PurchaseResult struct {
	Receipt *models.Receipt `json:"receipt"`
	Warning string          `json:"warning,omitempty"`
}

const confirmationWarning = "Purchase completed, but the confirmation email could not be sent."

type PurchaseService struct {
	courses  PurchaseCourses
	users    EnrollmentStore
	notifier notify.Notifier
	pricing  Pricing
	log      *logger.Logger
}

func NewPurchaseService(courses PurchaseCourses, users EnrollmentStore, notifier notify.Notifier, pricing Pricing, log *logger.Logger) *PurchaseService {
	return &PurchaseService{
		courses:  courses,
		users:    users,
		notifier: notifier,
		pricing:  pricing,
		log:      log.With("service", "PurchaseService"),
	}
}

// uniqueIDs drops zero and repeated ids and sorts the rest.
func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id == 0 || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Purchase enrolls the user in every requested course or in none. Validation runs in order:
// empty request, unknown user, missing courses, courses already owned. Enrollment is committed
// before the confirmation email is sent; a failed email only adds a warning to the result.
func (s *PurchaseService) Purchase(ctx context.Context, userID uint, courseIDs []uint) (*PurchaseResult, error) {
	ids := uniqueIDs(courseIDs)
	if len(ids) == 0 {
		return nil, apperr.Input("courseIds", "Course IDs cannot be null or empty!")
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	courses, err := s.courses.GetByIDs(ctx, ids)
	if err != nil {
		return nil, apperr.Unexpected(err)
	}
	if missing := missingIDs(ids, courses); len(missing) > 0 {
		return nil, apperr.NotFound("One or more courses not found: "+apperr.JoinIDs(missing), missing...)
	}

	owned, err := s.users.OwnedCourseIDs(ctx, userID)
	if err != nil {
		return nil, apperr.Unexpected(err)
	}
	if dup := intersect(ids, owned); len(dup) > 0 {
		return nil, apperr.Conflict("User already owns course(s): "+apperr.JoinIDs(dup), dup...)
	}

	if err := s.users.EnrollAll(ctx, userID, ids); err != nil {
		if apperr.KindOf(err) == apperr.KindConflict {
			return nil, err
		}
		s.log.Error("Enrollment failed", "user_id", userID, "courses", ids, "error", err)
		return nil, apperr.Unexpected(err)
	}

	receipt := s.pricing.Receipt(courses)
	s.log.Info("Purchase completed", "user_id", userID, "courses", ids, "total", receipt.TotalPrice)

	result := &PurchaseResult{Receipt: receipt}
	subject, body := notify.PurchaseEmail(user.Name, receipt)
	if err := s.notifier.Send(ctx, user.Email, subject, body); err != nil {
		s.log.Warn("Purchase confirmation not sent", "user_id", userID, "error", err)
		result.Warning = confirmationWarning
	}
	return result, nil
}

// MyCourses lists the ids of the courses the user owns.
func (s *PurchaseService) MyCourses(ctx context.Context, userID uint) ([]uint, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	ids, err := s.users.OwnedCourseIDs(ctx, userID)
	if err != nil {
		return nil, apperr.Unexpected(err)
	}
	return ids, nil
}

func missingIDs(want []uint, found []models.Course) []uint {
	have := make(map[uint]bool, len(found))
	for _, c := range found {
		have[c.ID] = true
	}
	var missing []uint
	for _, id := range want {
		if !have[id] {
			missing = append(missing, id)
		}
	}
	return missing
}

func intersect(ids, owned []uint) []uint {
	set := make(map[uint]bool, len(owned))
	for _, id := range owned {
		set[id] = true
	}
	var out []uint
	for _, id := range ids {
		if set[id] {
			out = append(out, id)
		}
	}
	return out
}
