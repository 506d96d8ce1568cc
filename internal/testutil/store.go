// Package testutil provides test doubles shared by the service and HTTP tests.
package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/yigit/coursehub/internal/app/models"
	"github.com/yigit/coursehub/internal/app/repositories"
	"github.com/yigit/coursehub/internal/pkg/apperrors"
)

// Store is an in-memory implementation of every repository interface with
// the uniqueness and cascade rules of the PostgreSQL schema. Each write
// advances a fake clock by one second so orderings are deterministic.
type Store struct {
	mu sync.Mutex

	now    time.Time
	nextID int64

	students    map[int64]*models.Student
	admins      map[int64]*models.Admin
	courses     map[int64]*models.Course
	enrollments map[int64]*models.Enrollment

	// FailWith, when set, is returned by every operation.
	FailWith error
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		now:         time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		students:    map[int64]*models.Student{},
		admins:      map[int64]*models.Admin{},
		courses:     map[int64]*models.Course{},
		enrollments: map[int64]*models.Enrollment{},
	}
}

// Repositories exposes the store through the repository container
func (s *Store) Repositories() *repositories.Repositories {
	return &repositories.Repositories{
		StudentRepository:    (*studentRepo)(s),
		AdminRepository:      (*adminRepo)(s),
		CourseRepository:     (*courseRepo)(s),
		EnrollmentRepository: (*enrollmentRepo)(s),
	}
}

// EnrollmentCount returns the number of stored enrollments.
func (s *Store) EnrollmentCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.enrollments)
}

// tick must be called with mu held
func (s *Store) tick() (int64, time.Time) {
	s.nextID++
	s.now = s.now.Add(time.Second)
	return s.nextID, s.now
}

type studentRepo Store

var _ repositories.IStudentRepository = (*studentRepo)(nil)

func (r *studentRepo) Create(_ context.Context, student *models.Student) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return s.FailWith
	}
	for _, existing := range s.students {
		if existing.Email == student.Email {
			return apperrors.ErrEmailAlreadyExists
		}
	}
	id, now := s.tick()
	student.ID, student.CreatedAt, student.UpdatedAt = id, now, now
	stored := *student
	s.students[id] = &stored
	return nil
}

func (r *studentRepo) GetByID(_ context.Context, id int64) (*models.Student, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return nil, s.FailWith
	}
	if st, ok := s.students[id]; ok {
		c := *st
		return &c, nil
	}
	return nil, apperrors.ErrStudentNotFound
}

func (r *studentRepo) GetByEmail(_ context.Context, email string) (*models.Student, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return nil, s.FailWith
	}
	for _, st := range s.students {
		if st.Email == email {
			c := *st
			return &c, nil
		}
	}
	return nil, apperrors.ErrStudentNotFound
}

func (r *studentRepo) List(_ context.Context) ([]*models.Student, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return nil, s.FailWith
	}
	out := []*models.Student{}
	for _, st := range s.students {
		c := *st
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return newerFirst(out[i].CreatedAt, out[j].CreatedAt, out[i].ID, out[j].ID) })
	return out, nil
}

type adminRepo Store

var _ repositories.IAdminRepository = (*adminRepo)(nil)

func (r *adminRepo) Create(_ context.Context, admin *models.Admin) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return s.FailWith
	}
	if s.adminByUsername(admin.Username) != nil {
		return apperrors.ErrUsernameAlreadyExists
	}
	s.insertAdmin(admin)
	return nil
}

func (r *adminRepo) CreateIfNotExists(_ context.Context, admin *models.Admin) (bool, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return false, s.FailWith
	}
	if s.adminByUsername(admin.Username) != nil {
		return false, nil
	}
	s.insertAdmin(admin)
	return true, nil
}

func (r *adminRepo) GetByUsername(_ context.Context, username string) (*models.Admin, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return nil, s.FailWith
	}
	if a := s.adminByUsername(username); a != nil {
		c := *a
		return &c, nil
	}
	return nil, apperrors.ErrAdminNotFound
}

func (s *Store) adminByUsername(username string) *models.Admin {
	for _, a := range s.admins {
		if a.Username == username {
			return a
		}
	}
	return nil
}

func (s *Store) insertAdmin(admin *models.Admin) {
	id, now := s.tick()
	admin.ID, admin.CreatedAt = id, now
	stored := *admin
	s.admins[id] = &stored
}

type courseRepo Store

var _ repositories.ICourseRepository = (*courseRepo)(nil)

func (r *courseRepo) Create(_ context.Context, course *models.Course) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return s.FailWith
	}
	if course.CreatedBy != nil {
		if _, ok := s.admins[*course.CreatedBy]; !ok {
			return apperrors.ErrAdminNotFound
		}
	}
	id, now := s.tick()
	course.ID, course.CreatedAt, course.UpdatedAt = id, now, now
	stored := *course
	s.courses[id] = &stored
	return nil
}

func (r *courseRepo) GetByID(_ context.Context, id int64) (*models.Course, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return nil, s.FailWith
	}
	if c, ok := s.courses[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, apperrors.ErrCourseNotFound
}

func (r *courseRepo) List(_ context.Context) ([]*models.Course, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return nil, s.FailWith
	}
	out := []*models.Course{}
	for _, c := range s.courses {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return newerFirst(out[i].CreatedAt, out[j].CreatedAt, out[i].ID, out[j].ID) })
	return out, nil
}

func (r *courseRepo) Update(_ context.Context, id int64, update models.CourseUpdate) (*models.Course, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return nil, s.FailWith
	}
	c, ok := s.courses[id]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	if update.Title != nil {
		c.Title = *update.Title
	}
	if update.Description != nil {
		if *update.Description == "" {
			c.Description = nil
		} else {
			d := *update.Description
			c.Description = &d
		}
	}
	s.now = s.now.Add(time.Second)
	c.UpdatedAt = s.now
	cp := *c
	return &cp, nil
}

func (r *courseRepo) Delete(_ context.Context, id int64) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return s.FailWith
	}
	if _, ok := s.courses[id]; !ok {
		return apperrors.ErrCourseNotFound
	}
	for eid, e := range s.enrollments {
		if e.CourseID == id {
			delete(s.enrollments, eid)
		}
	}
	delete(s.courses, id)
	return nil
}

type enrollmentRepo Store

var _ repositories.IEnrollmentRepository = (*enrollmentRepo)(nil)

func (r *enrollmentRepo) Create(_ context.Context, studentID, courseID int64) (*models.Enrollment, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return nil, s.FailWith
	}
	if _, ok := s.students[studentID]; !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	if _, ok := s.courses[courseID]; !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	if s.enrollment(studentID, courseID) != nil {
		return nil, apperrors.ErrAlreadyEnrolled
	}
	id, now := s.tick()
	e := &models.Enrollment{ID: id, StudentID: studentID, CourseID: courseID, EnrolledAt: now}
	s.enrollments[id] = e
	cp := *e
	return &cp, nil
}

func (r *enrollmentRepo) Delete(_ context.Context, studentID, courseID int64) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return s.FailWith
	}
	e := s.enrollment(studentID, courseID)
	if e == nil {
		return apperrors.ErrEnrollmentNotFound
	}
	delete(s.enrollments, e.ID)
	return nil
}

func (r *enrollmentRepo) ListCoursesByStudent(_ context.Context, studentID int64) ([]*models.EnrolledCourse, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return nil, s.FailWith
	}
	rows := s.enrollmentsWhere(func(e *models.Enrollment) bool { return e.StudentID == studentID })
	out := []*models.EnrolledCourse{}
	for _, e := range rows {
		c := s.courses[e.CourseID]
		out = append(out, &models.EnrolledCourse{ID: c.ID, Title: c.Title, Description: c.Description, EnrolledAt: e.EnrolledAt})
	}
	return out, nil
}

func (r *enrollmentRepo) ListStudentsByCourse(_ context.Context, courseID int64) ([]*models.EnrolledStudent, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return nil, s.FailWith
	}
	rows := s.enrollmentsWhere(func(e *models.Enrollment) bool { return e.CourseID == courseID })
	out := []*models.EnrolledStudent{}
	for _, e := range rows {
		st := s.students[e.StudentID]
		out = append(out, &models.EnrolledStudent{ID: st.ID, Email: st.Email, Name: st.Name, EnrolledAt: e.EnrolledAt})
	}
	return out, nil
}

func (s *Store) enrollment(studentID, courseID int64) *models.Enrollment {
	for _, e := range s.enrollments {
		if e.StudentID == studentID && e.CourseID == courseID {
			return e
		}
	}
	return nil
}

// enrollmentsWhere returns matching enrollments, most recent first
func (s *Store) enrollmentsWhere(match func(*models.Enrollment) bool) []*models.Enrollment {
	var rows []*models.Enrollment
	for _, e := range s.enrollments {
		if match(e) {
			rows = append(rows, e)
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		return newerFirst(rows[i].EnrolledAt, rows[j].EnrolledAt, rows[i].ID, rows[j].ID)
	})
	return rows
}

func newerFirst(ti, tj time.Time, idi, idj int64) bool {
	if !ti.Equal(tj) {
		return ti.After(tj)
	}
	return idi > idj
}
