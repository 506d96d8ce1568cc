package repositories

import (
	"github.com/yigit/coursehub/internal/db"
)

// Repositories holds all the repository instances
type Repositories struct {
	StudentRepository    IStudentRepository
	AdminRepository      IAdminRepository
	CourseRepository     ICourseRepository
	EnrollmentRepository IEnrollmentRepository
}

// NewRepositories initializes all repositories
func NewRepositories(database *db.PostgresDB) *Repositories {
	return &Repositories{
		StudentRepository:    NewStudentRepository(database.Pool),
		AdminRepository:      NewAdminRepository(database.Pool),
		CourseRepository:     NewCourseRepository(database),
		EnrollmentRepository: NewEnrollmentRepository(database.Pool),
	}
}
