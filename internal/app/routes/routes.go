package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/coursehub/internal/app/controllers"
	"github.com/yigit/coursehub/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	healthController *controllers.HealthController,
	authController *controllers.AuthController,
	courseController *controllers.CourseController,
	studentController *controllers.StudentController,
	enrollmentController *controllers.EnrollmentController,
	authMiddleware *middleware.AuthMiddleware,
) {
	api := router.Group("/api")
	api.Use(authMiddleware.ResolvePrincipal())

	api.GET("/health", healthController.Health)

	// --- Public auth routes ---
	api.POST("/students/signup", authController.Signup)
	api.POST("/students/login", authController.StudentLogin)
	api.POST("/admin/login", authController.AdminLogin)

	// --- Public course catalog ---
	courses := api.Group("/courses")
	{
		courses.GET("", courseController.ListCourses)
		courses.GET("/:id", courseController.GetCourse)
	}

	// --- Authenticated routes ---
	authenticated := api.Group("")
	authenticated.Use(authMiddleware.RequireAuthentication())
	{
		// Ownership is checked by the service: students see only their own courses
		authenticated.GET("/students/:id/courses", studentController.GetStudentCourses)
	}

	// --- Admin routes ---
	admin := authenticated.Group("")
	admin.Use(authMiddleware.RequireAdmin())
	{
		admin.GET("/students", studentController.ListStudents)

		admin.POST("/courses", courseController.CreateCourse)
		admin.PUT("/courses/:id", courseController.UpdateCourse)
		admin.DELETE("/courses/:id", courseController.DeleteCourse)
		admin.GET("/courses/:id/students", courseController.GetCourseStudents)

		admin.POST("/enrollments", enrollmentController.Enroll)
		admin.DELETE("/enrollments/:studentId/:courseId", enrollmentController.Unenroll)
	}
}
