package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"staffhub/internal/database"
	"staffhub/internal/domain"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "staffhub.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := db.AutoMigrate(
		&domain.Branch{},
		&domain.Department{},
		&domain.Employee{},
		&domain.User{},
		&domain.RefreshToken{},
		&domain.LoginAttempt{},
		&domain.PasswordResetToken{},
		&domain.LeaveRequest{},
		&domain.Attendance{},
		&domain.Project{},
	); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data (in safe order to avoid foreign key errors)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM project_members")
	db.Exec("DELETE FROM projects")
	db.Exec("DELETE FROM attendances")
	db.Exec("DELETE FROM leave_requests")
	db.Exec("DELETE FROM password_reset_tokens")
	db.Exec("DELETE FROM login_attempts")
	db.Exec("DELETE FROM refresh_tokens")
	db.Exec("DELETE FROM users")
	db.Exec("DELETE FROM employees")
	db.Exec("DELETE FROM departments")
	db.Exec("DELETE FROM branches")

	log.Println("Creating branches...")
	headOffice := domain.Branch{Name: "Head Office", Location: "Downtown"}
	mainBranch := domain.Branch{Name: "Main Branch", Location: "North Side"}
	hrBranch := domain.Branch{Name: "HR Branch", Location: "East Side"}
	db.Create(&headOffice)
	db.Create(&mainBranch)
	db.Create(&hrBranch)

	log.Println("Creating departments...")
	adminDept := domain.Department{Name: "Admin", Location: "Head Office"}
	engineering := domain.Department{Name: "Engineering", Location: "Main Branch"}
	humanResources := domain.Department{Name: "Human Resources", Location: "HR Branch"}
	db.Create(&adminDept)
	db.Create(&engineering)
	db.Create(&humanResources)

	log.Println("Creating employees and accounts...")
	seedAccount(db, seedSpec{
		firstName: "Ada", lastName: "Admin",
		email: "admin@example.com", password: "admin123",
		role: domain.RoleAdmin, position: "System Administrator",
		branchID: headOffice.ID, departmentID: adminDept.ID,
	})
	seedAccount(db, seedSpec{
		firstName: "Harper", lastName: "Reed",
		email: "hr@example.com", password: "hr123456",
		role: domain.RoleHR, position: "HR Manager",
		branchID: hrBranch.ID, departmentID: humanResources.ID,
	})
	seedAccount(db, seedSpec{
		firstName: "Evan", lastName: "Moore",
		email: "employee@example.com", password: "employee123",
		role: domain.RoleEmployee, position: "Software Engineer",
		branchID: mainBranch.ID, departmentID: engineering.ID,
	})

	log.Println("Seed complete.")
}

type seedSpec struct {
	firstName, lastName string
	email, password     string
	role                domain.UserRole
	position            string
	branchID            int64
	departmentID        int64
}

// seedAccount creates an employee row and a linked user account.
func seedAccount(db *gorm.DB, spec seedSpec) {
	emp := domain.Employee{
		FirstName:    spec.firstName,
		LastName:     spec.lastName,
		Email:        spec.email,
		Position:     spec.position,
		Status:       domain.EmployeeActive,
		BranchID:     &spec.branchID,
		DepartmentID: &spec.departmentID,
	}
	if err := db.Create(&emp).Error; err != nil {
		log.Fatalf("seed employee %s: %v", spec.email, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(spec.password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal(err)
	}
	user := domain.User{
		Email:        spec.email,
		PasswordHash: string(hash),
		Role:         spec.role,
		EmployeeID:   &emp.ID,
	}
	if err := db.Create(&user).Error; err != nil {
		log.Fatalf("seed user %s: %v", spec.email, err)
	}
	log.Printf("account created: %s / %s (%s)", spec.email, spec.password, spec.role)
}
