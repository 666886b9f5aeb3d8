// Seeds the database with a demo manager, two employees, and a week of
// attendance records. Safe to run only against an empty database: reruns fail
// on the unique constraints.
package main

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/attendly/attendance-backend-go/internal/config"
	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly/attendance-backend-go/internal/domain/user"
	"github.com/attendly/attendance-backend-go/internal/pkg/database"
	"github.com/attendly/attendance-backend-go/internal/pkg/dateutil"
	"github.com/attendly/attendance-backend-go/internal/repository/postgresql"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const seedPassword = "password123"

type seedUser struct {
	name       string
	code       string
	email      string
	role       user.Role
	department string
}

var seedUsers = []seedUser{
	{"Maya Manager", "MGR-001", "manager@attendly.dev", user.RoleManager, "Management"},
	{"Evan Employee", "EMP-001", "evan@attendly.dev", user.RoleEmployee, "Engineering"},
	{"Sara Sales", "EMP-002", "sara@attendly.dev", user.RoleEmployee, "Sales"},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	ctx := context.Background()
	dsn := cfg.DatabaseURL()

	if err := postgresql.Migrate(ctx, dsn); err != nil {
		log.Fatal("Error running migrations: ", err)
	}

	db, err := database.NewPostgreSQLDB(dsn, cfg.Database.MaxConns, cfg.Database.MinConns)
	if err != nil {
		log.Fatal("Error connecting to database: ", err)
	}
	defer db.Close()

	loc, err := time.LoadLocation(cfg.Attendance.Timezone)
	if err != nil {
		log.Fatal("Error loading timezone: ", err)
	}

	userRepo := postgresql.NewUserRepository(db)
	recordRepo := postgresql.NewRecordRepository(db)

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Error hashing seed password: ", err)
	}

	err = postgresql.WithTransaction(ctx, db, func(ctx context.Context) error {
		var employees []user.User
		for _, s := range seedUsers {
			created, err := userRepo.Create(ctx, user.User{
				ID:           uuid.NewString(),
				Name:         s.name,
				EmployeeCode: s.code,
				Email:        s.email,
				PasswordHash: string(hash),
				Role:         s.role,
				Department:   s.department,
			})
			if err != nil {
				return fmt.Errorf("failed to seed user %s: %w", s.email, err)
			}
			if created.Role == user.RoleEmployee {
				employees = append(employees, created)
			}
		}

		// Past week of records, skipping weekends. The second employee shows
		// up late every other day.
		now := time.Now().In(loc)
		for offset := 7; offset >= 1; offset-- {
			day := now.AddDate(0, 0, -offset)
			if day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
				continue
			}

			for i, emp := range employees {
				checkIn := time.Date(day.Year(), day.Month(), day.Day(), 8, 55, 0, 0, loc)
				status := attendance.StatusPresent
				if i == 1 && offset%2 == 0 {
					checkIn = checkIn.Add(50 * time.Minute)
					status = attendance.StatusLate
				}
				checkOut := checkIn.Add(8*time.Hour + 10*time.Minute)
				hours := math.Round(checkOut.Sub(checkIn).Hours()*100) / 100

				_, err := recordRepo.Create(ctx, attendance.Record{
					ID:           uuid.NewString(),
					UserID:       emp.ID,
					Date:         dateutil.DayKey(day),
					CheckInTime:  &checkIn,
					CheckOutTime: &checkOut,
					Status:       status,
					TotalHours:   &hours,
				})
				if err != nil {
					return fmt.Errorf("failed to seed record for %s on %s: %w", emp.EmployeeCode, dateutil.DayKey(day), err)
				}
			}
		}

		return nil
	})
	if err != nil {
		log.Fatal("Seeding failed: ", err)
	}

	fmt.Println("Seeded", len(seedUsers), "users (password:", seedPassword+")")
}
