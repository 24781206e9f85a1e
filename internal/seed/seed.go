// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"strings"

	"forgehub/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumProjects int
	ShouldClean bool
}

// Seeder populates the database with realistic demo data.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db, factory: NewFactory(db)}
}

// ClearAll truncates all seeded tables. Order matters for foreign keys.
func (s *Seeder) ClearAll() error {
	log.Println("Cleaning database...")
	tables := []interface{}{
		&models.Notification{},
		&models.Report{},
		&models.Bookmark{},
		&models.Review{},
		&models.BlogPost{},
		&models.Project{},
		&models.DeveloperProfile{},
		&models.User{},
	}
	for _, table := range tables {
		if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(table).Error; err != nil {
			return fmt.Errorf("failed to clean table %T: %w", table, err)
		}
	}
	return nil
}

// SeedAdmin ensures a known admin account exists for local development.
func (s *Seeder) SeedAdmin() (*models.User, error) {
	var existing models.User
	err := s.db.Where("email = ?", "admin@forgehub.dev").First(&existing).Error
	if err == nil {
		return &existing, nil
	}

	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	admin := &models.User{
		Email:    "admin@forgehub.dev",
		Password: string(hashed),
		FullName: "ForgeHub Admin",
		Role:     models.RoleAdmin,
		IsActive: true,
	}
	if err := s.db.Create(admin).Error; err != nil {
		return nil, err
	}
	log.Println("Created admin account admin@forgehub.dev")
	return admin, nil
}

// SeedMarketplace creates users, developer profiles and projects.
// Roughly half the users become developers with profiles.
func (s *Seeder) SeedMarketplace(numUsers, numProjects int) ([]*models.User, []*models.Project, error) {
	log.Printf("Seeding %d users and %d projects...", numUsers, numProjects)

	users := make([]*models.User, 0, numUsers)
	developers := make([]*models.User, 0, numUsers/2)

	for i := 0; i < numUsers; i++ {
		isDev := i%2 == 0
		user, err := s.factory.CreateUser(func(u *models.User) {
			if isDev {
				u.Role = models.RoleDeveloper
			}
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create user %d: %w", i, err)
		}
		users = append(users, user)

		if isDev {
			if _, err := s.factory.CreateDeveloperProfile(user); err != nil {
				return nil, nil, fmt.Errorf("failed to create developer profile: %w", err)
			}
			developers = append(developers, user)
		}
	}

	projects := make([]*models.Project, 0, numProjects)
	for i := 0; i < numProjects; i++ {
		owner := developers[s.factory.r.Intn(len(developers))]
		project, err := s.factory.CreateProject(owner, func(p *models.Project) {
			// Feature roughly one in ten active projects.
			if p.Status == models.ProjectStatusActive && s.factory.r.Intn(10) == 0 {
				p.Featured = true
			}
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create project %d: %w", i, err)
		}
		projects = append(projects, project)
	}

	return users, projects, nil
}

// SeedEngagement layers reviews, bookmarks and blog posts over seeded users
// and projects, then refreshes developer rating aggregates.
func (s *Seeder) SeedEngagement(users []*models.User, projects []*models.Project) error {
	log.Println("Seeding engagement (reviews, bookmarks, blog posts)...")

	for _, project := range projects {
		if project.Status != models.ProjectStatusActive {
			continue
		}
		numReviews := s.factory.r.Intn(6)
		reviewed := map[uint]bool{}
		for i := 0; i < numReviews; i++ {
			reviewer := users[s.factory.r.Intn(len(users))]
			// One review per user per project; skip owners and repeats.
			if reviewer.ID == project.UserID || reviewed[reviewer.ID] {
				continue
			}
			reviewed[reviewer.ID] = true
			if _, err := s.factory.CreateReview(reviewer, project); err != nil {
				return fmt.Errorf("failed to create review: %w", err)
			}
		}
	}

	for _, user := range users {
		numBookmarks := s.factory.r.Intn(4)
		for i := 0; i < numBookmarks; i++ {
			project := projects[s.factory.r.Intn(len(projects))]
			if err := s.factory.CreateBookmark(user, models.BookmarkTargetProject, project.ID); err != nil {
				return fmt.Errorf("failed to create bookmark: %w", err)
			}
		}
		if s.factory.r.Intn(5) == 0 {
			if _, err := s.factory.CreateBlogPost(user); err != nil {
				return fmt.Errorf("failed to create blog post: %w", err)
			}
		}
	}

	return s.refreshAllRatingStats()
}

// refreshAllRatingStats recomputes rating aggregates for every developer
// profile from the approved reviews created above.
func (s *Seeder) refreshAllRatingStats() error {
	var profiles []models.DeveloperProfile
	if err := s.db.Find(&profiles).Error; err != nil {
		return err
	}

	for i := range profiles {
		profile := &profiles[i]
		type stats struct {
			Avg   float64
			Count int64
		}
		var agg stats
		err := s.db.
			Model(&models.Review{}).
			Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
			Joins("JOIN projects ON projects.id = reviews.project_id").
			Where("projects.user_id = ? AND reviews.status = ?", profile.UserID, models.ReviewStatusApproved).
			Scan(&agg).Error
		if err != nil {
			return err
		}
		if err := s.db.Model(profile).Updates(map[string]interface{}{
			"rating":       agg.Avg,
			"review_count": agg.Count,
		}).Error; err != nil {
			return err
		}
	}
	return nil
}

func isDuplicate(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}
