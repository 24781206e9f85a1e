// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"forgehub/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var techPool = []string{
	"Go", "TypeScript", "React", "Vue", "Svelte", "PostgreSQL", "Redis",
	"Docker", "Kubernetes", "gRPC", "GraphQL", "Rust", "Python", "Terraform",
	"Kafka", "RabbitMQ", "Next.js", "Tailwind", "AWS", "GCP",
}

var blogCategories = []string{
	"engineering", "design", "announcements", "tutorials", "community",
}

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by the Seeder and tests.
type Factory struct {
	db *gorm.DB
	r  *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	// #nosec G404: acceptable for seeding
	return &Factory{db: db, r: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (f *Factory) pickTech(n int) models.StringList {
	picked := make(models.StringList, 0, n)
	perm := f.r.Perm(len(techPool))
	for _, idx := range perm[:n] {
		picked = append(picked, techPool[idx])
	}
	return picked
}

// spreadBack returns a timestamp up to maxDays in the past for realistic
// created_at distributions.
func (f *Factory) spreadBack(maxDays int) time.Time {
	daysBack := f.r.Intn(maxDays)
	hoursBack := f.r.Intn(24)
	return time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour)
}

// CreateUser constructs and persists a sample `models.User`.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		Email:    gofakeit.Email(),
		Password: string(hashedPassword),
		FullName: gofakeit.Name(),
		Role:     models.RoleUser,
		IsActive: true,
	}
	user.CreatedAt = f.spreadBack(180)

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateDeveloperProfile persists a developer profile for the given user.
func (f *Factory) CreateDeveloperProfile(user *models.User, overrides ...func(*models.DeveloperProfile)) (*models.DeveloperProfile, error) {
	profile := &models.DeveloperProfile{
		UserID:          user.ID,
		Expertise:       f.pickTech(3 + f.r.Intn(3)),
		YearsExperience: 1 + f.r.Intn(15),
		WebsiteURL:      gofakeit.URL(),
		GithubURL:       fmt.Sprintf("https://github.com/%s", gofakeit.Username()),
		HourlyRate:      float64(25 + f.r.Intn(150)),
		Bio:             gofakeit.Paragraph(1, 2, 8, " "),
		Available:       f.r.Intn(4) > 0,
	}

	for _, override := range overrides {
		override(profile)
	}

	if err := f.db.Create(profile).Error; err != nil {
		return nil, err
	}
	return profile, nil
}

// CreateProject persists a sample project owned by the given user.
func (f *Factory) CreateProject(user *models.User, overrides ...func(*models.Project)) (*models.Project, error) {
	statuses := []models.ProjectStatus{
		models.ProjectStatusActive, models.ProjectStatusActive,
		models.ProjectStatusActive, models.ProjectStatusDraft,
		models.ProjectStatusUnderReview,
	}
	project := &models.Project{
		Title:       gofakeit.AppName(),
		Description: gofakeit.Paragraph(2, 3, 10, "\n"),
		TechStack:   f.pickTech(2 + f.r.Intn(4)),
		MediaURL:    fmt.Sprintf("https://picsum.photos/seed/%s/800/600", gofakeit.UUID()),
		RepoURL:     fmt.Sprintf("https://github.com/%s/%s", gofakeit.Username(), gofakeit.Word()),
		LiveURL:     gofakeit.URL(),
		Status:      statuses[f.r.Intn(len(statuses))],
		Budget:      float64(f.r.Intn(20000)),
		UserID:      user.ID,
	}
	project.CreatedAt = f.spreadBack(120)

	for _, override := range overrides {
		override(project)
	}

	if err := f.db.Create(project).Error; err != nil {
		return nil, err
	}
	return project, nil
}

// CreateReview persists a review of the given project by the given user.
func (f *Factory) CreateReview(user *models.User, project *models.Project, overrides ...func(*models.Review)) (*models.Review, error) {
	// Skew ratings high the way real marketplaces trend.
	ratings := []int{5, 5, 4, 4, 4, 3, 2, 1}
	review := &models.Review{
		ProjectID: project.ID,
		UserID:    user.ID,
		Rating:    ratings[f.r.Intn(len(ratings))],
		Title:     gofakeit.Sentence(4),
		Comment:   gofakeit.Paragraph(1, 2, 8, " "),
		Status:    models.ReviewStatusApproved,
	}

	for _, override := range overrides {
		override(review)
	}

	if err := f.db.Create(review).Error; err != nil {
		return nil, err
	}
	return review, nil
}

// CreateBookmark persists a bookmark, ignoring duplicates from random picks.
func (f *Factory) CreateBookmark(user *models.User, targetType models.BookmarkTarget, targetID uint) error {
	bookmark := &models.Bookmark{
		UserID:     user.ID,
		TargetType: targetType,
		TargetID:   targetID,
	}
	err := f.db.Create(bookmark).Error
	if err != nil && isDuplicate(err) {
		return nil
	}
	return err
}

// CreateBlogPost persists a sample blog post authored by the given user.
func (f *Factory) CreateBlogPost(user *models.User, overrides ...func(*models.BlogPost)) (*models.BlogPost, error) {
	title := gofakeit.Sentence(6)
	post := &models.BlogPost{
		UserID:    user.ID,
		Title:     title,
		Slug:      fmt.Sprintf("%s-%s", gofakeit.Word(), gofakeit.UUID()[:8]),
		Content:   gofakeit.Paragraph(4, 5, 12, "\n\n"),
		Excerpt:   gofakeit.Sentence(12),
		Category:  blogCategories[f.r.Intn(len(blogCategories))],
		Tags:      f.pickTech(1 + f.r.Intn(3)),
		Published: f.r.Intn(5) > 0,
	}
	post.CreatedAt = f.spreadBack(90)

	for _, override := range overrides {
		override(post)
	}

	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}
