package database

import (
	"errors"
	"time"

	config "github.com/anjiri1684/skill_swap/configs"
	"github.com/anjiri1684/skill_swap/logger"
	"github.com/anjiri1684/skill_swap/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var DB *gorm.DB

// GormConfig is shared by the Postgres connection and the test stores so that
// timestamps are always written in UTC.
func GormConfig() *gorm.Config {
	return &gorm.Config{
		PrepareStmt:                              false,
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   gormlogger.Default.LogMode(gormlogger.Silent),
		NowFunc:                                  func() time.Time { return time.Now().UTC() },
		TranslateError:                           true,
	}
}

func ConnectDB() {
	var err error
	dsn := config.Config("DATABASE_URL")

	DB, err = gorm.Open(postgres.Open(dsn), GormConfig())
	if err != nil {
		logger.L().Fatal("failed to connect to database", "error", err)
	}

	logger.L().Info("database connected")
}

func MigrateDB(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Skill{},
		&models.UserSkill{},
		&models.Swap{},
		&models.Session{},
		&models.Message{},
		&models.Review{},
		&models.Availability{},
	)
}

func Migrate() {
	if err := MigrateDB(DB); err != nil {
		logger.L().Fatal("failed to migrate database", "error", err)
	}
	logger.L().Info("database migration successful")
}

func SeedAdmin() {
	adminEmail := config.Config("ADMIN_EMAIL")
	adminPassword := config.Config("ADMIN_PASSWORD")
	if adminEmail == "" || adminPassword == "" {
		logger.L().Warn("ADMIN_EMAIL or ADMIN_PASSWORD not set, skipping admin seed")
		return
	}

	var count int64
	if err := DB.Model(&models.User{}).Where("email = ?", adminEmail).Count(&count).Error; err != nil {
		logger.L().Fatal("failed to check for admin user", "error", err)
	}
	if count > 0 {
		logger.L().Debug("admin user already exists")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		logger.L().Fatal("failed to hash admin password", "error", err)
	}

	adminUser := models.User{
		FirstName: config.Default("ADMIN_FIRST_NAME", "Admin"),
		Email:     adminEmail,
		Password:  string(hashedPassword),
		Role:      models.UserRoleAdmin,
		IsActive:  true,
	}
	if err := DB.Create(&adminUser).Error; err != nil {
		logger.L().Fatal("failed to seed admin user", "error", err)
	}

	logger.L().Info("admin user seeded")
}

var starterSkills = []struct{ Name, Category string }{
	{"Guitar", "Music"},
	{"Piano", "Music"},
	{"Photography", "Arts"},
	{"Drawing", "Arts"},
	{"Spanish", "Languages"},
	{"French", "Languages"},
	{"Python", "Technology"},
	{"Web Development", "Technology"},
	{"Cooking", "Lifestyle"},
	{"Yoga", "Fitness"},
}

// SeedSkills inserts the starter catalog, skipping names that already exist.
func SeedSkills(db *gorm.DB) error {
	for _, s := range starterSkills {
		skill := models.Skill{Name: s.Name, NormalizedName: models.NormalizeSkillName(s.Name), Category: s.Category}
		err := db.Where("normalized_name = ?", skill.NormalizedName).FirstOrCreate(&skill).Error
		if err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}
	}
	return nil
}
