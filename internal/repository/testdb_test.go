package repository

import (
	"testing"

	"studyhive_backend/internal/model"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database with the full schema.
// A single connection keeps every query on the same in-memory instance.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Level{},
		&model.Course{},
		&model.PastQuestion{},
		&model.OfficialNote{},
		&model.CommunityNote{},
		&model.SavedNote{},
		&model.Vote{},
		&model.Comment{},
		&model.Quiz{},
		&model.QuizQuestion{},
		&model.QuizAttempt{},
		&model.MaterialRequest{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name string) *model.User {
	t.Helper()
	user := &model.User{
		Name:       name,
		Email:      name + "@uni.edu",
		Password:   "irrelevant",
		Role:       model.RoleStudent,
		IsVerified: true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedCourse(t *testing.T, db *gorm.DB, code string) *model.Course {
	t.Helper()
	course := &model.Course{
		Code:     code,
		Title:    code + " Introduction",
		Semester: model.SemesterFirst,
		LevelID:  1,
	}
	require.NoError(t, db.Create(course).Error)
	return course
}

func seedNote(t *testing.T, db *gorm.DB, courseID string, authorID uint) *model.CommunityNote {
	t.Helper()
	note := &model.CommunityNote{
		CourseID: courseID,
		Title:    "Week 3 summary",
		FileKey:  "notes/week3.pdf",
		FileName: "week3.pdf",
		FileSize: 1024,
		AuthorID: authorID,
	}
	require.NoError(t, db.Create(note).Error)
	return note
}

func reloadUser(t *testing.T, db *gorm.DB, id uint) *model.User {
	t.Helper()
	var user model.User
	require.NoError(t, db.First(&user, "id = ?", id).Error)
	return &user
}

func reloadNote(t *testing.T, db *gorm.DB, id string) *model.CommunityNote {
	t.Helper()
	var note model.CommunityNote
	require.NoError(t, db.First(&note, "id = ?", id).Error)
	return &note
}
