package models

import (
	"time"

	"gorm.io/gorm"
)

// Course is the catalog entity quizzes attach to. Only the pieces the quiz
// save path needs are modeled here: modules (a course with modules cannot host
// a module-less quiz) and videos (candidates for the prerequisite gate).
type Course struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	Title       string  `json:"title" gorm:"not null;size:200" validate:"required,max=200"`
	Description *string `json:"description" gorm:"type:text"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	Modules []Module `json:"modules,omitempty" gorm:"foreignKey:CourseID"`
	Videos  []Video  `json:"videos,omitempty" gorm:"foreignKey:CourseID"`
}

type Module struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	CourseID uint   `json:"course_id" gorm:"not null;index"`
	Title    string `json:"title" gorm:"not null;size:200"`
	Order    int    `json:"order" gorm:"column:sort_order;default:0"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Sections []Section `json:"sections,omitempty" gorm:"foreignKey:ModuleID"`
}

type Section struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	ModuleID uint   `json:"module_id" gorm:"not null;index"`
	Title    string `json:"title" gorm:"not null;size:200"`
	Order    int    `json:"order" gorm:"column:sort_order;default:0"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Video struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	CourseID uint   `json:"course_id" gorm:"not null;index"`
	ModuleID *uint  `json:"module_id" gorm:"index"`
	Title    string `json:"title" gorm:"not null;size:200"`
	URL      string `json:"url" gorm:"not null"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Course) TableName() string  { return "courses" }
func (Module) TableName() string  { return "modules" }
func (Section) TableName() string { return "sections" }
func (Video) TableName() string   { return "videos" }
