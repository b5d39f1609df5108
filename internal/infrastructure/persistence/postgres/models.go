package postgres

import (
	"gorm.io/datatypes"
)

// Timestamps são gravados em nanossegundos para que a ordem de inserção desempate listagens.

// UserModel é o model GORM para usuários
type UserModel struct {
	ID               string  `gorm:"type:uuid;primaryKey"`
	FirstName        string  `gorm:"type:varchar(255);not null"`
	LastName         string  `gorm:"type:varchar(255);not null"`
	Phone            string  `gorm:"type:varchar(50);not null"`
	Email            string  `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash     string  `gorm:"type:varchar(255);not null"`
	Role             string  `gorm:"type:varchar(50);not null;default:user;index"`
	AvatarURL        string  `gorm:"type:varchar(500)"`
	ResetToken       *string `gorm:"type:varchar(128);index"`
	ResetTokenExpiry *int64
	CreatedAt        int64 `gorm:"autoCreateTime:nano;index"`
	UpdatedAt        int64 `gorm:"autoUpdateTime:nano"`
}

func (UserModel) TableName() string {
	return "users"
}

// BlogPostModel é o model GORM para posts
type BlogPostModel struct {
	ID              string                      `gorm:"type:uuid;primaryKey"`
	Title           string                      `gorm:"type:varchar(500);not null"`
	Slug            string                      `gorm:"type:varchar(500);uniqueIndex;not null"`
	Excerpt         string                      `gorm:"type:text"`
	Content         string                      `gorm:"type:text"`
	CoverImageURL   string                      `gorm:"type:varchar(1000)"`
	Status          string                      `gorm:"type:varchar(20);not null;default:draft;index"`
	Tags            datatypes.JSONSlice[string] `gorm:"not null"`
	MetaTitle       string                      `gorm:"type:varchar(500)"`
	MetaDescription string                      `gorm:"type:text"`
	CanonicalURL    string                      `gorm:"type:varchar(1000)"`
	AuthorID        string                      `gorm:"type:varchar(64)"`
	AuthorName      string                      `gorm:"type:varchar(255)"`
	PublishedAt     *int64                      `gorm:"index"`
	CreatedAt       int64                       `gorm:"autoCreateTime:nano;index"`
	UpdatedAt       int64                       `gorm:"autoUpdateTime:nano"`
}

func (BlogPostModel) TableName() string {
	return "blog_posts"
}

// ActivityLogModel é o model GORM para o log de auditoria.
// actor_user_id e target_user_id não têm foreign key: usuários removidos deixam referências órfãs.
type ActivityLogModel struct {
	ID           string  `gorm:"type:uuid;primaryKey"`
	Action       string  `gorm:"type:varchar(50);not null;index"`
	ActorUserID  *string `gorm:"type:varchar(64)"`
	TargetUserID *string `gorm:"type:varchar(64)"`
	ResourceType string  `gorm:"type:varchar(20)"`
	ResourceID   string  `gorm:"type:varchar(64)"`
	Description  string  `gorm:"type:text;not null"`
	CreatedAt    int64   `gorm:"autoCreateTime:nano;index"`
}

func (ActivityLogModel) TableName() string {
	return "activity_logs"
}

// Models retorna todos os models para migração
func Models() []interface{} {
	return []interface{}{
		&UserModel{},
		&BlogPostModel{},
		&ActivityLogModel{},
	}
}
