package database

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User is the persistence model for the users table.
// global_rank is a legacy column kept for schema compatibility; rank is
// always derived from stars_count at query time and the column is never
// read when serving requests.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID           uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	Name         string    `bun:"name,notnull"`
	Email        string    `bun:"email,unique,notnull"`
	PasswordHash string    `bun:"password_hash,notnull"`
	Image        string    `bun:"image,nullzero"`
	Description  string    `bun:"description,nullzero"`
	Tags         string    `bun:"tags,nullzero"`
	StarsCount   int       `bun:"stars_count,notnull,default:0"`
	MaxStars     int       `bun:"max_stars,notnull,default:5000"`
	GlobalRank   *int      `bun:"global_rank"`
	IsActive     bool      `bun:"is_active,notnull,default:true"`
	CreatedAt    time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt    time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}
