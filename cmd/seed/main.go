// Command seed fills the users table with randomly generated demo accounts.
// The stars distribution is skewed so the leaderboard looks alive: a small
// top tier, a broad middle and a tail of newcomers.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	_ "github.com/lib/pq"
	"github.com/uptrace/bun"

	"github.com/Morzh777/stars-api/internal/config"
	"github.com/Morzh777/stars-api/internal/database"
)

var names = []string{
	"Александр", "Дмитрий", "Максим", "Сергей", "Андрей", "Алексей", "Артём", "Илья", "Кирилл", "Михаил",
	"Анна", "Мария", "Елена", "Ольга", "Татьяна", "Наталья", "Ирина", "Екатерина", "Светлана", "Юлия",
}

var surnames = []string{
	"Иванов", "Смирнов", "Кузнецов", "Попов", "Васильев", "Петров", "Соколов", "Михайлов", "Новиков", "Фёдоров",
	"Морозов", "Волков", "Алексеев", "Лебедев", "Семёнов", "Егоров", "Павлов", "Козлов", "Степанов", "Николаев",
}

var companies = []string{
	"Яндекс", "Сбер", "Тинькофф", "VK", "Ozon", "Wildberries", "Авито", "МТС", "Мегафон", "Ростелеком",
	"ПИК", "Газпром", "Роснефть", "Лукойл", "Магнит", "X5 Group", "Норникель", "Severstal", "NLMK", "Evraz",
}

var positions = []string{
	"Frontend Developer", "Backend Developer", "Full Stack Developer", "DevOps Engineer", "Data Scientist",
	"Product Manager", "UX/UI Designer", "QA Engineer", "Team Lead", "CTO", "Архитектор", "Аналитик",
	"Специалист", "Инженер", "Менеджер", "Директор", "Консультант", "Эксперт", "Руководитель", "Координатор",
}

var technologies = []string{
	"React", "Vue", "Angular", "Node.js", "Python", "Java", "Go", "Rust", "TypeScript", "JavaScript",
	"Docker", "Kubernetes", "AWS", "PostgreSQL", "MongoDB", "Redis", "GraphQL", "REST API", "Microservices", "DevOps",
}

var mottos = []string{
	"Создаю крутые продукты!",
	"Люблю программировать!",
	"Решаю сложные задачи!",
	"Делаю мир лучше через код!",
	"Эксперт в своей области!",
	"Строю будущее технологий!",
}

// Placeholder bcrypt hash; seeded accounts are not meant to log in
const seedPasswordHash = "$2a$12$seeddataseeddataseeddupBzcGWr0bWTC8Qq0T7r7fUO7T1S1S1S"

func main() {
	total := flag.Int("total", 1_000_000, "number of users to insert")
	batchSize := flag.Int("batch", 1000, "insert batch size")
	flag.Parse()

	if err := run(*total, *batchSize); err != nil {
		log.Fatalf("Seed error: %v", err)
	}
}

func run(total, batchSize int) error {
	cfg := config.LoadDatabase()

	sqlDB, err := sql.Open("postgres", cfg.ConnectionString())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	db := database.NewBunDB(sqlDB)
	ctx := context.Background()
	start := time.Now()

	log.Printf("Seeding %d users in batches of %d...", total, batchSize)

	inserted := 0
	for inserted < total {
		size := min(batchSize, total-inserted)

		batch := make([]database.User, size)
		for i := range batch {
			batch[i] = generateUser(inserted + i + 1)
		}

		if err := insertBatch(ctx, db, batch); err != nil {
			return fmt.Errorf("batch at %d failed: %w", inserted, err)
		}

		inserted += size
		if inserted%(batchSize*50) == 0 || inserted == total {
			elapsed := time.Since(start)
			log.Printf("inserted %d/%d users (%.0f users/sec)", inserted, total, float64(inserted)/elapsed.Seconds())
		}
	}

	log.Printf("Done: %d users in %s", inserted, time.Since(start).Round(time.Second))
	return nil
}

func insertBatch(ctx context.Context, db *bun.DB, batch []database.User) error {
	_, err := db.NewInsert().
		Model(&batch).
		Exec(ctx)
	return err
}

func generateUser(index int) database.User {
	name := choice(names)
	surname := choice(surnames)

	username := fmt.Sprintf("%s_%s_%d", translit(name), translit(surname), index)
	email := username + "@example.com"

	description := fmt.Sprintf("%s в %s. %s 🚀", choice(positions), choice(companies), choice(mottos))
	tags := fmt.Sprintf("#%s #%s #%s ⭐", choice(technologies), choice(technologies), choice(technologies))
	avatar := fmt.Sprintf("https://www.heroui.com/avatars/avatar-%d.png", randInt(1, 10))

	return database.User{
		Name:         name + " " + surname,
		Email:        email,
		PasswordHash: seedPasswordHash,
		Image:        avatar,
		Description:  description,
		Tags:         tags,
		StarsCount:   randomStars(),
		MaxStars:     5000,
		IsActive:     rand.Float64() > 0.05, // 95% active
		CreatedAt:    time.Now().Add(-time.Duration(rand.Int63n(365*24)) * time.Hour),
		UpdatedAt:    time.Now(),
	}
}

// randomStars skews the distribution: 10% top players, 20% strong,
// 40% average, 30% newcomers
func randomStars() int {
	switch r := rand.Float64(); {
	case r < 0.1:
		return randInt(4000, 5000)
	case r < 0.3:
		return randInt(2500, 3999)
	case r < 0.7:
		return randInt(1000, 2499)
	default:
		return randInt(0, 999)
	}
}

var translitTable = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d", 'е': "e", 'ё': "e", 'ж': "zh",
	'з': "z", 'и': "i", 'й': "y", 'к': "k", 'л': "l", 'м': "m", 'н': "n", 'о': "o",
	'п': "p", 'р': "r", 'с': "s", 'т': "t", 'у': "u", 'ф': "f", 'х': "h", 'ц': "ts",
	'ч': "ch", 'ш': "sh", 'щ': "sch", 'ъ': "", 'ы': "y", 'ь': "", 'э': "e", 'ю': "yu",
	'я': "ya",
}

// translit builds an ASCII login from a Cyrillic name
func translit(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if mapped, ok := translitTable[r]; ok {
			b.WriteString(mapped)
			continue
		}
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func choice(values []string) string {
	return values[rand.Intn(len(values))]
}

func randInt(lo, hi int) int {
	return lo + rand.Intn(hi-lo+1)
}
