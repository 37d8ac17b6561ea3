package main

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/oksasatya/todolist-api/config"
	"github.com/oksasatya/todolist-api/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	dsn := cfg.PostgresDSN()
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "demo@example.com"
	password := "password123"
	name := "Demo User"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var userID string
	err = db.QueryRow(`
		INSERT INTO users (email, password, name)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO UPDATE SET name=EXCLUDED.name
		RETURNING id
	`, email, hash, name).Scan(&userID)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s password=%s\n", userID, email, password)

	// Duplicate list names are allowed, so look it up before inserting to keep
	// the seed idempotent.
	var listID string
	err = db.QueryRow(`SELECT id FROM todo_lists WHERE user_id = $1 AND list_name = $2 LIMIT 1`, userID, "Groceries").Scan(&listID)
	if err == sql.ErrNoRows {
		err = db.QueryRow(`
			INSERT INTO todo_lists (user_id, list_name)
			VALUES ($1, $2)
			RETURNING id
		`, userID, "Groceries").Scan(&listID)
	}
	if err != nil {
		log.Fatalf("failed to seed list: %v", err)
	}
	fmt.Printf("seeded list: id=%s name=Groceries\n", listID)

	var todoCount int
	if err := db.QueryRow(`SELECT count(*) FROM todos WHERE todo_list_id = $1`, listID).Scan(&todoCount); err != nil {
		log.Fatalf("failed to count todos: %v", err)
	}
	if todoCount > 0 {
		fmt.Println("list already has todos, skipping")
		return
	}

	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	nextWeek := time.Now().AddDate(0, 0, 7).Format("2006-01-02")
	tasks := []struct {
		name     string
		dueBy    string
		priority string
		status   bool
	}{
		{"Buy milk", tomorrow, "High", false},
		{"Buy eggs", tomorrow, "Medium", false},
		{"Restock pantry", nextWeek, "Low", true},
	}
	for _, t := range tasks {
		if _, err := db.Exec(`
			INSERT INTO todos (todo_list_id, user_id, task_name, due_by, task_priority, task_status)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, listID, userID, t.name, t.dueBy, t.priority, t.status); err != nil {
			log.Fatalf("failed to seed todo %q: %v", t.name, err)
		}
	}
	fmt.Printf("seeded %d todos\n", len(tasks))
}
