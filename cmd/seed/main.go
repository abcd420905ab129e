// seed inserts development sample data for local testing.
// Idempotent: skips inserts if the demo user (demo@example.com) already exists.
// With -reset it first deletes every project, task and tag; users are kept.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"taskboard/backend/internal/config"
	"taskboard/backend/internal/db"
	projectdomain "taskboard/backend/internal/project/domain"
	projectrepo "taskboard/backend/internal/project/repository"
	"taskboard/backend/internal/security"
	taskdomain "taskboard/backend/internal/task/domain"
	taskrepo "taskboard/backend/internal/task/repository"
	userdomain "taskboard/backend/internal/user/domain"
	userrepo "taskboard/backend/internal/user/repository"
)

const (
	demoUserID    = "demo-user-001"
	demoEmail     = "demo@example.com"
	demoPassword  = "password123"
	demoProjectID = "demo-project-001"
)

func main() {
	reset := flag.Bool("reset", false, "delete all projects, tasks and tags before seeding")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set; create a .env from .env.example or set DATABASE_URL")
	}
	dialect, err := db.ParseDialect(cfg.DatabaseDriver)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	conn, err := db.Open(cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer conn.Close()

	ctx := context.Background()
	if err := db.EnsureSchema(ctx, conn, dialect); err != nil {
		log.Fatalf("db: ensure schema: %v", err)
	}

	users := userrepo.NewSQLRepository(conn, dialect)
	projects := projectrepo.NewSQLRepository(conn, dialect)
	tasks := taskrepo.NewSQLRepository(conn, dialect)

	if *reset {
		if err := projects.DeleteAll(ctx); err != nil {
			log.Fatalf("reset: %v", err)
		}
		log.Println("seed: deleted all projects, tasks and tags")
	}

	existing, err := users.GetByEmail(ctx, demoEmail)
	if err != nil {
		log.Fatalf("seed check: %v", err)
	}
	if existing != nil && !*reset {
		log.Printf("Seed already applied (%s exists). Skipping.", demoEmail)
		return
	}

	now := time.Now().UTC()
	if existing == nil {
		hash, err := security.NewHasher(cfg.BcryptCost).Hash(demoPassword)
		if err != nil {
			log.Fatalf("hash password: %v", err)
		}
		if err := users.Create(ctx, &userdomain.User{
			ID:           demoUserID,
			Email:        demoEmail,
			PasswordHash: hash,
			DisplayName:  "Demo User",
			Role:         userdomain.RoleUser,
			CreatedAt:    now,
			UpdatedAt:    now,
		}); err != nil {
			log.Fatalf("create demo user: %v", err)
		}
		existing = &userdomain.User{ID: demoUserID}
	}

	if err := projects.Create(ctx, &projectdomain.Project{
		ID:          demoProjectID,
		OwnerID:     existing.ID,
		Name:        "Getting started",
		Description: "Sample tasks created by the seed tool",
		CreatedAt:   now,
	}); err != nil {
		log.Fatalf("create demo project: %v", err)
	}

	due := now.Add(72 * time.Hour)
	samples := []taskdomain.Task{
		{ID: "demo-task-001", Title: "Read the README", Status: taskdomain.StatusDone, Priority: taskdomain.PriorityLow, Tags: []string{"docs"}},
		{ID: "demo-task-002", Title: "Create your first project", Status: taskdomain.StatusDoing, Priority: taskdomain.PriorityHigh, Tags: []string{"onboarding"}},
		{ID: "demo-task-003", Title: "Invite nobody, this is a personal board", Priority: taskdomain.PriorityMedium, Tags: []string{"onboarding", "fun"}},
		{ID: "demo-task-004", Title: "Pay the electricity bill", Priority: taskdomain.PriorityCritical, DueAt: &due, Tags: []string{"home"}},
	}
	for i := range samples {
		t := samples[i]
		t.ProjectID = demoProjectID
		t.CreatedAt = now.Add(time.Duration(i) * time.Second)
		t.UpdatedAt = t.CreatedAt
		if err := tasks.Create(ctx, &t); err != nil {
			log.Fatalf("create task %s: %v", t.ID, err)
		}
	}

	log.Printf("Seed complete. Login: %s / %s", demoEmail, demoPassword)
}
