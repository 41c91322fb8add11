//go:build ignore

package main

// Seeds a development database with sample protocol teams, visitors, and
// shared strategies. Run the migrations first, then:
//
//	DATABASE_URL=postgres://... go run scripts/seed_protocol_data.go

import (
	"database/sql"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
)

type seedTeam struct {
	name   string
	leader string
}

var seedTeams = []seedTeam{
	{"Welcome Team Alpha", "Grace Mensah"},
	{"Welcome Team Bravo", "Daniel Osei"},
	{"Welcome Team Charlie", "Ruth Adjei"},
}

var visitorNames = []string{
	"Kofi Boateng", "Ama Serwaa", "Yaw Darko", "Efua Asante",
	"Kwame Owusu", "Abena Frimpong", "Kojo Antwi", "Akosua Badu",
}

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL is required")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("connect: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatalf("ping: %v", err)
	}

	now := time.Now()
	teamIDs := make([]string, 0, len(seedTeams))

	for _, t := range seedTeams {
		teamID := uuid.NewString()
		teamIDs = append(teamIDs, teamID)

		_, err := db.Exec(`
			INSERT INTO protocol_teams (id, name, responsibilities, created_at)
			VALUES ($1, $2, '{"greeting","follow-up","integration"}', $3)
		`, teamID, t.name, now.AddDate(-1, 0, 0))
		if err != nil {
			log.Fatalf("insert team %s: %v", t.name, err)
		}

		_, err = db.Exec(`
			INSERT INTO protocol_team_members (member_id, team_id, name, email, role)
			VALUES ($1, $2, $3, $4, 'leader')
		`, uuid.NewString(), teamID, t.leader, "")
		if err != nil {
			log.Fatalf("insert leader for %s: %v", t.name, err)
		}
		log.Printf("seeded team %s (%s)", t.name, teamID)
	}

	// Spread joining visitors over the last six months so the growth windows
	// have something to compare.
	for i, name := range visitorNames {
		teamID := teamIDs[i%len(teamIDs)]
		created := now.AddDate(0, 0, -20*(i+1))
		start := created
		end := start.AddDate(0, 0, 90)

		visitorID := uuid.NewString()
		_, err := db.Exec(`
			INSERT INTO visitors (
				id, name, email, type, status, monitoring_status,
				monitoring_start_date, monitoring_end_date,
				protocol_team_id, created_at, updated_at
			) VALUES ($1,$2,$3,'joining','joining','active',$4,$5,$6,$7,$7)
		`, visitorID, name, "", start, end, teamID, created)
		if err != nil {
			log.Fatalf("insert visitor %s: %v", name, err)
		}

		for week := 1; week <= 12; week++ {
			var completedDate *time.Time
			completed := week <= i
			if completed {
				d := start.AddDate(0, 0, 7*week)
				completedDate = &d
			}
			_, err := db.Exec(`
				INSERT INTO visitor_milestones (visitor_id, week, completed, completed_date, notes, protocol_member_notes)
				VALUES ($1,$2,$3,$4,'','')
			`, visitorID, week, completed, completedDate)
			if err != nil {
				log.Fatalf("insert milestone for %s: %v", name, err)
			}
		}
	}
	log.Printf("seeded %d visitors", len(visitorNames))

	_, err = db.Exec(`
		INSERT INTO protocol_strategies (
			id, team_id, title, category,
			before_conversion_rate, after_conversion_rate, status, created_at
		) VALUES ($1, $2, 'Pair every visitor with a host family', 'follow-up', 22, 41, 'featured', $3)
	`, uuid.NewString(), teamIDs[0], now)
	if err != nil {
		log.Fatalf("insert strategy: %v", err)
	}
	log.Println("seed complete")
}
