package service

import (
	"fmt"
	"log"
	"strings"
	"testing"

	"github.com/venchfc/litmusEU/app_error"
	"github.com/venchfc/litmusEU/repository"

	"gorm.io/driver/postgres"
	_ "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"

	"github.com/gin-contrib/cache/persistence"
	"github.com/ory/dockertest/v3"
	"github.com/stretchr/testify/assert"
)

var db *gorm.DB
var enumQueries = []string{
	`CREATE TYPE litmus.score_state AS ENUM ('DRAFT', 'LOCKED')`,
	`CREATE TYPE litmus.user_role AS ENUM ('admin', 'tabulator', 'judge')`,
	`CREATE TYPE litmus.event_status AS ENUM ('active', 'completed')`,
}

func TestMain(m *testing.M) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		log.Fatalf("Could not construct pool: %s", err)
	}

	err = pool.Client.Ping()
	if err != nil {
		log.Fatalf("Could not connect to Docker: %s", err)
	}

	resource, err := pool.Run("postgres", "17.2-alpine", []string{"POSTGRES_USER=postgres", "POSTGRES_PASSWORD=postgres", "DATABASE_NAME=postgres"})
	if err != nil {
		log.Fatalf("Could not start resource: %s", err)
	}
	resource.Expire(600) // Tell docker to hard kill the container in 10 minutes
	sqlInfo := fmt.Sprintf(
		"host=localhost port=%s user=postgres password=postgres dbname=postgres sslmode=disable search_path=litmus",
		resource.GetPort("5432/tcp"))

	if err := pool.Retry(func() error {
		var err error
		db, err = gorm.Open(postgres.Open(sqlInfo), &gorm.Config{
			NamingStrategy: schema.NamingStrategy{
				TablePrefix:   "litmus.",
				SingularTable: false,
			},
			Logger: logger.Default.LogMode(logger.Silent),
		})

		if err != nil {
			return err
		}
		db.Exec(`CREATE SCHEMA IF NOT EXISTS litmus`)
		for _, query := range enumQueries {
			x := db.Exec(query)
			if x.Error != nil {
				if strings.Contains(x.Error.Error(), "already exists") {
					continue
				}
			}
		}
		return db.AutoMigrate(
			&repository.Event{},
			&repository.Competition{},
			&repository.Contestant{},
			&repository.Criterion{},
			&repository.Judge{},
			&repository.User{},
			&repository.ScoreEntry{},
		)

	}); err != nil {
		log.Fatalf("Could not connect to database: %s", err)
	}

	defer func() {
		if err := pool.Purge(resource); err != nil {
			log.Fatalf("Could not purge resource: %s", err)
		}

	}()
	m.Run()
}

func TearDown() {
	db.Exec("DELETE FROM litmus.score_entries")
	db.Exec("DELETE FROM litmus.criteria")
	db.Exec("DELETE FROM litmus.contestants")
	db.Exec("DELETE FROM litmus.judges")
	db.Exec("DELETE FROM litmus.competitions")
	db.Exec("DELETE FROM litmus.events")
	db.Exec("DELETE FROM litmus.users")
}

func SetUp() (*repository.Event, *repository.Competition) {
	event := &repository.Event{Name: "Main Event", Status: repository.EventStatusActive}
	if err := db.Create(event).Error; err != nil {
		log.Fatalf("Error creating event: %v", err)
	}
	competition := &repository.Competition{
		Name: "Vocal Solo",
		Slug: "vocal-solo",
		Contestants: []*repository.Contestant{
			{Name: "contestant1"},
		},
		Criteria: []*repository.Criterion{
			{Label: "Execution", MaxScore: 100, Weight: 100},
		},
		Judges: []*repository.Judge{
			{Name: "judge1"},
		},
	}
	if err := db.Create(competition).Error; err != nil {
		log.Fatalf("Error creating competition: %v", err)
	}
	return event, competition
}

func admin() *repository.User {
	return &repository.User{Id: 1, Username: "admin", Role: repository.RoleAdmin}
}

func TestCreateCriterionRejectsWeightOverflow(t *testing.T) {
	_, competition := SetUp()
	defer TearDown()
	s := NewCriterionService(db)

	// 100 already taken by the setup criterion
	_, err := s.CreateCriterion(competition.Id, "Stage Presence", 10, 1)
	var validation *app_error.ValidationError
	assert.ErrorAs(t, err, &validation)

	criteria, listErr := s.GetCriteriaForCompetition(competition.Id)
	assert.NoError(t, listErr)
	assert.Len(t, criteria, 1)
}

func TestLoginRejectsUnassignedTabulator(t *testing.T) {
	SetUp()
	defer TearDown()
	s := NewUserService(db)

	user := &repository.User{Username: "tab1", Role: repository.RoleTabulator}
	assert.NoError(t, user.SetPassword("secret"))
	_, err := repository.NewUserRepository(db).SaveUser(user)
	assert.NoError(t, err)

	_, _, err = s.Login("tab1", "secret")
	var authorization *app_error.AuthorizationError
	assert.ErrorAs(t, err, &authorization)
}

func TestLoginReturnsToken(t *testing.T) {
	SetUp()
	defer TearDown()
	s := NewUserService(db)

	assert.NoError(t, s.EnsurePrimaryAdmin("admin", "secret"))
	user, token, err := s.Login("admin", "secret")
	assert.NoError(t, err)
	assert.True(t, user.IsPrimary)
	assert.NotEmpty(t, token)

	_, _, err = s.Login("admin", "wrong")
	var authorization *app_error.AuthorizationError
	assert.ErrorAs(t, err, &authorization)
}

func TestSaveScoreRejectsOutOfRangeValue(t *testing.T) {
	event, competition := SetUp()
	defer TearDown()
	s := NewScoreService(db)

	judgeId := competition.Judges[0].Id
	contestantId := competition.Contestants[0].Id
	criterionId := competition.Criteria[0].Id

	var validation *app_error.ValidationError
	_, err := s.SaveScore(event.Id, competition.Id, contestantId, criterionId, judgeId, -1, admin())
	assert.ErrorAs(t, err, &validation)

	// max score for the setup criterion is 100
	_, err = s.SaveScore(event.Id, competition.Id, contestantId, criterionId, judgeId, 100.5, admin())
	assert.ErrorAs(t, err, &validation)

	entries, err := s.GetScores(event.Id, competition.Id, nil)
	assert.NoError(t, err)
	assert.Empty(t, entries, "a rejected value must leave no persisted row")
}

func TestSaveContestantScoresRejectsUnknownCriterion(t *testing.T) {
	event, competition := SetUp()
	defer TearDown()
	s := NewScoreService(db)

	values := map[int]float64{
		competition.Criteria[0].Id:        50,
		competition.Criteria[0].Id + 1000: 10,
	}
	_, err := s.SaveContestantScores(event.Id, competition.Id, competition.Contestants[0].Id, competition.Judges[0].Id, values, admin())
	var validation *app_error.ValidationError
	assert.ErrorAs(t, err, &validation)

	entries, err := s.GetScores(event.Id, competition.Id, nil)
	assert.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCompletedCompetitionsRequireFullyLockedGrid(t *testing.T) {
	event, competition := SetUp()
	defer TearDown()
	cacheStore := persistence.NewInMemoryStore(persistence.DEFAULT)
	scoreService := NewScoreService(db)
	lockService := NewLockService(db, cacheStore)
	resultsService := NewResultsService(db, cacheStore)

	judgeId := competition.Judges[0].Id
	_, err := scoreService.SaveScore(event.Id, competition.Id, competition.Contestants[0].Id, competition.Criteria[0].Id, judgeId, 80, admin())
	assert.NoError(t, err)

	// a draft grid is not complete, locked rows count, not saved ones
	completed, err := resultsService.GetCompletedCompetitions()
	assert.NoError(t, err)
	assert.Empty(t, completed)

	assert.NoError(t, lockService.Lock(event.Id, competition.Id, judgeId, admin()))

	completed, err = resultsService.GetCompletedCompetitions()
	assert.NoError(t, err)
	assert.Len(t, completed, 1)
	assert.Equal(t, competition.Id, completed[0].Competition.Id)
	assert.Equal(t, event.Id, completed[0].Event.Id)
	assert.Equal(t, int64(1), completed[0].ExpectedScores)
}

func TestLockInvalidatesCachedResults(t *testing.T) {
	event, competition := SetUp()
	defer TearDown()
	cacheStore := persistence.NewInMemoryStore(persistence.DEFAULT)
	scoreService := NewScoreService(db)
	lockService := NewLockService(db, cacheStore)
	resultsService := NewResultsService(db, cacheStore)

	judgeId := competition.Judges[0].Id
	contestantId := competition.Contestants[0].Id
	criterionId := competition.Criteria[0].Id
	_, err := scoreService.SaveScore(event.Id, competition.Id, contestantId, criterionId, judgeId, 90, admin())
	assert.NoError(t, err)

	// drafts are invisible to tabulation, and this view is now cached
	view, err := resultsService.GetResults(event.Id, competition.Id)
	assert.NoError(t, err)
	assert.Equal(t, 0.0, view.Standings[0].Total)

	assert.NoError(t, lockService.Lock(event.Id, competition.Id, judgeId, admin()))

	view, err = resultsService.GetResults(event.Id, competition.Id)
	assert.NoError(t, err)
	assert.InDelta(t, 90.0, view.Standings[0].Total, 1e-9)
	assert.Equal(t, 1, view.Standings[0].Rank)
}
