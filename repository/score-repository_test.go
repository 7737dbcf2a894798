package repository

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"testing"

	"github.com/venchfc/litmusEU/app_error"

	"gorm.io/driver/postgres"
	_ "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"

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

	// uses pool to try to connect to Docker
	err = pool.Client.Ping()
	if err != nil {
		log.Fatalf("Could not connect to Docker: %s", err)
	}

	// pulls an image, creates a container based on it and runs it
	resource, err := pool.Run("postgres", "17.2-alpine", []string{"POSTGRES_USER=postgres", "POSTGRES_PASSWORD=postgres", "DATABASE_NAME=postgres"})
	if err != nil {
		log.Fatalf("Could not start resource: %s", err)
	}
	resource.Expire(600) // Tell docker to hard kill the container in 10 minutes
	sqlInfo := fmt.Sprintf(
		"host=localhost port=%s user=postgres password=postgres dbname=postgres sslmode=disable search_path=litmus",
		resource.GetPort("5432/tcp"))

	// exponential backoff-retry, because the application in the container might not be ready to accept connections yet
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
			&Event{},
			&Competition{},
			&Contestant{},
			&Criterion{},
			&Judge{},
			&User{},
			&ScoreEntry{},
		)

	}); err != nil {
		log.Fatalf("Could not connect to database: %s", err)
	}

	// as of go1.15 testing.M returns the exit code of m.Run(), so it is safe to use defer here
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

func SetUp() (*Event, *Competition) {
	event := &Event{Name: "Main Event", Status: EventStatusActive}
	if err := db.Create(event).Error; err != nil {
		log.Fatalf("Error creating event: %v", err)
	}
	competition := &Competition{
		Name: "Vocal Solo",
		Slug: "vocal-solo",
		Contestants: []*Contestant{
			{Name: "contestant1"},
			{Name: "contestant2"},
		},
		Criteria: []*Criterion{
			{Label: "Execution", MaxScore: 50, Weight: 60},
			{Label: "Impact", MaxScore: 10, Weight: 40},
		},
		Judges: []*Judge{
			{Name: "judge1"},
		},
	}
	if err := db.Create(competition).Error; err != nil {
		log.Fatalf("Error creating competition: %v", err)
	}
	return event, competition
}

func draft(event *Event, competition *Competition, contestantId int, criterionId int, value float64) *ScoreEntry {
	return &ScoreEntry{
		EventId:       event.Id,
		CompetitionId: competition.Id,
		JudgeId:       competition.Judges[0].Id,
		ContestantId:  contestantId,
		CriterionId:   criterionId,
		Value:         value,
	}
}

func TestSaveDraftOverwritesExistingDraft(t *testing.T) {
	event, competition := SetUp()
	defer TearDown()
	r := NewScoreRepository(db)

	first, err := r.SaveDraft(draft(event, competition, competition.Contestants[0].Id, competition.Criteria[0].Id, 30))
	assert.NoError(t, err)
	assert.Equal(t, ScoreStateDraft, first.State)

	second, err := r.SaveDraft(draft(event, competition, competition.Contestants[0].Id, competition.Criteria[0].Id, 42))
	assert.NoError(t, err)
	assert.Equal(t, first.Id, second.Id, "re-submitting the same tuple must overwrite, not insert")
	assert.Equal(t, 42.0, second.Value)

	entries, err := r.GetScores(event.Id, competition.Id, nil)
	assert.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, 42.0, entries[0].Value)
}

func TestSaveDraftConcurrentFirstSaves(t *testing.T) {
	event, competition := SetUp()
	defer TearDown()
	r := NewScoreRepository(db)

	// all writers target the same tuple before any row exists, so the
	// losers' inserts hit the unique index and must fall back to the
	// update path instead of surfacing the constraint violation
	var wg sync.WaitGroup
	errs := make([]error, 4)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = r.SaveDraft(draft(event, competition, competition.Contestants[0].Id, competition.Criteria[0].Id, float64(10+i)))
		}(i)
	}
	wg.Wait()
	for _, err := range errs {
		assert.NoError(t, err)
	}

	entries, err := r.GetScores(event.Id, competition.Id, nil)
	assert.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, ScoreStateDraft, entries[0].State)
}

func TestLockSubmissionRejectsIncompleteGrid(t *testing.T) {
	event, competition := SetUp()
	defer TearDown()
	r := NewScoreRepository(db)

	contestantIds := []int{competition.Contestants[0].Id, competition.Contestants[1].Id}
	criterionIds := []int{competition.Criteria[0].Id, competition.Criteria[1].Id}

	// three of the four (contestant, criterion) pairs are scored
	for _, pair := range [][2]int{
		{contestantIds[0], criterionIds[0]},
		{contestantIds[0], criterionIds[1]},
		{contestantIds[1], criterionIds[0]},
	} {
		_, err := r.SaveDraft(draft(event, competition, pair[0], pair[1], 10))
		assert.NoError(t, err)
	}

	err := r.LockSubmission(event.Id, competition.Id, competition.Judges[0].Id, contestantIds, criterionIds)
	var incomplete *app_error.IncompleteScoresError
	assert.ErrorAs(t, err, &incomplete)
	assert.Equal(t, []app_error.MissingEntry{
		{ContestantId: contestantIds[1], CriterionId: criterionIds[1]},
	}, incomplete.Missing)

	// nothing may have changed state
	entries, err := r.GetScores(event.Id, competition.Id, nil)
	assert.NoError(t, err)
	for _, entry := range entries {
		assert.Equal(t, ScoreStateDraft, entry.State)
		assert.Nil(t, entry.LockedAt)
	}
}

func TestLockSubmissionFlipsEveryRowOnce(t *testing.T) {
	event, competition := SetUp()
	defer TearDown()
	r := NewScoreRepository(db)

	contestantIds := []int{competition.Contestants[0].Id, competition.Contestants[1].Id}
	criterionIds := []int{competition.Criteria[0].Id, competition.Criteria[1].Id}
	for _, contestantId := range contestantIds {
		for _, criterionId := range criterionIds {
			_, err := r.SaveDraft(draft(event, competition, contestantId, criterionId, 10))
			assert.NoError(t, err)
		}
	}

	err := r.LockSubmission(event.Id, competition.Id, competition.Judges[0].Id, contestantIds, criterionIds)
	assert.NoError(t, err)

	entries, err := r.GetScores(event.Id, competition.Id, nil)
	assert.NoError(t, err)
	assert.Len(t, entries, 4)
	for _, entry := range entries {
		assert.Equal(t, ScoreStateLocked, entry.State)
		assert.NotNil(t, entry.LockedAt)
	}

	locked, err := r.HasLockedEntries(event.Id, competition.Id, competition.Judges[0].Id)
	assert.NoError(t, err)
	assert.True(t, locked)

	err = r.LockSubmission(event.Id, competition.Id, competition.Judges[0].Id, contestantIds, criterionIds)
	var alreadyLocked *app_error.LockedError
	assert.ErrorAs(t, err, &alreadyLocked)
}

func TestSaveDraftRejectsLockedEntry(t *testing.T) {
	event, competition := SetUp()
	defer TearDown()
	r := NewScoreRepository(db)

	contestantIds := []int{competition.Contestants[0].Id, competition.Contestants[1].Id}
	criterionIds := []int{competition.Criteria[0].Id, competition.Criteria[1].Id}
	for _, contestantId := range contestantIds {
		for _, criterionId := range criterionIds {
			_, err := r.SaveDraft(draft(event, competition, contestantId, criterionId, 10))
			assert.NoError(t, err)
		}
	}
	err := r.LockSubmission(event.Id, competition.Id, competition.Judges[0].Id, contestantIds, criterionIds)
	assert.NoError(t, err)

	_, err = r.SaveDraft(draft(event, competition, contestantIds[0], criterionIds[0], 99))
	var locked *app_error.LockedError
	assert.ErrorAs(t, err, &locked)

	// the locked value must be untouched
	entries, err := r.GetScores(event.Id, competition.Id, &ScoreFilter{ContestantId: &contestantIds[0], CriterionId: &criterionIds[0]})
	assert.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, 10.0, entries[0].Value)
}

func TestCountLockedIgnoresDrafts(t *testing.T) {
	event, competition := SetUp()
	defer TearDown()
	r := NewScoreRepository(db)

	contestantIds := []int{competition.Contestants[0].Id, competition.Contestants[1].Id}
	criterionIds := []int{competition.Criteria[0].Id, competition.Criteria[1].Id}
	for _, contestantId := range contestantIds {
		for _, criterionId := range criterionIds {
			_, err := r.SaveDraft(draft(event, competition, contestantId, criterionId, 10))
			assert.NoError(t, err)
		}
	}

	count, err := r.CountLocked(event.Id, competition.Id)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), count)

	err = r.LockSubmission(event.Id, competition.Id, competition.Judges[0].Id, contestantIds, criterionIds)
	assert.NoError(t, err)

	count, err = r.CountLocked(event.Id, competition.Id)
	assert.NoError(t, err)
	assert.Equal(t, int64(4), count)
}
