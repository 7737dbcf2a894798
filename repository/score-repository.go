package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/venchfc/litmusEU/app_error"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ScoreState string

const (
	ScoreStateDraft  ScoreState = "DRAFT"
	ScoreStateLocked ScoreState = "LOCKED"
)

type ScoreEntry struct {
	Id            int        `gorm:"primaryKey"`
	EventId       int        `gorm:"not null;uniqueIndex:uq_score_entry"`
	CompetitionId int        `gorm:"not null;uniqueIndex:uq_score_entry"`
	JudgeId       int        `gorm:"not null;uniqueIndex:uq_score_entry"`
	ContestantId  int        `gorm:"not null;uniqueIndex:uq_score_entry"`
	CriterionId   int        `gorm:"not null;uniqueIndex:uq_score_entry"`
	CreatedBy     int        `gorm:"not null"`
	Value         float64    `gorm:"not null"`
	State         ScoreState `gorm:"type:litmus.score_state;not null;default:'DRAFT'"`
	CreatedAt     time.Time  `gorm:"not null"`
	LockedAt      *time.Time `gorm:"null"`
}

func (ScoreEntry) TableName() string {
	return "litmus.score_entries"
}

// ScoreFilter narrows GetScores. Nil fields are ignored.
type ScoreFilter struct {
	JudgeId      *int
	ContestantId *int
	CriterionId  *int
	State        *ScoreState
}

type ScoreRepository struct {
	DB *gorm.DB
}

func NewScoreRepository(db *gorm.DB) *ScoreRepository {
	return &ScoreRepository{DB: db}
}

func (r *ScoreRepository) GetScores(eventId int, competitionId int, filter *ScoreFilter) ([]*ScoreEntry, error) {
	query := r.DB.Where("event_id = ? AND competition_id = ?", eventId, competitionId)
	if filter != nil {
		if filter.JudgeId != nil {
			query = query.Where("judge_id = ?", *filter.JudgeId)
		}
		if filter.ContestantId != nil {
			query = query.Where("contestant_id = ?", *filter.ContestantId)
		}
		if filter.CriterionId != nil {
			query = query.Where("criterion_id = ?", *filter.CriterionId)
		}
		if filter.State != nil {
			query = query.Where("state = ?", *filter.State)
		}
	}
	var entries []*ScoreEntry
	result := query.Order("id").Find(&entries)
	if result.Error != nil {
		return nil, result.Error
	}
	return entries, nil
}

func (r *ScoreRepository) CountLocked(eventId int, competitionId int) (int64, error) {
	var count int64
	result := r.DB.Model(&ScoreEntry{}).
		Where("event_id = ? AND competition_id = ? AND state = ?", eventId, competitionId, ScoreStateLocked).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}

// SaveDraft creates or updates the Draft row for the entry's tuple. The row
// is re-read under FOR UPDATE inside the transaction so a concurrent lock on
// the same submission cannot interleave with the write. Two concurrent first
// saves of the same tuple both miss the FOR UPDATE read; the loser's insert
// trips the unique index and is retried once, taking the update path.
func (r *ScoreRepository) SaveDraft(entry *ScoreEntry) (*ScoreEntry, error) {
	err := r.saveDraft(entry)
	if err != nil && strings.Contains(err.Error(), "uq_score_entry") {
		err = r.saveDraft(entry)
	}
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (r *ScoreRepository) saveDraft(entry *ScoreEntry) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var existing ScoreEntry
		result := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("event_id = ? AND competition_id = ? AND judge_id = ? AND contestant_id = ? AND criterion_id = ?",
				entry.EventId, entry.CompetitionId, entry.JudgeId, entry.ContestantId, entry.CriterionId).
			First(&existing)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				entry.State = ScoreStateDraft
				return tx.Create(entry).Error
			}
			return result.Error
		}
		if existing.State == ScoreStateLocked {
			return &app_error.LockedError{Message: "scores are locked and cannot be edited"}
		}
		existing.Value = entry.Value
		existing.CreatedBy = entry.CreatedBy
		if err := tx.Save(&existing).Error; err != nil {
			return err
		}
		*entry = existing
		return nil
	})
}

// HasLockedEntries reports whether any row of the (judge, competition)
// submission is already locked.
func (r *ScoreRepository) HasLockedEntries(eventId int, competitionId int, judgeId int) (bool, error) {
	var count int64
	result := r.DB.Model(&ScoreEntry{}).
		Where("event_id = ? AND competition_id = ? AND judge_id = ? AND state = ?",
			eventId, competitionId, judgeId, ScoreStateLocked).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

// LockSubmission flips every Draft entry of the (judge, competition)
// submission to LOCKED in one transaction. Every (contestant, criterion)
// pair must have a row, otherwise nothing changes state and the missing
// pairs are reported. An already locked submission is rejected.
func (r *ScoreRepository) LockSubmission(eventId int, competitionId int, judgeId int, contestantIds []int, criterionIds []int) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var entries []*ScoreEntry
		result := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("event_id = ? AND competition_id = ? AND judge_id = ?", eventId, competitionId, judgeId).
			Find(&entries)
		if result.Error != nil {
			return result.Error
		}

		present := make(map[app_error.MissingEntry]bool)
		for _, entry := range entries {
			if entry.State == ScoreStateLocked {
				return &app_error.LockedError{Message: "submission is already locked"}
			}
			present[app_error.MissingEntry{ContestantId: entry.ContestantId, CriterionId: entry.CriterionId}] = true
		}

		missing := make([]app_error.MissingEntry, 0)
		for _, contestantId := range contestantIds {
			for _, criterionId := range criterionIds {
				pair := app_error.MissingEntry{ContestantId: contestantId, CriterionId: criterionId}
				if !present[pair] {
					missing = append(missing, pair)
				}
			}
		}
		if len(missing) > 0 {
			return &app_error.IncompleteScoresError{Missing: missing}
		}

		now := time.Now().UTC()
		return tx.Model(&ScoreEntry{}).
			Where("event_id = ? AND competition_id = ? AND judge_id = ? AND state = ?",
				eventId, competitionId, judgeId, ScoreStateDraft).
			Updates(map[string]any{"state": ScoreStateLocked, "locked_at": now}).Error
	})
}
