package repositories

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/rs/zerolog/log"

	"feedbackflow/internal/models/db_models"
	"feedbackflow/pkg/utils"
)

// FeedbackFileRepository stores the whole collection as one JSON array and
// rewrites the file on every Append. Reads never fail: a missing, empty or
// unparsable file is an empty collection.
//
// mu serializes read-modify-write within this process only; two processes
// sharing a file can still hand out the same id. The file is replaced by rename,
// so readers in any process see either the old or the new collection.
type FeedbackFileRepository struct {
	path string
	mu   sync.RWMutex
}

func NewFeedbackFileRepository(path string) *FeedbackFileRepository {
	return &FeedbackFileRepository{path: path}
}

func (r *FeedbackFileRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return int64(len(r.read())), nil
}

func (r *FeedbackFileRepository) Append(ctx context.Context, feedback db_models.NewFeedback) (*db_models.Feedback, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, utils.NewStorageError("append", err)
	}

	feedbacks := r.read()
	record := db_models.Feedback{
		ID:        nextID(feedbacks),
		Name:      feedback.Name,
		Email:     feedback.Email,
		Message:   feedback.Message,
		Timestamp: utils.NowISO(),
	}
	feedbacks = append(feedbacks, record)

	if err := r.write(feedbacks); err != nil {
		return nil, utils.NewStorageError("append", err)
	}
	return &record, nil
}

func (r *FeedbackFileRepository) ListAll(ctx context.Context) ([]db_models.Feedback, error) {
	r.mu.RLock()
	feedbacks := r.read()
	r.mu.RUnlock()

	sort.SliceStable(feedbacks, func(i, j int) bool {
		return feedbacks[i].ID < feedbacks[j].ID
	})
	return feedbacks, nil
}

func nextID(feedbacks []db_models.Feedback) int64 {
	var highest int64
	for _, f := range feedbacks {
		if f.ID > highest {
			highest = f.ID
		}
	}
	return highest + 1
}

func (r *FeedbackFileRepository) read() []db_models.Feedback {
	raw, err := os.ReadFile(r.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Warn().Err(err).Str("path", r.path).Msg("Error reading feedback file")
		}
		return []db_models.Feedback{}
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		return []db_models.Feedback{}
	}

	var feedbacks []db_models.Feedback
	if err := json.Unmarshal(raw, &feedbacks); err != nil {
		log.Warn().Err(err).Str("path", r.path).Msg("Feedback file is corrupt, treating as empty")
		return []db_models.Feedback{}
	}
	if feedbacks == nil {
		feedbacks = []db_models.Feedback{}
	}
	return feedbacks
}

func (r *FeedbackFileRepository) write(feedbacks []db_models.Feedback) error {
	data, err := json.MarshalIndent(feedbacks, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return err
	}
	return os.Rename(tmpName, r.path)
}
