package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/quizlab/internal/quiz"
)

// ErrQuizNotFound is returned when a library id does not exist.
var ErrQuizNotFound = errors.New("quiz not found")

type libraryRepo struct {
	db *sql.DB
}

func (r *libraryRepo) SaveQuiz(ctx context.Context, q *SavedQuiz) error {
	tasks, err := json.Marshal(q.Tasks)
	if err != nil {
		return fmt.Errorf("marshal tasks: %w", err)
	}
	now := time.Now().UTC()
	if q.CreatedAt.IsZero() {
		q.CreatedAt = now
	}
	q.UpdatedAt = now

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO quizzes (id, title, source_text, tasks, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			source_text = excluded.source_text,
			tasks = excluded.tasks,
			updated_at = excluded.updated_at`,
		q.ID, q.Title, q.SourceText, tasks, q.CreatedAt, q.UpdatedAt)
	if err != nil {
		return fmt.Errorf("save quiz: %w", err)
	}
	return nil
}

func (r *libraryRepo) GetQuiz(ctx context.Context, id string) (*SavedQuiz, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, title, source_text, tasks, created_at, updated_at
		FROM quizzes WHERE id = ?`, id)

	q, err := scanQuiz(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrQuizNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get quiz: %w", err)
	}
	return q, nil
}

func (r *libraryRepo) ListQuizzes(ctx context.Context) ([]*SavedQuiz, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, source_text, tasks, created_at, updated_at
		FROM quizzes ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list quizzes: %w", err)
	}
	defer rows.Close()

	var out []*SavedQuiz
	for rows.Next() {
		q, err := scanQuiz(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan quiz: %w", err)
		}
		out = append(out, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list quizzes: %w", err)
	}
	return out, nil
}

func (r *libraryRepo) RenameQuiz(ctx context.Context, id, title string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE quizzes SET title = ?, updated_at = ? WHERE id = ?`,
		title, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("rename quiz: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rename quiz: %w", err)
	}
	if n == 0 {
		return ErrQuizNotFound
	}
	return nil
}

func (r *libraryRepo) DeleteQuiz(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM quizzes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete quiz: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete quiz: %w", err)
	}
	if n == 0 {
		return ErrQuizNotFound
	}
	return nil
}

func scanQuiz(scan func(dest ...any) error) (*SavedQuiz, error) {
	var q SavedQuiz
	var tasks []byte
	if err := scan(&q.ID, &q.Title, &q.SourceText, &tasks, &q.CreatedAt, &q.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(tasks, &q.Tasks); err != nil {
		return nil, fmt.Errorf("unmarshal tasks: %w", err)
	}
	if q.Tasks == nil {
		q.Tasks = []quiz.Task{}
	}
	return &q, nil
}
