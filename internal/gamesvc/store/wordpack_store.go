package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/guesswhonow/guesswho-services/internal/gamesvc/game"
	"github.com/guesswhonow/guesswho-services/internal/gamesvc/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type WordPackStore struct {
	db *pgxpool.Pool
}

func NewWordPackStore(db *pgxpool.Pool) *WordPackStore {
	return &WordPackStore{db: db}
}

func scanPack(row pgx.Row) (*models.WordPack, error) {
	p := &models.WordPack{}
	var content []byte
	err := row.Scan(
		&p.ID,
		&p.Title,
		&p.Description,
		&p.Type,
		&p.Difficulty,
		&p.Language,
		&p.IsPublic,
		&content,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(content, &p.Content); err != nil {
		return nil, fmt.Errorf("decode pack content: %w", err)
	}
	return p, nil
}

const packColumns = `id, title, description, type, difficulty, language, is_public, content, created_at`

func (s *WordPackStore) GetByID(ctx context.Context, packID string) (*models.WordPack, error) {
	pack, err := scanPack(s.db.QueryRow(ctx,
		`SELECT `+packColumns+` FROM word_packs WHERE id = $1`, packID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("word pack %s: %w", packID, game.ErrValidation)
		}
		return nil, fmt.Errorf("%w: %w", game.ErrStorageUnavailable, err)
	}
	return pack, nil
}

// ListPublic returns every public pack, most recently created first.
func (s *WordPackStore) ListPublic(ctx context.Context) ([]models.WordPack, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+packColumns+`
		FROM word_packs
		WHERE is_public = TRUE
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", game.ErrStorageUnavailable, err)
	}
	defer rows.Close()

	var packs []models.WordPack
	for rows.Next() {
		p, err := scanPack(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", game.ErrStorageUnavailable, err)
		}
		packs = append(packs, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", game.ErrStorageUnavailable, err)
	}

	return packs, nil
}

func (s *WordPackStore) Insert(ctx context.Context, pack models.WordPack) (*models.WordPack, error) {
	content, err := json.Marshal(pack.Content)
	if err != nil {
		return nil, fmt.Errorf("encode pack content: %w", err)
	}

	created, err := scanPack(s.db.QueryRow(ctx, `
		INSERT INTO word_packs (title, description, type, difficulty, language, is_public, content)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+packColumns,
		pack.Title, pack.Description, pack.Type, pack.Difficulty,
		pack.Language, pack.IsPublic, content))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return nil, fmt.Errorf("%w: pack title %q already exists", game.ErrValidation, pack.Title)
		}
		return nil, fmt.Errorf("%w: %w", game.ErrStorageUnavailable, err)
	}
	return created, nil
}

// SeedBuiltins inserts the built-in catalog, keyed by title so reruns
// are no-ops.
func (s *WordPackStore) SeedBuiltins(ctx context.Context, packs []models.WordPack) error {
	for _, pack := range packs {
		content, err := json.Marshal(pack.Content)
		if err != nil {
			return fmt.Errorf("encode pack content: %w", err)
		}
		_, err = s.db.Exec(ctx, `
			INSERT INTO word_packs (title, description, type, difficulty, language, is_public, content)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (title) DO NOTHING
		`, pack.Title, pack.Description, pack.Type, pack.Difficulty,
			pack.Language, pack.IsPublic, content)
		if err != nil {
			return fmt.Errorf("%w: %w", game.ErrStorageUnavailable, err)
		}
	}
	return nil
}
